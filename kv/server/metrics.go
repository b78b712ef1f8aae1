package server

import "github.com/prometheus/client_golang/prometheus"

var (
	commandCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tinytxn",
			Subsystem: "server",
			Name:      "command_total",
			Help:      "Counter of executed commands.",
		}, []string{"type", "result"})

	commandDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tinytxn",
			Subsystem: "server",
			Name:      "command_duration_seconds",
			Help:      "Bucketed histogram of command execution time, including transaction previews.",
			Buckets:   prometheus.ExponentialBuckets(0.000001, 4, 12),
		}, []string{"type"})

	transactionDepthGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "tinytxn",
			Subsystem: "transaction",
			Name:      "depth",
			Help:      "Number of open transaction blocks.",
		})

	pendingCommandsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "tinytxn",
			Subsystem: "transaction",
			Name:      "pending_commands",
			Help:      "Number of commands logged in open transaction blocks.",
		})

	variablesGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "tinytxn",
			Subsystem: "store",
			Name:      "variables",
			Help:      "Number of variables in the store.",
		})
)

func init() {
	prometheus.MustRegister(commandCounter)
	prometheus.MustRegister(commandDuration)
	prometheus.MustRegister(transactionDepthGauge)
	prometheus.MustRegister(pendingCommandsGauge)
	prometheus.MustRegister(variablesGauge)
}
