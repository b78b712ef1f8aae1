package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pingcap-incubator/tinytxn/kv/config"
	"github.com/pingcap-incubator/tinytxn/kv/server"
	"github.com/pingcap-incubator/tinytxn/kv/status"
	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	logLevel   string
	logFile    string
	statusAddr string
	prompt     string
	echo       bool
)

var (
	gitHash = "None"
)

const statusCloseTimeout = 3 * time.Second

func main() {
	rootCmd := &cobra.Command{
		Use:   "txnshell [script]",
		Short: "In-memory variable store with nested transactions",
		Long: "txnshell reads commands from an interactive prompt, or from a script file when one is given " +
			"(\"-\" reads the script from stdin).",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         runShellCommandFunc,
	}
	rootCmd.Flags().StringVar(&configPath, "config", "", "config file path")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "L", "", "log level: debug, info, warn, error, fatal")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "log file path")
	rootCmd.Flags().StringVar(&statusAddr, "status-addr", "", "status API listen address, disabled if empty")
	rootCmd.Flags().StringVar(&prompt, "prompt", "", "interactive prompt")
	rootCmd.Flags().BoolVar(&echo, "echo", false, "echo script lines before their output")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	conf := config.NewDefaultConfig()
	if configPath != "" {
		if err := conf.FromFile(configPath); err != nil {
			return nil, err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		conf.Log.Level = logLevel
	}
	if flags.Changed("log-file") {
		conf.Log.File.Filename = logFile
	}
	if flags.Changed("status-addr") {
		conf.StatusAddr = statusAddr
	}
	if flags.Changed("prompt") {
		conf.Prompt = prompt
	}
	if flags.Changed("echo") {
		conf.Echo = echo
	}
	conf.Adjust()
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func runShellCommandFunc(cmd *cobra.Command, args []string) error {
	conf, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err = conf.SetupLogger(); err != nil {
		return errors.Annotate(err, "initialize logger")
	}
	log.ReplaceGlobals(conf.GetZapLogger(), conf.GetZapLogProperties())
	defer log.Sync()
	log.Info("txnshell starting", zap.String("git-hash", gitHash), zap.String("config", configPath))

	svr := server.NewServer()

	if conf.StatusAddr != "" {
		statusServer, err := status.Listen(conf.StatusAddr, svr)
		if err != nil {
			return err
		}
		go statusServer.Serve()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), statusCloseTimeout)
			defer cancel()
			if err := statusServer.Close(ctx); err != nil {
				log.Warn("close status server failed", zap.Error(err))
			}
		}()
	}

	var src lineSource
	if len(args) == 1 {
		src, err = openScript(args[0])
	} else {
		src, err = newReadlineSource(conf)
	}
	if err != nil {
		return err
	}
	src = &closeOnce{lineSource: src}
	defer src.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	handleSignal(ctx, cancel, src)

	sh := &shell{
		svr:    svr,
		out:    os.Stdout,
		echo:   conf.Echo && len(args) == 1,
		prompt: conf.Prompt,
	}
	err = sh.run(ctx, src)
	log.Info("txnshell stopped", zap.Uint64("commands", svr.Stats().Commands))
	return err
}

func handleSignal(ctx context.Context, cancel context.CancelFunc, src lineSource) {
	sc := make(chan os.Signal, 1)
	signal.Notify(sc,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT)
	go func() {
		defer signal.Stop(sc)
		select {
		case sig := <-sc:
			log.Info("Got signal to exit", zap.String("signal", sig.String()))
			cancel()
			// Unblocks a pending read.
			src.Close()
		case <-ctx.Done():
		}
	}()
}
