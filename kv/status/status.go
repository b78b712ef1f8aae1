package status

import (
	"context"
	"net"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pingcap-incubator/tinytxn/kv/server"
	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/unrolled/render"
	"github.com/urfave/negroni"
	"go.uber.org/zap"
)

const (
	statusAPI  = "/status"
	metricsAPI = "/metrics"
)

// StatsProvider is implemented by server.Server. Stats must be safe to call from the HTTP goroutines.
type StatsProvider interface {
	Stats() server.Stats
}

type statusHandler struct {
	provider StatsProvider
	rd       *render.Render
}

func (h *statusHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.rd.JSON(w, http.StatusOK, h.provider.Stats())
}

// NewHandler returns the read-only status API.
func NewHandler(provider StatsProvider) http.Handler {
	rd := render.New(render.Options{
		IndentJSON: true,
	})

	router := mux.NewRouter()
	handler := &statusHandler{provider: provider, rd: rd}
	router.HandleFunc(statusAPI, handler.Get).Methods("GET")
	router.Handle(metricsAPI, promhttp.Handler()).Methods("GET")

	n := negroni.New(negroni.NewRecovery())
	n.UseHandler(router)
	return n
}

// Server serves the status API until it is closed.
type Server struct {
	httpServer *http.Server
	listener   net.Listener
}

// Listen binds addr. Serving starts with Serve.
func Listen(addr string, provider StatsProvider) (*Server, error) {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Annotatef(err, "listen status address %s", addr)
	}
	return &Server{
		httpServer: &http.Server{Handler: NewHandler(provider)},
		listener:   l,
	}, nil
}

// Addr returns the bound address.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Serve blocks until the server is closed.
func (s *Server) Serve() {
	log.Info("status server listening", zap.String("addr", s.Addr()))
	if err := s.httpServer.Serve(s.listener); err != nil && err != http.ErrServerClosed {
		log.Error("status server stopped", zap.Error(err))
	}
}

// Close stops accepting requests and waits for in-flight ones until ctx is done.
func (s *Server) Close(ctx context.Context) error {
	return errors.Trace(s.httpServer.Shutdown(ctx))
}
