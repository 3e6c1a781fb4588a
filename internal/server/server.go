package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"github.com/honeycarbs/jobboard/internal/api"
	"github.com/honeycarbs/jobboard/internal/config"
	"github.com/honeycarbs/jobboard/internal/mcp"
	"github.com/honeycarbs/jobboard/pkg/logging"
)

// Server serves the REST API, the MCP stream and a health check on one listener
type Server struct {
	logger *logging.Logger

	srv     *http.Server
	started atomic.Bool
	drained chan struct{}
	once    sync.Once
}

// New wires the HTTP surfaces over res
func New(cfg config.Config, res *Resources, logger *logging.Logger) *Server {
	return newServer(net.JoinHostPort(cfg.Host, cfg.Port), NewHandler(cfg, res, logger), logger)
}

func newServer(addr string, handler http.Handler, logger *logging.Logger) *Server {
	return &Server{
		logger: logger,
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
		drained: make(chan struct{}),
	}
}

// NewHandler builds the root handler: /api/ goes to gin, /mcp/stream to the MCP transport
func NewHandler(cfg config.Config, res *Resources, logger *logging.Logger) http.Handler {
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := api.NewRouter(res.JobService, res.Authenticator, logger.Named("api"), api.RouterConfig{
		RateLimitRPS:   cfg.HTTP.RateLimitRPS,
		RateLimitBurst: cfg.HTTP.RateLimitBurst,
	})
	mcpServer := mcp.NewServer(res.JobService, res.Sheets, logger)

	mux := http.NewServeMux()
	mux.Handle("/api/", router)
	mux.Handle("/mcp/stream", mcp.NewHandler(mcpServer))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return cors.New(cors.Options{
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "Mcp-Session-Id"},
		ExposedHeaders: []string{"Mcp-Session-Id"},
		MaxAge:         86400,
	}).Handler(mux)
}

// Run starts the HTTP server and blocks until Shutdown has drained in-flight requests
func (s *Server) Run() error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	return s.serve(ln)
}

func (s *Server) serve(ln net.Listener) error {
	if !s.started.CompareAndSwap(false, true) {
		_ = ln.Close()
		return nil
	}

	s.logger.Info("HTTP server listening", "addr", ln.Addr().String())

	if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	// Serve returns as soon as Shutdown closes the listener; wait for the drain.
	<-s.drained
	return nil
}

// Shutdown stops accepting connections and waits for active requests until ctx expires
func (s *Server) Shutdown(ctx context.Context) error {
	defer s.once.Do(func() { close(s.drained) })

	s.logger.Info("shutdown requested for HTTP server")
	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Warn("HTTP server shutdown with error", "err", err)
		return err
	}

	s.logger.Info("HTTP server shutdown complete")
	return nil
}
