// Package server implements the HTTP data provider.
//
// The router exposes exactly three things:
//
//	GET /          the landing page hosting the chart
//	GET /data      the raw bytes of the configured data file
//	GET /static/*  browser assets, when the static directory exists
//
// Every other path, and every other method on these paths, is answered with
// 404 and an empty body. The data file is read whole on every request, so
// edits are picked up without a restart.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Options configures a Server.
type Options struct {
	Addr        string
	DataFile    string
	StaticDir   string
	Title       string
	CORSOrigins []string
}

// Server is the data provider.
type Server struct {
	opts       Options
	router     chi.Router
	httpServer *http.Server
	logger     *log.Logger
}

// New creates a server with its routes mounted.
func New(opts Options, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		opts:   opts,
		router: chi.NewRouter(),
		logger: logger,
	}
	s.mountMiddleware()
	s.mountRoutes()
	s.httpServer = newHTTPServer(s.router)
	return s
}

func (s *Server) mountMiddleware() {
	s.router.Use(RequestID)
	s.router.Use(Logging(s.logger))
	s.router.Use(Metrics)
	s.router.Use(chimiddleware.Recoverer)
	if len(s.opts.CORSOrigins) > 0 {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.opts.CORSOrigins,
			AllowedMethods: []string{http.MethodGet},
			ExposedHeaders: []string{RequestIDHeader},
			MaxAge:         300,
		}))
	}
}

func (s *Server) mountRoutes() {
	s.router.NotFound(notFound)
	s.router.MethodNotAllowed(notFound)

	s.router.Get("/", s.handleIndex)
	s.router.Get("/data", s.handleData)

	if s.staticEnabled() {
		s.router.Get("/static/*", s.handleStatic)
	} else if s.opts.StaticDir != "" {
		s.logger.Warn("static directory not found, /static/ disabled", "dir", s.opts.StaticDir)
	}
}

func (s *Server) staticEnabled() bool {
	if s.opts.StaticDir == "" {
		return false
	}
	fi, err := os.Stat(s.opts.StaticDir)
	return err == nil && fi.IsDir()
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on the configured address and serves until Shutdown.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.opts.Addr, err)
	}
	return s.Serve(ln)
}

// Serve serves on ln until Shutdown.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("serving", "addr", ln.Addr().String(), "data", s.opts.DataFile)
	if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server. Serve returns immediately if
// it is called after Shutdown.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

func newHTTPServer(h http.Handler) *http.Server {
	return &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// MetricsServer exposes a metrics handler on its own listener.
type MetricsServer struct {
	addr       string
	httpServer *http.Server
	logger     *log.Logger
}

// NewMetricsServer serves h on /metrics at addr.
func NewMetricsServer(addr string, h http.Handler, logger *log.Logger) *MetricsServer {
	if logger == nil {
		logger = log.Default()
	}
	r := chi.NewRouter()
	r.Handle("/metrics", h)
	return &MetricsServer{addr: addr, httpServer: newHTTPServer(r), logger: logger}
}

// Start listens and serves until Shutdown.
func (m *MetricsServer) Start() error {
	ln, err := net.Listen("tcp", m.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", m.addr, err)
	}
	m.logger.Info("serving metrics", "addr", ln.Addr().String())
	if err := m.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("metrics server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the metrics server.
func (m *MetricsServer) Shutdown(ctx context.Context) error {
	return m.httpServer.Shutdown(ctx)
}
