package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"mercator-hq/slotgen/pkg/config"
	"mercator-hq/slotgen/pkg/reload"
	"mercator-hq/slotgen/pkg/server/middleware"
	"mercator-hq/slotgen/pkg/telemetry/health"
	"mercator-hq/slotgen/pkg/telemetry/metrics"
)

// Server exposes generation over HTTP.
type Server struct {
	config  *config.ServerConfig
	holder  *reload.Holder
	options *options
	logger  *slog.Logger

	httpServer   *http.Server
	addr         net.Addr
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
}

// Option configures a Server.
type Option func(*options)

type options struct {
	checker       *health.Checker
	collector     *metrics.Collector
	metricsPath   string
	newlineMarker string
	logger        *slog.Logger
	version       string
	commit        string
	buildTime     string
}

// WithHealthChecker serves /health, /ready and /version from checker.
// An "engine" check is always registered on it.
func WithHealthChecker(checker *health.Checker) Option {
	return func(o *options) { o.checker = checker }
}

// WithMetrics records HTTP metrics on collector and serves it at path.
func WithMetrics(collector *metrics.Collector, path string) Option {
	return func(o *options) {
		o.collector = collector
		o.metricsPath = path
	}
}

// WithNewlineMarker sets the marker used by split=true.
func WithNewlineMarker(marker string) Option {
	return func(o *options) { o.newlineMarker = marker }
}

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithVersion sets the build information reported by /version.
func WithVersion(version, commit, buildTime string) Option {
	return func(o *options) {
		o.version = version
		o.commit = commit
		o.buildTime = buildTime
	}
}

// NewServer creates a server that generates from holder's engine.
func NewServer(cfg *config.ServerConfig, holder *reload.Holder, opts ...Option) *Server {
	o := &options{
		newlineMarker: config.DefaultNewlineMarker,
		logger:        slog.Default(),
		version:       "dev",
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.checker == nil {
		o.checker = health.New(0)
	}
	o.checker.Register("engine", holder.Check)

	return &Server{
		config:  cfg,
		holder:  holder,
		options: o,
		logger:  o.logger.With("component", "server"),
	}
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}

	listener, err := net.Listen("tcp", s.config.ListenAddress)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to listen on %s: %w", s.config.ListenAddress, err)
	}

	s.httpServer = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}
	s.addr = listener.Addr()
	s.isRunning = true
	s.mu.Unlock()

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", "address", listener.Addr().String())

		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	}
}

// Shutdown gracefully shuts down the server within the configured timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		if !s.isRunning {
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		s.logger.Info("initiating graceful shutdown", "timeout", s.config.ShutdownTimeout.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("error during server shutdown", "error", err)
			shutdownErr = fmt.Errorf("server shutdown error: %w", err)
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		s.logger.Info("server stopped")
	})

	return shutdownErr
}

// Handler returns the routed handler with the middleware chain applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	s.route(mux, "GET /v1/templates", s.handleTemplates)
	s.route(mux, "GET /v1/generate/{name}", s.handleGenerate)
	s.route(mux, "POST /v1/reload", s.handleReload)

	o := s.options
	health.Register(mux, o.checker, o.version, o.commit, o.buildTime)

	if o.collector != nil && o.metricsPath != "" {
		mux.Handle(o.metricsPath, o.collector.Handler())
	}

	var handler http.Handler = mux
	handler = middleware.Logging(s.logger)(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Recovery(s.logger)(handler)

	return handler
}

// route registers handler under pattern and records its HTTP metrics.
func (s *Server) route(mux *http.ServeMux, pattern string, handler http.HandlerFunc) {
	collector := s.options.collector
	if collector == nil {
		mux.HandleFunc(pattern, handler)
		return
	}

	mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := middleware.NewStatusRecorder(w)
		handler(rw, r)
		collector.RecordHTTPRequest(pattern, rw.Status, time.Since(start))
	})
}

// Addr returns the listening address once Start has bound it.
func (s *Server) Addr() net.Addr {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.addr
}

// IsRunning returns true if the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}
