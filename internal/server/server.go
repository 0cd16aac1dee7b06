// Package server exposes the HTTP API: the progress stream, the message board,
// the oracle endpoint, Prometheus metrics and the static frontend.
//
// A Server is built once at startup from configuration and explicit
// dependencies. Nothing is held in package-level state.
package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/roach88/qsynth/internal/config"
	"github.com/roach88/qsynth/internal/oracle"
	"github.com/roach88/qsynth/internal/progress"
	"github.com/roach88/qsynth/internal/store"
)

// MessageStore is the message board storage used by the message endpoints.
type MessageStore interface {
	WriteMessage(ctx context.Context, m store.Message) (store.Message, error)
	ListMessages(ctx context.Context) ([]store.Message, error)
}

// Server serves the qsynth HTTP API.
type Server struct {
	cfg      config.Config
	logger   *zap.Logger
	progress *progress.Generator
	messages MessageStore
	oracle   oracle.Runner
	registry *prometheus.Registry
	metrics  *metrics
	handler  http.Handler
}

// Option configures a Server.
type Option func(*Server)

// WithGenerator replaces the default progress generator.
func WithGenerator(g *progress.Generator) Option {
	return func(s *Server) { s.progress = g }
}

// WithMessageStore enables the message endpoints. Without it they answer 503.
func WithMessageStore(m MessageStore) Option {
	return func(s *Server) { s.messages = m }
}

// WithOracle replaces the oracle runner.
func WithOracle(r oracle.Runner) Option {
	return func(s *Server) { s.oracle = r }
}

// WithRegistry registers server metrics on reg. When metrics are enabled,
// /metrics exposes everything registered on reg.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) { s.registry = reg }
}

// New builds a Server. A nil logger is replaced with a no-op logger.
//
// When no oracle runner is given, an uncached oracle.Service is used.
func New(cfg config.Config, logger *zap.Logger, opts ...Option) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		cfg:    cfg,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.progress == nil {
		s.progress = progress.New()
	}
	if s.oracle == nil {
		svc, err := oracle.NewService(logger.Named("oracle"))
		if err != nil {
			return nil, errors.Wrap(err, "create oracle service")
		}
		s.oracle = svc
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}
	s.metrics = newMetrics()
	if err := s.metrics.register(s.registry); err != nil {
		return nil, errors.Wrap(err, "register server metrics")
	}

	s.handler = s.routes()
	return s, nil
}

// Handler returns the root handler, including CORS.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	s.route(mux, "POST /api/run-algorithm", s.handleRunAlgorithm)
	s.route(mux, "GET /api/messages", s.handleListMessages)
	s.route(mux, "POST /api/messages", s.handleCreateMessage)
	s.route(mux, "GET /api/get-oracle", s.handleGetOracle)

	if s.cfg.Metrics.Enabled {
		mux.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}
	if dir := s.cfg.Server.StaticDir; dir != "" {
		mux.Handle("/", http.FileServer(http.Dir(dir)))
	}

	return cors.AllowAll().Handler(mux)
}

// route registers h under pattern with request logging and metrics.
func (s *Server) route(mux *http.ServeMux, pattern string, h http.HandlerFunc) {
	mux.Handle(pattern, s.instrument(pattern, h))
}

// Run listens on the configured address until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Server.Addr)
	if err != nil {
		return errors.Wrapf(err, "listen on %s", s.cfg.Server.Addr)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully within the configured timeout. Open streams see their request
// context cancelled when ctx is.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
		ErrorLog:          zap.NewStdLog(s.logger.Named("http")),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "serve")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.Shutdown())
		defer cancel()
		s.logger.Info("shutting down")
		return errors.Wrap(srv.Shutdown(shutdownCtx), "shutdown")
	})
	return g.Wait()
}
