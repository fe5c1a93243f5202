// Package server exposes the sequence generator over an opt-in HTTP API
// with Prometheus metrics, structured request logging, and graceful
// shutdown.
package server

import (
	"context"
	"errors"
	"math/big"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/fibseq/internal/fibonacci"
	"github.com/agbru/fibseq/internal/logging"
)

// shutdownGrace is how long in-flight requests get to finish after a
// shutdown signal.
const shutdownGrace = 10 * time.Second

//go:generate mockgen -source=server.go -destination=mock_generator_test.go -package=server

// Generator produces Fibonacci sequences for the API handlers.
// The production implementation delegates to the fibonacci package;
// tests substitute mocks.
type Generator interface {
	// Generate returns the first n Fibonacci numbers.
	Generate(n int) []*big.Int
	// Term returns F(n), or nil for negative n.
	Term(n int) *big.Int
}

// sequenceGenerator is the production Generator backed by the pure
// functions of the fibonacci package.
type sequenceGenerator struct{}

func (sequenceGenerator) Generate(n int) []*big.Int { return fibonacci.Generate(n) }
func (sequenceGenerator) Term(n int) *big.Int       { return fibonacci.Term(n) }

// Server is the HTTP API for fibseq.
type Server struct {
	addr     string
	gen      Generator
	log      logging.Logger
	metrics  *Metrics
	security SecurityConfig
	tracer   trace.Tracer
}

// Option configures a Server during construction.
type Option func(*Server)

// WithGenerator overrides the sequence generator, primarily for tests.
func WithGenerator(g Generator) Option {
	return func(s *Server) { s.gen = g }
}

// WithLogger overrides the request logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Server) { s.log = l }
}

// WithSecurityConfig overrides the hardening configuration.
func WithSecurityConfig(c SecurityConfig) Option {
	return func(s *Server) { s.security = c }
}

// New creates a Server listening on addr once Run is called.
func New(addr string, opts ...Option) *Server {
	s := &Server{
		addr:     addr,
		gen:      sequenceGenerator{},
		metrics:  NewMetrics(),
		security: DefaultSecurityConfig(),
		tracer:   otel.Tracer("fibseq/server"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logging.NewDefaultLogger()
	}
	return s
}

// Routes builds the HTTP handler with all middleware applied.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/sequence", s.wrap(s.handleSequence))
	mux.HandleFunc("GET /api/v1/term", s.wrap(s.handleTerm))
	mux.HandleFunc("GET /api/v1/status", s.wrap(s.handleStatus))
	mux.HandleFunc("GET /healthz", s.wrap(s.handleHealthz))
	mux.HandleFunc("GET /metrics", s.metrics.WritePrometheus)
	return mux
}

// wrap applies the standard middleware chain to an API handler.
func (s *Server) wrap(h http.HandlerFunc) http.HandlerFunc {
	return SecurityMiddleware(s.security, s.metricsMiddleware(s.loggingMiddleware(h)))
}

// loggingMiddleware emits one structured log line per request.
func (s *Server) loggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next(w, r)
		s.log.Info("request",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.Float64("elapsed_ms", float64(time.Since(start).Microseconds())/1000.0),
		)
	}
}

// Run serves the API until ctx is canceled, then shuts down gracefully.
// A canceled context is a normal shutdown and returns nil.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.log.Info("listening", logging.String("addr", s.addr))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		s.log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
