package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/couchcryptid/quake-report/internal/domain"
	"github.com/couchcryptid/quake-report/internal/observability"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pages produces the HTML documents served by the report routes.
type Pages interface {
	Index(ctx context.Context) (string, error)
	Location(ctx context.Context, loc string) (string, error)
	Magnitude(ctx context.Context, raw string) (string, error)
	Depth(ctx context.Context, raw string) (string, error)
}

// Option configures a Server.
type Option func(*Server)

// WithClock sets the clock used to time requests.
func WithClock(c clockwork.Clock) Option {
	return func(s *Server) { s.clock = c }
}

// WithPublicDir serves static assets from dir for any path no other route claims.
func WithPublicDir(dir string) Option {
	return func(s *Server) { s.publicDir = dir }
}

// Server exposes the report pages, static assets, and health, readiness and
// metrics endpoints.
type Server struct {
	httpServer *http.Server
	pages      Pages
	logger     *slog.Logger
	metrics    *observability.Metrics
	clock      clockwork.Clock
	publicDir  string
}

// NewServer creates an HTTP server with the report routes and /healthz,
// /readyz and /metrics.
func NewServer(addr string, pages Pages, ready sharedobs.ReadinessChecker, metrics *observability.Metrics, logger *slog.Logger, opts ...Option) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		pages:   pages,
		logger:  logger,
		metrics: metrics,
		clock:   clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(s)
	}

	mux.HandleFunc("GET /{$}", s.instrument("/", s.handleIndex))
	mux.HandleFunc("GET /location/{loc}", s.instrument("/location/{loc}", s.handleLocation))
	mux.HandleFunc("GET /magnitude/{mag}", s.instrument("/magnitude/{mag}", s.handleMagnitude))
	mux.HandleFunc("GET /depth/{dep}", s.instrument("/depth/{dep}", s.handleDepth))

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	if s.publicDir != "" {
		mux.Handle("GET /", http.FileServer(http.Dir(s.publicDir)))
	}

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := s.pages.Index(r.Context())
	s.respond(w, r, page, err)
}

func (s *Server) handleLocation(w http.ResponseWriter, r *http.Request) {
	page, err := s.pages.Location(r.Context(), r.PathValue("loc"))
	s.respond(w, r, page, err)
}

func (s *Server) handleMagnitude(w http.ResponseWriter, r *http.Request) {
	page, err := s.pages.Magnitude(r.Context(), r.PathValue("mag"))
	s.respond(w, r, page, err)
}

func (s *Server) handleDepth(w http.ResponseWriter, r *http.Request) {
	page, err := s.pages.Depth(r.Context(), r.PathValue("dep"))
	s.respond(w, r, page, err)
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, page string, err error) {
	switch {
	case err == nil:
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(page)) //nolint:errcheck // client may have gone away
	case errors.Is(err, domain.ErrNotFound):
		s.logger.Debug("not found", "path", r.URL.Path, "error", err)
		writeText(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrStore):
		s.logger.Error("store error", "path", r.URL.Path, "error", err)
		writeText(w, http.StatusInternalServerError, "SQL Error")
	default:
		s.logger.Error("render failed", "path", r.URL.Path, "error", err)
		writeText(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

// instrument records request count, status and latency under the route pattern.
func (s *Server) instrument(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := s.clock.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next(rec, r)

		elapsed := s.clock.Since(start)
		s.metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		s.metrics.HTTPRequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", elapsed,
		)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(msg)) //nolint:errcheck // best-effort error body
}
