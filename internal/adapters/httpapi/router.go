package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/andrescamacho/hideout-go/internal/application/common"
	"github.com/andrescamacho/hideout-go/internal/application/mediator"
)

// RouterOptions configures the optional parts of the API
type RouterOptions struct {
	// Logger receives request diagnostics; nil uses slog.Default()
	Logger *slog.Logger
	// MetricsHandler is mounted at MetricsPath when both are set
	MetricsHandler http.Handler
	MetricsPath    string
	// RequestTimeout bounds every request; zero means 30s
	RequestTimeout time.Duration
}

// NewRouter builds the read-only HTTP API over the mediator
func NewRouter(med mediator.Mediator, opts RouterOptions) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := opts.RequestTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	h := &handlers{mediator: med, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(timeout))
	r.Use(requestLogger(logger))

	r.Get("/healthz", h.health)

	r.Route("/api/profiles", func(r chi.Router) {
		r.Get("/", h.listProfiles)
		r.Route("/{profile}", func(r chi.Router) {
			r.Get("/", h.getProfile)
			r.Get("/needs", h.pooledNeeds)
			r.Get("/stations", h.stationStatus)
			r.Get("/stations/{station}", h.stationStatus)
			r.Get("/export", h.exportProgress)
		})
	})

	if opts.MetricsHandler != nil && opts.MetricsPath != "" {
		r.Handle(opts.MetricsPath, opts.MetricsHandler)
	}

	return r
}

// requestLogger logs each request and hands handlers a context logger
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqLogger := logger.With(slog.String("request_id", middleware.GetReqID(r.Context())))
			ctx := common.WithLogger(r.Context(), common.NewSlogLogger(reqLogger))

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Health checks are excluded from logging to reduce noise
			if r.URL.Path == "/healthz" {
				return
			}
			reqLogger.Info("http request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()),
			)
		})
	}
}
