package serve

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/markup/internal/logging"
)

// RouterConfig configures NewRouter.
type RouterConfig struct {
	// Preview serves the document at "/" and owns the WebSocket endpoint.
	Preview *Preview

	// PreviewPath is the WebSocket endpoint (default: "/_markup/preview").
	PreviewPath string

	// MetricsPath exposes Prometheus metrics (default: "/metrics").
	// Set to "-" to disable.
	MetricsPath string

	// Gatherer is the metrics source (default: prometheus.DefaultGatherer).
	Gatherer prometheus.Gatherer

	// Logger logs each request (default: slog.Default()).
	Logger *slog.Logger
}

// NewRouter mounts the preview document, the preview WebSocket and the
// metrics endpoint on a chi router.
func NewRouter(cfg RouterConfig) chi.Router {
	if cfg.PreviewPath == "" {
		cfg.PreviewPath = "/_markup/preview"
	}
	if cfg.MetricsPath == "" {
		cfg.MetricsPath = "/metrics"
	}
	if cfg.Gatherer == nil {
		cfg.Gatherer = prometheus.DefaultGatherer
	}
	logger := logging.OrDefault(cfg.Logger)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get(cfg.PreviewPath, cfg.Preview.HandleWebSocket)
	if cfg.MetricsPath != "-" {
		r.Method(http.MethodGet, cfg.MetricsPath, promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}
	r.Method(http.MethodGet, "/", cfg.Preview)
	r.Method(http.MethodHead, "/", cfg.Preview)

	return r
}

// requestLogger logs method, path, status and duration for each request.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.DebugContext(r.Context(), "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
			)
		})
	}
}
