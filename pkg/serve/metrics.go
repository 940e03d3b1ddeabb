package serve

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "markup").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for render duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "markup",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics records render counts, sizes and durations.
//
// Metrics collected:
//   - markup_renders_total: Counter of renders by route and status
//   - markup_render_bytes_total: Counter of bytes written by route
//   - markup_render_duration_seconds: Histogram of render duration by route
//   - markup_preview_clients: Gauge of connected live preview clients
type Metrics struct {
	rendersTotal   *prometheus.CounterVec
	renderBytes    *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	previewClients prometheus.Gauge
}

// NewMetrics creates and registers the render metrics.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		rendersTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "renders_total",
			Help:        "Total number of documents rendered",
			ConstLabels: config.ConstLabels,
		}, []string{"route", "status"}),

		renderBytes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_bytes_total",
			Help:        "Total number of bytes written while rendering",
			ConstLabels: config.ConstLabels,
		}, []string{"route"}),

		renderDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_duration_seconds",
			Help:        "Render duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"route"}),

		previewClients: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "preview_clients",
			Help:        "Number of connected live preview clients",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// ObserveRender records one render. A nil Metrics records nothing.
func (m *Metrics) ObserveRender(route string, bytes int64, duration time.Duration, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.rendersTotal.WithLabelValues(route, status).Inc()
	m.renderBytes.WithLabelValues(route).Add(float64(bytes))
	m.renderDuration.WithLabelValues(route).Observe(duration.Seconds())
}

func (m *Metrics) setPreviewClients(n int) {
	if m == nil {
		return
	}
	m.previewClients.Set(float64(n))
}
