package serve

import (
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/markup/internal/errors"
	"github.com/vango-dev/markup/internal/logging"
	"github.com/vango-dev/markup/pkg/element"
)

// ContentType is sent with every rendered document.
const ContentType = "text/html; charset=utf-8"

// DefaultTracerName is the tracer used when no tracer is configured.
const DefaultTracerName = "markup"

// DefaultFlushThreshold is the number of bytes written between flushes.
const DefaultFlushThreshold = 4096

// Options configures a handler.
type Options struct {
	// Route labels metrics and spans (default: "/").
	Route string

	// FlushThreshold is the number of bytes between response flushes.
	// Zero uses DefaultFlushThreshold; a negative value flushes only at
	// the end.
	FlushThreshold int

	// Metrics records render metrics when set.
	Metrics *Metrics

	// Tracer creates render spans (default: otel.Tracer(DefaultTracerName)).
	Tracer trace.Tracer

	// Logger logs render failures (default: slog.Default()).
	Logger *slog.Logger
}

// Option configures a handler.
type Option func(*Options)

// WithRoute sets the route label.
func WithRoute(route string) Option {
	return func(o *Options) {
		o.Route = route
	}
}

// WithFlushThreshold sets the flush threshold.
func WithFlushThreshold(n int) Option {
	return func(o *Options) {
		o.FlushThreshold = n
	}
}

// WithMetrics enables render metrics.
func WithMetrics(m *Metrics) Option {
	return func(o *Options) {
		o.Metrics = m
	}
}

// WithTracer sets the tracer.
func WithTracer(t trace.Tracer) Option {
	return func(o *Options) {
		o.Tracer = t
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

func buildOptions(opts []Option) Options {
	o := Options{Route: "/"}
	for _, opt := range opts {
		opt(&o)
	}
	if o.FlushThreshold == 0 {
		o.FlushThreshold = DefaultFlushThreshold
	}
	if o.Tracer == nil {
		o.Tracer = otel.Tracer(DefaultTracerName)
	}
	o.Logger = logging.OrDefault(o.Logger)
	return o
}

type handler struct {
	source func() element.Element
	opts   Options
}

// Handler returns an http.Handler that renders el on every request.
func Handler(el element.Element, opts ...Option) http.Handler {
	return &handler{
		source: func() element.Element { return el },
		opts:   buildOptions(opts),
	}
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	route := h.opts.Route
	ctx, span := h.opts.Tracer.Start(r.Context(), "markup.render",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(attribute.String("http.route", route)),
	)
	defer span.End()

	w.Header().Set("Content-Type", ContentType)
	sw := newStreamWriter(w, h.opts.FlushThreshold)

	start := time.Now()
	err := h.source().Render(sw)
	sw.flush()
	duration := time.Since(start)

	span.SetAttributes(attribute.Int64("markup.bytes", sw.written))
	h.opts.Metrics.ObserveRender(route, sw.written, duration, err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		h.opts.Logger.ErrorContext(ctx, "render failed",
			"route", route,
			"bytes", sw.written,
			"error", errors.New("E010").Wrap(err).FormatCompact(),
		)
		if sw.written == 0 {
			http.Error(w, "render failed", http.StatusInternalServerError)
		}
		return
	}

	span.SetStatus(codes.Ok, "")
	h.opts.Logger.DebugContext(ctx, "rendered", "route", route, "bytes", sw.written, "duration", duration)
}
