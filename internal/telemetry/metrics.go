// Package telemetry records toolbox activity as Prometheus metrics and
// OpenTelemetry spans.
package telemetry

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "toolbox"

// Config configures a Recorder.
type Config struct {
	// Namespace is the metrics namespace (default: "toolbox").
	Namespace string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry receives the collectors. Default: a fresh registry, so
	// several recorders can coexist in one process.
	Registry *prometheus.Registry

	// TracerName names the tracer. Empty disables tracing.
	TracerName string
}

// Option configures a Recorder.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(ns string) Option {
	return func(c *Config) { c.Namespace = ns }
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(l prometheus.Labels) Option {
	return func(c *Config) { c.ConstLabels = l }
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(r *prometheus.Registry) Option {
	return func(c *Config) { c.Registry = r }
}

// WithTracer enables spans from the global tracer provider under name.
func WithTracer(name string) Option {
	return func(c *Config) { c.TracerName = name }
}

// Recorder holds the toolbox metrics and tracer. A nil *Recorder records
// nothing, so callers never need to check.
type Recorder struct {
	registry *prometheus.Registry
	tracer   trace.Tracer

	busDispatches       *prometheus.CounterVec
	storeChanges        *prometheus.CounterVec
	componentsAttached  *prometheus.CounterVec
	componentsDestroyed *prometheus.CounterVec
	shares              *prometheus.CounterVec
	httpRequests        *prometheus.CounterVec
}

// New registers the toolbox collectors.
func New(opts ...Option) *Recorder {
	cfg := Config{Namespace: DefaultNamespace}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.NewRegistry()
	}

	factory := promauto.With(cfg.Registry)
	counter := func(name, help string, labels ...string) *prometheus.CounterVec {
		return factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Name:        name,
			Help:        help,
			ConstLabels: cfg.ConstLabels,
		}, labels)
	}

	r := &Recorder{
		registry:            cfg.Registry,
		tracer:              noop.NewTracerProvider().Tracer(""),
		busDispatches:       counter("bus_dispatches_total", "Dispatches that reached at least one subscriber, by event type", "type"),
		storeChanges:        counter("store_changes_total", "Effective store changes, by key", "key"),
		componentsAttached:  counter("components_attached_total", "Component instances attached, by instance key", "key"),
		componentsDestroyed: counter("components_destroyed_total", "Component instances destroyed, by outcome", "status"),
		shares:              counter("shares_total", "Share links opened, by target", "target"),
		httpRequests:        counter("http_requests_total", "HTTP requests served, by route and status class", "route", "status"),
	}
	if cfg.TracerName != "" {
		r.tracer = otel.Tracer(cfg.TracerName)
	}
	return r
}

// Registry returns the registry the collectors live in.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// BusDispatch counts a dispatch of eventType.
func (r *Recorder) BusDispatch(eventType string, delivered int) {
	if r == nil || delivered == 0 {
		return
	}
	r.busDispatches.WithLabelValues(eventType).Inc()
}

// StoreChange counts an effective change of key.
func (r *Recorder) StoreChange(key string) {
	if r == nil {
		return
	}
	r.storeChanges.WithLabelValues(key).Inc()
}

// ComponentAttached counts an attached instance.
func (r *Recorder) ComponentAttached(key string) {
	if r == nil {
		return
	}
	r.componentsAttached.WithLabelValues(key).Inc()
}

// ComponentDestroyed counts a teardown; failed teardowns are labeled
// "error".
func (r *Recorder) ComponentDestroyed(err error) {
	if r == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	r.componentsDestroyed.WithLabelValues(status).Inc()
}

// Share counts an opened share link.
func (r *Recorder) Share(target string) {
	if r == nil {
		return
	}
	r.shares.WithLabelValues(target).Inc()
}

// HTTPRequest counts a served request. status is the response code.
func (r *Recorder) HTTPRequest(route string, status int) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(route, statusClass(status)).Inc()
}

func statusClass(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}

// StartSpan starts an internal span named name.
func (r *Recorder) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if r == nil {
		// Non-recording; ending it must not end a span already in ctx.
		return ctx, trace.SpanFromContext(context.Background())
	}
	return r.tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

// EndSpan records err on span, if any, and ends it.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
