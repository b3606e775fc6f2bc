package calendar

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors updated by Calendar and App. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	framesRendered prometheus.Counter
	eventsLaidOut  prometheus.Counter
	eventsCulled   prometheus.Counter
	viewSwitches   *prometheus.CounterVec
	widgetClicks   *prometheus.CounterVec
	renderDuration prometheus.Histogram
}

// MetricsOption configures NewMetrics.
type MetricsOption func(*metricsOptions)

type metricsOptions struct {
	namespace string
	subsystem string
	buckets   []float64
}

// WithMetricsNamespace sets the metric namespace. Default "calendar".
func WithMetricsNamespace(ns string) MetricsOption {
	return func(o *metricsOptions) {
		if ns != "" {
			o.namespace = ns
		}
	}
}

// WithMetricsSubsystem sets the metric subsystem. Default "canvas".
func WithMetricsSubsystem(sub string) MetricsOption {
	return func(o *metricsOptions) {
		if sub != "" {
			o.subsystem = sub
		}
	}
}

// WithRenderBuckets sets the render duration histogram buckets in seconds.
func WithRenderBuckets(buckets []float64) MetricsOption {
	return func(o *metricsOptions) {
		if len(buckets) > 0 {
			o.buckets = buckets
		}
	}
}

// NewMetrics creates and registers the collectors on reg. A nil reg uses
// prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer, opts ...MetricsOption) *Metrics {
	o := metricsOptions{
		namespace: "calendar",
		subsystem: "canvas",
		buckets:   []float64{0.0005, 0.001, 0.002, 0.004, 0.008, 0.016, 0.033, 0.066},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	auto := promauto.With(reg)

	return &Metrics{
		framesRendered: auto.NewCounter(prometheus.CounterOpts{
			Namespace: o.namespace,
			Subsystem: o.subsystem,
			Name:      "frames_rendered_total",
			Help:      "Total number of calendar frames rendered",
		}),
		eventsLaidOut: auto.NewCounter(prometheus.CounterOpts{
			Namespace: o.namespace,
			Subsystem: o.subsystem,
			Name:      "events_laid_out_total",
			Help:      "Total number of event rectangles produced by layout",
		}),
		eventsCulled: auto.NewCounter(prometheus.CounterOpts{
			Namespace: o.namespace,
			Subsystem: o.subsystem,
			Name:      "events_culled_total",
			Help:      "Total number of events dropped for being under the visibility floor",
		}),
		viewSwitches: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Subsystem: o.subsystem,
			Name:      "view_switches_total",
			Help:      "Total number of view switches by resulting view",
		}, []string{"view"}),
		widgetClicks: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Subsystem: o.subsystem,
			Name:      "widget_clicks_total",
			Help:      "Total number of clicks consumed by widgets",
		}, []string{"widget"}),
		renderDuration: auto.NewHistogram(prometheus.HistogramOpts{
			Namespace: o.namespace,
			Subsystem: o.subsystem,
			Name:      "render_duration_seconds",
			Help:      "Time spent rendering one calendar frame",
			Buckets:   o.buckets,
		}),
	}
}

func (m *Metrics) observeLayout(in, out int) {
	if m == nil {
		return
	}
	m.eventsLaidOut.Add(float64(out))
	if in > out {
		m.eventsCulled.Add(float64(in - out))
	}
}

func (m *Metrics) observeRender(d time.Duration) {
	if m == nil {
		return
	}
	m.framesRendered.Inc()
	m.renderDuration.Observe(d.Seconds())
}

func (m *Metrics) viewSwitched(view string) {
	if m == nil {
		return
	}
	m.viewSwitches.WithLabelValues(view).Inc()
}

func (m *Metrics) widgetClicked(id string) {
	if m == nil {
		return
	}
	m.widgetClicks.WithLabelValues(id).Inc()
}
