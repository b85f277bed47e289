package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the server.
type Metrics struct {
	registry *prometheus.Registry

	pageRenders    *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	notFound       prometheus.Counter
	activeDemos    *prometheus.GaugeVec
	demoSessions   *prometheus.CounterVec
	framesSent     prometheus.Counter
	framesDropped  prometheus.Counter
	wsErrors       *prometheus.CounterVec
}

// NewMetrics creates the collectors on a private registry, together with
// the Go runtime and process collectors.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "starbug"
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		pageRenders: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "page_renders_total",
			Help:      "Pages rendered, by route and mode",
		}, []string{"route", "mode"}),

		renderDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "page_render_duration_seconds",
			Help:      "Page render duration in seconds",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1},
		}, []string{"mode"}),

		notFound: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "not_found_total",
			Help:      "Requests for paths outside the route tree",
		}),

		activeDemos: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_demos",
			Help:      "Currently mounted demos",
		}, []string{"demo"}),

		demoSessions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "demo_sessions_total",
			Help:      "Demo session attempts, by demo and outcome",
		}, []string{"demo", "outcome"}),

		framesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "demo_frames_sent_total",
			Help:      "Demo frames written to clients",
		}),

		framesDropped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "demo_frames_dropped_total",
			Help:      "Demo frames dropped because the client was slow",
		}),

		wsErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "websocket_errors_total",
			Help:      "WebSocket errors by type",
		}, []string{"type"}),
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// The record methods are no-ops on a nil *Metrics so call sites need no
// checks.

func (m *Metrics) recordRender(route, mode string, seconds float64) {
	if m == nil {
		return
	}
	m.pageRenders.WithLabelValues(route, mode).Inc()
	m.renderDuration.WithLabelValues(mode).Observe(seconds)
}

func (m *Metrics) recordNotFound() {
	if m == nil {
		return
	}
	m.notFound.Inc()
}

func (m *Metrics) demoMounted(name string) {
	if m == nil {
		return
	}
	m.activeDemos.WithLabelValues(name).Inc()
	m.demoSessions.WithLabelValues(name, "mounted").Inc()
}

func (m *Metrics) demoUnmounted(name string) {
	if m == nil {
		return
	}
	m.activeDemos.WithLabelValues(name).Dec()
}

func (m *Metrics) demoRejected(name, reason string) {
	if m == nil {
		return
	}
	m.demoSessions.WithLabelValues(name, reason).Inc()
}

func (m *Metrics) frameSent() {
	if m == nil {
		return
	}
	m.framesSent.Inc()
}

func (m *Metrics) frameDropped() {
	if m == nil {
		return
	}
	m.framesDropped.Inc()
}

func (m *Metrics) wsError(kind string) {
	if m == nil {
		return
	}
	m.wsErrors.WithLabelValues(kind).Inc()
}
