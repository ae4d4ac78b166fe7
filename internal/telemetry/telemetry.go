package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/livewell-ai/livewell/config"
)

// Telemetry tracks pipeline, provider and capability activity via Prometheus.
// A nil *Telemetry is valid and records nothing.
type Telemetry struct {
	registry *prometheus.Registry

	consultations   *prometheus.CounterVec
	stepDuration    *prometheus.HistogramVec
	providerCalls   *prometheus.CounterVec
	capabilityCalls *prometheus.CounterVec
}

// NewTelemetry creates a telemetry instance with its own registry so tests
// and multiple instances never collide on metric registration.
func NewTelemetry(cfg config.TelemetryConfig) *Telemetry {
	if !cfg.Enabled {
		return nil
	}

	reg := prometheus.NewRegistry()
	t := &Telemetry{
		registry: reg,
		consultations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "livewell_consultations_total",
			Help: "Completed consultation runs by outcome.",
		}, []string{"outcome"}),
		stepDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "livewell_step_duration_seconds",
			Help:    "Wall time spent in each pipeline step.",
			Buckets: prometheus.DefBuckets,
		}, []string{"step"}),
		providerCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "livewell_provider_calls_total",
			Help: "Reasoning engine calls by outcome.",
		}, []string{"outcome"}),
		capabilityCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "livewell_capability_invocations_total",
			Help: "Capability invocations by name and outcome.",
		}, []string{"capability", "outcome"}),
	}
	reg.MustRegister(t.consultations, t.stepDuration, t.providerCalls, t.capabilityCalls)
	return t
}

// Handler exposes the metrics endpoint.
func (t *Telemetry) Handler() http.Handler {
	if t == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(t.registry, promhttp.HandlerOpts{})
}

// RecordConsultation counts one finished pipeline run.
func (t *Telemetry) RecordConsultation(success bool) {
	if t == nil {
		return
	}
	t.consultations.WithLabelValues(outcome(success)).Inc()
}

// ObserveStep records the duration of one pipeline step.
func (t *Telemetry) ObserveStep(step string, d time.Duration) {
	if t == nil {
		return
	}
	t.stepDuration.WithLabelValues(step).Observe(d.Seconds())
}

// RecordProviderCall counts one reasoning engine round trip.
func (t *Telemetry) RecordProviderCall(success bool) {
	if t == nil {
		return
	}
	t.providerCalls.WithLabelValues(outcome(success)).Inc()
}

// RecordCapability counts one capability invocation.
func (t *Telemetry) RecordCapability(name string, failed bool) {
	if t == nil {
		return
	}
	t.capabilityCalls.WithLabelValues(name, outcome(!failed)).Inc()
}

func outcome(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
