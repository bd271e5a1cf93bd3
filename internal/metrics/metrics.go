// Package metrics defines the Prometheus metrics exposed by the assistant
// service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// Chat metrics
	ChatRequestsTotal   *prometheus.CounterVec
	ChatDurationSeconds *prometheus.HistogramVec

	// Knowledge search metrics
	SearchTotal *prometheus.CounterVec

	// Intent metrics
	IntentTotal *prometheus.CounterVec

	// Trigger metrics
	TriggerFiresTotal   *prometheus.CounterVec
	TriggerSignalsTotal *prometheus.CounterVec

	// Collaborator metrics
	CollaboratorRequestsTotal   *prometheus.CounterVec
	CollaboratorDurationSeconds *prometheus.HistogramVec

	// Client-state store metrics
	StateStoreFailuresTotal *prometheus.CounterVec

	// Session metrics
	ActiveSessions prometheus.Gauge
}

// New creates a Metrics instance with all metrics registered on the given
// registry.
func New(registry *prometheus.Registry) *Metrics {
	return &Metrics{
		ChatRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "destekbot_chat_requests_total",
				Help: "Total chat actions processed by kind and status",
			},
			[]string{"kind", "status"}, // kind: message, command, reset; status: success, error
		),

		ChatDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "destekbot_chat_duration_seconds",
				Help:    "Chat action processing duration in seconds by kind",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
			},
			[]string{"kind"},
		),

		SearchTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "destekbot_knowledge_search_total",
				Help: "Total knowledge searches by outcome",
			},
			[]string{"outcome"}, // outcome: match, no_match, empty_query
		),

		IntentTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "destekbot_intent_total",
				Help: "Total classified intents by intent name",
			},
			[]string{"intent"},
		),

		TriggerFiresTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "destekbot_trigger_fires_total",
				Help: "Total engagement trigger fires by trigger kind",
			},
			[]string{"kind"}, // kind: idle, scroll, exit, return
		),

		TriggerSignalsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "destekbot_trigger_signals_total",
				Help: "Total passive signals observed by signal kind",
			},
			[]string{"kind"},
		),

		CollaboratorRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "destekbot_collaborator_requests_total",
				Help: "Total collaborator calls by service and status",
			},
			[]string{"service", "status"}, // service: recommend, occasion; status: success, empty, error
		),

		CollaboratorDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "destekbot_collaborator_duration_seconds",
				Help:    "Collaborator call duration in seconds by service",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"service"},
		),

		StateStoreFailuresTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "destekbot_state_store_failures_total",
				Help: "Total client-state store failures by operation",
			},
			[]string{"operation"}, // operation: get, set
		),

		ActiveSessions: promauto.With(registry).NewGauge(
			prometheus.GaugeOpts{
				Name: "destekbot_active_sessions",
				Help: "Number of conversation sessions currently held in memory",
			},
		),
	}
}

// RecordChat records one processed chat action.
func (m *Metrics) RecordChat(kind, status string, seconds float64) {
	m.ChatRequestsTotal.WithLabelValues(kind, status).Inc()
	m.ChatDurationSeconds.WithLabelValues(kind).Observe(seconds)
}

// RecordSearch records one knowledge search outcome.
func (m *Metrics) RecordSearch(outcome string) {
	m.SearchTotal.WithLabelValues(outcome).Inc()
}

// RecordIntent records one classified intent.
func (m *Metrics) RecordIntent(intent string) {
	m.IntentTotal.WithLabelValues(intent).Inc()
}

// RecordTriggerFire records one trigger fire.
func (m *Metrics) RecordTriggerFire(kind string) {
	m.TriggerFiresTotal.WithLabelValues(kind).Inc()
}

// RecordTriggerSignal records one observed passive signal.
func (m *Metrics) RecordTriggerSignal(kind string) {
	m.TriggerSignalsTotal.WithLabelValues(kind).Inc()
}

// RecordCollaborator records one collaborator call.
func (m *Metrics) RecordCollaborator(service, status string, seconds float64) {
	m.CollaboratorRequestsTotal.WithLabelValues(service, status).Inc()
	m.CollaboratorDurationSeconds.WithLabelValues(service).Observe(seconds)
}

// RecordStateStoreFailure records one client-state store failure.
func (m *Metrics) RecordStateStoreFailure(operation string) {
	m.StateStoreFailuresTotal.WithLabelValues(operation).Inc()
}
