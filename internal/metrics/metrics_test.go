package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistersMetrics(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	m := New(registry)

	m.RecordChat("message", "success", 0.01)
	m.RecordSearch("match")
	m.RecordIntent("greeting")
	m.RecordTriggerFire("idle")
	m.RecordTriggerSignal("scroll")
	m.RecordCollaborator("recommend", "success", 0.2)
	m.RecordStateStoreFailure("get")
	m.ActiveSessions.Set(2)

	families, err := registry.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ChatRequestsTotal.WithLabelValues("message", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SearchTotal.WithLabelValues("match")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TriggerFiresTotal.WithLabelValues("idle")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ActiveSessions))
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	_ = New(registry)

	assert.Panics(t, func() { _ = New(registry) })
}
