package ratelimit

import (
	"testing"
	"time"

	"github.com/okulfonu/destekbot/internal/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiterBurstThenDeny(t *testing.T) {
	clk := clock.NewFake(time.Unix(1_700_000_000, 0))
	l := New(clk, 3, 1)

	for i := 0; i < 3; i++ {
		require.True(t, l.Allow(), "burst action %d should be allowed", i)
	}
	assert.False(t, l.Allow())
}

func TestLimiterRefillsOverTime(t *testing.T) {
	clk := clock.NewFake(time.Unix(1_700_000_000, 0))
	l := New(clk, 2, 0.5) // one token per two seconds

	require.True(t, l.Allow())
	require.True(t, l.Allow())
	require.False(t, l.Allow())

	clk.Advance(2 * time.Second)
	assert.True(t, l.Allow())
	assert.False(t, l.Allow())
}

func TestLimiterRefillCapsAtMax(t *testing.T) {
	clk := clock.NewFake(time.Unix(1_700_000_000, 0))
	l := New(clk, 2, 1)

	clk.Advance(time.Hour)
	assert.Equal(t, 2.0, l.Available())
	assert.True(t, l.IsFull())
}

func TestLimiterReset(t *testing.T) {
	clk := clock.NewFake(time.Unix(1_700_000_000, 0))
	l := New(clk, 2, 0.1)

	require.True(t, l.Allow())
	require.True(t, l.Allow())
	require.False(t, l.Allow())

	l.Reset()
	assert.True(t, l.Allow())
}

func TestSessionLimiterIsolatesSessions(t *testing.T) {
	clk := clock.NewFake(time.Unix(1_700_000_000, 0))
	s := NewSessionLimiter(clk, 1, 0.1)

	require.True(t, s.Allow("oturum-1"))
	assert.False(t, s.Allow("oturum-1"))
	assert.True(t, s.Allow("oturum-2"))
	assert.Equal(t, 2, s.Len())
}

func TestSessionLimiterAllowsEmptyID(t *testing.T) {
	clk := clock.NewFake(time.Unix(1_700_000_000, 0))
	s := NewSessionLimiter(clk, 1, 0.1)

	for i := 0; i < 10; i++ {
		assert.True(t, s.Allow(""))
	}
	assert.Equal(t, 0, s.Len())
}

func TestSessionLimiterSweepDropsRefilledBuckets(t *testing.T) {
	clk := clock.NewFake(time.Unix(1_700_000_000, 0))
	s := NewSessionLimiter(clk, 2, 1)

	require.True(t, s.Allow("oturum-1"))
	require.Equal(t, 0, s.Sweep(), "a drained bucket must survive the sweep")
	require.Equal(t, 1, s.Len())

	clk.Advance(5 * time.Second)
	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 0, s.Len())
}
