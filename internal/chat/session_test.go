package chat

import (
	"sync"
	"testing"
	"time"

	"github.com/okulfonu/destekbot/internal/clock"
	"github.com/okulfonu/destekbot/internal/logger"
	"github.com/stretchr/testify/assert"
)

func TestSessionManagerCreatesOnFirstUse(t *testing.T) {
	t.Parallel()

	clk := clock.NewFake(time.Unix(1000, 0))
	m := NewSessionManager(clk, time.Hour, logger.New("error"), nil)

	var got *Conversation
	m.Do("s1", func(conv *Conversation) { got = conv })
	assert.NotNil(t, got)
	assert.Equal(t, "s1", got.ID)
	assert.Equal(t, StepWelcome, got.Step)
	assert.Equal(t, 1, m.Len())

	// Same ID yields the same conversation.
	m.Do("s1", func(conv *Conversation) {
		assert.Same(t, got, conv)
	})
	assert.Equal(t, 1, m.Len())
}

func TestSessionManagerSerializesActions(t *testing.T) {
	t.Parallel()

	clk := clock.NewFake(time.Unix(1000, 0))
	m := NewSessionManager(clk, time.Hour, logger.New("error"), nil)

	const workers = 16
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Do("shared", func(*Conversation) {
				counter++ // safe only if Do serializes
			})
		}()
	}
	wg.Wait()
	assert.Equal(t, workers, counter)
}

func TestSweepEvictsIdleSessions(t *testing.T) {
	t.Parallel()

	clk := clock.NewFake(time.Unix(1000, 0))
	m := NewSessionManager(clk, time.Hour, logger.New("error"), nil)

	m.Do("old", func(*Conversation) {})
	clk.Advance(2 * time.Hour)
	m.Do("fresh", func(*Conversation) {})

	assert.Equal(t, 1, m.Sweep())
	assert.Equal(t, 1, m.Len())

	// The fresh session survived and is still the same conversation.
	m.Do("fresh", func(conv *Conversation) {
		assert.Equal(t, "fresh", conv.ID)
	})
}

func TestSweepKeepsActiveSessions(t *testing.T) {
	t.Parallel()

	clk := clock.NewFake(time.Unix(1000, 0))
	m := NewSessionManager(clk, time.Hour, logger.New("error"), nil)

	m.Do("s1", func(*Conversation) {})
	clk.Advance(30 * time.Minute)
	m.Do("s1", func(*Conversation) {}) // touch refreshes the deadline
	clk.Advance(45 * time.Minute)

	assert.Equal(t, 0, m.Sweep())
	assert.Equal(t, 1, m.Len())
}

type fakeGauge struct {
	mu    sync.Mutex
	value float64
}

func (g *fakeGauge) Set(v float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.value = v
}

func (g *fakeGauge) get() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.value
}

func TestSessionGaugeTracksCount(t *testing.T) {
	t.Parallel()

	clk := clock.NewFake(time.Unix(1000, 0))
	gauge := &fakeGauge{}
	m := NewSessionManager(clk, time.Hour, logger.New("error"), gauge)

	m.Do("a", func(*Conversation) {})
	m.Do("b", func(*Conversation) {})
	assert.Equal(t, 2.0, gauge.get())

	clk.Advance(2 * time.Hour)
	m.Sweep()
	assert.Equal(t, 0.0, gauge.get())
}
