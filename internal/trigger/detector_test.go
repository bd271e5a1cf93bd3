package trigger

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/okulfonu/destekbot/internal/clock"
	"github.com/okulfonu/destekbot/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		IdleTimeout:      45 * time.Second,
		ScrollDelta:      300,
		ScrollCount:      5,
		ReturnGraceDelay: 3 * time.Second,
		ReturnMinAway:    time.Hour,
		ReturnMaxAway:    30 * 24 * time.Hour,
	}
}

type fireRecorder struct {
	mu    sync.Mutex
	kinds []Kind
}

func (r *fireRecorder) record(kind Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds = append(r.kinds, kind)
}

func (r *fireRecorder) fired() []Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Kind(nil), r.kinds...)
}

type memoryState struct {
	mu        sync.Mutex
	lastVisit map[string]time.Time
	completed map[string]bool
}

func newMemoryState() *memoryState {
	return &memoryState{
		lastVisit: make(map[string]time.Time),
		completed: make(map[string]bool),
	}
}

func (s *memoryState) LastVisit(_ context.Context, id string) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.lastVisit[id]
	return t, ok
}

func (s *memoryState) SetLastVisit(_ context.Context, id string, t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastVisit[id] = t
}

func (s *memoryState) TargetActionCompleted(_ context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completed[id]
}

func newTestDetector(t *testing.T, clk *clock.Fake, state StateStore) (*Detector, *fireRecorder) {
	t.Helper()
	rec := &fireRecorder{}
	d := NewDetector(Options{
		Config: testConfig(),
		Clock:  clk,
		State:  state,
		Logger: logger.New("error"),
		OnFire: rec.record,
	})
	return d, rec
}

func TestIdleFiresAfterCountdown(t *testing.T) {
	t.Parallel()

	clk := clock.NewFake(time.Unix(1000, 0))
	d, rec := newTestDetector(t, clk, nil)
	d.Activate(context.Background(), "", "home", false)

	clk.Advance(44 * time.Second)
	assert.Empty(t, rec.fired())

	clk.Advance(2 * time.Second)
	assert.Equal(t, []Kind{KindIdle}, rec.fired())
	assert.True(t, d.Fired())
}

func TestInteractionRestartsIdleCountdown(t *testing.T) {
	t.Parallel()

	clk := clock.NewFake(time.Unix(1000, 0))
	d, rec := newTestDetector(t, clk, nil)
	d.Activate(context.Background(), "", "home", false)

	clk.Advance(40 * time.Second)
	d.Observe(Signal{Type: SignalPointer})
	clk.Advance(40 * time.Second)
	assert.Empty(t, rec.fired(), "countdown was restarted")

	clk.Advance(10 * time.Second)
	assert.Equal(t, []Kind{KindIdle}, rec.fired())
}

func TestIdleThenScrollFiresOnlyIdle(t *testing.T) {
	t.Parallel()

	clk := clock.NewFake(time.Unix(1000, 0))
	d, rec := newTestDetector(t, clk, nil)
	d.Activate(context.Background(), "", "home", false)

	clk.Advance(46 * time.Second)
	require.Equal(t, []Kind{KindIdle}, rec.fired())

	for i := 0; i < 10; i++ {
		d.Observe(Signal{Type: SignalScroll, ScrollDelta: 500})
	}
	assert.Equal(t, []Kind{KindIdle}, rec.fired(), "the gate admits one fire per cycle")
}

func TestScrollFiresAfterFiveBigScrolls(t *testing.T) {
	t.Parallel()

	clk := clock.NewFake(time.Unix(1000, 0))
	d, rec := newTestDetector(t, clk, nil)
	d.Activate(context.Background(), "", "campaigns", false)

	for i := 0; i < 4; i++ {
		d.Observe(Signal{Type: SignalScroll, ScrollDelta: 400})
	}
	assert.Empty(t, rec.fired())

	d.Observe(Signal{Type: SignalScroll, ScrollDelta: -350})
	assert.Equal(t, []Kind{KindScroll}, rec.fired())
}

func TestSmallScrollsDoNotAccumulate(t *testing.T) {
	t.Parallel()

	clk := clock.NewFake(time.Unix(1000, 0))
	d, rec := newTestDetector(t, clk, nil)
	d.Activate(context.Background(), "", "campaigns", false)

	// Only magnitudes strictly above the delta count; exactly-at-delta
	// scrolls are ignored like small ones.
	for i := 0; i < 20; i++ {
		d.Observe(Signal{Type: SignalScroll, ScrollDelta: 100})
		d.Observe(Signal{Type: SignalScroll, ScrollDelta: 300})
		d.Observe(Signal{Type: SignalScroll, ScrollDelta: -300})
	}
	assert.Empty(t, rec.fired())

	for i := 0; i < 5; i++ {
		d.Observe(Signal{Type: SignalScroll, ScrollDelta: 301})
	}
	assert.Equal(t, []Kind{KindScroll}, rec.fired())
}

func TestExitFiresOnTopBoundaryWithoutTarget(t *testing.T) {
	t.Parallel()

	clk := clock.NewFake(time.Unix(1000, 0))
	d, rec := newTestDetector(t, clk, nil)
	// Exit has no allow-list: an unlisted location still fires.
	d.Activate(context.Background(), "", "about", false)

	d.Observe(Signal{Type: SignalExit, TopBoundary: true, HasTarget: true})
	assert.Empty(t, rec.fired(), "moving onto another element is not an exit")

	d.Observe(Signal{Type: SignalExit, TopBoundary: false})
	assert.Empty(t, rec.fired())

	d.Observe(Signal{Type: SignalExit, TopBoundary: true})
	assert.Equal(t, []Kind{KindExit}, rec.fired())
}

func TestIdleOnExcludedLocationNeverFires(t *testing.T) {
	t.Parallel()

	clk := clock.NewFake(time.Unix(1000, 0))
	d, rec := newTestDetector(t, clk, nil)
	d.Activate(context.Background(), "", "admin", false)

	clk.Advance(10 * time.Minute)
	d.Observe(Signal{Type: SignalExit, TopBoundary: true})
	assert.Empty(t, rec.fired())
	assert.False(t, d.Fired())
}

func TestIdleOnUnlistedLocationDoesNotFire(t *testing.T) {
	t.Parallel()

	clk := clock.NewFake(time.Unix(1000, 0))
	d, rec := newTestDetector(t, clk, nil)
	d.Activate(context.Background(), "", "about", false)

	clk.Advance(time.Minute)
	assert.Empty(t, rec.fired(), "idle respects the allow-list at expiry")
}

func TestSurfaceOpenDisablesEverything(t *testing.T) {
	t.Parallel()

	clk := clock.NewFake(time.Unix(1000, 0))
	d, rec := newTestDetector(t, clk, nil)
	d.Activate(context.Background(), "", "home", true)

	clk.Advance(time.Minute)
	for i := 0; i < 6; i++ {
		d.Observe(Signal{Type: SignalScroll, ScrollDelta: 500})
	}
	d.Observe(Signal{Type: SignalExit, TopBoundary: true})
	assert.Empty(t, rec.fired())
}

func TestResetReArmsTheGate(t *testing.T) {
	t.Parallel()

	clk := clock.NewFake(time.Unix(1000, 0))
	d, rec := newTestDetector(t, clk, nil)
	d.Activate(context.Background(), "", "home", false)

	clk.Advance(time.Minute)
	require.Equal(t, []Kind{KindIdle}, rec.fired())

	d.Reset()
	assert.False(t, d.Fired())

	clk.Advance(time.Minute)
	assert.Equal(t, []Kind{KindIdle, KindIdle}, rec.fired(), "a new cycle can fire again")
}

func TestResetClearsScrollCount(t *testing.T) {
	t.Parallel()

	clk := clock.NewFake(time.Unix(1000, 0))
	d, rec := newTestDetector(t, clk, nil)
	d.Activate(context.Background(), "", "home", false)

	for i := 0; i < 4; i++ {
		d.Observe(Signal{Type: SignalScroll, ScrollDelta: 400})
	}
	d.Reset()

	d.Observe(Signal{Type: SignalScroll, ScrollDelta: 400})
	assert.Empty(t, rec.fired(), "counter starts over after reset")
}

func TestReturningVisitorFiresAfterGrace(t *testing.T) {
	t.Parallel()

	start := time.Unix(1_700_000_000, 0)
	clk := clock.NewFake(start)
	state := newMemoryState()
	state.SetLastVisit(context.Background(), "v1", start.Add(-2*time.Hour))

	d, rec := newTestDetector(t, clk, state)
	d.Activate(context.Background(), "v1", "home", false)

	assert.Empty(t, rec.fired(), "grace period has not elapsed")
	clk.Advance(4 * time.Second)
	assert.Equal(t, []Kind{KindReturn}, rec.fired())

	// The timestamp was overwritten with activation time.
	got, ok := state.LastVisit(context.Background(), "v1")
	require.True(t, ok)
	assert.True(t, got.Equal(start))
}

func TestReturningVisitorOutsideWindowDoesNotFire(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		away time.Duration
	}{
		{"too recent", 30 * time.Minute},
		{"too long ago", 40 * 24 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			start := time.Unix(1_700_000_000, 0)
			clk := clock.NewFake(start)
			state := newMemoryState()
			state.SetLastVisit(context.Background(), "v1", start.Add(-tt.away))

			d, rec := newTestDetector(t, clk, state)
			d.Activate(context.Background(), "v1", "home", false)
			clk.Advance(10 * time.Second)

			assert.Empty(t, rec.fired())

			// Timestamp is overwritten even when the window check failed.
			got, ok := state.LastVisit(context.Background(), "v1")
			require.True(t, ok)
			assert.True(t, got.Equal(start))
		})
	}
}

func TestReturningVisitorSkippedAfterTargetAction(t *testing.T) {
	t.Parallel()

	start := time.Unix(1_700_000_000, 0)
	clk := clock.NewFake(start)
	state := newMemoryState()
	state.SetLastVisit(context.Background(), "v1", start.Add(-2*time.Hour))
	state.completed["v1"] = true

	d, rec := newTestDetector(t, clk, state)
	d.Activate(context.Background(), "v1", "home", false)
	clk.Advance(10 * time.Second)

	assert.Empty(t, rec.fired())
}

func TestFirstVisitOnlyRecordsTimestamp(t *testing.T) {
	t.Parallel()

	start := time.Unix(1_700_000_000, 0)
	clk := clock.NewFake(start)
	state := newMemoryState()

	d, rec := newTestDetector(t, clk, state)
	d.Activate(context.Background(), "v1", "home", false)
	clk.Advance(10 * time.Second)

	assert.Empty(t, rec.fired())
	got, ok := state.LastVisit(context.Background(), "v1")
	require.True(t, ok)
	assert.True(t, got.Equal(start))
}

func TestNavigatingToExcludedLocationDisables(t *testing.T) {
	t.Parallel()

	clk := clock.NewFake(time.Unix(1000, 0))
	d, rec := newTestDetector(t, clk, nil)
	d.Activate(context.Background(), "", "home", false)

	d.Observe(Signal{Type: SignalLocation, Location: "admin"})
	clk.Advance(time.Minute)
	d.Observe(Signal{Type: SignalExit, TopBoundary: true})

	assert.Empty(t, rec.fired())
}

func TestManagerGetAndSweep(t *testing.T) {
	t.Parallel()

	clk := clock.NewFake(time.Unix(1000, 0))
	m := NewManager(clk, time.Hour, func(string) *Detector {
		d, _ := newTestDetector(t, clk, nil)
		return d
	})

	d1 := m.Get("s1")
	assert.Same(t, d1, m.Get("s1"))
	assert.Equal(t, 1, m.Len())

	clk.Advance(2 * time.Hour)
	m.Get("s2")
	assert.Equal(t, 1, m.Sweep())
	assert.Equal(t, 1, m.Len())
}
