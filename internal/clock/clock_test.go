package clock

import (
	"testing"
	"time"
)

func TestFakeAdvanceFiresDueTimers(t *testing.T) {
	t.Parallel()

	clk := NewFake(time.Unix(1000, 0))

	var order []string
	clk.AfterFunc(2*time.Second, func() { order = append(order, "second") })
	clk.AfterFunc(1*time.Second, func() { order = append(order, "first") })
	clk.AfterFunc(10*time.Second, func() { order = append(order, "late") })

	clk.Advance(3 * time.Second)

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("unexpected fire order: %v", order)
	}
	if clk.Pending() != 1 {
		t.Errorf("expected 1 pending timer, got %d", clk.Pending())
	}
}

func TestFakeStopPreventsFire(t *testing.T) {
	t.Parallel()

	clk := NewFake(time.Unix(1000, 0))

	fired := false
	timer := clk.AfterFunc(time.Second, func() { fired = true })

	if !timer.Stop() {
		t.Error("first Stop should report true")
	}
	if timer.Stop() {
		t.Error("second Stop should report false")
	}

	clk.Advance(2 * time.Second)
	if fired {
		t.Error("stopped timer must not fire")
	}
}

func TestFakeNowAdvances(t *testing.T) {
	t.Parallel()

	start := time.Unix(1000, 0)
	clk := NewFake(start)
	clk.Advance(90 * time.Second)

	if got := clk.Now(); !got.Equal(start.Add(90 * time.Second)) {
		t.Errorf("Now() = %v, want %v", got, start.Add(90*time.Second))
	}
}
