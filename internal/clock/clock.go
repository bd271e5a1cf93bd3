// Package clock abstracts wall time and delayed execution so components that
// schedule follow-up work (delayed prompts, grace periods, idle countdowns)
// can be tested without sleeping.
package clock

import "time"

// Timer is a cancellable scheduled call.
type Timer interface {
	// Stop cancels the timer. It reports whether the call was prevented.
	Stop() bool
}

// Clock provides the current time and delayed execution.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// New returns the system clock.
func New() Clock {
	return systemClock{}
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
