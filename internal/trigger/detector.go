// Package trigger implements the engagement trigger detector: four passive
// observers that decide when to proactively open the assistant surface. The
// observers share a single fire-once gate per arming cycle, so whichever
// condition is met first wins and everything later is a no-op until an
// explicit reset.
package trigger

import (
	"context"
	"sync"
	"time"

	"github.com/okulfonu/destekbot/internal/clock"
	"github.com/okulfonu/destekbot/internal/logger"
)

// Kind names the observer that fired.
type Kind string

// The observer kinds.
const (
	KindIdle   Kind = "idle"
	KindScroll Kind = "scroll"
	KindExit   Kind = "exit"
	KindReturn Kind = "return"
)

// SignalType classifies a passive client signal.
type SignalType string

// The signal types accepted by Observe.
const (
	SignalPointer  SignalType = "pointer"
	SignalKey      SignalType = "key"
	SignalScroll   SignalType = "scroll"
	SignalTouch    SignalType = "touch"
	SignalClick    SignalType = "click"
	SignalExit     SignalType = "exit"
	SignalLocation SignalType = "location"
)

// Signal is one passive event reported by the client.
type Signal struct {
	Type SignalType `json:"type"`
	// Location is the current page, sent with location signals.
	Location string `json:"location,omitempty"`
	// ScrollDelta is the scroll magnitude, sent with scroll signals.
	ScrollDelta int `json:"scroll_delta,omitempty"`
	// TopBoundary marks an exit signal crossing the top edge.
	TopBoundary bool `json:"top_boundary,omitempty"`
	// HasTarget marks an exit signal that moved onto another element.
	HasTarget bool `json:"has_target,omitempty"`
}

// interactionSignals restart the idle countdown.
var interactionSignals = map[SignalType]struct{}{
	SignalPointer: {},
	SignalKey:     {},
	SignalScroll:  {},
	SignalTouch:   {},
	SignalClick:   {},
}

// allowedLocations gates the idle and scroll observers. The exit observer is
// deliberately unrestricted.
var allowedLocations = map[string]struct{}{
	"home":      {},
	"campaigns": {},
	"campaign":  {},
	"students":  {},
	"student":   {},
}

// excludedLocations disable the whole detector: administrative and
// onboarding areas where a proactive assistant would be in the way.
var excludedLocations = map[string]struct{}{
	"admin":      {},
	"onboarding": {},
	"settings":   {},
	"checkout":   {},
}

func locationAllowed(location string) bool {
	_, ok := allowedLocations[location]
	return ok
}

// LocationExcluded reports whether the detector must stay disabled on the
// given location.
func LocationExcluded(location string) bool {
	_, ok := excludedLocations[location]
	return ok
}

// StateStore is the persisted per-visitor state the returning-visitor
// observer consults. All methods are failure-tolerant by contract: a broken
// store behaves like an empty one.
type StateStore interface {
	LastVisit(ctx context.Context, visitorID string) (time.Time, bool)
	SetLastVisit(ctx context.Context, visitorID string, t time.Time)
	TargetActionCompleted(ctx context.Context, visitorID string) bool
}

// MetricsRecorder counts signals and fires.
type MetricsRecorder interface {
	RecordTriggerSignal(kind string)
	RecordTriggerFire(kind string)
}

// Config tunes the observers.
type Config struct {
	IdleTimeout      time.Duration
	ScrollDelta      int
	ScrollCount      int
	ReturnGraceDelay time.Duration
	ReturnMinAway    time.Duration
	ReturnMaxAway    time.Duration
}

// Options wires a detector. Metrics may be nil; State may be nil when no
// visitor identity exists.
type Options struct {
	Config  Config
	Clock   clock.Clock
	State   StateStore
	Logger  *logger.Logger
	Metrics MetricsRecorder
	// OnFire is invoked exactly once per arming cycle, outside the detector
	// lock.
	OnFire func(kind Kind)
}

// Detector owns the gate and the four observers for one session.
type Detector struct {
	mu sync.Mutex

	cfg     Config
	clock   clock.Clock
	state   StateStore
	logger  *logger.Logger
	metrics MetricsRecorder
	onFire  func(kind Kind)

	activated   bool
	disabled    bool
	fired       bool
	location    string
	scrollCount int
	idleTimer   clock.Timer
	returnTimer clock.Timer
}

// NewDetector creates an inactive detector. Nothing observes until Activate.
func NewDetector(opts Options) *Detector {
	return &Detector{
		cfg:     opts.Config,
		clock:   opts.Clock,
		state:   opts.State,
		logger:  opts.Logger.WithModule("trigger"),
		metrics: opts.Metrics,
		onFire:  opts.OnFire,
	}
}

// Activate attaches the observers. When the location is excluded or the
// assistant surface is already open the detector stays disabled and no
// observer attaches, including the returning-visitor check.
func (d *Detector) Activate(ctx context.Context, visitorID, location string, surfaceOpen bool) {
	d.mu.Lock()
	d.activated = true
	d.location = location
	d.disabled = surfaceOpen || LocationExcluded(location)
	if d.disabled {
		d.stopTimersLocked()
		d.mu.Unlock()
		return
	}
	d.restartIdleLocked()
	d.mu.Unlock()

	d.checkReturningVisitor(ctx, visitorID)
}

// checkReturningVisitor schedules a delayed return fire when the visitor was
// away for more than the minimum and less than the maximum window and never
// completed the target action. The last-visit timestamp is overwritten with
// now regardless of whether the window condition held.
func (d *Detector) checkReturningVisitor(ctx context.Context, visitorID string) {
	if d.state == nil || visitorID == "" {
		return
	}

	now := d.clock.Now()
	last, ok := d.state.LastVisit(ctx, visitorID)
	if ok {
		elapsed := now.Sub(last)
		if elapsed > d.cfg.ReturnMinAway && elapsed < d.cfg.ReturnMaxAway &&
			!d.state.TargetActionCompleted(ctx, visitorID) {
			d.mu.Lock()
			if d.returnTimer != nil {
				d.returnTimer.Stop()
			}
			d.returnTimer = d.clock.AfterFunc(d.cfg.ReturnGraceDelay, func() {
				d.fire(KindReturn)
			})
			d.mu.Unlock()
		}
	}

	d.state.SetLastVisit(ctx, visitorID, now)
}

// Observe feeds one passive signal to the observers.
func (d *Detector) Observe(sig Signal) {
	if d.metrics != nil {
		d.metrics.RecordTriggerSignal(string(sig.Type))
	}

	d.mu.Lock()

	if sig.Type == SignalLocation {
		d.location = sig.Location
		if LocationExcluded(sig.Location) {
			d.disabled = true
			d.stopTimersLocked()
		}
	}

	if d.disabled || !d.activated {
		d.mu.Unlock()
		return
	}

	if _, ok := interactionSignals[sig.Type]; ok {
		d.restartIdleLocked()
	}

	var toFire Kind
	switch sig.Type {
	case SignalScroll:
		if abs(sig.ScrollDelta) > d.cfg.ScrollDelta {
			d.scrollCount++
			if d.scrollCount >= d.cfg.ScrollCount && locationAllowed(d.location) {
				toFire = KindScroll
			}
		}
	case SignalExit:
		if sig.TopBoundary && !sig.HasTarget {
			toFire = KindExit
		}
	}
	d.mu.Unlock()

	if toFire != "" {
		d.fire(toFire)
	}
}

// SurfaceOpened disables the detector: once the assistant is visible there is
// nothing left to trigger.
func (d *Detector) SurfaceOpened() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.disabled = true
	d.stopTimersLocked()
}

// Reset re-arms the gate and clears the accumulation counters. The idle
// countdown restarts unless the detector is disabled.
func (d *Detector) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fired = false
	d.scrollCount = 0
	d.stopTimersLocked()
	if d.activated && !d.disabled {
		d.restartIdleLocked()
	}
}

// Fired reports whether the gate has been consumed in this arming cycle.
func (d *Detector) Fired() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fired
}

// fire consumes the gate. Losers no-op; the winner's handler runs outside the
// lock.
func (d *Detector) fire(kind Kind) {
	d.mu.Lock()
	if d.fired || d.disabled {
		d.mu.Unlock()
		return
	}
	d.fired = true
	d.stopTimersLocked()
	d.mu.Unlock()

	d.logger.WithField("kind", string(kind)).Info("Engagement trigger fired")
	if d.metrics != nil {
		d.metrics.RecordTriggerFire(string(kind))
	}
	if d.onFire != nil {
		d.onFire(kind)
	}
}

func (d *Detector) restartIdleLocked() {
	if d.idleTimer != nil {
		d.idleTimer.Stop()
	}
	d.idleTimer = d.clock.AfterFunc(d.cfg.IdleTimeout, func() {
		d.mu.Lock()
		allowed := locationAllowed(d.location)
		d.mu.Unlock()
		if allowed {
			d.fire(KindIdle)
		}
	})
}

func (d *Detector) stopTimersLocked() {
	if d.idleTimer != nil {
		d.idleTimer.Stop()
		d.idleTimer = nil
	}
	if d.returnTimer != nil {
		d.returnTimer.Stop()
		d.returnTimer = nil
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
