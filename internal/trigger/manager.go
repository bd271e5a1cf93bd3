package trigger

import (
	"sync"
	"time"

	"github.com/okulfonu/destekbot/internal/clock"
)

// Manager holds one detector per session.
type Manager struct {
	mu        sync.Mutex
	detectors map[string]*entry
	factory   func(sessionID string) *Detector
	clock     clock.Clock
	ttl       time.Duration
}

type entry struct {
	detector   *Detector
	lastActive time.Time
}

// NewManager creates a detector registry. factory builds a detector for a new
// session ID.
func NewManager(clk clock.Clock, ttl time.Duration, factory func(sessionID string) *Detector) *Manager {
	return &Manager{
		detectors: make(map[string]*entry),
		factory:   factory,
		clock:     clk,
		ttl:       ttl,
	}
}

// Get returns the session's detector, creating it on first use.
func (m *Manager) Get(sessionID string) *Detector {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.detectors[sessionID]
	if !ok {
		e = &entry{detector: m.factory(sessionID)}
		m.detectors[sessionID] = e
	}
	e.lastActive = m.clock.Now()
	return e.detector
}

// Len returns the number of live detectors.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.detectors)
}

// Sweep drops detectors idle longer than the TTL, stopping their timers, and
// returns how many were removed.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	cutoff := m.clock.Now().Add(-m.ttl)
	var dropped []*Detector
	for id, e := range m.detectors {
		if e.lastActive.Before(cutoff) {
			dropped = append(dropped, e.detector)
			delete(m.detectors, id)
		}
	}
	m.mu.Unlock()

	for _, d := range dropped {
		d.SurfaceOpened()
	}
	return len(dropped)
}
