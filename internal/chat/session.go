package chat

import (
	"context"
	"sync"
	"time"

	"github.com/okulfonu/destekbot/internal/clock"
	"github.com/okulfonu/destekbot/internal/logger"
)

// ActiveGauge reports the current session count. Satisfied by a prometheus
// gauge.
type ActiveGauge interface {
	Set(float64)
}

type session struct {
	mu         sync.Mutex
	conv       *Conversation
	lastActive time.Time // guarded by the manager mutex, not the session mutex
}

// SessionManager holds the in-memory conversations, keyed by session ID.
// Each session processes one action at a time under its own mutex; idle
// sessions are evicted by the janitor after the TTL.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*session

	clock  clock.Clock
	ttl    time.Duration
	logger *logger.Logger
	gauge  ActiveGauge
}

// NewSessionManager creates the session manager. gauge may be nil.
func NewSessionManager(clk clock.Clock, ttl time.Duration, log *logger.Logger, gauge ActiveGauge) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*session),
		clock:    clk,
		ttl:      ttl,
		logger:   log.WithModule("session"),
		gauge:    gauge,
	}
}

// Do runs fn with exclusive access to the session's conversation, creating
// the session on first use.
func (m *SessionManager) Do(sessionID string, fn func(conv *Conversation)) {
	m.mu.Lock()
	s, ok := m.sessions[sessionID]
	if !ok {
		s = &session{conv: NewConversation(sessionID)}
		m.sessions[sessionID] = s
		m.updateGauge()
	}
	s.lastActive = m.clock.Now()
	m.mu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.conv)
}

// Len returns the number of live sessions.
func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep evicts sessions idle longer than the TTL and returns how many were
// removed. Pending delayed messages of evicted sessions are cancelled.
func (m *SessionManager) Sweep() int {
	m.mu.Lock()
	cutoff := m.clock.Now().Add(-m.ttl)
	var evicted []*session
	for id, s := range m.sessions {
		if s.lastActive.Before(cutoff) {
			evicted = append(evicted, s)
			delete(m.sessions, id)
		}
	}
	m.updateGauge()
	m.mu.Unlock()

	for _, s := range evicted {
		s.conv.cancelDelayed()
	}
	if len(evicted) > 0 {
		m.logger.WithField("count", len(evicted)).Debug("Evicted idle sessions")
	}
	return len(evicted)
}

// RunJanitor sweeps periodically until the context is cancelled.
func (m *SessionManager) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}

func (m *SessionManager) updateGauge() {
	if m.gauge != nil {
		m.gauge.Set(float64(len(m.sessions)))
	}
}
