package ratelimit

import (
	"sync"

	"github.com/okulfonu/destekbot/internal/clock"
)

// SessionLimiter tracks one token bucket per chat session. Buckets that have
// refilled to capacity are dropped by Sweep, so memory stays proportional to
// the number of recently active sessions.
type SessionLimiter struct {
	mu         sync.Mutex
	limiters   map[string]*Limiter
	clk        clock.Clock
	maxTokens  float64
	refillRate float64
}

// NewSessionLimiter creates a per-session rate limiter.
func NewSessionLimiter(clk clock.Clock, maxTokens, refillRate float64) *SessionLimiter {
	return &SessionLimiter{
		limiters:   make(map[string]*Limiter),
		clk:        clk,
		maxTokens:  maxTokens,
		refillRate: refillRate,
	}
}

// Allow consumes one token for the session, creating its bucket on first
// use. An empty session ID is always allowed.
func (s *SessionLimiter) Allow(sessionID string) bool {
	if sessionID == "" {
		return true
	}

	s.mu.Lock()
	limiter, ok := s.limiters[sessionID]
	if !ok {
		limiter = New(s.clk, s.maxTokens, s.refillRate)
		s.limiters[sessionID] = limiter
	}
	s.mu.Unlock()

	return limiter.Allow()
}

// Len returns the number of tracked sessions.
func (s *SessionLimiter) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.limiters)
}

// Sweep drops buckets that have fully refilled and returns how many were
// removed.
func (s *SessionLimiter) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for sessionID, limiter := range s.limiters {
		if limiter.IsFull() {
			delete(s.limiters, sessionID)
			removed++
		}
	}
	return removed
}
