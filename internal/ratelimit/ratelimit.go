// Package ratelimit provides token bucket rate limiting for chat sessions.
//
// A session gets a small burst of actions and then refills slowly. That is
// plenty for a person tapping quick replies, while a runaway client cannot
// hammer the recommendation service through the chat endpoint.
package ratelimit

import (
	"sync"
	"time"

	"github.com/okulfonu/destekbot/internal/clock"
)

// Limiter is a single token bucket. Each allowed action consumes one token
// and tokens refill continuously at a fixed rate.
type Limiter struct {
	mu         sync.Mutex
	clk        clock.Clock
	tokens     float64
	maxTokens  float64
	refillRate float64 // tokens per second
	lastRefill time.Time
}

// New creates a token bucket that starts full.
func New(clk clock.Clock, maxTokens, refillRate float64) *Limiter {
	return &Limiter{
		clk:        clk,
		tokens:     maxTokens,
		maxTokens:  maxTokens,
		refillRate: refillRate,
		lastRefill: clk.Now(),
	}
}

// refill credits tokens for the time elapsed since the last refill.
// Caller must hold mu.
func (l *Limiter) refill() {
	now := l.clk.Now()
	elapsed := now.Sub(l.lastRefill).Seconds()
	if elapsed <= 0 {
		return
	}
	l.tokens = min(l.maxTokens, l.tokens+elapsed*l.refillRate)
	l.lastRefill = now
}

// Allow consumes one token if available. Returns false when the bucket is
// empty.
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.refill()
	if l.tokens < 1 {
		return false
	}
	l.tokens--
	return true
}

// Available returns the current token count.
func (l *Limiter) Available() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.refill()
	return l.tokens
}

// IsFull reports whether the bucket has refilled to capacity, meaning the
// session has been quiet long enough to forget.
func (l *Limiter) IsFull() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.refill()
	return l.tokens >= l.maxTokens
}

// Reset refills the bucket to capacity.
func (l *Limiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.tokens = l.maxTokens
	l.lastRefill = l.clk.Now()
}
