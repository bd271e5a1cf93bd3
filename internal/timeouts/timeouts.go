// Package timeouts provides centralized timeout constants for the application.
//
// The assistant is a short-request service: every endpoint answers from
// in-memory state plus at most one collaborator call, so the HTTP timeouts
// stay tight. Collaborator calls carry their own per-request timeout from
// configuration and are not covered here.
package timeouts

import "time"

// HTTP server timeouts
const (
	// HTTPRead is the HTTP server read timeout. Chat and signal payloads
	// are small JSON bodies, so slow reads indicate a stuck client.
	HTTPRead = 10 * time.Second

	// HTTPWrite is the HTTP server write timeout. Must cover one
	// recommendation fetch plus response serialization.
	HTTPWrite = 30 * time.Second

	// HTTPIdle is the HTTP server idle timeout for keep-alive connections.
	HTTPIdle = 120 * time.Second
)

// Background job intervals
const (
	// SessionSweepInterval is how often idle conversations are evicted.
	SessionSweepInterval = 5 * time.Minute

	// TriggerSweepInterval is how often idle trigger detectors are dropped.
	TriggerSweepInterval = 5 * time.Minute

	// RateLimiterCleanupInterval is how often inactive session rate
	// limiters are cleaned.
	RateLimiterCleanupInterval = 5 * time.Minute
)

// Database timeouts
const (
	// DatabaseBusyTimeout is the SQLite busy_timeout pragma value.
	// Client-state writes are tiny, so contention clears quickly.
	DatabaseBusyTimeout = 5 * time.Second

	// DatabaseConnMaxLifetime is the maximum lifetime of database
	// connections.
	DatabaseConnMaxLifetime = time.Hour
)

// Graceful shutdown
const (
	// BackgroundStop is how long shutdown waits for background goroutines
	// before giving up on them.
	BackgroundStop = 5 * time.Second
)
