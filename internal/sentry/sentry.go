// Package sentry provides Sentry SDK initialization for error tracking.
// It wraps the Sentry Go SDK to simplify configuration against a Better
// Stack errors backend.
package sentry

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

// Config holds Sentry configuration.
type Config struct {
	// Token is the errors application token. Empty disables Sentry.
	Token string

	// Host is the ingesting host (e.g., "errors.betterstack.com").
	Host string

	// Environment identifies the deployment environment.
	Environment string

	// Release identifies the application release version.
	Release string
}

// Initialize sets up the Sentry SDK. A missing token disables Sentry and
// returns nil.
func Initialize(cfg Config) error {
	if cfg.Token == "" {
		return nil
	}
	if cfg.Host == "" {
		return fmt.Errorf("sentry host is required when token is provided")
	}

	// The project ID (/1) is required by the SDK but ignored by the backend.
	dsn := fmt.Sprintf("https://%s@%s/1", cfg.Token, cfg.Host)

	return sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      cfg.Environment,
		Release:          cfg.Release,
		AttachStacktrace: true,
	})
}

// IsEnabled returns true if Sentry is initialized and active.
func IsEnabled() bool {
	return sentry.CurrentHub().Client() != nil
}

// CaptureException captures an error and sends it to Sentry.
func CaptureException(err error) {
	sentry.CaptureException(err)
}

// Flush waits for buffered events to be sent. Returns true if all events
// were sent within the timeout.
func Flush(timeout time.Duration) bool {
	return sentry.Flush(timeout)
}
