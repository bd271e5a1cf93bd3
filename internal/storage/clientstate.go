package storage

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/okulfonu/destekbot/internal/logger"
)

// State field names persisted per visitor.
const (
	fieldLastVisit       = "last_visit"
	fieldTargetCompleted = "target_action_completed"
	fieldDismissedOn     = "occasion_dismissed_on"
)

// MetricsRecorder counts store failures. Kept as an interface so the store
// does not depend on the metrics package.
type MetricsRecorder interface {
	RecordStateStoreFailure(operation string)
}

// ClientState reads and writes the small per-visitor state shared with the
// engagement triggers. Every operation is failure-tolerant: a broken store
// behaves exactly like an empty one, and writes that fail are dropped after
// being logged. Nothing here may surface an error to a user-facing path.
type ClientState struct {
	db      *DB
	logger  *logger.Logger
	metrics MetricsRecorder
}

// NewClientState creates the client-state store. metrics may be nil.
func NewClientState(db *DB, log *logger.Logger, metrics MetricsRecorder) *ClientState {
	return &ClientState{
		db:      db,
		logger:  log.WithModule("clientstate"),
		metrics: metrics,
	}
}

// LastVisit returns the persisted last-visit time for the visitor.
// The second return value is false when no timestamp is stored (or the store
// is unavailable, which is treated the same way).
func (s *ClientState) LastVisit(ctx context.Context, visitorID string) (time.Time, bool) {
	raw, ok := s.get(ctx, visitorID, fieldLastVisit)
	if !ok {
		return time.Time{}, false
	}
	unix, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		s.logger.WithError(err).Warn("Malformed last-visit value, ignoring")
		return time.Time{}, false
	}
	return time.Unix(unix, 0), true
}

// SetLastVisit stores the last-visit time for the visitor.
func (s *ClientState) SetLastVisit(ctx context.Context, visitorID string, t time.Time) {
	s.set(ctx, visitorID, fieldLastVisit, strconv.FormatInt(t.Unix(), 10))
}

// TargetActionCompleted reports whether the visitor has ever completed the
// target action (a donation).
func (s *ClientState) TargetActionCompleted(ctx context.Context, visitorID string) bool {
	raw, ok := s.get(ctx, visitorID, fieldTargetCompleted)
	return ok && raw == "1"
}

// SetTargetActionCompleted marks the visitor as having completed the target
// action. The flag is never cleared.
func (s *ClientState) SetTargetActionCompleted(ctx context.Context, visitorID string) {
	s.set(ctx, visitorID, fieldTargetCompleted, "1")
}

// DismissedOn returns the day (YYYY-MM-DD) the visitor last dismissed the
// occasion banner, or "" when unknown.
func (s *ClientState) DismissedOn(ctx context.Context, visitorID string) string {
	raw, _ := s.get(ctx, visitorID, fieldDismissedOn)
	return raw
}

// SetDismissedOn stores the day the visitor dismissed the occasion banner.
func (s *ClientState) SetDismissedOn(ctx context.Context, visitorID, day string) {
	s.set(ctx, visitorID, fieldDismissedOn, day)
}

func (s *ClientState) get(ctx context.Context, visitorID, name string) (string, bool) {
	if visitorID == "" {
		return "", false
	}
	var value string
	err := s.db.conn.QueryRowContext(ctx,
		`SELECT value FROM client_state WHERE visitor_id = ? AND name = ?`,
		visitorID, name,
	).Scan(&value)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.WithError(err).WithField("name", name).Warn("State read failed, treating as absent")
			s.recordFailure("get")
		}
		return "", false
	}
	return value, true
}

func (s *ClientState) set(ctx context.Context, visitorID, name, value string) {
	if visitorID == "" {
		return
	}
	_, err := s.db.conn.ExecContext(ctx,
		`INSERT INTO client_state (visitor_id, name, value, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (visitor_id, name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		visitorID, name, value, time.Now().Unix(),
	)
	if err != nil {
		s.logger.WithError(err).WithField("name", name).Warn("State write failed, dropping")
		s.recordFailure("set")
	}
}

func (s *ClientState) recordFailure(operation string) {
	if s.metrics != nil {
		s.metrics.RecordStateStoreFailure(operation)
	}
}
