// Package occasion is the client for the special-occasion lookup. The
// platform publishes at most one active occasion (a holiday or awareness day)
// that the assistant uses for a proactive banner and contextual welcome copy.
package occasion

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/okulfonu/destekbot/internal/logger"
)

// Occasion is the active special occasion, if any.
type Occasion struct {
	Title       string `json:"title"`
	Emoji       string `json:"emoji"`
	Description string `json:"description"`
	Link        string `json:"link,omitempty"`
	DaysUntil   int    `json:"days_until"`
}

// MetricsRecorder counts collaborator calls.
type MetricsRecorder interface {
	RecordCollaborator(service, status string, seconds float64)
}

// Client calls the occasion lookup service.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *logger.Logger
	metrics    MetricsRecorder
}

// New creates an occasion client. metrics may be nil.
func New(baseURL string, timeout time.Duration, log *logger.Logger, metrics MetricsRecorder) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		logger:     log.WithModule("occasion"),
		metrics:    metrics,
	}
}

// Active returns the currently active occasion, or nil when none is
// published. A lookup failure is returned as an error; callers treat it the
// same as "no occasion".
func (c *Client) Active(ctx context.Context) (*Occasion, error) {
	start := time.Now()
	occ, err := c.active(ctx)
	status := "success"
	if err != nil {
		status = "error"
		c.logger.WithError(err).Warn("Occasion lookup failed")
	}
	if c.metrics != nil {
		c.metrics.RecordCollaborator("occasion", status, time.Since(start).Seconds())
	}
	return occ, err
}

func (c *Client) active(ctx context.Context) (*Occasion, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/occasions/active", nil)
	if err != nil {
		return nil, fmt.Errorf("occasion: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("occasion: request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Fall through to decode.
	case http.StatusNoContent, http.StatusNotFound:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, nil
	default:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("occasion: unexpected status %d", resp.StatusCode)
	}

	var occ Occasion
	if err := json.NewDecoder(resp.Body).Decode(&occ); err != nil {
		return nil, fmt.Errorf("occasion: decode response: %w", err)
	}
	if occ.Title == "" {
		return nil, nil
	}
	return &occ, nil
}
