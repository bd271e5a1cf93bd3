// Package recommend is the client for the campaign recommendation service.
// The flow controller sends the collected donor preferences and gets back a
// ranked list of campaign summaries.
package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/okulfonu/destekbot/internal/logger"
)

// Preferences are the answers collected by the guided conversation. Empty
// fields were not answered; the explicit "any" value means the donor chose
// not to constrain that dimension.
type Preferences struct {
	Field    string `json:"field,omitempty"`
	Gender   string `json:"gender,omitempty"`
	Budget   string `json:"budget,omitempty"`
	Priority string `json:"priority,omitempty"`
	Country  string `json:"country,omitempty"`
}

// Campaign is one ranked campaign summary returned by the service.
type Campaign struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Snippet         string   `json:"snippet"`
	FundingProgress float64  `json:"funding_progress"`
	MatchScore      float64  `json:"match_score"`
	MatchReasons    []string `json:"match_reasons,omitempty"`
}

type request struct {
	Preferences Preferences `json:"preferences"`
	Limit       int         `json:"limit"`
}

type response struct {
	Campaigns []Campaign `json:"campaigns"`
}

// MetricsRecorder counts collaborator calls.
type MetricsRecorder interface {
	RecordCollaborator(service, status string, seconds float64)
}

// Client calls the recommendation service.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *logger.Logger
	metrics    MetricsRecorder
}

// New creates a recommendation client. metrics may be nil.
func New(baseURL string, timeout time.Duration, log *logger.Logger, metrics MetricsRecorder) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		logger:     log.WithModule("recommend"),
		metrics:    metrics,
	}
}

// Fetch requests up to limit ranked campaigns for the given preferences.
// Callers are expected to convert any error into user-facing copy; nothing
// here retries.
func (c *Client) Fetch(ctx context.Context, prefs Preferences, limit int) ([]Campaign, error) {
	start := time.Now()
	campaigns, err := c.fetch(ctx, prefs, limit)
	status := "success"
	if err != nil {
		status = "error"
		c.logger.WithError(err).Warn("Recommendation fetch failed")
	}
	if c.metrics != nil {
		c.metrics.RecordCollaborator("recommend", status, time.Since(start).Seconds())
	}
	return campaigns, err
}

func (c *Client) fetch(ctx context.Context, prefs Preferences, limit int) ([]Campaign, error) {
	body, err := json.Marshal(request{Preferences: prefs, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("recommend: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/recommendations", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("recommend: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("recommend: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("recommend: unexpected status %d", resp.StatusCode)
	}

	var parsed response
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("recommend: decode response: %w", err)
	}
	return parsed.Campaigns, nil
}
