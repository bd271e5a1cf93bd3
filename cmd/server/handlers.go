// Package main provides the assistant server entry point.
package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/okulfonu/destekbot/internal/chat"
	"github.com/okulfonu/destekbot/internal/clock"
	"github.com/okulfonu/destekbot/internal/ctxutil"
	"github.com/okulfonu/destekbot/internal/logger"
	"github.com/okulfonu/destekbot/internal/metrics"
	"github.com/okulfonu/destekbot/internal/occasion"
	"github.com/okulfonu/destekbot/internal/ratelimit"
	"github.com/okulfonu/destekbot/internal/storage"
	"github.com/okulfonu/destekbot/internal/trigger"
)

// apiHandlers holds the wired assistant components behind the HTTP surface.
type apiHandlers struct {
	flow      *chat.Flow
	composer  *chat.Composer
	sessions  *chat.SessionManager
	detectors *trigger.Manager
	occasions *occasion.Client // nil when no occasion service is configured
	state     *storage.ClientState
	limits    *ratelimit.SessionLimiter
	clock     clock.Clock
	logger    *logger.Logger
	metrics   *metrics.Metrics
}

type messageRequest struct {
	// Exactly one of Text and Command must be set.
	Text    string `json:"text,omitempty"`
	Command string `json:"command,omitempty"`
}

type messageResponse struct {
	Messages     []chat.ChatMessage `json:"messages"`
	QuickReplies []chat.QuickReply  `json:"quick_replies,omitempty"`
	FetchIssued  bool               `json:"fetch_issued,omitempty"`
}

// handleMessage processes one user action: a free-text submission or a
// quick-reply command. Delayed messages that came due since the last action
// are delivered first so transcript order matches causal order.
func (a *apiHandlers) handleMessage(c *gin.Context) {
	start := time.Now()
	sessionID := c.Param("session")
	ctx := ctxutil.WithSessionID(c.Request.Context(), sessionID)

	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		a.metrics.RecordChat("message", "bad_request", time.Since(start).Seconds())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if (req.Text == "") == (req.Command == "") {
		a.metrics.RecordChat("message", "bad_request", time.Since(start).Seconds())
		c.JSON(http.StatusBadRequest, gin.H{"error": "exactly one of text and command is required"})
		return
	}

	var cmd chat.Command
	kind := "text"
	if req.Command != "" {
		parsed, ok := chat.ParseCommand(req.Command)
		if !ok {
			a.metrics.RecordChat("command", "bad_request", time.Since(start).Seconds())
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown command"})
			return
		}
		cmd = parsed
		kind = "command"
	}

	if !a.limits.Allow(sessionID) {
		a.metrics.RecordChat(kind, "rate_limited", time.Since(start).Seconds())
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many messages, slow down"})
		return
	}

	// The user is talking to the assistant, so its surface is open and the
	// engagement triggers have nothing left to do.
	a.detectors.Get(sessionID).SurfaceOpened()

	var resp messageResponse
	a.sessions.Do(sessionID, func(conv *chat.Conversation) {
		resp.Messages = append(resp.Messages, conv.DrainDelayed()...)

		var reply chat.Reply
		if kind == "text" {
			resp.Messages = append(resp.Messages, a.composer.User(req.Text))
			reply = a.flow.HandleText(ctx, conv, req.Text)
		} else {
			reply = a.flow.HandleCommand(ctx, conv, cmd)
		}
		resp.Messages = append(resp.Messages, reply.Messages...)
		resp.QuickReplies = reply.QuickReplies
		resp.FetchIssued = reply.FetchIssued
	})

	a.metrics.RecordChat(kind, "success", time.Since(start).Seconds())
	c.JSON(http.StatusOK, resp)
}

// handleReset returns the conversation to the welcome step.
func (a *apiHandlers) handleReset(c *gin.Context) {
	start := time.Now()
	sessionID := c.Param("session")
	ctx := ctxutil.WithSessionID(c.Request.Context(), sessionID)

	var resp messageResponse
	a.sessions.Do(sessionID, func(conv *chat.Conversation) {
		reply := a.flow.Reset(ctx, conv)
		resp.Messages = reply.Messages
		resp.QuickReplies = reply.QuickReplies
	})

	a.metrics.RecordChat("reset", "success", time.Since(start).Seconds())
	c.JSON(http.StatusOK, resp)
}

type signalRequest struct {
	Type        string `json:"type"`
	VisitorID   string `json:"visitor_id,omitempty"`
	Location    string `json:"location,omitempty"`
	SurfaceOpen bool   `json:"surface_open,omitempty"`
	ScrollDelta int    `json:"scroll_delta,omitempty"`
	TopBoundary bool   `json:"top_boundary,omitempty"`
	HasTarget   bool   `json:"has_target,omitempty"`
}

var observableSignals = map[string]struct{}{
	string(trigger.SignalPointer):  {},
	string(trigger.SignalKey):      {},
	string(trigger.SignalScroll):   {},
	string(trigger.SignalTouch):    {},
	string(trigger.SignalClick):    {},
	string(trigger.SignalExit):     {},
	string(trigger.SignalLocation): {},
}

// handleSignal feeds one passive client signal to the session's trigger
// detector. "activate" attaches the observers, "reset" re-arms the gate.
func (a *apiHandlers) handleSignal(c *gin.Context) {
	sessionID := c.Param("session")
	ctx := ctxutil.WithSessionID(c.Request.Context(), sessionID)

	var req signalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	d := a.detectors.Get(sessionID)
	switch req.Type {
	case "activate":
		d.Activate(ctx, req.VisitorID, req.Location, req.SurfaceOpen)
	case "reset":
		d.Reset()
	default:
		if _, ok := observableSignals[req.Type]; !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown signal type"})
			return
		}
		d.Observe(trigger.Signal{
			Type:        trigger.SignalType(req.Type),
			Location:    req.Location,
			ScrollDelta: req.ScrollDelta,
			TopBoundary: req.TopBoundary,
			HasTarget:   req.HasTarget,
		})
	}

	c.JSON(http.StatusOK, gin.H{"fired": d.Fired()})
}

// handleOccasion returns the active occasion banner payload. Dismissing
// today, having no occasion service, or a failed lookup all yield 204.
func (a *apiHandlers) handleOccasion(c *gin.Context) {
	ctx := c.Request.Context()
	today := a.clock.Now().Format("2006-01-02")

	if visitorID := c.Query("visitor_id"); visitorID != "" {
		if a.state.DismissedOn(ctx, visitorID) == today {
			c.Status(http.StatusNoContent)
			return
		}
	}
	if a.occasions == nil {
		c.Status(http.StatusNoContent)
		return
	}

	occ, err := a.occasions.Active(ctx)
	if err != nil || occ == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, occ)
}

type dismissRequest struct {
	VisitorID string `json:"visitor_id"`
}

// handleDismiss records that the visitor dismissed the occasion banner for
// the rest of the day.
func (a *apiHandlers) handleDismiss(c *gin.Context) {
	var req dismissRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.VisitorID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "visitor_id is required"})
		return
	}

	a.state.SetDismissedOn(c.Request.Context(), req.VisitorID, a.clock.Now().Format("2006-01-02"))
	c.Status(http.StatusNoContent)
}
