// Package main provides the assistant server entry point.
package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/okulfonu/destekbot/internal/buildinfo"
	"github.com/okulfonu/destekbot/internal/config"
	"github.com/okulfonu/destekbot/internal/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupRoutes configures all HTTP routes
func setupRoutes(router *gin.Engine, api *apiHandlers, db *storage.DB, registry *prometheus.Registry, cfg *config.Config) {
	rootHandler := func(c *gin.Context) {
		info := gin.H{"service": "destekbot"}
		if buildinfo.Version != "" {
			info["version"] = buildinfo.Version
		}
		c.JSON(http.StatusOK, info)
	}
	router.GET("/", rootHandler)
	router.HEAD("/", rootHandler)

	// Liveness probe - only that the process is running, never dependencies
	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/healthz", healthHandler)
	router.HEAD("/healthz", healthHandler)

	// Readiness probe - dependency check
	readyHandler := func(c *gin.Context) {
		if err := db.Ready(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"reason": err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "ready",
			"database": "connected",
			"sessions": api.sessions.Len(),
		})
	}
	router.GET("/readyz", readyHandler)
	router.HEAD("/readyz", readyHandler)

	apiGroup := router.Group("/api")
	{
		apiGroup.POST("/chat/:session/message", api.handleMessage)
		apiGroup.POST("/chat/:session/reset", api.handleReset)
		apiGroup.POST("/triggers/:session/signal", api.handleSignal)
		apiGroup.GET("/occasion", api.handleOccasion)
		apiGroup.POST("/occasion/dismiss", api.handleDismiss)
	}

	// Prometheus metrics endpoint, behind basic auth when a password is set
	metricsHandler := gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	if cfg.MetricsPassword != "" {
		authorized := router.Group("/", gin.BasicAuth(gin.Accounts{
			cfg.MetricsUsername: cfg.MetricsPassword,
		}))
		authorized.GET("/metrics", metricsHandler)
	} else {
		router.GET("/metrics", metricsHandler)
	}
}
