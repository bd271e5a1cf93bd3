// Package main provides the assistant server entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/okulfonu/destekbot/internal/buildinfo"
	"github.com/okulfonu/destekbot/internal/chat"
	"github.com/okulfonu/destekbot/internal/clock"
	"github.com/okulfonu/destekbot/internal/config"
	"github.com/okulfonu/destekbot/internal/intent"
	"github.com/okulfonu/destekbot/internal/knowledge"
	"github.com/okulfonu/destekbot/internal/logger"
	"github.com/okulfonu/destekbot/internal/metrics"
	"github.com/okulfonu/destekbot/internal/occasion"
	"github.com/okulfonu/destekbot/internal/r2client"
	"github.com/okulfonu/destekbot/internal/ratelimit"
	"github.com/okulfonu/destekbot/internal/recommend"
	"github.com/okulfonu/destekbot/internal/search"
	"github.com/okulfonu/destekbot/internal/sentry"
	"github.com/okulfonu/destekbot/internal/storage"
	"github.com/okulfonu/destekbot/internal/timeouts"
	"github.com/okulfonu/destekbot/internal/trigger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewWithOptions(cfg.LogLevel, os.Stdout, logger.Options{
		BetterStackToken:    cfg.BetterStackToken,
		BetterStackEndpoint: cfg.BetterStackEndpoint,
	})
	log.Info("Starting Okul Fonu assistant server")

	// Initialize Sentry (disabled when no token is configured)
	if err := sentry.Initialize(sentry.Config{
		Token:       cfg.SentryToken,
		Host:        cfg.SentryHost,
		Environment: cfg.Environment,
		Release:     buildinfo.Release(),
	}); err != nil {
		log.WithError(err).Warn("Failed to initialize Sentry, continuing without it")
	}
	defer sentry.Flush(2 * time.Second)

	// Open the client-state database and load the knowledge corpus in
	// parallel; both must be ready before the server can serve
	var (
		db  *storage.DB
		idx *knowledge.Index
	)
	g, gctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		var err error
		db, err = storage.New(gctx, cfg.SQLitePath())
		return err
	})
	g.Go(func() error {
		// Prefer a published snapshot when a bucket is configured
		var downloader knowledge.SnapshotDownloader
		if cfg.HasCorpusBucket() {
			r2, err := r2client.New(gctx, r2client.Config{
				Endpoint:    cfg.CorpusBucketEndpoint,
				AccessKeyID: cfg.CorpusAccessKeyID,
				SecretKey:   cfg.CorpusSecretKey,
				BucketName:  cfg.CorpusBucketName,
			})
			if err != nil {
				log.WithError(err).Warn("Failed to create corpus bucket client, using built-in corpus")
			} else {
				downloader = r2
			}
		}
		var err error
		idx, err = knowledge.Load(gctx, downloader, cfg.CorpusSnapshotKey, log)
		return err
	})
	if err := g.Wait(); err != nil {
		log.WithError(err).Error("Startup failed")
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()
	log.WithField("path", cfg.SQLitePath()).Info("Database connected")
	log.WithField("entries", idx.Len()).Info("Knowledge corpus loaded")

	// Create Prometheus registry with standard collectors
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(collectors.NewBuildInfoCollector())
	m := metrics.New(registry)
	log.Info("Metrics initialized")

	clientState := storage.NewClientState(db, log, m)

	clk := clock.New()
	composer := chat.NewComposer(clk, cfg.Assistant.TypingDelay)
	faq := chat.NewKnowledgeFAQ(idx, search.NewMatcher(idx))

	recommender := recommend.New(cfg.RecommendBaseURL, cfg.CollaboratorTTL, log, m)

	var occasions chat.OccasionSource
	var occasionClient *occasion.Client
	if cfg.OccasionBaseURL != "" {
		occasionClient = occasion.New(cfg.OccasionBaseURL, cfg.CollaboratorTTL, log, m)
		occasions = occasionClient
	}

	flow := chat.NewFlow(chat.FlowOptions{
		Composer:      composer,
		Intents:       intent.NewClassifier(),
		FAQ:           faq,
		Recommender:   recommender,
		Occasions:     occasions,
		Clock:         clk,
		Logger:        log,
		Metrics:       m,
		ResultLimit:   cfg.Assistant.ResultLimit,
		FollowUpDelay: cfg.Assistant.FollowUpDelay,
	})

	sessions := chat.NewSessionManager(clk, cfg.Assistant.SessionTTL, log, m.ActiveSessions)
	limits := ratelimit.NewSessionLimiter(clk,
		float64(cfg.Assistant.RateLimitBurst),
		1/cfg.Assistant.RateLimitRefillEvery.Seconds())

	// One detector per session; a fire queues the welcome into the session
	// so the surface opens with it
	detectors := trigger.NewManager(clk, cfg.Assistant.SessionTTL, func(sessionID string) *trigger.Detector {
		return trigger.NewDetector(trigger.Options{
			Config: trigger.Config{
				IdleTimeout:      cfg.Assistant.IdleTimeout,
				ScrollDelta:      cfg.Assistant.ScrollDelta,
				ScrollCount:      cfg.Assistant.ScrollCount,
				ReturnGraceDelay: cfg.Assistant.ReturnGraceDelay,
				ReturnMinAway:    cfg.Assistant.ReturnMinAway,
				ReturnMaxAway:    cfg.Assistant.ReturnMaxAway,
			},
			Clock:   clk,
			State:   clientState,
			Logger:  log,
			Metrics: m,
			OnFire: func(trigger.Kind) {
				sessions.Do(sessionID, func(conv *chat.Conversation) {
					reply := flow.Welcome(context.Background(), conv)
					conv.PushDelayed(reply.Messages...)
				})
			},
		})
	})

	api := &apiHandlers{
		flow:      flow,
		composer:  composer,
		sessions:  sessions,
		detectors: detectors,
		occasions: occasionClient,
		state:     clientState,
		limits:    limits,
		clock:     clk,
		logger:    log,
		metrics:   m,
	}

	// Set Gin mode based on log level
	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if sentry.IsEnabled() {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(securityHeadersMiddleware())
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(log))

	setupRoutes(router, api, db, registry, cfg)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  timeouts.HTTPRead,
		WriteTimeout: timeouts.HTTPWrite,
		IdleTimeout:  timeouts.HTTPIdle,
	}

	// Start background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				log.WithField("panic", r).Error("Panic in session janitor goroutine")
			}
		}()
		sessions.RunJanitor(ctx, timeouts.SessionSweepInterval)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				log.WithField("panic", r).Error("Panic in trigger sweep goroutine")
			}
		}()
		runSweeps(ctx, detectors, limits, log)
	}()

	// Start server in goroutine
	go func() {
		log.WithField("port", cfg.Port).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("Failed to start server")
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	cancel()

	goDone := make(chan struct{})
	go func() {
		wg.Wait()
		close(goDone)
	}()

	select {
	case <-goDone:
		log.Info("All background goroutines stopped")
	case <-time.After(timeouts.BackgroundStop):
		log.Warn("Timeout waiting for goroutines to stop")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	if err := db.Close(); err != nil {
		log.WithError(err).Error("Failed to close database")
	}

	log.Info("Server stopped")
}

// runSweeps drops per-session state for sessions that have gone quiet:
// trigger detectors and rate limit buckets.
func runSweeps(ctx context.Context, detectors *trigger.Manager, limits *ratelimit.SessionLimiter, log *logger.Logger) {
	ticker := time.NewTicker(timeouts.TriggerSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := detectors.Sweep(); n > 0 {
				log.WithField("count", n).Debug("Swept idle trigger detectors")
			}
			limits.Sweep()
		}
	}
}
