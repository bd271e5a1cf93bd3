// Package config provides application configuration management.
// It loads settings from environment variables and provides defaults for
// the HTTP server, collaborator endpoints, trigger tuning, and storage.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Server configuration
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration

	// Collaborator endpoints
	RecommendBaseURL string        // Recommendation service base URL
	OccasionBaseURL  string        // Special-occasion service base URL
	CollaboratorTTL  time.Duration // Per-request timeout for collaborator calls

	// Data configuration
	DataDir string // Directory for the SQLite client-state store

	// Corpus snapshot override (optional; embedded corpus used when unset)
	CorpusBucketEndpoint string
	CorpusBucketName     string
	CorpusAccessKeyID    string
	CorpusSecretKey      string
	CorpusSnapshotKey    string

	// Observability
	MetricsUsername     string
	MetricsPassword     string
	BetterStackToken    string
	BetterStackEndpoint string
	SentryToken         string
	SentryHost          string
	Environment         string

	// Assistant configuration (embedded)
	Assistant AssistantConfig
}

// AssistantConfig holds assistant-specific tuning.
type AssistantConfig struct {
	// TypingDelay is the artificial pause before each bot message.
	TypingDelay time.Duration
	// FollowUpDelay is the pause before the "anything else?" prompt after
	// results are shown.
	FollowUpDelay time.Duration
	// ResultLimit caps recommendations requested per search.
	ResultLimit int
	// SessionTTL is how long an idle conversation is kept in memory.
	SessionTTL time.Duration

	// RateLimitBurst is how many chat actions a session may take at once.
	RateLimitBurst int
	// RateLimitRefillEvery is how long one spent action takes to refill.
	RateLimitRefillEvery time.Duration

	// Trigger tuning
	IdleTimeout      time.Duration // idle countdown before the idle trigger fires
	ScrollDelta      int           // minimum scroll magnitude counted
	ScrollCount      int           // qualifying scrolls before the scroll trigger fires
	ReturnGraceDelay time.Duration // delay before the returning-visitor trigger fires
	ReturnMinAway    time.Duration // lower bound of the returning-visitor window
	ReturnMaxAway    time.Duration // upper bound of the returning-visitor window
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first, then reads from env vars.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "8090"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 30*time.Second),

		RecommendBaseURL: getEnv("RECOMMEND_BASE_URL", ""),
		OccasionBaseURL:  getEnv("OCCASION_BASE_URL", ""),
		CollaboratorTTL:  getDurationEnv("COLLABORATOR_TIMEOUT", 10*time.Second),

		DataDir: getEnv("DATA_DIR", "./data"),

		CorpusBucketEndpoint: getEnv("CORPUS_BUCKET_ENDPOINT", ""),
		CorpusBucketName:     getEnv("CORPUS_BUCKET_NAME", ""),
		CorpusAccessKeyID:    getEnv("CORPUS_ACCESS_KEY_ID", ""),
		CorpusSecretKey:      getEnv("CORPUS_SECRET_KEY", ""),
		CorpusSnapshotKey:    getEnv("CORPUS_SNAPSHOT_KEY", "corpus/latest.json.zst"),

		MetricsUsername:     getEnv("METRICS_USERNAME", "prometheus"),
		MetricsPassword:     getEnv("METRICS_PASSWORD", ""),
		BetterStackToken:    getEnv("BETTERSTACK_TOKEN", ""),
		BetterStackEndpoint: getEnv("BETTERSTACK_ENDPOINT", ""),
		SentryToken:         getEnv("SENTRY_TOKEN", ""),
		SentryHost:          getEnv("SENTRY_HOST", ""),
		Environment:         getEnv("ENVIRONMENT", "production"),

		Assistant: AssistantConfig{
			TypingDelay:          getDurationEnv("TYPING_DELAY", 600*time.Millisecond),
			FollowUpDelay:        getDurationEnv("FOLLOW_UP_DELAY", 4*time.Second),
			ResultLimit:          getIntEnv("RESULT_LIMIT", 3),
			SessionTTL:           getDurationEnv("SESSION_TTL", 2*time.Hour),
			RateLimitBurst:       getIntEnv("RATE_LIMIT_BURST", 6),
			RateLimitRefillEvery: getDurationEnv("RATE_LIMIT_REFILL_EVERY", 5*time.Second),
			IdleTimeout:          getDurationEnv("IDLE_TIMEOUT", 45*time.Second),
			ScrollDelta:          getIntEnv("SCROLL_DELTA", 300),
			ScrollCount:          getIntEnv("SCROLL_COUNT", 5),
			ReturnGraceDelay:     getDurationEnv("RETURN_GRACE_DELAY", 3*time.Second),
			ReturnMinAway:        getDurationEnv("RETURN_MIN_AWAY", time.Hour),
			ReturnMaxAway:        getDurationEnv("RETURN_MAX_AWAY", 30*24*time.Hour),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks that required configuration values are set and sane.
func (c *Config) Validate() error {
	var errs []error

	if c.Port == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	if c.DataDir == "" {
		errs = append(errs, errors.New("DATA_DIR is required"))
	}
	if c.CollaboratorTTL <= 0 {
		errs = append(errs, fmt.Errorf("COLLABORATOR_TIMEOUT must be positive, got %v", c.CollaboratorTTL))
	}
	if err := c.Assistant.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("assistant config: %w", err))
	}
	if c.HasCorpusBucket() {
		if c.CorpusBucketName == "" || c.CorpusAccessKeyID == "" || c.CorpusSecretKey == "" {
			errs = append(errs, errors.New("corpus bucket config is incomplete"))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Validate checks assistant tuning invariants.
func (c *AssistantConfig) Validate() error {
	var errs []error

	if c.ResultLimit <= 0 {
		errs = append(errs, fmt.Errorf("RESULT_LIMIT must be positive, got %d", c.ResultLimit))
	}
	if c.RateLimitBurst <= 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_BURST must be positive, got %d", c.RateLimitBurst))
	}
	if c.RateLimitRefillEvery <= 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_REFILL_EVERY must be positive, got %v", c.RateLimitRefillEvery))
	}
	if c.IdleTimeout <= 0 {
		errs = append(errs, fmt.Errorf("IDLE_TIMEOUT must be positive, got %v", c.IdleTimeout))
	}
	if c.ScrollCount <= 0 {
		errs = append(errs, fmt.Errorf("SCROLL_COUNT must be positive, got %d", c.ScrollCount))
	}
	if c.ReturnMinAway >= c.ReturnMaxAway {
		errs = append(errs, fmt.Errorf("RETURN_MIN_AWAY (%v) must be below RETURN_MAX_AWAY (%v)", c.ReturnMinAway, c.ReturnMaxAway))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// HasCorpusBucket reports whether a remote corpus snapshot is configured.
func (c *Config) HasCorpusBucket() bool {
	return c.CorpusBucketEndpoint != ""
}

// SQLitePath returns the full path to the SQLite state database file.
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, "clientstate.db")
}

// getEnv retrieves environment variable with fallback to default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv retrieves integer environment variable with fallback to default value.
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getDurationEnv retrieves duration environment variable with fallback to default value.
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
