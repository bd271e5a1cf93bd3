// Package main provides the corpus snapshot publishing tool. It validates a
// corpus JSON file and uploads it zstd-compressed to the configured bucket,
// where the assistant server prefers it over the built-in corpus on startup.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/okulfonu/destekbot/internal/config"
	"github.com/okulfonu/destekbot/internal/knowledge"
	"github.com/okulfonu/destekbot/internal/logger"
	"github.com/okulfonu/destekbot/internal/r2client"
)

// snapshotStore is the subset of the bucket client the publisher needs.
type snapshotStore interface {
	HeadObject(ctx context.Context, key string) (string, error)
	UploadSnapshot(ctx context.Context, key string, data []byte) (string, error)
}

func main() {
	file := flag.String("file", "", "path to the corpus JSON file (array of entries)")
	key := flag.String("key", "", "snapshot object key (defaults to CORPUS_SNAPSHOT_KEY)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)

	if *file == "" {
		log.Error("corpus file is required (-file)")
		os.Exit(2)
	}
	if *key == "" {
		*key = cfg.CorpusSnapshotKey
	}
	if !cfg.HasCorpusBucket() {
		log.Error("Corpus bucket is not configured")
		os.Exit(1)
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.WithError(err).Error("Failed to read corpus file")
		os.Exit(1)
	}

	store, err := r2client.New(context.Background(), r2client.Config{
		Endpoint:    cfg.CorpusBucketEndpoint,
		AccessKeyID: cfg.CorpusAccessKeyID,
		SecretKey:   cfg.CorpusSecretKey,
		BucketName:  cfg.CorpusBucketName,
	})
	if err != nil {
		log.WithError(err).Error("Failed to create bucket client")
		os.Exit(1)
	}

	etag, entries, err := publish(context.Background(), store, *key, data, log)
	if err != nil {
		log.WithError(err).Error("Publish failed")
		os.Exit(1)
	}
	log.WithFields(map[string]any{"key": *key, "entries": entries, "etag": etag}).Info("Corpus snapshot published")
}

// publish validates the corpus payload against the same rules the server
// loader applies, then uploads it. Returns the new ETag and the entry count.
func publish(ctx context.Context, store snapshotStore, key string, data []byte, log *logger.Logger) (string, int, error) {
	var entries []knowledge.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return "", 0, fmt.Errorf("parse corpus: %w", err)
	}
	if len(entries) == 0 {
		return "", 0, errors.New("corpus has no entries")
	}
	if _, err := knowledge.NewIndex(entries); err != nil {
		return "", 0, err
	}

	prev, err := store.HeadObject(ctx, key)
	switch {
	case err == nil:
		log.WithField("etag", prev).Info("Replacing existing snapshot")
	case errors.Is(err, r2client.ErrNotFound):
		log.Info("Publishing first snapshot")
	default:
		return "", 0, fmt.Errorf("check existing snapshot: %w", err)
	}

	etag, err := store.UploadSnapshot(ctx, key, data)
	if err != nil {
		return "", 0, err
	}
	return etag, len(entries), nil
}
