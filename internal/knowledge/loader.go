package knowledge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/okulfonu/destekbot/internal/logger"
	"github.com/okulfonu/destekbot/internal/r2client"
)

// SnapshotDownloader fetches a published corpus snapshot. Implemented by the
// R2 client.
type SnapshotDownloader interface {
	DownloadSnapshot(ctx context.Context, key string) ([]byte, string, error)
}

// Load builds the knowledge index. When a downloader is configured it tries
// the published snapshot first so content updates land without a redeploy;
// the built-in corpus is the fallback for a missing or broken snapshot.
func Load(ctx context.Context, downloader SnapshotDownloader, key string, log *logger.Logger) (*Index, error) {
	log = log.WithModule("knowledge")

	if downloader != nil && key != "" {
		idx, etag, err := loadSnapshot(ctx, downloader, key)
		switch {
		case err == nil:
			log.WithFields(map[string]any{"entries": idx.Len(), "etag": etag}).Info("Loaded corpus snapshot")
			return idx, nil
		case errors.Is(err, r2client.ErrNotFound):
			log.Info("No corpus snapshot published, using built-in corpus")
		default:
			log.WithError(err).Warn("Corpus snapshot unusable, using built-in corpus")
		}
	}

	idx, err := NewIndex(Corpus())
	if err != nil {
		return nil, fmt.Errorf("knowledge: built-in corpus invalid: %w", err)
	}
	return idx, nil
}

func loadSnapshot(ctx context.Context, downloader SnapshotDownloader, key string) (*Index, string, error) {
	data, etag, err := downloader.DownloadSnapshot(ctx, key)
	if err != nil {
		return nil, "", err
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, "", fmt.Errorf("parse snapshot: %w", err)
	}
	if len(entries) == 0 {
		return nil, "", errors.New("snapshot has no entries")
	}

	idx, err := NewIndex(entries)
	if err != nil {
		return nil, "", fmt.Errorf("validate snapshot: %w", err)
	}
	return idx, etag, nil
}
