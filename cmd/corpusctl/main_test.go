package main

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/okulfonu/destekbot/internal/knowledge"
	"github.com/okulfonu/destekbot/internal/logger"
	"github.com/okulfonu/destekbot/internal/r2client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	headEtag string
	headErr  error
	upEtag   string
	upErr    error

	uploadedKey  string
	uploadedData []byte
}

func (f *fakeStore) HeadObject(context.Context, string) (string, error) {
	return f.headEtag, f.headErr
}

func (f *fakeStore) UploadSnapshot(_ context.Context, key string, data []byte) (string, error) {
	f.uploadedKey = key
	f.uploadedData = data
	return f.upEtag, f.upErr
}

func corpusJSON(t *testing.T) []byte {
	t.Helper()
	data, err := json.Marshal(knowledge.Corpus())
	require.NoError(t, err)
	return data
}

func TestPublishFirstSnapshot(t *testing.T) {
	t.Parallel()

	store := &fakeStore{headErr: r2client.ErrNotFound, upEtag: "abc123"}
	data := corpusJSON(t)

	etag, entries, err := publish(context.Background(), store, "corpus/latest.json.zst", data, logger.New("error"))
	require.NoError(t, err)
	assert.Equal(t, "abc123", etag)
	assert.Equal(t, len(knowledge.Corpus()), entries)
	assert.Equal(t, "corpus/latest.json.zst", store.uploadedKey)
	assert.Equal(t, data, store.uploadedData)
}

func TestPublishReplacesExistingSnapshot(t *testing.T) {
	t.Parallel()

	store := &fakeStore{headEtag: "old", upEtag: "new"}
	etag, _, err := publish(context.Background(), store, "k", corpusJSON(t), logger.New("error"))
	require.NoError(t, err)
	assert.Equal(t, "new", etag)
}

func TestPublishRejectsMalformedJSON(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	_, _, err := publish(context.Background(), store, "k", []byte("{nope"), logger.New("error"))
	assert.Error(t, err)
	assert.Nil(t, store.uploadedData, "invalid payloads must never be uploaded")
}

func TestPublishRejectsEmptyCorpus(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	_, _, err := publish(context.Background(), store, "k", []byte("[]"), logger.New("error"))
	assert.Error(t, err)
	assert.Nil(t, store.uploadedData)
}

func TestPublishRejectsInvalidEntry(t *testing.T) {
	t.Parallel()

	bad := []knowledge.Entry{{ID: "x", Category: knowledge.CategoryGeneral, Keywords: []string{"a"}, Priority: 0}}
	data, err := json.Marshal(bad)
	require.NoError(t, err)

	store := &fakeStore{}
	_, _, err = publish(context.Background(), store, "k", data, logger.New("error"))
	require.Error(t, err)
	assert.ErrorIs(t, err, knowledge.ErrPriorityRange)
	assert.Nil(t, store.uploadedData)
}

func TestPublishHeadFailureStopsUpload(t *testing.T) {
	t.Parallel()

	store := &fakeStore{headErr: errors.New("bucket unreachable")}
	_, _, err := publish(context.Background(), store, "k", corpusJSON(t), logger.New("error"))
	assert.Error(t, err)
	assert.Nil(t, store.uploadedData)
}
