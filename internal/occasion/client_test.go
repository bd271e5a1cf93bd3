package occasion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/okulfonu/destekbot/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActiveReturnsOccasion(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/occasions/active", r.URL.Path)
		_ = json.NewEncoder(w).Encode(Occasion{
			Title:       "23 Nisan",
			Emoji:       "🎈",
			Description: "Ulusal Egemenlik ve Çocuk Bayramı",
			DaysUntil:   3,
		})
	}))
	defer server.Close()

	client := New(server.URL, 5*time.Second, logger.New("error"), nil)
	occ, err := client.Active(context.Background())
	require.NoError(t, err)
	require.NotNil(t, occ)
	assert.Equal(t, "23 Nisan", occ.Title)
	assert.Equal(t, 3, occ.DaysUntil)
}

func TestActiveNoOccasion(t *testing.T) {
	t.Parallel()

	for _, status := range []int{http.StatusNoContent, http.StatusNotFound} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		}))

		client := New(server.URL, 5*time.Second, logger.New("error"), nil)
		occ, err := client.Active(context.Background())
		require.NoError(t, err)
		assert.Nil(t, occ)
		server.Close()
	}
}

func TestActiveEmptyBodyMeansNone(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(Occasion{})
	}))
	defer server.Close()

	client := New(server.URL, 5*time.Second, logger.New("error"), nil)
	occ, err := client.Active(context.Background())
	require.NoError(t, err)
	assert.Nil(t, occ)
}

func TestActiveServerError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New(server.URL, 5*time.Second, logger.New("error"), nil)
	_, err := client.Active(context.Background())
	assert.ErrorContains(t, err, "unexpected status 500")
}
