package sink

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/simforge/tictactoe-sim/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPSink_SubmitBatch(t *testing.T) {
	t.Run("Posts the batch as one JSON array", func(t *testing.T) {
		// Given: a store that records what it receives
		var received []entity.GameRecord

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/games", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		httpSink := NewHTTPSink(server.URL, time.Second)

		batch := []entity.GameRecord{
			{ID: "a", Outcome: entity.MarkX, MoveCount: 5},
			{ID: "b", Outcome: entity.MarkTie, MoveCount: 9},
		}

		// When: submitting the batch
		err := httpSink.SubmitBatch(context.Background(), batch)

		// Then: the store saw it in order
		require.NoError(t, err)
		require.Len(t, received, 2)
		assert.Equal(t, "a", received[0].ID)
		assert.Equal(t, "b", received[1].ID)
	})

	t.Run("Error on non-success status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "nope", http.StatusInternalServerError)
		}))
		defer server.Close()

		httpSink := NewHTTPSink(server.URL, time.Second)

		err := httpSink.SubmitBatch(context.Background(), []entity.GameRecord{{ID: "a"}})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "rejected")
	})

	t.Run("Error on unreachable store", func(t *testing.T) {
		// Given: a store that is already gone
		server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
		server.Close()

		httpSink := NewHTTPSink(server.URL, time.Second)

		err := httpSink.SubmitBatch(context.Background(), []entity.GameRecord{{ID: "a"}})

		require.Error(t, err)
	})
}

func TestHTTPSink_FetchHistory(t *testing.T) {
	t.Run("Decodes the stored records", func(t *testing.T) {
		// Given: a store holding two records
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/api/games", r.URL.Path)

			w.Header().Set("Content-Type", "application/json")
			require.NoError(t, json.NewEncoder(w).Encode([]entity.GameRecord{
				{ID: "newest", Outcome: entity.MarkO},
				{ID: "older", Outcome: entity.MarkTie},
			}))
		}))
		defer server.Close()

		httpSink := NewHTTPSink(server.URL, time.Second)

		// When: fetching history
		records, err := httpSink.FetchHistory(context.Background())

		// Then: records come back in store order
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "newest", records[0].ID)
	})

	t.Run("Error on non-200 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "busy", http.StatusServiceUnavailable)
		}))
		defer server.Close()

		httpSink := NewHTTPSink(server.URL, time.Second)

		records, err := httpSink.FetchHistory(context.Background())

		require.Error(t, err)
		assert.Nil(t, records)
	})

	t.Run("Error on malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}))
		defer server.Close()

		httpSink := NewHTTPSink(server.URL, time.Second)

		records, err := httpSink.FetchHistory(context.Background())

		require.Error(t, err)
		assert.Nil(t, records)
	})
}
