package rest

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/simforge/tictactoe-sim/internal/entity"
	"github.com/simforge/tictactoe-sim/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return New(logger, repository.NewRecordRepository(client), 50)
}

func TestServer_SubmitBatch(t *testing.T) {
	t.Run("Stores a valid batch", func(t *testing.T) {
		// Given: a store server and a two-record batch
		server := newTestServer(t)

		body, err := json.Marshal([]entity.GameRecord{
			{ID: "g1", Outcome: entity.MarkX, MoveCount: 5},
			{ID: "g2", Outcome: entity.MarkTie, MoveCount: 9},
		})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/games", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		// When: submitting it
		server.handleRecords(rec, req)

		// Then: the batch is accepted
		assert.Equal(t, http.StatusNoContent, rec.Code)

		// Then: a history request returns it, newest first
		req = httptest.NewRequest(http.MethodGet, "/api/games", nil)
		rec = httptest.NewRecorder()
		server.handleRecords(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var records []entity.GameRecord
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
		require.Len(t, records, 2)
		assert.Equal(t, "g2", records[0].ID)
	})

	t.Run("Rejects a malformed body", func(t *testing.T) {
		server := newTestServer(t)

		req := httptest.NewRequest(http.MethodPost, "/api/games", strings.NewReader("not json"))
		rec := httptest.NewRecorder()

		server.handleRecords(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Rejects an empty batch", func(t *testing.T) {
		server := newTestServer(t)

		req := httptest.NewRequest(http.MethodPost, "/api/games", strings.NewReader("[]"))
		rec := httptest.NewRecorder()

		server.handleRecords(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Rejects unsupported methods", func(t *testing.T) {
		server := newTestServer(t)

		req := httptest.NewRequest(http.MethodDelete, "/api/games", nil)
		rec := httptest.NewRecorder()

		server.handleRecords(rec, req)

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestServer_History(t *testing.T) {
	t.Run("Empty store serves an empty array", func(t *testing.T) {
		// Given: a store with nothing in it
		server := newTestServer(t)

		req := httptest.NewRequest(http.MethodGet, "/api/games", nil)
		rec := httptest.NewRecorder()

		// When: requesting history
		server.handleRecords(rec, req)

		// Then: a JSON array, not null
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.JSONEq(t, "[]", rec.Body.String())
	})
}

func TestServer_Ping(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()

	server.handlePing(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}
