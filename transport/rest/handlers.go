package rest

import (
	"encoding/json"
	"net/http"

	"github.com/simforge/tictactoe-sim/internal/entity"
)

func (that *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		that.handleSubmitBatch(w, r)
	case http.MethodGet:
		that.handleHistory(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (that *Server) handleSubmitBatch(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleSubmitBatch")

	var batch []entity.GameRecord
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		log.Error("failed to decode batch", "error", err)
		http.Error(w, "malformed batch", http.StatusBadRequest)
		return
	}

	if len(batch) == 0 {
		http.Error(w, "empty batch", http.StatusBadRequest)
		return
	}

	if err := that.records.SaveBatch(r.Context(), batch); err != nil {
		log.Error("failed to save batch", "size", len(batch), "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	log.Info("batch stored", "size", len(batch))
	w.WriteHeader(http.StatusNoContent)
}

func (that *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleHistory")

	records, err := that.records.ListRecent(r.Context(), that.pageSize)
	if err != nil {
		log.Error("failed to list records", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(records); err != nil {
		log.Error("failed to encode history", "error", err)
	}
}

func (that *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
