package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/simforge/tictactoe-sim/internal/entity"
)

type recordRepository interface {
	SaveBatch(ctx context.Context, records []entity.GameRecord) error
	ListRecent(ctx context.Context, limit int) ([]entity.GameRecord, error)
}

// Server - the record store API: accepts submitted batches and serves the
// history page.
type Server struct {
	logger   *slog.Logger
	records  recordRepository
	pageSize int
}

func New(logger *slog.Logger, records recordRepository, pageSize int) *Server {
	return &Server{
		logger:   logger.With("component", "rest"),
		records:  records,
		pageSize: pageSize,
	}
}

func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ping", that.handlePing)
	mux.HandleFunc("/api/games", that.handleRecords)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
