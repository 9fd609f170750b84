package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/simforge/tictactoe-sim/internal/simulator"
)

type driver interface {
	TogglePause()
	SetSpeed(interval time.Duration)
	RefreshHistory()
	Subscribe() chan simulator.Snapshot
	Unsubscribe(ch chan simulator.Snapshot)
}

// Server - streams simulation snapshots to connected viewers and relays their
// pause, speed and refresh intents back to the driver.
type Server struct {
	logger   *slog.Logger
	driver   driver
	upgrader websocket.Upgrader
}

func New(logger *slog.Logger, driver driver) *Server {
	return &Server{
		logger: logger.With("component", "websocket"),
		driver: driver,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(_ *http.Request) bool { return true },
		},
	}
}

func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.handleConnection(ctx, w, r)
	})

	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
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

func (that *Server) handleConnection(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("remote", r.RemoteAddr)

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	log.Info("viewer connected")

	feed := that.driver.Subscribe()

	done := make(chan struct{})
	go that.writeSnapshots(ctx, conn, feed, done)

	that.readIntents(log, conn)

	// closes the feed, which lets the writer goroutine finish
	that.driver.Unsubscribe(feed)

	<-done
	log.Info("viewer disconnected")
}

func (that *Server) writeSnapshots(ctx context.Context, conn *websocket.Conn, feed chan simulator.Snapshot, done chan struct{}) {
	defer close(done)

	for {
		select {
		case <-ctx.Done():
			return
		case snapshot, ok := <-feed:
			if !ok {
				return
			}

			if err := conn.WriteJSON(Envelope{Type: "snapshot", Snapshot: snapshot}); err != nil {
				that.logger.Debug("failed to write snapshot", "error", err)
				return
			}
		}
	}
}

func (that *Server) readIntents(log *slog.Logger, conn *websocket.Conn) {
	for {
		var intent Intent
		if err := conn.ReadJSON(&intent); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error("connection read failed", "error", err)
			}
			return
		}

		switch intent.Action {
		case ActionPause:
			that.driver.TogglePause()
		case ActionSpeed:
			that.driver.SetSpeed(time.Duration(intent.IntervalMS) * time.Millisecond)
		case ActionRefresh:
			that.driver.RefreshHistory()
		default:
			log.Warn("unknown intent", "action", intent.Action)
		}
	}
}
