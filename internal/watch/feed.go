package watch

import (
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"github.com/simforge/tictactoe-sim/internal/simulator"
	transportws "github.com/simforge/tictactoe-sim/transport/websocket"
)

// Feed - a live-view connection. Snapshots arrive on the channel; intents go
// out over the same socket.
type Feed struct {
	conn      *websocket.Conn
	Snapshots chan simulator.Snapshot
}

func Dial(url string) (*Feed, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", url, err)
	}

	feed := &Feed{
		conn:      conn,
		Snapshots: make(chan simulator.Snapshot, 8),
	}
	go feed.readLoop()

	return feed, nil
}

func (that *Feed) readLoop() {
	defer close(that.Snapshots)

	for {
		var envelope transportws.Envelope
		if err := that.conn.ReadJSON(&envelope); err != nil {
			return
		}

		if envelope.Type != "snapshot" {
			continue
		}

		// drop stale frames rather than lag behind the simulation
		select {
		case that.Snapshots <- envelope.Snapshot:
		default:
		}
	}
}

func (that *Feed) TogglePause() error {
	return that.send(transportws.Intent{Action: transportws.ActionPause})
}

func (that *Feed) SetSpeed(interval time.Duration) error {
	return that.send(transportws.Intent{
		Action:     transportws.ActionSpeed,
		IntervalMS: interval.Milliseconds(),
	})
}

func (that *Feed) RefreshHistory() error {
	return that.send(transportws.Intent{Action: transportws.ActionRefresh})
}

func (that *Feed) send(intent transportws.Intent) error {
	if err := that.conn.WriteJSON(intent); err != nil {
		return fmt.Errorf("failed to send intent: %w", err)
	}

	return nil
}

func (that *Feed) Close() error {
	return that.conn.Close()
}
