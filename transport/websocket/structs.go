package websocket

import "github.com/simforge/tictactoe-sim/internal/simulator"

const (
	ActionPause   = "pause"
	ActionSpeed   = "speed"
	ActionRefresh = "refresh"
)

// Intent - a control message from a viewer. IntervalMS is read only for the
// speed action.
type Intent struct {
	Action     string `json:"action"`
	IntervalMS int64  `json:"interval_ms,omitempty"`
}

type Envelope struct {
	Type     string             `json:"type"`
	Snapshot simulator.Snapshot `json:"snapshot"`
}
