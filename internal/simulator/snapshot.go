package simulator

import "github.com/simforge/tictactoe-sim/internal/entity"

// Snapshot - a value copy of everything the presentation layer may show.
type Snapshot struct {
	Board       entity.Board        `json:"board"`
	Turn        string              `json:"player_turn,omitempty"`
	Status      string              `json:"status"`
	Winner      string              `json:"winner,omitempty"`
	WinningLine *[3]int             `json:"winning_line,omitempty"`
	Stats       entity.Stats        `json:"stats"`
	Buffered    int                 `json:"buffered"`
	History     []entity.GameRecord `json:"history,omitempty"`
	Paused      bool                `json:"paused"`
	IntervalMS  int64               `json:"interval_ms"`
}

func (that *Driver) snapshot() Snapshot {
	history := make([]entity.GameRecord, len(that.history))
	copy(history, that.history)

	return Snapshot{
		Board:       that.game.Board,
		Turn:        that.game.Turn,
		Status:      that.game.Status,
		Winner:      that.game.Winner,
		WinningLine: that.game.WinningLine,
		Stats:       that.stats,
		Buffered:    len(that.buffer),
		History:     history,
		Paused:      that.paused,
		IntervalMS:  that.interval.Milliseconds(),
	}
}

func (that *Driver) broadcast() {
	if len(that.subscribers) == 0 {
		return
	}

	snapshot := that.snapshot()
	for ch := range that.subscribers {
		select {
		case ch <- snapshot:
		default:
		}
	}
}
