package entity

import "time"

type Move struct {
	Mark string `json:"mark"`
	Cell int    `json:"cell"`
}

// GameRecord - the unit of persistence, built once per terminated game and
// never modified afterwards.
type GameRecord struct {
	ID          string    `json:"id"`
	Outcome     string    `json:"outcome"`
	MoveCount   int       `json:"move_count"`
	Board       Board     `json:"board"`
	Moves       []Move    `json:"moves"`
	CompletedAt time.Time `json:"completed_at"`
}

// Stats - running session counters, reset only on process restart.
type Stats struct {
	WinsX int `json:"wins_x"`
	WinsO int `json:"wins_o"`
	Draws int `json:"draws"`
}

// Count - bumps the counter matching the outcome label.
func (that *Stats) Count(outcome string) {
	switch outcome {
	case MarkX:
		that.WinsX++
	case MarkO:
		that.WinsO++
	case MarkTie:
		that.Draws++
	}
}

func (that *Stats) Games() int {
	return that.WinsX + that.WinsO + that.Draws
}
