package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/simforge/tictactoe-sim/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
)

type Game struct {
	ID          string  `json:"id"`
	Board       Board   `json:"board"`
	Moves       []Move  `json:"moves"`
	Turn        string  `json:"player_turn"`
	Winner      string  `json:"winner,omitempty"`
	WinningLine *[3]int `json:"winning_line,omitempty"`
	Status      string  `json:"status"`
}

// NewGame - returns a fresh game with an empty board and X to move.
func NewGame() *Game {
	return &Game{
		ID:     uuid.NewString(),
		Board:  Board{},
		Turn:   MarkX,
		Status: StatusOngoing,
	}
}

// Apply - marks one empty cell for the given player, records the move and
// flips the turn. The board is never mutated on error.
func (that *Game) Apply(mark string, cell int) error {
	if cell < 0 || cell >= len(that.Board) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if that.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	if !that.Board.IsEmptyCell(cell) {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	that.Board[cell] = mark
	that.Moves = append(that.Moves, Move{Mark: mark, Cell: cell})
	that.Turn = OppositeMark(mark)

	return nil
}

// Finish - moves the game into its terminal state. An empty line means a tie.
func (that *Game) Finish(winner string, line *[3]int) {
	that.Winner = winner
	that.WinningLine = line
	that.Status = StatusFinished
	that.Turn = ""
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

// Record - builds the immutable persistence record of a finished game.
func (that *Game) Record(completedAt time.Time) GameRecord {
	moves := make([]Move, len(that.Moves))
	copy(moves, that.Moves)

	return GameRecord{
		ID:          that.ID,
		Outcome:     that.Winner,
		MoveCount:   len(moves),
		Board:       that.Board,
		Moves:       moves,
		CompletedAt: completedAt,
	}
}
