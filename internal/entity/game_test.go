package entity

import (
	"testing"
	"time"

	"github.com/simforge/tictactoe-sim/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGame(t *testing.T) {
	// Given: a fresh game
	game := NewGame()

	// Then: the board is empty, X moves first and the game is ongoing
	assert.NotEmpty(t, game.ID)
	assert.Equal(t, Board{}, game.Board)
	assert.Equal(t, MarkX, game.Turn)
	assert.Equal(t, StatusOngoing, game.Status)
	assert.Empty(t, game.Moves)
}

func TestGame_Apply(t *testing.T) {
	t.Run("Marks the cell, records the move and flips the turn", func(t *testing.T) {
		// Given: a fresh game
		game := NewGame()

		// When: X plays cell 4
		err := game.Apply(MarkX, 4)

		// Then: exactly one cell changed and it is O's turn
		require.NoError(t, err)
		assert.Equal(t, MarkX, game.Board[4])
		assert.Equal(t, []Move{{Mark: MarkX, Cell: 4}}, game.Moves)
		assert.Equal(t, MarkO, game.Turn)
	})

	t.Run("Error on occupied cell", func(t *testing.T) {
		// Given: a game where cell 0 is already taken
		game := NewGame()
		require.NoError(t, game.Apply(MarkX, 0))

		// When: O plays the same cell
		err := game.Apply(MarkO, 0)

		// Then: the move is rejected and the board is unchanged
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, MarkX, game.Board[0])
		assert.Len(t, game.Moves, 1)
	})

	t.Run("Error on playing out of turn", func(t *testing.T) {
		// Given: a fresh game, X to move
		game := NewGame()

		// When: O tries to move first
		err := game.Apply(MarkO, 1)

		// Then: the move is rejected
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Equal(t, Board{}, game.Board)
	})

	t.Run("Error on invalid cell index", func(t *testing.T) {
		game := NewGame()

		require.ErrorIs(t, game.Apply(MarkX, 9), apperror.ErrInvalidCell)
		require.ErrorIs(t, game.Apply(MarkX, -1), apperror.ErrInvalidCell)
	})

	t.Run("Error on finished game", func(t *testing.T) {
		// Given: a finished game
		game := NewGame()
		game.Finish(MarkX, &[3]int{0, 1, 2})

		// When: another move comes in
		err := game.Apply(MarkX, 5)

		// Then: it is rejected
		require.ErrorIs(t, err, apperror.ErrGameFinished)
	})
}

func TestGame_Finish(t *testing.T) {
	// Given: an ongoing game
	game := NewGame()
	line := [3]int{0, 4, 8}

	// When: X wins on the diagonal
	game.Finish(MarkX, &line)

	// Then: the game is terminal with the winner and line recorded
	assert.True(t, game.IsFinished())
	assert.Equal(t, MarkX, game.Winner)
	assert.Equal(t, &line, game.WinningLine)
	assert.Empty(t, game.Turn)
}

func TestGame_Record(t *testing.T) {
	// Given: a finished game with a short move history
	game := NewGame()
	require.NoError(t, game.Apply(MarkX, 0))
	require.NoError(t, game.Apply(MarkO, 3))
	game.Finish(MarkTie, nil)

	completedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// When: building the persistence record
	record := game.Record(completedAt)

	// Then: the record snapshots the game and is detached from it
	assert.Equal(t, game.ID, record.ID)
	assert.Equal(t, MarkTie, record.Outcome)
	assert.Equal(t, 2, record.MoveCount)
	assert.Equal(t, game.Board, record.Board)
	assert.Equal(t, completedAt, record.CompletedAt)

	record.Moves[0].Cell = 8
	assert.Equal(t, 0, game.Moves[0].Cell)
}

func TestStats_Count(t *testing.T) {
	// Given: zeroed counters
	var stats Stats

	// When: counting a win for each label and a draw
	stats.Count(MarkX)
	stats.Count(MarkX)
	stats.Count(MarkO)
	stats.Count(MarkTie)

	// Then: each counter reflects its own outcomes only
	assert.Equal(t, 2, stats.WinsX)
	assert.Equal(t, 1, stats.WinsO)
	assert.Equal(t, 1, stats.Draws)
	assert.Equal(t, 4, stats.Games())
}

func TestBoard_EmptyCells(t *testing.T) {
	// Given: a board with three marked cells
	board := Board{MarkX, EmptyCell, MarkO, EmptyCell, MarkX, EmptyCell, EmptyCell, EmptyCell, EmptyCell}

	// When: collecting empty cells
	cells := board.EmptyCells()

	// Then: they come back in index order
	assert.Equal(t, []int{1, 3, 5, 6, 7, 8}, cells)
	assert.False(t, board.IsFull())
}
