package engine

import (
	"math/rand"

	"github.com/simforge/tictactoe-sim/internal/entity"
)

// Selector - the heuristic agent. Three tiers, tried in strict order:
// finish a winning line, block the opponent's winning line, otherwise pick a
// random empty cell. Only the last tier is randomized.
type Selector struct {
	rng *rand.Rand
}

// NewSelector - the rand source is injected so tests can seed it.
func NewSelector(rng *rand.Rand) *Selector {
	return &Selector{rng: rng}
}

// SelectMove - returns the next cell for the given mark. The second return is
// false only when the board has no empty cells left.
func (that *Selector) SelectMove(board entity.Board, mark string) (int, bool) {
	if cell, ok := completingCell(board, mark); ok {
		return cell, true
	}

	if cell, ok := completingCell(board, entity.OppositeMark(mark)); ok {
		return cell, true
	}

	empty := board.EmptyCells()
	if len(empty) == 0 {
		return 0, false
	}

	return empty[that.rng.Intn(len(empty))], true
}

// completingCell - first empty cell, in index order, that would complete a
// line for the given mark.
func completingCell(board entity.Board, mark string) (int, bool) {
	for i := range board {
		if !board.IsEmptyCell(i) {
			continue
		}

		hypothetical := board
		hypothetical[i] = mark

		if outcome, ok := Evaluate(hypothetical); ok && outcome.Winner == mark {
			return i, true
		}
	}

	return 0, false
}
