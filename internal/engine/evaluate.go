package engine

import "github.com/simforge/tictactoe-sim/internal/entity"

// Outcome - a decided game: the winning mark and the line that closed it.
type Outcome struct {
	Winner string
	Line   [3]int
}

// Evaluate - scans the 8 winning lines in table order and reports the first
// one fully occupied by a single mark. Pure; the second return is false when
// no line is complete.
func Evaluate(board entity.Board) (Outcome, bool) {
	for _, line := range entity.Lines {
		a, b, c := board[line[0]], board[line[1]], board[line[2]]
		if a != entity.EmptyCell && a == b && b == c {
			return Outcome{Winner: a, Line: line}, true
		}
	}

	return Outcome{}, false
}
