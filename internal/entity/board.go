package entity

const (
	MarkX   = "X"
	MarkO   = "O"
	MarkTie = "-"

	EmptyCell = ""
)

// Lines - the 8 winning triples: 3 rows, 3 columns, 2 diagonals.
var Lines = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

type Board [9]string

func (that *Board) IsEmptyCell(cell int) bool {
	return that[cell] == EmptyCell
}

func (that *Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// EmptyCells - returns the indexes of all unmarked cells, in board order.
func (that *Board) EmptyCells() []int {
	cells := make([]int, 0, len(that))
	for i, cell := range that {
		if cell == EmptyCell {
			cells = append(cells, i)
		}
	}

	return cells
}

// OppositeMark - returns the other player's mark.
func OppositeMark(mark string) string {
	if mark == MarkX {
		return MarkO
	}
	return MarkX
}
