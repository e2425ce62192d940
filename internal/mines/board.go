package mines

import (
	"fmt"
	"iter"
	"strings"
)

const noHint = -1

// Board is one round of minesweeper. It is not safe for concurrent use.
type Board struct {
	cols, lines int
	mines       int

	cells []Cell
	hints []int8

	minesLeft     int
	cellsRevealed int
	safeCells     int

	lastClicked    Cell
	hasLastClicked bool
}

func newBoard(p Params, cells []Cell) *Board {
	hints := make([]int8, len(cells))
	for i := range hints {
		hints[i] = noHint
	}
	return &Board{
		cols:      p.Cols,
		lines:     p.Lines,
		mines:     p.Mines,
		cells:     cells,
		hints:     hints,
		minesLeft: p.Mines,
		safeCells: p.Cols*p.Lines - p.Mines,
	}
}

func (b *Board) Cols() int  { return b.cols }
func (b *Board) Lines() int { return b.lines }
func (b *Board) Mines() int { return b.mines }

func (b *Board) Params() Params {
	return Params{Cols: b.cols, Lines: b.lines, Mines: b.mines}
}

func (b *Board) MinesLeft() int     { return b.minesLeft }
func (b *Board) CellsRevealed() int { return b.cellsRevealed }
func (b *Board) SafeCells() int     { return b.safeCells }

// LastClicked reports the state a cell had right before it was last
// revealed. Cascade reveals overwrite it too, so it must be read right after
// Action returns.
func (b *Board) LastClicked() (Cell, bool) {
	return b.lastClicked, b.hasLastClicked
}

func (b *Board) ResetLastClicked() {
	b.lastClicked, b.hasLastClicked = Cell{}, false
}

func (b *Board) Contains(p Position) bool {
	return b.Params().PointInBounds(p)
}

func (b *Board) index(p Position) (int, error) {
	if !b.Contains(p) {
		return 0, fmt.Errorf("%w: %s on %dx%d board",
			ErrInvalidPosition, p, b.cols, b.lines)
	}
	return p.Row*b.cols + p.Col, nil
}

func (b *Board) position(i int) Position {
	return Position{Col: i % b.cols, Row: i / b.cols}
}

func (b *Board) Cell(p Position) (Cell, error) {
	i, err := b.index(p)
	if err != nil {
		return Cell{}, err
	}
	return b.cells[i], nil
}

// Hint returns the number of mined neighbours of a revealed safe cell.
func (b *Board) Hint(p Position) (int, bool) {
	i, err := b.index(p)
	if err != nil || b.hints[i] == noHint {
		return 0, false
	}
	return int(b.hints[i]), true
}

func (b *Board) Hints() map[Position]int {
	hints := make(map[Position]int)
	for i, h := range b.hints {
		if h != noHint {
			hints[b.position(i)] = int(h)
		}
	}
	return hints
}

// All yields every square in row-major order.
func (b *Board) All() iter.Seq2[Position, Cell] {
	return func(yield func(Position, Cell) bool) {
		for i, c := range b.cells {
			if !yield(b.position(i), c) {
				return
			}
		}
	}
}

// Neighbors yields the in-bounds squares of the Moore neighbourhood of p.
func (b *Board) Neighbors(p Position) iter.Seq[Position] {
	return func(yield func(Position) bool) {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				n := Position{Col: p.Col + dx, Row: p.Row + dy}
				if !b.Contains(n) {
					continue
				}
				if !yield(n) {
					return
				}
			}
		}
	}
}

// Action is a click on a square: a flag toggle when flag is set, a reveal
// otherwise. Clicks on open squares and reveals of flagged squares are
// ignored.
func (b *Board) Action(p Position, flag bool) error {
	i, err := b.index(p)
	if err != nil {
		return err
	}
	state := b.cells[i]
	switch {
	case state.Open:
		return nil
	case flag:
		b.flag(i)
	case state.Flagged:
		return nil
	default:
		b.reveal(i)
	}
	return nil
}

func (b *Board) flag(i int) {
	c := &b.cells[i]
	c.Flagged = !c.Flagged
	if !c.Mine {
		return
	}
	b.minesLeft += iif(c.Flagged, -1, 1)
}

func (b *Board) reveal(start int) {
	stack := []int{start}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		prior := b.cells[i]
		if prior.Open || prior.Flagged {
			continue
		}

		b.lastClicked, b.hasLastClicked = prior, true
		b.cells[i].Open = true
		if prior.Mine {
			continue
		}
		b.cellsRevealed++

		p := b.position(i)
		var nearby int8
		for n := range b.Neighbors(p) {
			if b.cells[n.Row*b.cols+n.Col].Mine {
				nearby++
			}
		}
		b.hints[i] = nearby
		if nearby > 0 {
			continue
		}

		/*
		 * No mines around: every closed, unflagged neighbour is safe
		 * and gets revealed as well.
		 */
		for n := range b.Neighbors(p) {
			j := n.Row*b.cols + n.Col
			if c := b.cells[j]; !c.Open && !c.Flagged {
				stack = append(stack, j)
			}
		}
	}
}

// OpenAllMines exposes the whole minefield once a round is over.
func (b *Board) OpenAllMines() {
	for i := range b.cells {
		if b.cells[i].Mine {
			b.cells[i] = Cell{Mine: true, Open: true}
		}
	}
}

func (b *Board) String() string {
	var sb strings.Builder
	for y := range b.lines {
		for x := range b.cols {
			i := y*b.cols + x
			fmt.Fprint(&sb, b.cells[i].State().symbol(int(b.hints[i]))+" ")
		}
		fmt.Fprint(&sb, "\n")
	}
	return sb.String()
}
