package tui

import "github.com/vancomm/minesweep/internal/mines"

// Layout maps board squares to terminal cells. Each square is CellWidth
// columns wide and one row tall.
type Layout struct {
	OriginX, OriginY int
	CellWidth        int
	Cols, Lines      int
}

func NewLayout(cols, lines int) Layout {
	return Layout{OriginX: 1, OriginY: 1, CellWidth: 3, Cols: cols, Lines: lines}
}

// ToPosition translates a pointer location into a board square.
func (l Layout) ToPosition(x, y int) (mines.Position, bool) {
	if x < l.OriginX || y < l.OriginY {
		return mines.Position{}, false
	}
	p := mines.Position{
		Col: (x - l.OriginX) / l.CellWidth,
		Row: y - l.OriginY,
	}
	if p.Col >= l.Cols || p.Row >= l.Lines {
		return mines.Position{}, false
	}
	return p, true
}

// ToScreen returns the left-most terminal column and the row of a square.
func (l Layout) ToScreen(p mines.Position) (x, y int) {
	return l.OriginX + p.Col*l.CellWidth, l.OriginY + p.Row
}

// StatusRow is the first terminal row below the board.
func (l Layout) StatusRow() int {
	return l.OriginY + l.Lines + 1
}
