package mines

import (
	"fmt"
	"strconv"
)

type Position struct {
	Col, Row int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Col, p.Row)
}

// Cell is the player-visible and hidden state of one square.
type Cell struct {
	Mine, Flagged, Open bool
}

func (c Cell) OpenMine() bool {
	return c.Mine && c.Open
}

func (c Cell) State() CellState {
	switch {
	case c.OpenMine():
		return OpenMine
	case c.Open:
		return OpenSafe
	case c.Flagged:
		return ClosedFlagged
	default:
		return Closed
	}
}

type CellState int8

const (
	Closed CellState = iota
	ClosedFlagged
	OpenSafe
	OpenMine
)

func (s CellState) String() string {
	switch s {
	case Closed:
		return "closed"
	case ClosedFlagged:
		return "flagged"
	case OpenSafe:
		return "open"
	case OpenMine:
		return "mine"
	default:
		return "CellState(" + strconv.Itoa(int(s)) + ")"
	}
}

// symbol renders a single grid square; hint is only used for open safe cells.
func (s CellState) symbol(hint int) string {
	switch s {
	case ClosedFlagged:
		return "*"
	case OpenSafe:
		return strconv.Itoa(hint)
	case OpenMine:
		return "X"
	default:
		return " "
	}
}
