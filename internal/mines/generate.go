package mines

import (
	"fmt"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

// NewRandom places p.Mines mines on distinct squares chosen uniformly at
// random from r.
func NewRandom(p Params, r *rand.Rand) (*Board, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	cols, lines, mineCount := p.Unpack()

	/*
	 * Write down the list of possible mine locations, then pick n off
	 * the list at random, swapping each pick with the tail.
	 */
	candidates := make([]int, cols*lines)
	for i := range candidates {
		candidates[i] = i
	}
	cells := make([]Cell, cols*lines)
	k := len(candidates)
	for range mineCount {
		i := r.IntN(k)
		cells[candidates[i]].Mine = true
		k--
		candidates[i] = candidates[k]
	}

	Log.WithFields(logrus.Fields{
		"params": p.String(),
	}).Debug("placed mines")

	return newBoard(p, cells), nil
}

// New builds a board with mines on exactly the given squares.
func New(cols, lines int, mines []Position) (*Board, error) {
	p := Params{Cols: cols, Lines: lines, Mines: len(mines)}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	cells := make([]Cell, cols*lines)
	for _, pos := range mines {
		if !p.PointInBounds(pos) {
			return nil, fmt.Errorf("%w: mine at %s on %dx%d board",
				ErrInvalidPosition, pos, cols, lines)
		}
		i := pos.Row*cols + pos.Col
		if cells[i].Mine {
			return nil, fmt.Errorf("%w: duplicate mine at %s",
				ErrInvalidConfiguration, pos)
		}
		cells[i].Mine = true
	}
	return newBoard(p, cells), nil
}
