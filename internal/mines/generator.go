package mines

import (
	"fmt"
)

type Params struct {
	Cols, Lines, Mines int
}

func (p Params) Unpack() (cols int, lines int, mines int) {
	return p.Cols, p.Lines, p.Mines
}

func (p Params) String() string {
	return fmt.Sprintf("%dx%d(%d)", p.Cols, p.Lines, p.Mines)
}

func (p Params) Validate() error {
	if p.Cols <= 0 || p.Lines <= 0 {
		return fmt.Errorf("%w: board must be at least 1x1, got %dx%d",
			ErrInvalidConfiguration, p.Cols, p.Lines)
	}
	if p.Mines < 0 || p.Mines > p.Cols*p.Lines {
		return fmt.Errorf("%w: mine count %d outside [0, %d]",
			ErrInvalidConfiguration, p.Mines, p.Cols*p.Lines)
	}
	return nil
}

func (p Params) PointInBounds(pos Position) bool {
	return 0 <= pos.Col && pos.Col < p.Cols &&
		0 <= pos.Row && pos.Row < p.Lines
}
