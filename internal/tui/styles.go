package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/vancomm/minesweep/internal/mines"
)

var (
	hiddenColor  = tcell.NewRGBColor(170, 170, 170)
	flaggedColor = tcell.NewRGBColor(100, 100, 200)
	openColor    = tcell.NewRGBColor(255, 255, 255)
	mineColor    = tcell.NewRGBColor(255, 0, 0)
	messageColor = tcell.NewRGBColor(110, 110, 110)
)

var hintColors = [9]tcell.Color{
	1: tcell.NewRGBColor(0, 65, 170),
	2: tcell.NewRGBColor(28, 122, 0),
	3: tcell.NewRGBColor(183, 25, 25),
	4: tcell.NewRGBColor(3, 14, 76),
	5: tcell.NewRGBColor(76, 3, 3),
	6: tcell.NewRGBColor(6, 111, 124),
	7: tcell.NewRGBColor(10, 10, 10),
	8: tcell.NewRGBColor(171, 186, 188),
}

func background(s mines.CellState) tcell.Color {
	switch s {
	case mines.ClosedFlagged:
		return flaggedColor
	case mines.OpenSafe:
		return openColor
	case mines.OpenMine:
		return mineColor
	default:
		return hiddenColor
	}
}

// cellGlyph picks the rune and style for one square; hint is ignored unless
// the square is open and safe.
func cellGlyph(c mines.Cell, hint int) (rune, tcell.Style) {
	state := c.State()
	style := tcell.StyleDefault.Background(background(state)).Foreground(tcell.ColorBlack)
	switch state {
	case mines.ClosedFlagged:
		return 'F', style.Foreground(tcell.ColorWhite).Bold(true)
	case mines.OpenMine:
		return '*', style.Bold(true)
	case mines.OpenSafe:
		if hint <= 0 || hint >= len(hintColors) {
			return ' ', style
		}
		return rune('0' + hint), style.Foreground(hintColors[hint]).Bold(true)
	default:
		return ' ', style
	}
}
