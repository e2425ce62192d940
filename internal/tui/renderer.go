package tui

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/vancomm/minesweep/internal/game"
	"github.com/vancomm/minesweep/internal/mines"
)

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen Display
	layout Layout
}

func NewRenderer(screen Display, layout Layout) *Renderer {
	return &Renderer{screen: screen, layout: layout}
}

// Render draws the board, the cursor and the status lines.
func (r *Renderer) Render(g *game.Game, cursor mines.Position) {
	r.screen.Clear()

	b := g.Board()
	for p, c := range b.All() {
		hint, _ := b.Hint(p)
		ch, style := cellGlyph(c, hint)
		if p == cursor && g.Playing() {
			style = style.Reverse(true)
		}
		x, y := r.layout.ToScreen(p)
		for dx := range r.layout.CellWidth {
			if dx == r.layout.CellWidth/2 {
				r.screen.SetContent(x+dx, y, ch, style)
			} else {
				r.screen.SetContent(x+dx, y, ' ', style)
			}
		}
	}

	row := r.layout.StatusRow()
	r.text(0, row, tcell.StyleDefault, fmt.Sprintf(
		"Mines left: %d  Revealed: %d/%d  Time: %s",
		b.MinesLeft(), b.CellsRevealed(), b.SafeCells(),
		g.Elapsed().Truncate(time.Second),
	))

	msg := "[Click/Space] reveal  [Right click/F] flag  [Q] quit"
	if !g.Playing() {
		msg = "You lost!"
		if g.Status() == game.Won {
			msg = "You won!"
		}
		msg += " Press [R] to restart"
	}
	r.text(0, row+1, tcell.StyleDefault.Foreground(messageColor), msg)

	r.screen.Show()
}

func (r *Renderer) text(x, y int, style tcell.Style, s string) {
	for i, ch := range []rune(s) {
		r.screen.SetContent(x+i, y, ch, style)
	}
}
