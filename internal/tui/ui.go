package tui

import (
	"context"
	"errors"

	"github.com/gdamore/tcell/v2"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweep/internal/game"
	"github.com/vancomm/minesweep/internal/mines"
)

type command uint8

const (
	cmdNone command = iota
	cmdUp
	cmdDown
	cmdLeft
	cmdRight
	cmdReveal
	cmdFlag
	cmdReset
	cmdQuit
)

// UI owns a game and translates terminal input into board actions.
type UI struct {
	screen   Display
	renderer *Renderer
	layout   Layout
	game     *game.Game
	log      *logrus.Logger

	cursor  mines.Position
	buttons tcell.ButtonMask
	running bool
}

func New(screen Display, g *game.Game, log *logrus.Logger) *UI {
	b := g.Board()
	layout := NewLayout(b.Cols(), b.Lines())
	return &UI{
		screen:   screen,
		renderer: NewRenderer(screen, layout),
		layout:   layout,
		game:     g,
		log:      log,
	}
}

// Run draws the game and processes input until the player quits, the
// screen is interrupted or ctx is done.
func (ui *UI) Run(ctx context.Context) error {
	ui.running = true
	for ui.running {
		if ctx.Err() != nil {
			return nil
		}
		ui.renderer.Render(ui.game, ui.cursor)
		ui.handle(ctx, ui.screen.PollEvent())
	}
	return nil
}

// Interrupt wakes up a blocked Run and makes it return.
func (ui *UI) Interrupt() error {
	return ui.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

func (ui *UI) handle(ctx context.Context, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		ui.apply(ctx, keyCommand(ev))
	case *tcell.EventMouse:
		ui.handleMouse(ctx, ev)
	case *tcell.EventResize:
		ui.screen.Sync()
	case *tcell.EventInterrupt:
		ui.running = false
	case nil:
		// screen finalized
		ui.running = false
	}
}

func keyCommand(ev *tcell.EventKey) command {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return cmdQuit
	case tcell.KeyUp:
		return cmdUp
	case tcell.KeyDown:
		return cmdDown
	case tcell.KeyLeft:
		return cmdLeft
	case tcell.KeyRight:
		return cmdRight
	case tcell.KeyEnter:
		return cmdReveal
	case tcell.KeyRune:
		return runeCommand(ev.Rune())
	}
	return cmdNone
}

func runeCommand(r rune) command {
	switch r {
	case 'k', 'w':
		return cmdUp
	case 'j', 's':
		return cmdDown
	case 'h', 'a':
		return cmdLeft
	case 'l', 'd':
		return cmdRight
	case ' ':
		return cmdReveal
	case 'f', 'F':
		return cmdFlag
	case 'r', 'R':
		return cmdReset
	case 'q', 'Q':
		return cmdQuit
	}
	return cmdNone
}

func (ui *UI) apply(ctx context.Context, cmd command) {
	switch cmd {
	case cmdUp:
		ui.moveCursor(0, -1)
	case cmdDown:
		ui.moveCursor(0, 1)
	case cmdLeft:
		ui.moveCursor(-1, 0)
	case cmdRight:
		ui.moveCursor(1, 0)
	case cmdReveal:
		ui.click(ctx, ui.cursor, false)
	case cmdFlag:
		ui.click(ctx, ui.cursor, true)
	case cmdReset:
		ui.reset()
	case cmdQuit:
		ui.running = false
	}
}

func (ui *UI) moveCursor(dx, dy int) {
	ui.cursor.Col = lo.Clamp(ui.cursor.Col+dx, 0, ui.layout.Cols-1)
	ui.cursor.Row = lo.Clamp(ui.cursor.Row+dy, 0, ui.layout.Lines-1)
}

// handleMouse acts on button presses only; motion and release events just
// update the remembered button state.
func (ui *UI) handleMouse(ctx context.Context, ev *tcell.EventMouse) {
	buttons := ev.Buttons()
	pressed := buttons &^ ui.buttons
	ui.buttons = buttons
	if pressed == tcell.ButtonNone {
		return
	}

	p, ok := ui.layout.ToPosition(ev.Position())
	if !ok {
		return
	}
	ui.cursor = p
	switch {
	case pressed&tcell.ButtonPrimary != 0:
		ui.click(ctx, p, false)
	case pressed&tcell.ButtonSecondary != 0:
		ui.click(ctx, p, true)
	}
}

func (ui *UI) click(ctx context.Context, p mines.Position, flag bool) {
	err := ui.game.Click(ctx, p, flag)
	if errors.Is(err, game.ErrRoundOver) {
		return
	}
	if err != nil {
		ui.log.WithFields(logrus.Fields{
			"position": p.String(),
			"flag":     flag,
		}).WithError(err).Warn("click rejected")
	}
}

func (ui *UI) reset() {
	err := ui.game.Reset()
	if errors.Is(err, game.ErrRoundInProgress) {
		ui.log.Debug("reset ignored while playing")
		return
	}
	if err != nil {
		ui.log.WithError(err).Error("unable to start a new round")
		ui.running = false
		return
	}
	ui.cursor = mines.Position{}
	ui.buttons = tcell.ButtonNone
}
