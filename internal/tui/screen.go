// Package tui is a terminal front end for the game built on tcell.
package tui

import "github.com/gdamore/tcell/v2"

// Display is the part of a terminal the UI draws on and reads events from.
type Display interface {
	PollEvent() tcell.Event
	PostEvent(ev tcell.Event) error
	SetContent(x, y int, r rune, style tcell.Style)
	Clear()
	Show()
	Sync()
}

// Screen wraps tcell.Screen with a simplified interface.
type Screen struct {
	screen tcell.Screen
}

// NewScreen creates and initializes a new terminal screen with mouse
// reporting enabled.
func NewScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	s.EnableMouse()
	s.Clear()
	return &Screen{screen: s}, nil
}

// Close finalizes the screen and restores terminal state.
func (s *Screen) Close() {
	s.screen.Fini()
}

func (s *Screen) PollEvent() tcell.Event {
	return s.screen.PollEvent()
}

func (s *Screen) PostEvent(ev tcell.Event) error {
	return s.screen.PostEvent(ev)
}

func (s *Screen) SetContent(x, y int, r rune, style tcell.Style) {
	s.screen.SetContent(x, y, r, nil, style)
}

func (s *Screen) Clear() {
	s.screen.Clear()
}

func (s *Screen) Show() {
	s.screen.Show()
}

// Sync forces a complete redraw, needed after a resize.
func (s *Screen) Sync() {
	s.screen.Sync()
}
