// Package script plays a game from a line-oriented command stream.
//
// Each line holds one command:
//
//	o X Y   reveal column X, row Y
//	f X Y   toggle the flag on column X, row Y
//	g       print the board
//	n       start a new round once the current one is over
//
// Blank lines and everything after '#' are ignored.
package script

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweep/internal/game"
	"github.com/vancomm/minesweep/internal/mines"
)

var (
	ErrEmptyCommand   = errors.New("empty command")
	ErrUnknownCommand = errors.New("unknown command")
	ErrInvalidArgs    = errors.New("invalid number of arguments")
)

type command string

const (
	cmdOpen  command = "o"
	cmdFlag  command = "f"
	cmdPrint command = "g"
	cmdNew   command = "n"
)

// Maps known commands to number of arguments
var commandNargs = map[command]int{
	cmdOpen:  2,
	cmdFlag:  2,
	cmdPrint: 0,
	cmdNew:   0,
}

type Runner struct {
	game *game.Game
	out  io.Writer
	log  *logrus.Logger
}

func NewRunner(g *game.Game, out io.Writer, log *logrus.Logger) *Runner {
	return &Runner{game: g, out: out, log: log}
}

// Run executes commands from in until it is exhausted, a command fails or
// ctx is done. Reading happens on its own goroutine so that cancellation
// is not held up by a blocked reader; that goroutine stays blocked until
// in returns.
func (r *Runner) Run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	lineNo := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		var (
			text string
			ok   bool
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case text, ok = <-lines:
		}
		if !ok {
			if err := ctx.Err(); err != nil {
				return err
			}
			return <-scanErr
		}

		lineNo++
		line, _, _ := strings.Cut(text, "#")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if err := r.Execute(ctx, line); err != nil {
			return fmt.Errorf("line %d (%q): %w", lineNo, line, err)
		}
	}
}

func (r *Runner) Execute(ctx context.Context, line string) error {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return ErrEmptyCommand
	}
	cmd, args := command(tokens[0]), tokens[1:]
	nargs, ok := commandNargs[cmd]
	if !ok {
		return ErrUnknownCommand
	}
	if nargs != len(args) {
		return ErrInvalidArgs
	}

	r.log.WithFields(logrus.Fields{
		"command": string(cmd),
		"args":    args,
	}).Debug("executing command")

	switch cmd {
	case cmdOpen, cmdFlag:
		x, y, err := parseXY(args)
		if err != nil {
			return err
		}
		p := mines.Position{Col: x, Row: y}
		if err := r.game.Click(ctx, p, cmd == cmdFlag); err != nil {
			return err
		}
	case cmdNew:
		if err := r.game.Reset(); err != nil {
			return err
		}
	}
	return r.print()
}

func (r *Runner) print() error {
	b := r.game.Board()
	_, err := fmt.Fprintf(r.out, "%sstatus=%s mines_left=%d revealed=%d/%d\n",
		b.String(), r.game.Status(), b.MinesLeft(), b.CellsRevealed(), b.SafeCells())
	return err
}

func parseXY(args []string) (x int, y int, err error) {
	if x, err = strconv.Atoi(args[0]); err != nil {
		err = errors.New("first argument must be an int")
		return
	}
	if y, err = strconv.Atoi(args[1]); err != nil {
		err = errors.New("second argument must be an int")
		return
	}
	return
}
