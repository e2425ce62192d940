package script

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweep/internal/game"
	"github.com/vancomm/minesweep/internal/mines"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newRunner(t *testing.T, params mines.Params) (*Runner, *game.Game, *bytes.Buffer) {
	t.Helper()
	g, err := game.New(params, rand.New(rand.NewPCG(1, 2)), game.WithLogger(quietLogger()))
	require.NoError(t, err)
	var out bytes.Buffer
	return NewRunner(g, &out, quietLogger()), g, &out
}

func findCell(t *testing.T, b *mines.Board, mine bool) mines.Position {
	t.Helper()
	for p, c := range b.All() {
		if c.Mine == mine {
			return p
		}
	}
	t.Fatalf("no cell with mine=%v", mine)
	return mines.Position{}
}

func TestPrintExactBoard(t *testing.T) {
	r, _, out := newRunner(t, mines.Params{Cols: 3, Lines: 1, Mines: 3})

	require.NoError(t, r.Run(context.Background(), strings.NewReader("g\n")))

	assert.Equal(t, "X X X \nstatus=won mines_left=3 revealed=0/0\n", out.String())
}

func TestRunUntilWon(t *testing.T) {
	r, g, out := newRunner(t, mines.Params{Cols: 2, Lines: 1, Mines: 1})
	safe := findCell(t, g.Board(), false)

	script := fmt.Sprintf(`
# print the fresh board
g

o %d %d   # reveal the only safe square
`, safe.Col, safe.Row)
	require.NoError(t, r.Run(context.Background(), strings.NewReader(script)))

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "status=playing mines_left=1 revealed=0/1", lines[1])
	assert.Equal(t, "status=won mines_left=1 revealed=1/1", lines[3])
	assert.Equal(t, game.Won, g.Status())
}

func TestNewRoundAfterLoss(t *testing.T) {
	r, g, out := newRunner(t, mines.Params{Cols: 4, Lines: 4, Mines: 4})
	mine := findCell(t, g.Board(), true)
	first := g.ID()

	script := fmt.Sprintf("f %[1]d %[2]d\nf %[1]d %[2]d\no %[1]d %[2]d\nn\n", mine.Col, mine.Row)
	require.NoError(t, r.Run(context.Background(), strings.NewReader(script)))

	assert.Contains(t, out.String(), "status=playing mines_left=3 revealed=0/12")
	assert.Contains(t, out.String(), "status=lost mines_left=4 revealed=0/12")
	assert.Equal(t, game.Playing, g.Status())
	assert.NotEqual(t, first, g.ID())
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		target error
		msg    string
	}{
		{name: "unknown command", script: "z\n", target: ErrUnknownCommand, msg: "line 1"},
		{name: "missing argument", script: "g\no 1\n", target: ErrInvalidArgs, msg: "line 2"},
		{name: "extra argument", script: "g 1\n", target: ErrInvalidArgs},
		{name: "bad x", script: "o a 1\n", msg: "first argument must be an int"},
		{name: "bad y", script: "f 1 b\n", msg: "second argument must be an int"},
		{name: "out of bounds", script: "o 5 0\n", target: mines.ErrInvalidPosition},
		{name: "new round while playing", script: "n\n", target: game.ErrRoundInProgress},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r, _, _ := newRunner(t, mines.Params{Cols: 5, Lines: 5, Mines: 5})
			err := r.Run(context.Background(), strings.NewReader(test.script))
			require.Error(t, err)
			if test.target != nil {
				assert.ErrorIs(t, err, test.target)
			}
			if test.msg != "" {
				assert.ErrorContains(t, err, test.msg)
			}
		})
	}
}

func TestClickAfterRoundOver(t *testing.T) {
	r, g, _ := newRunner(t, mines.Params{Cols: 3, Lines: 3, Mines: 2})
	mine := findCell(t, g.Board(), true)

	script := fmt.Sprintf("o %d %d\nf 0 0\n", mine.Col, mine.Row)
	err := r.Run(context.Background(), strings.NewReader(script))
	assert.ErrorIs(t, err, game.ErrRoundOver)
	assert.ErrorContains(t, err, "line 2")
}

func TestRunCanceled(t *testing.T) {
	r, _, out := newRunner(t, mines.Params{Cols: 3, Lines: 3, Mines: 1})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.Run(ctx, strings.NewReader("g\n"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
}

func TestExecuteBlankLine(t *testing.T) {
	r, g, out := newRunner(t, mines.Params{Cols: 3, Lines: 3, Mines: 1})

	for _, line := range []string{"", "   ", "\t"} {
		assert.ErrorIs(t, r.Execute(context.Background(), line), ErrEmptyCommand, "%q", line)
	}
	assert.Empty(t, out.String())
	assert.Zero(t, g.Moves())
}

func TestRunCanceledWhileReading(t *testing.T) {
	r, _, _ := newRunner(t, mines.Params{Cols: 3, Lines: 3, Mines: 1})
	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx, pr) }()

	_, err := io.WriteString(pw, "g\n")
	require.NoError(t, err)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
