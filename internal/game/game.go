package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"

	"github.com/vancomm/minesweep/internal/mines"
	"github.com/vancomm/minesweep/internal/telemetry"
)

var Log = logrus.New()

var (
	ErrRoundInProgress = errors.New("round still in progress")
	ErrRoundOver       = errors.New("round is over")
)

type Status uint8

const (
	Playing Status = iota
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// Game drives consecutive rounds on boards of the same size. Like the
// board it wraps, it is meant to be owned by a single goroutine.
type Game struct {
	params mines.Params
	rnd    *rand.Rand
	tracer trace.Tracer
	logger *logrus.Logger
	now    func() time.Time

	board   *mines.Board
	status  Status
	id      uuid.UUID
	moves   int
	started time.Time
	ended   time.Time
	span    trace.Span
}

type Option func(*Game)

func WithTracer(t trace.Tracer) Option {
	return func(g *Game) { g.tracer = t }
}

func WithLogger(l *logrus.Logger) Option {
	return func(g *Game) { g.logger = l }
}

func WithClock(now func() time.Time) Option {
	return func(g *Game) { g.now = now }
}

func New(params mines.Params, rnd *rand.Rand, opts ...Option) (*Game, error) {
	g := &Game{
		params: params,
		rnd:    rnd,
		tracer: telemetry.NoopTracer(),
		logger: Log,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	if err := g.newRound(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) Board() *mines.Board   { return g.board }
func (g *Game) Status() Status        { return g.status }
func (g *Game) Params() mines.Params  { return g.params }
func (g *Game) ID() uuid.UUID         { return g.id }
func (g *Game) Moves() int            { return g.moves }
func (g *Game) Playing() bool         { return g.status == Playing }
func (g *Game) log() *logrus.Entry    { return g.logger.WithField("round", g.id.String()) }

func (g *Game) Elapsed() time.Duration {
	if g.status == Playing {
		return g.now().Sub(g.started)
	}
	return g.ended.Sub(g.started)
}

// Reset starts a new round. The current round must be over.
func (g *Game) Reset() error {
	if g.status == Playing {
		return ErrRoundInProgress
	}
	return g.newRound()
}

// Close ends the trace of a round that is still being played.
func (g *Game) Close() {
	if g.status != Playing {
		return
	}
	g.span.SetAttributes(telemetry.MovesKey.Int(g.moves))
	g.span.SetAttributes(telemetry.BoardAttributes("abandoned", g.board)...)
	g.span.End()
}

func (g *Game) newRound() error {
	board, err := mines.NewRandom(g.params, g.rnd)
	if err != nil {
		return fmt.Errorf("unable to create board: %w", err)
	}
	g.board = board
	g.status = Playing
	g.id = uuid.New()
	g.moves = 0
	g.started = g.now()
	g.ended = time.Time{}
	_, g.span = g.tracer.Start(context.Background(), "game.round",
		trace.WithAttributes(telemetry.RoundAttributes(g.id.String(), g.params)...))

	g.log().WithField("params", g.params.String()).Info("round started")

	// a board without mines is won before the first click
	g.update()
	return nil
}

// Click forwards a player action to the board and settles the round when
// it reaches a terminal state. Only clicks that change a square count as
// moves.
func (g *Game) Click(ctx context.Context, p mines.Position, flag bool) error {
	ctx = trace.ContextWithSpan(ctx, g.span)
	_, span := g.tracer.Start(ctx, "game.click",
		trace.WithAttributes(telemetry.ClickAttributes(p, flag)...))
	defer span.End()

	if g.status != Playing {
		return ErrRoundOver
	}
	before, err := g.board.Cell(p)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if err := g.board.Action(p, flag); err != nil {
		span.RecordError(err)
		return err
	}
	if after, _ := g.board.Cell(p); after == before {
		g.log().WithField("position", p.String()).Debug("click ignored")
		return nil
	}
	g.moves++
	g.update()

	span.SetAttributes(telemetry.BoardAttributes(g.status.String(), g.board)...)
	return nil
}

func (g *Game) update() {
	b := g.board
	won := b.MinesLeft() <= 0 || b.CellsRevealed() == b.SafeCells()
	last, ok := b.LastClicked()
	lost := ok && last.Mine
	if !won && !lost {
		return
	}

	g.status = Lost
	if won {
		g.status = Won
	}
	g.ended = g.now()
	b.ResetLastClicked()
	b.OpenAllMines()

	g.span.SetAttributes(telemetry.MovesKey.Int(g.moves))
	g.span.SetAttributes(telemetry.BoardAttributes(g.status.String(), b)...)
	g.span.End()

	g.log().WithFields(logrus.Fields{
		"status":   g.status.String(),
		"moves":    g.moves,
		"revealed": b.CellsRevealed(),
		"elapsed":  g.Elapsed().String(),
	}).Info("round over")
}
