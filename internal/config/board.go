package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"slices"
	"strings"

	"github.com/gorilla/schema"
	"github.com/samber/lo"

	"github.com/vancomm/minesweep/internal/mines"
)

const (
	MaxCols  = 30
	MaxLines = 24
	MaxMines = 667

	DefaultMode = "easy"
)

var ErrUnknownMode = errors.New("unknown mode")

var presets = map[string]mines.Params{
	"easy":   {Cols: 8, Lines: 8, Mines: 10},
	"medium": {Cols: 16, Lines: 16, Mines: 40},
	"hard":   {Cols: 30, Lines: 16, Mines: 99},
}

func Modes() []string {
	modes := lo.Keys(presets)
	slices.Sort(modes)
	return modes
}

func Preset(mode string) (mines.Params, error) {
	p, ok := presets[strings.ToLower(mode)]
	if !ok {
		return mines.Params{}, fmt.Errorf(
			"%w %q: must be one of %s", ErrUnknownMode, mode, strings.Join(Modes(), ", "),
		)
	}
	return p, nil
}

type CustomBoardDTO struct {
	Cols  int `schema:"cols,required"`
	Lines int `schema:"lines,required"`
	Mines int `schema:"mines,required"`
}

func (dto CustomBoardDTO) Validate() error {
	if dto.Cols < 1 || dto.Cols > MaxCols {
		return fmt.Errorf("%w: cols must be within [1, %d]", mines.ErrInvalidConfiguration, MaxCols)
	}
	if dto.Lines < 1 || dto.Lines > MaxLines {
		return fmt.Errorf("%w: lines must be within [1, %d]", mines.ErrInvalidConfiguration, MaxLines)
	}
	if dto.Mines < 0 || dto.Mines > MaxMines {
		return fmt.Errorf("%w: mines must be within [0, %d]", mines.ErrInvalidConfiguration, MaxMines)
	}
	return mines.Params(dto).Validate()
}

// ParseCustomBoard decodes a query string like "cols=30&lines=16&mines=99".
func ParseCustomBoard(query string) (mines.Params, error) {
	values, err := url.ParseQuery(query)
	if err != nil {
		return mines.Params{}, fmt.Errorf("invalid custom board %q: %w", query, err)
	}

	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	var dto CustomBoardDTO
	if err := dec.Decode(&dto, values); err != nil {
		return mines.Params{}, fmt.Errorf("invalid custom board %q: %w", query, err)
	}
	if err := dto.Validate(); err != nil {
		return mines.Params{}, err
	}
	return mines.Params(dto), nil
}

// Board picks the board size: a custom board wins over a preset mode.
func Board(mode, custom string) (mines.Params, error) {
	if custom != "" {
		return ParseCustomBoard(custom)
	}
	if mode == "" {
		mode = DefaultMode
	}
	return Preset(mode)
}

func ModeFromEnv() string {
	return os.Getenv("MINESWEEP_MODE")
}

func CustomFromEnv() string {
	return os.Getenv("MINESWEEP_CUSTOM")
}
