package mines

import (
	"math/rand/v2"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Log.SetLevel(logrus.DebugLevel)
	Log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	m.Run()
}

func countMines(b *Board) (n int) {
	for _, c := range b.All() {
		if c.Mine {
			n++
		}
	}
	return
}

func TestRandomMinePlacement(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params Params
	}{
		{name: "1x1(0)", params: Params{Cols: 1, Lines: 1, Mines: 0}},
		{name: "1x1(1)", params: Params{Cols: 1, Lines: 1, Mines: 1}},
		{name: "8x8(10)", params: Params{Cols: 8, Lines: 8, Mines: 10}},
		{name: "16x16(40)", params: Params{Cols: 16, Lines: 16, Mines: 40}},
		{name: "30x16(99)", params: Params{Cols: 30, Lines: 16, Mines: 99}},
		{name: "30x24(667)", params: Params{Cols: 30, Lines: 24, Mines: 667}},
		{name: "5x3(15)", params: Params{Cols: 5, Lines: 3, Mines: 15}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			r := rand.New(rand.NewPCG(1, 2))
			for range 20 {
				b, err := NewRandom(test.params, r)
				require.NoError(t, err)

				assert.Equal(t, test.params.Mines, countMines(b))
				assert.Equal(t, test.params.Mines, b.MinesLeft())
				assert.Equal(t, test.params.Cols*test.params.Lines-test.params.Mines, b.SafeCells())
				assert.Zero(t, b.CellsRevealed())
				assert.Empty(t, b.Hints())
				_, ok := b.LastClicked()
				assert.False(t, ok)
			}
		})
	}
}

func TestRandomMinePlacementIsSeeded(t *testing.T) {
	params := Params{Cols: 16, Lines: 16, Mines: 40}

	b1, err := NewRandom(params, rand.New(rand.NewPCG(7, 11)))
	require.NoError(t, err)
	b2, err := NewRandom(params, rand.New(rand.NewPCG(7, 11)))
	require.NoError(t, err)
	b3, err := NewRandom(params, rand.New(rand.NewPCG(8, 11)))
	require.NoError(t, err)

	assert.Equal(t, b1.cells, b2.cells)
	assert.NotEqual(t, b1.cells, b3.cells)
}

func TestRandomMinePlacementCoversEveryCell(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	params := Params{Cols: 4, Lines: 3, Mines: 1}
	r := rand.New(rand.NewPCG(1, 2))
	seen := make(map[Position]int)
	for range 1200 {
		b, err := NewRandom(params, r)
		require.NoError(t, err)
		for pos, c := range b.All() {
			if c.Mine {
				seen[pos]++
			}
		}
	}

	assert.Len(t, seen, params.Cols*params.Lines)
	for pos, n := range seen {
		// 100 expected per square
		assert.Greater(t, n, 50, "square %s picked too rarely", pos)
	}
}

func TestInvalidConfiguration(t *testing.T) {
	tests := []struct {
		name   string
		params Params
	}{
		{name: "zero cols", params: Params{Cols: 0, Lines: 5, Mines: 0}},
		{name: "zero lines", params: Params{Cols: 5, Lines: 0, Mines: 0}},
		{name: "negative cols", params: Params{Cols: -3, Lines: 5, Mines: 1}},
		{name: "negative mines", params: Params{Cols: 5, Lines: 5, Mines: -1}},
		{name: "too many mines", params: Params{Cols: 3, Lines: 3, Mines: 10}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			b, err := NewRandom(test.params, rand.New(rand.NewPCG(1, 2)))
			assert.ErrorIs(t, err, ErrInvalidConfiguration)
			assert.Nil(t, b)
		})
	}
}

func TestFixedLayout(t *testing.T) {
	b, err := New(4, 2, []Position{{0, 0}, {3, 1}})
	require.NoError(t, err)

	assert.Equal(t, 2, b.Mines())
	assert.Equal(t, 6, b.SafeCells())
	c, err := b.Cell(Position{3, 1})
	require.NoError(t, err)
	assert.Equal(t, Cell{Mine: true}, c)
	c, err = b.Cell(Position{1, 0})
	require.NoError(t, err)
	assert.Equal(t, Cell{}, c)
}

func TestFixedLayoutErrors(t *testing.T) {
	_, err := New(3, 3, []Position{{3, 0}})
	assert.ErrorIs(t, err, ErrInvalidPosition)

	_, err = New(3, 3, []Position{{0, -1}})
	assert.ErrorIs(t, err, ErrInvalidPosition)

	_, err = New(3, 3, []Position{{1, 1}, {1, 1}})
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = New(0, 3, nil)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestParams(t *testing.T) {
	p := Params{Cols: 30, Lines: 16, Mines: 99}
	assert.Equal(t, "30x16(99)", p.String())
	assert.NoError(t, p.Validate())
	assert.True(t, p.PointInBounds(Position{29, 15}))
	assert.False(t, p.PointInBounds(Position{30, 0}))
	assert.False(t, p.PointInBounds(Position{0, 16}))
	assert.False(t, p.PointInBounds(Position{-1, 0}))
}
