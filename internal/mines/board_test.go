package mines

import (
	"math/rand/v2"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	Log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	m.Run()
}

func TestNewBoardPlacement(t *testing.T) {
	tests := []struct {
		name   string
		params GameParams
	}{
		{name: "8x8(8)", params: GameParams{Height: 8, Width: 8, MineCount: 8}},
		{name: "3x3(1)", params: GameParams{Height: 3, Width: 3, MineCount: 1}},
		{name: "2x2(0)", params: GameParams{Height: 2, Width: 2, MineCount: 0}},
		{name: "2x2(4)", params: GameParams{Height: 2, Width: 2, MineCount: 4}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := rand.New(rand.NewPCG(1, 2))
			b, err := NewBoard(test.params, r)
			require.NoError(t, err)

			placed := 0
			for _, mine := range b.Grid {
				if mine {
					placed++
				}
			}
			assert.Equal(t, test.params.MineCount, placed)
		})
	}
}

func TestNewBoardInvalidParams(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))

	_, err := NewBoard(GameParams{Height: 0, Width: 3, MineCount: 0}, r)
	assert.Error(t, err)

	_, err = NewBoard(GameParams{Height: 2, Width: 2, MineCount: 5}, r)
	assert.Error(t, err)

	_, err = NewBoard(GameParams{Height: 2, Width: 2, MineCount: -1}, r)
	assert.Error(t, err)
}

// newTestBoard builds a board with mines at exactly the given cells.
func newTestBoard(t *testing.T, height, width int, mineAt ...Cell) *Board {
	t.Helper()
	b := &Board{
		GameParams: GameParams{Height: height, Width: width, MineCount: len(mineAt)},
		Grid:       make([]bool, height*width),
		Flagged:    make([]bool, height*width),
	}
	for _, c := range mineAt {
		require.True(t, b.CellInBounds(c))
		b.Grid[c.Row*width+c.Col] = true
	}
	return b
}

func TestNeighborMineCount(t *testing.T) {
	b := newTestBoard(t, 3, 3, Cell{0, 0}, Cell{2, 2})

	assert.Equal(t, 2, b.NeighborMineCount(Cell{1, 1}))
	assert.Equal(t, 1, b.NeighborMineCount(Cell{0, 1}))
	assert.Equal(t, 0, b.NeighborMineCount(Cell{0, 2}))
	// the cell itself never counts
	assert.Equal(t, 0, b.NeighborMineCount(Cell{0, 0}))
}

func TestWon(t *testing.T) {
	b := newTestBoard(t, 2, 2, Cell{0, 0})

	assert.False(t, b.Won())

	b.Flag(Cell{0, 0})
	assert.True(t, b.Won())

	b.Flag(Cell{1, 1}) // a wrong flag spoils the win
	assert.False(t, b.Won())
}

func TestParseSeed(t *testing.T) {
	params := GameParams{Height: 16, Width: 30, MineCount: 99}
	parsed, err := ParseSeed(params.Seed())
	require.NoError(t, err)
	assert.Equal(t, params, *parsed)

	_, err = ParseSeed("not a seed")
	assert.Error(t, err)
}
