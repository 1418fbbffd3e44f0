package mines

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

// Board holds the ground-truth mine placement. It answers point queries
// about single cells and never exposes the whole placement to a player;
// the agent only ever learns about it through revealed neighbor counts.
type Board struct {
	GameParams
	Grid    []bool /* real mine points */
	Flagged []bool
}

// NewBoard places MineCount mines uniformly at random on an empty grid.
// Pass a seeded rand for reproducible placements.
func NewBoard(params GameParams, r *rand.Rand) (*Board, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	b := &Board{
		GameParams: params,
		Grid:       make([]bool, params.Height*params.Width),
		Flagged:    make([]bool, params.Height*params.Width),
	}
	placed := 0
	for placed != params.MineCount {
		i := r.IntN(len(b.Grid))
		if !b.Grid[i] {
			b.Grid[i] = true
			placed++
		}
	}
	return b, nil
}

func (b *Board) index(c Cell) int {
	return c.Row*b.Width + c.Col
}

func (b *Board) IsMine(c Cell) bool {
	return b.Grid[b.index(c)]
}

// NeighborMineCount returns the number of mines within one row and column
// of c, not counting c itself.
func (b *Board) NeighborMineCount(c Cell) (count int) {
	for _, n := range c.Neighbors(b.Height, b.Width) {
		if b.Grid[b.index(n)] {
			count++
		}
	}
	return
}

func (b *Board) Flag(c Cell) {
	b.Flagged[b.index(c)] = true
}

// Won reports whether the flagged set is exactly the true mine set.
func (b *Board) Won() bool {
	for i := range b.Grid {
		if b.Grid[i] != b.Flagged[i] {
			return false
		}
	}
	return true
}

func (b *Board) String() string {
	var sb strings.Builder
	for row := range b.Height {
		for col := range b.Width {
			var ch string
			switch i := row*b.Width + col; {
			case b.Flagged[i]:
				ch = "F "
			case b.Grid[i]:
				ch = "* "
			default:
				ch = "- "
			}
			fmt.Fprint(&sb, ch)
		}
		fmt.Fprint(&sb, "\n")
	}
	return sb.String()
}
