package mines

import (
	"fmt"
	"strings"
)

type GameParams struct {
	Height, Width, MineCount int
}

func (p GameParams) Unpack() (h int, w int, mc int) {
	return p.Height, p.Width, p.MineCount
}

func (p GameParams) Seed() string {
	return fmt.Sprintf("%d:%d:%d", p.Height, p.Width, p.MineCount)
}

func ParseSeed(seed string) (*GameParams, error) {
	p := &GameParams{}
	sseed := strings.ReplaceAll(seed, ":", " ")
	n, err := fmt.Sscanf(sseed, "%d %d %d", &p.Height, &p.Width, &p.MineCount)
	if n != 3 || err != nil {
		return nil, fmt.Errorf(
			`invalid game params seed (sseed = "%s", n = %d, err = %w)`,
			sseed, n, err,
		)
	}
	return p, nil
}

func (p GameParams) CellInBounds(c Cell) bool {
	return 0 <= c.Row && c.Row < p.Height && 0 <= c.Col && c.Col < p.Width
}

func (p GameParams) Validate() error {
	if p.Height <= 0 || p.Width <= 0 {
		return fmt.Errorf("invalid board dimensions %dx%d", p.Height, p.Width)
	}
	if p.MineCount < 0 || p.MineCount > p.Height*p.Width {
		return fmt.Errorf(
			"mine count %d does not fit a %dx%d board",
			p.MineCount, p.Height, p.Width,
		)
	}
	return nil
}
