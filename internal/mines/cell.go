package mines

import "fmt"

// Cell is a board coordinate. Row and Col are zero-based.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Neighbors returns the cells within one row and column of c, clipped to a
// height x width board and excluding c itself.
func (c Cell) Neighbors(height, width int) []Cell {
	ns := make([]Cell, 0, 8)
	for i := c.Row - 1; i <= c.Row+1; i++ {
		for j := c.Col - 1; j <= c.Col+1; j++ {
			if i == c.Row && j == c.Col {
				continue
			}
			if 0 <= i && i < height && 0 <= j && j < width {
				ns = append(ns, Cell{i, j})
			}
		}
	}
	return ns
}

type void struct{}

// CellSet is a set of cells keyed by value.
type CellSet map[Cell]void

func NewCellSet(cells ...Cell) CellSet {
	s := make(CellSet, len(cells))
	for _, c := range cells {
		s[c] = void{}
	}
	return s
}

func (s CellSet) Add(c Cell) {
	s[c] = void{}
}

func (s CellSet) Has(c Cell) bool {
	_, ok := s[c]
	return ok
}

func (s CellSet) Delete(c Cell) {
	delete(s, c)
}

func (s CellSet) Len() int {
	return len(s)
}

func (s CellSet) Clone() CellSet {
	clone := make(CellSet, len(s))
	for c := range s {
		clone[c] = void{}
	}
	return clone
}

func (s CellSet) Equal(other CellSet) bool {
	if len(s) != len(other) {
		return false
	}
	for c := range s {
		if !other.Has(c) {
			return false
		}
	}
	return true
}

// SubsetOf reports whether every cell of s is in other.
func (s CellSet) SubsetOf(other CellSet) bool {
	if len(s) > len(other) {
		return false
	}
	for c := range s {
		if !other.Has(c) {
			return false
		}
	}
	return true
}

// Difference returns a new set holding the cells of s not in other.
func (s CellSet) Difference(other CellSet) CellSet {
	diff := make(CellSet)
	for c := range s {
		if !other.Has(c) {
			diff[c] = void{}
		}
	}
	return diff
}

func (s CellSet) Slice() []Cell {
	cells := make([]Cell, 0, len(s))
	for c := range s {
		cells = append(cells, c)
	}
	return cells
}
