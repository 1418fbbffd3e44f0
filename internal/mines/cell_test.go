package mines

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNeighbors(t *testing.T) {
	tests := []struct {
		name string
		cell Cell
		want []Cell
	}{
		{
			name: "center",
			cell: Cell{1, 1},
			want: []Cell{
				{0, 0}, {0, 1}, {0, 2},
				{1, 0}, {1, 2},
				{2, 0}, {2, 1}, {2, 2},
			},
		},
		{
			name: "corner",
			cell: Cell{0, 0},
			want: []Cell{{0, 1}, {1, 0}, {1, 1}},
		},
		{
			name: "edge",
			cell: Cell{0, 1},
			want: []Cell{{0, 0}, {0, 2}, {1, 0}, {1, 1}, {1, 2}},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := test.cell.Neighbors(3, 3)
			assert.ElementsMatch(t, test.want, got)
			assert.NotContains(t, got, test.cell)
		})
	}
}

func TestNeighborsClipped(t *testing.T) {
	got := Cell{0, 0}.Neighbors(1, 2)
	assert.Equal(t, []Cell{{0, 1}}, got)
}

func TestCellSet(t *testing.T) {
	s := NewCellSet(Cell{0, 0}, Cell{0, 1})

	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Has(Cell{0, 0}))
	assert.False(t, s.Has(Cell{1, 1}))

	s.Add(Cell{1, 1})
	assert.True(t, s.Has(Cell{1, 1}))

	s.Delete(Cell{1, 1})
	assert.False(t, s.Has(Cell{1, 1}))
	s.Delete(Cell{1, 1}) // absent delete is a no-op
	assert.Equal(t, 2, s.Len())
}

func TestCellSetClone(t *testing.T) {
	s := NewCellSet(Cell{0, 0})
	clone := s.Clone()
	clone.Add(Cell{5, 5})

	assert.True(t, s.Equal(NewCellSet(Cell{0, 0})))
	assert.False(t, s.Equal(clone))
}

func TestCellSetSubsetOf(t *testing.T) {
	a := NewCellSet(Cell{0, 0}, Cell{0, 1}, Cell{0, 2})
	b := NewCellSet(Cell{0, 0}, Cell{0, 1})

	assert.True(t, b.SubsetOf(a))
	assert.False(t, a.SubsetOf(b))
	assert.True(t, NewCellSet().SubsetOf(b))
	assert.True(t, a.SubsetOf(a))
}

func TestCellSetDifference(t *testing.T) {
	a := NewCellSet(Cell{0, 0}, Cell{0, 1}, Cell{0, 2})
	b := NewCellSet(Cell{0, 0}, Cell{0, 1})

	assert.True(t, a.Difference(b).Equal(NewCellSet(Cell{0, 2})))
	assert.Equal(t, 0, b.Difference(a).Len())
}
