package agent

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vancomm/minesweeper-agent/internal/mines"
)

/*
Sentence is an atomic logical statement about the board: exactly `count`
of `cells` are mines. Sentences are built from revealed clues and shrink
as individual cells get settled; a sentence whose count reaches zero or
its own cardinality settles every cell left in it.
*/
type Sentence struct {
	cells mines.CellSet
	count int
}

// panics [AssertionError] when count lies outside [0, |cells|]; a sentence
// malformed that way means the inference logic itself has gone wrong, not
// that the input was bad
func NewSentence(cells mines.CellSet, count int) *Sentence {
	if count < 0 || count > cells.Len() {
		panic(AssertionError{fmt.Sprintf(
			"sentence count %d outside [0, %d]", count, cells.Len(),
		)})
	}
	return &Sentence{cells: cells.Clone(), count: count}
}

func (s *Sentence) Cells() mines.CellSet {
	return s.cells.Clone()
}

func (s *Sentence) Count() int {
	return s.count
}

// KnownMines returns every cell of the sentence when all of them must be
// mines. The second result distinguishes "no conclusion" from a concluded
// empty set.
func (s *Sentence) KnownMines() (mines.CellSet, bool) {
	if s.cells.Len() == s.count {
		return s.cells.Clone(), true
	}
	return nil, false
}

// KnownSafes returns every cell of the sentence when none of them can be
// a mine, with the same two-value contract as [Sentence.KnownMines].
func (s *Sentence) KnownSafes() (mines.CellSet, bool) {
	if s.count == 0 {
		return s.cells.Clone(), true
	}
	return nil, false
}

// MarkMine removes a cell known to be a mine: one fewer unsettled cell,
// one fewer mine to find among the rest. No-op when the cell is absent.
func (s *Sentence) MarkMine(c mines.Cell) {
	if s.cells.Has(c) {
		s.cells.Delete(c)
		s.count--
	}
}

// MarkSafe removes a cell known to be safe; it never counted toward the
// mine total, so count is unchanged. No-op when the cell is absent.
func (s *Sentence) MarkSafe(c mines.Cell) {
	if s.cells.Has(c) {
		s.cells.Delete(c)
	}
}

func (s *Sentence) Equal(other *Sentence) bool {
	return s.count == other.count && s.cells.Equal(other.cells)
}

func (s *Sentence) String() string {
	cells := s.cells.Slice()
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Row != cells[j].Row {
			return cells[i].Row < cells[j].Row
		}
		return cells[i].Col < cells[j].Col
	})
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = c.String()
	}
	return fmt.Sprintf("{%s} = %d", strings.Join(parts, " "), s.count)
}
