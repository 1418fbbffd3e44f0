package agent

import (
	"math/rand/v2"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-agent/internal/mines"
)

var Log = logrus.New()

/*
Agent plays minesweeper from clues alone. Each revealed cell's neighbor
mine count becomes a [Sentence] in the knowledge base; the inference loop
then settles as many cells as the knowledge allows. The agent never sees
the board itself.
*/
type Agent struct {
	height, width int

	movesMade mines.CellSet
	safes     mines.CellSet
	mines     mines.CellSet

	knowledge []*Sentence

	rnd *rand.Rand
}

// NewAgent creates an agent for a height x width board. The rand is used
// by the move policies; pass a seeded one for reproducible games.
func NewAgent(height, width int, r *rand.Rand) *Agent {
	return &Agent{
		height:    height,
		width:     width,
		movesMade: mines.NewCellSet(),
		safes:     mines.NewCellSet(),
		mines:     mines.NewCellSet(),
		rnd:       r,
	}
}

// MarkMine records a confirmed mine and broadcasts it into every sentence
// in the knowledge base. Repeat calls with the same cell are idempotent.
func (a *Agent) MarkMine(c mines.Cell) {
	a.mines.Add(c)
	for _, s := range a.knowledge {
		s.MarkMine(c)
	}
}

// MarkSafe records a confirmed safe cell and broadcasts it into every
// sentence in the knowledge base.
func (a *Agent) MarkSafe(c mines.Cell) {
	a.safes.Add(c)
	for _, s := range a.knowledge {
		s.MarkSafe(c)
	}
}

/*
AddKnowledge feeds the agent a revealed cell and its neighbor mine count.
It records the move, marks the cell safe, builds a sentence over the
cell's unsettled neighbors, and runs inference to a fixpoint.

Known-mine neighbors are left out of the new sentence's cell set while
count keeps the raw clue value. When the resulting knowledge turns out to
be contradictory, the inference core panics an [AssertionError], which is
returned here as an error.
*/
func (a *Agent) AddKnowledge(cell mines.Cell, count int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if ae, ok := r.(AssertionError); ok {
				err = ae
				return
			}
			panic(r)
		}
	}()

	a.movesMade.Add(cell)
	a.MarkSafe(cell)

	nearby := mines.NewCellSet()
	for _, n := range cell.Neighbors(a.height, a.width) {
		if a.movesMade.Has(n) || a.mines.Has(n) || a.safes.Has(n) {
			continue
		}
		nearby.Add(n)
	}
	a.insert(NewSentence(nearby, count))

	a.infer()
	return nil
}

// MakeSafeMove returns a cell proven safe that has not been chosen yet,
// uniformly at random among candidates. The second result is false when
// no such cell exists. Never mutates agent state.
func (a *Agent) MakeSafeMove() (mines.Cell, bool) {
	var candidates []mines.Cell
	for row := range a.height {
		for col := range a.width {
			c := mines.Cell{Row: row, Col: col}
			if a.safes.Has(c) && !a.movesMade.Has(c) {
				candidates = append(candidates, c)
			}
		}
	}
	if len(candidates) == 0 {
		return mines.Cell{}, false
	}
	return candidates[a.rnd.IntN(len(candidates))], true
}

// MakeRandomMove returns a uniformly random cell that has not been chosen
// and is not a known mine. Its safety may be unknown. The second result
// is false when every cell on the board is either played or a known mine.
func (a *Agent) MakeRandomMove() (mines.Cell, bool) {
	var candidates []mines.Cell
	for row := range a.height {
		for col := range a.width {
			c := mines.Cell{Row: row, Col: col}
			if !a.movesMade.Has(c) && !a.mines.Has(c) {
				candidates = append(candidates, c)
			}
		}
	}
	if len(candidates) == 0 {
		return mines.Cell{}, false
	}
	return candidates[a.rnd.IntN(len(candidates))], true
}

func (a *Agent) Safes() mines.CellSet {
	return a.safes.Clone()
}

func (a *Agent) Mines() mines.CellSet {
	return a.mines.Clone()
}

func (a *Agent) MovesMade() mines.CellSet {
	return a.movesMade.Clone()
}

func (a *Agent) KnowledgeSize() int {
	return len(a.knowledge)
}
