package agent

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-agent/internal/mines"
)

func newTestAgent(height, width int) *Agent {
	return NewAgent(height, width, rand.New(rand.NewPCG(1, 2)))
}

func (a *Agent) hasSentence(s *Sentence) bool {
	for _, t := range a.knowledge {
		if t.Equal(s) {
			return true
		}
	}
	return false
}

func TestSubsetResolution(t *testing.T) {
	a := newTestAgent(3, 3)
	super := NewSentence(
		mines.NewCellSet(cell(0, 0), cell(0, 1), cell(0, 2)), 1,
	)
	sub := NewSentence(mines.NewCellSet(cell(0, 0), cell(0, 1)), 1)
	a.insert(super)
	a.insert(sub)

	a.infer()

	// {(0,0) (0,1) (0,2)}=1 minus {(0,0) (0,1)}=1 settles (0,2) safe and
	// subsumes the superset
	assert.True(t, a.safes.Has(cell(0, 2)))
	assert.False(t, a.hasSentence(super))
	assert.True(t, a.hasSentence(sub))
}

func TestExtraction(t *testing.T) {
	a := newTestAgent(3, 3)
	a.insert(NewSentence(mines.NewCellSet(cell(0, 0), cell(0, 1)), 2))
	a.insert(NewSentence(mines.NewCellSet(cell(2, 0), cell(2, 1)), 0))

	a.infer()

	assert.True(t, a.mines.Has(cell(0, 0)))
	assert.True(t, a.mines.Has(cell(0, 1)))
	assert.True(t, a.safes.Has(cell(2, 0)))
	assert.True(t, a.safes.Has(cell(2, 1)))
	// settled sentences get emptied out and pruned
	assert.Equal(t, 0, len(a.knowledge))
}

func TestFixpointIdempotent(t *testing.T) {
	a := newTestAgent(3, 3)
	a.insert(NewSentence(
		mines.NewCellSet(cell(0, 0), cell(0, 1), cell(0, 2)), 1,
	))
	a.insert(NewSentence(mines.NewCellSet(cell(0, 0), cell(0, 1)), 1))
	a.infer()

	knowledge := len(a.knowledge)
	safes := a.safes.Clone()
	knownMines := a.mines.Clone()

	a.infer()

	assert.Equal(t, knowledge, len(a.knowledge))
	assert.True(t, safes.Equal(a.safes))
	assert.True(t, knownMines.Equal(a.mines))
}

func TestInsertCanonicalizes(t *testing.T) {
	a := newTestAgent(3, 3)

	assert.False(t, a.insert(NewSentence(mines.NewCellSet(), 0)))

	s := NewSentence(mines.NewCellSet(cell(0, 0)), 1)
	assert.True(t, a.insert(s))
	assert.False(t, a.insert(NewSentence(mines.NewCellSet(cell(0, 0)), 1)))
	assert.Equal(t, 1, len(a.knowledge))
}

func TestRemoveByValue(t *testing.T) {
	a := newTestAgent(3, 3)
	a.insert(NewSentence(mines.NewCellSet(cell(0, 0)), 1))

	// removal matches by value, not identity
	assert.True(t, a.remove(NewSentence(mines.NewCellSet(cell(0, 0)), 1)))
	assert.Equal(t, 0, len(a.knowledge))
	assert.False(t, a.remove(NewSentence(mines.NewCellSet(cell(0, 0)), 1)))
}

/*
A clue's count keeps its raw value even when known-mine neighbors were
dropped from the sentence's cell set: the sentence nominally still looks
for a mine that is in fact already found. This mismatch is deliberate and
this test pins it down.
*/
func TestKnownMineNeighborKeepsCount(t *testing.T) {
	a := newTestAgent(2, 2)
	a.MarkMine(cell(0, 0))

	require.NoError(t, a.AddKnowledge(cell(1, 1), 1))

	want := NewSentence(mines.NewCellSet(cell(0, 1), cell(1, 0)), 1)
	assert.True(t, a.hasSentence(want),
		"count should not be reduced for the excluded known mine")
}

func TestContradictoryKnowledgeIsAnError(t *testing.T) {
	a := newTestAgent(2, 2)
	// the clue claims 2 mines among (0,1) and (1,0)...
	require.NoError(t, a.AddKnowledge(cell(1, 1), 2))
	// ...which marks both as mines; a clue of 0 for the same cells is now
	// a contradiction surfacing as an internal-consistency error
	err := a.AddKnowledge(cell(0, 0), 0)
	assert.Error(t, err)
}

func TestDeduceMineWithoutRevealingIt(t *testing.T) {
	// 3x3 board, the sole mine sits at (0,0):
	//
	//   * 1 0
	//   1 1 0
	//   0 0 0
	a := newTestAgent(3, 3)

	require.NoError(t, a.AddKnowledge(cell(1, 1), 1))
	assert.Equal(t, 1, len(a.knowledge))

	require.NoError(t, a.AddKnowledge(cell(0, 1), 1))
	// the resolution of the two clues settles the bottom row safe
	assert.True(t, a.safes.Has(cell(2, 0)))
	assert.True(t, a.safes.Has(cell(2, 1)))
	assert.True(t, a.safes.Has(cell(2, 2)))

	require.NoError(t, a.AddKnowledge(cell(1, 0), 1))
	// (0,0) is now the only cell the clues can be about
	assert.True(t, a.mines.Has(cell(0, 0)))
	assert.False(t, a.MovesMade().Has(cell(0, 0)))
}
