package agent

import (
	"fmt"

	"github.com/gammazero/deque"

	"github.com/vancomm/minesweeper-agent/internal/mines"
)

type pendingMark struct {
	cell mines.Cell
	mine bool
}

/*
infer runs the two inference phases to a fixpoint: extraction pulls
settled cells out of sentences and broadcasts them, resolution derives
new sentences from subset pairs and drops the subsumed supersets. Either
phase reporting a change re-arms the other; the loop ends when a full
cycle changes nothing.

Termination: every derivable cell set is a subset of the finite board,
derived sentences are strictly smaller than the supersets they replace,
and insertion dedup keeps the base free of revisited sentences.
*/
func (a *Agent) infer() {
	for changed := true; changed; {
		changed = a.extract()
		if a.resolve() {
			changed = true
		}
	}
}

// extract broadcasts every cell settled by some sentence. Conclusions are
// queued first and drained after the scan, since broadcasting mutates the
// very sentences being read.
func (a *Agent) extract() bool {
	var pending deque.Deque[pendingMark]
	for _, s := range a.knowledge {
		if cells, ok := s.KnownMines(); ok {
			for c := range cells {
				pending.PushBack(pendingMark{c, true})
			}
		}
		if cells, ok := s.KnownSafes(); ok {
			for c := range cells {
				pending.PushBack(pendingMark{c, false})
			}
		}
	}

	changed := pending.Len() > 0
	for pending.Len() > 0 {
		p := pending.PopFront()
		if p.mine {
			a.MarkMine(p.cell)
		} else {
			a.MarkSafe(p.cell)
		}
	}

	a.prune()
	return changed
}

// resolve applies subset resolution to every ordered pair of distinct
// sentences: where B's cells are contained in A's, the complement A\B
// with count A-B is a new sentence and A itself is redundant. Reports
// whether any superset got removed.
func (a *Agent) resolve() bool {
	var (
		derived  []*Sentence
		subsumed []*Sentence
	)
	for _, s1 := range a.knowledge {
		wasSuperset := false
		for _, s2 := range a.knowledge {
			if s1.Equal(s2) {
				continue
			}
			if s2.cells.SubsetOf(s1.cells) {
				wasSuperset = true
				derived = append(derived, NewSentence(
					s1.cells.Difference(s2.cells),
					s1.count-s2.count,
				))
			}
		}
		if wasSuperset {
			subsumed = append(subsumed, s1)
		}
	}

	changed := false
	for _, s := range subsumed {
		if a.remove(s) {
			changed = true
		}
	}
	for _, s := range derived {
		a.insert(s)
	}

	if changed {
		Log.WithFields(map[string]any{
			"removed":   len(subsumed),
			"derived":   len(derived),
			"knowledge": len(a.knowledge),
		}).Debug("resolution pass")
	}
	return changed
}

// insert appends a sentence to the knowledge base unless it is vacuous or
// a value-duplicate of one already held.
func (a *Agent) insert(s *Sentence) bool {
	if s.cells.Len() == 0 {
		return false
	}
	for _, t := range a.knowledge {
		if t.Equal(s) {
			return false
		}
	}
	a.knowledge = append(a.knowledge, s)
	return true
}

// remove drops the first sentence equal in value to s. Removal is by
// value, not identity.
func (a *Agent) remove(s *Sentence) bool {
	for i, t := range a.knowledge {
		if t.Equal(s) {
			a.knowledge = append(a.knowledge[:i], a.knowledge[i+1:]...)
			return true
		}
	}
	return false
}

// prune discards sentences that broadcasting has emptied out. An emptied
// sentence with a leftover count means the knowledge base contradicts
// itself.
//
// panics [AssertionError]
func (a *Agent) prune() {
	kept := a.knowledge[:0]
	for _, s := range a.knowledge {
		if s.cells.Len() == 0 {
			if s.count != 0 {
				panic(AssertionError{fmt.Sprintf(
					"emptied sentence retains count %d", s.count,
				)})
			}
			continue
		}
		kept = append(kept, s)
	}
	a.knowledge = kept
}
