package sim

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-agent/internal/agent"
	"github.com/vancomm/minesweeper-agent/internal/mines"
)

var Log = logrus.New()

// Move is one entry of a game transcript.
type Move struct {
	Cell mines.Cell `json:"cell"`
	// Safe is true when the move came from a deduction rather than the
	// random fallback.
	Safe bool `json:"safe"`
	// Count is the neighbor mine count revealed by the move; meaningless
	// when Mine is true.
	Count int  `json:"count"`
	Mine  bool `json:"mine"`
}

type Result struct {
	Won  bool `json:"won"`
	Dead bool `json:"dead"`
	// Aborted is set when the agent's knowledge turned contradictory; an
	// aborted run cannot be stepped further.
	Aborted    bool   `json:"aborted"`
	Moves      []Move `json:"moves"`
	MinesFound int    `json:"mines_found"`
}

// ErrNoSafeMove is returned by [Runner.StepSafe] when the agent has no
// proven-safe cell to offer. The game itself is not over.
var ErrNoSafeMove = errors.New("no safe move available")

/*
Runner drives one agent against one board to completion. It is the only
component that talks to both: the board answers point queries, the agent
consumes clues and proposes moves.
*/
type Runner struct {
	Board *mines.Board
	Agent *agent.Agent
}

// Play runs the game loop until the board is won, the agent steps on a
// mine, the agent has no move left, or maxMoves moves have been made
// (maxMoves <= 0 means no limit).
func (r *Runner) Play(maxMoves int) (*Result, error) {
	res := &Result{}
	for maxMoves <= 0 || len(res.Moves) < maxMoves {
		done, err := r.Step(res)
		if err != nil {
			return res, err
		}
		if done {
			break
		}
	}
	res.MinesFound = r.Agent.Mines().Len()
	return res, nil
}

// Step makes a single move, preferring a deduced-safe cell and falling
// back to a random one. It reports true when the game is over or no move
// is available.
func (r *Runner) Step(res *Result) (done bool, err error) {
	if r.over(res) {
		return true, nil
	}

	move, safe := r.Agent.MakeSafeMove()
	if !safe {
		var ok bool
		if move, ok = r.Agent.MakeRandomMove(); !ok {
			Log.Debug("no moves left to make")
			return true, nil
		}
	}
	return r.apply(res, move, safe)
}

// StepSafe makes a single deduced-safe move, never guessing. Returns
// [ErrNoSafeMove] when the agent has nothing proven to play.
func (r *Runner) StepSafe(res *Result) (done bool, err error) {
	if r.over(res) {
		return true, nil
	}
	move, ok := r.Agent.MakeSafeMove()
	if !ok {
		return false, ErrNoSafeMove
	}
	return r.apply(res, move, true)
}

// StepRandom makes a single random move, ignoring any pending safe
// deductions. Reports true when no unplayed non-mine cell is left.
func (r *Runner) StepRandom(res *Result) (done bool, err error) {
	if r.over(res) {
		return true, nil
	}
	move, ok := r.Agent.MakeRandomMove()
	if !ok {
		Log.Debug("no moves left to make")
		return true, nil
	}
	return r.apply(res, move, false)
}

func (r *Runner) over(res *Result) bool {
	return res.Dead || res.Won || res.Aborted
}

// apply plays the chosen move: reveal the cell, feed the clue back to the
// agent, sync flags, check for a win. Appends the move to res.Moves.
func (r *Runner) apply(res *Result, move mines.Cell, safe bool) (bool, error) {
	if r.Board.IsMine(move) {
		res.Moves = append(res.Moves, Move{Cell: move, Safe: safe, Mine: true})
		res.Dead = true
		Log.WithField("cell", move).Debug("stepped on a mine")
		return true, nil
	}

	count := r.Board.NeighborMineCount(move)
	res.Moves = append(res.Moves, Move{Cell: move, Safe: safe, Count: count})
	if err := r.Agent.AddKnowledge(move, count); err != nil {
		res.Aborted = true
		return true, fmt.Errorf("inconsistent knowledge after %s: %w", move, err)
	}

	for c := range r.Agent.Mines() {
		r.Board.Flag(c)
	}
	if r.Board.Won() {
		res.Won = true
		return true, nil
	}
	return false, nil
}
