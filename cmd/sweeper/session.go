package main

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/vancomm/minesweeper-agent/internal/agent"
	"github.com/vancomm/minesweeper-agent/internal/mines"
	"github.com/vancomm/minesweeper-agent/internal/sim"
)

// GameSession is one live agent-vs-board game. Sessions live in memory
// while being played; only finished runs are persisted.
type GameSession struct {
	SessionId int64
	PlayerId  *int64
	Runner    *sim.Runner
	Result    *sim.Result
	StartedAt time.Time
	EndedAt   time.Time

	mu       sync.Mutex
	recorded bool
}

// step advances the game by one agent move, deduced-safe if possible.
func (s *GameSession) step(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.advance(ctx, s.Runner.Step)
}

// stepSafe advances by one deduced-safe move only.
func (s *GameSession) stepSafe(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.advance(ctx, s.Runner.StepSafe)
}

// stepRandom advances by one random move, ignoring deductions.
func (s *GameSession) stepRandom(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.advance(ctx, s.Runner.StepRandom)
}

// auto plays the game out to completion.
func (s *GameSession) auto(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		done, err := s.Runner.Step(s.Result)
		if err != nil {
			s.finish(ctx)
			return err
		}
		if done {
			s.finish(ctx)
			return nil
		}
	}
}

// advance runs one step function and closes the session out when the game
// ends, including aborts on contradictory knowledge. Callers hold s.mu.
func (s *GameSession) advance(
	ctx context.Context, step func(*sim.Result) (bool, error),
) error {
	done, err := step(s.Result)
	if done {
		s.finish(ctx)
	}
	return err
}

// finish stamps the end time and records the run. Callers hold s.mu.
func (s *GameSession) finish(ctx context.Context) {
	if s.recorded {
		return
	}
	s.recorded = true
	s.EndedAt = time.Now().UTC()
	recordId, err := pg.InsertGameRecord(
		ctx, s.PlayerId, s.Runner.Board,
		s.Result.Won, s.Result.Dead, len(s.Result.Moves),
		s.StartedAt, s.EndedAt,
	)
	if err != nil {
		log.Error("unable to record game: ", err)
		return
	}
	log.WithField("recordId", recordId).Debug("game recorded")
}

type GameSessionJSON struct {
	SessionId string       `json:"session_id"`
	Height    int          `json:"height"`
	Width     int          `json:"width"`
	MineCount int          `json:"mine_count"`
	Won       bool         `json:"won"`
	Dead      bool         `json:"dead"`
	Aborted   bool         `json:"aborted"`
	Moves     []sim.Move   `json:"moves"`
	Mines     []mines.Cell `json:"mines"`
	StartedAt int64        `json:"started_at"`
	EndedAt   *int64       `json:"ended_at,omitempty"`
}

func (s *GameSession) MarshalJSON() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deduced := s.Runner.Agent.Mines().Slice()
	sort.Slice(deduced, func(i, j int) bool {
		if deduced[i].Row != deduced[j].Row {
			return deduced[i].Row < deduced[j].Row
		}
		return deduced[i].Col < deduced[j].Col
	})

	var endedAt *int64
	if !s.EndedAt.IsZero() {
		e := s.EndedAt.UnixMilli()
		endedAt = &e
	}
	return json.Marshal(GameSessionJSON{
		SessionId: strconv.FormatInt(s.SessionId, 10),
		Height:    s.Runner.Board.Height,
		Width:     s.Runner.Board.Width,
		MineCount: s.Runner.Board.MineCount,
		Won:       s.Result.Won,
		Dead:      s.Result.Dead,
		Aborted:   s.Result.Aborted,
		Moves:     s.Result.Moves,
		Mines:     deduced,
		StartedAt: s.StartedAt.UnixMilli(),
		EndedAt:   endedAt,
	})
}

type sessionStore struct {
	mu     sync.Mutex
	nextId int64
	items  map[int64]*GameSession
}

func newSessionStore() *sessionStore {
	return &sessionStore{items: make(map[int64]*GameSession)}
}

func (st *sessionStore) create(
	playerId *int64, board *mines.Board, ag *agent.Agent,
) *GameSession {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.nextId++
	session := &GameSession{
		SessionId: st.nextId,
		PlayerId:  playerId,
		Runner:    &sim.Runner{Board: board, Agent: ag},
		Result:    &sim.Result{},
		StartedAt: time.Now().UTC(),
	}
	st.items[session.SessionId] = session
	return session
}

func (st *sessionStore) get(id int64) (*GameSession, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	session, ok := st.items[id]
	return session, ok
}
