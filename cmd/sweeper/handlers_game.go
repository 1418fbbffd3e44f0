package main

import (
	"hash/maphash"
	"math/rand/v2"
	"net/http"
	"strconv"

	"github.com/gorilla/schema"

	"github.com/vancomm/minesweeper-agent/internal/agent"
	"github.com/vancomm/minesweeper-agent/internal/mines"
)

var dec = schema.NewDecoder()

func init() {
	dec.IgnoreUnknownKeys(true)
}

type NewGameParams struct {
	Height    int     `schema:"height,required"`
	Width     int     `schema:"width,required"`
	MineCount int     `schema:"mine_count,required"`
	Seed      *uint64 `schema:"seed"`
}

func newGameRand(seed *uint64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewPCG(*seed, *seed))
	}
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(),
		new(maphash.Hash).Sum64(),
	))
}

func handleNewGame(w http.ResponseWriter, r *http.Request) {
	var gameParams NewGameParams
	if err := dec.Decode(&gameParams, r.URL.Query()); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	params := mines.GameParams{
		Height:    gameParams.Height,
		Width:     gameParams.Width,
		MineCount: gameParams.MineCount,
	}
	if err := params.Validate(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSON(w, map[string]string{"error": err.Error()})
		return
	}

	rnd := newGameRand(gameParams.Seed)
	board, err := mines.NewBoard(params, rnd)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
		return
	}
	ag := agent.NewAgent(params.Height, params.Width, rnd)

	var playerId *int64
	if claims, ok := r.Context().Value(ctxPlayerClaims).(*PlayerClaims); ok {
		log.Debug("creating session for player ", claims.Username)
		playerId = &claims.PlayerId
		refreshPlayerCookies(w, *claims)
	} else {
		log.Debug("creating anonymous session")
	}

	session := sessions.create(playerId, board, ag)
	if _, err := sendJSON(w, session); err != nil {
		log.Error(err)
	}
}

func sessionFromPath(w http.ResponseWriter, r *http.Request) (*GameSession, bool) {
	sessionId, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return nil, false
	}
	session, ok := sessions.get(sessionId)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return nil, false
	}
	return session, true
}

func handleGetGame(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromPath(w, r)
	if !ok {
		return
	}
	if _, err := sendJSON(w, session); err != nil {
		log.Error(err)
	}
}

func handleStep(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromPath(w, r)
	if !ok {
		return
	}
	if err := session.step(r.Context()); err != nil {
		w.WriteHeader(http.StatusConflict)
		sendJSON(w, map[string]string{"error": err.Error()})
		return
	}
	if _, err := sendJSON(w, session); err != nil {
		log.Error(err)
	}
}

func handleAuto(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromPath(w, r)
	if !ok {
		return
	}
	if err := session.auto(r.Context()); err != nil {
		w.WriteHeader(http.StatusConflict)
		sendJSON(w, map[string]string{"error": err.Error()})
		return
	}
	if _, err := sendJSON(w, session); err != nil {
		log.Error(err)
	}
}

func handleGetRecords(w http.ResponseWriter, r *http.Request) {
	var options []GameRecordsOption
	if seed := r.URL.Query().Get("params"); seed != "" {
		gameParams, err := mines.ParseSeed(seed)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		options = append(options, GameRecordsForGameParams(gameParams))
	}
	records, err := getGameRecords(r.Context(), options...)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
		return
	}
	if _, err := sendJSON(w, records); err != nil {
		log.Error(err)
	}
}

func handleGetOwnRecords(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(ctxPlayerClaims).(*PlayerClaims)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	records, err := getGameRecords(
		r.Context(), GameRecordsForPlayer(claims.Username),
	)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
		return
	}
	if _, err := sendJSON(w, records); err != nil {
		log.Error(err)
	}
}
