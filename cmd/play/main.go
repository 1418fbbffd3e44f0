package main

import (
	"flag"
	"hash/maphash"
	"math/rand/v2"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-agent/internal/agent"
	"github.com/vancomm/minesweeper-agent/internal/mines"
	"github.com/vancomm/minesweeper-agent/internal/sim"
)

var log = logrus.New()

var (
	height    = flag.Int("height", 8, "board height")
	width     = flag.Int("width", 8, "board width")
	mineCount = flag.Int("mines", 8, "number of mines")
	games     = flag.Int("games", 1, "number of games to play")
	seed      = flag.Uint64("seed", 0, "random seed (0 picks one)")
	verbose   = flag.Bool("v", false, "debug logging")
)

// winRate is the percentage of games won, zero when nothing was played.
func winRate(won, games int) float64 {
	if games <= 0 {
		return 0
	}
	return 100 * float64(won) / float64(games)
}

func main() {
	flag.Parse()

	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	if *verbose {
		for _, l := range []*logrus.Logger{log, agent.Log, mines.Log, sim.Log} {
			l.SetLevel(logrus.DebugLevel)
		}
	}

	if *games <= 0 {
		log.Fatal("games must be positive")
	}
	if *seed == 0 {
		*seed = new(maphash.Hash).Sum64()
	}
	log.WithField("seed", *seed).Info("playing ", *games, " game(s)")

	params := mines.GameParams{
		Height:    *height,
		Width:     *width,
		MineCount: *mineCount,
	}
	if err := params.Validate(); err != nil {
		log.Fatal(err)
	}

	won := 0
	for i := range *games {
		rnd := rand.New(rand.NewPCG(*seed, uint64(i)))
		board, err := mines.NewBoard(params, rnd)
		if err != nil {
			log.Fatal(err)
		}
		runner := &sim.Runner{
			Board: board,
			Agent: agent.NewAgent(params.Height, params.Width, rnd),
		}
		res, err := runner.Play(0)
		if err != nil {
			log.WithField("game", i).Error(err)
			continue
		}
		if res.Won {
			won++
		}
		log.WithFields(logrus.Fields{
			"game":       i,
			"won":        res.Won,
			"dead":       res.Dead,
			"moves":      len(res.Moves),
			"minesFound": res.MinesFound,
		}).Info("game over")
		if *verbose {
			log.Debug("final board:\n", board)
		}
	}

	log.Infof("won %d/%d (%.1f%%)", won, *games, winRate(won, *games))
}
