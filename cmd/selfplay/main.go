package main

import (
	"context"
	"encoding/json"
	"flag"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"khs/internal/khs"
)

// Fixture 一个局面和轮到方的全部合法走法，给前端或别的实现对拍用
type Fixture struct {
	FEN    string         `json:"fen"`
	Flanks khs.FlankState `json:"flanks"`
	Side   string         `json:"side"`
	Moves  []string       `json:"moves"`
}

type result struct {
	Game     int
	Plies    int
	Winner   khs.Side
	Reason   string
	Elapsed  time.Duration
	Fixtures []Fixture
}

// playout 双方都随机走合法招，直到吃王、无招可走或步数用完
func playout(game int, seed int64, maxPlies int, record bool) (result, error) {
	rng := rand.New(rand.NewSource(seed))
	g := khs.NewGame()
	res := result{Game: game, Winner: khs.NoSide, Reason: "max plies"}
	start := time.Now()

	for res.Plies < maxPlies {
		moves := g.AllLegalMoves()
		if record {
			fx := Fixture{FEN: g.Board.Encode(), Flanks: g.Flanks, Side: g.Turn.String(), Moves: make([]string, len(moves))}
			for i, m := range moves {
				fx.Moves[i] = m.String()
			}
			res.Fixtures = append(res.Fixtures, fx)
		}
		if len(moves) == 0 {
			res.Reason = "no moves"
			break
		}
		m := moves[rng.Intn(len(moves))]
		if _, err := g.Play(m.From, m.To); err != nil {
			return res, errors.Wrapf(err, "game %d ply %d", game, res.Plies)
		}
		res.Plies++
		if g.Over {
			res.Winner = g.Winner
			res.Reason = "king captured"
			break
		}
	}

	// 回放历史必须得到同样的终局
	final := g.Board.Encode()
	if err := g.GoToHistory(len(g.History)); err != nil {
		return res, err
	}
	if got := g.Board.Encode(); got != final {
		return res, errors.Errorf("game %d: history tip %q differs from final %q", game, got, final)
	}

	res.Elapsed = time.Since(start)
	return res, nil
}

func main() {
	games := flag.Int("games", 10, "number of games")
	maxPlies := flag.Int("maxplies", 400, "max plies per game")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	workers := flag.Int("workers", runtime.NumCPU(), "games played in parallel")
	out := flag.String("json", "", "write legal-move fixtures to this file")
	flag.Parse()

	log, _ := zap.NewDevelopment()
	defer log.Sync()

	results := make([]result, *games)
	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(*workers)
	for i := 0; i < *games; i++ {
		i := i
		g.Go(func() error {
			r, err := playout(i, *seed+int64(i), *maxPlies, *out != "")
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal("selfplay failed", zap.Error(err))
	}

	var fixtures []Fixture
	wins := map[khs.Side]int{}
	for _, r := range results {
		wins[r.Winner]++
		fixtures = append(fixtures, r.Fixtures...)
		log.Info("game finished",
			zap.Int("game", r.Game),
			zap.Int("plies", r.Plies),
			zap.Stringer("winner", r.Winner),
			zap.String("reason", r.Reason),
			zap.Duration("elapsed", r.Elapsed),
		)
	}
	log.Info("selfplay finished",
		zap.Int64("seed", *seed),
		zap.Int("cho", wins[khs.Cho]),
		zap.Int("han", wins[khs.Han]),
		zap.Int("undecided", wins[khs.NoSide]),
	)

	if *out == "" {
		return
	}
	data, err := json.MarshalIndent(fixtures, "", "  ")
	if err != nil {
		log.Fatal("encode fixtures", zap.Error(err))
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		log.Fatal("write fixtures", zap.Error(err))
	}
	log.Info("fixtures written", zap.String("path", *out), zap.Int("positions", len(fixtures)))
}
