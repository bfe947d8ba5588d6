package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"tiergewinnt/internal/connect4"
	"tiergewinnt/internal/engine"
	"tiergewinnt/internal/profile"
)

// PlayerConfig 一方的对手档案 + 引擎参数
type PlayerConfig struct {
	Profile profile.Profile
	Opts    profile.EngineOptions
}

func (p PlayerConfig) Name() string {
	if p.Profile.Algorithm == profile.MCTS {
		return fmt.Sprintf("%s (MCTS %d)", p.Profile.ID, p.Profile.Iterations)
	}
	return fmt.Sprintf("%s (Alpha-Beta %d)", p.Profile.ID, p.Profile.Depth)
}

type gameResult struct {
	Index  int
	Winner int // 0 = a, 1 = b, -1 = 和棋
	Moves  int
	Took   time.Duration
}

func main() {
	aID := flag.String("a", "cat", "first profile id")
	bID := flag.String("b", "fox", "second profile id")
	totalGames := flag.Int("games", 10, "number of games; starters alternate")
	expert := flag.Bool("expert", false, "play on the 7x8 board")
	parallel := flag.Int("parallel", 4, "games played at the same time")
	seed := flag.Uint64("seed", 0, "engine seed (0 = time-seeded)")
	bench := flag.Bool("bench", false, "benchmark alpha-beta depths instead of playing games")
	benchDepth := flag.Int("bench-depth", 8, "max depth for -bench")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).With().Timestamp().Logger()

	if *bench {
		runBenchmark(*benchDepth, *expert, log)
		return
	}

	reg := profile.Default()
	a, ok := reg.Lookup(*aID)
	if !ok {
		log.Fatal().Str("profile", *aID).Msg("unknown profile")
	}
	b, ok := reg.Lookup(*bID)
	if !ok {
		log.Fatal().Str("profile", *bID).Msg("unknown profile")
	}

	opts := profile.DefaultEngineOptions()
	opts.Seed = *seed
	opts.Logger = log
	playerA := PlayerConfig{Profile: a, Opts: opts}
	playerB := PlayerConfig{Profile: b, Opts: opts}

	results, err := playMatch(context.Background(), playerA, playerB, *totalGames, *parallel, *expert)
	if err != nil {
		log.Fatal().Err(err).Msg("match aborted")
	}

	aWins, bWins, draws := 0, 0, 0
	for _, r := range results {
		first, second := playerA, playerB
		if r.Index%2 == 1 {
			first, second = playerB, playerA
		}
		outcome := "Draw"
		switch r.Winner {
		case 0:
			aWins++
			outcome = playerA.Name() + " wins"
		case 1:
			bWins++
			outcome = playerB.Name() + " wins"
		default:
			draws++
		}
		fmt.Printf("Game %2d: %s vs %s -> %s in %d moves (%v)\n",
			r.Index+1, first.Name(), second.Name(), outcome, r.Moves, r.Took.Round(time.Millisecond))
	}

	fmt.Printf("\n=== Final Score ===\n")
	fmt.Printf("%s: %d\n", playerA.Name(), aWins)
	fmt.Printf("%s: %d\n", playerB.Name(), bWins)
	fmt.Printf("Draws: %d\n", draws)
}

// playMatch 下 n 盘，偶数盘 a 先手，奇数盘 b 先手。每盘每方一个新引擎。
func playMatch(ctx context.Context, a, b PlayerConfig, n, parallel int, expert bool) ([]gameResult, error) {
	results := make([]gameResult, n)
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	if parallel < 1 {
		parallel = 1
	}
	g.SetLimit(parallel)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			first, second := a, b
			if i%2 == 1 {
				first, second = b, a
			}
			optsFirst, optsSecond := first.Opts, second.Opts
			if optsFirst.Seed != 0 {
				// 每盘不同的种子，同一个 -seed 下整场可复现
				optsFirst.Seed += uint64(2 * i)
				optsSecond.Seed += uint64(2*i + 1)
			}

			start := time.Now()
			winner, moves, err := playGame(ctx,
				profile.NewEngine(first.Profile, optsFirst),
				profile.NewEngine(second.Profile, optsSecond),
				expert)
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}

			r := gameResult{Index: i, Winner: -1, Moves: moves, Took: time.Since(start)}
			switch winner {
			case connect4.Human:
				r.Winner = i % 2 // 先手是 first
			case connect4.AI:
				r.Winner = 1 - i%2
			}
			mu.Lock()
			results[i] = r
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// playGame first 执 Human（先手），second 执 AI。返回赢家（和棋为 Empty）和总步数。
func playGame(ctx context.Context, first, second engine.Engine, expert bool) (connect4.Cell, int, error) {
	b := connect4.NewStandardBoard()
	if expert {
		b = connect4.NewExpertBoard()
	}
	for !b.GameOver() {
		if err := ctx.Err(); err != nil {
			return connect4.Empty, b.MoveCount(), err
		}
		e := first
		if b.CurrentPlayer() == connect4.AI {
			e = second
		}
		col := e.FindBestMove(b)
		if !b.ApplyMove(col) {
			return connect4.Empty, b.MoveCount(), fmt.Errorf("engine returned illegal column %d on %s", col, b.Encode())
		}
	}
	return b.Winner(), b.MoveCount(), nil
}
