package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"tiergewinnt/internal/connect4"
	"tiergewinnt/internal/engine"
	"tiergewinnt/internal/mcts"
	"tiergewinnt/internal/profile"
)

func main() {
	pos := flag.String("pos", "6x7/1:", "encoded position, e.g. 6x7/1:3344")
	prof := flag.String("profile", "", "profile id to ask for a move")
	seed := flag.Uint64("seed", 1, "engine seed")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(zerolog.DebugLevel).With().Timestamp().Logger()

	b, err := connect4.DecodeBoard(*pos)
	if err != nil {
		log.Fatal().Err(err).Str("pos", *pos).Msg("decode position")
	}
	fmt.Println("Position:", b.Encode())
	fmt.Print(b)
	fmt.Printf("To move: %v  Hash: %016x  Moves: %d\n", b.CurrentPlayer(), b.Hash(), b.MoveCount())
	fmt.Println("Valid moves:", b.ValidMoves())
	fmt.Println("Static eval (side to move):", engine.Evaluate(b, b.CurrentPlayer()))
	if b.GameOver() {
		fmt.Println("Game over, winner:", b.Winner(), "line:", b.WinningLine())
		return
	}
	if *prof == "" {
		return
	}

	p, ok := profile.Default().Lookup(*prof)
	if !ok {
		log.Fatal().Str("profile", *prof).Msg("unknown profile")
	}
	switch p.Algorithm {
	case profile.MCTS:
		res := mcts.NewSearcher(p.Iterations, mcts.WithSeed(*seed), mcts.WithLogger(log)).Search(b)
		fmt.Printf("%s: move %d after %d iterations (%v)\n", p.ID, res.BestMove, res.Iterations, res.TimeUsed)
		for _, c := range res.Children {
			fmt.Printf("  col %d  visits %5d  win rate %+.3f\n", c.Move, c.Visits, c.WinRate)
		}
	default:
		res := engine.NewAlphaBeta(p.Depth, engine.WithSeed(*seed), engine.WithLogger(log)).Search(b)
		fmt.Printf("%s: move %d score %d nodes %d (%v) %s\n", p.ID, res.BestMove, res.Score, res.Nodes, res.TimeUsed, res.Shortcut)
	}
}
