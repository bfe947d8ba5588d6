package main

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"tiergewinnt/internal/connect4"
	"tiergewinnt/internal/engine"
)

// 几个固定的开局局面，覆盖空盘、中盘和双方都有威胁的情况
var benchPositions = []string{"", "3", "3323", "33242415", "3324241566"}

// runBenchmark 对每个局面从深度 1 搜到 maxDepth，打印节点数和 NPS。
// 每个深度用新引擎，TT 不跨深度复用。
func runBenchmark(maxDepth int, expert bool, log zerolog.Logger) {
	for _, seq := range benchPositions {
		b := connect4.NewStandardBoard()
		if expert {
			b = connect4.NewExpertBoard()
		}
		for _, ch := range seq {
			if !b.ApplyMove(int(ch - '0')) {
				log.Fatal().Str("seq", seq).Msg("bad benchmark position")
			}
		}

		fmt.Printf("\n=== %s ===\n%s\n", b.Encode(), b)
		for depth := 1; depth <= maxDepth; depth++ {
			e := engine.NewAlphaBeta(depth, engine.WithSeed(1), engine.WithLogger(log))
			res := e.Search(b)
			nps := int64(0)
			if secs := res.TimeUsed.Seconds(); secs > 0 {
				nps = int64(float64(res.Nodes) / secs)
			}
			fmt.Printf("depth %2d  move %d  score %6d  nodes %10d  tt %8d  time %-12v  nps %d %s\n",
				depth, res.BestMove, res.Score, res.Nodes, e.TTSize(), res.TimeUsed.Round(time.Microsecond), nps, res.Shortcut)
		}
	}
}
