package mcts

import (
	"math"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
)

const (
	DefaultIterations = 1000
	// 探索常数默认 √2
	DefaultExploration = math.Sqrt2

	// 输棋/和棋时按对局长度加的奖励上限：min(len/50, 0.2)
	depthBonusDivisor = 50.0
	depthBonusMax     = 0.2
)

type Option func(s *Searcher)

func WithExploration(c float64) Option {
	return func(s *Searcher) {
		if c >= 0 {
			s.exploration = c
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(s *Searcher) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithDrawBonus 是否给输棋/和棋加长度奖励（拖得越久越好）。默认开启。
func WithDrawBonus(on bool) Option {
	return func(s *Searcher) {
		s.drawBonus = on
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Searcher) {
		s.log = l
	}
}

func depthBonus(length int) float64 {
	return math.Min(float64(length)/depthBonusDivisor, depthBonusMax)
}
