package engine

import (
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"

	"tiergewinnt/internal/connect4"
)

// Engine 两种搜索（Alpha-Beta / MCTS）的共同接口。
// FindBestMove 不会改动传入的棋盘；没有合法着法时返回 -1。
type Engine interface {
	FindBestMove(b *connect4.Board) int
}

const (
	DefaultDepth      = 4
	DefaultTTCapacity = 1_000_000
)

type Option func(e *AlphaBeta)

// WithWorkers 根节点并行搜索的 goroutine 数，<=1 表示单线程。
func WithWorkers(n int) Option {
	return func(e *AlphaBeta) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithTTCapacity TT 条目上限，超过后整表清空。
func WithTTCapacity(n int) Option {
	return func(e *AlphaBeta) {
		if n > 0 {
			e.ttCap = n
		}
	}
}

// WithTieTolerance 与最佳分相差不超过 tol 的着法视为同分，随机选一个。
func WithTieTolerance(tol int) Option {
	return func(e *AlphaBeta) {
		if tol >= 0 {
			e.tieTolerance = tol
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(e *AlphaBeta) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(e *AlphaBeta) {
		e.log = l
	}
}

// AlphaBeta 带置换表和杀手着法的极小化极大搜索。
// 一个实例同一时间只跑一次搜索；TT 归该实例私有。
type AlphaBeta struct {
	depth        int
	workers      int
	tieTolerance int

	tt      map[uint64]ttEntry
	ttCap   int
	killers []int // 按剩余深度索引，-1 表示没有
	nodes   int64

	rng *rand.Rand
	log zerolog.Logger
}

func NewAlphaBeta(depth int, opts ...Option) *AlphaBeta {
	if depth <= 0 {
		depth = DefaultDepth
	}
	e := &AlphaBeta{
		depth:   depth,
		workers: 1,
		ttCap:   DefaultTTCapacity,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	e.tt = make(map[uint64]ttEntry, min(e.ttCap, 1<<16))
	return e
}

func (e *AlphaBeta) Depth() int { return e.depth }

// Reset 清空 TT 和杀手表（新开一局时用）。
func (e *AlphaBeta) Reset() {
	e.tt = make(map[uint64]ttEntry, min(e.ttCap, 1<<16))
	e.killers = nil
}

// TTSize 当前 TT 条目数。
func (e *AlphaBeta) TTSize() int { return len(e.tt) }

// 并行根搜索时每个 goroutine 用的局部引擎：自己的 TT，不加锁
func (e *AlphaBeta) worker() *AlphaBeta {
	return &AlphaBeta{
		depth:   e.depth,
		workers: 1,
		tt:      make(map[uint64]ttEntry, 1<<14),
		ttCap:   e.ttCap,
		log:     e.log,
	}
}
