package engine

import (
	"sort"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"tiergewinnt/internal/connect4"
)

const (
	// 一个足够大的值，当成正负无穷
	scoreInf = 1_000_000_000
)

// 快捷判断的类型，写进 SearchResult.Shortcut 方便调试
const (
	ShortcutWin   = "win"
	ShortcutBlock = "block"
)

// 搜索结果
type SearchResult struct {
	BestMove int           // 最佳列；没有合法着法时为 -1
	Score    int           // 站在走子方视角的分数（快捷返回时只有参考意义）
	Depth    int           // 搜索深度（ply）
	Nodes    int64         // 节点数
	TimeUsed time.Duration // 花费时间
	Shortcut string        // "win" / "block" / ""
}

// FindBestMove 实现 Engine 接口。
func (e *AlphaBeta) FindBestMove(b *connect4.Board) int {
	return e.Search(b).BestMove
}

// Search 在 b 的拷贝上搜索，调用方的棋盘不会被改动。
// 顺序：能一步赢就赢 → 对手能一步赢就堵 → 带置换表的 alpha-beta。
func (e *AlphaBeta) Search(b *connect4.Board) SearchResult {
	start := time.Now()
	atomic.StoreInt64(&e.nodes, 0)

	root := b.Clone()
	moves := root.ValidMoves()
	if root.GameOver() || len(moves) == 0 {
		return SearchResult{BestMove: -1, Depth: e.depth}
	}
	me := root.CurrentPlayer()

	if col, ok := findWinningMove(root, me, moves); ok {
		return SearchResult{
			BestMove: col,
			Score:    WinScore + e.depth,
			Depth:    e.depth,
			TimeUsed: time.Since(start),
			Shortcut: ShortcutWin,
		}
	}
	if col, ok := findWinningMove(root, me.Opponent(), moves); ok {
		return SearchResult{
			BestMove: col,
			Depth:    e.depth,
			TimeUsed: time.Since(start),
			Shortcut: ShortcutBlock,
		}
	}

	ordered := orderCenterFirst(moves, root.Cols())
	var scores []int
	if e.workers > 1 && len(ordered) > 1 {
		scores = e.scoreRootParallel(root, ordered, me)
	} else {
		scores = e.scoreRootSerial(root, ordered, me)
	}

	bestScore := -scoreInf
	for _, s := range scores {
		if s > bestScore {
			bestScore = s
		}
	}
	// 同分（容差内）随机挑一个
	candidates := make([]int, 0, len(ordered))
	for i, s := range scores {
		if s >= bestScore-e.tieTolerance {
			candidates = append(candidates, ordered[i])
		}
	}
	best := candidates[e.rng.Intn(len(candidates))]

	res := SearchResult{
		BestMove: best,
		Score:    bestScore,
		Depth:    e.depth,
		Nodes:    atomic.LoadInt64(&e.nodes),
		TimeUsed: time.Since(start),
	}
	e.log.Debug().
		Int("depth", res.Depth).
		Int64("nodes", res.Nodes).
		Int("best", res.BestMove).
		Int("score", res.Score).
		Ints("scores", scores).
		Dur("took", res.TimeUsed).
		Msg("alpha-beta search")
	return res
}

// findWinningMove 让 player 在 moves 里逐列试走，返回第一个能直接连四的列。
// 试走对手时临时换边，结束后把走子方换回来；棋盘严格还原。
func findWinningMove(b *connect4.Board, player connect4.Cell, moves []int) (int, bool) {
	mover := b.CurrentPlayer()
	b.SetCurrentPlayer(player)
	defer b.SetCurrentPlayer(mover)

	for _, col := range moves {
		if !b.ApplyMove(col) {
			continue
		}
		won := b.GameOver() && b.Winner() == player
		b.UndoMove()
		if won {
			return col, true
		}
	}
	return -1, false
}

// 根节点每个子节点都用完整窗口搜，保证分数是精确值，容差随机才有意义
func (e *AlphaBeta) scoreRootSerial(root *connect4.Board, moves []int, me connect4.Cell) []int {
	scores := make([]int, len(moves))
	for i, col := range moves {
		root.ApplyMove(col)
		scores[i] = e.alphaBeta(root, e.depth-1, -scoreInf, scoreInf, false, me)
		root.UndoMove()
	}
	return scores
}

// 并行版本：每个 goroutine 自己一份棋盘拷贝和局部引擎（独立 TT），不加锁
func (e *AlphaBeta) scoreRootParallel(root *connect4.Board, moves []int, me connect4.Cell) []int {
	scores := make([]int, len(moves))
	var g errgroup.Group
	g.SetLimit(e.workers)
	for i, col := range moves {
		i, col := i, col
		board := root.Clone()
		g.Go(func() error {
			local := e.worker()
			board.ApplyMove(col)
			scores[i] = local.alphaBeta(board, e.depth-1, -scoreInf, scoreInf, false, me)
			atomic.AddInt64(&e.nodes, local.nodes)
			return nil
		})
	}
	_ = g.Wait()
	return scores
}

// alphaBeta 内部递归。maximizing 表示当前轮到 me 走。
// 所有子节点都是原地 ApplyMove / UndoMove，返回前棋盘与进入时一致。
func (e *AlphaBeta) alphaBeta(b *connect4.Board, depth, alpha, beta int, maximizing bool, me connect4.Cell) int {
	e.nodes++

	if b.GameOver() || depth <= 0 {
		return EvaluateDepth(b, me, depth)
	}

	key := ttKey(b.Hash(), me)
	if score, ok := e.probeTT(key, depth, alpha, beta); ok {
		return score
	}
	alphaOrig, betaOrig := alpha, beta

	moves := orderCenterFirst(b.ValidMoves(), b.Cols())
	if len(moves) == 0 {
		return EvaluateDepth(b, me, depth)
	}
	e.promoteKiller(moves, depth)

	var best int
	if maximizing {
		best = -scoreInf
		for _, col := range moves {
			if !b.ApplyMove(col) {
				continue
			}
			score := e.alphaBeta(b, depth-1, alpha, beta, false, me)
			b.UndoMove()
			if score > best {
				best = score
			}
			if best > alpha {
				alpha = best
			}
			if beta <= alpha {
				e.recordKiller(depth, col)
				break
			}
		}
	} else {
		best = scoreInf
		for _, col := range moves {
			if !b.ApplyMove(col) {
				continue
			}
			score := e.alphaBeta(b, depth-1, alpha, beta, true, me)
			b.UndoMove()
			if score < best {
				best = score
			}
			if best < beta {
				beta = best
			}
			if beta <= alpha {
				e.recordKiller(depth, col)
				break
			}
		}
	}

	e.storeTT(key, depth, best, alphaOrig, betaOrig)
	return best
}

// orderCenterFirst 按离中列的距离排序，距离相同左边优先。
func orderCenterFirst(moves []int, cols int) []int {
	center := cols / 2
	sort.SliceStable(moves, func(i, j int) bool {
		return absInt(moves[i]-center) < absInt(moves[j]-center)
	})
	return moves
}

// 杀手着法：该剩余深度上最近一次造成剪枝的列，有的话提到最前
func (e *AlphaBeta) promoteKiller(moves []int, depth int) {
	if depth >= len(e.killers) {
		return
	}
	killer := e.killers[depth]
	if killer < 0 {
		return
	}
	for i, col := range moves {
		if col == killer {
			copy(moves[1:i+1], moves[:i])
			moves[0] = killer
			return
		}
	}
}

func (e *AlphaBeta) recordKiller(depth, col int) {
	for len(e.killers) <= depth {
		e.killers = append(e.killers, -1)
	}
	e.killers[depth] = col
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
