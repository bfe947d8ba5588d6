package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"tiergewinnt/internal/connect4"
)

func boardFromSeq(t *testing.T, b *connect4.Board, seq string) *connect4.Board {
	t.Helper()
	for i, ch := range seq {
		col := int(ch - '0')
		require.Truef(t, b.ApplyMove(col), "move %d (col %d) rejected", i, col)
	}
	return b
}

// minimax 不剪枝、不查表，用来对照 alpha-beta 的根节点分数
func minimax(b *connect4.Board, depth int, maximizing bool, me connect4.Cell) int {
	if b.GameOver() || depth <= 0 {
		return EvaluateDepth(b, me, depth)
	}
	best := scoreInf
	if maximizing {
		best = -scoreInf
	}
	for _, col := range b.ValidMoves() {
		b.ApplyMove(col)
		s := minimax(b, depth-1, !maximizing, me)
		b.UndoMove()
		if maximizing && s > best || !maximizing && s < best {
			best = s
		}
	}
	return best
}

func TestNeverMissesImmediateWin(t *testing.T) {
	// 人类 0,1,2 横三；电脑在 6 列竖三。轮到人类，3 列直接赢（同时也能堵，但赢优先）。
	for _, depth := range []int{1, 2, 4, 10} {
		b := boardFromSeq(t, connect4.NewStandardBoard(), "061626")
		require.Equal(t, connect4.Human, b.CurrentPlayer())

		e := NewAlphaBeta(depth, WithSeed(1))
		res := e.Search(b)
		require.Equalf(t, 3, res.BestMove, "depth %d", depth)
		require.Equal(t, ShortcutWin, res.Shortcut)
		require.Equal(t, 3, e.FindBestMove(b))
	}
}

func TestBlocksImmediateThreat(t *testing.T) {
	// 电脑在 6 列竖三，人类没有一步赢的棋，只能堵 6 列
	for _, depth := range []int{1, 3, 6} {
		b := boardFromSeq(t, connect4.NewStandardBoard(), "060616")
		require.Equal(t, connect4.Human, b.CurrentPlayer())

		res := NewAlphaBeta(depth, WithSeed(7)).Search(b)
		require.Equalf(t, 6, res.BestMove, "depth %d", depth)
		require.Equal(t, ShortcutBlock, res.Shortcut)
	}

	// 换过来：人类竖三，电脑必须堵
	b := boardFromSeq(t, connect4.NewStandardBoard(), "06061")
	require.Equal(t, connect4.AI, b.CurrentPlayer())
	require.True(t, b.ApplyMove(5))
	require.True(t, b.ApplyMove(0)) // 人类 0 列竖三，轮到电脑
	res := NewAlphaBeta(4, WithSeed(7)).Search(b)
	require.Equal(t, 0, res.BestMove)
	require.Equal(t, ShortcutBlock, res.Shortcut)
}

func TestWinShortcutOnExpertBoard(t *testing.T) {
	b := boardFromSeq(t, connect4.NewExpertBoard(), "435363")
	require.Equal(t, 7, NewAlphaBeta(2).FindBestMove(b), "right-most column must be considered")
}

func TestSearchDoesNotMutateBoard(t *testing.T) {
	b := boardFromSeq(t, connect4.NewStandardBoard(), "3324")
	before := b.Clone()
	history := b.History()

	e := NewAlphaBeta(6, WithSeed(3))
	move := e.FindBestMove(b)
	require.True(t, b.IsValidMove(move))
	require.True(t, b.Equal(before))
	require.Equal(t, history, b.History())

	par := NewAlphaBeta(6, WithSeed(3), WithWorkers(4))
	par.FindBestMove(b)
	require.True(t, b.Equal(before))
}

func TestNoLegalMoves(t *testing.T) {
	b := boardFromSeq(t, connect4.NewStandardBoard(), "0101010")
	require.True(t, b.GameOver())
	require.Equal(t, -1, NewAlphaBeta(4).FindBestMove(b))
}

func TestScoreIsDeterministic(t *testing.T) {
	b := boardFromSeq(t, connect4.NewStandardBoard(), "3243")

	e := NewAlphaBeta(5, WithSeed(11))
	first := e.Search(b)
	second := e.Search(b) // TT 已经有上一轮的条目
	require.Empty(t, first.Shortcut)
	require.Equal(t, first.Score, second.Score)

	fresh := NewAlphaBeta(5, WithSeed(99)).Search(b)
	require.Equal(t, first.Score, fresh.Score)

	serial := NewAlphaBeta(5, WithSeed(5)).Search(b)
	parallel := NewAlphaBeta(5, WithSeed(5), WithWorkers(4)).Search(b)
	require.Equal(t, serial.Score, parallel.Score)
	require.Equal(t, serial.BestMove, parallel.BestMove, "same seed and same scores pick the same move")
	require.Positive(t, parallel.Nodes)
}

func TestRootScoreMatchesPlainMinimax(t *testing.T) {
	r := rand.New(rand.NewSource(2024))
	checked := 0
	for trial := 0; trial < 40 && checked < 8; trial++ {
		b := connect4.NewStandardBoard()
		for i := 0; i < 6 && !b.GameOver(); i++ {
			moves := b.ValidMoves()
			b.ApplyMove(moves[r.Intn(len(moves))])
		}
		if b.GameOver() {
			continue
		}

		res := NewAlphaBeta(4, WithSeed(1)).Search(b)
		if res.Shortcut != "" {
			continue
		}
		me := b.CurrentPlayer()
		want := -scoreInf
		for _, col := range b.ValidMoves() {
			b.ApplyMove(col)
			if s := minimax(b, 3, false, me); s > want {
				want = s
			}
			b.UndoMove()
		}
		require.Equalf(t, want, res.Score, "position %s", b.Encode())
		checked++
	}
	require.Positive(t, checked)
}

func TestTieToleranceRandomizesChoice(t *testing.T) {
	b := connect4.NewStandardBoard()
	seen := map[int]bool{}
	for seed := uint64(1); seed <= 30; seed++ {
		e := NewAlphaBeta(2, WithSeed(seed), WithTieTolerance(scoreInf))
		seen[e.FindBestMove(b)] = true
	}
	require.Greater(t, len(seen), 1, "every move is within tolerance, choice must vary with the seed")

	e1 := NewAlphaBeta(4, WithSeed(8))
	e2 := NewAlphaBeta(4, WithSeed(8))
	require.Equal(t, e1.FindBestMove(b), e2.FindBestMove(b))
}

func TestTTCapacityReset(t *testing.T) {
	e := NewAlphaBeta(6, WithTTCapacity(64), WithSeed(1))
	e.FindBestMove(connect4.NewStandardBoard())
	require.LessOrEqual(t, e.TTSize(), 64)
	require.Positive(t, e.TTSize())

	e.Reset()
	require.Zero(t, e.TTSize())
}

func TestTTFlags(t *testing.T) {
	e := NewAlphaBeta(4)
	e.storeTT(1, 3, 10, 0, 100)
	score, ok := e.probeTT(1, 3, 0, 100)
	require.True(t, ok)
	require.Equal(t, 10, score)

	_, ok = e.probeTT(1, 4, 0, 100)
	require.False(t, ok, "shallower entries are ignored")

	e.storeTT(2, 3, 150, 0, 100) // fail-high
	_, ok = e.probeTT(2, 3, 0, 200)
	require.False(t, ok)
	score, ok = e.probeTT(2, 3, 0, 120)
	require.True(t, ok)
	require.Equal(t, 150, score)

	e.storeTT(3, 3, -5, 0, 100) // fail-low
	_, ok = e.probeTT(3, 3, -10, 100)
	require.False(t, ok)
	_, ok = e.probeTT(3, 3, 0, 100)
	require.True(t, ok)

	// 浅的结果不覆盖深的
	e.storeTT(1, 2, 99, 0, 100)
	score, _ = e.probeTT(1, 3, 0, 100)
	require.Equal(t, 10, score)

	require.NotEqual(t, ttKey(42, connect4.Human), ttKey(42, connect4.AI))
}

func TestOrderCenterFirst(t *testing.T) {
	require.Equal(t, []int{3, 2, 4, 1, 5, 0, 6}, orderCenterFirst([]int{0, 1, 2, 3, 4, 5, 6}, 7))
	require.Equal(t, []int{4, 3, 5, 2, 6, 1, 7, 0}, orderCenterFirst([]int{0, 1, 2, 3, 4, 5, 6, 7}, 8))
	require.Equal(t, []int{2, 4, 0, 6}, orderCenterFirst([]int{0, 2, 4, 6}, 7))

	e := NewAlphaBeta(4)
	e.recordKiller(2, 5)
	moves := []int{3, 2, 4, 1, 5, 0, 6}
	e.promoteKiller(moves, 2)
	require.Equal(t, []int{5, 3, 2, 4, 1, 0, 6}, moves)
}
