package mcts

import (
	"testing"

	"github.com/stretchr/testify/require"

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

func TestFindsImmediateWin(t *testing.T) {
	// 人类 0,1,2 横三，3 列直接赢
	b := boardFromSeq(t, connect4.NewStandardBoard(), "061626")
	s := NewSearcher(1000, WithSeed(1))
	res := s.Search(b)
	require.Equal(t, 3, res.BestMove)
	require.Equal(t, 3, res.Children[0].Move, "stats are sorted by visits")
	require.InDelta(t, 1.0, res.Children[0].WinRate, 1e-9, "the winning child only ever sees wins")
}

func TestMoreIterationsDoNotHurt(t *testing.T) {
	cases := []struct {
		name string
		seq  string
		want int
	}{
		{"win", "061626", 3},
		{"block", "060616", 6},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hits := func(iterations int) int {
				n := 0
				for seed := uint64(1); seed <= 20; seed++ {
					b := boardFromSeq(t, connect4.NewStandardBoard(), tc.seq)
					if NewSearcher(iterations, WithSeed(seed)).FindBestMove(b) == tc.want {
						n++
					}
				}
				return n
			}
			low, high := hits(10), hits(800)
			require.GreaterOrEqualf(t, high, low, "10 iterations: %d hits, 800 iterations: %d hits", low, high)
			require.GreaterOrEqual(t, high, 15)
		})
	}
}

func TestSearchDoesNotMutateBoard(t *testing.T) {
	b := boardFromSeq(t, connect4.NewStandardBoard(), "3324")
	before := b.Clone()
	history := b.History()

	move := NewSearcher(200, WithSeed(4)).FindBestMove(b)
	require.True(t, b.IsValidMove(move))
	require.True(t, b.Equal(before))
	require.Equal(t, history, b.History())
}

func TestTreeInvariants(t *testing.T) {
	b := boardFromSeq(t, connect4.NewStandardBoard(), "33")
	s := NewSearcher(300, WithSeed(9))
	tr := s.grow(b)

	root := tr.nodes[0]
	require.Equal(t, 300, root.visits)
	require.Equal(t, -1, root.parent)

	for idx, n := range tr.nodes {
		sum := 0
		for _, c := range n.children {
			require.Equal(t, idx, tr.nodes[c].parent)
			sum += tr.nodes[c].visits
		}
		if n.board.GameOver() {
			// 终局节点可以被反复选中，访问次数没有子节点可对
			require.Empty(t, n.children, "terminal nodes are never expanded")
			require.Empty(t, n.untried)
			require.Positive(t, n.visits)
			continue
		}
		if idx == 0 {
			require.Equal(t, n.visits, sum)
		} else {
			require.Equal(t, n.visits, sum+1, "node %d", idx)
		}
		require.Len(t, n.board.ValidMoves(), len(n.children)+len(n.untried))
	}
}

func TestSearchResultStats(t *testing.T) {
	b := connect4.NewExpertBoard()
	res := NewSearcher(400, WithSeed(2)).Search(b)
	require.Equal(t, 400, res.Iterations)
	require.Len(t, res.Children, 8)

	total := 0
	for i, c := range res.Children {
		total += c.Visits
		if i > 0 {
			require.LessOrEqual(t, c.Visits, res.Children[i-1].Visits)
		}
	}
	require.Equal(t, 400, total)
	require.Equal(t, res.Children[0].Visits, visitsOf(res, res.BestMove))
}

func visitsOf(res SearchResult, move int) int {
	for _, c := range res.Children {
		if c.Move == move {
			return c.Visits
		}
	}
	return -1
}

func TestSameSeedSameMove(t *testing.T) {
	b := boardFromSeq(t, connect4.NewStandardBoard(), "3")
	a := NewSearcher(150, WithSeed(77)).Search(b)
	c := NewSearcher(150, WithSeed(77)).Search(b)
	require.Equal(t, a.BestMove, c.BestMove)
	require.Equal(t, a.Children, c.Children)
}

func TestNoLegalMoves(t *testing.T) {
	b := boardFromSeq(t, connect4.NewStandardBoard(), "0101010")
	require.True(t, b.GameOver())
	res := NewSearcher(50).Search(b)
	require.Equal(t, -1, res.BestMove)
	require.Zero(t, res.Iterations)
}

func TestReward(t *testing.T) {
	s := NewSearcher(1)
	H, A := connect4.Human, connect4.AI

	require.Equal(t, 1.0, s.reward(A, A, 3))
	require.InDelta(t, -1+0.1, s.reward(A, H, 5), 1e-9)
	require.InDelta(t, 0.2, s.reward(A, connect4.Empty, 40), 1e-9, "bonus is capped")
	require.InDelta(t, 0.04, s.reward(H, connect4.Empty, 2), 1e-9)

	flat := NewSearcher(1, WithDrawBonus(false))
	require.Equal(t, -1.0, flat.reward(A, H, 30))
	require.Equal(t, 0.0, flat.reward(A, connect4.Empty, 30))
}
