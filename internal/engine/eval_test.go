package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"tiergewinnt/internal/connect4"
)

func TestEvaluateSymmetric(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	for trial := 0; trial < 100; trial++ {
		b := connect4.NewBoard(6+trial%2, 7+trial%2)
		n := r.Intn(20)
		for i := 0; i < n && !b.GameOver(); i++ {
			moves := b.ValidMoves()
			b.ApplyMove(moves[r.Intn(len(moves))])
		}
		if b.GameOver() {
			continue
		}
		require.Equalf(t, Evaluate(b, connect4.Human), -Evaluate(b, connect4.AI), "position %s", b.Encode())
	}
	require.Zero(t, Evaluate(connect4.NewStandardBoard(), connect4.Human))
}

func TestEvaluateTerminal(t *testing.T) {
	b := connect4.NewStandardBoard()
	boardFromSeq(t, b, "0101010")
	require.Equal(t, WinScore, Evaluate(b, connect4.Human))
	require.Equal(t, WinScore+3, EvaluateDepth(b, connect4.Human, 3))
	require.Equal(t, -(WinScore + 3), EvaluateDepth(b, connect4.AI, 3))
	require.Greater(t, EvaluateDepth(b, connect4.Human, 5), EvaluateDepth(b, connect4.Human, 1), "earlier wins score higher")

	draw := connect4.NewBoard(2, 3)
	boardFromSeq(t, draw, "012012")
	require.True(t, draw.GameOver())
	require.Zero(t, EvaluateDepth(draw, connect4.Human, 4))
	require.Zero(t, EvaluateDepth(draw, connect4.AI, 4))
}

func TestCenterBonus(t *testing.T) {
	b := connect4.NewStandardBoard()
	boardFromSeq(t, b, "3")
	// 中列一颗子，所在的窗口都只有一颗己方子，不计分
	require.Equal(t, centerBonus, Evaluate(b, connect4.Human))

	e := connect4.NewExpertBoard()
	boardFromSeq(t, e, "4")
	require.Equal(t, centerBonus, Evaluate(e, connect4.Human), "center of 8 columns is column 4")
}

func TestWindowOrdering(t *testing.T) {
	line := func(cells ...connect4.Cell) *connect4.Board {
		b := connect4.NewBoard(1, 4)
		for col, c := range cells {
			if c == connect4.Empty {
				continue
			}
			b.SetCurrentPlayer(c)
			require.True(t, b.ApplyMove(col))
		}
		return b
	}
	score := func(b *connect4.Board) int {
		return scoreWindow(b, 0, 0, 1, 0, connect4.Human, connect4.AI)
	}
	H, A, E := connect4.Human, connect4.AI, connect4.Empty

	two := score(line(H, H, E, E))
	three := score(line(H, H, H, E))
	four := score(line(H, H, H, H))
	require.Greater(t, four, three)
	require.Greater(t, three, two)
	require.Greater(t, two, 0)
	require.Zero(t, score(line(H, E, E, E)))

	require.Equal(t, -two, score(line(E, E, A, A)))
	require.Equal(t, -three, score(line(A, E, A, A)))
	require.Zero(t, score(line(H, H, H, A)), "blocked window")
	require.Zero(t, score(line(H, A, E, E)))
}
