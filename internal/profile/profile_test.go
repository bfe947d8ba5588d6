package profile

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tiergewinnt/internal/connect4"
	"tiergewinnt/internal/engine"
	"tiergewinnt/internal/mcts"
)

func TestBuiltinsOrderAndParameters(t *testing.T) {
	list := List()
	ids := make([]string, 0, len(list))
	for _, p := range list {
		ids = append(ids, p.ID)
	}
	require.Equal(t, []string{"snail", "turtle", "rabbit", "cat", "fox", "wolf", "owl", "dragon"}, ids)

	for i, p := range list {
		switch p.Algorithm {
		case MCTS:
			require.Positive(t, p.Iterations, p.ID)
			require.Zero(t, p.Depth, p.ID)
		case AlphaBeta:
			require.Positive(t, p.Depth, p.ID)
			require.Zero(t, p.Iterations, p.ID)
		default:
			t.Fatalf("%s: unknown algorithm %q", p.ID, p.Algorithm)
		}
		if i > 0 {
			require.Greater(t, p.Points, list[i-1].Points, "points grow with strength")
		}
	}
	require.Equal(t, 500, Resolve("cat").Iterations)
	require.Equal(t, 10, Resolve("dragon").Depth)
}

func TestResolveFallsBackToDefault(t *testing.T) {
	require.Equal(t, "wolf", Resolve("wolf").ID)
	require.Equal(t, DefaultID, Resolve("unicorn").ID)
	require.Equal(t, DefaultID, Resolve("").ID)

	_, ok := Default().Lookup("unicorn")
	require.False(t, ok)

	custom := NewRegistry([]Profile{{ID: "a", Algorithm: MCTS, Iterations: 5}, {ID: "a", Algorithm: AlphaBeta, Depth: 2}})
	require.Len(t, custom.List(), 1, "duplicate ids are ignored")
	require.Equal(t, "a", custom.Resolve("missing").ID)
	require.Equal(t, MCTS, custom.Resolve("a").Algorithm)
}

func TestListIsACopy(t *testing.T) {
	list := List()
	list[0].Name = "changed"
	require.Equal(t, "Schnecke", List()[0].Name)
}

func TestNewEngineSelectsVariant(t *testing.T) {
	opts := DefaultEngineOptions()
	opts.Seed = 3

	ab, ok := NewEngine(Resolve("owl"), opts).(*engine.AlphaBeta)
	require.True(t, ok)
	require.Equal(t, 8, ab.Depth())

	m, ok := NewEngine(Resolve("rabbit"), opts).(*mcts.Searcher)
	require.True(t, ok)
	require.Equal(t, 200, m.Iterations())

	b := connect4.NewStandardBoard()
	for _, p := range List() {
		if p.Algorithm == AlphaBeta && p.Depth > 6 {
			continue
		}
		move := NewEngine(p, opts).FindBestMove(b)
		require.Truef(t, b.IsValidMove(move), "%s returned %d", p.ID, move)
	}
}
