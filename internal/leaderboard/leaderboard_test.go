package leaderboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"tiergewinnt/internal/profile"
)

func TestCompute(t *testing.T) {
	fox := profile.Resolve("fox") // 800 points

	require.Equal(t, 800, Compute(fox, 21, Win, false))
	require.Equal(t, 800, Compute(fox, 30, Win, false), "slow wins get no bonus and no penalty")
	require.Equal(t, 800+17*40, Compute(fox, 4, Win, false))
	require.Equal(t, (800+40)*3/2, Compute(fox, 20, Win, true))
	require.Equal(t, 200, Compute(fox, 10, Draw, false))
	require.Equal(t, 300, Compute(fox, 10, Draw, true))
	require.Zero(t, Compute(fox, 10, Loss, true))

	snail := profile.Resolve("snail")
	require.Less(t, Compute(snail, 10, Win, false), Compute(fox, 10, Win, false))
	require.Greater(t, Compute(fox, 8, Win, false), Compute(fox, 12, Win, false), "faster wins score more")
}

func TestSanitizeName(t *testing.T) {
	require.Equal(t, AnonymousName, SanitizeName(""))
	require.Equal(t, AnonymousName, SanitizeName("   \t"))
	require.Equal(t, "Ada", SanitizeName("  Ada \n"))
	require.Equal(t, "ab", SanitizeName("a\x00b"))

	long := strings.Repeat("ä", 40)
	require.Equal(t, strings.Repeat("ä", MaxNameLength), SanitizeName(long))
}

func TestLabel(t *testing.T) {
	owl := profile.Resolve("owl")
	require.Equal(t, "Eule", Label(owl, false))
	require.Equal(t, "Eule (Experte)", Label(owl, true))
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "scores.db")
	store, err := OpenSQLite(ctx, path, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Add(ctx, Entry{Name: "Bea", Score: 500, Moves: 9, Difficulty: "Katze", Date: base}))
	require.NoError(t, store.Add(ctx, Entry{Name: "Cem", Score: 1200, Moves: 14, Difficulty: "Wolf", Date: base.Add(time.Hour)}))
	require.NoError(t, store.Add(ctx, Entry{Name: "", Score: 500, Moves: 7, Difficulty: "Katze", Date: base.Add(2 * time.Hour)}))
	require.ErrorIs(t, store.Add(ctx, Entry{Name: "x", Score: -1}), ErrInvalidEntry)

	top, err := store.Top(ctx, 0)
	require.NoError(t, err)
	require.Len(t, top, 3)
	require.Equal(t, "Cem", top[0].Name)
	require.Equal(t, "Bea", top[1].Name, "older entry wins the tie")
	require.Equal(t, AnonymousName, top[2].Name)
	require.True(t, base.Equal(top[1].Date))

	top, err = store.Top(ctx, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)

	// 重新打开，数据还在
	require.NoError(t, store.Close())
	again, err := OpenSQLite(ctx, path, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { again.Close() })
	top, err = again.Top(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 3)
}

func TestRemoteStore(t *testing.T) {
	var added []map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "TestSheet", q.Get("sheet"))
		if q.Get("action") == "add" {
			added = append(added, map[string]string{
				"name":       q.Get("name"),
				"score":      q.Get("score"),
				"moves":      q.Get("moves"),
				"difficulty": q.Get("difficulty"),
			})
			w.WriteHeader(http.StatusOK)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"entries": []map[string]any{
				{"name": "low", "score": 100, "moves": 20, "difficulty": "Hase", "date": "2025-01-02T10:00:00Z"},
				{"name": "high", "score": 900, "moves": 8, "difficulty": "Fuchs", "date": "2025-01-01T10:00:00Z"},
				{"name": "mid", "score": 400, "moves": 11, "difficulty": "Katze", "date": ""},
			},
		})
	}))
	defer srv.Close()

	store := NewRemoteStore(srv.URL, "TestSheet", srv.Client(), zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, Entry{Name: "  Zoe ", Score: 840, Moves: 12, Difficulty: "Fuchs"}))
	require.Equal(t, []map[string]string{{"name": "Zoe", "score": "840", "moves": "12", "difficulty": "Fuchs"}}, added)

	top, err := store.Top(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	require.Equal(t, "high", top[0].Name)
	require.Equal(t, 900, top[0].Score)
	require.Equal(t, "mid", top[1].Name)
	require.True(t, top[1].Date.IsZero())
}

func TestRemoteStoreErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	store := NewRemoteStore(srv.URL, "", nil, zerolog.Nop())
	_, err := store.Top(context.Background(), 5)
	require.Error(t, err)
	require.Error(t, store.Add(context.Background(), Entry{Name: "a", Score: 1}))
}
