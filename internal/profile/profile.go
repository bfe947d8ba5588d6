// Package profile maps an opponent id to a search algorithm and its single
// tuning parameter, plus display metadata that is passed through untouched.
package profile

import (
	"github.com/rs/zerolog"

	"tiergewinnt/internal/engine"
	"tiergewinnt/internal/mcts"
)

type Algorithm string

const (
	AlphaBeta Algorithm = "alphabeta"
	MCTS      Algorithm = "mcts"
)

// DefaultID is used for unknown ids.
const DefaultID = "fox"

// Profile is immutable once registered. Depth is used by AlphaBeta,
// Iterations by MCTS; the other is zero.
type Profile struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Emoji       string    `json:"emoji"`
	Difficulty  string    `json:"difficulty"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	Algorithm   Algorithm `json:"algorithm"`
	Depth       int       `json:"depth,omitempty"`
	Iterations  int       `json:"iterations,omitempty"`
	// Points is the base leaderboard score for beating this opponent.
	Points int `json:"points"`

	WinMessage  string `json:"win_message"`
	LoseMessage string `json:"lose_message"`
	DrawMessage string `json:"draw_message"`
}

// EngineOptions carries the process-wide tuning that is not part of a profile.
type EngineOptions struct {
	Workers      int
	TTCapacity   int
	TieTolerance int
	DrawBonus    bool
	Seed         uint64 // 0 means time-seeded
	Logger       zerolog.Logger
}

// DefaultEngineOptions matches the engines' own defaults.
func DefaultEngineOptions() EngineOptions {
	return EngineOptions{
		Workers:    1,
		TTCapacity: engine.DefaultTTCapacity,
		DrawBonus:  true,
		Logger:     zerolog.Nop(),
	}
}

// NewEngine instantiates the engine variant selected by p.
func NewEngine(p Profile, opts EngineOptions) engine.Engine {
	if p.Algorithm == MCTS {
		mopts := []mcts.Option{
			mcts.WithDrawBonus(opts.DrawBonus),
			mcts.WithLogger(opts.Logger.With().Str("profile", p.ID).Logger()),
		}
		if opts.Seed != 0 {
			mopts = append(mopts, mcts.WithSeed(opts.Seed))
		}
		return mcts.NewSearcher(p.Iterations, mopts...)
	}

	aopts := []engine.Option{
		engine.WithWorkers(opts.Workers),
		engine.WithTTCapacity(opts.TTCapacity),
		engine.WithTieTolerance(opts.TieTolerance),
		engine.WithLogger(opts.Logger.With().Str("profile", p.ID).Logger()),
	}
	if opts.Seed != 0 {
		aopts = append(aopts, engine.WithSeed(opts.Seed))
	}
	return engine.NewAlphaBeta(p.Depth, aopts...)
}
