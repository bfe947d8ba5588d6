// Package leaderboard computes end-of-game scores and persists them either in
// a local SQLite file or through the remote score service.
package leaderboard

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"tiergewinnt/internal/profile"
)

const (
	MaxNameLength = 24
	AnonymousName = "Anonym"
	DefaultLimit  = 10
	MaxLimit      = 100

	// fastest possible human win is 4 moves; every move under this earns a bonus step
	parMoves = 21
)

var ErrInvalidEntry = errors.New("invalid leaderboard entry")

type Entry struct {
	Name       string    `json:"name"`
	Score      int       `json:"score"`
	Moves      int       `json:"moves"`
	Difficulty string    `json:"difficulty"`
	Date       time.Time `json:"date"`
}

// Store persists entries and returns them ranked by score.
type Store interface {
	Add(ctx context.Context, e Entry) error
	Top(ctx context.Context, limit int) ([]Entry, error)
}

type Outcome int

const (
	Loss Outcome = iota
	Draw
	Win
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Draw:
		return "draw"
	default:
		return "loss"
	}
}

// Compute scores a finished game from the human's point of view.
// A win is worth the opponent's Points plus Points/20 for every move the
// human needed fewer than 21; a draw is worth a quarter of Points; a loss
// scores nothing. Expert boards multiply the result by 1.5.
func Compute(p profile.Profile, humanMoves int, outcome Outcome, expert bool) int {
	var score int
	switch outcome {
	case Win:
		score = p.Points
		if humanMoves < parMoves {
			score += (parMoves - humanMoves) * p.Points / 20
		}
	case Draw:
		score = p.Points / 4
	default:
		return 0
	}
	if expert {
		score = score * 3 / 2
	}
	return score
}

// Label is the difficulty string stored with an entry.
func Label(p profile.Profile, expert bool) string {
	if expert {
		return p.Name + " (Experte)"
	}
	return p.Name
}

// SanitizeName trims, collapses to MaxNameLength runes, and falls back to AnonymousName.
func SanitizeName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.Map(func(r rune) rune {
		if r < ' ' || r == utf8.RuneError {
			return -1
		}
		return r
	}, name)
	if utf8.RuneCountInString(name) > MaxNameLength {
		name = string([]rune(name)[:MaxNameLength])
		name = strings.TrimSpace(name)
	}
	if name == "" {
		return AnonymousName
	}
	return name
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return min(limit, MaxLimit)
}

// rank sorts by score, older entries first on ties.
func rank(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Date.Before(entries[j].Date)
	})
}

func validate(e Entry) error {
	if e.Score < 0 || e.Moves < 0 {
		return ErrInvalidEntry
	}
	return nil
}
