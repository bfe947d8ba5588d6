package leaderboard

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

var schema = []string{`
CREATE TABLE IF NOT EXISTS scores (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	score INTEGER NOT NULL,
	moves INTEGER NOT NULL,
	difficulty TEXT NOT NULL,
	created_at INTEGER NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS scores_rank ON scores (score DESC, created_at ASC)`,
}

// SQLiteStore keeps the leaderboard in a local SQLite file.
type SQLiteStore struct {
	db  *sql.DB
	log zerolog.Logger
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(ctx context.Context, path string, log zerolog.Logger) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// sqlite 单写者
	db.SetMaxOpenConns(1)

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}
	log.Info().Str("path", path).Msg("leaderboard database ready")
	return &SQLiteStore{db: db, log: log}, nil
}

func (s *SQLiteStore) Add(ctx context.Context, e Entry) error {
	if err := validate(e); err != nil {
		return err
	}
	if e.Date.IsZero() {
		e.Date = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO scores (name, score, moves, difficulty, created_at) VALUES (?, ?, ?, ?, ?)`,
		SanitizeName(e.Name), e.Score, e.Moves, e.Difficulty, e.Date.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert score: %w", err)
	}
	s.log.Debug().Str("name", e.Name).Int("score", e.Score).Msg("score saved")
	return nil
}

func (s *SQLiteStore) Top(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, score, moves, difficulty, created_at FROM scores
		 ORDER BY score DESC, created_at ASC, id ASC LIMIT ?`,
		clampLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0, clampLimit(limit))
	for rows.Next() {
		var (
			e       Entry
			created int64
		)
		if err := rows.Scan(&e.Name, &e.Score, &e.Moves, &e.Difficulty, &created); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		e.Date = time.UnixMilli(created).UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scores: %w", err)
	}
	return entries, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
