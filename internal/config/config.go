// Package config holds the server settings. Values come from Default, then an
// optional JSON file, then TG_* environment variables; cmd/ flags go last.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

type Config struct {
	Addr             string `json:"addr"`
	WebDir           string `json:"web_dir"`
	DBPath           string `json:"db_path"`
	LeaderboardURL   string `json:"leaderboard_url"`
	LeaderboardSheet string `json:"leaderboard_sheet"`
	LogLevel         string `json:"log_level"`
	ABWorkers        int    `json:"ab_workers"`
	TTCapacity       int    `json:"tt_capacity"`
	TieTolerance     int    `json:"tie_tolerance"`
	MCTSDrawBonus    bool   `json:"mcts_draw_bonus"`
	OpenBrowser      bool   `json:"open_browser"`
}

func Default() Config {
	return Config{
		Addr:             "127.0.0.1:8080",
		WebDir:           "web",
		DBPath:           "data/leaderboard.db",
		LeaderboardSheet: "TierGewinnt_Leaderboard",
		LogLevel:         "info",
		ABWorkers:        1,
		TTCapacity:       1_000_000,
		TieTolerance:     0,
		MCTSDrawBonus:    true,
		OpenBrowser:      true,
	}
}

// Load reads path on top of Default. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config: %w", err)
		default:
			if err := json.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// ApplyEnv overrides fields from TG_* variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = n
		return nil
	}
	flag := func(key string, dst *bool) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = b
		return nil
	}

	str("TG_ADDR", &c.Addr)
	str("TG_WEB_DIR", &c.WebDir)
	str("TG_DB_PATH", &c.DBPath)
	str("TG_LEADERBOARD_URL", &c.LeaderboardURL)
	str("TG_LEADERBOARD_SHEET", &c.LeaderboardSheet)
	str("TG_LOG_LEVEL", &c.LogLevel)
	return errors.Join(
		num("TG_AB_WORKERS", &c.ABWorkers),
		num("TG_TT_CAPACITY", &c.TTCapacity),
		num("TG_TIE_TOLERANCE", &c.TieTolerance),
		flag("TG_MCTS_DRAW_BONUS", &c.MCTSDrawBonus),
		flag("TG_OPEN_BROWSER", &c.OpenBrowser),
	)
}

func (c Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("addr must not be empty"))
	}
	if c.ABWorkers < 1 {
		errs = append(errs, fmt.Errorf("ab_workers must be >= 1, got %d", c.ABWorkers))
	}
	if c.TTCapacity < 1 {
		errs = append(errs, fmt.Errorf("tt_capacity must be >= 1, got %d", c.TTCapacity))
	}
	if c.TieTolerance < 0 {
		errs = append(errs, fmt.Errorf("tie_tolerance must be >= 0, got %d", c.TieTolerance))
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	return errors.Join(errs...)
}

// Level is the parsed LogLevel, info if it does not parse.
func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}
