package leaderboard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

const DefaultSheet = "TierGewinnt_Leaderboard"

// RemoteStore talks to the hosted score service. Both calls are plain GETs:
// ?action=add&sheet=..&name=..&score=..&moves=..&difficulty=.. appends a row,
// ?sheet=.. returns {"entries": [...]}.
type RemoteStore struct {
	baseURL string
	sheet   string
	client  *http.Client
	log     zerolog.Logger
}

func NewRemoteStore(baseURL, sheet string, client *http.Client, log zerolog.Logger) *RemoteStore {
	if sheet == "" {
		sheet = DefaultSheet
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &RemoteStore{baseURL: baseURL, sheet: sheet, client: client, log: log}
}

func (s *RemoteStore) Add(ctx context.Context, e Entry) error {
	if err := validate(e); err != nil {
		return err
	}
	q := url.Values{}
	q.Set("action", "add")
	q.Set("sheet", s.sheet)
	q.Set("name", SanitizeName(e.Name))
	q.Set("score", strconv.Itoa(e.Score))
	q.Set("moves", strconv.Itoa(e.Moves))
	q.Set("difficulty", e.Difficulty)

	resp, err := s.get(ctx, q)
	if err != nil {
		return fmt.Errorf("save score: %w", err)
	}
	resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("save score: unexpected status %s", resp.Status)
	}
	return nil
}

// remoteEntry tolerates the service's loosely typed columns.
type remoteEntry struct {
	Name       string      `json:"name"`
	Score      json.Number `json:"score"`
	Moves      json.Number `json:"moves"`
	Difficulty string      `json:"difficulty"`
	Date       string      `json:"date"`
}

func (s *RemoteStore) Top(ctx context.Context, limit int) ([]Entry, error) {
	q := url.Values{}
	q.Set("sheet", s.sheet)
	resp, err := s.get(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("load leaderboard: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("load leaderboard: unexpected status %s", resp.Status)
	}

	var payload struct {
		Entries []remoteEntry `json:"entries"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode leaderboard: %w", err)
	}

	entries := make([]Entry, 0, len(payload.Entries))
	for _, re := range payload.Entries {
		score, err := re.Score.Int64()
		if err != nil {
			s.log.Warn().Str("name", re.Name).Str("score", re.Score.String()).Msg("skipping entry with bad score")
			continue
		}
		moves, _ := re.Moves.Int64()
		e := Entry{
			Name:       SanitizeName(re.Name),
			Score:      int(score),
			Moves:      int(moves),
			Difficulty: re.Difficulty,
		}
		if t, err := time.Parse(time.RFC3339, re.Date); err == nil {
			e.Date = t
		}
		entries = append(entries, e)
	}
	rank(entries)
	if n := clampLimit(limit); len(entries) > n {
		entries = entries[:n]
	}
	return entries, nil
}

func (s *RemoteStore) get(ctx context.Context, q url.Values) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	return s.client.Do(req)
}
