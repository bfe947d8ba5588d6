package httpserver

import (
	"tiergewinnt/internal/leaderboard"
	"tiergewinnt/internal/profile"
	"tiergewinnt/internal/server/game"
)

// NewGame 请求；profile 为空或未知时用默认对手
type NewGameRequest struct {
	Profile string `json:"profile"`
	Expert  bool   `json:"expert"`
	AIFirst bool   `json:"ai_first"`
}

// state / undo 只需要 game_id
type GameRequest struct {
	GameID string `json:"game_id"`
}

type PlayRequest struct {
	GameID string `json:"game_id"`
	Column int    `json:"column"`
}

// AiMoveRequest Wait=true 时等引擎走完再返回，否则立即 202，结果走 WebSocket
type AiMoveRequest struct {
	GameID string `json:"game_id"`
	Wait   bool   `json:"wait"`
}

// StateResponse new_game / play / state / undo 的统一返回
type StateResponse struct {
	game.Snapshot
	Opponent profile.Profile `json:"opponent"`
}

type AiMoveResponse struct {
	StateResponse
	BestMove int   `json:"best_move"`
	TimeMs   int64 `json:"time_ms"`
}

type ProfilesResponse struct {
	Profiles []profile.Profile `json:"profiles"`
	Default  string            `json:"default"`
}

type ScoreRequest struct {
	GameID string `json:"game_id"`
	Name   string `json:"name"`
}

type ScoreResponse struct {
	Entry   leaderboard.Entry `json:"entry"`
	Outcome string            `json:"outcome"`
}

type LeaderboardResponse struct {
	Entries []leaderboard.Entry `json:"entries"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func stateResponse(s *game.Session, snap game.Snapshot) StateResponse {
	return StateResponse{Snapshot: snap, Opponent: s.Profile}
}
