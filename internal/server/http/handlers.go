package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"tiergewinnt/internal/leaderboard"
	"tiergewinnt/internal/profile"
	"tiergewinnt/internal/server/game"
)

// Handler 处理 /api/* 路由
type Handler struct {
	games  *game.Manager
	scores leaderboard.Store
	log    zerolog.Logger
}

func (h *Handler) handleProfiles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ProfilesResponse{
		Profiles: h.games.Profiles().List(),
		Default:  profile.DefaultID,
	})
}

func (h *Handler) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req NewGameRequest
	// 空 body 也可以：全部用默认值
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json")
			return
		}
	}
	s := h.games.NewGame(game.NewGameOptions{
		ProfileID: req.Profile,
		Expert:    req.Expert,
		AIFirst:   req.AIFirst,
	})
	writeJSON(w, http.StatusOK, stateResponse(s, s.Snapshot()))
}

func (h *Handler) handlePlay(w http.ResponseWriter, r *http.Request) {
	var req PlayRequest
	s, ok := h.decodeAndFind(w, r, &req, func() string { return req.GameID })
	if !ok {
		return
	}
	snap, err := s.Play(req.Column)
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stateResponse(s, snap))
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	s, ok := h.decodeAndFind(w, r, &req, func() string { return req.GameID })
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, stateResponse(s, s.Snapshot()))
}

func (h *Handler) handleUndo(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	s, ok := h.decodeAndFind(w, r, &req, func() string { return req.GameID })
	if !ok {
		return
	}
	snap, err := s.Undo()
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stateResponse(s, snap))
}

func (h *Handler) handleAiMove(w http.ResponseWriter, r *http.Request) {
	var req AiMoveRequest
	s, ok := h.decodeAndFind(w, r, &req, func() string { return req.GameID })
	if !ok {
		return
	}

	// 搜索要比这次请求活得久，不能跟着请求一起取消
	ctx := context.WithoutCancel(r.Context())
	if req.Wait {
		ctx = r.Context()
	}
	results, err := s.RequestAIMove(ctx)
	if err != nil {
		writeGameError(w, err)
		return
	}

	if !req.Wait {
		resp := AiMoveResponse{StateResponse: stateResponse(s, s.Snapshot()), BestMove: -1}
		writeJSON(w, http.StatusAccepted, resp)
		return
	}

	res := <-results
	if res.Err != nil {
		if errors.Is(res.Err, context.Canceled) {
			return
		}
		writeGameError(w, res.Err)
		return
	}
	writeJSON(w, http.StatusOK, AiMoveResponse{
		StateResponse: stateResponse(s, res.Snapshot),
		BestMove:      res.Move,
		TimeMs:        res.Took.Milliseconds(),
	})
}

func (h *Handler) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if h.scores == nil {
		writeError(w, http.StatusServiceUnavailable, "leaderboard disabled")
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad limit")
			return
		}
		limit = n
	}
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	entries, err := h.scores.Top(ctx, limit)
	if err != nil {
		h.log.Error().Err(err).Msg("load leaderboard")
		writeError(w, http.StatusBadGateway, "leaderboard unavailable")
		return
	}
	writeJSON(w, http.StatusOK, LeaderboardResponse{Entries: entries})
}

func (h *Handler) handleSubmitScore(w http.ResponseWriter, r *http.Request) {
	if h.scores == nil {
		writeError(w, http.StatusServiceUnavailable, "leaderboard disabled")
		return
	}
	var req ScoreRequest
	s, ok := h.decodeAndFind(w, r, &req, func() string { return req.GameID })
	if !ok {
		return
	}
	snap, err := s.MarkScored()
	if err != nil {
		writeGameError(w, err)
		return
	}

	outcome := leaderboard.Loss
	switch snap.Status {
	case game.StatusHumanWin:
		outcome = leaderboard.Win
	case game.StatusDraw:
		outcome = leaderboard.Draw
	}
	entry := leaderboard.Entry{
		Name:       leaderboard.SanitizeName(req.Name),
		Score:      leaderboard.Compute(s.Profile, snap.HumanMoves, outcome, s.Expert),
		Moves:      snap.HumanMoves,
		Difficulty: leaderboard.Label(s.Profile, s.Expert),
		Date:       time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	if err := h.scores.Add(ctx, entry); err != nil {
		h.log.Error().Err(err).Str("game", s.ID).Msg("save score")
		writeError(w, http.StatusBadGateway, "could not save score")
		return
	}
	writeJSON(w, http.StatusOK, ScoreResponse{Entry: entry, Outcome: outcome.String()})
}

// decodeAndFind 解析 JSON body 并按 gameID() 找到对局；失败时已经写好响应
func (h *Handler) decodeAndFind(w http.ResponseWriter, r *http.Request, req any, gameID func() string) (*game.Session, bool) {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return nil, false
	}
	s, err := h.games.Get(gameID())
	if err != nil {
		writeGameError(w, err)
		return nil, false
	}
	return s, true
}

func writeGameError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, game.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, game.ErrIllegalMove):
		status = http.StatusBadRequest
	case errors.Is(err, game.ErrBusy),
		errors.Is(err, game.ErrNotYourTurn),
		errors.Is(err, game.ErrGameOver),
		errors.Is(err, game.ErrNothingToUndo),
		errors.Is(err, game.ErrGameNotOver),
		errors.Is(err, game.ErrAlreadyScored):
		status = http.StatusConflict
	}
	writeError(w, status, err.Error())
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("write json")
	}
}
