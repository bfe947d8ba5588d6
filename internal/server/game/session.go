package game

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"tiergewinnt/internal/connect4"
	"tiergewinnt/internal/engine"
	"tiergewinnt/internal/profile"
)

// Session 一局人机对战。board 是权威棋盘；引擎只拿到拷贝。
// 同一时间最多一个搜索在跑，搜索期间拒绝任何改棋盘的操作。
type Session struct {
	ID        string
	Profile   profile.Profile
	Expert    bool
	Engine    engine.Engine
	CreatedAt time.Time

	mu        sync.Mutex
	board     *connect4.Board
	thinking  bool
	scored    bool
	updatedAt time.Time

	publish func(Event)
	log     zerolog.Logger
}

// AIResult 一次电脑走子的结果
type AIResult struct {
	Move     int
	Snapshot Snapshot
	Took     time.Duration
	Err      error
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshotOf(s)
}

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return statusOf(s.board)
}

func (s *Session) UpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

// Board 权威棋盘的拷贝
func (s *Session) Board() *connect4.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Clone()
}

// Play 人类在 col 落子
func (s *Session) Play(col int) (Snapshot, error) {
	s.mu.Lock()
	if err := s.checkTurn(connect4.Human); err != nil {
		s.mu.Unlock()
		return Snapshot{}, err
	}
	if !s.board.ApplyMove(col) {
		s.mu.Unlock()
		return Snapshot{}, ErrIllegalMove
	}
	s.updatedAt = time.Now()
	snap := snapshotOf(s)
	s.mu.Unlock()

	s.log.Debug().Int("col", col).Str("status", string(snap.Status)).Msg("human move")
	s.emit(EventBoard, col, snap)
	return snap, nil
}

// RequestAIMove 在后台让引擎思考，结果落到权威棋盘上后写进返回的 channel（缓冲 1）。
// 已经在思考时返回 ErrBusy。ctx 在思考结束前被取消的话，这步棋作废。
func (s *Session) RequestAIMove(ctx context.Context) (<-chan AIResult, error) {
	s.mu.Lock()
	if err := s.checkTurn(connect4.AI); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.thinking = true
	board := s.board.Clone()
	snap := snapshotOf(s)
	s.mu.Unlock()

	s.emit(EventBoard, -1, snap)

	out := make(chan AIResult, 1)
	go func() {
		start := time.Now()
		col := s.Engine.FindBestMove(board)
		out <- s.finishAIMove(ctx, col, time.Since(start))
	}()
	return out, nil
}

func (s *Session) finishAIMove(ctx context.Context, col int, took time.Duration) AIResult {
	s.mu.Lock()
	s.thinking = false
	res := AIResult{Move: col, Took: took}
	switch {
	case ctx.Err() != nil:
		res.Err = ctx.Err()
	case col < 0:
		res.Err = ErrNoMoveReturned
	case !s.board.ApplyMove(col):
		res.Err = ErrIllegalMove
	default:
		s.updatedAt = time.Now()
	}
	res.Snapshot = snapshotOf(s)
	s.mu.Unlock()

	if res.Err != nil {
		s.log.Warn().Err(res.Err).Int("col", col).Msg("ai move discarded")
		s.emit(EventBoard, -1, res.Snapshot)
		return res
	}
	s.log.Debug().Int("col", col).Dur("took", took).Str("status", string(res.Snapshot.Status)).Msg("ai move")
	s.emit(EventAIMove, col, res.Snapshot)
	return res
}

// Undo 撤回到上一次轮到人类走的局面（通常是电脑一步加人类一步）。
func (s *Session) Undo() (Snapshot, error) {
	s.mu.Lock()
	if s.thinking {
		s.mu.Unlock()
		return Snapshot{}, ErrBusy
	}
	if !s.board.UndoMove() {
		s.mu.Unlock()
		return Snapshot{}, ErrNothingToUndo
	}
	for s.board.CurrentPlayer() != connect4.Human && s.board.MoveCount() > 0 {
		s.board.UndoMove()
	}
	s.updatedAt = time.Now()
	snap := snapshotOf(s)
	s.mu.Unlock()

	s.emit(EventBoard, -1, snap)
	return snap, nil
}

// MarkScored 每局只允许提交一次成绩，且必须已经结束。
func (s *Session) MarkScored() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.board.GameOver() {
		return Snapshot{}, ErrGameNotOver
	}
	if s.scored {
		return Snapshot{}, ErrAlreadyScored
	}
	s.scored = true
	return snapshotOf(s), nil
}

// 调用方持有锁
func (s *Session) checkTurn(p connect4.Cell) error {
	switch {
	case s.thinking:
		return ErrBusy
	case s.board.GameOver():
		return ErrGameOver
	case s.board.CurrentPlayer() != p:
		return ErrNotYourTurn
	}
	return nil
}

func (s *Session) emit(t EventType, col int, snap Snapshot) {
	if s.publish == nil {
		return
	}
	s.publish(Event{Type: t, GameID: s.ID, Move: col, Snapshot: snap})
	if col >= 0 && snap.Status != StatusOngoing {
		s.publish(Event{Type: EventGameOver, GameID: s.ID, Move: col, Snapshot: snap})
	}
}
