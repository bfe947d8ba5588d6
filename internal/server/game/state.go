package game

import (
	"tiergewinnt/internal/connect4"
)

type Status string

const (
	StatusOngoing  Status = "ongoing"
	StatusHumanWin Status = "human_win"
	StatusAIWin    Status = "ai_win"
	StatusDraw     Status = "draw"
)

func statusOf(b *connect4.Board) Status {
	if !b.GameOver() {
		return StatusOngoing
	}
	switch b.Winner() {
	case connect4.Human:
		return StatusHumanWin
	case connect4.AI:
		return StatusAIWin
	default:
		return StatusDraw
	}
}

// Snapshot 某一时刻的对局状态，可以直接序列化给前端
type Snapshot struct {
	GameID      string               `json:"game_id"`
	Profile     string               `json:"profile"`
	Expert      bool                 `json:"expert"`
	Rows        int                  `json:"rows"`
	Cols        int                  `json:"cols"`
	Board       [][]int              `json:"board"` // board[row][col]，第 0 行在最下面
	ToMove      int                  `json:"to_move"`
	LegalMoves  []int                `json:"legal_moves"`
	Status      Status               `json:"status"`
	WinningLine []connect4.Square    `json:"winning_line,omitempty"`
	LastMove    *connect4.MoveRecord `json:"last_move,omitempty"`
	MoveCount   int                  `json:"move_count"`
	HumanMoves  int                  `json:"human_moves"`
	Position    string               `json:"position"`
	Thinking    bool                 `json:"thinking"`
}

func snapshotOf(s *Session) Snapshot {
	b := s.board
	grid := make([][]int, b.Rows())
	for row := range grid {
		grid[row] = make([]int, b.Cols())
		for col := range grid[row] {
			grid[row][col] = int(b.At(col, row))
		}
	}

	snap := Snapshot{
		GameID:      s.ID,
		Profile:     s.Profile.ID,
		Expert:      s.Expert,
		Rows:        b.Rows(),
		Cols:        b.Cols(),
		Board:       grid,
		ToMove:      int(b.CurrentPlayer()),
		LegalMoves:  []int{},
		Status:      statusOf(b),
		WinningLine: b.WinningLine(),
		MoveCount:   b.MoveCount(),
		HumanMoves:  humanMoves(b),
		Position:    b.Encode(),
		Thinking:    s.thinking,
	}
	if !b.GameOver() {
		snap.LegalMoves = b.ValidMoves()
	}
	if last, ok := b.LastMove(); ok {
		snap.LastMove = &last
	}
	return snap
}

func humanMoves(b *connect4.Board) int {
	n := 0
	for _, mv := range b.History() {
		if mv.Player == connect4.Human {
			n++
		}
	}
	return n
}

type EventType string

const (
	EventBoard    EventType = "board"
	EventAIMove   EventType = "ai_move"
	EventGameOver EventType = "game_over"
)

type Event struct {
	Type     EventType `json:"type"`
	GameID   string    `json:"game_id"`
	Move     int       `json:"move"`
	Snapshot Snapshot  `json:"snapshot"`
}

// Observer 收到对局事件；在会话锁之外调用，可以回调会话方法。
type Observer func(Event)
