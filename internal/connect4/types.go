package connect4

// Cell 棋盘格子的值；同时也用来表示棋手（Empty 表示没有棋手/和棋）。
type Cell int8

const (
	Empty Cell = 0
	Human Cell = 1 // 先手，人类
	AI    Cell = 2 // 后手，电脑
)

const (
	StandardRows = 6
	StandardCols = 7
	ExpertRows   = 7
	ExpertCols   = 8

	// 连成多少子算赢
	ConnectN = 4
)

// Opponent 返回对手；Empty 的对手仍是 Empty。
func (c Cell) Opponent() Cell {
	switch c {
	case Human:
		return AI
	case AI:
		return Human
	default:
		return Empty
	}
}

func (c Cell) String() string {
	switch c {
	case Human:
		return "human"
	case AI:
		return "ai"
	default:
		return "none"
	}
}

// Square 以 (列, 行) 定位，行 0 在最底下。
type Square struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// MoveRecord 一步落子的记录，用于悔棋。
type MoveRecord struct {
	Col    int  `json:"col"`
	Row    int  `json:"row"`
	Player Cell `json:"player"`
}
