package connect4

import "strings"

// 四个方向：横、竖、两条斜线
var lineDirs = [4][2]int{
	{1, 0},
	{0, 1},
	{1, 1},
	{1, -1},
}

// Board 按列存放的棋盘。heights[col] 是该列下一颗子落下的行号。
type Board struct {
	rows int
	cols int

	cells   []Cell // cells[col*rows+row]
	heights []int

	current  Cell
	gameOver bool
	winner   Cell

	history []MoveRecord
	hash    uint64
	zobrist *ZobristTable
}

// NewBoard 创建空棋盘，非法尺寸回退到 6×7。
func NewBoard(rows, cols int) *Board {
	if rows < 1 || cols < 1 {
		rows, cols = StandardRows, StandardCols
	}
	return &Board{
		rows:    rows,
		cols:    cols,
		cells:   make([]Cell, rows*cols),
		heights: make([]int, cols),
		current: Human,
		history: make([]MoveRecord, 0, rows*cols),
		zobrist: ZobristFor(rows, cols),
	}
}

func NewStandardBoard() *Board { return NewBoard(StandardRows, StandardCols) }
func NewExpertBoard() *Board   { return NewBoard(ExpertRows, ExpertCols) }

func (b *Board) Rows() int           { return b.rows }
func (b *Board) Cols() int           { return b.cols }
func (b *Board) CurrentPlayer() Cell { return b.current }
func (b *Board) GameOver() bool      { return b.gameOver }
func (b *Board) Winner() Cell        { return b.winner }
func (b *Board) MoveCount() int      { return len(b.history) }
func (b *Board) Hash() uint64        { return b.hash }

// Height 返回列高；越界列返回 rows，即当作满列。
func (b *Board) Height(col int) int {
	if col < 0 || col >= b.cols {
		return b.rows
	}
	return b.heights[col]
}

// At 返回格子内容，越界返回 Empty。
func (b *Board) At(col, row int) Cell {
	if col < 0 || col >= b.cols || row < 0 || row >= b.rows {
		return Empty
	}
	return b.cells[col*b.rows+row]
}

// History 返回落子记录的拷贝。
func (b *Board) History() []MoveRecord {
	out := make([]MoveRecord, len(b.history))
	copy(out, b.history)
	return out
}

// LastMove 最近一步；没有历史时 ok=false。
func (b *Board) LastMove() (MoveRecord, bool) {
	if len(b.history) == 0 {
		return MoveRecord{}, false
	}
	return b.history[len(b.history)-1], true
}

// SetCurrentPlayer 强行指定下一手由谁走。
// 引擎做“堵对手”检查时会临时换边；哈希只覆盖已落子格子，所以不受影响。
func (b *Board) SetCurrentPlayer(p Cell) {
	if p != Human && p != AI {
		return
	}
	b.current = p
}

func (b *Board) IsValidMove(col int) bool {
	return col >= 0 && col < b.cols && b.heights[col] < b.rows
}

// ValidMoves 所有未满的列，从左到右。
func (b *Board) ValidMoves() []int {
	moves := make([]int, 0, b.cols)
	for col := 0; col < b.cols; col++ {
		if b.heights[col] < b.rows {
			moves = append(moves, col)
		}
	}
	return moves
}

// ApplyMove 当前方在 col 落子。列满、越界或已终局返回 false，棋盘不变。
func (b *Board) ApplyMove(col int) bool {
	if b.gameOver || !b.IsValidMove(col) {
		return false
	}

	row := b.heights[col]
	player := b.current
	b.cells[col*b.rows+row] = player
	b.heights[col]++
	b.hash ^= b.zobrist.Key(col, row, player)
	b.history = append(b.history, MoveRecord{Col: col, Row: row, Player: player})

	switch {
	case b.CheckWin(col, row):
		b.gameOver = true
		b.winner = player
	case b.CheckDraw():
		b.gameOver = true
		b.winner = Empty
	default:
		b.current = player.Opponent()
	}
	return true
}

// UndoMove 撤销最后一步；没有历史返回 false。
func (b *Board) UndoMove() bool {
	n := len(b.history)
	if n == 0 {
		return false
	}
	last := b.history[n-1]
	b.history = b.history[:n-1]

	b.cells[last.Col*b.rows+last.Row] = Empty
	b.heights[last.Col]--
	b.hash ^= b.zobrist.Key(last.Col, last.Row, last.Player)

	// 只有最后一步可能让棋局结束，撤掉它就一定回到未终局
	b.current = last.Player
	b.gameOver = false
	b.winner = Empty
	return true
}

// CheckWin 只检查经过 (col,row) 这颗子的四条线，不扫全盘。
func (b *Board) CheckWin(col, row int) bool {
	player := b.At(col, row)
	if player == Empty {
		return false
	}
	for _, d := range lineDirs {
		if b.runLength(col, row, d[0], d[1], player) >= ConnectN {
			return true
		}
	}
	return false
}

// runLength 以 (col,row) 为中心沿 ±(dx,dy) 数连续同色子。
func (b *Board) runLength(col, row, dx, dy int, player Cell) int {
	count := 1
	for x, y := col+dx, row+dy; b.At(x, y) == player; x, y = x+dx, y+dy {
		count++
	}
	for x, y := col-dx, row-dy; b.At(x, y) == player; x, y = x-dx, y-dy {
		count++
	}
	return count
}

// CheckDraw 棋盘下满即和（赢棋在 ApplyMove 里先判）。
func (b *Board) CheckDraw() bool {
	return len(b.history) >= b.rows*b.cols
}

// WinningLine 返回最后一步所在的连珠格子；没有赢家返回 nil。
func (b *Board) WinningLine() []Square {
	last, ok := b.LastMove()
	if !ok || b.winner == Empty {
		return nil
	}
	for _, d := range lineDirs {
		line := []Square{{Col: last.Col, Row: last.Row}}
		for x, y := last.Col+d[0], last.Row+d[1]; b.At(x, y) == last.Player; x, y = x+d[0], y+d[1] {
			line = append(line, Square{Col: x, Row: y})
		}
		for x, y := last.Col-d[0], last.Row-d[1]; b.At(x, y) == last.Player; x, y = x-d[0], y-d[1] {
			line = append(line, Square{Col: x, Row: y})
		}
		if len(line) >= ConnectN {
			return line
		}
	}
	return nil
}

// Clone 深拷贝；拷贝与原棋盘之后的行为完全一致（含哈希和历史）。
func (b *Board) Clone() *Board {
	c := &Board{
		rows:     b.rows,
		cols:     b.cols,
		cells:    make([]Cell, len(b.cells)),
		heights:  make([]int, len(b.heights)),
		current:  b.current,
		gameOver: b.gameOver,
		winner:   b.winner,
		history:  make([]MoveRecord, len(b.history), b.rows*b.cols),
		hash:     b.hash,
		zobrist:  b.zobrist,
	}
	copy(c.cells, b.cells)
	copy(c.heights, b.heights)
	copy(c.history, b.history)
	return c
}

// CalculateHash 全量计算哈希，用来校验增量哈希。
func (b *Board) CalculateHash() uint64 {
	var h uint64
	for col := 0; col < b.cols; col++ {
		for row := 0; row < b.heights[col]; row++ {
			h ^= b.zobrist.Key(col, row, b.At(col, row))
		}
	}
	return h
}

// Equal 比较棋面、列高、哈希、轮次和终局标记（不比较历史）。
func (b *Board) Equal(o *Board) bool {
	if b.rows != o.rows || b.cols != o.cols {
		return false
	}
	if b.hash != o.hash || b.current != o.current || b.gameOver != o.gameOver || b.winner != o.winner {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != o.cells[i] {
			return false
		}
	}
	for i := range b.heights {
		if b.heights[i] != o.heights[i] {
			return false
		}
	}
	return true
}

// String 从上到下打印棋盘：X=人类 O=电脑。
func (b *Board) String() string {
	var sb strings.Builder
	for row := b.rows - 1; row >= 0; row-- {
		for col := 0; col < b.cols; col++ {
			switch b.At(col, row) {
			case Human:
				sb.WriteByte('X')
			case AI:
				sb.WriteByte('O')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	for col := 0; col < b.cols; col++ {
		sb.WriteByte(colDigit(col))
	}
	sb.WriteByte('\n')
	return sb.String()
}
