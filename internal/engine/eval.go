package engine

import "tiergewinnt/internal/connect4"

// 评估常量：只要求 四连 > 三连 > 二连 > 0，具体数值可调
const (
	WinScore = 10000

	centerBonus = 3
	windowFour  = 1000
	windowThree = 50
	windowTwo   = 10
)

// Evaluate 站在 perspective 一方的静态评估（剩余深度按 0 计）。
func Evaluate(b *connect4.Board, perspective connect4.Cell) int {
	return EvaluateDepth(b, perspective, 0)
}

// EvaluateDepth 终局时返回 ±(WinScore+depthRemaining)：越早赢分越高，越早输分越低；和棋 0。
// 非终局：中列加分 + 所有四格窗口的打分。
func EvaluateDepth(b *connect4.Board, perspective connect4.Cell, depthRemaining int) int {
	if b.GameOver() {
		switch b.Winner() {
		case connect4.Empty:
			return 0
		case perspective:
			return WinScore + depthRemaining
		default:
			return -(WinScore + depthRemaining)
		}
	}

	opponent := perspective.Opponent()
	score := 0

	center := b.Cols() / 2
	for row := 0; row < b.Height(center); row++ {
		switch b.At(center, row) {
		case perspective:
			score += centerBonus
		case opponent:
			score -= centerBonus
		}
	}

	return score + evaluateWindows(b, perspective, opponent)
}

// 扫描所有横、竖、两条斜线方向的四格窗口，边界由棋盘尺寸推出。
func evaluateWindows(b *connect4.Board, me, opp connect4.Cell) int {
	rows, cols := b.Rows(), b.Cols()
	n := connect4.ConnectN
	score := 0

	// 横
	for row := 0; row < rows; row++ {
		for col := 0; col+n <= cols; col++ {
			score += scoreWindow(b, col, row, 1, 0, me, opp)
		}
	}
	// 竖
	for col := 0; col < cols; col++ {
		for row := 0; row+n <= rows; row++ {
			score += scoreWindow(b, col, row, 0, 1, me, opp)
		}
	}
	// 右上
	for col := 0; col+n <= cols; col++ {
		for row := 0; row+n <= rows; row++ {
			score += scoreWindow(b, col, row, 1, 1, me, opp)
		}
	}
	// 右下
	for col := 0; col+n <= cols; col++ {
		for row := n - 1; row < rows; row++ {
			score += scoreWindow(b, col, row, 1, -1, me, opp)
		}
	}
	return score
}

func scoreWindow(b *connect4.Board, col, row, dc, dr int, me, opp connect4.Cell) int {
	mine, theirs, empty := 0, 0, 0
	for i := 0; i < connect4.ConnectN; i++ {
		switch b.At(col+i*dc, row+i*dr) {
		case me:
			mine++
		case opp:
			theirs++
		default:
			empty++
		}
	}

	if mine > 0 && theirs > 0 {
		return 0 // 双方都有子，被堵死
	}
	switch {
	case mine == 4:
		return windowFour
	case mine == 3 && empty == 1:
		return windowThree
	case mine == 2 && empty == 2:
		return windowTwo
	case theirs == 4:
		return -windowFour
	case theirs == 3 && empty == 1:
		return -windowThree
	case theirs == 2 && empty == 2:
		return -windowTwo
	}
	return 0
}
