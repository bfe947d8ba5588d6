package connect4

import (
	"errors"
	"strconv"
	"strings"
)

// 编码格式：<rows>x<cols>/<先手>:<落子列序列>
// 例如 "6x7/1:3344"：6 行 7 列，人类先手，依次落在 3,3,4,4 列。
// 列号用 0-9a-z 表示，解码时按顺序重放，所以哈希、历史、终局状态都能还原。

var ErrInvalidEncoding = errors.New("invalid board encoding")

const colDigits = "0123456789abcdefghijklmnopqrstuvwxyz"

func colDigit(col int) byte {
	if col < 0 || col >= len(colDigits) {
		return '?'
	}
	return colDigits[col]
}

func (b *Board) Encode() string {
	starter := b.current
	if len(b.history) > 0 {
		starter = b.history[0].Player
	}

	var sb strings.Builder
	sb.WriteString(strconv.Itoa(b.rows))
	sb.WriteByte('x')
	sb.WriteString(strconv.Itoa(b.cols))
	sb.WriteByte('/')
	sb.WriteByte(byte('0' + starter))
	sb.WriteByte(':')
	for _, mv := range b.history {
		sb.WriteByte(colDigit(mv.Col))
	}
	return sb.String()
}

func DecodeBoard(s string) (*Board, error) {
	head, moves, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return nil, ErrInvalidEncoding
	}
	dims, starterStr, ok := strings.Cut(head, "/")
	if !ok {
		return nil, ErrInvalidEncoding
	}
	rowsStr, colsStr, ok := strings.Cut(dims, "x")
	if !ok {
		return nil, ErrInvalidEncoding
	}
	rows, err := strconv.Atoi(rowsStr)
	if err != nil || rows < 1 {
		return nil, ErrInvalidEncoding
	}
	cols, err := strconv.Atoi(colsStr)
	if err != nil || cols < 1 || cols > len(colDigits) {
		return nil, ErrInvalidEncoding
	}

	var starter Cell
	switch starterStr {
	case "1":
		starter = Human
	case "2":
		starter = AI
	default:
		return nil, ErrInvalidEncoding
	}

	b := NewBoard(rows, cols)
	b.SetCurrentPlayer(starter)
	for _, ch := range moves {
		col := strings.IndexRune(colDigits, ch)
		if col < 0 || !b.ApplyMove(col) {
			return nil, ErrInvalidEncoding
		}
	}
	return b, nil
}
