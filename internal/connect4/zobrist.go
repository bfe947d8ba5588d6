package connect4

import "sync"

// ZobristTable 某一棋盘尺寸对应的随机数表，生成后只读，可在多个 Board 之间共享。
type ZobristTable struct {
	rows int
	cols int
	keys []uint64 // [(col*rows+row)*2 + player-1]
}

type zobristStore struct {
	mu     sync.Mutex
	tables map[[2]int]*ZobristTable
}

var zobristTables = &zobristStore{tables: make(map[[2]int]*ZobristTable)}

// ZobristFor 返回 rows×cols 棋盘的哈希表；同一尺寸只生成一次。
func ZobristFor(rows, cols int) *ZobristTable {
	zobristTables.mu.Lock()
	defer zobristTables.mu.Unlock()

	k := [2]int{rows, cols}
	if t, ok := zobristTables.tables[k]; ok {
		return t
	}
	t := newZobristTable(rows, cols)
	zobristTables.tables[k] = t
	return t
}

func newZobristTable(rows, cols int) *ZobristTable {
	// 固定种子：同一尺寸在不同进程里得到同样的哈希，方便调试
	seed := uint64(0x9E3779B97F4A7C15) ^ uint64(rows)<<32 ^ uint64(cols)
	next := func() uint64 {
		seed += 0x9E3779B97F4A7C15
		z := seed
		z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
		z = (z ^ (z >> 27)) * 0x94D049BB133111EB
		return z ^ (z >> 31)
	}

	t := &ZobristTable{
		rows: rows,
		cols: cols,
		keys: make([]uint64, rows*cols*2),
	}
	for i := range t.keys {
		t.keys[i] = next()
	}
	return t
}

// Key 返回 (col,row) 上放着 player 的随机数；Empty 或越界返回 0。
func (t *ZobristTable) Key(col, row int, player Cell) uint64 {
	if player != Human && player != AI {
		return 0
	}
	if col < 0 || col >= t.cols || row < 0 || row >= t.rows {
		return 0
	}
	return t.keys[(col*t.rows+row)*2+int(player)-1]
}
