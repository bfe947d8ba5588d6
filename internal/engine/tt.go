package engine

import "tiergewinnt/internal/connect4"

type ttFlag uint8

const (
	ttExact ttFlag = iota
	ttLower        // 真值 >= Score
	ttUpper        // 真值 <= Score
)

type ttEntry struct {
	Depth int
	Score int
	Flag  ttFlag
}

// 分数是站在 perspective 一方算的，所以 key 里要混进视角，
// 否则同一个引擎替两边下棋时会读到反号的分数。
const perspectiveSalt = 0x9E3779B97F4A7C15

func ttKey(hash uint64, perspective connect4.Cell) uint64 {
	if perspective == connect4.Human {
		return hash ^ perspectiveSalt
	}
	return hash
}

// probeTT 只信任深度 >= 当前剩余深度的条目。
func (e *AlphaBeta) probeTT(key uint64, depth, alpha, beta int) (int, bool) {
	entry, ok := e.tt[key]
	if !ok || entry.Depth < depth {
		return 0, false
	}
	switch entry.Flag {
	case ttExact:
		return entry.Score, true
	case ttLower:
		if entry.Score >= beta {
			return entry.Score, true
		}
	case ttUpper:
		if entry.Score <= alpha {
			return entry.Score, true
		}
	}
	return 0, false
}

// storeTT 超过容量就整表清空（不做 LRU）；同一局面只用不浅于旧条目的结果覆盖。
func (e *AlphaBeta) storeTT(key uint64, depth, score, alphaOrig, betaOrig int) {
	if len(e.tt) >= e.ttCap {
		e.tt = make(map[uint64]ttEntry, min(e.ttCap, 1<<16))
	}
	flag := ttExact
	if score <= alphaOrig {
		flag = ttUpper
	} else if score >= betaOrig {
		flag = ttLower
	}
	old, ok := e.tt[key]
	if !ok || depth >= old.Depth {
		e.tt[key] = ttEntry{Depth: depth, Score: score, Flag: flag}
	}
}
