package mcts

import (
	"math"

	"tiergewinnt/internal/connect4"
)

// node 存在 tree.nodes 里，父子关系都用下标，不持有指针。
type node struct {
	board    *connect4.Board // 该节点的局面（独立拷贝）
	move     int             // 走到这里的那一列，根节点为 -1
	mover    connect4.Cell   // 走这一步的一方
	parent   int             // 根节点为 -1
	children []int
	untried  []int

	visits int
	reward float64 // 累计奖励，始终站在根节点走子方的视角
}

type tree struct {
	nodes      []node
	rootPlayer connect4.Cell
}

func newTree(root *connect4.Board) *tree {
	t := &tree{
		nodes:      make([]node, 0, 64),
		rootPlayer: root.CurrentPlayer(),
	}
	t.nodes = append(t.nodes, node{
		board:   root,
		move:    -1,
		mover:   root.CurrentPlayer().Opponent(),
		parent:  -1,
		untried: untriedMoves(root),
	})
	return t
}

func untriedMoves(b *connect4.Board) []int {
	if b.GameOver() {
		return nil
	}
	return b.ValidMoves()
}

func (t *tree) terminal(idx int) bool {
	return t.nodes[idx].board.GameOver()
}

// value 从选这个子节点的一方（即 mover）看的平均奖励
func (t *tree) value(idx int) float64 {
	n := &t.nodes[idx]
	rate := n.reward / float64(n.visits)
	if n.mover != t.rootPlayer {
		return -rate
	}
	return rate
}

// ucb1 没访问过的子节点优先级无穷大
func (t *tree) ucb1(idx int, exploration float64) float64 {
	n := &t.nodes[idx]
	if n.visits == 0 {
		return math.Inf(1)
	}
	parentVisits := float64(t.nodes[n.parent].visits)
	return t.value(idx) + exploration*math.Sqrt(math.Log(parentVisits)/float64(n.visits))
}

// bestChild 按 UCB1 选子节点，分数相同取先展开的
func (t *tree) bestChild(idx int, exploration float64) int {
	best, bestScore := -1, math.Inf(-1)
	for _, c := range t.nodes[idx].children {
		if s := t.ucb1(c, exploration); best < 0 || s > bestScore {
			best, bestScore = c, s
		}
	}
	return best
}

// addChild 在 parent 下落 col 生成新节点，返回下标
func (t *tree) addChild(parent, col int) int {
	p := &t.nodes[parent]
	board := p.board.Clone()
	mover := board.CurrentPlayer()
	board.ApplyMove(col)

	idx := len(t.nodes)
	t.nodes = append(t.nodes, node{
		board:   board,
		move:    col,
		mover:   mover,
		parent:  parent,
		untried: untriedMoves(board),
	})
	// append 之后 p 可能失效，重新取
	t.nodes[parent].children = append(t.nodes[parent].children, idx)
	return idx
}
