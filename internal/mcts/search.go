package mcts

import (
	"sort"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"

	"tiergewinnt/internal/connect4"
)

// Searcher 纯随机模拟的 UCT。一个实例同一时间只跑一次搜索。
type Searcher struct {
	iterations  int
	exploration float64
	drawBonus   bool

	rng *rand.Rand
	log zerolog.Logger
}

// ChildStat 根节点每个子节点的统计，按访问次数从多到少排列
type ChildStat struct {
	Move    int     `json:"move"`
	Visits  int     `json:"visits"`
	Reward  float64 `json:"reward"`
	WinRate float64 `json:"win_rate"`
}

type SearchResult struct {
	BestMove   int // 没有合法着法时为 -1
	Iterations int
	Children   []ChildStat
	TimeUsed   time.Duration
}

func NewSearcher(iterations int, opts ...Option) *Searcher {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	s := &Searcher{
		iterations:  iterations,
		exploration: DefaultExploration,
		drawBonus:   true,
		log:         zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return s
}

func (s *Searcher) Iterations() int { return s.iterations }

// FindBestMove 实现 engine.Engine。
func (s *Searcher) FindBestMove(b *connect4.Board) int {
	return s.Search(b).BestMove
}

func (s *Searcher) Search(b *connect4.Board) SearchResult {
	start := time.Now()
	t := s.grow(b)
	root := &t.nodes[0]

	res := SearchResult{BestMove: -1, Iterations: root.visits}
	if len(root.children) == 0 {
		// 没展开任何子节点：有合法着法就随机给一个
		if moves := untriedMoves(root.board); len(moves) > 0 {
			res.BestMove = moves[s.rng.Intn(len(moves))]
		}
		res.TimeUsed = time.Since(start)
		return res
	}

	// 访问次数最多的子节点；相同的取先展开的
	bestVisits := -1
	for _, c := range root.children {
		n := &t.nodes[c]
		if n.visits > bestVisits {
			bestVisits = n.visits
			res.BestMove = n.move
		}
		stat := ChildStat{Move: n.move, Visits: n.visits, Reward: n.reward}
		if n.visits > 0 {
			stat.WinRate = n.reward / float64(n.visits)
		}
		res.Children = append(res.Children, stat)
	}
	sort.SliceStable(res.Children, func(i, j int) bool {
		return res.Children[i].Visits > res.Children[j].Visits
	})
	res.TimeUsed = time.Since(start)

	s.log.Debug().
		Int("iterations", res.Iterations).
		Int("children", len(res.Children)).
		Int("best", res.BestMove).
		Int("visits", bestVisits).
		Interface("stats", res.Children).
		Dur("took", res.TimeUsed).
		Msg("mcts search")
	return res
}

// grow 跑满迭代次数，返回整棵树（测试也用它检查树的不变量）
func (s *Searcher) grow(b *connect4.Board) *tree {
	t := newTree(b.Clone())
	if t.terminal(0) || len(t.nodes[0].untried) == 0 {
		return t
	}

	for i := 0; i < s.iterations; i++ {
		idx := t.selectLeaf(s.exploration)
		if !t.terminal(idx) && len(t.nodes[idx].untried) > 0 {
			idx = s.expand(t, idx)
		}
		winner, length := s.simulate(t.nodes[idx].board)
		t.backpropagate(idx, s.reward(t.rootPlayer, winner, length))
	}
	return t
}

// selectLeaf 从根往下走，直到遇到还有未尝试着法的节点或终局节点
func (t *tree) selectLeaf(exploration float64) int {
	idx := 0
	for !t.terminal(idx) && len(t.nodes[idx].untried) == 0 {
		next := t.bestChild(idx, exploration)
		if next < 0 {
			break
		}
		idx = next
	}
	return idx
}

// expand 随机挑一个未尝试的着法展开成子节点
func (s *Searcher) expand(t *tree, idx int) int {
	n := &t.nodes[idx]
	k := s.rng.Intn(len(n.untried))
	col := n.untried[k]
	n.untried = append(n.untried[:k], n.untried[k+1:]...)
	return t.addChild(idx, col)
}

// simulate 在拷贝上随机走到终局，返回赢家（和棋为 Empty）和走了多少步
func (s *Searcher) simulate(b *connect4.Board) (connect4.Cell, int) {
	sim := b.Clone()
	length := 0
	for !sim.GameOver() {
		moves := sim.ValidMoves()
		if len(moves) == 0 {
			break
		}
		sim.ApplyMove(moves[s.rng.Intn(len(moves))])
		length++
	}
	return sim.Winner(), length
}

// reward 站在根节点走子方视角：赢 +1，输 -1，和 0；
// 开启长度奖励时输棋和和棋再加 min(len/50, 0.2)。
func (s *Searcher) reward(rootPlayer, winner connect4.Cell, length int) float64 {
	bonus := 0.0
	if s.drawBonus {
		bonus = depthBonus(length)
	}
	switch winner {
	case rootPlayer:
		return 1
	case connect4.Empty:
		return bonus
	default:
		return -1 + bonus
	}
}

func (t *tree) backpropagate(idx int, reward float64) {
	for idx >= 0 {
		n := &t.nodes[idx]
		n.visits++
		n.reward += reward
		idx = n.parent
	}
}
