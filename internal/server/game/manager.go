package game

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"tiergewinnt/internal/connect4"
	"tiergewinnt/internal/profile"
)

type NewGameOptions struct {
	ProfileID string
	Expert    bool // 7×8 棋盘
	AIFirst   bool
}

// Manager 内存里的对局表，本地跑一个人玩足够了
type Manager struct {
	mu    sync.RWMutex
	games map[string]*Session

	profiles   *profile.Registry
	engineOpts profile.EngineOptions

	obsMu    sync.RWMutex
	observer Observer

	log zerolog.Logger
}

func NewManager(profiles *profile.Registry, engineOpts profile.EngineOptions, log zerolog.Logger) *Manager {
	if profiles == nil {
		profiles = profile.Default()
	}
	return &Manager{
		games:      make(map[string]*Session),
		profiles:   profiles,
		engineOpts: engineOpts,
		log:        log,
	}
}

func (m *Manager) Profiles() *profile.Registry { return m.profiles }

// SetObserver 替换事件接收者（通常是 WebSocket hub）
func (m *Manager) SetObserver(o Observer) {
	m.obsMu.Lock()
	m.observer = o
	m.obsMu.Unlock()
}

func (m *Manager) publish(ev Event) {
	m.obsMu.RLock()
	o := m.observer
	m.obsMu.RUnlock()
	if o != nil {
		o(ev)
	}
}

// NewGame 未知的对手 id 按默认对手处理；每局一个独立引擎（TT 不共享）
func (m *Manager) NewGame(opts NewGameOptions) *Session {
	p := m.profiles.Resolve(opts.ProfileID)

	board := connect4.NewStandardBoard()
	if opts.Expert {
		board = connect4.NewExpertBoard()
	}
	if opts.AIFirst {
		board.SetCurrentPlayer(connect4.AI)
	}

	id := uuid.NewString()
	now := time.Now()
	s := &Session{
		ID:        id,
		Profile:   p,
		Expert:    opts.Expert,
		Engine:    profile.NewEngine(p, m.engineOpts),
		CreatedAt: now,
		board:     board,
		updatedAt: now,
		publish:   m.publish,
		log:       m.log.With().Str("game", id).Str("profile", p.ID).Logger(),
	}

	m.mu.Lock()
	m.games[id] = s
	m.mu.Unlock()

	s.log.Info().Bool("expert", opts.Expert).Bool("ai_first", opts.AIFirst).Msg("new game")
	return s
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.games[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

func (m *Manager) Delete(id string) {
	m.mu.Lock()
	delete(m.games, id)
	m.mu.Unlock()
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

// Prune 删掉超过 idle 没有动过的对局，返回删掉的数量
func (m *Manager) Prune(idle time.Duration) int {
	cutoff := time.Now().Add(-idle)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.games {
		if s.UpdatedAt().Before(cutoff) {
			delete(m.games, id)
			n++
		}
	}
	if n > 0 {
		m.log.Debug().Int("pruned", n).Int("left", len(m.games)).Msg("pruned idle games")
	}
	return n
}
