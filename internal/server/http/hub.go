package httpserver

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"tiergewinnt/internal/server/game"
)

const (
	wsIdlePingInterval = 30 * time.Second
	wsSendBuffer       = 16
)

type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Hub 把对局事件推给订阅了该 game_id 的 WebSocket 连接
type Hub struct {
	mu      sync.Mutex
	clients map[string]map[*wsClient]struct{}
	closed  bool

	games    *game.Manager
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

type wsClient struct {
	gameID string
	send   chan []byte
}

func NewHub(games *game.Manager, log zerolog.Logger) *Hub {
	return &Hub{
		clients:  make(map[string]map[*wsClient]struct{}),
		games:    games,
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		log:      log,
	}
}

// Publish 实现 game.Observer；发不出去（缓冲满）的消息直接丢掉
func (h *Hub) Publish(ev game.Event) {
	data := mustMarshal(wsMessage{Type: string(ev.Type), Payload: mustMarshal(ev)})

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients[ev.GameID] {
		select {
		case c.send <- data:
		default:
			h.log.Warn().Str("game", ev.GameID).Msg("ws client too slow, dropping message")
		}
	}
}

func (h *Hub) register(c *wsClient) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	set := h.clients[c.gameID]
	if set == nil {
		set = make(map[*wsClient]struct{})
		h.clients[c.gameID] = set
	}
	set[c] = struct{}{}
	return true
}

func (h *Hub) unregister(c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set := h.clients[c.gameID]
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.clients, c.gameID)
	}
	close(c.send)
}

// deliver 只给仍在表里的连接发，避免写已关闭的 channel
func (h *Hub) deliver(c *wsClient, data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c.gameID][c]; !ok {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

// Clients 当前订阅 gameID 的连接数
func (h *Hub) Clients(gameID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[gameID])
}

// Close 关闭所有连接的发送队列，写协程随后退出并关掉连接
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for id, set := range h.clients {
		for c := range set {
			close(c.send)
		}
		delete(h.clients, id)
	}
}

// ServeWS GET /ws?game_id=...
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	s, err := h.games.Get(r.URL.Query().Get("game_id"))
	if err != nil {
		writeGameError(w, err)
		return
	}
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	c := &wsClient{gameID: s.ID, send: make(chan []byte, wsSendBuffer)}
	if !h.register(c) {
		conn.Close()
		return
	}
	h.deliver(c, boardMessage(s))

	go func() {
		defer conn.Close()
		if err := writeWSWithHeartbeat(conn, c.send); err != nil {
			h.log.Debug().Err(err).Str("game", s.ID).Msg("ws write stopped")
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			h.unregister(c)
			return
		}
		var msg wsMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		if msg.Type == "request_state" {
			h.deliver(c, boardMessage(s))
		}
	}
}

func boardMessage(s *game.Session) []byte {
	snap := s.Snapshot()
	ev := game.Event{Type: game.EventBoard, GameID: s.ID, Move: -1, Snapshot: snap}
	return mustMarshal(wsMessage{Type: string(ev.Type), Payload: mustMarshal(ev)})
}

func writeWSWithHeartbeat(conn *websocket.Conn, send <-chan []byte) error {
	ticker := time.NewTicker(wsIdlePingInterval)
	defer ticker.Stop()
	lastWrite := time.Now()
	pingPayload := mustMarshal(wsMessage{Type: "ping"})

	for {
		select {
		case msg, ok := <-send:
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return nil
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return err
			}
			lastWrite = time.Now()
		case <-ticker.C:
			if time.Since(lastWrite) < wsIdlePingInterval {
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, pingPayload); err != nil {
				return err
			}
			lastWrite = time.Now()
		}
	}
}

func mustMarshal(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}
