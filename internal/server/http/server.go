package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"tiergewinnt/internal/leaderboard"
	"tiergewinnt/internal/server/game"
)

type Options struct {
	Games  *game.Manager
	Scores leaderboard.Store // nil 表示不开排行榜
	WebDir string
	Log    zerolog.Logger
}

// Server 路由 + WebSocket hub。创建时把 hub 注册成 Manager 的事件接收者。
type Server struct {
	h   http.Handler
	hub *Hub
}

func NewServer(opts Options) *Server {
	hub := NewHub(opts.Games, opts.Log)
	opts.Games.SetObserver(hub.Publish)

	h := &Handler{games: opts.Games, scores: opts.Scores, log: opts.Log}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(opts.Log))
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/profiles", h.handleProfiles)
		r.Post("/new_game", h.handleNewGame)
		r.Post("/play", h.handlePlay)
		r.Post("/state", h.handleState)
		r.Post("/ai_move", h.handleAiMove)
		r.Post("/undo", h.handleUndo)
		r.Get("/leaderboard", h.handleLeaderboard)
		r.Post("/leaderboard", h.handleSubmitScore)
	})
	r.Get("/ws", hub.ServeWS)

	if RegisterStaticRoutes(r, opts.WebDir) {
		opts.Log.Info().Str("dir", opts.WebDir).Msg("serving static files")
	}

	return &Server{h: r, hub: hub}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.h.ServeHTTP(w, r)
}

func (s *Server) Hub() *Hub { return s.hub }

// Close 断开所有 WebSocket
func (s *Server) Close() { s.hub.Close() }

// requestLogger chi 的 middleware.Logger 换成 zerolog
func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				log.Debug().
					Str("request_id", middleware.GetReqID(r.Context())).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Int("status", ww.Status()).
					Int("bytes", ww.BytesWritten()).
					Dur("took", time.Since(start)).
					Msg("http request")
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
