// Package mobile is the gomobile-bindable entry point: the app extracts the web
// assets, calls StartServer and points a WebView at the returned URL.
package mobile

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"tiergewinnt/internal/leaderboard"
	"tiergewinnt/internal/profile"
	"tiergewinnt/internal/server/game"
	httpserver "tiergewinnt/internal/server/http"
)

var (
	mu      sync.Mutex
	running *http.Server
	cleanup func()
)

// StartServer starts the local HTTP server in the background and returns its
// base URL. webDir is the extracted web assets, dbPath the leaderboard file
// (empty disables the leaderboard), port e.g. "2888" or "0" for any free port.
func StartServer(webDir, dbPath, port string) (string, error) {
	mu.Lock()
	defer mu.Unlock()
	if running != nil {
		return "", errors.New("server already running")
	}

	logger := log.With().Str("component", "mobile").Logger()

	var scores leaderboard.Store
	var store *leaderboard.SQLiteStore
	if dbPath != "" {
		s, err := leaderboard.OpenSQLite(context.Background(), dbPath, logger)
		if err != nil {
			return "", err
		}
		store, scores = s, s
	}

	ln, err := net.Listen("tcp", "127.0.0.1:"+port)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return "", err
	}

	games := game.NewManager(profile.Default(), profile.DefaultEngineOptions(), logger)
	srv := httpserver.NewServer(httpserver.Options{Games: games, Scores: scores, WebDir: webDir, Log: logger})
	httpSrv := &http.Server{Handler: srv, ReadHeaderTimeout: 10 * time.Second}

	// 放后台，不能卡住 Android UI 线程
	go func() {
		if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("server error")
		}
	}()

	running = httpSrv
	cleanup = func() {
		srv.Close()
		if store != nil {
			store.Close()
		}
	}
	return "http://" + ln.Addr().String(), nil
}

// StopServer shuts down the server started by StartServer. Safe to call twice.
func StopServer() {
	mu.Lock()
	defer mu.Unlock()
	if running == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	cleanup()
	if err := running.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("mobile server shutdown")
	}
	running, cleanup = nil, nil
}

// SetDebugLogging toggles debug output of the embedded server.
func SetDebugLogging(on bool) {
	if on {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
