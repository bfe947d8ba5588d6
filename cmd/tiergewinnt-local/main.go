package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"tiergewinnt/internal/config"
	"tiergewinnt/internal/leaderboard"
	"tiergewinnt/internal/profile"
	"tiergewinnt/internal/server/game"
	httpserver "tiergewinnt/internal/server/http"
)

const (
	pruneInterval = 5 * time.Minute
	gameIdleTTL   = 2 * time.Hour
)

func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default: // linux / bsd
		cmd = exec.Command("xdg-open", url)
	}

	_ = cmd.Start() // 无图形界面的环境会失败，忽略
}

func main() {
	configPath := flag.String("config", "tiergewinnt.json", "optional JSON config file")
	addr := flag.String("addr", "", "listen address (overrides config)")
	webDir := flag.String("web", "", "directory with index.html / js / css (overrides config)")
	dbPath := flag.String("db", "", "sqlite leaderboard path (overrides config)")
	logLevel := flag.String("log-level", "", "trace|debug|info|warn|error (overrides config)")
	noBrowser := flag.Bool("no-browser", false, "do not open the browser on start")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *configPath).Msg("load config")
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *webDir != "" {
		cfg.WebDir = *webDir
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *noBrowser {
		cfg.OpenBrowser = false
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}
	log = log.Level(cfg.Level())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scores, closeScores := openScores(ctx, cfg, log)
	defer closeScores()

	engineOpts := profile.DefaultEngineOptions()
	engineOpts.Workers = cfg.ABWorkers
	engineOpts.TTCapacity = cfg.TTCapacity
	engineOpts.TieTolerance = cfg.TieTolerance
	engineOpts.DrawBonus = cfg.MCTSDrawBonus
	engineOpts.Logger = log.With().Str("component", "engine").Logger()

	games := game.NewManager(profile.Default(), engineOpts, log.With().Str("component", "game").Logger())
	srv := httpserver.NewServer(httpserver.Options{
		Games:  games,
		Scores: scores,
		WebDir: cfg.WebDir,
		Log:    log.With().Str("component", "http").Logger(),
	})
	defer srv.Close()

	go func() {
		ticker := time.NewTicker(pruneInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := games.Prune(gameIdleTTL); n > 0 {
					log.Info().Int("pruned", n).Int("active", games.Len()).Msg("dropped idle games")
				}
			}
		}
	}()

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.Addr).Msg("listen")
	}
	httpSrv := &http.Server{Handler: srv, ReadHeaderTimeout: 10 * time.Second}

	url := "http://" + ln.Addr().String()
	log.Info().Str("url", url).Str("web", cfg.WebDir).Msg("listening")
	if cfg.OpenBrowser {
		go openBrowser(url)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.Serve(ln) }()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("serve")
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		srv.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("shutdown")
		}
	}
}

// openScores 配了远程地址就用远程表格，否则本地 sqlite；都失败时关掉排行榜
func openScores(ctx context.Context, cfg config.Config, log zerolog.Logger) (leaderboard.Store, func()) {
	lbLog := log.With().Str("component", "leaderboard").Logger()
	if cfg.LeaderboardURL != "" {
		log.Info().Str("url", cfg.LeaderboardURL).Msg("using remote leaderboard")
		return leaderboard.NewRemoteStore(cfg.LeaderboardURL, cfg.LeaderboardSheet, nil, lbLog), func() {}
	}
	if cfg.DBPath == "" {
		log.Warn().Msg("no leaderboard configured")
		return nil, func() {}
	}
	store, err := leaderboard.OpenSQLite(ctx, cfg.DBPath, lbLog)
	if err != nil {
		log.Error().Err(err).Str("path", cfg.DBPath).Msg("leaderboard disabled")
		return nil, func() {}
	}
	return store, func() {
		if err := store.Close(); err != nil {
			log.Warn().Err(err).Msg("close leaderboard")
		}
	}
}
