package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guardline/guardline/internal/httpserver"
	"github.com/guardline/guardline/internal/keyword"
	"github.com/guardline/guardline/internal/monitor"
	"github.com/guardline/guardline/internal/platform/config"
	"github.com/guardline/guardline/internal/platform/logging"
	"github.com/guardline/guardline/internal/reddit"
	"github.com/jonboulle/clockwork"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupAnalyzer(cfg *config.Config) *keyword.Analyzer {
	tables := keyword.DefaultTables()
	if cfg.KeywordsFile != "" {
		if err := tables.MergeFile(cfg.KeywordsFile); err != nil {
			slog.Error("Failed to merge keyword overrides", "path", cfg.KeywordsFile, "error", err)
			os.Exit(1)
		}
		slog.Info("Merged keyword overrides", "path", cfg.KeywordsFile)
	}

	analyzer, err := keyword.NewAnalyzer(tables, keyword.DefaultThresholds())
	if err != nil {
		slog.Error("Failed to create analyzer", "error", err)
		os.Exit(1)
	}
	return analyzer
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()
	logging.Init(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port, "subreddits", cfg.Subreddits)

	analyzer := setupAnalyzer(cfg)

	client := reddit.NewClient(reddit.ClientConfig{
		ClientID:     cfg.RedditClientID,
		ClientSecret: cfg.RedditClientSecret,
		UserAgent:    cfg.RedditUserAgent,
	})
	stream := reddit.NewStream(client, cfg.Subreddits, cfg.PollInterval, clock)

	svc := monitor.NewService(analyzer, stream, keyword.Label(cfg.FlagSentiment), monitor.LogReporter{})

	srv := httpserver.NewServer(cfg.Port, nil)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := svc.Run(ctx); err != nil {
		slog.Error("Monitor stopped with error", "error", err)
	}

	slog.Info("Shutdown signal received, cleaning up...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
}
