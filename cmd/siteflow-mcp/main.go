package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	mcp "github.com/siteflow-tools/siteflow-mcp"
	"github.com/siteflow-tools/siteflow-mcp/internal/config"
	"github.com/siteflow-tools/siteflow-mcp/internal/siteflow"
	"github.com/siteflow-tools/siteflow-mcp/pkg/log"
)

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

func main() {
	serverURL := flag.String(
		"server",
		"",
		"Siteflow base URL (overrides SITEFLOW_SERVER_URL)",
	)
	flag.Parse()

	cfg := config.NewDefaultConfig()
	if err := cfg.LoadFromEnv(); err != nil {
		slog.Error("Invalid configuration", log.Error(err))
		os.Exit(1)
	}
	if *serverURL != "" {
		cfg.ServerURL = *serverURL
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", log.Error(err))
		os.Exit(1)
	}

	setupLogging(cfg)

	client := siteflow.New(cfg, slog.Default())
	srv, err := mcp.NewServer(client, slog.Default())
	if err != nil {
		slog.Error("Failed to start server", log.Error(err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(
		context.Background(), syscall.SIGINT, syscall.SIGTERM,
	)
	defer stop()

	slog.Info("Siteflow MCP server starting",
		slog.String("server_url", cfg.ServerURL),
		log.ProjectID(cfg.ProjectID))

	if err := srv.RunContext(ctx); err != nil {
		slog.Error("Server exited with error", log.Error(err))
		os.Exit(1)
	}
}

func setupLogging(cfg *config.Config) {
	level, ok := logLevels[cfg.LogLevel]
	if !ok {
		level = slog.LevelInfo
	}

	env := os.Getenv("ENV")
	logger := log.NewWithLevel(mcp.Name, env, mcp.Version, level)
	slog.SetDefault(logger)
	slog.SetLogLoggerLevel(level)
}
