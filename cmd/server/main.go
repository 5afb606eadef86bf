package main

import (
	"errors"
	"flag"
	"io/fs"
	"log/slog"
	"os"

	"github.com/jaki95/audio-downloader/config"
	"github.com/jaki95/audio-downloader/internal/server"
)

func main() {
	configPath := flag.String("config", "./config/config.yaml", "Path to the configuration file")
	port := flag.String("port", "", "Server port (overrides the configuration file)")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Configuration file not found, using defaults", "path", *configPath)
		cfg, err = config.Default(), nil
	}
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *port != "" {
		cfg.Server.Port = *port
	}

	// Setup logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.Level(cfg.LogLevel)}))
	slog.SetDefault(logger)

	srv := server.New(cfg)
	srv.StartCleanupWorker()
	defer srv.Close()

	slog.Info("Starting audio downloader server", "port", cfg.Server.Port, "simulated_delay", cfg.Form.SimulatedDelay)
	if err := srv.Start(cfg.Server.Port); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
