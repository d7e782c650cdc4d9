package main

import (
	"log/slog"
	"os"

	"github.com/nfrund/healthtrack/internal/app"
	"github.com/nfrund/healthtrack/internal/config"
	"github.com/nfrund/healthtrack/internal/logging"
)

func main() {
	cfg := config.New()
	logging.New()

	if err := cfg.ValidateServer(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	container := app.New(cfg)
	s, err := app.Server(container)
	if err != nil {
		slog.Error("Failed to build server", "error", err)
		os.Exit(1)
	}

	err = s.Start()
	app.Shutdown(container)
	if err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}
