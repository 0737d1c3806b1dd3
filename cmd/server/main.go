package main

import (
	"log/slog"
	"os"

	"github.com/lk16/flippy/versus/internal"
	"github.com/lk16/flippy/versus/internal/config"
)

func main() {
	config.LoadDotEnv()
	config.SetLogLevel()

	// Setup app
	app, cfg, cleanup := internal.SetupApp()
	defer cleanup()

	// Start server
	address := cfg.ServerHost + ":" + cfg.ServerPort
	if err := app.Listen(address); err != nil {
		slog.Error("Server stopped", "error", err)
		cleanup()
		os.Exit(1)
	}
}
