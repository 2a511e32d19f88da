package main

import (
	"context"
	"errors"
	"os"

	"github.com/cadencefm/cadence/internal/catalog"
	"github.com/cadencefm/cadence/internal/shared"
	"github.com/cadencefm/cadence/internal/spotify"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}
	shared.SetLogLevel(logger, config.Logging.Level)

	var backend catalog.Backend
	if config.Credentials.Spotify.ClientID != "" && config.Credentials.Spotify.ClientSecret != "" {
		backend = spotify.NewBackend(spotify.BackendConfig{
			ClientID:     config.Credentials.Spotify.ClientID,
			ClientSecret: config.Credentials.Spotify.ClientSecret,
			RateLimit:    config.Search.RateLimit,
			Logger:       logger,
		})
	}

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Backend: backend,
		Logger:  logger,
	})

	app := &cli.Command{
		Name:     "cadence",
		Usage:    "Search the Spotify catalog from the terminal",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		}
		logger.Fatalf("application error: %v", err)
	}
}
