package main

import (
	"context"
	"os"

	"github.com/desertthunder/mymusic/internal/shared"
	"github.com/urfave/cli/v3"
)

// ConfigPathEnv overrides the default config.toml location.
const ConfigPathEnv = "MYMUSIC_CONFIG"

func configPath() string {
	if p := os.Getenv(ConfigPathEnv); p != "" {
		return p
	}
	return "config.toml"
}

func main() {
	logger := shared.NewLogger(nil)

	config, err := shared.LoadConfigOrDefault(configPath())
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	if l, err := shared.NewLoggerFromConfig(nil, config.Log); err != nil {
		logger.Warn("invalid log config, using defaults", "error", err)
	} else {
		logger = l
	}

	runner, err := NewRunnerFromConfig(config, logger)
	if err != nil {
		logger.Fatalf("failed to initialize: %v", err)
	}
	defer runner.Close()

	app := &cli.Command{
		Name:     "mymusic",
		Usage:    "Discover music, keep likes and playlists, and export them",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Error("command failed", "error", err)
		runner.Close()
		os.Exit(1)
	}
}
