package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	app "github.com/rocketscienceinc/tictactoe-engine/internal"
	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
)

const defaultConfigPath = "config.yml"

func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	configPath := flag.String("config", configPathFromEnv(), "path to the YAML config file")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	logger := newLogger(conf.LogLevel)

	logger.Info("tictactoe engine starting", "config", *configPath, "boardSize", conf.Game.BoardSize, "players", conf.Game.Players)

	if err := app.RunApp(logger, conf); err != nil {
		panic(fmt.Errorf("app run failed: %w", err))
	}
}

// configPathFromEnv - CONFIG_PATH wins over the default, the -config flag wins over both.
func configPathFromEnv() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}

	return defaultConfigPath
}

func newLogger(levelName string) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(levelName)}))
}

// parseLevel falls back to info on anything slog does not know.
func parseLevel(levelName string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(levelName))); err != nil {
		return slog.LevelInfo
	}

	return level
}
