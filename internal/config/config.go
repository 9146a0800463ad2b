package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

// Hard ceilings for the configurable limits; a 1024×1024 board is about a million tiles.
const (
	maxBoardSizeCeiling = 1024
	maxPlayersCeiling   = 256
)

type Config struct {
	LogLevel          string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort          string        `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort        string        `yaml:"socket-port" env:"SOCKET_PORT" env-default:"8080"`
	Game              Game          `yaml:"game"`
	Redis             Redis         `yaml:"redis"`
	SQLiteStoragePath string        `yaml:"sqlite-storage-path" env:"SQLITE_STORAGE_PATH" env-default:"standings.db"`
	ArchiveTimeout    time.Duration `yaml:"archive-timeout" env:"ARCHIVE_TIMEOUT" env-default:"2s"`
	MatchTTL          time.Duration `yaml:"match-ttl" env:"MATCH_TTL" env-default:"168h"`
}

// Game holds the defaults offered to players and the identities they can pick from.
type Game struct {
	BoardSize  int      `yaml:"board-size" env:"GAME_BOARD_SIZE" env-default:"3"`
	Players    int      `yaml:"players" env:"GAME_PLAYERS" env-default:"2"`
	Identities []string `yaml:"identities" env:"GAME_IDENTITIES" env-default:"cross,circle"`

	// upper bounds for what a client may request
	MaxBoardSize int `yaml:"max-board-size" env:"GAME_MAX_BOARD_SIZE" env-default:"64"`
	MaxPlayers   int `yaml:"max-players" env:"GAME_MAX_PLAYERS" env-default:"16"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate - checks the game defaults against the rules the coordinator enforces.
func (that *Config) Validate() error {
	if that.Game.MaxBoardSize < 1 || that.Game.MaxBoardSize > maxBoardSizeCeiling {
		return fmt.Errorf("%w: max board size %d, allowed 1..%d", apperror.ErrInvalidConfig, that.Game.MaxBoardSize, maxBoardSizeCeiling)
	}

	if that.Game.MaxPlayers < 2 || that.Game.MaxPlayers > maxPlayersCeiling {
		return fmt.Errorf("%w: max players %d, allowed 2..%d", apperror.ErrInvalidConfig, that.Game.MaxPlayers, maxPlayersCeiling)
	}

	if that.Game.BoardSize < 1 || that.Game.BoardSize > that.Game.MaxBoardSize {
		return fmt.Errorf("%w: board size %d", apperror.ErrInvalidConfig, that.Game.BoardSize)
	}

	if that.Game.Players < 2 || that.Game.Players > that.Game.MaxPlayers {
		return fmt.Errorf("%w: %d players", apperror.ErrInvalidConfig, that.Game.Players)
	}

	if len(that.Game.Identities) > 0 && that.Game.Players > len(that.Game.Identities) {
		return fmt.Errorf("%w: %d players but only %d identities", apperror.ErrInvalidConfig, that.Game.Players, len(that.Game.Identities))
	}

	seen := make(map[string]struct{}, len(that.Game.Identities))
	for _, identity := range that.Game.Identities {
		if identity == "" {
			return fmt.Errorf("%w: empty identity", apperror.ErrInvalidConfig)
		}
		if _, ok := seen[identity]; ok {
			return fmt.Errorf("%w: duplicate identity %q", apperror.ErrInvalidConfig, identity)
		}
		seen[identity] = struct{}{}
	}

	if that.ArchiveTimeout <= 0 {
		return fmt.Errorf("%w: archive timeout %s", apperror.ErrInvalidConfig, that.ArchiveTimeout)
	}

	if that.MatchTTL < 0 {
		return fmt.Errorf("%w: match ttl %s", apperror.ErrInvalidConfig, that.MatchTTL)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
