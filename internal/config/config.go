// Package config provides configuration for cli-chess: draw rules, PGN
// export, persistence and logging.
package config

import (
	"fmt"
	"time"

	"github.com/Spyabo/CLI-Chess/internal/engine"
	"github.com/Spyabo/CLI-Chess/internal/errors"
	"github.com/Spyabo/CLI-Chess/internal/game"
	"github.com/Spyabo/CLI-Chess/internal/pgn"
)

// Store backends.
const (
	FileBackend     = "file"
	RedisBackend    = "redis"
	PostgresBackend = "postgres"
)

// Log formats.
const (
	ConsoleFormat = "console"
	JSONFormat    = "json"
)

// RulesConfig toggles the automatic draw rules.
type RulesConfig struct {
	FiftyMove            bool `yaml:"fifty_move"`
	InsufficientMaterial bool `yaml:"insufficient_material"`
	ThreefoldRepetition  bool `yaml:"threefold_repetition"`
}

// PGNConfig holds PGN export settings.
type PGNConfig struct {
	Event      string `yaml:"event"`
	Site       string `yaml:"site"`
	LineLength int    `yaml:"line_length"`
	Figurine   bool   `yaml:"figurine"`
}

// StoreConfig selects where saved games live.
type StoreConfig struct {
	Backend string `yaml:"backend"`

	// Directory for the file backend. Empty means the XDG data directory.
	Dir string `yaml:"dir"`

	RedisURL    string        `yaml:"redis_url"`
	DatabaseURL string        `yaml:"database_url"`
	TTL         time.Duration `yaml:"ttl"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config holds all program configuration.
type Config struct {
	Rules RulesConfig `yaml:"rules"`
	PGN   PGNConfig   `yaml:"pgn"`
	Store StoreConfig `yaml:"store"`
	Log   LogConfig   `yaml:"log"`

	// Concurrent workers for batch PGN validation. 0 means one per CPU.
	Workers int `yaml:"workers"`
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		Rules: RulesConfig{
			FiftyMove:            true,
			InsufficientMaterial: true,
			ThreefoldRepetition:  true,
		},
		PGN: PGNConfig{
			Event:      game.DefaultEvent,
			Site:       game.DefaultSite,
			LineLength: pgn.DefaultLineLength,
		},
		Store: StoreConfig{
			Backend: FileBackend,
			TTL:     7 * 24 * time.Hour,
		},
		Log: LogConfig{
			Level:  "info",
			Format: ConsoleFormat,
		},
	}
}

// Validate checks that the configuration is usable. Errors wrap
// errors.ErrInvalidConfig.
func (c *Config) Validate() error {
	if c.PGN.LineLength < 0 {
		return invalid("pgn.line_length must not be negative, got %d", c.PGN.LineLength)
	}
	if c.Workers < 0 {
		return invalid("workers must not be negative, got %d", c.Workers)
	}
	switch c.Store.Backend {
	case FileBackend:
	case RedisBackend:
		if c.Store.RedisURL == "" {
			return invalid("store.redis_url is required for the %s backend", RedisBackend)
		}
		if c.Store.TTL < 0 {
			return invalid("store.ttl must not be negative, got %s", c.Store.TTL)
		}
	case PostgresBackend:
		if c.Store.DatabaseURL == "" {
			return invalid("store.database_url is required for the %s backend", PostgresBackend)
		}
	default:
		return invalid("unknown store.backend %q", c.Store.Backend)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return invalid("unknown log.level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case ConsoleFormat, JSONFormat:
	default:
		return invalid("unknown log.format %q", c.Log.Format)
	}
	return nil
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", errors.ErrInvalidConfig, fmt.Sprintf(format, args...))
}

// EngineRules converts the rule toggles for the engine.
func (c *Config) EngineRules() engine.Rules {
	return engine.Rules{
		FiftyMove:            c.Rules.FiftyMove,
		InsufficientMaterial: c.Rules.InsufficientMaterial,
		ThreefoldRepetition:  c.Rules.ThreefoldRepetition,
	}
}

// PGNOptions converts the export settings for the PGN writer.
func (c *Config) PGNOptions() pgn.Options {
	return pgn.Options{
		LineLength: c.PGN.LineLength,
		Figurine:   c.PGN.Figurine,
	}
}

// GameOptions returns the game options implied by the configuration.
func (c *Config) GameOptions() []game.Option {
	return []game.Option{
		game.WithRules(c.EngineRules()),
		game.WithEvent(c.PGN.Event, c.PGN.Site),
		game.WithPGN(c.PGNOptions()),
	}
}
