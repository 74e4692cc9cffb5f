package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adrg/xdg"

	"github.com/Spyabo/CLI-Chess/internal/engine"
	"github.com/Spyabo/CLI-Chess/internal/errors"
	"github.com/Spyabo/CLI-Chess/internal/pgn"
	"github.com/Spyabo/CLI-Chess/internal/testutil"
)

// TestNewConfig_Defaults verifies Config has sensible defaults
func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	testutil.AssertEqual(t, cfg.EngineRules(), engine.DefaultRules())
	testutil.AssertEqual(t, cfg.PGN.Event, "CLI Chess Game")
	testutil.AssertEqual(t, cfg.PGN.Site, "Terminal")
	testutil.AssertEqual(t, cfg.PGNOptions(), pgn.Options{LineLength: pgn.DefaultLineLength})
	testutil.AssertEqual(t, cfg.Store.Backend, FileBackend)
	testutil.AssertEqual(t, cfg.Log.Level, "info")
	testutil.AssertEqual(t, cfg.Workers, 0)
	testutil.AssertNoError(t, cfg.Validate())
	testutil.AssertLen(t, cfg.GameOptions(), 3)
}

func TestConfigBuilder(t *testing.T) {
	cfg := NewConfigBuilder().
		WithRules(true, false, false).
		WithEvent("Blitz", "Online").
		WithLineLength(60).
		WithFigurine(true).
		WithRedisStore("redis://localhost:6379/0", time.Hour).
		WithLog("debug", JSONFormat).
		WithWorkers(4).
		Build()

	testutil.AssertEqual(t, cfg.EngineRules(), engine.Rules{FiftyMove: true})
	testutil.AssertEqual(t, cfg.PGNOptions(), pgn.Options{LineLength: 60, Figurine: true})
	testutil.AssertEqual(t, cfg.PGN.Event, "Blitz")
	testutil.AssertEqual(t, cfg.Store, StoreConfig{Backend: RedisBackend, RedisURL: "redis://localhost:6379/0", TTL: time.Hour})
	testutil.AssertEqual(t, cfg.Log, LogConfig{Level: "debug", Format: JSONFormat})
	testutil.AssertEqual(t, cfg.Workers, 4)
	testutil.AssertNoError(t, cfg.Validate())

	cfg = NewConfigBuilder().WithPostgresStore("postgres://localhost/chess").WithFileStore("/tmp/games").Build()
	testutil.AssertEqual(t, cfg.Store.Backend, FileBackend)
	testutil.AssertEqual(t, cfg.Store.Dir, "/tmp/games")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"negative line length", func(c *Config) { c.PGN.LineLength = -1 }},
		{"negative workers", func(c *Config) { c.Workers = -2 }},
		{"unknown backend", func(c *Config) { c.Store.Backend = "s3" }},
		{"redis without url", func(c *Config) { c.Store.Backend = RedisBackend }},
		{"negative ttl", func(c *Config) {
			c.Store.Backend = RedisBackend
			c.Store.RedisURL = "redis://localhost:6379"
			c.Store.TTL = -time.Second
		}},
		{"postgres without url", func(c *Config) { c.Store.Backend = PostgresBackend }},
		{"unknown level", func(c *Config) { c.Log.Level = "verbose" }},
		{"unknown format", func(c *Config) { c.Log.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.modify(cfg)
			testutil.AssertErrorIs(t, cfg.Validate(), errors.ErrInvalidConfig)
		})
	}
}

func TestDecode(t *testing.T) {
	data := []byte(`
rules:
  fifty_move: false
  insufficient_material: true
  threefold_repetition: false
pgn:
  event: Rapid
  figurine: true
store:
  backend: redis
  redis_url: redis://cache:6379/1
  ttl: 36h
log:
  level: warn
workers: 8
`)
	cfg := NewConfig()
	testutil.AssertNoError(t, Decode(data, cfg))

	testutil.AssertEqual(t, cfg.EngineRules(), engine.Rules{InsufficientMaterial: true})
	testutil.AssertEqual(t, cfg.PGN.Event, "Rapid")
	testutil.AssertEqual(t, cfg.PGN.Site, "Terminal", "unset keys keep defaults")
	testutil.AssertTrue(t, cfg.PGN.Figurine)
	testutil.AssertEqual(t, cfg.Store.TTL, 36*time.Hour)
	testutil.AssertEqual(t, cfg.Log.Level, "warn")
	testutil.AssertEqual(t, cfg.Log.Format, ConsoleFormat)
	testutil.AssertEqual(t, cfg.Workers, 8)
}

func TestDecode_Errors(t *testing.T) {
	for name, data := range map[string]string{
		"unknown key":  "colour: blue\n",
		"wrong type":   "workers: many\n",
		"bad duration": "store:\n  ttl: soon\n",
	} {
		t.Run(name, func(t *testing.T) {
			err := Decode([]byte(data), NewConfig())
			testutil.AssertErrorIs(t, err, errors.ErrInvalidConfig)
		})
	}

	testutil.AssertNoError(t, Decode(nil, NewConfig()), "empty document")
}

func TestLoadAndSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg := NewConfigBuilder().WithEvent("Club", "Hall").WithWorkers(2).Build()
	written, err := Save(cfg, path)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, written, path)

	loaded, err := Load(path)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, loaded, cfg)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	testutil.AssertError(t, err)

	invalidPath := filepath.Join(dir, "invalid.yaml")
	testutil.AssertNoError(t, os.WriteFile(invalidPath, []byte("log:\n  level: loud\n"), 0o644))
	_, err = Load(invalidPath)
	testutil.AssertErrorIs(t, err, errors.ErrInvalidConfig)
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_DIRS", t.TempDir())
	xdg.Reload()
	defer xdg.Reload()

	cfg, err := Load("")
	testutil.AssertNoError(t, err)
	testutil.AssertNotNil(t, cfg)
	testutil.AssertEqual(t, cfg, NewConfig())
}
