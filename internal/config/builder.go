package config

import "time"

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithRules sets the draw rule toggles.
func (b *ConfigBuilder) WithRules(fiftyMove, insufficientMaterial, threefold bool) *ConfigBuilder {
	b.cfg.Rules = RulesConfig{
		FiftyMove:            fiftyMove,
		InsufficientMaterial: insufficientMaterial,
		ThreefoldRepetition:  threefold,
	}
	return b
}

// WithEvent sets the Event and Site tags written on export.
func (b *ConfigBuilder) WithEvent(event, site string) *ConfigBuilder {
	b.cfg.PGN.Event = event
	b.cfg.PGN.Site = site
	return b
}

// WithLineLength sets the maximum movetext line length.
func (b *ConfigBuilder) WithLineLength(length int) *ConfigBuilder {
	b.cfg.PGN.LineLength = length
	return b
}

// WithFigurine enables figurine notation on export.
func (b *ConfigBuilder) WithFigurine(enabled bool) *ConfigBuilder {
	b.cfg.PGN.Figurine = enabled
	return b
}

// WithFileStore saves games as PGN files in dir.
func (b *ConfigBuilder) WithFileStore(dir string) *ConfigBuilder {
	b.cfg.Store.Backend = FileBackend
	b.cfg.Store.Dir = dir
	return b
}

// WithRedisStore keeps games in Redis for ttl.
func (b *ConfigBuilder) WithRedisStore(url string, ttl time.Duration) *ConfigBuilder {
	b.cfg.Store.Backend = RedisBackend
	b.cfg.Store.RedisURL = url
	b.cfg.Store.TTL = ttl
	return b
}

// WithPostgresStore archives games in PostgreSQL.
func (b *ConfigBuilder) WithPostgresStore(url string) *ConfigBuilder {
	b.cfg.Store.Backend = PostgresBackend
	b.cfg.Store.DatabaseURL = url
	return b
}

// WithLog sets the log level and format.
func (b *ConfigBuilder) WithLog(level, format string) *ConfigBuilder {
	b.cfg.Log.Level = level
	b.cfg.Log.Format = format
	return b
}

// WithWorkers sets the number of concurrent batch workers.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Workers = n
	return b
}
