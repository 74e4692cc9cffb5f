package game

import (
	"time"

	"go.uber.org/zap"

	"github.com/Spyabo/CLI-Chess/internal/engine"
	"github.com/Spyabo/CLI-Chess/internal/pgn"
)

// Default tag values written by SavePGN.
const (
	DefaultEvent = "CLI Chess Game"
	DefaultSite  = "Terminal"
	DefaultRound = "1"
)

// Options configures a Game.
type Options struct {
	// Draw rules applied after every move.
	Rules engine.Rules

	// Clock stamps history entries and the Date tag on export.
	Clock func() time.Time

	Logger *zap.Logger

	// Event and Site tags written by SavePGN.
	Event string
	Site  string

	// Formatting of exported PGN.
	PGN pgn.Options
}

// Option modifies Options.
type Option func(*Options)

func defaultOptions() Options {
	return Options{
		Rules:  engine.DefaultRules(),
		Clock:  time.Now,
		Logger: zap.NewNop(),
		Event:  DefaultEvent,
		Site:   DefaultSite,
	}
}

func buildOptions(opts []Option) Options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// WithRules selects which draw rules end the game.
func WithRules(rules engine.Rules) Option {
	return func(o *Options) {
		o.Rules = rules
	}
}

// WithClock sets the time source for entry timestamps and export dates.
func WithClock(clock func() time.Time) Option {
	return func(o *Options) {
		o.Clock = clock
	}
}

// WithLogger sets the logger. Moves are logged at debug level and notation
// mismatches at warn level.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithEvent sets the Event and Site tags used by SavePGN.
func WithEvent(event, site string) Option {
	return func(o *Options) {
		o.Event = event
		o.Site = site
	}
}

// WithPGN sets the formatting of exported PGN.
func WithPGN(p pgn.Options) Option {
	return func(o *Options) {
		o.PGN = p
	}
}
