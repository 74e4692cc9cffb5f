// Package store persists finished and in-progress games as PGN text.
//
// Three backends are available: a directory of .pgn files, Redis keys with
// an expiry, and a PostgreSQL archive table. All of them implement Store.
package store

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Spyabo/CLI-Chess/internal/config"
	"github.com/Spyabo/CLI-Chess/internal/errors"
	"github.com/Spyabo/CLI-Chess/internal/pgn"
)

// Default player names used when a saved game has no White or Black tag.
const (
	DefaultWhite = "White"
	DefaultBlack = "Black"
)

// Entry describes a saved game.
type Entry struct {
	// ID locates the game within its backend: a file path, or a UUID for
	// the Redis and PostgreSQL backends.
	ID     string
	White  string
	Black  string
	Result string
	Saved  time.Time
}

// Store saves and retrieves games as PGN text.
type Store interface {
	// Save stores the PGN text and returns the entry with ID and Saved set.
	Save(ctx context.Context, entry Entry, pgnText string) (Entry, error)
	// Load returns the PGN text for id. Missing games wrap errors.ErrNotFound.
	Load(ctx context.Context, id string) (string, error)
	// List returns saved games, newest first.
	List(ctx context.Context) ([]Entry, error)
	Close() error
}

// Open returns the Store selected by cfg.
func Open(ctx context.Context, cfg config.StoreConfig, opts ...Option) (Store, error) {
	logger := buildOptions(opts).logger.With(zap.String("backend", cfg.Backend))
	opts = append(opts, WithLogger(logger))

	switch cfg.Backend {
	case config.FileBackend, "":
		return NewFileStore(cfg.Dir, opts...)
	case config.RedisBackend:
		return NewRedisStore(ctx, cfg.RedisURL, cfg.TTL, opts...)
	case config.PostgresBackend:
		return NewPostgresArchive(ctx, cfg.DatabaseURL, opts...)
	default:
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "unknown store backend %q", cfg.Backend)
	}
}

// Option configures a backend.
type Option func(*options)

type options struct {
	logger *zap.Logger
	clock  func() time.Time
}

func buildOptions(opts []Option) options {
	o := options{
		logger: zap.NewNop(),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithClock sets the time source used to stamp saved games.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// Search returns the entries whose player names or ID contain query,
// ignoring case. An empty query matches everything.
func Search(entries []Entry, query string) []Entry {
	var out []Entry
	for _, e := range entries {
		if Matches(e, query) {
			out = append(out, e)
		}
	}
	return out
}

// Matches reports whether query is a case-insensitive substring of the
// entry's ID or player names.
func Matches(e Entry, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, s := range []string{e.ID, e.White, e.Black} {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}

// peekHeaders fills the player names and result from the tag section of
// pgnText. Unreadable text leaves the defaults.
func peekHeaders(e *Entry, pgnText string) {
	e.White, e.Black = DefaultWhite, DefaultBlack
	g, err := pgn.ParseGame(pgnText)
	if err != nil {
		return
	}
	if v := g.GetTag("White"); v != "" {
		e.White = v
	}
	if v := g.GetTag("Black"); v != "" {
		e.Black = v
	}
	e.Result = g.GetTag("Result")
	if e.Result == "" {
		e.Result = g.Result
	}
}

func sortNewestFirst(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Saved.Equal(entries[j].Saved) {
			return entries[i].ID > entries[j].ID
		}
		return entries[i].Saved.After(entries[j].Saved)
	})
}
