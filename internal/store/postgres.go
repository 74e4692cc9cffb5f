package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/Spyabo/CLI-Chess/internal/errors"
)

// Schema creates the archive table.
const Schema = `
CREATE TABLE IF NOT EXISTS finished_games (
	game_id    TEXT PRIMARY KEY,
	white      TEXT NOT NULL,
	black      TEXT NOT NULL,
	result     TEXT NOT NULL DEFAULT '*',
	pgn        TEXT NOT NULL,
	saved_at   TIMESTAMPTZ NOT NULL
)`

// PostgresArchive stores games in the finished_games table.
type PostgresArchive struct {
	db   *sql.DB
	opts options
}

// NewPostgresArchive opens the database at url, checks the connection and
// creates the table when missing.
func NewPostgresArchive(ctx context.Context, url string, opts ...Option) (*PostgresArchive, error) {
	if strings.TrimSpace(url) == "" {
		return nil, errors.Wrap(errors.ErrInvalidConfig, "database url is required")
	}
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "database ping")
	}

	a := NewPostgresArchiveWithDB(db, opts...)
	if err := a.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return a, nil
}

// NewPostgresArchiveWithDB wraps an open database handle.
func NewPostgresArchiveWithDB(db *sql.DB, opts ...Option) *PostgresArchive {
	return &PostgresArchive{db: db, opts: buildOptions(opts)}
}

// EnsureSchema creates the archive table if it does not exist.
func (a *PostgresArchive) EnsureSchema(ctx context.Context) error {
	if _, err := a.db.ExecContext(ctx, Schema); err != nil {
		return errors.Wrap(err, "create finished_games")
	}
	return nil
}

// Save upserts the game under a fresh UUID.
func (a *PostgresArchive) Save(ctx context.Context, e Entry, pgnText string) (Entry, error) {
	if e.White == "" {
		e.White = DefaultWhite
	}
	if e.Black == "" {
		e.Black = DefaultBlack
	}
	if e.Result == "" {
		e.Result = "*"
	}
	e.ID = uuid.NewString()
	e.Saved = a.opts.clock()

	const q = `
		INSERT INTO finished_games (game_id, white, black, result, pgn, saved_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (game_id) DO UPDATE SET
			white = EXCLUDED.white,
			black = EXCLUDED.black,
			result = EXCLUDED.result,
			pgn = EXCLUDED.pgn,
			saved_at = EXCLUDED.saved_at`
	if _, err := a.db.ExecContext(ctx, q, e.ID, e.White, e.Black, e.Result, pgnText, e.Saved); err != nil {
		return Entry{}, errors.Wrapf(err, "insert game %s", e.ID)
	}
	a.opts.logger.Info("game archived", zap.String("id", e.ID))
	return e, nil
}

// Load returns the PGN archived under id.
func (a *PostgresArchive) Load(ctx context.Context, id string) (string, error) {
	var text string
	err := a.db.QueryRowContext(ctx, `SELECT pgn FROM finished_games WHERE game_id = $1`, id).Scan(&text)
	if err == sql.ErrNoRows {
		return "", errors.Wrapf(errors.ErrNotFound, "game %s", id)
	}
	if err != nil {
		return "", errors.Wrapf(err, "select game %s", id)
	}
	return text, nil
}

// List returns the archived games, newest first.
func (a *PostgresArchive) List(ctx context.Context) ([]Entry, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT game_id, white, black, result, saved_at
		FROM finished_games
		ORDER BY saved_at DESC, game_id DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "select games")
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.White, &e.Black, &e.Result, &e.Saved); err != nil {
			return nil, errors.Wrap(err, "scan game")
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "select games")
	}
	return entries, nil
}

// Close closes the database handle.
func (a *PostgresArchive) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}
