package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"go.uber.org/zap"

	"github.com/Spyabo/CLI-Chess/internal/errors"
)

// DataDir is the games directory relative to the XDG data home.
const DataDir = "cli-chess/games"

const pgnExt = ".pgn"

// FileStore keeps one PGN file per game in a directory.
type FileStore struct {
	dir  string
	opts options
}

// NewFileStore returns a store rooted at dir. An empty dir uses the XDG
// data directory. The directory is created on first save.
func NewFileStore(dir string, opts ...Option) (*FileStore, error) {
	if dir == "" {
		dir = filepath.Join(xdg.DataHome, DataDir)
	}
	return &FileStore{dir: dir, opts: buildOptions(opts)}, nil
}

// Dir returns the directory holding the games.
func (s *FileStore) Dir() string { return s.dir }

// FileName returns the file name for a game between white and black saved
// at the entry's time: White-Black-YYYY-MM-DD_HHMMSS.pgn.
func FileName(e Entry) string {
	return SanitizeName(e.White) + "-" + SanitizeName(e.Black) + "-" +
		e.Saved.Format("2006-01-02_150405") + pgnExt
}

// SanitizeName replaces every character outside [A-Za-z0-9_-] with '_'.
func SanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}

// Save writes the game to a new file. A file with the same name is
// overwritten.
func (s *FileStore) Save(_ context.Context, e Entry, pgnText string) (Entry, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return Entry{}, errors.Wrapf(err, "create games directory %s", s.dir)
	}
	if e.White == "" {
		e.White = DefaultWhite
	}
	if e.Black == "" {
		e.Black = DefaultBlack
	}
	e.Saved = s.opts.clock()
	e.ID = filepath.Join(s.dir, FileName(e))

	if err := os.WriteFile(e.ID, []byte(pgnText), 0o644); err != nil {
		return Entry{}, errors.Wrapf(err, "write game %s", e.ID)
	}
	s.opts.logger.Info("game saved", zap.String("path", e.ID))
	return e, nil
}

// Load reads a saved game. id may be a path or a file name within the
// store directory.
func (s *FileStore) Load(_ context.Context, id string) (string, error) {
	path := id
	if !filepath.IsAbs(path) && filepath.Dir(path) == "." {
		path = filepath.Join(s.dir, path)
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", errors.Wrapf(errors.ErrNotFound, "game %s", id)
	}
	if err != nil {
		return "", errors.Wrapf(err, "read game %s", id)
	}
	return string(data), nil
}

// List returns every .pgn file in the directory, newest first by
// modification time. A missing directory yields no entries.
func (s *FileStore) List(_ context.Context) ([]Entry, error) {
	dirEntries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "list games in %s", s.dir)
	}

	var entries []Entry
	for _, de := range dirEntries {
		if de.IsDir() || filepath.Ext(de.Name()) != pgnExt {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		e := Entry{ID: filepath.Join(s.dir, de.Name()), Saved: info.ModTime()}
		data, err := os.ReadFile(e.ID)
		if err != nil {
			s.opts.logger.Warn("skip unreadable game", zap.String("path", e.ID), zap.Error(err))
			continue
		}
		peekHeaders(&e, string(data))
		entries = append(entries, e)
	}
	sortNewestFirst(entries)
	return entries, nil
}

// Close is a no-op.
func (s *FileStore) Close() error { return nil }
