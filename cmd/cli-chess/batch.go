// batch.go - Parallel validation of PGN files
package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Spyabo/CLI-Chess/internal/chess"
	"github.com/Spyabo/CLI-Chess/internal/pgn"
	"github.com/Spyabo/CLI-Chess/internal/worker"
)

// validate replays every game in files through the state machine. Each
// game is reported on its own line, or all valid games are written as JSON
// with -json. An error is returned when any file or game is invalid.
func (a *app) validate(ctx context.Context, files []string) error {
	var jobs []worker.Job
	badFiles := 0

	for _, path := range files {
		games, err := readGames(path)
		if err != nil {
			fmt.Fprintf(a.stderr, "%s: %v\n", path, err)
			badFiles++
			continue
		}
		jobs = append(jobs, worker.Jobs(path, games)...)
	}

	opts := []worker.PoolOption{
		worker.WithWorkers(a.cfg.Workers),
		worker.WithLogger(a.logger),
	}
	if *failFast {
		opts = append(opts, worker.WithStopOnError())
	}
	pool := worker.NewPool(worker.Replayer(a.gameOptions()...), opts...)

	results, err := pool.Run(ctx, jobs)
	if err != nil {
		return err
	}

	var valid []chess.Record
	failed := 0
	for _, res := range results {
		name := fmt.Sprintf("%s #%d", res.Source, jobs[res.Index].Index+1)
		for _, w := range res.Warnings {
			fmt.Fprintf(a.stderr, "%s: warning: %v\n", name, w)
		}
		if res.Err != nil {
			failed++
			fmt.Fprintf(a.stderr, "%s: %v\n", name, res.Err)
			continue
		}
		valid = append(valid, res.Record)
		if !*jsonOutput {
			fmt.Fprintf(a.stdout, "%s: ok, %d plies, %s\n", name, len(res.Record.Entries), res.Record.Result)
		}
	}

	if *jsonOutput {
		if err := pgn.WriteJSON(a.stdout, valid...); err != nil {
			return err
		}
	}

	a.logger.Info("validation finished",
		zap.Int("games", len(results)),
		zap.Int("valid", len(valid)),
		zap.Int("failed", failed),
		zap.Int("unreadable_files", badFiles))
	switch {
	case failed > 0:
		return fmt.Errorf("%d of %d games failed validation", failed, len(results))
	case badFiles > 0:
		return fmt.Errorf("%d of %d files could not be read", badFiles, len(files))
	}
	return nil
}

// readGames parses every game in the file at path.
func readGames(path string) ([]*pgn.Game, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return pgn.Parse(f)
}
