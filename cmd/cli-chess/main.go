// cli-chess plays, checks and stores chess games from the command line.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/Spyabo/CLI-Chess/internal/config"
	"github.com/Spyabo/CLI-Chess/internal/game"
	"github.com/Spyabo/CLI-Chess/internal/logging"
	"github.com/Spyabo/CLI-Chess/internal/store"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("cli-chess version %s\n", programVersion)
		os.Exit(0)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if *writeConf {
		path, err := config.Save(cfg, *configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Configuration written to %s\n", path)
		os.Exit(0)
	}

	logger := logging.New(cfg.Log)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := newApp(cfg, logger, os.Stdout, os.Stderr)
	if err := a.run(ctx, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `cli-chess %s - play, check and store chess games

Usage:
  cli-chess [options]              play -moves from -fen and print the position
  cli-chess [options] file.pgn...  replay and validate every game in the files
  cli-chess -list [-search text]   list saved games
  cli-chess -perft N [-fen FEN]    count move paths to depth N

Options:
`, programVersion)
	flag.PrintDefaults()
}

// app holds what every command needs.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	stdout io.Writer
	stderr io.Writer
	clock  func() time.Time
}

func newApp(cfg *config.Config, logger *zap.Logger, stdout, stderr io.Writer) *app {
	return &app{
		cfg:    cfg,
		logger: logger,
		stdout: stdout,
		stderr: stderr,
		clock:  time.Now,
	}
}

// run dispatches on the flags and positional arguments.
func (a *app) run(ctx context.Context, args []string) error {
	switch {
	case *listGames:
		return a.list(ctx)
	case *perftFlag > 0:
		return a.perft()
	case len(args) > 0:
		return a.validate(ctx, args)
	default:
		return a.play(ctx)
	}
}

func (a *app) gameOptions() []game.Option {
	return append(a.cfg.GameOptions(),
		game.WithLogger(a.logger),
		game.WithClock(a.clock))
}

func (a *app) openStore(ctx context.Context) (store.Store, error) {
	return store.Open(ctx, a.cfg.Store,
		store.WithLogger(a.logger),
		store.WithClock(a.clock))
}
