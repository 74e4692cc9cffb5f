// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"

	"github.com/Spyabo/CLI-Chess/internal/config"
)

var (
	// Configuration
	configFile = flag.String("config", "", "Config file (default: searched in the XDG config directories)")
	logLevel   = flag.String("log-level", "", "Log level: debug, info, warn, error")
	logJSON    = flag.Bool("log-json", false, "Write logs as JSON")

	// Position and moves
	fenFlag   = flag.String("fen", "", "Starting position in FEN (default: initial position)")
	movesFlag = flag.String("moves", "", "SAN moves to play, separated by spaces")
	legalFlag = flag.String("legal", "", "List legal moves from this square, or 'all'")
	perftFlag = flag.Int("perft", 0, "Count move paths to this depth from the position")

	// Draw rules
	noFifty        = flag.Bool("nofifty", false, "Disable the fifty-move rule")
	noInsufficient = flag.Bool("noinsufficient", false, "Disable the insufficient material draw")
	noThreefold    = flag.Bool("nothreefold", false, "Disable the threefold repetition draw")

	// Batch validation of PGN files
	workers    = flag.Int("j", 0, "Parallel workers for PGN validation (0 = from config)")
	failFast   = flag.Bool("failfast", false, "Stop validating after the first invalid game")
	jsonOutput = flag.Bool("json", false, "Output validated games as JSON")

	// Saving and loading
	saveGame   = flag.Bool("save", false, "Save the game to the configured store")
	whiteName  = flag.String("white", "White", "White player's name")
	blackName  = flag.String("black", "Black", "Black player's name")
	outputFile = flag.String("o", "", "Write the game as PGN to this file")
	figurine   = flag.Bool("figurine", false, "Use figurine notation in PGN output")
	listGames  = flag.Bool("list", false, "List saved games, newest first")
	search     = flag.String("search", "", "Only list games matching this text")
	loadGame   = flag.String("load", "", "Load a saved game by ID or file name")
	writeConf  = flag.Bool("writeconfig", false, "Write the effective configuration and exit")

	// Help
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags applies command-line flags to the configuration.
func applyFlags(cfg *config.Config) {
	applyRuleFlags(cfg)
	applyLogFlags(cfg)

	if *workers > 0 {
		cfg.Workers = *workers
	}
	if *figurine {
		cfg.PGN.Figurine = true
	}
}

// applyRuleFlags disables draw rules named on the command line.
func applyRuleFlags(cfg *config.Config) {
	if *noFifty {
		cfg.Rules.FiftyMove = false
	}
	if *noInsufficient {
		cfg.Rules.InsufficientMaterial = false
	}
	if *noThreefold {
		cfg.Rules.ThreefoldRepetition = false
	}
}

// applyLogFlags overrides the log settings.
func applyLogFlags(cfg *config.Config) {
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *logJSON {
		cfg.Log.Format = config.JSONFormat
	}
}
