// play.go - Playing moves, listing legal moves and perft
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/Spyabo/CLI-Chess/internal/chess"
	"github.com/Spyabo/CLI-Chess/internal/engine"
	"github.com/Spyabo/CLI-Chess/internal/errors"
	"github.com/Spyabo/CLI-Chess/internal/game"
	"github.com/Spyabo/CLI-Chess/internal/store"
)

// play sets up the game from -load or -fen, plays -moves and reports the
// resulting position. The game is then written out as requested.
func (a *app) play(ctx context.Context) error {
	g, err := a.startGame(ctx)
	if err != nil {
		return err
	}

	if err := a.playMoves(g, *movesFlag); err != nil {
		printPosition(a.stdout, g)
		return err
	}
	printPosition(a.stdout, g)

	if *legalFlag != "" {
		if err := printLegalMoves(a.stdout, g, *legalFlag); err != nil {
			return err
		}
	}
	return a.export(ctx, g)
}

// startGame returns a new game from -fen, or the saved game named by -load.
func (a *app) startGame(ctx context.Context) (*game.Game, error) {
	if *loadGame == "" {
		if *fenFlag == "" {
			return game.New(a.gameOptions()...), nil
		}
		return game.NewFromFEN(*fenFlag, a.gameOptions()...)
	}

	st, err := a.openStore(ctx)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	text, err := st.Load(ctx, *loadGame)
	if err != nil {
		return nil, err
	}
	g := game.New(a.gameOptions()...)
	_, warnings, err := g.LoadPGN(text)
	if err != nil {
		return nil, errors.Wrapf(err, "replay %s", *loadGame)
	}
	a.printWarnings(warnings)
	return g, nil
}

// playMoves applies each space-separated SAN move in turn.
func (a *app) playMoves(g *game.Game, moves string) error {
	for _, text := range strings.Fields(moves) {
		if isMoveNumber(text) {
			continue
		}
		_, warnings, err := g.ApplySAN(text)
		if err != nil {
			return &errors.MoveError{Err: err, Ply: len(g.History().Entries) + 1, MoveText: text}
		}
		a.printWarnings(warnings)
	}
	return nil
}

// isMoveNumber reports whether text is a move number such as "12." or "3...".
func isMoveNumber(text string) bool {
	digits := strings.TrimRight(text, ".")
	if digits == text || digits == "" {
		return false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return false
		}
	}
	return true
}

func (a *app) printWarnings(warnings []error) {
	for _, w := range warnings {
		fmt.Fprintf(a.stderr, "Warning: %v\n", w)
	}
}

// printPosition writes the board, FEN, status and moves played.
func printPosition(w io.Writer, g *game.Game) {
	fmt.Fprint(w, g.Board().String())
	fmt.Fprintf(w, "FEN: %s\n", g.FEN())
	fmt.Fprintf(w, "Status: %s\n", g.Status())

	record := g.History()
	if record.PlyCount() > 0 {
		sans := make([]string, len(record.Entries))
		for i, e := range record.Entries {
			sans[i] = e.SAN
		}
		fmt.Fprintf(w, "Moves: %s\n", strings.Join(sans, " "))
	}
	if g.Status().IsTerminal() {
		fmt.Fprintf(w, "Result: %s\n", record.Result)
	}
}

// printLegalMoves lists the legal moves from square, or every legal move
// when square is "all", in SAN sorted alphabetically.
func printLegalMoves(w io.Writer, g *game.Game, square string) error {
	var moves []chess.Move
	if square == "all" {
		moves = g.AllLegalMoves()
	} else {
		sq, err := chess.ParseSquare(square)
		if err != nil {
			return err
		}
		moves = g.LegalMoves(sq)
	}

	board := g.Board()
	sans := make([]string, len(moves))
	for i, m := range moves {
		sans[i] = engine.SAN(board, m)
	}
	sort.Strings(sans)

	fmt.Fprintf(w, "Legal moves (%s): %d\n", square, len(sans))
	if len(sans) > 0 {
		fmt.Fprintln(w, strings.Join(sans, " "))
	}
	return nil
}

// perft prints the per-move node counts and the total to -perft depth.
func (a *app) perft() error {
	board := engine.NewInitialBoard()
	if *fenFlag != "" {
		b, err := engine.ParseFEN(*fenFlag)
		if err != nil {
			return err
		}
		board = b
	}

	var total uint64
	for _, e := range engine.Divide(board, *perftFlag) {
		fmt.Fprintf(a.stdout, "%s: %d\n", e.Move, e.Nodes)
		total += e.Nodes
	}
	fmt.Fprintf(a.stdout, "\nNodes searched: %d\n", total)
	return nil
}

// export writes the game to -o and saves it to the store with -save.
func (a *app) export(ctx context.Context, g *game.Game) error {
	if *outputFile == "" && !*saveGame {
		return nil
	}
	text := g.SavePGN(*whiteName, *blackName)

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, []byte(text), 0o644); err != nil { //nolint:gosec // G306: PGN files are meant to be shared
			return errors.Wrapf(err, "write %s", *outputFile)
		}
		fmt.Fprintf(a.stdout, "PGN written to %s\n", *outputFile)
	}

	if *saveGame {
		st, err := a.openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		entry, err := st.Save(ctx, store.Entry{
			White:  *whiteName,
			Black:  *blackName,
			Result: g.History().Result,
		}, text)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "Saved game %s\n", entry.ID)
	}
	return nil
}
