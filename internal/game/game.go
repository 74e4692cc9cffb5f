// Package game implements the game state machine: it owns the board, applies
// moves atomically, records history and refuses moves once the game is over.
package game

import (
	"go.uber.org/zap"

	"github.com/Spyabo/CLI-Chess/internal/chess"
	"github.com/Spyabo/CLI-Chess/internal/engine"
	"github.com/Spyabo/CLI-Chess/internal/errors"
	"github.com/Spyabo/CLI-Chess/internal/pgn"
)

// Game is a single game in progress. It is not safe for concurrent use.
type Game struct {
	opts   Options
	board  chess.Board
	record chess.Record
	status engine.GameStatus

	// Every position reached, starting with record.Start.
	positions []chess.Board
}

// New starts a game from the standard initial position.
func New(opts ...Option) *Game {
	g := &Game{opts: buildOptions(opts)}
	g.reset(engine.NewInitialBoard())
	return g
}

// NewFromFEN starts a game from a FEN position.
func NewFromFEN(fen string, opts ...Option) (*Game, error) {
	board, err := engine.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	g := &Game{opts: buildOptions(opts)}
	g.reset(board)
	return g, nil
}

// reset replaces all state with a fresh game starting at start.
func (g *Game) reset(start chess.Board) {
	g.board = start
	g.record = chess.NewRecord(start)
	if fen := engine.ToFEN(start); fen != engine.InitialFEN {
		g.record.SetTag(chess.SetupTag, "1")
		g.record.SetTag(chess.FENTag, fen)
	}
	g.positions = []chess.Board{start}
	g.status = engine.Classify(start, g.opts.Rules, nil)
	if g.status.IsTerminal() {
		g.record.Result = g.status.Result()
	}
}

// Reset returns the game to the standard initial position with an empty
// history.
func (g *Game) Reset() {
	g.reset(engine.NewInitialBoard())
	g.opts.Logger.Debug("game reset")
}

// Board returns a copy of the current board.
func (g *Game) Board() chess.Board {
	return g.board
}

// History returns a copy of the game record.
func (g *Game) History() chess.Record {
	return g.record.Clone()
}

// Status returns the status of the current position.
func (g *Game) Status() engine.GameStatus {
	return g.status
}

// FEN returns the FEN of the current position.
func (g *Game) FEN() string {
	return engine.ToFEN(g.board)
}

// LegalMoves returns the legal moves of the piece on sq. It is empty for
// empty squares, pieces of the side not to move, and once the game is over.
func (g *Game) LegalMoves(sq chess.Square) []chess.Move {
	if g.status.IsTerminal() {
		return nil
	}
	return engine.LegalMovesFrom(g.board, sq)
}

// AllLegalMoves returns every legal move for the side to move.
func (g *Game) AllLegalMoves() []chess.Move {
	if g.status.IsTerminal() {
		return nil
	}
	return engine.LegalMoves(g.board)
}

// Apply plays move. Only From, To and Promotion are consulted; the rest is
// taken from the matching legal move. The game is unchanged on error.
func (g *Game) Apply(move chess.Move) (engine.GameStatus, error) {
	if g.status.IsTerminal() {
		return g.status, errors.Wrapf(errors.ErrGameOver, "%s", g.status)
	}
	legal, err := engine.Legalize(g.board, move)
	if err != nil {
		return g.status, err
	}
	if err := g.commit(legal); err != nil {
		return g.status, err
	}
	return g.status, nil
}

// ApplySAN plays a move written in SAN. Notation warnings, such as a "+"
// on a move that does not give check, are returned alongside a successful
// move and do not prevent it.
func (g *Game) ApplySAN(text string) (engine.GameStatus, []error, error) {
	if g.status.IsTerminal() {
		return g.status, nil, errors.Wrapf(errors.ErrGameOver, "%s", g.status)
	}
	san, err := pgn.DecodeSAN(text)
	if err != nil {
		return g.status, nil, err
	}
	move, err := pgn.Resolve(g.board, san)
	if err != nil {
		return g.status, nil, err
	}
	if err := g.commit(move); err != nil {
		return g.status, nil, err
	}

	var warnings []error
	if warn := pgn.CheckNotation(san, g.board, g.record.PlyCount()); warn != nil {
		g.opts.Logger.Warn("notation mismatch",
			zap.String("move", text),
			zap.Int("ply", g.record.PlyCount()),
			zap.Error(warn))
		warnings = append(warnings, warn)
	}
	return g.status, warnings, nil
}

// commit plays a legal move and records it. State changes only after the
// resulting board has been computed.
func (g *Game) commit(move chess.Move) error {
	san := engine.SAN(g.board, move)
	next, err := engine.Apply(g.board, move)
	if err != nil {
		return err
	}

	status := engine.Classify(next, g.opts.Rules, g.positions)

	g.record.Append(chess.Entry{
		Move:      move,
		Board:     next,
		SAN:       san,
		Timestamp: g.opts.Clock(),
	})
	g.positions = append(g.positions, next)
	g.board = next
	g.status = status

	g.opts.Logger.Debug("move applied",
		zap.Int("ply", g.record.PlyCount()),
		zap.String("san", san),
		zap.String("uci", move.UCI()),
		zap.Stringer("status", status))

	if status.IsTerminal() {
		g.record.Result = status.Result()
		g.opts.Logger.Info("game over",
			zap.Stringer("status", status),
			zap.String("result", g.record.Result))
	}
	return nil
}
