package testutil

import (
	"testing"

	"github.com/Spyabo/CLI-Chess/internal/chess"
	"github.com/Spyabo/CLI-Chess/internal/engine"
	"github.com/Spyabo/CLI-Chess/internal/pgn"
)

// Positions shared across test packages.
const (
	// Black has just mated with Qh4#.
	FoolsMateFEN = "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3"

	// Black to move and stalemated.
	StalemateFEN = "k7/2Q5/1K6/8/8/8/8/8 b - - 0 1"

	// The black knight on c6 is pinned to the king by Bb5.
	PinnedKnightFEN = "r1bqkbnr/ppp1pppp/2n5/1B1p4/3P4/4P3/PPP2PPP/RNBQK1NR b KQkq - 0 1"

	// White may capture en passant on f6.
	EnPassantFEN = "rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3"

	// White may castle kingside only; queenside is blocked.
	CastlingFEN = "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/RNBQK2R w KQkq - 0 1"

	// White promotes on a8.
	PromotionFEN = "4k3/P7/8/8/8/8/8/4K3 w - - 0 1"

	// Position 2 of the standard perft suite.
	KiwipeteFEN = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
)

// MustParseFEN parses fen or fails the test.
func MustParseFEN(t testing.TB, fen string) chess.Board {
	t.Helper()
	board, err := engine.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return board
}

// MustPlay plays SAN moves from fen and returns the resulting board.
// An empty fen means the initial position.
func MustPlay(t testing.TB, fen string, sans ...string) chess.Board {
	t.Helper()
	board := engine.NewInitialBoard()
	if fen != "" {
		board = MustParseFEN(t, fen)
	}
	for i, text := range sans {
		san, err := pgn.DecodeSAN(text)
		if err != nil {
			t.Fatalf("move %d %q: %v", i+1, text, err)
		}
		move, err := pgn.Resolve(board, san)
		if err != nil {
			t.Fatalf("move %d %q: %v", i+1, text, err)
		}
		board, err = engine.Apply(board, move)
		if err != nil {
			t.Fatalf("move %d %q: %v", i+1, text, err)
		}
	}
	return board
}

// MustMove finds the legal move from one square to another, with an
// optional promotion piece, or fails the test.
func MustMove(t testing.TB, board chess.Board, from, to string, promotion ...chess.Piece) chess.Move {
	t.Helper()
	want := chess.Move{From: chess.MustParseSquare(from), To: chess.MustParseSquare(to)}
	if len(promotion) > 0 {
		want.Promotion = promotion[0]
	}
	move, err := engine.Legalize(board, want)
	if err != nil {
		t.Fatalf("%s%s: %v", from, to, err)
	}
	return move
}
