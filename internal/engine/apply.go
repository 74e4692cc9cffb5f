package engine

import (
	"github.com/Spyabo/CLI-Chess/internal/chess"
	"github.com/Spyabo/CLI-Chess/internal/errors"
)

// Legalize finds the legal move matching m's from square, to square and
// promotion piece. The returned move carries the generator's piece, capture
// and flag fields, so callers may pass a bare {From, To, Promotion} move.
// A pawn reaching the last rank without a promotion piece becomes a queen.
func Legalize(board chess.Board, m chess.Move) (chess.Move, error) {
	for _, legal := range LegalMovesFrom(board, m.From) {
		if legal.To == m.To && legal.Promotion == PromotionOrQueen(m.Promotion, legal) {
			return legal, nil
		}
	}
	return chess.Move{}, errors.Wrapf(errors.ErrIllegalMove, "%s", m.UCI())
}

// PromotionOrQueen returns the promotion piece a request for want means
// against the generated move legal: a missing piece on a promoting move is
// a queen.
func PromotionOrQueen(want chess.Piece, legal chess.Move) chess.Piece {
	if want == chess.Empty && legal.IsPromotion() {
		return chess.Queen
	}
	return want
}

// Apply returns the board that results from playing m. The input board is
// not modified. It fails with ErrIllegalMove if m is not in the legal set.
func Apply(board chess.Board, m chess.Move) (chess.Board, error) {
	legal, err := Legalize(board, m)
	if err != nil {
		return board, err
	}
	return makeMove(board, legal), nil
}

// makeMove plays a generated move without checking legality.
func makeMove(board chess.Board, m chess.Move) chess.Board {
	next := board
	colour := board.ToMove
	piece := board.Get(m.From)

	next.Set(m.From, chess.Empty)
	if m.IsEnPassant() {
		next.Set(chess.Square{File: m.To.File, Rank: m.From.Rank}, chess.Empty)
	}
	if m.Promotion != chess.Empty {
		piece = chess.MakeColouredPiece(colour, m.Promotion)
	}
	next.Set(m.To, piece)

	if m.IsCastle() {
		home := chess.HomeRank(colour)
		rookFrom, rookTo := kingsideRookFile, kingsideRookTo
		if m.Has(chess.QueensideCastle) {
			rookFrom, rookTo = queensideRookFile, queensideRookTo
		}
		next.Set(chess.Square{File: rookTo, Rank: home}, next.Get(chess.Square{File: rookFrom, Rank: home}))
		next.Set(chess.Square{File: rookFrom, Rank: home}, chess.Empty)
	}

	// Rights only ever narrow.
	if m.Piece == chess.King {
		next.Castling.Revoke(colour)
	}
	revokeRookRight(&next.Castling, m.From)
	revokeRookRight(&next.Castling, m.To)

	next.EnPassant = chess.NoSquare
	if m.Has(chess.DoublePawnPush) {
		next.EnPassant = chess.Square{File: m.From.File, Rank: (m.From.Rank + m.To.Rank) / 2}
	}

	if m.Piece == chess.Pawn || m.IsCapture() {
		next.HalfmoveClock = 0
	} else {
		next.HalfmoveClock++
	}
	if colour == chess.Black {
		next.FullmoveNumber++
	}
	next.ToMove = colour.Opposite()
	return next
}

// revokeRookRight clears the right tied to a rook home square when a piece
// leaves or lands on it.
func revokeRookRight(c *chess.Castling, sq chess.Square) {
	switch sq {
	case chess.Square{File: queensideRookFile, Rank: 0}:
		c.WhiteQueenside = false
	case chess.Square{File: kingsideRookFile, Rank: 0}:
		c.WhiteKingside = false
	case chess.Square{File: queensideRookFile, Rank: chess.BoardSize - 1}:
		c.BlackQueenside = false
	case chess.Square{File: kingsideRookFile, Rank: chess.BoardSize - 1}:
		c.BlackKingside = false
	}
}
