package chess

import (
	"fmt"

	"github.com/Spyabo/CLI-Chess/internal/errors"
)

// Castling holds the four independent castling rights. A right only ever
// goes from true to false during play.
type Castling struct {
	WhiteKingside  bool
	WhiteQueenside bool
	BlackKingside  bool
	BlackQueenside bool
}

// AllCastling grants every castling right.
var AllCastling = Castling{
	WhiteKingside:  true,
	WhiteQueenside: true,
	BlackKingside:  true,
	BlackQueenside: true,
}

// Kingside reports the kingside right of the given colour.
func (c Castling) Kingside(colour Colour) bool {
	if colour == White {
		return c.WhiteKingside
	}
	return c.BlackKingside
}

// Queenside reports the queenside right of the given colour.
func (c Castling) Queenside(colour Colour) bool {
	if colour == White {
		return c.WhiteQueenside
	}
	return c.BlackQueenside
}

// Revoke clears both rights of the given colour.
func (c *Castling) Revoke(colour Colour) {
	if colour == White {
		c.WhiteKingside, c.WhiteQueenside = false, false
		return
	}
	c.BlackKingside, c.BlackQueenside = false, false
}

// Any reports whether at least one right remains.
func (c Castling) Any() bool {
	return c.WhiteKingside || c.WhiteQueenside || c.BlackKingside || c.BlackQueenside
}

// Board is the complete state of a position. It is a plain value: assigning
// a Board copies all of it, which the engine relies on for scratch copies.
type Board struct {
	// Squares indexed by Square.Index (a1 = 0, h8 = 63).
	Squares [NumSquares]Piece

	// Who has the next move.
	ToMove Colour

	Castling Castling

	// Square a pawn skipped over on the previous ply, or NoSquare.
	EnPassant Square

	// Half-moves since the last pawn move or capture.
	HalfmoveClock uint

	// Starts at 1, incremented after each Black move.
	FullmoveNumber uint
}

// NewBoard creates an empty board with White to move.
func NewBoard() Board {
	return Board{
		ToMove:         White,
		EnPassant:      NoSquare,
		FullmoveNumber: 1,
	}
}

// Get returns the coloured piece on sq, or Empty.
func (b Board) Get(sq Square) Piece {
	if !sq.Valid() {
		return Empty
	}
	return b.Squares[sq.Index()]
}

// Set places a coloured piece (or Empty) on sq.
func (b *Board) Set(sq Square, piece Piece) {
	if sq.Valid() {
		b.Squares[sq.Index()] = piece
	}
}

// IsEmpty reports whether sq holds no piece.
func (b Board) IsEmpty(sq Square) bool {
	return b.Get(sq) == Empty
}

// KingSquare returns the square of the given colour's king, or NoSquare.
func (b Board) KingSquare(colour Colour) Square {
	king := MakeColouredPiece(colour, King)
	for i, p := range b.Squares {
		if p == king {
			return SquareAt(i)
		}
	}
	return NoSquare
}

// Count returns how many of the given coloured piece are on the board.
func (b Board) Count(colouredPiece Piece) int {
	n := 0
	for _, p := range b.Squares {
		if p == colouredPiece {
			n++
		}
	}
	return n
}

// Validate checks the structural invariants the engine depends on:
// exactly one king per colour and no pawns on the back ranks.
func (b Board) Validate() error {
	for _, colour := range []Colour{White, Black} {
		if n := b.Count(MakeColouredPiece(colour, King)); n != 1 {
			return errors.Wrapf(errors.ErrCorruptState, "%s has %d kings", colour, n)
		}
	}
	for file := int8(0); file < BoardSize; file++ {
		for _, rank := range []int8{0, BoardSize - 1} {
			sq := Square{File: file, Rank: rank}
			if ExtractPiece(b.Get(sq)) == Pawn {
				return errors.Wrapf(errors.ErrCorruptState, "pawn on %s", sq)
			}
		}
	}
	return nil
}

// String renders the board as eight ranks, rank 8 first, using FEN letters
// and '.' for empty squares.
func (b Board) String() string {
	out := make([]byte, 0, (BoardSize+1)*BoardSize)
	for rank := int8(BoardSize - 1); rank >= 0; rank-- {
		for file := int8(0); file < BoardSize; file++ {
			p := b.Get(Square{File: file, Rank: rank})
			if p == Empty {
				out = append(out, '.')
			} else {
				out = append(out, FENLetter(p))
			}
		}
		out = append(out, '\n')
	}
	return string(out)
}

// GoString includes the side to move so failed comparisons are readable.
func (b Board) GoString() string {
	return fmt.Sprintf("chess.Board{ToMove: %s, EnPassant: %s}\n%s", b.ToMove, b.EnPassant, b.String())
}
