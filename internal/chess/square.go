package chess

import (
	"fmt"

	"github.com/Spyabo/CLI-Chess/internal/errors"
)

// Square identifies one of the 64 board squares by file (0 = a) and
// rank (0 = 1). Squares are comparable and usable as map keys.
type Square struct {
	File int8
	Rank int8
}

// NoSquare marks the absence of a square, e.g. no en passant target.
var NoSquare = Square{File: -1, Rank: -1}

// NewSquare returns the square at the given file and rank indices.
// The second result is false when either index is outside 0-7.
func NewSquare(file, rank int8) (Square, bool) {
	sq := Square{File: file, Rank: rank}
	return sq, sq.Valid()
}

// SquareAt returns the square for a 0-63 index (a1 = 0, h8 = 63).
func SquareAt(index int) Square {
	return Square{File: int8(index % BoardSize), Rank: int8(index / BoardSize)}
}

// ParseSquare converts algebraic text such as "e4" to a square.
func ParseSquare(text string) (Square, error) {
	if len(text) != 2 ||
		text[0] < FileBase || text[0] > FileBase+BoardSize-1 ||
		text[1] < RankBase || text[1] > RankBase+BoardSize-1 {
		return NoSquare, &errors.ParseError{
			Err:      errors.ErrInvalidSquare,
			Input:    text,
			Expected: "file a-h followed by rank 1-8",
		}
	}
	return Square{File: int8(text[0] - FileBase), Rank: int8(text[1] - RankBase)}, nil
}

// MustParseSquare is like ParseSquare but panics on malformed input.
// It is intended for constants and tests.
func MustParseSquare(text string) Square {
	sq, err := ParseSquare(text)
	if err != nil {
		panic(err)
	}
	return sq
}

// Valid reports whether both coordinates are on the board.
func (s Square) Valid() bool {
	return s.File >= 0 && s.File < BoardSize && s.Rank >= 0 && s.Rank < BoardSize
}

// Index returns the 0-63 array index of the square.
func (s Square) Index() int {
	return int(s.Rank)*BoardSize + int(s.File)
}

// Offset returns the square shifted by the given file and rank deltas.
// The second result is false when the target is off the board.
func (s Square) Offset(df, dr int8) (Square, bool) {
	return NewSquare(s.File+df, s.Rank+dr)
}

// FileLetter returns the file character 'a'-'h'.
func (s Square) FileLetter() byte {
	return byte(s.File) + FileBase
}

// RankDigit returns the rank character '1'-'8'.
func (s Square) RankDigit() byte {
	return byte(s.Rank) + RankBase
}

// IsLight reports whether the square is a light square (h1 is light).
func (s Square) IsLight() bool {
	return (int(s.File)+int(s.Rank))%2 == 1
}

// String returns the algebraic name of the square, or "-" for NoSquare.
func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{s.FileLetter(), s.RankDigit()})
}

// GoString makes squares readable in test diffs.
func (s Square) GoString() string {
	return fmt.Sprintf("chess.Square(%s)", s)
}
