// Package chess provides core chess types: colours, pieces, squares, boards,
// moves and game records.
package chess

// Colour represents the colour of a piece or player.
type Colour int

const (
	White Colour = iota
	Black
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// Piece represents a chess piece type. Board cells hold coloured pieces built
// with MakeColouredPiece; the zero value is an empty cell.
type Piece int

const (
	Empty Piece = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
	NumPieceValues
)

// String returns the string representation of a piece.
func (p Piece) String() string {
	names := []string{"Empty", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if p >= 0 && int(p) < len(names) {
		return names[p]
	}
	return "Unknown"
}

// Letter returns the single letter SAN representation of a piece (uppercase).
func (p Piece) Letter() byte {
	letters := []byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if p >= 0 && int(p) < len(letters) {
		return letters[p]
	}
	return '?'
}

// Value returns the conventional material value of a piece kind.
func (p Piece) Value() int {
	switch p {
	case Pawn:
		return 1
	case Knight, Bishop:
		return 3
	case Rook:
		return 5
	case Queen:
		return 9
	}
	return 0
}

// PromotionPieces lists the kinds a pawn may promote to, in generation order.
var PromotionPieces = [...]Piece{Queen, Rook, Bishop, Knight}

// PieceFromLetter converts an uppercase SAN letter to a piece kind.
// Returns Empty for anything else.
func PieceFromLetter(c byte) Piece {
	switch c {
	case 'P':
		return Pawn
	case 'N':
		return Knight
	case 'B':
		return Bishop
	case 'R':
		return Rook
	case 'Q':
		return Queen
	case 'K':
		return King
	}
	return Empty
}

// PieceShift is used for encoding coloured pieces.
const PieceShift = 3

// MakeColouredPiece creates a coloured piece value.
func MakeColouredPiece(colour Colour, piece Piece) Piece {
	return Piece((int(piece) << PieceShift) | int(colour))
}

// W creates a white piece.
func W(piece Piece) Piece {
	return MakeColouredPiece(White, piece)
}

// B creates a black piece.
func B(piece Piece) Piece {
	return MakeColouredPiece(Black, piece)
}

// ExtractColour extracts the colour from a coloured piece.
func ExtractColour(colouredPiece Piece) Colour {
	return Colour(colouredPiece & 0x01)
}

// ExtractPiece extracts the piece type from a coloured piece.
func ExtractPiece(colouredPiece Piece) Piece {
	return Piece(colouredPiece >> PieceShift)
}

// FENLetter returns the FEN letter for a coloured piece: uppercase for White,
// lowercase for Black.
func FENLetter(colouredPiece Piece) byte {
	letter := ExtractPiece(colouredPiece).Letter()
	if ExtractColour(colouredPiece) == Black {
		letter += 'a' - 'A'
	}
	return letter
}

// PieceFromFENLetter converts a FEN letter to a coloured piece.
// The second result is false for characters outside PNBRQKpnbrqk.
func PieceFromFENLetter(c byte) (Piece, bool) {
	colour := White
	if c >= 'a' && c <= 'z' {
		colour = Black
		c -= 'a' - 'A'
	}
	piece := PieceFromLetter(c)
	if piece == Empty {
		return Empty, false
	}
	return MakeColouredPiece(colour, piece), true
}

var figurines = [2][NumPieceValues]string{
	White: {"", "♙", "♘", "♗", "♖", "♕", "♔"},
	Black: {"", "♟", "♞", "♝", "♜", "♛", "♚"},
}

// Figurine returns the Unicode chess glyph for a coloured piece.
func Figurine(colouredPiece Piece) string {
	kind := ExtractPiece(colouredPiece)
	if kind <= Empty || kind >= NumPieceValues {
		return ""
	}
	return figurines[ExtractColour(colouredPiece)][kind]
}

// Constants for board dimensions.
const (
	BoardSize  = 8
	NumSquares = BoardSize * BoardSize

	RankBase = '1'
	FileBase = 'a'
)

// HomeRank returns the back rank index (0 or 7) of the given colour.
func HomeRank(colour Colour) int8 {
	if colour == White {
		return 0
	}
	return BoardSize - 1
}

// ColourOffset returns +1 for White, -1 for Black (for pawn direction).
func ColourOffset(colour Colour) int8 {
	if colour == White {
		return 1
	}
	return -1
}
