package pgn

import (
	"strings"

	"github.com/Spyabo/CLI-Chess/internal/chess"
	"github.com/Spyabo/CLI-Chess/internal/engine"
	"github.com/Spyabo/CLI-Chess/internal/errors"
)

// SANMove is a lexed SAN token. It describes a move without reference to a
// position; Resolve matches it against the legal moves of a board.
type SANMove struct {
	// The text as it appeared, without annotation symbols.
	Text string

	// Pawn for pawn moves, King for castling.
	Piece chess.Piece

	// Optional source file and rank, -1 when absent.
	FromFile int8
	FromRank int8

	Capture   bool
	To        chess.Square
	Promotion chess.Piece

	// KingsideCastle, QueensideCastle or 0.
	Castle chess.MoveFlag

	// "+", "#" or "".
	Suffix string
}

// isCol returns true if c is a valid column (file) character.
func isCol(c byte) bool {
	return c >= chess.FileBase && c < chess.FileBase+chess.BoardSize
}

// isRank returns true if c is a valid rank character.
func isRank(c byte) bool {
	return c >= chess.RankBase && c < chess.RankBase+chess.BoardSize
}

// isCapture returns true if c marks a capture.
func isCapture(c byte) bool {
	return c == 'x' || c == ':'
}

// isCheck returns true if c is a check indicator.
func isCheck(c byte) bool {
	return c == '+' || c == '#'
}

// isAnnotation returns true for the move quality symbols ! and ?.
func isAnnotation(c byte) bool {
	return c == '!' || c == '?'
}

// DecodeSAN parses SAN text such as "Nbd2", "exd6", "e8=Q+" or "O-O-O".
// "0-0" and "0-0-0" are accepted for castling, and the promotion "=" may be
// omitted. Trailing ! and ? annotations are ignored.
func DecodeSAN(text string) (SANMove, error) {
	move := SANMove{FromFile: -1, FromRank: -1}

	s := strings.TrimSpace(text)
	for len(s) > 0 && isAnnotation(s[len(s)-1]) {
		s = s[:len(s)-1]
	}
	move.Text = s

	switch {
	case strings.HasSuffix(s, "#"):
		move.Suffix = "#"
	case strings.HasSuffix(s, "+"):
		move.Suffix = "+"
	}
	for len(s) > 0 && isCheck(s[len(s)-1]) {
		s = s[:len(s)-1]
	}

	invalid := func() (SANMove, error) {
		return SANMove{}, &errors.ParseError{
			Err:      errors.ErrInvalidSAN,
			Input:    text,
			Expected: "a move in standard algebraic notation",
		}
	}

	switch s {
	case "O-O", "0-0":
		move.Piece = chess.King
		move.Castle = chess.KingsideCastle
		return move, nil
	case "O-O-O", "0-0-0":
		move.Piece = chess.King
		move.Castle = chess.QueensideCastle
		return move, nil
	}
	if s == "" {
		return invalid()
	}

	move.Piece = chess.Pawn
	if piece := chess.PieceFromLetter(s[0]); piece != chess.Empty && piece != chess.Pawn {
		move.Piece = piece
		s = s[1:]
	}

	// Promotion: "=Q" or a bare trailing piece letter after the rank.
	if n := len(s); n >= 2 && move.Piece == chess.Pawn {
		last := chess.PieceFromLetter(s[n-1])
		if last != chess.Empty && last != chess.Pawn && last != chess.King {
			move.Promotion = last
			s = s[:n-1]
			if strings.HasSuffix(s, "=") {
				s = s[:len(s)-1]
			}
		}
	}

	// Destination is always the last two characters.
	n := len(s)
	if n < 2 || !isCol(s[n-2]) || !isRank(s[n-1]) {
		return invalid()
	}
	move.To = chess.Square{File: int8(s[n-2] - chess.FileBase), Rank: int8(s[n-1] - chess.RankBase)}
	s = s[:n-2]

	if n := len(s); n > 0 && isCapture(s[n-1]) {
		move.Capture = true
		s = s[:n-1]
	}

	// What remains is the disambiguator: file, rank or both.
	switch {
	case len(s) == 0:
	case len(s) == 1 && isCol(s[0]):
		move.FromFile = int8(s[0] - chess.FileBase)
	case len(s) == 1 && isRank(s[0]):
		move.FromRank = int8(s[0] - chess.RankBase)
	case len(s) == 2 && isCol(s[0]) && isRank(s[1]):
		move.FromFile = int8(s[0] - chess.FileBase)
		move.FromRank = int8(s[1] - chess.RankBase)
	default:
		return invalid()
	}

	if move.Piece == chess.Pawn {
		// Pawns are only qualified by file, and only when capturing.
		if move.FromRank >= 0 || (move.Capture && move.FromFile < 0) {
			return invalid()
		}
	}
	return move, nil
}

// matches reports whether the generated move m is described by san.
func (san SANMove) matches(m chess.Move) bool {
	if san.Castle != 0 {
		return m.Has(san.Castle)
	}
	if m.IsCastle() || m.Piece != san.Piece || m.To != san.To || m.Promotion != engine.PromotionOrQueen(san.Promotion, m) {
		return false
	}
	if san.FromFile >= 0 && m.From.File != san.FromFile {
		return false
	}
	if san.FromRank >= 0 && m.From.Rank != san.FromRank {
		return false
	}
	if san.Capture && !m.IsCapture() {
		return false
	}
	// A pawn move without a file qualifier is a push.
	if san.Piece == chess.Pawn && san.FromFile < 0 && m.From.File != m.To.File {
		return false
	}
	return true
}

// Resolve finds the unique legal move on board described by san. It is a
// pure filter over engine.LegalMoves: no match fails with ErrIllegalMove
// and more than one with ErrAmbiguousMove.
func Resolve(board chess.Board, san SANMove) (chess.Move, error) {
	var matches []chess.Move
	for _, m := range engine.LegalMoves(board) {
		if san.matches(m) {
			matches = append(matches, m)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return chess.Move{}, errors.Wrapf(errors.ErrIllegalMove, "%s", san.Text)
	default:
		candidates := make([]string, len(matches))
		for i, m := range matches {
			candidates[i] = engine.SAN(board, m)
		}
		return chess.Move{}, errors.Wrapf(errors.ErrAmbiguousMove, "%s could be %s", san.Text, strings.Join(candidates, ", "))
	}
}

// CheckNotation compares the check suffix written in san with the position
// reached after playing it. It returns a *errors.NotationMismatchError when
// a written "+" or "#" disagrees with next, and nil otherwise. A missing
// suffix is not reported.
func CheckNotation(san SANMove, next chess.Board, ply int) error {
	if san.Suffix == "" {
		return nil
	}
	actual := engine.CheckSuffix(next)
	if actual == san.Suffix {
		return nil
	}
	return &errors.NotationMismatchError{
		Ply:      ply,
		MoveText: san.Text,
		Claimed:  san.Suffix,
		Actual:   actual,
	}
}
