// Package engine provides chess move generation, move application, position
// classification and the FEN and SAN notations built on them.
package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Spyabo/CLI-Chess/internal/chess"
	"github.com/Spyabo/CLI-Chess/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// FEN field names used in error reports.
const (
	fieldPlacement = "piece placement"
	fieldSide      = "side to move"
	fieldCastling  = "castling"
	fieldEnPassant = "en passant"
	fieldHalfmove  = "halfmove clock"
	fieldFullmove  = "fullmove number"
)

// NewInitialBoard creates a board with the standard starting position.
func NewInitialBoard() chess.Board {
	board, err := ParseFEN(InitialFEN)
	if err != nil {
		panic(err)
	}
	return board
}

// ParseFEN parses a FEN string. It requires exactly six fields and rejects
// any board that does not hold exactly one king per colour. Errors are
// *errors.ParseError values wrapping errors.ErrInvalidFEN.
func ParseFEN(text string) (chess.Board, error) {
	fields := strings.Split(strings.TrimSpace(text), " ")
	if len(fields) != 6 {
		return chess.Board{}, fenError(text, "", "6 space-separated fields", fmt.Sprintf("%d", len(fields)))
	}

	board := chess.NewBoard()

	if err := parsePlacement(&board, fields[0]); err != nil {
		return chess.Board{}, err
	}
	if err := parseSideToMove(&board, fields[1]); err != nil {
		return chess.Board{}, err
	}
	if err := parseCastlingRights(&board, fields[2]); err != nil {
		return chess.Board{}, err
	}
	if err := parseEnPassant(&board, fields[3]); err != nil {
		return chess.Board{}, err
	}
	if err := parseClocks(&board, fields[4], fields[5]); err != nil {
		return chess.Board{}, err
	}

	if err := board.Validate(); err != nil {
		return chess.Board{}, &errors.ParseError{
			Err:   fmt.Errorf("%w: %w", errors.ErrInvalidFEN, err),
			Input: text,
			Field: fieldPlacement,
		}
	}
	return board, nil
}

// MustParseFEN is like ParseFEN but panics on error. It is intended for
// constants and tests.
func MustParseFEN(text string) chess.Board {
	board, err := ParseFEN(text)
	if err != nil {
		panic(err)
	}
	return board
}

func fenError(input, field, expected, got string) *errors.ParseError {
	return &errors.ParseError{
		Err:      errors.ErrInvalidFEN,
		Input:    input,
		Field:    field,
		Expected: expected,
		Got:      got,
	}
}

// parsePlacement parses the piece placement field: eight ranks, rank 8
// first, each summing to eight squares.
func parsePlacement(board *chess.Board, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != chess.BoardSize {
		return fenError(placement, fieldPlacement, "8 ranks", fmt.Sprintf("%d", len(ranks)))
	}

	for i, rankText := range ranks {
		rank := int8(chess.BoardSize - 1 - i)
		file := int8(0)
		lastWasDigit := false
		for j := 0; j < len(rankText); j++ {
			c := rankText[j]
			switch {
			case c >= '1' && c <= '8':
				if lastWasDigit {
					return fenError(rankText, fieldPlacement, "no adjacent digits", string(c))
				}
				file += int8(c - '0')
				lastWasDigit = true
			default:
				piece, ok := chess.PieceFromFENLetter(c)
				if !ok {
					return fenError(rankText, fieldPlacement, "one of PNBRQKpnbrqk or 1-8", fmt.Sprintf("%q", c))
				}
				if file >= chess.BoardSize {
					return fenError(rankText, fieldPlacement, "8 squares per rank", "more")
				}
				board.Set(chess.Square{File: file, Rank: rank}, piece)
				file++
				lastWasDigit = false
			}
			if file > chess.BoardSize {
				return fenError(rankText, fieldPlacement, "8 squares per rank", "more")
			}
		}
		if file != chess.BoardSize {
			return fenError(rankText, fieldPlacement, "8 squares per rank", fmt.Sprintf("%d", file))
		}
	}
	return nil
}

// parseSideToMove parses the side to move field.
func parseSideToMove(board *chess.Board, side string) error {
	switch side {
	case "w":
		board.ToMove = chess.White
	case "b":
		board.ToMove = chess.Black
	default:
		return fenError(side, fieldSide, "w or b", fmt.Sprintf("%q", side))
	}
	return nil
}

// parseCastlingRights parses the castling availability field.
func parseCastlingRights(board *chess.Board, castling string) error {
	board.Castling = chess.Castling{}
	if castling == "-" {
		return nil
	}
	if castling == "" {
		return fenError(castling, fieldCastling, "- or letters from KQkq", "empty field")
	}

	seen := make(map[rune]bool, 4)
	for _, c := range castling {
		if seen[c] {
			return fenError(castling, fieldCastling, "no repeated letters", string(c))
		}
		seen[c] = true
		switch c {
		case 'K':
			board.Castling.WhiteKingside = true
		case 'Q':
			board.Castling.WhiteQueenside = true
		case 'k':
			board.Castling.BlackKingside = true
		case 'q':
			board.Castling.BlackQueenside = true
		default:
			return fenError(castling, fieldCastling, "- or letters from KQkq", string(c))
		}
	}
	return nil
}

// parseEnPassant parses the en passant target square field. The target
// must lie on the rank a pawn of the side not to move just skipped.
func parseEnPassant(board *chess.Board, ep string) error {
	board.EnPassant = chess.NoSquare
	if ep == "-" {
		return nil
	}
	sq, err := chess.ParseSquare(ep)
	if err != nil {
		return fenError(ep, fieldEnPassant, "- or a square", fmt.Sprintf("%q", ep))
	}
	wantRank := int8(5) // rank 6, after a Black double push
	if board.ToMove == chess.Black {
		wantRank = 2 // rank 3
	}
	if sq.Rank != wantRank {
		return fenError(ep, fieldEnPassant, fmt.Sprintf("a square on rank %d", wantRank+1), ep)
	}
	board.EnPassant = sq
	return nil
}

// parseClocks parses the halfmove clock and fullmove number fields.
func parseClocks(board *chess.Board, halfmove, fullmove string) error {
	hm, err := strconv.ParseUint(halfmove, 10, 32)
	if err != nil {
		return fenError(halfmove, fieldHalfmove, "a non-negative integer", fmt.Sprintf("%q", halfmove))
	}
	fm, err := strconv.ParseUint(fullmove, 10, 32)
	if err != nil || fm < 1 {
		return fenError(fullmove, fieldFullmove, "a positive integer", fmt.Sprintf("%q", fullmove))
	}
	board.HalfmoveClock = uint(hm)
	board.FullmoveNumber = uint(fm)
	return nil
}

// ToFEN converts a board to a FEN string.
func ToFEN(board chess.Board) string {
	var sb strings.Builder

	writePlacement(&sb, board)
	sb.WriteByte(' ')
	writeSideToMove(&sb, board)
	sb.WriteByte(' ')
	writeCastlingRights(&sb, board)
	sb.WriteByte(' ')
	sb.WriteString(board.EnPassant.String())
	sb.WriteByte(' ')
	fmt.Fprintf(&sb, "%d %d", board.HalfmoveClock, board.FullmoveNumber)

	return sb.String()
}

// PositionKey identifies a position for repetition purposes: placement, side
// to move, castling rights and the en passant square. The en passant square
// only counts when a legal en passant capture exists.
func PositionKey(board chess.Board) string {
	var sb strings.Builder

	writePlacement(&sb, board)
	sb.WriteByte(' ')
	writeSideToMove(&sb, board)
	sb.WriteByte(' ')
	writeCastlingRights(&sb, board)
	sb.WriteByte(' ')
	if hasEnPassantCapture(board) {
		sb.WriteString(board.EnPassant.String())
	} else {
		sb.WriteByte('-')
	}
	return sb.String()
}

func hasEnPassantCapture(board chess.Board) bool {
	if !board.EnPassant.Valid() {
		return false
	}
	for _, df := range [2]int8{-1, 1} {
		from, ok := board.EnPassant.Offset(df, -chess.ColourOffset(board.ToMove))
		if !ok {
			continue
		}
		for _, m := range LegalMovesFrom(board, from) {
			if m.IsEnPassant() {
				return true
			}
		}
	}
	return false
}

// writePlacement writes the piece placement to the builder.
func writePlacement(sb *strings.Builder, board chess.Board) {
	for rank := int8(chess.BoardSize - 1); rank >= 0; rank-- {
		emptyCount := 0
		for file := int8(0); file < chess.BoardSize; file++ {
			piece := board.Get(chess.Square{File: file, Rank: rank})
			if piece == chess.Empty {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(chess.FENLetter(piece))
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
}

// writeSideToMove writes the side to move to the builder.
func writeSideToMove(sb *strings.Builder, board chess.Board) {
	if board.ToMove == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
}

// writeCastlingRights writes the castling availability to the builder.
func writeCastlingRights(sb *strings.Builder, board chess.Board) {
	if !board.Castling.Any() {
		sb.WriteByte('-')
		return
	}
	if board.Castling.WhiteKingside {
		sb.WriteByte('K')
	}
	if board.Castling.WhiteQueenside {
		sb.WriteByte('Q')
	}
	if board.Castling.BlackKingside {
		sb.WriteByte('k')
	}
	if board.Castling.BlackQueenside {
		sb.WriteByte('q')
	}
}
