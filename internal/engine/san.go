package engine

import (
	"strings"

	"github.com/Spyabo/CLI-Chess/internal/chess"
)

// Castling notation.
const (
	KingsideCastleSAN  = "O-O"
	QueensideCastleSAN = "O-O-O"
)

// SAN returns the Standard Algebraic Notation for a legal move m on board,
// including the minimal disambiguator and a "+" or "#" suffix.
func SAN(board chess.Board, m chess.Move) string {
	var sb strings.Builder

	switch {
	case m.Has(chess.KingsideCastle):
		sb.WriteString(KingsideCastleSAN)
	case m.Has(chess.QueensideCastle):
		sb.WriteString(QueensideCastleSAN)
	case m.Piece == chess.Pawn:
		if m.IsCapture() {
			sb.WriteByte(m.From.FileLetter())
			sb.WriteByte('x')
		}
		sb.WriteString(m.To.String())
		if m.Promotion != chess.Empty {
			sb.WriteByte('=')
			sb.WriteByte(m.Promotion.Letter())
		}
	default:
		sb.WriteByte(m.Piece.Letter())
		sb.WriteString(disambiguator(board, m))
		if m.IsCapture() {
			sb.WriteByte('x')
		}
		sb.WriteString(m.To.String())
	}

	sb.WriteString(CheckSuffix(makeMove(board, m)))
	return sb.String()
}

// disambiguator returns the shortest source qualifier that separates m from
// other legal moves of the same piece kind to the same square: the file if
// that is unique, else the rank, else both.
func disambiguator(board chess.Board, m chess.Move) string {
	ambiguous := false
	sameFile, sameRank := false, false
	for _, other := range LegalMoves(board) {
		if other.Piece != m.Piece || other.To != m.To || other.From == m.From {
			continue
		}
		ambiguous = true
		if other.From.File == m.From.File {
			sameFile = true
		}
		if other.From.Rank == m.From.Rank {
			sameRank = true
		}
	}

	switch {
	case !ambiguous:
		return ""
	case !sameFile:
		return string(m.From.FileLetter())
	case !sameRank:
		return string(m.From.RankDigit())
	default:
		return m.From.String()
	}
}

// CheckSuffix returns "#" if the side to move on next is checkmated, "+" if
// it is in check and "" otherwise.
func CheckSuffix(next chess.Board) string {
	if !IsInCheck(next, next.ToMove) {
		return ""
	}
	if HasLegalMoves(next, next.ToMove) {
		return "+"
	}
	return "#"
}
