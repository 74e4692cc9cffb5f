package engine

import "github.com/Spyabo/CLI-Chess/internal/chess"

// Files of the pieces involved in castling.
const (
	kingFile          int8 = 4 // e
	kingsideRookFile  int8 = 7 // h
	queensideRookFile int8 = 0 // a
	kingsideKingTo    int8 = 6 // g
	queensideKingTo   int8 = 2 // c
	kingsideRookTo    int8 = 5 // f
	queensideRookTo   int8 = 3 // d
)

// PseudoLegalMovesFrom returns the moves the piece on sq could make ignoring
// whether its own king is left in check. Castling is included only when the
// right is held, the king and rook stand on their home squares, the squares
// between them are empty and the king is not in check.
func PseudoLegalMovesFrom(board chess.Board, sq chess.Square) []chess.Move {
	piece := board.Get(sq)
	if piece == chess.Empty {
		return nil
	}
	colour := chess.ExtractColour(piece)
	kind := chess.ExtractPiece(piece)

	var moves []chess.Move
	switch kind {
	case chess.Pawn:
		moves = pawnMoves(board, sq, colour, moves)
	case chess.Knight:
		moves = stepMoves(board, sq, colour, kind, knightOffsets[:], moves)
	case chess.Bishop:
		moves = slideMoves(board, sq, colour, kind, diagonalDirs[:], moves)
	case chess.Rook:
		moves = slideMoves(board, sq, colour, kind, straightDirs[:], moves)
	case chess.Queen:
		moves = slideMoves(board, sq, colour, kind, diagonalDirs[:], moves)
		moves = slideMoves(board, sq, colour, kind, straightDirs[:], moves)
	case chess.King:
		moves = stepMoves(board, sq, colour, kind, kingOffsets[:], moves)
		moves = castleMoves(board, sq, colour, moves)
	}
	return moves
}

// LegalMovesFrom returns the legal moves of the piece on sq. The result is
// empty when sq is empty or holds a piece of the side not to move.
func LegalMovesFrom(board chess.Board, sq chess.Square) []chess.Move {
	piece := board.Get(sq)
	if piece == chess.Empty || chess.ExtractColour(piece) != board.ToMove {
		return nil
	}

	var legal []chess.Move
	for _, m := range PseudoLegalMovesFrom(board, sq) {
		if isLegal(board, m) {
			legal = append(legal, m)
		}
	}
	return legal
}

// LegalMoves returns every legal move for the side to move, scanning squares
// from a1 to h8.
func LegalMoves(board chess.Board) []chess.Move {
	var moves []chess.Move
	for i := 0; i < chess.NumSquares; i++ {
		moves = append(moves, LegalMovesFrom(board, chess.SquareAt(i))...)
	}
	return moves
}

// HasLegalMoves returns true if the given colour has at least one legal move.
func HasLegalMoves(board chess.Board, colour chess.Colour) bool {
	if board.ToMove != colour {
		// The en passant target only belongs to the side to move.
		board.ToMove = colour
		board.EnPassant = chess.NoSquare
	}
	for i := 0; i < chess.NumSquares; i++ {
		sq := chess.SquareAt(i)
		piece := board.Get(sq)
		if piece == chess.Empty || chess.ExtractColour(piece) != colour {
			continue
		}
		for _, m := range PseudoLegalMovesFrom(board, sq) {
			if isLegal(board, m) {
				return true
			}
		}
	}
	return false
}

// isLegal plays m on a scratch copy and rejects it if the mover's king is
// attacked afterwards. Castling also may not pass through an attacked square.
func isLegal(board chess.Board, m chess.Move) bool {
	colour := board.ToMove
	if m.IsCastle() {
		passFile := kingsideRookTo
		if m.Has(chess.QueensideCastle) {
			passFile = queensideRookTo
		}
		pass := chess.Square{File: passFile, Rank: m.From.Rank}
		if IsSquareAttacked(board, pass, colour.Opposite()) {
			return false
		}
	}
	next := makeMove(board, m)
	return !IsInCheck(next, colour)
}

func isEnemy(board chess.Board, sq chess.Square, colour chess.Colour) bool {
	p := board.Get(sq)
	return p != chess.Empty && chess.ExtractColour(p) != colour
}

func pawnMoves(board chess.Board, from chess.Square, colour chess.Colour, moves []chess.Move) []chess.Move {
	dir := chess.ColourOffset(colour)

	if one, ok := from.Offset(0, dir); ok && board.IsEmpty(one) {
		moves = addPawnMove(moves, from, one, chess.Empty, 0)

		startRank := chess.HomeRank(colour) + dir
		if from.Rank == startRank {
			if two, ok := from.Offset(0, 2*dir); ok && board.IsEmpty(two) {
				moves = append(moves, chess.Move{
					From:  from,
					To:    two,
					Piece: chess.Pawn,
					Flags: chess.DoublePawnPush,
				})
			}
		}
	}

	for _, df := range [2]int8{-1, 1} {
		to, ok := from.Offset(df, dir)
		if !ok {
			continue
		}
		if isEnemy(board, to, colour) {
			moves = addPawnMove(moves, from, to, chess.ExtractPiece(board.Get(to)), chess.Capture)
			continue
		}
		if board.EnPassant.Valid() && to == board.EnPassant {
			// The pawn being captured sits beside the mover.
			victim := chess.Square{File: to.File, Rank: from.Rank}
			if board.Get(victim) == chess.MakeColouredPiece(colour.Opposite(), chess.Pawn) {
				moves = append(moves, chess.Move{
					From:     from,
					To:       to,
					Piece:    chess.Pawn,
					Captured: chess.Pawn,
					Flags:    chess.Capture | chess.EnPassantCapture,
				})
			}
		}
	}
	return moves
}

// addPawnMove appends a pawn move, expanding it into one move per promotion
// piece when it reaches the last rank.
func addPawnMove(moves []chess.Move, from, to chess.Square, captured chess.Piece, flags chess.MoveFlag) []chess.Move {
	if to.Rank != 0 && to.Rank != chess.BoardSize-1 {
		return append(moves, chess.Move{From: from, To: to, Piece: chess.Pawn, Captured: captured, Flags: flags})
	}
	for _, promo := range chess.PromotionPieces {
		moves = append(moves, chess.Move{
			From:      from,
			To:        to,
			Piece:     chess.Pawn,
			Captured:  captured,
			Promotion: promo,
			Flags:     flags | chess.Promotion,
		})
	}
	return moves
}

func stepMoves(board chess.Board, from chess.Square, colour chess.Colour, kind chess.Piece, offsets [][2]int8, moves []chess.Move) []chess.Move {
	for _, off := range offsets {
		to, ok := from.Offset(off[0], off[1])
		if !ok {
			continue
		}
		moves = appendTarget(board, from, to, colour, kind, moves)
	}
	return moves
}

func slideMoves(board chess.Board, from chess.Square, colour chess.Colour, kind chess.Piece, dirs [][2]int8, moves []chess.Move) []chess.Move {
	for _, dir := range dirs {
		to, ok := from.Offset(dir[0], dir[1])
		for ok {
			moves = appendTarget(board, from, to, colour, kind, moves)
			if !board.IsEmpty(to) {
				break
			}
			to, ok = to.Offset(dir[0], dir[1])
		}
	}
	return moves
}

// appendTarget adds a quiet move or capture onto to, skipping own pieces.
func appendTarget(board chess.Board, from, to chess.Square, colour chess.Colour, kind chess.Piece, moves []chess.Move) []chess.Move {
	target := board.Get(to)
	if target == chess.Empty {
		return append(moves, chess.Move{From: from, To: to, Piece: kind})
	}
	if chess.ExtractColour(target) == colour {
		return moves
	}
	return append(moves, chess.Move{
		From:     from,
		To:       to,
		Piece:    kind,
		Captured: chess.ExtractPiece(target),
		Flags:    chess.Capture,
	})
}

func castleMoves(board chess.Board, from chess.Square, colour chess.Colour, moves []chess.Move) []chess.Move {
	home := chess.HomeRank(colour)
	if from != (chess.Square{File: kingFile, Rank: home}) {
		return moves
	}
	canKingside := board.Castling.Kingside(colour)
	canQueenside := board.Castling.Queenside(colour)
	if !canKingside && !canQueenside {
		return moves
	}
	if IsInCheck(board, colour) {
		return moves
	}

	rook := chess.MakeColouredPiece(colour, chess.Rook)
	if canKingside &&
		board.Get(chess.Square{File: kingsideRookFile, Rank: home}) == rook &&
		pathClear(board, home, kingFile+1, kingsideRookFile-1) {
		moves = append(moves, chess.Move{
			From:  from,
			To:    chess.Square{File: kingsideKingTo, Rank: home},
			Piece: chess.King,
			Flags: chess.KingsideCastle,
		})
	}
	if canQueenside &&
		board.Get(chess.Square{File: queensideRookFile, Rank: home}) == rook &&
		pathClear(board, home, queensideRookFile+1, kingFile-1) {
		moves = append(moves, chess.Move{
			From:  from,
			To:    chess.Square{File: queensideKingTo, Rank: home},
			Piece: chess.King,
			Flags: chess.QueensideCastle,
		})
	}
	return moves
}

// pathClear reports whether every square on rank between the two files
// (inclusive) is empty.
func pathClear(board chess.Board, rank, fromFile, toFile int8) bool {
	for file := fromFile; file <= toFile; file++ {
		if !board.IsEmpty(chess.Square{File: file, Rank: rank}) {
			return false
		}
	}
	return true
}
