package engine

import "github.com/Spyabo/CLI-Chess/internal/chess"

// Movement vectors as (file, rank) deltas. The order of each table fixes the
// order in which moves are generated.
var (
	knightOffsets = [8][2]int8{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets   = [8][2]int8{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	diagonalDirs  = [4][2]int8{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	straightDirs  = [4][2]int8{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
)

// IsInCheck returns true if the given colour's king is attacked. It is
// recomputed from the board every call. A board without that king is never
// in check.
func IsInCheck(board chess.Board, colour chess.Colour) bool {
	king := board.KingSquare(colour)
	if !king.Valid() {
		return false
	}
	return IsSquareAttacked(board, king, colour.Opposite())
}

// IsSquareAttacked returns true if any piece of colour by attacks sq.
func IsSquareAttacked(board chess.Board, sq chess.Square, by chess.Colour) bool {
	found := false
	scanAttackers(board, sq, by, func(chess.Square) bool {
		found = true
		return false
	})
	return found
}

// Attackers returns the squares of all pieces of colour by that attack sq.
func Attackers(board chess.Board, sq chess.Square, by chess.Colour) []chess.Square {
	var squares []chess.Square
	scanAttackers(board, sq, by, func(from chess.Square) bool {
		squares = append(squares, from)
		return true
	})
	return squares
}

// scanAttackers calls visit for each attacker of sq until visit returns false.
func scanAttackers(board chess.Board, sq chess.Square, by chess.Colour, visit func(chess.Square) bool) {
	// Pawns attack diagonally forward, so look one rank behind sq.
	pawn := chess.MakeColouredPiece(by, chess.Pawn)
	for _, df := range [2]int8{-1, 1} {
		if from, ok := sq.Offset(df, -chess.ColourOffset(by)); ok && board.Get(from) == pawn {
			if !visit(from) {
				return
			}
		}
	}

	knight := chess.MakeColouredPiece(by, chess.Knight)
	for _, off := range knightOffsets {
		if from, ok := sq.Offset(off[0], off[1]); ok && board.Get(from) == knight {
			if !visit(from) {
				return
			}
		}
	}

	king := chess.MakeColouredPiece(by, chess.King)
	for _, off := range kingOffsets {
		if from, ok := sq.Offset(off[0], off[1]); ok && board.Get(from) == king {
			if !visit(from) {
				return
			}
		}
	}

	queen := chess.MakeColouredPiece(by, chess.Queen)
	if !scanSliders(board, sq, diagonalDirs[:], chess.MakeColouredPiece(by, chess.Bishop), queen, visit) {
		return
	}
	scanSliders(board, sq, straightDirs[:], chess.MakeColouredPiece(by, chess.Rook), queen, visit)
}

// scanSliders walks each direction from sq to the first occupied square and
// reports it when it holds one of the two given pieces. It returns false if
// visit asked to stop.
func scanSliders(board chess.Board, sq chess.Square, dirs [][2]int8, slider, queen chess.Piece, visit func(chess.Square) bool) bool {
	for _, dir := range dirs {
		from, ok := sq.Offset(dir[0], dir[1])
		for ok {
			piece := board.Get(from)
			if piece != chess.Empty {
				if (piece == slider || piece == queen) && !visit(from) {
					return false
				}
				break // Blocked
			}
			from, ok = from.Offset(dir[0], dir[1])
		}
	}
	return true
}
