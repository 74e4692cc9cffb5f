package engine

import "github.com/Spyabo/CLI-Chess/internal/chess"

// HasInsufficientMaterial returns true if neither side can possibly mate.
// Insufficient material includes:
// - K vs K
// - K+minor vs K
// - any number of bishops, all on squares of one colour
func HasInsufficientMaterial(board chess.Board) bool {
	minors := 0
	knights := 0
	lightBishops, darkBishops := 0, 0

	for i, piece := range board.Squares {
		switch chess.ExtractPiece(piece) {
		case chess.Empty, chess.King:
			continue
		case chess.Pawn, chess.Rook, chess.Queen:
			return false
		case chess.Knight:
			knights++
		case chess.Bishop:
			if chess.SquareAt(i).IsLight() {
				lightBishops++
			} else {
				darkBishops++
			}
		}
		minors++
	}

	if minors <= 1 {
		return true
	}
	return knights == 0 && (lightBishops == 0 || darkBishops == 0)
}

// RepetitionCount returns how many times the position of board has occurred,
// counting board itself and matching positions in history. Only positions
// since the last pawn move or capture can repeat, so the scan stops there.
func RepetitionCount(board chess.Board, history []chess.Board) int {
	key := PositionKey(board)
	count := 1
	for i := len(history) - 1; i >= 0 && len(history)-i <= int(board.HalfmoveClock); i-- {
		if PositionKey(history[i]) == key {
			count++
		}
	}
	return count
}
