package engine

import "github.com/Spyabo/CLI-Chess/internal/chess"

// Status classifies a position.
type Status int

const (
	Ongoing Status = iota
	Check
	Checkmate
	Stalemate
	DrawByFiftyMove
	DrawByInsufficientMaterial
	DrawByThreefoldRepetition
)

var statusNames = [...]string{
	Ongoing:                    "Ongoing",
	Check:                      "Check",
	Checkmate:                  "Checkmate",
	Stalemate:                  "Stalemate",
	DrawByFiftyMove:            "DrawByFiftyMove",
	DrawByInsufficientMaterial: "DrawByInsufficientMaterial",
	DrawByThreefoldRepetition:  "DrawByThreefoldRepetition",
}

func (s Status) String() string {
	if s >= 0 && int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "Unknown"
}

// IsTerminal reports whether no further moves may be played.
func (s Status) IsTerminal() bool {
	return s >= Checkmate
}

// IsDraw reports whether s ends the game without a winner.
func (s Status) IsDraw() bool {
	return s >= Stalemate
}

// GameStatus is a Status together with the side it concerns: the side in
// check or checkmated. For other statuses Colour is the side to move.
type GameStatus struct {
	Status Status
	Colour chess.Colour
}

func (gs GameStatus) String() string {
	switch gs.Status {
	case Check, Checkmate:
		return gs.Status.String() + "(" + gs.Colour.String() + ")"
	}
	return gs.Status.String()
}

// IsTerminal reports whether the game is over.
func (gs GameStatus) IsTerminal() bool {
	return gs.Status.IsTerminal()
}

// Result returns the PGN result marker for the status.
func (gs GameStatus) Result() string {
	switch {
	case gs.Status == Checkmate && gs.Colour == chess.White:
		return chess.ResultBlackWins
	case gs.Status == Checkmate:
		return chess.ResultWhiteWins
	case gs.Status.IsDraw():
		return chess.ResultDraw
	}
	return chess.ResultUnknown
}

// Suffix returns the SAN suffix implied by the status: "#", "+" or "".
func (gs GameStatus) Suffix() string {
	switch gs.Status {
	case Checkmate:
		return "#"
	case Check:
		return "+"
	}
	return ""
}

// Rules toggles the automatic draw rules.
type Rules struct {
	FiftyMove            bool
	InsufficientMaterial bool
	ThreefoldRepetition  bool
}

// DefaultRules enables every draw rule.
func DefaultRules() Rules {
	return Rules{
		FiftyMove:            true,
		InsufficientMaterial: true,
		ThreefoldRepetition:  true,
	}
}

// FiftyMoveLimit is the half-move clock value at which the game is drawn.
const FiftyMoveLimit = 100

// Classify determines the status of board for the side to move. history
// lists the earlier positions of the game, oldest first, and is only used
// for repetition. Checkmate and stalemate take precedence over draws, and
// draws take precedence over check.
func Classify(board chess.Board, rules Rules, history []chess.Board) GameStatus {
	side := board.ToMove
	inCheck := IsInCheck(board, side)

	if !HasLegalMoves(board, side) {
		if inCheck {
			return GameStatus{Status: Checkmate, Colour: side}
		}
		return GameStatus{Status: Stalemate, Colour: side}
	}

	switch {
	case rules.FiftyMove && board.HalfmoveClock >= FiftyMoveLimit:
		return GameStatus{Status: DrawByFiftyMove, Colour: side}
	case rules.InsufficientMaterial && HasInsufficientMaterial(board):
		return GameStatus{Status: DrawByInsufficientMaterial, Colour: side}
	case rules.ThreefoldRepetition && RepetitionCount(board, history) >= 3:
		return GameStatus{Status: DrawByThreefoldRepetition, Colour: side}
	}

	if inCheck {
		return GameStatus{Status: Check, Colour: side}
	}
	return GameStatus{Status: Ongoing, Colour: side}
}

// IsCheckmate returns true if the position is checkmate for the side to move.
func IsCheckmate(board chess.Board) bool {
	colour := board.ToMove
	return IsInCheck(board, colour) && !HasLegalMoves(board, colour)
}

// IsStalemate returns true if the position is stalemate for the side to move.
func IsStalemate(board chess.Board) bool {
	colour := board.ToMove
	return !IsInCheck(board, colour) && !HasLegalMoves(board, colour)
}
