package chess

// MoveFlag marks the special properties of a move.
type MoveFlag uint8

const (
	Capture MoveFlag = 1 << iota
	DoublePawnPush
	KingsideCastle
	QueensideCastle
	EnPassantCapture
	Promotion
)

// Move is a fully resolved move. Moves are produced by the engine's
// generator; two moves are equal when all fields are equal.
type Move struct {
	From Square
	To   Square

	// The kind of piece being moved.
	Piece Piece

	// The kind of piece captured (Empty if no capture). For en passant this
	// is Pawn even though To is empty.
	Captured Piece

	// The kind promoted to (Empty if not a promotion).
	Promotion Piece

	Flags MoveFlag
}

// Has reports whether all bits of flag are set.
func (m Move) Has(flag MoveFlag) bool {
	return m.Flags&flag == flag
}

// IsCapture returns true if this move is a capture, including en passant.
func (m Move) IsCapture() bool {
	return m.Has(Capture)
}

// IsPromotion returns true if this move is a pawn promotion.
func (m Move) IsPromotion() bool {
	return m.Has(Promotion)
}

// IsCastle returns true if this move is a castling move.
func (m Move) IsCastle() bool {
	return m.Flags&(KingsideCastle|QueensideCastle) != 0
}

// IsEnPassant returns true for an en passant capture.
func (m Move) IsEnPassant() bool {
	return m.Has(EnPassantCapture)
}

// UCI returns the long algebraic form, e.g. "e2e4" or "e7e8q".
func (m Move) UCI() string {
	s := m.From.String() + m.To.String()
	if m.Promotion != Empty {
		s += string(m.Promotion.Letter() + 'a' - 'A')
	}
	return s
}

// String returns the UCI form.
func (m Move) String() string {
	return m.UCI()
}
