package chess

import (
	stderrors "errors"
	"testing"

	"github.com/Spyabo/CLI-Chess/internal/errors"
)

func TestParseSquare(t *testing.T) {
	tests := []struct {
		text    string
		want    Square
		wantErr bool
	}{
		{"a1", Square{0, 0}, false},
		{"h8", Square{7, 7}, false},
		{"e4", Square{4, 3}, false},
		{"d5", Square{3, 4}, false},
		{"i1", NoSquare, true},
		{"a9", NoSquare, true},
		{"a0", NoSquare, true},
		{"A1", NoSquare, true},
		{"e", NoSquare, true},
		{"e44", NoSquare, true},
		{"", NoSquare, true},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := ParseSquare(tt.text)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseSquare(%q) = %v; want error", tt.text, got)
				}
				if !stderrors.Is(err, errors.ErrParse) {
					t.Errorf("ParseSquare(%q) error = %v; want ErrParse", tt.text, err)
				}
				var pe *errors.ParseError
				if !stderrors.As(err, &pe) || pe.Input != tt.text {
					t.Errorf("ParseSquare(%q) error = %#v; want ParseError with input", tt.text, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSquare(%q) error = %v", tt.text, err)
			}
			if got != tt.want {
				t.Errorf("ParseSquare(%q) = %v; want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestSquareRoundTrip(t *testing.T) {
	for i := 0; i < NumSquares; i++ {
		sq := SquareAt(i)
		if sq.Index() != i {
			t.Errorf("SquareAt(%d).Index() = %d", i, sq.Index())
		}
		back, err := ParseSquare(sq.String())
		if err != nil {
			t.Fatalf("ParseSquare(%q) error = %v", sq.String(), err)
		}
		if back != sq {
			t.Errorf("round trip %v -> %q -> %v", sq, sq.String(), back)
		}
	}
}

func TestSquareOffset(t *testing.T) {
	sq := MustParseSquare("g7")
	if got, ok := sq.Offset(1, 1); !ok || got != MustParseSquare("h8") {
		t.Errorf("g7.Offset(1,1) = %v, %v; want h8, true", got, ok)
	}
	if _, ok := sq.Offset(2, 0); ok {
		t.Error("g7.Offset(2,0) should be off the board")
	}
	if NoSquare.String() != "-" {
		t.Errorf("NoSquare.String() = %q; want -", NoSquare.String())
	}
}

func TestSquareIsLight(t *testing.T) {
	tests := []struct {
		sq   string
		want bool
	}{
		{"a1", false},
		{"h1", true},
		{"a8", true},
		{"h8", false},
		{"d1", true},
		{"e1", false},
	}
	for _, tt := range tests {
		if got := MustParseSquare(tt.sq).IsLight(); got != tt.want {
			t.Errorf("%s.IsLight() = %v; want %v", tt.sq, got, tt.want)
		}
	}
}

func TestColouredPieces(t *testing.T) {
	for _, colour := range []Colour{White, Black} {
		for kind := Pawn; kind <= King; kind++ {
			p := MakeColouredPiece(colour, kind)
			if ExtractColour(p) != colour || ExtractPiece(p) != kind {
				t.Errorf("MakeColouredPiece(%v, %v) does not round trip", colour, kind)
			}
			back, ok := PieceFromFENLetter(FENLetter(p))
			if !ok || back != p {
				t.Errorf("FEN letter %c does not round trip", FENLetter(p))
			}
			if Figurine(p) == "" {
				t.Errorf("Figurine(%v %v) is empty", colour, kind)
			}
		}
	}
	if _, ok := PieceFromFENLetter('x'); ok {
		t.Error("PieceFromFENLetter('x') should fail")
	}
	if FENLetter(B(Knight)) != 'n' || FENLetter(W(Queen)) != 'Q' {
		t.Error("FENLetter case mismatch")
	}
}

func TestNewBoard(t *testing.T) {
	b := NewBoard()

	t.Run("initial state", func(t *testing.T) {
		if b.ToMove != White {
			t.Errorf("ToMove = %v; want White", b.ToMove)
		}
		if b.FullmoveNumber != 1 {
			t.Errorf("FullmoveNumber = %d; want 1", b.FullmoveNumber)
		}
		if b.EnPassant != NoSquare {
			t.Errorf("EnPassant = %v; want NoSquare", b.EnPassant)
		}
		if b.Castling.Any() {
			t.Error("empty board should hold no castling rights")
		}
	})

	t.Run("all squares empty", func(t *testing.T) {
		for i := 0; i < NumSquares; i++ {
			if !b.IsEmpty(SquareAt(i)) {
				t.Errorf("square %v is not empty", SquareAt(i))
			}
		}
	})
}

func TestBoardIsValue(t *testing.T) {
	b := NewBoard()
	b.Set(MustParseSquare("e1"), W(King))

	c := b
	c.Set(MustParseSquare("e1"), Empty)
	c.Set(MustParseSquare("e2"), W(King))

	if b.Get(MustParseSquare("e1")) != W(King) {
		t.Error("modifying a copy changed the original")
	}
	if got := c.KingSquare(White); got != MustParseSquare("e2") {
		t.Errorf("KingSquare = %v; want e2", got)
	}
	if got := c.KingSquare(Black); got != NoSquare {
		t.Errorf("KingSquare(Black) = %v; want NoSquare", got)
	}
}

func TestBoardValidate(t *testing.T) {
	tests := []struct {
		name    string
		pieces  map[string]Piece
		wantErr bool
	}{
		{"two kings", map[string]Piece{"e1": W(King), "e8": B(King)}, false},
		{"missing black king", map[string]Piece{"e1": W(King)}, true},
		{"extra white king", map[string]Piece{"e1": W(King), "d1": W(King), "e8": B(King)}, true},
		{"pawn on back rank", map[string]Piece{"e1": W(King), "e8": B(King), "a8": W(Pawn)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoard()
			for sq, p := range tt.pieces {
				b.Set(MustParseSquare(sq), p)
			}
			err := b.Validate()
			if tt.wantErr {
				if !stderrors.Is(err, errors.ErrCorruptState) {
					t.Errorf("Validate() = %v; want ErrCorruptState", err)
				}
			} else if err != nil {
				t.Errorf("Validate() = %v; want nil", err)
			}
		})
	}
}

func TestCastlingRights(t *testing.T) {
	c := AllCastling
	c.Revoke(White)
	if c.Kingside(White) || c.Queenside(White) {
		t.Error("White rights should be revoked")
	}
	if !c.Kingside(Black) || !c.Queenside(Black) {
		t.Error("Black rights should be untouched")
	}
	c.Revoke(Black)
	if c.Any() {
		t.Error("no rights should remain")
	}
}

func TestMoveUCI(t *testing.T) {
	tests := []struct {
		name string
		move Move
		want string
	}{
		{"push", Move{From: MustParseSquare("e2"), To: MustParseSquare("e4"), Piece: Pawn}, "e2e4"},
		{"promotion", Move{From: MustParseSquare("e7"), To: MustParseSquare("e8"), Piece: Pawn, Promotion: Queen, Flags: Promotion}, "e7e8q"},
		{"underpromotion", Move{From: MustParseSquare("a2"), To: MustParseSquare("b1"), Piece: Pawn, Captured: Rook, Promotion: Knight, Flags: Promotion | Capture}, "a2b1n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.move.UCI(); got != tt.want {
				t.Errorf("UCI() = %q; want %q", got, tt.want)
			}
		})
	}
}

func TestMovePredicates(t *testing.T) {
	m := Move{Flags: Capture | EnPassantCapture, Piece: Pawn, Captured: Pawn}
	if !m.IsCapture() || !m.IsEnPassant() || m.IsCastle() || m.IsPromotion() {
		t.Errorf("predicates wrong for %#v", m)
	}
	castle := Move{Piece: King, Flags: QueensideCastle}
	if !castle.IsCastle() || castle.IsCapture() {
		t.Errorf("predicates wrong for %#v", castle)
	}
}

func TestRecordCaptured(t *testing.T) {
	r := NewRecord(NewBoard())
	r.Append(Entry{Move: Move{Piece: Pawn}})
	r.Append(Entry{Move: Move{Piece: Pawn}})
	r.Append(Entry{Move: Move{Piece: Pawn, Captured: Pawn, Flags: Capture}})
	r.Append(Entry{Move: Move{Piece: Queen, Captured: Knight, Flags: Capture}})
	r.Append(Entry{Move: Move{Piece: Bishop, Captured: Queen, Flags: Capture}})

	white := r.Captured(White)
	if len(white) != 2 || white[0] != Pawn || white[1] != Queen {
		t.Errorf("Captured(White) = %v; want [Pawn Queen]", white)
	}
	black := r.Captured(Black)
	if len(black) != 1 || black[0] != Knight {
		t.Errorf("Captured(Black) = %v; want [Knight]", black)
	}
	if got := r.MaterialBalance(); got != 7 {
		t.Errorf("MaterialBalance() = %d; want 7", got)
	}
	if r.PlyCount() != 5 {
		t.Errorf("PlyCount() = %d; want 5", r.PlyCount())
	}
}

func TestRecordClone(t *testing.T) {
	r := NewRecord(NewBoard())
	r.SetTag(WhiteTag, "Alice")
	r.Append(Entry{SAN: "e4"})

	c := r.Clone()
	c.SetTag(WhiteTag, "Bob")
	c.Entries[0].SAN = "d4"

	if r.White() != "Alice" {
		t.Errorf("clone shares tags: White = %q", r.White())
	}
	if r.Entries[0].SAN != "e4" {
		t.Errorf("clone shares entries: SAN = %q", r.Entries[0].SAN)
	}
	empty := NewRecord(NewBoard())
	if _, ok := empty.Last(); ok {
		t.Error("Last() on an empty record should report false")
	}
}
