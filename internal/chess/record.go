package chess

import "time"

// Entry is one ply of a game record: the move, the board it produced,
// its SAN text and when it was made.
type Entry struct {
	Move      Move
	Board     Board
	SAN       string
	Timestamp time.Time
}

// Record is the ordered history of a game together with its PGN tags.
// Entries are appended during play and replaced wholesale on reset or load.
type Record struct {
	// Tags for this game (e.g., Event, Site, Date, White, Black, Result).
	Tags map[string]string

	// The board before the first entry.
	Start Board

	Entries []Entry

	// Result marker: "1-0", "0-1", "1/2-1/2" or "*".
	Result string
}

// NewRecord creates an empty record starting from the given board.
func NewRecord(start Board) Record {
	return Record{
		Tags:   make(map[string]string),
		Start:  start,
		Result: ResultUnknown,
	}
}

// GetTag returns a tag value, or empty string if not present.
func (r Record) GetTag(name string) string {
	return r.Tags[name]
}

// SetTag sets a tag value.
func (r *Record) SetTag(name, value string) {
	if r.Tags == nil {
		r.Tags = make(map[string]string)
	}
	r.Tags[name] = value
}

// HasTag returns true if the tag is present.
func (r Record) HasTag(name string) bool {
	_, ok := r.Tags[name]
	return ok
}

// White returns the White player name.
func (r Record) White() string {
	return r.GetTag(WhiteTag)
}

// Black returns the Black player name.
func (r Record) Black() string {
	return r.GetTag(BlackTag)
}

// PlyCount returns the number of half-moves in the record.
func (r Record) PlyCount() int {
	return len(r.Entries)
}

// Last returns the most recent entry. The second result is false for an
// empty record.
func (r Record) Last() (Entry, bool) {
	if len(r.Entries) == 0 {
		return Entry{}, false
	}
	return r.Entries[len(r.Entries)-1], true
}

// Final returns the board after the last entry, or the start board.
func (r Record) Final() Board {
	if last, ok := r.Last(); ok {
		return last.Board
	}
	return r.Start
}

// Append adds an entry to the end of the record.
func (r *Record) Append(e Entry) {
	r.Entries = append(r.Entries, e)
}

// Clone returns a deep copy that shares nothing with r.
func (r Record) Clone() Record {
	c := Record{
		Tags:   make(map[string]string, len(r.Tags)),
		Start:  r.Start,
		Result: r.Result,
	}
	for k, v := range r.Tags {
		c.Tags[k] = v
	}
	if r.Entries != nil {
		c.Entries = make([]Entry, len(r.Entries))
		copy(c.Entries, r.Entries)
	}
	return c
}

// Captured lists the piece kinds captured by the given colour, in the
// order they were taken.
func (r Record) Captured(by Colour) []Piece {
	var pieces []Piece
	mover := r.Start.ToMove
	for _, e := range r.Entries {
		if mover == by && e.Move.Captured != Empty {
			pieces = append(pieces, e.Move.Captured)
		}
		mover = mover.Opposite()
	}
	return pieces
}

// MaterialBalance returns the value of material White has captured minus
// the value Black has captured. Positive favours White.
func (r Record) MaterialBalance() int {
	balance := 0
	for _, p := range r.Captured(White) {
		balance += p.Value()
	}
	for _, p := range r.Captured(Black) {
		balance -= p.Value()
	}
	return balance
}
