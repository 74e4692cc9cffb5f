package pgn

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/Spyabo/CLI-Chess/internal/chess"
)

// DefaultLineLength is the movetext wrap width used when Options leaves it
// unset.
const DefaultLineLength = 80

// Options controls PGN output.
type Options struct {
	// Maximum movetext line length; 0 means DefaultLineLength.
	LineLength int

	// Render piece letters as Unicode figurines.
	Figurine bool
}

// lineWriter handles formatted output with line length control.
type lineWriter struct {
	sb            strings.Builder
	lineLength    int
	maxLineLength int
	needsSpace    bool
}

// newLineWriter creates a new line writer.
func newLineWriter(maxLineLength int) *lineWriter {
	if maxLineLength <= 0 {
		maxLineLength = DefaultLineLength
	}
	return &lineWriter{maxLineLength: maxLineLength}
}

// write appends a word, adding a space separator or line break if needed.
func (o *lineWriter) write(s string) {
	n := len([]rune(s))
	if o.needsSpace && n > 0 {
		if o.lineLength+1+n > o.maxLineLength {
			o.sb.WriteByte('\n')
			o.lineLength = 0
		} else {
			o.sb.WriteByte(' ')
			o.lineLength++
		}
	}

	o.sb.WriteString(s)
	o.lineLength += n
	o.needsSpace = true
}

// newLine starts a new line.
func (o *lineWriter) newLine() {
	o.sb.WriteByte('\n')
	o.lineLength = 0
	o.needsSpace = false
}

// Encode renders a record as PGN text: the seven tag roster (with "?" for
// missing values), any further tags in name order, a blank line, the
// wrapped movetext and the result marker.
func Encode(record chess.Record, opts Options) string {
	var sb strings.Builder
	writeTags(&sb, record)
	sb.WriteByte('\n')
	sb.WriteString(movetext(record, opts))
	return sb.String()
}

// Write writes Encode's output to w.
func Write(w io.Writer, record chess.Record, opts Options) error {
	_, err := io.WriteString(w, Encode(record, opts))
	return err
}

// writeTags outputs the game tags.
func writeTags(sb *strings.Builder, record chess.Record) {
	for _, tag := range chess.SevenTagRoster {
		value := record.GetTag(tag)
		if tag == chess.ResultTag {
			value = resultOf(record)
		}
		if value == "" {
			value = "?"
		}
		fmt.Fprintf(sb, "[%s \"%s\"]\n", tag, escapeTagValue(value))
	}

	var extra []string
	for tag := range record.Tags {
		if !chess.IsSevenTagRosterTag(tag) {
			extra = append(extra, tag)
		}
	}
	sort.Strings(extra)
	for _, tag := range extra {
		fmt.Fprintf(sb, "[%s \"%s\"]\n", tag, escapeTagValue(record.Tags[tag]))
	}
}

// escapeTagValue escapes special characters in tag values.
func escapeTagValue(s string) string {
	// Fast path: if no escaping needed, return original string
	if !strings.ContainsAny(s, "\\\"") {
		return s
	}
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return s
}

// resultOf returns the record's result, falling back to the Result tag.
func resultOf(record chess.Record) string {
	if chess.IsResult(record.Result) && record.Result != chess.ResultUnknown {
		return record.Result
	}
	if tag := record.GetTag(chess.ResultTag); chess.IsResult(tag) {
		return tag
	}
	return chess.ResultUnknown
}

// movetext renders numbered moves followed by the result.
func movetext(record chess.Record, opts Options) string {
	ow := newLineWriter(opts.LineLength)

	moveNum := record.Start.FullmoveNumber
	colour := record.Start.ToMove

	for i, e := range record.Entries {
		if colour == chess.White {
			ow.write(fmt.Sprintf("%d.", moveNum))
		} else if i == 0 {
			// Black to move at start
			ow.write(fmt.Sprintf("%d...", moveNum))
		}

		san := e.SAN
		if opts.Figurine {
			san = FigurineSAN(san, colour)
		}
		ow.write(san)

		if colour == chess.Black {
			moveNum++
		}
		colour = colour.Opposite()
	}

	ow.write(resultOf(record))
	ow.newLine()
	return ow.sb.String()
}

// FigurineSAN replaces the piece letters of a SAN move, including a
// promotion piece, with Unicode figurines of the mover's colour.
func FigurineSAN(san string, colour chess.Colour) string {
	if strings.HasPrefix(san, "O-O") {
		return san
	}
	var sb strings.Builder
	for i := 0; i < len(san); i++ {
		c := san[i]
		piece := chess.PieceFromLetter(c)
		if piece != chess.Empty && piece != chess.Pawn && (i == 0 || san[i-1] == '=') {
			sb.WriteString(chess.Figurine(chess.MakeColouredPiece(colour, piece)))
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}
