package pgn

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Spyabo/CLI-Chess/internal/errors"
)

// Lexer tokenizes PGN input line by line.
type Lexer struct {
	reader  *bufio.Reader
	line    string
	pos     int
	lineNum int
	eof     bool
}

// Character classification table
var chTab [256]TokenType

// Move character classification table
var moveChars [256]bool

func init() {
	initLexTables()
}

// initLexTables initializes the character classification tables.
func initLexTables() {
	// Initialize all to error
	for i := range chTab {
		chTab[i] = ErrorToken
	}

	// Whitespace
	for _, c := range []byte{' ', '\t', '\r', '\n', '\f', '\v'} {
		chTab[c] = Whitespace
	}

	// Brackets and quotes
	chTab['['] = TagStart
	chTab[']'] = TagEnd
	chTab['"'] = DoubleQuote
	chTab['{'] = CommentStart
	chTab['}'] = CommentEnd
	chTab[';'] = RestOfLineComment

	// Special symbols
	chTab['$'] = NAGToken
	chTab['!'] = Annotate
	chTab['?'] = Annotate
	chTab['+'] = CheckSymbol
	chTab['#'] = CheckSymbol
	chTab['.'] = Dot
	chTab['('] = RAVStart
	chTab[')'] = RAVEnd
	chTab['%'] = Percent
	chTab['\\'] = Escape
	chTab['*'] = Star
	chTab['-'] = Dash

	// Digits
	for c := byte('0'); c <= '9'; c++ {
		chTab[c] = Digit
	}

	// Alpha characters (upper and lowercase)
	for c := byte('A'); c <= 'Z'; c++ {
		chTab[c] = Alpha
		chTab[c+32] = Alpha
	}
	chTab['_'] = Alpha

	initMoveChars()
}

// initMoveChars initializes the move character classification table.
func initMoveChars() {
	// Files (a-h) and ranks (1-8)
	for c := byte('a'); c <= 'h'; c++ {
		moveChars[c] = true
	}
	for c := byte('1'); c <= '8'; c++ {
		moveChars[c] = true
	}

	// Piece letters
	for _, c := range []byte{'K', 'Q', 'R', 'N', 'B'} {
		moveChars[c] = true
	}

	// Capture, promotion, castling and check suffixes
	for _, c := range []byte{'x', ':', '-', '=', 'O', '0', '+', '#'} {
		moveChars[c] = true
	}
}

// NewLexer creates a new lexer for the given reader.
func NewLexer(r io.Reader) *Lexer {
	return &Lexer{reader: bufio.NewReader(r)}
}

// readLine reads the next line from input.
func (l *Lexer) readLine() (bool, error) {
	line, err := l.reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	if len(line) == 0 {
		l.eof = true
		return false, nil
	}
	l.line = line
	l.pos = 0
	l.lineNum++
	return true, nil
}

// currentChar returns the current character or 0 if at end of line.
func (l *Lexer) currentChar() byte {
	if l.pos >= len(l.line) {
		return 0
	}
	return l.line[l.pos]
}

// advance moves to the next character.
func (l *Lexer) advance() {
	if l.pos < len(l.line) {
		l.pos++
	}
}

// errorAt builds a parse error at the given column of the current line.
func (l *Lexer) errorAt(column int, got, expected string) error {
	return &errors.ParseError{
		Err:      errors.ErrInvalidPGN,
		Line:     l.lineNum,
		Column:   column + 1,
		Got:      got,
		Expected: expected,
	}
}

// NextToken returns the next token from the input. Malformed input yields
// a *errors.ParseError carrying the line and column.
func (l *Lexer) NextToken() (Token, error) {
	for {
		if l.eof {
			return Token{Type: EOFToken, Line: l.lineNum}, nil
		}
		start := l.pos
		token, err := l.getNextSymbol()
		if err != nil {
			return Token{Type: ErrorToken}, err
		}
		if token.Type != NoToken {
			token.Line = l.lineNum
			if token.Column == 0 {
				token.Column = start + 1
			}
			return token, nil
		}
	}
}

// getNextSymbol identifies the next symbol.
func (l *Lexer) getNextSymbol() (Token, error) {
	// Need a new line?
	if l.pos >= len(l.line) {
		if _, err := l.readLine(); err != nil {
			return Token{}, err
		}
		return Token{Type: NoToken}, nil
	}

	// A % in the first column escapes the whole line.
	if l.pos == 0 && l.currentChar() == '%' {
		l.pos = len(l.line)
		return Token{Type: NoToken}, nil
	}

	ch := l.currentChar()
	symbolStart := l.pos
	l.advance()

	switch chTab[ch] {
	case Whitespace:
		for l.pos < len(l.line) && chTab[l.currentChar()] == Whitespace {
			l.advance()
		}
		return Token{Type: NoToken}, nil

	case TagStart:
		return l.gatherTag(symbolStart)

	case TagEnd:
		return Token{Type: NoToken}, nil

	case DoubleQuote:
		return l.gatherString(symbolStart)

	case CommentStart:
		return l.gatherComment(symbolStart)

	case RestOfLineComment:
		text := strings.TrimSpace(l.line[l.pos:])
		l.pos = len(l.line)
		return Token{Type: CommentToken, Text: text, Column: symbolStart + 1}, nil

	case CommentEnd:
		return Token{}, l.errorAt(symbolStart, "'}'", "comment start before '}'")

	case NAGToken:
		start := l.pos
		for l.pos < len(l.line) && chTab[l.currentChar()] == Digit {
			l.advance()
		}
		if l.pos == start {
			return Token{}, l.errorAt(symbolStart, "'$'", "digits after '$'")
		}
		return Token{Type: NAGToken, Text: "$" + l.line[start:l.pos]}, nil

	case Annotate:
		// Gather annotation symbols (!, ?, !!, ??, !?, ?!)
		for l.pos < len(l.line) && chTab[l.currentChar()] == Annotate {
			l.advance()
		}
		return Token{Type: NAGToken, Text: annotationToNAG(l.line[symbolStart:l.pos])}, nil

	case Dot:
		for l.pos < len(l.line) && chTab[l.currentChar()] == Dot {
			l.advance()
		}
		return Token{Type: NoToken}, nil

	case RAVStart:
		return Token{Type: RAVStart}, nil

	case RAVEnd:
		return Token{Type: RAVEnd}, nil

	case Escape:
		// Skip next character
		l.advance()
		return Token{Type: NoToken}, nil

	case Alpha:
		return l.gatherMove(symbolStart)

	case Digit:
		return l.gatherNumeric(ch, symbolStart)

	case Star:
		return Token{Type: TerminatingResult, Text: "*"}, nil

	case Dash:
		if l.currentChar() == '-' {
			return Token{}, l.errorAt(symbolStart, "null move", "a move")
		}
		return Token{}, l.errorAt(symbolStart, "'-'", "a move")

	default:
		return Token{}, l.errorAt(symbolStart, fmt.Sprintf("%q", ch), "PGN text")
	}
}

// gatherTag gathers a tag name after '['.
func (l *Lexer) gatherTag(symbolStart int) (Token, error) {
	for l.pos < len(l.line) && chTab[l.currentChar()] == Whitespace {
		l.advance()
	}

	start := l.pos
	for l.pos < len(l.line) {
		ch := l.currentChar()
		if chTab[ch] == Alpha || chTab[ch] == Digit {
			l.advance()
		} else {
			break
		}
	}

	if l.pos == start {
		return Token{}, l.errorAt(start, fmt.Sprintf("%q", l.currentChar()), "a tag name after '['")
	}
	return Token{Type: TagToken, Text: l.line[start:l.pos], Column: symbolStart + 1}, nil
}

// gatherString gathers a quoted string.
func (l *Lexer) gatherString(symbolStart int) (Token, error) {
	var sb strings.Builder
	escaped := false

	for l.pos < len(l.line) {
		ch := l.currentChar()
		l.advance()

		if escaped {
			sb.WriteByte(ch)
			escaped = false
			continue
		}

		switch ch {
		case '\\':
			escaped = true
		case '"':
			return Token{Type: StringToken, Text: sb.String()}, nil
		case '\n', '\r':
		default:
			sb.WriteByte(ch)
		}
	}

	return Token{}, l.errorAt(symbolStart, "end of line", "closing quote")
}

// gatherComment gathers a brace comment, which may span lines.
func (l *Lexer) gatherComment(symbolStart int) (Token, error) {
	var sb strings.Builder
	startLine, startCol := l.lineNum, symbolStart+1

	for {
		for l.pos < len(l.line) {
			ch := l.currentChar()
			l.advance()
			if ch == '}' {
				return Token{Type: CommentToken, Text: strings.TrimSpace(sb.String()), Column: startCol}, nil
			}
			sb.WriteByte(ch)
		}

		ok, err := l.readLine()
		if err != nil {
			return Token{}, err
		}
		if !ok {
			break
		}
	}

	return Token{}, &errors.ParseError{
		Err:      errors.ErrInvalidPGN,
		Line:     startLine,
		Column:   startCol,
		Got:      "end of input",
		Expected: "'}' to close comment",
	}
}

// gatherMove gathers move text starting with a letter.
func (l *Lexer) gatherMove(symbolStart int) (Token, error) {
	for l.pos < len(l.line) && moveChars[l.currentChar()] {
		l.advance()
	}

	moveText := l.line[symbolStart:l.pos]
	if !moveSeemsValid(moveText) {
		return Token{}, l.errorAt(symbolStart, fmt.Sprintf("%q", moveText), "a move")
	}
	return Token{Type: MoveToken, Text: moveText}, nil
}

// gatherNumeric handles numeric tokens (move numbers, results, castling).
func (l *Lexer) gatherNumeric(initialDigit byte, symbolStart int) (Token, error) {
	remaining := l.line[l.pos:]

	switch initialDigit {
	case '0':
		// Could be 0-1 (result) or 0-0 / 0-0-0 (castling)
		if strings.HasPrefix(remaining, "-1") {
			l.pos += 2
			return Token{Type: TerminatingResult, Text: "0-1"}, nil
		}
		if strings.HasPrefix(remaining, "-0") {
			return l.gatherMove(symbolStart)
		}
	case '1':
		if strings.HasPrefix(remaining, "-0") {
			l.pos += 2
			return Token{Type: TerminatingResult, Text: "1-0"}, nil
		}
		if strings.HasPrefix(remaining, "/2-1/2") {
			l.pos += 6
			return Token{Type: TerminatingResult, Text: "1/2-1/2"}, nil
		}
	}

	return l.gatherMoveNumber(symbolStart)
}

// gatherMoveNumber parses a move number token such as "12." or "12...".
func (l *Lexer) gatherMoveNumber(symbolStart int) (Token, error) {
	for l.pos < len(l.line) && chTab[l.currentChar()] == Digit {
		l.advance()
	}
	numStr := l.line[symbolStart:l.pos]

	// Skip trailing dots
	for l.pos < len(l.line) && l.currentChar() == '.' {
		l.advance()
	}

	moveNum, err := strconv.ParseUint(numStr, 10, 32)
	if err != nil {
		return Token{}, l.errorAt(symbolStart, fmt.Sprintf("%q", numStr), "a move number")
	}
	return Token{Type: MoveNumber, MoveNum: uint(moveNum)}, nil
}

// annotationToNAG converts annotation symbols to NAG strings.
func annotationToNAG(text string) string {
	switch text {
	case "!":
		return "$1"
	case "?":
		return "$2"
	case "!!":
		return "$3"
	case "??":
		return "$4"
	case "!?":
		return "$5"
	case "?!":
		return "$6"
	default:
		return "$0"
	}
}

// moveSeemsValid does a basic check that the text could be a move.
func moveSeemsValid(text string) bool {
	bare := strings.TrimRight(text, "+#")
	switch bare {
	case "O-O", "O-O-O", "0-0", "0-0-0":
		return true
	}

	// Must contain at least one file (a-h) and one rank (1-8)
	hasFile := false
	hasRank := false
	for i := 0; i < len(bare); i++ {
		c := bare[i]
		if c >= 'a' && c <= 'h' {
			hasFile = true
		}
		if c >= '1' && c <= '8' {
			hasRank = true
		}
	}
	return hasFile && hasRank
}

// LineNumber returns the current line number.
func (l *Lexer) LineNumber() int {
	return l.lineNum
}
