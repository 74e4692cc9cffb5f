package pgn

import (
	"fmt"
	"io"
	"strings"

	"github.com/Spyabo/CLI-Chess/internal/chess"
	"github.com/Spyabo/CLI-Chess/internal/engine"
	"github.com/Spyabo/CLI-Chess/internal/errors"
)

// Game is one game as read from PGN text: tags and main-line move text.
// Variations are skipped. Moves are not checked for legality here.
type Game struct {
	// Tags for this game (e.g., Event, Site, Date, White, Black, Result).
	Tags map[string]string

	// Tag names in the order they appeared.
	TagOrder []string

	// Any comment between the tags and the first move.
	PrefixComments []string

	Moves []MoveText

	// The terminating result marker, or "" if the movetext had none.
	Result string

	// Line numbers of the start and end of the game in the input.
	StartLine int
	EndLine   int
}

// MoveText is a single main-line move with its annotations.
type MoveText struct {
	Text     string
	NAGs     []string
	Comments []string
	Line     int
	Column   int
}

// GetTag returns a tag value, or empty string if not present.
func (g *Game) GetTag(name string) string {
	return g.Tags[name]
}

// SetTag sets a tag value, remembering the order of first appearance.
func (g *Game) SetTag(name, value string) {
	if g.Tags == nil {
		g.Tags = make(map[string]string)
	}
	if _, ok := g.Tags[name]; !ok {
		g.TagOrder = append(g.TagOrder, name)
	}
	g.Tags[name] = value
}

// StartBoard returns the position the game starts from: the FEN tag when
// present, otherwise the standard initial position.
func (g *Game) StartBoard() (chess.Board, error) {
	fen, ok := g.Tags[chess.FENTag]
	if !ok {
		return engine.NewInitialBoard(), nil
	}
	board, err := engine.ParseFEN(fen)
	if err != nil {
		return chess.Board{}, errors.Wrapf(err, "%s tag", chess.FENTag)
	}
	return board, nil
}

// Parser parses PGN input into Game structures.
type Parser struct {
	lexer        *Lexer
	currentToken Token
	started      bool
}

// NewParser creates a new parser for the given reader.
func NewParser(r io.Reader) *Parser {
	return &Parser{lexer: NewLexer(r)}
}

// nextToken gets the next token from the lexer.
func (p *Parser) nextToken() error {
	token, err := p.lexer.NextToken()
	if err != nil {
		return err
	}
	p.currentToken = token
	return nil
}

// Parse reads every game in r.
func Parse(r io.Reader) ([]*Game, error) {
	return NewParser(r).ParseAllGames()
}

// ParseGame parses the first game in text.
func ParseGame(text string) (*Game, error) {
	game, err := NewParser(strings.NewReader(text)).ParseGame()
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, &errors.ParseError{Err: errors.ErrInvalidPGN, Got: "no game"}
	}
	return game, nil
}

// ParseGame parses a single game from the input.
// Returns nil, nil if no more games are available.
func (p *Parser) ParseGame() (*Game, error) {
	if !p.started {
		p.started = true
		if err := p.nextToken(); err != nil {
			return nil, err
		}
	}

	if err := p.skipToNextGame(); err != nil {
		return nil, err
	}
	if p.currentToken.Type == EOFToken {
		return nil, nil
	}

	game := &Game{
		Tags:      make(map[string]string),
		StartLine: p.currentToken.Line,
	}

	if err := p.parseOptTagList(game); err != nil {
		return nil, err
	}

	comments, err := p.parseOptCommentList()
	if err != nil {
		return nil, err
	}
	game.PrefixComments = comments

	// Skip any initial NAGs (non-standard but sometimes present)
	for p.currentToken.Type == NAGToken {
		if err := p.nextToken(); err != nil {
			return nil, err
		}
	}

	if err := p.parseMoveList(game); err != nil {
		return nil, err
	}

	if p.currentToken.Type == TerminatingResult {
		game.Result = p.currentToken.Text
		game.EndLine = p.currentToken.Line
		if err := p.nextToken(); err != nil {
			return nil, err
		}
	} else {
		game.EndLine = p.lexer.LineNumber()
		if p.currentToken.Type != EOFToken && p.currentToken.Type != TagToken {
			return nil, p.unexpected("a move or result")
		}
	}

	return game, nil
}

// unexpected reports the current token as a syntax error.
func (p *Parser) unexpected(expected string) error {
	got := p.currentToken.Type.String()
	if p.currentToken.Text != "" {
		got = fmt.Sprintf("%s %q", got, p.currentToken.Text)
	}
	return &errors.ParseError{
		Err:      errors.ErrInvalidPGN,
		Line:     p.currentToken.Line,
		Column:   p.currentToken.Column,
		Expected: expected,
		Got:      got,
	}
}

// skipToNextGame skips comments until the start of a game is found.
func (p *Parser) skipToNextGame() error {
	for {
		switch p.currentToken.Type {
		case EOFToken, TagToken, MoveToken, MoveNumber, TerminatingResult:
			return nil
		case CommentToken:
			if err := p.nextToken(); err != nil {
				return err
			}
		default:
			return p.unexpected("a tag or move")
		}
	}
}

// parseOptTagList parses zero or more tags.
func (p *Parser) parseOptTagList(game *Game) error {
	for p.currentToken.Type == TagToken {
		tagName := p.currentToken.Text
		if err := p.nextToken(); err != nil {
			return err
		}
		if p.currentToken.Type != StringToken {
			return p.unexpected(fmt.Sprintf("a quoted value for tag %s", tagName))
		}
		game.SetTag(tagName, p.currentToken.Text)
		if err := p.nextToken(); err != nil {
			return err
		}
	}
	return nil
}

// parseMoveList parses main-line moves until a result, a new game or EOF.
func (p *Parser) parseMoveList(game *Game) error {
	for {
		switch p.currentToken.Type {
		case MoveNumber:
			if err := p.nextToken(); err != nil {
				return err
			}
		case MoveToken:
			move := MoveText{
				Text:   p.currentToken.Text,
				Line:   p.currentToken.Line,
				Column: p.currentToken.Column,
			}
			if err := p.nextToken(); err != nil {
				return err
			}
			if err := p.parseMoveAnnotations(&move); err != nil {
				return err
			}
			game.Moves = append(game.Moves, move)
		case NAGToken, CommentToken:
			// Annotations before the first move belong to no move.
			if err := p.nextToken(); err != nil {
				return err
			}
		case RAVStart:
			if err := p.skipVariation(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

// parseMoveAnnotations attaches following NAGs and comments to move.
// Variations after the move are skipped.
func (p *Parser) parseMoveAnnotations(move *MoveText) error {
	for {
		switch p.currentToken.Type {
		case NAGToken:
			move.NAGs = append(move.NAGs, p.currentToken.Text)
		case CommentToken:
			move.Comments = append(move.Comments, p.currentToken.Text)
		case RAVStart:
			if err := p.skipVariation(); err != nil {
				return err
			}
			continue
		default:
			return nil
		}
		if err := p.nextToken(); err != nil {
			return err
		}
	}
}

// skipVariation consumes a parenthesised variation, including nested ones.
func (p *Parser) skipVariation() error {
	depth := 0
	for {
		switch p.currentToken.Type {
		case RAVStart:
			depth++
		case RAVEnd:
			depth--
		case EOFToken, TagToken:
			return p.unexpected("')' to close variation")
		}
		if err := p.nextToken(); err != nil {
			return err
		}
		if depth == 0 {
			return nil
		}
	}
}

// parseOptCommentList parses zero or more comments.
func (p *Parser) parseOptCommentList() ([]string, error) {
	var comments []string
	for p.currentToken.Type == CommentToken {
		comments = append(comments, p.currentToken.Text)
		if err := p.nextToken(); err != nil {
			return comments, err
		}
	}
	return comments, nil
}

// ParseAllGames parses all games from the input.
func (p *Parser) ParseAllGames() ([]*Game, error) {
	var games []*Game
	for {
		game, err := p.ParseGame()
		if err != nil {
			return games, err
		}
		if game == nil {
			break
		}
		games = append(games, game)
	}
	return games, nil
}
