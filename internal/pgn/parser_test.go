package pgn_test

import (
	"strings"
	"testing"

	"github.com/Spyabo/CLI-Chess/internal/chess"
	"github.com/Spyabo/CLI-Chess/internal/engine"
	"github.com/Spyabo/CLI-Chess/internal/errors"
	"github.com/Spyabo/CLI-Chess/internal/pgn"
	"github.com/Spyabo/CLI-Chess/internal/testutil"
)

func moveTexts(g *pgn.Game) []string {
	out := make([]string, len(g.Moves))
	for i, m := range g.Moves {
		out[i] = m.Text
	}
	return out
}

func TestParseGame(t *testing.T) {
	tests := []struct {
		name       string
		pgn        string
		wantMoves  []string
		wantResult string
		wantTags   map[string]string
	}{
		{
			name: "seven tag roster",
			pgn: `[Event "Test"]
[Site "Test"]
[Date "2024.01.01"]
[Round "1"]
[White "Player1"]
[Black "Player2"]
[Result "1-0"]

1. e4 e5 2. Nf3 1-0`,
			wantMoves:  []string{"e4", "e5", "Nf3"},
			wantResult: "1-0",
			wantTags:   map[string]string{"Event": "Test", "White": "Player1", "Black": "Player2", "Result": "1-0"},
		},
		{
			name:       "movetext only",
			pgn:        "1. d4 d5 2. c4 *",
			wantMoves:  []string{"d4", "d5", "c4"},
			wantResult: "*",
		},
		{
			name:       "castling with zeros",
			pgn:        "1. e4 e5 2. Nf3 Nc6 3. Bc4 Bc5 4. 0-0 1/2-1/2",
			wantMoves:  []string{"e4", "e5", "Nf3", "Nc6", "Bc4", "Bc5", "0-0"},
			wantResult: "1/2-1/2",
		},
		{
			name:       "variations skipped",
			pgn:        "1. e4 e5 (1... c5 2. Nf3 (2. Nc3)) 2. Nf3 0-1",
			wantMoves:  []string{"e4", "e5", "Nf3"},
			wantResult: "0-1",
		},
		{
			name:       "comments and annotations",
			pgn:        "{Opening} 1. e4! {Best by test} e5?! 2. Nf3 $1 ; rest of line\n*",
			wantMoves:  []string{"e4", "e5", "Nf3"},
			wantResult: "*",
		},
		{
			name:       "black move number continuation",
			pgn:        "1. e4 {comment} 1... e5 2. Nf3 *",
			wantMoves:  []string{"e4", "e5", "Nf3"},
			wantResult: "*",
		},
		{
			name:       "escaped line",
			pgn:        "% this line is ignored\n1. e4 *",
			wantMoves:  []string{"e4"},
			wantResult: "*",
		},
		{
			name:       "missing result",
			pgn:        "1. e4 e5",
			wantMoves:  []string{"e4", "e5"},
			wantResult: "",
		},
		{
			name:       "tag value with escapes",
			pgn:        "[Event \"The \\\"Big\\\" One\"]\n\n1. e4 *",
			wantMoves:  []string{"e4"},
			wantResult: "*",
			wantTags:   map[string]string{"Event": `The "Big" One`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game, err := pgn.ParseGame(tt.pgn)
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, moveTexts(game), tt.wantMoves)
			testutil.AssertEqual(t, game.Result, tt.wantResult)
			for k, v := range tt.wantTags {
				testutil.AssertEqual(t, game.GetTag(k), v, k)
			}
		})
	}
}

func TestParseGame_Annotations(t *testing.T) {
	game, err := pgn.ParseGame("[Event \"E\"]\n{Prefix} 1. e4! {Best by test} e5?! $14 2. Nf3 *")
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, game.PrefixComments, []string{"Prefix"})
	testutil.AssertLen(t, game.Moves, 3)
	testutil.AssertEqual(t, game.Moves[0].NAGs, []string{"$1"})
	testutil.AssertEqual(t, game.Moves[0].Comments, []string{"Best by test"})
	testutil.AssertEqual(t, game.Moves[1].NAGs, []string{"$6", "$14"})
	testutil.AssertEqual(t, game.Moves[2].Line, 2)
}

func TestParseGame_TagOrder(t *testing.T) {
	game, err := pgn.ParseGame("[White \"A\"]\n[Black \"B\"]\n[Event \"E\"]\n\n*")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, game.TagOrder, []string{"White", "Black", "Event"})
	testutil.AssertLen(t, game.Moves, 0)
}

func TestParseGame_Errors(t *testing.T) {
	tests := []struct {
		name     string
		pgn      string
		wantLine int
	}{
		{"empty input", "", 0},
		{"only whitespace", "  \n\t ", 0},
		{"unterminated comment", "1. e4 {never closed", 1},
		{"stray closing brace", "1. e4 } e5", 1},
		{"unterminated string", "[Event \"Test]\n1. e4 *", 1},
		{"tag without value", "[Event]\n1. e4 *", 2},
		{"null move", "1. e4 -- 2. d4 *", 1},
		{"dollar without digits", "1. e4 $ e5 *", 1},
		{"junk in movetext", "1. e4 e5\n2. Nf3 @ *", 2},
		{"not a move", "1. e4 Zebra *", 1},
		{"unclosed variation", "1. e4 (1. d4 d5", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pgn.ParseGame(tt.pgn)
			testutil.AssertErrorIs(t, err, errors.ErrInvalidPGN)
			testutil.AssertErrorIs(t, err, errors.ErrParse)

			var pe *errors.ParseError
			testutil.AssertTrue(t, errors.As(err, &pe))
			testutil.AssertEqual(t, pe.Line, tt.wantLine)
		})
	}
}

func TestParse_MultipleGames(t *testing.T) {
	input := `[Event "One"]

1. e4 e5 1-0

[Event "Two"]

1. d4 d5 0-1

1. c4 *
`
	games, err := pgn.Parse(strings.NewReader(input))
	testutil.AssertNoError(t, err)
	testutil.AssertLen(t, games, 3)
	testutil.AssertEqual(t, games[0].GetTag("Event"), "One")
	testutil.AssertEqual(t, games[1].GetTag("Event"), "Two")
	testutil.AssertEqual(t, games[1].Result, "0-1")
	testutil.AssertEqual(t, moveTexts(games[2]), []string{"c4"})
	testutil.AssertEqual(t, games[1].StartLine, 5)
}

func TestGame_StartBoard(t *testing.T) {
	t.Run("initial position by default", func(t *testing.T) {
		game, err := pgn.ParseGame("1. e4 *")
		testutil.AssertNoError(t, err)
		board, err := game.StartBoard()
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, board, engine.NewInitialBoard())
	})

	t.Run("FEN tag", func(t *testing.T) {
		game, err := pgn.ParseGame("[SetUp \"1\"]\n[FEN \"" + testutil.PromotionFEN + "\"]\n\n1. a8=Q+ *")
		testutil.AssertNoError(t, err)
		board, err := game.StartBoard()
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, engine.ToFEN(board), testutil.PromotionFEN)
	})

	t.Run("bad FEN tag", func(t *testing.T) {
		game, err := pgn.ParseGame("[FEN \"not a fen\"]\n\n*")
		testutil.AssertNoError(t, err)
		_, err = game.StartBoard()
		testutil.AssertErrorIs(t, err, errors.ErrInvalidFEN)
	})
}

func TestLexer_Tokens(t *testing.T) {
	lexer := pgn.NewLexer(strings.NewReader("[Event \"X\"] 12... Nf3+ $2 (e4) 1/2-1/2"))

	want := []struct {
		typ  pgn.TokenType
		text string
	}{
		{pgn.TagToken, "Event"},
		{pgn.StringToken, "X"},
		{pgn.MoveNumber, ""},
		{pgn.MoveToken, "Nf3+"},
		{pgn.NAGToken, "$2"},
		{pgn.RAVStart, ""},
		{pgn.MoveToken, "e4"},
		{pgn.RAVEnd, ""},
		{pgn.TerminatingResult, "1/2-1/2"},
		{pgn.EOFToken, ""},
	}

	for i, w := range want {
		tok, err := lexer.NextToken()
		testutil.AssertNoError(t, err, "token %d", i)
		testutil.AssertEqual(t, tok.Type, w.typ, "token %d type", i)
		testutil.AssertEqual(t, tok.Text, w.text, "token %d text", i)
		if tok.Type == pgn.MoveNumber {
			testutil.AssertEqual(t, tok.MoveNum, uint(12))
		}
	}
}

func TestSevenTagRosterNames(t *testing.T) {
	testutil.AssertEqual(t, chess.SevenTagRoster, []string{"Event", "Site", "Date", "Round", "White", "Black", "Result"})
}
