package engine_test

import (
	"testing"

	"github.com/Spyabo/CLI-Chess/internal/chess"
	"github.com/Spyabo/CLI-Chess/internal/engine"
	"github.com/Spyabo/CLI-Chess/internal/testutil"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		fen        string
		rules      engine.Rules
		want       engine.GameStatus
		wantString string
		wantResult string
	}{
		{
			name:       "initial position",
			fen:        engine.InitialFEN,
			rules:      engine.DefaultRules(),
			want:       engine.GameStatus{Status: engine.Ongoing, Colour: chess.White},
			wantString: "Ongoing",
			wantResult: chess.ResultUnknown,
		},
		{
			name:       "fool's mate",
			fen:        testutil.FoolsMateFEN,
			rules:      engine.DefaultRules(),
			want:       engine.GameStatus{Status: engine.Checkmate, Colour: chess.White},
			wantString: "Checkmate(White)",
			wantResult: chess.ResultBlackWins,
		},
		{
			name:       "stalemate",
			fen:        testutil.StalemateFEN,
			rules:      engine.DefaultRules(),
			want:       engine.GameStatus{Status: engine.Stalemate, Colour: chess.Black},
			wantString: "Stalemate",
			wantResult: chess.ResultDraw,
		},
		{
			name:       "check",
			fen:        "rnbqkbnr/pppp1Qpp/8/4p3/4P3/8/PPPP1PPP/RNB1KBNR b KQkq - 0 3",
			rules:      engine.DefaultRules(),
			want:       engine.GameStatus{Status: engine.Check, Colour: chess.Black},
			wantString: "Check(Black)",
			wantResult: chess.ResultUnknown,
		},
		{
			name:       "fifty move rule",
			fen:        "8/8/8/8/8/8/R7/K6k w - - 100 80",
			rules:      engine.DefaultRules(),
			want:       engine.GameStatus{Status: engine.DrawByFiftyMove, Colour: chess.White},
			wantString: "DrawByFiftyMove",
			wantResult: chess.ResultDraw,
		},
		{
			name:       "fifty move rule disabled",
			fen:        "8/8/8/8/8/8/R7/K6k w - - 100 80",
			rules:      engine.Rules{InsufficientMaterial: true, ThreefoldRepetition: true},
			want:       engine.GameStatus{Status: engine.Ongoing, Colour: chess.White},
			wantString: "Ongoing",
			wantResult: chess.ResultUnknown,
		},
		{
			name:       "one short of fifty moves",
			fen:        "8/8/8/8/8/8/R7/K6k w - - 99 80",
			rules:      engine.DefaultRules(),
			want:       engine.GameStatus{Status: engine.Ongoing, Colour: chess.White},
			wantString: "Ongoing",
			wantResult: chess.ResultUnknown,
		},
		{
			name:       "bare kings",
			fen:        "8/8/8/8/8/8/8/K6k w - - 0 1",
			rules:      engine.DefaultRules(),
			want:       engine.GameStatus{Status: engine.DrawByInsufficientMaterial, Colour: chess.White},
			wantString: "DrawByInsufficientMaterial",
			wantResult: chess.ResultDraw,
		},
		{
			name:       "bare kings with rule disabled",
			fen:        "8/8/8/8/8/8/8/K6k w - - 0 1",
			rules:      engine.Rules{FiftyMove: true, ThreefoldRepetition: true},
			want:       engine.GameStatus{Status: engine.Ongoing, Colour: chess.White},
			wantString: "Ongoing",
			wantResult: chess.ResultUnknown,
		},
		{
			name:       "checkmate beats fifty move rule",
			fen:        "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 100 3",
			rules:      engine.DefaultRules(),
			want:       engine.GameStatus{Status: engine.Checkmate, Colour: chess.White},
			wantString: "Checkmate(White)",
			wantResult: chess.ResultBlackWins,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := testutil.MustParseFEN(t, tt.fen)
			got := engine.Classify(board, tt.rules, nil)
			testutil.AssertEqual(t, got, tt.want)
			testutil.AssertEqual(t, got.String(), tt.wantString)
			testutil.AssertEqual(t, got.Result(), tt.wantResult)
		})
	}
}

func TestClassify_FoolsMateByPlay(t *testing.T) {
	board := testutil.MustPlay(t, "", "f3", "e5", "g4", "Qh4#")
	testutil.AssertEqual(t, engine.ToFEN(board), testutil.FoolsMateFEN)

	status := engine.Classify(board, engine.DefaultRules(), nil)
	testutil.AssertEqual(t, status.String(), "Checkmate(White)")
	testutil.AssertTrue(t, status.IsTerminal())
	testutil.AssertEqual(t, status.Suffix(), "#")
	testutil.AssertTrue(t, engine.IsCheckmate(board))
	testutil.AssertFalse(t, engine.IsStalemate(board))
}

func TestClassify_ThreefoldRepetition(t *testing.T) {
	sans := []string{"Nf3", "Nf6", "Ng1", "Ng8", "Nf3", "Nf6", "Ng1", "Ng8"}

	positions := []chess.Board{engine.NewInitialBoard()}
	for i := range sans {
		positions = append(positions, testutil.MustPlay(t, "", sans[:i+1]...))
	}
	final := positions[len(positions)-1]
	history := positions[:len(positions)-1]

	testutil.AssertEqual(t, engine.RepetitionCount(final, history), 3)

	got := engine.Classify(final, engine.DefaultRules(), history)
	testutil.AssertEqual(t, got.Status, engine.DrawByThreefoldRepetition)

	disabled := engine.Rules{FiftyMove: true, InsufficientMaterial: true}
	got = engine.Classify(final, disabled, history)
	testutil.AssertEqual(t, got.Status, engine.Ongoing)

	// Twice is not enough.
	mid := positions[4]
	testutil.AssertEqual(t, engine.RepetitionCount(mid, positions[:4]), 2)
	testutil.AssertEqual(t, engine.Classify(mid, engine.DefaultRules(), positions[:4]).Status, engine.Ongoing)
}

func TestHasInsufficientMaterial(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want bool
	}{
		{"king vs king", "8/8/8/8/8/8/8/K6k w - - 0 1", true},
		{"king and knight vs king", "8/8/8/8/8/8/8/KN5k w - - 0 1", true},
		{"king and bishop vs king", "8/8/8/8/8/8/8/KB5k w - - 0 1", true},
		{"bishops on same colour", "5b1k/8/8/8/8/8/8/2B1K3 w - - 0 1", true},
		{"bishops on opposite colours", "2b1k3/8/8/8/8/8/8/2B1K3 w - - 0 1", false},
		{"two knights", "8/8/8/8/8/8/8/KNN4k w - - 0 1", false},
		{"knight vs bishop", "6bk/8/8/8/8/8/8/KN6 w - - 0 1", false},
		{"pawn", "8/8/8/8/8/8/P7/K6k w - - 0 1", false},
		{"rook", "8/8/8/8/8/8/R7/K6k w - - 0 1", false},
		{"queen", "8/8/8/8/8/8/Q7/K6k w - - 0 1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := testutil.MustParseFEN(t, tt.fen)
			testutil.AssertEqual(t, engine.HasInsufficientMaterial(board), tt.want)
		})
	}
}

func TestStatusPredicates(t *testing.T) {
	tests := []struct {
		status   engine.Status
		terminal bool
		draw     bool
	}{
		{engine.Ongoing, false, false},
		{engine.Check, false, false},
		{engine.Checkmate, true, false},
		{engine.Stalemate, true, true},
		{engine.DrawByFiftyMove, true, true},
		{engine.DrawByInsufficientMaterial, true, true},
		{engine.DrawByThreefoldRepetition, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			testutil.AssertEqual(t, tt.status.IsTerminal(), tt.terminal)
			testutil.AssertEqual(t, tt.status.IsDraw(), tt.draw)
		})
	}
	testutil.AssertEqual(t, engine.Status(99).String(), "Unknown")
}
