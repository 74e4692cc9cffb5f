package game

import (
	"go.uber.org/zap"

	"github.com/Spyabo/CLI-Chess/internal/chess"
	"github.com/Spyabo/CLI-Chess/internal/errors"
	"github.com/Spyabo/CLI-Chess/internal/pgn"
)

// LoadPGN replaces the game with the first game in text, replaying every
// move through the state machine. On error the game is left unchanged and
// the error identifies the offending ply when a move is at fault. Notation
// warnings from successfully replayed moves are returned with the record.
func (g *Game) LoadPGN(text string) (chess.Record, []error, error) {
	parsed, err := pgn.ParseGame(text)
	if err != nil {
		return chess.Record{}, nil, err
	}
	return g.Replay(parsed)
}

// Replay replaces the game with an already parsed PGN game. It behaves
// like LoadPGN.
func (g *Game) Replay(parsed *pgn.Game) (chess.Record, []error, error) {
	start, err := parsed.StartBoard()
	if err != nil {
		return chess.Record{}, nil, err
	}

	replay := &Game{opts: g.opts}
	replay.opts.Logger = g.opts.Logger.With(zap.String("source", "pgn"))
	replay.reset(start)

	var warnings []error
	for i, mt := range parsed.Moves {
		_, warns, err := replay.ApplySAN(mt.Text)
		if err != nil {
			return chess.Record{}, nil, &errors.MoveError{
				Err:      err,
				Ply:      i + 1,
				MoveText: mt.Text,
			}
		}
		warnings = append(warnings, warns...)
	}

	for _, name := range parsed.TagOrder {
		if name == chess.ResultTag {
			continue
		}
		replay.record.SetTag(name, parsed.Tags[name])
	}
	if !replay.status.IsTerminal() {
		claimed := parsed.Result
		if claimed == "" {
			claimed = parsed.GetTag(chess.ResultTag)
		}
		if chess.IsResult(claimed) {
			replay.record.Result = claimed
		}
	}

	g.board = replay.board
	g.record = replay.record
	g.status = replay.status
	g.positions = replay.positions

	g.opts.Logger.Debug("pgn loaded",
		zap.Int("plies", g.record.PlyCount()),
		zap.String("result", g.record.Result),
		zap.Int("warnings", len(warnings)))
	return g.History(), warnings, nil
}

// LoadPGN replays the first game in text from scratch.
func LoadPGN(text string, opts ...Option) (chess.Record, []error, error) {
	return New(opts...).LoadPGN(text)
}

// Replay replays a parsed game from scratch.
func Replay(parsed *pgn.Game, opts ...Option) (chess.Record, []error, error) {
	return New(opts...).Replay(parsed)
}

// SavePGN renders the game as PGN with the given player names.
func (g *Game) SavePGN(white, black string) string {
	return export(g.record, white, black, g.opts)
}

// SavePGN renders record as PGN. The Event, Site, Date, Round, White and
// Black tags are set from the options and arguments; any other tags on the
// record, such as FEN and SetUp, are kept.
func SavePGN(record chess.Record, white, black string, opts ...Option) string {
	return export(record, white, black, buildOptions(opts))
}

func export(record chess.Record, white, black string, o Options) string {
	out := record.Clone()
	out.SetTag(chess.EventTag, o.Event)
	out.SetTag(chess.SiteTag, o.Site)
	out.SetTag(chess.DateTag, o.Clock().Format("2006.01.02"))
	out.SetTag(chess.RoundTag, DefaultRound)
	out.SetTag(chess.WhiteTag, white)
	out.SetTag(chess.BlackTag, black)
	return pgn.Encode(out, o.PGN)
}
