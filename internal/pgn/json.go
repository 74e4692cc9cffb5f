package pgn

import (
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/Spyabo/CLI-Chess/internal/chess"
	"github.com/Spyabo/CLI-Chess/internal/engine"
)

// JSONGame represents a game record in JSON format.
type JSONGame struct {
	Tags       map[string]string `json:"tags"`
	Moves      []JSONMove        `json:"moves,omitempty"`
	Result     string            `json:"result"`
	PlyCount   int               `json:"plyCount"`
	InitialFEN string            `json:"initialFEN"`
	FinalFEN   string            `json:"finalFEN"`
	Captured   map[string]string `json:"captured,omitempty"`
	Material   int               `json:"material"`
}

// JSONMove represents a move in JSON format.
type JSONMove struct {
	MoveNumber uint       `json:"moveNumber"`
	Color      string     `json:"color"` // "white" or "black"
	SAN        string     `json:"san"`
	UCI        string     `json:"uci"`
	Piece      string     `json:"piece"`
	Captured   string     `json:"captured,omitempty"`
	Promotion  string     `json:"promotion,omitempty"`
	FEN        string     `json:"fen"`
	Time       *time.Time `json:"time,omitempty"`
}

// RecordToJSON converts a game record to its JSON form.
func RecordToJSON(record chess.Record) *JSONGame {
	jg := &JSONGame{
		Tags:       copyTags(record.Tags),
		Result:     resultOf(record),
		PlyCount:   record.PlyCount(),
		InitialFEN: engine.ToFEN(record.Start),
		FinalFEN:   engine.ToFEN(record.Final()),
		Material:   record.MaterialBalance(),
	}
	jg.Tags[chess.ResultTag] = jg.Result

	moveNum := record.Start.FullmoveNumber
	colour := record.Start.ToMove
	for _, e := range record.Entries {
		jm := JSONMove{
			MoveNumber: moveNum,
			Color:      strings.ToLower(colour.String()),
			SAN:        e.SAN,
			UCI:        e.Move.UCI(),
			Piece:      e.Move.Piece.String(),
			FEN:        engine.ToFEN(e.Board),
		}
		if e.Move.Captured != chess.Empty {
			jm.Captured = e.Move.Captured.String()
		}
		if e.Move.Promotion != chess.Empty {
			jm.Promotion = e.Move.Promotion.String()
		}
		if !e.Timestamp.IsZero() {
			ts := e.Timestamp
			jm.Time = &ts
		}
		jg.Moves = append(jg.Moves, jm)

		if colour == chess.Black {
			moveNum++
		}
		colour = colour.Opposite()
	}

	captured := make(map[string]string, 2)
	for _, c := range []chess.Colour{chess.White, chess.Black} {
		var letters []byte
		for _, p := range record.Captured(c) {
			letters = append(letters, p.Letter())
		}
		if len(letters) > 0 {
			captured[strings.ToLower(c.String())] = string(letters)
		}
	}
	if len(captured) > 0 {
		jg.Captured = captured
	}
	return jg
}

// copyTags copies record tags and ensures the seven tag roster has values.
func copyTags(tags map[string]string) map[string]string {
	result := make(map[string]string, len(tags)+len(chess.SevenTagRoster))
	for k, v := range tags {
		result[k] = v
	}
	for _, tag := range chess.SevenTagRoster {
		if _, ok := result[tag]; !ok {
			result[tag] = "?"
		}
	}
	return result
}

// WriteJSON writes the records as an indented JSON array.
func WriteJSON(w io.Writer, records ...chess.Record) error {
	games := make([]*JSONGame, len(records))
	for i, r := range records {
		games[i] = RecordToJSON(r)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(games)
}
