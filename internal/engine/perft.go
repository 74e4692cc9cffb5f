package engine

import (
	"sort"

	"github.com/Spyabo/CLI-Chess/internal/chess"
)

// Perft counts the leaf positions reachable in exactly depth plies.
func Perft(board chess.Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := LegalMoves(board)
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		nodes += Perft(makeMove(board, m), depth-1)
	}
	return nodes
}

// DivideEntry is the perft count below a single root move.
type DivideEntry struct {
	Move  string
	Nodes uint64
}

// Divide runs Perft below each legal root move, sorted by UCI text.
func Divide(board chess.Board, depth int) []DivideEntry {
	if depth <= 0 {
		return nil
	}
	moves := LegalMoves(board)
	entries := make([]DivideEntry, 0, len(moves))
	for _, m := range moves {
		entries = append(entries, DivideEntry{
			Move:  m.UCI(),
			Nodes: Perft(makeMove(board, m), depth-1),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Move < entries[j].Move
	})
	return entries
}
