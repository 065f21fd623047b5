package search

import (
	"github.com/kasparovbot/zugzwang/pkg/game"
	"github.com/kasparovbot/zugzwang/pkg/zobrist"
)

// softCap is the soft size cap shared by every cache in the engine.
// Exceeding it clears the table outright at the next move boundary rather
// than evicting individual entries, since the engine never needs anything
// more sophisticated than "start fresh occasionally" for in-memory-only,
// single-game-length caches.
const softCap = 500_000

// ttEntry is a bound-aware transposition-table entry: lb and ub bracket
// the exact minimax value, depth is the search depth at which they were
// computed, and best is the move that produced them, used for move
// ordering in later searches.
type ttEntry struct {
	lb, ub int
	depth  int
	best   game.Action
}

// transpositionTable is the bound-aware cache used by Alpha-Beta, MTD(f)
// and Negamax. Entries are kept in a map and are only ever overwritten by
// a store of equal or greater depth, never by a strictly shallower one
// replacing a deeper result.
type transpositionTable struct {
	entries map[zobrist.Key]ttEntry
}

func newTranspositionTable() *transpositionTable {
	return &transpositionTable{entries: make(map[zobrist.Key]ttEntry)}
}

// probe returns the entry stored for hash, if any.
func (t *transpositionTable) probe(hash zobrist.Key) (ttEntry, bool) {
	e, ok := t.entries[hash]
	return e, ok
}

// store writes an entry for hash, honoring the "never overwrite a
// strictly deeper entry" discipline. It also enforces the soft cap by
// clearing the whole table before growing past it.
func (t *transpositionTable) store(hash zobrist.Key, entry ttEntry) {
	if existing, ok := t.entries[hash]; ok && existing.depth > entry.depth {
		return
	}
	if len(t.entries) >= softCap {
		t.entries = make(map[zobrist.Key]ttEntry)
	}
	t.entries[hash] = entry
}

// clear empties the table, used by the AutoSolver at move boundaries once
// an algorithm instance's table has grown past the soft cap.
func (t *transpositionTable) clear() {
	t.entries = make(map[zobrist.Key]ttEntry)
}

func (t *transpositionTable) size() int { return len(t.entries) }
