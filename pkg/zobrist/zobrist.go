// Package zobrist computes reproducible board hashes for transposition
// tables. A hash is the XOR of one random 64-bit key per occupied cell,
// plus a key for the side to move, so it can be recomputed from scratch in
// O(rows*cols) time without incremental maintenance.
package zobrist

import (
	"github.com/kasparovbot/zugzwang/internal/util"
	"github.com/kasparovbot/zugzwang/pkg/game"
)

// Key is a 64-bit board hash used as a transposition-table key.
type Key uint64

// seed is fixed so that two Table instances of the same dimensions always
// assign the same random keys to the same (color, row, col) triples,
// which is what makes hashing reproducible across runs.
const seed = 1070372

// maxColors bounds the number of distinct non-empty cell values a Table
// will assign keys for. 0 is always "empty" and never hashed.
const maxColors = 4

// Table holds the per-(color, row, col) random keys for one board
// dimension, plus one key for the side to move.
type Table struct {
	keys       [maxColors][][]Key // keys[color-1][row][col]
	sideToMove Key
	rows, cols int
}

// NewTable builds a Zobrist table for a board of the given dimensions. It
// is cheap enough to build once per Game at construction time; the same
// Table can hash every State that Game ever produces.
func NewTable(rows, cols int) *Table {
	var rng util.PRNG
	rng.Seed(seed)

	t := &Table{rows: rows, cols: cols}
	for color := 0; color < maxColors; color++ {
		t.keys[color] = make([][]Key, rows)
		for r := 0; r < rows; r++ {
			t.keys[color][r] = make([]Key, cols)
			for c := 0; c < cols; c++ {
				t.keys[color][r][c] = Key(rng.Uint64())
			}
		}
	}
	t.sideToMove = Key(rng.Uint64())
	return t
}

// Hash returns the Zobrist hash of a state's board and side to move. Cell
// values <= 0 are treated as empty; values above maxColors wrap around,
// which is sufficient for every game in this module (at most two piece
// colors).
func (t *Table) Hash(s game.State) Key {
	var h Key
	for r, row := range s.Board {
		for c, cell := range row {
			if cell <= 0 {
				continue
			}
			color := (int(cell) - 1) % maxColors
			h ^= t.keys[color][r][c]
		}
	}
	if s.ToMove == game.MIN {
		h ^= t.sideToMove
	}
	return h
}
