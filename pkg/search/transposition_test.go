package search

import "testing"

func TestTranspositionTableProbeMiss(t *testing.T) {
	tt := newTranspositionTable()
	if _, ok := tt.probe(123); ok {
		t.Error("probe on an empty table reported a hit")
	}
}

func TestTranspositionTableStoreAndProbe(t *testing.T) {
	tt := newTranspositionTable()
	tt.store(1, ttEntry{lb: 5, ub: 5, depth: 3})

	entry, ok := tt.probe(1)
	if !ok {
		t.Fatal("probe after store reported a miss")
	}
	if entry.lb != 5 || entry.depth != 3 {
		t.Errorf("probe(1) = %+v, want lb=5 depth=3", entry)
	}
}

func TestTranspositionTableNeverOverwritesDeeperEntry(t *testing.T) {
	tt := newTranspositionTable()
	tt.store(1, ttEntry{lb: 5, depth: 10})
	tt.store(1, ttEntry{lb: 9, depth: 2})

	entry, _ := tt.probe(1)
	if entry.lb != 5 || entry.depth != 10 {
		t.Errorf("a shallower store overwrote a deeper entry: got %+v", entry)
	}
}

func TestTranspositionTableOverwritesEqualOrShallower(t *testing.T) {
	tt := newTranspositionTable()
	tt.store(1, ttEntry{lb: 5, depth: 4})
	tt.store(1, ttEntry{lb: 9, depth: 4})

	entry, _ := tt.probe(1)
	if entry.lb != 9 {
		t.Errorf("an equal-depth store did not overwrite: got %+v", entry)
	}
}

func TestTranspositionTableClear(t *testing.T) {
	tt := newTranspositionTable()
	tt.store(1, ttEntry{lb: 1, depth: 1})
	tt.clear()

	if tt.size() != 0 {
		t.Errorf("size() after clear = %d, want 0", tt.size())
	}
	if _, ok := tt.probe(1); ok {
		t.Error("probe found an entry after clear")
	}
}
