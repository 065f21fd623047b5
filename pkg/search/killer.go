package search

import "github.com/kasparovbot/zugzwang/pkg/game"

// maxKillers is the number of cutoff-producing actions remembered per
// depth.
const maxKillers = 2

// killerTable maps a search depth to the most recent actions that
// produced a cutoff at that depth, used to improve move ordering.
type killerTable struct {
	table map[int][maxKillers]game.Action
}

func newKillerTable() *killerTable {
	return &killerTable{table: make(map[int][maxKillers]game.Action)}
}

// store pushes a to the front of the killer list at depth, keeping at
// most maxKillers entries and never storing a duplicate of the current
// front entry.
func (k *killerTable) store(depth int, a game.Action) {
	killers := k.table[depth]
	if killers[0] == a {
		return
	}
	for i := maxKillers - 1; i > 0; i-- {
		killers[i] = killers[i-1]
	}
	killers[0] = a
	k.table[depth] = killers
}

// at returns the killer moves stored for depth, front first. Empty slots
// hold a nil Action, which never matches a real move.
func (k *killerTable) at(depth int) [maxKillers]game.Action {
	return k.table[depth]
}

// isKiller reports whether a is one of the killer moves stored at depth.
func (k *killerTable) isKiller(depth int, a game.Action) bool {
	killers := k.table[depth]
	for _, killer := range killers {
		if killer != nil && killer == a {
			return true
		}
	}
	return false
}
