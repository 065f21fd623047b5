package search

import (
	"fmt"

	"github.com/kasparovbot/zugzwang/internal/util"
	"github.com/kasparovbot/zugzwang/pkg/game"
)

// Minimax is the straight, no-pruning baseline search: it recurses to a
// fixed depth, taking the max child value at MAX nodes and the min child
// value at MIN nodes, and falls back to the game's heuristic once depth
// is exhausted. It never fails to produce a move as long as the root has
// legal actions.
type Minimax struct {
	g        game.Game
	maxDepth int
	limits   Limits

	nodes int
}

// NewMinimax constructs a Minimax search bounded to maxDepth plies.
func NewMinimax(g game.Game, maxDepth int) (*Minimax, error) {
	if maxDepth <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDepth, maxDepth)
	}
	return &Minimax{g: g, maxDepth: maxDepth, limits: Limits{MaxDepth: maxDepth}}, nil
}

// SetLimits overrides the depth bound used by the next ChooseBestMove
// call. A non-positive MaxDepth keeps the constructor's default depth.
func (m *Minimax) SetLimits(l Limits) {
	if l.MaxDepth <= 0 {
		l.MaxDepth = m.maxDepth
	}
	m.limits = l
}

// compile-time check that Minimax implements Algorithm.
var _ Algorithm = (*Minimax)(nil)

// ChooseBestMove returns the successor state that straight minimax search
// judges best for the side to move, or nil if state is terminal or has
// no legal actions.
func (m *Minimax) ChooseBestMove(state game.State) (*game.State, error) {
	m.nodes = 0

	if m.g.IsTerminal(state) {
		return nil, nil
	}

	actions := m.g.PossibleActions(state)
	if len(actions) == 0 {
		return nil, nil
	}

	maximizing := state.ToMove == game.MAX
	bestScore := -Inf
	if !maximizing {
		bestScore = Inf
	}

	var bestChild *game.State
	for _, a := range actions {
		child := m.g.Apply(state, a)
		score := m.value(child, m.limits.MaxDepth-1)

		if (maximizing && score > bestScore) || (!maximizing && score < bestScore) || bestChild == nil {
			bestScore = score
			c := child
			bestChild = &c
		}
	}

	return bestChild, nil
}

// value recursively evaluates state from MAX's perspective, descending at
// most depth plies further.
func (m *Minimax) value(state game.State, depth int) int {
	m.nodes++

	if m.g.IsTerminal(state) {
		return m.g.Utility(state)
	}
	if depth <= 0 {
		return m.g.Heuristic(state)
	}

	actions := m.g.PossibleActions(state)
	if len(actions) == 0 {
		// no legal actions but not terminal per the Game: treat as a
		// dead end evaluated heuristically.
		return m.g.Heuristic(state)
	}

	if state.ToMove == game.MAX {
		best := -Inf
		for _, a := range actions {
			best = util.Max(best, m.value(m.g.Apply(state, a), depth-1))
		}
		return best
	}

	best := Inf
	for _, a := range actions {
		best = util.Min(best, m.value(m.g.Apply(state, a), depth-1))
	}
	return best
}

// NodesExplored reports the number of positions visited by the most
// recent ChooseBestMove call, for AutoSolver telemetry.
func (m *Minimax) NodesExplored() int { return m.nodes }

// Stats returns telemetry for the most recent ChooseBestMove call.
func (m *Minimax) Stats() map[string]any {
	return map[string]any{
		"nodes_explored": m.nodes,
	}
}
