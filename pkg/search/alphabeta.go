package search

import (
	"fmt"

	"github.com/kasparovbot/zugzwang/internal/util"
	"github.com/kasparovbot/zugzwang/pkg/game"
	"github.com/kasparovbot/zugzwang/pkg/zobrist"
)

// AlphaBeta implements alpha-beta pruned minimax with a transposition
// table and killer-seeded move ordering. The transposition table and
// killer table persist across moves on the same instance, so repeated
// searches of the same position get progressively cheaper.
type AlphaBeta struct {
	g        game.Game
	zobrist  *zobrist.Table
	maxDepth int
	limits   Limits

	tt      *transpositionTable
	killers *killerTable

	nodes   int
	cutoffs int
	ttHits  int
	dl      deadline
}

var _ Algorithm = (*AlphaBeta)(nil)

// NewAlphaBeta constructs an Alpha-Beta searcher bounded to maxDepth
// plies by default (overridable per call via SetLimits).
func NewAlphaBeta(g game.Game, maxDepth int) (*AlphaBeta, error) {
	if maxDepth <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDepth, maxDepth)
	}
	return &AlphaBeta{
		g:        g,
		zobrist:  zobrist.NewTable(g.Rows(), g.Cols()),
		maxDepth: maxDepth,
		limits:   Limits{MaxDepth: maxDepth},
		tt:       newTranspositionTable(),
		killers:  newKillerTable(),
	}, nil
}

// SetLimits overrides the depth/time/node bounds used by the next
// ChooseBestMove call.
func (ab *AlphaBeta) SetLimits(l Limits) {
	if l.MaxDepth <= 0 {
		l.MaxDepth = ab.maxDepth
	}
	ab.limits = l
}

// ChooseBestMove runs alpha-beta search from state and returns the best
// successor found, or nil if state is terminal or has no legal actions.
func (ab *AlphaBeta) ChooseBestMove(state game.State) (*game.State, error) {
	ab.nodes, ab.cutoffs, ab.ttHits = 0, 0, 0
	ab.dl = newDeadline(ab.limits.MaxTime)

	if ab.g.IsTerminal(state) {
		return nil, nil
	}
	actions := ab.g.PossibleActions(state)
	if len(actions) == 0 {
		return nil, nil
	}

	if ab.tt.size() >= softCap {
		ab.tt.clear()
	}

	maximizing := state.ToMove == game.MAX
	bestScore := -Inf
	if !maximizing {
		bestScore = Inf
	}

	var bestChild *game.State
	for _, a := range actions {
		if ab.dl.expired() {
			break // stop between sibling expansions at the root
		}

		child := ab.g.Apply(state, a)
		score := ab.search(child, ab.limits.MaxDepth-1, -Inf, Inf)

		if (maximizing && score > bestScore) || (!maximizing && score < bestScore) || bestChild == nil {
			bestScore = score
			c := child
			bestChild = &c
		}
	}

	return bestChild, nil
}

// search is the recursive alpha-beta routine from MAX's perspective;
// alpha and beta always bound the value the side to move is trying to
// extremize next, i.e. the bound is interpreted the same way at every
// node (unlike negamax's flipped-sign convention).
func (ab *AlphaBeta) search(state game.State, depth int, alpha, beta int) int {
	ab.nodes++

	if ab.g.IsTerminal(state) {
		return ab.g.Utility(state)
	}
	if ab.dl.expired() {
		return ab.g.Heuristic(state) // abort gracefully, never touch the TT
	}
	if depth <= 0 {
		return ab.g.Heuristic(state)
	}

	originalAlpha, originalBeta := alpha, beta

	// transposition lookup: a stored bound computed at an equal-or-deeper
	// depth narrows the window outright if it already settles the result,
	// otherwise it just tightens alpha/beta for the search below.
	hash := ab.zobrist.Hash(state)
	if entry, ok := ab.tt.probe(hash); ok && entry.depth >= depth {
		if entry.lb >= beta {
			ab.ttHits++
			return entry.lb
		}
		if entry.ub <= alpha {
			ab.ttHits++
			return entry.ub
		}
		alpha = util.Max(alpha, entry.lb)
		beta = util.Min(beta, entry.ub)
	}

	actions := ab.g.PossibleActions(state)
	if len(actions) == 0 {
		return ab.g.Heuristic(state)
	}
	ab.orderByKillers(actions, depth)

	maximizing := state.ToMove == game.MAX
	best := -Inf
	if !maximizing {
		best = Inf
	}
	var bestAction game.Action

	for _, a := range actions {
		child := ab.g.Apply(state, a)
		score := ab.search(child, depth-1, alpha, beta)

		if maximizing {
			if score > best {
				best, bestAction = score, a
			}
			alpha = util.Max(alpha, best)
		} else {
			if score < best {
				best, bestAction = score, a
			}
			beta = util.Min(beta, best)
		}

		if alpha >= beta {
			ab.cutoffs++
			ab.killers.store(depth, a)
			break
		}
	}

	if !ab.dl.expired() {
		lb, ub := -Inf, Inf
		switch {
		case best <= originalAlpha:
			ub = best
		case best >= originalBeta:
			lb = best
		default:
			lb, ub = best, best
		}
		ab.tt.store(hash, ttEntry{lb: lb, ub: ub, depth: depth, best: bestAction})
	}

	return best
}

// orderByKillers moves any action in actions that is a stored killer at
// depth to the front, in killer-recency order, by swapping it with the
// action at the front slot; the displaced actions take the killers' old
// slots, so the rest do not keep their original relative order.
func (ab *AlphaBeta) orderByKillers(actions []game.Action, depth int) {
	killers := ab.killers.at(depth)
	front := 0
	for _, k := range killers {
		if k == nil {
			continue
		}
		for i := front; i < len(actions); i++ {
			if actions[i] == k {
				actions[front], actions[i] = actions[i], actions[front]
				front++
				break
			}
		}
	}
}

// Stats returns telemetry for the most recent ChooseBestMove call.
func (ab *AlphaBeta) Stats() map[string]any {
	hitRate := 0.0
	if ab.nodes > 0 {
		hitRate = float64(ab.ttHits) / float64(ab.nodes)
	}
	return map[string]any{
		"nodes_explored": ab.nodes,
		"cutoffs":        ab.cutoffs,
		"tt_hits":        ab.ttHits,
		"tt_hit_rate":    hitRate,
		"tt_size":        ab.tt.size(),
	}
}
