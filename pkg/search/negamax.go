package search

import (
	"fmt"
	"sort"

	"github.com/kasparovbot/zugzwang/internal/util"
	"github.com/kasparovbot/zugzwang/pkg/game"
	"github.com/kasparovbot/zugzwang/pkg/zobrist"
)

// deltaMargin bounds quiescence search's delta pruning: a noisy action is
// not worth exploring further if even a generous swing in the resulting
// heuristic couldn't bring the stand-pat score back within the window.
const deltaMargin = 200

// negamaxTTShift pushes a terminal or near-terminal move-ordering score
// far enough above any heuristic value that a forced win or loss always
// sorts ahead of a merely-good-looking heuristic child.
const negamaxTTShift = 1_000_000

// negamax implements alpha-beta search in the single-signed-function
// negamax form, extended past its nominal depth horizon by a quiescence
// search over noisy actions only. It keeps a transposition table keyed by
// state hash: an entry is reusable only when it was computed at a depth at
// least as deep as the one currently requested.
type Negamax struct {
	g        game.Game
	zobrist  *zobrist.Table
	maxDepth int
	limits   Limits

	tt *transpositionTable

	nodes   int
	qNodes  int
	cutoffs int
	ttHits  int
	dl      deadline
}

var _ Algorithm = (*Negamax)(nil)

// NewNegamax constructs a Negamax searcher bounded to maxDepth plies of
// full-width search before quiescence takes over.
func NewNegamax(g game.Game, maxDepth int) (*Negamax, error) {
	if maxDepth <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDepth, maxDepth)
	}
	return &Negamax{
		g:        g,
		zobrist:  zobrist.NewTable(g.Rows(), g.Cols()),
		maxDepth: maxDepth,
		limits:   Limits{MaxDepth: maxDepth},
		tt:       newTranspositionTable(),
	}, nil
}

// SetLimits overrides the depth/time bounds used by the next
// ChooseBestMove call.
func (n *Negamax) SetLimits(l Limits) {
	if l.MaxDepth <= 0 {
		l.MaxDepth = n.maxDepth
	}
	n.limits = l
}

// ChooseBestMove runs negamax search from state and returns the best
// successor found, or nil if state is terminal or has no legal actions.
func (n *Negamax) ChooseBestMove(state game.State) (*game.State, error) {
	n.nodes, n.qNodes, n.cutoffs, n.ttHits = 0, 0, 0, 0
	n.dl = newDeadline(n.limits.MaxTime)

	if n.g.IsTerminal(state) {
		return nil, nil
	}
	actions := n.g.PossibleActions(state)
	if len(actions) == 0 {
		return nil, nil
	}

	if n.tt.size() >= softCap {
		n.tt.clear()
	}

	ordered := n.orderChildren(state, actions)

	var bestChild *game.State
	bestScore := -Inf
	for _, oc := range ordered {
		if n.dl.expired() {
			break
		}

		score := -n.negamax(oc.state, n.limits.MaxDepth-1, -Inf, Inf)

		if score > bestScore || bestChild == nil {
			bestScore = score
			c := oc.state
			bestChild = &c
		}
	}

	return bestChild, nil
}

// negamax returns the value of state from the perspective of state's side
// to move: higher is always better for whoever is to move there, regardless
// of whether that is MAX or MIN.
func (n *Negamax) negamax(state game.State, depth int, alpha, beta int) int {
	n.nodes++

	if n.g.IsTerminal(state) {
		return state.ToMove.Sign() * n.g.Utility(state)
	}
	if n.dl.expired() {
		return state.ToMove.Sign() * n.g.Heuristic(state)
	}
	if depth <= 0 {
		return n.quiescence(state, alpha, beta)
	}

	actions := n.g.PossibleActions(state)
	if len(actions) == 0 {
		return state.ToMove.Sign() * n.g.Heuristic(state)
	}

	hash := n.zobrist.Hash(state)
	if entry, found := n.tt.probe(hash); found && entry.depth >= depth {
		n.ttHits++
		return entry.lb
	}

	ordered := n.orderChildren(state, actions)

	best := -Inf
	for _, oc := range ordered {
		score := -n.negamax(oc.state, depth-1, -beta, -alpha)

		best = util.Max(best, score)
		alpha = util.Max(alpha, score)
		if alpha >= beta {
			n.cutoffs++
			break
		}
	}

	if !n.dl.expired() {
		n.tt.store(hash, ttEntry{lb: best, ub: best, depth: depth})
	}

	return best
}

// negamaxChild pairs an action with the child it produces and a
// move-ordering score: higher sorts first. A child that already settles
// the game is scored by its signed terminal value shifted well above any
// heuristic score, so a forced win or loss always orders ahead of a move
// merely judged promising by the heuristic.
type negamaxChild struct {
	action game.Action
	state  game.State
	score  int64
}

// orderChildren expands every action from parent once and sorts the
// results by move-ordering score, highest (most promising for parent's
// side to move) first.
func (n *Negamax) orderChildren(parent game.State, actions []game.Action) []negamaxChild {
	ordered := make([]negamaxChild, len(actions))
	for i, a := range actions {
		child := n.g.Apply(parent, a)

		var childValue int
		var score int64
		if n.g.IsTerminal(child) {
			childValue = child.ToMove.Sign() * n.g.Utility(child)
			score = negamaxTTShift - int64(childValue)
		} else {
			childValue = child.ToMove.Sign() * n.g.Heuristic(child)
			score = -int64(childValue)
		}

		ordered[i] = negamaxChild{action: a, state: child, score: score}
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].score > ordered[j].score
	})
	return ordered
}

// quiescence extends search past the nominal horizon over noisy actions
// only, with a stand-pat cutoff and delta pruning. If the game does not
// implement NoisyGame, no action is ever noisy and this degenerates to
// returning the stand-pat value.
func (n *Negamax) quiescence(state game.State, alpha, beta int) int {
	n.qNodes++

	if n.g.IsTerminal(state) {
		return state.ToMove.Sign() * n.g.Utility(state)
	}

	standPat := state.ToMove.Sign() * n.g.Heuristic(state)
	if standPat >= beta {
		return standPat
	}
	alpha = util.Max(alpha, standPat)

	noisy, ok := n.g.(game.NoisyGame)
	if !ok {
		return standPat
	}

	best := standPat
	for _, a := range n.g.PossibleActions(state) {
		if !noisy.IsNoisy(state, a) {
			continue
		}
		if standPat+deltaMargin < alpha {
			continue // delta pruning: this line cannot plausibly recover
		}

		child := n.g.Apply(state, a)
		score := -n.quiescence(child, -beta, -alpha)

		best = util.Max(best, score)
		if best >= beta {
			return best
		}
		alpha = util.Max(alpha, best)
	}
	return best
}

// Stats returns telemetry for the most recent ChooseBestMove call.
func (n *Negamax) Stats() map[string]any {
	return map[string]any{
		"nodes_explored":   n.nodes,
		"quiescence_nodes": n.qNodes,
		"cutoffs":          n.cutoffs,
		"tt_hits":          n.ttHits,
		"tt_size":          n.tt.size(),
	}
}
