package search

import (
	"fmt"
	"sort"

	"github.com/kasparovbot/zugzwang/internal/util"
	"github.com/kasparovbot/zugzwang/pkg/game"
	"github.com/kasparovbot/zugzwang/pkg/zobrist"
)

// MTDf implements MTD(f) with iterative deepening: a sequence of
// increasingly deep null-window Alpha-Beta probes, each seeded by the
// exact value found at the previous depth, sharing one transposition
// table and one killer table across the whole iterative-deepening pass
// and across moves.
type MTDf struct {
	g        game.Game
	zobrist  *zobrist.Table
	maxDepth int
	limits   Limits

	tt      *transpositionTable
	killers *killerTable

	nodes      int
	cutoffs    int
	ttHits     int
	iterations int
	dl         deadline
}

var _ Algorithm = (*MTDf)(nil)

// NewMTDf constructs an MTD(f) searcher bounded to maxDepth plies with no
// time limit by default (overridable per call via SetLimits).
func NewMTDf(g game.Game, maxDepth int) (*MTDf, error) {
	if maxDepth <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDepth, maxDepth)
	}
	return &MTDf{
		g:        g,
		zobrist:  zobrist.NewTable(g.Rows(), g.Cols()),
		maxDepth: maxDepth,
		limits:   Limits{MaxDepth: maxDepth},
		tt:       newTranspositionTable(),
		killers:  newKillerTable(),
	}, nil
}

// SetLimits overrides the depth/time bounds used by the next
// ChooseBestMove call. A positive MaxTime is how a caller hands MTD(f) a
// per-move timeout.
func (m *MTDf) SetLimits(l Limits) {
	if l.MaxDepth <= 0 {
		l.MaxDepth = m.maxDepth
	}
	m.limits = l
}

// ChooseBestMove runs the iterative-deepening MTD(f) loop from state.
func (m *MTDf) ChooseBestMove(state game.State) (*game.State, error) {
	m.nodes, m.cutoffs, m.ttHits, m.iterations = 0, 0, 0, 0
	m.dl = newDeadline(m.limits.MaxTime)

	if m.g.IsTerminal(state) {
		return nil, nil
	}
	actions := m.g.PossibleActions(state)
	if len(actions) == 0 {
		return nil, nil
	}

	if m.tt.size() >= softCap {
		m.tt.clear()
	}

	// The best move found so far starts as a center-biased legal action,
	// in case the deadline expires before the first depth converges.
	bestMove := centerBiasedAction(actions, m.g.Cols())

	f := 0
	for depth := 1; depth <= m.limits.MaxDepth; depth++ {
		if m.dl.expired() {
			break // checked at the outer iterative-deepening loop
		}

		g, rootBest, ok := m.mtdf(state, depth, f)
		if !ok {
			break // aborted mid-depth; keep the previous iteration's move
		}

		f = g
		m.iterations++
		if rootBest != nil {
			bestMove = rootBest
		}
	}

	child := m.g.Apply(state, bestMove)
	return &child, nil
}

// mtdf runs the null-window convergence loop at a single depth, seeded by
// firstGuess, and returns the converged value together with the root's
// best action read back from the transposition table. ok is false if the
// search was aborted by the deadline before converging.
func (m *MTDf) mtdf(state game.State, depth int, firstGuess int) (value int, best game.Action, ok bool) {
	g := firstGuess
	lb, ub := -Inf, Inf

	for lb < ub {
		if m.dl.expired() {
			return g, nil, false
		}

		beta := util.Max(g, lb+1)
		g = m.search(state, depth, beta-1, beta)

		if g < beta {
			ub = g
		} else {
			lb = g
		}
	}

	hash := m.zobrist.Hash(state)
	if entry, found := m.tt.probe(hash); found {
		best = entry.best
	}
	return g, best, true
}

// search is the bound-aware null-window Alpha-Beta routine MTD(f) probes
// with. It shares the same signed-alpha/beta convention as
// AlphaBeta.search (not negamax's flipped sign).
func (m *MTDf) search(state game.State, depth, alpha, beta int) int {
	m.nodes++

	if m.g.IsTerminal(state) {
		return m.g.Utility(state)
	}
	if m.dl.expired() {
		return m.g.Heuristic(state)
	}
	if depth <= 0 {
		return m.g.Heuristic(state)
	}

	actions := m.g.PossibleActions(state)
	if len(actions) == 0 {
		return m.g.Heuristic(state)
	}

	hash := m.zobrist.Hash(state)
	originalAlpha, originalBeta := alpha, beta

	if entry, found := m.tt.probe(hash); found && entry.depth >= depth {
		if entry.lb >= beta {
			m.ttHits++
			return entry.lb
		}
		if entry.ub <= alpha {
			m.ttHits++
			return entry.ub
		}
		alpha = util.Max(alpha, entry.lb)
		beta = util.Min(beta, entry.ub)
	}

	ordered := m.orderActions(state, hash, depth, actions)

	maximizing := state.ToMove == game.MAX
	best := -Inf
	if !maximizing {
		best = Inf
	}
	var bestAction game.Action

	for _, oa := range ordered {
		score := m.search(oa.child, depth-1, alpha, beta)

		if maximizing {
			if score > best {
				best, bestAction = score, oa.action
			}
			alpha = util.Max(alpha, best)
		} else {
			if score < best {
				best, bestAction = score, oa.action
			}
			beta = util.Min(beta, best)
		}

		if alpha >= beta {
			m.cutoffs++
			m.killers.store(depth, oa.action)
			break
		}
	}

	if !m.dl.expired() {
		lb, ub := -Inf, Inf
		switch {
		case best <= originalAlpha:
			ub = best
		case best >= originalBeta:
			lb = best
		default:
			lb, ub = best, best
		}
		m.tt.store(hash, ttEntry{lb: lb, ub: ub, depth: depth, best: bestAction})
	}

	return best
}

// orderedAction pairs an action with the child it was expanded to, so
// the child is only ever computed once per ply.
type orderedAction struct {
	action game.Action
	child  game.State
	score  int64
}

// orderActions expands every action to its child once and ranks them by:
// the transposition table's recorded best action, then killer moves at
// this depth, then center bias and signed heuristic.
func (m *MTDf) orderActions(state game.State, hash zobrist.Key, depth int, actions []game.Action) []orderedAction {
	var ttBest game.Action
	if entry, found := m.tt.probe(hash); found {
		ttBest = entry.best
	}
	killers := m.killers.at(depth)
	cols := m.g.Cols()

	ordered := make([]orderedAction, len(actions))
	for i, a := range actions {
		child := m.g.Apply(state, a)

		var tier int64
		switch {
		case ttBest != nil && a == ttBest:
			tier = 3
		case killers[0] != nil && a == killers[0]:
			tier = 2
			ordered[i] = orderedAction{a, child, tier<<32 + 1}
			continue
		case killers[1] != nil && a == killers[1]:
			tier = 2
			ordered[i] = orderedAction{a, child, tier<<32 + 0}
			continue
		default:
			tier = 1
		}

		h := m.g.Heuristic(child)
		if state.ToMove == game.MIN {
			h = -h // MIN wants low heuristic; invert so "higher is better" holds uniformly
		}
		secondary := int64(centerBias(a, cols))*1_000_000 + int64(h)
		ordered[i] = orderedAction{a, child, tier<<32 + secondary}
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].score > ordered[j].score
	})
	return ordered
}

// centerBias scores an action by how close it is to the board's middle
// column: higher is more central. Connect-4's column actions (plain ints)
// and the (row, col) actions used by Tic-Tac-Toe/Reversi both resolve to
// a column; any other action shape gets a neutral score of 0.
func centerBias(a game.Action, cols int) int {
	mid := cols / 2
	switch v := a.(type) {
	case int:
		return mid - util.Abs(v-mid)
	case [2]int:
		return mid - util.Abs(v[1]-mid)
	default:
		return 0
	}
}

// centerBiasedAction picks the most central legal action, used as the
// fallback root move before any iterative-deepening pass has completed.
func centerBiasedAction(actions []game.Action, cols int) game.Action {
	best := actions[0]
	bestScore := centerBias(best, cols)
	for _, a := range actions[1:] {
		if s := centerBias(a, cols); s > bestScore {
			best, bestScore = a, s
		}
	}
	return best
}

// Stats returns telemetry for the most recent ChooseBestMove call.
func (m *MTDf) Stats() map[string]any {
	hitRate := 0.0
	if m.nodes > 0 {
		hitRate = float64(m.ttHits) / float64(m.nodes)
	}
	return map[string]any{
		"nodes_explored": m.nodes,
		"cutoffs":        m.cutoffs,
		"tt_hits":        m.ttHits,
		"tt_hit_rate":    hitRate,
		"tt_size":        m.tt.size(),
		"iterations":     m.iterations,
	}
}
