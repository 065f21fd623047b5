package search

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/kasparovbot/zugzwang/pkg/game"
	"github.com/kasparovbot/zugzwang/pkg/node"
)

// defaultExploration is the UCB1 exploration constant c in
// value + c*sqrt(ln(N)/n), the textbook sqrt(2) choice.
const defaultExploration = 1.41421356237

// defaultRolloutCap bounds a single random playout in plies, as a safety
// valve against a Game whose rules the engine can't prove terminate; none
// of the three games in this module ever come close to it.
const defaultRolloutCap = 256

// mctsPayload is the per-node bookkeeping MCTS attaches to each arena
// entry: the position itself, the actions not yet expanded into children,
// and the UCB1 visit/win accumulators.
type mctsPayload struct {
	state    game.State
	untried  []game.Action
	visits   int
	wins     float64
	terminal bool
}

// MCTS implements Monte-Carlo Tree Search: selection by UCB1, one
// expansion per simulation, a uniform-random rollout to a terminal
// state, and backpropagation of the result up the selection path. Unlike
// the recursive algorithms, it keeps a genuinely persistent tree across
// simulations within one ChooseBestMove call, built with pkg/node's
// index-based arena rather than owned parent pointers.
type MCTS struct {
	g           game.Game
	iterations  int
	exploration float64
	rng         *rand.Rand

	limits Limits
	dl     deadline

	arena *node.Arena[mctsPayload]
	nodes int
}

var _ Algorithm = (*MCTS)(nil)

// NewMCTS constructs an MCTS searcher that runs iterations simulations
// per ChooseBestMove call, using seed for its random number generator so
// that a given (seed, game, position) always reproduces the same move.
func NewMCTS(g game.Game, iterations int, seed int64) (*MCTS, error) {
	if iterations <= 0 {
		return nil, fmt.Errorf("%w: got %d iterations", ErrInvalidDepth, iterations)
	}
	return &MCTS{
		g:           g,
		iterations:  iterations,
		exploration: defaultExploration,
		rng:         rand.New(rand.NewSource(seed)),
		limits:      Limits{MaxNodes: iterations},
		arena:       node.NewArena[mctsPayload](),
	}, nil
}

// SetLimits overrides the simulation/time budget used by the next
// ChooseBestMove call. MaxNodes is read as the simulation count; a zero
// MaxNodes keeps the constructor's default iteration count.
func (mc *MCTS) SetLimits(l Limits) {
	if l.MaxNodes <= 0 {
		l.MaxNodes = mc.iterations
	}
	mc.limits = l
}

// ChooseBestMove runs MCTS from state and returns the successor with the
// most visits (the "robust child"), or nil if state is terminal or has no
// legal actions.
func (mc *MCTS) ChooseBestMove(state game.State) (*game.State, error) {
	mc.nodes = 0
	mc.dl = newDeadline(mc.limits.MaxTime)

	if mc.g.IsTerminal(state) {
		return nil, nil
	}
	if len(mc.g.PossibleActions(state)) == 0 {
		return nil, nil
	}

	root := mc.arena.NewRoot(mctsPayload{
		state:   state,
		untried: append([]game.Action(nil), mc.g.PossibleActions(state)...),
	})
	mc.nodes = 1

	budget := mc.limits.MaxNodes
	if budget <= 0 {
		budget = mc.iterations
	}

	for i := 0; i < budget; i++ {
		if mc.dl.expired() {
			break
		}
		leaf := mc.selectAndExpand(root)
		result := mc.rollout(mc.arena.Payload(leaf).state)
		mc.backpropagate(leaf, result)
	}

	return mc.bestChild(root)
}

// selectAndExpand walks from root down the UCB1-preferred path, expanding
// one untried action the first time it reaches a node that has any, and
// returns the resulting leaf (the new child, or a terminal node reached
// with nothing left to expand).
func (mc *MCTS) selectAndExpand(root node.ID) node.ID {
	current := root

	for {
		p := mc.arena.Payload(current)
		if p.terminal {
			return current
		}
		if len(p.untried) > 0 {
			return mc.expand(current)
		}
		children := mc.arena.Children(current)
		if len(children) == 0 {
			// no untried actions and no children: a dead end that isn't
			// flagged terminal by the Game (e.g. a stalemate variant).
			return current
		}
		current = mc.selectUCB1(current, children)
	}
}

// expand materializes one untried action of parent as a new child node.
func (mc *MCTS) expand(parent node.ID) node.ID {
	p := mc.arena.Payload(parent)
	a := p.untried[len(p.untried)-1]
	p.untried = p.untried[:len(p.untried)-1]

	childState := mc.g.Apply(p.state, a)
	payload := mctsPayload{state: childState}
	if mc.g.IsTerminal(childState) {
		payload.terminal = true
	} else {
		payload.untried = append([]game.Action(nil), mc.g.PossibleActions(childState)...)
	}

	id := mc.arena.NewChild(parent, payload)
	mc.nodes++
	return id
}

// selectUCB1 picks the child of parent maximizing the UCB1 score,
// breaking ties by the order pkg/node returns children in. An unvisited
// child always wins, since its score is formally infinite.
func (mc *MCTS) selectUCB1(parent node.ID, children []node.ID) node.ID {
	parentVisits := mc.arena.Payload(parent).visits

	best := children[0]
	bestScore := math.Inf(-1)
	for _, c := range children {
		p := mc.arena.Payload(c)
		var score float64
		if p.visits == 0 {
			score = math.Inf(1)
		} else {
			exploitation := p.wins / float64(p.visits)
			exploration := mc.exploration * math.Sqrt(math.Log(float64(parentVisits))/float64(p.visits))
			score = exploitation + exploration
		}
		if score > bestScore {
			bestScore, best = score, c
		}
	}
	return best
}

// rollout plays uniformly-random legal actions from state to a terminal
// position (or until defaultRolloutCap plies have passed, as a
// non-terminating-game safety valve) and returns the terminal utility
// from MAX's perspective.
func (mc *MCTS) rollout(state game.State) int {
	for i := 0; i < defaultRolloutCap; i++ {
		if mc.g.IsTerminal(state) {
			return mc.g.Utility(state)
		}
		actions := mc.g.PossibleActions(state)
		if len(actions) == 0 {
			return mc.g.Heuristic(state)
		}
		a := actions[mc.rng.Intn(len(actions))]
		state = mc.g.Apply(state, a)
	}
	return mc.g.Heuristic(state)
}

// backpropagate walks from leaf back to the root, crediting each
// ancestor's win accumulator from the perspective of whichever player
// chose to move into that ancestor (its parent's side to move).
func (mc *MCTS) backpropagate(leaf node.ID, utility int) {
	for id := leaf; id != node.None; id = mc.arena.Parent(id) {
		p := mc.arena.Payload(id)
		p.visits++

		parent := mc.arena.Parent(id)
		if parent == node.None {
			continue
		}
		mover := mc.arena.Payload(parent).state.ToMove
		p.wins += float64(mover.Sign() * sign(utility))
	}
}

// sign returns -1, 0, or 1 matching the sign of v, used to turn a
// possibly large terminal utility into a unit reward.
func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// bestChild returns the successor state of root's most-visited child
// (the "robust child" selection rule), the standard choice over
// highest-average-value since it is far less sensitive to variance in
// lightly-explored branches.
func (mc *MCTS) bestChild(root node.ID) (*game.State, error) {
	children := mc.arena.Children(root)
	if len(children) == 0 {
		return nil, nil
	}

	best := children[0]
	bestVisits := -1
	for _, c := range children {
		if v := mc.arena.Payload(c).visits; v > bestVisits {
			bestVisits, best = v, c
		}
	}

	state := mc.arena.Payload(best).state
	return &state, nil
}

// Stats returns telemetry for the most recent ChooseBestMove call.
func (mc *MCTS) Stats() map[string]any {
	return map[string]any{
		"nodes_explored": mc.nodes,
		"simulations":    mc.limits.MaxNodes,
	}
}
