package search

import (
	"fmt"

	"github.com/kasparovbot/zugzwang/pkg/game"
	"github.com/kasparovbot/zugzwang/pkg/zobrist"
)

// pnInf stands in for an unbounded proof or disproof number. Using a large
// finite sentinel instead of a real infinity keeps the arithmetic in plain
// ints; sums are clamped back down to it rather than allowed to overflow.
const pnInf = 1 << 30

// pnNode is Proof-Number Search's own node type. Its φ/δ (proof/disproof)
// bookkeeping doesn't fit pkg/node's generic arena shape, and its parent
// pointer is read-only (used only to walk back up during the update
// pass), so it never creates the append-only, compaction-sensitive
// ownership hazard an arena is built to avoid: each search has its own
// bounded tree, discarded whole at the end of ChooseBestMove.
type pnNode struct {
	state    game.State
	hash     zobrist.Key
	action   game.Action // the action that produced this node from its parent
	parent   *pnNode
	children []*pnNode

	isOR     bool // true if the attacker is to move here
	expanded bool

	proof, disproof int
}

// onPath reports whether hash belongs to one of n's ancestors (n
// included), i.e. whether descending into it would revisit a position
// already on the current root-to-n line.
func (n *pnNode) onPath(hash zobrist.Key) bool {
	for cur := n; cur != nil; cur = cur.parent {
		if cur.hash == hash {
			return true
		}
	}
	return false
}

// PNSearch implements Proof-Number Search: it proves or disproves whether
// the player to move at the root can force a win, by repeatedly expanding
// the "most proving node" (the leaf reachable by always descending into
// the child most likely to flip the result) and propagating
// proof/disproof numbers back to the root.
type PNSearch struct {
	g       game.Game
	zobrist *zobrist.Table
	useTT   bool

	limits Limits
	dl     deadline

	tt         map[zobrist.Key]pnTTEntry
	expansions int
}

// pnTTEntry records the proof/disproof numbers most recently computed for
// a position (resolved or not), keyed by Zobrist hash, so an identical
// position reached by a second path starts from those numbers instead of
// starting over at proof=disproof=1.
type pnTTEntry struct {
	proof, disproof int
}

var _ Algorithm = (*PNSearch)(nil)

// NewPNSearch constructs a Proof-Number searcher. useTT enables the
// transposition cache described above; callers that want PN-Search's
// memory footprint to stay predictable across many moves can leave it
// off.
func NewPNSearch(g game.Game, maxExpansions int, useTT bool) (*PNSearch, error) {
	if g == nil {
		return nil, ErrMissingGame
	}
	if maxExpansions <= 0 {
		return nil, fmt.Errorf("%w: got %d expansions", ErrInvalidDepth, maxExpansions)
	}
	pn := &PNSearch{
		g:       g,
		zobrist: zobrist.NewTable(g.Rows(), g.Cols()),
		useTT:   useTT,
		limits:  Limits{MaxNodes: maxExpansions},
	}
	if useTT {
		pn.tt = make(map[zobrist.Key]pnTTEntry)
	}
	return pn, nil
}

// SetLimits overrides the expansion/time budget used by the next
// ChooseBestMove call. MaxNodes is read as the expansion budget, counted
// once per child generated during a node's expansion rather than once
// per node, so a wide branching factor spends the budget faster than a
// narrow one.
func (pn *PNSearch) SetLimits(l Limits) {
	if l.MaxNodes <= 0 {
		l.MaxNodes = pn.limits.MaxNodes
	}
	pn.limits = l
}

// ChooseBestMove runs Proof-Number Search from state, trying to prove or
// disprove a forced win for the side to move, and returns the most
// promising successor found: a certain winning move if the root was
// proven, or the move with the lowest proof number otherwise.
func (pn *PNSearch) ChooseBestMove(state game.State) (*game.State, error) {
	pn.expansions = 0
	pn.dl = newDeadline(pn.limits.MaxTime)

	if pn.g.IsTerminal(state) {
		return nil, nil
	}
	if len(pn.g.PossibleActions(state)) == 0 {
		return nil, nil
	}

	attacker := state.ToMove
	root := pn.newNode(state, nil, game.Pass, attacker)

	budget := pn.limits.MaxNodes
	for pn.expansions < budget && root.proof != 0 && root.disproof != 0 {
		if pn.dl.expired() {
			break
		}
		mpn := pn.selectMostProving(root)
		pn.expand(mpn, attacker)
		pn.updateAncestors(mpn)
	}

	return pn.bestMove(root)
}

// newNode creates a node for state, classifying it as OR (attacker to
// move) or AND, and assigning its initial proof/disproof numbers: proven
// or disproven outright if state is terminal, 1/1 if it is an unexplored
// leaf.
func (pn *PNSearch) newNode(state game.State, parent *pnNode, action game.Action, attacker game.Player) *pnNode {
	n := &pnNode{
		state:  state,
		hash:   pn.zobrist.Hash(state),
		action: action,
		parent: parent,
		isOR:   state.ToMove == attacker,
	}

	switch {
	case pn.g.IsTerminal(state):
		winner := pn.g.Winner(state)
		switch winner {
		case attacker:
			n.proof, n.disproof = 0, pnInf
		case attacker.Other():
			n.proof, n.disproof = pnInf, 0
		default: // draw: counts as a failure to prove a forced win
			n.proof, n.disproof = pnInf, 0
		}
	default:
		n.proof, n.disproof = 1, 1
	}
	return n
}

// selectMostProving descends from n, always following the child whose
// expansion is most likely to change the result: the minimum-proof child
// at an OR node, the minimum-disproof child at an AND node, stopping at
// the first unexpanded node reached.
func (pn *PNSearch) selectMostProving(n *pnNode) *pnNode {
	for n.expanded && len(n.children) > 0 {
		var next *pnNode
		if n.isOR {
			for _, c := range n.children {
				if next == nil || c.proof < next.proof {
					next = c
				}
			}
		} else {
			for _, c := range n.children {
				if next == nil || c.disproof < next.disproof {
					next = c
				}
			}
		}
		n = next
	}
	return n
}

// expand generates n's children, one per legal action, consulting the
// transposition cache and detecting cycles against the current descent
// path (a position repeating along its own path is given infinite proof
// and disproof numbers, so that line can never be proven or disproven).
func (pn *PNSearch) expand(n *pnNode, attacker game.Player) {
	n.expanded = true

	if pn.g.IsTerminal(n.state) {
		// already resolved by newNode when it was created: selection can
		// revisit a terminal node (e.g. via a disproof-number tie one
		// level up), but re-deriving its proof/disproof from zero legal
		// actions would overwrite the correct resolved value.
		pn.expansions++
		return
	}

	for _, a := range pn.g.PossibleActions(n.state) {
		childState := pn.g.Apply(n.state, a)
		child := pn.newNode(childState, n, a, attacker)
		pn.expansions++

		if n.onPath(child.hash) {
			// revisiting a position already on the root-to-n line: this
			// line can loop forever and is never a proof of anything.
			child.expanded = true
			child.proof, child.disproof = pnInf, pnInf
		} else if pn.useTT {
			if cached, ok := pn.tt[child.hash]; ok {
				child.proof, child.disproof = cached.proof, cached.disproof
			}
		}

		n.children = append(n.children, child)
	}

	if len(n.children) == 0 {
		// no children generated at all still counts as one unit of work,
		// so a run of stuck positions can't stall the expansion budget.
		pn.expansions++
		// no legal actions but not flagged terminal by the Game: treat the
		// side to move here as stuck, i.e. this line disproves the root's
		// goal from n's perspective.
		n.proof, n.disproof = pnInf, 0
	}
}

// updateAncestors recomputes proof/disproof numbers from n up to the
// root, using the standard OR/AND recurrences: an OR node's proof number
// is the minimum over its children (proving needs just one of them, the
// easiest), its disproof number the sum (every child must be
// disproven); an AND node is the mirror image.
func (pn *PNSearch) updateAncestors(n *pnNode) {
	for cur := n; cur != nil; cur = cur.parent {
		if cur.expanded && len(cur.children) > 0 {
			if cur.isOR {
				cur.proof = minProof(cur.children)
				cur.disproof = sumDisproof(cur.children)
			} else {
				cur.proof = sumProof(cur.children)
				cur.disproof = minDisproof(cur.children)
			}
		}
		if pn.useTT {
			pn.tt[cur.hash] = pnTTEntry{proof: cur.proof, disproof: cur.disproof}
		}
	}
}

func minProof(children []*pnNode) int {
	m := pnInf
	for _, c := range children {
		if c.proof < m {
			m = c.proof
		}
	}
	return m
}

func minDisproof(children []*pnNode) int {
	m := pnInf
	for _, c := range children {
		if c.disproof < m {
			m = c.disproof
		}
	}
	return m
}

func sumProof(children []*pnNode) int {
	sum := 0
	for _, c := range children {
		sum += c.proof
		if sum >= pnInf {
			return pnInf
		}
	}
	return sum
}

func sumDisproof(children []*pnNode) int {
	sum := 0
	for _, c := range children {
		sum += c.disproof
		if sum >= pnInf {
			return pnInf
		}
	}
	return sum
}

// bestMove extracts a move from the fully- or partially-searched root: a
// proven winning child if one exists (proof == 0), otherwise the child
// with the smallest proof number as the most promising move actually
// found within budget.
func (pn *PNSearch) bestMove(root *pnNode) (*game.State, error) {
	if !root.expanded || len(root.children) == 0 {
		return nil, nil
	}

	var best *pnNode
	for _, c := range root.children {
		if best == nil || c.proof < best.proof {
			best = c
		}
	}
	state := best.state
	return &state, nil
}

// Stats returns telemetry for the most recent ChooseBestMove call.
func (pn *PNSearch) Stats() map[string]any {
	return map[string]any{
		"expansions": pn.expansions,
		"tt_size":    len(pn.tt),
	}
}
