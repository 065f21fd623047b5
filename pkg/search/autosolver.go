package search

import (
	"fmt"
	"time"

	"github.com/kasparovbot/zugzwang/internal/util"
	"github.com/kasparovbot/zugzwang/pkg/game"
)

// Profile names the two dispatch tables AutoSolver ships with: "classic"
// walks a move-number table through all six algorithms and then falls
// back on board-shape signals (MTD(f) as the default workhorse,
// Proof-Number Search whenever the position is narrow enough to attempt
// to solve outright); "fast" uses only Proof-Number Search near the end
// and depth-capped MTD(f) everywhere else.
type Profile string

const (
	ProfileClassic Profile = "classic"
	ProfileFast    Profile = "fast"
)

// algoKey names one of the concrete algorithms an AutoSolver can dispatch
// to, used both as a map key and as the Algorithm field of a Record.
type algoKey string

const (
	algoMinimax   algoKey = "minimax"
	algoAlphaBeta algoKey = "alphabeta"
	algoMTDf      algoKey = "mtdf"
	algoNegamax   algoKey = "negamax"
	algoMCTS      algoKey = "mcts"
	algoPNSearch  algoKey = "pnsearch"
)

// timeoutEntry is one row of a depth->timeout table: the per-move budget
// granted to a search running at depth.
type timeoutEntry struct {
	depth   int
	seconds float64
}

// classicTimeouts and fastTimeouts give each profile its own depth->time
// budget, deeper searches earning proportionally more wall-clock room.
// timeoutForDepth floors a requested depth to the table's entries.
var classicTimeouts = []timeoutEntry{
	{depth: 3, seconds: 0.5},
	{depth: 5, seconds: 1.0},
	{depth: 7, seconds: 2.0},
	{depth: 9, seconds: 3.0},
}

var fastTimeouts = []timeoutEntry{
	{depth: 3, seconds: 0.3},
	{depth: 5, seconds: 0.8},
	{depth: 7, seconds: 1.2},
	{depth: 9, seconds: 2.0},
}

// timeoutForDepth returns the budget of the deepest table entry that does
// not exceed depth, or the table's shallowest entry if depth falls below
// all of them.
func timeoutForDepth(table []timeoutEntry, depth int) time.Duration {
	best := table[0]
	for _, e := range table {
		if e.depth <= depth {
			best = e
		}
	}
	return time.Duration(best.seconds * float64(time.Second))
}

// effectiveDepth caps the nominal depth d for the dispatch rules that call
// for a shallower search than AutoSolver's configured budget: Minimax at
// the very first move searches at most 4 plies, and fast-profile MTD(f)
// at most 5.
func effectiveDepth(key algoKey, profile Profile, d int) int {
	switch {
	case key == algoMinimax:
		return util.Min(d, 4)
	case key == algoMTDf && profile == ProfileFast:
		return util.Min(d, 5)
	default:
		return d
	}
}

// AutoSolver inspects the position every move and dispatches to whichever
// concrete algorithm its active Profile judges best suited to it, reusing
// one long-lived instance per algorithm so that each one's
// transposition/killer state persists across the whole game, and keeps a
// Record of every decision it made.
type AutoSolver struct {
	g       game.Game
	profile Profile
	limits  Limits

	minimax   *Minimax
	alphabeta *AlphaBeta
	mtdf      *MTDf
	negamax   *Negamax
	mcts      *MCTS
	pnsearch  *PNSearch

	moveNumber int
	history    []Record
}

var _ Algorithm = (*AutoSolver)(nil)

// Record captures one AutoSolver decision: which algorithm it picked,
// why, and what that algorithm's search cost.
type Record struct {
	MoveNumber int
	Player     game.Player
	Algorithm  string
	Reason     string
	Nodes      int
	Elapsed    time.Duration
}

// String renders a Record as a single diagnostic line.
func (r Record) String() string {
	return fmt.Sprintf("#%d %s -> %s (%s) [%d nodes, %s]",
		r.MoveNumber, r.Player, r.Algorithm, r.Reason, r.Nodes, r.Elapsed)
}

// statsProvider is implemented by every concrete algorithm's Stats
// method; AutoSolver type-asserts to it purely for Record telemetry.
type statsProvider interface {
	Stats() map[string]any
}

// NewAutoSolver constructs an AutoSolver over g running the named
// profile, with maxDepth as the nominal depth every depth-bounded
// algorithm is constructed with; MCTS and PN-Search get fixed simulation
// and expansion budgets instead (a per-call deadline can still be imposed
// through SetLimits).
func NewAutoSolver(g game.Game, profile Profile, maxDepth int) (*AutoSolver, error) {
	if maxDepth <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDepth, maxDepth)
	}
	if profile != ProfileClassic && profile != ProfileFast {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, profile)
	}

	minimax, err := NewMinimax(g, maxDepth)
	if err != nil {
		return nil, err
	}
	alphabeta, err := NewAlphaBeta(g, maxDepth)
	if err != nil {
		return nil, err
	}
	mtdf, err := NewMTDf(g, maxDepth)
	if err != nil {
		return nil, err
	}
	negamax, err := NewNegamax(g, maxDepth)
	if err != nil {
		return nil, err
	}
	mcts, err := NewMCTS(g, 2000, 0xC0FFEE)
	if err != nil {
		return nil, err
	}
	pnsearch, err := NewPNSearch(g, 50_000, true)
	if err != nil {
		return nil, err
	}

	return &AutoSolver{
		g:         g,
		profile:   profile,
		limits:    Limits{MaxDepth: maxDepth},
		minimax:   minimax,
		alphabeta: alphabeta,
		mtdf:      mtdf,
		negamax:   negamax,
		mcts:      mcts,
		pnsearch:  pnsearch,
	}, nil
}

// SetLimits overrides the time budget handed to whichever algorithm gets
// dispatched to next. MaxDepth, if positive, also overrides the nominal
// depth/expansion budget baked in at construction.
func (as *AutoSolver) SetLimits(l Limits) {
	as.limits = l
}

// ChooseBestMove inspects state, dispatches to the algorithm its Profile
// selects, and records the decision.
func (as *AutoSolver) ChooseBestMove(state game.State) (*game.State, error) {
	as.moveNumber++

	if as.g.IsTerminal(state) {
		return nil, nil
	}
	actions := as.g.PossibleActions(state)
	if len(actions) == 0 {
		return nil, nil
	}

	key, reason := as.dispatch(state, len(actions))
	algo := as.instance(key)
	as.configureLimits(key)

	start := time.Now()
	result, err := algo.ChooseBestMove(state)
	elapsed := time.Since(start)

	nodes := 0
	if sp, ok := algo.(statsProvider); ok {
		stats := sp.Stats()
		if n, ok := stats["nodes_explored"].(int); ok {
			nodes = n
		} else if n, ok := stats["expansions"].(int); ok {
			nodes = n
		}
	}

	as.history = append(as.history, Record{
		MoveNumber: as.moveNumber,
		Player:     state.ToMove,
		Algorithm:  string(key),
		Reason:     reason,
		Nodes:      nodes,
		Elapsed:    elapsed,
	})

	return result, err
}

// dispatch picks the algorithm key and a human-readable reason for state,
// given that it already has numActions legal moves and is not terminal.
// The fast profile keys entirely off how many empty cells remain; the
// classic profile runs a move-number table for the first sixteen plies of
// the game (moves played 0 through 15), then falls back to board-shape signals once that table runs
// out of entries.
func (as *AutoSolver) dispatch(state game.State, numActions int) (algoKey, string) {
	e := emptyCells(state, as.g)
	fillRatio := boardFillRatio(state, as.g)

	if as.profile == ProfileFast {
		if e <= 10 {
			return algoPNSearch, fmt.Sprintf("%d empty cells left, attempting to solve outright", e)
		}
		return algoMTDf, "fast profile opening/midgame, iterative-deepening MTD(f)"
	}

	m := as.moveNumber - 1
	switch {
	case m == 0:
		return algoMinimax, "first move, shallow exhaustive minimax"
	case m >= 1 && m <= 3:
		return algoAlphaBeta, fmt.Sprintf("move %d, alpha-beta", m)
	case m >= 4 && m <= 5:
		return algoMTDf, fmt.Sprintf("move %d, iterative-deepening MTD(f)", m)
	case m >= 6 && m <= 8:
		return algoNegamax, fmt.Sprintf("move %d, quiescence-extended negamax", m)
	case m >= 9 && m <= 12:
		return algoAlphaBeta, fmt.Sprintf("move %d, alpha-beta", m)
	case m >= 13 && m <= 15:
		if numActions >= 6 {
			return algoMCTS, fmt.Sprintf("move %d, wide branching (%d actions), Monte-Carlo sampling", m, numActions)
		}
		return algoAlphaBeta, fmt.Sprintf("move %d, narrow branching (%d actions), alpha-beta", m, numActions)
	case e <= 8:
		return algoPNSearch, fmt.Sprintf("%d empty cells left, attempting to solve outright", e)
	case fillRatio > 0.7 || e < 12:
		return algoAlphaBeta, fmt.Sprintf("endgame (%.0f%% full, %d empty), alpha-beta", fillRatio*100, e)
	default:
		return algoMTDf, "deep midgame, iterative-deepening MTD(f)"
	}
}

// instance returns the long-lived algorithm instance for key.
func (as *AutoSolver) instance(key algoKey) Algorithm {
	switch key {
	case algoMinimax:
		return as.minimax
	case algoAlphaBeta:
		return as.alphabeta
	case algoMTDf:
		return as.mtdf
	case algoNegamax:
		return as.negamax
	case algoMCTS:
		return as.mcts
	case algoPNSearch:
		return as.pnsearch
	default:
		return as.mtdf
	}
}

// classicPNBudget and fastPNBudget are the expansion budgets Proof-Number
// Search gets handed under each profile: fast trades proof depth for a
// quicker answer.
const (
	classicPNBudget = 50_000
	fastPNBudget    = 30_000
)

// configureLimits pushes AutoSolver's current Limits down to whichever
// instance is about to be used: MaxDepth is first narrowed by
// effectiveDepth for the rules that call for a shallower search, then a
// per-algorithm timeout is looked up from the active profile's depth->time
// table and applied as MaxTime. MCTS and PN-Search count their budget
// through MaxNodes instead of MaxDepth; PN-Search's budget also varies by
// profile per the dispatch table.
func (as *AutoSolver) configureLimits(key algoKey) {
	l := as.limits
	l.MaxDepth = effectiveDepth(key, as.profile, l.MaxDepth)

	timeouts := classicTimeouts
	if as.profile == ProfileFast {
		timeouts = fastTimeouts
	}
	if l.MaxDepth > 0 {
		l.MaxTime = timeoutForDepth(timeouts, l.MaxDepth)
	}

	switch key {
	case algoMinimax:
		as.minimax.SetLimits(l)
	case algoAlphaBeta:
		as.alphabeta.SetLimits(l)
	case algoMTDf:
		as.mtdf.SetLimits(l)
	case algoNegamax:
		as.negamax.SetLimits(l)
	case algoMCTS:
		as.mcts.SetLimits(l)
	case algoPNSearch:
		budget := classicPNBudget
		if as.profile == ProfileFast {
			budget = fastPNBudget
		}
		l.MaxNodes = budget
		as.pnsearch.SetLimits(l)
	}
}

// cellTally scans state's board, clipped to g's declared dimensions, and
// reports how many cells are occupied against the total cell count.
func cellTally(state game.State, g game.Game) (filled, total int) {
	rows, cols := g.Rows(), g.Cols()
	total = rows * cols
	for r := 0; r < len(state.Board) && r < rows; r++ {
		for c := 0; c < len(state.Board[r]) && c < cols; c++ {
			if state.Board[r][c] != 0 {
				filled++
			}
		}
	}
	return filled, total
}

// boardFillRatio reports the fraction of board cells currently occupied,
// one of the phase signals the classic dispatch table falls back on once
// the move-number table runs out of entries.
func boardFillRatio(state game.State, g game.Game) float64 {
	filled, total := cellTally(state, g)
	if total == 0 {
		return 0
	}
	return float64(filled) / float64(total)
}

// emptyCells reports how many board cells remain unfilled, the phase
// signal both profiles' dispatch tables key their endgame rules on.
func emptyCells(state game.State, g game.Game) int {
	filled, total := cellTally(state, g)
	return total - filled
}

// LastAlgorithm reports the algoKey of the most recent dispatch decision,
// or the empty string if ChooseBestMove has never been called.
func (as *AutoSolver) LastAlgorithm() string {
	if len(as.history) == 0 {
		return ""
	}
	return as.history[len(as.history)-1].Algorithm
}

// LastReason reports the reason string behind the most recent dispatch
// decision, or the empty string if ChooseBestMove has never been called.
func (as *AutoSolver) LastReason() string {
	if len(as.history) == 0 {
		return ""
	}
	return as.history[len(as.history)-1].Reason
}

// History returns every Record accumulated so far, oldest first. The
// returned slice aliases AutoSolver's internal storage and must not be
// mutated by the caller.
func (as *AutoSolver) History() []Record {
	return as.history
}
