package game

// Sentinel magnitudes for utilities and heuristics: a signed integer
// score with terminal utilities at ±10^6 and heuristics bounded in
// [-10^5, 10^5]. Keeping terminal scores an order of magnitude above any
// heuristic guarantees a forced win or loss always outranks a
// merely-good-looking non-terminal position.
const (
	WinUtility  = 1_000_000
	LossUtility = -WinUtility
	DrawUtility = 0

	MaxHeuristic = 100_000
	MinHeuristic = -MaxHeuristic
)

// Game is the capability contract a concrete game implements. It is the
// only way the search algorithms learn about legality, terminal
// conditions, and position quality; none of them know anything about
// Tic-Tac-Toe, Connect-4, or Reversi specifically.
type Game interface {
	// InitialState returns the starting position.
	InitialState() State

	// PossibleActions returns the legal actions at state, in an order
	// meaningful to the engine: it is used as the default move-ordering
	// baseline before any algorithm-specific refinement. A singleton
	// slice containing Pass means the side to move must pass.
	PossibleActions(s State) []Action

	// Apply returns the state that results from playing action at s. It
	// never mutates s; s.Board is left untouched cell-for-cell.
	Apply(s State, a Action) State

	// IsTerminal reports whether the game is over at s.
	IsTerminal(s State) bool

	// Utility returns the terminal value of s from MAX's perspective. It
	// is only meaningful when IsTerminal(s) is true.
	Utility(s State) int

	// Heuristic returns a cheap, non-terminal evaluation of s from MAX's
	// perspective, bounded well inside [MinHeuristic, MaxHeuristic].
	Heuristic(s State) int

	// Winner reports who has won a terminal position, or NoPlayer for a
	// draw or a non-terminal state.
	Winner(s State) Player

	// MaxStarts reports whether MAX moves first from InitialState.
	MaxStarts() bool

	// Rows and Cols report board geometry, used for Zobrist table sizing
	// and the AutoSolver's fill-ratio phase heuristics.
	Rows() int
	Cols() int
}

// NoisyGame is an optional extension a Game may implement to mark some
// actions as tactically "noisy" (e.g. captures), extending quiescence
// search past the nominal horizon over those actions only. None of the
// three games in this module tag any action as noisy, so Negamax's
// quiescence search degenerates to a stand-pat return for them; the
// mechanism is kept so that a future Game which does have tactics can opt
// in without touching the search package.
type NoisyGame interface {
	Game

	// IsNoisy reports whether playing action at s is a tactical move that
	// should be considered during quiescence search at depth 0.
	IsNoisy(s State, a Action) bool
}
