// Package search implements adversarial game-tree search: Minimax,
// Alpha-Beta with a transposition table, MTD(f) with iterative
// deepening, Negamax with quiescence, Monte-Carlo simulation, and
// Proof-Number Search, plus an AutoSolver that dispatches among them
// based on game-phase heuristics.
//
// Every algorithm implements the same Algorithm capability: given a
// State, choose a move for the side to move and return the resulting
// successor State, or nil if the root has no legal actions or is already
// terminal. The engine is single-threaded and synchronous; algorithms
// self-check a wall-clock deadline rather than being cancelled
// asynchronously.
package search

import (
	"math"

	"github.com/kasparovbot/zugzwang/pkg/game"
)

// Inf is a search-window sentinel strictly larger in magnitude than any
// terminal utility (game.WinUtility) or heuristic (game.MaxHeuristic),
// used to seed alpha-beta windows and "no best move yet" accumulators.
const Inf = math.MaxInt32 / 2

// Algorithm is the capability every search algorithm and the AutoSolver
// implement: choose a move from state, returning the resulting successor
// state. A nil state with a nil error means the root has no legal move
// (including because it is already terminal); this is normal control
// flow, not an error.
type Algorithm interface {
	ChooseBestMove(state game.State) (*game.State, error)
}
