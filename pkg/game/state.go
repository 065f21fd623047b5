package game

// Action is an opaque, game-specific value a Game can apply to a State.
// Connect-4 uses an int column index, Tic-Tac-Toe and Reversi a [2]int
// (row, col) pair. Action values must be comparable so they can be stored
// in killer-move lists and compared for move ordering.
type Action any

// passAction is the distinguished null action representing a legal pass.
// Games that never pass simply never return it from PossibleActions.
type passAction struct{}

// Pass is the singleton action representing "no move available to make,
// but the game is not terminal". A Game reports a pass as legal by
// returning a PossibleActions slice containing only Pass.
var Pass Action = passAction{}

// IsPass reports whether an action is the distinguished pass action.
func IsPass(a Action) bool {
	_, ok := a.(passAction)
	return ok
}

// Board is a game-defined grid of cell values. Cell values are small
// integers; by convention 0 is an empty cell and 1/2 identify the two
// players' pieces, but a Game is free to use other values as long as
// Zobrist hashing only
// ever sees the values the Game declares meaningful.
type Board [][]int8

// Clone returns a deep copy of the board. apply must never mutate the
// board of the state it is given; every transition allocates fresh rows.
func (b Board) Clone() Board {
	clone := make(Board, len(b))
	for r, row := range b {
		clone[r] = make([]int8, len(row))
		copy(clone[r], row)
	}
	return clone
}

// Rows and Cols report the board's dimensions.
func (b Board) Rows() int { return len(b) }
func (b Board) Cols() int {
	if len(b) == 0 {
		return 0
	}
	return len(b[0])
}

// Equal reports whether two boards have identical cell values.
func (b Board) Equal(other Board) bool {
	if len(b) != len(other) {
		return false
	}
	for r := range b {
		if len(b[r]) != len(other[r]) {
			return false
		}
		for c := range b[r] {
			if b[r][c] != other[r][c] {
				return false
			}
		}
	}
	return true
}

// State is a value-typed position: a board, the player to move, and an
// optional back-reference to the parent state used to reconstruct the
// move that produced it. States never embed the Game that produced them —
// callers thread the Game alongside the State through the search stack
// instead.
type State struct {
	Board  Board
	ToMove Player

	// Parent is an optional, non-owning back-reference used only for move
	// reconstruction/debugging. The search algorithms never rely on it.
	Parent *State

	// LastAction is the action that produced this state from Parent, or
	// nil for the initial state.
	LastAction Action
}

// Successor builds the child state produced by applying action to cloned
// board contents supplied by the caller. Concrete games use this helper
// from their Apply method so that Apply never mutates its input: the
// board passed in must already be a fresh clone the caller is free to
// mutate before handing it off.
func Successor(parent State, next Board, toMove Player, action Action) State {
	p := parent
	return State{
		Board:      next,
		ToMove:     toMove,
		Parent:     &p,
		LastAction: action,
	}
}
