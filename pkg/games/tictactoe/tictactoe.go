// Package tictactoe implements 3x3 Tic-Tac-Toe as a game.Game, the
// smallest of the engine's three example collaborators and the one used
// most heavily in the search package's own tests since its game tree is
// small enough to search exhaustively in milliseconds.
package tictactoe

import "github.com/kasparovbot/zugzwang/pkg/game"

const size = 3

// lines enumerates the eight ways to win: three rows, three columns, and
// two diagonals, each as a triple of (row, col) cells.
var lines = [8][3][2]int{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// Game plays Tic-Tac-Toe with MAX as X (cell value 1) and MIN as O (cell
// value 2).
type Game struct{}

var _ game.Game = Game{}

// New returns a Tic-Tac-Toe game.
func New() Game { return Game{} }

func (Game) InitialState() game.State {
	board := make(game.Board, size)
	for r := range board {
		board[r] = make([]int8, size)
	}
	return game.State{Board: board, ToMove: game.MAX}
}

func (Game) MaxStarts() bool { return true }
func (Game) Rows() int       { return size }
func (Game) Cols() int       { return size }

func mark(p game.Player) int8 {
	if p == game.MAX {
		return 1
	}
	return 2
}

func (g Game) PossibleActions(s game.State) []game.Action {
	if g.IsTerminal(s) {
		return nil
	}
	var actions []game.Action
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			if s.Board[r][c] == 0 {
				actions = append(actions, [2]int{r, c})
			}
		}
	}
	return actions
}

func (Game) Apply(s game.State, a game.Action) game.State {
	pos := a.([2]int)
	next := s.Board.Clone()
	next[pos[0]][pos[1]] = mark(s.ToMove)
	return game.Successor(s, next, s.ToMove.Other(), a)
}

func (g Game) IsTerminal(s game.State) bool {
	if g.Winner(s) != game.NoPlayer {
		return true
	}
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			if s.Board[r][c] == 0 {
				return false
			}
		}
	}
	return true
}

// Winner reports whose marks complete one of the eight lines, or
// game.NoPlayer if nobody has.
func (Game) Winner(s game.State) game.Player {
	for _, line := range lines {
		a := s.Board[line[0][0]][line[0][1]]
		b := s.Board[line[1][0]][line[1][1]]
		c := s.Board[line[2][0]][line[2][1]]
		if a == 0 || a != b || b != c {
			continue
		}
		if a == 1 {
			return game.MAX
		}
		return game.MIN
	}
	return game.NoPlayer
}

func (g Game) Utility(s game.State) int {
	switch g.Winner(s) {
	case game.MAX:
		return game.WinUtility
	case game.MIN:
		return game.LossUtility
	default:
		return game.DrawUtility
	}
}

// Heuristic scores open lines: a line only one player has marked
// contributes the square of however many marks that player has placed in
// it (positive for MAX, negative for MIN), so two-in-a-row threats
// dominate scattered single marks.
func (Game) Heuristic(s game.State) int {
	score := 0
	for _, line := range lines {
		var maxMarks, minMarks int
		for _, cell := range line {
			switch s.Board[cell[0]][cell[1]] {
			case 1:
				maxMarks++
			case 2:
				minMarks++
			}
		}
		switch {
		case minMarks == 0 && maxMarks > 0:
			score += maxMarks * maxMarks
		case maxMarks == 0 && minMarks > 0:
			score -= minMarks * minMarks
		}
	}
	return score * 100
}
