// Package connect4 implements the classic 6x7 Connect Four as a
// game.Game: actions are column indices, and a piece always falls to the
// lowest empty cell in its column.
package connect4

import "github.com/kasparovbot/zugzwang/pkg/game"

const (
	rows = 6
	cols = 7
	run  = 4
)

// directions enumerates the four axes a four-in-a-row can run along:
// horizontal, vertical, and the two diagonals.
var directions = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

// Game plays Connect Four with MAX dropping value-1 discs and MIN
// dropping value-2 discs.
type Game struct{}

var _ game.Game = Game{}

// New returns a Connect Four game.
func New() Game { return Game{} }

func (Game) InitialState() game.State {
	board := make(game.Board, rows)
	for r := range board {
		board[r] = make([]int8, cols)
	}
	return game.State{Board: board, ToMove: game.MAX}
}

func (Game) MaxStarts() bool { return true }
func (Game) Rows() int       { return rows }
func (Game) Cols() int       { return cols }

func disc(p game.Player) int8 {
	if p == game.MAX {
		return 1
	}
	return 2
}

// dropRow returns the row a disc dropped into column c would land on, or
// -1 if the column is full.
func dropRow(board game.Board, c int) int {
	for r := rows - 1; r >= 0; r-- {
		if board[r][c] == 0 {
			return r
		}
	}
	return -1
}

func (g Game) PossibleActions(s game.State) []game.Action {
	if g.IsTerminal(s) {
		return nil
	}
	var actions []game.Action
	for c := 0; c < cols; c++ {
		if dropRow(s.Board, c) >= 0 {
			actions = append(actions, c)
		}
	}
	return actions
}

func (Game) Apply(s game.State, a game.Action) game.State {
	c := a.(int)
	next := s.Board.Clone()
	r := dropRow(next, c)
	next[r][c] = disc(s.ToMove)
	return game.Successor(s, next, s.ToMove.Other(), a)
}

func (g Game) IsTerminal(s game.State) bool {
	if g.Winner(s) != game.NoPlayer {
		return true
	}
	for c := 0; c < cols; c++ {
		if s.Board[0][c] == 0 {
			return false
		}
	}
	return true
}

// Winner scans every cell as the start of a potential run in each of the
// four directions, reporting the first player found with four in a row.
func (Game) Winner(s game.State) game.Player {
	board := s.Board
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			v := board[r][c]
			if v == 0 {
				continue
			}
			for _, d := range directions {
				endR, endC := r+d[0]*(run-1), c+d[1]*(run-1)
				if endR < 0 || endR >= rows || endC < 0 || endC >= cols {
					continue
				}
				matched := true
				for k := 1; k < run; k++ {
					if board[r+d[0]*k][c+d[1]*k] != v {
						matched = false
						break
					}
				}
				if matched {
					if v == 1 {
						return game.MAX
					}
					return game.MIN
				}
			}
		}
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

// windowScore scores a 4-cell window by how many of each player's discs
// it holds, provided the other player hasn't already spoiled it.
func windowScore(counts [3]int) int {
	maxCount, minCount, empty := counts[1], counts[2], counts[0]
	if maxCount > 0 && minCount > 0 {
		return 0
	}
	switch {
	case maxCount == 4:
		return 0 // caught by Utility/IsTerminal already
	case maxCount == 3 && empty == 1:
		return 50
	case maxCount == 2 && empty == 2:
		return 10
	case minCount == 3 && empty == 1:
		return -50
	case minCount == 2 && empty == 2:
		return -10
	}
	return 0
}

// Heuristic sums windowScore over every 4-cell window on the board, the
// standard Connect Four evaluation shape.
func (Game) Heuristic(s game.State) int {
	board := s.Board
	score := 0
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			for _, d := range directions {
				endR, endC := r+d[0]*(run-1), c+d[1]*(run-1)
				if endR < 0 || endR >= rows || endC < 0 || endC >= cols {
					continue
				}
				var counts [3]int
				for k := 0; k < run; k++ {
					v := board[r+d[0]*k][c+d[1]*k]
					counts[v]++
				}
				score += windowScore(counts)
			}
		}
	}
	return score
}
