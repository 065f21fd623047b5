// Package reversi implements 8x8 Reversi (Othello) as a game.Game. Unlike
// Tic-Tac-Toe and Connect Four, a side with no legal move must pass
// (game.Pass) rather than the game ending, and Apply must flip every
// opponent disc trapped by the placed piece.
package reversi

import "github.com/kasparovbot/zugzwang/pkg/game"

const size = 8

// directions enumerates all eight compass directions a flip can run in.
var directions = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// cornerWeight biases Heuristic toward the stable corner squares, the one
// piece of domain knowledge every serious Reversi evaluation function
// leans on beyond raw disc count.
var cornerWeight = [8][8]int{}

func init() {
	for _, rc := range [4][2]int{{0, 0}, {0, size - 1}, {size - 1, 0}, {size - 1, size - 1}} {
		cornerWeight[rc[0]][rc[1]] = 25
	}
}

// Game plays Reversi with MAX as the value-1 (black) disc and MIN as the
// value-2 (white) disc.
type Game struct{}

var _ game.Game = Game{}

// New returns a Reversi game, set up with the standard four-disc opening
// position.
func New() Game { return Game{} }

func (Game) InitialState() game.State {
	board := make(game.Board, size)
	for r := range board {
		board[r] = make([]int8, size)
	}
	mid := size / 2
	board[mid-1][mid-1] = 2
	board[mid][mid] = 2
	board[mid-1][mid] = 1
	board[mid][mid-1] = 1
	return game.State{Board: board, ToMove: game.MAX}
}

func (Game) MaxStarts() bool { return true }
func (Game) Rows() int       { return size }
func (Game) Cols() int       { return size }

func disc(p game.Player) int8 {
	if p == game.MAX {
		return 1
	}
	return 2
}

func opponentDisc(p game.Player) int8 { return disc(p.Other()) }

func inBounds(r, c int) bool { return r >= 0 && r < size && c >= 0 && c < size }

// flipsFrom returns every opponent cell that placing mover's disc at
// (r, c) would trap and flip, across all eight directions.
func flipsFrom(board game.Board, r, c int, mover game.Player) [][2]int {
	if board[r][c] != 0 {
		return nil
	}
	own, opp := disc(mover), opponentDisc(mover)

	var flips [][2]int
	for _, d := range directions {
		var line [][2]int
		cr, cc := r+d[0], c+d[1]
		for inBounds(cr, cc) && board[cr][cc] == opp {
			line = append(line, [2]int{cr, cc})
			cr, cc = cr+d[0], cc+d[1]
		}
		if len(line) > 0 && inBounds(cr, cc) && board[cr][cc] == own {
			flips = append(flips, line...)
		}
	}
	return flips
}

func legalMoves(board game.Board, mover game.Player) [][2]int {
	var moves [][2]int
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			if len(flipsFrom(board, r, c, mover)) > 0 {
				moves = append(moves, [2]int{r, c})
			}
		}
	}
	return moves
}

func (g Game) PossibleActions(s game.State) []game.Action {
	if g.IsTerminal(s) {
		return nil
	}
	moves := legalMoves(s.Board, s.ToMove)
	if len(moves) == 0 {
		return []game.Action{game.Pass}
	}
	actions := make([]game.Action, len(moves))
	for i, m := range moves {
		actions[i] = [2]int(m)
	}
	return actions
}

func (Game) Apply(s game.State, a game.Action) game.State {
	if game.IsPass(a) {
		return game.Successor(s, s.Board.Clone(), s.ToMove.Other(), a)
	}

	pos := a.([2]int)
	next := s.Board.Clone()
	flips := flipsFrom(next, pos[0], pos[1], s.ToMove)
	next[pos[0]][pos[1]] = disc(s.ToMove)
	for _, f := range flips {
		next[f[0]][f[1]] = disc(s.ToMove)
	}
	return game.Successor(s, next, s.ToMove.Other(), a)
}

// IsTerminal reports whether the board is full or neither player has a
// legal move (a double pass).
func (Game) IsTerminal(s game.State) bool {
	if len(legalMoves(s.Board, game.MAX)) > 0 || len(legalMoves(s.Board, game.MIN)) > 0 {
		return false
	}
	return true
}

func discCounts(board game.Board) (maxCount, minCount int) {
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			switch board[r][c] {
			case 1:
				maxCount++
			case 2:
				minCount++
			}
		}
	}
	return
}

// Winner reports whoever holds more discs once the game is over, or
// game.NoPlayer on an even split.
func (Game) Winner(s game.State) game.Player {
	maxCount, minCount := discCounts(s.Board)
	switch {
	case maxCount > minCount:
		return game.MAX
	case minCount > maxCount:
		return game.MIN
	default:
		return game.NoPlayer
	}
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

// Heuristic combines raw disc differential with a corner-control bonus,
// since in Reversi more discs now is frequently worse than holding the
// stable corner squares.
func (Game) Heuristic(s game.State) int {
	maxCount, minCount := discCounts(s.Board)
	score := (maxCount - minCount) * 10

	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			switch s.Board[r][c] {
			case 1:
				score += cornerWeight[r][c]
			case 2:
				score -= cornerWeight[r][c]
			}
		}
	}
	return score
}
