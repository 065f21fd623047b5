package search_test

import "github.com/kasparovbot/zugzwang/pkg/game"

// ticTacToeBoard turns a row-major literal (0 empty, 1 X, 2 O) into a
// game.Board, shared by every algorithm's test file in this package.
func ticTacToeBoard(rows [3][3]int8) game.Board {
	b := make(game.Board, 3)
	for r := range b {
		b[r] = make([]int8, 3)
		copy(b[r], rows[r][:])
	}
	return b
}

// immediateWinState is X to move with two in the top row and the
// completing cell open: the only move that doesn't throw away a forced
// win is (0, 2).
func immediateWinState() game.State {
	return game.State{
		Board: ticTacToeBoard([3][3]int8{
			{1, 1, 0},
			{2, 2, 0},
			{0, 0, 0},
		}),
		ToMove: game.MAX,
	}
}

// forcedBlockState is X to move with O two away from completing the
// bottom row: every move except (2, 2) loses immediately to O's reply.
func forcedBlockState() game.State {
	return game.State{
		Board: ticTacToeBoard([3][3]int8{
			{1, 0, 0},
			{0, 0, 0},
			{2, 2, 0},
		}),
		ToMove: game.MAX,
	}
}
