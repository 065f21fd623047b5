package search_test

import (
	"testing"

	"github.com/kasparovbot/zugzwang/pkg/game"
	"github.com/kasparovbot/zugzwang/pkg/games/tictactoe"
	"github.com/kasparovbot/zugzwang/pkg/search"
)

func TestAlphaBetaAgreesWithMinimaxOnImmediateWin(t *testing.T) {
	g := tictactoe.New()
	ab, err := search.NewAlphaBeta(g, 9)
	if err != nil {
		t.Fatalf("NewAlphaBeta: %v", err)
	}

	move, err := ab.ChooseBestMove(immediateWinState())
	if err != nil {
		t.Fatalf("ChooseBestMove: %v", err)
	}
	if move == nil || move.Board[0][2] != 1 || g.Winner(*move) != game.MAX {
		t.Errorf("alpha-beta did not take the immediate win: %v", move)
	}
}

func TestAlphaBetaAgreesWithMinimaxOnForcedBlock(t *testing.T) {
	g := tictactoe.New()
	ab, err := search.NewAlphaBeta(g, 9)
	if err != nil {
		t.Fatalf("NewAlphaBeta: %v", err)
	}

	move, err := ab.ChooseBestMove(forcedBlockState())
	if err != nil {
		t.Fatalf("ChooseBestMove: %v", err)
	}
	if move == nil || move.Board[2][2] != 1 {
		t.Errorf("alpha-beta did not block the forced loss: %v", move)
	}
}

func TestAlphaBetaReusesTranspositionTableAcrossCalls(t *testing.T) {
	g := tictactoe.New()
	ab, err := search.NewAlphaBeta(g, 9)
	if err != nil {
		t.Fatalf("NewAlphaBeta: %v", err)
	}

	state := g.InitialState()
	if _, err := ab.ChooseBestMove(state); err != nil {
		t.Fatalf("first ChooseBestMove: %v", err)
	}
	firstStats := ab.Stats()

	if _, err := ab.ChooseBestMove(state); err != nil {
		t.Fatalf("second ChooseBestMove: %v", err)
	}
	secondStats := ab.Stats()

	if secondStats["nodes_explored"].(int) >= firstStats["nodes_explored"].(int) {
		t.Errorf("re-searching the same opening did not benefit from the warm transposition table: first=%v second=%v",
			firstStats["nodes_explored"], secondStats["nodes_explored"])
	}
}

func TestAlphaBetaTerminalStateHasNoMove(t *testing.T) {
	g := tictactoe.New()
	ab, _ := search.NewAlphaBeta(g, 9)

	terminal := game.State{
		Board: ticTacToeBoard([3][3]int8{
			{1, 1, 1},
			{2, 2, 0},
			{0, 0, 0},
		}),
		ToMove: game.MIN,
	}
	move, err := ab.ChooseBestMove(terminal)
	if err != nil {
		t.Fatalf("ChooseBestMove: %v", err)
	}
	if move != nil {
		t.Errorf("ChooseBestMove(terminal) = %v, want nil", move)
	}
}
