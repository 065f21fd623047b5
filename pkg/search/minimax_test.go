package search_test

import (
	"testing"

	"github.com/kasparovbot/zugzwang/pkg/game"
	"github.com/kasparovbot/zugzwang/pkg/games/tictactoe"
	"github.com/kasparovbot/zugzwang/pkg/search"
)

func TestMinimaxTerminalStateHasNoMove(t *testing.T) {
	g := tictactoe.New()
	algo, err := search.NewMinimax(g, 9)
	if err != nil {
		t.Fatalf("NewMinimax: %v", err)
	}

	terminal := game.State{
		Board: ticTacToeBoard([3][3]int8{
			{1, 1, 1},
			{2, 2, 0},
			{0, 0, 0},
		}),
		ToMove: game.MIN,
	}

	move, err := algo.ChooseBestMove(terminal)
	if err != nil {
		t.Fatalf("ChooseBestMove: %v", err)
	}
	if move != nil {
		t.Errorf("ChooseBestMove(terminal) = %v, want nil", move)
	}
}

func TestMinimaxTakesImmediateWin(t *testing.T) {
	g := tictactoe.New()
	algo, err := search.NewMinimax(g, 9)
	if err != nil {
		t.Fatalf("NewMinimax: %v", err)
	}

	move, err := algo.ChooseBestMove(immediateWinState())
	if err != nil {
		t.Fatalf("ChooseBestMove: %v", err)
	}
	if move == nil {
		t.Fatal("ChooseBestMove returned nil on a non-terminal state")
	}
	if move.Board[0][2] != 1 || !g.IsTerminal(*move) || g.Winner(*move) != game.MAX {
		t.Errorf("did not take the immediate win: %v", move.Board)
	}
}

func TestMinimaxBlocksForcedLoss(t *testing.T) {
	g := tictactoe.New()
	algo, err := search.NewMinimax(g, 9)
	if err != nil {
		t.Fatalf("NewMinimax: %v", err)
	}

	move, err := algo.ChooseBestMove(forcedBlockState())
	if err != nil {
		t.Fatalf("ChooseBestMove: %v", err)
	}
	if move == nil || move.Board[2][2] != 1 {
		t.Errorf("did not block the forced loss: %v", move)
	}
}

func TestNewMinimaxRejectsNonPositiveDepth(t *testing.T) {
	g := tictactoe.New()
	if _, err := search.NewMinimax(g, 0); err == nil {
		t.Error("NewMinimax(depth=0) succeeded, want an error")
	}
}

func TestMinimaxNodesExploredIsPositive(t *testing.T) {
	g := tictactoe.New()
	algo, _ := search.NewMinimax(g, 9)

	if _, err := algo.ChooseBestMove(g.InitialState()); err != nil {
		t.Fatalf("ChooseBestMove: %v", err)
	}
	if algo.NodesExplored() == 0 {
		t.Error("NodesExplored() = 0 after a full search from the opening")
	}
}
