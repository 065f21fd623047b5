package search_test

import (
	"testing"

	"github.com/kasparovbot/zugzwang/pkg/game"
	"github.com/kasparovbot/zugzwang/pkg/games/tictactoe"
	"github.com/kasparovbot/zugzwang/pkg/search"
)

func TestMCTSIsDeterministicForAFixedSeed(t *testing.T) {
	g := tictactoe.New()
	state := g.InitialState()

	a, err := search.NewMCTS(g, 200, 42)
	if err != nil {
		t.Fatalf("NewMCTS: %v", err)
	}
	b, err := search.NewMCTS(g, 200, 42)
	if err != nil {
		t.Fatalf("NewMCTS: %v", err)
	}

	moveA, err := a.ChooseBestMove(state)
	if err != nil {
		t.Fatalf("a.ChooseBestMove: %v", err)
	}
	moveB, err := b.ChooseBestMove(state)
	if err != nil {
		t.Fatalf("b.ChooseBestMove: %v", err)
	}

	if moveA == nil || moveB == nil {
		t.Fatal("ChooseBestMove returned nil from the opening")
	}
	if !moveA.Board.Equal(moveB.Board) {
		t.Errorf("two fresh MCTS instances with the same seed disagreed: %v vs %v", moveA.Board, moveB.Board)
	}
}

func TestMCTSCompletesWithDifferentSeeds(t *testing.T) {
	g := tictactoe.New()
	state := g.InitialState()

	a, _ := search.NewMCTS(g, 50, 1)
	b, _ := search.NewMCTS(g, 50, 2)

	moveA, err := a.ChooseBestMove(state)
	if err != nil {
		t.Fatalf("a.ChooseBestMove: %v", err)
	}
	moveB, err := b.ChooseBestMove(state)
	if err != nil {
		t.Fatalf("b.ChooseBestMove: %v", err)
	}

	// Not asserting disagreement (both could legitimately land on the same
	// reasonable opening move); this only documents that ChooseBestMove
	// completes normally with two different seeds.
	_ = moveA
	_ = moveB
}

func TestMCTSTerminalStateHasNoMove(t *testing.T) {
	g := tictactoe.New()
	mc, err := search.NewMCTS(g, 100, 7)
	if err != nil {
		t.Fatalf("NewMCTS: %v", err)
	}

	terminal := game.State{
		Board: ticTacToeBoard([3][3]int8{
			{1, 1, 1},
			{2, 2, 0},
			{0, 0, 0},
		}),
		ToMove: game.MIN,
	}
	move, err := mc.ChooseBestMove(terminal)
	if err != nil {
		t.Fatalf("ChooseBestMove: %v", err)
	}
	if move != nil {
		t.Errorf("ChooseBestMove(terminal) = %v, want nil", move)
	}
}

func TestNewMCTSRejectsNonPositiveIterations(t *testing.T) {
	g := tictactoe.New()
	if _, err := search.NewMCTS(g, 0, 1); err == nil {
		t.Error("NewMCTS(iterations=0) succeeded, want an error")
	}
}
