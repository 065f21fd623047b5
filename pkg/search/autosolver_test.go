package search_test

import (
	"testing"

	"github.com/kasparovbot/zugzwang/pkg/game"
	"github.com/kasparovbot/zugzwang/pkg/games/connect4"
	"github.com/kasparovbot/zugzwang/pkg/games/tictactoe"
	"github.com/kasparovbot/zugzwang/pkg/search"
)

func TestAutoSolverPlaysTicTacToeToCompletion(t *testing.T) {
	g := tictactoe.New()
	as, err := search.NewAutoSolver(g, search.ProfileClassic, 9)
	if err != nil {
		t.Fatalf("NewAutoSolver: %v", err)
	}

	state := g.InitialState()
	moves := 0
	const maxMoves = 9
	for !g.IsTerminal(state) && moves < maxMoves {
		next, err := as.ChooseBestMove(state)
		if err != nil {
			t.Fatalf("ChooseBestMove at move %d: %v", moves, err)
		}
		if next == nil {
			t.Fatalf("ChooseBestMove returned nil on a non-terminal state at move %d", moves)
		}
		state = *next
		moves++
	}

	if !g.IsTerminal(state) {
		t.Fatalf("game did not reach a terminal state within %d moves", maxMoves)
	}
	if len(as.History()) != moves {
		t.Errorf("len(History()) = %d, want %d", len(as.History()), moves)
	}
	if as.LastAlgorithm() == "" {
		t.Error("LastAlgorithm() is empty after at least one move")
	}
	if as.LastReason() == "" {
		t.Error("LastReason() is empty after at least one move")
	}
}

func TestAutoSolverFastProfilePlaysConnectFourToCompletion(t *testing.T) {
	g := connect4.New()
	as, err := search.NewAutoSolver(g, search.ProfileFast, 5)
	if err != nil {
		t.Fatalf("NewAutoSolver: %v", err)
	}
	as.SetLimits(search.Limits{MaxDepth: 5})

	state := g.InitialState()
	moves := 0
	const maxMoves = 42
	for !g.IsTerminal(state) && moves < maxMoves {
		next, err := as.ChooseBestMove(state)
		if err != nil {
			t.Fatalf("ChooseBestMove at move %d: %v", moves, err)
		}
		if next == nil {
			t.Fatalf("ChooseBestMove returned nil on a non-terminal state at move %d", moves)
		}
		state = *next
		moves++
	}

	if !g.IsTerminal(state) && moves != maxMoves {
		t.Fatalf("game loop exited with neither a terminal state nor the move cap reached")
	}
	if len(as.History()) != moves {
		t.Errorf("len(History()) = %d, want %d", len(as.History()), moves)
	}
}

func TestAutoSolverDispatchesToPNSearchNearNarrowPositions(t *testing.T) {
	g := tictactoe.New()
	as, err := search.NewAutoSolver(g, search.ProfileClassic, 9)
	if err != nil {
		t.Fatalf("NewAutoSolver: %v", err)
	}

	// The classic move-number table only falls back to the empty-cells
	// rule once the game has run past its first sixteen plies, so drive
	// the move counter there by repeatedly revisiting the same narrow,
	// solvable position before checking what it dispatches to.
	const movesPastTable = 17
	var move *game.State
	for i := 0; i < movesPastTable; i++ {
		move, err = as.ChooseBestMove(provenWinState())
		if err != nil {
			t.Fatalf("ChooseBestMove at call %d: %v", i, err)
		}
		if move == nil {
			t.Fatalf("ChooseBestMove returned nil on a solvable position at call %d", i)
		}
	}
	if as.LastAlgorithm() != "pnsearch" {
		t.Errorf("LastAlgorithm() = %q, want %q for a position with few remaining actions", as.LastAlgorithm(), "pnsearch")
	}
}

func TestAutoSolverFastProfileOpensConnectFourInTheCenterColumn(t *testing.T) {
	g := connect4.New()
	as, err := search.NewAutoSolver(g, search.ProfileFast, 5)
	if err != nil {
		t.Fatalf("NewAutoSolver: %v", err)
	}

	next, err := as.ChooseBestMove(g.InitialState())
	if err != nil {
		t.Fatalf("ChooseBestMove: %v", err)
	}
	if next == nil {
		t.Fatal("ChooseBestMove returned nil on the opening position")
	}
	if as.LastAlgorithm() != "mtdf" {
		t.Errorf("LastAlgorithm() = %q, want %q for an empty board under the fast profile", as.LastAlgorithm(), "mtdf")
	}
	if next.Board[5][3] == 0 {
		t.Errorf("opening move did not land in the center column: %v", next.Board)
	}
}

func TestNewAutoSolverRejectsUnknownProfile(t *testing.T) {
	g := tictactoe.New()
	if _, err := search.NewAutoSolver(g, search.Profile("bogus"), 9); err == nil {
		t.Error("NewAutoSolver with an unknown profile succeeded, want an error")
	}
}

func TestNewAutoSolverRejectsNonPositiveDepth(t *testing.T) {
	g := tictactoe.New()
	if _, err := search.NewAutoSolver(g, search.ProfileClassic, 0); err == nil {
		t.Error("NewAutoSolver(maxDepth=0) succeeded, want an error")
	}
}
