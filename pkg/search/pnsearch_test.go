package search_test

import (
	"testing"

	"github.com/kasparovbot/zugzwang/pkg/game"
	"github.com/kasparovbot/zugzwang/pkg/games/tictactoe"
	"github.com/kasparovbot/zugzwang/pkg/search"
)

// provenWinState is X to move with an immediate win available among few
// enough remaining cells that Proof-Number Search can resolve it within a
// tiny expansion budget.
func provenWinState() game.State {
	return game.State{
		Board: ticTacToeBoard([3][3]int8{
			{1, 1, 0},
			{2, 2, 0},
			{0, 0, 0},
		}),
		ToMove: game.MAX,
	}
}

func TestPNSearchFindsAProvenWin(t *testing.T) {
	g := tictactoe.New()
	pn, err := search.NewPNSearch(g, 200, false)
	if err != nil {
		t.Fatalf("NewPNSearch: %v", err)
	}

	move, err := pn.ChooseBestMove(provenWinState())
	if err != nil {
		t.Fatalf("ChooseBestMove: %v", err)
	}
	if move == nil {
		t.Fatal("ChooseBestMove returned nil on a solvable position")
	}
	if move.Board[0][2] != 1 || g.Winner(*move) != game.MAX {
		t.Errorf("did not find the proven win: %v", move.Board)
	}
}

func TestPNSearchWithTranspositionTableAgrees(t *testing.T) {
	g := tictactoe.New()
	pn, err := search.NewPNSearch(g, 200, true)
	if err != nil {
		t.Fatalf("NewPNSearch: %v", err)
	}

	move, err := pn.ChooseBestMove(provenWinState())
	if err != nil {
		t.Fatalf("ChooseBestMove: %v", err)
	}
	if move == nil || move.Board[0][2] != 1 {
		t.Errorf("TT-enabled PN-Search did not find the proven win: %v", move)
	}
}

func TestPNSearchTerminalStateHasNoMove(t *testing.T) {
	g := tictactoe.New()
	pn, _ := search.NewPNSearch(g, 200, false)

	terminal := game.State{
		Board: ticTacToeBoard([3][3]int8{
			{1, 1, 1},
			{2, 2, 0},
			{0, 0, 0},
		}),
		ToMove: game.MIN,
	}
	move, err := pn.ChooseBestMove(terminal)
	if err != nil {
		t.Fatalf("ChooseBestMove: %v", err)
	}
	if move != nil {
		t.Errorf("ChooseBestMove(terminal) = %v, want nil", move)
	}
}

func TestNewPNSearchRejectsNonPositiveBudget(t *testing.T) {
	g := tictactoe.New()
	if _, err := search.NewPNSearch(g, 0, false); err == nil {
		t.Error("NewPNSearch(maxExpansions=0) succeeded, want an error")
	}
}
