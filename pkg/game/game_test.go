package game_test

import (
	"testing"

	"github.com/kasparovbot/zugzwang/pkg/game"
)

func TestBoardCloneIsIndependent(t *testing.T) {
	original := game.Board{{1, 0}, {0, 2}}
	clone := original.Clone()
	clone[0][0] = 9

	if original[0][0] != 1 {
		t.Fatalf("mutating a clone changed the original: got %d, want 1", original[0][0])
	}
	if !original.Equal(game.Board{{1, 0}, {0, 2}}) {
		t.Fatalf("original board changed unexpectedly: %v", original)
	}
}

func TestBoardEqual(t *testing.T) {
	a := game.Board{{1, 2}, {0, 0}}
	b := game.Board{{1, 2}, {0, 0}}
	c := game.Board{{1, 2}, {0, 1}}

	if !a.Equal(b) {
		t.Error("identical boards reported unequal")
	}
	if a.Equal(c) {
		t.Error("different boards reported equal")
	}
}

func TestBoardDimensions(t *testing.T) {
	b := game.Board{{0, 0, 0}, {0, 0, 0}}
	if got := b.Rows(); got != 2 {
		t.Errorf("Rows() = %d, want 2", got)
	}
	if got := b.Cols(); got != 3 {
		t.Errorf("Cols() = %d, want 3", got)
	}
}

func TestPlayerOther(t *testing.T) {
	if game.MAX.Other() != game.MIN {
		t.Error("MAX.Other() != MIN")
	}
	if game.MIN.Other() != game.MAX {
		t.Error("MIN.Other() != MAX")
	}
	if game.NoPlayer.Other() != game.NoPlayer {
		t.Error("NoPlayer.Other() != NoPlayer")
	}
}

func TestPlayerSign(t *testing.T) {
	if game.MAX.Sign() != 1 {
		t.Errorf("MAX.Sign() = %d, want 1", game.MAX.Sign())
	}
	if game.MIN.Sign() != -1 {
		t.Errorf("MIN.Sign() = %d, want -1", game.MIN.Sign())
	}
}

func TestIsPass(t *testing.T) {
	if !game.IsPass(game.Pass) {
		t.Error("IsPass(Pass) = false, want true")
	}
	if game.IsPass([2]int{0, 0}) {
		t.Error("IsPass(non-pass action) = true, want false")
	}
}

func TestSuccessorRecordsParentAndAction(t *testing.T) {
	parent := game.State{Board: game.Board{{0}}, ToMove: game.MAX}
	action := [2]int{0, 0}
	child := game.Successor(parent, game.Board{{1}}, game.MIN, action)

	if child.ToMove != game.MIN {
		t.Errorf("child.ToMove = %v, want MIN", child.ToMove)
	}
	if child.LastAction != game.Action(action) {
		t.Errorf("child.LastAction = %v, want %v", child.LastAction, action)
	}
	if child.Parent == nil || !child.Parent.Board.Equal(parent.Board) {
		t.Error("child.Parent does not reference the parent's board")
	}
}
