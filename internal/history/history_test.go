package history

import (
	"testing"

	"github.com/example/scrawl/internal/board"
)

func el(id string, x float64) board.Element {
	return board.Element{ID: id, Type: board.TypeRect, X: x, Width: 50, Height: 50}
}

func TestNewStartsEmpty(t *testing.T) {
	h := New()
	if len(h.Current()) != 0 {
		t.Fatalf("Expected empty initial snapshot, got %d elements", len(h.Current()))
	}
	if h.CanUndo() {
		t.Error("Expected CanUndo false on fresh history")
	}
	if h.CanRedo() {
		t.Error("Expected CanRedo false on fresh history")
	}
	if h.Undo() {
		t.Error("Expected Undo to report false at the initial snapshot")
	}
}

func TestWithElements(t *testing.T) {
	h := New(WithElements([]board.Element{el("a", 0), el("b", 10)}))
	if len(h.Current()) != 2 {
		t.Fatalf("Expected seeded snapshot with 2 elements, got %d", len(h.Current()))
	}
	if h.CanUndo() {
		t.Error("Expected seeded snapshot to be the undo floor")
	}
}

func TestCommitUndoRedo(t *testing.T) {
	h := New()
	one := []board.Element{el("a", 0)}
	two := []board.Element{el("a", 0), el("b", 10)}
	h.Commit(one)
	h.Commit(two)

	if len(h.Current()) != 2 {
		t.Fatalf("Expected 2 elements, got %d", len(h.Current()))
	}
	if !h.Undo() {
		t.Fatal("Expected Undo to succeed")
	}
	if len(h.Current()) != 1 {
		t.Fatalf("Expected 1 element after undo, got %d", len(h.Current()))
	}
	if !h.Redo() {
		t.Fatal("Expected Redo to succeed")
	}
	if len(h.Current()) != 2 {
		t.Fatalf("Expected 2 elements after redo, got %d", len(h.Current()))
	}
	if h.Redo() {
		t.Error("Expected Redo at the tip to report false")
	}
}

func TestUndoToInitial(t *testing.T) {
	h := New()
	for i := 0; i < 3; i++ {
		h.Commit([]board.Element{el("a", float64(i))})
	}
	for h.Undo() {
	}
	if len(h.Current()) != 0 {
		t.Fatalf("Expected empty board at the undo floor, got %d elements", len(h.Current()))
	}
	if h.CanUndo() {
		t.Error("Expected CanUndo false at the floor")
	}
}

func TestCommitAfterUndoDropsRedo(t *testing.T) {
	h := New()
	h.Commit([]board.Element{el("a", 0)})
	h.Commit([]board.Element{el("a", 0), el("b", 10)})
	h.Undo()

	h.Commit([]board.Element{el("a", 0), el("c", 20)})
	if h.CanRedo() {
		t.Error("Expected redo branch discarded after commit")
	}
	if h.Len() != 3 {
		t.Errorf("Expected 3 snapshots, got %d", h.Len())
	}
	cur := h.Current()
	if len(cur) != 2 || cur[1].ID != "c" {
		t.Errorf("Expected the new branch as current, got %+v", cur)
	}
}

func TestSnapshotsDetachedFromCaller(t *testing.T) {
	h := New()
	working := []board.Element{el("a", 0)}
	h.Commit(working)

	working[0].X = 999
	if h.Current()[0].X != 0 {
		t.Fatal("Expected committed snapshot to be unaffected by later caller writes")
	}
}
