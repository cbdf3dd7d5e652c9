package session

import "testing"

func state(id string) ImageState {
	return ImageState{ID: id, Path: "/img/" + id + ".png"}
}

func TestNewHistory(t *testing.T) {
	h := NewHistory()

	if h.Len() != 0 {
		t.Errorf("Len() = %d, want 0", h.Len())
	}
	if h.Cursor() != -1 {
		t.Errorf("Cursor() = %d, want -1", h.Cursor())
	}
	if _, ok := h.Current(); ok {
		t.Error("Current() on empty history should report false")
	}
	if h.CanUndo() || h.CanRedo() {
		t.Error("empty history should allow neither undo nor redo")
	}
}

func TestHistory_Commit(t *testing.T) {
	h := NewHistory()

	h.Commit(state("a"))
	h.Commit(state("b"))

	if h.Len() != 2 {
		t.Errorf("Len() = %d, want 2", h.Len())
	}
	if h.Cursor() != 1 {
		t.Errorf("Cursor() = %d, want 1", h.Cursor())
	}
	cur, ok := h.Current()
	if !ok || cur.ID != "b" {
		t.Errorf("Current() = %v, want b", cur.ID)
	}
}

func TestHistory_UndoRedoInverse(t *testing.T) {
	h := NewHistory()
	h.Commit(state("a"))
	h.Commit(state("b"))

	before, _ := h.Current()

	if !h.Undo() {
		t.Fatal("Undo should succeed")
	}
	if !h.Redo() {
		t.Fatal("Redo should succeed")
	}

	after, _ := h.Current()
	if after.ID != before.ID {
		t.Errorf("undo+redo changed current from %s to %s", before.ID, after.ID)
	}
}

func TestHistory_BoundaryNoOps(t *testing.T) {
	h := NewHistory()
	h.Commit(state("a"))

	if h.Undo() {
		t.Error("Undo at cursor 0 should be a no-op")
	}
	if h.Redo() {
		t.Error("Redo at last index should be a no-op")
	}
	if h.Cursor() != 0 {
		t.Errorf("Cursor() = %d, want 0", h.Cursor())
	}

	// Empty history: no-ops too
	empty := NewHistory()
	if empty.Undo() || empty.Redo() {
		t.Error("undo/redo on empty history should be no-ops")
	}
}

func TestHistory_CommitTruncatesForwardEntries(t *testing.T) {
	h := NewHistory()
	h.Commit(state("a"))
	h.Commit(state("b"))
	h.Commit(state("c"))

	h.Undo()
	h.Undo()
	// cursor back at "a"; committing discards "b" and "c"
	h.Commit(state("d"))

	if h.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", h.Len())
	}
	cur, _ := h.Current()
	if cur.ID != "d" {
		t.Errorf("Current() = %s, want d", cur.ID)
	}
	// The old redo targets are gone
	if h.Redo() {
		t.Error("Redo after truncating commit should be a no-op")
	}
}

func TestHistory_ResetToRoot(t *testing.T) {
	h := NewHistory()
	h.Commit(state("a"))
	h.Commit(state("b"))
	h.Commit(state("c"))

	if !h.ResetToRoot() {
		t.Fatal("ResetToRoot should succeed")
	}
	cur, _ := h.Current()
	if cur.ID != "a" {
		t.Errorf("Current() = %s, want a", cur.ID)
	}
	// Later states survive and remain reachable
	if h.Len() != 3 {
		t.Errorf("Len() = %d, want 3", h.Len())
	}
	if !h.Redo() {
		t.Error("Redo after ResetToRoot should move forward")
	}
	cur, _ = h.Current()
	if cur.ID != "b" {
		t.Errorf("Current() after redo = %s, want b", cur.ID)
	}
}

func TestHistory_ResetToRootEmpty(t *testing.T) {
	h := NewHistory()
	if h.ResetToRoot() {
		t.Error("ResetToRoot on empty history should return false")
	}
}
