package session

import "time"

// ImageState is a committed image artifact in the edit history. The pixel
// data lives on disk; the state itself is immutable once created.
type ImageState struct {
	ID        string // storage ID
	Path      string // path to the encoded image file
	Origin    string // upload, ai_edit, enhance or gallery
	CreatedAt time.Time
}

// History is an ordered sequence of committed image states with a movable
// cursor. Committing while the cursor is not at the end discards every entry
// after it before appending.
type History struct {
	states []ImageState
	cursor int // -1 when empty
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{
		states: make([]ImageState, 0),
		cursor: -1,
	}
}

// Commit truncates the sequence to [0..cursor], appends the state and moves
// the cursor to it.
func (h *History) Commit(state ImageState) {
	if h.cursor < len(h.states)-1 {
		h.states = h.states[:h.cursor+1]
	}
	h.states = append(h.states, state)
	h.cursor = len(h.states) - 1
}

// Undo moves the cursor one step back. Returns false (and leaves the cursor
// alone) when already at the first state or empty.
func (h *History) Undo() bool {
	if !h.CanUndo() {
		return false
	}
	h.cursor--
	return true
}

// Redo moves the cursor one step forward. Returns false when there is no
// later state.
func (h *History) Redo() bool {
	if !h.CanRedo() {
		return false
	}
	h.cursor++
	return true
}

// ResetToRoot moves the cursor back to the first committed state. Later
// states stay in the sequence and remain reachable through Redo. Returns
// false when the history is empty.
func (h *History) ResetToRoot() bool {
	if len(h.states) == 0 {
		return false
	}
	h.cursor = 0
	return true
}

// Current returns the state at the cursor. The second return value is false
// when the history is empty.
func (h *History) Current() (ImageState, bool) {
	if h.cursor < 0 || h.cursor >= len(h.states) {
		return ImageState{}, false
	}
	return h.states[h.cursor], true
}

// CanUndo returns true if there is an earlier state to move to.
func (h *History) CanUndo() bool {
	return h.cursor > 0
}

// CanRedo returns true if there is a later state to move to.
func (h *History) CanRedo() bool {
	return h.cursor < len(h.states)-1
}

// Len returns the number of committed states.
func (h *History) Len() int {
	return len(h.states)
}

// Cursor returns the current cursor index, -1 when empty.
func (h *History) Cursor() int {
	return h.cursor
}
