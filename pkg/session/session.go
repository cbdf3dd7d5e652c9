package session

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrNoImage is returned when an operation needs a current image and the
// history is empty.
var ErrNoImage = errors.New("no image loaded")

// BusyError is returned when the same operation is submitted while an
// earlier call is still outstanding.
type BusyError struct {
	Op string
}

func (e BusyError) Error() string {
	return fmt.Sprintf("operation %q is already in progress", e.Op)
}

// Session owns the edit history and the transient adjustments for one
// editing actor. Every cursor move resets the adjustments to the baseline;
// that reset is part of the commit/undo/redo contract, not a side effect
// callers have to remember.
//
// Tool requests may arrive concurrently, so the session is internally
// locked even though the logical model is a single actor.
type Session struct {
	mu          sync.Mutex
	history     *History
	adjustments Adjustments
	busy        map[string]bool
}

// New creates an empty session with baseline adjustments.
func New() *Session {
	return &Session{
		history:     NewHistory(),
		adjustments: Baseline(),
		busy:        make(map[string]bool),
	}
}

// Commit appends a new image state, discarding any redo entries, and resets
// the adjustments.
func (s *Session) Commit(state ImageState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history.Commit(state)
	s.adjustments = Baseline()
}

// Replace discards the whole history and starts a fresh one rooted at the
// given state. Used when the gallery seeds a new editing sequence.
func (s *Session) Replace(state ImageState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = NewHistory()
	s.history.Commit(state)
	s.adjustments = Baseline()
}

// Undo moves the cursor back and resets adjustments. The bool reports
// whether the cursor actually moved; at the boundary this is a silent no-op
// (adjustments are still reset).
func (s *Session) Undo() (ImageState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	moved := s.history.Undo()
	s.adjustments = Baseline()
	state, _ := s.history.Current()
	return state, moved
}

// Redo moves the cursor forward and resets adjustments.
func (s *Session) Redo() (ImageState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	moved := s.history.Redo()
	s.adjustments = Baseline()
	state, _ := s.history.Current()
	return state, moved
}

// ResetToRoot moves the cursor to the first committed state, keeping later
// states reachable through Redo, and resets adjustments.
func (s *Session) ResetToRoot() (ImageState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ok := s.history.ResetToRoot()
	s.adjustments = Baseline()
	state, _ := s.history.Current()
	return state, ok
}

// Current returns the committed state at the cursor.
func (s *Session) Current() (ImageState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Current()
}

// Adjustments returns a copy of the current slider values.
func (s *Session) Adjustments() Adjustments {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.adjustments
}

// SetAdjustments replaces the slider values wholesale, clamping them into
// range, and returns the values actually stored. History is untouched.
func (s *Session) SetAdjustments(a Adjustments) Adjustments {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.adjustments = a.Clamped()
	return s.adjustments
}

// ResetAdjustments puts every slider back at its baseline.
func (s *Session) ResetAdjustments() Adjustments {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.adjustments = Baseline()
	return s.adjustments
}

// CanUndo reports whether Undo would move the cursor.
func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanUndo()
}

// CanRedo reports whether Redo would move the cursor.
func (s *Session) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanRedo()
}

// HistoryLen returns the number of committed states.
func (s *Session) HistoryLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Len()
}

// Cursor returns the history cursor index, -1 when empty.
func (s *Session) Cursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Cursor()
}

// Begin marks an operation as in flight. It fails with BusyError when the
// same operation is already outstanding; other operations are unaffected.
func (s *Session) Begin(op string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy[op] {
		return BusyError{Op: op}
	}
	s.busy[op] = true
	return nil
}

// End clears the in-flight flag for an operation.
func (s *Session) End(op string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.busy, op)
}

// BusyOps returns the names of operations currently in flight, sorted.
func (s *Session) BusyOps() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ops := make([]string, 0, len(s.busy))
	for op := range s.busy {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	return ops
}
