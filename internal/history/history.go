package history

import "github.com/example/scrawl/internal/board"

// History is the undo/redo stack: a list of full board snapshots and a
// cursor into it. Snapshots copy the element slice but share Points
// backing arrays, which is safe because store operations never mutate an
// element in place. The view transform is deliberately not recorded here.
type History struct {
	snapshots [][]board.Element
	cursor    int
}

// Option modifies a History during creation.
type Option func(*History)

// WithElements seeds the initial snapshot, for boards loaded from disk.
func WithElements(elems []board.Element) Option {
	return func(h *History) { h.snapshots[0] = snapshot(elems) }
}

// New creates a History holding a single initial snapshot.
func New(opts ...Option) *History {
	h := &History{snapshots: make([][]board.Element, 1)}
	for _, o := range opts {
		o(h)
	}
	return h
}

// Current returns the snapshot under the cursor. Callers must treat it as
// read-only.
func (h *History) Current() []board.Element {
	return h.snapshots[h.cursor]
}

// Commit records elems as the new present state. Any redo entries beyond
// the cursor are discarded.
func (h *History) Commit(elems []board.Element) {
	h.snapshots = append(h.snapshots[:h.cursor+1], snapshot(elems))
	h.cursor = len(h.snapshots) - 1
}

// Undo steps the cursor back one snapshot. It reports whether anything
// changed.
func (h *History) Undo() bool {
	if h.cursor == 0 {
		return false
	}
	h.cursor--
	return true
}

// Redo steps the cursor forward one snapshot.
func (h *History) Redo() bool {
	if h.cursor >= len(h.snapshots)-1 {
		return false
	}
	h.cursor++
	return true
}

func (h *History) CanUndo() bool {
	return h.cursor > 0
}

func (h *History) CanRedo() bool {
	return h.cursor < len(h.snapshots)-1
}

// Len returns how many snapshots are recorded.
func (h *History) Len() int {
	return len(h.snapshots)
}

func snapshot(elems []board.Element) []board.Element {
	if len(elems) == 0 {
		return nil
	}
	out := make([]board.Element, len(elems))
	copy(out, elems)
	return out
}
