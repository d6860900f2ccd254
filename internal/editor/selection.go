package editor

import (
	"sort"

	"github.com/example/scrawl/internal/board"
)

// Select updates the selection for a click on id. Additive toggles
// membership. A plain click keeps an existing selection that already
// contains id, so a drag can start on a multi-selection without
// collapsing it; otherwise the selection becomes just id.
func (ed *Editor) Select(id string, additive bool) {
	if additive {
		if ed.selection[id] {
			delete(ed.selection, id)
		} else {
			ed.selection[id] = true
		}
		ed.emit(EventSelection)
		return
	}
	if ed.selection[id] {
		return
	}
	ed.selection = map[string]bool{id: true}
	ed.emit(EventSelection)
}

// SelectExclusive makes id the only selected element.
func (ed *Editor) SelectExclusive(id string) {
	if len(ed.selection) == 1 && ed.selection[id] {
		return
	}
	ed.selection = map[string]bool{id: true}
	ed.emit(EventSelection)
}

// ClearSelection empties the selection.
func (ed *Editor) ClearSelection() {
	if len(ed.selection) == 0 {
		return
	}
	ed.selection = make(map[string]bool)
	ed.emit(EventSelection)
}

// Selected returns the selected ids in sorted order.
func (ed *Editor) Selected() []string {
	ids := make([]string, 0, len(ed.selection))
	for id := range ed.selection {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (ed *Editor) IsSelected(id string) bool {
	return ed.selection[id]
}

// pruneSelection drops ids that no longer exist, after an undo or redo
// removed their elements.
func (ed *Editor) pruneSelection() bool {
	changed := false
	for id := range ed.selection {
		if _, ok := board.ByID(ed.elems, id); !ok {
			delete(ed.selection, id)
			changed = true
		}
	}
	return changed
}
