package editor

import (
	"sort"
	"unicode"

	"golang.org/x/mobile/event/key"

	"github.com/example/scrawl/internal/board"
)

// Shortcut is one key chord. Letter entries use the lowercase rune,
// special keys use the Code. ModControl stands for both Ctrl and Cmd;
// Meta is folded into Control before lookup.
type Shortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// Register adds a named action and its shortcuts. The UI registers its
// file and export actions here next to the built-in ones, so the context
// menu, palette and keyboard all go through the same table.
func (ed *Editor) Register(name string, keys []Shortcut, fn func()) {
	ed.actions[name] = fn
	for _, s := range keys {
		ed.shortcuts[s] = name
	}
}

// Actions returns all registered action names, for the command palette.
func (ed *Editor) Actions() []string {
	names := make([]string, 0, len(ed.actions))
	for name := range ed.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Do runs a named action. Supplying a target id outside the current
// selection retargets the selection to that element first; a target that
// does not exist makes the whole call a no-op.
func (ed *Editor) Do(name, target string) {
	if ed.cur != nil {
		return
	}
	if target != "" {
		if _, ok := board.ByID(ed.elems, target); !ok {
			return
		}
		if !ed.selection[target] {
			ed.SelectExclusive(target)
		}
	}
	if fn, ok := ed.actions[name]; ok {
		fn()
	}
}

func (ed *Editor) registerCoreActions() {
	ctrl := key.Modifiers(key.ModControl)
	ed.Register("delete", []Shortcut{{Code: key.CodeDeleteForward}, {Code: key.CodeDeleteBackspace}}, ed.Delete)
	ed.Register("duplicate", []Shortcut{{Rune: 'd', Modifiers: ctrl}}, ed.Duplicate)
	ed.Register("front", nil, ed.BringToFront)
	ed.Register("back", nil, ed.SendToBack)
	ed.Register("copy", []Shortcut{{Rune: 'c', Modifiers: ctrl}}, ed.Copy)
	ed.Register("paste", []Shortcut{{Rune: 'v', Modifiers: ctrl}}, ed.Paste)
	ed.Register("undo", []Shortcut{{Rune: 'z', Modifiers: ctrl}}, ed.Undo)
	ed.Register("redo", []Shortcut{
		{Rune: 'y', Modifiers: ctrl},
		{Rune: 'z', Modifiers: ctrl | key.ModShift},
	}, ed.Redo)
	ed.Register("summarize", nil, ed.Summarize)
	ed.Register("screenshot", nil, ed.Screenshot)
	ed.Register("palette", []Shortcut{{Rune: 'k', Modifiers: ctrl}}, ed.TogglePalette)
	for _, e := range []Edge{EdgeLeft, EdgeCenter, EdgeRight, EdgeTop, EdgeMiddle, EdgeBottom} {
		edge := e
		ed.Register("align-"+string(edge), nil, func() { ed.Align(edge) })
	}
}

var toolKeys = map[rune]Tool{
	'v': ToolSelect,
	'p': ToolPen,
	'h': ToolHighlighter,
	't': ToolText,
	's': ToolSticky,
	'r': ToolRect,
	'c': ToolCircle,
	'l': ToolLine,
	'a': ToolArrow,
}

// KeyDown handles a key press and reports whether it was consumed.
// While a text edit is active only Escape is handled here; everything
// else belongs to the text widget.
func (ed *Editor) KeyDown(e key.Event) bool {
	if e.Direction == key.DirRelease {
		return false
	}
	if ed.editing != "" {
		if e.Code == key.CodeEscape {
			ed.EndTextEdit()
			return true
		}
		return false
	}
	mods := e.Modifiers
	if mods&key.ModMeta != 0 {
		mods = mods&^key.ModMeta | key.ModControl
	}
	if e.Rune > 0 {
		if name, ok := ed.shortcuts[Shortcut{Rune: unicode.ToLower(e.Rune), Modifiers: mods}]; ok {
			ed.Do(name, "")
			return true
		}
	}
	if name, ok := ed.shortcuts[Shortcut{Code: e.Code, Modifiers: mods}]; ok {
		ed.Do(name, "")
		return true
	}
	if mods == 0 && e.Rune > 0 {
		if t, ok := toolKeys[unicode.ToLower(e.Rune)]; ok {
			ed.SetTool(t)
			return true
		}
	}
	return false
}

// ContextMenu returns the context menu overlay state.
func (ed *Editor) ContextMenu() Menu {
	return ed.menu
}

// CloseMenu hides the context menu.
func (ed *Editor) CloseMenu() {
	if !ed.menu.Open {
		return
	}
	ed.menu = Menu{}
	ed.emit(EventOverlay)
}

func (ed *Editor) PaletteOpen() bool {
	return ed.paletteOpen
}

// TogglePalette shows or hides the color palette overlay.
func (ed *Editor) TogglePalette() {
	ed.paletteOpen = !ed.paletteOpen
	ed.emit(EventOverlay)
}

// Delete removes the selection as one undoable step.
func (ed *Editor) Delete() {
	ids := ed.Selected()
	if len(ids) == 0 {
		return
	}
	ed.elems = board.Remove(ed.elems, ids...)
	ed.ClearSelection()
	ed.commit()
}

// Duplicate copies the selection and selects exactly the fresh copies.
func (ed *Editor) Duplicate() {
	ids := ed.Selected()
	if len(ids) == 0 {
		return
	}
	out, fresh := board.Duplicate(ed.elems, ids...)
	ed.elems = out
	ed.selection = make(map[string]bool, len(fresh))
	for _, id := range fresh {
		ed.selection[id] = true
	}
	ed.emit(EventSelection)
	ed.commit()
}

// BringToFront raises the selection above everything else.
func (ed *Editor) BringToFront() {
	ids := ed.Selected()
	if len(ids) == 0 {
		return
	}
	ed.elems = board.BringToFront(ed.elems, ids...)
	ed.commit()
}

// SendToBack lowers the selection below everything else.
func (ed *Editor) SendToBack() {
	ids := ed.Selected()
	if len(ids) == 0 {
		return
	}
	ed.elems = board.SendToBack(ed.elems, ids...)
	ed.commit()
}
