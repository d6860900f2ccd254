package editor

import (
	"context"
	"log"

	"github.com/example/scrawl/internal/board"
	"github.com/example/scrawl/internal/geom"
	"github.com/example/scrawl/internal/history"
)

// Tool is the active toolbar mode. The select tool manipulates existing
// elements; every other tool creates elements of the matching type.
type Tool string

const (
	ToolSelect      Tool = "select"
	ToolPen         Tool = "pen"
	ToolHighlighter Tool = "highlighter"
	ToolText        Tool = "text"
	ToolSticky      Tool = "sticky"
	ToolRect        Tool = "rect"
	ToolCircle      Tool = "circle"
	ToolTriangle    Tool = "triangle"
	ToolRhombus     Tool = "rhombus"
	ToolArrow       Tool = "arrow"
	ToolLine        Tool = "line"
	ToolCylinder    Tool = "cylinder"
)

func (t Tool) drawing() bool {
	return t == ToolPen || t == ToolHighlighter
}

func (t Tool) elementType() board.Type {
	return board.Type(t)
}

// Event says which part of the editor changed, for repaint scheduling.
type Event int

const (
	EventBoard Event = iota
	EventSelection
	EventView
	EventTool
	EventOverlay
)

// Listener receives editor change events.
type Listener func(Event)

// Clipboard is the system clipboard as the editor sees it. ReadImage
// returns PNG bytes.
type Clipboard interface {
	ReadImage() ([]byte, error)
	WriteImage(data []byte) error
	ReadText() (string, error)
	WriteText(text string) error
}

// Summarizer turns the board's text content into prose.
type Summarizer interface {
	Summarize(ctx context.Context, texts []string) (string, error)
}

// Notifier surfaces editor outcomes to the user. Failures of external
// collaborators land in Error; the board state itself is never touched by
// a failure.
type Notifier interface {
	Saved(path string)
	Exported(path string)
	Copied(detail string)
	Summary(text string)
	Error(context string, err error)
}

// Menu is the context menu overlay state.
type Menu struct {
	Open   bool
	At     geom.Point
	Target string
}

// Editor is the canvas interaction engine: it owns the element working
// copy, the view transform, the selection, the undo history and the
// currently active gesture. All methods must be called from a single
// goroutine; asynchronous work is routed back through the post hook.
type Editor struct {
	hist  *history.History
	elems []board.Element
	view  geom.View

	viewportW float64
	viewportH float64

	tool      Tool
	selection map[string]bool
	cur       gesture

	lastScreen  geom.Point
	menu        Menu
	paletteOpen bool
	editing     string

	actions   map[string]func()
	shortcuts map[Shortcut]string

	clip    Clipboard
	summ    Summarizer
	notif   Notifier
	capture func() ([]byte, error)

	spawn func(func())
	post  func(func())

	listeners []Listener
}

// Option modifies an Editor during creation.
type Option func(*Editor)

// WithElements seeds the board; the seed becomes the undo floor.
func WithElements(elems []board.Element) Option {
	return func(ed *Editor) {
		ed.hist = history.New(history.WithElements(elems))
		ed.elems = board.ReplaceAll(elems)
	}
}

// WithView sets the initial pan/zoom.
func WithView(v geom.View) Option {
	return func(ed *Editor) {
		if v.Scale <= 0 {
			v.Scale = 1
		}
		ed.view = v
	}
}

// WithViewport sets the viewport pixel size used for single-element
// alignment and paste centering.
func WithViewport(width, height float64) Option {
	return func(ed *Editor) { ed.viewportW, ed.viewportH = width, height }
}

// WithTool sets the initially active tool.
func WithTool(t Tool) Option { return func(ed *Editor) { ed.tool = t } }

// WithClipboard wires the system clipboard.
func WithClipboard(c Clipboard) Option { return func(ed *Editor) { ed.clip = c } }

// WithSummarizer wires the AI summarizer.
func WithSummarizer(s Summarizer) Option { return func(ed *Editor) { ed.summ = s } }

// WithNotifier wires user notifications.
func WithNotifier(n Notifier) Option { return func(ed *Editor) { ed.notif = n } }

// WithCapture wires the screenshot source; it must return PNG bytes.
func WithCapture(fn func() ([]byte, error)) Option {
	return func(ed *Editor) { ed.capture = fn }
}

// WithAsync replaces the hooks used for clipboard, capture and summarizer
// calls: spawn runs a blocking task, post delivers its result back onto
// the editor's goroutine. Both default to direct calls, which keeps tests
// synchronous.
func WithAsync(spawn, post func(func())) Option {
	return func(ed *Editor) {
		if spawn != nil {
			ed.spawn = spawn
		}
		if post != nil {
			ed.post = post
		}
	}
}

// New creates an Editor with an empty board unless seeded via options.
func New(opts ...Option) *Editor {
	ed := &Editor{
		view:      geom.NewView(),
		viewportW: 1280,
		viewportH: 800,
		tool:      ToolSelect,
		selection: make(map[string]bool),
		actions:   make(map[string]func()),
		shortcuts: make(map[Shortcut]string),
	}
	ed.spawn = func(fn func()) { fn() }
	ed.post = func(fn func()) { fn() }
	for _, o := range opts {
		o(ed)
	}
	if ed.hist == nil {
		ed.hist = history.New()
	}
	ed.registerCoreActions()
	return ed
}

// On registers a change listener.
func (ed *Editor) On(fn Listener) {
	ed.listeners = append(ed.listeners, fn)
}

func (ed *Editor) emit(ev Event) {
	for _, fn := range ed.listeners {
		fn(ev)
	}
}

// Elements returns the current working copy. Callers must not mutate it.
func (ed *Editor) Elements() []board.Element {
	return ed.elems
}

func (ed *Editor) View() geom.View {
	return ed.view
}

func (ed *Editor) Tool() Tool {
	return ed.tool
}

// SetTool switches the active tool. Switching closes the overlays but
// leaves the selection alone.
func (ed *Editor) SetTool(t Tool) {
	if ed.tool == t {
		return
	}
	ed.tool = t
	ed.menu = Menu{}
	ed.paletteOpen = false
	ed.emit(EventTool)
}

// SetViewport tracks the window size.
func (ed *Editor) SetViewport(width, height float64) {
	ed.viewportW, ed.viewportH = width, height
}

func (ed *Editor) Viewport() (w, h float64) {
	return ed.viewportW, ed.viewportH
}

func (ed *Editor) CanUndo() bool { return ed.hist.CanUndo() }
func (ed *Editor) CanRedo() bool { return ed.hist.CanRedo() }

// Undo steps the board back one snapshot. The selection is pruned to the
// ids that still exist; the view is untouched. Ignored mid-gesture.
func (ed *Editor) Undo() {
	if ed.cur != nil || !ed.hist.Undo() {
		return
	}
	ed.restoreSnapshot()
}

// Redo steps the board forward one snapshot.
func (ed *Editor) Redo() {
	if ed.cur != nil || !ed.hist.Redo() {
		return
	}
	ed.restoreSnapshot()
}

func (ed *Editor) restoreSnapshot() {
	ed.elems = board.ReplaceAll(ed.hist.Current())
	if ed.pruneSelection() {
		ed.emit(EventSelection)
	}
	ed.emit(EventBoard)
}

// commit checkpoints the working copy as one undoable step.
func (ed *Editor) commit() {
	ed.hist.Commit(ed.elems)
	ed.emit(EventBoard)
}

// EditingID returns the element whose text is being edited, or "".
func (ed *Editor) EditingID() string {
	return ed.editing
}

// BeginTextEditAt starts editing the editable element under the screen
// point, if any.
func (ed *Editor) BeginTextEditAt(screen geom.Point) bool {
	id := ed.elementAt(ed.view.ToWorld(screen))
	if id == "" {
		return false
	}
	el, ok := board.ByID(ed.elems, id)
	if !ok || !el.Type.Editable() {
		return false
	}
	ed.BeginTextEdit(id)
	return true
}

// BeginTextEdit starts editing the given element's text. While an edit is
// active, single-letter shortcuts are disabled.
func (ed *Editor) BeginTextEdit(id string) {
	ed.editing = id
	ed.SelectExclusive(id)
	ed.emit(EventOverlay)
}

// EndTextEdit leaves text editing mode.
func (ed *Editor) EndTextEdit() {
	if ed.editing == "" {
		return
	}
	ed.editing = ""
	ed.emit(EventOverlay)
}

// SetContent replaces an element's text and commits, unless nothing
// changed. The text widget calls this once when an edit ends.
func (ed *Editor) SetContent(id, text string) {
	el, ok := board.ByID(ed.elems, id)
	if !ok || el.Content == text {
		return
	}
	ed.elems = board.Update(ed.elems, id, func(e *board.Element) {
		e.Content = text
	})
	ed.commit()
}

// ApplyColor sets the general color field on every selected element as
// one undoable step and closes the palette overlay.
func (ed *Editor) ApplyColor(color string) {
	ed.paletteOpen = false
	ed.emit(EventOverlay)
	ids := ed.Selected()
	if len(ids) == 0 {
		return
	}
	out := board.ReplaceAll(ed.elems)
	changed := false
	for i := range out {
		if ed.selection[out[i].ID] && out[i].Color != color {
			out[i].Color = color
			changed = true
		}
	}
	if !changed {
		return
	}
	ed.elems = out
	ed.commit()
}

func (ed *Editor) notifyError(what string, err error) {
	if ed.notif != nil {
		ed.notif.Error(what, err)
		return
	}
	log.Printf("%s: %v", what, err)
}
