package editor

import (
	"math"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/scrawl/internal/board"
	"github.com/example/scrawl/internal/geom"
)

const (
	handleSize      = 8
	rotateHandleGap = 24
)

// PointerDown routes a press into at most one new gesture. An open
// context menu or palette is closed first and the press still handled.
// The right button is reserved for the context menu and suppressed
// entirely while a drawing tool is active.
func (ed *Editor) PointerDown(screen geom.Point, btn mouse.Button, mods key.Modifiers) {
	ed.lastScreen = screen
	if ed.menu.Open {
		ed.menu = Menu{}
		ed.emit(EventOverlay)
	}
	if ed.paletteOpen {
		ed.paletteOpen = false
		ed.emit(EventOverlay)
	}

	if btn == mouse.ButtonRight {
		if !ed.tool.drawing() {
			ed.openMenu(screen)
		}
		return
	}
	if btn != mouse.ButtonLeft || ed.cur != nil {
		return
	}

	switch {
	case ed.tool.drawing():
		ed.startDraw(screen)
	case ed.tool == ToolSelect:
		ed.pointerDownSelect(screen, mods)
	default:
		ed.startCreate(screen)
	}
}

// PointerMove feeds the active gesture, if any.
func (ed *Editor) PointerMove(screen geom.Point, mods key.Modifiers) {
	ed.lastScreen = screen
	if ed.cur != nil {
		ed.cur.move(ed, screen, mods)
	}
}

// PointerUp finishes the active gesture.
func (ed *Editor) PointerUp(screen geom.Point) {
	ed.lastScreen = screen
	if ed.cur == nil {
		return
	}
	g := ed.cur
	ed.cur = nil
	g.finish(ed, screen)
}

// PointerLeave ends any gesture as if the pointer was released at its
// last known position.
func (ed *Editor) PointerLeave() {
	ed.PointerUp(ed.lastScreen)
}

// Wheel zooms about the pointer. Zooming is not a gesture and never
// undoable.
func (ed *Editor) Wheel(screen geom.Point, delta float64) {
	ed.view = ed.view.ZoomAt(screen, delta)
	ed.emit(EventView)
}

// Gesturing reports whether a gesture is in progress.
func (ed *Editor) Gesturing() bool {
	return ed.cur != nil
}

func (ed *Editor) pointerDownSelect(screen geom.Point, mods key.Modifiers) {
	if h, ok := ed.handleAt(screen); ok {
		ed.StartResize(screen, h)
		return
	}
	if ed.rotateHandleAt(screen) {
		ed.StartRotate(screen)
		return
	}
	world := ed.view.ToWorld(screen)
	if id := ed.elementAt(world); id != "" {
		ed.Select(id, mods&key.ModShift != 0)
		if ed.selection[id] {
			ed.startDrag(world)
		}
		return
	}
	if mods&key.ModShift == 0 {
		ed.ClearSelection()
	}
	ed.cur = &panGesture{start: screen, view: ed.view}
}

// StartResize begins resizing the single selected element by the given
// handle. Custom surfaces call this from their own handle hit tests.
func (ed *Editor) StartResize(screen geom.Point, h Handle) {
	if ed.cur != nil {
		return
	}
	id, ok := ed.singleSelection()
	if !ok {
		return
	}
	el, ok := board.ByID(ed.elems, id)
	if !ok {
		return
	}
	ed.lastScreen = screen
	ed.cur = &resizeGesture{
		id:     id,
		handle: h,
		start:  ed.view.ToWorld(screen),
		init:   el.Bounds(),
	}
}

// StartRotate begins rotating the single selected element.
func (ed *Editor) StartRotate(screen geom.Point) {
	if ed.cur != nil {
		return
	}
	id, ok := ed.singleSelection()
	if !ok {
		return
	}
	el, ok := board.ByID(ed.elems, id)
	if !ok {
		return
	}
	ed.lastScreen = screen
	ed.cur = &rotateGesture{id: id, center: el.Center()}
}

func (ed *Editor) startDraw(screen geom.Point) {
	world := ed.view.ToWorld(screen)
	el := board.Element{
		ID:     board.NewID(),
		Type:   ed.tool.elementType(),
		X:      world.X,
		Y:      world.Y,
		ZIndex: board.MaxZ(ed.elems) + 1,
		Points: []geom.Point{{}},
	}
	ed.elems = board.Insert(ed.elems, el)
	ed.cur = &drawGesture{id: el.ID, origin: world, points: []geom.Point{{}}}
	ed.emit(EventBoard)
}

func (ed *Editor) startCreate(screen geom.Point) {
	world := ed.view.ToWorld(screen)
	el := board.Element{
		ID:     board.NewID(),
		Type:   ed.tool.elementType(),
		X:      world.X,
		Y:      world.Y,
		ZIndex: board.MaxZ(ed.elems) + 1,
	}
	ed.elems = board.Insert(ed.elems, el)
	ed.SelectExclusive(el.ID)
	ed.cur = &createGesture{id: el.ID, anchor: world}
	ed.emit(EventBoard)
}

func (ed *Editor) startDrag(world geom.Point) {
	origins := make(map[string]geom.Point, len(ed.selection))
	for _, el := range ed.elems {
		if ed.selection[el.ID] {
			origins[el.ID] = geom.Pt(el.X, el.Y)
		}
	}
	ed.cur = &dragGesture{start: world, origins: origins}
}

func (ed *Editor) openMenu(screen geom.Point) {
	if ed.cur != nil {
		return
	}
	target := ed.elementAt(ed.view.ToWorld(screen))
	if target != "" && !ed.selection[target] {
		ed.SelectExclusive(target)
	}
	ed.menu = Menu{Open: true, At: screen, Target: target}
	ed.emit(EventOverlay)
}

// elementAt returns the topmost element under the world point. Rotated
// elements are tested by rotating the point back into box space.
func (ed *Editor) elementAt(world geom.Point) string {
	ordered := board.SortByZ(ed.elems)
	for i := len(ordered) - 1; i >= 0; i-- {
		el := ordered[i]
		p := world
		if el.Rotation != 0 {
			p = geom.Rotate(world, el.Center(), -el.Rotation)
		}
		if el.Bounds().Contains(p) {
			return el.ID
		}
	}
	return ""
}

func (ed *Editor) handleAt(screen geom.Point) (Handle, bool) {
	id, ok := ed.singleSelection()
	if !ok {
		return 0, false
	}
	el, ok := board.ByID(ed.elems, id)
	if !ok {
		return 0, false
	}
	for i, p := range HandlePositions(el, ed.view) {
		if math.Abs(screen.X-p.X) <= handleSize && math.Abs(screen.Y-p.Y) <= handleSize {
			return Handle(i), true
		}
	}
	return 0, false
}

func (ed *Editor) rotateHandleAt(screen geom.Point) bool {
	id, ok := ed.singleSelection()
	if !ok {
		return false
	}
	el, ok := board.ByID(ed.elems, id)
	if !ok {
		return false
	}
	return screen.Distance(RotateHandlePosition(el, ed.view)) <= handleSize
}

func (ed *Editor) singleSelection() (string, bool) {
	if len(ed.selection) != 1 {
		return "", false
	}
	for id := range ed.selection {
		return id, true
	}
	return "", false
}
