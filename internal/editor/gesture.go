package editor

import (
	"math"

	"golang.org/x/mobile/event/key"

	"github.com/example/scrawl/internal/board"
	"github.com/example/scrawl/internal/geom"
)

// degenerateSpan marks a drag-to-create that never left the click: boxes
// smaller than this in both axes are discarded on release.
const degenerateSpan = 5

// gesture is the in-progress pointer interaction. At most one is active;
// nil means idle. Each variant carries only the state captured at its own
// pointer-down, so conflicting modes cannot coexist.
type gesture interface {
	move(ed *Editor, screen geom.Point, mods key.Modifiers)
	finish(ed *Editor, screen geom.Point)
}

// panGesture drags the viewport. It works purely in screen space: the
// offset is re-derived from the captured view and the total pointer
// delta, so replayed positions are harmless.
type panGesture struct {
	start geom.Point
	view  geom.View
}

func (g *panGesture) move(ed *Editor, screen geom.Point, _ key.Modifiers) {
	ed.view = g.view.Pan(screen.X-g.start.X, screen.Y-g.start.Y)
	ed.emit(EventView)
}

func (g *panGesture) finish(*Editor, geom.Point) {}

// drawGesture captures a freehand stroke. Points accumulate relative to
// the pointer-down position and the box only ever grows mid-stroke; the
// re-base onto the padded tight box happens once, on finish.
type drawGesture struct {
	id     string
	origin geom.Point
	points []geom.Point
}

func (g *drawGesture) move(ed *Editor, screen geom.Point, _ key.Modifiers) {
	p := ed.view.ToWorld(screen).Sub(g.origin)
	g.points = append(g.points, p)
	pts := g.points
	ed.elems = board.Update(ed.elems, g.id, func(el *board.Element) {
		el.Points = pts
		if p.X > el.Width {
			el.Width = p.X
		}
		if p.Y > el.Height {
			el.Height = p.Y
		}
	})
	ed.emit(EventBoard)
}

func (g *drawGesture) finish(ed *Editor, _ geom.Point) {
	box := geom.BoundingBox(g.points)
	rebased := make([]geom.Point, len(g.points))
	for i, p := range g.points {
		rebased[i] = geom.Point{
			X: p.X - box.X + board.StrokePadding,
			Y: p.Y - box.Y + board.StrokePadding,
		}
	}
	ed.elems = board.Update(ed.elems, g.id, func(el *board.Element) {
		el.X = g.origin.X + box.X - board.StrokePadding
		el.Y = g.origin.Y + box.Y - board.StrokePadding
		el.Width = box.Width + 2*board.StrokePadding
		el.Height = box.Height + 2*board.StrokePadding
		el.Points = rebased
	})
	ed.commit()
}

// createGesture sizes a new element between its fixed anchor and the
// pointer. Lines and arrows become fixed-height boxes rotated along the
// dragged segment, which lets them share resize and rotate handling with
// every other shape.
type createGesture struct {
	id     string
	anchor geom.Point
}

func (g *createGesture) move(ed *Editor, screen geom.Point, mods key.Modifiers) {
	world := ed.view.ToWorld(screen)
	ed.elems = board.Update(ed.elems, g.id, func(el *board.Element) {
		if el.Type == board.TypeLine || el.Type == board.TypeArrow {
			d := world.Sub(g.anchor)
			width := math.Max(board.MinSize, math.Hypot(d.X, d.Y))
			el.Width = width
			el.Height = board.MinSize
			el.X = (g.anchor.X+world.X)/2 - width/2
			el.Y = (g.anchor.Y+world.Y)/2 - board.MinSize/2
			el.Rotation = math.Atan2(d.Y, d.X) * 180 / math.Pi
			return
		}
		r := geom.RectFromPoints(g.anchor, world)
		if mods&key.ModShift != 0 {
			side := math.Max(r.Width, r.Height)
			r.Width, r.Height = side, side
		}
		el.X, el.Y, el.Width, el.Height = r.X, r.Y, r.Width, r.Height
	})
	ed.emit(EventBoard)
}

func (g *createGesture) finish(ed *Editor, _ geom.Point) {
	el, ok := board.ByID(ed.elems, g.id)
	if !ok {
		return
	}
	if el.Width < degenerateSpan && el.Height < degenerateSpan {
		ed.elems = board.Remove(ed.elems, g.id)
		ed.ClearSelection()
		ed.emit(EventBoard)
		return
	}
	ed.commit()
}

// dragGesture moves the selection by a single world-space delta measured
// from the pointer-down position, so every element moves by the same
// vector regardless of how many move events arrive.
type dragGesture struct {
	start   geom.Point
	origins map[string]geom.Point
	moved   bool
}

func (g *dragGesture) move(ed *Editor, screen geom.Point, _ key.Modifiers) {
	delta := ed.view.ToWorld(screen).Sub(g.start)
	if delta.X != 0 || delta.Y != 0 {
		g.moved = true
	}
	out := board.ReplaceAll(ed.elems)
	for i := range out {
		if o, ok := g.origins[out[i].ID]; ok {
			out[i].X = o.X + delta.X
			out[i].Y = o.Y + delta.Y
		}
	}
	ed.elems = out
	ed.emit(EventBoard)
}

func (g *dragGesture) finish(ed *Editor, _ geom.Point) {
	if !g.moved {
		return
	}
	ed.commit()
}

// resizeGesture resizes the single selected element from one of its
// eight handles.
type resizeGesture struct {
	id     string
	handle Handle
	start  geom.Point
	init   geom.Rect
}

func (g *resizeGesture) move(ed *Editor, screen geom.Point, _ key.Modifiers) {
	d := ed.view.ToWorld(screen).Sub(g.start)
	r := resizeRect(g.init, g.handle, d)
	ed.elems = board.Update(ed.elems, g.id, func(el *board.Element) {
		el.X, el.Y, el.Width, el.Height = r.X, r.Y, r.Width, r.Height
	})
	ed.emit(EventBoard)
}

func (g *resizeGesture) finish(ed *Editor, _ geom.Point) {
	ed.commit()
}

// rotateGesture spins the element about the center captured at the grab.
// The +90 offset makes the handle's resting position above the box read
// as zero rotation.
type rotateGesture struct {
	id     string
	center geom.Point
}

func (g *rotateGesture) move(ed *Editor, screen geom.Point, mods key.Modifiers) {
	world := ed.view.ToWorld(screen)
	angle := math.Atan2(world.Y-g.center.Y, world.X-g.center.X)*180/math.Pi + 90
	if mods&key.ModShift != 0 {
		angle = math.Round(angle/15) * 15
	}
	ed.elems = board.Update(ed.elems, g.id, func(el *board.Element) {
		el.Rotation = angle
	})
	ed.emit(EventBoard)
}

func (g *rotateGesture) finish(ed *Editor, _ geom.Point) {
	ed.commit()
}

// Handle identifies one of the eight resize grips, clockwise from the
// top-left corner.
type Handle int

const (
	HandleNW Handle = iota
	HandleN
	HandleNE
	HandleE
	HandleSE
	HandleS
	HandleSW
	HandleW
)

// resizeRect applies a drag delta to the captured box. East and west
// handles change the width (west also shifts x), north and south change
// the height, corners combine both. The 20-unit floor is applied per
// axis; when it binds on a w or n handle the position is clamped so the
// opposite edge stays fixed instead of the box flipping through zero.
func resizeRect(init geom.Rect, h Handle, d geom.Point) geom.Rect {
	r := init
	switch h {
	case HandleE, HandleNE, HandleSE:
		r.Width = init.Width + d.X
	case HandleW, HandleNW, HandleSW:
		r.X = init.X + d.X
		r.Width = init.Width - d.X
	}
	switch h {
	case HandleS, HandleSE, HandleSW:
		r.Height = init.Height + d.Y
	case HandleN, HandleNE, HandleNW:
		r.Y = init.Y + d.Y
		r.Height = init.Height - d.Y
	}
	if r.Width < board.MinSize {
		if h == HandleW || h == HandleNW || h == HandleSW {
			r.X = init.Right() - board.MinSize
		}
		r.Width = board.MinSize
	}
	if r.Height < board.MinSize {
		if h == HandleN || h == HandleNE || h == HandleNW {
			r.Y = init.Bottom() - board.MinSize
		}
		r.Height = board.MinSize
	}
	return r
}

// HandlePositions returns the screen-space centers of the eight resize
// grips, indexed by Handle, rotated with the element.
func HandlePositions(el board.Element, v geom.View) [8]geom.Point {
	b := el.Bounds()
	c := b.Center()
	corners := [8]geom.Point{
		{X: b.X, Y: b.Y},
		{X: c.X, Y: b.Y},
		{X: b.Right(), Y: b.Y},
		{X: b.Right(), Y: c.Y},
		{X: b.Right(), Y: b.Bottom()},
		{X: c.X, Y: b.Bottom()},
		{X: b.X, Y: b.Bottom()},
		{X: b.X, Y: c.Y},
	}
	var out [8]geom.Point
	for i, p := range corners {
		out[i] = v.ToScreen(geom.Rotate(p, c, el.Rotation))
	}
	return out
}

// RotateHandlePosition returns the screen-space center of the rotation
// grip, a fixed distance out from the box's top edge midpoint.
func RotateHandlePosition(el board.Element, v geom.View) geom.Point {
	c := v.ToScreen(el.Center())
	top := v.ToScreen(geom.Rotate(geom.Pt(el.X+el.Width/2, el.Y), el.Center(), el.Rotation))
	d := top.Sub(c)
	dist := math.Hypot(d.X, d.Y)
	if dist == 0 {
		return geom.Pt(top.X, top.Y-rotateHandleGap)
	}
	return top.Add(d.Scale(rotateHandleGap / dist))
}
