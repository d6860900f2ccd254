package geom

const (
	MinScale   = 0.1
	MaxScale   = 5.0
	ZoomFactor = 0.001
)

// View is the affine map from world to screen space:
// screen = world*Scale + (X, Y). It is never part of undo history.
type View struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Scale float64 `json:"scale"`
}

func NewView() View {
	return View{Scale: 1}
}

func (v View) ToScreen(p Point) Point {
	return Point{X: p.X*v.Scale + v.X, Y: p.Y*v.Scale + v.Y}
}

func (v View) ToWorld(p Point) Point {
	return Point{X: (p.X - v.X) / v.Scale, Y: (p.Y - v.Y) / v.Scale}
}

// Pan returns the view shifted by a screen-space delta.
func (v View) Pan(dx, dy float64) View {
	v.X += dx
	v.Y += dy
	return v
}

// ZoomAt scales the view by 1+delta*ZoomFactor, clamped to
// [MinScale, MaxScale], keeping the world point under the screen-space
// anchor fixed.
func (v View) ZoomAt(anchor Point, delta float64) View {
	scale := v.Scale * (1 + delta*ZoomFactor)
	if scale < MinScale {
		scale = MinScale
	}
	if scale > MaxScale {
		scale = MaxScale
	}
	world := v.ToWorld(anchor)
	return View{
		X:     anchor.X - world.X*scale,
		Y:     anchor.Y - world.Y*scale,
		Scale: scale,
	}
}

// WorldRect returns the world-space rectangle visible in a viewport of the
// given pixel size.
func (v View) WorldRect(width, height float64) Rect {
	tl := v.ToWorld(Point{})
	br := v.ToWorld(Point{X: width, Y: height})
	return RectFromPoints(tl, br)
}
