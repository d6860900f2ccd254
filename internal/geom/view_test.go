package geom

import (
	"math"
	"testing"
)

func TestViewRoundTrip(t *testing.T) {
	v := View{X: 120, Y: -45, Scale: 1.7}
	p := Pt(33.5, -210)
	got := v.ToWorld(v.ToScreen(p))
	if !near(got.X, p.X) || !near(got.Y, p.Y) {
		t.Fatalf("expected %+v, got %+v", p, got)
	}
}

func TestZoomAtKeepsAnchorFixed(t *testing.T) {
	v := View{X: 50, Y: 80, Scale: 1}
	anchor := Pt(400, 300)
	world := v.ToWorld(anchor)

	zoomed := v.ZoomAt(anchor, 500)
	back := zoomed.ToScreen(world)
	if !near(back.X, anchor.X) || !near(back.Y, anchor.Y) {
		t.Fatalf("expected anchor to stay at %+v, got %+v", anchor, back)
	}
}

func TestZoomAtScaleStep(t *testing.T) {
	v := NewView()
	zoomed := v.ZoomAt(Pt(0, 0), 100)
	if !near(zoomed.Scale, 1.1) {
		t.Fatalf("expected scale 1.1, got %v", zoomed.Scale)
	}
}

func TestZoomAtClampsScale(t *testing.T) {
	v := View{Scale: 4.9}
	for i := 0; i < 50; i++ {
		v = v.ZoomAt(Pt(100, 100), 1000)
	}
	if v.Scale != MaxScale {
		t.Fatalf("expected scale clamped to %v, got %v", MaxScale, v.Scale)
	}

	v = View{Scale: 0.12}
	for i := 0; i < 50; i++ {
		v = v.ZoomAt(Pt(100, 100), -1000)
	}
	if v.Scale != MinScale {
		t.Fatalf("expected scale clamped to %v, got %v", MinScale, v.Scale)
	}
}

func TestZoomAtClampedStillAnchored(t *testing.T) {
	v := View{X: 10, Y: 20, Scale: 4.95}
	anchor := Pt(250, 125)
	world := v.ToWorld(anchor)

	zoomed := v.ZoomAt(anchor, 5000)
	if zoomed.Scale != MaxScale {
		t.Fatalf("expected scale %v, got %v", MaxScale, zoomed.Scale)
	}
	back := zoomed.ToScreen(world)
	if !near(back.X, anchor.X) || !near(back.Y, anchor.Y) {
		t.Fatalf("expected anchor to stay at %+v, got %+v", anchor, back)
	}
}

func TestPan(t *testing.T) {
	v := View{X: 5, Y: 10, Scale: 2}
	moved := v.Pan(15, -4)
	if moved.X != 20 || moved.Y != 6 || moved.Scale != 2 {
		t.Fatalf("expected {20 6 2}, got %+v", moved)
	}
}

func TestWorldRect(t *testing.T) {
	v := View{X: -100, Y: 50, Scale: 2}
	r := v.WorldRect(800, 600)
	if !near(r.X, 50) || !near(r.Y, -25) {
		t.Fatalf("expected origin (50,-25), got (%v,%v)", r.X, r.Y)
	}
	if !near(r.Width, 400) || !near(r.Height, 300) {
		t.Fatalf("expected 400x300, got %vx%v", r.Width, r.Height)
	}
}

func TestToScreenAppliesScaleThenOffset(t *testing.T) {
	v := View{X: 7, Y: 9, Scale: 3}
	got := v.ToScreen(Pt(10, 20))
	if got.X != 37 || got.Y != 69 {
		t.Fatalf("expected (37,69), got %+v", got)
	}
}

func TestDistance(t *testing.T) {
	d := Pt(0, 0).Distance(Pt(3, 4))
	if math.Abs(d-5) > tolerance {
		t.Fatalf("expected 5, got %v", d)
	}
}
