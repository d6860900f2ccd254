package render

import (
	"image"
	"image/color"
	"testing"
)

func TestShadowExpandsCanvas(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	img.Set(5, 5, color.RGBA{R: 255, A: 255})

	opts := ShadowOptions{Radius: 4, Offset: image.Pt(8, 6), Opacity: 0.5}
	out, origin := Shadow(img, opts)
	if out == nil {
		t.Fatal("expected output image")
	}
	// Shadow apron: 10x10 inset by -4 then shifted (8,6) reaches (22,20).
	expected := image.Rect(0, 0, 22, 20)
	if !out.Bounds().Eq(expected) {
		t.Fatalf("unexpected bounds %v, want %v", out.Bounds(), expected)
	}
	if origin != image.Pt(0, 0) {
		t.Fatalf("unexpected origin %v", origin)
	}
	shadowPt := image.Pt(5+opts.Offset.X, 5+opts.Offset.Y)
	if out.RGBAAt(shadowPt.X, shadowPt.Y).A == 0 {
		t.Fatalf("expected shadow alpha at %v", shadowPt)
	}
}

func TestShadowDisabledByOpacity(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	fill := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, fill)
		}
	}
	out, origin := Shadow(img, ShadowOptions{Radius: 12, Offset: image.Pt(20, 10), Opacity: 0})
	if out != img {
		t.Fatal("expected the input image back untouched")
	}
	if origin != (image.Point{}) {
		t.Fatalf("unexpected origin %v", origin)
	}
}

func TestShadowOffsetUpLeft(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 6, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			img.Set(x, y, color.RGBA{A: 255})
		}
	}
	out, origin := Shadow(img, ShadowOptions{Radius: 2, Offset: image.Pt(-5, -5), Opacity: 1})
	if origin != image.Pt(7, 7) {
		t.Fatalf("expected content shifted to (7,7), got %v", origin)
	}
	if !out.Bounds().Eq(image.Rect(0, 0, 13, 13)) {
		t.Fatalf("unexpected bounds %v", out.Bounds())
	}
	if out.RGBAAt(origin.X, origin.Y).A == 0 {
		t.Fatal("expected content drawn at the reported origin")
	}
}

func TestShadowBlurSpreadsAlpha(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{A: 255})
	opts := ShadowOptions{Radius: 2, Offset: image.Pt(3, 0), Opacity: 1}

	out, _ := Shadow(img, opts)
	if out.Bounds().Dx() <= img.Bounds().Dx() {
		t.Fatalf("expected wider output bounds, got %v", out.Bounds())
	}
	base := image.Pt(3, 0)
	if out.RGBAAt(base.X, base.Y).A == 0 {
		t.Fatal("expected alpha at the base shadow location")
	}
	if out.RGBAAt(base.X+1, base.Y).A == 0 {
		t.Fatal("expected blurred alpha to reach the neighbor pixel")
	}
}
