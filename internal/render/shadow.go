package render

import (
	"image"
	"image/color"
	"image/draw"
)

// ShadowOptions configures the drop shadow composited behind an exported
// board image.
type ShadowOptions struct {
	Radius  int
	Offset  image.Point
	Opacity float64
}

// DefaultShadowOptions is tuned for board exports dropped into documents
// or chats.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{
		Radius:  16,
		Offset:  image.Pt(10, 12),
		Opacity: 0.45,
	}
}

// Shadow composites img over a blurred copy of its own alpha channel and
// grows the canvas so neither the content nor the shadow clips. The
// returned point is where img's top-left corner landed on the new canvas.
// Exports with an opaque background cast a plain rectangular shadow;
// transparent exports shadow only the drawn content.
func Shadow(img *image.RGBA, opts ShadowOptions) (*image.RGBA, image.Point) {
	if img == nil || img.Bounds().Empty() || opts.Opacity <= 0 {
		return img, image.Point{}
	}
	opacity := opts.Opacity
	if opacity > 1 {
		opacity = 1
	}
	radius := opts.Radius
	if radius < 0 {
		radius = 0
	}

	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	src := image.Rect(0, 0, w, h)
	shadowRect := src.Inset(-radius).Add(opts.Offset)
	canvas := src.Union(shadowRect)
	origin := src.Min.Sub(canvas.Min)

	mask := image.NewGray(image.Rect(0, 0, w+2*radius, h+2*radius))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a := img.RGBAAt(img.Bounds().Min.X+x, img.Bounds().Min.Y+y).A
			if a == 0 {
				continue
			}
			mask.SetGray(x+radius, y+radius, color.Gray{Y: a})
		}
	}
	blurred := boxBlur(mask, radius)

	out := image.NewRGBA(canvas.Sub(canvas.Min))
	alpha := uint8(opacity*255 + 0.5)
	if alpha > 0 {
		draw.DrawMask(out, blurred.Bounds().Add(shadowRect.Min.Sub(canvas.Min)),
			image.NewUniform(color.RGBA{A: alpha}), image.Point{},
			blurred, blurred.Bounds().Min, draw.Over)
	}
	draw.Draw(out, image.Rectangle{Min: origin, Max: origin.Add(image.Pt(w, h))},
		img, img.Bounds().Min, draw.Over)
	return out, origin
}

// boxBlur runs a separable box blur over the mask using prefix sums, one
// horizontal pass and one vertical pass.
func boxBlur(src *image.Gray, radius int) *image.Gray {
	if radius <= 0 {
		out := image.NewGray(src.Bounds())
		copy(out.Pix, src.Pix)
		return out
	}
	w := src.Bounds().Dx()
	h := src.Bounds().Dy()
	tmp := image.NewGray(src.Bounds())
	out := image.NewGray(src.Bounds())

	sums := make([]int, w+1)
	for y := 0; y < h; y++ {
		row := y * src.Stride
		for x := 0; x < w; x++ {
			sums[x+1] = sums[x] + int(src.Pix[row+x])
		}
		for x := 0; x < w; x++ {
			lo := max(x-radius, 0)
			hi := min(x+radius, w-1)
			tmp.Pix[y*tmp.Stride+x] = uint8((sums[hi+1] - sums[lo]) / (hi - lo + 1))
		}
	}

	sums = make([]int, h+1)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			sums[y+1] = sums[y] + int(tmp.Pix[y*tmp.Stride+x])
		}
		for y := 0; y < h; y++ {
			lo := max(y-radius, 0)
			hi := min(y+radius, h-1)
			out.Pix[y*out.Stride+x] = uint8((sums[hi+1] - sums[lo]) / (hi - lo + 1))
		}
	}
	return out
}
