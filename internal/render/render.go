package render

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/example/scrawl/internal/board"
	"github.com/example/scrawl/internal/geom"
)

const (
	stickyCorner  = 6.0
	stickyPadding = 8.0
	lineSpacing   = 1.3
)

// Options controls how a board raster is produced.
type Options struct {
	// Background is a color name or hex value. Empty renders on white,
	// "transparent" leaves the canvas unfilled.
	Background string
	// Padding is the margin in world units around the content.
	Padding float64
	// Scale multiplies world units into pixels.
	Scale float64
}

// Board rasterizes all elements onto a canvas sized to their combined
// bounds plus padding.
func Board(elems []board.Element, opts Options) (*image.RGBA, error) {
	if len(elems) == 0 {
		return nil, errors.New("nothing to render")
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	pad := opts.Padding
	if pad < 0 {
		pad = 0
	}
	b := Bounds(elems)
	w := int(math.Ceil((b.Width + 2*pad) * scale))
	h := int(math.Ceil((b.Height + 2*pad) * scale))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dc := gg.NewContext(w, h)
	clearBackground(dc, opts.Background)
	v := geom.View{X: (pad - b.X) * scale, Y: (pad - b.Y) * scale, Scale: scale}
	drawScene(dc, elems, v)
	return dc.Image().(*image.RGBA), nil
}

// Frame rasterizes the part of the board visible through the view onto a
// canvas of the given pixel size.
func Frame(elems []board.Element, v geom.View, width, height int, background string) *image.RGBA {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	dc := gg.NewContext(width, height)
	clearBackground(dc, background)
	drawScene(dc, elems, v)
	return dc.Image().(*image.RGBA)
}

// Bounds is the union of every element's box, with rotated boxes widened
// to cover their swept corners.
func Bounds(elems []board.Element) geom.Rect {
	var out geom.Rect
	for i, el := range elems {
		b := el.Bounds()
		if el.Rotation != 0 {
			c := el.Center()
			corners := []geom.Point{
				{X: b.X, Y: b.Y},
				{X: b.Right(), Y: b.Y},
				{X: b.Right(), Y: b.Bottom()},
				{X: b.X, Y: b.Bottom()},
			}
			for j := range corners {
				corners[j] = geom.Rotate(corners[j], c, el.Rotation)
			}
			b = geom.BoundingBox(corners)
		}
		if i == 0 {
			out = b
		} else {
			out = out.Union(b)
		}
	}
	return out
}

func clearBackground(dc *gg.Context, spec string) {
	if spec == board.Transparent {
		return
	}
	if spec == "" {
		spec = "#ffffff"
	}
	setPaint(dc, spec, 1)
	dc.Clear()
}

func drawScene(dc *gg.Context, elems []board.Element, v geom.View) {
	dc.Push()
	dc.Translate(v.X, v.Y)
	dc.Scale(v.Scale, v.Scale)
	for _, el := range board.SortByZ(elems) {
		dc.Push()
		if el.Rotation != 0 {
			c := el.Center()
			dc.RotateAbout(gg.Radians(el.Rotation), c.X, c.Y)
		}
		drawElement(dc, el)
		dc.Pop()
	}
	dc.Pop()
}

func drawElement(dc *gg.Context, el board.Element) {
	st := board.Resolve(el)
	switch el.Type {
	case board.TypePen, board.TypeHighlighter:
		drawStroke(dc, el, st)
	case board.TypeRect:
		dc.DrawRectangle(el.X, el.Y, el.Width, el.Height)
		paintPath(dc, st)
	case board.TypeCircle:
		c := el.Center()
		dc.DrawEllipse(c.X, c.Y, el.Width/2, el.Height/2)
		paintPath(dc, st)
	case board.TypeTriangle:
		dc.MoveTo(el.X+el.Width/2, el.Y)
		dc.LineTo(el.X+el.Width, el.Y+el.Height)
		dc.LineTo(el.X, el.Y+el.Height)
		dc.ClosePath()
		paintPath(dc, st)
	case board.TypeRhombus:
		dc.MoveTo(el.X+el.Width/2, el.Y)
		dc.LineTo(el.X+el.Width, el.Y+el.Height/2)
		dc.LineTo(el.X+el.Width/2, el.Y+el.Height)
		dc.LineTo(el.X, el.Y+el.Height/2)
		dc.ClosePath()
		paintPath(dc, st)
	case board.TypeCylinder:
		drawCylinder(dc, el, st)
	case board.TypeLine:
		cy := el.Y + el.Height/2
		dc.DrawLine(el.X, cy, el.X+el.Width, cy)
		setPaint(dc, st.Stroke, st.Opacity)
		dc.SetLineWidth(st.StrokeWidth)
		dc.Stroke()
	case board.TypeArrow:
		drawArrow(dc, el, st)
	case board.TypeText:
		drawWrapped(dc, el.Content, el.X, el.Y, el.Width, st.Text, st.FontSize)
	case board.TypeSticky:
		drawSticky(dc, el, st)
	case board.TypeImage:
		drawImage(dc, el)
	}
}

func drawStroke(dc *gg.Context, el board.Element, st board.Style) {
	if len(el.Points) == 0 {
		return
	}
	sx, sy := StrokeScale(el)
	setPaint(dc, st.Stroke, st.Opacity)
	if len(el.Points) == 1 {
		p := el.Points[0]
		dc.DrawCircle(el.X+p.X*sx, el.Y+p.Y*sy, st.StrokeWidth)
		dc.Fill()
		return
	}
	dc.SetLineWidth(st.StrokeWidth)
	dc.SetLineCapRound()
	dc.SetLineJoinRound()
	dc.MoveTo(el.X+el.Points[0].X*sx, el.Y+el.Points[0].Y*sy)
	for _, p := range el.Points[1:] {
		dc.LineTo(el.X+p.X*sx, el.Y+p.Y*sy)
	}
	dc.Stroke()
}

// StrokeScale maps a stroke's recorded points into a box that may have
// been resized since the stroke was drawn. Committed strokes keep their
// top-left point exactly at the padding inset; a stroke still being drawn
// starts at the origin instead, and renders unscaled.
func StrokeScale(el board.Element) (sx, sy float64) {
	sx, sy = 1, 1
	b := geom.BoundingBox(el.Points)
	if b.X != board.StrokePadding || b.Y != board.StrokePadding {
		return
	}
	iw := b.Width + 2*board.StrokePadding
	ih := b.Height + 2*board.StrokePadding
	if iw > 0 && el.Width > 0 {
		sx = el.Width / iw
	}
	if ih > 0 && el.Height > 0 {
		sy = el.Height / ih
	}
	return
}

func drawCylinder(dc *gg.Context, el board.Element, st board.Style) {
	x, y, w, h := el.X, el.Y, el.Width, el.Height
	ry := h * 0.15
	if ry > w/2 {
		ry = w / 2
	}
	cx := x + w/2

	dc.MoveTo(x, y+ry)
	dc.DrawEllipticalArc(cx, y+ry, w/2, ry, math.Pi, 2*math.Pi)
	dc.LineTo(x+w, y+h-ry)
	dc.DrawEllipticalArc(cx, y+h-ry, w/2, ry, 0, math.Pi)
	dc.ClosePath()
	paintPath(dc, st)

	// Seam where the top face meets the body.
	dc.DrawEllipticalArc(cx, y+ry, w/2, ry, 0, math.Pi)
	setPaint(dc, st.Stroke, st.Opacity)
	dc.SetLineWidth(st.StrokeWidth)
	dc.Stroke()
}

func drawArrow(dc *gg.Context, el board.Element, st board.Style) {
	cy := el.Y + el.Height/2
	head := 4*st.StrokeWidth + 6
	if head > el.Width/2 {
		head = el.Width / 2
	}
	setPaint(dc, st.Stroke, st.Opacity)
	dc.SetLineWidth(st.StrokeWidth)
	dc.DrawLine(el.X, cy, el.X+el.Width-head, cy)
	dc.Stroke()

	tip := el.X + el.Width
	dc.MoveTo(tip, cy)
	dc.LineTo(tip-head, cy-head/2)
	dc.LineTo(tip-head, cy+head/2)
	dc.ClosePath()
	dc.Fill()
}

func drawSticky(dc *gg.Context, el board.Element, st board.Style) {
	dc.SetRGBA255(0, 0, 0, 36)
	dc.DrawRoundedRectangle(el.X+3, el.Y+4, el.Width, el.Height, stickyCorner)
	dc.Fill()

	setPaint(dc, st.Fill, 1)
	dc.DrawRoundedRectangle(el.X, el.Y, el.Width, el.Height, stickyCorner)
	dc.Fill()

	if el.Content != "" {
		drawWrapped(dc, el.Content,
			el.X+stickyPadding, el.Y+stickyPadding,
			el.Width-2*stickyPadding, st.Text, st.FontSize)
	}
}

func drawWrapped(dc *gg.Context, text string, x, y, width float64, col string, size float64) {
	if strings.TrimSpace(text) == "" || width <= 0 {
		return
	}
	face, err := fontFace(size)
	if err != nil {
		return
	}
	dc.SetFontFace(face)
	setPaint(dc, col, 1)
	dc.DrawStringWrapped(text, x, y, 0, 0, width, lineSpacing, gg.AlignLeft)
}

func drawImage(dc *gg.Context, el board.Element) {
	img, ok := decodeContent(el.Content)
	if !ok {
		drawImagePlaceholder(dc, el)
		return
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		drawImagePlaceholder(dc, el)
		return
	}
	dc.Push()
	dc.Translate(el.X, el.Y)
	dc.Scale(el.Width/float64(b.Dx()), el.Height/float64(b.Dy()))
	dc.DrawImage(img, 0, 0)
	dc.Pop()
}

func drawImagePlaceholder(dc *gg.Context, el board.Element) {
	dc.SetHexColor("#e5e7eb")
	dc.DrawRectangle(el.X, el.Y, el.Width, el.Height)
	dc.Fill()
	dc.SetHexColor("#9ca3af")
	dc.SetLineWidth(1)
	dc.DrawRectangle(el.X, el.Y, el.Width, el.Height)
	dc.Stroke()
	dc.DrawLine(el.X, el.Y, el.X+el.Width, el.Y+el.Height)
	dc.DrawLine(el.X+el.Width, el.Y, el.X, el.Y+el.Height)
	dc.Stroke()
}

func paintPath(dc *gg.Context, st board.Style) {
	if st.Fill != board.Transparent && st.Fill != "" {
		setPaint(dc, st.Fill, st.Opacity)
		dc.FillPreserve()
	}
	setPaint(dc, st.Stroke, st.Opacity)
	dc.SetLineWidth(st.StrokeWidth)
	dc.Stroke()
}

func setPaint(dc *gg.Context, spec string, opacity float64) {
	c, err := ParseColor(spec)
	if err != nil {
		c = color.RGBA{A: 255}
	}
	if opacity < 1 {
		c.A = uint8(float64(c.A)*opacity + 0.5)
	}
	dc.SetRGBA255(int(c.R), int(c.G), int(c.B), int(c.A))
}

// ParseColor accepts an SVG color name or a #rrggbb / #rrggbbaa hex value.
func ParseColor(s string) (color.RGBA, error) {
	spec := strings.ToLower(strings.TrimSpace(s))
	if spec == "" {
		return color.RGBA{}, fmt.Errorf("color cannot be empty")
	}
	if c, ok := colornames.Map[spec]; ok {
		return c, nil
	}
	if strings.HasPrefix(spec, "#") && (len(spec) == 7 || len(spec) == 9) {
		r, err1 := strconv.ParseUint(spec[1:3], 16, 8)
		g, err2 := strconv.ParseUint(spec[3:5], 16, 8)
		b, err3 := strconv.ParseUint(spec[5:7], 16, 8)
		if err1 != nil || err2 != nil || err3 != nil {
			return color.RGBA{}, fmt.Errorf("invalid color %q", s)
		}
		a := uint64(255)
		if len(spec) == 9 {
			val, err := strconv.ParseUint(spec[7:9], 16, 8)
			if err != nil {
				return color.RGBA{}, fmt.Errorf("invalid color %q", s)
			}
			a = val
		}
		return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: uint8(a)}, nil
	}
	return color.RGBA{}, fmt.Errorf("invalid color %q", s)
}

var (
	fontOnce  sync.Once
	fontErr   error
	baseFont  *truetype.Font
	textFaces sync.Map // map[float64]font.Face
)

func fontFace(size float64) (font.Face, error) {
	fontOnce.Do(func() {
		baseFont, fontErr = truetype.Parse(goregular.TTF)
	})
	if fontErr != nil {
		return nil, fontErr
	}
	if size <= 0 {
		size = board.DefaultFontSize
	}
	if face, ok := textFaces.Load(size); ok {
		return face.(font.Face), nil
	}
	face := truetype.NewFace(baseFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	textFaces.Store(size, face)
	return face, nil
}

var imageCache sync.Map // map[string]image.Image

const dataURIPrefix = "data:image/png;base64,"

func decodeContent(content string) (image.Image, bool) {
	if cached, ok := imageCache.Load(content); ok {
		return cached.(image.Image), true
	}
	if !strings.HasPrefix(content, dataURIPrefix) {
		return nil, false
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(content, dataURIPrefix))
	if err != nil {
		return nil, false
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, false
	}
	imageCache.Store(content, img)
	return img, true
}
