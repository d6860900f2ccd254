package export

import (
	"bytes"
	"encoding/base64"
	"errors"
	"math"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/example/scrawl/internal/board"
	"github.com/example/scrawl/internal/render"
)

const pdfMargin = 10.0

// PDF lays the whole board out on a single landscape A4 page, scaled and
// centered to fit inside the page margins.
func PDF(path string, elems []board.Element) error {
	if len(elems) == 0 {
		return errors.New("nothing to export")
	}
	b := render.Bounds(elems)
	p := gofpdf.New("L", "mm", "A4", "")
	p.AddPage()
	pw, ph := p.GetPageSize()

	scale := 1.0
	if b.Width > 0 && b.Height > 0 {
		scale = math.Min((pw-2*pdfMargin)/b.Width, (ph-2*pdfMargin)/b.Height)
	}
	tx := pdfMargin + (pw-2*pdfMargin-b.Width*scale)/2 - b.X*scale
	ty := pdfMargin + (ph-2*pdfMargin-b.Height*scale)/2 - b.Y*scale

	for _, el := range board.SortByZ(elems) {
		drawPDFElement(p, el, tx, ty, scale)
	}
	return p.OutputFileAndClose(path)
}

func drawPDFElement(p *gofpdf.Fpdf, el board.Element, tx, ty, scale float64) {
	st := board.Resolve(el)
	stroke, _ := render.ParseColor(st.Stroke)
	p.SetDrawColor(int(stroke.R), int(stroke.G), int(stroke.B))
	p.SetLineWidth(math.Max(st.StrokeWidth*scale, 0.2))

	style := "D"
	if st.Fill != board.Transparent && st.Fill != "" {
		if fill, err := render.ParseColor(st.Fill); err == nil {
			p.SetFillColor(int(fill.R), int(fill.G), int(fill.B))
			style = "FD"
		}
	}
	if st.Opacity < 1 {
		p.SetAlpha(st.Opacity, "Normal")
		defer p.SetAlpha(1, "Normal")
	}

	x := tx + el.X*scale
	y := ty + el.Y*scale
	w := el.Width * scale
	h := el.Height * scale

	if el.Rotation != 0 {
		p.TransformBegin()
		p.TransformRotate(-el.Rotation, x+w/2, y+h/2)
		defer p.TransformEnd()
	}

	switch el.Type {
	case board.TypePen, board.TypeHighlighter:
		sx, sy := render.StrokeScale(el)
		pts := el.Points
		for i := 1; i < len(pts); i++ {
			p.Line(
				x+pts[i-1].X*sx*scale, y+pts[i-1].Y*sy*scale,
				x+pts[i].X*sx*scale, y+pts[i].Y*sy*scale,
			)
		}
	case board.TypeRect:
		p.Rect(x, y, w, h, style)
	case board.TypeCircle:
		p.Ellipse(x+w/2, y+h/2, w/2, h/2, 0, style)
	case board.TypeTriangle:
		p.Polygon([]gofpdf.PointType{
			{X: x + w/2, Y: y},
			{X: x + w, Y: y + h},
			{X: x, Y: y + h},
		}, style)
	case board.TypeRhombus:
		p.Polygon([]gofpdf.PointType{
			{X: x + w/2, Y: y},
			{X: x + w, Y: y + h/2},
			{X: x + w/2, Y: y + h},
			{X: x, Y: y + h/2},
		}, style)
	case board.TypeCylinder:
		ry := math.Min(h*0.15, w/2)
		if style == "FD" {
			p.Rect(x, y+ry, w, h-2*ry, "F")
			p.Ellipse(x+w/2, y+ry, w/2, ry, 0, "F")
			p.Ellipse(x+w/2, y+h-ry, w/2, ry, 0, "F")
		}
		p.Ellipse(x+w/2, y+ry, w/2, ry, 0, "D")
		p.Ellipse(x+w/2, y+h-ry, w/2, ry, 0, "D")
		p.Line(x, y+ry, x, y+h-ry)
		p.Line(x+w, y+ry, x+w, y+h-ry)
	case board.TypeLine:
		p.Line(x, y+h/2, x+w, y+h/2)
	case board.TypeArrow:
		head := math.Min((4*st.StrokeWidth+6)*scale, w/2)
		cy := y + h/2
		p.Line(x, cy, x+w-head, cy)
		p.SetFillColor(int(stroke.R), int(stroke.G), int(stroke.B))
		p.Polygon([]gofpdf.PointType{
			{X: x + w, Y: cy},
			{X: x + w - head, Y: cy - head/2},
			{X: x + w - head, Y: cy + head/2},
		}, "F")
	case board.TypeText:
		drawPDFText(p, el.Content, x, y, w, st.Text, st.FontSize*scale)
	case board.TypeSticky:
		p.RoundedRect(x, y, w, h, 6*scale, "1234", "F")
		if el.Content != "" {
			pad := 8 * scale
			drawPDFText(p, el.Content, x+pad, y+pad, w-2*pad, st.Text, st.FontSize*scale)
		}
	case board.TypeImage:
		drawPDFImage(p, el, x, y, w, h)
	}
}

func drawPDFText(p *gofpdf.Fpdf, text string, x, y, w float64, col string, size float64) {
	if strings.TrimSpace(text) == "" || w <= 0 {
		return
	}
	c, _ := render.ParseColor(col)
	p.SetTextColor(int(c.R), int(c.G), int(c.B))
	p.SetFont("Helvetica", "", 12)
	p.SetFontUnitSize(size)
	p.SetXY(x, y)
	tr := p.UnicodeTranslatorFromDescriptor("")
	p.MultiCell(w, size*1.3, tr(text), "", "L", false)
}

func drawPDFImage(p *gofpdf.Fpdf, el board.Element, x, y, w, h float64) {
	const prefix = "data:image/png;base64,"
	if !strings.HasPrefix(el.Content, prefix) {
		p.Rect(x, y, w, h, "D")
		return
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(el.Content, prefix))
	if err != nil {
		p.Rect(x, y, w, h, "D")
		return
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	p.RegisterImageOptionsReader(el.ID, opts, bytes.NewReader(raw))
	p.ImageOptions(el.ID, x, y, w, h, false, opts, 0, "")
}
