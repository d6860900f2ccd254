package ui

import (
	"image"
	"image/color"
	"image/draw"
	"log"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/example/scrawl/internal/editor"
	"github.com/example/scrawl/internal/theme"
)

const (
	titleHeight  = 28
	buttonHeight = 24
	buttonPadX   = 8
	groupGap     = 10

	menuWidth     = 168
	menuRowHeight = 22
	menuPad       = 4

	paletteWidth     = 340
	paletteRowHeight = 22
	palettePad       = 12
	swatchSize       = 22
	swatchGap        = 6

	handlePx  = 8
	wheelStep = 120.0
	gridStep  = 32.0

	snackDuration = 3 * time.Second
	snackMaxLen   = 120

	doubleClickWindow = 400 * time.Millisecond
	doubleClickSlop   = 6.0
)

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

var snackFace font.Face

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	snackFace, err = opentype.NewFace(f, &opentype.FaceOptions{Size: 18, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}
}

// toolDefs is the toolbar's tool strip, in display order. Labels carry the
// keyboard mnemonic where the tool has one.
var toolDefs = []struct {
	label string
	tool  editor.Tool
}{
	{"V:Select", editor.ToolSelect},
	{"P:Pen", editor.ToolPen},
	{"H:Marker", editor.ToolHighlighter},
	{"T:Text", editor.ToolText},
	{"S:Sticky", editor.ToolSticky},
	{"R:Rect", editor.ToolRect},
	{"C:Circle", editor.ToolCircle},
	{"Triangle", editor.ToolTriangle},
	{"Rhombus", editor.ToolRhombus},
	{"L:Line", editor.ToolLine},
	{"A:Arrow", editor.ToolArrow},
	{"Cylinder", editor.ToolCylinder},
}

// actionDefs is the toolbar's action strip below the tools. Every entry
// goes through the editor's action table, same as the shortcuts.
var actionDefs = []struct {
	label  string
	action string
}{
	{"Undo", "undo"},
	{"Redo", "redo"},
	{"Save", "save"},
	{"PNG", "export-png"},
	{"PDF", "export-pdf"},
	{"Shot", "screenshot"},
	{"Summarize", "summarize"},
	{"Colors", "palette"},
}

// menuItems is the context menu, top to bottom. The target element comes
// from the menu state captured at right-click time.
var menuItems = []struct {
	label  string
	action string
}{
	{"Copy", "copy"},
	{"Copy as image", "copy-image"},
	{"Paste", "paste"},
	{"Duplicate", "duplicate"},
	{"Delete", "delete"},
	{"Bring to front", "front"},
	{"Send to back", "back"},
	{"Align left", "align-left"},
	{"Align center", "align-center"},
	{"Align right", "align-right"},
	{"Align top", "align-top"},
	{"Align middle", "align-middle"},
	{"Align bottom", "align-bottom"},
}

// paletteColors are the swatches shown in the command palette; picking one
// applies it to the selection.
var paletteColors = []string{
	"#000000",
	"#6b7280",
	"#ef4444",
	"#f97316",
	"#eab308",
	"#22c55e",
	"#14b8a6",
	"#3b82f6",
	"#8b5cf6",
	"#ec4899",
	"#ffffff",
}

func buttonLabels() []string {
	out := make([]string, 0, len(toolDefs)+len(actionDefs))
	for _, t := range toolDefs {
		out = append(out, t.label)
	}
	for _, a := range actionDefs {
		out = append(out, a.label)
	}
	return out
}

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

// Button represents an interactive UI element.
// Activate performs the button's action when clicked.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState, th *theme.Theme)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Activate()
}

// CacheButton wraps another Button and caches its rendered states.
// It delegates all interface methods to the wrapped Button while
// caching the result of Draw for each state.
type CacheButton struct {
	Button
	cache [3]*image.RGBA
}

var _ Button = (*CacheButton)(nil)

func (cb *CacheButton) Draw(dst *image.RGBA, state ButtonState, th *theme.Theme) {
	if cb.cache[state] == nil {
		rect := cb.Button.Rect()
		img := image.NewRGBA(rect)
		cb.Button.Draw(img, state, th)
		cb.cache[state] = img
	}
	draw.Draw(dst, cb.Button.Rect(), cb.cache[state], cb.Button.Rect().Min, draw.Src)
}

func (cb *CacheButton) Rect() image.Rectangle { return cb.Button.Rect() }

func (cb *CacheButton) SetRect(r image.Rectangle) {
	if r != cb.Button.Rect() {
		cb.Button.SetRect(r)
		cb.cache = [3]*image.RGBA{}
	}
}

func (cb *CacheButton) Activate() { cb.Button.Activate() }

func unwrap(b Button) Button {
	if cb, ok := b.(*CacheButton); ok {
		return cb.Button
	}
	return b
}

// ToolButton selects an editor tool when activated.
type ToolButton struct {
	label string
	tool  editor.Tool
	app   *App
	rect  image.Rectangle
}

func (tb *ToolButton) Draw(dst *image.RGBA, state ButtonState, th *theme.Theme) {
	drawButtonFace(dst, tb.rect, tb.label, state, th)
}

func (tb *ToolButton) Rect() image.Rectangle { return tb.rect }

func (tb *ToolButton) SetRect(r image.Rectangle) {
	if r != tb.rect {
		tb.rect = r
	}
}

func (tb *ToolButton) Activate() {
	if tb.app != nil && tb.app.ed != nil {
		tb.app.ed.SetTool(tb.tool)
	}
}

// ActionButton fires a named editor action when activated.
type ActionButton struct {
	label  string
	action string
	app    *App
	rect   image.Rectangle
}

func (ab *ActionButton) Draw(dst *image.RGBA, state ButtonState, th *theme.Theme) {
	drawButtonFace(dst, ab.rect, ab.label, state, th)
}

func (ab *ActionButton) Rect() image.Rectangle { return ab.rect }

func (ab *ActionButton) SetRect(r image.Rectangle) {
	if r != ab.rect {
		ab.rect = r
	}
}

func (ab *ActionButton) Activate() {
	if ab.app != nil {
		ab.app.dispatch(ab.action)
	}
}

func drawButtonFace(dst *image.RGBA, r image.Rectangle, label string, state ButtonState, th *theme.Theme) {
	bg := th.ButtonBackground
	fg := th.ButtonText
	switch state {
	case StateHover:
		bg = th.ButtonHover
	case StatePressed:
		bg = th.ButtonActive
		fg = th.ButtonTextActive
	}
	fillRect(dst, r, bg)
	hline(dst, r.Min.X, r.Max.X, r.Max.Y-1, th.ButtonBorder)
	drawLabel(dst, r.Min.X+buttonPadX, r.Min.Y+16, label, fg)
}

func drawLabel(dst *image.RGBA, x, y int, s string, col color.RGBA) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: basicfont.Face7x13,
		Dot: fixed.P(x, y)}
	d.DrawString(s)
}

func fillRect(dst *image.RGBA, r image.Rectangle, col color.RGBA) {
	draw.Draw(dst, r, &image.Uniform{col}, image.Point{}, draw.Over)
}

func strokeRect(dst *image.RGBA, r image.Rectangle, col color.RGBA) {
	hline(dst, r.Min.X, r.Max.X, r.Min.Y, col)
	hline(dst, r.Min.X, r.Max.X, r.Max.Y-1, col)
	vline(dst, r.Min.X, r.Min.Y, r.Max.Y, col)
	vline(dst, r.Max.X-1, r.Min.Y, r.Max.Y, col)
}

func hline(dst *image.RGBA, x0, x1, y int, col color.RGBA) {
	for x := x0; x < x1; x++ {
		dst.Set(x, y, col)
	}
}

func vline(dst *image.RGBA, x, y0, y1 int, col color.RGBA) {
	for y := y0; y < y1; y++ {
		dst.Set(x, y, col)
	}
}

func drawLinePx(dst *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		dst.Set(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// handleRect is the drawn square for a grip centered on p.
func handleRect(x, y int) image.Rectangle {
	h := handlePx / 2
	return image.Rect(x-h, y-h, x+h, y+h)
}

func swatchColor(s string) color.RGBA {
	c, err := theme.ParseColor(s)
	if err != nil {
		return color.RGBA{A: 255}
	}
	return c
}
