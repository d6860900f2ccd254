package ui

import (
	"context"
	"image"
	"image/draw"
	"log"
	"math"
	"strings"
	"time"

	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/scrawl/internal/board"
	"github.com/example/scrawl/internal/editor"
	"github.com/example/scrawl/internal/geom"
	"github.com/example/scrawl/internal/render"
	"github.com/example/scrawl/internal/theme"
)

// paintState is everything one frame needs, captured on the event loop so
// the paint goroutine never reads live editor state. The element slice is
// safe to share because every store mutation produces a fresh slice.
type paintState struct {
	width, height int
	toolbarW      int
	th            *theme.Theme

	elems     []board.Element
	view      geom.View
	tool      editor.Tool
	selection map[string]bool
	single    string

	menu        editor.Menu
	paletteOpen bool
	actions     []string
	editing     string
	textInput   string

	message      string
	messageUntil time.Time

	buttons     []Button
	hoverButton int
	hoverMenu   int
	hoverAction int
	hoverSwatch int
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st paintState) {
	if st.width < 1 || st.height < 1 {
		return
	}
	b, err := s.NewBuffer(image.Point{st.width, st.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()
	rgba := b.RGBA()

	fillRect(rgba, rgba.Bounds(), st.th.CanvasBackground)
	drawGrid(rgba, st.view, st.width, st.height, st.th)
	if ctx.Err() != nil {
		return
	}

	frame := render.Frame(st.elems, st.view, st.width, st.height, board.Transparent)
	draw.Draw(rgba, rgba.Bounds(), frame, image.Point{}, draw.Over)
	if ctx.Err() != nil {
		return
	}

	drawSelection(rgba, st)
	drawToolbar(rgba, st)
	if ctx.Err() != nil {
		return
	}

	if st.editing != "" {
		drawTextOverlay(rgba, st)
	}
	if st.menu.Open {
		drawMenu(rgba, st)
	}
	if st.paletteOpen {
		drawPalette(rgba, st)
	}
	if st.message != "" && time.Now().Before(st.messageUntil) {
		drawSnackbar(rgba, st)
	}
	if ctx.Err() != nil {
		return
	}

	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

// drawGrid dots the canvas at world grid intersections. The dots fade out
// by not being drawn once they would sit closer than 8px.
func drawGrid(dst *image.RGBA, v geom.View, width, height int, th *theme.Theme) {
	step := gridStep * v.Scale
	if step < 8 {
		return
	}
	startX := math.Mod(v.X, step)
	if startX < 0 {
		startX += step
	}
	startY := math.Mod(v.Y, step)
	if startY < 0 {
		startY += step
	}
	for y := startY; y < float64(height); y += step {
		for x := startX; x < float64(width); x += step {
			dst.Set(int(x), int(y), th.CanvasGrid)
		}
	}
}

func drawSelection(dst *image.RGBA, st paintState) {
	for _, el := range st.elems {
		if !st.selection[el.ID] {
			continue
		}
		pts := editor.HandlePositions(el, st.view)
		for i := 0; i < 8; i += 2 {
			p0 := pts[i]
			p1 := pts[(i+2)%8]
			drawLinePx(dst, int(p0.X), int(p0.Y), int(p1.X), int(p1.Y), st.th.SelectionStroke)
		}
		if el.ID != st.single {
			continue
		}
		for _, p := range pts {
			r := handleRect(int(p.X), int(p.Y))
			fillRect(dst, r, st.th.HandleFill)
			strokeRect(dst, r, st.th.HandleStroke)
		}
		rp := editor.RotateHandlePosition(el, st.view)
		top := pts[1]
		drawLinePx(dst, int(top.X), int(top.Y), int(rp.X), int(rp.Y), st.th.HandleStroke)
		r := handleRect(int(rp.X), int(rp.Y))
		fillRect(dst, r, st.th.HandleFill)
		strokeRect(dst, r, st.th.HandleStroke)
	}
}

func drawToolbar(dst *image.RGBA, st paintState) {
	fillRect(dst, image.Rect(0, 0, st.toolbarW, st.height), st.th.ToolbarBackground)
	vline(dst, st.toolbarW-1, 0, st.height, st.th.ToolbarBorder)
	drawLabel(dst, buttonPadX, 18, "Scrawl", st.th.Foreground)
	for i, b := range st.buttons {
		state := StateDefault
		if tb, ok := unwrap(b).(*ToolButton); ok && tb.tool == st.tool {
			state = StatePressed
		} else if i == st.hoverButton {
			state = StateHover
		}
		b.Draw(dst, state, st.th)
	}
}

// menuGeometry places the context menu at the click point, shifted so the
// whole panel stays inside the window.
func menuGeometry(at geom.Point, width, height int) (image.Rectangle, []image.Rectangle) {
	w := menuWidth
	h := len(menuItems)*menuRowHeight + 2*menuPad
	x := int(at.X)
	y := int(at.Y)
	if x+w > width {
		x = width - w
	}
	if y+h > height {
		y = height - h
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	panel := image.Rect(x, y, x+w, y+h)
	rows := make([]image.Rectangle, len(menuItems))
	ry := y + menuPad
	for i := range menuItems {
		rows[i] = image.Rect(x+1, ry, x+w-1, ry+menuRowHeight)
		ry += menuRowHeight
	}
	return panel, rows
}

func drawMenu(dst *image.RGBA, st paintState) {
	panel, rows := menuGeometry(st.menu.At, st.width, st.height)
	fillRect(dst, panel, st.th.MenuBackground)
	strokeRect(dst, panel, st.th.MenuBorder)
	for i, r := range rows {
		if i == st.hoverMenu {
			fillRect(dst, r, st.th.MenuHover)
		}
		drawLabel(dst, r.Min.X+8, r.Min.Y+15, menuItems[i].label, st.th.MenuText)
	}
}

// paletteLayout is the command palette's computed geometry, shared between
// drawing and hit testing.
type paletteLayout struct {
	panel    image.Rectangle
	swatches []image.Rectangle
	rows     []image.Rectangle
}

func paletteGeometry(width, height, actionCount int) paletteLayout {
	w := paletteWidth
	h := 2*palettePad + swatchSize + swatchGap + actionCount*paletteRowHeight
	x := (width - w) / 2
	y := (height - h) / 2
	if y < 24 {
		y = 24
	}
	var lay paletteLayout
	lay.panel = image.Rect(x, y, x+w, y+h)
	sx := x + palettePad
	sy := y + palettePad
	lay.swatches = make([]image.Rectangle, len(paletteColors))
	for i := range paletteColors {
		lay.swatches[i] = image.Rect(sx, sy, sx+swatchSize, sy+swatchSize)
		sx += swatchSize + swatchGap
	}
	ry := sy + swatchSize + swatchGap
	lay.rows = make([]image.Rectangle, actionCount)
	for i := 0; i < actionCount; i++ {
		lay.rows[i] = image.Rect(x+1, ry, x+w-1, ry+paletteRowHeight)
		ry += paletteRowHeight
	}
	return lay
}

func drawPalette(dst *image.RGBA, st paintState) {
	fillRect(dst, dst.Bounds(), st.th.PaletteScrim)
	lay := paletteGeometry(st.width, st.height, len(st.actions))
	fillRect(dst, lay.panel, st.th.PaletteBackground)
	strokeRect(dst, lay.panel, st.th.MenuBorder)
	for i, r := range lay.swatches {
		fillRect(dst, r, swatchColor(paletteColors[i]))
		strokeRect(dst, r, st.th.MenuBorder)
		if i == st.hoverSwatch {
			strokeRect(dst, r.Inset(-2), st.th.PaletteHighlight)
		}
	}
	for i, r := range lay.rows {
		if i >= len(st.actions) {
			break
		}
		if i == st.hoverAction {
			fillRect(dst, r, st.th.PaletteHighlight)
		}
		drawLabel(dst, r.Min.X+palettePad, r.Min.Y+15, st.actions[i], st.th.PaletteText)
	}
}

func drawTextOverlay(dst *image.RGBA, st paintState) {
	el, ok := board.ByID(st.elems, st.editing)
	if !ok {
		return
	}
	anchor := st.view.ToScreen(geom.Pt(el.X, el.Y))
	lines := strings.Split(st.textInput+"|", "\n")
	d := &font.Drawer{Face: basicfont.Face7x13}
	wmax := 0
	for _, l := range lines {
		if w := d.MeasureString(l).Ceil(); w > wmax {
			wmax = w
		}
	}
	x := int(anchor.X)
	y := int(anchor.Y)
	chip := image.Rect(x, y, x+wmax+16, y+len(lines)*16+10)
	fillRect(dst, chip, st.th.MenuBackground)
	strokeRect(dst, chip, st.th.SelectionStroke)
	ty := y + 16
	for _, l := range lines {
		drawLabel(dst, x+8, ty, l, st.th.MenuText)
		ty += 16
	}
}

func drawSnackbar(dst *image.RGBA, st paintState) {
	d := &font.Drawer{Face: snackFace}
	w := d.MeasureString(st.message).Ceil()
	ascent := snackFace.Metrics().Ascent.Ceil()
	descent := snackFace.Metrics().Descent.Ceil()
	x := (st.width - w) / 2
	baseline := st.height - 32
	box := image.Rect(x-16, baseline-ascent-8, x+w+16, baseline+descent+8)
	fillRect(dst, box, st.th.SnackbarBackground)
	td := &font.Drawer{Dst: dst, Src: image.NewUniform(st.th.SnackbarText), Face: snackFace,
		Dot: fixed.P(x, baseline)}
	td.DrawString(st.message)
}
