package ui

import (
	"context"
	"image"
	"log"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/scrawl/internal/board"
	"github.com/example/scrawl/internal/editor"
	"github.com/example/scrawl/internal/export"
	"github.com/example/scrawl/internal/geom"
	"github.com/example/scrawl/internal/theme"
)

// App owns the editor window: it feeds window events into the editor and
// paints frames when the editor reports a change.
type App struct {
	elems   []board.Element
	view    geom.View
	output  string
	saveDir string
	tool    editor.Tool
	th      *theme.Theme
	clip    editor.Clipboard
	summ    editor.Summarizer
	desktop editor.Notifier
	capture func() ([]byte, error)
	onClose func()

	ed   *editor.Editor
	win  screen.Window
	note editor.Notifier

	width, height int
	toolbarW      int
	buttons       []Button

	textInput    string
	message      string
	messageUntil time.Time

	lastClickTime time.Time
	lastClickAt   geom.Point

	hoverButton int
	hoverMenu   int
	hoverAction int
	hoverSwatch int
}

// Option modifies an App during creation.
type Option func(*App)

// WithElements seeds the board shown in the window.
func WithElements(elems []board.Element) Option {
	return func(a *App) { a.elems = elems }
}

// WithView sets the initial pan and zoom.
func WithView(v geom.View) Option { return func(a *App) { a.view = v } }

// WithOutput sets the board file written by the save action.
func WithOutput(path string) Option { return func(a *App) { a.output = path } }

// WithSaveDir sets the directory export actions write into. Empty falls
// back to the output file's directory.
func WithSaveDir(dir string) Option { return func(a *App) { a.saveDir = dir } }

// WithTool sets the initially active tool.
func WithTool(t editor.Tool) Option { return func(a *App) { a.tool = t } }

// WithTheme sets the chrome palette.
func WithTheme(t *theme.Theme) Option { return func(a *App) { a.th = t } }

// WithClipboard wires the system clipboard.
func WithClipboard(c editor.Clipboard) Option { return func(a *App) { a.clip = c } }

// WithSummarizer wires the AI summarizer.
func WithSummarizer(s editor.Summarizer) Option { return func(a *App) { a.summ = s } }

// WithNotifier wires desktop notifications; the snackbar shows outcomes
// either way.
func WithNotifier(n editor.Notifier) Option { return func(a *App) { a.desktop = n } }

// WithCapture wires the screenshot source; it must return PNG bytes.
func WithCapture(fn func() ([]byte, error)) Option {
	return func(a *App) { a.capture = fn }
}

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *App) { a.onClose = fn } }

// New creates an App with the provided options.
func New(opts ...Option) *App {
	a := &App{
		view:        geom.NewView(),
		tool:        editor.ToolSelect,
		th:          theme.Default(),
		width:       1280,
		height:      800,
		hoverButton: -1,
		hoverMenu:   -1,
		hoverAction: -1,
		hoverSwatch: -1,
	}
	for _, o := range opts {
		o(a)
	}
	if a.th == nil {
		a.th = theme.Default()
	}
	if a.tool == "" {
		a.tool = editor.ToolSelect
	}
	return a
}

// funcEvent carries a closure from a background goroutine back onto the
// event loop.
type funcEvent struct {
	fn func()
}

// Run executes the UI loop using shiny's driver.
func (a *App) Run() { driver.Main(a.Main) }

func (a *App) Main(s screen.Screen) {
	// Size the toolbar to its widest label so nothing is clipped.
	d := &font.Drawer{Face: basicfont.Face7x13}
	max := d.MeasureString("Scrawl").Ceil() + 2*buttonPadX
	for _, lbl := range buttonLabels() {
		if w := d.MeasureString(lbl).Ceil() + 2*buttonPadX; w > max {
			max = w
		}
	}
	a.toolbarW = max

	w, err := s.NewWindow(&screen.NewWindowOptions{Width: a.width, Height: a.height, Title: "Scrawl"})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()
	if a.onClose != nil {
		defer a.onClose()
	}
	a.win = w

	a.note = &notifier{app: a, next: a.desktop}
	a.ed = editor.New(
		editor.WithElements(a.elems),
		editor.WithView(a.view),
		editor.WithViewport(float64(a.width), float64(a.height)),
		editor.WithTool(a.tool),
		editor.WithClipboard(a.clip),
		editor.WithSummarizer(a.summ),
		editor.WithNotifier(a.note),
		editor.WithCapture(a.capture),
		editor.WithAsync(
			func(fn func()) { go fn() },
			func(fn func()) { w.Send(funcEvent{fn: fn}) },
		),
	)
	a.ed.On(func(editor.Event) { a.repaint() })
	a.registerFileActions()
	a.buttons = a.buildToolbar()

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	go func() {
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			drawFrame(ctx, s, w, st)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
		}
	}()

	for {
		switch e := w.NextEvent().(type) {
		case funcEvent:
			e.fn()
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				paintMu.Lock()
				if paintCancel != nil {
					paintCancel()
				}
				paintMu.Unlock()
				return
			}
		case size.Event:
			a.width = e.WidthPx
			a.height = e.HeightPx
			a.ed.SetViewport(float64(a.width), float64(a.height))
			a.repaint()
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			st := a.snapshot()
			select {
			case paintCh <- st:
			default:
				select {
				case <-paintCh:
				default:
				}
				select {
				case paintCh <- st:
				default:
				}
			}
		case mouse.Event:
			a.mouseEvent(e)
		case key.Event:
			a.keyEvent(e)
		}
	}
}

// snapshot captures the frame inputs on the event loop goroutine.
func (a *App) snapshot() paintState {
	sel := make(map[string]bool)
	single := ""
	ids := a.ed.Selected()
	for _, id := range ids {
		sel[id] = true
	}
	if len(ids) == 1 {
		single = ids[0]
	}
	return paintState{
		width:        a.width,
		height:       a.height,
		toolbarW:     a.toolbarW,
		th:           a.th,
		elems:        a.ed.Elements(),
		view:         a.ed.View(),
		tool:         a.ed.Tool(),
		selection:    sel,
		single:       single,
		menu:         a.ed.ContextMenu(),
		paletteOpen:  a.ed.PaletteOpen(),
		actions:      a.ed.Actions(),
		editing:      a.ed.EditingID(),
		textInput:    a.textInput,
		message:      a.message,
		messageUntil: a.messageUntil,
		buttons:      a.buttons,
		hoverButton:  a.hoverButton,
		hoverMenu:    a.hoverMenu,
		hoverAction:  a.hoverAction,
		hoverSwatch:  a.hoverSwatch,
	}
}

func (a *App) repaint() {
	if a.win != nil {
		a.win.Send(paint.Event{})
	}
}

// dispatch fires a named action through the editor's table, same as the
// keyboard shortcuts.
func (a *App) dispatch(name string) {
	if a.ed != nil {
		a.ed.Do(name, "")
	}
	a.repaint()
}

// flash shows msg on the snackbar until the deadline, then repaints once
// more so the bar disappears without further input.
func (a *App) flash(msg string) {
	if r := []rune(msg); len(r) > snackMaxLen {
		msg = string(r[:snackMaxLen-1]) + "…"
	}
	a.message = msg
	a.messageUntil = time.Now().Add(snackDuration)
	a.repaint()
	time.AfterFunc(snackDuration+50*time.Millisecond, a.repaint)
}

func (a *App) buildToolbar() []Button {
	out := make([]Button, 0, len(toolDefs)+len(actionDefs))
	y := titleHeight
	for _, t := range toolDefs {
		b := &ToolButton{label: t.label, tool: t.tool, app: a}
		b.SetRect(image.Rect(0, y, a.toolbarW, y+buttonHeight))
		out = append(out, &CacheButton{Button: b})
		y += buttonHeight
	}
	y += groupGap
	for _, ac := range actionDefs {
		b := &ActionButton{label: ac.label, action: ac.action, app: a}
		b.SetRect(image.Rect(0, y, a.toolbarW, y+buttonHeight))
		out = append(out, &CacheButton{Button: b})
		y += buttonHeight
	}
	return out
}

func (a *App) registerFileActions() {
	a.ed.Register("save", []editor.Shortcut{{Rune: 's', Modifiers: key.ModControl}}, a.save)
	a.ed.Register("export-png", []editor.Shortcut{{Rune: 'e', Modifiers: key.ModControl}}, a.exportPNG)
	a.ed.Register("export-pdf", []editor.Shortcut{{Rune: 'e', Modifiers: key.ModControl | key.ModShift}}, a.exportPDF)
	a.ed.Register("copy-image", []editor.Shortcut{{Rune: 'c', Modifiers: key.ModControl | key.ModShift}}, a.copyImage)
}

func (a *App) save() {
	if a.output == "" {
		a.flash("no output path configured")
		return
	}
	if err := board.Save(a.output, a.ed.View(), a.ed.Elements()); err != nil {
		a.note.Error("save", err)
		return
	}
	a.note.Saved(a.output)
}

func (a *App) exportPNG() {
	path := a.exportPath("png")
	err := export.PNG(path, a.ed.Elements(), export.PNGOptions{Padding: 24, Scale: 1})
	if err != nil {
		a.note.Error("export", err)
		return
	}
	a.note.Exported(path)
}

func (a *App) exportPDF() {
	path := a.exportPath("pdf")
	if err := export.PDF(path, a.ed.Elements()); err != nil {
		a.note.Error("export", err)
		return
	}
	a.note.Exported(path)
}

// copyImage rasterizes the selection, or the whole board when nothing is
// selected, and puts the PNG on the clipboard.
func (a *App) copyImage() {
	if a.clip == nil {
		return
	}
	elems := a.ed.Elements()
	if len(a.ed.Selected()) > 0 {
		subset := make([]board.Element, 0, len(elems))
		for _, el := range elems {
			if a.ed.IsSelected(el.ID) {
				subset = append(subset, el)
			}
		}
		elems = subset
	}
	data, err := export.EncodePNG(elems, export.PNGOptions{Padding: 24, Scale: 1})
	if err != nil {
		a.note.Error("copy image", err)
		return
	}
	if err := a.clip.WriteImage(data); err != nil {
		a.note.Error("copy image", err)
		return
	}
	a.note.Copied("image")
}

func (a *App) exportPath(ext string) string {
	dir := a.saveDir
	if dir == "" && a.output != "" {
		dir = filepath.Dir(a.output)
	}
	if dir == "" {
		dir = "."
	}
	name := "scrawl-" + time.Now().Format("20060102-150405") + "." + ext
	return filepath.Join(dir, name)
}

func (a *App) mouseEvent(e mouse.Event) {
	pt := geom.Pt(float64(e.X), float64(e.Y))
	p := image.Pt(int(e.X), int(e.Y))

	if e.Button == mouse.ButtonWheelUp || e.Button == mouse.ButtonWheelDown {
		if e.Direction == mouse.DirPress {
			delta := wheelStep
			if e.Button == mouse.ButtonWheelDown {
				delta = -wheelStep
			}
			a.ed.Wheel(pt, delta)
		}
		return
	}

	if a.message != "" && e.Direction == mouse.DirPress && time.Now().Before(a.messageUntil) {
		a.messageUntil = time.Time{}
		a.repaint()
	}

	if a.ed.PaletteOpen() {
		a.paletteMouse(e, p)
		return
	}
	if m := a.ed.ContextMenu(); m.Open {
		if a.menuMouse(e, p, m) {
			return
		}
		// Clicks outside the panel fall through; the editor closes the
		// menu on pointer down.
	}
	if p.X < a.toolbarW && !a.ed.Gesturing() {
		a.toolbarMouse(e, p)
		return
	}
	a.canvasMouse(e, pt)
}

func (a *App) canvasMouse(e mouse.Event, pt geom.Point) {
	switch e.Direction {
	case mouse.DirPress:
		if e.Button == mouse.ButtonLeft && a.doubleClick(pt) && a.beginTextEdit(pt) {
			return
		}
		a.ed.PointerDown(pt, e.Button, e.Modifiers)
	case mouse.DirRelease:
		a.ed.PointerUp(pt)
	case mouse.DirNone:
		a.ed.PointerMove(pt, e.Modifiers)
	}
}

func (a *App) toolbarMouse(e mouse.Event, p image.Point) {
	idx := -1
	for i, b := range a.buttons {
		if p.In(b.Rect()) {
			idx = i
			break
		}
	}
	if e.Direction == mouse.DirNone {
		if idx != a.hoverButton {
			a.hoverButton = idx
			a.repaint()
		}
		return
	}
	if e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress && idx >= 0 {
		a.buttons[idx].Activate()
		a.repaint()
	}
}

// menuMouse reports whether the event was consumed by the context menu.
func (a *App) menuMouse(e mouse.Event, p image.Point, m editor.Menu) bool {
	panel, rows := menuGeometry(m.At, a.width, a.height)
	if !p.In(panel) {
		if a.hoverMenu != -1 {
			a.hoverMenu = -1
			a.repaint()
		}
		return false
	}
	if e.Direction == mouse.DirNone {
		hover := -1
		for i, r := range rows {
			if p.In(r) {
				hover = i
			}
		}
		if hover != a.hoverMenu {
			a.hoverMenu = hover
			a.repaint()
		}
		return true
	}
	if e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress {
		for i, r := range rows {
			if p.In(r) {
				a.hoverMenu = -1
				a.ed.CloseMenu()
				a.ed.Do(menuItems[i].action, m.Target)
				a.repaint()
				return true
			}
		}
	}
	return true
}

func (a *App) paletteMouse(e mouse.Event, p image.Point) {
	actions := a.ed.Actions()
	lay := paletteGeometry(a.width, a.height, len(actions))
	if e.Direction == mouse.DirNone {
		hoverAction := -1
		hoverSwatch := -1
		for i, r := range lay.rows {
			if p.In(r) {
				hoverAction = i
			}
		}
		for i, r := range lay.swatches {
			if p.In(r) {
				hoverSwatch = i
			}
		}
		if hoverAction != a.hoverAction || hoverSwatch != a.hoverSwatch {
			a.hoverAction = hoverAction
			a.hoverSwatch = hoverSwatch
			a.repaint()
		}
		return
	}
	if e.Button != mouse.ButtonLeft || e.Direction != mouse.DirPress {
		return
	}
	for i, r := range lay.swatches {
		if p.In(r) {
			a.hoverAction = -1
			a.hoverSwatch = -1
			a.ed.ApplyColor(paletteColors[i])
			return
		}
	}
	for i, r := range lay.rows {
		if p.In(r) && i < len(actions) {
			a.hoverAction = -1
			a.hoverSwatch = -1
			a.ed.TogglePalette()
			if actions[i] != "palette" {
				a.ed.Do(actions[i], "")
			}
			a.repaint()
			return
		}
	}
	if !p.In(lay.panel) {
		a.hoverAction = -1
		a.hoverSwatch = -1
		a.ed.TogglePalette()
	}
}

func (a *App) doubleClick(pt geom.Point) bool {
	now := time.Now()
	hit := now.Sub(a.lastClickTime) < doubleClickWindow && pt.Distance(a.lastClickAt) <= doubleClickSlop
	a.lastClickTime = now
	a.lastClickAt = pt
	return hit
}

// beginTextEdit opens the inline text input over the editable element
// under the pointer, seeded with its current content.
func (a *App) beginTextEdit(pt geom.Point) bool {
	if !a.ed.BeginTextEditAt(pt) {
		return false
	}
	a.textInput = ""
	if el, ok := board.ByID(a.ed.Elements(), a.ed.EditingID()); ok {
		a.textInput = el.Content
	}
	a.repaint()
	return true
}

func (a *App) keyEvent(e key.Event) {
	if e.Direction != key.DirPress {
		return
	}
	if id := a.ed.EditingID(); id != "" {
		a.textEditKey(e, id)
		return
	}
	if a.ed.KeyDown(e) {
		return
	}
	if e.Code == key.CodeEscape {
		if a.ed.PaletteOpen() {
			a.ed.TogglePalette()
			return
		}
		a.ed.CloseMenu()
	}
}

// textEditKey drives the inline input: Enter commits the draft through
// SetContent, Shift+Enter inserts a newline, Escape abandons it.
func (a *App) textEditKey(e key.Event, id string) {
	switch e.Code {
	case key.CodeReturnEnter:
		if e.Modifiers&key.ModShift != 0 {
			a.textInput += "\n"
			break
		}
		a.ed.SetContent(id, a.textInput)
		a.ed.EndTextEdit()
	case key.CodeDeleteBackspace:
		if r := []rune(a.textInput); len(r) > 0 {
			a.textInput = string(r[:len(r)-1])
		}
	case key.CodeEscape:
		a.ed.KeyDown(e)
	default:
		if e.Rune > 0 {
			a.textInput += string(e.Rune)
		}
	}
	a.repaint()
}

// notifier mirrors editor outcomes onto the snackbar and forwards them to
// the desktop notifier when one is configured.
type notifier struct {
	app  *App
	next editor.Notifier
}

func (n *notifier) Saved(path string) {
	n.app.flash("saved " + path)
	if n.next != nil {
		n.next.Saved(path)
	}
}

func (n *notifier) Exported(path string) {
	n.app.flash("exported " + path)
	if n.next != nil {
		n.next.Exported(path)
	}
}

func (n *notifier) Copied(detail string) {
	n.app.flash("copied " + detail)
	if n.next != nil {
		n.next.Copied(detail)
	}
}

func (n *notifier) Summary(text string) {
	n.app.flash(text)
	if n.next != nil {
		n.next.Summary(text)
	}
}

func (n *notifier) Error(what string, err error) {
	n.app.flash(what + ": " + err.Error())
	if n.next != nil {
		n.next.Error(what, err)
	}
}
