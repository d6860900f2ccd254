package editor

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image/png"
	"math"
	"strings"

	"github.com/example/scrawl/internal/board"
)

// Copy serializes the selection to the clipboard as JSON, so elements can
// be pasted back into this or another board.
func (ed *Editor) Copy() {
	ids := ed.Selected()
	if len(ids) == 0 || ed.clip == nil {
		return
	}
	subset := make([]board.Element, 0, len(ids))
	for _, el := range board.SortByZ(ed.elems) {
		if ed.selection[el.ID] {
			subset = append(subset, el)
		}
	}
	data, err := board.MarshalElements(subset)
	if err != nil {
		ed.notifyError("copy", err)
		return
	}
	if err := ed.clip.WriteText(string(data)); err != nil {
		ed.notifyError("copy", err)
		return
	}
	if ed.notif != nil {
		ed.notif.Copied(fmt.Sprintf("%d elements", len(subset)))
	}
}

// Paste inserts clipboard content: an image becomes an image element, a
// serialized element array is re-inserted with fresh ids, any other text
// becomes a text element. The read goes through the async hooks so the
// event loop never blocks on the clipboard; failures only notify.
func (ed *Editor) Paste() {
	if ed.clip == nil {
		return
	}
	ed.spawn(func() {
		if data, err := ed.clip.ReadImage(); err == nil && len(data) > 0 {
			if cfg, err := png.DecodeConfig(bytes.NewReader(data)); err == nil {
				ed.post(func() { ed.insertImage(data, cfg.Width, cfg.Height) })
				return
			}
		}
		text, err := ed.clip.ReadText()
		if err != nil {
			ed.post(func() { ed.notifyError("paste", err) })
			return
		}
		if strings.TrimSpace(text) == "" {
			return
		}
		ed.post(func() { ed.insertPasted(text) })
	})
}

// insertImage places PNG data as an image element centered in the
// viewport, one world unit per pixel.
func (ed *Editor) insertImage(data []byte, width, height int) {
	c := ed.view.WorldRect(ed.viewportW, ed.viewportH).Center()
	el := board.Element{
		ID:      board.NewID(),
		Type:    board.TypeImage,
		X:       c.X - float64(width)/2,
		Y:       c.Y - float64(height)/2,
		Width:   float64(width),
		Height:  float64(height),
		ZIndex:  board.MaxZ(ed.elems) + 1,
		Content: "data:image/png;base64," + base64.StdEncoding.EncodeToString(data),
	}
	ed.elems = board.Insert(ed.elems, el)
	ed.SelectExclusive(el.ID)
	ed.commit()
}

func (ed *Editor) insertPasted(text string) {
	if pasted, err := board.UnmarshalElements([]byte(text)); err == nil {
		ed.insertElements(pasted)
		return
	}
	lines := strings.Split(text, "\n")
	longest := 0
	for _, l := range lines {
		if n := len([]rune(l)); n > longest {
			longest = n
		}
	}
	w := math.Min(520, math.Max(120, float64(longest)*10))
	h := math.Max(40, float64(len(lines))*24)
	c := ed.view.WorldRect(ed.viewportW, ed.viewportH).Center()
	el := board.Element{
		ID:      board.NewID(),
		Type:    board.TypeText,
		X:       c.X - w/2,
		Y:       c.Y - h/2,
		Width:   w,
		Height:  h,
		ZIndex:  board.MaxZ(ed.elems) + 1,
		Content: text,
	}
	ed.elems = board.Insert(ed.elems, el)
	ed.SelectExclusive(el.ID)
	ed.commit()
}

// insertElements pastes copied elements offset from their originals,
// stacked on top, and selects exactly the fresh copies.
func (ed *Editor) insertElements(pasted []board.Element) {
	maxZ := board.MaxZ(ed.elems)
	out := board.ReplaceAll(ed.elems)
	sel := make(map[string]bool, len(pasted))
	for i, el := range pasted {
		el.ID = board.NewID()
		el.X += board.DuplicateOffset
		el.Y += board.DuplicateOffset
		el.ZIndex = maxZ + 1 + i
		out = append(out, el)
		sel[el.ID] = true
	}
	ed.elems = out
	ed.selection = sel
	ed.emit(EventSelection)
	ed.commit()
}

// Screenshot captures the screen and inserts the grab as an image
// element.
func (ed *Editor) Screenshot() {
	if ed.capture == nil {
		return
	}
	ed.spawn(func() {
		data, err := ed.capture()
		if err != nil {
			ed.post(func() { ed.notifyError("screenshot", err) })
			return
		}
		cfg, err := png.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			ed.post(func() { ed.notifyError("screenshot", err) })
			return
		}
		ed.post(func() { ed.insertImage(data, cfg.Width, cfg.Height) })
	})
}

// Summarize sends the board's text content to the summarizer and surfaces
// the result through the notifier. The board itself never changes, and a
// failure leaves no trace beyond the notification.
func (ed *Editor) Summarize() {
	if ed.summ == nil {
		return
	}
	var texts []string
	for _, el := range board.SortByZ(ed.elems) {
		if el.Type.Editable() && strings.TrimSpace(el.Content) != "" {
			texts = append(texts, el.Content)
		}
	}
	if len(texts) == 0 {
		ed.notifyError("summarize", errors.New("board has no text to summarize"))
		return
	}
	ed.spawn(func() {
		text, err := ed.summ.Summarize(context.Background(), texts)
		if err != nil {
			ed.post(func() { ed.notifyError("summarize", err) })
			return
		}
		ed.post(func() {
			if ed.notif != nil {
				ed.notif.Summary(text)
			}
		})
	})
}
