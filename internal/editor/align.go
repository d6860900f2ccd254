package editor

import (
	"github.com/example/scrawl/internal/board"
	"github.com/example/scrawl/internal/geom"
)

// Edge names an alignment target.
type Edge string

const (
	EdgeLeft   Edge = "left"
	EdgeCenter Edge = "center"
	EdgeRight  Edge = "right"
	EdgeTop    Edge = "top"
	EdgeMiddle Edge = "middle"
	EdgeBottom Edge = "bottom"
)

// Align repositions the selection against a shared reference box: the
// union of the selected boxes, or the visible viewport when a single
// element is selected (aligning a lone element to itself would be a
// no-op). One commit covers the whole reposition.
func (ed *Editor) Align(edge Edge) {
	ids := ed.Selected()
	if len(ids) == 0 {
		return
	}
	var ref geom.Rect
	if len(ids) == 1 {
		ref = ed.view.WorldRect(ed.viewportW, ed.viewportH)
	} else {
		first := true
		for _, el := range ed.elems {
			if !ed.selection[el.ID] {
				continue
			}
			if first {
				ref = el.Bounds()
				first = false
			} else {
				ref = ref.Union(el.Bounds())
			}
		}
	}

	out := board.ReplaceAll(ed.elems)
	for i := range out {
		if !ed.selection[out[i].ID] {
			continue
		}
		switch edge {
		case EdgeLeft:
			out[i].X = ref.X
		case EdgeCenter:
			out[i].X = ref.Center().X - out[i].Width/2
		case EdgeRight:
			out[i].X = ref.Right() - out[i].Width
		case EdgeTop:
			out[i].Y = ref.Y
		case EdgeMiddle:
			out[i].Y = ref.Center().Y - out[i].Height/2
		case EdgeBottom:
			out[i].Y = ref.Bottom() - out[i].Height
		default:
			return
		}
	}
	ed.elems = out
	ed.commit()
}
