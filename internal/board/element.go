package board

import (
	"github.com/google/uuid"

	"github.com/example/scrawl/internal/geom"
)

// Type identifies what an element draws as.
type Type string

const (
	TypePen         Type = "pen"
	TypeHighlighter Type = "highlighter"
	TypeText        Type = "text"
	TypeSticky      Type = "sticky"
	TypeRect        Type = "rect"
	TypeCircle      Type = "circle"
	TypeTriangle    Type = "triangle"
	TypeRhombus     Type = "rhombus"
	TypeArrow       Type = "arrow"
	TypeLine        Type = "line"
	TypeCylinder    Type = "cylinder"
	TypeImage       Type = "image"
)

// Drawing reports whether the type is a freehand stroke.
func (t Type) Drawing() bool {
	return t == TypePen || t == TypeHighlighter
}

// Editable reports whether the type carries user-editable text.
func (t Type) Editable() bool {
	return t == TypeText || t == TypeSticky
}

const (
	// MinSize is the floor a resize can shrink an axis to, and the fixed
	// thickness of line and arrow boxes.
	MinSize = 20
	// StrokePadding is the margin kept between a stroke's points and its box.
	StrokePadding = 5
	// DuplicateOffset is how far duplicates land from their originals.
	DuplicateOffset = 20
)

// Element is one item on the board. X, Y, Width and Height are the
// world-space bounding box; Rotation is degrees clockwise about the box
// center. Points are stored relative to (X, Y) so moving a stroke never
// rewrites them. Appearance fields are optional; empty means unset and is
// resolved per type by Resolve.
type Element struct {
	ID       string  `json:"id"`
	Type     Type    `json:"type"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation float64 `json:"rotation,omitempty"`
	ZIndex   int     `json:"zIndex"`

	Content string       `json:"content,omitempty"`
	Points  []geom.Point `json:"points,omitempty"`

	Color       string  `json:"color,omitempty"`
	FillColor   string  `json:"fillColor,omitempty"`
	StrokeColor string  `json:"strokeColor,omitempty"`
	TextColor   string  `json:"textColor,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`
	FontSize    float64 `json:"fontSize,omitempty"`
}

// NewID returns a fresh element id.
func NewID() string {
	return uuid.NewString()
}

// Bounds returns the element's unrotated world-space box.
func (e Element) Bounds() geom.Rect {
	return geom.Rect{X: e.X, Y: e.Y, Width: e.Width, Height: e.Height}
}

func (e Element) Center() geom.Point {
	return e.Bounds().Center()
}
