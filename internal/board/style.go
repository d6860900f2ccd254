package board

const (
	DefaultStrokeColor = "#000000"
	DefaultTextColor   = "#1f2937"
	StickyBackground   = "#fef3c7"
	Transparent        = "transparent"

	DefaultStrokeWidth = 2.0
	DefaultFontSize    = 16.0
	HighlighterWidth   = 12.0
	HighlighterOpacity = 0.4
)

// Palette is the set of colors offered by the color picker.
var Palette = []string{
	"#000000",
	"#6b7280",
	"#ef4444",
	"#f97316",
	"#eab308",
	"#22c55e",
	"#3b82f6",
	"#8b5cf6",
	"#ec4899",
	"#ffffff",
}

// Style is an element's appearance with every fallback applied.
type Style struct {
	Stroke      string
	Fill        string
	Text        string
	StrokeWidth float64
	FontSize    float64
	Opacity     float64
}

// Resolve applies the per-type fallback chains for the optional appearance
// fields. Unset colors fall back in a fixed order: shapes prefer
// StrokeColor then Color, drawings prefer Color then StrokeColor, text and
// sticky notes have their own defaults. Resolution happens here, at use
// time, never at storage time.
func Resolve(e Element) Style {
	s := Style{
		Fill:        Transparent,
		StrokeWidth: DefaultStrokeWidth,
		FontSize:    DefaultFontSize,
		Opacity:     1,
	}
	if e.StrokeWidth > 0 {
		s.StrokeWidth = e.StrokeWidth
	}
	if e.FontSize > 0 {
		s.FontSize = e.FontSize
	}

	switch e.Type {
	case TypePen:
		s.Stroke = firstNonEmpty(e.Color, e.StrokeColor, DefaultStrokeColor)
	case TypeHighlighter:
		s.Stroke = firstNonEmpty(e.Color, e.StrokeColor, DefaultStrokeColor)
		if e.StrokeWidth <= 0 {
			s.StrokeWidth = HighlighterWidth
		}
		s.Opacity = HighlighterOpacity
	case TypeText:
		s.Text = firstNonEmpty(e.Color, e.TextColor, DefaultTextColor)
	case TypeSticky:
		s.Fill = firstNonEmpty(e.Color, StickyBackground)
		s.Text = firstNonEmpty(e.TextColor, DefaultTextColor)
	case TypeImage:
	default:
		s.Stroke = firstNonEmpty(e.StrokeColor, e.Color, DefaultStrokeColor)
		if e.FillColor != "" {
			s.Fill = e.FillColor
		}
	}
	return s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
