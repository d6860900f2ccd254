package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/example/scrawl/internal/board"
	"github.com/example/scrawl/internal/export"
	"github.com/example/scrawl/internal/render"
)

// exportPadding is the margin in world units around exported content,
// matching the editor's own export actions.
const exportPadding = 24.0

type exportCmd struct {
	file       string
	pngPath    string
	pdfPath    string
	background string
	width      int
	shadow     bool
	*root
	fs *flag.FlagSet
}

func (e *exportCmd) FlagSet() *flag.FlagSet {
	return e.fs
}

func parseExportCmd(args []string, r *root) (*exportCmd, error) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	c := &exportCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.file, "file", "", "board file to render")
	fs.StringVar(&c.pngPath, "png", "", "write a PNG image to this path")
	fs.StringVar(&c.pdfPath, "pdf", "", "write a PDF document to this path")
	fs.StringVar(&c.background, "background", "", "PNG background color, hex or name ('transparent' keeps the canvas clear)")
	fs.IntVar(&c.width, "width", 0, "scale the PNG to this pixel width (0 keeps one pixel per world unit)")
	fs.BoolVar(&c.shadow, "shadow", false, "composite a drop shadow behind the PNG")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.file == "" {
		return nil, &UsageError{of: c}
	}
	if c.pngPath != "" && c.pdfPath != "" {
		return nil, fmt.Errorf("-png and -pdf cannot be combined")
	}
	if c.pngPath == "" && c.pdfPath == "" {
		return nil, &UsageError{of: c}
	}
	if c.width < 0 {
		return nil, fmt.Errorf("invalid width %d", c.width)
	}
	if c.pdfPath != "" && (c.width > 0 || c.shadow || c.background != "") {
		return nil, fmt.Errorf("-width, -shadow, and -background apply to PNG export only")
	}
	return c, nil
}

func (e *exportCmd) Run() error {
	f, err := board.Load(e.file)
	if err != nil {
		return fmt.Errorf("open board %q: %w", e.file, err)
	}
	if len(f.Elements) == 0 {
		return fmt.Errorf("board %q has no elements", e.file)
	}
	if e.pdfPath != "" {
		if err := export.PDF(e.pdfPath, f.Elements); err != nil {
			return fmt.Errorf("export pdf: %w", err)
		}
		return e.done(e.pdfPath)
	}
	opts := export.PNGOptions{
		Background: e.background,
		Padding:    exportPadding,
		Scale:      1,
		Shadow:     e.shadow,
	}
	if e.width > 0 {
		b := render.Bounds(f.Elements)
		if w := b.Width + 2*exportPadding; w > 0 {
			opts.Scale = float64(e.width) / w
		}
	}
	if err := export.PNG(e.pngPath, f.Elements, opts); err != nil {
		return fmt.Errorf("export png: %w", err)
	}
	return e.done(e.pngPath)
}

func (e *exportCmd) done(path string) error {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	fmt.Fprintf(os.Stderr, "exported %s\n", path)
	if e.root != nil && e.root.notifier != nil {
		e.root.notifier.Exported(path)
	}
	return nil
}
