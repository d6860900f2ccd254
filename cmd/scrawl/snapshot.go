package main

import (
	"bytes"
	"encoding/base64"
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/example/scrawl/internal/board"
	"github.com/example/scrawl/internal/capture"
	"github.com/example/scrawl/internal/geom"
)

// Seam for tests.
var captureScreenFn = capture.PNG

type snapshotCmd struct {
	output        string
	display       string
	includeCursor bool
	edit          bool
	*root
	fs *flag.FlagSet
}

func (s *snapshotCmd) FlagSet() *flag.FlagSet {
	return s.fs
}

func parseSnapshotCmd(args []string, r *root) (*snapshotCmd, error) {
	fs := flag.NewFlagSet("snapshot", flag.ExitOnError)
	s := &snapshotCmd{root: r, fs: fs}
	fs.Usage = usageFunc(s)
	fs.StringVar(&s.output, "output", "board.json", "write the board to this path")
	fs.StringVar(&s.display, "display", "", "monitor to capture: 'primary', an index, or an output name (empty captures the full layout)")
	fs.BoolVar(&s.includeCursor, "include-cursor", false, "embed the cursor in the capture when supported")
	fs.BoolVar(&s.edit, "edit", false, "open the captured board in the editor")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *snapshotCmd) Run() error {
	data, err := captureScreenFn(capture.Options{
		IncludeCursor: s.includeCursor,
		Display:       s.display,
	})
	if err != nil {
		return fmt.Errorf("capture screen: %w", err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode capture: %w", err)
	}
	el := board.Element{
		ID:      board.NewID(),
		Type:    board.TypeImage,
		Width:   float64(cfg.Width),
		Height:  float64(cfg.Height),
		ZIndex:  1,
		Content: "data:image/png;base64," + base64.StdEncoding.EncodeToString(data),
	}
	v := geom.NewView()
	if err := board.Save(s.output, v, []board.Element{el}); err != nil {
		return err
	}
	saved := s.output
	if abs, err := filepath.Abs(s.output); err == nil {
		saved = abs
	}
	fmt.Fprintf(os.Stderr, "saved %s\n", saved)
	if s.root != nil && s.root.notifier != nil {
		s.root.notifier.Saved(saved)
	}
	if s.edit {
		return s.root.launch([]board.Element{el}, v, s.output)
	}
	return nil
}
