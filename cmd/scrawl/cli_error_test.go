package main

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/scrawl/internal/board"
	"github.com/example/scrawl/internal/capture"
	"github.com/example/scrawl/internal/geom"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return buf.Bytes()
}

func containsAll(haystack string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}

func TestSnapshotRunCaptureError(t *testing.T) {
	original := captureScreenFn
	sentinel := errors.New("portal offline")
	captureScreenFn = func(capture.Options) ([]byte, error) { return nil, sentinel }
	t.Cleanup(func() { captureScreenFn = original })

	cmd := &snapshotCmd{output: filepath.Join(t.TempDir(), "board.json")}
	err := cmd.Run()
	if err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if want := "capture screen"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to contain %q, got %v", want, err)
	}
}

func TestSnapshotRejectsBadCapture(t *testing.T) {
	original := captureScreenFn
	captureScreenFn = func(capture.Options) ([]byte, error) { return []byte("not a png"), nil }
	t.Cleanup(func() { captureScreenFn = original })

	cmd := &snapshotCmd{output: filepath.Join(t.TempDir(), "board.json")}
	if err := cmd.Run(); err == nil || !strings.Contains(err.Error(), "decode capture") {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestSnapshotWritesBoard(t *testing.T) {
	original := captureScreenFn
	captureScreenFn = func(capture.Options) ([]byte, error) { return pngBytes(t, 2, 3), nil }
	t.Cleanup(func() { captureScreenFn = original })

	out := filepath.Join(t.TempDir(), "board.json")
	cmd := &snapshotCmd{output: out}
	if err := cmd.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := board.Load(out)
	if err != nil {
		t.Fatalf("load saved board: %v", err)
	}
	if len(f.Elements) != 1 {
		t.Fatalf("expected one element, got %d", len(f.Elements))
	}
	el := f.Elements[0]
	if el.Type != board.TypeImage {
		t.Fatalf("expected image element, got %s", el.Type)
	}
	if el.Width != 2 || el.Height != 3 {
		t.Fatalf("expected 2x3 element, got %gx%g", el.Width, el.Height)
	}
	if !strings.HasPrefix(el.Content, "data:image/png;base64,") {
		t.Fatalf("expected data URI content, got %q", el.Content)
	}
}

func TestParseExportRequiresFile(t *testing.T) {
	_, err := parseExportCmd([]string{"-png", "out.png"}, nil)
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestParseExportRequiresFormat(t *testing.T) {
	_, err := parseExportCmd([]string{"-file", "board.json"}, nil)
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestParseExportRejectsBothFormats(t *testing.T) {
	_, err := parseExportCmd([]string{"-file", "b.json", "-png", "o.png", "-pdf", "o.pdf"}, nil)
	if err == nil || !strings.Contains(err.Error(), "cannot be combined") {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestParseExportRejectsPDFRasterFlags(t *testing.T) {
	_, err := parseExportCmd([]string{"-file", "b.json", "-pdf", "o.pdf", "-width", "800"}, nil)
	if err == nil || !strings.Contains(err.Error(), "PNG export only") {
		t.Fatalf("expected PNG-only error, got %v", err)
	}
}

func TestExportMissingBoard(t *testing.T) {
	cmd := &exportCmd{file: filepath.Join(t.TempDir(), "missing.json"), pngPath: "out.png"}
	if err := cmd.Run(); err == nil || !containsAll(err.Error(), []string{"open board", "missing.json"}) {
		t.Fatalf("expected open error, got %v", err)
	}
}

func TestExportEmptyBoard(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "empty.json")
	if err := board.Save(file, geom.NewView(), nil); err != nil {
		t.Fatalf("save fixture: %v", err)
	}
	cmd := &exportCmd{file: file, pngPath: filepath.Join(dir, "out.png")}
	if err := cmd.Run(); err == nil || !strings.Contains(err.Error(), "has no elements") {
		t.Fatalf("expected empty board error, got %v", err)
	}
}

func TestExportPNGScalesToWidth(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "board.json")
	rect := board.Element{
		ID:     board.NewID(),
		Type:   board.TypeRect,
		Width:  100,
		Height: 50,
		ZIndex: 1,
	}
	if err := board.Save(file, geom.NewView(), []board.Element{rect}); err != nil {
		t.Fatalf("save fixture: %v", err)
	}

	out := filepath.Join(dir, "out.png")
	// Content is 100 world units wide plus 24 padding each side, so a
	// 296 pixel target means an exact 2x scale.
	cmd := &exportCmd{file: file, pngPath: out, width: 296}
	if err := cmd.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if cfg.Width != 296 || cfg.Height != 196 {
		t.Fatalf("expected 296x196 raster, got %dx%d", cfg.Width, cfg.Height)
	}
}
