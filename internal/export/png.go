package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"

	"github.com/example/scrawl/internal/board"
	"github.com/example/scrawl/internal/render"
)

// PNGOptions controls the raster written by PNG.
type PNGOptions struct {
	// Background is a color name or hex value; empty exports on white and
	// "transparent" leaves the canvas unfilled.
	Background string
	// Padding is the margin in world units around the content.
	Padding float64
	// Scale multiplies world units into pixels.
	Scale float64
	// Shadow composites a drop shadow behind the board.
	Shadow bool
}

// PNG renders every element to a tightly cropped raster and writes it to
// path.
func PNG(path string, elems []board.Element, opts PNGOptions) error {
	img, err := raster(elems, opts)
	if err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func(out *os.File) {
		if err := out.Close(); err != nil {
			log.Printf("error closing %q: %v", out.Name(), err)
		}
	}(out)
	if err := png.Encode(out, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// EncodePNG renders elems like PNG but returns the encoded bytes instead
// of writing a file, for clipboard transfer.
func EncodePNG(elems []board.Element, opts PNGOptions) ([]byte, error) {
	img, err := raster(elems, opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func raster(elems []board.Element, opts PNGOptions) (*image.RGBA, error) {
	img, err := render.Board(elems, render.Options{
		Background: opts.Background,
		Padding:    opts.Padding,
		Scale:      opts.Scale,
	})
	if err != nil {
		return nil, err
	}
	if opts.Shadow {
		img, _ = render.Shadow(img, render.DefaultShadowOptions())
	}
	return img, nil
}
