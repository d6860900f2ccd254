// Command scrawl without arguments opens board.json in the working
// directory, or a blank board when it does not exist yet, and saves
// back to the same file. The full command surface lives in cmd/scrawl.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/example/scrawl/internal/board"
	"github.com/example/scrawl/internal/capture"
	"github.com/example/scrawl/internal/clipboard"
	"github.com/example/scrawl/internal/geom"
	"github.com/example/scrawl/internal/ui"
)

func main() {
	path := "board.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	var elems []board.Element
	v := geom.NewView()
	if f, err := board.Load(path); err == nil {
		elems = f.Elements
		v = f.View
	} else if !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	ui.New(
		ui.WithElements(elems),
		ui.WithView(v),
		ui.WithOutput(path),
		ui.WithClipboard(clipboard.System{}),
		ui.WithCapture(func() ([]byte, error) {
			return capture.PNG(capture.Options{})
		}),
	).Run()
}
