package main

import (
	"flag"
	"fmt"

	"github.com/example/scrawl/internal/board"
	"github.com/example/scrawl/internal/geom"
)

type editCmd struct {
	file   string
	output string
	*root
	fs *flag.FlagSet
}

func (e *editCmd) FlagSet() *flag.FlagSet {
	return e.fs
}

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	c := &editCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.file, "file", "", "board file to open")
	fs.StringVar(&c.output, "output", "", "write saves to this path (defaults to -file)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.file == "" && fs.NArg() > 0 {
		c.file = fs.Arg(0)
	}
	if c.output == "" {
		c.output = c.file
	}
	if c.output == "" {
		c.output = "board.json"
	}
	return c, nil
}

func (e *editCmd) Run() error {
	var elems []board.Element
	v := geom.NewView()
	if e.file != "" {
		f, err := board.Load(e.file)
		if err != nil {
			return fmt.Errorf("open board %q: %w", e.file, err)
		}
		elems = f.Elements
		v = f.View
	}
	return e.root.launch(elems, v, e.output)
}
