package main

import (
	"flag"

	"github.com/example/scrawl/internal/geom"
)

type newCmd struct {
	output string
	*root
	fs *flag.FlagSet
}

func (n *newCmd) FlagSet() *flag.FlagSet {
	return n.fs
}

func parseNewCmd(args []string, r *root) (*newCmd, error) {
	fs := flag.NewFlagSet("new", flag.ExitOnError)
	c := &newCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.output, "output", "board.json", "write saves to this path")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return c, nil
}

func (n *newCmd) Run() error {
	return n.root.launch(nil, geom.NewView(), n.output)
}
