package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

type interactiveCmd struct {
	r      *root
	in     io.Reader
	stdout io.Writer
	stderr io.Writer
}

func newInteractiveCmd(r *root) *interactiveCmd {
	return &interactiveCmd{r: r, in: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
}

// executeLine dispatches one prompt line through the root command.
// It reports whether the session should end.
func (i *interactiveCmd) executeLine(line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}
	if line == "exit" {
		return true, nil
	}
	args := strings.Fields(line)
	// Nested sessions would fight over stdin.
	if args[0] == "interactive" {
		return false, nil
	}
	return false, i.r.Run(args)
}

func (i *interactiveCmd) Run() error {
	fmt.Fprintln(i.stdout, "Enter commands (type 'exit' to quit)")
	scanner := bufio.NewScanner(i.in)
	for {
		fmt.Fprint(i.stdout, "> ")
		if !scanner.Scan() {
			break
		}
		done, err := i.executeLine(scanner.Text())
		if err != nil {
			fmt.Fprintln(i.stderr, err)
		}
		if done {
			break
		}
	}
	return scanner.Err()
}
