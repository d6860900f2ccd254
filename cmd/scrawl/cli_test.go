package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/scrawl/internal/config"
	"github.com/example/scrawl/internal/theme"
)

func TestParseEditOutputDefaults(t *testing.T) {
	cmd, err := parseEditCmd([]string{"-file", "x.json"}, nil)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if cmd.output != "x.json" {
		t.Fatalf("expected output to follow -file, got %q", cmd.output)
	}

	cmd, err = parseEditCmd(nil, nil)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if cmd.output != "board.json" {
		t.Fatalf("expected fallback output, got %q", cmd.output)
	}

	cmd, err = parseEditCmd([]string{"y.json"}, nil)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if cmd.file != "y.json" || cmd.output != "y.json" {
		t.Fatalf("expected positional board path, got file=%q output=%q", cmd.file, cmd.output)
	}
}

func TestRootRunUnknownCommand(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	r := newRoot()
	err := r.Run([]string{"bogus"})
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if !strings.Contains(err.Error(), "Commands:") {
		t.Fatalf("expected rendered usage, got %q", err.Error())
	}
}

func TestResolveThemePrecedence(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SCRAWL_THEME", "dark")
	r := newRoot()
	if got := r.resolveTheme(); got.Name != "Dark" {
		t.Fatalf("expected env theme, got %q", got.Name)
	}

	// An explicit -theme beats the environment.
	r.themeName = "high_contrast"
	if got := r.resolveTheme(); got.Name != "High Contrast" {
		t.Fatalf("expected CLI theme, got %q", got.Name)
	}

	// Themes defined in the config file shadow the loader.
	r.config.Themes["high_contrast"] = &theme.Theme{Name: "Custom"}
	if got := r.resolveTheme(); got.Name != "Custom" {
		t.Fatalf("expected config theme, got %q", got.Name)
	}
}

func TestResolveThemeUnknownFallsBack(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SCRAWL_THEME", "")
	r := newRoot()
	r.themeName = "no-such-theme"
	got := r.resolveTheme()
	if got.Name != theme.Default().Name {
		t.Fatalf("expected default theme fallback, got %q", got.Name)
	}
}

func TestInteractiveExecuteLine(t *testing.T) {
	i := newInteractiveCmd(nil)

	if done, err := i.executeLine(""); done || err != nil {
		t.Fatalf("blank line: done=%v err=%v", done, err)
	}
	if done, err := i.executeLine("  exit  "); !done || err != nil {
		t.Fatalf("exit line: done=%v err=%v", done, err)
	}
	if done, err := i.executeLine("interactive"); done || err != nil {
		t.Fatalf("nested interactive: done=%v err=%v", done, err)
	}
}

func TestInteractiveImmediateStopsAtExit(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	r := newRoot()

	cli, err := parseInteractiveCmd([]string{"-e", "exit", "-e", "bogus"}, r)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if err := cli.Run(); err != nil {
		t.Fatalf("expected exit to stop before the bad command, got %v", err)
	}

	cli, err = parseInteractiveCmd([]string{"-e", "bogus"}, r)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if err := cli.Run(); err == nil {
		t.Fatalf("expected dispatch error from immediate mode")
	}
}

func TestInteractivePromptLoop(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	r := newRoot()

	var out, errOut bytes.Buffer
	i := &interactiveCmd{r: r, in: strings.NewReader("bogus\nexit\n"), stdout: &out, stderr: &errOut}
	if err := i.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "> ") {
		t.Fatalf("expected prompt in output, got %q", out.String())
	}
	if !strings.Contains(errOut.String(), "Commands:") {
		t.Fatalf("expected usage on stderr for the bad command, got %q", errOut.String())
	}
}

func TestConfigInitWritesAndRefusesOverwrite(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	r := newRoot()

	cmd, err := parseConfigCmd([]string{"init"}, r)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("unexpected init error: %v", err)
	}

	path := config.DefaultPath()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("expected config at %s: %v", path, err)
	}
	defer f.Close()
	if _, err := config.Parse(f); err != nil {
		t.Fatalf("written config does not parse back: %v", err)
	}

	cmd, err = parseConfigCmd([]string{"init"}, r)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if err := cmd.Run(); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected overwrite refusal, got %v", err)
	}
}

func TestConfigUnknownSubcommand(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	r := newRoot()
	cmd, err := parseConfigCmd([]string{"weird"}, r)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if err := cmd.Run(); err == nil || !strings.Contains(err.Error(), "unknown config command") {
		t.Fatalf("expected unknown subcommand error, got %v", err)
	}
}

func TestUsageErrorRendersCommandHelp(t *testing.T) {
	cmd, err := parseExportCmd([]string{"-file", "b.json", "-png", "o.png"}, nil)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	text := (&UsageError{of: cmd}).Error()
	if !strings.Contains(text, "Usage: scrawl export") {
		t.Fatalf("expected export usage, got %q", text)
	}
	if !strings.Contains(text, "-png") || !strings.Contains(text, "-shadow") {
		t.Fatalf("expected flag listing, got %q", text)
	}
}

func TestConfigPathReportsDefaultWhenMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	// GetConfigPath checks the working directory in dev builds.
	if _, err := os.Stat(filepath.Join(wd, ".scrawlrc")); err == nil {
		t.Skip("local .scrawlrc present")
	}
	loader := config.NewLoader(version, configPathOverride)
	if got := loader.GetConfigPath(); got != "" {
		t.Fatalf("expected no config path, got %q", got)
	}
	if got := config.DefaultPath(); !strings.HasSuffix(got, filepath.Join(".config", "scrawl", "config.rc")) {
		t.Fatalf("unexpected default path %q", got)
	}
}
