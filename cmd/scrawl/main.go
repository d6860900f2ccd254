package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/example/scrawl/internal/board"
	"github.com/example/scrawl/internal/capture"
	"github.com/example/scrawl/internal/clipboard"
	"github.com/example/scrawl/internal/config"
	"github.com/example/scrawl/internal/editor"
	"github.com/example/scrawl/internal/geom"
	"github.com/example/scrawl/internal/notify"
	"github.com/example/scrawl/internal/summary"
	"github.com/example/scrawl/internal/theme"
	"github.com/example/scrawl/internal/ui"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs            *flag.FlagSet
	program       string
	notifier      *notify.Notifier
	config        *config.Config
	saveAlerts    bool
	exportAlerts  bool
	copyAlerts    bool
	summaryAlerts bool
	errorAlerts   bool
	themeName     string
	activeTheme   *theme.Theme
}

func (r *root) Program() string {
	if r == nil {
		return "scrawl"
	}
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	if r == nil {
		return nil
	}
	return r.fs
}

func newRoot() *root {
	prefs := notify.LoadPreferences()
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}

	r := &root{
		fs:       flag.NewFlagSet("scrawl", flag.ExitOnError),
		program:  "scrawl",
		notifier: notify.New(prefs),
		config:   cfg,
	}
	r.fs.BoolVar(&r.saveAlerts, "notify-save", cfg.Notify.Save, "show a desktop notification after saving a board")
	r.fs.BoolVar(&r.exportAlerts, "notify-export", cfg.Notify.Export, "show a desktop notification after exporting PNG or PDF")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")
	r.fs.BoolVar(&r.summaryAlerts, "notify-summary", cfg.Notify.Summary, "deliver board summaries as desktop notifications")
	r.fs.BoolVar(&r.errorAlerts, "notify-errors", cfg.Notify.Errors, "show a desktop notification when a background operation fails")

	// Precedence: CLI > Env > Config > Default. The flag default stays
	// empty so Run can tell an explicit -theme apart from the fallbacks.
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use (default, dark, high_contrast)")
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if r.notifier != nil {
		r.notifier.Enable(notify.EventSave, r.saveAlerts)
		r.notifier.Enable(notify.EventExport, r.exportAlerts)
		r.notifier.Enable(notify.EventCopy, r.copyAlerts)
		r.notifier.Enable(notify.EventSummary, r.summaryAlerts)
		r.notifier.Enable(notify.EventError, r.errorAlerts)
	}
	r.activeTheme = r.resolveTheme()

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "edit":
		cmd, err = parseEditCmd(subArgs, r)
	case "new":
		cmd, err = parseNewCmd(subArgs, r)
	case "export":
		cmd, err = parseExportCmd(subArgs, r)
	case "snapshot":
		cmd, err = parseSnapshotCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "interactive":
		cmd, err = parseInteractiveCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func (r *root) resolveTheme() *theme.Theme {
	name := r.themeName
	if name == "" {
		name = os.Getenv("SCRAWL_THEME")
	}
	if name == "" {
		name = r.config.Theme
	}
	if t, ok := r.config.Themes[name]; ok {
		return t
	}
	t, err := theme.NewLoader().Load(name)
	if err != nil {
		if name != "" && name != "default" {
			fmt.Fprintf(os.Stderr, "warning: failed to load theme %q: %v. using default.\n", name, err)
		}
		return theme.Default()
	}
	return t
}

var toolNames = map[string]editor.Tool{
	"select":      editor.ToolSelect,
	"pen":         editor.ToolPen,
	"highlighter": editor.ToolHighlighter,
	"text":        editor.ToolText,
	"sticky":      editor.ToolSticky,
	"rect":        editor.ToolRect,
	"circle":      editor.ToolCircle,
	"triangle":    editor.ToolTriangle,
	"rhombus":     editor.ToolRhombus,
	"line":        editor.ToolLine,
	"arrow":       editor.ToolArrow,
	"cylinder":    editor.ToolCylinder,
}

// launch opens the editor window on the given board. It blocks until the
// window closes.
func (r *root) launch(elems []board.Element, v geom.View, output string) error {
	opts := []ui.Option{
		ui.WithElements(elems),
		ui.WithView(v),
		ui.WithOutput(output),
		ui.WithTheme(r.activeTheme),
		ui.WithClipboard(clipboard.System{}),
		ui.WithNotifier(r.notifier),
		ui.WithCapture(func() ([]byte, error) {
			return capture.PNG(capture.Options{})
		}),
	}
	if r.config.SaveDir != "" {
		opts = append(opts, ui.WithSaveDir(r.config.SaveDir))
	}
	if t, ok := toolNames[strings.ToLower(strings.TrimSpace(r.config.DefaultTool))]; ok {
		opts = append(opts, ui.WithTool(t))
	}
	if r.config.Summary.Endpoint != "" {
		opts = append(opts, ui.WithSummarizer(summary.New(r.config.Summary.Endpoint, r.config.Summary.Model)))
	}
	ui.New(opts...).Run()
	return nil
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
		} else {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
