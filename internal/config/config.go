package config

import (
	"fmt"
	"image/color"
	"reflect"
	"sort"
	"strings"

	"github.com/example/scrawl/internal/theme"
)

// Notify holds per-event notification switches.
type Notify struct {
	Save    bool
	Export  bool
	Copy    bool
	Summary bool
	Errors  bool
}

// Summary holds settings for the board summarizer endpoint.
type Summary struct {
	Endpoint string
	Model    string
}

// Config holds the application configuration.
type Config struct {
	Theme       string
	SaveDir     string
	DefaultTool string
	Summary     Summary
	Notify      Notify
	Themes      map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme: "", // Empty falls back to the built-in default theme
		Notify: Notify{
			Errors: true,
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
// The output parses back to an equivalent Config.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	if c.DefaultTool != "" {
		fmt.Fprintf(&sb, "default_tool = %s\n", c.DefaultTool)
	}
	sb.WriteString("\n")

	sb.WriteString("[summary]\n")
	fmt.Fprintf(&sb, "endpoint = %s\n", c.Summary.Endpoint)
	fmt.Fprintf(&sb, "model = %s\n", c.Summary.Model)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	fmt.Fprintf(&sb, "summary = %v\n", c.Notify.Summary)
	fmt.Fprintf(&sb, "errors = %v\n", c.Notify.Errors)
	sb.WriteString("\n")

	// Sort theme names for deterministic output.
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		writeTheme(&sb, c.Themes[name])
		sb.WriteString("\n")
	}

	return sb.String()
}

// writeTheme emits every color field of the theme by reflection so the
// output cannot drift from the struct definition.
func writeTheme(sb *strings.Builder, t *theme.Theme) {
	fmt.Fprintf(sb, "Name: %s\n", t.Name)
	val := reflect.ValueOf(t).Elem()
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if f.Type != reflect.TypeOf(color.RGBA{}) {
			continue
		}
		fmt.Fprintf(sb, "%s: %s\n", f.Name, toHex(val.Field(i).Interface().(color.RGBA)))
	}
}

func toHex(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
