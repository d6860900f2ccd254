package notify

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/scrawl/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventSave emits a notification when a board is persisted to disk.
	EventSave Event = "save"
	// EventExport emits a notification when a PNG or PDF export completes.
	EventExport Event = "export"
	// EventCopy emits a notification when elements are copied to the clipboard.
	EventCopy Event = "copy"
	// EventSummary emits a notification carrying the board summary text.
	EventSummary Event = "summary"
	// EventError emits a notification when a background operation fails.
	EventError Event = "error"
)

// EventPreference describes formatting for a notification event.
type EventPreference struct {
	Template string
}

// Preferences describes notification behaviour loaded from configuration.
type Preferences struct {
	Title  string
	Events map[Event]EventPreference
}

// DefaultPreferences returns the default notification settings.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: "Scrawl",
		Events: map[Event]EventPreference{
			EventSave:    {Template: "Saved %s"},
			EventExport:  {Template: "Exported %s"},
			EventCopy:    {Template: "Copied %s to clipboard"},
			EventSummary: {Template: "%s"},
			EventError:   {Template: "%s"},
		},
	}
}

// LoadPreferences reads template overrides from environment variables.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("SCRAWL_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	apply := func(key string, event Event) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			eventPrefs := prefs.Events[event]
			eventPrefs.Template = v
			prefs.Events[event] = eventPrefs
		}
	}
	apply("SCRAWL_NOTIFY_SAVE_TEXT", EventSave)
	apply("SCRAWL_NOTIFY_EXPORT_TEXT", EventExport)
	apply("SCRAWL_NOTIFY_COPY_TEXT", EventCopy)
	apply("SCRAWL_NOTIFY_SUMMARY_TEXT", EventSummary)
	apply("SCRAWL_NOTIFY_ERROR_TEXT", EventError)
	return prefs
}

// Seam for tests.
var notifyFn = platform.Notify

// Notifier sends OS-level notifications based on the configured
// preferences. It satisfies the editor's notifier contract.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
}

// New creates a new Notifier using the provided preferences.
func New(prefs Preferences) *Notifier {
	cloned := Preferences{Title: prefs.Title, Events: make(map[Event]EventPreference, len(prefs.Events))}
	for k, v := range prefs.Events {
		cloned.Events[k] = v
	}
	return &Notifier{prefs: cloned, enabled: make(map[Event]bool)}
}

// Enable toggles the notifier for the provided event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	if n.enabled == nil {
		n.enabled = make(map[Event]bool)
	}
	n.enabled[event] = enabled
}

// Saved sends a save notification including the written filename.
func (n *Notifier) Saved(path string) {
	n.dispatch(EventSave, resolvePath(path), platform.Options{})
}

// Exported sends an export notification. PNG exports show the written
// file as the notification icon where the platform supports it.
func (n *Notifier) Exported(path string) {
	if !n.enabledFor(EventExport) {
		return
	}
	detail := resolvePath(path)
	opts := platform.Options{}
	if strings.HasSuffix(detail, ".png") {
		if _, err := os.Stat(detail); err == nil {
			opts.IconPath = detail
		}
	}
	n.dispatch(EventExport, detail, opts)
}

// Copied sends a clipboard notification.
func (n *Notifier) Copied(detail string) {
	if strings.TrimSpace(detail) == "" {
		detail = "selection"
	}
	n.dispatch(EventCopy, detail, platform.Options{})
}

// Summary sends the summarizer result.
func (n *Notifier) Summary(text string) {
	n.dispatch(EventSummary, text, platform.Options{})
}

// Error reports a failed background operation.
func (n *Notifier) Error(context string, err error) {
	n.dispatch(EventError, fmt.Sprintf("%s: %v", context, err), platform.Options{Urgency: platform.UrgencyCritical})
}

func (n *Notifier) enabledFor(event Event) bool {
	if n == nil {
		return false
	}
	if n.enabled == nil {
		return false
	}
	return n.enabled[event]
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	if !n.enabledFor(event) {
		return
	}
	template := strings.TrimSpace(n.template(event))
	if template == "" {
		return
	}
	body := strings.TrimSpace(fmt.Sprintf(template, strings.TrimSpace(detail)))
	if body == "" {
		return
	}
	if err := notifyFn(n.prefs.Title, body, opts); err != nil {
		log.Printf("notification %s: %v", event, err)
	}
}

func (n *Notifier) template(event Event) string {
	if n == nil {
		return ""
	}
	if pref, ok := n.prefs.Events[event]; ok {
		return pref.Template
	}
	return ""
}

func resolvePath(path string) string {
	detail := strings.TrimSpace(path)
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
	}
	return detail
}
