package platform

// Urgency maps to the freedesktop notification urgency levels. Platforms
// without the concept ignore it.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// IconPath, when non-empty, points to an image file the notification center
	// should display with the notification if supported by the platform.
	IconPath string
	// Urgency hints how prominently the notification should be shown.
	Urgency Urgency
}
