package theme

import "embed"

// Themes shipped with the binary.
//
//go:embed defaults/*.theme
var EmbeddedThemes embed.FS
