//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package capture

import (
	"fmt"
	"image"
)

func runningOnWayland() bool { return false }

func x11Screenshot() (*image.RGBA, error) {
	return nil, fmt.Errorf("x11 screenshot is not supported on this platform")
}

// ListMonitors reports the connected outputs.
func ListMonitors() ([]MonitorInfo, error) {
	return nil, fmt.Errorf("monitor listing is not supported on this platform")
}
