package capture

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
)

// Options configures a screen grab.
type Options struct {
	// IncludeCursor embeds the pointer in the grab when the backend
	// supports it.
	IncludeCursor bool
	// Display selects a monitor to crop to: "primary", an index, or an
	// output name. Empty keeps the full layout.
	Display string
}

// Seams for tests and headless environments.
var (
	portalFn   = portalScreenshot
	x11Fn      = x11Screenshot
	monitorsFn = ListMonitors
)

// Screen captures the desktop. The freedesktop screenshot portal is
// tried first; outside Wayland a direct X11 root grab is the fallback.
func Screen(opts Options) (*image.RGBA, error) {
	img, portalErr := portalFn(opts)
	if portalErr != nil {
		// An X11 grab under a Wayland compositor yields garbage, so the
		// portal error stands on its own there.
		if runningOnWayland() {
			return nil, portalErr
		}
		var x11Err error
		img, x11Err = x11Fn()
		if x11Err != nil {
			return nil, fmt.Errorf("portal: %v; x11 fallback: %w", portalErr, x11Err)
		}
	}
	if opts.Display == "" {
		return img, nil
	}
	monitors, err := monitorsFn()
	if err != nil {
		return nil, err
	}
	monitor, err := FindMonitor(monitors, opts.Display)
	if err != nil {
		return nil, err
	}
	return cropToRect(img, monitor.Rect)
}

// PNG captures the desktop and returns it PNG-encoded, ready for an
// image element or a file.
func PNG(opts Options) ([]byte, error) {
	img, err := Screen(opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func cropToRect(src *image.RGBA, rect image.Rectangle) (*image.RGBA, error) {
	rect = rect.Intersect(src.Bounds())
	if rect.Empty() {
		return nil, fmt.Errorf("requested region outside captured image")
	}
	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(dst, dst.Bounds(), src, rect.Min, draw.Src)
	return dst, nil
}
