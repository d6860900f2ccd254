package capture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func stubGrab(t *testing.T, img *image.RGBA, portalErr error) {
	t.Helper()
	origPortal, origX11, origMonitors := portalFn, x11Fn, monitorsFn
	portalFn = func(Options) (*image.RGBA, error) {
		if portalErr != nil {
			return nil, portalErr
		}
		return img, nil
	}
	x11Fn = func() (*image.RGBA, error) {
		return nil, fmt.Errorf("no x server")
	}
	monitorsFn = func() ([]MonitorInfo, error) {
		return []MonitorInfo{
			{Index: 0, Name: "eDP-1", Rect: image.Rect(0, 0, 40, 30), Primary: true},
			{Index: 1, Name: "HDMI-1", Rect: image.Rect(40, 0, 100, 30)},
		}, nil
	}
	t.Cleanup(func() { portalFn, x11Fn, monitorsFn = origPortal, origX11, origMonitors })
}

func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), A: 0xFF})
		}
	}
	return img
}

func TestScreenFullLayout(t *testing.T) {
	stubGrab(t, gradient(100, 30), nil)
	img, err := Screen(Options{})
	if err != nil {
		t.Fatalf("Screen: %v", err)
	}
	if img.Bounds().Dx() != 100 || img.Bounds().Dy() != 30 {
		t.Fatalf("expected 100x30 grab, got %v", img.Bounds())
	}
}

func TestScreenCropsToMonitor(t *testing.T) {
	stubGrab(t, gradient(100, 30), nil)
	img, err := Screen(Options{Display: "hdmi"})
	if err != nil {
		t.Fatalf("Screen: %v", err)
	}
	if img.Bounds().Dx() != 60 || img.Bounds().Dy() != 30 {
		t.Fatalf("expected 60x30 crop, got %v", img.Bounds())
	}
	// The crop is rebased to the origin but keeps the source pixels.
	r, _, _, _ := img.At(0, 0).RGBA()
	if uint8(r>>8) != 40 {
		t.Errorf("expected crop to start at source x=40, got red %d", uint8(r>>8))
	}
}

func TestScreenPortalAndFallbackFail(t *testing.T) {
	t.Setenv("XDG_SESSION_TYPE", "x11")
	t.Setenv("WAYLAND_DISPLAY", "")
	stubGrab(t, nil, errors.New("portal unavailable"))
	if _, err := Screen(Options{}); err == nil {
		t.Fatal("expected an error when both backends fail")
	}
}

func TestPNGRoundTrips(t *testing.T) {
	stubGrab(t, gradient(16, 8), nil)
	data, err := PNG(Options{})
	if err != nil {
		t.Fatalf("PNG: %v", err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Width != 16 || cfg.Height != 8 {
		t.Fatalf("expected 16x8 png, got %dx%d", cfg.Width, cfg.Height)
	}
}

func TestFindMonitor(t *testing.T) {
	monitors := []MonitorInfo{
		{Index: 0, Name: "eDP-1", Rect: image.Rect(0, 0, 1920, 1080)},
		{Index: 1, Name: "DP-3", Rect: image.Rect(1920, 0, 4480, 1440), Primary: true},
	}

	if mon, err := FindMonitor(monitors, ""); err != nil || mon.Index != 0 {
		t.Errorf("empty selector: got %v, %v", mon, err)
	}
	if mon, err := FindMonitor(monitors, "primary"); err != nil || mon.Index != 1 {
		t.Errorf("primary selector: got %v, %v", mon, err)
	}
	if mon, err := FindMonitor(monitors, "#1"); err != nil || mon.Index != 1 {
		t.Errorf("index selector: got %v, %v", mon, err)
	}
	if mon, err := FindMonitor(monitors, "dp-3"); err != nil || mon.Index != 1 {
		t.Errorf("name selector: got %v, %v", mon, err)
	}
	if _, err := FindMonitor(monitors, "7"); err == nil {
		t.Error("expected out-of-range index to fail")
	}
	if _, err := FindMonitor(monitors, "VGA"); err == nil {
		t.Error("expected unknown name to fail")
	}
	if _, err := FindMonitor(nil, "primary"); !errors.Is(err, errNoMonitors) {
		t.Errorf("expected errNoMonitors, got %v", err)
	}
}

func TestCropToRect(t *testing.T) {
	src := gradient(100, 100)
	dst, err := cropToRect(src, image.Rect(10, 20, 30, 60))
	if err != nil {
		t.Fatalf("cropToRect: %v", err)
	}
	if dst.Bounds().Dx() != 20 || dst.Bounds().Dy() != 40 {
		t.Fatalf("expected 20x40 crop, got %v", dst.Bounds())
	}
	if _, err := cropToRect(src, image.Rect(200, 200, 300, 300)); err == nil {
		t.Error("expected an error for a rect outside the image")
	}
}
