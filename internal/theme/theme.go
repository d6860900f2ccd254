package theme

import (
	"image/color"
)

// Theme defines the color palette for the editor chrome. Board elements
// carry their own colors; the theme only covers what the shell draws
// around them.
type Theme struct {
	Name string

	// Window
	Background color.RGBA // Behind the canvas when the board does not fill the window
	Foreground color.RGBA // Chrome text color

	// Canvas
	CanvasBackground color.RGBA
	CanvasGrid       color.RGBA // Dot grid drawn on the canvas

	// Toolbar
	ToolbarBackground color.RGBA
	ToolbarBorder     color.RGBA
	ButtonBackground  color.RGBA
	ButtonHover       color.RGBA
	ButtonActive      color.RGBA // Currently selected tool
	ButtonText        color.RGBA
	ButtonTextActive  color.RGBA
	ButtonBorder      color.RGBA

	// Selection
	SelectionStroke color.RGBA
	HandleFill      color.RGBA
	HandleStroke    color.RGBA

	// Context menu
	MenuBackground color.RGBA
	MenuBorder     color.RGBA
	MenuText       color.RGBA
	MenuHover      color.RGBA

	// Command palette
	PaletteBackground color.RGBA
	PaletteText       color.RGBA
	PaletteHighlight  color.RGBA
	PaletteScrim      color.RGBA // Dimming layer behind the palette

	// Snackbar
	SnackbarBackground color.RGBA
	SnackbarText       color.RGBA
}

// Default returns the hardcoded light theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:               "Default",
		Background:         color.RGBA{228, 228, 231, 255},
		Foreground:         color.RGBA{24, 24, 27, 255},
		CanvasBackground:   color.RGBA{255, 255, 255, 255},
		CanvasGrid:         color.RGBA{212, 212, 216, 255},
		ToolbarBackground:  color.RGBA{250, 250, 250, 255},
		ToolbarBorder:      color.RGBA{212, 212, 216, 255},
		ButtonBackground:   color.RGBA{250, 250, 250, 255},
		ButtonHover:        color.RGBA{228, 228, 231, 255},
		ButtonActive:       color.RGBA{219, 234, 254, 255},
		ButtonText:         color.RGBA{24, 24, 27, 255},
		ButtonTextActive:   color.RGBA{29, 78, 216, 255},
		ButtonBorder:       color.RGBA{161, 161, 170, 255},
		SelectionStroke:    color.RGBA{59, 130, 246, 255},
		HandleFill:         color.RGBA{255, 255, 255, 255},
		HandleStroke:       color.RGBA{59, 130, 246, 255},
		MenuBackground:     color.RGBA{255, 255, 255, 255},
		MenuBorder:         color.RGBA{212, 212, 216, 255},
		MenuText:           color.RGBA{24, 24, 27, 255},
		MenuHover:          color.RGBA{228, 228, 231, 255},
		PaletteBackground:  color.RGBA{255, 255, 255, 255},
		PaletteText:        color.RGBA{24, 24, 27, 255},
		PaletteHighlight:   color.RGBA{219, 234, 254, 255},
		PaletteScrim:       color.RGBA{17, 24, 39, 128},
		SnackbarBackground: color.RGBA{31, 41, 55, 230},
		SnackbarText:       color.RGBA{255, 255, 255, 255},
	}
}
