// Package ui provides the raylib overlay: the controls panel, the HUD, and the
// mapping from raw mouse and keyboard input to game events.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	BarBg          rl.Color
	BarFillLow     rl.Color
	BarFillMedium  rl.Color
	BarFillHigh    rl.Color
	Selected       rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	SliderHeight   int32
	ButtonHeight   int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 14, G: 16, B: 30, A: 220},
		PanelBorder:    rl.Color{R: 60, G: 66, B: 96, A: 255},
		SectionHeader:  rl.Color{R: 180, G: 200, B: 255, A: 255},
		LabelColor:     rl.LightGray,
		ValueColor:     rl.RayWhite,
		BarBg:          rl.Color{R: 40, G: 40, B: 52, A: 255},
		BarFillLow:     rl.Color{R: 90, G: 130, B: 200, A: 255},
		BarFillMedium:  rl.Color{R: 200, G: 160, B: 240, A: 255},
		BarFillHigh:    rl.Color{R: 255, G: 190, B: 140, A: 255},
		Selected:       rl.RayWhite,
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     60,
		BarHeight:      10,
		SliderHeight:   16,
		ButtonHeight:   24,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}
