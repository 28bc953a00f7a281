// Package ui draws the viewer's panels and controls on top of the layout.
// Panels take plain data structs each frame and hold no layout state.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg       rl.Color
	PanelBorder   rl.Color
	SectionHeader rl.Color
	LabelColor    rl.Color
	ValueColor    rl.Color
	BarBg         rl.Color
	BarFill       rl.Color
	BarFillHigh   rl.Color
	Node          rl.Color
	NodeSelected  rl.Color
	NodeOutline   rl.Color
	Edge          rl.Color
	GridLine      rl.Color
	GridCell      rl.Color
	Background    rl.Color
	Padding       int32
	LineHeight    int32
	LabelWidth    int32
	BarHeight     int32
	ButtonHeight  int32
	FontSize      int32
	HeaderSize    int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:       rl.Color{R: 20, G: 25, B: 30, A: 235},
		PanelBorder:   rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader: rl.Yellow,
		LabelColor:    rl.LightGray,
		ValueColor:    rl.White,
		BarBg:         rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFill:       rl.Color{R: 100, G: 150, B: 200, A: 255},
		BarFillHigh:   rl.Color{R: 200, G: 100, B: 100, A: 255},
		Node:          rl.Color{R: 90, G: 160, B: 230, A: 255},
		NodeSelected:  rl.Color{R: 250, G: 200, B: 60, A: 255},
		NodeOutline:   rl.Color{R: 15, G: 20, B: 30, A: 255},
		Edge:          rl.Color{R: 140, G: 150, B: 165, A: 110},
		GridLine:      rl.Color{R: 50, G: 60, B: 70, A: 120},
		GridCell:      rl.Color{R: 250, G: 200, B: 60, A: 28},
		Background:    rl.Color{R: 12, G: 14, B: 18, A: 255},
		Padding:       10,
		LineHeight:    16,
		LabelWidth:    70,
		BarHeight:     10,
		ButtonHeight:  22,
		FontSize:      12,
		HeaderSize:    14,
	}
}
