package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsData is the state shown by the controls panel.
type ControlsData struct {
	K, MaxK       int
	Beta          float32
	Running       bool
	StepsPerFrame int
}

// ControlAction reports what the user pressed this frame.
type ControlAction struct {
	DeltaK        int // -1, 0 or +1
	DeltaBeta     int // beta steps, -1, 0 or +1
	TogglePlay    bool
	FitView       bool
	Snapshot      bool
	StepsPerFrame int
	Overlay       OverlayID // toggled overlay, "" for none
}

// Any reports whether the action changes anything.
func (a ControlAction) Any() bool {
	return a.DeltaK != 0 || a.DeltaBeta != 0 || a.TogglePlay || a.FitView || a.Snapshot || a.Overlay != ""
}

// ControlsPanel renders the parameter and playback controls.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	height   int32
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Bounds returns the screen rectangle covered by the last Draw.
func (c *ControlsPanel) Bounds() rl.Rectangle {
	return rl.Rectangle{X: float32(c.x), Y: float32(c.y), Width: float32(c.width), Height: float32(c.height)}
}

// Draw renders the panel and returns the user's action.
func (c *ControlsPanel) Draw(data ControlsData, overlays *OverlayRegistry) ControlAction {
	r := c.renderer
	th := r.Theme
	pad := th.Padding
	inner := c.width - pad*2
	small := int32(28)
	rowH := th.ButtonHeight + 6

	rows := int32(5 + len(overlays.All()))
	c.height = pad*2 + th.LineHeight*3 + rows*rowH
	r.DrawPanel(c.x, c.y, c.width, c.height)

	act := ControlAction{StepsPerFrame: data.StepsPerFrame}
	x := c.x + pad
	y := c.y + pad
	y = r.DrawSectionHeader(x, y, "Topology")

	// k row: label, value, -, +
	rl.DrawText(fmt.Sprintf("k: %d / %d", data.K, data.MaxK), x, y+5, th.FontSize, th.ValueColor)
	if r.Button(c.x+c.width-pad-small*2-4, y, small, "-") {
		act.DeltaK = -1
	}
	if r.Button(c.x+c.width-pad-small, y, small, "+") {
		act.DeltaK = 1
	}
	y += rowH

	rl.DrawText(fmt.Sprintf("beta: %.2f", data.Beta), x, y+5, th.FontSize, th.ValueColor)
	if r.Button(c.x+c.width-pad-small*2-4, y, small, "-") {
		act.DeltaBeta = -1
	}
	if r.Button(c.x+c.width-pad-small, y, small, "+") {
		act.DeltaBeta = 1
	}
	y += rowH

	y = r.DrawSectionHeader(x, y, "Simulation")
	label := "Play"
	if data.Running {
		label = "Pause"
	}
	half := (inner - 4) / 2
	if r.Button(x, y, half, label) {
		act.TogglePlay = true
	}
	if r.Button(x+half+4, y, half, "Fit View") {
		act.FitView = true
	}
	y += rowH

	rl.DrawText(fmt.Sprintf("steps/frame: %d", data.StepsPerFrame), x, y, th.FontSize, th.LabelColor)
	y += th.LineHeight
	steps := r.Slider(x+12, y, inner-40, float32(data.StepsPerFrame), 1, 10)
	act.StepsPerFrame = max(1, int(steps+0.5))
	y += rowH

	if r.Button(x, y, inner, "Save Snapshot") {
		act.Snapshot = true
	}
	y += rowH

	y = r.DrawSectionHeader(x, y, "Overlays")
	for _, desc := range overlays.All() {
		state := "off"
		if overlays.IsEnabled(desc.ID) {
			state = "on"
		}
		if r.Button(x, y, inner, fmt.Sprintf("%s [%s]: %s", desc.Name, desc.KeyLabel, state)) {
			act.Overlay = desc.ID
		}
		y += rowH
	}
	return act
}
