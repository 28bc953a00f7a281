package viewer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/smallworld/ui"
)

// handleInput processes keyboard and mouse input.
func (v *Viewer) handleInput() {
	v.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		v.engine.Toggle()
	}

	// Topology: [ ] for k, , . for beta
	if rl.IsKeyPressed(rl.KeyLeftBracket) {
		v.engine.AdjustK(-1)
	}
	if rl.IsKeyPressed(rl.KeyRightBracket) {
		v.engine.AdjustK(1)
	}
	if rl.IsKeyPressed(rl.KeyComma) {
		v.engine.AdjustBeta(-1)
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		v.engine.AdjustBeta(1)
	}

	if rl.IsKeyPressed(rl.KeyS) {
		v.SaveSnapshot()
	}
	if rl.IsKeyPressed(rl.KeyF) {
		v.FitView()
	}

	v.handleOverlayKeys()
	v.applyControls(v.lastControls)
	v.lastControls = ui.ControlAction{}

	v.handleCameraInput()
	v.handlePointer()
}

// handleResize checks for window resize and propagates new dimensions.
func (v *Viewer) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == v.screenWidth && h == v.screenHeight {
		return
	}
	v.screenWidth = w
	v.screenHeight = h
	v.camera.Resize(w, h)
	v.layoutPanels()
}

// layoutPanels anchors panels to the window edges.
func (v *Viewer) layoutPanels() {
	w, h := int32(v.screenWidth), int32(v.screenHeight)
	v.controls.SetPosition(w-230, 10)
	v.inspector.SetPosition(w-230, h-160)
	v.perfPanel.SetPosition(10, h-200)
}

// handleOverlayKeys checks for overlay toggle key presses.
func (v *Viewer) handleOverlayKeys() {
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		if id, ok := v.overlays.ForKey(key); ok {
			v.overlays.Toggle(id)
		}
	}
}

// applyControls applies the actions clicked in the last drawn controls panel.
// Buttons report clicks during Draw, so they take effect on the next Update.
func (v *Viewer) applyControls(act ui.ControlAction) {
	if act.StepsPerFrame > 0 {
		v.stepsPerFrame = act.StepsPerFrame
	}
	if !act.Any() {
		return
	}
	if act.DeltaK != 0 {
		v.engine.AdjustK(act.DeltaK)
	}
	if act.DeltaBeta != 0 {
		v.engine.AdjustBeta(act.DeltaBeta)
	}
	if act.TogglePlay {
		v.engine.Toggle()
	}
	if act.FitView {
		v.FitView()
	}
	if act.Snapshot {
		v.SaveSnapshot()
	}
	if act.Overlay != "" {
		v.overlays.Toggle(act.Overlay)
	}
}

// handleCameraInput processes camera pan/zoom controls.
func (v *Viewer) handleCameraInput() {
	// Pan speed scales inversely with zoom for natural feel
	panSpeed := float32(8.0) / v.camera.Zoom

	if rl.IsKeyDown(rl.KeyRight) {
		v.camera.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		v.camera.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		v.camera.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		v.camera.Pan(0, -panSpeed)
	}

	mouse := rl.GetMousePosition()
	if !v.overPanel(mouse) {
		if wheel := rl.GetMouseWheelMove(); wheel != 0 {
			v.camera.ZoomAt(mouse.X, mouse.Y, 1+wheel*float32(v.cfg.Viewer.ZoomStep))
		}
	}

	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		v.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		v.camera.ZoomBy(0.8)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		v.camera.Reset()
	}
}

// handlePointer turns clicks into selection changes and drags.
// Left click selects, shift-click adds, clicking empty space clears.
// Dragging from a selected node moves the whole selection; dragging
// from empty space with the right button pans the camera.
func (v *Viewer) handlePointer() {
	mouse := rl.GetMousePosition()
	wx, wy := v.camera.ScreenToWorld(mouse.X, mouse.Y)

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && !v.overPanel(mouse) {
		radius := float32(v.cfg.Viewer.PickRadius) / v.camera.Zoom
		hit := Pick(v.engine.Positions(), wx, wy, radius)
		additive := rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
		switch {
		case hit < 0 && !additive:
			v.selection.Clear()
		case hit >= 0:
			if !v.selection.Contains(hit) || additive {
				v.selection.Select(hit, additive)
			}
			v.drag.Begin(v.selection.Indices(), v.engine.Positions(), wx, wy)
		}
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		v.drag.End()
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonRight) && !v.overPanel(mouse) {
		v.panning = true
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonRight) {
		v.panning = false
	}
	if v.panning {
		d := rl.GetMouseDelta()
		v.camera.Pan(-d.X/v.camera.Zoom, -d.Y/v.camera.Zoom)
	}
}

// overPanel reports whether the point lies over an interactive panel.
func (v *Viewer) overPanel(p rl.Vector2) bool {
	return rl.CheckCollisionPointRec(p, v.controls.Bounds())
}
