// Package viewer hosts a layout engine in a raylib window. It drives ticks on
// the frame schedule, turns pointer input into selection and drag overrides,
// and draws the graph with its panels.
package viewer

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/smallworld/camera"
	"github.com/pthm-cable/smallworld/config"
	"github.com/pthm-cable/smallworld/layout"
	"github.com/pthm-cable/smallworld/systems"
	"github.com/pthm-cable/smallworld/telemetry"
	"github.com/pthm-cable/smallworld/ui"
)

// fitMargin is the screen padding kept around the graph by Fit View.
const fitMargin = 40

// Options configures a Viewer.
type Options struct {
	Engine      *layout.Engine
	Perf        *telemetry.PerfCollector
	SnapshotDir string
	Title       string
}

// Viewer holds the interactive session state around an engine.
type Viewer struct {
	cfg    *config.Config
	engine *layout.Engine
	perf   *telemetry.PerfCollector
	camera *camera.Camera
	theme  ui.Theme

	snapshotDir string
	title       string

	// UI
	overlays  *ui.OverlayRegistry
	hud       *ui.HUD
	controls  *ui.ControlsPanel
	perfPanel *ui.PerfPanel
	stats     *ui.StatsPanel
	inspector *ui.NodeInspector

	// Interaction
	selection     Selection
	drag          Drag
	panning       bool
	stepsPerFrame int
	lastControls  ui.ControlAction

	// Degree cache, rebuilt when the edge set changes
	degrees     []int
	degreeGen   uint64
	minDeg      int
	maxDeg      int
	haveDegrees bool

	screenWidth, screenHeight float32
}

// New creates a viewer. The raylib window must already be open.
func New(cfg *config.Config, opts Options) *Viewer {
	w := float32(cfg.Screen.Width)
	h := float32(cfg.Screen.Height)
	title := opts.Title
	if title == "" {
		title = "Small World"
	}

	v := &Viewer{
		cfg:           cfg,
		engine:        opts.Engine,
		perf:          opts.Perf,
		camera:        camera.New(w, h, float32(cfg.Viewer.MinZoom), float32(cfg.Viewer.MaxZoom)),
		theme:         ui.DefaultTheme(),
		snapshotDir:   opts.SnapshotDir,
		title:         title,
		overlays:      ui.NewOverlayRegistry(),
		hud:           ui.NewHUD(),
		controls:      ui.NewControlsPanel(int32(w)-230, 10, 220),
		perfPanel:     ui.NewPerfPanel(10, int32(h)-200, systems.NewSystemRegistry()),
		stats:         ui.NewStatsPanel(10, 120, 260),
		inspector:     ui.NewNodeInspector(int32(w)-230, int32(h)-160, 220),
		stepsPerFrame: max(1, cfg.Viewer.StepsPerFrame),
		screenWidth:   w,
		screenHeight:  h,
	}
	return v
}

// Update handles input and advances the engine by the configured number of
// steps while it is running.
func (v *Viewer) Update() {
	v.handleInput()
	v.selection.Prune(v.engine.Len())

	wx, wy := v.pointerWorld()
	for range v.stepsPerFrame {
		if !v.engine.Running() {
			break
		}
		v.drag.Apply(v.engine, wx, wy)
		v.engine.Tick()
	}
	// Keep dragged nodes under the pointer even while paused.
	v.drag.Apply(v.engine, wx, wy)
}

// Draw renders one frame.
func (v *Viewer) Draw() {
	v.perf.RecordFrame()

	rl.BeginDrawing()
	rl.ClearBackground(v.theme.Background)

	if v.overlays.IsEnabled(ui.OverlayGrid) {
		v.drawGrid()
	}
	if v.overlays.IsEnabled(ui.OverlayEdges) {
		v.drawEdges()
	}
	v.drawNodes()
	if v.overlays.IsEnabled(ui.OverlayIndices) {
		v.drawIndices()
	}

	v.drawPanels()
	rl.EndDrawing()
}

// StepsPerFrame returns the number of ticks run per frame.
func (v *Viewer) StepsPerFrame() int { return v.stepsPerFrame }

// Selection returns the current node selection.
func (v *Viewer) Selection() *Selection { return &v.selection }

// FitView zooms the camera onto the current node positions.
func (v *Viewer) FitView() {
	positions := v.engine.Positions()
	first := true
	var minX, minY, maxX, maxY float32
	for _, p := range positions {
		if !p.Finite() {
			continue
		}
		if first {
			minX, minY, maxX, maxY = p.X, p.Y, p.X, p.Y
			first = false
			continue
		}
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	if first {
		v.camera.Reset()
		return
	}
	v.camera.Fit(minX, minY, maxX, maxY, fitMargin)
}

// SaveSnapshot writes the engine state to the snapshot directory.
func (v *Viewer) SaveSnapshot() {
	if v.snapshotDir == "" {
		slog.Warn("snapshot requested but no snapshot directory is set")
		return
	}
	path, err := telemetry.SaveSnapshot(v.engine.Snapshot(), v.snapshotDir)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}
	slog.Info("snapshot saved", "path", path, "revision", v.engine.Revision())
}

// pointerWorld returns the mouse position in layout space.
func (v *Viewer) pointerWorld() (float32, float32) {
	m := rl.GetMousePosition()
	return v.camera.ScreenToWorld(m.X, m.Y)
}

// nodeDegrees returns per-node degrees for the current edge set.
func (v *Viewer) nodeDegrees() []int {
	gen := v.engine.EdgeGeneration()
	if v.haveDegrees && gen == v.degreeGen && len(v.degrees) == v.engine.Len() {
		return v.degrees
	}
	v.degrees = degreesOf(v.engine)
	v.degreeGen = gen
	v.haveDegrees = true
	v.minDeg, v.maxDeg = degreeRange(v.degrees)
	return v.degrees
}
