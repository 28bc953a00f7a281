package viewer

import (
	"fmt"
	"math"
	"slices"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/smallworld/layout"
	"github.com/pthm-cable/smallworld/systems"
	"github.com/pthm-cable/smallworld/topology"
	"github.com/pthm-cable/smallworld/ui"
)

const controlsLegend = "[Space] play/pause  [ ] k  , . beta  [E/C/I/G/P/T] overlays  [F] fit  [Home] reset  [S] snapshot  drag: move nodes  right-drag: pan"

// drawEdges renders every edge with both endpoints finite, culled to the view.
func (v *Viewer) drawEdges() {
	positions := v.engine.Positions()
	n := len(positions)
	zoom := v.camera.Zoom
	thick := max(1, zoom*0.75)
	for _, e := range v.engine.Edges() {
		if !e.Valid(n) {
			continue
		}
		a, b := positions[e.Source], positions[e.Target]
		if !a.Finite() || !b.Finite() || !v.camera.SegmentVisible(a.X, a.Y, b.X, b.Y) {
			continue
		}
		ax, ay := v.camera.WorldToScreen(a.X, a.Y)
		bx, by := v.camera.WorldToScreen(b.X, b.Y)
		rl.DrawLineEx(rl.Vector2{X: ax, Y: ay}, rl.Vector2{X: bx, Y: by}, thick, v.theme.Edge)
	}
}

// drawNodes renders nodes as outlined circles, highlighting the selection.
func (v *Viewer) drawNodes() {
	positions := v.engine.Positions()
	radius := float32(v.cfg.Viewer.NodeRadius)
	screenR := max(1.5, radius*v.camera.Zoom)
	colorByDegree := v.overlays.IsEnabled(ui.OverlayDegreeColor)
	var degrees []int
	if colorByDegree {
		degrees = v.nodeDegrees()
	}

	for i, p := range positions {
		if !p.Finite() || !v.camera.IsVisible(p.X, p.Y, radius) {
			continue
		}
		sx, sy := v.camera.WorldToScreen(p.X, p.Y)
		color := v.theme.Node
		if colorByDegree && i < len(degrees) {
			color = degreeColor(v.theme.Node, v.theme.BarFillHigh, degrees[i], v.minDeg, v.maxDeg)
		}
		if v.selection.Contains(i) {
			color = v.theme.NodeSelected
		}
		rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, screenR+1, v.theme.NodeOutline)
		rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, screenR, color)
	}
}

// drawIndices labels visible nodes with their index.
func (v *Viewer) drawIndices() {
	if v.camera.Zoom < 0.75 {
		return
	}
	radius := float32(v.cfg.Viewer.NodeRadius)
	for i, p := range v.engine.Positions() {
		if !p.Finite() || !v.camera.IsVisible(p.X, p.Y, radius) {
			continue
		}
		sx, sy := v.camera.WorldToScreen(p.X, p.Y)
		rl.DrawText(fmt.Sprintf("%d", i), int32(sx+radius*v.camera.Zoom+2), int32(sy-5), 10, v.theme.LabelColor)
	}
}

// drawGrid draws the spatial grid cell boundaries within the view and shades
// the cells holding selected nodes.
func (v *Viewer) drawGrid() {
	grid := v.engine.Grid()
	cell := grid.CellSize()
	// Skip when cells would be denser than a few pixels.
	if cell*v.camera.Zoom < 4 {
		return
	}
	side := int32(cell * v.camera.Zoom)
	for _, c := range selectedCells(grid, v.selection.Indices()) {
		sx, sy := v.camera.WorldToScreen(float32(c[0])*cell, float32(c[1])*cell)
		rl.DrawRectangle(int32(sx), int32(sy), side, side, v.theme.GridCell)
	}

	minX, minY, maxX, maxY := v.camera.VisibleWorldBounds()
	for x := float32(math.Floor(float64(minX/cell))) * cell; x <= maxX; x += cell {
		sx, _ := v.camera.WorldToScreen(x, 0)
		rl.DrawLine(int32(sx), 0, int32(sx), int32(v.screenHeight), v.theme.GridLine)
	}
	for y := float32(math.Floor(float64(minY/cell))) * cell; y <= maxY; y += cell {
		_, sy := v.camera.WorldToScreen(0, y)
		rl.DrawLine(0, int32(sy), int32(v.screenWidth), int32(sy), v.theme.GridLine)
	}
}

// selectedCells returns the distinct grid cells holding the given nodes,
// in first-seen order. Nodes the grid has not indexed are skipped.
func selectedCells(grid *systems.SpatialGrid, nodes []int) [][2]int32 {
	var cells [][2]int32
	for _, i := range nodes {
		x, y, ok := grid.Cell(i)
		if !ok {
			continue
		}
		c := [2]int32{x, y}
		if !slices.Contains(cells, c) {
			cells = append(cells, c)
		}
	}
	return cells
}

// drawPanels renders the HUD and every enabled panel.
func (v *Viewer) drawPanels() {
	e := v.engine
	v.hud.Draw(ui.HUDData{
		Title:    v.title,
		Nodes:    e.Len(),
		Edges:    len(e.Edges()),
		K:        e.K(),
		Beta:     e.Beta(),
		Tick:     e.Ticks(),
		Revision: e.Revision(),
		Zoom:     v.camera.Zoom,
		FPS:      rl.GetFPS(),
		Running:  e.Running(),
		Selected: v.selection.Len(),
		Restored: e.RewireStats().Restored,
	})

	v.lastControls = v.controls.Draw(ui.ControlsData{
		K:             e.K(),
		MaxK:          e.MaxK(),
		Beta:          e.Beta(),
		Running:       e.Running(),
		StepsPerFrame: v.stepsPerFrame,
	}, v.overlays)

	if ws, ok := e.LastStats(); ok && v.overlays.IsEnabled(ui.OverlayStats) {
		v.stats.Draw(ws, e.Params().MaxDisplacement)
	}
	if v.perf != nil && v.overlays.IsEnabled(ui.OverlayPerf) {
		v.perfPanel.Draw(v.perf.Stats())
	}
	if i, ok := v.selection.Primary(); ok {
		v.inspector.Draw(nodeInfo(e, i, v.nodeDegrees()), v.selection.Len())
	}

	v.hud.DrawControls(int32(v.screenHeight), controlsLegend)
}

// nodeInfo collects inspector data for node i.
func nodeInfo(e *layout.Engine, i int, degrees []int) ui.NodeInfo {
	p := e.Positions()[i]
	info := ui.NodeInfo{Index: i, X: p.X, Y: p.Y}
	if i < len(degrees) {
		info.Degree = degrees[i]
	}
	for _, edge := range e.Edges() {
		switch i {
		case edge.Source:
			info.Neighbors = append(info.Neighbors, edge.Target)
		case edge.Target:
			info.Neighbors = append(info.Neighbors, edge.Source)
		}
	}
	return info
}

func degreesOf(e *layout.Engine) []int {
	return topology.Degrees(e.Len(), e.Edges())
}

func degreeRange(degrees []int) (lo, hi int) {
	if len(degrees) == 0 {
		return 0, 0
	}
	lo, hi = degrees[0], degrees[0]
	for _, d := range degrees[1:] {
		lo, hi = min(lo, d), max(hi, d)
	}
	return lo, hi
}

// degreeColor blends from low to high by where d sits in [lo, hi].
func degreeColor(low, high rl.Color, d, lo, hi int) rl.Color {
	if hi <= lo {
		return low
	}
	t := float32(d-lo) / float32(hi-lo)
	lerp := func(a, b uint8) uint8 { return uint8(float32(a) + (float32(b)-float32(a))*t) }
	return rl.Color{R: lerp(low.R, high.R), G: lerp(low.G, high.G), B: lerp(low.B, high.B), A: lerp(low.A, high.A)}
}
