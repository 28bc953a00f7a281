package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/smallworld/systems"
	"github.com/pthm-cable/smallworld/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title    string
	Nodes    int
	Edges    int
	K        int
	Beta     float32
	Tick     uint64
	Revision uint64
	Zoom     float32
	FPS      int32
	Running  bool
	Selected int
	Restored int // rewires that kept their original edge
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD at the top-left corner.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Nodes: %d | Edges: %d | k: %d | beta: %.2f", data.Nodes, data.Edges, data.K, data.Beta),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Tick: %d | Rev: %d | Zoom: %.2fx | FPS: %d", data.Tick, data.Revision, data.Zoom, data.FPS),
		10, 55, 16, rl.LightGray,
	)

	status := "PAUSED"
	if data.Running {
		status = "Running"
	}
	if data.Selected > 0 {
		status += fmt.Sprintf(" | %d selected", data.Selected)
	}
	rl.DrawText(status, 10, 75, 16, rl.Yellow)

	if data.Restored > 0 {
		rl.DrawText(fmt.Sprintf("%d rewires kept their original edge", data.Restored), 10, 95, 14, rl.Orange)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders per-phase tick timings.
type PerfPanel struct {
	renderer *Renderer
	registry *systems.SystemRegistry
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32, registry *systems.SystemRegistry) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		registry: registry,
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	ids := p.registry.IDs()
	height := r.Theme.Padding*2 + 36 + int32(len(ids))*14
	r.DrawPanel(p.x, p.y, 290, height)

	x := p.x + r.Theme.Padding
	y := p.y + r.Theme.Padding
	rl.DrawText("Tick Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Avg: %s  (%.0f ticks/s)", stats.AvgTickDuration.Round(time.Microsecond), stats.TicksPerSecond), x, y, 14, rl.Yellow)
	y += 16

	for _, id := range ids {
		pct := stats.PhasePct[id]
		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}
		rl.DrawText(
			fmt.Sprintf("%-14s %8s %5.1f%%", p.registry.GetName(id), stats.PhaseAvg[id].Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}

// StatsPanel renders the latest layout stats window.
type StatsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewStatsPanel creates a new layout stats panel.
func NewStatsPanel(x, y, width int32) *StatsPanel {
	return &StatsPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (s *StatsPanel) SetPosition(x, y int32) {
	s.x = x
	s.y = y
}

// Draw renders the panel. maxDisp scales the displacement bar.
func (s *StatsPanel) Draw(ws telemetry.WindowStats, maxDisp float32) {
	r := s.renderer
	pad := r.Theme.Padding
	r.DrawPanel(s.x, s.y, s.width, r.Theme.LineHeight*8+pad*2)

	x := s.x + pad
	y := s.y + pad
	inner := s.width - pad*2
	y = r.DrawSectionHeader(x, y, fmt.Sprintf("Layout (ticks %d-%d)", ws.WindowStartTick, ws.WindowEndTick))

	disp := float32(0)
	if maxDisp > 0 {
		disp = float32(ws.DispP90) / maxDisp
	}
	y = r.DrawBar(x, y, "disp p90", disp, 0.9, inner)
	y = r.DrawBar(x, y, "clamped", float32(ws.ClampedFrac), 0.5, inner)
	y = r.DrawLabelValue(x, y, "disp max", fmt.Sprintf("%.3f", ws.DispMax))
	y = r.DrawLabelValue(x, y, "pairs", fmt.Sprintf("%.0f", ws.PairsMean))
	y = r.DrawLabelValue(x, y, "spread", fmt.Sprintf("%.0f (p90 %.0f)", ws.SpreadMean, ws.SpreadP90))
	r.DrawLabelValue(x, y, "skipped", fmt.Sprintf("%d", ws.SkippedEdges))
}
