package telemetry

import "github.com/pthm-cable/smallworld/components"

// TickSample is the per-tick input to a Collector.
type TickSample struct {
	Nodes           int
	Pairs           int
	SkippedEdges    int
	Clamped         int
	NonFinite       int
	MaxDisplacement float32
}

// Collector accumulates tick samples and produces WindowStats every
// windowTicks ticks.
type Collector struct {
	windowTicks     uint64
	windowStartTick uint64

	maxDisp      []float64
	pairs        int
	nodeUpdates  int
	clamped      int
	nonFinite    int
	skippedEdges int
}

// NewCollector creates a collector with windows of windowTicks ticks.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{
		windowTicks: uint64(windowTicks),
		maxDisp:     make([]float64, 0, windowTicks),
	}
}

// Record adds one tick to the current window.
func (c *Collector) Record(s TickSample) {
	c.maxDisp = append(c.maxDisp, float64(s.MaxDisplacement))
	c.pairs += s.Pairs
	c.nodeUpdates += s.Nodes
	c.clamped += s.Clamped
	c.nonFinite += s.NonFinite
	c.skippedEdges += s.SkippedEdges
}

// ShouldFlush reports whether the window ending at currentTick is complete.
func (c *Collector) ShouldFlush(currentTick uint64) bool {
	return currentTick >= c.windowStartTick+c.windowTicks
}

// Flush produces the stats for the current window and starts a new one.
// positions and center are sampled for the spread figures.
func (c *Collector) Flush(currentTick uint64, positions []components.Position, center components.Position, edges int) WindowStats {
	ws := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		Ticks:           len(c.maxDisp),
		Nodes:           len(positions),
		Edges:           edges,
		NonFinite:       c.nonFinite,
		SkippedEdges:    c.skippedEdges,
	}
	ws.DispMean, ws.DispP50, ws.DispP90, ws.DispMax = Summarize(c.maxDisp)
	if ws.Ticks > 0 {
		ws.PairsMean = float64(c.pairs) / float64(ws.Ticks)
	}
	if c.nodeUpdates > 0 {
		ws.ClampedFrac = float64(c.clamped) / float64(c.nodeUpdates)
	}

	radii := make([]float64, 0, len(positions))
	for _, p := range positions {
		if !p.Finite() {
			continue
		}
		radii = append(radii, float64(p.Dist(center)))
	}
	ws.SpreadMean, _, ws.SpreadP90, ws.SpreadMax = Summarize(radii)

	c.windowStartTick = currentTick
	c.maxDisp = c.maxDisp[:0]
	c.pairs = 0
	c.nodeUpdates = 0
	c.clamped = 0
	c.nonFinite = 0
	c.skippedEdges = 0
	return ws
}

// WindowTicks returns the number of ticks per window.
func (c *Collector) WindowTicks() int {
	return int(c.windowTicks)
}
