package systems

import (
	"math"

	"github.com/pthm-cable/smallworld/components"
	"github.com/pthm-cable/smallworld/telemetry"
	"github.com/pthm-cable/smallworld/topology"
)

// Params holds the force model constants. They stay fixed for a run.
type Params struct {
	Repulsion       float32 // pairwise push strength
	Attraction      float32 // spring constant along edges
	Gravity         float32 // pull toward Center
	Damping         float32 // displacement scale
	DT              float32 // time step
	MaxDisplacement float32 // per-tick displacement cap
	Epsilon         float32 // softening added to squared distance
	Center          components.Position
	CellSize        float32 // spatial grid cell size
}

// DefaultParams returns the tuned defaults.
func DefaultParams() Params {
	return Params{
		Repulsion:       120,
		Attraction:      0.03,
		Gravity:         0.006,
		Damping:         0.85,
		DT:              0.5,
		MaxDisplacement: 5,
		Epsilon:         0.01,
		Center:          components.Position{X: 800, Y: 200},
		CellSize:        DefaultCellSize,
	}
}

// PhaseTimer receives phase boundaries during a step. telemetry.PerfCollector
// satisfies it.
type PhaseTimer interface {
	StartPhase(phase string)
}

// TickReport summarizes one simulation step.
type TickReport struct {
	Pairs            int     // repulsion pairs visited
	SkippedEdges     int     // edges with an out-of-range endpoint
	Clamped          int     // nodes whose displacement hit the cap
	NonFinite        int     // nodes whose displacement was dropped as NaN/Inf
	MaxDisplacement  float32 // largest applied displacement
	MeanDisplacement float32 // mean applied displacement
}

// Simulator computes forces and integrates positions. It keeps scratch
// buffers between steps and is not safe for concurrent use.
type Simulator struct {
	grid   *SpatialGrid
	fx, fy []float32
	dx, dy []float32
	timer  PhaseTimer
}

// NewSimulator creates a simulator whose grid uses cellSize.
func NewSimulator(cellSize float32) *Simulator {
	return &Simulator{grid: NewSpatialGrid(cellSize)}
}

// SetPhaseTimer attaches an optional phase timer. Pass nil to detach.
func (s *Simulator) SetPhaseTimer(t PhaseTimer) {
	s.timer = t
}

// Grid exposes the spatial grid built by the last step.
func (s *Simulator) Grid() *SpatialGrid {
	return s.grid
}

func (s *Simulator) phase(name string) {
	if s.timer != nil {
		s.timer.StartPhase(name)
	}
}

// Step advances positions by one tick in place. Forces are accumulated from
// the positions as they were at entry; displacements are applied afterwards
// in a single pass.
func (s *Simulator) Step(positions []components.Position, edges []topology.Edge, p Params) TickReport {
	var rep TickReport
	n := len(positions)
	if n == 0 {
		return rep
	}
	if p.CellSize > 0 && p.CellSize != s.grid.cellSize {
		s.grid = NewSpatialGrid(p.CellSize)
	}
	s.resize(n)

	s.phase(telemetry.PhaseSpatialGrid)
	s.grid.Rebuild(positions)

	s.phase(telemetry.PhaseRepulsion)
	rep.Pairs = s.repel(positions, p)

	s.phase(telemetry.PhaseAttraction)
	rep.SkippedEdges = s.attract(positions, edges, p)

	s.phase(telemetry.PhaseGravity)
	s.gravitate(positions, p)

	s.phase(telemetry.PhaseIntegrate)
	s.integrate(positions, p, &rep)
	return rep
}

func (s *Simulator) resize(n int) {
	if cap(s.fx) < n {
		s.fx = make([]float32, n)
		s.fy = make([]float32, n)
		s.dx = make([]float32, n)
		s.dy = make([]float32, n)
	}
	s.fx = s.fx[:n]
	s.fy = s.fy[:n]
	s.dx = s.dx[:n]
	s.dy = s.dy[:n]
	clear(s.fx)
	clear(s.fy)
}

// repel pushes grid neighbors apart by Repulsion * d / (|d|^2 + Epsilon).
func (s *Simulator) repel(pos []components.Position, p Params) int {
	pairs := 0
	s.grid.ForEachPair(func(i, j int) {
		dx := pos[j].X - pos[i].X
		dy := pos[j].Y - pos[i].Y
		inv := p.Repulsion / (dx*dx + dy*dy + p.Epsilon)
		fx := dx * inv
		fy := dy * inv
		s.fx[i] -= fx
		s.fy[i] -= fy
		s.fx[j] += fx
		s.fy[j] += fy
		pairs++
	})
	return pairs
}

// attract applies a zero-rest-length spring along every edge.
func (s *Simulator) attract(pos []components.Position, edges []topology.Edge, p Params) int {
	n := len(pos)
	skipped := 0
	for _, e := range edges {
		i, j := e.Source, e.Target
		if i < 0 || j < 0 || i >= n || j >= n {
			skipped++
			continue
		}
		fx := p.Attraction * (pos[j].X - pos[i].X)
		fy := p.Attraction * (pos[j].Y - pos[i].Y)
		s.fx[i] += fx
		s.fy[i] += fy
		s.fx[j] -= fx
		s.fy[j] -= fy
	}
	return skipped
}

func (s *Simulator) gravitate(pos []components.Position, p Params) {
	for i := range pos {
		s.fx[i] += p.Gravity * (p.Center.X - pos[i].X)
		s.fy[i] += p.Gravity * (p.Center.Y - pos[i].Y)
	}
}

func (s *Simulator) integrate(pos []components.Position, p Params, rep *TickReport) {
	scale := p.DT * p.Damping
	var sum float64
	for i := range pos {
		dx, dy, clamped := ClampDisplacement(s.fx[i]*scale, s.fy[i]*scale, p.MaxDisplacement)
		if !finite(dx) || !finite(dy) {
			dx, dy = 0, 0
			rep.NonFinite++
		}
		if clamped {
			rep.Clamped++
		}
		s.dx[i] = dx
		s.dy[i] = dy
		mag := float32(math.Hypot(float64(dx), float64(dy)))
		sum += float64(mag)
		if mag > rep.MaxDisplacement {
			rep.MaxDisplacement = mag
		}
	}
	for i := range pos {
		pos[i].X += s.dx[i]
		pos[i].Y += s.dy[i]
	}
	rep.MeanDisplacement = float32(sum / float64(len(pos)))
}

// ClampDisplacement rescales (dx, dy) to length maxDisp when it is longer,
// keeping its direction. The magnitude is computed in float64 so very large
// inputs do not overflow. A non-positive maxDisp disables the cap.
func ClampDisplacement(dx, dy, maxDisp float32) (float32, float32, bool) {
	if !(maxDisp > 0) {
		return dx, dy, false
	}
	x, y := float64(dx), float64(dy)
	d2 := x*x + y*y
	limit := float64(maxDisp)
	if !(d2 > limit*limit) {
		return dx, dy, false
	}
	if math.IsInf(d2, 0) {
		// Only infinite components can overflow float64 here; keep their signs.
		x, y = unitSign(x), unitSign(y)
		d2 = x*x + y*y
	}
	s := limit / math.Sqrt(d2)
	return float32(x * s), float32(y * s), true
}

func unitSign(v float64) float64 {
	switch {
	case math.IsInf(v, 1):
		return 1
	case math.IsInf(v, -1):
		return -1
	default:
		return 0
	}
}

func finite(v float32) bool {
	return !math.IsNaN(float64(v)) && !math.IsInf(float64(v), 0)
}
