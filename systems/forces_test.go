package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/smallworld/components"
	"github.com/pthm-cable/smallworld/topology"
)

func TestClampDisplacement(t *testing.T) {
	tests := []struct {
		name        string
		dx, dy, max float32
		wantClamped bool
	}{
		{"small", 1, 1, 5, false},
		{"exact", 3, 4, 5, false},
		{"large", 300, 400, 5, true},
		{"huge", 1e30, -1e30, 5, true},
		{"max float", math.MaxFloat32, math.MaxFloat32, 5, true},
		{"infinite", float32(math.Inf(1)), 0, 5, true},
		{"disabled", 300, 400, 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dx, dy, clamped := ClampDisplacement(tc.dx, tc.dy, tc.max)
			if clamped != tc.wantClamped {
				t.Fatalf("clamped = %v, want %v", clamped, tc.wantClamped)
			}
			if !clamped {
				if dx != tc.dx || dy != tc.dy {
					t.Errorf("unclamped displacement changed: (%v, %v)", dx, dy)
				}
				return
			}
			mag := math.Hypot(float64(dx), float64(dy))
			if math.Abs(mag-float64(tc.max)) > 1e-4 {
				t.Errorf("magnitude = %v, want %v", mag, tc.max)
			}
			// direction preserved
			if (tc.dx > 0) != (dx > 0) || (tc.dy > 0) != (dy > 0) {
				t.Errorf("direction flipped: (%v, %v) -> (%v, %v)", tc.dx, tc.dy, dx, dy)
			}
		})
	}
}

func TestStepDisplacementBound(t *testing.T) {
	p := DefaultParams()
	p.Repulsion = 1e30
	p.Attraction = 1e20
	positions := []components.Position{{X: 0, Y: 0}, {X: 0.001, Y: 0}, {X: 5000, Y: -9000}}
	before := append([]components.Position(nil), positions...)
	edges := []topology.Edge{{Source: 0, Target: 2}}

	rep := NewSimulator(p.CellSize).Step(positions, edges, p)
	for i := range positions {
		d := positions[i].Dist(before[i])
		if d > p.MaxDisplacement*1.0001 {
			t.Errorf("node %d moved %v > %v", i, d, p.MaxDisplacement)
		}
		if !positions[i].Finite() {
			t.Errorf("node %d not finite: %+v", i, positions[i])
		}
	}
	if rep.Clamped == 0 {
		t.Error("expected clamped displacements")
	}
	if rep.MaxDisplacement > p.MaxDisplacement*1.0001 {
		t.Errorf("reported max displacement %v", rep.MaxDisplacement)
	}
}

func TestStepRepulsionSymmetric(t *testing.T) {
	p := DefaultParams()
	p.Attraction = 0
	p.Gravity = 0
	p.MaxDisplacement = 1000
	positions := []components.Position{{X: 100, Y: 100}, {X: 110, Y: 100}}

	rep := NewSimulator(p.CellSize).Step(positions, nil, p)
	if rep.Pairs != 1 {
		t.Fatalf("pairs = %d, want 1", rep.Pairs)
	}
	if positions[0].X >= 100 || positions[1].X <= 110 {
		t.Errorf("nodes did not separate: %+v", positions)
	}
	moved0 := 100 - positions[0].X
	moved1 := positions[1].X - 110
	if math.Abs(float64(moved0-moved1)) > 1e-4 {
		t.Errorf("asymmetric push: %v vs %v", moved0, moved1)
	}
	// 120 * 10 / (100 + 0.01) * 0.5 * 0.85
	want := 120.0 * 10 / 100.01 * 0.5 * 0.85
	if math.Abs(float64(moved0)-want) > 1e-3 {
		t.Errorf("displacement = %v, want %v", moved0, want)
	}
}

func TestStepCoincidentNodesStayFinite(t *testing.T) {
	p := DefaultParams()
	positions := []components.Position{{X: 10, Y: 10}, {X: 10, Y: 10}}
	NewSimulator(p.CellSize).Step(positions, nil, p)
	for i, pos := range positions {
		if !pos.Finite() {
			t.Errorf("node %d diverged: %+v", i, pos)
		}
	}
}

func TestStepSpringAttraction(t *testing.T) {
	p := DefaultParams()
	p.Repulsion = 0
	p.Gravity = 0
	positions := []components.Position{{X: 0, Y: 0}, {X: 500, Y: 0}}
	edges := []topology.Edge{{Source: 0, Target: 1}}

	NewSimulator(p.CellSize).Step(positions, edges, p)
	// 0.03 * 500 * 0.5 * 0.85 = 6.375, capped at 5
	if positions[0].X != 5 || positions[1].X != 495 {
		t.Errorf("positions = %+v, want x=5 and x=495", positions)
	}
}

func TestStepGravity(t *testing.T) {
	p := DefaultParams()
	p.Repulsion = 0
	p.Center = components.Position{X: 100, Y: 100}
	positions := []components.Position{{X: 0, Y: 100}}

	NewSimulator(p.CellSize).Step(positions, nil, p)
	// 0.006 * 100 * 0.5 * 0.85
	want := float32(0.006 * 100 * 0.5 * 0.85)
	if math.Abs(float64(positions[0].X-want)) > 1e-5 || positions[0].Y != 100 {
		t.Errorf("position = %+v, want x=%v", positions[0], want)
	}
}

func TestStepSkipsBadEdges(t *testing.T) {
	p := DefaultParams()
	positions := []components.Position{{X: 0, Y: 0}, {X: 50, Y: 0}}
	edges := []topology.Edge{{Source: 0, Target: 1}, {Source: 1, Target: 9}, {Source: -1, Target: 0}}

	rep := NewSimulator(p.CellSize).Step(positions, edges, p)
	if rep.SkippedEdges != 2 {
		t.Errorf("skipped = %d, want 2", rep.SkippedEdges)
	}
}

func TestStepUsesSnapshot(t *testing.T) {
	// Node order must not bias the result: mirrored inputs give mirrored outputs.
	p := DefaultParams()
	p.Center = components.Position{X: 0, Y: 0}
	a := []components.Position{{X: -30, Y: 0}, {X: 30, Y: 0}}
	b := []components.Position{{X: 30, Y: 0}, {X: -30, Y: 0}}
	edges := []topology.Edge{{Source: 0, Target: 1}}

	NewSimulator(p.CellSize).Step(a, edges, p)
	NewSimulator(p.CellSize).Step(b, edges, p)
	if a[0].X != b[1].X || a[1].X != b[0].X {
		t.Errorf("order dependent result: %+v vs %+v", a, b)
	}
	if a[0].X != -a[1].X {
		t.Errorf("expected symmetric result, got %+v", a)
	}
}

func TestTickDoesNotMutateInput(t *testing.T) {
	p := DefaultParams()
	in := Scatter(20, 5, DefaultViewport)
	orig := append([]components.Position(nil), in...)
	edges := topology.Generate(20, 2, 0.2, 5)

	out, _ := Tick(in, edges, p)
	for i := range in {
		if in[i] != orig[i] {
			t.Fatalf("input mutated at %d", i)
		}
	}
	changed := false
	for i := range out {
		if out[i] != in[i] {
			changed = true
		}
	}
	if !changed {
		t.Error("Tick produced no movement")
	}
}

func TestTickDeterministic(t *testing.T) {
	p := DefaultParams()
	pos := Scatter(100, 1, DefaultViewport)
	edges := topology.Generate(100, 3, 0.1, 1)

	a, b := pos, pos
	for i := 0; i < 20; i++ {
		a, _ = Tick(a, edges, p)
		b, _ = Tick(b, edges, p)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("node %d differs after 20 ticks", i)
		}
	}
}

func TestRingLatticeStability(t *testing.T) {
	p := DefaultParams()
	pos := Scatter(10, DefaultScatterSeed, DefaultViewport)
	edges := topology.Generate(10, 2, 0, topology.DefaultSeed)
	sim := NewSimulator(p.CellSize)

	for i := 0; i < 500; i++ {
		sim.Step(pos, edges, p)
	}

	const radius = 1500
	for i, q := range pos {
		if !q.Finite() {
			t.Fatalf("node %d diverged: %+v", i, q)
		}
		if d := q.Dist(p.Center); d > radius {
			t.Errorf("node %d is %v from center, limit %v", i, d, radius)
		}
	}
}

func TestStepEmpty(t *testing.T) {
	rep := NewSimulator(100).Step(nil, []topology.Edge{{Source: 0, Target: 1}}, DefaultParams())
	if rep != (TickReport{}) {
		t.Errorf("expected zero report, got %+v", rep)
	}
}

func BenchmarkStep250(b *testing.B) {
	p := DefaultParams()
	pos := Scatter(250, DefaultScatterSeed, DefaultViewport)
	edges := topology.Generate(250, 3, 0.05, topology.DefaultSeed)
	sim := NewSimulator(p.CellSize)

	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		sim.Step(pos, edges, p)
	}
}
