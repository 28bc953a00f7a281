package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/smallworld/components"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name                string
		values              []float64
		mean, p50, p90, max float64
	}{
		{"empty", nil, 0, 0, 0, 0},
		{"single", []float64{5}, 5, 5, 5, 5},
		{"one to ten", []float64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}, 5.5, 5, 9, 10},
		{"ignores NaN", []float64{2, math.NaN(), 4}, 3, 2, 4, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, p50, p90, maxV := Summarize(tt.values)
			if math.Abs(mean-tt.mean) > 1e-9 || p50 != tt.p50 || p90 != tt.p90 || maxV != tt.max {
				t.Errorf("Summarize(%v) = (%v, %v, %v, %v), want (%v, %v, %v, %v)",
					tt.values, mean, p50, p90, maxV, tt.mean, tt.p50, tt.p90, tt.max)
			}
		})
	}
}

func TestSummarizeDoesNotReorderInput(t *testing.T) {
	values := []float64{3, 1, 2}
	Summarize(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input reordered: %v", values)
	}
}

func TestCollectorWindow(t *testing.T) {
	c := NewCollector(4)
	if c.WindowTicks() != 4 {
		t.Fatalf("WindowTicks = %d, want 4", c.WindowTicks())
	}

	for tick := uint64(1); tick <= 4; tick++ {
		if c.ShouldFlush(tick - 1) {
			t.Fatalf("flush requested early at tick %d", tick-1)
		}
		c.Record(TickSample{
			Nodes:           10,
			Pairs:           20,
			Clamped:         1,
			SkippedEdges:    1,
			MaxDisplacement: float32(tick),
		})
	}
	if !c.ShouldFlush(4) {
		t.Fatal("expected flush at tick 4")
	}

	center := components.Position{X: 0, Y: 0}
	positions := []components.Position{{X: 3, Y: 4}, {X: 0, Y: 10}}
	ws := c.Flush(4, positions, center, 7)

	if ws.Ticks != 4 || ws.WindowStartTick != 0 || ws.WindowEndTick != 4 {
		t.Errorf("window bounds = %+v", ws)
	}
	if ws.Nodes != 2 || ws.Edges != 7 {
		t.Errorf("nodes/edges = %d/%d, want 2/7", ws.Nodes, ws.Edges)
	}
	if ws.DispMax != 4 || math.Abs(ws.DispMean-2.5) > 1e-9 {
		t.Errorf("disp mean/max = %v/%v, want 2.5/4", ws.DispMean, ws.DispMax)
	}
	if math.Abs(ws.ClampedFrac-0.1) > 1e-9 {
		t.Errorf("clamped frac = %v, want 0.1", ws.ClampedFrac)
	}
	if ws.PairsMean != 20 || ws.SkippedEdges != 4 {
		t.Errorf("pairs mean = %v, skipped = %d", ws.PairsMean, ws.SkippedEdges)
	}
	if math.Abs(ws.SpreadMean-7.5) > 1e-6 || math.Abs(ws.SpreadMax-10) > 1e-6 {
		t.Errorf("spread mean/max = %v/%v, want 7.5/10", ws.SpreadMean, ws.SpreadMax)
	}

	// Counters reset for the next window.
	if c.ShouldFlush(7) {
		t.Error("new window should not be complete at tick 7")
	}
	next := c.Flush(8, nil, center, 0)
	if next.Ticks != 0 || next.SkippedEdges != 0 || next.WindowStartTick != 4 {
		t.Errorf("counters not reset: %+v", next)
	}
}

func TestCollectorSkipsNonFinitePositions(t *testing.T) {
	c := NewCollector(1)
	nan := float32(math.NaN())
	ws := c.Flush(1, []components.Position{{X: nan, Y: 0}, {X: 1, Y: 0}}, components.Position{}, 0)
	if ws.SpreadMax != 1 {
		t.Errorf("spread max = %v, want 1", ws.SpreadMax)
	}
}
