package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/smallworld/components"
	"github.com/pthm-cable/smallworld/config"
	"github.com/pthm-cable/smallworld/topology"
)

func TestMeasureLayout(t *testing.T) {
	square := []components.Position{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	ring := []topology.Edge{{Source: 0, Target: 1}, {Source: 1, Target: 2}, {Source: 2, Target: 3}, {Source: 0, Target: 3}}

	q := MeasureLayout(square, ring, 5, 0, 5)
	if q.EdgeCV != 0 || q.Overlap != 0 || q.Residual != 0 || q.Score != 0 {
		t.Errorf("even square should score 0, got %+v", q)
	}

	// Two nodes on top of each other.
	crowded := []components.Position{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 50, Y: 50}, {X: 90, Y: 90}}
	q = MeasureLayout(crowded, nil, 5, 2.5, 5)
	if q.Overlap != 0.25 {
		t.Errorf("Overlap = %v, want 1 pair / 4 nodes", q.Overlap)
	}
	if q.Residual != 0.5 {
		t.Errorf("Residual = %v, want 0.5", q.Residual)
	}
	if want := overlapWeight*0.25 + residualWeight*0.5; math.Abs(q.Score-want) > 1e-9 {
		t.Errorf("Score = %v, want %v", q.Score, want)
	}

	bad := []components.Position{{X: float32(math.Inf(1)), Y: 0}}
	if q := MeasureLayout(bad, nil, 5, 0, 5); !math.IsInf(q.Score, 1) {
		t.Errorf("non-finite layout score = %v, want +Inf", q.Score)
	}
}

func TestMeasureLayoutUnevenEdges(t *testing.T) {
	pos := []components.Position{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 40, Y: 0}}
	edges := []topology.Edge{{Source: 0, Target: 1}, {Source: 1, Target: 2}}
	q := MeasureLayout(pos, edges, 1, 0, 5)
	// Lengths 10 and 30: mean 20, sample stddev sqrt(200).
	if want := math.Sqrt(200) / 20; math.Abs(q.EdgeCV-want) > 1e-6 {
		t.Errorf("EdgeCV = %v, want %v", q.EdgeCV, want)
	}
}

func TestParamVectorRoundTrip(t *testing.T) {
	pv := NewParamVector()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	got := pv.ExtractFromConfig(cfg)
	want := pv.DefaultVector()
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("%s: config default %v, declared default %v", pv.Specs[i].Name, got[i], want[i])
		}
	}

	norm := pv.Normalize(want)
	back := pv.Denormalize(norm)
	for i := range want {
		if math.Abs(back[i]-want[i]) > 1e-9 {
			t.Errorf("%s: roundtrip %v, want %v", pv.Specs[i].Name, back[i], want[i])
		}
	}

	over := make([]float64, pv.Dim())
	for i, s := range pv.Specs {
		over[i] = s.Max * 10
	}
	pv.ApplyToConfig(cfg, over)
	if cfg.Physics.Repulsion != 400 || cfg.Physics.Damping != 0.98 {
		t.Errorf("ApplyToConfig should clamp, got %+v", cfg.Physics)
	}
	if cfg.Physics.DT != 0.5 {
		t.Errorf("locked dt changed to %v", cfg.Physics.DT)
	}
}
