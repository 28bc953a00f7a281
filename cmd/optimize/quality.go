package main

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/smallworld/components"
	"github.com/pthm-cable/smallworld/systems"
	"github.com/pthm-cable/smallworld/topology"
)

// Score weights.
const (
	overlapWeight  = 2.0
	residualWeight = 1.0
)

// LayoutQuality scores a settled layout. Lower is better on every field.
type LayoutQuality struct {
	EdgeCV   float64 // coefficient of variation of edge lengths
	Overlap  float64 // node pairs closer than the minimum separation, per node
	Residual float64 // last tick's max displacement as a fraction of the cap
	Score    float64
}

// MeasureLayout scores positions against edges. Layouts with non-finite
// positions get an infinite score.
func MeasureLayout(positions []components.Position, edges []topology.Edge, minSep, residual, maxDisp float32) LayoutQuality {
	n := len(positions)
	for _, p := range positions {
		if !p.Finite() {
			return LayoutQuality{Score: math.Inf(1)}
		}
	}

	var q LayoutQuality
	lengths := make([]float64, 0, len(edges))
	for _, e := range edges {
		if !e.Valid(n) {
			continue
		}
		lengths = append(lengths, float64(positions[e.Source].Dist(positions[e.Target])))
	}
	if len(lengths) > 1 {
		mean, std := stat.MeanStdDev(lengths, nil)
		if mean > 0 {
			q.EdgeCV = std / mean
		}
	}

	if n > 0 && minSep > 0 {
		grid := systems.NewSpatialGrid(minSep)
		grid.Rebuild(positions)
		near := 0
		sepSq := minSep * minSep
		grid.ForEachPair(func(i, j int) {
			if positions[i].DistSq(positions[j]) < sepSq {
				near++
			}
		})
		q.Overlap = float64(near) / float64(n)
	}

	if maxDisp > 0 {
		q.Residual = float64(residual / maxDisp)
	}

	q.Score = q.EdgeCV + overlapWeight*q.Overlap + residualWeight*q.Residual
	return q
}
