package main

import (
	"math"

	"github.com/pthm-cable/smallworld/topology"
)

// Log-scale sweep range for beta.
const (
	minBetaExp = -4.0
	maxBetaExp = 0.0
)

// SweepRow is one beta of the sweep, normalized by the beta = 0 ring.
type SweepRow struct {
	Beta       float64 `csv:"beta"`
	Clustering float64 `csv:"clustering"`
	PathLength float64 `csv:"path_length"`
	CRatio     float64 `csv:"c_ratio"` // C(beta) / C(0)
	LRatio     float64 `csv:"l_ratio"` // L(beta) / L(0)
	Rewired    int     `csv:"rewired"`
	Connected  bool    `csv:"connected"`
}

// Betas returns steps values spaced evenly in log10 from 1e-4 to 1.
func Betas(steps int) []float64 {
	if steps < 1 {
		return nil
	}
	if steps == 1 {
		return []float64{math.Pow(10, maxBetaExp)}
	}
	out := make([]float64, steps)
	for i := range out {
		exp := minBetaExp + (maxBetaExp-minBetaExp)*float64(i)/float64(steps-1)
		out[i] = math.Pow(10, exp)
	}
	return out
}

// Sweep measures the graph at each beta against the unrewired ring.
// Every beta uses the same seed.
func Sweep(n, k int, seed uint64, betas []float64) (baseline topology.Metrics, rows []SweepRow) {
	baseline = topology.Measure(n, topology.Generate(n, k, 0, seed))
	for _, beta := range betas {
		edges, rs := topology.GenerateWithStats(n, k, float32(beta), seed)
		m := topology.Measure(n, edges)
		rows = append(rows, SweepRow{
			Beta:       beta,
			Clustering: m.Clustering,
			PathLength: m.PathLength,
			CRatio:     ratio(m.Clustering, baseline.Clustering),
			LRatio:     ratio(m.PathLength, baseline.PathLength),
			Rewired:    rs.Rewired,
			Connected:  m.Connected,
		})
	}
	return baseline, rows
}

func ratio(v, base float64) float64 {
	if base == 0 {
		return 0
	}
	return v / base
}
