package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated layout statistics for a window of ticks.
type WindowStats struct {
	WindowStartTick uint64 `csv:"-"`
	WindowEndTick   uint64 `csv:"window_end"`
	Ticks           int    `csv:"ticks"`

	// Graph size at window end
	Nodes int `csv:"nodes"`
	Edges int `csv:"edges"`

	// Per-tick maximum displacement across the window
	DispMean float64 `csv:"disp_mean"`
	DispP50  float64 `csv:"disp_p50"`
	DispP90  float64 `csv:"disp_p90"`
	DispMax  float64 `csv:"disp_max"`

	// Fraction of node updates that hit the displacement cap
	ClampedFrac float64 `csv:"clamped_frac"`
	NonFinite   int     `csv:"non_finite"`

	PairsMean    float64 `csv:"pairs_mean"`
	SkippedEdges int     `csv:"skipped_edges"`

	// Distance of nodes from the gravity center, sampled at window end
	SpreadMean float64 `csv:"spread_mean"`
	SpreadP90  float64 `csv:"spread_p90"`
	SpreadMax  float64 `csv:"spread_max"`
}

// Summarize returns the mean, median, 90th percentile and maximum of values.
// Percentiles use the empirical distribution. NaN entries are ignored.
func Summarize(values []float64) (mean, p50, p90, maxV float64) {
	sorted := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			sorted = append(sorted, v)
		}
	}
	if len(sorted) == 0 {
		return 0, 0, 0, 0
	}
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	return mean, p50, p90, sorted[len(sorted)-1]
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("window_start", s.WindowStartTick),
		slog.Uint64("window_end", s.WindowEndTick),
		slog.Int("ticks", s.Ticks),
		slog.Int("nodes", s.Nodes),
		slog.Int("edges", s.Edges),
		slog.Float64("disp_mean", s.DispMean),
		slog.Float64("disp_p90", s.DispP90),
		slog.Float64("disp_max", s.DispMax),
		slog.Float64("clamped_frac", s.ClampedFrac),
		slog.Int("non_finite", s.NonFinite),
		slog.Float64("pairs_mean", s.PairsMean),
		slog.Int("skipped_edges", s.SkippedEdges),
		slog.Float64("spread_mean", s.SpreadMean),
		slog.Float64("spread_max", s.SpreadMax),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
