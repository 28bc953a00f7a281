package main

import (
	"log/slog"
	"math"
	"sync"

	"github.com/pthm-cable/smallworld/config"
	"github.com/pthm-cable/smallworld/layout"
)

// FitnessEvaluator runs headless layouts and scores them.
type FitnessEvaluator struct {
	params     *ParamVector
	ticks      int
	seeds      []uint64
	baseConfig *config.Config

	mu          sync.Mutex
	bestFitness float64
	lastQuality LayoutQuality // mean quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, ticks int, seeds []uint64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		ticks:       ticks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		bestFitness: math.Inf(1),
	}
}

// LastQuality returns the mean quality from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() LayoutQuality {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
// Each seed scatters the same graph differently; seeds run in parallel on
// independent engines.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := *fe.baseConfig
	fe.params.ApplyToConfig(&cfg, x)

	results := make([]LayoutQuality, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s uint64) {
			defer wg.Done()
			results[idx] = fe.runLayout(&cfg, s)
		}(i, seed)
	}
	wg.Wait()

	var mean LayoutQuality
	for _, r := range results {
		mean.EdgeCV += r.EdgeCV
		mean.Overlap += r.Overlap
		mean.Residual += r.Residual
		mean.Score += r.Score
	}
	n := float64(len(results))
	mean.EdgeCV /= n
	mean.Overlap /= n
	mean.Residual /= n
	mean.Score /= n

	fe.mu.Lock()
	fe.bestFitness = min(fe.bestFitness, mean.Score)
	fe.lastQuality = mean
	fe.mu.Unlock()

	return mean.Score
}

// runLayout settles one layout and measures it.
func (fe *FitnessEvaluator) runLayout(cfg *config.Config, scatterSeed uint64) LayoutQuality {
	opts := layout.OptionsFromConfig(cfg)
	opts.ScatterSeed = scatterSeed
	opts.Logger = slog.New(slog.DiscardHandler)

	e := layout.New(opts)
	e.SetRunning(true)
	var last layout.TickResult
	for range fe.ticks {
		last = e.Tick()
	}

	return MeasureLayout(
		e.Positions(),
		e.Edges(),
		2*float32(cfg.Viewer.NodeRadius),
		last.Report.MaxDisplacement,
		opts.Params.MaxDisplacement,
	)
}
