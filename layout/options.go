package layout

import (
	"log/slog"

	"github.com/pthm-cable/smallworld/components"
	"github.com/pthm-cable/smallworld/config"
	"github.com/pthm-cable/smallworld/systems"
	"github.com/pthm-cable/smallworld/telemetry"
	"github.com/pthm-cable/smallworld/topology"
)

// TickReport is the per-step summary produced by the force simulator.
type TickReport = systems.TickReport

// Options configures a new Engine.
type Options struct {
	Nodes    int
	K        int
	Beta     float32
	BetaStep float32

	TopologySeed uint64
	ScatterSeed  uint64
	Viewport     components.Viewport
	Params       systems.Params

	// Optional collaborators; nil disables each.
	Logger   *slog.Logger
	Perf     *telemetry.PerfCollector
	Stats    *telemetry.Collector
	Output   *telemetry.OutputManager
	LogStats bool
}

// DefaultOptions returns the built-in graph, seeds, viewport and physics.
func DefaultOptions() Options {
	return Options{
		Nodes:        250,
		K:            3,
		Beta:         0.05,
		BetaStep:     0.05,
		TopologySeed: topology.DefaultSeed,
		ScatterSeed:  systems.DefaultScatterSeed,
		Viewport:     systems.DefaultViewport,
		Params:       systems.DefaultParams(),
	}
}

// OptionsFromConfig builds engine options from a loaded config.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Nodes:        cfg.Topology.Nodes,
		K:            cfg.Topology.K,
		Beta:         float32(cfg.Topology.Beta),
		BetaStep:     float32(cfg.Topology.BetaStep),
		TopologySeed: cfg.Topology.Seed,
		ScatterSeed:  cfg.Scatter.Seed,
		Viewport:     cfg.Derived.Viewport,
		Params:       ParamsFromConfig(cfg),
	}
}

// ParamsFromConfig converts the physics section into simulator parameters.
func ParamsFromConfig(cfg *config.Config) systems.Params {
	p := cfg.Physics
	return systems.Params{
		Repulsion:       float32(p.Repulsion),
		Attraction:      float32(p.Attraction),
		Gravity:         float32(p.Gravity),
		Damping:         float32(p.Damping),
		DT:              float32(p.DT),
		MaxDisplacement: float32(p.MaxDisplacement),
		Epsilon:         float32(p.Epsilon),
		Center:          cfg.Derived.Center,
		CellSize:        float32(p.GridCellSize),
	}
}
