// Package layout owns the graph and node positions and advances the force
// layout one tick at a time on behalf of a host.
//
// An Engine is single-threaded. Hosts read Positions and Edges between ticks
// and must not call into the engine from more than one goroutine.
package layout

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/pthm-cable/smallworld/components"
	"github.com/pthm-cable/smallworld/systems"
	"github.com/pthm-cable/smallworld/telemetry"
	"github.com/pthm-cable/smallworld/topology"
)

// betaEpsilon is the smallest beta change that triggers regeneration.
const betaEpsilon = 1e-4

// Engine runs the layout state machine.
type Engine struct {
	opts Options
	log  *slog.Logger

	state State
	k     int
	beta  float32

	positions []components.Position
	edges     []topology.Edge
	rewire    topology.RewireStats
	sim       *systems.Simulator

	tick     uint64 // simulation steps taken
	revision uint64 // bumped on every observable change

	edgeGen       uint64 // bumped on every edge replacement
	warnedEdgeGen uint64

	lastStats telemetry.WindowStats
	hasStats  bool
}

// New generates the topology, scatters the nodes and returns a paused engine.
func New(opts Options) *Engine {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.BetaStep <= 0 {
		opts.BetaStep = 0.05
	}
	if opts.Nodes < 0 {
		opts.Nodes = 0
	}

	e := &Engine{
		opts:      opts,
		log:       opts.Logger,
		state:     Paused,
		beta:      clampUnit(opts.Beta),
		positions: systems.Scatter(opts.Nodes, opts.ScatterSeed, opts.Viewport),
		sim:       systems.NewSimulator(opts.Params.CellSize),
	}
	e.k = min(max(opts.K, 1), topology.MaxK(opts.Nodes))
	if opts.Perf != nil {
		e.sim.SetPhaseTimer(opts.Perf)
	}
	e.regenerate(telemetry.EventGenerated)
	return e
}

// State returns the current run state.
func (e *Engine) State() State { return e.state }

// Running reports whether the engine is running.
func (e *Engine) Running() bool { return e.state == Running }

// SetRunning moves the engine to Running or Paused.
func (e *Engine) SetRunning(running bool) {
	next := Paused
	if running {
		next = Running
	}
	if next == e.state {
		return
	}
	e.state = next
	e.revision++
	e.log.Debug("layout state changed", "state", next.String(), "tick", e.tick)
}

// Toggle flips between Running and Paused and returns the new state.
func (e *Engine) Toggle() State {
	e.SetRunning(e.state != Running)
	return e.state
}

// Tick advances one simulation step when running. While paused it changes
// nothing and does not request another tick.
func (e *Engine) Tick() TickResult {
	if e.state != Running {
		return TickResult{Revision: e.revision}
	}

	perf := e.opts.Perf
	perf.StartTick()
	rep := e.sim.Step(e.positions, e.edges, e.opts.Params)
	e.tick++
	e.revision++

	perf.StartPhase(telemetry.PhaseTelemetry)
	e.observe(rep)
	perf.EndTick()

	return TickResult{
		Advanced:    true,
		Revision:    e.revision,
		RequestNext: e.state == Running,
		Report:      rep,
	}
}

// observe surfaces diagnostics and feeds the stats window.
func (e *Engine) observe(rep TickReport) {
	if rep.SkippedEdges > 0 && e.warnedEdgeGen != e.edgeGen {
		e.warnedEdgeGen = e.edgeGen
		e.log.Warn("skipped edges with out-of-range endpoints",
			"skipped", rep.SkippedEdges,
			"nodes", len(e.positions),
			"tick", e.tick,
		)
	}
	if rep.NonFinite > 0 {
		e.log.Warn("dropped non-finite displacements", "nodes", rep.NonFinite, "tick", e.tick)
	}

	stats := e.opts.Stats
	if stats == nil {
		return
	}
	stats.Record(telemetry.TickSample{
		Nodes:           len(e.positions),
		Pairs:           rep.Pairs,
		SkippedEdges:    rep.SkippedEdges,
		Clamped:         rep.Clamped,
		NonFinite:       rep.NonFinite,
		MaxDisplacement: rep.MaxDisplacement,
	})
	if !stats.ShouldFlush(e.tick) {
		return
	}

	ws := stats.Flush(e.tick, e.positions, e.opts.Params.Center, len(e.edges))
	e.lastStats, e.hasStats = ws, true
	perfStats := e.opts.Perf.Stats()
	if e.opts.LogStats {
		ws.LogStats()
		perfStats.LogStats()
	}
	if err := e.opts.Output.WriteStats(ws); err != nil {
		e.log.Error("failed to write layout stats", "error", err)
	}
	if e.opts.Perf != nil {
		if err := e.opts.Output.WritePerf(perfStats, e.tick); err != nil {
			e.log.Error("failed to write perf", "error", err)
		}
	}
}

// K returns the effective ring degree in use.
func (e *Engine) K() int { return e.k }

// Beta returns the rewiring probability in use.
func (e *Engine) Beta() float32 { return e.beta }

// MaxK returns the largest k the node count permits.
func (e *Engine) MaxK() int { return topology.MaxK(len(e.positions)) }

// SetTopologyParams clamps k and beta and regenerates the whole edge set if
// either changed. It reports whether the edges were replaced. With fewer than
// two nodes there is nothing to regenerate and it returns false.
func (e *Engine) SetTopologyParams(k int, beta float32) bool {
	n := len(e.positions)
	beta = clampUnit(beta)
	if n < 2 {
		e.beta = beta
		return false
	}
	k = min(max(k, 1), e.MaxK())
	kChanged := k != e.k
	betaChanged := math.Abs(float64(beta-e.beta)) >= betaEpsilon
	if !kChanged && !betaChanged {
		return false
	}
	e.k = k
	if betaChanged {
		e.beta = beta
	}
	e.regenerate(telemetry.EventRewired)
	return true
}

// AdjustK changes k by delta.
func (e *Engine) AdjustK(delta int) bool {
	return e.SetTopologyParams(e.k+delta, e.beta)
}

// AdjustBeta changes beta by steps multiples of the configured beta step.
func (e *Engine) AdjustBeta(steps int) bool {
	return e.SetTopologyParams(e.k, e.beta+float32(steps)*e.opts.BetaStep)
}

// regenerate replaces the edge set. Positions are kept.
func (e *Engine) regenerate(kind telemetry.EventKind) {
	n := len(e.positions)
	e.edges, e.rewire = topology.GenerateWithStats(n, e.k, e.beta, e.opts.TopologySeed)
	e.edgeGen++
	e.revision++

	ev := telemetry.TopologyEvent{
		Kind:     kind,
		Revision: e.revision,
		Nodes:    n,
		K:        e.k,
		Beta:     e.beta,
		Edges:    len(e.edges),
		Rewired:  e.rewire.Rewired,
		Restored: e.rewire.Restored,
	}
	e.log.Info("topology regenerated", "event", ev)
	e.warnRestored()
	if err := e.opts.Output.WriteTopology(ev); err != nil {
		e.log.Error("failed to write topology event", "error", err)
	}
}

// warnRestored reports rewires that ran out of attempts and kept their
// original edge.
func (e *Engine) warnRestored() {
	if e.rewire.Restored == 0 {
		return
	}
	e.log.Warn("rewiring attempt cap reached, original edges restored",
		"restored", e.rewire.Restored,
		"attempted", e.rewire.Attempted,
		"beta", e.beta,
	)
}

// RewireStats returns the rewiring outcome of the current edge set.
func (e *Engine) RewireStats() topology.RewireStats { return e.rewire }

// Positions returns the node positions. The slice is owned by the engine;
// read it between ticks and do not modify it. Use SetPosition instead.
func (e *Engine) Positions() []components.Position { return e.positions }

// Edges returns the current edge set. It is replaced, never modified, on
// regeneration, so a held slice stays valid.
func (e *Engine) Edges() []topology.Edge { return e.edges }

// EdgeGeneration changes whenever the edge set is replaced.
func (e *Engine) EdgeGeneration() uint64 { return e.edgeGen }

// LastStats returns the most recently flushed stats window.
func (e *Engine) LastStats() (telemetry.WindowStats, bool) { return e.lastStats, e.hasStats }

// Len returns the node count.
func (e *Engine) Len() int { return len(e.positions) }

// SetPosition overrides node i's position. The next tick starts from it.
// Out-of-range indices and non-finite positions are rejected.
func (e *Engine) SetPosition(i int, p components.Position) bool {
	if i < 0 || i >= len(e.positions) || !p.Finite() {
		return false
	}
	e.positions[i] = p
	e.revision++
	return true
}

// Revision increases on every tick, topology change, state change and
// position override.
func (e *Engine) Revision() uint64 { return e.revision }

// Ticks returns the number of simulation steps taken.
func (e *Engine) Ticks() uint64 { return e.tick }

// Params returns the simulation parameters.
func (e *Engine) Params() systems.Params { return e.opts.Params }

// Grid returns the spatial grid built by the last tick. It is empty before
// the first tick and must not be modified.
func (e *Engine) Grid() *systems.SpatialGrid { return e.sim.Grid() }

// Snapshot captures the engine state.
func (e *Engine) Snapshot() *telemetry.Snapshot {
	s := telemetry.NewSnapshot(e.positions, e.edges)
	s.Revision = e.revision
	s.Tick = e.tick
	s.Running = e.state == Running
	s.K = e.k
	s.Beta = e.beta
	s.TopologySeed = e.opts.TopologySeed
	s.ScatterSeed = e.opts.ScatterSeed
	return s
}

// Restore replaces the engine state with a snapshot's.
func (e *Engine) Restore(s *telemetry.Snapshot) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	e.positions = s.PositionList()
	e.edges = s.EdgeList()
	e.k = min(max(s.K, 1), topology.MaxK(s.Nodes))
	e.rewire = topology.RewireStats{EffectiveK: topology.EffectiveK(s.Nodes, e.k)}
	e.beta = clampUnit(s.Beta)
	e.opts.Nodes = s.Nodes
	e.opts.TopologySeed = s.TopologySeed
	e.opts.ScatterSeed = s.ScatterSeed
	e.tick = s.Tick
	e.state = Paused
	if s.Running {
		e.state = Running
	}
	e.edgeGen++
	e.revision = max(e.revision, s.Revision) + 1

	ev := telemetry.TopologyEvent{
		Kind:     telemetry.EventRestored,
		Revision: e.revision,
		Nodes:    s.Nodes,
		K:        e.k,
		Beta:     e.beta,
		Edges:    len(e.edges),
	}
	e.log.Info("layout restored", "event", ev, "tick", e.tick)
	if err := e.opts.Output.WriteTopology(ev); err != nil {
		e.log.Error("failed to write topology event", "error", err)
	}
	return nil
}

func clampUnit(v float32) float32 {
	if !(v > 0) {
		return 0
	}
	return min(v, 1)
}
