package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for the layout tick.
const (
	PhaseSpatialGrid = "spatial_grid"
	PhaseRepulsion   = "repulsion"
	PhaseAttraction  = "attraction"
	PhaseGravity     = "gravity"
	PhaseIntegrate   = "integrate"
	PhaseTelemetry   = "telemetry"
)

// Phases lists every phase in tick order.
var Phases = []string{
	PhaseSpatialGrid, PhaseRepulsion, PhaseAttraction,
	PhaseGravity, PhaseIntegrate, PhaseTelemetry,
}

// PerfSample holds timing data for a single tick.
type PerfSample struct {
	TickDuration time.Duration
	Phases       map[string]time.Duration
}

// PerfCollector tracks tick timings over a rolling window of samples.
// A nil *PerfCollector ignores every call, so callers need not check.
type PerfCollector struct {
	samples []PerfSample
	next    int
	filled  int

	inTick     bool
	tickStart  time.Time
	phaseStart time.Time
	phase      string
	phases     map[string]time.Duration

	lastFrame     time.Time
	frameDuration time.Duration

	now func() time.Time
}

// NewPerfCollector creates a collector averaging over windowSize ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		samples: make([]PerfSample, windowSize),
		now:     time.Now,
	}
}

// StartTick begins timing a new tick.
func (p *PerfCollector) StartTick() {
	if p == nil {
		return
	}
	p.inTick = true
	p.tickStart = p.now()
	p.phases = make(map[string]time.Duration, len(Phases))
	p.phase = ""
}

// StartPhase closes the running phase, if any, and opens phase.
// Calls outside StartTick/EndTick are ignored.
func (p *PerfCollector) StartPhase(phase string) {
	if p == nil || !p.inTick {
		return
	}
	now := p.now()
	p.closePhase(now)
	p.phase = phase
	p.phaseStart = now
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase != "" {
		p.phases[p.phase] += now.Sub(p.phaseStart)
	}
}

// EndTick closes the tick and records its sample.
func (p *PerfCollector) EndTick() {
	if p == nil || !p.inTick {
		return
	}
	now := p.now()
	p.closePhase(now)
	p.samples[p.next] = PerfSample{TickDuration: now.Sub(p.tickStart), Phases: p.phases}
	p.next = (p.next + 1) % len(p.samples)
	if p.filled < len(p.samples) {
		p.filled++
	}
	p.inTick = false
	p.phase = ""
}

// RecordFrame records frame timing for graphics mode.
func (p *PerfCollector) RecordFrame() {
	if p == nil {
		return
	}
	now := p.now()
	if !p.lastFrame.IsZero() {
		p.frameDuration = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// Len returns the number of samples in the window.
func (p *PerfCollector) Len() int {
	if p == nil {
		return 0
	}
	return p.filled
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	// Average duration and share of tick time per phase
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	TicksPerSecond float64

	FrameDuration time.Duration
	FPS           float64
}

// Stats aggregates the current window.
func (p *PerfCollector) Stats() PerfStats {
	st := PerfStats{
		PhaseAvg: make(map[string]time.Duration),
		PhasePct: make(map[string]float64),
	}
	if p == nil {
		return st
	}
	st.FrameDuration = p.frameDuration
	if p.frameDuration > 0 {
		st.FPS = float64(time.Second) / float64(p.frameDuration)
	}
	if p.filled == 0 {
		return st
	}

	var total time.Duration
	sums := make(map[string]time.Duration)
	for i, s := range p.samples[:p.filled] {
		total += s.TickDuration
		if i == 0 || s.TickDuration < st.MinTickDuration {
			st.MinTickDuration = s.TickDuration
		}
		if s.TickDuration > st.MaxTickDuration {
			st.MaxTickDuration = s.TickDuration
		}
		for phase, d := range s.Phases {
			sums[phase] += d
		}
	}

	n := time.Duration(p.filled)
	st.AvgTickDuration = total / n
	for phase, sum := range sums {
		avg := sum / n
		st.PhaseAvg[phase] = avg
		if st.AvgTickDuration > 0 {
			st.PhasePct[phase] = float64(avg) / float64(st.AvgTickDuration) * 100
		}
	}
	if st.AvgTickDuration > 0 {
		st.TicksPerSecond = float64(time.Second) / float64(st.AvgTickDuration)
	}
	return st
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd      uint64  `csv:"window_end"`
	AvgTickUS      int64   `csv:"avg_tick_us"`
	MinTickUS      int64   `csv:"min_tick_us"`
	MaxTickUS      int64   `csv:"max_tick_us"`
	TicksPerSec    float64 `csv:"ticks_per_sec"`
	FPS            float64 `csv:"fps"`
	SpatialGridPct float64 `csv:"spatial_grid_pct"`
	RepulsionPct   float64 `csv:"repulsion_pct"`
	AttractionPct  float64 `csv:"attraction_pct"`
	GravityPct     float64 `csv:"gravity_pct"`
	IntegratePct   float64 `csv:"integrate_pct"`
	TelemetryPct   float64 `csv:"telemetry_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd uint64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:      windowEnd,
		AvgTickUS:      s.AvgTickDuration.Microseconds(),
		MinTickUS:      s.MinTickDuration.Microseconds(),
		MaxTickUS:      s.MaxTickDuration.Microseconds(),
		TicksPerSec:    s.TicksPerSecond,
		FPS:            s.FPS,
		SpatialGridPct: s.PhasePct[PhaseSpatialGrid],
		RepulsionPct:   s.PhasePct[PhaseRepulsion],
		AttractionPct:  s.PhasePct[PhaseAttraction],
		GravityPct:     s.PhasePct[PhaseGravity],
		IntegratePct:   s.PhasePct[PhaseIntegrate],
		TelemetryPct:   s.PhasePct[PhaseTelemetry],
	}
}

// LogStats logs the performance stats using slog.
func (s PerfStats) LogStats() {
	slog.Info("perf", "stats", s)
}
