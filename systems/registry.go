package systems

import "github.com/pthm-cable/smallworld/telemetry"

// SystemInfo describes one phase of a tick for UI display.
type SystemInfo struct {
	ID          string // phase identifier, matches telemetry phase names
	Name        string // display name
	Description string
}

// SystemRegistry holds metadata about the tick phases.
// This keeps phase naming in one place so the UI and perf tracker agree.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all tick phases.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds the phases in execution order.
func (r *SystemRegistry) registerDefaults() {
	r.Register(SystemInfo{ID: telemetry.PhaseSpatialGrid, Name: "Spatial Grid", Description: "Rebuilds the neighbor grid"})
	r.Register(SystemInfo{ID: telemetry.PhaseRepulsion, Name: "Repulsion", Description: "Pushes nearby nodes apart"})
	r.Register(SystemInfo{ID: telemetry.PhaseAttraction, Name: "Attraction", Description: "Pulls edge endpoints together"})
	r.Register(SystemInfo{ID: telemetry.PhaseGravity, Name: "Gravity", Description: "Pulls nodes toward the center"})
	r.Register(SystemInfo{ID: telemetry.PhaseIntegrate, Name: "Integrate", Description: "Clamps and applies displacements"})
	r.Register(SystemInfo{ID: telemetry.PhaseTelemetry, Name: "Telemetry", Description: "Records and flushes layout stats"})
}

// Register adds a phase to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	if _, dup := r.byID[info.ID]; dup {
		return
	}
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// GetName returns the display name for a phase ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// IDs returns all phase IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
