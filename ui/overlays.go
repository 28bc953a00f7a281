package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// OverlayID names a toggleable layer of the viewer.
type OverlayID string

const (
	OverlayEdges       OverlayID = "edges"
	OverlayDegreeColor OverlayID = "degree_color"
	OverlayGrid        OverlayID = "grid"
	OverlayIndices     OverlayID = "indices"
	OverlayPerf        OverlayID = "perf"
	OverlayStats       OverlayID = "stats"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID       OverlayID
	Name     string
	Key      int32  // toggle key, 0 for none
	KeyLabel string // shown on the controls panel
	Default  bool   // enabled at startup
}

// OverlayRegistry tracks which overlays are on, in registration order.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	on          []bool
	index       map[OverlayID]int
}

// NewOverlayRegistry creates a registry holding the viewer's overlays.
func NewOverlayRegistry() *OverlayRegistry {
	r := &OverlayRegistry{index: make(map[OverlayID]int)}
	for _, d := range []OverlayDescriptor{
		{ID: OverlayEdges, Name: "Edges", Key: rl.KeyE, KeyLabel: "E", Default: true},
		{ID: OverlayDegreeColor, Name: "Degree Colors", Key: rl.KeyC, KeyLabel: "C"},
		{ID: OverlayIndices, Name: "Node Indices", Key: rl.KeyI, KeyLabel: "I"},
		{ID: OverlayGrid, Name: "Spatial Grid", Key: rl.KeyG, KeyLabel: "G"},
		{ID: OverlayPerf, Name: "Perf Panel", Key: rl.KeyP, KeyLabel: "P"},
		{ID: OverlayStats, Name: "Layout Stats", Key: rl.KeyT, KeyLabel: "T", Default: true},
	} {
		r.Register(d)
	}
	return r
}

// Register adds an overlay. Duplicate IDs are ignored.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	if _, dup := r.index[desc.ID]; dup {
		return
	}
	r.index[desc.ID] = len(r.descriptors)
	r.descriptors = append(r.descriptors, desc)
	r.on = append(r.on, desc.Default)
}

// Toggle flips an overlay and returns its new state.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	i, ok := r.index[id]
	if !ok {
		return false
	}
	r.on[i] = !r.on[i]
	return r.on[i]
}

// SetEnabled sets an overlay's state. Unknown IDs are ignored.
func (r *OverlayRegistry) SetEnabled(id OverlayID, enabled bool) {
	if i, ok := r.index[id]; ok {
		r.on[i] = enabled
	}
}

// IsEnabled reports whether an overlay is on.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	i, ok := r.index[id]
	return ok && r.on[i]
}

// All returns every overlay in registration order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	return r.descriptors
}

// ForKey returns the overlay bound to key.
func (r *OverlayRegistry) ForKey(key int32) (OverlayID, bool) {
	if key == 0 {
		return "", false
	}
	for _, d := range r.descriptors {
		if d.Key == key {
			return d.ID, true
		}
	}
	return "", false
}
