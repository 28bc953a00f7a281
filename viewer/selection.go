package viewer

import (
	"slices"

	"github.com/pthm-cable/smallworld/components"
)

// Pick returns the index of the node nearest (wx, wy) within radius, or -1.
// Ties go to the lower index.
func Pick(positions []components.Position, wx, wy, radius float32) int {
	best := -1
	bestSq := radius * radius
	at := components.Position{X: wx, Y: wy}
	for i, p := range positions {
		if !p.Finite() {
			continue
		}
		if d := p.DistSq(at); d <= bestSq && (best < 0 || d < bestSq) {
			best, bestSq = i, d
		}
	}
	return best
}

// Selection is an ordered set of node indices. The most recently added
// node is the primary one shown in the inspector.
type Selection struct {
	order []int
}

// Select makes i the selection, or adds it when additive is set.
func (s *Selection) Select(i int, additive bool) {
	if !additive {
		s.order = append(s.order[:0], i)
		return
	}
	if idx := slices.Index(s.order, i); idx >= 0 {
		s.order = slices.Delete(s.order, idx, idx+1)
	}
	s.order = append(s.order, i)
}

// Clear empties the selection.
func (s *Selection) Clear() { s.order = s.order[:0] }

// Contains reports whether i is selected.
func (s *Selection) Contains(i int) bool { return slices.Contains(s.order, i) }

// Len returns the number of selected nodes.
func (s *Selection) Len() int { return len(s.order) }

// Indices returns the selected nodes in selection order.
func (s *Selection) Indices() []int { return s.order }

// Primary returns the most recently selected node.
func (s *Selection) Primary() (int, bool) {
	if len(s.order) == 0 {
		return 0, false
	}
	return s.order[len(s.order)-1], true
}

// Prune drops indices that no longer exist in a graph of n nodes.
func (s *Selection) Prune(n int) {
	s.order = slices.DeleteFunc(s.order, func(i int) bool { return i < 0 || i >= n })
}

// PositionSetter accepts host position overrides between ticks.
type PositionSetter interface {
	SetPosition(i int, p components.Position) bool
}

// Drag pins a group of nodes to the pointer, keeping their offsets from
// the grab point.
type Drag struct {
	nodes   []int
	offsets []components.Position
}

// Begin grabs nodes at pointer (wx, wy).
func (d *Drag) Begin(nodes []int, positions []components.Position, wx, wy float32) {
	d.End()
	for _, i := range nodes {
		if i < 0 || i >= len(positions) {
			continue
		}
		d.nodes = append(d.nodes, i)
		d.offsets = append(d.offsets, components.Position{X: positions[i].X - wx, Y: positions[i].Y - wy})
	}
}

// Active reports whether a drag is in progress.
func (d *Drag) Active() bool { return len(d.nodes) > 0 }

// End releases the dragged nodes.
func (d *Drag) End() {
	d.nodes = d.nodes[:0]
	d.offsets = d.offsets[:0]
}

// Apply writes the dragged nodes' positions for pointer (wx, wy). It must run
// before every tick so the simulation starts from the pointer each step.
func (d *Drag) Apply(dst PositionSetter, wx, wy float32) {
	for k, i := range d.nodes {
		off := d.offsets[k]
		dst.SetPosition(i, components.Position{X: wx + off.X, Y: wy + off.Y})
	}
}
