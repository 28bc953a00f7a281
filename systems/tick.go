package systems

import (
	"github.com/pthm-cable/smallworld/components"
	"github.com/pthm-cable/smallworld/topology"
)

// Tick runs one simulation step on a copy of positions and returns the copy.
// The inputs are left untouched.
func Tick(positions []components.Position, edges []topology.Edge, p Params) ([]components.Position, TickReport) {
	out := make([]components.Position, len(positions))
	copy(out, positions)
	rep := NewSimulator(p.CellSize).Step(out, edges, p)
	return out, rep
}
