package systems

import (
	"github.com/pthm-cable/smallworld/components"
	"github.com/pthm-cable/smallworld/rng"
)

// DefaultScatterSeed is the fixed seed used for initial positions.
const DefaultScatterSeed uint64 = 0xCAFEBABEDEADBEEF

// DefaultViewport is the rectangle initial positions are drawn from.
var DefaultViewport = components.Viewport{Left: 50, Top: 50, Width: 1200, Height: 800}

// Scatter places n nodes uniformly inside vp, drawing x then y for each node.
func Scatter(n int, seed uint64, vp components.Viewport) []components.Position {
	if n <= 0 {
		return []components.Position{}
	}
	state := seed
	out := make([]components.Position, n)
	for i := range out {
		rx := rng.Float32(&state)
		ry := rng.Float32(&state)
		out[i] = components.Position{
			X: vp.Left + rx*vp.Width,
			Y: vp.Top + ry*vp.Height,
		}
	}
	return out
}
