package layout

// State is the engine's run state.
type State uint8

const (
	Paused State = iota
	Running
)

func (s State) String() string {
	switch s {
	case Paused:
		return "paused"
	case Running:
		return "running"
	default:
		return "unknown"
	}
}

// TickResult tells the host what a Tick call did.
type TickResult struct {
	// Advanced is true when positions moved this call.
	Advanced bool
	// Revision is the engine revision after the call.
	Revision uint64
	// RequestNext is true while the engine wants to be ticked again.
	RequestNext bool
	// Report is the force step summary; zero when not advanced.
	Report TickReport
}
