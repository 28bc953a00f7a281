// Package telemetry records layout performance, windowed layout statistics,
// topology changes and snapshots.
package telemetry

import "log/slog"

// EventKind identifies what changed the layout.
type EventKind string

const (
	EventGenerated EventKind = "generated" // initial topology and scatter
	EventRewired   EventKind = "rewired"   // k or beta changed, edges replaced
	EventRestored  EventKind = "restored"  // state loaded from a snapshot
)

// TopologyEvent records one replacement of the edge set.
type TopologyEvent struct {
	Kind     EventKind `csv:"kind"`
	Revision uint64    `csv:"revision"`
	Nodes    int       `csv:"nodes"`
	K        int       `csv:"k"`
	Beta     float32   `csv:"beta"`
	Edges    int       `csv:"edges"`

	// Rewiring outcome; zero for restored events
	Rewired  int `csv:"rewired"`
	Restored int `csv:"restored"`
}

// LogValue implements slog.LogValuer for structured logging.
func (e TopologyEvent) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("kind", string(e.Kind)),
		slog.Uint64("revision", e.Revision),
		slog.Int("nodes", e.Nodes),
		slog.Int("k", e.K),
		slog.Float64("beta", float64(e.Beta)),
		slog.Int("edges", e.Edges),
		slog.Int("rewired", e.Rewired),
		slog.Int("restored", e.Restored),
	)
}
