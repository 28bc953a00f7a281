package telemetry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pthm-cable/smallworld/components"
	"github.com/pthm-cable/smallworld/topology"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the layout state needed to resume a run.
type Snapshot struct {
	Version  int    `json:"version"`
	Revision uint64 `json:"revision"`
	Tick     uint64 `json:"tick"`
	Running  bool   `json:"running"`

	Nodes int     `json:"nodes"`
	K     int     `json:"k"`
	Beta  float32 `json:"beta"`

	TopologySeed uint64 `json:"topology_seed"`
	ScatterSeed  uint64 `json:"scatter_seed"`

	// Positions as [x, y]; edges as [source, target]
	Positions [][2]float32 `json:"positions"`
	Edges     [][2]int     `json:"edges"`
}

// ErrSnapshotMismatch is returned when a snapshot's contents are inconsistent.
var ErrSnapshotMismatch = errors.New("snapshot inconsistent")

// NewSnapshot captures positions and edges into a Snapshot.
func NewSnapshot(positions []components.Position, edges []topology.Edge) *Snapshot {
	s := &Snapshot{
		Version:   SnapshotVersion,
		Nodes:     len(positions),
		Positions: make([][2]float32, len(positions)),
		Edges:     make([][2]int, len(edges)),
	}
	for i, p := range positions {
		s.Positions[i] = [2]float32{p.X, p.Y}
	}
	for i, e := range edges {
		s.Edges[i] = [2]int{e.Source, e.Target}
	}
	return s
}

// PositionList returns the stored positions.
func (s *Snapshot) PositionList() []components.Position {
	out := make([]components.Position, len(s.Positions))
	for i, p := range s.Positions {
		out[i] = components.Position{X: p[0], Y: p[1]}
	}
	return out
}

// EdgeList returns the stored edges.
func (s *Snapshot) EdgeList() []topology.Edge {
	out := make([]topology.Edge, len(s.Edges))
	for i, e := range s.Edges {
		out[i] = topology.Edge{Source: e[0], Target: e[1]}
	}
	return out
}

// Validate checks the version, node count and finite positions, and that
// every edge is a unique pair with Source < Target below the node count.
func (s *Snapshot) Validate() error {
	if s.Version != SnapshotVersion {
		return fmt.Errorf("%w: version %d, want %d", ErrSnapshotMismatch, s.Version, SnapshotVersion)
	}
	if s.Nodes != len(s.Positions) {
		return fmt.Errorf("%w: %d nodes but %d positions", ErrSnapshotMismatch, s.Nodes, len(s.Positions))
	}
	for i, p := range s.Positions {
		if !(components.Position{X: p[0], Y: p[1]}).Finite() {
			return fmt.Errorf("%w: node %d position %v is not finite", ErrSnapshotMismatch, i, p)
		}
	}
	seen := make(map[[2]int]struct{}, len(s.Edges))
	for _, e := range s.Edges {
		if !(topology.Edge{Source: e[0], Target: e[1]}).Valid(s.Nodes) {
			return fmt.Errorf("%w: edge %v is not an ordered pair below %d", ErrSnapshotMismatch, e, s.Nodes)
		}
		if _, dup := seen[e]; dup {
			return fmt.Errorf("%w: duplicate edge %v", ErrSnapshotMismatch, e)
		}
		seen[e] = struct{}{}
	}
	return nil
}

// SaveSnapshot writes a snapshot to dir and returns the file path.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("snapshot_%d.json", snapshot.Revision))

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}

// LoadSnapshot reads and validates a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if err := snapshot.Validate(); err != nil {
		return nil, err
	}
	return &snapshot, nil
}
