package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Topology.Nodes != 250 || cfg.Topology.K != 3 {
		t.Errorf("topology = %+v, want 250 nodes, k=3", cfg.Topology)
	}
	if cfg.Topology.Beta != 0.05 || cfg.Topology.BetaStep != 0.05 {
		t.Errorf("beta = %v step %v, want 0.05/0.05", cfg.Topology.Beta, cfg.Topology.BetaStep)
	}
	if cfg.Topology.Seed != 0xBADC0FFEE0DDF00D {
		t.Errorf("topology seed = %#x", cfg.Topology.Seed)
	}
	if cfg.Scatter.Seed != 0xCAFEBABEDEADBEEF {
		t.Errorf("scatter seed = %#x", cfg.Scatter.Seed)
	}
	if cfg.Physics.Repulsion != 120 || cfg.Physics.Damping != 0.85 || cfg.Physics.GridCellSize != 100 {
		t.Errorf("physics = %+v", cfg.Physics)
	}

	vp := cfg.Derived.Viewport
	if vp.Left != 50 || vp.Top != 50 || vp.Width != 1200 || vp.Height != 800 {
		t.Errorf("viewport = %+v", vp)
	}
	if cfg.Derived.Center.X != 800 || cfg.Derived.Center.Y != 200 {
		t.Errorf("center = %+v", cfg.Derived.Center)
	}
	if cfg.Derived.MaxK != 124 {
		t.Errorf("MaxK = %d, want 124", cfg.Derived.MaxK)
	}
}

func TestLoadOverlay(t *testing.T) {
	path := writeConfig(t, "topology:\n  nodes: 10\n  k: 9\n  beta: 2\nphysics:\n  gravity: 0.01\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Topology.Nodes != 10 {
		t.Errorf("nodes = %d, want 10", cfg.Topology.Nodes)
	}
	if cfg.Topology.K != 4 {
		t.Errorf("k = %d, want clamp to 4", cfg.Topology.K)
	}
	if cfg.Topology.Beta != 1 {
		t.Errorf("beta = %v, want clamp to 1", cfg.Topology.Beta)
	}
	if cfg.Physics.Gravity != 0.01 {
		t.Errorf("gravity = %v, want 0.01", cfg.Physics.Gravity)
	}
	// Untouched keys keep their defaults.
	if cfg.Physics.Repulsion != 120 || cfg.Topology.Seed != 0xBADC0FFEE0DDF00D {
		t.Errorf("defaults lost: %+v %+v", cfg.Physics, cfg.Topology)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"negative nodes", "topology:\n  nodes: -1\n"},
		{"zero max displacement", "physics:\n  max_displacement: 0\n"},
		{"inverted zoom", "viewer:\n  min_zoom: 2\n  max_zoom: 1\n"},
		{"negative scatter", "scatter:\n  width: -5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.yaml))
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Load error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.Topology.K = 5
	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if back.Topology.K != 5 || back.Scatter.Seed != cfg.Scatter.Seed {
		t.Errorf("round trip lost values: %+v", back.Topology)
	}
}

func TestInitAndCfg(t *testing.T) {
	if err := Init(""); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if Cfg().Topology.Nodes != 250 {
		t.Errorf("Cfg().Topology.Nodes = %d", Cfg().Topology.Nodes)
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}
