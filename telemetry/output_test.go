package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type yamlStub struct{ body string }

func (y yamlStub) WriteYAML(path string) error {
	return os.WriteFile(path, []byte(y.body), 0644)
}

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v; want nil, nil", om, err)
	}
	if err := om.WriteStats(WindowStats{}); err != nil {
		t.Errorf("nil manager WriteStats: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("nil manager Close: %v", err)
	}
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}
	if om.Dir() != dir {
		t.Errorf("Dir = %q, want %q", om.Dir(), dir)
	}

	for i := uint64(1); i <= 3; i++ {
		if err := om.WriteStats(WindowStats{WindowEndTick: i * 10, Nodes: 250}); err != nil {
			t.Fatalf("WriteStats: %v", err)
		}
	}
	if err := om.WritePerf(PerfStats{AvgTickDuration: time.Millisecond}, 30); err != nil {
		t.Fatalf("WritePerf: %v", err)
	}
	ev := TopologyEvent{Kind: EventRewired, Revision: 12, Nodes: 250, K: 4, Beta: 0.1, Edges: 1000}
	if err := om.WriteTopology(ev); err != nil {
		t.Fatalf("WriteTopology: %v", err)
	}
	if err := om.WriteConfig(yamlStub{body: "topology:\n  nodes: 250\n"}); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	layout := readLines(t, filepath.Join(dir, "layout.csv"))
	if len(layout) != 4 {
		t.Fatalf("layout.csv has %d lines, want header + 3", len(layout))
	}
	if !strings.HasPrefix(layout[0], "window_end,ticks,nodes") {
		t.Errorf("unexpected header %q", layout[0])
	}
	if !strings.HasPrefix(layout[3], "30,") {
		t.Errorf("unexpected last row %q", layout[3])
	}

	perf := readLines(t, filepath.Join(dir, "perf.csv"))
	if len(perf) != 2 || !strings.HasPrefix(perf[1], "30,1000,") {
		t.Errorf("unexpected perf.csv %q", perf)
	}

	topo := readLines(t, filepath.Join(dir, "topology.csv"))
	if len(topo) != 2 || !strings.HasPrefix(topo[1], "rewired,12,250,4,") {
		t.Errorf("unexpected topology.csv %q", topo)
	}

	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config.yaml missing: %v", err)
	}
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}
