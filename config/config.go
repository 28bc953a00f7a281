// Package config provides configuration loading and access for the layout.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/pthm-cable/smallworld/components"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all layout configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Topology  TopologyConfig  `yaml:"topology"`
	Scatter   ScatterConfig   `yaml:"scatter"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Viewer    ViewerConfig    `yaml:"viewer"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds window settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// TopologyConfig holds the graph generator parameters.
type TopologyConfig struct {
	Nodes    int     `yaml:"nodes"`
	K        int     `yaml:"k"`
	Beta     float64 `yaml:"beta"`
	BetaStep float64 `yaml:"beta_step"`
	Seed     uint64  `yaml:"seed"`
}

// ScatterConfig holds the initial placement rectangle and its seed.
type ScatterConfig struct {
	Left   float64 `yaml:"left"`
	Top    float64 `yaml:"top"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Seed   uint64  `yaml:"seed"`
}

// PhysicsConfig holds the force model constants.
type PhysicsConfig struct {
	Repulsion       float64 `yaml:"repulsion"`
	Attraction      float64 `yaml:"attraction"`
	Gravity         float64 `yaml:"gravity"`
	Damping         float64 `yaml:"damping"`
	DT              float64 `yaml:"dt"`
	MaxDisplacement float64 `yaml:"max_displacement"`
	Epsilon         float64 `yaml:"epsilon"`
	CenterX         float64 `yaml:"center_x"`
	CenterY         float64 `yaml:"center_y"`
	GridCellSize    float64 `yaml:"grid_cell_size"`
}

// ViewerConfig holds interactive viewer settings.
type ViewerConfig struct {
	NodeRadius    float64 `yaml:"node_radius"`
	PickRadius    float64 `yaml:"pick_radius"` // screen pixels
	MinZoom       float64 `yaml:"min_zoom"`
	MaxZoom       float64 `yaml:"max_zoom"`
	ZoomStep      float64 `yaml:"zoom_step"`
	StepsPerFrame int     `yaml:"steps_per_frame"`
}

// TelemetryConfig holds telemetry windows.
type TelemetryConfig struct {
	StatsWindow         int `yaml:"stats_window"`          // ticks per stats window
	PerfCollectorWindow int `yaml:"perf_collector_window"` // ticks averaged for perf
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Viewport  components.Viewport // Scatter rectangle as float32
	Center    components.Position // Gravity center as float32
	MaxK      int                 // max(1, (nodes-1)/2)
	ScreenW32 float32
	ScreenH32 float32
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()
	return cfg, nil
}

// validate rejects settings nothing downstream can degrade gracefully from
// and clamps the topology parameters into range.
func (c *Config) validate() error {
	if c.Topology.Nodes < 0 {
		return fmt.Errorf("%w: topology.nodes %d is negative", ErrInvalid, c.Topology.Nodes)
	}
	if c.Scatter.Width < 0 || c.Scatter.Height < 0 {
		return fmt.Errorf("%w: scatter size %vx%v is negative", ErrInvalid, c.Scatter.Width, c.Scatter.Height)
	}
	if c.Physics.MaxDisplacement <= 0 {
		return fmt.Errorf("%w: physics.max_displacement must be positive", ErrInvalid)
	}
	if c.Viewer.MinZoom <= 0 || c.Viewer.MaxZoom < c.Viewer.MinZoom {
		return fmt.Errorf("%w: viewer zoom range [%v, %v]", ErrInvalid, c.Viewer.MinZoom, c.Viewer.MaxZoom)
	}

	c.Topology.K = min(max(c.Topology.K, 1), maxK(c.Topology.Nodes))
	if !(c.Topology.Beta > 0) {
		c.Topology.Beta = 0
	}
	c.Topology.Beta = min(c.Topology.Beta, 1)
	if c.Topology.BetaStep <= 0 {
		c.Topology.BetaStep = 0.05
	}
	if c.Viewer.StepsPerFrame < 1 {
		c.Viewer.StepsPerFrame = 1
	}
	return nil
}

func maxK(nodes int) int {
	return max(1, (nodes-1)/2)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Viewport = components.Viewport{
		Left:   float32(c.Scatter.Left),
		Top:    float32(c.Scatter.Top),
		Width:  float32(c.Scatter.Width),
		Height: float32(c.Scatter.Height),
	}
	c.Derived.Center = components.Position{X: float32(c.Physics.CenterX), Y: float32(c.Physics.CenterY)}
	c.Derived.MaxK = maxK(c.Topology.Nodes)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
