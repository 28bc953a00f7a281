package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/smallworld/config"
	"github.com/pthm-cable/smallworld/layout"
	"github.com/pthm-cable/smallworld/telemetry"
	"github.com/pthm-cable/smallworld/viewer"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for snapshot files")
	restore := flag.String("restore", "", "Snapshot file to restore before starting")
	seed := flag.Uint64("seed", 0, "Seed for topology and scatter (0 = use config)")
	randomSeed := flag.Bool("random-seed", false, "Use a time-based seed")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 0, "Ticks per frame (0 = use config)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *randomSeed {
		*seed = uint64(time.Now().UnixNano())
	}
	if *seed != 0 {
		cfg.Topology.Seed = *seed
		cfg.Scatter.Seed = *seed
	}
	if *stepsPerUpdate > 0 {
		cfg.Viewer.StepsPerFrame = *stepsPerUpdate
	}

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output dir", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := output.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}
	if dir := output.Dir(); dir != "" {
		slog.Info("writing telemetry", "dir", dir)
	}

	perf := telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow)
	opts := layout.OptionsFromConfig(cfg)
	opts.Logger = logger
	opts.Perf = perf
	opts.Stats = telemetry.NewCollector(cfg.Telemetry.StatsWindow)
	opts.Output = output
	opts.LogStats = *logStats

	engine := layout.New(opts)
	if *restore != "" {
		snap, err := telemetry.LoadSnapshot(*restore)
		if err == nil {
			err = engine.Restore(snap)
		}
		if err != nil {
			slog.Error("failed to restore snapshot", "path", *restore, "error", err)
			os.Exit(1)
		}
	}

	if *headless {
		runHeadless(engine, *maxTicks, *snapshotDir)
		return
	}

	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Small World")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	v := viewer.New(cfg, viewer.Options{
		Engine:      engine,
		Perf:        perf,
		SnapshotDir: *snapshotDir,
	})

	for !rl.WindowShouldClose() {
		v.Update()
		v.Draw()

		if *maxTicks > 0 && engine.Ticks() >= uint64(*maxTicks) {
			break
		}
	}
}

// runHeadless ticks the engine with no window until maxTicks, or forever
// when maxTicks is 0.
func runHeadless(engine *layout.Engine, maxTicks int, snapshotDir string) {
	slog.Info("starting headless layout",
		"nodes", engine.Len(),
		"k", engine.K(),
		"beta", engine.Beta(),
		"max_ticks", maxTicks,
	)

	engine.SetRunning(true)
	for maxTicks == 0 || engine.Ticks() < uint64(maxTicks) {
		engine.Tick()
	}
	slog.Info("max ticks reached", "tick", engine.Ticks(), "revision", engine.Revision())

	if snapshotDir == "" {
		return
	}
	path, err := telemetry.SaveSnapshot(engine.Snapshot(), snapshotDir)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}
	slog.Info("snapshot saved", "path", path)
}
