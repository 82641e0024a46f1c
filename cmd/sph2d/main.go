// Command sph2d runs the 2D SPH fluid simulator, either in a raylib
// window or headless for batch/telemetry runs.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/andewx/sph2d/app"
	"github.com/andewx/sph2d/config"
	"github.com/andewx/sph2d/fluid"
	"github.com/andewx/sph2d/telemetry"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml (empty = use embedded defaults)")
	headless := flag.Bool("headless", false, "run without opening a window")
	logStats := flag.Bool("log-stats", false, "log window stats via slog")
	statsWindow := flag.Int("stats-window", 0, "stats window size in ticks (0 = use config)")
	maxTicks := flag.Int("max-ticks", 0, "stop after N ticks (0 = unlimited)")
	seed := flag.Int64("seed", 0, "engine RNG reseed (0 = keep the engine's deterministic default)")
	stepsPerTick := flag.Int("steps-per-tick", 0, "physics sub-steps per rendered frame (0 = use config)")

	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	windowSize := cfg.Telemetry.StatsWindowTicks
	if *statsWindow > 0 {
		windowSize = *statsWindow
	}
	cfg.Telemetry.StatsWindowTicks = windowSize

	if *stepsPerTick > 0 {
		cfg.Physics.StepsPerTick = *stepsPerTick
	}

	var collector *telemetry.Collector
	if *logStats || cfg.Telemetry.CSVPath != "" {
		collector, err = telemetry.NewCollector(windowSize, cfg.Telemetry.CSVPath)
		if err != nil {
			slog.Error("failed to set up telemetry", "error", err)
			os.Exit(1)
		}
		defer collector.Close()
	}

	engine := fluid.NewEngine(cfg.Physics.ToFluidConfig())
	engine.Init()
	if *seed != 0 {
		engine.Seed(*seed)
	}

	dt := float32(1.0 / float64(cfg.Screen.TargetFPS))

	if *headless {
		slog.Info("starting headless run",
			"particles", len(engine.GetParticles()),
			"max_ticks", *maxTicks,
		)
		app.RunHeadless(engine, dt, *maxTicks, collector)
		return
	}

	opts := app.RunOptionsFromConfig(cfg, collector)
	opts.MaxTicks = *maxTicks
	app.Run(engine, dt, opts)
}
