package app

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/andewx/sph2d/config"
	"github.com/andewx/sph2d/fluid"
	"github.com/andewx/sph2d/telemetry"
)

// AnimationTimer tracks wall-clock checkpoints for the windowed run loop,
// in the spirit of the teacher's per-subsystem sync timers.
type AnimationTimer struct {
	AppStart    time.Time
	CurrentTime time.Time
}

// RunOptions bundles everything the windowed loop needs beyond the engine
// itself.
type RunOptions struct {
	Window          AppWindow
	TargetFPS       int32
	AttractorRadius float32
	AttractorForce  float32
	Collector       *telemetry.Collector
	Render          RenderOptions
	MaxTicks        int // 0 = unbounded
	StepsPerFrame   int // physics sub-steps run per rendered frame
}

// RunOptionsFromConfig builds RunOptions from a loaded configuration.
func RunOptionsFromConfig(cfg *config.Config, collector *telemetry.Collector) RunOptions {
	steps := cfg.Physics.StepsPerTick
	if steps < 1 {
		steps = 1
	}
	return RunOptions{
		Window:          WindowFromConfig(cfg.Screen, "sph2d"),
		TargetFPS:       cfg.Screen.TargetFPS,
		AttractorRadius: cfg.Physics.SmoothingRadius * 4,
		AttractorForce:  cfg.Physics.Stiffness,
		Collector:       collector,
		Render:          DefaultRenderOptions(),
		StepsPerFrame:   steps,
	}
}

// Run drives the windowed presentation loop: poll input, step the engine
// StepsPerFrame times, draw the frame, and optionally record telemetry.
// dt is the fixed physics timestep applied on every sub-step, matching
// the engine's fixed-step contract.
func Run(e *fluid.Engine, dt float32, opts RunOptions) {
	InitWindow(opts.Window, opts.TargetFPS)
	defer CloseWindow()

	steps := opts.StepsPerFrame
	if steps < 1 {
		steps = 1
	}

	var in InputState
	timer := AnimationTimer{AppStart: time.Now(), CurrentTime: time.Now()}
	tick := 0

	for !rl.WindowShouldClose() && (opts.MaxTicks == 0 || tick < opts.MaxTicks) {
		timer.CurrentTime = time.Now()

		in.PollInput(e, opts.AttractorRadius, opts.AttractorForce)
		if !in.Paused {
			for i := 0; i < steps; i++ {
				e.Update(dt)
				tick++
			}
		}

		DrawScene(e, opts.Render, rl.GetFPS())

		if opts.Collector != nil && tick%opts.Collector.WindowTicks() == 0 {
			simTime := timer.CurrentTime.Sub(timer.AppStart).Seconds()
			stats := telemetry.ComputeWindowStats(tick, simTime, e.GetParticles())
			stats.LogStats()
			_ = opts.Collector.Record(stats)
		}
	}
}

// RunHeadless steps the engine without opening a window, for batch runs
// and CI-style smoke tests. It returns after maxTicks ticks (maxTicks <=
// 0 means run forever, which callers should guard against).
func RunHeadless(e *fluid.Engine, dt float32, maxTicks int, collector *telemetry.Collector) {
	start := time.Now()
	for tick := 1; maxTicks <= 0 || tick <= maxTicks; tick++ {
		e.Update(dt)

		if collector != nil && tick%collector.WindowTicks() == 0 {
			simTime := time.Since(start).Seconds()
			stats := telemetry.ComputeWindowStats(tick, simTime, e.GetParticles())
			stats.LogStats()
			_ = collector.Record(stats)
		}
	}
}
