// Package telemetry aggregates per-tick fluid engine state into windowed
// run statistics, for structured logging and optional CSV export.
package telemetry

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/andewx/sph2d/fluid"
)

// WindowStats holds aggregated statistics sampled at the end of a tick
// window. Field tags double as CSV column names for gocsv export.
type WindowStats struct {
	Tick       int     `csv:"tick"`
	SimTimeSec float64 `csv:"sim_time"`

	ParticleCount int `csv:"particle_count"`

	MeanDensity   float64 `csv:"mean_density"`
	StdDevDensity float64 `csv:"stddev_density"`

	MeanSpeed float64 `csv:"mean_speed"`
	MaxSpeed  float64 `csv:"max_speed"`

	KineticEnergy float64 `csv:"kinetic_energy"`
}

// ComputeWindowStats samples the engine's current particle set into a
// WindowStats record. tick and simTimeSec identify the sample point; dt
// is not consulted here, the caller tracks elapsed time.
func ComputeWindowStats(tick int, simTimeSec float64, particles []fluid.Particle) WindowStats {
	n := len(particles)
	s := WindowStats{Tick: tick, SimTimeSec: simTimeSec, ParticleCount: n}
	if n == 0 {
		return s
	}

	densities := make([]float64, n)
	speeds := make([]float64, n)
	var kinetic float64
	var maxSpeed float64

	for i, p := range particles {
		densities[i] = float64(p.Density)
		speed := float64(p.Velocity.Length())
		speeds[i] = speed
		if speed > maxSpeed {
			maxSpeed = speed
		}
		kinetic += 0.5 * float64(p.Mass) * speed * speed
	}

	s.MeanDensity, s.StdDevDensity = stat.MeanStdDev(densities, nil)
	s.MeanSpeed = stat.Mean(speeds, nil)
	s.MaxSpeed = maxSpeed
	s.KineticEnergy = kinetic

	if math.IsNaN(s.StdDevDensity) {
		s.StdDevDensity = 0
	}

	return s
}

// LogStats emits the window as a structured slog record.
func (s WindowStats) LogStats() {
	slog.Info("tick stats",
		"tick", s.Tick,
		"sim_time", s.SimTimeSec,
		"particles", s.ParticleCount,
		"mean_density", s.MeanDensity,
		"stddev_density", s.StdDevDensity,
		"mean_speed", s.MeanSpeed,
		"max_speed", s.MaxSpeed,
		"kinetic_energy", s.KineticEnergy,
	)
}
