package telemetry

import (
	"math"
	"testing"

	"github.com/andewx/sph2d/fluid"
	V "github.com/andewx/sph2d/vector"
)

func TestComputeWindowStatsEmpty(t *testing.T) {
	s := ComputeWindowStats(0, 0, nil)
	if s.ParticleCount != 0 {
		t.Errorf("expected zero particle count, got %d", s.ParticleCount)
	}
	if s.MeanSpeed != 0 || s.MaxSpeed != 0 || s.KineticEnergy != 0 {
		t.Errorf("expected all-zero stats for empty particle set, got %+v", s)
	}
}

func TestComputeWindowStatsBasic(t *testing.T) {
	particles := []fluid.Particle{
		{Mass: 1, Density: 1000, Velocity: V.Vec2{3, 4}},
		{Mass: 1, Density: 1000, Velocity: V.Vec2{0, 0}},
	}
	s := ComputeWindowStats(5, 0.5, particles)

	if s.ParticleCount != 2 {
		t.Errorf("expected 2 particles, got %d", s.ParticleCount)
	}
	if math.Abs(float64(s.MaxSpeed-5)) > 1e-6 {
		t.Errorf("expected max speed 5, got %f", s.MaxSpeed)
	}
	wantMeanSpeed := 2.5
	if math.Abs(s.MeanSpeed-wantMeanSpeed) > 1e-6 {
		t.Errorf("expected mean speed %f, got %f", wantMeanSpeed, s.MeanSpeed)
	}
	wantKinetic := 0.5*1*25 + 0.5*1*0
	if math.Abs(s.KineticEnergy-wantKinetic) > 1e-6 {
		t.Errorf("expected kinetic energy %f, got %f", wantKinetic, s.KineticEnergy)
	}
	if s.StdDevDensity != 0 {
		t.Errorf("expected zero stddev for identical densities, got %f", s.StdDevDensity)
	}
}

func TestCollectorInMemoryOnly(t *testing.T) {
	c, err := NewCollector(10, "")
	if err != nil {
		t.Fatalf("NewCollector failed: %v", err)
	}
	defer c.Close()

	if err := c.Record(ComputeWindowStats(0, 0, nil)); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := c.Record(ComputeWindowStats(10, 1, nil)); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	if len(c.History()) != 2 {
		t.Errorf("expected 2 recorded windows, got %d", len(c.History()))
	}
}
