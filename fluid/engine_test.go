package fluid

import (
	"fmt"
	"math"
	"testing"

	V "github.com/andewx/sph2d/vector"
)

func smallBoxConfig() Config {
	cfg := DefaultConfig()
	cfg.NumParticles = 100
	cfg.ParticleRadius = 4
	cfg.ParticleSpacing = 2
	cfg.InitialCentre = V.Vec2{250, 250}
	cfg.BoundingBox = AABB{Min: V.Vec2{0, 0}, Max: V.Vec2{500, 500}}
	cfg.BoundingBoxRestitution = 0.5
	cfg.SmoothingRadius = 16
	cfg.Gravity = V.Vec2{0, 0}
	cfg.NumThreads = 4
	return cfg
}

func TestInitLatticeParticleCount(t *testing.T) {
	cfg := smallBoxConfig()
	e := NewEngine(cfg)
	e.Init()

	side := int(math.Sqrt(float64(cfg.NumParticles)))
	want := side * side
	if got := len(e.GetParticles()); got != want {
		t.Errorf("expected %d particles from square lattice fit, got %d", want, got)
	}
	for _, p := range e.GetParticles() {
		if p.Velocity != (V.Vec2{0, 0}) {
			t.Errorf("lattice particle should start with zero velocity, got %v", p.Velocity)
		}
	}
}

func TestUpdateZeroDtIsNoOp(t *testing.T) {
	cfg := smallBoxConfig()
	e := NewEngine(cfg)
	e.Init()

	before := append([]Particle(nil), e.GetParticles()...)
	e.Update(0)
	after := e.GetParticles()

	for i := range before {
		if before[i].Position != after[i].Position {
			t.Errorf("particle %d position changed on update(0): %v -> %v", i, before[i].Position, after[i].Position)
		}
		if before[i].Velocity != after[i].Velocity {
			t.Errorf("particle %d velocity changed on update(0): %v -> %v", i, before[i].Velocity, after[i].Velocity)
		}
	}
}

func TestBoundaryInvariantAfterTicks(t *testing.T) {
	cfg := smallBoxConfig()
	cfg.Gravity = V.Vec2{0, 980}
	e := NewEngine(cfg)
	e.Init()

	for i := 0; i < 120; i++ {
		e.Update(1.0 / 120.0)
		for _, p := range e.GetParticles() {
			if p.Position[0] < cfg.BoundingBox.Min[0]-1e-3 || p.Position[0] > cfg.BoundingBox.Max[0]+1e-3 {
				t.Fatalf("tick %d: particle escaped box on x: %v", i, p.Position)
			}
			if p.Position[1] < cfg.BoundingBox.Min[1]-1e-3 || p.Position[1] > cfg.BoundingBox.Max[1]+1e-3 {
				t.Fatalf("tick %d: particle escaped box on y: %v", i, p.Position)
			}
			if p.Density < 0 {
				t.Fatalf("tick %d: negative density %f", i, p.Density)
			}
			if p.Pressure > cfg.PressureLimit {
				t.Fatalf("tick %d: pressure exceeds clamp: %f", i, p.Pressure)
			}
		}
	}
}

func TestNeighbourInvariants(t *testing.T) {
	cfg := smallBoxConfig()
	e := NewEngine(cfg)
	e.Init()
	e.Update(1.0 / 120.0)

	h := cfg.SmoothingRadius
	for i, p := range e.GetParticles() {
		for _, nb := range p.Neighbours {
			if nb.R <= 0 || nb.R >= h {
				t.Errorf("particle %d neighbour %d: r=%f out of (0,h)", i, nb.Index, nb.R)
			}
			if l := nb.Dir.Length(); math.Abs(float64(l-1)) > 1e-5 {
				t.Errorf("particle %d neighbour %d: direction not unit length, got %f", i, nb.Index, l)
			}
		}
	}
}

func TestGridKeyCorrectness(t *testing.T) {
	cfg := smallBoxConfig()
	e := NewEngine(cfg)
	e.Init()
	e.applyGravityAndPredict(0)
	e.refreshGrid()

	seen := make(map[int]int)
	for key, bucket := range e.GetGrid() {
		for _, idx := range bucket {
			seen[idx]++
			pos := e.positionFor(idx)
			want := e.grid.KeyOf(pos[0], pos[1])
			if want != key {
				t.Errorf("particle %d stored under %v, getGridKey gives %v", idx, key, want)
			}
			if e.particles[idx].GridKey != key {
				t.Errorf("particle %d GridKey field %v does not match bucket key %v", idx, e.particles[idx].GridKey, key)
			}
		}
	}
	for idx := range e.particles {
		if seen[idx] != 1 {
			t.Errorf("particle %d appears in %d buckets, want exactly 1", idx, seen[idx])
		}
	}
}

func TestSymmetryProbe(t *testing.T) {
	cfg := smallBoxConfig()
	cfg.Gravity = V.Vec2{0, 0}
	cfg.NumParticles = 0
	cfg.BoundingBox = AABB{Min: V.Vec2{-250, -250}, Max: V.Vec2{250, 250}}
	e := NewEngine(cfg)
	e.particles = []Particle{
		{Position: V.Vec2{-10, 0}, Mass: cfg.ParticleMass, Radius: cfg.ParticleRadius},
		{Position: V.Vec2{10, 0}, Mass: cfg.ParticleMass, Radius: cfg.ParticleRadius},
	}
	e.Update(1.0 / 120.0)

	a, b := e.particles[0], e.particles[1]
	if math.Abs(float64(a.Position[0]+b.Position[0])) > 1e-3 {
		t.Errorf("mirror symmetry broken on x: %v vs %v", a.Position, b.Position)
	}
	if math.Abs(float64(a.Position[1]-b.Position[1])) > 1e-3 {
		t.Errorf("mirror symmetry broken on y: %v vs %v", a.Position, b.Position)
	}
}

func TestCoincidentParticlesNoNaN(t *testing.T) {
	cfg := smallBoxConfig()
	cfg.NumParticles = 0
	e := NewEngine(cfg)
	pos := V.Vec2{100, 100}
	e.particles = []Particle{
		{Position: pos, Mass: cfg.ParticleMass, Radius: cfg.ParticleRadius},
		{Position: pos, Mass: cfg.ParticleMass, Radius: cfg.ParticleRadius},
	}
	e.Update(1.0 / 120.0)

	for i, p := range e.particles {
		if math.IsNaN(float64(p.Density)) {
			t.Errorf("particle %d density is NaN", i)
		}
	}

	found := false
	for _, nb := range e.particles[0].Neighbours {
		if nb.Index == 1 {
			found = true
			if nb.R != 1.0 {
				t.Errorf("coincident neighbour r should be substituted to 1.0, got %f", nb.R)
			}
			if l := nb.Dir.Length(); math.Abs(float64(l-1)) > 1e-4 {
				t.Errorf("coincident neighbour direction should be unit length, got %f", l)
			}
		}
	}
	if !found {
		t.Fatalf("coincident particle 1 not recorded as neighbour of particle 0")
	}
}

func TestAttractorPull(t *testing.T) {
	cfg := smallBoxConfig()
	cfg.NumParticles = 0
	cfg.Gravity = V.Vec2{0, 0}
	e := NewEngine(cfg)
	e.particles = []Particle{{Position: V.Vec2{0, 0}, Mass: cfg.ParticleMass, Radius: cfg.ParticleRadius}}

	attractor := NewAttractor(V.Vec2{10, 0}, 50, 1000)
	e.AddAttractor(attractor)
	e.Update(1.0 / 120.0)

	if e.particles[0].Velocity[0] <= 0 {
		t.Errorf("expected strictly positive x-velocity after attractor pull, got %f", e.particles[0].Velocity[0])
	}
}

func TestAttractorAddRemoveRoundTrip(t *testing.T) {
	cfg := smallBoxConfig()
	e := NewEngine(cfg)
	a := NewAttractor(V.Vec2{0, 0}, 10, 1)

	e.AddAttractor(a)
	if !e.RemoveAttractor(a) {
		t.Fatalf("expected first removal to succeed")
	}
	if e.RemoveAttractor(a) {
		t.Fatalf("expected second removal to return false")
	}
}

func TestFreeFallReachesFloor(t *testing.T) {
	cfg := smallBoxConfig()
	cfg.NumParticles = 0
	cfg.Gravity = V.Vec2{0, 1500}
	cfg.BoundingBoxRestitution = 0
	cfg.BoundingBox = AABB{Min: V.Vec2{0, 0}, Max: V.Vec2{500, 500}}
	e := NewEngine(cfg)
	e.particles = []Particle{{Position: V.Vec2{250, 0}, Mass: cfg.ParticleMass, Radius: cfg.ParticleRadius}}

	dt := float32(1.0 / 120.0)
	expected := math.Sqrt(2 * 500 / 1500.0)
	ticks := int(expected/float64(dt)) + 20

	for i := 0; i < ticks; i++ {
		e.Update(dt)
	}

	p := e.particles[0]
	if math.Abs(float64(p.Position[1]-500)) > 1.0 {
		t.Errorf("expected particle resting at floor y=500, got %f", p.Position[1])
	}
	if math.Abs(float64(p.Velocity[1])) > 1e-3 {
		t.Errorf("expected zero velocity at rest with restitution 0, got %f", p.Velocity[1])
	}
	fmt.Printf("free fall settled at y=%f after %d ticks\n", p.Position[1], ticks)
}

func TestElasticBouncePreservesSpeed(t *testing.T) {
	cfg := smallBoxConfig()
	cfg.NumParticles = 0
	cfg.Gravity = V.Vec2{0, 1500}
	cfg.BoundingBoxRestitution = 1.0
	cfg.BoundingBox = AABB{Min: V.Vec2{0, 0}, Max: V.Vec2{500, 500}}
	e := NewEngine(cfg)
	e.particles = []Particle{{Position: V.Vec2{250, 0}, Mass: cfg.ParticleMass, Radius: cfg.ParticleRadius}}

	dt := float32(1.0 / 120.0)
	var peakSpeeds []float32
	prevY := float32(0)
	falling := true

	for i := 0; i < 600; i++ {
		e.Update(dt)
		p := e.particles[0]
		if falling && p.Position[1] < prevY {
			peakSpeeds = append(peakSpeeds, float32(math.Abs(float64(p.Velocity[1]))))
			falling = false
		}
		if p.Position[1] >= 500-1e-3 {
			falling = true
		}
		prevY = p.Position[1]
	}

	if len(peakSpeeds) >= 2 {
		last, prev := peakSpeeds[len(peakSpeeds)-1], peakSpeeds[len(peakSpeeds)-2]
		ratio := math.Abs(float64(last-prev)) / float64(prev)
		if ratio > 0.01 {
			t.Errorf("expected successive bounce speeds within 1%%, got %f vs %f", prev, last)
		}
	}
}

func TestStaticEquilibrium(t *testing.T) {
	cfg := smallBoxConfig()
	cfg.Stiffness = 1e5

	probe := NewEngine(cfg)
	probe.Init()
	probe.applyGravityAndPredict(0)
	probe.refreshGrid()
	probe.updateNeighbours()
	probe.updateDensityPressure()
	mid := len(probe.particles) / 2
	cfg.DesiredRestDensity = probe.particles[mid].Density

	e := NewEngine(cfg)
	e.Init()

	for i := 0; i < 60; i++ {
		e.Update(1.0 / 120.0)
	}

	for i, p := range e.GetParticles() {
		if speed := p.Velocity.Length(); speed >= 1.0 {
			t.Errorf("particle %d speed %f did not settle below 1.0 at rest density equilibrium", i, speed)
		}
	}
}

func TestSolveDensityAtPointPositiveAtLatticeCentre(t *testing.T) {
	cfg := smallBoxConfig()
	e := NewEngine(cfg)
	e.Init()

	d := e.SolveDensityAtPoint(cfg.InitialCentre)
	if d <= 0 {
		t.Errorf("expected positive probed density near the lattice centre, got %f", d)
	}
}
