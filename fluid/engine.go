package fluid

import (
	"math"
	"math/rand"
	"sync"

	V "github.com/andewx/sph2d/vector"
)

// Engine is the single simulation object: particles, spatial hash,
// attractors and the three smoothing kernels. Engine.Update is the only
// entry point that performs concurrent work; outside Update the engine is
// single-reader (see the concurrency model).
type Engine struct {
	Config Config

	particles  []Particle
	attractors []*Attractor
	grid       *SpatialHashGrid

	poly6     Poly6Kernel
	spiky     SpikyKernel
	viscosity ViscosityKernel

	rng   *rand.Rand
	rngMu sync.Mutex
}

// NewEngine constructs an engine from a configuration record. Init must be
// called before the first Update to seed the particle lattice.
func NewEngine(cfg Config) *Engine {
	return &Engine{
		Config: cfg,
		grid:   NewSpatialHashGrid(cfg.BoundingBox, cfg.SmoothingRadius),
		rng:    rand.New(rand.NewSource(1)),
	}
}

// Init deterministically seeds a square lattice of floor(sqrt(numParticles))^2
// particles centred on Config.InitialCentre, spaced by particleRadius*2 +
// particleSpacing, with zero velocity.
func (e *Engine) Init() {
	side := int(math.Sqrt(float64(e.Config.NumParticles)))
	if side < 0 {
		side = 0
	}
	n := side * side

	offset := e.Config.ParticleRadius*2 + e.Config.ParticleSpacing
	gridOffset := float32(side-1) * offset * 0.5

	e.particles = make([]Particle, n)
	for i := 0; i < n; i++ {
		x := float32(i%side) * offset
		y := float32(i/side) * offset
		pos := V.Vec2{x, y}
		pos = V.Add(pos, e.Config.InitialCentre)
		pos = V.Sub(pos, V.Vec2{gridOffset, gridOffset})

		e.particles[i] = Particle{
			Position: pos,
			Velocity: V.Vec2{0, 0},
			Radius:   e.Config.ParticleRadius,
			Mass:     e.Config.ParticleMass,
		}
	}
}

// ClearParticles empties the particle set, retaining slice capacity.
func (e *Engine) ClearParticles() {
	e.particles = e.particles[:0]
}

// GetParticles returns the engine's owning particle slice for rendering or
// inspection. Only safe to read between ticks, never concurrently with Update.
func (e *Engine) GetParticles() []Particle {
	return e.particles
}

// GetGrid exposes the current cell->particle-index mapping for visualization.
func (e *Engine) GetGrid() map[GridKey][]int {
	return e.grid.Cells()
}

// AddAttractor removes any existing registration of the same identity, then
// appends a.
func (e *Engine) AddAttractor(a *Attractor) {
	e.RemoveAttractor(a)
	e.attractors = append(e.attractors, a)
}

// RemoveAttractor searches linearly by identity and reports whether a
// removal occurred.
func (e *Engine) RemoveAttractor(a *Attractor) bool {
	for i, existing := range e.attractors {
		if existing == a {
			e.attractors = append(e.attractors[:i], e.attractors[i+1:]...)
			return true
		}
	}
	return false
}

// ClearAttractors removes every registered attractor.
func (e *Engine) ClearAttractors() {
	e.attractors = e.attractors[:0]
}

// Attractors returns the engine's currently registered attractors, for
// visualization.
func (e *Engine) Attractors() []*Attractor {
	return e.attractors
}

// Seed reseeds the engine's coincidence-rule random source, for
// reproducible runs from a caller-supplied seed.
func (e *Engine) Seed(seed int64) {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	e.rng = rand.New(rand.NewSource(seed))
}

// SolveDensityAtPoint performs an O(N) brute-force density summation from
// every particle against p. Used only for visualization probes, never by
// the tick pipeline.
func (e *Engine) SolveDensityAtPoint(p V.Vec2) float32 {
	h := e.Config.SmoothingRadius
	var density float32
	for i := range e.particles {
		r := V.Distance(p, e.particles[i].Position)
		density += e.particles[i].Mass * e.poly6.F(r, h)
	}
	return density
}

// Update advances the simulation by one tick through the fixed six-phase
// pipeline: gravity/prediction, grid refresh, neighbour collection,
// density/pressure, forces, integration. Every phase completes for all
// particles before the next begins.
func (e *Engine) Update(dt float32) {
	e.applyGravityAndPredict(dt)
	e.refreshGrid()
	e.updateNeighbours()
	e.updateDensityPressure()
	e.updateForces()
	e.integrate(dt)
}

// applyGravityAndPredict applies this tick's gravity impulse to velocity,
// then (if configured) computes the predicted position used only for this
// tick's binning and neighbour queries. Mass and radius are re-read from
// configuration here since options may mutate between ticks.
func (e *Engine) applyGravityAndPredict(dt float32) {
	parallelRange(len(e.particles), e.Config.NumThreads, func(start, end int) {
		for i := start; i < end; i++ {
			p := &e.particles[i]
			p.Mass = e.Config.ParticleMass
			p.Radius = e.Config.ParticleRadius

			p.Velocity = V.Add(p.Velocity, V.Scale(e.Config.Gravity, dt))

			if e.Config.UsePredictedPositions {
				p.Predicted = V.Add(p.Position, V.Scale(p.Velocity, dt))
			} else {
				p.Predicted = p.Position
			}
		}
	})
}

// refreshGrid clears and repopulates the spatial hash from current or
// predicted positions. Single-threaded: this is the only phase that
// mutates the grid, and it is read-only for the remainder of the tick.
func (e *Engine) refreshGrid() {
	e.grid.Clear()
	for i := range e.particles {
		pos := e.positionFor(i)
		key := e.grid.KeyOf(pos[0], pos[1])
		e.particles[i].GridKey = key
		e.grid.Insert(key, i)
	}
}

// updateDensityPressure sums kernel-weighted neighbour masses into density,
// then derives and clamps pressure. Runs before any force is computed so
// forces always consume finalized neighbour density/pressure.
func (e *Engine) updateDensityPressure() {
	h := e.Config.SmoothingRadius
	parallelRange(len(e.particles), e.Config.NumThreads, func(start, end int) {
		for i := start; i < end; i++ {
			p := &e.particles[i]
			var density float32
			for _, nb := range p.Neighbours {
				q := &e.particles[nb.Index]
				density += q.Mass * e.poly6.F(nb.R, h)
			}
			p.Density = density

			pressure := e.Config.Stiffness * (density - e.Config.DesiredRestDensity)
			if pressure > e.Config.PressureLimit {
				pressure = e.Config.PressureLimit
			}
			p.Pressure = pressure
		}
	})
}

// updateForces evaluates pressure, near-pressure, viscosity and (if
// enabled) tension forces from finalized neighbour density/pressure.
// Particles with zero density receive no SPH force (isolated particles
// get no SPH acceleration).
func (e *Engine) updateForces() {
	h := e.Config.SmoothingRadius
	parallelRange(len(e.particles), e.Config.NumThreads, func(start, end int) {
		for i := start; i < end; i++ {
			p := &e.particles[i]
			p.ClearForces()

			if p.Density == 0 {
				continue
			}

			for _, nb := range p.Neighbours {
				q := &e.particles[nb.Index]
				if q.Density <= 0 {
					continue
				}

				avgPressure := (p.Pressure + q.Pressure) / 2
				shared := V.Scale(nb.Dir, avgPressure*q.Mass/q.Density)

				g := e.spiky.Grad(nb.R, h)
				p.PressureForce = V.Add(p.PressureForce, V.Scale(shared, g))
				p.PressureNearForce = V.Add(p.PressureNearForce, V.Scale(shared, g*g*g*g))

				// Poly6 value stands in for the Viscosity kernel's Laplacian
				// here - a deliberate stability simplification (§4.2).
				w := e.poly6.F(nb.R, h)
				relVel := V.Sub(q.Velocity, p.Velocity)
				p.ViscosityForce = V.Add(p.ViscosityForce, V.Scale(relVel, w))

				if e.Config.SurfaceTension != 0 {
					e.accumulateTension(p, q, nb, h)
				}
			}

			p.PressureForce = V.Scale(p.PressureForce, -1)
			p.PressureNearForce = V.Scale(p.PressureNearForce, -1)
			p.ViscosityForce = V.Scale(p.ViscosityForce, e.Config.Viscosity)
		}
	})
}

// accumulateTension implements the disabled-by-default cohesion pathway,
// driven by the Viscosity kernel's gradient and gated by a configurable
// distance threshold below which cohesion is considered negligible.
func (e *Engine) accumulateTension(p, q *Particle, nb Neighbour, h float32) {
	if nb.R < e.Config.SurfaceTensionThreshold {
		return
	}
	g := e.viscosity.Grad(nb.R, h)
	term := V.Scale(nb.Dir, e.Config.SurfaceTension*g*q.Mass/q.Density)
	p.TensionForce = V.Add(p.TensionForce, term)
}

// integrate applies accumulated SPH forces and attractor impulses to
// velocity, integrates position, and resolves the bounding-box reflection.
func (e *Engine) integrate(dt float32) {
	parallelRange(len(e.particles), e.Config.NumThreads, func(start, end int) {
		for i := start; i < end; i++ {
			p := &e.particles[i]

			if p.Density > 0 {
				total := V.Add(V.Add(p.PressureForce, p.PressureNearForce), V.Add(p.ViscosityForce, p.TensionForce))
				accel := V.Scale(total, 1.0/p.Density)
				p.Velocity = V.Add(p.Velocity, V.Scale(accel, dt))
			}

			for _, a := range e.attractors {
				e.applyAttractor(p, a, dt)
			}

			p.Position = V.Add(p.Position, V.Scale(p.Velocity, dt))
			e.reflect(p)
		}
	})
}

// applyAttractor adds the impulse of a single attractor to a particle's
// velocity when the particle is within the attractor's radius. Positive
// strength pulls the particle toward the attractor, negative repels.
func (e *Engine) applyAttractor(p *Particle, a *Attractor, dt float32) {
	delta := V.Sub(a.Position, p.Position)
	dist := V.Length(delta)
	if dist <= 0 || dist >= a.Radius {
		return
	}
	dir := V.Scale(delta, 1.0/dist)
	g := e.poly6.Grad(dist, a.Radius)
	impulse := V.Scale(dir, -a.Strength*g)
	p.Velocity = V.Add(p.Velocity, V.Scale(impulse, dt))
}

// reflect resolves the axis-aligned boundary bounce against the point
// position (not position +/- radius, per §4.2).
func (e *Engine) reflect(p *Particle) {
	box := e.Config.BoundingBox
	restitution := e.Config.BoundingBoxRestitution

	if p.Position[0] < box.Min[0] {
		p.Position[0] = box.Min[0]
		p.Velocity[0] = -p.Velocity[0] * restitution
	} else if p.Position[0] > box.Max[0] {
		p.Position[0] = box.Max[0]
		p.Velocity[0] = -p.Velocity[0] * restitution
	}

	if p.Position[1] < box.Min[1] {
		p.Position[1] = box.Min[1]
		p.Velocity[1] = -p.Velocity[1] * restitution
	} else if p.Position[1] > box.Max[1] {
		p.Position[1] = box.Max[1]
		p.Velocity[1] = -p.Velocity[1] * restitution
	}
}
