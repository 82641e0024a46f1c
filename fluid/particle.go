package fluid

import (
	V "github.com/andewx/sph2d/vector"
)

// GridKey identifies the uniform-grid cell a particle is currently binned to.
type GridKey struct {
	I, J int
}

// Neighbour is a single entry in a particle's current-tick neighbour list.
// Index refers into the engine's owning particle slice rather than holding
// a pointer, eliminating lifetime hazards under threaded access (see
// the contiguous-ownership design note).
type Neighbour struct {
	Index int
	R     float32
	Dir   V.Vec2
}

// Particle carries the full per-tick SPH state for one Lagrangian sample
// point. Mass and Radius are snapshotted from the engine configuration at
// the start of each tick, since configuration may mutate between ticks.
type Particle struct {
	Position  V.Vec2
	Velocity  V.Vec2
	Predicted V.Vec2

	Radius float32
	Mass   float32

	Density  float32
	Pressure float32

	PressureForce     V.Vec2
	PressureNearForce V.Vec2
	ViscosityForce    V.Vec2
	TensionForce      V.Vec2

	GridKey    GridKey
	Neighbours []Neighbour
}

// ClearForces zeroes the per-tick force accumulators. Density and pressure
// are not touched here; the density phase overwrites them. PressureNearForce is included
// deliberately: the source accumulates it but never zeroes it between
// ticks, which this implementation treats as an oversight to correct.
func (p *Particle) ClearForces() {
	p.PressureForce = V.Vec2{}
	p.PressureNearForce = V.Vec2{}
	p.ViscosityForce = V.Vec2{}
	p.TensionForce = V.Vec2{}
}

// ClearNeighbours drops the previous tick's neighbour list while retaining
// the underlying slice capacity.
func (p *Particle) ClearNeighbours() {
	p.Neighbours = p.Neighbours[:0]
}
