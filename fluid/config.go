package fluid

import V "github.com/andewx/sph2d/vector"

// AABB is an axis-aligned bounding box used both for the particle
// container and as the binning extent of the spatial hash.
type AABB struct {
	Min V.Vec2
	Max V.Vec2
}

// Width and Height of the box.
func (b AABB) Width() float32  { return b.Max[0] - b.Min[0] }
func (b AABB) Height() float32 { return b.Max[1] - b.Min[1] }

// Config is the single configuration record supplied at construction.
// Every field below is recognized by the engine; fields may be mutated by
// the caller between ticks (mass and radius, for instance, are re-read
// from the config each tick rather than cached on the particle forever).
type Config struct {
	NumParticles    int
	ParticleRadius  float32
	ParticleSpacing float32
	InitialCentre   V.Vec2

	Gravity V.Vec2

	BoundingBox            AABB
	BoundingBoxRestitution float32

	SmoothingRadius float32

	Stiffness          float32
	DesiredRestDensity float32
	ParticleMass       float32

	Viscosity float32

	SurfaceTension          float32
	SurfaceTensionThreshold float32

	PressureLimit float32

	UsePredictedPositions bool

	NumThreads int
}

// DefaultConfig returns a configuration with stable, commonly-useful
// defaults; callers override whichever fields their scenario needs.
func DefaultConfig() Config {
	return Config{
		NumParticles:    400,
		ParticleRadius:  4,
		ParticleSpacing: 2,
		InitialCentre:   V.Vec2{250, 250},

		Gravity: V.Vec2{0, 980},

		BoundingBox:            AABB{Min: V.Vec2{0, 0}, Max: V.Vec2{500, 500}},
		BoundingBoxRestitution: 0.5,

		SmoothingRadius: 16,

		Stiffness:          2000,
		DesiredRestDensity: 1000,
		ParticleMass:       1,

		Viscosity: 0.1,

		SurfaceTension:          0,
		SurfaceTensionThreshold: 0,

		PressureLimit: 1e6,

		UsePredictedPositions: true,

		NumThreads: 4,
	}
}
