package fluid

import V "github.com/andewx/sph2d/vector"

// Attractor is a point source of impulse. Positive Strength attracts,
// negative repels. Attractors do not own particles; the engine only
// holds their identity for matching on removal (see Engine.RemoveAttractor).
type Attractor struct {
	Position V.Vec2
	Radius   float32
	Strength float32
}

// NewAttractor constructs an attractor at the given position.
func NewAttractor(pos V.Vec2, radius, strength float32) *Attractor {
	return &Attractor{Position: pos, Radius: radius, Strength: strength}
}
