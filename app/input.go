package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/andewx/sph2d/fluid"
	V "github.com/andewx/sph2d/vector"
)

// InputState tracks the mouse-driven attractor lifecycle: left mouse
// pulls, right mouse pushes, and the attractor exists only while the
// button is held, mirroring the original viewer's mousePos/leftMouseDown
// interaction listener.
type InputState struct {
	pull *fluid.Attractor
	push *fluid.Attractor

	Paused bool
}

// PollInput samples mouse and keyboard state for one frame and applies
// the resulting attractor lifecycle changes to e. radius and strength
// configure the attractor created under the cursor.
func (in *InputState) PollInput(e *fluid.Engine, radius, strength float32) {
	mouse := rl.GetMousePosition()
	pos := V.Vec2{mouse.X, mouse.Y}

	switch {
	case rl.IsMouseButtonDown(rl.MouseButtonLeft):
		if in.pull == nil {
			in.pull = fluid.NewAttractor(pos, radius, strength)
			e.AddAttractor(in.pull)
		} else {
			in.pull.Position = pos
		}
	case in.pull != nil:
		e.RemoveAttractor(in.pull)
		in.pull = nil
	}

	switch {
	case rl.IsMouseButtonDown(rl.MouseButtonRight):
		if in.push == nil {
			in.push = fluid.NewAttractor(pos, radius, -strength)
			e.AddAttractor(in.push)
		} else {
			in.push.Position = pos
		}
	case in.push != nil:
		e.RemoveAttractor(in.push)
		in.push = nil
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		in.Paused = !in.Paused
	}
}
