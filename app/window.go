// Package app hosts the windowed raylib presentation layer: drawing the
// particle field, the optional density overlay, and translating mouse
// and keyboard input into attractor and playback control.
package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/andewx/sph2d/config"
)

// AppWindow names the window's size and title, mirroring the shape of
// the teacher's windowing configuration.
type AppWindow struct {
	Width  int32
	Height int32
	Name   string
}

// InitWindow opens the raylib window and sets the target frame rate.
func InitWindow(w AppWindow, targetFPS int32) {
	rl.InitWindow(w.Width, w.Height, w.Name)
	rl.SetTargetFPS(targetFPS)
}

// CloseWindow tears down the raylib window.
func CloseWindow() {
	rl.CloseWindow()
}

// WindowFromConfig builds an AppWindow from the loaded screen configuration.
func WindowFromConfig(cfg config.ScreenConfig, title string) AppWindow {
	return AppWindow{Width: cfg.Width, Height: cfg.Height, Name: title}
}
