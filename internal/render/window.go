// Package render draws scene frames in a raylib window.
package render

import rl "github.com/gen2brain/raylib-go/raylib"

// Window configures Run.
type Window struct {
	Title      string
	Width      int32
	Height     int32
	Fullscreen bool
}

// DefaultWindow is a resizable 1280x800 window.
func DefaultWindow() Window {
	return Window{Title: "axis viewer", Width: 1280, Height: 800}
}

// Loop is the per-phase callbacks of Run. Setup runs once the window exists (GPU resources
// may be created from here on); Teardown runs before it closes. Either may be nil.
type Loop struct {
	Setup    func()
	Update   func()
	Draw     func()
	Teardown func()
}

// Run starts the window and main loop. Each frame it calls Update (e.g. input), then clears
// the screen and calls Draw. ESC toggles the terminal; close via window button.
func Run(w Window, loop Loop) {
	flags := uint32(rl.FlagMsaa4xHint)
	width, height := w.Width, w.Height
	if w.Fullscreen {
		flags |= rl.FlagFullscreenMode
	} else {
		flags |= rl.FlagWindowResizable
	}
	rl.SetConfigFlags(flags)
	if w.Fullscreen {
		width, height = int32(rl.GetMonitorWidth(0)), int32(rl.GetMonitorHeight(0))
	}
	rl.InitWindow(width, height, w.Title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull) // ESC is used to toggle terminal, not to quit; close via window button
	rl.SetTargetFPS(60)

	if loop.Setup != nil {
		loop.Setup()
	}
	for !rl.WindowShouldClose() {
		loop.Update()

		rl.BeginDrawing()
		rl.ClearBackground(Background)
		loop.Draw()
		rl.EndDrawing()
	}
	if loop.Teardown != nil {
		loop.Teardown()
	}
}
