package graphics

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"stadium/internal/config"
	"stadium/internal/primitives"
)

// Run opens the window and runs the main loop. Each frame it calls update with the frame time
// (input, simulation), clears the screen and calls draw. shutdown, if set, runs while the
// window still exists so GPU resources can be freed.
// ESC toggles the console rather than quitting; close via the window button.
func Run(w config.Window, background uint32, update func(dt time.Duration), draw func(), shutdown func()) {
	flags := uint32(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	width, height := int32(w.Width), int32(w.Height)
	if w.Fullscreen {
		flags |= rl.FlagFullscreenMode
		width, height = int32(rl.GetMonitorWidth(0)), int32(rl.GetMonitorHeight(0))
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(width, height, w.Title)
	defer rl.CloseWindow()
	if shutdown != nil {
		defer shutdown()
	}

	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(int32(w.FPS))

	bg := primitives.ColorOf(background)
	for !rl.WindowShouldClose() {
		update(time.Duration(float64(rl.GetFrameTime()) * float64(time.Second)))

		rl.BeginDrawing()
		rl.ClearBackground(bg)
		draw()
		rl.EndDrawing()
	}
}
