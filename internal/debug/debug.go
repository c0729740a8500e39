package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"

	"stadium/internal/app"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh the text every N frames to reduce allocations.
	updateInterval = 30
)

// Overlay draws the stats HUD in the top-right corner: FPS, heap, camera, wave and textures.
type Overlay struct {
	app        *app.App
	frameCount uint32
	lines      []string
	memStats   runtime.MemStats
}

// New returns an overlay for a. It draws only while a.HUD.Show is set.
func New(a *app.App) *Overlay {
	return &Overlay{app: a}
}

func (o *Overlay) refresh() {
	runtime.ReadMemStats(&o.memStats)
	s := o.app.Stats()
	pos := s.Camera.Position
	wave := "idle"
	if s.Wave.Active {
		wave = fmt.Sprintf("column %d/%d", s.Wave.Column, s.Columns)
	}
	o.lines = append(o.lines[:0],
		fmt.Sprintf("FPS: %d", rl.GetFPS()),
		fmt.Sprintf("Mem: %.2f MiB", float64(o.memStats.Alloc)/(1024*1024)),
		fmt.Sprintf("Camera: %.0f, %.0f, %.0f", pos[0], pos[1], pos[2]),
		fmt.Sprintf("Wave: %s (%d so far)", wave, s.Waves),
		fmt.Sprintf("Spectators: %d", s.Spectators),
		fmt.Sprintf("Textures: %d ready, %d pending, %d failed", s.TexReady, s.TexPending, s.TexFailed),
	)
}

// Draw renders the overlay. Call after the scene and terminal in the draw loop.
// Text is recomputed every updateInterval frames, and every frame while a wave runs.
func (o *Overlay) Draw() {
	if !o.app.HUD.Show {
		return
	}
	o.frameCount++
	if o.lines == nil || o.frameCount%updateInterval == 0 || o.app.Wave.Active() {
		o.refresh()
	}
	screenW := int32(rl.GetScreenWidth())
	y := int32(padding)
	for _, text := range o.lines {
		w := rl.MeasureText(text, fontSize)
		rl.DrawText(text, screenW-w-padding, y, fontSize, rl.Green)
		y += lineHeight
	}
	rl.DrawText("F: wave  WASD/arrows: pan  Q/E: zoom  ESC: console", padding, padding, fontSize, rl.LightGray)
}
