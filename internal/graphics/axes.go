package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

const (
	gridExtent     = 150
	gridMinorStep  = 10
	gridMajorStep  = 50
	gridMinorAlpha = 40
	gridMajorAlpha = 110
	axisLength     = 100
	axisLineAlpha  = 220
)

// drawAxes draws a reference grid on the world XZ plane and the world basis through the
// origin (X red, Y green, Z blue). Vectors are reused to keep the loop allocation free.
func drawAxes() {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)

	var start, end rl.Vector3
	for v := -gridExtent; v <= gridExtent; v += gridMinorStep {
		c := major
		if v%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(v), 0, -gridExtent
		end.X, end.Y, end.Z = float32(v), 0, gridExtent
		rl.DrawLine3D(start, end, c)
		start.X, start.Y, start.Z = -gridExtent, 0, float32(v)
		end.X, end.Y, end.Z = gridExtent, 0, float32(v)
		rl.DrawLine3D(start, end, c)
	}

	origin := rl.NewVector3(0, 0, 0)
	rl.DrawLine3D(origin, rl.NewVector3(axisLength, 0, 0), rl.NewColor(220, 80, 80, axisLineAlpha))
	rl.DrawLine3D(origin, rl.NewVector3(0, axisLength, 0), rl.NewColor(80, 220, 80, axisLineAlpha))
	rl.DrawLine3D(origin, rl.NewVector3(0, 0, axisLength), rl.NewColor(80, 80, 220, axisLineAlpha))
}
