package graphics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"stadium/internal/app"
	"stadium/internal/primitives"
	"stadium/internal/scene"
)

// Renderer draws the app's scene graph with raylib. It owns every GPU resource and must be
// used from the render goroutine only.
type Renderer struct {
	app      *app.App
	reg      *primitives.Registry
	textures map[string]rl.Texture2D
	spots    []primitives.Spot
	sky      skybox
}

// NewRenderer prepares a renderer for a. The lights are collected once; they do not move.
func NewRenderer(a *app.App) (*Renderer, error) {
	amb, err := a.Config().AmbientColor()
	if err != nil {
		return nil, err
	}
	r := &Renderer{
		app:      a,
		reg:      primitives.NewRegistry(primitives.Float3(amb), a.Config().Lighting.Ambient),
		textures: make(map[string]rl.Texture2D),
	}
	a.Ground.Walk(func(n *scene.Node, world scene.Mat4) bool {
		if n.Kind == scene.KindLight {
			r.spots = append(r.spots, spotOf(n.Light, world))
		}
		return true
	})
	return r, nil
}

// spotOf places a light at its node's origin, aimed at the centre of the field.
func spotOf(l scene.Light, world scene.Mat4) primitives.Spot {
	pos := world.Apply([3]float32{})
	dir := [3]float32{-pos[0], -pos[1], -pos[2]}
	if n := math32.Sqrt(dir[0]*dir[0] + dir[1]*dir[1] + dir[2]*dir[2]); n > 0 {
		dir = [3]float32{dir[0] / n, dir[1] / n, dir[2] / n}
	}
	return primitives.Spot{
		Position:  pos,
		Direction: dir,
		Color:     primitives.Float3(l.Color),
		Intensity: l.Intensity,
		Range:     l.Distance,
		Cos:       math32.Cos(l.Angle),
	}
}

func toMatrix(m scene.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}

func vec3(v [3]float32) rl.Vector3 { return rl.NewVector3(v[0], v[1], v[2]) }

// Camera3D converts the app camera for raylib.
func (r *Renderer) Camera3D() rl.Camera3D {
	c := r.app.Camera
	return rl.Camera3D{
		Position:   vec3(c.Position),
		Target:     vec3(c.Target),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       c.Fovy,
		Projection: rl.CameraPerspective,
	}
}

// upload turns images finished by the background loaders into GPU textures.
func (r *Renderer) upload() {
	for name, img := range r.app.Textures.TakeReady() {
		rimg := rl.NewImageFromImage(img)
		tex := rl.LoadTextureFromImage(rimg)
		rl.UnloadImage(rimg)
		if !rl.IsTextureValid(tex) {
			r.app.Log().Logf("texture %s: upload failed, using colour", name)
			continue
		}
		rl.GenTextureMipmaps(&tex)
		rl.SetTextureFilter(tex, rl.FilterTrilinear)
		rl.SetTextureWrap(tex, rl.WrapRepeat)
		if old, ok := r.textures[name]; ok {
			rl.UnloadTexture(old)
		}
		r.textures[name] = tex
		if name == scene.TextureSky {
			r.sky.load(tex)
		}
	}
}

// Draw renders the stadium. Call between BeginDrawing and EndDrawing, before 2D overlays.
func (r *Renderer) Draw() {
	r.upload()
	cam := r.Camera3D()
	r.reg.SetView(r.app.Camera.Position, r.spots)

	rl.BeginMode3D(cam)
	r.sky.draw(cam.Position)
	r.app.Ground.Walk(func(n *scene.Node, world scene.Mat4) bool {
		switch n.Kind {
		case scene.KindMesh:
			r.drawMesh(n, world)
		case scene.KindLines:
			drawLines(n, world)
		}
		return true
	})
	if r.app.HUD.Axes {
		drawAxes()
	}
	rl.EndMode3D()
}

func (r *Renderer) drawMesh(n *scene.Node, world scene.Mat4) {
	mat := n.Material
	s := primitives.Surface{
		Color:     primitives.ColorOf(mat.Color),
		Repeat:    mat.Repeat,
		AlphaTest: mat.AlphaTest,
		Emissive:  mat.Emissive,
	}
	if tex, ok := r.textures[mat.Texture]; ok && mat.Texture != "" {
		s.Texture, s.Textured = tex, true
		s.Color = rl.White
	}
	r.reg.Draw(n.Shape, n.Segments, n.Size, toMatrix(world), s)
}

func drawLines(n *scene.Node, world scene.Mat4) {
	if len(n.Points) < 2 {
		return
	}
	c := primitives.ColorOf(n.LineColor)
	prev := vec3(world.Apply(n.Points[0]))
	for _, p := range n.Points[1:] {
		next := vec3(world.Apply(p))
		rl.DrawLine3D(prev, next, c)
		prev = next
	}
}

// Unload frees textures, meshes and shaders. Call before the window closes.
func (r *Renderer) Unload() {
	for name, tex := range r.textures {
		rl.UnloadTexture(tex)
		delete(r.textures, name)
	}
	r.sky.unload()
	r.reg.Unload()
}
