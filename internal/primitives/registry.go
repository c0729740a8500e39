package primitives

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"stadium/internal/scene"
)

// MaxSpots is how many spot lights the lit shader takes per frame. Extra lights are ignored.
const MaxSpots = 8

const (
	defaultSphereRings = 16
	defaultSlices      = 16
	defaultPlaneRes    = 1
)

// Spot is a spot light in world space. Cos is the cosine of the cone's half angle.
type Spot struct {
	Position  [3]float32
	Direction [3]float32
	Color     [3]float32
	Intensity float32
	Range     float32
	Cos       float32
}

// Surface is how one mesh instance is shaded.
type Surface struct {
	Color rl.Color
	// Texture is used when Textured is set; its colour is multiplied by Color.
	Texture  rl.Texture2D
	Textured bool
	// Repeat tiles texture coordinates; zero means 1.
	Repeat [2]float32
	// Fragments with alpha below AlphaTest are discarded.
	AlphaTest float32
	// Emissive surfaces ignore lighting.
	Emissive bool
}

type meshKey struct {
	shape    scene.Shape
	segments int
}

// Registry maps shapes to unit meshes and shades them with one lit shader. Meshes and shaders
// are created on first use so that GPU resources are allocated after the window exists.
type Registry struct {
	meshes map[meshKey]rl.Mesh

	mtl       rl.Material
	texMtl    rl.Material
	shadersOK bool

	viewPos  [3]float32
	ambient  [3]float32
	spots    []Spot
	uniforms [2]uniforms
}

// NewRegistry returns an empty registry with ambient light of the given colour and intensity.
func NewRegistry(ambientColor [3]float32, ambient float32) *Registry {
	return &Registry{
		meshes:  make(map[meshKey]rl.Mesh),
		ambient: [3]float32{ambientColor[0] * ambient, ambientColor[1] * ambient, ambientColor[2] * ambient},
	}
}

// SetView sets the camera position and the spot lights for this frame. Call once per frame
// before drawing.
func (r *Registry) SetView(viewPos [3]float32, spots []Spot) {
	r.viewPos = viewPos
	if len(spots) > MaxSpots {
		spots = spots[:MaxSpots]
	}
	r.spots = spots
}

func (r *Registry) mesh(shape scene.Shape, segments int) (rl.Mesh, bool) {
	if segments < 3 {
		segments = defaultSlices
	}
	if shape == scene.ShapeBox || shape == scene.ShapePlane {
		segments = 0
	}
	key := meshKey{shape, segments}
	if m, ok := r.meshes[key]; ok {
		return m, true
	}
	var m rl.Mesh
	switch shape {
	case scene.ShapeBox:
		m = rl.GenMeshCube(1, 1, 1)
	case scene.ShapeSphere:
		m = rl.GenMeshSphere(0.5, defaultSphereRings, segments)
	case scene.ShapeCylinder:
		m = rl.GenMeshCylinder(0.5, 1, segments)
	case scene.ShapeCone:
		m = rl.GenMeshCone(0.5, 1, segments)
	case scene.ShapePlane:
		m = rl.GenMeshPlane(1, 1, defaultPlaneRes, defaultPlaneRes)
	default:
		return rl.Mesh{}, false
	}
	r.meshes[key] = m
	return m, true
}

func (r *Registry) ensureShaders() {
	if r.shadersOK {
		return
	}
	r.shadersOK = true
	r.mtl = rl.LoadMaterialDefault()
	if s := rl.LoadShaderFromMemory(litVS, litFS); rl.IsShaderValid(s) {
		r.mtl.Shader = s
		r.uniforms[0] = locate(s)
	}
	r.texMtl = rl.LoadMaterialDefault()
	if s := rl.LoadShaderFromMemory(litVS, litTexturedFS); rl.IsShaderValid(s) {
		r.texMtl.Shader = s
		r.uniforms[1] = locate(s)
	}
}

// UnitMatrix maps raylib's unit mesh for shape onto a node of the given size: boxes are scaled
// by size, spheres by their diameter, cylinders and cones are centred on their axis and planes
// are turned to face +Z. Zero size components mean 1.
func UnitMatrix(shape scene.Shape, size [3]float32) rl.Matrix {
	one := func(v float32) float32 {
		if v == 0 {
			return 1
		}
		return v
	}
	switch shape {
	case scene.ShapeSphere:
		d := 2 * one(size[0])
		return rl.MatrixScale(d, d, d)
	case scene.ShapeCylinder, scene.ShapeCone:
		d := 2 * one(size[0])
		return rl.MatrixMultiply(rl.MatrixTranslate(0, -0.5, 0), rl.MatrixScale(d, one(size[1]), d))
	case scene.ShapePlane:
		return rl.MatrixMultiply(rl.MatrixRotateX(math32.Pi/2), rl.MatrixScale(one(size[0]), one(size[1]), 1))
	}
	return rl.MatrixScale(one(size[0]), one(size[1]), one(size[2]))
}

// Draw draws one instance of shape with the given world transform (which excludes the unit mesh
// fixup; see UnitMatrix). Must be called between BeginMode3D and EndMode3D. Unknown shapes are
// skipped.
func (r *Registry) Draw(shape scene.Shape, segments int, size [3]float32, world rl.Matrix, s Surface) {
	m, ok := r.mesh(shape, segments)
	if !ok {
		return
	}
	r.ensureShaders()
	mtl, u := &r.mtl, r.uniforms[0]
	if s.Textured && rl.IsTextureValid(s.Texture) {
		mtl, u = &r.texMtl, r.uniforms[1]
		rl.SetMaterialTexture(mtl, rl.MapAlbedo, s.Texture)
	}
	if albedo := mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = s.Color
	}
	r.setUniforms(mtl.Shader, u, s)
	rl.DrawMesh(m, *mtl, rl.MatrixMultiply(UnitMatrix(shape, size), world))
}

// Unload frees every mesh and shader.
func (r *Registry) Unload() {
	for k, m := range r.meshes {
		rl.UnloadMesh(&m)
		delete(r.meshes, k)
	}
	if r.shadersOK {
		rl.UnloadShader(r.mtl.Shader)
		rl.UnloadShader(r.texMtl.Shader)
		r.shadersOK = false
	}
}

// ColorOf converts 0xRRGGBB to an opaque raylib colour.
func ColorOf(rgb uint32) rl.Color {
	return rl.NewColor(uint8(rgb>>16), uint8(rgb>>8), uint8(rgb), 255)
}

// Float3 converts 0xRRGGBB to 0..1 components.
func Float3(rgb uint32) [3]float32 {
	return [3]float32{float32(rgb>>16&0xff) / 255, float32(rgb>>8&0xff) / 255, float32(rgb&0xff) / 255}
}
