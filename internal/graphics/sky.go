package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

const skyboxScale = 1000

// skybox draws an equirectangular panorama on a large cube centred on the camera. It stays
// empty until a sky texture is loaded.
type skybox struct {
	tex       rl.Texture2D
	mesh      rl.Mesh
	mtl       rl.Material
	camPosLoc int32
	texLoc    int32
	loaded    bool
}

const (
	equirectVS = `#version 330
in vec3 vertexPosition;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragWorldPos;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragWorldPos = worldPos.xyz;
  gl_Position = matProjection * matView * worldPos;
}
`
	equirectFS = `#version 330
in vec3 fragWorldPos;
out vec4 finalColor;
uniform sampler2D skybox;
uniform vec3 cameraPosition;
void main() {
  vec3 dir = normalize(fragWorldPos - cameraPosition);
  float lon = atan(dir.z, dir.x);
  float lat = asin(clamp(dir.y, -1.0, 1.0));
  float u = lon / 6.28318530718 + 0.5;
  float v = 0.5 - lat / 3.14159265359;
  finalColor = texture(skybox, vec2(u, v));
}
`
)

// load takes an uploaded panorama. A second call replaces the texture only.
func (s *skybox) load(tex rl.Texture2D) {
	s.tex = tex
	if s.loaded {
		return
	}
	shader := rl.LoadShaderFromMemory(equirectVS, equirectFS)
	if !rl.IsShaderValid(shader) {
		return
	}
	s.mesh = rl.GenMeshCube(1, 1, 1)
	s.mtl = rl.LoadMaterialDefault()
	s.mtl.Shader = shader
	s.camPosLoc = rl.GetShaderLocation(shader, "cameraPosition")
	s.texLoc = rl.GetShaderLocation(shader, "skybox")
	s.loaded = true
}

func (s *skybox) draw(pos rl.Vector3) {
	if !s.loaded {
		return
	}
	rl.DisableDepthMask()
	rl.DisableBackfaceCulling()
	transform := rl.MatrixMultiply(rl.MatrixScale(skyboxScale, skyboxScale, skyboxScale), rl.MatrixTranslate(pos.X, pos.Y, pos.Z))
	if s.camPosLoc >= 0 {
		rl.SetShaderValueV(s.mtl.Shader, s.camPosLoc, []float32{pos.X, pos.Y, pos.Z}, rl.ShaderUniformVec3, 1)
	}
	if s.texLoc >= 0 {
		rl.SetShaderValueTexture(s.mtl.Shader, s.texLoc, s.tex)
	}
	rl.DrawMesh(s.mesh, s.mtl, transform)
	rl.EnableBackfaceCulling()
	rl.EnableDepthMask()
}

// unload frees the mesh and shader; the texture belongs to the renderer.
func (s *skybox) unload() {
	if !s.loaded {
		return
	}
	rl.UnloadShader(s.mtl.Shader)
	rl.UnloadMesh(&s.mesh)
	s.loaded = false
}
