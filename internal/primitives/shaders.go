package primitives

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	specularPower    = float32(48.0)
	specularStrength = float32(0.25)
)

// uniforms caches shader locations; -1 means the shader does not use it.
type uniforms struct {
	viewPos, ambient                  int32
	uvRepeat, alphaCutoff, emissive   int32
	spotCount                         int32
	spotPos, spotDir, spotColor       int32
	spotIntensity, spotRange, spotCos int32
	specularPower, specularStrength   int32
}

func locate(s rl.Shader) uniforms {
	loc := func(name string) int32 { return rl.GetShaderLocation(s, name) }
	return uniforms{
		viewPos:          loc("viewPos"),
		ambient:          loc("ambient"),
		uvRepeat:         loc("uvRepeat"),
		alphaCutoff:      loc("alphaCutoff"),
		emissive:         loc("emissive"),
		spotCount:        loc("spotCount"),
		spotPos:          loc("spotPos"),
		spotDir:          loc("spotDir"),
		spotColor:        loc("spotColor"),
		spotIntensity:    loc("spotIntensity"),
		spotRange:        loc("spotRange"),
		spotCos:          loc("spotCos"),
		specularPower:    loc("specularPower"),
		specularStrength: loc("specularStrength"),
	}
}

// setUniforms uploads the frame and surface values (cgo-safe: local slices).
func (r *Registry) setUniforms(shader rl.Shader, u uniforms, s Surface) {
	if !rl.IsShaderValid(shader) {
		return
	}
	vec3 := func(loc int32, v [3]float32) {
		if loc >= 0 {
			rl.SetShaderValueV(shader, loc, []float32{v[0], v[1], v[2]}, rl.ShaderUniformVec3, 1)
		}
	}
	float := func(loc int32, v float32) {
		if loc >= 0 {
			rl.SetShaderValue(shader, loc, []float32{v}, rl.ShaderUniformFloat)
		}
	}
	vec3(u.viewPos, r.viewPos)
	vec3(u.ambient, r.ambient)

	rep := s.Repeat
	if rep[0] == 0 {
		rep[0] = 1
	}
	if rep[1] == 0 {
		rep[1] = 1
	}
	if u.uvRepeat >= 0 {
		rl.SetShaderValueV(shader, u.uvRepeat, []float32{rep[0], rep[1]}, rl.ShaderUniformVec2, 1)
	}
	float(u.alphaCutoff, s.AlphaTest)
	emissive := float32(0)
	if s.Emissive {
		emissive = 1
	}
	float(u.emissive, emissive)
	float(u.specularPower, specularPower)
	float(u.specularStrength, specularStrength)

	n := len(r.spots)
	float(u.spotCount, float32(n))
	if n == 0 {
		return
	}
	pos := make([]float32, 0, 3*n)
	dir := make([]float32, 0, 3*n)
	col := make([]float32, 0, 3*n)
	inten := make([]float32, 0, n)
	rng := make([]float32, 0, n)
	cos := make([]float32, 0, n)
	for _, sp := range r.spots {
		pos = append(pos, sp.Position[:]...)
		dir = append(dir, sp.Direction[:]...)
		col = append(col, sp.Color[:]...)
		inten = append(inten, sp.Intensity)
		rng = append(rng, sp.Range)
		cos = append(cos, sp.Cos)
	}
	arr := func(loc int32, v []float32, typ rl.ShaderUniformDataType) {
		if loc >= 0 {
			rl.SetShaderValueV(shader, loc, v, typ, int32(n))
		}
	}
	arr(u.spotPos, pos, rl.ShaderUniformVec3)
	arr(u.spotDir, dir, rl.ShaderUniformVec3)
	arr(u.spotColor, col, rl.ShaderUniformVec3)
	arr(u.spotIntensity, inten, rl.ShaderUniformFloat)
	arr(u.spotRange, rng, rl.ShaderUniformFloat)
	arr(u.spotCos, cos, rl.ShaderUniformFloat)
}

var litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
uniform vec2 uvRepeat;
out vec3 fragPosition;
out vec2 fragTexCoord;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragTexCoord = vertexTexCoord * uvRepeat;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`

// lighting is shared by both fragment shaders: ambient plus spot lights with a smooth cone edge
// and linear falloff to their range. Planes are lit from both sides.
var lighting = fmt.Sprintf(`
#define MAX_SPOTS %d
uniform vec3 viewPos;
uniform vec3 ambient;
uniform float alphaCutoff;
uniform float emissive;
uniform float spotCount;
uniform vec3 spotPos[MAX_SPOTS];
uniform vec3 spotDir[MAX_SPOTS];
uniform vec3 spotColor[MAX_SPOTS];
uniform float spotIntensity[MAX_SPOTS];
uniform float spotRange[MAX_SPOTS];
uniform float spotCos[MAX_SPOTS];
uniform float specularPower;
uniform float specularStrength;
out vec4 finalColor;
vec4 shade(vec4 tint) {
  if (tint.a < alphaCutoff) discard;
  if (emissive > 0.5) return tint;
  vec3 N = normalize(fragNormal);
  vec3 V = normalize(viewPos - fragPosition);
  if (dot(N, V) < 0.0) N = -N;
  vec3 col = ambient * tint.rgb;
  for (int i = 0; i < MAX_SPOTS; i++) {
    if (float(i) >= spotCount) break;
    vec3 toLight = spotPos[i] - fragPosition;
    float dist = length(toLight);
    vec3 L = toLight / max(dist, 0.0001);
    float cosAngle = dot(-L, normalize(spotDir[i]));
    float cone = smoothstep(spotCos[i], mix(spotCos[i], 1.0, 0.15), cosAngle);
    float fall = spotRange[i] > 0.0 ? clamp(1.0 - dist / spotRange[i], 0.0, 1.0) : 1.0;
    float NdotL = max(dot(N, L), 0.0);
    float k = cone * fall * spotIntensity[i];
    vec3 H = normalize(L + V);
    float spec = pow(max(dot(N, H), 0.0), specularPower) * specularStrength;
    col += k * spotColor[i] * (tint.rgb * NdotL + (NdotL > 0.0 ? spec : 0.0));
  }
  return vec4(col, tint.a);
}
`, MaxSpots)

var litFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform vec4 colDiffuse;
` + lighting + `
void main() {
  finalColor = shade(colDiffuse);
}
`

var litTexturedFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform sampler2D texture0;
` + lighting + `
void main() {
  finalColor = shade(texture(texture0, fragTexCoord) * colDiffuse);
}
`
