package render

import (
	"fmt"
	"math"

	"axis-viewer/internal/geom"
	"axis-viewer/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// uploaded is one tube on the GPU plus the Go-side arrays raylib points into.
type uploaded struct {
	mesh      rl.Mesh
	vertices  []float32
	normals   []float32
	texcoords []float32
	indices   []uint16
}

// tubeSet is the uploaded meshes of one overlay and the color they are drawn with.
type tubeSet struct {
	color rl.Color
	tubes []uploaded
}

// meshCache owns the GPU copies of the current frame's overlay meshes. Uploads are
// deferred to Draw so they run after the window/OpenGL context exists; a new frame
// replaces every mesh of the previous one.
type meshCache struct {
	sets     []tubeSet
	mtl      rl.Material
	mtlReady bool
	viewPos  [3]float32
	lightDir [3]float32
}

func newMeshCache() *meshCache {
	return &meshCache{lightDir: [3]float32{0.5, 1, 0.5}}
}

// ensureMaterial creates the lit tube material on first use.
func (c *meshCache) ensureMaterial() {
	if c.mtlReady {
		return
	}
	c.mtl = rl.LoadMaterialDefault()
	if shader := rl.LoadShaderFromMemory(litVS, litFS); rl.IsShaderValid(shader) {
		c.mtl.Shader = shader
	}
	c.mtlReady = true
}

// sync unloads the previous frame's meshes and uploads f's. Meshes that cannot be
// converted are skipped and reported.
func (c *meshCache) sync(f *scene.Frame) []error {
	c.unload()
	if f == nil {
		return nil
	}
	var errs []error
	for _, o := range f.Overlays {
		if len(o.Tubes) == 0 {
			continue
		}
		set := tubeSet{color: toColor(o.Color, 255)}
		for i := range o.Tubes {
			u, err := convert(&o.Tubes[i])
			if err != nil {
				errs = append(errs, fmt.Errorf("overlay %d tube %d: %w", o.ID, i, err))
				continue
			}
			rl.UploadMesh(&u.mesh, false)
			set.tubes = append(set.tubes, u)
		}
		c.sets = append(c.sets, set)
	}
	return errs
}

func (c *meshCache) unload() {
	for _, set := range c.sets {
		for i := range set.tubes {
			rl.UnloadMesh(&set.tubes[i].mesh)
		}
	}
	c.sets = nil
}

// close releases meshes and the material. Call before the window closes.
func (c *meshCache) close() {
	c.unload()
	if c.mtlReady {
		rl.UnloadMaterial(c.mtl)
		c.mtlReady = false
	}
}

// SetView sets camera position for this frame's lighting.
func (c *meshCache) SetView(viewPos [3]float32) {
	c.viewPos = viewPos
}

// draw renders every uploaded tube. Must be called between BeginMode3D and EndMode3D.
func (c *meshCache) draw() {
	if len(c.sets) == 0 {
		return
	}
	c.ensureMaterial()
	c.setLitShaderUniforms(c.mtl.Shader)
	identity := rl.MatrixIdentity()
	for _, set := range c.sets {
		if albedo := c.mtl.GetMap(rl.MapAlbedo); albedo != nil {
			albedo.Color = set.color
		}
		for i := range set.tubes {
			rl.DrawMesh(set.tubes[i].mesh, c.mtl, identity)
		}
	}
}

func (c *meshCache) count() int {
	n := 0
	for _, set := range c.sets {
		n += len(set.tubes)
	}
	return n
}

// convert flattens m into the arrays raylib expects. Indices are 16-bit, so meshes
// above 65535 vertices are rejected.
func convert(m *geom.Mesh) (uploaded, error) {
	n := m.VertexCount()
	if n == 0 || len(m.Indices) == 0 {
		return uploaded{}, fmt.Errorf("empty mesh")
	}
	if n > math.MaxUint16+1 {
		return uploaded{}, fmt.Errorf("%d vertices exceed 16-bit indices", n)
	}
	u := uploaded{
		vertices:  make([]float32, 0, n*3),
		normals:   make([]float32, 0, n*3),
		texcoords: make([]float32, 0, n*2),
		indices:   make([]uint16, len(m.Indices)),
	}
	for _, p := range m.Positions {
		u.vertices = append(u.vertices, p.X, p.Y, p.Z)
	}
	for i := 0; i < n; i++ {
		var nv geom.Vec3
		if i < len(m.Normals) {
			nv = m.Normals[i]
		}
		u.normals = append(u.normals, nv.X, nv.Y, nv.Z)
		var uv geom.Vec2
		if i < len(m.UVs) {
			uv = m.UVs[i]
		}
		u.texcoords = append(u.texcoords, uv.X, uv.Y)
	}
	for i, idx := range m.Indices {
		if int(idx) >= n {
			return uploaded{}, fmt.Errorf("index %d out of range", idx)
		}
		u.indices[i] = uint16(idx)
	}
	u.mesh = rl.Mesh{
		VertexCount:   int32(n),
		TriangleCount: int32(m.TriangleCount()),
		Vertices:      &u.vertices[0],
		Normals:       &u.normals[0],
		Texcoords:     &u.texcoords[0],
		Indices:       &u.indices[0],
	}
	return u, nil
}

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`
	// Tubes are thin, so both faces are lit (abs of N.L).
	litFS = `#version 330
in vec3 fragPosition;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform vec3 lightColor;
uniform float lightIntensity;
out vec4 finalColor;
void main() {
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  float NdotL = abs(dot(N, L));
  vec3 diffuse = colDiffuse.rgb * NdotL * lightColor * lightIntensity;
  vec3 amb = ambient.rgb * colDiffuse.rgb;
  finalColor = vec4(amb + diffuse, colDiffuse.a);
}
`
)

// defaultAmbient is the ambient term (bright enough that tube colors stay recognisable).
var defaultAmbient = [4]float32{0.45, 0.45, 0.45, 1.0}

// defaultLightColor is a soft warm-white for the directional light.
var defaultLightColor = [3]float32{1.0, 0.98, 0.95}

// defaultLightIntensity scales the directional diffuse (0–1).
const defaultLightIntensity = float32(0.6)

// setLitShaderUniforms sets viewPos, lightDir, ambient and light color/intensity on the given shader (cgo-safe: local arrays).
func (c *meshCache) setLitShaderUniforms(shader rl.Shader) {
	if !rl.IsShaderValid(shader) {
		return
	}
	viewPos := [3]float32{c.viewPos[0], c.viewPos[1], c.viewPos[2]}
	lightDir := [3]float32{c.lightDir[0], c.lightDir[1], c.lightDir[2]}
	amb := [4]float32{defaultAmbient[0], defaultAmbient[1], defaultAmbient[2], defaultAmbient[3]}
	lightColor := [3]float32{defaultLightColor[0], defaultLightColor[1], defaultLightColor[2]}
	if loc := rl.GetShaderLocation(shader, "viewPos"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, viewPos[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightDir"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, lightDir[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "ambient"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, amb[:], rl.ShaderUniformVec4, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightColor"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, lightColor[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightIntensity"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{defaultLightIntensity}, rl.ShaderUniformFloat)
	}
}

func toColor(c geom.Color, alpha uint8) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, alpha)
}
