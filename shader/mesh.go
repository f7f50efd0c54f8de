package shader

import (
	"viewport-core/core"
	"viewport-core/math"
)

// MeshStyle holds the constants of the two-term diffuse formula
// brightness = light*Diffuse + Ambient. The combinations below are the
// ones the materials of the editor use; callers pick one, nothing is
// hard-coded in the shader.
type MeshStyle struct {
	Diffuse float32
	Ambient float32
}

var (
	// StyleObject shades imported part geometry.
	StyleObject = MeshStyle{Diffuse: 0.3, Ambient: 0.3}
	// StyleEntity shades editor helper entities (markers, handles).
	StyleEntity = MeshStyle{Diffuse: 0.4, Ambient: 0.6}
	// StyleTool shades the tool model.
	StyleTool = MeshStyle{Diffuse: 0.2, Ambient: 0.5}
)

// MeshShader gives otherwise flat-colored meshes a depth cue by scaling
// the base color with a single view-facing diffuse term. It is not
// physically based lighting; the light always sits at the eye.
type MeshShader struct {
	style MeshStyle
}

func NewMeshShader(style MeshStyle) *MeshShader {
	return &MeshShader{style: style}
}

// Vertex transforms one model-space vertex (Z up) into clip space and
// returns its render-space position and normal for the fragment stage.
func (s *MeshShader) Vertex(v core.Vertex, cam *CameraBlock) (clip math.Vec4, world, normal math.Vec3) {
	world = v.Position.XZY()
	normal = v.Normal.XZY()
	clip = world.ToVec4(1).MulMat(cam.ViewProj)
	return clip, world, normal
}

// Brightness computes the view-facing diffuse factor for a render-space
// surface point.
func (s *MeshShader) Brightness(normal, world math.Vec3, cam *CameraBlock) float32 {
	viewDir := cam.ViewPos.Sub(world).Normalize()
	light := normal.Normalize().Dot(viewDir)
	return light*s.style.Diffuse + s.style.Ambient
}

// Fragment scales the base color by the diffuse factor; alpha is passed
// through untouched.
func (s *MeshShader) Fragment(normal, world math.Vec3, base core.Color, cam *CameraBlock) core.Color {
	f := s.Brightness(normal, world, cam)
	return core.Color{R: base.R * f, G: base.G * f, B: base.B * f, A: base.A}
}
