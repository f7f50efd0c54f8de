package render

import (
	"github.com/chewxy/math32"

	"viewport-core/core"
	"viewport-core/math"
	"viewport-core/path"
	"viewport-core/scene"
	"viewport-core/shader"
)

// Renderer composes the three viewport passes over a framebuffer:
// solid meshes with depth, the analytic reference grid, and the
// flattened toolpath overlay. Pass ordering is the caller's: meshes
// and grid first (depth-tested among themselves), lines last.
type Renderer struct {
	fb   *Framebuffer
	grid *shader.GridShader
	line *shader.LineShader
}

func NewRenderer(width, height int) *Renderer {
	return &Renderer{
		fb:   NewFramebuffer(width, height),
		grid: shader.NewGridShader(shader.DefaultGridConfig()),
		line: shader.NewLineShader(shader.DefaultLineConfig()),
	}
}

// NewRendererWith uses explicit grid and line configurations.
func NewRendererWith(width, height int, gridCfg shader.GridConfig, lineCfg shader.LineConfig) *Renderer {
	return &Renderer{
		fb:   NewFramebuffer(width, height),
		grid: shader.NewGridShader(gridCfg),
		line: shader.NewLineShader(lineCfg),
	}
}

func (r *Renderer) Framebuffer() *Framebuffer {
	return r.fb
}

func (r *Renderer) Clear(c core.Color) {
	r.fb.Clear(c)
}

// nearW rejects triangles touching the camera plane; proper frustum
// clipping is not implemented.
const nearW = 0.01

// toScreen converts a clip-space position to pixel coordinates and a
// depth value, dividing by |w|.
func (r *Renderer) toScreen(clip math.Vec4) (math.Vec2, float32) {
	w := math32.Abs(clip.W)
	if w < 1e-6 {
		w = 1e-6
	}
	ndcX := clip.X / w
	ndcY := clip.Y / w
	px := (ndcX + 1) * 0.5 * float32(r.fb.width)
	py := (1 - ndcY) * 0.5 * float32(r.fb.height)
	return math.Vec2{X: px, Y: py}, clip.Z / w
}

// DrawMesh renders a model-space mesh with depth testing and the given
// diffuse style.
func (r *Renderer) DrawMesh(m *scene.Mesh, style shader.MeshStyle, cam *shader.CameraBlock) {
	ms := shader.NewMeshShader(style)

	for i := 0; i+2 < len(m.Indices); i += 3 {
		var rv [3]rasterVertex
		behind := false
		for j := 0; j < 3; j++ {
			v := m.Vertices[m.Indices[i+j]]
			clip, world, normal := ms.Vertex(v, cam)
			if clip.W < nearW {
				behind = true
				break
			}
			pos, depth := r.toScreen(clip)
			rv[j] = rasterVertex{
				pos:    pos,
				depth:  depth,
				world:  world,
				normal: normal,
				color:  v.Color,
			}
		}
		if behind {
			continue
		}

		rasterTriangle(r.fb, rv[0], rv[1], rv[2], true, func(world, normal math.Vec3, c core.Color) core.Color {
			return ms.Fragment(normal, world, c, cam)
		})
	}
}

// gridSample intersects the pixel ray with the grid plane (model Z=0,
// render Y=0) and returns the hit in model-plane units.
func gridSample(ray scene.Ray) (math.Vec2, math.Vec3, bool) {
	if math32.Abs(ray.Direction.Y) < 1e-6 {
		return math.Vec2{}, math.Vec3{}, false
	}
	t := -ray.Origin.Y / ray.Direction.Y
	if t <= 0 {
		return math.Vec2{}, math.Vec3{}, false
	}
	hit := ray.Origin.Add(ray.Direction.Mul(t))
	// model X stays X; model Y is render Z
	return math.Vec2{X: hit.X, Y: hit.Z}, hit, true
}

// DrawGrid runs the full-screen analytic grid pass. Each covered pixel
// casts a ray onto the grid plane; derivatives come from the rays of
// the neighboring pixels, exactly what hardware derivative instructions
// would provide. Grid fragments are depth-tested and overwrite color
// without blending; discarded fragments leave the background alone.
func (r *Renderer) DrawGrid(cam *scene.Camera) {
	block := cam.Uniform()
	r.drawGridPlane(cam, &block, func(sample, ddx, ddy math.Vec2) core.Color {
		return r.grid.Fragment(sample, ddx, ddy, block.Zoom)
	})
}

// DrawBoundedGrid draws the fixed-level grid variant clipped to a
// centered extent, used for bounded reference planes such as the
// machine bed.
func (r *Renderer) DrawBoundedGrid(cam *scene.Camera, extent math.Vec2, levels int) {
	block := cam.Uniform()
	half := extent.Mul(0.5)
	r.drawGridPlane(cam, &block, func(sample, ddx, ddy math.Vec2) core.Color {
		if math32.Abs(sample.X) > half.X || math32.Abs(sample.Y) > half.Y {
			return core.ColorTransparent
		}
		return r.grid.FragmentFixed(sample, ddx, ddy, levels)
	})
}

func (r *Renderer) drawGridPlane(cam *scene.Camera, block *shader.CameraBlock, shade func(sample, ddx, ddy math.Vec2) core.Color) {
	for y := 0; y < r.fb.height; y++ {
		for x := 0; x < r.fb.width; x++ {
			cx := float32(x) + 0.5
			cy := float32(y) + 0.5

			sample, hit, ok := gridSample(cam.ScreenRay(cx, cy))
			if !ok {
				continue
			}
			right, _, okR := gridSample(cam.ScreenRay(cx+1, cy))
			down, _, okD := gridSample(cam.ScreenRay(cx, cy+1))
			if !okR || !okD {
				continue
			}

			c := shade(sample, right.Sub(sample), down.Sub(sample))
			if c.Discard() {
				continue
			}

			clip := hit.ToVec4(1).MulMat(block.ViewProj)
			if clip.W < nearW {
				continue
			}
			_, depth := r.toScreen(clip)
			if !r.fb.testAndSetDepth(x, y, depth) {
				continue
			}
			r.fb.SetPixel(x, y, c)
		}
	}
}

// DrawPolylines renders generated polyline strips in the flattened
// overlay pass: no depth test or write, alpha-blended over whatever is
// already in the framebuffer.
func (r *Renderer) DrawPolylines(verts []shader.PolylineVertex, indices []uint32, cam *shader.CameraBlock) {
	for i := 0; i+2 < len(indices); i += 3 {
		var rv [3]rasterVertex
		for j := 0; j < 3; j++ {
			idx := indices[i+j]
			clip, color := r.line.Corner(int(idx%path.CornersPerPoint), verts[idx], cam)
			pos, _ := r.toScreen(clip)
			rv[j] = rasterVertex{pos: pos, color: color}
		}

		rasterTriangle(r.fb, rv[0], rv[1], rv[2], false, func(_, _ math.Vec3, c core.Color) core.Color {
			return c
		})
	}
}
