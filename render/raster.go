package render

import (
	"github.com/chewxy/math32"

	"viewport-core/core"
	"viewport-core/math"
)

// rasterVertex is one screen-space triangle corner with the attributes
// interpolated across the face.
type rasterVertex struct {
	pos    math.Vec2 // pixel coordinates
	depth  float32
	world  math.Vec3
	normal math.Vec3
	color  core.Color
}

// edge is the signed doubled area of triangle (a, b, p); its sign tells
// which side of a-b the point p lies on.
func edge(a, b, p math.Vec2) float32 {
	return (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
}

type fragmentFunc func(world, normal math.Vec3, c core.Color) core.Color

// rasterTriangle fills the triangle, invoking shade once per covered
// pixel with barycentrically interpolated attributes. With depth
// enabled, fragments are tested and written against the depth buffer;
// otherwise they are alpha-blended over the existing color.
func rasterTriangle(fb *Framebuffer, v0, v1, v2 rasterVertex, depth bool, shade fragmentFunc) {
	area := edge(v0.pos, v1.pos, v2.pos)
	if math32.Abs(area) < 1e-6 {
		return
	}

	minX := int(math32.Floor(min(v0.pos.X, v1.pos.X, v2.pos.X)))
	maxX := int(math32.Ceil(max(v0.pos.X, v1.pos.X, v2.pos.X)))
	minY := int(math32.Floor(min(v0.pos.Y, v1.pos.Y, v2.pos.Y)))
	maxY := int(math32.Ceil(max(v0.pos.Y, v1.pos.Y, v2.pos.Y)))

	minX = max(minX, 0)
	minY = max(minY, 0)
	maxX = min(maxX, fb.width-1)
	maxY = min(maxY, fb.height-1)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			p := math.Vec2{X: float32(x) + 0.5, Y: float32(y) + 0.5}

			w0 := edge(v1.pos, v2.pos, p) / area
			w1 := edge(v2.pos, v0.pos, p) / area
			w2 := 1 - w0 - w1
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			world := v0.world.Mul(w0).Add(v1.world.Mul(w1)).Add(v2.world.Mul(w2))
			normal := v0.normal.Mul(w0).Add(v1.normal.Mul(w1)).Add(v2.normal.Mul(w2))
			c := core.Color{
				R: v0.color.R*w0 + v1.color.R*w1 + v2.color.R*w2,
				G: v0.color.G*w0 + v1.color.G*w1 + v2.color.G*w2,
				B: v0.color.B*w0 + v1.color.B*w1 + v2.color.B*w2,
				A: v0.color.A*w0 + v1.color.A*w1 + v2.color.A*w2,
			}

			out := shade(world, normal, c)
			if out.Discard() {
				continue
			}

			if depth {
				d := v0.depth*w0 + v1.depth*w1 + v2.depth*w2
				if !fb.testAndSetDepth(x, y, d) {
					continue
				}
				fb.SetPixel(x, y, out)
			} else {
				fb.BlendPixel(x, y, out)
			}
		}
	}
}
