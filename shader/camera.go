// Package shader implements the per-invocation programs of the viewport:
// the analytic infinite grid, the screen-space polyline join builder and
// the view-facing diffuse mesh shader. Every entry point is a pure
// function of its arguments; scheduling one invocation per vertex or per
// covered pixel is the caller's job.
package shader

import (
	"github.com/chewxy/math32"

	"viewport-core/math"
)

// CameraBlock is the per-frame camera state read by every shader stage.
// It mirrors the uniform layout of the host: combined view-projection
// matrix, eye position in render space, viewport size in pixels and the
// zoom scalar driving grid detail. The block is immutable for the
// duration of a frame.
type CameraBlock struct {
	ViewProj math.Mat4
	ViewPos  math.Vec3
	Viewport math.Vec2
	Zoom     float32
}

// minDenom is the smallest magnitude a divisor is allowed to take.
// Denominators below it are clamped so degenerate geometry produces
// large-but-finite results instead of Inf or NaN.
const minDenom = 1e-6

func clampDenom(x float32) float32 {
	if x >= 0 {
		return max(x, minDenom)
	}
	return min(x, -minDenom)
}

// ScreenPoint projects a render-space position to viewport pixel
// coordinates measured from the screen center. The perspective division
// uses |w|: a point momentarily behind the camera must not flip sign,
// which would corrupt the join direction of any line touching it.
func (c *CameraBlock) ScreenPoint(pos math.Vec3) math.Vec2 {
	clip := pos.ToVec4(1).MulMat(c.ViewProj)
	w := math32.Abs(clip.W)
	if w < minDenom {
		w = minDenom
	}
	return math.Vec2{X: clip.X / w, Y: clip.Y / w}.MulVec(c.Viewport.Mul(0.5))
}
