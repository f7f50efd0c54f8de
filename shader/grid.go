package shader

import (
	"github.com/chewxy/math32"

	"viewport-core/core"
	"viewport-core/math"
)

// GridConfig holds the tunable constants of the reference grid.
type GridConfig struct {
	// BaseSize is the world-space extent of one cell of the base grid
	// along each axis.
	BaseSize math.Vec2
	// Falloff attenuates each finer detail level; level i contributes
	// at most Falloff^i.
	Falloff float32
}

// DefaultGridConfig matches the machine bed: 10x20 base cells with the
// standard 0.3 per-level falloff.
func DefaultGridConfig() GridConfig {
	return GridConfig{
		BaseSize: math.Vec2{X: 10, Y: 20},
		Falloff:  0.3,
	}
}

// GridShader evaluates an anti-aliased reference grid analytically per
// pixel. Line coverage is derived from the screen-space derivatives of
// the sample position, so no supersampling is involved, and detail
// levels are blended continuously by camera zoom.
type GridShader struct {
	cfg GridConfig
}

func NewGridShader(cfg GridConfig) *GridShader {
	return &GridShader{cfg: cfg}
}

// quadCorners is the six-corner table for an unindexed two-triangle
// quad covering [-1,1]x[-1,1].
var quadCorners = [6]math.Vec2{
	{X: -1, Y: -1},
	{X: 1, Y: -1},
	{X: 1, Y: 1},
	{X: -1, Y: -1},
	{X: 1, Y: 1},
	{X: -1, Y: 1},
}

// QuadCorner returns corner i (0..5) of the screen-covering quad the
// grid is rasterized with. Out-of-range indices are a caller contract
// violation.
func QuadCorner(i int) math.Vec2 {
	return quadCorners[i]
}

const invGamma = 1 / 2.2

func gamma(intensity float32) float32 {
	return math32.Pow(intensity, invGamma)
}

func fract(x float32) float32 {
	return x - math32.Floor(x)
}

// gridLevel evaluates one anti-aliased line level. p is the sample
// position already scaled to this level's frequency; ddx and ddy are
// its derivatives at the same scale.
func gridLevel(p, ddx, ddy math.Vec2) core.Color {
	dx := max(math32.Abs(ddx.X)+math32.Abs(ddy.X), minDenom)
	dy := max(math32.Abs(ddx.Y)+math32.Abs(ddy.Y), minDenom)

	gx := math32.Abs(fract(p.X-0.5)-0.5) / dx
	gy := math32.Abs(fract(p.Y-0.5)-0.5) / dy

	line := min(gx, gy)
	intensity := gamma(1 - min(line, 1))
	if intensity == 0 {
		return core.ColorTransparent
	}
	// Premultiplied-style: the line carries its own coverage in alpha.
	return core.Color{R: intensity, G: intensity, B: intensity, A: intensity}
}

// LevelCount returns how many zoom-driven detail levels are active.
// The count grows logarithmically with zoom, which bounds per-pixel
// work to O(log zoom).
func (s *GridShader) LevelCount(zoom float32) int {
	if zoom <= 0 {
		return 0
	}
	// tolerate log10 landing just below an integer for exact powers of ten
	n := int(math32.Floor(math32.Log10(zoom)+1e-5)) + 3
	if n < 0 {
		n = 0
	}
	return n
}

// LevelWeight returns the blend weight of detail level i at the given
// zoom. The topmost level fades in from 0 as zoom crosses into it.
func (s *GridShader) LevelWeight(zoom float32, i int) float32 {
	return min(1, math32.Log10(zoom)-float32(i)+3)
}

// Fragment shades one pixel of the infinite grid. pos is the pixel's
// position on the grid plane in world units; ddx and ddy are how that
// position changes for a one-pixel step right and down. The result is
// the component-wise maximum of the base level and every active detail
// level; an all-zero alpha means the pixel is discarded so the
// background stays visible.
func (s *GridShader) Fragment(pos, ddx, ddy math.Vec2, zoom float32) core.Color {
	p := pos.DivVec(s.cfg.BaseSize)
	dpx := ddx.DivVec(s.cfg.BaseSize)
	dpy := ddy.DivVec(s.cfg.BaseSize)

	color := gridLevel(p, dpx, dpy)
	for i := 1; i <= s.LevelCount(zoom); i++ {
		freq := math32.Pow(10, float32(i))
		weight := s.LevelWeight(zoom, i) * math32.Pow(s.cfg.Falloff, float32(i))
		level := gridLevel(p.Mul(freq), dpx.Mul(freq), dpy.Mul(freq))
		color = color.Max(level.Scale(weight))
	}

	if color.A == 0 {
		return core.ColorTransparent
	}
	return color
}

// FragmentFixed is the bounded-plane variant: a fixed number of detail
// levels with no zoom-driven blending, for contexts like the machine
// bed where adaptive detail is unnecessary.
func (s *GridShader) FragmentFixed(pos, ddx, ddy math.Vec2, levels int) core.Color {
	p := pos.DivVec(s.cfg.BaseSize)
	dpx := ddx.DivVec(s.cfg.BaseSize)
	dpy := ddy.DivVec(s.cfg.BaseSize)

	color := gridLevel(p, dpx, dpy)
	for i := 1; i <= levels; i++ {
		freq := math32.Pow(10, float32(i))
		weight := math32.Pow(s.cfg.Falloff, float32(i))
		level := gridLevel(p.Mul(freq), dpx.Mul(freq), dpy.Mul(freq))
		color = color.Max(level.Scale(weight))
	}

	if color.A == 0 {
		return core.ColorTransparent
	}
	return color
}
