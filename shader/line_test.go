package shader

import (
	stdmath "math"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"viewport-core/core"
	"viewport-core/math"
)

func testCam(width, height float32) *CameraBlock {
	return &CameraBlock{
		ViewProj: math.Mat4Identity(),
		Viewport: math.Vec2{X: width, Y: height},
	}
}

func TestScreenPointUsesAbsW(t *testing.T) {
	// A point behind the camera has negative clip w; dividing by |w|
	// must keep the screen point finite and unflipped.
	cam := &CameraBlock{
		ViewProj: math.Mat4Perspective(stdmath.Pi/2, 1, 0.1, 100),
		Viewport: math.Vec2{X: 100, Y: 100},
	}

	// render-space z = +5 is behind this camera (it looks along -z),
	// so clip w = -5
	p := cam.ScreenPoint(math.Vec3{X: 2, Y: 1, Z: 5})
	require.False(t, math32.IsNaN(p.X) || math32.IsNaN(p.Y))
	require.False(t, math32.IsInf(p.X, 0) || math32.IsInf(p.Y, 0))

	// tan(fov/2) = 1: clip = (2, 1, ., -5), ndc = (0.4, 0.2), scaled
	// by the 50px half-viewport
	assert.InDelta(t, 20, p.X, 1e-3)
	assert.InDelta(t, 10, p.Y, 1e-3)
}

func TestStraightLineStrip(t *testing.T) {
	// End-to-end example: identity projection, 800x600 viewport,
	// straight polyline along model X, thickness 4. The offset must be
	// purely perpendicular with miter length 1, giving a strip 4
	// pixels wide.
	s := NewLineShader(DefaultLineConfig())
	cam := testCam(800, 600)

	v := PolylineVertex{
		Before:    math.Vec3{X: 0},
		Current:   math.Vec3{X: 1},
		After:     math.Vec3{X: 2},
		Color:     core.ColorWhite,
		Thickness: 4,
	}

	for k := 0; k < 4; k++ {
		pos, color := s.Corner(k, v, cam)
		assert.Equal(t, core.ColorWhite, color)
		assert.Equal(t, float32(0), pos.Z)
		assert.Equal(t, float32(1), pos.W)

		// x stays on the projected point: the offset has no
		// component along the line
		assert.InDelta(t, 1.0, pos.X, 1e-5, "corner %d", k)

		// +-2px of a 600px-tall viewport, so ndc y = +-2/300
		want := 2.0 / 300.0
		if k&1 == 1 {
			want = -want
		}
		assert.InDelta(t, want, pos.Y, 1e-5, "corner %d", k)
	}
}

// cornerAngle builds a two-segment corner in the screen plane turning
// by phi at the origin, on a 2x2 viewport where pixels equal NDC.
func cornerAngle(phi float32) PolylineVertex {
	return PolylineVertex{
		// model z maps to screen y
		Before:    math.Vec3{X: -1},
		Current:   math.Vec3{},
		After:     math.Vec3{X: math32.Cos(phi), Z: math32.Sin(phi)},
		Color:     core.ColorWhite,
		Thickness: 2, // offset scale 1
	}
}

func TestMiterAtLimitBoundary(t *testing.T) {
	s := NewLineShader(DefaultLineConfig())
	cam := testCam(2, 2)

	// dot(n, n1) = cos(phi/2) = 1/1.1 exactly at the limit
	phi := float32(2 * stdmath.Acos(1/1.1))

	pos, _ := s.Corner(0, cornerAngle(phi), cam)
	length := math32.Sqrt(pos.X*pos.X + pos.Y*pos.Y)
	assert.InDelta(t, 1.1, length, 1e-2, "miter length at the boundary must equal the limit")

	// Crossing the threshold from either side must not jump.
	for k := 0; k < 4; k++ {
		below, _ := s.Corner(k, cornerAngle(phi-1e-3), cam)
		above, _ := s.Corner(k, cornerAngle(phi+1e-3), cam)
		assert.InDelta(t, below.X, above.X, 2e-2, "corner %d x", k)
		assert.InDelta(t, below.Y, above.Y, 2e-2, "corner %d y", k)
	}
}

func TestSharpCornerBevels(t *testing.T) {
	s := NewLineShader(DefaultLineConfig())
	cam := testCam(2, 2)

	// Way past the miter limit: a plain miter would need length
	// 1/cos(phi/2) >> 1.1; the bevel keeps every corner bounded.
	phi := float32(2.8)
	for k := 0; k < 4; k++ {
		pos, _ := s.Corner(k, cornerAngle(phi), cam)
		require.False(t, math32.IsNaN(pos.X) || math32.IsNaN(pos.Y), "corner %d", k)
		length := math32.Sqrt(pos.X*pos.X + pos.Y*pos.Y)
		assert.Less(t, length, float32(4), "corner %d must stay near the joint", k)
	}
}

func TestDegenerateNeighborFlatCap(t *testing.T) {
	s := NewLineShader(DefaultLineConfig())
	cam := testCam(800, 600)

	// Duplicated endpoint: before == current. The missing normal takes
	// the defined one, producing a flat perpendicular cap.
	v := PolylineVertex{
		Before:    math.Vec3{},
		Current:   math.Vec3{},
		After:     math.Vec3{X: 1},
		Color:     core.ColorWhite,
		Thickness: 4,
	}

	for k := 0; k < 4; k++ {
		pos, _ := s.Corner(k, v, cam)
		require.False(t, math32.IsNaN(pos.X) || math32.IsNaN(pos.Y), "corner %d", k)

		assert.InDelta(t, 0, pos.X, 1e-5, "corner %d", k)
		want := 2.0 / 300.0
		if k&1 == 1 {
			want = -want
		}
		assert.InDelta(t, want, pos.Y, 1e-5, "corner %d", k)
	}
}

func TestAllPointsCoincident(t *testing.T) {
	s := NewLineShader(DefaultLineConfig())
	cam := testCam(800, 600)

	v := PolylineVertex{
		Before:    math.Vec3{X: 3, Y: 1},
		Current:   math.Vec3{X: 3, Y: 1},
		After:     math.Vec3{X: 3, Y: 1},
		Color:     core.ColorRed,
		Thickness: 4,
	}

	for k := 0; k < 4; k++ {
		pos, color := s.Corner(k, v, cam)
		require.False(t, math32.IsNaN(pos.X) || math32.IsNaN(pos.Y), "corner %d", k)
		assert.Equal(t, core.ColorRed, color)
	}
}
