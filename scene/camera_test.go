package scene

import (
	stdmath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"viewport-core/math"
)

func TestCameraEyeDistance(t *testing.T) {
	c := NewCamera()
	c.Position = math.Vec3{X: 2, Y: 0, Z: -1}

	// The camera orbits the focus at a distance of 1/zoom.
	dist := c.Eye().Sub(c.Position).Length()
	assert.InDelta(t, 1/c.Zoom, dist, 1e-2)

	c.Zoom = 0.5
	dist = c.Eye().Sub(c.Position).Length()
	assert.InDelta(t, 2.0, dist, 1e-4)
}

func TestCameraViewCentersFocus(t *testing.T) {
	c := NewCamera()
	c.Position = math.Vec3{X: 3, Y: 1, Z: 2}

	// The focus point must project to the center of the screen.
	view := c.View()
	p := c.Position.ToVec4(1).MulMat(view)
	assert.InDelta(t, 0, p.X, 1e-3)
	assert.InDelta(t, 0, p.Y, 1e-3)
	assert.Less(t, p.Z, float32(0), "focus must sit in front of the camera")
}

func TestCameraUniform(t *testing.T) {
	c := NewCamera()
	c.Resize(800, 600)
	c.Zoom = 0.1

	block := c.Uniform()
	assert.Equal(t, math.Vec2{X: 800, Y: 600}, block.Viewport)
	assert.Equal(t, float32(0.1), block.Zoom)
	assert.Equal(t, c.Eye(), block.ViewPos)

	// The focus projects to the screen center.
	clip := c.Position.ToVec4(1).MulMat(block.ViewProj)
	require.Greater(t, clip.W, float32(0))
	assert.InDelta(t, 0, clip.X/clip.W, 1e-3)
	assert.InDelta(t, 0, clip.Y/clip.W, 1e-3)
}

func TestCameraScreenRayCenter(t *testing.T) {
	c := NewCamera()
	c.Resize(800, 600)

	ray := c.ScreenRay(400, 300)
	want := c.Position.Sub(c.Eye()).Normalize()

	assert.Equal(t, c.Eye(), ray.Origin)
	assert.InDelta(t, want.X, ray.Direction.X, 1e-3)
	assert.InDelta(t, want.Y, ray.Direction.Y, 1e-3)
	assert.InDelta(t, want.Z, ray.Direction.Z, 1e-3)
	assert.InDelta(t, 1.0, ray.Direction.Length(), 1e-4)
}

func TestCameraScreenRayCorners(t *testing.T) {
	c := NewCamera()
	c.Resize(800, 600)

	// Rays through opposite corners must diverge symmetrically around
	// the center ray.
	center := c.ScreenRay(400, 300).Direction
	tl := c.ScreenRay(0, 0).Direction
	br := c.ScreenRay(800, 600).Direction

	assert.InDelta(t, center.Dot(tl), center.Dot(br), 1e-3)
	assert.Less(t, center.Dot(tl), float32(1))
}

func TestCameraOrbitClampsPitch(t *testing.T) {
	c := NewCamera()
	c.Orbit(0, 10)
	assert.Less(t, c.Pitch, float32(stdmath.Pi/2))
	c.Orbit(0, -20)
	assert.Greater(t, c.Pitch, float32(-stdmath.Pi/2))
}

func TestCameraDolly(t *testing.T) {
	c := NewCamera()
	z := c.Zoom
	c.Dolly(0.5)
	assert.InDelta(t, z*1.5, c.Zoom, 1e-6)
	c.Dolly(-0.5)
	assert.InDelta(t, z, c.Zoom, 1e-6)
}
