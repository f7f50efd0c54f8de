package scene

import (
	stdmath "math"

	"github.com/chewxy/math32"

	"viewport-core/math"
	"viewport-core/shader"
)

// Camera is the orbit camera of the viewport: it circles a focus
// position at a distance of 1/Zoom, looking inward. Render space is Y
// up; model data (Z up) is swizzled inside the shader stages, never
// here.
type Camera struct {
	Position math.Vec3 // focus point the camera orbits
	Yaw      float32
	Pitch    float32
	Zoom     float32

	Width  float32
	Height float32

	FOV  float32
	Near float32
	Far  float32
}

func NewCamera() *Camera {
	return &Camera{
		Yaw:   stdmath.Pi / 4,
		Pitch: -stdmath.Pi / 6,
		Zoom:  0.04,

		Width:  400,
		Height: 400,

		FOV:  stdmath.Pi / 4,
		Near: 0.01,
		Far:  300,
	}
}

func (c *Camera) Resize(width, height float32) {
	c.Width = width
	c.Height = height
}

// Orbit adjusts yaw and pitch, keeping pitch off the poles.
func (c *Camera) Orbit(deltaYaw, deltaPitch float32) {
	const safeHalfPi = stdmath.Pi/2 - 0.0001

	c.Yaw += deltaYaw
	c.Pitch += deltaPitch
	if c.Pitch > safeHalfPi {
		c.Pitch = safeHalfPi
	}
	if c.Pitch < -safeHalfPi {
		c.Pitch = -safeHalfPi
	}
}

// Pan moves the focus point in the camera's view plane. The delta is
// scaled by 1/Zoom so a screen-space drag covers the same apparent
// distance at any zoom.
func (c *Camera) Pan(dx, dy float32) {
	rot := math.Mat4Rotation(math.Vec3{X: c.Pitch, Y: c.Yaw})
	delta := rot.TransformVector(math.Vec3{X: dx, Y: dy}).Div(c.Zoom)
	c.Position = c.Position.Add(delta)
}

// Dolly scales the zoom multiplicatively; positive steps zoom in.
func (c *Camera) Dolly(step float32) {
	if step > 0 {
		c.Zoom *= 1 + step
	} else if step < 0 {
		c.Zoom /= 1 - step
	}
}

// Eye returns the camera position in render space.
func (c *Camera) Eye() math.Vec3 {
	rot := math.Mat4Rotation(math.Vec3{X: c.Pitch, Y: c.Yaw})
	return rot.TransformVector(math.Vec3Front).Div(c.Zoom).Add(c.Position)
}

func (c *Camera) View() math.Mat4 {
	return math.Mat4LookAt(c.Eye(), c.Position, math.Vec3Up)
}

func (c *Camera) Proj() math.Mat4 {
	aspect := float32(1)
	if c.Height > 0 {
		aspect = c.Width / c.Height
	}
	return math.Mat4Perspective(c.FOV, aspect, c.Near, c.Far)
}

// Uniform flattens the camera into the per-frame block the shader
// stages consume. The block must stay unchanged while a frame's
// invocations read it.
func (c *Camera) Uniform() shader.CameraBlock {
	return shader.CameraBlock{
		ViewProj: c.View().Mul(c.Proj()),
		ViewPos:  c.Eye(),
		Viewport: math.Vec2{X: c.Width, Y: c.Height},
		Zoom:     c.Zoom,
	}
}

// Ray is a render-space ray.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// ScreenRay returns the render-space ray from the eye through the given
// viewport pixel. Pixel (0,0) is the top-left corner.
func (c *Camera) ScreenRay(x, y float32) Ray {
	eye := c.Eye()

	// Look-at basis: zAxis points from the focus toward the eye.
	zAxis := eye.Sub(c.Position).Normalize()
	xAxis := math.Vec3Up.Cross(zAxis).Normalize()
	yAxis := zAxis.Cross(xAxis)

	ndcX := 2*x/c.Width - 1
	ndcY := 1 - 2*y/c.Height

	tanHalf := math32.Tan(c.FOV / 2)
	aspect := c.Width / c.Height

	dir := xAxis.Mul(ndcX * tanHalf * aspect).
		Add(yAxis.Mul(ndcY * tanHalf)).
		Sub(zAxis)

	return Ray{Origin: eye, Direction: dir.Normalize()}
}
