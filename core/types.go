package core

import (
	"viewport-core/math"
)

// Color is an RGBA color with components in [0,1]. An alpha of exactly 0
// marks a discarded fragment: the compositor must not write the pixel at
// all, rather than blend it as black.
type Color struct {
	R, G, B, A float32
}

var (
	ColorWhite       = Color{1, 1, 1, 1}
	ColorBlack       = Color{0, 0, 0, 1}
	ColorRed         = Color{1, 0, 0, 1}
	ColorGreen       = Color{0, 1, 0, 1}
	ColorBlue        = Color{0, 0, 1, 1}
	ColorYellow      = Color{1, 1, 0, 1}
	ColorTransparent = Color{0, 0, 0, 0}
)

// Discard reports whether the fragment should be dropped entirely.
func (c Color) Discard() bool {
	return c.A == 0
}

func (c Color) Scale(s float32) Color {
	return Color{R: c.R * s, G: c.G * s, B: c.B * s, A: c.A * s}
}

// Max returns the component-wise maximum of two colors.
func (c Color) Max(other Color) Color {
	return Color{
		R: max(c.R, other.R),
		G: max(c.G, other.G),
		B: max(c.B, other.B),
		A: max(c.A, other.A),
	}
}

// Vertex is a single mesh vertex in model space (Z up).
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
	Color    Color
}

type MeshData struct {
	Vertices []Vertex
	Indices  []uint32
}

type Viewport struct {
	Width  float32
	Height float32
}

func (v Viewport) Dimensions() math.Vec2 {
	return math.Vec2{X: v.Width, Y: v.Height}
}
