// Package render is the software compositor of the viewport: it owns
// the pixel and depth buffers and drives one shader invocation per
// vertex and per covered pixel. It exists so the shader core can be
// exercised end to end without a GPU; pass ordering and buffer
// lifetimes are its responsibility, never the shaders'.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"viewport-core/core"
)

// Framebuffer is a rectangular color + depth target.
type Framebuffer struct {
	width  int
	height int
	colors []core.Color
	depth  []float32
}

// farDepth is the cleared depth value; anything rendered passes the
// first test against it.
const farDepth = float32(1e30)

func NewFramebuffer(width, height int) *Framebuffer {
	fb := &Framebuffer{
		width:  width,
		height: height,
		colors: make([]core.Color, width*height),
		depth:  make([]float32, width*height),
	}
	fb.ClearDepth()
	return fb
}

func (fb *Framebuffer) Width() int {
	return fb.width
}

func (fb *Framebuffer) Height() int {
	return fb.height
}

// Clear fills the color buffer and resets depth.
func (fb *Framebuffer) Clear(c core.Color) {
	for i := range fb.colors {
		fb.colors[i] = c
	}
	fb.ClearDepth()
}

func (fb *Framebuffer) ClearDepth() {
	for i := range fb.depth {
		fb.depth[i] = farDepth
	}
}

func (fb *Framebuffer) At(x, y int) core.Color {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return core.ColorTransparent
	}
	return fb.colors[y*fb.width+x]
}

func (fb *Framebuffer) DepthAt(x, y int) float32 {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return farDepth
	}
	return fb.depth[y*fb.width+x]
}

// SetPixel overwrites a pixel without blending. Discarded colors are
// dropped entirely.
func (fb *Framebuffer) SetPixel(x, y int, c core.Color) {
	if c.Discard() || x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return
	}
	fb.colors[y*fb.width+x] = c
}

// BlendPixel composites src over the existing pixel. Discarded colors
// are dropped entirely.
func (fb *Framebuffer) BlendPixel(x, y int, c core.Color) {
	if c.Discard() || x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return
	}
	i := y*fb.width + x
	dst := fb.colors[i]
	a := c.A
	fb.colors[i] = core.Color{
		R: c.R*a + dst.R*(1-a),
		G: c.G*a + dst.G*(1-a),
		B: c.B*a + dst.B*(1-a),
		A: a + dst.A*(1-a),
	}
}

// testAndSetDepth returns true when d is closer than the stored depth,
// updating it.
func (fb *Framebuffer) testAndSetDepth(x, y int, d float32) bool {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return false
	}
	i := y*fb.width + x
	if d >= fb.depth[i] {
		return false
	}
	fb.depth[i] = d
	return true
}

func clamp255(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// Image converts the color buffer to an NRGBA image.
func (fb *Framebuffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.width, fb.height))
	for y := 0; y < fb.height; y++ {
		for x := 0; x < fb.width; x++ {
			c := fb.colors[y*fb.width+x]
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(clamp255(c.R * 255)),
				G: uint8(clamp255(c.G * 255)),
				B: uint8(clamp255(c.B * 255)),
				A: uint8(clamp255(c.A * 255)),
			})
		}
	}
	return img
}

// SavePNG writes the color buffer to a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save png: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, fb.Image()); err != nil {
		return fmt.Errorf("save png: %w", err)
	}
	return nil
}
