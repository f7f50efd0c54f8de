// Command preview renders a sample CAD scene (reference grid, a part
// blank, a toolpath and its direction marker) to a PNG using the
// software compositor.
package main

import (
	"flag"
	"fmt"
	stdmath "math"
	"os"

	"github.com/chewxy/math32"

	"viewport-core/core"
	"viewport-core/math"
	"viewport-core/path"
	"viewport-core/render"
	"viewport-core/scene"
	"viewport-core/shader"
)

func main() {
	width := flag.Int("width", 800, "output width in pixels")
	height := flag.Int("height", 600, "output height in pixels")
	out := flag.String("o", "preview.png", "output PNG path")
	flag.Parse()

	camera := scene.NewCamera()
	camera.Resize(float32(*width), float32(*height))
	camera.Zoom = 0.08

	r := render.NewRenderer(*width, *height)
	r.Clear(core.Color{R: 0.09, G: 0.09, B: 0.11, A: 1})

	block := camera.Uniform()

	// Part blank sitting on the grid plane (model space, Z up).
	blank := scene.CreateCube(4, math.Vec3{Z: 2}, core.Color{R: 0.55, G: 0.57, B: 0.6, A: 1})

	// Spiral toolpath descending onto the part.
	var points []math.Vec3
	for i := 0; i <= 120; i++ {
		a := float32(i) * 2 * stdmath.Pi / 24
		radius := 5 - float32(i)*0.025
		points = append(points, math.Vec3{
			X: radius * math32.Cos(a),
			Y: radius * math32.Sin(a),
			Z: 6 - float32(i)*0.03,
		})
	}

	var verts []shader.PolylineVertex
	var indices []uint32
	verts, indices = path.GenerateOpen(verts, indices, points, core.Color{R: 0.2, G: 0.8, B: 1, A: 0.9}, 3)

	// Closed contour marking the part outline on the plane.
	outline := []math.Vec3{
		{X: -3, Y: -3}, {X: 3, Y: -3}, {X: 3, Y: 3}, {X: -3, Y: 3},
	}
	verts, indices = path.GenerateClosed(verts, indices, outline, core.Color{R: 1, G: 0.6, B: 0.1, A: 1}, 2)

	marker := scene.CreateArrow(1.5, points[0], math.Vec3{Z: -1}, core.ColorGreen)

	r.DrawGrid(camera)
	r.DrawMesh(blank, shader.StyleObject, &block)
	r.DrawMesh(marker, shader.StyleEntity, &block)
	r.DrawPolylines(verts, indices, &block)

	if err := r.Framebuffer().SavePNG(*out); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("wrote %s (%dx%d, %d path vertices, %d indices)\n",
		*out, *width, *height, len(verts), len(indices))
}
