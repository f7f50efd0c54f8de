package scene

import (
	"viewport-core/core"
	"viewport-core/math"
)

// Mesh holds CPU-side vertex/index data in model space (Z up).
type Mesh struct {
	Name     string
	Vertices []core.Vertex
	Indices  []uint32
}

func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]core.Vertex, 0),
		Indices:  make([]uint32, 0),
	}
}

func CreateMeshFromData(name string, vertices []core.Vertex, indices []uint32) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: vertices,
		Indices:  indices,
	}
}

// Triangle is a single model-space triangle.
type Triangle struct {
	A, B, C math.Vec3
}

// Normal returns the triangle's unit normal, or the zero vector for a
// degenerate triangle.
func (t Triangle) Normal() math.Vec3 {
	return t.B.Sub(t.A).Cross(t.C.Sub(t.A)).Normalize()
}

// CreateMeshFromTriangles expands a triangle soup into a flat-shaded
// mesh: every triangle contributes three vertices sharing its face
// normal and the given color.
func CreateMeshFromTriangles(name string, triangles []Triangle, color core.Color) *Mesh {
	vertices := make([]core.Vertex, 0, len(triangles)*3)
	indices := make([]uint32, 0, len(triangles)*3)

	for _, tri := range triangles {
		normal := tri.Normal()
		base := uint32(len(vertices))
		for _, pos := range [3]math.Vec3{tri.A, tri.B, tri.C} {
			vertices = append(vertices, core.Vertex{
				Position: pos,
				Normal:   normal,
				Color:    color,
			})
		}
		indices = append(indices, base, base+1, base+2)
	}

	return CreateMeshFromData(name, vertices, indices)
}
