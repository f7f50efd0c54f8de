// Package path turns toolpath polylines into the corner records and
// triangle indices the line shader consumes. Every polyline point owns
// four corner records (the shader tells them apart by index modulo 4);
// quads connect the outgoing corners of one point to the incoming
// corners of the next, and interior points get an extra patch quad that
// fills the joint between the two.
package path

import (
	"viewport-core/core"
	"viewport-core/math"
	"viewport-core/shader"
)

// CornersPerPoint is the number of corner records each polyline point
// contributes; the shader derives the corner identity k from the
// vertex index modulo this.
const CornersPerPoint = 4

func appendCorners(verts []shader.PolylineVertex, before, pos, after math.Vec3, color core.Color, thickness float32) []shader.PolylineVertex {
	v := shader.PolylineVertex{
		Before:    before,
		Current:   pos,
		After:     after,
		Color:     color,
		Thickness: thickness,
	}
	return append(verts, v, v, v, v)
}

// segment quad between point i's outgoing corners (2,3) and point j's
// incoming corners (0,1).
func appendSegment(indices []uint32, baseI, baseJ uint32) []uint32 {
	return append(indices,
		baseI+3, baseJ, baseJ+1,
		baseJ, baseI+3, baseI+2,
	)
}

// joint patch across point i's own four corners.
func appendJoint(indices []uint32, base uint32) []uint32 {
	return append(indices,
		base+2, base+1, base,
		base+1, base+2, base+3,
	)
}

// GenerateOpen appends the strip geometry for an open polyline. The
// missing neighbor at each end is mirrored through the endpoint, so the
// end segments extend straight and the join math sees no turn there.
// Polylines with fewer than two points produce no geometry.
func GenerateOpen(verts []shader.PolylineVertex, indices []uint32, points []math.Vec3, color core.Color, thickness float32) ([]shader.PolylineVertex, []uint32) {
	if len(points) < 2 {
		return verts, indices
	}

	start := uint32(len(verts))

	for i, pos := range points {
		before := pos
		after := pos
		if i > 0 {
			before = points[i-1]
		} else {
			before = pos.Add(pos.Sub(points[i+1]))
		}
		if i < len(points)-1 {
			after = points[i+1]
		} else {
			after = pos.Add(pos.Sub(points[i-1]))
		}

		verts = appendCorners(verts, before, pos, after, color, thickness)

		base := start + uint32(i)*CornersPerPoint
		if i < len(points)-1 {
			indices = appendSegment(indices, base, base+CornersPerPoint)
		}
		if i > 0 && i < len(points)-1 {
			indices = appendJoint(indices, base)
		}
	}

	return verts, indices
}

// GenerateClosed appends the strip geometry for a closed polyline: the
// neighbor indices wrap around, every point gets a joint patch, and the
// last point connects back to the first.
func GenerateClosed(verts []shader.PolylineVertex, indices []uint32, points []math.Vec3, color core.Color, thickness float32) ([]shader.PolylineVertex, []uint32) {
	n := len(points)
	if n < 2 {
		return verts, indices
	}

	start := uint32(len(verts))

	for i, pos := range points {
		before := points[(i-1+n)%n]
		after := points[(i+1)%n]

		verts = appendCorners(verts, before, pos, after, color, thickness)

		base := start + uint32(i)*CornersPerPoint
		next := start + uint32((i+1)%n)*CornersPerPoint
		indices = appendSegment(indices, base, next)
		indices = appendJoint(indices, base)
	}

	return verts, indices
}
