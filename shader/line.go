package shader

import (
	"viewport-core/core"
	"viewport-core/math"
)

// PolylineVertex carries the three-point window around one polyline
// point together with the stroke attributes. Before and After are the
// neighboring points; at an open end the generator substitutes a
// mirrored or duplicated neighbor, and the join math must survive the
// duplicated (zero-length segment) case without producing NaN.
type PolylineVertex struct {
	Before    math.Vec3
	Current   math.Vec3
	After     math.Vec3
	Color     core.Color
	Thickness float32
}

// LineConfig holds the join policy constants.
type LineConfig struct {
	// MiterLimit caps the miter length (in half-thickness units)
	// before the join falls back to a bevel.
	MiterLimit float32
}

func DefaultLineConfig() LineConfig {
	return LineConfig{MiterLimit: 1.1}
}

// LineShader turns polyline corner invocations into screen positions.
// Each polyline point owns four corners k in 0..3: bit 0 selects the
// side of the centerline, bit 1 selects whether the corner belongs to
// the incoming (before-current) or outgoing (current-after) quad.
//
// Lines are emitted in a flattened overlay pass: the output position
// has z = 0, w = 1, so there is no depth interaction with solid
// geometry, and edges are not anti-aliased. Both are documented
// behavior of the host's line pass, not accidents.
type LineShader struct {
	cfg LineConfig
}

func NewLineShader(cfg LineConfig) *LineShader {
	return &LineShader{cfg: cfg}
}

// segmentNormal returns the unit left normal of the screen-space
// segment a-b, and false when the segment has zero length.
func segmentNormal(a, b math.Vec2) (math.Vec2, bool) {
	n := math.Vec2{X: a.Y - b.Y, Y: b.X - a.X}
	if n.Length() == 0 {
		return math.Vec2{}, false
	}
	return n.Normalize(), true
}

// Corner computes the clip-space position of corner k of the quad strip
// around v.Current, and passes the stroke color through. The join is a
// miter capped at the configured limit; past the limit the corner is
// beveled flat. A duplicated neighbor (zero-length adjacent segment)
// degrades to a clean perpendicular cap.
func (s *LineShader) Corner(k int, v PolylineVertex, cam *CameraBlock) (math.Vec4, core.Color) {
	pa := cam.ScreenPoint(v.Before.XZY())
	pb := cam.ScreenPoint(v.Current.XZY())
	pc := cam.ScreenPoint(v.After.XZY())

	half := cam.Viewport.Mul(0.5)

	n1, ok1 := segmentNormal(pa, pb)
	n2, ok2 := segmentNormal(pb, pc)
	switch {
	case !ok1 && !ok2:
		// All three points project to the same pixel; there is no
		// direction to extrude along.
		return math.Vec4{X: pb.X / half.X, Y: pb.Y / half.Y, Z: 0, W: 1}, v.Color
	case !ok1:
		n1 = n2
	case !ok2:
		n2 = n1
	}

	n := n1.Add(n2).Normalize()
	if n == (math.Vec2{}) {
		// Segments double back on themselves; the miter direction is
		// undefined, so cap flat against the incoming segment.
		n = n1
	}

	length := 1 / clampDenom(n.Dot(n1))

	var offset math.Vec2
	if length > s.cfg.MiterLimit {
		var d, nSide math.Vec2
		if k&2 == 0 {
			d = pb.Sub(pa).Normalize()
			nSide = n1
		} else {
			d = pb.Sub(pc).Normalize()
			nSide = n2
		}
		offset = nSide.Add(d.Mul((s.cfg.MiterLimit - n.Dot(nSide)) / clampDenom(d.Dot(n))))
	} else {
		offset = n.Mul(length)
	}

	side := float32(1)
	if k&1 == 1 {
		side = -1
	}

	p := pb.Add(offset.Mul(side * v.Thickness / 2))
	return math.Vec4{X: p.X / half.X, Y: p.Y / half.Y, Z: 0, W: 1}, v.Color
}
