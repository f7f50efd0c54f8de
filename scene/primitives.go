package scene

import (
	"viewport-core/core"
	"viewport-core/math"
)

// CreateCube generates a cube marker mesh centered on origin with the
// given edge length.
func CreateCube(scale float32, origin math.Vec3, color core.Color) *Mesh {
	h := scale / 2

	corner := func(x, y, z float32) math.Vec3 {
		return origin.Add(math.Vec3{X: x * h, Y: y * h, Z: z * h})
	}

	// The eight corners, split by face below.
	var (
		lbb = corner(-1, -1, -1)
		rbb = corner(1, -1, -1)
		rtb = corner(1, 1, -1)
		ltb = corner(-1, 1, -1)
		lbf = corner(-1, -1, 1)
		rbf = corner(1, -1, 1)
		rtf = corner(1, 1, 1)
		ltf = corner(-1, 1, 1)
	)

	quad := func(tris []Triangle, a, b, c, d math.Vec3) []Triangle {
		return append(tris, Triangle{A: a, B: b, C: c}, Triangle{A: a, B: c, C: d})
	}

	var tris []Triangle
	tris = quad(tris, lbf, rbf, rtf, ltf) // +Z
	tris = quad(tris, rbb, lbb, ltb, rtb) // -Z
	tris = quad(tris, rbf, rbb, rtb, rtf) // +X
	tris = quad(tris, lbb, lbf, ltf, ltb) // -X
	tris = quad(tris, ltf, rtf, rtb, ltb) // +Y
	tris = quad(tris, lbb, rbb, rbf, lbf) // -Y

	return CreateMeshFromTriangles("Cube", tris, color)
}

// CreateArrow generates a four-sided pyramid pointing along direction,
// used as a direction marker on toolpaths.
func CreateArrow(scale float32, origin, direction math.Vec3, color core.Color) *Mesh {
	dir := direction.Normalize()

	na := dir.Cross(math.Vec3{X: -dir.Z, Y: dir.X, Z: dir.Y}).Normalize().Mul(scale / 2)
	nb := dir.Cross(na).Normalize().Mul(scale / 2)
	tip := origin.Add(dir.Mul(scale))

	tris := []Triangle{
		{A: origin.Add(na), B: origin.Add(nb), C: tip},
		{A: origin.Add(nb), B: origin.Sub(na), C: tip},
		{A: origin.Sub(na), B: origin.Sub(nb), C: tip},
		{A: origin.Sub(nb), B: origin.Add(na), C: tip},
	}

	return CreateMeshFromTriangles("Arrow", tris, color)
}
