package phantom

import (
	"math"

	"tomophantom/pkg/geometry"
)

// renderAnalyticEdge computes per-voxel membership fractions for one
// ellipsoid by classifying every voxel of the unrefined grid as interior,
// exterior, or edge, and spending sub-voxel sampling only on the edge
// voxels.
//
// Interior: all 8 corners of the voxel's half-extent bounding cube, rotated
// into the ellipsoid frame, satisfy the quadratic form. The ellipsoid
// interior is convex and the cube is the hull of its corners, so the whole
// voxel is provably inside and its fraction is exactly 1.
//
// Exterior: the voxel center lies outside the ellipsoid inflated by the
// cube's circumradius, measured through the quadratic form with the
// smallest semi-axis as the distance scale. Every cube point is within the
// circumradius of the center, so the whole voxel is provably outside and
// its fraction is exactly 0. The bound is conservative: a voxel it cannot
// prove exterior falls through to edge sampling, which still yields 0.
//
// Edge: neither provably interior nor exterior. The fraction is estimated
// by averaging the membership test over a stratified over^3 sub-grid of
// offsets within the voxel.
func renderAnalyticEdge(g *geometry.Grid, rot *rotator, over int) []float64 {
	fractions := make([]float64, g.NumVoxels())

	hx, hy, hz := g.DX/2, g.DY/2, g.DZ/2
	var corners [8][3]float64
	for c := 0; c < 8; c++ {
		corners[c] = [3]float64{
			hx * float64(1-2*(c&1)),
			hy * float64(1-2*(c>>1&1)),
			hz * float64(1-2*(c>>2&1)),
		}
	}

	// A center farther than the cube circumradius from the ellipsoid, in
	// the quadratic-form metric scaled by the smallest semi-axis, proves
	// the whole voxel exterior.
	circum := math.Sqrt(hx*hx + hy*hy + hz*hz)
	rmin := math.Min(rot.e.RX, math.Min(rot.e.RY, rot.e.RZ))
	outBound := 1 + circum/rmin
	outBound *= outBound

	subs := subOffsets(over)

	idx := 0
	for k := 0; k < g.NZ; k++ {
		z := g.Z(k)
		for j := 0; j < g.NY; j++ {
			y := g.Y(j)
			for i := 0; i < g.NX; i++ {
				x := g.X(i)

				if rot.quad(x, y, z) > outBound {
					idx++
					continue
				}

				interior := true
				for c := 0; c < 8 && interior; c++ {
					interior = rot.inside(x+corners[c][0], y+corners[c][1], z+corners[c][2])
				}
				if interior {
					fractions[idx] = 1
					idx++
					continue
				}

				hits := 0
				for _, dz := range subs {
					sz := z + dz*g.DZ
					for _, dy := range subs {
						sy := y + dy*g.DY
						for _, dx := range subs {
							if rot.inside(x+dx*g.DX, sy, sz) {
								hits++
							}
						}
					}
				}
				fractions[idx] = float64(hits) / float64(len(subs)*len(subs)*len(subs))
				idx++
			}
		}
	}

	return fractions
}

// subOffsets returns over stratified sample offsets in fractions of a
// voxel, centered within the over equal strata of [-1/2, 1/2]. For over=1
// the single offset is the voxel center.
func subOffsets(over int) []float64 {
	offs := make([]float64, over)
	for m := 0; m < over; m++ {
		offs[m] = (float64(m)+0.5)/float64(over) - 0.5
	}
	return offs
}
