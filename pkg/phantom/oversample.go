package phantom

import (
	"gonum.org/v1/gonum/floats"

	"tomophantom/pkg/geometry"
)

// renderOversampled computes per-voxel membership fractions for one
// ellipsoid by exhaustive fine-grid sampling. The grid is refined by the
// integer factor over along every axis (over=1 leaves it unchanged) and
// the exact boolean membership test is evaluated at every sub-voxel
// center. The over^3 fine samples of each voxel are then block-averaged
// back down to the caller's resolution, so the returned slice always has
// g.NumVoxels() entries regardless of over.
//
// Accuracy improves monotonically with over at over^3 cost in time.
func renderOversampled(g *geometry.Grid, rot *rotator, over int) []float64 {
	counts := make([]float64, g.NumVoxels())

	fnx, fny, fnz := g.NX*over, g.NY*over, g.NZ*over
	for fk := 0; fk < fnz; fk++ {
		z := g.FineZ(fk, over)
		plane := (fk / over) * g.NY
		for fj := 0; fj < fny; fj++ {
			y := g.FineY(fj, over)
			row := (plane + fj/over) * g.NX
			for fi := 0; fi < fnx; fi++ {
				if rot.inside(g.FineX(fi, over), y, z) {
					counts[row+fi/over]++
				}
			}
		}
	}

	if over > 1 {
		floats.Scale(1/float64(over*over*over), counts)
	}
	return counts
}
