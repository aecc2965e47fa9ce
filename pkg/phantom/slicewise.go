package phantom

import (
	"gonum.org/v1/gonum/floats"

	"tomophantom/pkg/geometry"
)

// accumulateSlicewise renders one ellipsoid with the analytic-edge
// classifier one z slice at a time and accumulates each slice directly
// into the output volume, bounding peak intermediate memory to a single
// slice's fractions. Each slice is rendered on a one-slice grid whose z
// offset is re-derived so the slice sits at its true physical z position;
// the per-slice arithmetic is identical to the full-grid analytic pass.
func accumulateSlicewise(g *geometry.Grid, rot *rotator, over int, v *Volume) {
	sliceLen := g.NX * g.NY
	for k := 0; k < g.NZ; k++ {
		fractions := renderAnalyticEdge(g.Slice(k), rot, over)
		floats.AddScaled(v.Data[k*sliceLen:(k+1)*sliceLen], rot.e.Density, fractions)
	}
}
