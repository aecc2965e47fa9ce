package phantom

import (
	"fmt"

	"tomophantom/pkg/geometry"
)

// CheckFOV verifies that every ellipsoid's axis-aligned extent lies within
// the physical bounds of the grid. The three axes are checked
// independently; the check does not account for the azimuth rotation, so
// it is conservative for rotated ellipsoids.
//
// The first violation aborts the whole validation with ErrOutsideFOV;
// remaining ellipsoids are not inspected.
func CheckFOV(g *geometry.Grid, table ParameterTable) error {
	min, max := g.Bounds()
	for i, e := range table {
		centers := [3]float64{e.CX, e.CY, e.CZ}
		radii := [3]float64{e.RX, e.RY, e.RZ}
		axes := [3]string{"x", "y", "z"}
		for a := 0; a < 3; a++ {
			if centers[a]+radii[a] > max[a] || centers[a]-radii[a] < min[a] {
				return fmt.Errorf("ellipsoid %d spans [%g, %g] on %s, grid spans [%g, %g]: %w",
					i, centers[a]-radii[a], centers[a]+radii[a], axes[a], min[a], max[a], ErrOutsideFOV)
			}
		}
	}
	return nil
}
