package phantom

import (
	"fmt"

	"tomophantom/pkg/geometry"
)

// Archetype names a literal parameter-table template for a canonical test
// phantom.
type Archetype string

const (
	// Zhu is the high-contrast emission variant of the 3D Shepp-Logan head
	// phantom.
	Zhu Archetype = "zhu"

	// Kak is the 3D Shepp-Logan head phantom with the CT attenuation
	// densities from Kak & Slaney.
	Kak Archetype = "kak"

	// E3D is reserved for the extended 3D phantom; it is not implemented.
	E3D Archetype = "e3d"

	// Spheroid is a single axis-aligned ellipsoid filling the field of
	// view up to one voxel of margin.
	Spheroid Archetype = "spheroid"
)

// ParseArchetype maps a tag string to an Archetype. Unknown tags fail with
// ErrUnknownEnum.
func ParseArchetype(tag string) (Archetype, error) {
	switch Archetype(tag) {
	case Zhu, Kak, E3D, Spheroid:
		return Archetype(tag), nil
	}
	return "", fmt.Errorf("archetype %q: %w", tag, ErrUnknownEnum)
}

// Archetype literals, in fractional field-of-view units. Columns are
// cx, cy, cz, rx, ry, rz, azimuth, polar, density.
var (
	kakRows = [][]float64{
		{0, 0, 0, 0.69, 0.92, 0.9, 0, 0, 2.0},
		{0, -0.0184, 0, 0.6624, 0.874, 0.88, 0, 0, -0.98},
		{0.22, 0, -0.25, 0.41, 0.16, 0.21, -72, 0, -0.02},
		{-0.22, 0, -0.25, 0.31, 0.11, 0.22, 72, 0, -0.02},
		{0, 0.35, -0.25, 0.21, 0.25, 0.5, 0, 0, 0.01},
		{0, 0.1, -0.25, 0.046, 0.046, 0.046, 0, 0, 0.01},
		{0, -0.1, -0.25, 0.046, 0.046, 0.046, 0, 0, 0.01},
		{-0.08, -0.605, -0.25, 0.046, 0.023, 0.02, 0, 0, 0.01},
		{0, -0.605, -0.25, 0.023, 0.023, 0.02, 0, 0, 0.01},
		{0.06, -0.605, -0.25, 0.046, 0.023, 0.02, -90, 0, 0.01},
	}

	zhuRows = [][]float64{
		{0, 0, 0, 0.69, 0.92, 0.9, 0, 0, 1},
		{0, -0.0184, 0, 0.6624, 0.874, 0.88, 0, 0, -0.8},
		{0.22, 0, -0.25, 0.41, 0.16, 0.21, -72, 0, -0.2},
		{-0.22, 0, -0.25, 0.31, 0.11, 0.22, 72, 0, -0.2},
		{0, 0.35, -0.25, 0.21, 0.25, 0.5, 0, 0, 0.2},
		{0, 0.1, -0.25, 0.046, 0.046, 0.046, 0, 0, 0.2},
		{0, -0.1, -0.25, 0.046, 0.046, 0.046, 0, 0, 0.2},
		{-0.08, -0.605, -0.25, 0.046, 0.023, 0.02, 0, 0, 0.2},
		{0, -0.605, -0.25, 0.023, 0.023, 0.02, 0, 0, 0.2},
		{0.06, -0.605, -0.25, 0.046, 0.023, 0.02, -90, 0, 0.2},
	}
)

// BuildTable produces the parameter table for the named archetype, scaled
// into physical units from the grid's field of view. For the fractional
// literals, centers and radii scale by half the field of view along their
// axis. For Spheroid, the grid spacing additionally insets the radii by
// one voxel so the ellipsoid stays strictly inside the grid bounds.
//
// Requesting E3D or an unrecognized tag fails with ErrUnknownEnum; neither
// falls back to another table.
func BuildTable(a Archetype, g *geometry.Grid) (ParameterTable, error) {
	xfov, yfov, zfov := g.FOV()

	switch a {
	case Zhu:
		return scaleRows(zhuRows, xfov/2, yfov/2, zfov/2), nil
	case Kak:
		return scaleRows(kakRows, xfov/2, yfov/2, zfov/2), nil
	case Spheroid:
		return ParameterTable{{
			RX:      xfov/2 - g.DX,
			RY:      yfov/2 - g.DY,
			RZ:      zfov/2 - g.DZ,
			Density: 1,
		}}, nil
	case E3D:
		// Reserved but never implemented; treated like an unknown tag.
		return nil, fmt.Errorf("archetype %q is not implemented: %w", a, ErrUnknownEnum)
	}
	return nil, fmt.Errorf("archetype %q: %w", a, ErrUnknownEnum)
}

// scaleRows scales fractional-FOV literal rows into physical units. The
// x scale applies to cx and rx, the y scale to cy and ry, the z scale to
// cz and rz.
func scaleRows(rows [][]float64, sx, sy, sz float64) ParameterTable {
	table := make(ParameterTable, len(rows))
	for i, row := range rows {
		table[i] = Ellipsoid{
			CX: row[0] * sx, CY: row[1] * sy, CZ: row[2] * sz,
			RX: row[3] * sx, RY: row[4] * sy, RZ: row[5] * sz,
			AzimuthDeg: row[6],
			PolarDeg:   row[7],
			Density:    row[8],
		}
	}
	return table
}
