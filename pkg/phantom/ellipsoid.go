// Package phantom synthesizes digital test volumes for tomographic image
// reconstruction. A phantom is a weighted superposition of geometric
// ellipsoids (the classic Shepp-Logan family plus simple spheroid test
// objects) voxelized onto a grid supplied by the caller.
//
// The package offers three voxelization strategies with different
// accuracy/memory/speed trade-offs: exhaustive oversampling (ModeSlow),
// analytic inside/outside/edge classification with partial-volume
// estimation for edge voxels (ModeFast), and a memory-bounded slice-wise
// variant (ModeLowMem).
package phantom

import (
	"fmt"
	"math"
)

// tableColumns is the fixed arity of a raw parameter table row:
// cx, cy, cz, rx, ry, rz, azimuth, polar, density.
const tableColumns = 9

// Ellipsoid is one row of a phantom parameter table, in physical units.
// It is an immutable value; the generator only reads it.
type Ellipsoid struct {
	// CX, CY, CZ is the center of the ellipsoid
	CX, CY, CZ float64

	// RX, RY, RZ are the semi-axes; each must be positive
	RX, RY, RZ float64

	// AzimuthDeg is the rotation about the z axis, in degrees
	AzimuthDeg float64

	// PolarDeg is the rotation about a second axis, in degrees. Only 0 is
	// supported; a nonzero value fails the whole generation call rather
	// than being silently ignored.
	PolarDeg float64

	// Density is the signed additive weight of this ellipsoid
	Density float64
}

// ParameterTable is an ordered list of ellipsoids. Order only affects the
// floating-point accumulation order, not the result up to rounding: the
// density sum is commutative.
type ParameterTable []Ellipsoid

// TableFromRows converts a raw 9-column table into a ParameterTable.
// Column semantics are cx, cy, cz, rx, ry, rz, azimuth, polar, density.
// Rows with any other column count fail with ErrTableShape.
func TableFromRows(rows [][]float64) (ParameterTable, error) {
	table := make(ParameterTable, 0, len(rows))
	for i, row := range rows {
		if len(row) != tableColumns {
			return nil, fmt.Errorf("row %d has %d columns: %w", i, len(row), ErrTableShape)
		}
		table = append(table, Ellipsoid{
			CX: row[0], CY: row[1], CZ: row[2],
			RX: row[3], RY: row[4], RZ: row[5],
			AzimuthDeg: row[6],
			PolarDeg:   row[7],
			Density:    row[8],
		})
	}
	return table, nil
}

// Rows converts the table back to its raw 9-column form.
func (t ParameterTable) Rows() [][]float64 {
	rows := make([][]float64, len(t))
	for i, e := range t {
		rows[i] = []float64{
			e.CX, e.CY, e.CZ,
			e.RX, e.RY, e.RZ,
			e.AzimuthDeg, e.PolarDeg, e.Density,
		}
	}
	return rows
}

// scaleDensity returns a copy of the table with every density multiplied
// by the given unit-scale factor. The receiver is left untouched.
func (t ParameterTable) scaleDensity(scale float64) ParameterTable {
	scaled := make(ParameterTable, len(t))
	copy(scaled, t)
	for i := range scaled {
		scaled[i].Density *= scale
	}
	return scaled
}

// rotator maps points into an ellipsoid's local (unrotated) frame and
// evaluates its quadratic membership form. The azimuth rotation is
// precomputed once per ellipsoid.
type rotator struct {
	e        Ellipsoid
	cos, sin float64
}

// newRotator builds the local-frame transform for e. A nonzero polar
// rotation is an unsupported configuration: there is no implemented 3D
// rotation beyond the azimuth.
func newRotator(e Ellipsoid) (rotator, error) {
	if e.PolarDeg != 0 {
		return rotator{}, fmt.Errorf("polar rotation %g: %w", e.PolarDeg, ErrUnsupported)
	}
	a := e.AzimuthDeg * math.Pi / 180
	return rotator{e: e, cos: math.Cos(a), sin: math.Sin(a)}, nil
}

// quad evaluates the quadratic form (xr/rx)^2 + (yr/ry)^2 + (zr/rz)^2 at
// the given physical point, after shifting it to the ellipsoid center and
// rotating it by the azimuth within the (x,y) plane. Values at most 1 lie
// inside the ellipsoid.
func (r *rotator) quad(x, y, z float64) float64 {
	x -= r.e.CX
	y -= r.e.CY
	z -= r.e.CZ
	xr := r.cos*x + r.sin*y
	yr := -r.sin*x + r.cos*y
	qx := xr / r.e.RX
	qy := yr / r.e.RY
	qz := z / r.e.RZ
	return qx*qx + qy*qy + qz*qz
}

// inside reports whether the physical point lies inside the ellipsoid.
func (r *rotator) inside(x, y, z float64) bool {
	return r.quad(x, y, z) <= 1
}
