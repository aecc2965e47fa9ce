package phantom

import (
	"gonum.org/v1/gonum/floats"
)

// Volume is a dense 3D scalar-density array in row-major order with x
// fastest. A volume is created zero-filled for each generation call,
// mutated only by additive accumulation, and returned to the caller; the
// generator keeps no reference to it afterwards.
type Volume struct {
	// Data is the density values as a flat array of length NX*NY*NZ
	Data []float64

	// NX, NY, NZ are the volume dimensions in voxels
	NX, NY, NZ int
}

// NewVolume creates a zero-filled volume with the given dimensions.
func NewVolume(nx, ny, nz int) *Volume {
	return &Volume{
		Data: make([]float64, nx*ny*nz),
		NX:   nx, NY: ny, NZ: nz,
	}
}

// Index returns the flat Data index of voxel (i, j, k).
func (v *Volume) Index(i, j, k int) int {
	return (k*v.NY+j)*v.NX + i
}

// At returns the density at voxel (i, j, k).
func (v *Volume) At(i, j, k int) float64 {
	return v.Data[v.Index(i, j, k)]
}

// accumulate adds weight*fractions elementwise into the volume. fractions
// must have the same length as Data.
func (v *Volume) accumulate(fractions []float64, weight float64) {
	floats.AddScaled(v.Data, weight, fractions)
}
