// Package geometry describes the discrete sampling grid that phantom
// volumes are rendered onto. A Grid maps integer voxel indices to physical
// coordinates and derives the physical field of view covered by the volume.
package geometry

// Grid describes a regular 3D sampling grid.
//
// Grid coordinate i along an axis with n points, spacing d and fractional
// offset o maps to the physical position (i - (n-1)/2 - o) * d, so an
// unshifted grid is centered on the physical origin.
type Grid struct {
	// NX, NY, NZ are the number of grid points along each axis
	NX, NY, NZ int

	// DX, DY, DZ are the physical voxel spacings along each axis
	DX, DY, DZ float64

	// OffsetX, OffsetY, OffsetZ shift the grid center by a fraction of a
	// voxel along each axis
	OffsetX, OffsetY, OffsetZ float64
}

// NewGrid creates a grid with the given point counts and spacings and no
// center offset.
func NewGrid(nx, ny, nz int, dx, dy, dz float64) *Grid {
	return &Grid{
		NX: nx, NY: ny, NZ: nz,
		DX: dx, DY: dy, DZ: dz,
	}
}

// NewUnitGrid creates a grid with unit spacing along every axis.
func NewUnitGrid(nx, ny, nz int) *Grid {
	return NewGrid(nx, ny, nz, 1, 1, 1)
}

// FOV returns the physical field of view covered by the grid along each
// axis: point count times spacing.
func (g *Grid) FOV() (xfov, yfov, zfov float64) {
	return float64(g.NX) * g.DX, float64(g.NY) * g.DY, float64(g.NZ) * g.DZ
}

// NumVoxels returns the total number of grid points.
func (g *Grid) NumVoxels() int {
	return g.NX * g.NY * g.NZ
}

// X returns the physical x coordinate of grid index i.
func (g *Grid) X(i int) float64 {
	return (float64(i) - float64(g.NX-1)/2 - g.OffsetX) * g.DX
}

// Y returns the physical y coordinate of grid index j.
func (g *Grid) Y(j int) float64 {
	return (float64(j) - float64(g.NY-1)/2 - g.OffsetY) * g.DY
}

// Z returns the physical z coordinate of grid index k.
func (g *Grid) Z(k int) float64 {
	return (float64(k) - float64(g.NZ-1)/2 - g.OffsetZ) * g.DZ
}

// Bounds returns the physical extent covered by the grid along each axis.
// The extent runs half a voxel beyond the first and last grid points, so it
// spans exactly one field of view.
func (g *Grid) Bounds() (min, max [3]float64) {
	min[0], max[0] = g.X(0)-g.DX/2, g.X(g.NX-1)+g.DX/2
	min[1], max[1] = g.Y(0)-g.DY/2, g.Y(g.NY-1)+g.DY/2
	min[2], max[2] = g.Z(0)-g.DZ/2, g.Z(g.NZ-1)+g.DZ/2
	return min, max
}

// Slice returns a one-slice grid positioned at z slice k of g. The slice
// grid keeps the x/y layout of g and re-derives the z offset so that its
// single plane sits at the physical position g.Z(k).
func (g *Grid) Slice(k int) *Grid {
	sub := *g
	sub.NZ = 1
	sub.OffsetZ = -(float64(k) - float64(g.NZ-1)/2 - g.OffsetZ)
	return &sub
}

// FineX returns the physical x coordinate of fine-grid index s when the
// grid is refined by the integer factor over along every axis. The fine
// grid is sub-voxel centered: its samples tile each voxel at spacing
// DX/over, and for over=1 it coincides with the regular mapping.
func (g *Grid) FineX(s, over int) float64 {
	return ((float64(s)-float64(g.NX*over-1)/2)/float64(over) - g.OffsetX) * g.DX
}

// FineY returns the physical y coordinate of fine-grid index s at
// refinement factor over.
func (g *Grid) FineY(s, over int) float64 {
	return ((float64(s)-float64(g.NY*over-1)/2)/float64(over) - g.OffsetY) * g.DY
}

// FineZ returns the physical z coordinate of fine-grid index s at
// refinement factor over.
func (g *Grid) FineZ(s, over int) float64 {
	return ((float64(s)-float64(g.NZ*over-1)/2)/float64(over) - g.OffsetZ) * g.DZ
}
