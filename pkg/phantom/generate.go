package phantom

import (
	"fmt"

	"tomophantom/pkg/geometry"
)

// Mode selects the voxelization strategy.
type Mode string

const (
	// ModeSlow is the exhaustive oversampling strategy: exact boolean
	// membership at the refined resolution, block-averaged to the output
	// grid. Memory and time grow with the cube of the oversampling factor.
	ModeSlow Mode = "slow"

	// ModeFast is the analytic-edge strategy: voxels provably interior or
	// exterior are classified exactly and sub-voxel sampling is spent only
	// on boundary voxels.
	ModeFast Mode = "fast"

	// ModeLowMem is the slice-wise variant of ModeFast, processing one z
	// slice at a time to bound peak intermediate memory.
	ModeLowMem Mode = "lowmem"
)

// ParseMode maps a mode string to a Mode. Unknown strings fail with
// ErrUnknownEnum.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeSlow, ModeFast, ModeLowMem:
		return Mode(s), nil
	}
	return "", fmt.Errorf("mode %q: %w", s, ErrUnknownEnum)
}

// Options configures a generation call. The zero value of each field
// stands for its default: oversample 1, mode slow, density scale 1, no
// FOV check, no memory report.
type Options struct {
	// Oversample is the integer sub-voxel refinement factor applied by
	// every strategy: the slow strategy samples the whole grid at this
	// refinement, the fast and lowmem strategies sample only edge voxels.
	Oversample int

	// Mode selects the voxelization strategy
	Mode Mode

	// CheckFOV validates every ellipsoid against the grid bounds before
	// rendering
	CheckFOV bool

	// DensityScale multiplies the density column of the whole table
	DensityScale float64

	// ShowMem reports the size of the working buffers before rendering
	ShowMem bool
}

// DefaultOptions returns the default generation options.
func DefaultOptions() Options {
	return Options{
		Oversample:   1,
		Mode:         ModeSlow,
		DensityScale: 1,
	}
}

// normalized fills zero-valued fields with their defaults.
func (o Options) normalized() Options {
	if o.Oversample == 0 {
		o.Oversample = 1
	}
	if o.Mode == "" {
		o.Mode = ModeSlow
	}
	if o.DensityScale == 0 {
		o.DensityScale = 1
	}
	return o
}

// Generate renders the parameter table onto the grid and returns the
// phantom volume together with the (possibly density-rescaled) table it
// rendered. The volume starts zero-filled and each ellipsoid contributes
// density times its per-voxel membership fraction, summed elementwise, so
// overlapping ellipsoids add.
//
// The call either completes or fails atomically: any nonzero polar
// rotation, FOV violation (when requested), or unknown mode aborts before
// the volume is returned. The grid and table are only read.
func Generate(g *geometry.Grid, table ParameterTable, opts Options) (*Volume, ParameterTable, error) {
	opts = opts.normalized()
	if opts.Oversample < 1 {
		return nil, nil, fmt.Errorf("oversample factor %d must be at least 1", opts.Oversample)
	}
	if _, err := ParseMode(string(opts.Mode)); err != nil {
		return nil, nil, err
	}

	if opts.DensityScale != 1 {
		table = table.scaleDensity(opts.DensityScale)
	}

	// Reject unsupported rotations up front, before any rendering work,
	// so every mode fails identically.
	rotators := make([]rotator, len(table))
	for i, e := range table {
		rot, err := newRotator(e)
		if err != nil {
			return nil, nil, fmt.Errorf("ellipsoid %d: %w", i, err)
		}
		rotators[i] = rot
	}

	if opts.CheckFOV {
		if err := CheckFOV(g, table); err != nil {
			return nil, nil, err
		}
	}

	if opts.ShowMem {
		reportMem(g, opts)
	}

	v := NewVolume(g.NX, g.NY, g.NZ)

	switch opts.Mode {
	case ModeSlow:
		renderParallel(g, rotators, v, func(rot *rotator) []float64 {
			return renderOversampled(g, rot, opts.Oversample)
		})
	case ModeFast:
		renderParallel(g, rotators, v, func(rot *rotator) []float64 {
			return renderAnalyticEdge(g, rot, opts.Oversample)
		})
	case ModeLowMem:
		for i := range rotators {
			accumulateSlicewise(g, &rotators[i], opts.Oversample, v)
		}
	}

	return v, table, nil
}

// renderParallel renders each ellipsoid's membership fractions on its own
// goroutine with a private buffer, then accumulates the buffers into the
// volume in table order. Accumulation in order keeps the floating-point
// result deterministic; the single collection loop is the only writer of
// the shared volume.
func renderParallel(g *geometry.Grid, rotators []rotator, v *Volume, render func(*rotator) []float64) {
	type result struct {
		idx       int
		fractions []float64
	}
	results := make(chan result)

	for i := range rotators {
		go func(idx int) {
			results <- result{idx: idx, fractions: render(&rotators[idx])}
		}(i)
	}

	buffers := make([][]float64, len(rotators))
	for range rotators {
		res := <-results
		buffers[res.idx] = res.fractions
	}
	for i, fractions := range buffers {
		v.accumulate(fractions, rotators[i].e.Density)
	}
}

// reportMem prints the approximate working-set sizes for the selected
// strategy.
func reportMem(g *geometry.Grid, opts Options) {
	const bytesPerVoxel = 8
	outBytes := g.NumVoxels() * bytesPerVoxel
	workBytes := outBytes
	if opts.Mode == ModeLowMem {
		workBytes = g.NX * g.NY * bytesPerVoxel
	}
	fmt.Printf("phantom volume: %d bytes, per-ellipsoid working buffer: %d bytes\n",
		outBytes, workBytes)
}

// Default renders the Zhu head phantom onto the grid with default options.
func Default(g *geometry.Grid) (*Volume, ParameterTable, error) {
	return FromArchetype(g, Zhu, DefaultOptions())
}

// FromArchetype builds the named archetype table for the grid and renders
// it.
func FromArchetype(g *geometry.Grid, a Archetype, opts Options) (*Volume, ParameterTable, error) {
	table, err := BuildTable(a, g)
	if err != nil {
		return nil, nil, err
	}
	return Generate(g, table, opts)
}

// FromDimsSpacing renders the table onto a fresh grid with the given
// dimensions and spacings.
func FromDimsSpacing(nx, ny, nz int, dx, dy, dz float64, table ParameterTable) (*Volume, ParameterTable, error) {
	return Generate(geometry.NewGrid(nx, ny, nz, dx, dy, dz), table, DefaultOptions())
}

// FromDims renders the table onto a unit-spacing grid with the given
// dimensions.
func FromDims(nx, ny, nz int, table ParameterTable) (*Volume, ParameterTable, error) {
	return Generate(geometry.NewUnitGrid(nx, ny, nz), table, DefaultOptions())
}

// DefaultCube renders the Zhu head phantom onto an n by n by nz grid with
// unit in-plane spacing and the given z spacing.
func DefaultCube(n, nz int, dz float64) (*Volume, ParameterTable, error) {
	return Default(geometry.NewGrid(n, n, nz, 1, 1, dz))
}
