package phantom

import (
	"errors"
	"testing"

	"tomophantom/pkg/geometry"
)

// TestCheckFOV verifies the per-axis extent checks against a 20-unit grid
// whose bounds are [-10, 10] on every axis.
func TestCheckFOV(t *testing.T) {
	g := geometry.NewUnitGrid(20, 20, 20)

	testCases := []struct {
		name string
		e    Ellipsoid
		ok   bool
	}{
		{
			name: "strictly inside all bounds",
			e:    Ellipsoid{RX: 3, RY: 3, RZ: 3, Density: 1},
			ok:   true,
		},
		{
			name: "touching the bounds exactly",
			e:    Ellipsoid{RX: 10, RY: 10, RZ: 10, Density: 1},
			ok:   true,
		},
		{
			name: "x max exceeded",
			e:    Ellipsoid{CX: 6, RX: 5, RY: 3, RZ: 3, Density: 1},
			ok:   false,
		},
		{
			name: "x min exceeded",
			e:    Ellipsoid{CX: -6, RX: 5, RY: 3, RZ: 3, Density: 1},
			ok:   false,
		},
		{
			name: "y max exceeded",
			e:    Ellipsoid{CY: 8, RX: 3, RY: 3, RZ: 3, Density: 1},
			ok:   false,
		},
		{
			name: "z min exceeded",
			e:    Ellipsoid{CZ: -9, RX: 3, RY: 3, RZ: 2, Density: 1},
			ok:   false,
		},
		{
			name: "oversized on every axis",
			e:    Ellipsoid{RX: 11, RY: 11, RZ: 11, Density: 1},
			ok:   false,
		},
	}

	for _, tc := range testCases {
		err := CheckFOV(g, ParameterTable{tc.e})
		if tc.ok && err != nil {
			t.Errorf("%s: unexpected error %v", tc.name, err)
		}
		if !tc.ok && !errors.Is(err, ErrOutsideFOV) {
			t.Errorf("%s: expected ErrOutsideFOV, got %v", tc.name, err)
		}
	}
}

// TestCheckFOVEagerFail verifies that the first violating ellipsoid aborts
// the whole validation.
func TestCheckFOVEagerFail(t *testing.T) {
	g := geometry.NewUnitGrid(20, 20, 20)

	table := ParameterTable{
		{RX: 3, RY: 3, RZ: 3, Density: 1},
		{CX: 9, RX: 5, RY: 3, RZ: 3, Density: 1}, // violates x max
		{RX: 2, RY: 2, RZ: 2, Density: 1},
	}

	err := CheckFOV(g, table)
	if !errors.Is(err, ErrOutsideFOV) {
		t.Fatalf("Expected ErrOutsideFOV, got %v", err)
	}
}

// TestCheckFOVOffsetGrid verifies that the bounds follow the grid offset.
func TestCheckFOVOffsetGrid(t *testing.T) {
	g := &geometry.Grid{NX: 20, NY: 20, NZ: 20, DX: 1, DY: 1, DZ: 1, OffsetX: 2}
	// Bounds on x are now [-12, 8].

	if err := CheckFOV(g, ParameterTable{{CX: -11, RX: 1, RY: 1, RZ: 1, Density: 1}}); err != nil {
		t.Errorf("Ellipsoid inside shifted bounds rejected: %v", err)
	}
	err := CheckFOV(g, ParameterTable{{CX: 8, RX: 1, RY: 1, RZ: 1, Density: 1}})
	if !errors.Is(err, ErrOutsideFOV) {
		t.Errorf("Ellipsoid beyond shifted x max: expected ErrOutsideFOV, got %v", err)
	}
}
