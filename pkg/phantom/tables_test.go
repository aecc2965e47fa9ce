package phantom

import (
	"errors"
	"math"
	"testing"

	"tomophantom/pkg/geometry"
)

// TestParseArchetype verifies tag parsing and its failure mode.
func TestParseArchetype(t *testing.T) {
	for _, tag := range []string{"zhu", "kak", "e3d", "spheroid"} {
		a, err := ParseArchetype(tag)
		if err != nil {
			t.Errorf("ParseArchetype(%q) failed: %v", tag, err)
		}
		if string(a) != tag {
			t.Errorf("ParseArchetype(%q) = %q", tag, a)
		}
	}

	for _, tag := range []string{"", "shepp", "ZHU", "zhu "} {
		if _, err := ParseArchetype(tag); !errors.Is(err, ErrUnknownEnum) {
			t.Errorf("ParseArchetype(%q): expected ErrUnknownEnum, got %v", tag, err)
		}
	}
}

// TestBuildTableScaling verifies that the fractional literals scale
// linearly with half the field of view along each axis.
func TestBuildTableScaling(t *testing.T) {
	g := geometry.NewUnitGrid(20, 20, 20) // FOV 20, half-FOV 10

	table, err := BuildTable(Zhu, g)
	if err != nil {
		t.Fatalf("BuildTable(zhu) failed: %v", err)
	}
	if len(table) != 10 {
		t.Fatalf("Expected 10 ellipsoids, got %d", len(table))
	}

	// First row of the literal is (0,0,0, 0.69,0.92,0.9, 0,0, 1).
	e := table[0]
	if math.Abs(e.RX-6.9) > 1e-12 || math.Abs(e.RY-9.2) > 1e-12 || math.Abs(e.RZ-9.0) > 1e-12 {
		t.Errorf("Row 0 radii: expected (6.9, 9.2, 9.0), got (%g, %g, %g)", e.RX, e.RY, e.RZ)
	}
	if e.Density != 1 {
		t.Errorf("Row 0 density: expected 1, got %g", e.Density)
	}

	// Third row centers scale too: cx 0.22 -> 2.2, cz -0.25 -> -2.5.
	e = table[2]
	if math.Abs(e.CX-2.2) > 1e-12 || math.Abs(e.CZ+2.5) > 1e-12 {
		t.Errorf("Row 2 center: expected cx=2.2 cz=-2.5, got (%g, %g)", e.CX, e.CZ)
	}
	if e.AzimuthDeg != -72 {
		t.Errorf("Row 2 azimuth: expected -72, got %g", e.AzimuthDeg)
	}

	// Doubling a spacing doubles that axis' scale and no other.
	wide := geometry.NewGrid(20, 20, 20, 2, 1, 1)
	wideTable, err := BuildTable(Zhu, wide)
	if err != nil {
		t.Fatalf("BuildTable(zhu) on wide grid failed: %v", err)
	}
	if math.Abs(wideTable[0].RX-13.8) > 1e-12 {
		t.Errorf("Wide grid rx: expected 13.8, got %g", wideTable[0].RX)
	}
	if math.Abs(wideTable[0].RY-9.2) > 1e-12 {
		t.Errorf("Wide grid ry should be unchanged: got %g", wideTable[0].RY)
	}
}

// TestBuildTableKak verifies the attenuation densities of the Kak table.
func TestBuildTableKak(t *testing.T) {
	g := geometry.NewUnitGrid(20, 20, 20)

	table, err := BuildTable(Kak, g)
	if err != nil {
		t.Fatalf("BuildTable(kak) failed: %v", err)
	}
	if len(table) != 10 {
		t.Fatalf("Expected 10 ellipsoids, got %d", len(table))
	}
	if table[0].Density != 2.0 || table[1].Density != -0.98 {
		t.Errorf("Kak densities: expected (2, -0.98), got (%g, %g)",
			table[0].Density, table[1].Density)
	}
}

// TestBuildTableSpheroid verifies the synthesized single-row table.
func TestBuildTableSpheroid(t *testing.T) {
	g := geometry.NewGrid(20, 20, 10, 1, 1, 2) // FOV (20, 20, 20)

	table, err := BuildTable(Spheroid, g)
	if err != nil {
		t.Fatalf("BuildTable(spheroid) failed: %v", err)
	}
	if len(table) != 1 {
		t.Fatalf("Expected 1 ellipsoid, got %d", len(table))
	}

	e := table[0]
	if e.CX != 0 || e.CY != 0 || e.CZ != 0 {
		t.Errorf("Spheroid should be origin-centered, got (%g,%g,%g)", e.CX, e.CY, e.CZ)
	}
	// Radii are half-FOV inset by one voxel spacing per axis.
	if e.RX != 9 || e.RY != 9 || e.RZ != 8 {
		t.Errorf("Spheroid radii: expected (9, 9, 8), got (%g, %g, %g)", e.RX, e.RY, e.RZ)
	}
	if e.AzimuthDeg != 0 || e.PolarDeg != 0 || e.Density != 1 {
		t.Errorf("Spheroid angles/density: got (%g, %g, %g)", e.AzimuthDeg, e.PolarDeg, e.Density)
	}
}

// TestBuildTableE3DUnimplemented verifies that the reserved tag fails
// instead of falling back.
func TestBuildTableE3DUnimplemented(t *testing.T) {
	g := geometry.NewUnitGrid(8, 8, 8)
	if _, err := BuildTable(E3D, g); !errors.Is(err, ErrUnknownEnum) {
		t.Errorf("BuildTable(e3d): expected ErrUnknownEnum, got %v", err)
	}
	if _, err := BuildTable(Archetype("mystery"), g); !errors.Is(err, ErrUnknownEnum) {
		t.Errorf("BuildTable(mystery): expected ErrUnknownEnum, got %v", err)
	}
}

// TestArchetypesFitFOV verifies that every implemented archetype stays
// within the bounds of the grid it was scaled for.
func TestArchetypesFitFOV(t *testing.T) {
	g := geometry.NewGrid(32, 32, 16, 0.5, 0.5, 1)
	for _, a := range []Archetype{Zhu, Kak, Spheroid} {
		table, err := BuildTable(a, g)
		if err != nil {
			t.Fatalf("BuildTable(%s) failed: %v", a, err)
		}
		if err := CheckFOV(g, table); err != nil {
			t.Errorf("Archetype %s violates its own grid bounds: %v", a, err)
		}
	}
}
