package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"tomophantom/pkg/config"
	"tomophantom/pkg/geometry"
	"tomophantom/pkg/phantom"
	"tomophantom/pkg/visualization"
)

func main() {
	// Parse command line arguments; unset flags fall back to the config
	// file (or its defaults when no file is given).
	configPath := flag.String("config", "", "Path to YAML configuration file")
	writeConfig := flag.String("write-config", "", "Write the default configuration to this path and exit")
	nx := flag.Int("nx", 0, "Grid points along x")
	ny := flag.Int("ny", 0, "Grid points along y")
	nz := flag.Int("nz", 0, "Grid points along z")
	spacing := flag.Float64("spacing", 0, "Isotropic voxel spacing")
	archetype := flag.String("archetype", "", "Phantom archetype: zhu, kak, or spheroid")
	mode := flag.String("mode", "", "Voxelization mode: slow, fast, or lowmem")
	oversample := flag.Int("oversample", 0, "Sub-voxel refinement factor")
	densityScale := flag.Float64("density-scale", 0, "Scale factor applied to all densities")
	checkFOV := flag.Bool("check-fov", false, "Validate ellipsoid extents against the grid bounds")
	showMem := flag.Bool("show-mem", false, "Report working-buffer sizes before rendering")
	compare := flag.Bool("compare", false, "Also render with the slow strategy and report agreement metrics")
	extractSlices := flag.Bool("extract-slices", false, "Save slice image sequences of the result")
	slicesDir := flag.String("slices-dir", "", "Directory to save extracted slices")
	flag.Parse()

	if *writeConfig != "" {
		if err := config.CreateDefaultConfigFile(*writeConfig); err != nil {
			log.Fatalf("Failed to write default config: %v", err)
		}
		fmt.Printf("Default configuration written to %s\n", *writeConfig)
		return
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Explicit flags override the configuration file.
	if *nx > 0 {
		cfg.Grid.NX = *nx
	}
	if *ny > 0 {
		cfg.Grid.NY = *ny
	}
	if *nz > 0 {
		cfg.Grid.NZ = *nz
	}
	if *spacing > 0 {
		cfg.Grid.DX, cfg.Grid.DY, cfg.Grid.DZ = *spacing, *spacing, *spacing
	}
	if *archetype != "" {
		cfg.Phantom.Archetype = *archetype
	}
	if *mode != "" {
		cfg.Phantom.Mode = *mode
	}
	if *oversample > 0 {
		cfg.Phantom.Oversample = *oversample
	}
	if *densityScale != 0 {
		cfg.Phantom.DensityScale = *densityScale
	}
	if *checkFOV {
		cfg.Phantom.CheckFOV = true
	}
	if *showMem {
		cfg.Phantom.ShowMem = true
	}
	if *slicesDir != "" {
		cfg.Output.SlicesDir = *slicesDir
	}

	grid := &geometry.Grid{
		NX: cfg.Grid.NX, NY: cfg.Grid.NY, NZ: cfg.Grid.NZ,
		DX: cfg.Grid.DX, DY: cfg.Grid.DY, DZ: cfg.Grid.DZ,
		OffsetX: cfg.Grid.OffsetX, OffsetY: cfg.Grid.OffsetY, OffsetZ: cfg.Grid.OffsetZ,
	}

	tag, err := phantom.ParseArchetype(cfg.Phantom.Archetype)
	if err != nil {
		log.Fatalf("Invalid archetype: %v", err)
	}
	renderMode, err := phantom.ParseMode(cfg.Phantom.Mode)
	if err != nil {
		log.Fatalf("Invalid mode: %v", err)
	}

	opts := phantom.Options{
		Oversample:   cfg.Phantom.Oversample,
		Mode:         renderMode,
		CheckFOV:     cfg.Phantom.CheckFOV,
		DensityScale: cfg.Phantom.DensityScale,
		ShowMem:      cfg.Phantom.ShowMem,
	}

	xfov, yfov, zfov := grid.FOV()
	fmt.Println("================================")
	fmt.Println("TOMOPHANTOM: DIGITAL ELLIPSOID PHANTOM GENERATOR")
	fmt.Println("================================")
	fmt.Printf("Grid: %dx%dx%d voxels, FOV %.1fx%.1fx%.1f\n",
		grid.NX, grid.NY, grid.NZ, xfov, yfov, zfov)
	fmt.Printf("Archetype: %s, mode: %s, oversample: %d\n",
		tag, renderMode, opts.Oversample)

	startTime := time.Now()
	volume, table, err := phantom.FromArchetype(grid, tag, opts)
	if err != nil {
		log.Fatalf("Phantom generation failed: %v", err)
	}
	elapsed := time.Since(startTime)

	min, max, mean := volume.Stats()
	fmt.Printf("\nGenerated %d ellipsoids in %.3f seconds\n", len(table), elapsed.Seconds())
	fmt.Printf("Density range: [%.4f, %.4f], mean %.6f\n", min, max, mean)

	if *compare && renderMode != phantom.ModeSlow {
		fmt.Println("\nRendering reference volume with the slow strategy...")
		slowOpts := opts
		slowOpts.Mode = phantom.ModeSlow
		// The returned table already carries the density scale.
		slowOpts.DensityScale = 1
		reference, _, err := phantom.Generate(grid, table, slowOpts)
		if err != nil {
			log.Fatalf("Reference generation failed: %v", err)
		}

		metrics, err := phantom.Compare(volume, reference)
		if err != nil {
			log.Fatalf("Comparison failed: %v", err)
		}
		fmt.Printf("Agreement with slow strategy:\n")
		fmt.Printf("  RMSE: %.6f\n", metrics.RMSE)
		fmt.Printf("  Max abs diff: %.6f\n", metrics.MaxAbsDiff)
		fmt.Printf("  Mean diff: %.6f\n", metrics.MeanDiff)
		fmt.Printf("  Correlation: %.4f\n", metrics.Correlation)
	}

	if *extractSlices {
		fmt.Println("\nExtracting slices...")
		viewer := visualization.NewViewer(volume.Data, volume.NX, volume.NY, volume.NZ)

		for _, axis := range cfg.Output.Axes {
			axisDir := filepath.Join(cfg.Output.SlicesDir, axis)
			fmt.Printf("Saving %s-axis slices to: %s\n", axis, axisDir)

			if err := viewer.SaveSliceSequence(axis, axisDir); err != nil {
				log.Printf("Warning: Failed to save %s-axis slices: %v", axis, err)
			}
		}
		fmt.Println("Slice extraction completed!")
	}
}
