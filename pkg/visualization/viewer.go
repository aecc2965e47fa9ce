// Package visualization exports 2D slice images from generated phantom
// volumes. It lives outside the voxelization core: it only consumes the
// returned volume data.
package visualization

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"math"
	"os"
	"path/filepath"
)

// Viewer extracts and saves grayscale slice images from a 3D volume.
// Densities are windowed linearly from [min, max] onto the 16-bit gray
// range, so signed phantom densities render without clipping.
type Viewer struct {
	// volumeData holds the 3D volume data in row-major order, x fastest
	volumeData []float64

	// dimensions of the volume
	width  int
	height int
	depth  int

	// density window mapped onto the gray range
	min, max float64
}

// NewViewer creates a viewer for the given volume data. The density
// window is taken from the data's own minimum and maximum; a constant
// volume renders as black.
func NewViewer(volumeData []float64, width, height, depth int) *Viewer {
	v := &Viewer{
		volumeData: volumeData,
		width:      width,
		height:     height,
		depth:      depth,
	}
	if len(volumeData) > 0 {
		v.min, v.max = volumeData[0], volumeData[0]
		for _, d := range volumeData {
			v.min = math.Min(v.min, d)
			v.max = math.Max(v.max, d)
		}
	}
	return v
}

// SetWindow overrides the density window used for the gray mapping.
func (v *Viewer) SetWindow(min, max float64) {
	v.min, v.max = min, max
}

// gray maps a density to a 16-bit gray value through the current window.
func (v *Viewer) gray(d float64) uint16 {
	if v.max <= v.min {
		return 0
	}
	t := (d - v.min) / (v.max - v.min)
	return uint16(math.Max(0, math.Min(65535, t*65535)))
}

// ExtractSlice extracts a 2D slice from the 3D volume along the specified axis
func (v *Viewer) ExtractSlice(axis string, position int) (image.Image, error) {
	if position < 0 {
		return nil, fmt.Errorf("position must be non-negative")
	}

	var img image.Gray16

	switch axis {
	case "x", "X":
		// Extract slice along YZ plane
		if position >= v.width {
			return nil, fmt.Errorf("position %d exceeds width %d", position, v.width)
		}

		img = *image.NewGray16(image.Rect(0, 0, v.depth, v.height))
		for y := 0; y < v.height; y++ {
			for z := 0; z < v.depth; z++ {
				idx := z*v.width*v.height + y*v.width + position
				img.SetGray16(z, y, color.Gray16{Y: v.gray(v.volumeData[idx])})
			}
		}

	case "y", "Y":
		// Extract slice along XZ plane
		if position >= v.height {
			return nil, fmt.Errorf("position %d exceeds height %d", position, v.height)
		}

		img = *image.NewGray16(image.Rect(0, 0, v.width, v.depth))
		for z := 0; z < v.depth; z++ {
			for x := 0; x < v.width; x++ {
				idx := z*v.width*v.height + position*v.width + x
				img.SetGray16(x, z, color.Gray16{Y: v.gray(v.volumeData[idx])})
			}
		}

	case "z", "Z":
		// Extract slice along XY plane
		if position >= v.depth {
			return nil, fmt.Errorf("position %d exceeds depth %d", position, v.depth)
		}

		img = *image.NewGray16(image.Rect(0, 0, v.width, v.height))
		for y := 0; y < v.height; y++ {
			for x := 0; x < v.width; x++ {
				idx := position*v.width*v.height + y*v.width + x
				img.SetGray16(x, y, color.Gray16{Y: v.gray(v.volumeData[idx])})
			}
		}

	default:
		return nil, fmt.Errorf("invalid axis: %s (must be x, y, or z)", axis)
	}

	return &img, nil
}

// ExtractRegion extracts a 3D subregion from the volume
func (v *Viewer) ExtractRegion(startX, startY, startZ, sizeX, sizeY, sizeZ int) ([]float64, error) {
	// Validate parameters
	if startX < 0 || startY < 0 || startZ < 0 {
		return nil, fmt.Errorf("start coordinates must be non-negative")
	}

	if sizeX <= 0 || sizeY <= 0 || sizeZ <= 0 {
		return nil, fmt.Errorf("size dimensions must be positive")
	}

	if startX+sizeX > v.width || startY+sizeY > v.height || startZ+sizeZ > v.depth {
		return nil, fmt.Errorf("region extends beyond volume boundaries")
	}

	// Create output region
	region := make([]float64, sizeX*sizeY*sizeZ)

	// Extract the region
	for z := 0; z < sizeZ; z++ {
		for y := 0; y < sizeY; y++ {
			for x := 0; x < sizeX; x++ {
				srcIdx := (startZ+z)*v.width*v.height + (startY+y)*v.width + (startX+x)
				dstIdx := z*sizeX*sizeY + y*sizeX + x
				region[dstIdx] = v.volumeData[srcIdx]
			}
		}
	}

	return region, nil
}

// SaveSlice saves an extracted slice as a JPEG image
func (v *Viewer) SaveSlice(img image.Image, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return jpeg.Encode(file, img, &jpeg.Options{Quality: 90})
}

// SaveSliceSequence extracts and saves a sequence of slices along the specified axis
func (v *Viewer) SaveSliceSequence(axis string, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	var maxPos int
	switch axis {
	case "x", "X":
		maxPos = v.width
	case "y", "Y":
		maxPos = v.height
	case "z", "Z":
		maxPos = v.depth
	default:
		return fmt.Errorf("invalid axis: %s (must be x, y, or z)", axis)
	}

	for pos := 0; pos < maxPos; pos++ {
		img, err := v.ExtractSlice(axis, pos)
		if err != nil {
			return err
		}

		filename := filepath.Join(outputDir, fmt.Sprintf("slice_%s_%03d.jpg", axis, pos))
		if err := v.SaveSlice(img, filename); err != nil {
			return err
		}
	}

	return nil
}
