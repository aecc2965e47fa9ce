package phantom

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// VolumeMetrics summarizes the agreement between two equally shaped
// volumes, typically renditions of the same phantom by different
// voxelization strategies.
type VolumeMetrics struct {
	// RMSE is the root mean square voxel difference
	RMSE float64

	// MaxAbsDiff is the largest absolute voxel difference
	MaxAbsDiff float64

	// MeanDiff is the mean signed voxel difference
	MeanDiff float64

	// Correlation is the Pearson correlation between the voxel values.
	// It is NaN when either volume is constant.
	Correlation float64
}

// Compare computes agreement metrics between two volumes of identical
// shape.
func Compare(a, b *Volume) (VolumeMetrics, error) {
	if a.NX != b.NX || a.NY != b.NY || a.NZ != b.NZ {
		return VolumeMetrics{}, fmt.Errorf("volume shapes differ: %dx%dx%d vs %dx%dx%d",
			a.NX, a.NY, a.NZ, b.NX, b.NY, b.NZ)
	}

	var mse, maxAbs float64
	for i, av := range a.Data {
		diff := av - b.Data[i]
		mse += diff * diff
		if abs := math.Abs(diff); abs > maxAbs {
			maxAbs = abs
		}
	}
	mse /= float64(len(a.Data))

	return VolumeMetrics{
		RMSE:        math.Sqrt(mse),
		MaxAbsDiff:  maxAbs,
		MeanDiff:    stat.Mean(a.Data, nil) - stat.Mean(b.Data, nil),
		Correlation: stat.Correlation(a.Data, b.Data, nil),
	}, nil
}

// Stats returns the minimum, maximum, and mean density of the volume.
func (v *Volume) Stats() (min, max, mean float64) {
	if len(v.Data) == 0 {
		return 0, 0, 0
	}
	min, max = v.Data[0], v.Data[0]
	for _, d := range v.Data {
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}
	return min, max, stat.Mean(v.Data, nil)
}
