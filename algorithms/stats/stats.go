package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Scalar statistics shared by the analysis stages, backed by gonum.
// The recording-level aggregates use population moments (divisor n),
// so the sample-variance helpers are wrapped accordingly.

// Mean calculates the arithmetic mean of a slice using gonum
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// StdDev calculates the population standard deviation of a slice
func StdDev(data []float64) float64 {
	if len(data) < 2 {
		return 0.0
	}
	return stat.PopStdDev(data, nil)
}

// Min returns the smallest value in the slice
func Min(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	minVal := data[0]
	for _, v := range data[1:] {
		if v < minVal {
			minVal = v
		}
	}
	return minVal
}

// Max returns the largest value in the slice
func Max(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	maxVal := data[0]
	for _, v := range data[1:] {
		if v > maxVal {
			maxVal = v
		}
	}
	return maxVal
}

// Range returns max - min, or 0 for fewer than two values
func Range(data []float64) float64 {
	if len(data) < 2 {
		return 0.0
	}
	return Max(data) - Min(data)
}

// Slope fits a least-squares line against the sample index and returns
// its slope. Fewer than three points yield 0.
func Slope(data []float64) float64 {
	if len(data) < 3 {
		return 0.0
	}
	xs := make([]float64, len(data))
	for i := range xs {
		xs[i] = float64(i)
	}
	// Use gonum's linear regression
	_, beta := stat.LinearRegression(xs, data, nil, false)
	return beta
}

// MeanSquare calculates the mean of squared values (short-term energy)
func MeanSquare(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, v := range data {
		sum += v * v
	}
	return sum / float64(len(data))
}

// RMS calculates root mean square
func RMS(data []float64) float64 {
	return math.Sqrt(MeanSquare(data))
}

// Clip limits a value to the range [lo, hi]
func Clip(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Sigmoid evaluates a logistic transform centered at center with the
// given scale
func Sigmoid(x, center, scale float64) float64 {
	return 1.0 / (1.0 + math.Exp(-(x-center)/scale))
}
