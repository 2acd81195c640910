// Package analysis derives summary statistics and periodicity estimates from
// a running desert.Simulation, using gonum the way pthm-soup's optimize
// command reaches for gonum rather than hand-rolled numerics.
package analysis

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"

	"github.com/BrennenTaylor/Desertscapes-Simulation/internal/desert"
)

// Summary holds scalar descriptive statistics of the current heightfield.
type Summary struct {
	MeanHeight float64
	StdHeight  float64
	MinHeight  float64
	MaxHeight  float64

	TotalSediment float64
	TotalBedrock  float64
}

// Summarize computes descriptive statistics over the full grid.
func Summarize(s *desert.Simulation) Summary {
	nx, ny := s.NX(), s.NY()
	heights := make([]float64, 0, nx*ny)
	min, max := math.Inf(1), math.Inf(-1)

	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			h := s.Height(i, j)
			heights = append(heights, h)
			if h < min {
				min = h
			}
			if h > max {
				max = h
			}
		}
	}

	mean, std := stat.MeanStdDev(heights, nil)

	return Summary{
		MeanHeight:    mean,
		StdHeight:     std,
		MinHeight:     min,
		MaxHeight:     max,
		TotalSediment: s.SumSediment(),
		TotalBedrock:  s.SumBedrock(),
	}
}

// DominantWavelength estimates the periodic dune spacing along a single
// grid row by taking its power spectrum and returning the wavelength, in
// cells, of the strongest non-DC frequency component. Returns 0 for rows
// too short to carry a meaningful spectrum or with no detectable peak.
func DominantWavelength(row []float64) float64 {
	n := len(row)
	if n < 4 {
		return 0
	}

	mean := stat.Mean(row, nil)
	centered := make([]float64, n)
	for i, v := range row {
		centered[i] = v - mean
	}

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, centered)

	bestK := 0
	bestPower := 0.0
	// Skip the DC term at index 0. fourier.FFT.Coefficients already returns
	// only the non-redundant half of a real signal's spectrum (n/2+1 bins).
	for k := 1; k < len(coeffs); k++ {
		power := real(coeffs[k])*real(coeffs[k]) + imag(coeffs[k])*imag(coeffs[k])
		if power > bestPower {
			bestPower = power
			bestK = k
		}
	}

	if bestK == 0 || bestPower == 0 {
		return 0
	}
	return float64(n) / float64(bestK)
}

// RowHeights extracts one row of total heights, for feeding into
// DominantWavelength along the wind axis.
func RowHeights(s *desert.Simulation, j int) []float64 {
	row := make([]float64, s.NX())
	for i := range row {
		row[i] = s.Height(i, j)
	}
	return row
}
