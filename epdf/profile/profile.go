package profile

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned by profile constructors.
var (
	ErrEmptyProfile   = errors.New("profile: intensity data must not be empty")
	ErrInvalidStep    = errors.New("profile: scattering-vector step must be > 0")
	ErrNonUniformGrid = errors.New("profile: scattering-vector grid must be uniform and increasing")
	ErrLengthMismatch = errors.New("profile: grid and data lengths differ")
	ErrNegativeOrigin = errors.New("profile: scattering-vector origin must be >= 0")
	errGridTooShort   = errors.New("profile: grid needs at least 2 samples")
)

// gridUniformityRelEps bounds the allowed relative deviation between
// consecutive grid steps before a grid counts as non-uniform.
const gridUniformityRelEps = 1e-6

// RadialProfile is a calibrated, radially averaged diffraction intensity
// profile: intensity I sampled on a uniform scattering-vector grid s.
type RadialProfile struct {
	// S holds scattering-vector magnitudes, uniformly spaced, increasing.
	S []float64
	// I holds the measured intensity at each grid point.
	I []float64
}

// ReducedIntensity holds the background-normalized structure signal phi(s)
// on the same grid as the profile it was derived from. Individual samples
// may be NaN where the normalization denominator was numerically zero
// (typically at s=0); downstream transforms treat those as absent.
type ReducedIntensity struct {
	S   []float64
	Phi []float64
}

// PDF is the terminal real-space artifact: G(r) sampled on a uniform r grid
// starting at zero.
type PDF struct {
	R []float64
	G []float64
}

// New builds a RadialProfile from a grid origin, step size, and intensities.
func New(sOrigin, step float64, intensity []float64) (RadialProfile, error) {
	if len(intensity) == 0 {
		return RadialProfile{}, ErrEmptyProfile
	}
	if step <= 0 {
		return RadialProfile{}, fmt.Errorf("%w: %g", ErrInvalidStep, step)
	}
	if sOrigin < 0 {
		return RadialProfile{}, fmt.Errorf("%w: %g", ErrNegativeOrigin, sOrigin)
	}

	s := make([]float64, len(intensity))
	for k := range s {
		s[k] = sOrigin + float64(k)*step
	}

	return RadialProfile{S: s, I: append([]float64(nil), intensity...)}, nil
}

// FromSamples builds a RadialProfile from explicit (s, I) samples, validating
// that the grid is uniform and increasing.
func FromSamples(s, intensity []float64) (RadialProfile, error) {
	if len(intensity) == 0 {
		return RadialProfile{}, ErrEmptyProfile
	}
	if len(s) != len(intensity) {
		return RadialProfile{}, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(s), len(intensity))
	}
	if err := CheckGrid(s); err != nil {
		return RadialProfile{}, err
	}

	return RadialProfile{
		S: append([]float64(nil), s...),
		I: append([]float64(nil), intensity...),
	}, nil
}

// Step returns the grid spacing. Profiles with fewer than two samples have
// no defined spacing and report zero.
func (p RadialProfile) Step() float64 { return gridStep(p.S) }

// Step returns the grid spacing of the reduced intensity.
func (ri ReducedIntensity) Step() float64 { return gridStep(ri.S) }

// Step returns the real-space grid spacing.
func (pdf PDF) Step() float64 { return gridStep(pdf.R) }

func gridStep(grid []float64) float64 {
	if len(grid) < 2 {
		return 0
	}
	return (grid[len(grid)-1] - grid[0]) / float64(len(grid)-1)
}

// CheckGrid validates that grid is uniformly spaced with a strictly positive
// step. Uniformity is checked against a relative tolerance so grids built by
// repeated addition pass.
func CheckGrid(grid []float64) error {
	if len(grid) < 2 {
		return errGridTooShort
	}

	step := (grid[len(grid)-1] - grid[0]) / float64(len(grid)-1)
	if step <= 0 {
		return fmt.Errorf("%w: step %g", ErrNonUniformGrid, step)
	}

	tol := gridUniformityRelEps * step
	for k := 1; k < len(grid); k++ {
		if math.Abs(grid[k]-grid[k-1]-step) > tol {
			return fmt.Errorf("%w: irregular spacing at index %d", ErrNonUniformGrid, k)
		}
	}

	return nil
}

// WindowIndices returns the half-open index range [lo, hi) of grid samples
// falling inside the inclusive value range [min, max].
func WindowIndices(grid []float64, min, max float64) (lo, hi int) {
	lo = 0
	for lo < len(grid) && grid[lo] < min {
		lo++
	}
	hi = len(grid)
	for hi > lo && grid[hi-1] > max {
		hi--
	}
	return lo, hi
}
