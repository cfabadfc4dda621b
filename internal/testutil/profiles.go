package testutil

import (
	"math"

	"github.com/cwbudde/algo-epdf/epdf/profile"
	"github.com/cwbudde/algo-epdf/epdf/scatter"
)

// SineReduced builds a reduced intensity equal to sin(r0*s) on a uniform
// grid from 0 to sMax. Its sine transform concentrates near r = r0, which
// makes it the round-trip reference signal.
func SineReduced(r0, sMax, step float64) profile.ReducedIntensity {
	n := int(math.Round(sMax/step)) + 1
	s := make([]float64, n)
	phi := make([]float64, n)
	for k := range s {
		s[k] = float64(k) * step
		phi[k] = math.Sin(r0 * s[k])
	}
	return profile.ReducedIntensity{S: s, Phi: phi}
}

// StructuredProfile builds a synthetic measured profile for a single
// element: scale times the squared scattering factor, modulated by
// (1 + amp*sin(r0*s)). With amp zero it is a pure background.
func StructuredProfile(element string, scale, r0, amp, sMax, step float64) (profile.RadialProfile, error) {
	n := int(math.Round(sMax/step)) + 1
	grid := make([]float64, n)
	for k := range grid {
		grid[k] = float64(k) * step
	}

	f, err := scatter.DoyleTurner().Curve(element, grid)
	if err != nil {
		return profile.RadialProfile{}, err
	}

	intensity := make([]float64, n)
	for k := range intensity {
		bg := scale * f[k] * f[k]
		intensity[k] = bg * (1 + amp*math.Sin(r0*grid[k]))
	}

	return profile.FromSamples(grid, intensity)
}
