package scatter

import (
	"fmt"
	"math"
	"sort"
)

// Source provides electron scattering-factor curves per element.
//
// Curve samples the scattering factor f(s) for the given element at every
// value of grid and returns a freshly allocated slice of the same length.
// Implementations must be safe for concurrent use; the batch pipeline calls
// them from multiple goroutines.
type Source interface {
	Curve(element string, grid []float64) ([]float64, error)
}

// GaussianParams holds one element's coefficients for a 4-term Gaussian
// scattering-factor fit: f(s) = sum_i A[i] * exp(-B[i] * s^2).
type GaussianParams struct {
	A [4]float64
	B [4]float64
}

// GaussianSum evaluates 4-term Gaussian scattering-factor fits.
type GaussianSum struct {
	params map[string]GaussianParams
}

// NewGaussianSum builds a GaussianSum source from explicit per-element
// coefficients. The map is copied.
func NewGaussianSum(params map[string]GaussianParams) *GaussianSum {
	cp := make(map[string]GaussianParams, len(params))
	for el, p := range params {
		cp[el] = p
	}
	return &GaussianSum{params: cp}
}

// DoyleTurner returns a GaussianSum preloaded with 4-term Gaussian fits
// after Doyle & Turner (1968) for a set of common elements. B coefficients
// are in squared reciprocal-length units matching s = 2 sin(theta)/lambda
// in 1/Angstrom.
func DoyleTurner() *GaussianSum {
	return &GaussianSum{params: doyleTurnerParams}
}

var doyleTurnerParams = map[string]GaussianParams{
	"H":  {A: [4]float64{0.2021, 0.2437, 0.0822, 0.0120}, B: [4]float64{30.868, 8.544, 1.273, 0.180}},
	"C":  {A: [4]float64{0.7307, 0.6863, 0.3717, 0.1180}, B: [4]float64{36.995, 11.297, 2.814, 0.346}},
	"N":  {A: [4]float64{0.5717, 0.5877, 0.3012, 0.0941}, B: [4]float64{28.847, 9.054, 2.267, 0.297}},
	"O":  {A: [4]float64{0.4548, 0.9173, 0.4719, 0.1384}, B: [4]float64{23.7803, 7.6220, 2.1440, 0.2959}},
	"Al": {A: [4]float64{2.2756, 2.4280, 0.8578, 0.3166}, B: [4]float64{72.322, 19.773, 3.080, 0.408}},
	"Si": {A: [4]float64{2.1293, 2.5333, 0.8349, 0.3216}, B: [4]float64{57.7748, 16.4756, 2.8796, 0.3860}},
	"Fe": {A: [4]float64{2.5440, 2.3434, 1.2044, 0.4068}, B: [4]float64{64.424, 14.880, 2.854, 0.350}},
	"Cu": {A: [4]float64{1.5736, 1.6846, 1.1622, 0.4234}, B: [4]float64{47.668, 12.730, 2.609, 0.326}},
	"Ag": {A: [4]float64{2.0355, 2.7505, 1.7297, 0.6300}, B: [4]float64{61.497, 11.824, 2.846, 0.327}},
	"Au": {A: [4]float64{2.3880, 4.2259, 2.6886, 1.2551}, B: [4]float64{42.866, 9.743, 2.264, 0.307}},
}

// Curve implements [Source].
func (g *GaussianSum) Curve(element string, grid []float64) ([]float64, error) {
	p, ok := g.params[element]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownElement, element)
	}

	out := make([]float64, len(grid))
	for k, s := range grid {
		s2 := s * s
		f := 0.0
		for i := 0; i < 4; i++ {
			f += p.A[i] * math.Exp(-p.B[i]*s2)
		}
		out[k] = f
	}
	return out, nil
}

// Elements returns the element identifiers known to the source, sorted.
func (g *GaussianSum) Elements() []string {
	out := make([]string, 0, len(g.params))
	for el := range g.params {
		out = append(out, el)
	}
	sort.Strings(out)
	return out
}

// LobatoParams holds one element's coefficients for the 5-term rational
// parametrization of Lobato & Van Dyck (2014):
// f(s) = sum_i A[i] * (2 + B[i]*s^2) / (1 + B[i]*s^2)^2.
type LobatoParams struct {
	A [5]float64
	B [5]float64
}

// Lobato evaluates the Lobato & Van Dyck rational parametrization from
// caller-supplied coefficients.
type Lobato struct {
	params map[string]LobatoParams
}

// NewLobato builds a Lobato source from explicit per-element coefficients.
// The map is copied.
func NewLobato(params map[string]LobatoParams) *Lobato {
	cp := make(map[string]LobatoParams, len(params))
	for el, p := range params {
		cp[el] = p
	}
	return &Lobato{params: cp}
}

// Curve implements [Source].
func (l *Lobato) Curve(element string, grid []float64) ([]float64, error) {
	p, ok := l.params[element]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownElement, element)
	}

	out := make([]float64, len(grid))
	for k, s := range grid {
		s2 := s * s
		f := 0.0
		for i := 0; i < 5; i++ {
			d := 1 + p.B[i]*s2
			f += p.A[i] * (2 + p.B[i]*s2) / (d * d)
		}
		out[k] = f
	}
	return out, nil
}
