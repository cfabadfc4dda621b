package scatter

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-epdf/epdf/profile"
)

// Errors returned by the fitter.
var (
	ErrEmptyFitWindow = errors.New("scatter: fit window selects no samples")
	ErrDegenerateFit  = errors.New("scatter: fit matrix is singular")
)

// Model is a fitted scattering background. It is immutable once created;
// re-fitting produces a new Model. The fit is only trusted inside
// [SMinFit, SMaxFit], but the model can evaluate its background sums on any
// grid via the composition and source it carries.
type Model struct {
	// N is the fitted scale of the composition-weighted background.
	N float64
	// Offset is the fitted flat background term, zero unless WithOffset
	// was used.
	Offset float64
	// RSquared is the coefficient of determination of the fit over the
	// fit window.
	RSquared float64
	// SMinFit and SMaxFit record the window the fit was restricted to.
	SMinFit, SMaxFit float64

	// Composition and Source reproduce the background on any grid.
	Composition Composition
	Source      Source

	// Background is the fitted curve N*sum_i c_i f_i^2 + Offset over the
	// full profile grid, and Residuals the misfit I - Background inside
	// the fit window. Both exist so a plotting collaborator can render
	// the fit without recomputing it.
	Background []float64
	Residuals  []float64
}

// BackgroundSums evaluates sum_i c_i f_i(s)^2 and sum_i c_i^2 f_i(s)^2 on
// grid using the model's composition and scattering-factor source.
func (m Model) BackgroundSums(grid []float64) (sumF2, sumC2F2 []float64, err error) {
	sumF2 = make([]float64, len(grid))
	sumC2F2 = make([]float64, len(grid))

	for _, comp := range m.Composition {
		f, err := m.Source.Curve(comp.Element, grid)
		if err != nil {
			return nil, nil, err
		}
		for k, v := range f {
			f2 := v * v
			sumF2[k] += comp.Fraction * f2
			sumC2F2[k] += comp.Fraction * comp.Fraction * f2
		}
	}

	return sumF2, sumC2F2, nil
}

// FitOption configures a background fit.
type FitOption func(*fitConfig)

type fitConfig struct {
	sMin, sMax float64
	rangeSet   bool
	offset     bool
}

// WithFitWindow restricts the fit to profile samples with s in [sMin, sMax].
// Without it the full profile range is used.
func WithFitWindow(sMin, sMax float64) FitOption {
	return func(c *fitConfig) {
		c.sMin = sMin
		c.sMax = sMax
		c.rangeSet = true
	}
}

// WithOffset adds a flat additive background term to the fit model,
// absorbing diffuse and inelastic background the scaled scattering curves
// cannot represent.
func WithOffset() FitOption {
	return func(c *fitConfig) {
		c.offset = true
	}
}

// Fit estimates the background scale N (and optionally a flat offset) by
// linear least squares of I(s) against sum_i c_i f_i(s)^2 over the fit
// window. The problem is linear in its parameters, so a direct QR solve is
// used rather than iterative optimization.
func Fit(p profile.RadialProfile, comp Composition, src Source, opts ...FitOption) (Model, error) {
	if err := comp.Validate(); err != nil {
		return Model{}, err
	}
	if len(p.S) == 0 {
		return Model{}, profile.ErrEmptyProfile
	}

	cfg := fitConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if !cfg.rangeSet {
		cfg.sMin = p.S[0]
		cfg.sMax = p.S[len(p.S)-1]
	}

	m := Model{
		Composition: append(Composition(nil), comp...),
		Source:      src,
		SMinFit:     cfg.sMin,
		SMaxFit:     cfg.sMax,
	}

	sumF2, _, err := m.BackgroundSums(p.S)
	if err != nil {
		return Model{}, err
	}

	lo, hi := profile.WindowIndices(p.S, cfg.sMin, cfg.sMax)
	n := hi - lo
	if n <= 0 {
		return Model{}, fmt.Errorf("%w: [%g, %g]", ErrEmptyFitWindow, cfg.sMin, cfg.sMax)
	}

	cols := 1
	if cfg.offset {
		cols = 2
	}

	design := mat.NewDense(n, cols, nil)
	y := mat.NewVecDense(n, nil)
	for k := 0; k < n; k++ {
		design.Set(k, 0, sumF2[lo+k])
		if cfg.offset {
			design.Set(k, 1, 1)
		}
		y.SetVec(k, p.I[lo+k])
	}

	var beta mat.VecDense
	if err := beta.SolveVec(design, y); err != nil {
		return Model{}, fmt.Errorf("%w: %v", ErrDegenerateFit, err)
	}

	m.N = beta.AtVec(0)
	if cfg.offset {
		m.Offset = beta.AtVec(1)
	}
	if math.IsNaN(m.N) || math.IsInf(m.N, 0) {
		return Model{}, fmt.Errorf("%w: non-finite scale", ErrDegenerateFit)
	}

	m.Background = make([]float64, len(p.S))
	for k := range m.Background {
		m.Background[k] = m.N*sumF2[k] + m.Offset
	}

	est := make([]float64, n)
	vals := make([]float64, n)
	m.Residuals = make([]float64, n)
	for k := 0; k < n; k++ {
		est[k] = m.Background[lo+k]
		vals[k] = p.I[lo+k]
		m.Residuals[k] = vals[k] - est[k]
	}
	m.RSquared = stat.RSquaredFrom(est, vals, nil)

	return m, nil
}
