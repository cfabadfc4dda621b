package transform

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-epdf/epdf/profile"
)

// Errors returned by the transform.
var (
	ErrInvalidRange  = errors.New("transform: invalid scattering-vector range")
	ErrInvalidTarget = errors.New("transform: target r max must be > 0")
)

// defaultOversample sets the default real-space sampling as a multiple of
// the reciprocal sampling relation dr = pi/sMax.
const defaultOversample = 8

// rangeEps is the slack allowed when checking the transform window against
// the sample range, relative to the grid step.
const rangeEps = 1e-9

// Option configures the transform.
type Option func(*config)

type config struct {
	sMin, sMax float64
	rangeSet   bool
	rStep      float64
	useFFT     bool
}

// WithRange restricts the transform to samples with s in [sMin, sMax].
// Without it the full reduced-intensity range is used.
func WithRange(sMin, sMax float64) Option {
	return func(c *config) {
		c.sMin = sMin
		c.sMax = sMax
		c.rangeSet = true
	}
}

// WithRStep overrides the real-space grid spacing. Non-positive values are
// ignored and the default dr = pi/(8*sMax) applies.
func WithRStep(dr float64) Option {
	return func(c *config) {
		if dr > 0 {
			c.rStep = dr
		}
	}
}

// WithFFT requests the FFT-backed evaluation. It is an optimization hint:
// grids not aligned with the s origin, or r ranges past the grid's Nyquist
// distance, silently use the direct quadrature instead.
func WithFFT() Option {
	return func(c *config) {
		c.useFFT = true
	}
}

// PDF computes G(r) over [0, rMax] from the (typically damped) reduced
// intensity. NaN phi samples, the sentinel for an undefined normalization
// near s=0, contribute zero to the integral.
func PDF(ri profile.ReducedIntensity, rMax float64, opts ...Option) (profile.PDF, error) {
	if rMax <= 0 || math.IsNaN(rMax) {
		return profile.PDF{}, fmt.Errorf("%w: %g", ErrInvalidTarget, rMax)
	}
	if len(ri.S) < 2 {
		return profile.PDF{}, fmt.Errorf("%w: need at least 2 samples", ErrInvalidRange)
	}

	cfg := config{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if !cfg.rangeSet {
		cfg.sMin = ri.S[0]
		cfg.sMax = ri.S[len(ri.S)-1]
	}

	if cfg.sMin >= cfg.sMax {
		return profile.PDF{}, fmt.Errorf("%w: sMin %g >= sMax %g", ErrInvalidRange, cfg.sMin, cfg.sMax)
	}
	step := ri.Step()
	slack := rangeEps * step
	if cfg.sMin < ri.S[0]-slack || cfg.sMax > ri.S[len(ri.S)-1]+slack {
		return profile.PDF{}, fmt.Errorf("%w: [%g, %g] outside samples [%g, %g]",
			ErrInvalidRange, cfg.sMin, cfg.sMax, ri.S[0], ri.S[len(ri.S)-1])
	}

	lo, hi := profile.WindowIndices(ri.S, cfg.sMin, cfg.sMax)
	if hi-lo < 2 {
		return profile.PDF{}, fmt.Errorf("%w: window [%g, %g] selects %d samples",
			ErrInvalidRange, cfg.sMin, cfg.sMax, hi-lo)
	}

	if cfg.rStep <= 0 {
		cfg.rStep = math.Pi / (defaultOversample * cfg.sMax)
	}

	// Trapezoidal quadrature weights over the window, folded into the
	// integrand together with the s factor. NaN sentinels drop out here.
	q := make([]float64, hi-lo)
	for k := range q {
		phi := ri.Phi[lo+k]
		if math.IsNaN(phi) {
			continue
		}
		w := step
		if k == 0 || k == len(q)-1 {
			w = step / 2
		}
		q[k] = phi * ri.S[lo+k] * w
	}

	r := make([]float64, int(rMax/cfg.rStep)+1)
	for j := range r {
		r[j] = float64(j) * cfg.rStep
	}

	var g []float64
	if cfg.useFFT {
		g = sineSumsFFT(ri.S[lo:hi], q, r, step)
	}
	if g == nil {
		g = sineSumsDirect(ri.S[lo:hi], q, r)
	}

	return profile.PDF{R: r, G: g}, nil
}

// sineSumsDirect evaluates G(r_j) = (2/pi) * sum_k q_k * sin(s_k * r_j).
func sineSumsDirect(s, q, r []float64) []float64 {
	out := make([]float64, len(r))
	for j, rv := range r {
		sum := 0.0
		for k, qv := range q {
			if qv == 0 {
				continue
			}
			sum += qv * math.Sin(s[k]*rv)
		}
		out[j] = 2 / math.Pi * sum
	}
	return out
}
