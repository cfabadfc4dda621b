// Package pipeline chains the four PDF stages (background fit, reduction,
// damping, real-space transform) behind a single parameter set and runs
// them across batches of independent profiles.
package pipeline

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-epdf/epdf/damping"
	"github.com/cwbudde/algo-epdf/epdf/profile"
	"github.com/cwbudde/algo-epdf/epdf/reduce"
	"github.com/cwbudde/algo-epdf/epdf/scatter"
	"github.com/cwbudde/algo-epdf/epdf/transform"
)

// ErrNoSource is returned when a pipeline is run without a scattering-factor
// source.
var ErrNoSource = errors.New("pipeline: scattering-factor source must be set")

// Pipeline holds the full parameter set of a PDF computation. The zero
// values of the optional fields mean "use the stage default". A Pipeline is
// a plain value; Run never mutates it, so one Pipeline can serve any number
// of goroutines.
type Pipeline struct {
	Composition scatter.Composition
	Source      scatter.Source

	// FitMin and FitMax bound the background fit window; both zero means
	// the full profile range.
	FitMin, FitMax float64
	// FitOffset adds a flat background term to the fit.
	FitOffset bool

	// Damping is applied to the reduced intensity before the transform.
	Damping damping.Spec

	// SMin and SMax bound the transform window; both zero means the full
	// reduced-intensity range.
	SMin, SMax float64
	// RMax is the real-space extent of the PDF. Required.
	RMax float64
	// RStep overrides the real-space sampling; zero picks the default.
	RStep float64
	// UseFFT requests the FFT-backed transform evaluation.
	UseFFT bool
}

// Result bundles the artifacts of one pipeline run. Intermediate stages are
// kept so callers can inspect the fit or re-damp without re-fitting.
type Result struct {
	Model   scatter.Model
	Reduced profile.ReducedIntensity
	Damped  profile.ReducedIntensity
	PDF     profile.PDF
}

// Warnings reports parameter combinations that are legal but known to
// produce artifacts, currently a Lorch cutoff that differs from the
// transform's sMax.
func (p Pipeline) Warnings() []string {
	var warns []string
	if cutoff, ok := p.Damping.LorchCutoff(); ok && p.SMax != 0 {
		if math.Abs(cutoff-p.SMax) > 1e-12 {
			warns = append(warns,
				fmt.Sprintf("lorch cutoff %g differs from transform sMax %g; expect ringing in the PDF", cutoff, p.SMax))
		}
	}
	return warns
}

// Run executes all four stages on a single profile.
func (p Pipeline) Run(rp profile.RadialProfile) (Result, error) {
	if p.Source == nil {
		return Result{}, ErrNoSource
	}

	var fitOpts []scatter.FitOption
	if p.FitMin != 0 || p.FitMax != 0 {
		fitOpts = append(fitOpts, scatter.WithFitWindow(p.FitMin, p.FitMax))
	}
	if p.FitOffset {
		fitOpts = append(fitOpts, scatter.WithOffset())
	}

	model, err := scatter.Fit(rp, p.Composition, p.Source, fitOpts...)
	if err != nil {
		return Result{}, err
	}

	reduced, err := reduce.Transform(rp, model)
	if err != nil {
		return Result{}, err
	}

	damped := reduced
	if len(p.Damping) > 0 {
		damped, err = p.Damping.Apply(reduced)
		if err != nil {
			return Result{}, err
		}
	}

	var tOpts []transform.Option
	if p.SMin != 0 || p.SMax != 0 {
		tOpts = append(tOpts, transform.WithRange(p.SMin, p.SMax))
	}
	if p.RStep > 0 {
		tOpts = append(tOpts, transform.WithRStep(p.RStep))
	}
	if p.UseFFT {
		tOpts = append(tOpts, transform.WithFFT())
	}

	pdf, err := transform.PDF(damped, p.RMax, tOpts...)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Model:   model,
		Reduced: reduced,
		Damped:  damped,
		PDF:     pdf,
	}, nil
}
