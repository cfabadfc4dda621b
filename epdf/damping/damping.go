package damping

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-epdf/epdf/profile"
)

// ErrInvalidParameter is returned when a damping operation is constructed
// with an out-of-range parameter.
var ErrInvalidParameter = errors.New("damping: invalid parameter")

// Kind identifies a damping window.
type Kind int

const (
	// KindExponential multiplies by exp(-b*s^2).
	KindExponential Kind = iota
	// KindLorch multiplies by sin(pi*s/sMax)/(pi*s/sMax), clamped to zero
	// past sMax.
	KindLorch
	// KindLowAngleErfc multiplies by an erfc taper suppressing the
	// ill-defined region near s=0.
	KindLowAngleErfc
)

// String returns the window name.
func (k Kind) String() string {
	switch k {
	case KindExponential:
		return "exponential"
	case KindLorch:
		return "lorch"
	case KindLowAngleErfc:
		return "low-angle-erfc"
	default:
		return fmt.Sprintf("damping.Kind(%d)", int(k))
	}
}

// Op is one damping operation with its parameters. Construct with
// [Exponential], [Lorch], or [LowAngleErfc]; parameters are validated when
// the op is applied or when [Spec.Validate] is called.
type Op struct {
	Kind Kind

	// B is the exponential decay rate (KindExponential only).
	B float64
	// SMax is the Lorch cutoff (KindLorch only).
	SMax float64
	// Offset is the taper midpoint and Scale its sharpness
	// (KindLowAngleErfc only).
	Offset float64
	Scale  float64
}

// Exponential returns an exp(-b*s^2) damping op. b must be >= 0; a zero
// rate is the identity window, which keeps parameter sweeps regular.
func Exponential(b float64) Op {
	return Op{Kind: KindExponential, B: b}
}

// Lorch returns a Lorch window op with the given cutoff. sMax must be > 0.
func Lorch(sMax float64) Op {
	return Op{Kind: KindLorch, SMax: sMax}
}

// LowAngleErfc returns a low-angle erfc taper op: 0.5*erfc(scale*(offset-s)).
// The taper rises from ~0 below the offset to ~1 above it over a width of
// roughly 1/scale. scale must be > 0; offset must be >= 0.
func LowAngleErfc(offset, scale float64) Op {
	return Op{Kind: KindLowAngleErfc, Offset: offset, Scale: scale}
}

func (op Op) validate() error {
	switch op.Kind {
	case KindExponential:
		if op.B < 0 || math.IsNaN(op.B) {
			return fmt.Errorf("%w: exponential decay rate must be >= 0: %g", ErrInvalidParameter, op.B)
		}
	case KindLorch:
		if op.SMax <= 0 || math.IsNaN(op.SMax) {
			return fmt.Errorf("%w: lorch cutoff must be > 0: %g", ErrInvalidParameter, op.SMax)
		}
	case KindLowAngleErfc:
		if op.Scale <= 0 || math.IsNaN(op.Scale) {
			return fmt.Errorf("%w: erfc scale must be > 0: %g", ErrInvalidParameter, op.Scale)
		}
		if op.Offset < 0 || math.IsNaN(op.Offset) {
			return fmt.Errorf("%w: erfc offset must be >= 0: %g", ErrInvalidParameter, op.Offset)
		}
	default:
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidParameter, int(op.Kind))
	}
	return nil
}

// value evaluates the window multiplier at a single grid point.
func (op Op) value(s float64) float64 {
	switch op.Kind {
	case KindExponential:
		return math.Exp(-op.B * s * s)
	case KindLorch:
		if s > op.SMax {
			// Past the cutoff the sinc turns negative and oscillates;
			// clamp to zero instead.
			return 0
		}
		x := math.Pi * s / op.SMax
		if x == 0 {
			return 1
		}
		return math.Sin(x) / x
	case KindLowAngleErfc:
		return 0.5 * math.Erfc(op.Scale*(op.Offset-s))
	default:
		return math.NaN()
	}
}

// Spec is an ordered list of damping operations. Order is preserved for
// reporting, but since every op is a pointwise multiplier the combined
// window is order-independent.
type Spec []Op

// Validate checks every operation's parameters.
func (spec Spec) Validate() error {
	for i, op := range spec {
		if err := op.validate(); err != nil {
			return fmt.Errorf("op %d (%s): %w", i, op.Kind, err)
		}
	}
	return nil
}

// LorchCutoff reports the cutoff of the last Lorch op in the spec, if any.
func (spec Spec) LorchCutoff() (sMax float64, ok bool) {
	for _, op := range spec {
		if op.Kind == KindLorch {
			sMax = op.SMax
			ok = true
		}
	}
	return sMax, ok
}

// Window evaluates the combined multiplier of all operations on grid.
func (spec Spec) Window(grid []float64) ([]float64, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	out := make([]float64, len(grid))
	for k := range out {
		out[k] = 1
	}
	for _, op := range spec {
		for k, s := range grid {
			out[k] *= op.value(s)
		}
	}
	return out, nil
}

// Apply multiplies a reduced intensity by the combined window and returns
// the result as a new value; the input is untouched.
func (spec Spec) Apply(ri profile.ReducedIntensity) (profile.ReducedIntensity, error) {
	w, err := spec.Window(ri.S)
	if err != nil {
		return profile.ReducedIntensity{}, err
	}

	phi := make([]float64, len(ri.Phi))
	vecmath.MulBlock(phi, ri.Phi, w)

	return profile.ReducedIntensity{
		S:   append([]float64(nil), ri.S...),
		Phi: phi,
	}, nil
}
