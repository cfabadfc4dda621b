package scatter

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned by composition and source lookups.
var (
	ErrInvalidComposition = errors.New("scatter: composition fractions must be non-negative and sum to 1")
	ErrUnknownElement     = errors.New("scatter: unknown element")
)

// compositionSumTol is the allowed deviation of the fraction sum from 1.
// Wide enough for hand-entered thirds (0.333+0.333+0.333), tight enough to
// catch a forgotten component.
const compositionSumTol = 1e-3

// Component is one element of a composition with its atomic fraction.
type Component struct {
	Element  string
	Fraction float64
}

// Composition is an ordered list of elements with atomic fractions.
// Fractions must be non-negative and sum to 1; they are validated, never
// silently renormalized.
type Composition []Component

// Validate checks the composition invariants.
func (c Composition) Validate() error {
	if len(c) == 0 {
		return fmt.Errorf("%w: empty composition", ErrInvalidComposition)
	}

	sum := 0.0
	for _, comp := range c {
		if comp.Element == "" {
			return fmt.Errorf("%w: empty element identifier", ErrInvalidComposition)
		}
		if comp.Fraction < 0 || math.IsNaN(comp.Fraction) {
			return fmt.Errorf("%w: fraction %g for %s", ErrInvalidComposition, comp.Fraction, comp.Element)
		}
		sum += comp.Fraction
	}

	if math.Abs(sum-1) > compositionSumTol {
		return fmt.Errorf("%w: fractions sum to %g", ErrInvalidComposition, sum)
	}

	return nil
}
