package scatter

import (
	"fmt"
	"sort"
)

// Tabulated is a [Source] backed by user-supplied sampled curves, evaluated
// by piecewise-linear interpolation with endpoint clamping. It suits
// published tables that only exist as discrete samples.
type Tabulated struct {
	curves map[string]tabCurve
}

type tabCurve struct {
	s []float64
	f []float64
}

// NewTabulated returns an empty Tabulated source.
func NewTabulated() *Tabulated {
	return &Tabulated{curves: make(map[string]tabCurve)}
}

// Add registers a sampled curve for element. s must be strictly increasing
// and the slices must have equal, non-zero length. Both slices are copied.
func (t *Tabulated) Add(element string, s, f []float64) error {
	if element == "" {
		return fmt.Errorf("scatter: tabulated element identifier must not be empty")
	}
	if len(s) == 0 || len(f) == 0 {
		return fmt.Errorf("scatter: tabulated curve for %s must not be empty", element)
	}
	if len(s) != len(f) {
		return fmt.Errorf("scatter: tabulated curve for %s has mismatched lengths: %d != %d", element, len(s), len(f))
	}
	for i := 1; i < len(s); i++ {
		if !(s[i] > s[i-1]) {
			return fmt.Errorf("scatter: tabulated s values for %s must be strictly increasing at index %d", element, i)
		}
	}

	t.curves[element] = tabCurve{
		s: append([]float64(nil), s...),
		f: append([]float64(nil), f...),
	}
	return nil
}

// Curve implements [Source].
func (t *Tabulated) Curve(element string, grid []float64) ([]float64, error) {
	c, ok := t.curves[element]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownElement, element)
	}

	out := make([]float64, len(grid))
	for i, q := range grid {
		switch {
		case q <= c.s[0]:
			out[i] = c.f[0]
		case q >= c.s[len(c.s)-1]:
			out[i] = c.f[len(c.f)-1]
		default:
			j := sort.SearchFloat64s(c.s, q)
			s0, s1 := c.s[j-1], c.s[j]
			w := (q - s0) / (s1 - s0)
			out[i] = c.f[j-1] + w*(c.f[j]-c.f[j-1])
		}
	}
	return out, nil
}
