package transform

import (
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// fftAlignEps bounds the relative deviation of s[0] from an integer grid
// multiple for the FFT path to apply.
const fftAlignEps = 1e-9

// sineSumsFFT evaluates the same sine sums as sineSumsDirect through a
// zero-padded DFT: for x_k placed at their absolute grid index k = s_k/ds,
// -Im(DFT(x)_j) = sum_k x_k * sin(2*pi*k*j/M), i.e. the sine sum at
// r_j = 2*pi*j/(M*ds). The natural grid is then interpolated onto r.
//
// Returns nil when the grid or the requested r range is unsuitable; the
// caller falls back to the direct evaluation.
func sineSumsFFT(s, q, r []float64, step float64) []float64 {
	if len(s) == 0 || step <= 0 {
		return nil
	}

	// The grid must sit on integer multiples of the step.
	k0f := s[0] / step
	k0 := int(math.Round(k0f))
	if math.Abs(k0f-float64(k0)) > fftAlignEps || k0 < 0 {
		return nil
	}

	rMax := r[len(r)-1]
	// Beyond the Nyquist distance pi/step the DFT grid cannot represent r.
	if rMax >= math.Pi/step {
		return nil
	}

	// Size the transform so the natural r spacing is several times finer
	// than the requested grid, keeping the bin interpolation error small.
	rStep := step
	if len(r) > 1 {
		rStep = r[1] - r[0]
	}
	m := nextPowerOf2(max(
		2*(k0+len(q)),
		4*int(math.Ceil(2*math.Pi/(rStep*step)))+1,
	))

	plan, err := algofft.NewPlan64(m)
	if err != nil {
		return nil
	}

	src := make([]complex128, m)
	for k, qv := range q {
		src[k0+k] = complex(qv, 0)
	}
	dst := make([]complex128, m)
	if err := plan.Forward(dst, src); err != nil {
		return nil
	}

	natStep := 2 * math.Pi / (float64(m) * step)
	out := make([]float64, len(r))
	for j, rv := range r {
		// Linear interpolation between the two neighboring DFT bins.
		pos := rv / natStep
		i0 := int(pos)
		if i0+1 >= m/2 {
			return nil
		}
		frac := pos - float64(i0)
		g0 := -imag(dst[i0])
		g1 := -imag(dst[i0+1])
		out[j] = 2 / math.Pi * (g0 + frac*(g1-g0))
	}
	return out
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
