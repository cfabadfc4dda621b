package transform

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-epdf/epdf/profile"
	"github.com/cwbudde/algo-epdf/internal/testutil"
)

func TestPDFAllZeroInputGivesAllZeroOutput(t *testing.T) {
	ri := profile.ReducedIntensity{
		S:   []float64{0, 0.1, 0.2, 0.3, 0.4},
		Phi: []float64{0, 0, 0, 0, 0},
	}

	pdf, err := PDF(ri, 10)
	if err != nil {
		t.Fatalf("PDF: %v", err)
	}
	for j, g := range pdf.G {
		if g != 0 {
			t.Fatalf("G[%d]=%v, want 0", j, g)
		}
	}
	if pdf.R[0] != 0 {
		t.Fatalf("R[0]=%v, want 0", pdf.R[0])
	}
}

func TestPDFRoundTripPeak(t *testing.T) {
	const r0 = 3.0
	ri := testutil.SineReduced(r0, 30, 0.01)

	pdf, err := PDF(ri, 6)
	if err != nil {
		t.Fatalf("PDF: %v", err)
	}

	peak := 0
	for j := range pdf.G {
		if math.Abs(pdf.G[j]) > math.Abs(pdf.G[peak]) {
			peak = j
		}
	}
	if math.Abs(pdf.R[peak]-r0) > 0.1 {
		t.Fatalf("peak at r=%v, want near %v", pdf.R[peak], r0)
	}
}

func TestPDFRangeValidation(t *testing.T) {
	ri := testutil.SineReduced(2, 10, 0.05)

	tests := []struct {
		name string
		opts []Option
		rMax float64
		want error
	}{
		{"sMin equals sMax", []Option{WithRange(3, 3)}, 5, ErrInvalidRange},
		{"sMin above sMax", []Option{WithRange(4, 2)}, 5, ErrInvalidRange},
		{"window past samples", []Option{WithRange(2, 15)}, 5, ErrInvalidRange},
		{"window below samples", []Option{WithRange(-1, 5)}, 5, ErrInvalidRange},
		{"zero target", nil, 0, ErrInvalidTarget},
		{"negative target", nil, -2, ErrInvalidTarget},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PDF(ri, tt.rMax, tt.opts...)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err=%v, want %v", err, tt.want)
			}
		})
	}
}

func TestPDFNaNSamplesContributeZero(t *testing.T) {
	ri := testutil.SineReduced(2, 10, 0.05)
	withNaN := profile.ReducedIntensity{
		S:   append([]float64(nil), ri.S...),
		Phi: append([]float64(nil), ri.Phi...),
	}
	withNaN.Phi[0] = math.NaN()

	pdf, err := PDF(withNaN, 5)
	if err != nil {
		t.Fatalf("PDF: %v", err)
	}
	for j, g := range pdf.G {
		if math.IsNaN(g) || math.IsInf(g, 0) {
			t.Fatalf("G[%d]=%v, want finite", j, g)
		}
	}

	// The s=0 sample carries zero quadrature weight anyway (s factor),
	// so the sentinel must not change the result.
	ref, err := PDF(ri, 5)
	if err != nil {
		t.Fatalf("PDF: %v", err)
	}
	for j := range ref.G {
		if math.Abs(pdf.G[j]-ref.G[j]) > 1e-12 {
			t.Fatalf("G[%d] differs: %v vs %v", j, pdf.G[j], ref.G[j])
		}
	}
}

func TestPDFRStepOverride(t *testing.T) {
	ri := testutil.SineReduced(2, 10, 0.05)

	pdf, err := PDF(ri, 5, WithRStep(0.5))
	if err != nil {
		t.Fatalf("PDF: %v", err)
	}
	if len(pdf.R) != 11 {
		t.Fatalf("len(R)=%d, want 11", len(pdf.R))
	}
	if math.Abs(pdf.Step()-0.5) > 1e-12 {
		t.Fatalf("r step %v, want 0.5", pdf.Step())
	}
}

func TestPDFSubRangeWindow(t *testing.T) {
	ri := testutil.SineReduced(2.5, 20, 0.02)

	full, err := PDF(ri, 5, WithRStep(0.05))
	if err != nil {
		t.Fatalf("PDF full: %v", err)
	}
	sub, err := PDF(ri, 5, WithRStep(0.05), WithRange(1, 15))
	if err != nil {
		t.Fatalf("PDF sub: %v", err)
	}

	if len(full.R) != len(sub.R) {
		t.Fatal("r grids with an explicit step must not depend on the s window")
	}
	// Different integration ranges must give different values somewhere.
	same := true
	for j := range full.G {
		if math.Abs(full.G[j]-sub.G[j]) > 1e-9 {
			same = false
			break
		}
	}
	if same {
		t.Fatal("sub-range transform identical to full-range transform")
	}
}

func TestFFTPathMatchesDirect(t *testing.T) {
	ri := testutil.SineReduced(3, 20, 0.02)

	direct, err := PDF(ri, 6, WithRStep(0.02))
	if err != nil {
		t.Fatalf("PDF direct: %v", err)
	}
	fast, err := PDF(ri, 6, WithRStep(0.02), WithFFT())
	if err != nil {
		t.Fatalf("PDF fft: %v", err)
	}

	if len(direct.G) != len(fast.G) {
		t.Fatalf("length mismatch: %d vs %d", len(direct.G), len(fast.G))
	}

	peak := 0.0
	for _, g := range direct.G {
		if math.Abs(g) > peak {
			peak = math.Abs(g)
		}
	}
	for j := range direct.G {
		if math.Abs(direct.G[j]-fast.G[j]) > 0.01*peak {
			t.Fatalf("index %d: direct %v vs fft %v (peak %v)", j, direct.G[j], fast.G[j], peak)
		}
	}
}

func TestFFTPathFallsBackOnUnalignedGrid(t *testing.T) {
	// Grid origin off the step lattice: s = 0.013 + k*0.02.
	n := 500
	s := make([]float64, n)
	phi := make([]float64, n)
	for k := range s {
		s[k] = 0.013 + float64(k)*0.02
		phi[k] = math.Sin(2 * s[k])
	}
	ri := profile.ReducedIntensity{S: s, Phi: phi}

	direct, err := PDF(ri, 4)
	if err != nil {
		t.Fatalf("PDF direct: %v", err)
	}
	fast, err := PDF(ri, 4, WithFFT())
	if err != nil {
		t.Fatalf("PDF fft: %v", err)
	}

	// Fallback must reproduce the direct result exactly.
	for j := range direct.G {
		if direct.G[j] != fast.G[j] {
			t.Fatalf("index %d: %v != %v", j, direct.G[j], fast.G[j])
		}
	}
}
