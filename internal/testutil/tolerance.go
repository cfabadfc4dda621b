// Package testutil provides assertion helpers and synthetic diffraction
// signals shared by the package tests.
package testutil

import (
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		diff := math.Abs(got[i] - want[i])
		if diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// PeakIndex returns the index of the largest |y| among samples with
// x >= minX. Returns -1 when no sample qualifies.
func PeakIndex(x, y []float64, minX float64) int {
	peak := -1
	best := 0.0
	for i := range y {
		if x[i] < minX {
			continue
		}
		if av := math.Abs(y[i]); peak < 0 || av > best {
			peak = i
			best = av
		}
	}
	return peak
}

// RequirePeakNear fails t unless the largest |y| among samples with
// x >= minX sits within tol of wantX.
func RequirePeakNear(t *testing.T, x, y []float64, minX, wantX, tol float64) {
	t.Helper()
	peak := PeakIndex(x, y, minX)
	if peak < 0 {
		t.Fatalf("no samples with x >= %g", minX)
	}
	if math.Abs(x[peak]-wantX) > tol {
		t.Fatalf("peak at x=%v, want within %v of %v", x[peak], tol, wantX)
	}
}
