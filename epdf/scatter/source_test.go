package scatter

import (
	"errors"
	"math"
	"testing"
)

func TestDoyleTurnerCurveDecreasesMonotonically(t *testing.T) {
	src := DoyleTurner()
	grid := make([]float64, 200)
	for k := range grid {
		grid[k] = float64(k) * 0.05
	}

	for _, el := range src.Elements() {
		f, err := src.Curve(el, grid)
		if err != nil {
			t.Fatalf("%s: %v", el, err)
		}
		if len(f) != len(grid) {
			t.Fatalf("%s: len=%d, want %d", el, len(f), len(grid))
		}
		for k := 1; k < len(f); k++ {
			if f[k] > f[k-1]+1e-12 {
				t.Fatalf("%s: curve increases at s=%g", el, grid[k])
			}
		}
		if f[0] <= 0 {
			t.Fatalf("%s: f(0)=%g, want > 0", el, f[0])
		}
	}
}

func TestGaussianSumValueAtZero(t *testing.T) {
	src := DoyleTurner()
	f, err := src.Curve("Si", []float64{0})
	if err != nil {
		t.Fatalf("Curve: %v", err)
	}
	// f(0) is the plain coefficient sum.
	want := 2.1293 + 2.5333 + 0.8349 + 0.3216
	if math.Abs(f[0]-want) > 1e-12 {
		t.Fatalf("f(0)=%v, want %v", f[0], want)
	}
}

func TestCurveUnknownElement(t *testing.T) {
	_, err := DoyleTurner().Curve("Xx", []float64{0, 1})
	if !errors.Is(err, ErrUnknownElement) {
		t.Fatalf("err=%v, want ErrUnknownElement", err)
	}
}

func TestLobatoCurve(t *testing.T) {
	src := NewLobato(map[string]LobatoParams{
		"X": {A: [5]float64{1, 0, 0, 0, 0}, B: [5]float64{2, 0, 0, 0, 0}},
	})

	f, err := src.Curve("X", []float64{0, 1})
	if err != nil {
		t.Fatalf("Curve: %v", err)
	}
	// At s=0 the single term evaluates to A*(2+0)/(1+0)^2 = 2.
	if math.Abs(f[0]-2) > 1e-12 {
		t.Fatalf("f(0)=%v, want 2", f[0])
	}
	// At s=1 with B=2: (2+2)/(1+2)^2 = 4/9.
	if math.Abs(f[1]-4.0/9.0) > 1e-12 {
		t.Fatalf("f(1)=%v, want %v", f[1], 4.0/9.0)
	}
}

func TestTabulatedInterpolatesAndClamps(t *testing.T) {
	src := NewTabulated()
	if err := src.Add("Q", []float64{0, 1, 2}, []float64{4, 2, 0}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	f, err := src.Curve("Q", []float64{-1, 0, 0.5, 1.5, 2, 5})
	if err != nil {
		t.Fatalf("Curve: %v", err)
	}
	want := []float64{4, 4, 3, 1, 0, 0}
	for k := range want {
		if math.Abs(f[k]-want[k]) > 1e-12 {
			t.Fatalf("index %d: got %v, want %v", k, f[k], want[k])
		}
	}
}

func TestTabulatedAddValidation(t *testing.T) {
	src := NewTabulated()
	if err := src.Add("Q", []float64{0, 0, 1}, []float64{1, 2, 3}); err == nil {
		t.Fatal("expected error for non-increasing s")
	}
	if err := src.Add("Q", []float64{0, 1}, []float64{1}); err == nil {
		t.Fatal("expected error for mismatched lengths")
	}
	if err := src.Add("", []float64{0}, []float64{1}); err == nil {
		t.Fatal("expected error for empty element")
	}
}
