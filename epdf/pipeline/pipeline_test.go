package pipeline

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-epdf/epdf/damping"
	"github.com/cwbudde/algo-epdf/epdf/profile"
	"github.com/cwbudde/algo-epdf/epdf/scatter"
	"github.com/cwbudde/algo-epdf/internal/testutil"
)

// syntheticProfile builds a Cu background with a single-distance structure
// signal at r0.
func syntheticProfile(t *testing.T, r0 float64) profile.RadialProfile {
	t.Helper()
	p, err := testutil.StructuredProfile("Cu", 3, r0, 0.05, 11.98, 0.02)
	if err != nil {
		t.Fatalf("StructuredProfile: %v", err)
	}
	return p
}

func cuPipeline() Pipeline {
	return Pipeline{
		Composition: scatter.Composition{{Element: "Cu", Fraction: 1}},
		Source:      scatter.DoyleTurner(),
		FitMin:      1,
		FitMax:      11.98,
		Damping:     damping.Spec{damping.Exponential(0.01)},
		RMax:        8,
	}
}

func TestRunProducesAllStages(t *testing.T) {
	p := cuPipeline()
	res, err := p.Run(syntheticProfile(t, 2.5))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.Model.N <= 0 {
		t.Fatalf("N=%v, want > 0", res.Model.N)
	}
	if len(res.Reduced.Phi) == 0 || len(res.Damped.Phi) == 0 {
		t.Fatal("missing intermediate stages")
	}
	if len(res.PDF.R) == 0 || len(res.PDF.G) != len(res.PDF.R) {
		t.Fatalf("bad PDF shape: %d vs %d", len(res.PDF.G), len(res.PDF.R))
	}
}

func TestRunRequiresSource(t *testing.T) {
	p := cuPipeline()
	p.Source = nil
	if _, err := p.Run(syntheticProfile(t, 2.5)); !errors.Is(err, ErrNoSource) {
		t.Fatalf("err=%v, want ErrNoSource", err)
	}
}

func TestRunPropagatesStageErrors(t *testing.T) {
	p := cuPipeline()
	p.Damping = damping.Spec{damping.Lorch(-1)}
	if _, err := p.Run(syntheticProfile(t, 2.5)); !errors.Is(err, damping.ErrInvalidParameter) {
		t.Fatalf("err=%v, want ErrInvalidParameter", err)
	}

	p = cuPipeline()
	p.RMax = -1
	if _, err := p.Run(syntheticProfile(t, 2.5)); err == nil {
		t.Fatal("expected transform error for negative r max")
	}
}

func TestWarningsOnLorchMismatch(t *testing.T) {
	p := cuPipeline()
	p.Damping = damping.Spec{damping.Lorch(10)}
	p.SMin, p.SMax = 0.5, 11

	if warns := p.Warnings(); len(warns) != 1 {
		t.Fatalf("warnings=%v, want exactly one", warns)
	}

	p.SMax = 10
	if warns := p.Warnings(); len(warns) != 0 {
		t.Fatalf("warnings=%v, want none when cutoffs agree", warns)
	}
}

func TestRunBatchPositionalAggregation(t *testing.T) {
	p := cuPipeline()

	distances := []float64{2.0, 2.5, 3.0, 3.5}
	profiles := make([]profile.RadialProfile, len(distances))
	for i, r0 := range distances {
		profiles[i] = syntheticProfile(t, r0)
	}

	results, err := p.RunBatch(profiles, WithWorkers(2))
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}
	if len(results) != len(profiles) {
		t.Fatalf("len(results)=%d, want %d", len(results), len(profiles))
	}

	// Each result's PDF peak must track its own profile's distance.
	for i, r0 := range distances {
		pdf := results[i].PDF
		peak := 0
		for j := range pdf.G {
			if pdf.R[j] < 1 {
				// Skip the low-r ramp common to all profiles.
				continue
			}
			if math.Abs(pdf.G[j]) > math.Abs(pdf.G[peak]) {
				peak = j
			}
		}
		if math.Abs(pdf.R[peak]-r0) > 0.3 {
			t.Fatalf("profile %d: peak at r=%v, want near %v", i, pdf.R[peak], r0)
		}
	}
}

func TestRunBatchReportsFirstErrorByIndex(t *testing.T) {
	p := cuPipeline()
	good := syntheticProfile(t, 2.5)

	profiles := []profile.RadialProfile{good, {}, good}
	results, err := p.RunBatch(profiles, WithWorkers(3))
	if err == nil {
		t.Fatal("expected error for empty profile")
	}
	if len(results) != 3 {
		t.Fatalf("len(results)=%d, want 3", len(results))
	}
	// Healthy profiles still complete.
	if len(results[0].PDF.G) == 0 || len(results[2].PDF.G) == 0 {
		t.Fatal("good profiles should have completed")
	}
}

func TestRunBatchEmptyInput(t *testing.T) {
	p := cuPipeline()
	results, err := p.RunBatch(nil)
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}
	if results != nil {
		t.Fatalf("results=%v, want nil", results)
	}
}
