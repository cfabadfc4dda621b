// Command epdfcalc computes a pair distribution function from a radially
// averaged diffraction profile.
//
// The input is a two-column CSV of (s, intensity) samples on a uniform s
// grid; the output is a two-column CSV of (r, G(r)) written to stdout or to
// -out. All pipeline parameters are exposed as flags.
//
// Examples:
//
//	epdfcalc -in profile.csv -composition Si:1 -rmax 20
//	epdfcalc -in scan.csv -composition Ga:0.5,As:0.5 \
//	    -fit-min 1.2 -fit-max 6 -damp-exp 0.05 -damp-lorch 6 -smax 6 -rmax 15
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-epdf/epdf/damping"
	"github.com/cwbudde/algo-epdf/epdf/pipeline"
	"github.com/cwbudde/algo-epdf/epdf/profile"
	"github.com/cwbudde/algo-epdf/epdf/scatter"
)

func main() {
	var (
		in          = flag.String("in", "", "input CSV file with s,intensity rows (required)")
		out         = flag.String("out", "", "output CSV file (default stdout)")
		composition = flag.String("composition", "", "composition as El:frac[,El:frac...] (required)")
		fitMin      = flag.Float64("fit-min", 0, "lower bound of the background fit window")
		fitMax      = flag.Float64("fit-max", 0, "upper bound of the background fit window")
		fitOffset   = flag.Bool("fit-offset", false, "fit an additional flat background term")
		dampExp     = flag.Float64("damp-exp", 0, "exponential damping rate b (0 disables)")
		dampLorch   = flag.Float64("damp-lorch", 0, "Lorch damping cutoff (0 disables)")
		dampErfc    = flag.Float64("damp-erfc", 0, "low-angle erfc taper offset (0 disables)")
		erfcScale   = flag.Float64("damp-erfc-scale", 20, "low-angle erfc taper sharpness")
		sMin        = flag.Float64("smin", 0, "lower bound of the transform window")
		sMax        = flag.Float64("smax", 0, "upper bound of the transform window")
		rMax        = flag.Float64("rmax", 20, "real-space extent of the PDF")
		rStep       = flag.Float64("rstep", 0, "real-space sampling step (0 = derived)")
		useFFT      = flag.Bool("fft", false, "use the FFT-backed transform evaluation")
		debug       = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	logger := newLogger(*debug)
	defer logger.Sync()

	if *in == "" || *composition == "" {
		fmt.Fprintln(os.Stderr, "epdfcalc: -in and -composition are required")
		flag.Usage()
		os.Exit(2)
	}

	comp, err := parseComposition(*composition)
	if err != nil {
		logger.Fatal("invalid composition", zap.Error(err))
	}

	prof, err := readProfile(*in)
	if err != nil {
		logger.Fatal("reading profile", zap.String("file", *in), zap.Error(err))
	}
	logger.Debug("profile loaded",
		zap.Int("samples", len(prof.S)),
		zap.Float64("step", prof.Step()))

	var spec damping.Spec
	if *dampExp > 0 {
		spec = append(spec, damping.Exponential(*dampExp))
	}
	if *dampLorch > 0 {
		spec = append(spec, damping.Lorch(*dampLorch))
	}
	if *dampErfc > 0 {
		spec = append(spec, damping.LowAngleErfc(*dampErfc, *erfcScale))
	}

	p := pipeline.Pipeline{
		Composition: comp,
		Source:      scatter.DoyleTurner(),
		FitMin:      *fitMin,
		FitMax:      *fitMax,
		FitOffset:   *fitOffset,
		Damping:     spec,
		SMin:        *sMin,
		SMax:        *sMax,
		RMax:        *rMax,
		RStep:       *rStep,
		UseFFT:      *useFFT,
	}
	for _, w := range p.Warnings() {
		logger.Warn("parameter warning", zap.String("warning", w))
	}

	res, err := p.Run(prof)
	if err != nil {
		logger.Fatal("pipeline failed", zap.Error(err))
	}
	logger.Info("fit complete",
		zap.Float64("N", res.Model.N),
		zap.Float64("offset", res.Model.Offset),
		zap.Float64("r_squared", res.Model.RSquared))

	if err := writePDF(*out, res.PDF); err != nil {
		logger.Fatal("writing output", zap.Error(err))
	}
}

func newLogger(debug bool) *zap.Logger {
	var logger *zap.Logger
	var err error
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "epdfcalc: logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}

// parseComposition parses "El:frac[,El:frac...]".
func parseComposition(arg string) (scatter.Composition, error) {
	var comp scatter.Composition
	for _, part := range strings.Split(arg, ",") {
		el, fracStr, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok {
			return nil, fmt.Errorf("component %q is not El:frac", part)
		}
		frac, err := strconv.ParseFloat(fracStr, 64)
		if err != nil {
			return nil, fmt.Errorf("fraction in %q: %w", part, err)
		}
		comp = append(comp, scatter.Component{Element: el, Fraction: frac})
	}
	return comp, comp.Validate()
}

// readProfile loads a two-column s,intensity CSV. A non-numeric first row
// is treated as a header and skipped.
func readProfile(path string) (profile.RadialProfile, error) {
	f, err := os.Open(path)
	if err != nil {
		return profile.RadialProfile{}, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 2

	var s, intensity []float64
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return profile.RadialProfile{}, err
		}

		sv, errS := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
		iv, errI := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if errS != nil || errI != nil {
			if len(s) == 0 {
				// Header row.
				continue
			}
			return profile.RadialProfile{}, fmt.Errorf("non-numeric row %q", rec)
		}
		s = append(s, sv)
		intensity = append(intensity, iv)
	}

	return profile.FromSamples(s, intensity)
}

func writePDF(path string, pdf profile.PDF) error {
	var w io.Writer = os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"r", "g"}); err != nil {
		return err
	}
	for j := range pdf.R {
		rec := []string{
			strconv.FormatFloat(pdf.R[j], 'g', -1, 64),
			strconv.FormatFloat(pdf.G[j], 'g', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
