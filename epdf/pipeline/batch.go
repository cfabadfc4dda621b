package pipeline

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-epdf/epdf/profile"
)

// BatchOption configures RunBatch.
type BatchOption func(*batchConfig)

type batchConfig struct {
	workers int
	logger  *zap.Logger
}

// WithWorkers sets the worker pool size. Defaults to GOMAXPROCS.
func WithWorkers(n int) BatchOption {
	return func(c *batchConfig) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithLogger sets the logger used for batch progress and parameter
// warnings. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) BatchOption {
	return func(c *batchConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// RunBatch maps the pipeline over a scan of independent profiles on a
// fixed-size worker pool. Results are aggregated positionally: results[i]
// belongs to profiles[i]. Every profile is attempted even after a failure;
// the first error encountered (by index) is returned, wrapped with the
// profile index.
func (p Pipeline) RunBatch(profiles []profile.RadialProfile, opts ...BatchOption) ([]Result, error) {
	cfg := batchConfig{
		workers: runtime.GOMAXPROCS(0),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	for _, w := range p.Warnings() {
		cfg.logger.Warn("pipeline parameter warning", zap.String("warning", w))
	}

	if len(profiles) == 0 {
		return nil, nil
	}

	pool, err := ants.NewPool(cfg.workers)
	if err != nil {
		return nil, fmt.Errorf("pipeline: worker pool: %w", err)
	}
	defer pool.Release()

	results := make([]Result, len(profiles))
	errs := make([]error, len(profiles))

	var wg sync.WaitGroup
	for i := range profiles {
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			results[i], errs[i] = p.Run(profiles[i])
		})
		if submitErr != nil {
			wg.Done()
			errs[i] = fmt.Errorf("pipeline: submit: %w", submitErr)
		}
	}
	wg.Wait()

	failed := 0
	var first error
	for i, err := range errs {
		if err == nil {
			continue
		}
		failed++
		if first == nil {
			first = fmt.Errorf("pipeline: profile %d: %w", i, err)
		}
	}

	cfg.logger.Info("batch complete",
		zap.Int("profiles", len(profiles)),
		zap.Int("failed", failed),
		zap.Int("workers", cfg.workers))

	return results, first
}
