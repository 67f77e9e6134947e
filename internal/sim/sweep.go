package sim

import (
	"context"
	"io"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vlfom/predator-prey/internal/config"
)

// SweepOptions configure a preset sweep.
type SweepOptions struct {
	Ticks    int
	Parallel bool        // One goroutine per preset
	Logger   *log.Logger // nil discards
}

// SweepResult is the outcome of running one preset.
type SweepResult struct {
	Preset config.Preset
	Result Result
	Err    error
}

// Score ranks the result, failed runs last.
func (r SweepResult) Score() float64 {
	if r.Err != nil {
		return -1
	}
	return r.Result.Summary.Score()
}

// Sweep runs the configured scenario once per preset, each with the same
// seed and grid. Results are returned in preset order.
func Sweep(ctx context.Context, cfg config.Config, opts SweepOptions) []SweepResult {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	results := make([]SweepResult, len(cfg.Presets))
	runOne := func(idx int, p config.Preset) {
		c := cfg
		c.Params = p.ParamsConfig
		results[idx] = runPreset(ctx, c, p, opts.Ticks, logger.With("preset", p.Name))
	}

	if !opts.Parallel {
		for i, p := range cfg.Presets {
			runOne(i, p)
		}
		return results
	}

	var wg sync.WaitGroup
	for i, p := range cfg.Presets {
		wg.Add(1)
		go func(idx int, p config.Preset) {
			defer wg.Done()
			runOne(idx, p)
		}(i, p)
	}
	wg.Wait()

	return results
}

func runPreset(ctx context.Context, cfg config.Config, p config.Preset, ticks int, logger *log.Logger) SweepResult {
	res := SweepResult{Preset: p}

	e, err := BuildEngine(cfg)
	if err != nil {
		res.Err = err
		logger.Error("build failed", "err", err)
		return res
	}

	runner := NewRunner(e, Options{
		Window:      cfg.Telemetry.Window,
		HistorySize: cfg.Telemetry.HistorySize,
		Logger:      logger,
	})
	res.Result, res.Err = runner.Run(ctx, ticks)

	s := res.Result.Summary
	logger.Info("preset done",
		"prey", res.Result.Final.Prey,
		"predators", res.Result.Final.Predators,
		"coexisted", s.Coexisted(),
		"score", s.Score(),
	)
	return res
}

// Ranked returns a copy of results ordered best first.
func Ranked(results []SweepResult) []SweepResult {
	ranked := make([]SweepResult, len(results))
	copy(ranked, results)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score() > ranked[j].Score()
	})
	return ranked
}
