// Package sim drives ocean engines over many ticks, feeding telemetry and
// keeping a frame history for the viewer.
package sim

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vlfom/predator-prey/internal/core"
	"github.com/vlfom/predator-prey/internal/telemetry"
)

// Options configure a Runner.
type Options struct {
	Window       int               // Ticks per statistics window
	HistorySize  int               // Windows kept for bookmark detection
	HistoryLimit int               // Frames kept when KeepHistory is set, 0 = unlimited
	KeepHistory  bool              // Record a rendered frame per tick
	PrintEvery   int               // Log populations every n ticks, 0 = never
	Output       *telemetry.Output // CSV output, nil to disable
	Logger       *log.Logger       // nil discards
}

// Result is the outcome of a run.
type Result struct {
	Height    int
	Width     int
	Params    core.Params
	Samples   []telemetry.Sample
	Windows   []telemetry.WindowStats
	Bookmarks []telemetry.Bookmark
	Summary   telemetry.Summary
	Final     core.Counts
}

// Runner advances one engine and records what happens.
type Runner struct {
	engine     *core.Engine
	collector  *telemetry.Collector
	detector   *telemetry.BookmarkDetector
	output     *telemetry.Output
	history    *History
	logger     *log.Logger
	printEvery int
}

// NewRunner wraps an engine.
func NewRunner(e *core.Engine, opts Options) *Runner {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	r := &Runner{
		engine:     e,
		collector:  telemetry.NewCollector(opts.Window),
		detector:   telemetry.NewBookmarkDetector(opts.HistorySize),
		output:     opts.Output,
		logger:     logger,
		printEvery: opts.PrintEvery,
	}
	if opts.KeepHistory {
		r.history = NewHistory(opts.HistoryLimit)
	}
	return r
}

// Engine returns the driven engine.
func (r *Runner) Engine() *core.Engine { return r.engine }

// History returns the recorded frames, or nil when history is disabled.
func (r *Runner) History() *History { return r.history }

// Run advances the engine by ticks, checking ctx between ticks. The current
// state is sampled before the first tick. On cancellation the partial
// result is returned together with the context error.
func (r *Runner) Run(ctx context.Context, ticks int) (Result, error) {
	res := Result{
		Height: r.engine.Height(),
		Width:  r.engine.Width(),
		Params: r.engine.Params(),
	}

	if err := r.sample(&res); err != nil {
		return res, err
	}

	var runErr error
	for i := 0; i < ticks; i++ {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}
		if err := r.Step(&res); err != nil {
			runErr = err
			break
		}
	}

	if r.collector.Pending(r.engine.TickCount()) {
		if err := r.flush(&res); err != nil && runErr == nil {
			runErr = err
		}
	}

	r.Finish(&res)
	return res, runErr
}

// Finish recomputes the summary and final counts of res. Call it after
// driving the engine with Step.
func (r *Runner) Finish(res *Result) {
	res.Summary = telemetry.Summarize(res.Samples)
	res.Final = r.engine.Counts()
}

// Step advances the engine one tick and records the outcome into res.
func (r *Runner) Step(res *Result) error {
	r.engine.Tick()
	r.collector.Record(r.engine.LastEvents())

	if err := r.sample(res); err != nil {
		return err
	}

	tick := r.engine.TickCount()
	if r.collector.ShouldFlush(tick) {
		return r.flush(res)
	}
	return nil
}

func (r *Runner) sample(res *Result) error {
	s := telemetry.SampleOf(r.engine)
	res.Samples = append(res.Samples, s)

	if r.history != nil {
		r.history.Append(r.engine.Snapshot())
	}
	if r.printEvery > 0 && s.Tick%r.printEvery == 0 {
		r.logger.Info("population", "tick", s.Tick, "prey", s.Prey, "predators", s.Predators)
	}

	if err := r.output.WriteSample(s); err != nil {
		return fmt.Errorf("sim: %w", err)
	}
	return nil
}

func (r *Runner) flush(res *Result) error {
	stats := r.collector.Flush(r.engine.TickCount(), r.engine.Counts())
	res.Windows = append(res.Windows, stats)
	r.logger.Debug("window", stats.KeyVals()...)

	if err := r.output.WriteWindow(stats); err != nil {
		return fmt.Errorf("sim: %w", err)
	}

	for _, bm := range r.detector.Check(stats) {
		res.Bookmarks = append(res.Bookmarks, bm)
		r.logger.Info("bookmark", bm.KeyVals()...)
		if err := r.output.WriteBookmark(bm); err != nil {
			return fmt.Errorf("sim: %w", err)
		}
	}
	return nil
}
