package sim

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vlfom/predator-prey/internal/config"
	"github.com/vlfom/predator-prey/internal/core"
	"github.com/vlfom/predator-prey/internal/scenario"
	"github.com/vlfom/predator-prey/internal/telemetry"
)

func classicEngine(t *testing.T) *core.Engine {
	t.Helper()
	e, err := BuildEngine(config.DefaultConfig())
	if err != nil {
		t.Fatalf("BuildEngine() failed: %v", err)
	}
	return e
}

func TestRunSamplesSeededState(t *testing.T) {
	r := NewRunner(classicEngine(t), Options{Window: 5})

	res, err := r.Run(context.Background(), 0)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if len(res.Samples) != 1 {
		t.Fatalf("expected 1 sample, got %d", len(res.Samples))
	}
	want := telemetry.Sample{Tick: 0, Prey: 56, Predators: 24}
	if res.Samples[0] != want {
		t.Errorf("expected %+v, got %+v", want, res.Samples[0])
	}
	if len(res.Windows) != 0 {
		t.Errorf("no window should be flushed without ticks, got %d", len(res.Windows))
	}
}

func TestRunWindowsAndSamples(t *testing.T) {
	r := NewRunner(classicEngine(t), Options{Window: 4})

	res, err := r.Run(context.Background(), 10)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if len(res.Samples) != 11 {
		t.Fatalf("expected 11 samples, got %d", len(res.Samples))
	}
	for i, s := range res.Samples {
		if s.Tick != i {
			t.Errorf("sample %d has tick %d", i, s.Tick)
		}
	}

	ends := make([]int, len(res.Windows))
	for i, w := range res.Windows {
		ends[i] = w.WindowEnd
	}
	if want := []int{4, 8, 10}; !reflect.DeepEqual(ends, want) {
		t.Errorf("expected window ends %v, got %v", want, ends)
	}

	last := res.Samples[len(res.Samples)-1]
	if res.Final.Prey != last.Prey || res.Final.Predators != last.Predators {
		t.Errorf("final counts %+v disagree with last sample %+v", res.Final, last)
	}
	if res.Final.Obstacles != 1 {
		t.Errorf("obstacle count changed: %d", res.Final.Obstacles)
	}
	if res.Summary.Ticks != 10 {
		t.Errorf("expected summary over 10 ticks, got %d", res.Summary.Ticks)
	}
}

func TestRunDeterministic(t *testing.T) {
	run := func() []telemetry.Sample {
		res, err := NewRunner(classicEngine(t), Options{Window: 10}).Run(context.Background(), 50)
		if err != nil {
			t.Fatalf("Run() failed: %v", err)
		}
		return res.Samples
	}

	if a, b := run(), run(); !reflect.DeepEqual(a, b) {
		t.Error("runs with the same seed diverged")
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRunner(classicEngine(t), Options{Window: 5})
	res, err := r.Run(ctx, 100)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(res.Samples) != 1 {
		t.Errorf("expected only the initial sample, got %d", len(res.Samples))
	}
	if r.Engine().TickCount() != 0 {
		t.Errorf("engine advanced after cancellation: tick %d", r.Engine().TickCount())
	}
}

func TestRunHistoryLimit(t *testing.T) {
	r := NewRunner(classicEngine(t), Options{Window: 5, KeepHistory: true, HistoryLimit: 3})

	if _, err := r.Run(context.Background(), 5); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	h := r.History()
	if h.Len() != 3 || h.Dropped() != 3 {
		t.Fatalf("expected 3 kept and 3 dropped frames, got %d and %d", h.Len(), h.Dropped())
	}
	if h.At(0).Tick != 3 {
		t.Errorf("oldest kept frame should be tick 3, got %d", h.At(0).Tick)
	}
	last, ok := h.Last()
	if !ok || last.Tick != 5 {
		t.Errorf("newest frame should be tick 5, got %d", last.Tick)
	}
	if last.Text != r.Engine().String() {
		t.Error("newest frame should match the engine rendering")
	}
}

func TestRunWithoutHistory(t *testing.T) {
	r := NewRunner(classicEngine(t), Options{})
	if r.History() != nil {
		t.Error("history should be nil unless requested")
	}
}

func TestRunWritesOutput(t *testing.T) {
	dir := t.TempDir()
	out, err := telemetry.NewOutput(dir)
	if err != nil {
		t.Fatalf("NewOutput() failed: %v", err)
	}

	r := NewRunner(classicEngine(t), Options{Window: 3, Output: out})
	res, err := r.Run(context.Background(), 7)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if err := out.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	back, err := telemetry.ReadSamples(filepath.Join(dir, telemetry.PopulationFile))
	if err != nil {
		t.Fatalf("ReadSamples() failed: %v", err)
	}
	if !reflect.DeepEqual(back, res.Samples) {
		t.Errorf("CSV samples differ from result: %v vs %v", back, res.Samples)
	}
}

func TestBuildEngineFromLayoutFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reef.yaml")
	data := "name: reef\nparams:\n  pred_vitality: 3\n  prey_food_value: 2\n  spawn_rate: 4\nlayout: |\n  O.X\n  .#.\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Scenario = "layout"
	cfg.LayoutFile = path

	e, err := BuildEngine(cfg)
	if err != nil {
		t.Fatalf("BuildEngine() failed: %v", err)
	}
	if e.Height() != 2 || e.Width() != 3 {
		t.Errorf("expected 2x3 ocean, got %dx%d", e.Height(), e.Width())
	}
	if e.Params().PredVitality != 3 {
		t.Errorf("layout params were not applied: %+v", e.Params())
	}
	if got := e.String(); got != "O.X\n.#.\n" {
		t.Errorf("unexpected ocean:\n%s", got)
	}
}

func TestBuildEngineRejectsLayoutParams(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	data := "name: bad\nparams:\n  pred_vitality: 0\nlayout: |\n  O.X\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Scenario = "layout"
	cfg.LayoutFile = path
	if err := cfg.Validate(); err != nil {
		t.Fatalf("configured params should be valid: %v", err)
	}

	if _, err := BuildEngine(cfg); err == nil {
		t.Error("expected error for pred_vitality 0 from the layout file")
	}
}

func TestBuildEngineMissingLayoutFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Scenario = "layout"
	cfg.LayoutFile = filepath.Join(t.TempDir(), "missing.yaml")

	if _, err := BuildEngine(cfg); err == nil {
		t.Error("expected error for missing layout file")
	}
}

func sweepConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.Presets = cfg.Presets[:3]
	return cfg
}

func TestSweepParallelMatchesSerial(t *testing.T) {
	cfg := sweepConfig()

	serial := Sweep(context.Background(), cfg, SweepOptions{Ticks: 20})
	parallel := Sweep(context.Background(), cfg, SweepOptions{Ticks: 20, Parallel: true})

	if len(serial) != len(cfg.Presets) || len(parallel) != len(cfg.Presets) {
		t.Fatalf("expected %d results, got %d and %d", len(cfg.Presets), len(serial), len(parallel))
	}
	for i := range serial {
		if serial[i].Preset.Name != cfg.Presets[i].Name {
			t.Errorf("result %d is %s, want %s", i, serial[i].Preset.Name, cfg.Presets[i].Name)
		}
		if serial[i].Err != nil || parallel[i].Err != nil {
			t.Fatalf("unexpected errors: %v, %v", serial[i].Err, parallel[i].Err)
		}
		if !reflect.DeepEqual(serial[i].Result.Samples, parallel[i].Result.Samples) {
			t.Errorf("preset %s diverged between serial and parallel runs", serial[i].Preset.Name)
		}
	}
}

func TestSweepUsesPresetParams(t *testing.T) {
	cfg := sweepConfig()
	results := Sweep(context.Background(), cfg, SweepOptions{Ticks: 0})

	for _, r := range results {
		if r.Err != nil {
			t.Fatalf("unexpected error: %v", r.Err)
		}
		if len(r.Result.Samples) != 1 {
			t.Errorf("expected only the seeded sample, got %d", len(r.Result.Samples))
		}
	}
}

func TestSweepUnknownScenarioRanksLast(t *testing.T) {
	good := sweepConfig()
	good.Presets = good.Presets[:1]
	ok := Sweep(context.Background(), good, SweepOptions{Ticks: 5})

	bad := good
	bad.Scenario = "volcano"
	failed := Sweep(context.Background(), bad, SweepOptions{Ticks: 5})

	if !errors.Is(failed[0].Err, scenario.ErrUnknownScenario) {
		t.Fatalf("expected ErrUnknownScenario, got %v", failed[0].Err)
	}

	ranked := Ranked([]SweepResult{failed[0], ok[0]})
	if ranked[0].Err != nil {
		t.Error("successful run should rank first")
	}
}

func TestHistoryUnlimited(t *testing.T) {
	h := NewHistory(0)
	for i := 0; i < 10; i++ {
		h.Append(core.Snapshot{Tick: i})
	}
	if h.Len() != 10 || h.Dropped() != 0 {
		t.Errorf("unlimited history lost frames: len %d dropped %d", h.Len(), h.Dropped())
	}

	if _, ok := NewHistory(0).Last(); ok {
		t.Error("empty history should report no last frame")
	}
}
