package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/vlfom/predator-prey/internal/config"
	"github.com/vlfom/predator-prey/internal/sim"
)

func plainRunner(t *testing.T, preTicks int) (*sim.Runner, sim.Result) {
	t.Helper()
	e, err := sim.BuildEngine(config.DefaultConfig())
	if err != nil {
		t.Fatalf("BuildEngine() failed: %v", err)
	}
	runner := sim.NewRunner(e, sim.Options{Window: 5, KeepHistory: true})
	res, err := runner.Run(context.Background(), preTicks)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	return runner, res
}

func TestStepPlainReplaysThenExtends(t *testing.T) {
	runner, res := plainRunner(t, 1)

	var out bytes.Buffer
	res = stepPlain(strings.NewReader("y\ny\nn\n"), &out, runner, res, 0)

	if got := strings.Count(out.String(), "Show next step? (y/n)"); got != 3 {
		t.Errorf("expected 3 prompts, got %d", got)
	}
	for _, tick := range []string{"Tick 0 ", "Tick 1 ", "Tick 2 "} {
		if !strings.Contains(out.String(), tick) {
			t.Errorf("output missing %q", tick)
		}
	}
	if runner.Engine().TickCount() != 2 {
		t.Errorf("expected the engine at tick 2, got %d", runner.Engine().TickCount())
	}
	if len(res.Samples) != 3 {
		t.Errorf("expected 3 samples, got %d", len(res.Samples))
	}
}

func TestStepPlainStopsAtLimit(t *testing.T) {
	runner, res := plainRunner(t, 0)

	var out bytes.Buffer
	stepPlain(strings.NewReader("y\ny\ny\ny\n"), &out, runner, res, 2)

	if !strings.Contains(out.String(), "Reached the tick limit.") {
		t.Error("expected the tick limit message")
	}
	if runner.Engine().TickCount() != 2 {
		t.Errorf("engine should stop at tick 2, got %d", runner.Engine().TickCount())
	}
}

func TestStepPlainEndOfInput(t *testing.T) {
	runner, res := plainRunner(t, 0)

	var out bytes.Buffer
	stepPlain(strings.NewReader(""), &out, runner, res, 0)

	if runner.Engine().TickCount() != 0 {
		t.Error("closed input should stop without ticking")
	}
	if !strings.Contains(out.String(), "Tick 0 ") {
		t.Error("the seeded ocean should still be shown")
	}
}
