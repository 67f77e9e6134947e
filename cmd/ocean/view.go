package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vlfom/predator-prey/internal/platform/tui"
	"github.com/vlfom/predator-prey/internal/sim"
)

var (
	flagViewTicks  int
	flagViewPreset string
	flagViewPlain  bool
	flagViewSave   bool
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Step through an ocean tick by tick",
	Long: `Open an interactive viewer on the configured ocean.

The first --ticks ticks are simulated up front; stepping past the newest
frame keeps simulating until the configured tick limit.

Controls:
  Right/Y    - Next tick
  Left/H     - Previous tick
  Space/P    - Play/pause
  G / Shift+G - First/last frame
  +/-        - Faster/slower
  ?          - Toggle help
  Q/N        - Quit

With --plain the ocean is printed to stdout and you answer y/n after every
tick instead.

Examples:
  ocean view
  ocean view --preset v8-f8-s12 --ticks 200
  ocean view --plain`,
	Run: runView,
}

func init() {
	viewCmd.Flags().IntVar(&flagViewTicks, "ticks", 0, "Ticks to simulate before opening the viewer")
	viewCmd.Flags().StringVar(&flagViewPreset, "preset", "", "Parameter preset name")
	viewCmd.Flags().BoolVar(&flagViewPlain, "plain", false, "Plain y/n stepping on stdout")
	viewCmd.Flags().BoolVar(&flagViewSave, "save", false, "Store the viewed run in the database")
}

func runView(cmd *cobra.Command, args []string) {
	logger := newLogger()
	cfg := loadConfig()
	if flagViewPreset != "" {
		if err := cfg.ApplyPreset(flagViewPreset); err != nil {
			exitErr("%v", err)
		}
	}
	validate(cfg)

	e, err := sim.BuildEngine(cfg)
	if err != nil {
		exitErr("%v", err)
	}

	// Warn early if the ocean will not fit
	if w, _, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil && w < e.Width() {
		logger.Warn("ocean is wider than the terminal", "width", e.Width(), "terminal", w)
	}

	runner := sim.NewRunner(e, sim.Options{
		Window:       cfg.Telemetry.Window,
		HistorySize:  cfg.Telemetry.HistorySize,
		KeepHistory:  true,
		HistoryLimit: cfg.Viewer.HistoryLimit,
	})
	res, err := runner.Run(context.Background(), flagViewTicks)
	if err != nil {
		exitErr("%v", err)
	}

	if flagViewPlain {
		res = stepPlain(os.Stdin, os.Stdout, runner, res, cfg.Ticks)
	} else {
		final, err := tui.RunViewer(runner, res, tui.ViewerOptions{
			Title:    fmt.Sprintf("OCEAN - %s (%s)", cfg.Scenario, e.Params()),
			TickRate: cfg.Viewer.TickRate,
			MaxTicks: cfg.Ticks,
		})
		if err != nil {
			exitErr("running viewer: %v", err)
		}
		res = final.Result()
	}
	runner.Finish(&res)

	if flagViewSave {
		id, err := saveRun(cfg, flagViewPreset, res)
		if err != nil {
			exitErr("saving run: %v", err)
		}
		fmt.Printf("Saved as run #%d\n", id)
	}
}

// stepPlain prints each frame and asks whether to continue. Frames already
// in the history are replayed before the engine is advanced.
func stepPlain(in io.Reader, out io.Writer, runner *sim.Runner, res sim.Result, maxTicks int) sim.Result {
	h := runner.History()
	scanner := bufio.NewScanner(in)

	for i := 0; ; i++ {
		if i >= h.Len() {
			if maxTicks > 0 && runner.Engine().TickCount() >= maxTicks {
				fmt.Fprintln(out, "Reached the tick limit.")
				return res
			}
			if err := runner.Step(&res); err != nil {
				fmt.Fprintf(out, "Error: %v\n", err)
				return res
			}
			i = h.Len() - 1
		}

		frame := h.At(i)
		fmt.Fprintf(out, "Tick %d  prey %d  predators %d\n", frame.Tick, frame.Counts.Prey, frame.Counts.Predators)
		fmt.Fprint(out, frame.Text)
		fmt.Fprint(out, "Show next step? (y/n) ")

		if !scanner.Scan() {
			fmt.Fprintln(out)
			return res
		}
		if answer := strings.TrimSpace(strings.ToLower(scanner.Text())); answer != "y" && answer != "yes" {
			return res
		}
	}
}
