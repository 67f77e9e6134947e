package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vlfom/predator-prey/internal/sim"
)

var (
	flagSweepTicks    int
	flagSweepParallel bool
	flagSweepSave     bool
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run every preset and rank the results",
	Long: `Run the configured scenario once per preset with the same seed and
grid, then rank the presets by how long both species coexisted and how
steady their populations were.

Examples:
  ocean sweep
  ocean sweep --ticks 500 --parallel
  ocean sweep --seed 7 --save`,
	Run: runSweep,
}

func init() {
	sweepCmd.Flags().IntVar(&flagSweepTicks, "ticks", 0, "Ticks per preset (0 = config value)")
	sweepCmd.Flags().BoolVar(&flagSweepParallel, "parallel", false, "Run presets concurrently")
	sweepCmd.Flags().BoolVar(&flagSweepSave, "save", false, "Store every run in the database")
}

func runSweep(cmd *cobra.Command, args []string) {
	logger := newLogger()
	cfg := loadConfig()
	if flagSweepTicks > 0 {
		cfg.Ticks = flagSweepTicks
	}
	validate(cfg)

	if len(cfg.Presets) == 0 {
		exitErr("no presets configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("sweep started", "presets", len(cfg.Presets), "ticks", cfg.Ticks, "parallel", flagSweepParallel)
	results := sim.Sweep(ctx, cfg, sim.SweepOptions{
		Ticks:    cfg.Ticks,
		Parallel: flagSweepParallel,
		Logger:   logger,
	})

	fmt.Println()
	fmt.Printf("  %-4s  %-12s  %9s  %6s  %6s  %9s  %9s  %8s\n",
		"Rank", "Preset", "Coexisted", "Prey", "Pred", "Prey CV", "Pred CV", "Score")
	fmt.Printf("  %-4s  %-12s  %9s  %6s  %6s  %9s  %9s  %8s\n",
		"----", "------", "---------", "----", "----", "-------", "-------", "-----")

	for i, r := range sim.Ranked(results) {
		if r.Err != nil {
			fmt.Printf("  %-4d  %-12s  error: %v\n", i+1, r.Preset.Name, r.Err)
			continue
		}
		s := r.Result.Summary
		fmt.Printf("  %-4d  %-12s  %9d  %6d  %6d  %9.3f  %9.3f  %8.3f\n",
			i+1, r.Preset.Name, s.Coexisted(), r.Result.Final.Prey, r.Result.Final.Predators,
			s.PreyCV, s.PredCV, s.Score())
	}

	if !flagSweepSave {
		return
	}

	fmt.Println()
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		id, err := saveRun(cfg, r.Preset.Name, r.Result)
		if err != nil {
			exitErr("saving run for %s: %v", r.Preset.Name, err)
		}
		fmt.Printf("Saved %s as run #%d\n", r.Preset.Name, id)
	}
}
