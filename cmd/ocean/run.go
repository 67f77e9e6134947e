package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vlfom/predator-prey/internal/scenario"
	"github.com/vlfom/predator-prey/internal/sim"
	"github.com/vlfom/predator-prey/internal/telemetry"
)

var (
	flagScenario   string
	flagTicks      int
	flagPreset     string
	flagCSVDir     string
	flagSave       bool
	flagPrintEvery int
	flagShowGrid   bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one simulation",
	Long: `Run a simulation headless and print a population summary.

Window statistics are logged at debug level and notable moments (crashes,
extinctions, recoveries) at info level. Ctrl+C stops the run early and
still reports what happened so far.

Examples:
  ocean run
  ocean run --scenario random --ticks 5000
  ocean run --preset v6-f7-s8 --save
  ocean run --csv ./out --print-every 100
  ocean run --config ./reef.yaml --show`,
	Run: runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagScenario, "scenario", "", "Scenario ID (default from config)")
	runCmd.Flags().IntVar(&flagTicks, "ticks", 0, "Ticks to run (0 = config value)")
	runCmd.Flags().StringVar(&flagPreset, "preset", "", "Parameter preset name")
	runCmd.Flags().StringVar(&flagCSVDir, "csv", "", "Directory for CSV output")
	runCmd.Flags().BoolVar(&flagSave, "save", false, "Store the run in the database")
	runCmd.Flags().IntVar(&flagPrintEvery, "print-every", 0, "Log populations every n ticks")
	runCmd.Flags().BoolVar(&flagShowGrid, "show", false, "Print the final ocean")
}

func runRun(cmd *cobra.Command, args []string) {
	logger := newLogger()
	cfg := loadConfig()

	if flagScenario != "" {
		if !scenario.Exists(flagScenario) {
			fmt.Fprintf(os.Stderr, "Error: unknown scenario %q\n", flagScenario)
			fmt.Fprintln(os.Stderr, "Run 'ocean list' to see available scenarios.")
			os.Exit(1)
		}
		cfg.Scenario = flagScenario
	}
	if flagPreset != "" {
		if err := cfg.ApplyPreset(flagPreset); err != nil {
			exitErr("%v", err)
		}
	}
	if flagTicks > 0 {
		cfg.Ticks = flagTicks
	}
	validate(cfg)

	e, err := sim.BuildEngine(cfg)
	if err != nil {
		exitErr("%v", err)
	}

	out, err := telemetry.NewOutput(flagCSVDir)
	if err != nil {
		exitErr("%v", err)
	}
	if err := out.WriteConfig(&cfg); err != nil {
		exitErr("writing config: %v", err)
	}

	runner := sim.NewRunner(e, sim.Options{
		Window:      cfg.Telemetry.Window,
		HistorySize: cfg.Telemetry.HistorySize,
		PrintEvery:  flagPrintEvery,
		Output:      out,
		Logger:      logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("run started",
		"scenario", cfg.Scenario,
		"params", e.Params().String(),
		"size", fmt.Sprintf("%dx%d", e.Height(), e.Width()),
		"seed", cfg.Seed,
		"ticks", cfg.Ticks,
	)

	res, runErr := runner.Run(ctx, cfg.Ticks)
	if closeErr := out.Close(); closeErr != nil {
		logger.Error("closing output", "error", closeErr)
	}
	if runErr != nil {
		if !errors.Is(runErr, context.Canceled) {
			exitErr("%v", runErr)
		}
		logger.Warn("run interrupted", "tick", e.TickCount())
	}

	fmt.Println()
	printSummary(res)
	if flagShowGrid {
		fmt.Println()
		fmt.Print(e.String())
	}
	if dir := out.Dir(); dir != "" {
		fmt.Printf("CSV output:  %s\n", dir)
	}

	if flagSave {
		id, err := saveRun(cfg, flagPreset, res)
		if err != nil {
			exitErr("saving run: %v", err)
		}
		fmt.Printf("Saved as run #%d\n", id)
	}
}
