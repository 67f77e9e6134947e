package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vlfom/predator-prey/internal/platform/tui"
	"github.com/vlfom/predator-prey/internal/storage"
	"github.com/vlfom/predator-prey/internal/telemetry"
)

var (
	flagRunsLimit  int
	flagRunsBest   bool
	flagRunsBrowse bool
	flagRunsShow   int64
	flagRunsCSV    string
	flagRunsDelete int64
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show stored runs",
	Long: `List runs stored with --save, newest first or best first.

Examples:
  ocean runs
  ocean runs --best --limit 5
  ocean runs --browse
  ocean runs --show 12 --csv ./run12
  ocean runs --delete 12`,
	Run: runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Maximum runs to list")
	runsCmd.Flags().BoolVar(&flagRunsBest, "best", false, "Order by score instead of date")
	runsCmd.Flags().BoolVar(&flagRunsBrowse, "browse", false, "Open the interactive runs board")
	runsCmd.Flags().Int64Var(&flagRunsShow, "show", 0, "Show one run in detail")
	runsCmd.Flags().StringVar(&flagRunsCSV, "csv", "", "With --show, export the population series to this directory")
	runsCmd.Flags().Int64Var(&flagRunsDelete, "delete", 0, "Delete a run")
}

func runRuns(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitErr("opening runs database: %v", err)
	}
	defer store.Close()

	switch {
	case flagRunsBrowse:
		width, height := 80, 24 // Defaults
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if err := tui.RunRunsBoard(store, width, height); err != nil {
			exitErr("running runs board: %v", err)
		}

	case flagRunsDelete != 0:
		if err := store.DeleteRun(flagRunsDelete); err != nil {
			exitErr("%v", err)
		}
		fmt.Printf("Deleted run #%d\n", flagRunsDelete)

	case flagRunsShow != 0:
		showRun(store, flagRunsShow)

	default:
		listRuns(store)
	}
}

func listRuns(store *storage.Store) {
	var runs []storage.Run
	var err error
	if flagRunsBest {
		runs, err = store.BestRuns(flagRunsLimit)
	} else {
		runs, err = store.RecentRuns(flagRunsLimit)
	}
	if err != nil {
		exitErr("retrieving runs: %v", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Use 'ocean run --save' to store one.")
		return
	}

	// Print header
	fmt.Printf("  %-5s  %-8s  %-12s  %6s  %5s  %5s  %8s  %s\n",
		"ID", "Scenario", "Params", "Ticks", "Prey", "Pred", "Score", "Date")
	fmt.Printf("  %-5s  %-8s  %-12s  %6s  %5s  %5s  %8s  %s\n",
		"--", "--------", "------", "-----", "----", "----", "-----", "----")

	for _, r := range runs {
		fmt.Printf("  %-5d  %-8s  %-12s  %6d  %5d  %5d  %8.3f  %s\n",
			r.ID, r.Scenario,
			fmt.Sprintf("v%d-f%d-s%d", r.PredVitality, r.PreyFoodValue, r.SpawnRate),
			r.Ticks, r.FinalPrey, r.FinalPred, r.Score,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func showRun(store *storage.Store, id int64) {
	run, err := store.RunByID(id)
	if err != nil {
		exitErr("%v", err)
	}
	if run == nil {
		exitErr("no run #%d", id)
	}

	samples, err := store.Samples(id)
	if err != nil {
		exitErr("%v", err)
	}
	s := telemetry.Summarize(samples)

	fmt.Printf("Run #%d - %s", run.ID, run.Scenario)
	if run.Preset != "" {
		fmt.Printf(" (%s)", run.Preset)
	}
	fmt.Println()
	fmt.Println()
	fmt.Printf("Ocean:       %dx%d, seed %d\n", run.Height, run.Width, run.Seed)
	fmt.Printf("Params:      vitality %d, food %d, spawn %d\n", run.PredVitality, run.PreyFoodValue, run.SpawnRate)
	fmt.Printf("Ticks:       %d (%d samples)\n", run.Ticks, len(samples))
	fmt.Printf("Prey:        %d (mean %.1f, std %.1f, range %d-%d)\n", run.FinalPrey, s.PreyMean, s.PreyStdDev, s.PreyMin, s.PreyMax)
	fmt.Printf("Predators:   %d (mean %.1f, std %.1f, range %d-%d)\n", run.FinalPred, s.PredMean, s.PredStdDev, s.PredMin, s.PredMax)
	fmt.Printf("Prey extinct:      %s\n", tickOrNever(run.PreyExtinctAt))
	fmt.Printf("Predators extinct: %s\n", tickOrNever(run.PredExtinctAt))
	fmt.Printf("Score:       %.3f\n", run.Score)
	fmt.Printf("Recorded:    %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))

	if flagRunsCSV == "" {
		return
	}

	out, err := telemetry.NewOutput(flagRunsCSV)
	if err != nil {
		exitErr("%v", err)
	}
	for _, smp := range samples {
		if err := out.WriteSample(smp); err != nil {
			out.Close()
			exitErr("%v", err)
		}
	}
	if err := out.Close(); err != nil {
		exitErr("%v", err)
	}
	fmt.Printf("\nPopulation written to %s\n", out.Dir())
}
