package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vlfom/predator-prey/internal/config"
	"github.com/vlfom/predator-prey/internal/sim"
	"github.com/vlfom/predator-prey/internal/storage"
)

// exitErr prints an error and exits like every other command failure.
func exitErr(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// newLogger builds the command logger at the requested level.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "ocean",
	})

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// loadConfig loads the configuration and applies the global overrides.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		exitErr("loading config: %v", err)
	}
	if flagSeed != 0 {
		cfg.Seed = flagSeed
	}
	return cfg
}

// validate exits when cfg is unusable, listing every problem.
func validate(cfg config.Config) {
	if err := cfg.Validate(); err != nil {
		exitErr("invalid configuration:\n%v", err)
	}
}

// runRecord describes a finished run for storage.
func runRecord(cfg config.Config, preset string, res sim.Result) storage.Run {
	s := res.Summary
	return storage.Run{
		Scenario:      cfg.Scenario,
		Preset:        preset,
		Seed:          cfg.Seed,
		Height:        res.Height,
		Width:         res.Width,
		PredVitality:  res.Params.PredVitality,
		PreyFoodValue: res.Params.PreyFoodValue,
		SpawnRate:     res.Params.SpawnRate,
		Ticks:         s.Ticks,
		FinalPrey:     res.Final.Prey,
		FinalPred:     res.Final.Predators,
		PreyExtinctAt: s.PreyExtinctAt,
		PredExtinctAt: s.PredExtinctAt,
		Score:         s.Score(),
	}
}

// saveRun stores a run and its samples, returning the new ID.
func saveRun(cfg config.Config, preset string, res sim.Result) (int64, error) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return 0, err
	}
	defer store.Close()

	return store.SaveRun(runRecord(cfg, preset, res), res.Samples)
}

// printSummary writes the outcome of one run.
func printSummary(res sim.Result) {
	s := res.Summary
	fmt.Printf("Ticks:       %d\n", s.Ticks)
	fmt.Printf("Prey:        %d (mean %.1f, std %.1f, range %d-%d)\n",
		res.Final.Prey, s.PreyMean, s.PreyStdDev, s.PreyMin, s.PreyMax)
	fmt.Printf("Predators:   %d (mean %.1f, std %.1f, range %d-%d)\n",
		res.Final.Predators, s.PredMean, s.PredStdDev, s.PredMin, s.PredMax)
	fmt.Printf("Prey extinct:      %s\n", tickOrNever(s.PreyExtinctAt))
	fmt.Printf("Predators extinct: %s\n", tickOrNever(s.PredExtinctAt))
	fmt.Printf("Score:       %.3f\n", s.Score())
}

func tickOrNever(t int) string {
	if t < 0 {
		return "never"
	}
	return fmt.Sprintf("tick %d", t)
}
