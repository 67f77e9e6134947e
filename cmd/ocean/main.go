// ocean runs predator/prey simulations on a bounded grid ocean.
//
// Usage:
//
//	ocean list               - List scenarios and parameter presets
//	ocean run                - Run one simulation and print its summary
//	ocean sweep              - Run every preset and rank them
//	ocean view               - Step through an ocean interactively
//	ocean runs               - Show stored runs
//	ocean serve              - Start SSH server for remote viewing
//
// Global flags:
//
//	--config <path>     - Configuration file (default: search ~/.ocean, ./configs)
//	--seed <value>      - Override the configured RNG seed
//	--db <path>         - Set database path (default: ~/.ocean/runs.db)
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ocean",
	Short: "Ocean - predator/prey simulation in your terminal",
	Long: `Ocean simulates prey and predators on a grid. Prey breed, predators
hunt and starve, and obstacles stay put. Runs are deterministic for a
given seed.

Available commands:
  list     - Show scenarios and parameter presets
  run      - Run one simulation
  sweep    - Run every preset and rank the results
  view     - Step through an ocean tick by tick
  runs     - Show stored runs
  serve    - Start SSH server for remote viewing

Examples:
  ocean list
  ocean run --ticks 500 --csv ./out
  ocean run --preset v6-f7-s8 --save
  ocean sweep --parallel
  ocean view --plain
  ocean serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = use config seed)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.ocean/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(serveCmd)
}
