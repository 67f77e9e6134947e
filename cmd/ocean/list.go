package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vlfom/predator-prey/internal/scenario"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List scenarios and parameter presets",
	Long:  `Shows every registered scenario and the presets from the configuration.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	scenarios := scenario.List()

	fmt.Println("Scenarios:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, s := range scenarios {
		if len(s.ID) > maxIDLen {
			maxIDLen = len(s.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, s := range scenarios {
		fmt.Printf("  %-*s  %s\n", maxIDLen, s.ID, s.Title)
	}

	cfg := loadConfig()

	fmt.Println()
	fmt.Println("Presets:")
	fmt.Println()

	if len(cfg.Presets) == 0 {
		fmt.Println("  No presets configured.")
		return
	}

	fmt.Printf("  %-12s  %8s  %4s  %5s\n", "Name", "Vitality", "Food", "Spawn")
	fmt.Printf("  %-12s  %8s  %4s  %5s\n", "----", "--------", "----", "-----")
	for _, p := range cfg.Presets {
		fmt.Printf("  %-12s  %8d  %4d  %5d\n", p.Name, p.PredVitality, p.PreyFoodValue, p.SpawnRate)
	}

	fmt.Println()
	fmt.Println("Run 'ocean run --preset <name>' to use a preset.")
}
