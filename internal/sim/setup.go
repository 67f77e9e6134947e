package sim

import (
	"github.com/vlfom/predator-prey/internal/config"
	"github.com/vlfom/predator-prey/internal/core"
	"github.com/vlfom/predator-prey/internal/scenario"
)

// Settings translates a configuration into scenario settings, reading the
// layout file if one is configured.
func Settings(cfg config.Config) (scenario.Settings, error) {
	s := scenario.Settings{
		Height: cfg.Grid.Height,
		Width:  cfg.Grid.Width,
		Params: cfg.Params.Core(),
		Seed:   cfg.Seed,
		Densities: scenario.Densities{
			Prey:     cfg.Random.PreyDensity,
			Predator: cfg.Random.PredatorDensity,
			Obstacle: cfg.Random.ObstacleDensity,
		},
		Layout: cfg.Layout,
	}

	if cfg.LayoutFile != "" {
		lf, err := scenario.LoadLayoutFile(cfg.LayoutFile)
		if err != nil {
			return scenario.Settings{}, err
		}
		lf.Apply(&s)
	}
	return s, nil
}

// BuildEngine builds the configured scenario.
func BuildEngine(cfg config.Config) (*core.Engine, error) {
	s, err := Settings(cfg)
	if err != nil {
		return nil, err
	}
	return scenario.Build(cfg.Scenario, s)
}
