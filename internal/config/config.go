// Package config provides YAML-based configuration loading for ocean runs:
// grid size, scenario parameters, seeding and telemetry settings, and the
// named parameter presets used by sweeps.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vlfom/predator-prey/internal/core"
)

// ErrUnknownPreset is returned when a preset name is not configured.
var ErrUnknownPreset = errors.New("config: unknown preset")

// Config contains everything needed to set up and run a simulation.
type Config struct {
	Scenario   string          `yaml:"scenario"`              // Registered scenario ID
	Seed       int64           `yaml:"seed"`                  // RNG seed
	Ticks      int             `yaml:"ticks"`                 // Ticks per run
	Grid       GridConfig      `yaml:"grid"`                  // Ignored by layout scenarios
	Params     ParamsConfig    `yaml:"params"`                // Scenario parameters
	Random     RandomConfig    `yaml:"random"`                // Densities for the random scenario
	Layout     string          `yaml:"layout,omitempty"`      // Inline ASCII layout
	LayoutFile string          `yaml:"layout_file,omitempty"` // Path to a layout file
	Telemetry  TelemetryConfig `yaml:"telemetry"`
	Viewer     ViewerConfig    `yaml:"viewer"`
	Presets    []Preset        `yaml:"presets"`
}

// GridConfig defines the ocean dimensions.
type GridConfig struct {
	Height int `yaml:"height"`
	Width  int `yaml:"width"`
}

// ParamsConfig mirrors core.Params in YAML form.
type ParamsConfig struct {
	PredVitality  int `yaml:"pred_vitality"`
	PreyFoodValue int `yaml:"prey_food_value"`
	SpawnRate     int `yaml:"spawn_rate"`
}

// Core converts to the engine's parameter type.
func (p ParamsConfig) Core() core.Params {
	return core.Params{
		PredVitality:  p.PredVitality,
		PreyFoodValue: p.PreyFoodValue,
		SpawnRate:     p.SpawnRate,
	}
}

// RandomConfig defines cell densities for randomly seeded oceans.
type RandomConfig struct {
	PreyDensity     float64 `yaml:"prey_density"`
	PredatorDensity float64 `yaml:"predator_density"`
	ObstacleDensity float64 `yaml:"obstacle_density"`
}

// TelemetryConfig controls population statistics.
type TelemetryConfig struct {
	Window      int `yaml:"window"`       // Ticks per statistics window
	HistorySize int `yaml:"history_size"` // Windows kept for bookmark detection
}

// ViewerConfig controls the interactive history viewer.
type ViewerConfig struct {
	TickRate     int `yaml:"tick_rate"`     // Frames per second while playing
	HistoryLimit int `yaml:"history_limit"` // Frames kept in memory, 0 = unlimited
}

// Preset is a named parameter set.
type Preset struct {
	Name         string `yaml:"name"`
	ParamsConfig `yaml:",inline"`
}

// PresetName builds the conventional name for a parameter triple.
func PresetName(p ParamsConfig) string {
	return fmt.Sprintf("v%d-f%d-s%d", p.PredVitality, p.PreyFoodValue, p.SpawnRate)
}

// Preset looks up a preset by name.
func (c *Config) Preset(name string) (Preset, error) {
	for _, p := range c.Presets {
		if p.Name == name {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w %q", ErrUnknownPreset, name)
}

// ApplyPreset replaces Params with the named preset.
func (c *Config) ApplyPreset(name string) error {
	p, err := c.Preset(name)
	if err != nil {
		return err
	}
	c.Params = p.ParamsConfig
	return nil
}

// ValidationError describes one invalid configuration value.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// Validate checks every field and returns all problems joined together.
func (c *Config) Validate() error {
	var errs []error
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if strings.TrimSpace(c.Scenario) == "" {
		add("scenario", "must not be empty")
	}
	if c.Ticks < 0 {
		add("ticks", "must not be negative, got %d", c.Ticks)
	}
	if c.Grid.Height < 1 || c.Grid.Width < 1 {
		add("grid", "dimensions must be positive, got %dx%d", c.Grid.Height, c.Grid.Width)
	}
	if err := c.Params.Core().Validate(); err != nil {
		add("params", "%v", err)
	}

	density := c.Random.PreyDensity + c.Random.PredatorDensity + c.Random.ObstacleDensity
	if c.Random.PreyDensity < 0 || c.Random.PredatorDensity < 0 || c.Random.ObstacleDensity < 0 {
		add("random", "densities must not be negative")
	} else if density > 1 {
		add("random", "densities sum to %.2f, must be at most 1", density)
	}

	if c.Telemetry.Window < 1 {
		add("telemetry.window", "must be at least 1, got %d", c.Telemetry.Window)
	}
	if c.Viewer.TickRate < 1 {
		add("viewer.tick_rate", "must be at least 1, got %d", c.Viewer.TickRate)
	}

	seen := make(map[string]bool, len(c.Presets))
	for i, p := range c.Presets {
		field := fmt.Sprintf("presets[%d]", i)
		if p.Name == "" {
			add(field, "name must not be empty")
		} else if seen[p.Name] {
			add(field, "duplicate name %q", p.Name)
		}
		seen[p.Name] = true
		if err := p.Core().Validate(); err != nil {
			add(field, "%v", err)
		}
	}

	return errors.Join(errs...)
}
