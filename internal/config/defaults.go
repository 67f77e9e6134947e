package config

import (
	_ "embed"
)

//go:embed defaults/ocean.yaml
var defaultOceanYAML []byte

// goodConfigurations are the (vitality, food, spawn) triples that sustain
// both species on the classic ocean.
var goodConfigurations = []ParamsConfig{
	{4, 12, 13},
	{5, 3, 14},
	{5, 11, 12},
	{6, 3, 12},
	{6, 7, 8},
	{8, 5, 13},
	{8, 8, 12},
	{9, 2, 11},
	{10, 14, 12},
	{11, 8, 10},
	{13, 6, 11},
}

// DefaultConfig returns the built-in configuration.
// It matches the embedded defaults/ocean.yaml.
func DefaultConfig() Config {
	presets := make([]Preset, len(goodConfigurations))
	for i, p := range goodConfigurations {
		presets[i] = Preset{Name: PresetName(p), ParamsConfig: p}
	}

	return Config{
		Scenario: "classic",
		Seed:     1337,
		Ticks:    2000,
		Grid: GridConfig{
			Height: 9,
			Width:  9,
		},
		Params: ParamsConfig{
			PredVitality:  5,
			PreyFoodValue: 5,
			SpawnRate:     7,
		},
		Random: RandomConfig{
			PreyDensity:     0.35,
			PredatorDensity: 0.1,
			ObstacleDensity: 0.02,
		},
		Telemetry: TelemetryConfig{
			Window:      50,
			HistorySize: 10,
		},
		Viewer: ViewerConfig{
			TickRate:     8,
			HistoryLimit: 5000,
		},
		Presets: presets,
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultOceanYAML
}
