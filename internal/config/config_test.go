package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchBuiltin(t *testing.T) {
	cfg, err := parse(DefaultYAML())
	if err != nil {
		t.Fatalf("parse(embedded) failed: %v", err)
	}

	want := DefaultConfig()
	if cfg.Scenario != want.Scenario || cfg.Seed != want.Seed || cfg.Ticks != want.Ticks {
		t.Errorf("run settings differ: got %+v", cfg)
	}
	if cfg.Grid != want.Grid || cfg.Params != want.Params {
		t.Errorf("grid/params differ: got %+v %+v", cfg.Grid, cfg.Params)
	}
	if len(cfg.Presets) != len(want.Presets) {
		t.Fatalf("expected %d presets, got %d", len(want.Presets), len(cfg.Presets))
	}
	for i := range cfg.Presets {
		if cfg.Presets[i] != want.Presets[i] {
			t.Errorf("preset %d: expected %+v, got %+v", i, want.Presets[i], cfg.Presets[i])
		}
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("embedded defaults should validate: %v", err)
	}
}

func TestLoadFileOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ocean.yaml")
	data := []byte("scenario: random\ngrid:\n  height: 20\n  width: 30\nparams:\n  spawn_rate: 3\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}

	if cfg.Scenario != "random" || cfg.Grid.Height != 20 || cfg.Grid.Width != 30 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Params.SpawnRate != 3 {
		t.Errorf("expected spawn_rate 3, got %d", cfg.Params.SpawnRate)
	}
	if cfg.Params.PredVitality != 5 || cfg.Seed != 1337 {
		t.Errorf("missing values should keep defaults, got %+v", cfg)
	}
}

func TestLoadFileRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	data := []byte("grid:\n  height: 0\n  width: 5\nparams:\n  spawn_rate: 0\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	_, err := LoadFile(path)
	if err == nil {
		t.Fatal("expected validation error")
	}

	var ve ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError in chain, got %v", err)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"empty scenario", func(c *Config) { c.Scenario = " " }, "scenario"},
		{"negative ticks", func(c *Config) { c.Ticks = -1 }, "ticks"},
		{"zero vitality", func(c *Config) { c.Params.PredVitality = 0 }, "params"},
		{"dense random", func(c *Config) { c.Random.PreyDensity = 0.95 }, "random"},
		{"zero window", func(c *Config) { c.Telemetry.Window = 0 }, "telemetry.window"},
		{"zero tick rate", func(c *Config) { c.Viewer.TickRate = 0 }, "viewer.tick_rate"},
		{"duplicate preset", func(c *Config) { c.Presets = append(c.Presets, c.Presets[0]) }, "presets[11]"},
	}

	for _, tc := range testCases {
		cfg := DefaultConfig()
		tc.mutate(&cfg)

		err := cfg.Validate()
		var ve ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("%s: expected ValidationError, got %v", tc.name, err)
			continue
		}
		if ve.Field != tc.field {
			t.Errorf("%s: expected field %q, got %q", tc.name, tc.field, ve.Field)
		}
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.ApplyPreset("v6-f7-s8"); err != nil {
		t.Fatalf("ApplyPreset() failed: %v", err)
	}
	if cfg.Params != (ParamsConfig{PredVitality: 6, PreyFoodValue: 7, SpawnRate: 8}) {
		t.Errorf("unexpected params after preset: %+v", cfg.Params)
	}

	if err := cfg.ApplyPreset("missing"); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scenario = "layout"
	cfg.Layout = "O.X\n.#.\n"

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML() failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	var back Config
	if err := yaml.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if back.Layout != cfg.Layout || back.Scenario != "layout" || len(back.Presets) != len(cfg.Presets) {
		t.Errorf("round trip lost data: %+v", back)
	}
}
