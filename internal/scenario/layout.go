package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vlfom/predator-prey/internal/core"
)

func init() {
	Register("layout", func() Scenario { return layout{} })
}

// layout builds an ocean from a drawn text grid. The grid's size wins over
// the configured height and width.
type layout struct{}

func (layout) ID() string    { return "layout" }
func (layout) Title() string { return "Drawn layout" }

func (layout) Build(s Settings) (*core.Engine, error) {
	if s.Layout == "" {
		return nil, fmt.Errorf("no layout given")
	}
	g, err := core.ParseGrid(s.Layout, s.Params)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	e := core.NewEngine(g.H, g.W, s.Params, s.Seed)
	if err := e.Load(g); err != nil {
		return nil, err
	}
	return e, nil
}

// LayoutFile represents the YAML structure for a layout file.
type LayoutFile struct {
	Name   string        `yaml:"name"`
	Params *LayoutParams `yaml:"params,omitempty"`
	Layout string        `yaml:"layout"`
}

// LayoutParams overrides the configured parameters. Fields left out of
// the file keep their configured values.
type LayoutParams struct {
	PredVitality  *int `yaml:"pred_vitality"`
	PreyFoodValue *int `yaml:"prey_food_value"`
	SpawnRate     *int `yaml:"spawn_rate"`
}

// ParseLayoutYAML parses a layout file.
func ParseLayoutYAML(data []byte) (LayoutFile, error) {
	var lf LayoutFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return LayoutFile{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if lf.Layout == "" {
		return LayoutFile{}, fmt.Errorf("layout file %q has no layout", lf.Name)
	}
	return lf, nil
}

// LoadLayoutFile reads and parses a layout file from disk.
func LoadLayoutFile(path string) (LayoutFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LayoutFile{}, fmt.Errorf("read layout %s: %w", path, err)
	}
	lf, err := ParseLayoutYAML(data)
	if err != nil {
		return LayoutFile{}, fmt.Errorf("parse layout %s: %w", path, err)
	}
	return lf, nil
}

// Apply copies the file's layout and parameter overrides into s.
func (lf LayoutFile) Apply(s *Settings) {
	s.Layout = lf.Layout
	if lf.Params == nil {
		return
	}
	if v := lf.Params.PredVitality; v != nil {
		s.Params.PredVitality = *v
	}
	if v := lf.Params.PreyFoodValue; v != nil {
		s.Params.PreyFoodValue = *v
	}
	if v := lf.Params.SpawnRate; v != nil {
		s.Params.SpawnRate = *v
	}
}
