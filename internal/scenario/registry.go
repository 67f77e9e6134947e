// Package scenario provides a global registry of ocean seeding scenarios.
// Scenarios register themselves in init() functions, allowing the CLI and
// the viewer to discover and build oceans without hardcoded dependencies.
package scenario

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vlfom/predator-prey/internal/core"
)

// ErrUnknownScenario is returned for IDs that were never registered.
var ErrUnknownScenario = errors.New("scenario: unknown scenario")

// Densities are the probabilities of each kind per cell in a random ocean.
type Densities struct {
	Prey     float64
	Predator float64
	Obstacle float64
}

// Settings describe the ocean a scenario should build.
type Settings struct {
	Height    int
	Width     int
	Params    core.Params
	Seed      int64
	Densities Densities // Used by the random scenario
	Layout    string    // Used by the layout scenario
}

// Scenario builds a seeded engine.
type Scenario interface {
	// ID returns a unique identifier for this scenario (e.g., "classic").
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Build creates an engine and places the initial organisms.
	// Seeding randomness is drawn from the engine's own source.
	Build(s Settings) (*core.Engine, error)
}

// Info contains metadata about a registered scenario.
type Info struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a scenario.
type Factory func() Scenario

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a scenario factory to the registry.
// Panics if a scenario with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("scenario: %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns information about all registered scenarios, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(factories))
	for id := range factories {
		result = append(result, Info{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a scenario by its ID.
func Create(id string) (Scenario, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownScenario, id)
	}

	return f(), nil
}

// Exists checks if a scenario with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// Build looks up a scenario, checks the parameters and builds its engine.
func Build(id string, s Settings) (*core.Engine, error) {
	sc, err := Create(id)
	if err != nil {
		return nil, err
	}
	if err := s.Params.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", id, err)
	}
	e, err := sc.Build(s)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", id, err)
	}
	return e, nil
}
