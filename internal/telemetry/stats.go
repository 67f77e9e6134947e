// Package telemetry records population time series and windowed event
// statistics for ocean runs, detects notable moments, and writes CSV output.
package telemetry

import "github.com/vlfom/predator-prey/internal/core"

// Sample is the population after one tick. Tick 0 is the seeded ocean.
type Sample struct {
	Tick      int `csv:"tick"`
	Prey      int `csv:"prey"`
	Predators int `csv:"predators"`
}

// SampleOf captures the engine's current population.
func SampleOf(e *core.Engine) Sample {
	prey, predators := e.CountSpecies()
	return Sample{Tick: e.TickCount(), Prey: prey, Predators: predators}
}

// WindowStats holds aggregated statistics for a window of ticks.
type WindowStats struct {
	WindowStart int `csv:"window_start"`
	WindowEnd   int `csv:"window_end"`

	// Population counts at window end
	Prey      int `csv:"prey"`
	Predators int `csv:"predators"`

	// Events during window
	PreyBorn         int     `csv:"prey_born"`
	PredatorsBorn    int     `csv:"predators_born"`
	PreyEaten        int     `csv:"prey_eaten"`
	PredatorsStarved int     `csv:"predators_starved"`
	SpawnsFailed     int     `csv:"spawns_failed"`
	Moves            int     `csv:"moves"`
	Blocked          int     `csv:"blocked"`
	MoveRate         float64 `csv:"move_rate"` // moves / turns
}

// KeyVals returns the stats as alternating keys and values for
// structured logging.
func (s WindowStats) KeyVals() []any {
	return []any{
		"window_start", s.WindowStart,
		"window_end", s.WindowEnd,
		"prey", s.Prey,
		"predators", s.Predators,
		"prey_born", s.PreyBorn,
		"predators_born", s.PredatorsBorn,
		"prey_eaten", s.PreyEaten,
		"predators_starved", s.PredatorsStarved,
		"spawns_failed", s.SpawnsFailed,
		"moves", s.Moves,
		"blocked", s.Blocked,
		"move_rate", s.MoveRate,
	}
}
