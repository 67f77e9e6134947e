package core

import "fmt"

// Params are the scenario parameters shared by every organism in a run.
// They are fixed when the engine is created.
type Params struct {
	// PredVitality is the starting energy of a newborn predator.
	PredVitality int
	// PreyFoodValue is the energy a predator gains by eating one prey.
	PreyFoodValue int
	// SpawnRate is the number of ticks between reproduction attempts.
	SpawnRate int
}

// DefaultParams returns the classic ocean parameters.
func DefaultParams() Params {
	return Params{
		PredVitality:  5,
		PreyFoodValue: 5,
		SpawnRate:     7,
	}
}

// NewPrey returns a newborn prey.
func (p Params) NewPrey() Organism {
	return NewPrey(p.PreyFoodValue, p.SpawnRate)
}

// NewPredator returns a newborn predator.
func (p Params) NewPredator() Organism {
	return NewPredator(p.PredVitality, p.SpawnRate)
}

// Newborn returns a newborn of the given kind, or an empty cell for
// kinds that do not reproduce.
func (p Params) Newborn(k Kind) Organism {
	switch k {
	case KindPrey:
		return p.NewPrey()
	case KindPredator:
		return p.NewPredator()
	default:
		return Empty()
	}
}

// Validate checks that the parameters describe a runnable scenario.
func (p Params) Validate() error {
	if p.PredVitality < 1 {
		return fmt.Errorf("pred_vitality must be at least 1, got %d", p.PredVitality)
	}
	if p.PreyFoodValue < 0 {
		return fmt.Errorf("prey_food_value must not be negative, got %d", p.PreyFoodValue)
	}
	if p.SpawnRate < 1 {
		return fmt.Errorf("spawn_rate must be at least 1, got %d", p.SpawnRate)
	}
	return nil
}

func (p Params) String() string {
	return fmt.Sprintf("vitality=%d food=%d spawn=%d", p.PredVitality, p.PreyFoodValue, p.SpawnRate)
}
