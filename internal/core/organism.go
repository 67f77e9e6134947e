package core

// Organism is the content of one grid cell.
// The zero value is an empty cell. Energy is only meaningful for
// predators and FoodValue only for prey; obstacles carry no state.
type Organism struct {
	Kind           Kind
	Energy         int
	SpawnCountdown int
	FoodValue      int
}

// Empty returns an empty cell.
func Empty() Organism {
	return Organism{}
}

// NewPrey returns a prey worth foodValue energy when eaten.
func NewPrey(foodValue, spawnCountdown int) Organism {
	return Organism{Kind: KindPrey, FoodValue: foodValue, SpawnCountdown: spawnCountdown}
}

// NewPredator returns a predator with the given energy.
func NewPredator(energy, spawnCountdown int) Organism {
	return Organism{Kind: KindPredator, Energy: energy, SpawnCountdown: spawnCountdown}
}

// NewObstacle returns an immovable obstacle.
func NewObstacle() Organism {
	return Organism{Kind: KindObstacle}
}

// IsEmpty reports whether the cell holds nothing.
func (o Organism) IsEmpty() bool {
	return o.Kind == KindEmpty
}

// IsAnimal reports whether the organism takes a turn during a tick.
func (o Organism) IsAnimal() bool {
	return o.Kind == KindPrey || o.Kind == KindPredator
}

// Age applies one tick of aging: the spawn countdown always drops by one,
// and predators also lose one unit of energy.
func (o *Organism) Age() {
	if !o.IsAnimal() {
		return
	}
	o.SpawnCountdown--
	if o.Kind == KindPredator {
		o.Energy--
	}
}

// Starved reports whether a predator has run out of energy.
func (o Organism) Starved() bool {
	return o.Kind == KindPredator && o.Energy <= 0
}

// ReadyToSpawn reports whether the spawn countdown has elapsed.
func (o Organism) ReadyToSpawn() bool {
	return o.IsAnimal() && o.SpawnCountdown <= 0
}

// Rune returns the glyph used by the text rendering.
func (o Organism) Rune() rune {
	switch o.Kind {
	case KindPrey:
		return 'O'
	case KindPredator:
		return 'X'
	case KindObstacle:
		return '#'
	default:
		return '.'
	}
}
