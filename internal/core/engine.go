package core

import "fmt"

// TickEvents counts what happened during the most recent tick.
type TickEvents struct {
	Moves            int // Animals that moved into a neighbouring cell
	Blocked          int // Animals that stayed put
	PreyEaten        int
	PredatorsStarved int
	PreyBorn         int
	PredatorsBorn    int
	SpawnsFailed     int // Reproduction attempts with no free neighbour
}

// Engine owns the grid, the scenario parameters and the random source,
// and advances the ocean one tick at a time.
type Engine struct {
	grid   *Grid
	params Params
	rng    RandomSource
	tick   int
	events TickEvents
}

// NewEngine creates an engine with an empty height x width grid and its
// own random source seeded with seed.
// Panics if either dimension is not positive.
func NewEngine(height, width int, params Params, seed int64) *Engine {
	return NewEngineWithSource(height, width, params, NewRandomSource(seed))
}

// NewEngineWithSource is like NewEngine but draws randomness from src.
func NewEngineWithSource(height, width int, params Params, src RandomSource) *Engine {
	if height <= 0 || width <= 0 {
		panic(fmt.Sprintf("core: invalid grid size %dx%d", height, width))
	}
	if src == nil {
		panic("core: nil random source")
	}
	return &Engine{
		grid:   NewGrid(height, width),
		params: params,
		rng:    src,
	}
}

// Height returns the number of rows.
func (e *Engine) Height() int { return e.grid.H }

// Width returns the number of columns.
func (e *Engine) Width() int { return e.grid.W }

// Params returns the scenario parameters.
func (e *Engine) Params() Params { return e.params }

// TickCount returns the number of completed ticks.
func (e *Engine) TickCount() int { return e.tick }

// Random returns the engine's random source so seeding code can share
// the same stream.
func (e *Engine) Random() RandomSource { return e.rng }

// LastEvents returns the event counters of the most recent tick.
func (e *Engine) LastEvents() TickEvents { return e.events }

// Grid returns a copy of the current grid.
func (e *Engine) Grid() *Grid { return e.grid.Clone() }

// Get returns the cell at (row, col).
func (e *Engine) Get(row, col int) (Organism, error) {
	return e.grid.Get(row, col)
}

// Set replaces the cell at (row, col).
func (e *Engine) Set(row, col int, o Organism) error {
	return e.grid.Set(row, col, o)
}

// Load replaces the whole grid. The dimensions must match.
func (e *Engine) Load(g *Grid) error {
	if g.H != e.grid.H || g.W != e.grid.W {
		return fmt.Errorf("core: grid is %dx%d, engine expects %dx%d", g.H, g.W, e.grid.H, e.grid.W)
	}
	e.grid = g.Clone()
	return nil
}

// Tick advances the ocean by one step.
//
// Cells are visited row by row. Every animal not already handled this tick
// draws one direction, eats prey there if it is a predator, moves if the
// target is empty, ages, starves, and finally may reproduce into a free
// neighbour. A cell that an animal moved or was born into is not visited
// again in the same tick.
func (e *Engine) Tick() {
	processed := make([]bool, len(e.grid.Cells))
	e.events = TickEvents{}

	for row := 0; row < e.grid.H; row++ {
		for col := 0; col < e.grid.W; col++ {
			idx := e.grid.index(row, col)
			if processed[idx] || !e.grid.Cells[idx].IsAnimal() {
				continue
			}
			e.turn(C(row, col), processed)
		}
	}

	e.tick++
}

// turn resolves one animal's move, aging and reproduction.
func (e *Engine) turn(pos Coord, processed []bool) {
	g := e.grid
	self := g.at(pos)

	target := pos.Step(e.rng.Direction())
	if !g.InBounds(target.Row, target.Col) {
		target = pos
	}
	dest := g.at(target)

	if self.Kind == KindPredator && dest.Kind == KindPrey {
		self.Energy += dest.FoodValue
		*dest = Empty()
		e.events.PreyEaten++
	}

	if target != pos && dest.IsEmpty() {
		*dest = *self
		*self = Empty()
		pos = target
		self = dest
		processed[g.index(pos.Row, pos.Col)] = true
		e.events.Moves++
	} else {
		e.events.Blocked++
	}

	self.Age()

	if self.Starved() {
		*self = Empty()
		e.events.PredatorsStarved++
		return
	}

	if self.ReadyToSpawn() {
		self.SpawnCountdown = e.params.SpawnRate
		e.spawn(pos, self.Kind, processed)
	}
}

// spawn places one newborn of kind k in the first free neighbour of pos,
// trying directions in a freshly shuffled order.
func (e *Engine) spawn(pos Coord, k Kind, processed []bool) {
	g := e.grid
	for _, d := range e.rng.ShuffledDirections() {
		n := pos.Step(d)
		if !g.InBounds(n.Row, n.Col) {
			continue
		}
		cell := g.at(n)
		if !cell.IsEmpty() {
			continue
		}
		*cell = e.params.Newborn(k)
		processed[g.index(n.Row, n.Col)] = true
		if k == KindPrey {
			e.events.PreyBorn++
		} else {
			e.events.PredatorsBorn++
		}
		return
	}
	e.events.SpawnsFailed++
}

// CountSpecies returns the number of prey and predators on the grid.
func (e *Engine) CountSpecies() (prey, predators int) {
	c := e.grid.Counts()
	return c.Prey, c.Predators
}

// Counts tallies every kind on the grid.
func (e *Engine) Counts() Counts {
	return e.grid.Counts()
}

// String renders the grid in the text format.
func (e *Engine) String() string {
	return Render(e.grid)
}

// Snapshot captures the observable state after a tick.
type Snapshot struct {
	Tick   int
	Counts Counts
	Text   string
}

// Snapshot returns the current tick, counts and rendering.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Tick:   e.tick,
		Counts: e.grid.Counts(),
		Text:   Render(e.grid),
	}
}
