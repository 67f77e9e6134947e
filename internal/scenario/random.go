package scenario

import (
	"fmt"

	"github.com/vlfom/predator-prey/internal/core"
)

// densityScale is the resolution of a density roll.
const densityScale = 10000

func init() {
	Register("random", func() Scenario { return random{} })
}

// random scatters organisms independently per cell.
type random struct{}

func (random) ID() string    { return "random" }
func (random) Title() string { return "Random scatter" }

func (random) Build(s Settings) (*core.Engine, error) {
	d := s.Densities
	if d.Prey < 0 || d.Predator < 0 || d.Obstacle < 0 || d.Prey+d.Predator+d.Obstacle > 1 {
		return nil, fmt.Errorf("invalid densities %+v", d)
	}
	if s.Height < 1 || s.Width < 1 {
		return nil, fmt.Errorf("invalid grid size %dx%d", s.Height, s.Width)
	}

	e := core.NewEngine(s.Height, s.Width, s.Params, s.Seed)
	if err := SeedRandom(e, d); err != nil {
		return nil, err
	}
	return e, nil
}

// SeedRandom fills e cell by cell in row-major order, one roll per cell.
func SeedRandom(e *core.Engine, d Densities) error {
	rng := e.Random()
	p := e.Params()

	preyCut := int(d.Prey * densityScale)
	predCut := preyCut + int(d.Predator*densityScale)
	obstacleCut := predCut + int(d.Obstacle*densityScale)

	for row := 0; row < e.Height(); row++ {
		for col := 0; col < e.Width(); col++ {
			var o core.Organism
			switch roll := rng.IntN(densityScale); {
			case roll < preyCut:
				o = p.NewPrey()
			case roll < predCut:
				o = p.NewPredator()
			case roll < obstacleCut:
				o = core.NewObstacle()
			default:
				continue
			}
			if err := e.Set(row, col, o); err != nil {
				return err
			}
		}
	}
	return nil
}
