package scenario

import (
	"fmt"

	"github.com/vlfom/predator-prey/internal/core"
)

const (
	predatorBlock  = 6 // Side of the predator square around the centre
	classicMinSide = 4
)

func init() {
	Register("classic", func() Scenario { return classic{} })
}

// classic is the hand-made starting ocean: a block of predators in the
// middle, two rings of prey along the edges and one obstacle in the centre.
type classic struct{}

func (classic) ID() string    { return "classic" }
func (classic) Title() string { return "Classic ocean" }

func (classic) Build(s Settings) (*core.Engine, error) {
	if s.Height < classicMinSide || s.Width < classicMinSide {
		return nil, fmt.Errorf("classic ocean needs at least %dx%d, got %dx%d",
			classicMinSide, classicMinSide, s.Height, s.Width)
	}
	e := core.NewEngine(s.Height, s.Width, s.Params, s.Seed)
	if err := SeedClassic(e); err != nil {
		return nil, err
	}
	return e, nil
}

// SeedClassic places the classic layout on e. Later placements overwrite
// earlier ones: predators first, then the prey rings, then the obstacle.
func SeedClassic(e *core.Engine) error {
	h, w := e.Height(), e.Width()
	p := e.Params()

	for i := 0; i < predatorBlock; i++ {
		for j := 0; j < predatorBlock; j++ {
			row, col := h/2-2+i, w/2-2+j
			if row < 0 || row >= h || col < 0 || col >= w {
				continue
			}
			if err := e.Set(row, col, p.NewPredator()); err != nil {
				return err
			}
		}
	}

	edgeRows := []int{0, 1, h - 2, h - 1}
	for _, row := range edgeRows {
		for col := 0; col < w; col++ {
			if err := e.Set(row, col, p.NewPrey()); err != nil {
				return err
			}
		}
	}
	edgeCols := []int{0, 1, w - 2, w - 1}
	for _, col := range edgeCols {
		for row := 0; row < h; row++ {
			if err := e.Set(row, col, p.NewPrey()); err != nil {
				return err
			}
		}
	}

	return e.Set(h/2, w/2, core.NewObstacle())
}
