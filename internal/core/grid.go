package core

// Grid is the ocean: a fixed-size rectangle of cells.
// Cells are stored in row-major order: index = row*W + col.
type Grid struct {
	H     int        // Number of rows
	W     int        // Number of columns
	Cells []Organism // Flat array of cells, length H*W
}

// NewGrid creates an empty grid with h rows and w columns.
func NewGrid(h, w int) *Grid {
	return &Grid{
		H:     h,
		W:     w,
		Cells: make([]Organism, h*w),
	}
}

// Height returns the number of rows.
func (g *Grid) Height() int { return g.H }

// Width returns the number of columns.
func (g *Grid) Width() int { return g.W }

func (g *Grid) index(row, col int) int {
	return row*g.W + col
}

// InBounds reports whether (row, col) lies inside the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.H && col >= 0 && col < g.W
}

func (g *Grid) outOfBounds(row, col int) error {
	return &OutOfBoundsError{Row: row, Col: col, Height: g.H, Width: g.W}
}

// Get returns the cell at (row, col).
func (g *Grid) Get(row, col int) (Organism, error) {
	if !g.InBounds(row, col) {
		return Organism{}, g.outOfBounds(row, col)
	}
	return g.Cells[g.index(row, col)], nil
}

// Set replaces the cell at (row, col). Occupancy is not checked.
func (g *Grid) Set(row, col int, o Organism) error {
	if !g.InBounds(row, col) {
		return g.outOfBounds(row, col)
	}
	g.Cells[g.index(row, col)] = o
	return nil
}

// at returns a pointer to the cell at c.
// The caller must have checked InBounds.
func (g *Grid) at(c Coord) *Organism {
	return &g.Cells[g.index(c.Row, c.Col)]
}

// NeighborsInBounds returns the in-bounds neighbours of (row, col) in
// canonical direction order.
func (g *Grid) NeighborsInBounds(row, col int) []Coord {
	out := make([]Coord, 0, len(Directions))
	origin := C(row, col)
	for _, d := range Directions {
		n := origin.Step(d)
		if g.InBounds(n.Row, n.Col) {
			out = append(out, n)
		}
	}
	return out
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Organism, len(g.Cells))
	copy(cells, g.Cells)
	return &Grid{
		H:     g.H,
		W:     g.W,
		Cells: cells,
	}
}

// Equal returns true if two grids have the same dimensions and contents.
func (g *Grid) Equal(other *Grid) bool {
	if g.W != other.W || g.H != other.H {
		return false
	}
	for i, cell := range g.Cells {
		if cell != other.Cells[i] {
			return false
		}
	}
	return true
}

// Counts tallies cells by kind.
type Counts struct {
	Prey      int
	Predators int
	Obstacles int
	Empty     int
}

// Total returns the number of cells counted.
func (c Counts) Total() int {
	return c.Prey + c.Predators + c.Obstacles + c.Empty
}

// Counts scans the grid and tallies each kind.
func (g *Grid) Counts() Counts {
	var c Counts
	for _, cell := range g.Cells {
		switch cell.Kind {
		case KindPrey:
			c.Prey++
		case KindPredator:
			c.Predators++
		case KindObstacle:
			c.Obstacles++
		default:
			c.Empty++
		}
	}
	return c
}

// Coords returns the coordinates holding the given kind, row-major.
func (g *Grid) Coords(k Kind) []Coord {
	var out []Coord
	for row := 0; row < g.H; row++ {
		for col := 0; col < g.W; col++ {
			if g.Cells[g.index(row, col)].Kind == k {
				out = append(out, C(row, col))
			}
		}
	}
	return out
}
