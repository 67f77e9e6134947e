// Package core provides the predator/prey ocean simulation.
// This package is UI-agnostic and deterministic: given the same seed and
// the same initial grid, every tick produces the same grid.
package core

import "fmt"

// Kind identifies what occupies a grid cell.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindPrey
	KindPredator
	KindObstacle
)

// String returns the string representation of a kind.
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindPrey:
		return "prey"
	case KindPredator:
		return "predator"
	case KindObstacle:
		return "obstacle"
	default:
		return "unknown"
	}
}

// Dir is one of the four lattice directions.
type Dir uint8

// Canonical direction order. Direction draws index into this order.
const (
	DirUp Dir = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists all directions in canonical order.
var Directions = [4]Dir{DirUp, DirDown, DirLeft, DirRight}

// String returns the string representation of a direction.
func (d Dir) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	case DirRight:
		return "Right"
	default:
		return "Unknown"
	}
}

// Delta returns the (drow, dcol) offset for one step in this direction.
func (d Dir) Delta() (drow, dcol int) {
	switch d {
	case DirUp:
		return -1, 0
	case DirDown:
		return 1, 0
	case DirLeft:
		return 0, -1
	case DirRight:
		return 0, 1
	default:
		return 0, 0
	}
}

// Coord is a (row, column) grid position.
type Coord struct {
	Row int
	Col int
}

// C is shorthand for Coord{Row: row, Col: col}.
func C(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

// Step returns the coordinate one step away in direction d.
func (c Coord) Step(d Dir) Coord {
	dr, dc := d.Delta()
	return Coord{Row: c.Row + dr, Col: c.Col + dc}
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}
