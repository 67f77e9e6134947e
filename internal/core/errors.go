package core

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds is matched by every out-of-range grid access.
var ErrOutOfBounds = errors.New("coordinate out of bounds")

// OutOfBoundsError reports the offending coordinate and the grid size.
type OutOfBoundsError struct {
	Row, Col      int
	Height, Width int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("coordinate (%d,%d) out of bounds for %dx%d grid", e.Row, e.Col, e.Height, e.Width)
}

// Is makes errors.Is(err, ErrOutOfBounds) hold.
func (e *OutOfBoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}

// ParseError describes an invalid glyph in a text grid.
type ParseError struct {
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Message)
}
