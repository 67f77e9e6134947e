package core

import (
	"fmt"
	"strings"
)

// Render draws the grid as text, one glyph per cell and one line per row:
// '.' empty, 'O' prey, 'X' predator, '#' obstacle.
func Render(g *Grid) string {
	var sb strings.Builder
	sb.Grow((g.W + 1) * g.H)

	for row := 0; row < g.H; row++ {
		for col := 0; col < g.W; col++ {
			sb.WriteRune(g.Cells[g.index(row, col)].Rune())
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// KindForRune maps a rendering glyph back to a kind.
func KindForRune(r rune) (Kind, bool) {
	switch r {
	case '.':
		return KindEmpty, true
	case 'O':
		return KindPrey, true
	case 'X':
		return KindPredator, true
	case '#':
		return KindObstacle, true
	default:
		return KindEmpty, false
	}
}

// ParseGrid reads a grid in the Render format. Prey and predators are
// created as newborns from params. Blank leading and trailing lines are
// ignored; every other line must have the same width.
func ParseGrid(text string, params Params) (*Grid, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	first, last := 0, len(lines)
	for first < last && strings.TrimSpace(lines[first]) == "" {
		first++
	}
	for last > first && strings.TrimSpace(lines[last-1]) == "" {
		last--
	}
	if first == last {
		return nil, &ParseError{Line: 1, Column: 1, Message: "empty grid"}
	}

	rows := lines[first:last]
	width := len([]rune(strings.TrimSpace(rows[0])))
	g := NewGrid(len(rows), width)

	for i, line := range rows {
		glyphs := []rune(strings.TrimSpace(line))
		if len(glyphs) != width {
			return nil, &ParseError{
				Line:    first + i + 1,
				Column:  1,
				Message: fmt.Sprintf("row has %d cells, expected %d", len(glyphs), width),
			}
		}
		for col, r := range glyphs {
			k, ok := KindForRune(r)
			if !ok {
				return nil, &ParseError{
					Line:    first + i + 1,
					Column:  col + 1,
					Message: fmt.Sprintf("unknown glyph %q", r),
				}
			}
			switch k {
			case KindObstacle:
				g.Cells[g.index(i, col)] = NewObstacle()
			default:
				g.Cells[g.index(i, col)] = params.Newborn(k)
			}
		}
	}

	return g, nil
}
