package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vlfom/predator-prey/internal/core"
)

// kindStyles maps each cell kind to its lipgloss style.
var kindStyles = map[core.Kind]lipgloss.Style{
	core.KindEmpty:    lipgloss.NewStyle().Foreground(lipgloss.Color("24")),
	core.KindPrey:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.KindPredator: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	core.KindObstacle: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderOcean colours a rendered ocean. Rows are joined with newlines and
// unknown glyphs are printed unstyled. Groups adjacent cells of the same
// kind to minimize ANSI escape sequences.
func RenderOcean(text string) string {
	rows := strings.Split(strings.TrimRight(text, "\n"), "\n")

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(len(text) * 4)

	for y, row := range rows {
		if y > 0 {
			sb.WriteRune('\n')
		}

		cells := []rune(row)
		x := 0
		for x < len(cells) {
			startKind, known := core.KindForRune(cells[x])

			// Collect consecutive cells with the same kind
			var run strings.Builder
			for x < len(cells) {
				k, ok := core.KindForRune(cells[x])
				if ok != known || k != startKind {
					break
				}
				run.WriteRune(cells[x])
				x++
			}

			if !known {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(kindStyles[startKind].Render(run.String()))
		}
	}
	return sb.String()
}

// legend renders one styled glyph per kind with its name.
func legend() string {
	kinds := []core.Kind{core.KindPrey, core.KindPredator, core.KindObstacle, core.KindEmpty}
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		glyph := string(core.Organism{Kind: k}.Rune())
		parts[i] = kindStyles[k].Render(glyph) + " " + k.String()
	}
	return strings.Join(parts, "  ")
}
