package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/solverview/internal/hands"
	"github.com/lox/solverview/internal/report"
)

const cellWidth = 5

// RenderMatrix draws a 13x13 hand matrix with each cell coloured by its
// dominant action, followed by a legend. A nil renderer uses the default
// lipgloss renderer.
func RenderMatrix(r *lipgloss.Renderer, hm report.HandMatrix) string {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	if !hm.HasStrategy {
		return r.NewStyle().Inherit(InfoStyle).Render("No strategy data at this node")
	}

	grid := hm.MatrixGrid
	var b strings.Builder
	for row := 0; row < hands.Size; row++ {
		cells := make([]string, hands.Size)
		for col := 0; col < hands.Size; col++ {
			cell := grid.At(row, col)
			style := r.NewStyle().Width(cellWidth)
			if idx := slices.Index(grid.Actions, cell.Action); idx >= 0 {
				style = style.Foreground(lipgloss.Color("#000000")).Background(ActionColor(idx))
			} else {
				style = style.Foreground(blurredBorder)
			}
			cells[col] = style.Render(cell.Hand)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}

	legend := make([]string, 0, len(grid.Actions))
	for i, action := range grid.Actions {
		swatch := r.NewStyle().Background(ActionColor(i)).Render("  ")
		legend = append(legend, fmt.Sprintf("%s %s", swatch, action))
	}
	b.WriteString(strings.Join(legend, "   "))
	return b.String()
}
