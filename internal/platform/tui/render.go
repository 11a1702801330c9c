package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gridwalk/internal/grid"
)

// Each cell renders as two characters so the raster looks roughly
// square in a terminal.
const (
	cellFilled  = "██"
	cellEmpty   = "··"
	cellBlocked = "▒▒"
	cellWalker  = "▐▌"
)

var (
	blockedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	emptyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
	walkerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)

	// Cold-to-hot ramp for visit counts.
	rampColors = []string{"24", "31", "37", "72", "108", "143", "179", "214", "208", "202"}
	rampStyles = buildRamp()
)

func buildRamp() []lipgloss.Style {
	styles := make([]lipgloss.Style, len(rampColors))
	for i, c := range rampColors {
		styles[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	return styles
}

// rampStyle picks the ramp entry for a value given the grid maximum.
func rampStyle(v, max int) lipgloss.Style {
	if max <= 0 {
		max = 1
	}
	idx := (v - 1) * len(rampStyles) / max
	if idx >= len(rampStyles) {
		idx = len(rampStyles) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return rampStyles[idx]
}

// Heatmap renders the grid as a colored terminal raster. Masked cells
// come out dim, untouched cells as faint dots and visited cells on a
// cold-to-hot ramp scaled to the grid maximum. If walker is non-nil
// its cell renders as the walker glyph instead.
func Heatmap(g *grid.Grid, walker *grid.Coord) string {
	max := g.Max()
	var sb strings.Builder
	for row := 0; row < g.H; row++ {
		for col := 0; col < g.W; col++ {
			c := grid.C(row, col)
			switch {
			case walker != nil && *walker == c:
				sb.WriteString(walkerStyle.Render(cellWalker))
			case !g.IsValid(c):
				sb.WriteString(blockedStyle.Render(cellBlocked))
			case g.Get(c) == 0:
				sb.WriteString(emptyStyle.Render(cellEmpty))
			default:
				sb.WriteString(rampStyle(g.Get(c), max).Render(cellFilled))
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Legend returns the ramp legend line shown under heatmaps.
func Legend(max int) string {
	if max <= 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(emptyStyle.Render("1 "))
	for _, s := range rampStyles {
		sb.WriteString(s.Render(cellFilled))
	}
	sb.WriteString(emptyStyle.Render(" " + strconv.Itoa(max)))
	return sb.String()
}
