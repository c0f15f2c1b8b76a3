package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/multibody/internal/dynamics"
)

var (
	plotTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	plotBodyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
)

// PlotSeries renders one named series as an ascii chart.
func PlotSeries(name string, values []float64, width, height int) string {
	if len(values) < 2 {
		return plotTitleStyle.Render(name) + "\n(not enough samples)\n"
	}
	chart := asciigraph.Plot(values,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(name),
	)
	return plotBodyStyle.Render(chart) + "\n"
}

// PlotResult renders every position and velocity coordinate of a rollout,
// one chart per coordinate, plus a metric summary line.
func PlotResult(result *dynamics.Result, width, height int) string {
	var sb strings.Builder

	if len(result.Positions) > 0 {
		for i := range result.Positions[0] {
			series := column(result.Positions, i)
			sb.WriteString(PlotSeries(fmt.Sprintf("q%d", i), series, width, height))
		}
	}
	if len(result.Velocities) > 0 {
		for i := range result.Velocities[0] {
			series := column(result.Velocities, i)
			sb.WriteString(PlotSeries(fmt.Sprintf("v%d", i), series, width, height))
		}
	}

	if len(result.Metrics) > 0 {
		sb.WriteString(plotTitleStyle.Render("metrics"))
		sb.WriteByte('\n')
		for name, val := range result.Metrics {
			sb.WriteString(fmt.Sprintf("  %-16s %.6f\n", name, val))
		}
	}
	return sb.String()
}

func column(rows [][]float64, i int) []float64 {
	out := make([]float64, 0, len(rows))
	for _, row := range rows {
		if i < len(row) {
			out = append(out, row[i])
		}
	}
	return out
}
