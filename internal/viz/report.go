package viz

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/lightpath/internal/config"
	"github.com/san-kum/lightpath/internal/sim"
)

// TerminationStyle colours a termination by outcome.
func TerminationStyle(t sim.Termination) lipgloss.Style {
	switch {
	case t == sim.Escaped:
		return escapedStyle
	case t.Captured():
		return capturedStyle
	default:
		return warnStyle
	}
}

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value) + "\n"
}

// RenderSummary renders a run as a bordered panel.
func RenderSummary(cfg *config.Config, res *sim.Result) string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(strings.ToUpper(cfg.Regime)+" · "+cfg.Integrator) + "\n")
	s.WriteString(labelStyle.Render("termination") + TerminationStyle(res.Termination).Render(res.Termination.String()) + "\n")
	s.WriteString(row("steps", fmt.Sprintf("%d / %d", res.Steps, cfg.MaxSteps)))
	s.WriteString(row("mass, spin", fmt.Sprintf("%g, %g", cfg.Mass, cfg.Spin)))
	s.WriteString(row("closest approach", fmt.Sprintf("%.4f", res.ClosestApproach)))
	s.WriteString(row("final (x, y)", fmt.Sprintf("(%.3f, %.3f)", res.Final.X, res.Final.Y)))
	s.WriteString(row("final r", fmt.Sprintf("%.4f", res.Final.R)))

	names := make([]string, 0, len(res.Metrics))
	for k := range res.Metrics {
		names = append(names, k)
	}
	slices.Sort(names)
	for _, k := range names {
		s.WriteString(row(k, fmt.Sprintf("%.6g", res.Metrics[k])))
	}

	if len(res.Samples) > 1 {
		s.WriteString("\n" + labelStyle.Render("radius") + Sparkline(res.Radii(), 40))
	}

	return panelStyle.Render(s.String())
}
