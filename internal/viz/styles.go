package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ffff")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899")).
			Width(18)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666688")).
			Italic(true).
			MarginTop(1)

	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49"))

	escapedStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88"))
	capturedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff4444"))
	warnStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00"))

	sparkHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	sparkMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	sparkLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

// ProgressBar renders a fixed-width bar for a fraction in [0, 1].
func ProgressBar(frac float64, width int) string {
	filled := int(frac * float64(width))
	filled = min(max(filled, 0), width)
	return sparkHigh.Render(strings.Repeat("█", filled)) + strings.Repeat("░", width-filled)
}

// Sparkline renders values as a one-line bar chart, sampled to width.
// Low values are red, so a radius profile shows the approach in red.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	step := max(len(values)/width, 1)

	var b strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - lo) / rng
		idx := min(max(int(norm*float64(len(chars)-1)), 0), len(chars)-1)
		c := string(chars[idx])
		switch {
		case norm > 0.7:
			b.WriteString(sparkHigh.Render(c))
		case norm > 0.3:
			b.WriteString(sparkMid.Render(c))
		default:
			b.WriteString(sparkLow.Render(c))
		}
	}
	return b.String()
}
