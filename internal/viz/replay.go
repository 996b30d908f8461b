package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/lightpath/internal/sim"
)

const (
	canvasWidth  = 60
	canvasHeight = 22
	frameRate    = time.Second / 30
	targetFrames = 300
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameRate, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Replay animates a finished run. The horizon and photon sphere are drawn
// as rings when their radii are positive.
type Replay struct {
	title        string
	res          *sim.Result
	horizon      float64
	photonSphere float64

	canvas  *Canvas
	view    Viewport
	head    int
	speed   int
	running bool
}

func NewReplay(title string, res *sim.Result, horizon, photonSphere float64) Replay {
	c := NewCanvas(canvasWidth, canvasHeight)
	return Replay{
		title:        title,
		res:          res,
		horizon:      horizon,
		photonSphere: photonSphere,
		canvas:       c,
		view:         Fit(c, res.Samples, max(horizon, photonSphere)),
		speed:        max(len(res.Samples)/targetFrames, 1),
		running:      true,
	}
}

func (m Replay) Init() tea.Cmd { return tick() }

func (m Replay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.head = 0
			m.running = true
		case "[":
			m.running = false
			m.seek(-m.speed)
		case "]":
			m.running = false
			m.seek(m.speed)
		case "+", "=":
			m.speed *= 2
		case "-", "_":
			m.speed = max(m.speed/2, 1)
		}
	case tickMsg:
		if m.running {
			m.seek(m.speed)
			if m.head == m.last() {
				m.running = false
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m *Replay) last() int { return max(len(m.res.Samples)-1, 0) }

func (m *Replay) seek(delta int) {
	m.head = min(max(m.head+delta, 0), m.last())
}

// Head is the index of the sample currently shown.
func (m Replay) Head() int { return m.head }

func (m Replay) Running() bool { return m.running }

func (m Replay) View() string {
	m.canvas.Clear()
	m.canvas.Circle(m.view, m.horizon)
	m.canvas.Circle(m.view, m.photonSphere)

	shown := m.res.Samples
	if len(shown) > 0 {
		shown = shown[:m.head+1]
	}
	m.canvas.DrawPath(m.view, shown)

	var s strings.Builder
	s.WriteString(titleStyle.Render(m.title) + "\n")

	status, style := "PLAYING", valueStyle
	switch {
	case m.head == m.last():
		status, style = m.res.Termination.String(), TerminationStyle(m.res.Termination)
	case !m.running:
		status, style = "PAUSED", warnStyle
	}
	s.WriteString(labelStyle.Render("status") + style.Render(status) + "\n")

	if len(shown) > 0 {
		cur := shown[len(shown)-1]
		s.WriteString(row("t", fmt.Sprintf("%.3f", cur.T)))
		s.WriteString(row("r", fmt.Sprintf("%.4f", cur.R)))
		s.WriteString(row("sample", fmt.Sprintf("%d / %d", m.head, m.last())))
	}
	s.WriteString(row("speed", fmt.Sprintf("%dx", m.speed)))

	frac := 1.0
	if m.last() > 0 {
		frac = float64(m.head) / float64(m.last())
	}
	s.WriteString(ProgressBar(frac, 30) + "\n\n")

	if len(shown) > 1 {
		radii := make([]float64, len(shown))
		for i, p := range shown {
			radii[i] = p.R
		}
		chart := asciigraph.Plot(radii, asciigraph.Height(6), asciigraph.Width(30), asciigraph.Caption("radius"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString(hintStyle.Render("space pause · [ ] scrub · +/- speed · r restart · q quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(m.canvas.String()),
		panelStyle.Render(s.String()),
	)
}
