// Package tui is the interactive terminal front end: a Bubble Tea replay
// viewer that scrubs through a recorded rollout while drawing the kinematic
// chain and per-coordinate charts.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/multibody/internal/dynamics"
	"github.com/san-kum/multibody/internal/scalar"
	"github.com/san-kum/multibody/internal/viz"
)

const (
	canvasWidth  = 70
	canvasHeight = 22
	chartWidth   = 36
	chartHeight  = 4
	historyLen   = 300
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(16*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model replays one rollout against its finalized tree.
type Model struct {
	tree      *dynamics.Tree
	result    *dynamics.Result
	mechanism string
	link      r3.Vec

	state   *dynamics.State
	canvas  *viz.Canvas
	camera  *viz.Camera
	frame   int
	step    int
	playing bool

	width, height int
}

// NewModel builds a replay viewer. The tree must be the one the rollout
// ran against; link sets the drawn length of each body.
func NewModel(tree *dynamics.Tree, result *dynamics.Result, mechanism string) (Model, error) {
	state, err := tree.NewState()
	if err != nil {
		return Model{}, err
	}
	// Aim the stepping at roughly real time for a 16ms frame.
	step := 1
	if len(result.Times) > 1 {
		dt := result.Times[1] - result.Times[0]
		if dt > 0 {
			step = int(0.016 / dt)
		}
		if step < 1 {
			step = 1
		}
	}
	return Model{
		tree:      tree,
		result:    result,
		mechanism: mechanism,
		link:      r3.Vec{Y: -1},
		state:     state,
		canvas:    viz.NewCanvas(canvasWidth, canvasHeight),
		camera:    viz.NewCamera(),
		step:      step,
		playing:   true,
	}, nil
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.playing && len(m.result.Times) > 0 {
			m.frame += m.step
			if m.frame >= len(m.result.Times) {
				m.frame = len(m.result.Times) - 1
				m.playing = false
			}
		}
		return m, tick()
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.playing = !m.playing
	case "r":
		m.frame = 0
		m.playing = true
	case "[":
		m.playing = false
		m.frame -= m.step
		if m.frame < 0 {
			m.frame = 0
		}
	case "]":
		m.playing = false
		m.frame += m.step
		if m.frame >= len(m.result.Times) {
			m.frame = len(m.result.Times) - 1
		}
	case "up":
		m.camera.RotateX(0.1)
	case "down":
		m.camera.RotateX(-0.1)
	case "left":
		m.camera.RotateY(-0.1)
	case "right":
		m.camera.RotateY(0.1)
	case "+", "=":
		m.camera.ZoomIn()
	case "-":
		m.camera.ZoomOut()
	}
	return m, nil
}

// Frame reports the current replay index.
func (m Model) Frame() int { return m.frame }

// Playing reports whether the replay is advancing.
func (m Model) Playing() bool { return m.playing }

func (m *Model) applyFrame() {
	if m.frame >= len(m.result.Positions) {
		return
	}
	for i, q := range m.result.Positions[m.frame] {
		m.state.SetPosition(i, scalar.Float(q))
	}
	for i, v := range m.result.Velocities[m.frame] {
		m.state.SetVelocity(i, scalar.Float(v))
	}
}

func (m Model) View() string {
	if len(m.result.Times) == 0 {
		return "empty rollout\n"
	}
	m.applyFrame()

	m.canvas.Clear()
	points, err := viz.ChainPoints(m.tree, m.state, m.link)
	if err != nil {
		return errStyle.Render(err.Error()) + "\n"
	}
	viz.Render(m.canvas, viz.ChainWireframe(points), m.camera)

	var sb strings.Builder
	sb.WriteString(headerStyle.Render(m.mechanism))
	if !m.playing {
		sb.WriteString("  " + pausedStyle.Render("paused"))
	}
	sb.WriteByte('\n')
	sb.WriteString(m.canvas.String())
	sb.WriteString(m.statsView())
	sb.WriteString(m.chartView())
	sb.WriteString(helpStyle.Render("space pause · r reset · [ ] scrub · arrows orbit · +/- zoom · q quit"))
	sb.WriteByte('\n')
	return sb.String()
}

func (m Model) statsView() string {
	var sb strings.Builder
	sb.WriteString(labelStyle.Render("time"))
	sb.WriteString(valueStyle.Render(fmt.Sprintf("%.3f s", m.result.Times[m.frame])))
	sb.WriteByte('\n')
	for _, j := range m.tree.Joints() {
		q, err := j.PositionAt(m.state, 0)
		if err != nil {
			continue // weld; nothing to show
		}
		v, err := j.RateAt(m.state, 0)
		if err != nil {
			continue
		}
		sb.WriteString(labelStyle.Render(j.Name()))
		sb.WriteString(valueStyle.Render(fmt.Sprintf("q=%+.3f  v=%+.3f", q.Float(), v.Float())))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (m Model) chartView() string {
	if len(m.result.Positions) == 0 || len(m.result.Positions[0]) == 0 {
		return ""
	}
	start := m.frame - historyLen
	if start < 0 {
		start = 0
	}
	series := make([]float64, 0, m.frame-start+1)
	for i := start; i <= m.frame; i++ {
		series = append(series, m.result.Positions[i][0])
	}
	return viz.PlotSeries("q0", series, chartWidth, chartHeight)
}

// Run starts the replay viewer and blocks until it exits.
func Run(tree *dynamics.Tree, result *dynamics.Result, mechanism string) error {
	m, err := NewModel(tree, result, mechanism)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
