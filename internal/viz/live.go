package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/arbor/internal/grow"
)

const (
	width        = 64
	height       = 24
	tickInterval = time.Second / 4
	rotateStep   = 0.1
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model animates a tree cycle by cycle. Each frame regrows the tree from
// scratch with the displayed cycle count, so every frame is exactly the tree
// that many cycles would produce.
type Model struct {
	cfg     grow.Config
	title   string
	cycle   int
	tree    *grow.Tree
	stats   *grow.Recorder
	canvas  *Canvas
	camera  *Camera
	running bool
	err     error
}

// NewModel prepares a viewer that grows up to cfg.Cycles cycles.
func NewModel(cfg grow.Config, title string) Model {
	m := Model{
		cfg:     cfg,
		title:   title,
		canvas:  NewCanvas(width, height),
		camera:  NewCamera(),
		running: true,
	}
	m.frame()
	m.regrow()
	return m
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
			if m.running && m.cycle >= m.cfg.Cycles {
				m.cycle = 0
				m.regrow()
			}
		case "r":
			m.cycle = 0
			m.regrow()
		case "n":
			m.cfg.Seed++
			m.cycle = 0
			m.frame()
			m.regrow()
		case "[":
			m.scrub(-1)
		case "]":
			m.scrub(1)
		case "t":
			NextTheme()
		case "x":
			m.camera.RotateX(rotateStep)
		case "X":
			m.camera.RotateX(-rotateStep)
		case "y":
			m.camera.RotateY(rotateStep)
		case "Y":
			m.camera.RotateY(-rotateStep)
		case "z":
			m.camera.RotateZ(rotateStep)
		case "Z":
			m.camera.RotateZ(-rotateStep)
		case "+", "=":
			m.camera.ZoomIn()
		case "-", "_":
			m.camera.ZoomOut()
		}
	case TickMsg:
		if m.running {
			if m.cycle < m.cfg.Cycles {
				m.cycle++
				m.regrow()
			} else {
				m.running = false
			}
		}
		return m, tick()
	}
	return m, nil
}

// scrub pauses and steps the displayed cycle.
func (m *Model) scrub(dir int) {
	m.running = false
	next := max(0, min(m.cfg.Cycles, m.cycle+dir))
	if next != m.cycle {
		m.cycle = next
		m.regrow()
	}
}

// frame fits the camera to the fully grown tree so the view stays put while
// the tree grows into it.
func (m *Model) frame() {
	t, err := grow.New(m.cfg)
	if err != nil {
		m.err = err
		return
	}
	t.StartGrowth()
	m.camera.Frame(TreeWireframe(t.Chains(), t.Leaves()))
}

func (m *Model) regrow() {
	cfg := m.cfg
	cfg.Cycles = m.cycle
	t, err := grow.New(cfg)
	if err != nil {
		m.err = err
		return
	}
	rec := grow.NewRecorder()
	t.AddObserver(rec)
	t.StartGrowth()
	m.tree, m.stats, m.err = t, rec, nil
}

func (m Model) View() string {
	if m.err != nil {
		return fmt.Sprintf("error: %v\n", m.err)
	}

	m.canvas.Clear()
	Render3D(m.canvas, TreeWireframe(m.tree.Chains(), m.tree.Leaves()), m.camera)
	canvasView := canvasStyle.Render(m.canvas.Styled(CurrentTheme.PenStyle))

	var s strings.Builder
	s.WriteString(headerStyle().Render(strings.ToUpper(m.title)) + "\n")
	status := "GROWING"
	switch {
	case !m.running && m.cycle >= m.cfg.Cycles:
		status = "GROWN"
	case !m.running:
		status = "PAUSED"
	}
	s.WriteString(statusStyle(m.running).Render(status) + "\n")

	buds := m.stats.Series(func(cs grow.CycleStats) int { return cs.LiveBuds })
	if len(buds) > 1 {
		chart := asciigraph.Plot(buds, asciigraph.Height(4), asciigraph.Width(28), asciigraph.Caption("live buds"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	row := func(label, value string) {
		s.WriteString(labelStyle().Render(label) + valueStyle().Render(value) + "\n")
	}
	row("Seed", fmt.Sprintf("%d", m.cfg.Seed))
	row("Cycle", fmt.Sprintf("%d / %d", m.cycle, m.cfg.Cycles))
	row("Chains", fmt.Sprintf("%d", len(m.tree.Chains())))
	row("Segments", fmt.Sprintf("%d", m.tree.Segments()))
	row("Leaves", fmt.Sprintf("%d", len(m.tree.Leaves())))
	row("Live buds", fmt.Sprintf("%d", len(m.tree.Buds())))
	row("Theme", CurrentTheme.Name)

	s.WriteString(helpStyle().Render("SP:Pause R:Restart N:New seed\n[ ]:Scrub XYZ:Rotate +-:Zoom\nT:Theme Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle().Render(s.String()))
}

// Choice names one selectable growth configuration.
type Choice struct {
	Name   string
	Config grow.Config
}

// Picker lists growth configurations and opens the viewer on the selected one.
type Picker struct {
	choices  []Choice
	cursor   int
	selected bool
	live     Model
}

func NewPicker(choices []Choice) Picker {
	return Picker{choices: choices}
}

func (p Picker) Init() tea.Cmd { return nil }

func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if p.selected {
		next, cmd := p.live.Update(msg)
		p.live = next.(Model)
		return p, cmd
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return p, tea.Quit
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.choices)-1 {
			p.cursor++
		}
	case "enter", " ":
		if len(p.choices) == 0 {
			return p, nil
		}
		c := p.choices[p.cursor]
		p.live = NewModel(c.Config, c.Name)
		p.selected = true
		return p, p.live.Init()
	}
	return p, nil
}

func (p Picker) View() string {
	if p.selected {
		return p.live.View()
	}
	var b strings.Builder
	b.WriteString("\n  " + headerStyle().Render("ARBOR") + "\n")
	for i, c := range p.choices {
		b.WriteString("  " + cursorLine(fmt.Sprintf("%-12s seed %d, %d cycles", c.Name, c.Config.Seed, c.Config.Cycles), i == p.cursor) + "\n")
	}
	b.WriteString("\n  " + helpStyle().Render("j/k navigate  enter select  q quit") + "\n")
	return b.String()
}

// Run starts a full-screen program on the given model.
func Run(m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
