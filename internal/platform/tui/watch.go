package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gridwalk/internal/grid"
	"github.com/vovakirdan/gridwalk/internal/walk"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	doneStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("114"))
	trapStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("209"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// WatchConfig configures a live walk animation.
type WatchConfig struct {
	Mask   *grid.Grid  // Walkable area
	Params walk.Params // Run parameters; Walkers beyond the first are ignored
	Title  string
	FPS    int // Ticks per second (default 30)
	Batch  int // Steps per tick (default 1)
}

// WatchModel is the Bubble Tea model animating one walker.
type WatchModel struct {
	cfg      WatchConfig
	runner   *walk.Runner
	engine   *walk.Engine
	heat     *grid.Grid // live visit accumulation, for rendering only
	progress progress.Model
	quitting bool
	paused   bool
	err      error
}

// NewWatchModel validates the configuration and prepares the
// animation. Configuration errors surface here, before the TUI starts.
func NewWatchModel(cfg WatchConfig) (WatchModel, error) {
	if cfg.FPS <= 0 {
		cfg.FPS = 30
	}
	if cfg.Batch <= 0 {
		cfg.Batch = 1
	}
	m := WatchModel{
		cfg:      cfg,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
	if err := m.rebuild(); err != nil {
		return WatchModel{}, err
	}
	return m, nil
}

// rebuild prepares a fresh runner and engine for the current seed.
func (m *WatchModel) rebuild() error {
	p := m.cfg.Params
	p.Walkers = 1
	runner, err := walk.NewRunner(m.cfg.Mask, p)
	if err != nil {
		return err
	}
	engine, err := runner.EngineFor(0)
	if err != nil {
		return err
	}
	m.runner = runner
	m.engine = engine
	m.heat = m.cfg.Mask.Blank()
	return m.heat.Accumulate(engine.Pos(), 1)
}

// Init starts the tick loop.
func (m WatchModel) Init() tea.Cmd {
	return tickCmd(m.cfg.FPS)
}

// Update handles messages and advances the simulation.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		case "p", " ":
			m.paused = !m.paused
		case "r":
			m.cfg.Params.Seed = uint64(time.Now().UnixNano())
			if err := m.rebuild(); err != nil {
				m.err = err
				return m, tea.Quit
			}
			return m, nil
		}
		return m, nil

	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

func (m WatchModel) handleTick() (tea.Model, tea.Cmd) {
	if m.paused || m.engine.Done() {
		return m, tickCmd(m.cfg.FPS)
	}
	for i := 0; i < m.cfg.Batch && m.engine.Step(); i++ {
		if err := m.heat.Accumulate(m.engine.Pos(), 1); err != nil {
			// The engine guarantees valid moves; this is a defect.
			m.err = err
			return m, tea.Quit
		}
	}
	return m, tickCmd(m.cfg.FPS)
}

// Err returns the error that stopped the animation, if any.
func (m WatchModel) Err() error {
	return m.err
}

// View renders the animation frame.
func (m WatchModel) View() string {
	if m.quitting || m.err != nil {
		return ""
	}

	var sb strings.Builder
	title := m.cfg.Title
	if title == "" {
		title = "gridwalk"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString(statusStyle.Render(fmt.Sprintf("  %s, %d directions, seed %d",
		m.cfg.Params.Policy, m.cfg.Params.Connectivity, m.cfg.Params.Seed)))
	sb.WriteString("\n\n")

	pos := m.engine.Pos()
	sb.WriteString(Heatmap(m.heat, &pos))
	sb.WriteString("\n")

	budget := m.engine.Budget()
	pct := 1.0
	if budget > 0 {
		pct = float64(m.engine.Steps()) / float64(budget)
	}
	sb.WriteString(m.progress.ViewAs(pct))
	sb.WriteString(statusStyle.Render(fmt.Sprintf("  step %d/%d", m.engine.Steps(), budget)))
	sb.WriteString("\n")

	if m.engine.Done() {
		switch m.engine.Reason() {
		case walk.ReasonTrapped:
			sb.WriteString(trapStyle.Render(fmt.Sprintf("walker trapped after %d steps", m.engine.Steps())))
		default:
			sb.WriteString(doneStyle.Render("step budget exhausted"))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(helpStyle.Render("p pause · r restart · q quit"))
	sb.WriteString("\n")
	return sb.String()
}
