package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vlfom/predator-prey/internal/sim"
)

// Tick rate bounds for playback, in frames per second.
const (
	minTickRate = 1
	maxTickRate = 60
)

// ViewerOptions configure the history viewer.
type ViewerOptions struct {
	Title    string
	TickRate int  // Frames per second while playing
	MaxTicks int  // Stop extending the run past this tick, 0 = unlimited
	Embedded bool // Back hands control to a parent model instead of quitting
}

// Model is the Bubble Tea model for stepping through an ocean's history.
// Stepping past the newest frame advances the engine live.
type Model struct {
	runner   *sim.Runner
	history  *sim.History
	result   sim.Result
	opts     ViewerOptions
	cursor   int // Index into history
	playing  bool
	ticking  bool // A tick command is in flight
	keys     ViewerKeyMap
	help     help.Model
	width    int
	height   int
	err      error
	quitting bool
	back     bool
}

// NewModel creates a viewer positioned at the oldest kept frame.
// The runner must have been created with KeepHistory.
func NewModel(runner *sim.Runner, res sim.Result, opts ViewerOptions) Model {
	h := runner.History()
	if h == nil {
		panic("tui: viewer needs a runner that keeps history")
	}
	if h.Len() == 0 {
		h.Append(runner.Engine().Snapshot())
	}
	if opts.TickRate < minTickRate {
		opts.TickRate = minTickRate
	}

	return Model{
		runner:  runner,
		history: h,
		result:  res,
		opts:    opts,
		keys:    DefaultViewerKeyMap(),
		help:    help.New(),
	}
}

// Init initializes the model. Playback starts paused.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.back = true
		if !m.opts.Embedded {
			return m, tea.Quit
		}
		return m, nil

	case key.Matches(msg, m.keys.Next):
		m.playing = false
		m.next()

	case key.Matches(msg, m.keys.Prev):
		m.playing = false
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.First):
		m.playing = false
		m.cursor = 0

	case key.Matches(msg, m.keys.Last):
		m.playing = false
		m.cursor = m.history.Len() - 1

	case key.Matches(msg, m.keys.Play):
		m.playing = !m.playing
		if m.playing && !m.ticking {
			m.ticking = true
			return m, tickCmd(m.opts.TickRate)
		}

	case key.Matches(msg, m.keys.Faster):
		m.opts.TickRate = min(m.opts.TickRate*2, maxTickRate)

	case key.Matches(msg, m.keys.Slower):
		m.opts.TickRate = max(m.opts.TickRate/2, minTickRate)

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

// handleTick advances playback by one frame.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if !m.playing {
		m.ticking = false
		return m, nil
	}

	if !m.next() {
		m.playing = false
		m.ticking = false
		return m, nil
	}

	// Continue ticking
	return m, tickCmd(m.opts.TickRate)
}

// next moves one frame forward, ticking the engine when the newest frame
// is shown. Returns false if there is nothing further to show.
func (m *Model) next() bool {
	if m.cursor < m.history.Len()-1 {
		m.cursor++
		return true
	}
	if !m.canExtend() {
		return false
	}

	if err := m.runner.Step(&m.result); err != nil {
		m.err = err
		return false
	}
	m.cursor = m.history.Len() - 1
	return true
}

func (m Model) canExtend() bool {
	if m.err != nil {
		return false
	}
	return m.opts.MaxTicks <= 0 || m.runner.Engine().TickCount() < m.opts.MaxTicks
}

// View renders the current frame.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	frame := m.history.At(m.cursor)
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	title := m.opts.Title
	if title == "" {
		title = "OCEAN"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	b.WriteString(RenderOcean(frame.Text))
	b.WriteString("\n\n")

	state := "paused"
	if m.playing {
		state = fmt.Sprintf("playing %d fps", m.opts.TickRate)
	}
	status := fmt.Sprintf("tick %d  frame %d/%d  prey %d  predators %d  obstacles %d  [%s]",
		frame.Tick, m.cursor+1, m.history.Len(),
		frame.Counts.Prey, frame.Counts.Predators, frame.Counts.Obstacles, state)
	b.WriteString(status)
	b.WriteString("\n")
	b.WriteString(legend())
	b.WriteString("\n")

	if m.err != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
		b.WriteString(errStyle.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// Cursor returns the index of the shown frame.
func (m Model) Cursor() int { return m.cursor }

// Frame returns the tick of the shown frame.
func (m Model) Frame() int { return m.history.At(m.cursor).Tick }

// Playing reports whether playback is running.
func (m Model) Playing() bool { return m.playing }

// Result returns the run result including live extensions.
func (m Model) Result() sim.Result { return m.result }

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool { return m.quitting }

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool { return m.back }

// RunViewer starts the Bubble Tea program with the viewer.
// Returns the final model so callers can inspect the extended run.
func RunViewer(runner *sim.Runner, res sim.Result, opts ViewerOptions) (Model, error) {
	model := NewModel(runner, res, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return model, err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return model, nil
	}
	return m, nil
}
