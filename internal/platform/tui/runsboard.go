package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vlfom/predator-prey/internal/storage"
	"github.com/vlfom/predator-prey/internal/telemetry"
)

// Runs board layout constants
const (
	minWidthForDetail = 100 // Minimum width to show the detail panel
	detailWidth       = 30  // Width of the detail panel
	maxRuns           = 100 // Max runs to load
)

// RunsOrder selects how the board sorts runs.
type RunsOrder int

const (
	OrderRecent RunsOrder = iota
	OrderBest
)

func (o RunsOrder) String() string {
	if o == OrderBest {
		return "BEST RUNS"
	}
	return "RECENT RUNS"
}

// RunsKeyMap defines the key bindings for the runs board.
type RunsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Order  key.Binding
	Delete key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RunsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Order, k.Delete, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k RunsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Order},
		{k.Delete, k.Back, k.Quit},
	}
}

// DefaultRunsKeyMap returns default key bindings.
func DefaultRunsKeyMap() RunsKeyMap {
	return RunsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Order: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "recent/best"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete run"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RunsBoardModel is the Bubble Tea model for browsing stored runs.
type RunsBoardModel struct {
	store      *storage.Store
	order      RunsOrder
	runs       []storage.Run
	detail     *telemetry.Summary // Summary of the selected run's samples
	table      table.Model
	help       help.Model
	keys       RunsKeyMap
	width      int
	height     int
	err        error
	embedded   bool // Back hands control to a parent model
	quitting   bool
	goingBack  bool
	showDetail bool
}

// NewRunsBoardModel creates a new runs board.
func NewRunsBoardModel(store *storage.Store, width, height int) RunsBoardModel {
	h := help.New()
	h.ShowAll = false

	m := RunsBoardModel{
		store:      store,
		keys:       DefaultRunsKeyMap(),
		help:       h,
		width:      width,
		height:     height,
		showDetail: width >= minWidthForDetail,
	}

	m.table = m.createTable()
	m.loadRuns()

	return m
}

// createTable creates a new table with appropriate columns.
func (m *RunsBoardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Scenario", Width: 9},
		{Title: "Params", Width: 12},
		{Title: "Ticks", Width: 6},
		{Title: "Prey", Width: 5},
		{Title: "Pred", Width: 5},
		{Title: "Score", Width: 9},
		{Title: "Date", Width: 12},
	}

	height := m.height - 8 // Leave room for header, help, and margins
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadRuns reloads runs in the current order.
func (m *RunsBoardModel) loadRuns() {
	m.runs, m.err = nil, nil
	if m.store != nil {
		if m.order == OrderBest {
			m.runs, m.err = m.store.BestRuns(maxRuns)
		} else {
			m.runs, m.err = m.store.RecentRuns(maxRuns)
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current runs.
func (m *RunsBoardModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprintf("%d", r.ID),
			r.Scenario,
			fmt.Sprintf("v%d-f%d-s%d", r.PredVitality, r.PreyFoodValue, r.SpawnRate),
			fmt.Sprintf("%d", r.Ticks),
			fmt.Sprintf("%d", r.FinalPrey),
			fmt.Sprintf("%d", r.FinalPred),
			fmt.Sprintf("%.3f", r.Score),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)

	// Reset cursor to top
	m.table.GotoTop()
	m.loadDetail()
}

// loadDetail summarizes the selected run's population series.
func (m *RunsBoardModel) loadDetail() {
	m.detail = nil
	run := m.Selected()
	if run == nil || m.store == nil {
		return
	}

	samples, err := m.store.Samples(run.ID)
	if err != nil {
		m.err = err
		return
	}
	s := telemetry.Summarize(samples)
	m.detail = &s
}

// Selected returns the highlighted run, or nil if the board is empty.
func (m RunsBoardModel) Selected() *storage.Run {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.runs) {
		return nil
	}
	r := m.runs[i]
	return &r
}

// Init initializes the runs board.
func (m RunsBoardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the runs board.
func (m RunsBoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			if m.embedded {
				return m, nil
			}
			return m, tea.Quit

		case key.Matches(msg, m.keys.Order):
			if m.order == OrderRecent {
				m.order = OrderBest
			} else {
				m.order = OrderRecent
			}
			m.loadRuns()
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if run := m.Selected(); run != nil && m.store != nil {
				if err := m.store.DeleteRun(run.ID); err != nil {
					m.err = err
					return m, nil
				}
				m.loadRuns()
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			m.loadDetail()
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showDetail = m.width >= minWidthForDetail
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the runs board.
func (m RunsBoardModel) View() string {
	if m.quitting || (m.goingBack && !m.embedded) {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	b.WriteString(titleStyle.Render(centerText(m.order.String(), m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	tableRendered := tableStyle.Render(m.renderTableContent())

	if m.showDetail && m.detail != nil {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tableRendered, "  ", m.renderDetail()))
	} else {
		b.WriteString(tableRendered)
	}
	b.WriteString("\n")

	if m.err != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
		b.WriteString(errStyle.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	}

	// Help bar
	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderDetail renders the population summary of the selected run.
func (m RunsBoardModel) renderDetail() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(detailWidth).
		Padding(0, 1)

	s := m.detail
	extinct := func(t int) string {
		if t < 0 {
			return "never"
		}
		return fmt.Sprintf("tick %d", t)
	}

	var d strings.Builder
	d.WriteString("Population\n")
	d.WriteString(strings.Repeat("-", detailWidth-4))
	d.WriteString("\n")
	fmt.Fprintf(&d, "prey  %6.1f +/- %.1f\n", s.PreyMean, s.PreyStdDev)
	fmt.Fprintf(&d, "      min %d max %d\n", s.PreyMin, s.PreyMax)
	fmt.Fprintf(&d, "pred  %6.1f +/- %.1f\n", s.PredMean, s.PredStdDev)
	fmt.Fprintf(&d, "      min %d max %d\n", s.PredMin, s.PredMax)
	fmt.Fprintf(&d, "prey extinct  %s\n", extinct(s.PreyExtinctAt))
	fmt.Fprintf(&d, "pred extinct  %s\n", extinct(s.PredExtinctAt))
	fmt.Fprintf(&d, "coexisted     %d ticks", s.Coexisted())

	return style.Render(d.String())
}

// renderTableContent renders the table or empty message.
func (m RunsBoardModel) renderTableContent() string {
	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No runs recorded yet.\nUse `ocean run --save` to store one!")
	}

	return m.table.View()
}

// Runs returns the runs currently listed.
func (m RunsBoardModel) Runs() []storage.Run {
	return m.runs
}

// IsGoingBack returns true if user wants to go back to menu.
func (m RunsBoardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m RunsBoardModel) IsQuitting() bool {
	return m.quitting
}

// RunRunsBoard runs the runs board screen.
func RunRunsBoard(store *storage.Store, width, height int) error {
	model := NewRunsBoardModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
