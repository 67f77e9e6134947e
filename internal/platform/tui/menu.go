package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vlfom/predator-prey/internal/config"
)

// MenuItem represents a selectable parameter set in the menu.
type MenuItem struct {
	Name   string
	Params config.ParamsConfig
}

// MenuModel is the Bubble Tea model for the preset picker.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	scenario  string
	keyMapper *KeyMapper
	quitting  bool
	selected  *MenuItem // Set when user selects a preset
	openRuns  bool      // True if user pressed Tab for stored runs
}

// NewMenuModel creates a menu listing the configured parameters followed by
// every preset.
func NewMenuModel(cfg config.Config, width, height int) MenuModel {
	items := make([]MenuItem, 0, len(cfg.Presets)+1)
	items = append(items, MenuItem{Name: "configured", Params: cfg.Params})
	for _, p := range cfg.Presets {
		items = append(items, MenuItem{Name: p.Name, Params: p.ParamsConfig})
	}

	return MenuModel{
		items:     items,
		width:     width,
		height:    height,
		scenario:  cfg.Scenario,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
		}

	case MenuActionRuns:
		m.openRuns = true
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("  O C E A N  ", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("Scenario %q - pick parameters", m.scenario), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		p := item.Params
		line := fmt.Sprintf("%s%-12s vitality %2d  food %2d  spawn %2d",
			cursor, item.Name, p.PredVitality, p.PreyFoodValue, p.SpawnRate)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	// Footer with controls
	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Watch  |  Tab: Runs  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsRuns returns true if user requested the runs board.
func (m MenuModel) WantsRuns() bool {
	return m.openRuns
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}
