package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vlfom/predator-prey/internal/config"
	"github.com/vlfom/predator-prey/internal/sim"
	"github.com/vlfom/predator-prey/internal/storage"
	"github.com/vlfom/predator-prey/internal/telemetry"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func newViewer(t *testing.T, preTicks int, opts ViewerOptions) Model {
	t.Helper()
	e, err := sim.BuildEngine(config.DefaultConfig())
	if err != nil {
		t.Fatalf("BuildEngine() failed: %v", err)
	}
	runner := sim.NewRunner(e, sim.Options{Window: 5, KeepHistory: true})
	res, err := runner.Run(context.Background(), preTicks)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	return NewModel(runner, res, opts)
}

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		if !ok {
			t.Fatalf("Update returned %T", next)
		}
	}
	return m
}

func TestViewerStepsThroughHistory(t *testing.T) {
	m := newViewer(t, 3, ViewerOptions{})

	if m.Frame() != 0 {
		t.Fatalf("viewer should start at tick 0, got %d", m.Frame())
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight}, runeKey('y'))
	if m.Frame() != 2 {
		t.Errorf("expected tick 2 after two steps, got %d", m.Frame())
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.Frame() != 1 {
		t.Errorf("expected tick 1 after stepping back, got %d", m.Frame())
	}

	m = press(t, m, runeKey('G'))
	if m.Frame() != 3 {
		t.Errorf("expected last tick 3, got %d", m.Frame())
	}

	m = press(t, m, runeKey('g'), tea.KeyMsg{Type: tea.KeyLeft})
	if m.Frame() != 0 {
		t.Errorf("stepping back from the first frame should stay, got %d", m.Frame())
	}
}

func TestViewerExtendsLive(t *testing.T) {
	m := newViewer(t, 1, ViewerOptions{})

	m = press(t, m, runeKey('G'), runeKey('y'), runeKey('y'))
	if m.Frame() != 3 {
		t.Fatalf("expected live extension to tick 3, got %d", m.Frame())
	}
	if got := len(m.Result().Samples); got != 4 {
		t.Errorf("expected 4 samples after extension, got %d", got)
	}
}

func TestViewerRespectsMaxTicks(t *testing.T) {
	m := newViewer(t, 2, ViewerOptions{MaxTicks: 2})

	m = press(t, m, runeKey('G'), runeKey('y'))
	if m.Frame() != 2 {
		t.Errorf("viewer should not pass max ticks, got %d", m.Frame())
	}
}

func TestViewerPlayback(t *testing.T) {
	m := newViewer(t, 0, ViewerOptions{TickRate: 10, MaxTicks: 2})

	next, cmd := m.Update(runeKey(' '))
	m = next.(Model)
	if !m.Playing() || cmd == nil {
		t.Fatal("space should start playback and schedule a tick")
	}

	m = press(t, m, TickMsg{}, TickMsg{})
	if m.Frame() != 2 {
		t.Errorf("expected tick 2 after two playback ticks, got %d", m.Frame())
	}

	m = press(t, m, TickMsg{})
	if m.Playing() {
		t.Error("playback should stop at max ticks")
	}
}

func TestViewerPauseStopsTicking(t *testing.T) {
	m := newViewer(t, 0, ViewerOptions{TickRate: 10})

	m = press(t, m, runeKey(' '), runeKey(' '))
	if m.Playing() {
		t.Fatal("second space should pause")
	}

	next, cmd := m.Update(TickMsg{})
	m = next.(Model)
	if cmd != nil {
		t.Error("a paused viewer should not schedule more ticks")
	}
	if m.Frame() != 0 {
		t.Errorf("paused viewer advanced to tick %d", m.Frame())
	}
}

func TestViewerQuitAndBack(t *testing.T) {
	m := press(t, newViewer(t, 0, ViewerOptions{}), runeKey('q'))
	if !m.IsQuitting() || m.View() != "" {
		t.Error("q should quit and blank the view")
	}

	embedded := press(t, newViewer(t, 0, ViewerOptions{Embedded: true}), tea.KeyMsg{Type: tea.KeyEsc})
	if !embedded.BackToMenu() || embedded.IsQuitting() {
		t.Error("esc should request the menu without quitting")
	}
}

func TestViewerViewShowsCounts(t *testing.T) {
	m := newViewer(t, 0, ViewerOptions{Title: "classic"})

	view := m.View()
	for _, want := range []string{"classic", "tick 0", "prey 56", "predators 24", "obstacles 1"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestRenderOceanKeepsLayout(t *testing.T) {
	text := "O.X\n#.O\n"
	rendered := RenderOcean(text)

	rows := strings.Split(rendered, "\n")
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	for i, row := range rows {
		if w := lipgloss.Width(row); w != 3 {
			t.Errorf("row %d has visible width %d, want 3", i, w)
		}
	}

	if got := RenderOcean("O?O"); lipgloss.Width(got) != 3 || !strings.Contains(got, "?") {
		t.Errorf("unknown glyphs should pass through: %q", got)
	}
}

func TestKeyMapperMenuActions(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey('j'), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionRuns},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runeKey('q'), MenuActionQuit},
		{runeKey('x'), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestMenuSelectsPreset(t *testing.T) {
	cfg := config.DefaultConfig()
	var m tea.Model = NewMenuModel(cfg, 80, 24)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	menu := m.(MenuModel)
	sel := menu.Selected()
	if sel == nil {
		t.Fatal("expected a selection")
	}
	if sel.Name != cfg.Presets[0].Name || sel.Params != cfg.Presets[0].ParamsConfig {
		t.Errorf("expected first preset, got %+v", sel)
	}
}

func TestSessionFlow(t *testing.T) {
	var m tea.Model = NewSessionModel(nil, config.DefaultConfig(), 80, 24)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.(SessionModel).Screen(); got != "viewer" {
		t.Fatalf("expected viewer after selection, got %s", got)
	}

	m, _ = m.Update(runeKey('y'))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if got := m.(SessionModel).Screen(); got != "menu" {
		t.Fatalf("expected menu after back, got %s", got)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got := m.(SessionModel).Screen(); got != "runs" {
		t.Fatalf("expected runs board after tab, got %s", got)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if got := m.(SessionModel).Screen(); got != "menu" {
		t.Errorf("expected menu after leaving runs, got %s", got)
	}
}

func TestRunsBoard(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	for _, score := range []float64{1, 5} {
		run := storage.Run{Scenario: "classic", Height: 9, Width: 9, Score: score, PreyExtinctAt: -1, PredExtinctAt: -1}
		samples := []telemetry.Sample{{Tick: 0, Prey: 10, Predators: 2}, {Tick: 1, Prey: 12, Predators: 0}}
		if _, err := store.SaveRun(run, samples); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	var m tea.Model = NewRunsBoardModel(store, 120, 30)
	board := m.(RunsBoardModel)
	if len(board.Runs()) != 2 || board.Runs()[0].Score != 5 {
		t.Fatalf("recent order should list newest first: %+v", board.Runs())
	}
	if board.detail == nil || board.detail.PredExtinctAt != 1 {
		t.Errorf("detail should summarize the selected run: %+v", board.detail)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	board = m.(RunsBoardModel)
	if board.order != OrderBest || board.Runs()[0].Score != 5 {
		t.Errorf("tab should switch to best order: %+v", board.Runs())
	}

	m, _ = m.Update(runeKey('d'))
	board = m.(RunsBoardModel)
	if len(board.Runs()) != 1 || board.Runs()[0].Score != 1 {
		t.Errorf("d should delete the selected run: %+v", board.Runs())
	}

	if !strings.Contains(board.View(), "BEST RUNS") {
		t.Error("view should show the current order")
	}
}
