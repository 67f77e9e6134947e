package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vlfom/predator-prey/internal/config"
	"github.com/vlfom/predator-prey/internal/sim"
	"github.com/vlfom/predator-prey/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.ocean/host_key.
	HostKeyPath string

	// DBPath is the path to the runs database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Ocean is the simulation configuration offered to every session.
	Ocean config.Config

	// Logger receives session events. If nil, one is created on stderr.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.ocean/runs.db",
		IdleTimeout: 30 * time.Minute,
		Ocean:       config.DefaultConfig(),
	}
}

// SSHServer wraps a Wish SSH server for the ocean viewer.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "ocean-ssh",
		})
	}

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open runs database", "error", err)
		// Continue without storage
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".ocean", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	// Create Wish server options
	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	// Create the server
	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	model := NewSessionModel(s.store, s.config.Ocean, pty.Window.Width, pty.Window.Height)
	model.logger = s.logger.With("user", sshSession.User())

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenViewer
	screenRuns
)

// SessionModel manages the full session flow: menu -> viewer or runs -> menu.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	store    *storage.Store
	ocean    config.Config
	logger   *log.Logger
	width    int
	height   int
	screen   sessionScreen
	menu     MenuModel
	viewer   Model
	runs     RunsBoardModel
	err      error
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(store *storage.Store, cfg config.Config, width, height int) SessionModel {
	return SessionModel{
		store:  store,
		ocean:  cfg,
		logger: log.Default(),
		width:  width,
		height: height,
		menu:   NewMenuModel(cfg, width, height),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	switch m.screen {
	case screenViewer:
		return m.updateViewer(msg)
	case screenRuns:
		return m.updateRuns(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	// Check if user quit
	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsRuns() {
		m.runs = NewRunsBoardModel(m.store, m.width, m.height)
		m.runs.embedded = true
		m.screen = screenRuns
		return m, m.runs.Init()
	}

	// Check if a preset was selected
	if selected := m.menu.Selected(); selected != nil {
		viewer, err := m.newViewer(*selected)
		if err != nil {
			m.err = err
			m.logger.Error("cannot start viewer", "preset", selected.Name, "error", err)
			m.menu = NewMenuModel(m.ocean, m.width, m.height)
			return m, nil
		}
		m.err = nil
		m.viewer = viewer
		m.screen = screenViewer
		m.logger.Info("viewer started", "preset", selected.Name)
		return m, m.viewer.Init()
	}

	return m, cmd
}

// newViewer builds a fresh ocean with the chosen parameters.
func (m SessionModel) newViewer(item MenuItem) (Model, error) {
	c := m.ocean
	c.Params = item.Params
	c.Seed = time.Now().UnixNano()

	e, err := sim.BuildEngine(c)
	if err != nil {
		return Model{}, err
	}

	runner := sim.NewRunner(e, sim.Options{
		Window:       c.Telemetry.Window,
		HistorySize:  c.Telemetry.HistorySize,
		KeepHistory:  true,
		HistoryLimit: c.Viewer.HistoryLimit,
		Logger:       m.logger,
	})
	res, err := runner.Run(context.Background(), 0)
	if err != nil {
		return Model{}, err
	}

	viewer := NewModel(runner, res, ViewerOptions{
		Title:    fmt.Sprintf("OCEAN - %s (%s)", c.Scenario, item.Name),
		TickRate: c.Viewer.TickRate,
		MaxTicks: c.Ticks,
		Embedded: true,
	})
	viewer.width, viewer.height = m.width, m.height
	viewer.help.Width = m.width
	return viewer, nil
}

// updateViewer handles updates when the viewer is shown.
func (m SessionModel) updateViewer(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.viewer.Update(msg)
	if viewer, ok := newModel.(Model); ok {
		m.viewer = viewer
	}

	if m.viewer.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.viewer.BackToMenu() {
		m.backToMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateRuns handles updates when the runs board is shown.
func (m SessionModel) updateRuns(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.runs.Update(msg)
	if runs, ok := newModel.(RunsBoardModel); ok {
		m.runs = runs
	}

	if m.runs.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.runs.IsGoingBack() {
		m.backToMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

func (m *SessionModel) backToMenu() {
	m.screen = screenMenu
	m.viewer = Model{}
	m.runs = RunsBoardModel{}
	m.menu = NewMenuModel(m.ocean, m.width, m.height)
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenViewer:
		return m.viewer.View()
	case screenRuns:
		return m.runs.View()
	}

	view := m.menu.View()
	if m.err != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
		view += "\n" + centerText(errStyle.Render("error: "+m.err.Error()), m.width)
	}
	return view
}

// Screen reports which screen is shown: "menu", "viewer" or "runs".
func (m SessionModel) Screen() string {
	switch m.screen {
	case screenViewer:
		return "viewer"
	case screenRuns:
		return "runs"
	}
	return "menu"
}
