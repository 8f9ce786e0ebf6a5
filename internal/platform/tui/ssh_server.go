package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/guard-patrol/internal/registry"
	"github.com/vovakirdan/guard-patrol/internal/scenario"
	"github.com/vovakirdan/guard-patrol/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.patrol/host_key.
	HostKeyPath string

	// DBPath is the path to the run history database.
	DBPath string

	// ScenarioDir is the scenario library offered in the picker.
	ScenarioDir string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Viewer settings for every session.
	TickRate  int
	ShowLoops bool
	Strategy  string
	Workers   int
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23235",
		DBPath:      "~/.patrol/runs.db",
		ScenarioDir: "./scenarios",
		IdleTimeout: 30 * time.Minute,
		TickRate:    30,
		ShowLoops:   true,
		Strategy:    "parallel",
	}
}

// SSHServer wraps a Wish SSH server that serves the patrol viewer.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
// A nil logger gets a timestamped stderr logger.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "patrol-ssh",
		})
	}

	if !registry.Exists(cfg.Strategy) {
		return nil, fmt.Errorf("unknown search strategy %q", cfg.Strategy)
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open run database", "error", err)
		// Continue without history
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".patrol", "host_key")
	}

	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

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

	scenarios, err := scenario.NewLoader(s.config.ScenarioDir).LoadAll()
	if err != nil {
		s.logger.Warn("could not load scenarios", "dir", s.config.ScenarioDir, "error", err)
	}

	opts := SessionOptions{
		Scenarios: scenarios,
		Logger:    s.logger.With("user", sshSession.User()),
		Strategy:  s.config.Strategy,
		Workers:   s.config.Workers,
		TickRate:  s.config.TickRate,
		ShowLoops: s.config.ShowLoops,
		Width:     pty.Window.Width,
		Height:    pty.Window.Height,
	}
	if s.store != nil {
		opts.Store = s.store
	}
	model := NewSessionModel(sshSession.Context(), opts)

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

// SessionOptions configures one interactive session.
type SessionOptions struct {
	Scenarios []scenario.Scenario
	Store     RunLister // may be nil
	Logger    *log.Logger
	Strategy  string
	Workers   int
	TickRate  int
	ShowLoops bool
	Width     int
	Height    int
}

type sessionScreen int

const (
	screenPicker sessionScreen = iota
	screenViewer
	screenHistory
)

// SessionModel manages the session flow: picker -> viewer or history -> picker.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	ctx      context.Context
	opts     SessionOptions
	screen   sessionScreen
	picker   PickerModel
	viewer   ViewerModel
	history  HistoryModel
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(ctx context.Context, opts SessionOptions) SessionModel {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return SessionModel{
		ctx:    ctx,
		opts:   opts,
		picker: NewPickerModel(opts.Scenarios, opts.Width, opts.Height),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.picker.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Width = wsm.Width
		m.opts.Height = wsm.Height
	}

	switch m.screen {
	case screenViewer:
		return m.updateViewer(msg)
	case screenHistory:
		return m.updateHistory(msg)
	default:
		return m.updatePicker(msg)
	}
}

func (m SessionModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.picker.Update(msg)
	if picker, ok := next.(PickerModel); ok {
		m.picker = picker
	}

	if m.picker.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.picker.WantsHistory() {
		m.picker = m.picker.WithMessage("")
		m.history = NewHistoryModel(m.opts.Store, "", m.opts.Width, m.opts.Height)
		m.history.embedded = true
		m.screen = screenHistory
		return m, m.history.Init()
	}

	if selected := m.picker.Selected(); selected != nil {
		viewer, err := m.newViewer(*selected)
		if err != nil {
			m.opts.Logger.Warn("cannot open scenario", "scenario", selected.ID, "error", err)
			m.picker = m.picker.WithMessage(err.Error())
			return m, nil
		}
		m.picker = m.picker.WithMessage("")
		m.viewer = viewer
		m.screen = screenViewer
		return m, m.viewer.Init()
	}

	return m, cmd
}

func (m SessionModel) newViewer(sc scenario.Scenario) (ViewerModel, error) {
	pm, err := sc.Map()
	if err != nil {
		return ViewerModel{}, err
	}
	strategy, err := registry.Create(m.opts.Strategy, registry.Options{
		Workers: m.opts.Workers,
		Logger:  m.opts.Logger,
	})
	if err != nil {
		return ViewerModel{}, err
	}
	return NewViewerModel(m.ctx, pm, ViewerOptions{
		Name:      sc.Name,
		TickRate:  m.opts.TickRate,
		ShowLoops: m.opts.ShowLoops,
		Strategy:  strategy,
		Logger:    m.opts.Logger,
		Embedded:  true,
		Width:     m.opts.Width,
		Height:    m.opts.Height,
	}), nil
}

func (m SessionModel) updateViewer(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.viewer.Update(msg)
	if viewer, ok := next.(ViewerModel); ok {
		m.viewer = viewer
	}

	if m.viewer.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.viewer.BackToMenu() {
		// Ticks still in flight land on the picker, which ignores them.
		m.screen = screenPicker
		return m, nil
	}

	return m, cmd
}

func (m SessionModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.history.Update(msg)
	if history, ok := next.(HistoryModel); ok {
		m.history = history
	}

	if m.history.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.history.IsGoingBack() {
		m.screen = screenPicker
		return m, nil
	}

	return m, cmd
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenViewer:
		return m.viewer.View()
	case screenHistory:
		return m.history.View()
	default:
		return m.picker.View()
	}
}
