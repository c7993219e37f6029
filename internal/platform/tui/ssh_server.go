package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/glyphball/internal/core"
	"github.com/vovakirdan/glyphball/internal/registry"
	"github.com/vovakirdan/glyphball/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.glyphball/host_key.
	HostKeyPath string

	// DBPath is the path to the session database. Empty disables storage.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the frame rate of every session.
	TickRate int

	// ShowHelp shows the key help line below the widget.
	ShowHelp bool
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.glyphball/sessions.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
		ShowHelp:    true,
	}
}

// SSHServer wraps a Wish SSH server serving one widget session per connection.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger

	mu       sync.Mutex
	sessions map[string]*sessionTracker
}

// NewSSHServer creates a new SSH server with the given configuration.
// logger may be nil.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.Default()
	}
	logger = logger.WithPrefix("glyphball-ssh")

	var store *storage.Store
	if cfg.DBPath != "" {
		var err error
		store, err = storage.Open(cfg.DBPath)
		if err != nil {
			logger.Warn("could not open session database", "error", err)
			store = nil // Continue without storage
		}
	}

	srv := &SSHServer{
		config:   cfg,
		store:    store,
		logger:   logger,
		sessions: make(map[string]*sessionTracker),
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".glyphball", "host_key")
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
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

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
	}

	model := NewSessionModel(cfg, Options{
		Store:    s.store,
		Logger:   s.logger.With("user", sshSession.User()),
		User:     sshSession.User(),
		ShowHelp: s.config.ShowHelp,
	})

	s.mu.Lock()
	s.sessions[sshSession.Context().SessionID()] = model.tracker
	s.mu.Unlock()

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	}
}

// loggingMiddleware logs SSH session events and disposes whatever widget
// is still mounted when the connection ends.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.endSession(sshSession.Context().SessionID())
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

func (s *SSHServer) endSession(id string) {
	s.mu.Lock()
	t := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if t != nil {
		t.close("disconnect")
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

	err := s.server.Shutdown(ctx)
	if s.store != nil {
		s.store.Close()
	}
	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// sessionTracker remembers the widget model currently mounted in a session
// so it can be disposed when the session ends.
type sessionTracker struct {
	current *Model
}

func (t *sessionTracker) close(reason string) {
	if t.current != nil {
		t.current.Close(reason)
		t.current = nil
	}
}

type sessionView int

const (
	viewMenu sessionView = iota
	viewWidget
	viewStats
)

// SessionModel manages the full session flow: menu -> widget or stats -> menu.
// It is the top-level model for SSH sessions and for `glyphball menu`.
type SessionModel struct {
	config   core.RuntimeConfig
	opts     Options
	view     sessionView
	menu     MenuModel
	widget   *Model
	stats    *StatsModel
	tracker  *sessionTracker
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(cfg core.RuntimeConfig, opts Options) SessionModel {
	opts.InMenu = true
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return SessionModel{
		config:  cfg,
		opts:    opts,
		menu:    NewMenuModel(cfg),
		tracker: &sessionTracker{},
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.view {
	case viewWidget:
		return m.updateWidget(msg)
	case viewStats:
		return m.updateStats(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menuModel, ok := next.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	selected := m.menu.Selected()
	if selected == nil {
		return m, cmd
	}

	if selected.ID == statsItemID {
		stats := NewStatsModel(m.opts.Store, m.config.ScreenW, m.config.ScreenH)
		m.stats = &stats
		m.view = viewStats
		return m, stats.Init()
	}

	w, err := registry.Create(selected.ID)
	if err != nil {
		// Shouldn't happen since menu only shows registered widgets
		m.opts.Logger.Error("cannot create widget", "error", err)
		m.menu = NewMenuModel(m.config)
		return m, nil
	}

	model := NewModel(w, m.config, m.opts)
	m.widget = &model
	m.tracker.current = m.widget
	m.view = viewWidget
	return m, model.Init()
}

// updateWidget handles updates when a widget is mounted.
func (m SessionModel) updateWidget(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.widget.Update(msg)
	if model, ok := next.(Model); ok {
		m.widget = &model
		m.tracker.current = m.widget
	}

	if m.widget.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.widget.BackToMenu() {
		m.widget = nil
		m.tracker.current = nil
		m.view = viewMenu
		m.menu = NewMenuModel(m.config)
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateStats handles updates when the stats screen is shown.
func (m SessionModel) updateStats(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.stats.Update(msg)
	if stats, ok := next.(StatsModel); ok {
		m.stats = &stats
	}

	if m.stats.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.stats.IsGoingBack() {
		m.stats = nil
		m.view = viewMenu
		m.menu = NewMenuModel(m.config)
		return m, m.menu.Init()
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewWidget:
		return m.widget.View()
	case viewStats:
		return m.stats.View()
	default:
		return m.menu.View()
	}
}

// Close disposes the mounted widget, if any.
func (m SessionModel) Close(reason string) {
	m.tracker.close(reason)
}

// RunSession runs the menu-driven session locally.
func RunSession(cfg core.RuntimeConfig, opts Options) error {
	model := NewSessionModel(cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	_, err := p.Run()
	model.Close("exit")
	return err
}
