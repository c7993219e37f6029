package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/glyphball/internal/core"
	"github.com/vovakirdan/glyphball/internal/engine"
	"github.com/vovakirdan/glyphball/internal/registry"
	"github.com/vovakirdan/glyphball/internal/storage"
)

// Options configure a widget model.
type Options struct {
	Store         *storage.Store // Optional session summary store
	Logger        *log.Logger
	User          string // Recorded with session summaries
	ShowHelp      bool   // Key help below the playfield
	ScreenshotDir string // Empty = ~/.glyphball/screenshots
	InMenu        bool   // Back returns to a menu instead of quitting
}

// eventSource is implemented by widgets that report per-frame events.
type eventSource interface {
	LastEvents() engine.Events
}

// Model is the Bubble Tea model for a mounted widget.
type Model struct {
	mount  *Mount
	screen *core.Screen
	config core.RuntimeConfig
	input  core.InputFrame
	keys   KeyMap
	help   help.Model
	opts   Options

	quitting   bool
	backToMenu bool
	lastShot   string
}

// NewModel mounts w and wraps it in a Bubble Tea model.
func NewModel(w registry.Widget, cfg core.RuntimeConfig, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	m := Model{
		config: cfg,
		input:  core.NewInputFrame(),
		keys:   DefaultKeyMap(),
		help:   help.New(),
		opts:   opts,
	}
	m.screen = core.NewScreen(cfg.ScreenW, m.widgetHeight())
	m.mount = NewMount(w, m.widgetConfig())
	m.opts.Logger.Debug("widget mounted", "widget", w.ID(), "seed", m.mount.Seed)
	return m
}

// Init schedules the first frame.
func (m Model) Init() tea.Cmd {
	return m.mount.Loop.Next()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.mount.Pointer.Handle(msg)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		path, err := m.saveScreenshot()
		if err != nil {
			m.opts.Logger.Warn("screenshot failed", "error", err)
		} else {
			m.lastShot = path
			m.opts.Logger.Info("screenshot saved", "path", path)
		}
		return m, nil

	case key.Matches(msg, m.keys.Back):
		m.Close("back")
		m.backToMenu = true
		if m.opts.InMenu {
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}

	action, isQuit := m.keys.MapKey(msg)
	switch {
	case isQuit:
		m.Close("quit")
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionRestart:
		return m, m.remount("restart")
	case action != core.ActionNone:
		m.input.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events. The widget geometry depends
// on the screen size, so the widget is remounted.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	if msg.Width == m.config.ScreenW && msg.Height == m.config.ScreenH {
		return m, nil
	}
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, m.widgetHeight())
	m.help.Width = msg.Width
	return m, m.remount("resize")
}

// handleTick runs one widget frame if the tick belongs to the live mount.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if !m.mount.Loop.Accept(msg) {
		return m, nil
	}

	m.mount.Pointer.Flush(&m.input)
	m.mount.Widget.Step(m.input)
	m.logEvents()
	m.input.Clear()

	return m, m.mount.Loop.Next()
}

func (m *Model) logEvents() {
	src, ok := m.mount.Widget.(eventSource)
	if !ok {
		return
	}
	ev := src.LastEvents()
	if ev.Regenerated {
		m.opts.Logger.Debug("cell field regenerated", "widget", m.mount.Widget.ID())
	}
	if ev.Respawned {
		m.opts.Logger.Debug("ball respawned", "widget", m.mount.Widget.ID())
	}
}

// remount disposes the current mount and mounts the same widget again with
// a fresh seed unless one was fixed on the command line.
func (m *Model) remount(reason string) tea.Cmd {
	m.Close(reason)
	m.input.Clear()
	m.mount = NewMount(m.mount.Widget, m.widgetConfig())
	m.opts.Logger.Debug("widget mounted", "widget", m.mount.Widget.ID(), "seed", m.mount.Seed, "reason", reason)
	return m.mount.Loop.Next()
}

// Close disposes the current mount and records its session summary.
// Only the first call for a mount has any effect.
func (m Model) Close(reason string) {
	if !m.mount.Dispose() {
		return
	}

	w := m.mount.Widget
	stats := w.Stats()
	m.opts.Logger.Debug("widget disposed",
		"widget", w.ID(),
		"reason", reason,
		"frames", stats.Frames,
		"cleared", stats.CellsCleared,
	)

	if m.opts.Store == nil || stats.Frames == 0 {
		return
	}
	_, err := m.opts.Store.SaveSession(storage.SessionEntry{
		WidgetID:     w.ID(),
		User:         m.opts.User,
		Seed:         m.mount.Seed,
		SessionStats: stats,
	})
	if err != nil {
		m.opts.Logger.Warn("could not save session", "error", err)
	}
}

// widgetConfig returns the runtime config for a new mount.
func (m Model) widgetConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = m.widgetHeight()
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg
}

// widgetHeight is the screen height left after the help line.
func (m Model) widgetHeight() int {
	if m.opts.ShowHelp {
		return max(m.config.ScreenH-1, 0)
	}
	return m.config.ScreenH
}

// saveScreenshot writes the current screen to a text file.
func (m *Model) saveScreenshot() (string, error) {
	m.mount.Widget.Render(m.screen)

	dir := m.opts.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("screenshot: cannot get home directory: %w", err)
		}
		dir = filepath.Join(home, ".glyphball", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("screenshot: cannot create directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405.000")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.mount.Widget.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("screenshot: cannot write %s: %w", path, err)
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.mount.Widget.Render(m.screen)
	out := RenderScreen(m.screen)
	if !m.opts.ShowHelp {
		return out
	}

	var b strings.Builder
	b.WriteString(out)
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// LastScreenshot returns the path of the most recent screenshot, if any.
func (m Model) LastScreenshot() string {
	return m.lastShot
}

// Mount returns the live mount.
func (m Model) Mount() *Mount {
	return m.mount
}

// Run mounts the widget and runs it until the user quits.
func Run(w registry.Widget, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(w, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		fm.Close("exit")
	} else {
		model.Close("exit")
	}
	return err
}
