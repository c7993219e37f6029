package tui

import (
	"io"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/glyphball/internal/core"
	"github.com/vovakirdan/glyphball/internal/storage"
)

// fakeWidget records what the platform does to it.
type fakeWidget struct {
	resets    int
	lastCfg   core.RuntimeConfig
	lastInput core.InputFrame
	stats     core.SessionStats
}

func (f *fakeWidget) ID() string    { return "fake" }
func (f *fakeWidget) Title() string { return "Fake" }

func (f *fakeWidget) Reset(cfg core.RuntimeConfig) {
	f.resets++
	f.lastCfg = cfg
	f.stats = core.SessionStats{}
}

func (f *fakeWidget) Step(in core.InputFrame) core.StepResult {
	f.stats.Frames++
	f.lastInput = copyInput(in)
	return core.StepResult{State: f.State()}
}

// copyInput snapshots a frame the model clears after stepping.
func copyInput(in core.InputFrame) core.InputFrame {
	out := core.NewInputFrame()
	for a, v := range in.Actions {
		out.Actions[a] = v
	}
	out.Pointer = in.Pointer
	return out
}

func (f *fakeWidget) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "fake")
}

func (f *fakeWidget) State() core.WidgetState  { return core.WidgetState{Phase: "falling"} }
func (f *fakeWidget) Stats() core.SessionStats { return f.stats }

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func testStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testModel(t *testing.T, w *fakeWidget, opts Options) Model {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = quietLogger()
	}
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 9}
	return NewModel(w, cfg, opts)
}

// tick delivers a frame for the model's live loop.
func tick(t *testing.T, m Model) Model {
	t.Helper()
	next, _ := m.Update(TickMsg{Gen: m.Mount().Loop.gen})
	return next.(Model)
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}
