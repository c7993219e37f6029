// Package glyphball implements the glyph widget: the entrance animation of a
// letter built from cells, followed by a breakout simulation that plays
// inside it once started.
package glyphball

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/glyphball/internal/core"
	"github.com/vovakirdan/glyphball/internal/engine"
	"github.com/vovakirdan/glyphball/internal/entrance"
	"github.com/vovakirdan/glyphball/internal/registry"
)

// Mode selects how the widget is driven.
type Mode int

const (
	ModeInteractive Mode = iota // Pointer moves the paddle, start on command
	ModeAttract                 // Paddle follows the ball, starts on its own
)

// Options are the cosmetic settings shared by every widget instance.
type Options struct {
	Palette     []core.Color
	BallRune    rune
	FlatRune    rune
	PaddleColor core.Color
	BallColor   core.Color
	ShowHUD     bool
}

// DefaultOptions returns the built-in look.
func DefaultOptions() Options {
	return Options{
		Palette:     core.DefaultPalette,
		BallRune:    '●',
		FlatRune:    '▬',
		PaddleColor: core.ColorBrightWhite,
		BallColor:   core.ColorBrightWhite,
		ShowHUD:     true,
	}
}

// options is set once from the CLI before any widget is created.
var options = DefaultOptions()

// Configure sets the options used by widgets created afterwards.
// Zero-valued fields fall back to the defaults.
func Configure(opts Options) {
	def := DefaultOptions()
	if len(opts.Palette) == 0 {
		opts.Palette = def.Palette
	}
	if opts.BallRune == 0 {
		opts.BallRune = def.BallRune
	}
	if opts.FlatRune == 0 {
		opts.FlatRune = def.FlatRune
	}
	options = opts
}

func init() {
	registry.Register("glyphball", func() registry.Widget { return New() })
	registry.Register("glyphball_attract", func() registry.Widget { return NewAttract() })
}

// Widget composes the entrance choreographer and the physics simulator.
type Widget struct {
	mode Mode
	opts Options

	choreo *entrance.Choreographer
	sim    *engine.Simulator
	last   engine.Events
	stats  core.SessionStats

	runtime        core.RuntimeConfig
	view           Viewport
	frameDur       time.Duration
	screenTooSmall bool
}

// New creates a pointer-driven widget.
func New() *Widget {
	return &Widget{mode: ModeInteractive}
}

// NewAttract creates a self-playing widget.
func NewAttract() *Widget {
	return &Widget{mode: ModeAttract}
}

// ID returns the unique identifier for this widget.
func (w *Widget) ID() string {
	if w.mode == ModeAttract {
		return "glyphball_attract"
	}
	return "glyphball"
}

// Title returns the display name for this widget.
func (w *Widget) Title() string {
	if w.mode == ModeAttract {
		return "Glyphball (Attract)"
	}
	return "Glyphball"
}

// Reset mounts the widget from scratch. The seed drives respawn directions,
// so equal seeds and inputs give equal runs.
func (w *Widget) Reset(runtime core.RuntimeConfig) {
	if runtime.TickRate <= 0 {
		runtime.TickRate = 60
	}
	w.runtime = runtime
	w.opts = options
	w.frameDur = time.Second / time.Duration(runtime.TickRate)

	w.view = NewViewport(runtime.ScreenW, runtime.ScreenH)
	w.screenTooSmall = runtime.ScreenW < MinScreenW || runtime.ScreenH < MinScreenH

	w.choreo = entrance.New()
	w.sim = engine.NewSimulator(rand.New(rand.NewSource(runtime.Seed))) //#nosec G404 -- gameplay randomness
	w.last = engine.Events{}
	w.stats = core.SessionStats{}
}

// Step advances the widget by one frame.
func (w *Widget) Step(in core.InputFrame) core.StepResult {
	if w.screenTooSmall {
		return core.StepResult{State: w.State()}
	}

	if in.Has(core.ActionRestart) {
		w.Reset(w.runtime)
		return core.StepResult{State: w.State()}
	}

	w.stats.Frames++
	w.choreo.Advance(w.frameDur)

	switch w.mode {
	case ModeAttract:
		if w.choreo.Ready() {
			w.start()
		}
		if w.sim.Phase() == engine.PhaseRunning {
			w.track()
		}
	default:
		if in.Pointer.Moved {
			w.sim.PointerMoved(w.view.ToPlayfieldX(in.Pointer.X))
		}
		if in.Has(core.ActionStart) {
			w.start()
		}
	}

	w.last = w.sim.Step(w.frameDur)
	w.record(w.last)

	return core.StepResult{State: w.State()}
}

// start ends the floating animation and starts the simulation.
// Before the glyph has settled the command is ignored.
func (w *Widget) start() {
	if !w.choreo.Stop() {
		return
	}
	w.sim.Start()
}

// track moves the paddle under the ball with a slowly drifting offset so the
// ball leaves the paddle at varying angles.
func (w *Widget) track() {
	s := w.sim.State()
	drift := 4 * math.Sin(float64(s.Frames)/90)
	w.sim.PointerMoved(s.Ball.X + drift)
}

func (w *Widget) record(ev engine.Events) {
	if ev.CellRemoved {
		w.stats.CellsCleared++
	}
	if ev.Regenerated {
		w.stats.Regenerations++
	}
	if ev.PaddleHit {
		w.stats.PaddleHits++
	}
	if ev.Respawned {
		w.stats.Respawns++
	}
	if ev.FlattenEntered {
		w.stats.Flattens++
	}
}

// State returns the externally visible status.
func (w *Widget) State() core.WidgetState {
	return core.WidgetState{
		Phase:        w.choreo.Phase().String(),
		Running:      w.sim.Phase() == engine.PhaseRunning,
		CellsCleared: w.stats.CellsCleared,
		Regenerated:  w.stats.Regenerations,
	}
}

// Stats returns the counters accumulated since the last Reset.
func (w *Widget) Stats() core.SessionStats {
	return w.stats
}

// LastEvents returns what happened in the most recent frame.
func (w *Widget) LastEvents() engine.Events {
	return w.last
}

// Viewport returns the current playfield placement.
func (w *Widget) Viewport() Viewport {
	return w.view
}
