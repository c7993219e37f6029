// Package entrance sequences the glyph's intro: cells drop into place one
// after another, then the whole glyph idles in a floating oscillation until
// the simulation is started.
//
// The choreographer owns timing and visibility only. Time passes exclusively
// through Advance, so it can be driven by any frame loop (or a test).
package entrance

import (
	"math"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/vovakirdan/glyphball/internal/glyph"
)

// Timing of the entrance animation.
const (
	Stagger      = 40 * time.Millisecond  // Delay between consecutive cells
	FallDuration = 400 * time.Millisecond // Time for one cell to land
	TailPad      = 600 * time.Millisecond // Pause after the last cell starts
	FloatPeriod  = 2 * time.Second        // One full idle oscillation
)

// Vertical distances in playfield units.
const (
	FallDistance   = 20.0 // Cells start this far above their resting place
	FloatAmplitude = 0.6
)

// Phase is the stage of the entrance animation.
type Phase int

const (
	PhaseFalling Phase = iota
	PhaseFloating
	PhaseStopped
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseFalling:
		return "falling"
	case PhaseFloating:
		return "floating"
	case PhaseStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Choreographer drives the entrance animation for every glyph cell.
type Choreographer struct {
	order   []glyph.Cell
	index   map[glyph.Cell]int
	tweens  []*gween.Tween
	offsets []float64

	elapsed    time.Duration
	floatStart time.Duration
	phase      Phase
}

// New creates a choreographer in the falling phase.
func New() *Choreographer {
	order := glyph.FallOrder()
	c := &Choreographer{
		order:   order,
		index:   make(map[glyph.Cell]int, len(order)),
		tweens:  make([]*gween.Tween, len(order)),
		offsets: make([]float64, len(order)),
		phase:   PhaseFalling,
	}

	for i, cell := range order {
		c.index[cell] = i
		c.tweens[i] = gween.New(-FallDistance, 0, float32(FallDuration.Seconds()), ease.OutBounce)
		c.offsets[i] = -FallDistance
	}
	return c
}

// Delay returns when the i-th cell of the fall order starts falling.
func Delay(i int) time.Duration {
	return time.Duration(i) * Stagger
}

// Total returns how long the falling phase lasts.
func (c *Choreographer) Total() time.Duration {
	return Stagger*time.Duration(len(c.order)) + TailPad
}

// Advance moves the animation forward by dt. It returns true exactly once,
// on the call that flips the phase from falling to floating.
func (c *Choreographer) Advance(dt time.Duration) bool {
	if dt <= 0 {
		return false
	}

	prev := c.elapsed
	c.elapsed += dt

	if c.phase != PhaseFalling {
		return false
	}

	for i, tw := range c.tweens {
		start := Delay(i)
		if c.elapsed <= start {
			break
		}
		step := c.elapsed - max(prev, start)
		val, _ := tw.Update(float32(step.Seconds()))
		c.offsets[i] = float64(val)
	}

	if c.elapsed >= c.Total() {
		c.phase = PhaseFloating
		c.floatStart = c.elapsed
		return true
	}
	return false
}

// Phase returns the current phase.
func (c *Choreographer) Phase() Phase {
	return c.phase
}

// Ready reports whether the start affordance should be offered.
func (c *Choreographer) Ready() bool {
	return c.phase == PhaseFloating
}

// Stop ends the floating phase when the simulation starts.
// It has no effect unless the glyph is floating.
func (c *Choreographer) Stop() bool {
	if c.phase != PhaseFloating {
		return false
	}
	c.phase = PhaseStopped
	return true
}

// Elapsed returns the total animation time so far.
func (c *Choreographer) Elapsed() time.Duration {
	return c.elapsed
}

// CellOffset returns the vertical render offset of a cell and whether it is
// visible. Cells outside the glyph are never visible.
func (c *Choreographer) CellOffset(row, col int) (float64, bool) {
	i, ok := c.index[glyph.Cell{Row: row, Col: col}]
	if !ok {
		return 0, false
	}

	switch c.phase {
	case PhaseFalling:
		if c.elapsed < Delay(i) {
			return 0, false
		}
		return c.offsets[i], true
	case PhaseFloating:
		t := (c.elapsed - c.floatStart).Seconds() / FloatPeriod.Seconds()
		return FloatAmplitude * math.Sin(2*math.Pi*t+floatPhase(row, col)), true
	default:
		return 0, true
	}
}

// floatPhase desynchronizes the idle motion across the glyph.
func floatPhase(row, col int) float64 {
	return float64(col)*0.45 + float64(row)*0.8
}
