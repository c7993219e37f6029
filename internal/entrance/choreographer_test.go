package entrance

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/glyphball/internal/glyph"
)

const frame = time.Second / 60

func TestDelays(t *testing.T) {
	n := glyph.Count()
	if got, want := Delay(n-1), time.Duration(n-1)*Stagger; got != want {
		t.Errorf("last cell delay = %v, expected %v", got, want)
	}
	if Delay(0) != 0 {
		t.Errorf("first cell delay = %v, expected 0", Delay(0))
	}
}

func TestTransitionToFloating(t *testing.T) {
	c := New()
	n := glyph.Count()
	earliest := Delay(n-1) + TailPad

	if c.Phase() != PhaseFalling {
		t.Fatalf("initial phase = %v, expected falling", c.Phase())
	}

	flips := 0
	var flippedAt time.Duration
	for c.Elapsed() < c.Total()+time.Second {
		if c.Advance(10 * time.Millisecond) {
			flips++
			flippedAt = c.Elapsed()
		}
		if c.Phase() == PhaseFalling && c.Ready() {
			t.Fatal("Ready while falling")
		}
	}

	if flips != 1 {
		t.Fatalf("phase flipped %d times, expected once", flips)
	}
	if flippedAt < earliest {
		t.Errorf("floating at %v, expected no earlier than %v", flippedAt, earliest)
	}
	if flippedAt != c.Total() {
		t.Errorf("floating at %v, expected %v", flippedAt, c.Total())
	}
	if c.Phase() != PhaseFloating || !c.Ready() {
		t.Errorf("phase = %v ready = %v, expected floating and ready", c.Phase(), c.Ready())
	}
}

func TestStaggeredVisibility(t *testing.T) {
	c := New()
	order := glyph.FallOrder()
	first, second := order[0], order[1]

	if _, visible := c.CellOffset(first.Row, first.Col); !visible {
		t.Error("first cell should be visible immediately")
	}
	if _, visible := c.CellOffset(second.Row, second.Col); visible {
		t.Error("second cell should be hidden before its delay")
	}

	c.Advance(Stagger)
	if _, visible := c.CellOffset(second.Row, second.Col); !visible {
		t.Error("second cell should be visible once its delay has passed")
	}

	if _, visible := c.CellOffset(9, 9); visible {
		t.Error("non-glyph cells never animate")
	}
}

func TestCellsLand(t *testing.T) {
	c := New()
	first := glyph.FallOrder()[0]

	dy, _ := c.CellOffset(first.Row, first.Col)
	if dy != -FallDistance {
		t.Errorf("initial offset = %v, expected %v", dy, -FallDistance)
	}

	for range 30 {
		c.Advance(frame)
	}

	dy, _ = c.CellOffset(first.Row, first.Col)
	if math.Abs(dy) > 1e-3 {
		t.Errorf("offset after landing = %v, expected ~0", dy)
	}
}

func TestFloatingOscillation(t *testing.T) {
	c := New()
	c.Advance(c.Total())
	c.Advance(300 * time.Millisecond)

	a, _ := c.CellOffset(0, 2)
	b, _ := c.CellOffset(0, 3)
	if a == b {
		t.Error("neighbouring cells should not float in sync")
	}

	for range 240 {
		c.Advance(frame)
		for _, cell := range glyph.FallOrder() {
			dy, visible := c.CellOffset(cell.Row, cell.Col)
			if !visible {
				t.Fatalf("cell %+v hidden while floating", cell)
			}
			if math.Abs(dy) > FloatAmplitude+1e-9 {
				t.Fatalf("cell %+v offset %v exceeds amplitude", cell, dy)
			}
		}
	}
}

func TestStop(t *testing.T) {
	c := New()

	if c.Stop() {
		t.Error("Stop should be ignored while falling")
	}

	c.Advance(c.Total())
	if !c.Stop() {
		t.Fatal("Stop should succeed while floating")
	}
	if c.Phase() != PhaseStopped || c.Ready() {
		t.Errorf("phase = %v ready = %v after Stop", c.Phase(), c.Ready())
	}
	if c.Stop() {
		t.Error("second Stop should be ignored")
	}
	if c.Advance(time.Second) {
		t.Error("stopped choreographer must not flip again")
	}
}

func TestAdvanceIgnoresNonPositive(t *testing.T) {
	c := New()
	c.Advance(0)
	c.Advance(-time.Second)
	if c.Elapsed() != 0 {
		t.Errorf("Elapsed() = %v, expected 0", c.Elapsed())
	}
}
