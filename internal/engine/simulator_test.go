package engine

import (
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/glyphball/internal/glyph"
)

const frame = time.Second / 60

func TestProjectPointer(t *testing.T) {
	maxX := float64(Width - PaddleWidth)

	tests := []struct {
		name     string
		pointer  float64
		expected float64
	}{
		{"centered under pointer", 30, 30 - PaddleWidth/2},
		{"clamped left", 2, 0},
		{"far left", -100, 0},
		{"clamped right", Width - 1, maxX},
		{"far right", 1000, maxX},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ProjectPointer(tc.pointer); got != tc.expected {
				t.Errorf("ProjectPointer(%v) = %v, expected %v", tc.pointer, got, tc.expected)
			}
		})
	}

	for x := -20.0; x <= Width+20; x += 0.25 {
		got := ProjectPointer(x)
		if got < 0 || got > maxX {
			t.Fatalf("ProjectPointer(%v) = %v outside [0, %v]", x, got, maxX)
		}
	}
}

func TestSimulatorIdleUntilStarted(t *testing.T) {
	sim := NewSimulator(fixedRand(0))
	before := sim.State().Hash()

	for range 10 {
		sim.Step(frame)
	}

	if sim.Phase() != PhaseIdle {
		t.Errorf("phase = %v, expected idle", sim.Phase())
	}
	if sim.State().Hash() != before {
		t.Error("idle simulator should not advance")
	}

	if !sim.Start() {
		t.Fatal("Start should succeed from idle")
	}
	if sim.Start() {
		t.Error("second Start should report already running")
	}

	sim.Step(frame)
	if sim.State().Frames != 1 {
		t.Errorf("Frames = %d, expected 1", sim.State().Frames)
	}
}

func TestSimulatorPointerMoved(t *testing.T) {
	sim := NewSimulator(fixedRand(0))
	start := sim.State().Paddle.X

	// Idle: the position is kept but the paddle only moves once running.
	sim.PointerMoved(10)
	sim.Step(frame)
	if got := sim.State().Paddle.X; got != start {
		t.Errorf("paddle moved to %v while idle", got)
	}

	sim.Start()
	sim.Step(frame)
	if got := sim.State().Paddle.X; got != 4 {
		t.Errorf("paddle X = %v, expected 4", got)
	}

	sim.PointerMoved(500)
	if got := sim.State().Paddle.X; got != 4 {
		t.Errorf("paddle X = %v before the next frame, expected 4", got)
	}
	sim.Step(frame)
	if got := sim.State().Paddle.X; got != Width-PaddleWidth {
		t.Errorf("paddle X = %v, expected clamp to %v", got, Width-PaddleWidth)
	}

	// Without a new pointer event the paddle stays put.
	sim.Step(frame)
	if got := sim.State().Paddle.X; got != Width-PaddleWidth {
		t.Errorf("paddle X = %v after a frame without input", got)
	}
}

func TestSimulatorDeterminism(t *testing.T) {
	run := func() uint64 {
		sim := NewSimulator(rand.New(rand.NewSource(12345)))
		sim.Start()
		for i := range 3000 {
			if i%7 == 0 {
				sim.PointerMoved(float64(i%Width) + 0.5)
			}
			sim.Step(frame)
		}
		return sim.State().Hash()
	}

	if a, b := run(), run(); a != b {
		t.Errorf("determinism failed: hashes differ. Run1=%d, Run2=%d", a, b)
	}
}

func TestFrameHandoff(t *testing.T) {
	s := NewState()
	s.Field.Remove(glyph.Cell{Row: 0, Col: 2})

	f := s.Frame()

	if f.BallX != s.Ball.X || f.BallY != s.Ball.Y || f.BallRadius != BallRadius {
		t.Errorf("ball mismatch: %+v", f)
	}
	if f.PaddleX != s.Paddle.X || f.PaddleY != PaddleY || f.PaddleW != PaddleWidth || f.PaddleH != PaddleHeight {
		t.Errorf("paddle mismatch: %+v", f)
	}
	if len(f.Cells) != glyph.Count()-1 {
		t.Errorf("frame has %d cells, expected %d", len(f.Cells), glyph.Count()-1)
	}
}

func TestCellField(t *testing.T) {
	f := NewCellField()
	c := glyph.Cell{Row: 1, Col: 0}

	if !f.Has(c) {
		t.Fatalf("new field should contain %+v", c)
	}
	if f.Has(glyph.Cell{Row: 5, Col: 5}) {
		t.Error("field should not contain non-glyph cells")
	}
	if f.Has(glyph.Cell{Row: -1, Col: 0}) {
		t.Error("out-of-range cell reported active")
	}

	if !f.Remove(c) {
		t.Error("Remove of active cell should succeed")
	}
	if f.Remove(c) {
		t.Error("Remove of inactive cell should fail")
	}
	if f.Len() != glyph.Count()-1 {
		t.Errorf("Len() = %d, expected %d", f.Len(), glyph.Count()-1)
	}

	for _, cell := range f.Cells() {
		f.Remove(cell)
	}
	if !f.IsEmpty() {
		t.Fatal("field should be empty")
	}

	f.Initialize()
	if f.Len() != glyph.Count() {
		t.Errorf("Initialize() gave %d cells, expected %d", f.Len(), glyph.Count())
	}
}

func TestCellBoxLayout(t *testing.T) {
	b := CellBox(glyph.Cell{Row: 2, Col: 3})
	if b.X != Margin+3*Pitch || b.Y != Margin+2*Pitch || b.W != CellSize || b.H != CellSize {
		t.Errorf("CellBox = %+v", b)
	}

	last := CellBox(glyph.Cell{Row: glyph.Rows - 1, Col: glyph.Cols - 1})
	if last.Right()+Margin != Width || last.Bottom()+Margin != Height {
		t.Errorf("grid does not fill playfield: last cell %+v, playfield %dx%d", last, Width, Height)
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseIdle.String() != "idle" || PhaseRunning.String() != "running" || Phase(9).String() != "unknown" {
		t.Error("unexpected phase names")
	}
}
