package engine

import (
	"math"

	"github.com/vovakirdan/glyphball/internal/glyph"
)

// Frame is the per-frame data handed to the renderer.
type Frame struct {
	BallX, BallY float64
	BallRadius   float64
	Flattened    bool

	PaddleX, PaddleY float64
	PaddleW, PaddleH float64

	Cells []glyph.Cell // Active cells in fall order
}

// Frame returns the render handoff for the current state.
func (s State) Frame() Frame {
	return Frame{
		BallX:      s.Ball.X,
		BallY:      s.Ball.Y,
		BallRadius: s.Ball.Radius,
		Flattened:  s.Ball.Flattened,
		PaddleX:    s.Paddle.X,
		PaddleY:    s.Paddle.Y,
		PaddleW:    PaddleWidth,
		PaddleH:    PaddleHeight,
		Cells:      s.Field.Cells(),
	}
}

// Hash returns a simple hash of the state for determinism testing.
func (s State) Hash() uint64 {
	h := s.Frames
	for _, v := range []float64{
		s.Ball.X, s.Ball.Y, s.Ball.DX, s.Ball.DY, s.Ball.Radius, s.Ball.Elapsed, s.Paddle.X,
	} {
		h = h*31 + math.Float64bits(v)
	}
	if s.Ball.Flattened {
		h = h*31 + 1
	}
	for _, c := range s.Field.Cells() {
		h = h*31 + uint64(c.Row*glyph.Cols+c.Col) //#nosec G115 -- hash computation
	}
	return h
}
