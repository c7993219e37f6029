package engine

import (
	"math"

	"github.com/vovakirdan/glyphball/internal/glyph"
)

// Rand is the random source used to pick the respawn direction.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// State is the complete simulation state. It is a plain value: Tick never
// mutates its argument.
type State struct {
	Ball   Ball
	Paddle Paddle
	Field  CellField
	Frames uint64
}

// NewState returns the state at mount: ball at the spawn point heading up and
// to the right, paddle centered, full cell field.
func NewState() State {
	return State{
		Ball: Ball{
			X:      SpawnX,
			Y:      SpawnY,
			DX:     BaseDX,
			DY:     BaseDY,
			Radius: BallRadius,
		},
		Paddle: Paddle{
			X: (Width - PaddleWidth) / 2,
			Y: PaddleY,
		},
		Field: NewCellField(),
	}
}

// Input is what the outside world contributes to a frame.
type Input struct {
	PointerX   float64 // Pointer position in playfield units
	HasPointer bool    // Whether PointerX is set
}

// Events describes what happened during a single Tick.
type Events struct {
	WallBounce     bool
	Respawned      bool
	PaddleHit      bool
	CellRemoved    bool
	Cell           glyph.Cell // Valid when CellRemoved
	Regenerated    bool
	FlattenEntered bool
	FlattenExited  bool
}

// Tick advances the simulation by one frame lasting dt seconds and returns
// the new state. Velocities are per frame; only the flattened timer uses dt.
// Steps run in a fixed order: integrate, flattened timer, walls, respawn,
// paddle, cells.
func Tick(s State, in Input, dt float64, rng Rand) (State, Events) {
	if dt <= 0 {
		dt = FrameSeconds
	}
	var ev Events
	s.Frames++

	if in.HasPointer {
		s.Paddle.X = ProjectPointer(in.PointerX)
	}

	b := &s.Ball

	b.X += b.DX
	b.Y += b.DY

	if b.Flattened {
		b.Elapsed += dt
		if b.Elapsed > FlattenSeconds {
			b.unflatten()
			b.restoreBaseline()
			ev.FlattenExited = true
		}
	}

	if (b.X-b.Radius < 0 && b.DX < 0) || (b.X+b.Radius > Width && b.DX > 0) {
		b.DX = -b.DX
		ev.WallBounce = true
	}
	if !b.Flattened && b.Y-b.Radius < 0 && b.DY < 0 {
		b.DY = -b.DY
		ev.WallBounce = true
	}

	if b.Y+b.Radius > Height {
		respawn(b, rng)
		ev.Respawned = true
	}

	if bouncePaddle(b, &s.Paddle) {
		ev.PaddleHit = true
		if b.Flattened {
			b.unflatten()
			ev.FlattenExited = true
		}
	}

	if c, ok := firstHit(b, s.Field); ok {
		cx, cy := CellBox(c).Center()
		if math.Abs(b.X-cx) > math.Abs(b.Y-cy) {
			b.DX = -b.DX
		} else if !b.Flattened {
			b.DY = -b.DY
		}

		if c.Row < FlattenRows && !b.Flattened {
			b.flatten()
			ev.FlattenEntered = true
		}

		s.Field.Remove(c)
		ev.CellRemoved = true
		ev.Cell = c

		if s.Field.IsEmpty() {
			s.Field.Initialize()
			ev.Regenerated = true
		}
	}

	return s, ev
}

// respawn recenters the ball after it leaves the bottom of the playfield.
func respawn(b *Ball, rng Rand) {
	b.X = SpawnX
	b.Y = SpawnY
	b.DX = BaseDX
	if rng.Intn(2) == 0 {
		b.DX = -BaseDX
	}
	b.DY = BaseDY
	b.unflatten()
}

// firstHit returns the first active cell, in fall order, whose box overlaps
// the ball's box. Only one cell is resolved per frame.
func firstHit(b *Ball, f CellField) (glyph.Cell, bool) {
	box := b.Box()
	for _, c := range fallOrder {
		if !f.Has(c) {
			continue
		}
		if box.Intersects(CellBox(c)) {
			return c, true
		}
	}
	return glyph.Cell{}, false
}
