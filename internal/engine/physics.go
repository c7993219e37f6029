package engine

import (
	"math"

	"github.com/vovakirdan/glyphball/internal/core"
)

// Ball constants.
const (
	BallRadius = 1.0
	FlatRadius = 0.5

	// Baseline velocity per frame. BaseDY is upward.
	BaseDX = 0.35
	BaseDY = -0.5
)

// Paddle constants.
const (
	PaddleWidth  = 12.0
	PaddleHeight = 1.0
	PaddleY      = Height - 3
)

// Spawn point used at mount and after a miss.
const (
	SpawnX = Width / 2.0
	SpawnY = PaddleY - 6
)

// Timing. FrameSeconds is the reference frame length, used when a tick is
// given no duration.
const (
	FrameSeconds   = 1.0 / 60
	FlattenSeconds = 0.5
)

// FlattenRows is the row threshold for entering flattened mode: cells in rows
// above it are the top half of the glyph band.
const FlattenRows = 2

// MaxDeflection is the paddle bounce angle at either paddle edge.
const MaxDeflection = math.Pi / 4

// DefaultSpeed is used when a paddle hit finds a degenerate velocity.
var DefaultSpeed = math.Hypot(BaseDX, BaseDY)

// Ball is the ball state. While Flattened, DY is zero and Radius is FlatRadius.
type Ball struct {
	X, Y      float64
	DX, DY    float64
	Radius    float64
	Flattened bool
	Elapsed   float64 // Seconds spent flattened
}

// Box returns the ball's bounding box.
func (b *Ball) Box() core.Box {
	return core.BoxAround(b.X, b.Y, b.Radius)
}

// Speed returns the velocity magnitude.
func (b *Ball) Speed() float64 {
	return math.Hypot(b.DX, b.DY)
}

// flatten enters flattened mode.
func (b *Ball) flatten() {
	b.Flattened = true
	b.Elapsed = 0
	b.Radius = FlatRadius
	b.DY = 0
}

// unflatten leaves flattened mode and restores the baseline radius.
func (b *Ball) unflatten() {
	b.Flattened = false
	b.Elapsed = 0
	b.Radius = BallRadius
}

// restoreBaseline sets the baseline speed, keeping horizontal direction and
// heading upward.
func (b *Ball) restoreBaseline() {
	if b.DX < 0 {
		b.DX = -BaseDX
	} else {
		b.DX = BaseDX
	}
	b.DY = BaseDY
}

// Paddle is the player's paddle. Only X changes after mount.
type Paddle struct {
	X float64 // Left edge
	Y float64 // Top edge
}

// Box returns the paddle's bounding box.
func (p *Paddle) Box() core.Box {
	return core.NewBox(p.X, p.Y, PaddleWidth, PaddleHeight)
}

// CenterX returns the paddle's horizontal center.
func (p *Paddle) CenterX() float64 {
	return p.X + PaddleWidth/2
}

// bouncePaddle reflects the ball off the paddle if they touch.
// The outgoing angle depends only on where along the paddle the ball hit;
// speed is preserved.
func bouncePaddle(b *Ball, p *Paddle) bool {
	if !p.Box().CircleIntersects(b.X, b.Y, b.Radius) {
		return false
	}

	t := core.ClampF((b.X-p.X)/PaddleWidth, 0, 1)
	angle := (t*2 - 1) * MaxDeflection

	speed := b.Speed()
	if speed < 1e-9 {
		speed = DefaultSpeed
	}

	b.DX = speed * math.Sin(angle)
	b.DY = -speed * math.Cos(angle)
	return true
}
