package glyphball

import (
	"math"

	"github.com/vovakirdan/glyphball/internal/engine"
)

// A terminal cell is one playfield unit wide and two units tall.
// Half-block glyphs give one-unit vertical resolution.
const unitsPerRow = 2

// PlayRows is the number of screen rows the playfield occupies.
const PlayRows = (engine.Height + unitsPerRow - 1) / unitsPerRow

// Minimum screen size: playfield plus a one-cell border.
const (
	MinScreenW = engine.Width + 2
	MinScreenH = PlayRows + 2
)

// Viewport maps playfield units to screen cells. The playfield is centred
// on the screen.
type Viewport struct {
	Left, Top int // Screen position of playfield origin
}

// NewViewport centres the playfield on a screen of the given size.
func NewViewport(screenW, screenH int) Viewport {
	return Viewport{
		Left: max((screenW-engine.Width)/2, 1),
		Top:  max((screenH-PlayRows)/2, 1),
	}
}

// ToScreen converts a playfield point to a screen cell.
func (v Viewport) ToScreen(x, y float64) (int, int) {
	return v.Left + int(math.Floor(x)), v.Top + int(math.Floor(y/unitsPerRow))
}

// ToPlayfieldX converts a terminal column to a playfield x coordinate,
// taking the centre of the column.
func (v Viewport) ToPlayfieldX(col int) float64 {
	return float64(col-v.Left) + 0.5
}
