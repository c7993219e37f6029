// Package engine implements the breakout simulation that runs inside the glyph
// once the entrance animation has finished: ball kinematics, wall, paddle and
// cell collisions, and the timed flattened sub-mode.
//
// All coordinates are in playfield units. The grid geometry is fixed; nothing
// here is configurable at runtime.
package engine

import (
	"github.com/vovakirdan/glyphball/internal/core"
	"github.com/vovakirdan/glyphball/internal/glyph"
)

// Grid geometry in playfield units.
const (
	CellSize = 3
	Margin   = 1
	Pitch    = CellSize + Margin

	Width  = glyph.Cols*Pitch + Margin
	Height = glyph.Rows*Pitch + Margin
)

// CellBox returns the bounding box of a grid cell.
func CellBox(c glyph.Cell) core.Box {
	return core.NewBox(
		float64(Margin+c.Col*Pitch),
		float64(Margin+c.Row*Pitch),
		CellSize,
		CellSize,
	)
}
