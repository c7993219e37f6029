package engine

import "github.com/vovakirdan/glyphball/internal/core"

// ProjectPointer maps a pointer x coordinate (playfield units) to the paddle's
// left edge, centering the paddle under the pointer within the playfield.
func ProjectPointer(pointerX float64) float64 {
	return core.ClampF(pointerX-PaddleWidth/2, 0, Width-PaddleWidth)
}
