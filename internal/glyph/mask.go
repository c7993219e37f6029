// Package glyph defines the letterform drawn by the widget's cell grid and the
// order in which its cells enter the screen.
package glyph

import "sync"

// Grid dimensions in cells.
const (
	Rows = 10
	Cols = 16
)

// BandRows is the height of the glyph band at the top of the grid.
const BandRows = 4

// bitmap is the glyph band. '#' marks a glyph cell; rows below the band are
// empty play space.
var bitmap = [BandRows]string{
	"..############..",
	"####............",
	"####............",
	"..############..",
}

// Cell identifies a grid cell.
type Cell struct {
	Row int
	Col int
}

// BelongsToGlyph reports whether the cell at (row, col) is part of the glyph.
// Coordinates outside the grid never belong.
func BelongsToGlyph(row, col int) bool {
	if row < 0 || row >= BandRows || col < 0 || col >= Cols {
		return false
	}
	return bitmap[row][col] == '#'
}

var (
	orderOnce sync.Once
	order     []Cell
)

// FallOrder returns the glyph cells in row-major, column-ascending order.
// The order is computed once; callers receive their own copy.
func FallOrder() []Cell {
	orderOnce.Do(func() {
		for row := range Rows {
			for col := range Cols {
				if BelongsToGlyph(row, col) {
					order = append(order, Cell{Row: row, Col: col})
				}
			}
		}
	})

	out := make([]Cell, len(order))
	copy(out, order)
	return out
}

// Count returns the number of glyph cells.
func Count() int {
	FallOrder()
	return len(order)
}

// ColorIndex returns the palette slot for a cell. Purely cosmetic.
func ColorIndex(row, col, paletteSize int) int {
	if paletteSize <= 0 {
		return 0
	}
	return (row + col) % paletteSize
}
