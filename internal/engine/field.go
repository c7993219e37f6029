package engine

import "github.com/vovakirdan/glyphball/internal/glyph"

// fallOrder is the iteration order for collision tests and rendering.
var fallOrder = glyph.FallOrder()

// CellField is the set of destructible cells still standing.
// It is a value type so simulation states can be copied freely.
type CellField struct {
	active [glyph.Rows][glyph.Cols]bool
	count  int
}

// NewCellField returns a field holding every glyph cell.
func NewCellField() CellField {
	var f CellField
	f.Initialize()
	return f
}

// Initialize (re)fills the field with the full glyph set.
func (f *CellField) Initialize() {
	f.active = [glyph.Rows][glyph.Cols]bool{}
	f.count = 0
	for _, c := range fallOrder {
		f.active[c.Row][c.Col] = true
		f.count++
	}
}

// Remove deactivates a cell. It returns false if the cell was not active.
func (f *CellField) Remove(c glyph.Cell) bool {
	if !f.Has(c) {
		return false
	}
	f.active[c.Row][c.Col] = false
	f.count--
	return true
}

// Has reports whether the cell is active.
func (f CellField) Has(c glyph.Cell) bool {
	if c.Row < 0 || c.Row >= glyph.Rows || c.Col < 0 || c.Col >= glyph.Cols {
		return false
	}
	return f.active[c.Row][c.Col]
}

// Len returns the number of active cells.
func (f CellField) Len() int {
	return f.count
}

// IsEmpty reports whether every cell has been removed.
func (f CellField) IsEmpty() bool {
	return f.count == 0
}

// Cells returns the active cells in fall order.
func (f CellField) Cells() []glyph.Cell {
	out := make([]glyph.Cell, 0, f.count)
	for _, c := range fallOrder {
		if f.active[c.Row][c.Col] {
			out = append(out, c)
		}
	}
	return out
}
