package glyphball

import "github.com/vovakirdan/glyphball/internal/core"

const (
	halfUpper uint8 = 1 << iota
	halfLower
)

// raster collects unit squares and folds vertical pairs into half blocks.
type raster struct {
	w, h   int // In units
	halves []uint8
	colors []core.Color
}

func newRaster(w, h int) *raster {
	rows := (h + unitsPerRow - 1) / unitsPerRow
	return &raster{
		w:      w,
		h:      h,
		halves: make([]uint8, w*rows),
		colors: make([]core.Color, w*rows),
	}
}

// plot marks the unit square at (x, u). Out of range squares are clipped.
func (r *raster) plot(x, u int, c core.Color) {
	if x < 0 || x >= r.w || u < 0 || u >= r.h {
		return
	}
	i := (u/unitsPerRow)*r.w + x
	if u%unitsPerRow == 0 {
		r.halves[i] |= halfUpper
	} else {
		r.halves[i] |= halfLower
	}
	r.colors[i] = c
}

// fill plots a w×h block of units with its top-left at (x, u).
func (r *raster) fill(x, u, w, h int, c core.Color) {
	for dy := range h {
		for dx := range w {
			r.plot(x+dx, u+dy, c)
		}
	}
}

// blit writes the raster to dst with its origin at the viewport.
func (r *raster) blit(dst *core.Screen, v Viewport) {
	for i, bits := range r.halves {
		var ch rune
		switch bits {
		case halfUpper:
			ch = '▀'
		case halfLower:
			ch = '▄'
		case halfUpper | halfLower:
			ch = '█'
		default:
			continue
		}
		dst.SetColored(v.Left+i%r.w, v.Top+i/r.w, ch, r.colors[i])
	}
}
