package glyphball

import (
	"testing"

	"github.com/vovakirdan/glyphball/internal/core"
)

func TestNewViewport(t *testing.T) {
	tests := []struct {
		w, h      int
		left, top int
	}{
		{80, 24, 7, 1},
		{MinScreenW, MinScreenH, 1, 1},
		{120, 41, 27, 10},
	}

	for _, tt := range tests {
		v := NewViewport(tt.w, tt.h)
		if v.Left != tt.left || v.Top != tt.top {
			t.Errorf("NewViewport(%d, %d) = %+v, want left %d top %d", tt.w, tt.h, v, tt.left, tt.top)
		}
	}
}

func TestViewportRoundTrip(t *testing.T) {
	v := Viewport{Left: 7, Top: 1}

	for x := range 65 {
		col, _ := v.ToScreen(float64(x), 0)
		if got := v.ToPlayfieldX(col); got != float64(x)+0.5 {
			t.Errorf("x=%d: ToPlayfieldX(%d) = %v", x, col, got)
		}
	}

	if _, row := v.ToScreen(0, 40.9); row != v.Top+20 {
		t.Errorf("bottom unit maps to row %d", row)
	}
}

func TestRasterHalfBlocks(t *testing.T) {
	r := newRaster(4, 4)
	r.plot(0, 0, core.ColorRed)
	r.plot(1, 1, core.ColorRed)
	r.fill(2, 0, 1, 2, core.ColorBlue)
	r.plot(-1, 0, core.ColorRed)
	r.plot(0, 9, core.ColorRed)

	scr := core.NewScreen(4, 2)
	r.blit(scr, Viewport{})

	want := []string{"▀▄█ ", "    "}
	for y, row := range want {
		if got := scr.Row(y); got != row {
			t.Errorf("row %d = %q, want %q", y, got, row)
		}
	}
	if c := scr.GetCell(2, 0).Color; c != core.ColorBlue {
		t.Errorf("color = %v, want blue", c)
	}
}
