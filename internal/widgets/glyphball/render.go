package glyphball

import (
	"fmt"
	"math"

	"github.com/vovakirdan/glyphball/internal/core"
	"github.com/vovakirdan/glyphball/internal/engine"
	"github.com/vovakirdan/glyphball/internal/glyph"
)

const startHint = "click or press space"

// Render draws the current state to the screen.
func (w *Widget) Render(dst *core.Screen) {
	dst.Clear()

	if w.screenTooSmall {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", MinScreenW, MinScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg, core.ColorDefault)
		dst.DrawTextCentered(dst.Height()/2+1, hint, core.ColorGray)
		return
	}

	v := w.view
	dst.DrawFrame(core.NewRect(v.Left-1, v.Top-1, engine.Width+2, PlayRows+2), core.ColorGray)

	r := newRaster(engine.Width, engine.Height)
	if w.sim.Phase() == engine.PhaseRunning {
		w.renderSimulation(dst, r)
	} else {
		w.renderEntrance(dst, r)
	}

	if w.opts.ShowHUD {
		w.renderHUD(dst)
	}
}

// renderEntrance draws the falling or floating glyph.
func (w *Widget) renderEntrance(dst *core.Screen, r *raster) {
	for _, c := range glyph.FallOrder() {
		dy, visible := w.choreo.CellOffset(c.Row, c.Col)
		if !visible {
			continue
		}
		box := engine.CellBox(c)
		r.fill(int(box.X), int(math.Round(box.Y+dy)), engine.CellSize, engine.CellSize, w.cellColor(c))
	}
	r.blit(dst, w.view)

	if w.choreo.Ready() {
		x := w.view.Left + (engine.Width-len(startHint))/2
		_, y := w.view.ToScreen(0, engine.Height*3/4)
		dst.DrawTextColored(x, y, startHint, core.ColorGray)
	}
}

// renderSimulation draws the cell field, paddle and ball.
func (w *Widget) renderSimulation(dst *core.Screen, r *raster) {
	f := w.sim.State().Frame()

	for _, c := range f.Cells {
		box := engine.CellBox(c)
		r.fill(int(box.X), int(box.Y), engine.CellSize, engine.CellSize, w.cellColor(c))
	}
	r.fill(int(math.Round(f.PaddleX)), int(f.PaddleY), int(f.PaddleW), int(f.PaddleH), w.opts.PaddleColor)
	r.blit(dst, w.view)

	ch := w.opts.BallRune
	if f.Flattened {
		ch = w.opts.FlatRune
	}
	bx, by := w.view.ToScreen(f.BallX, f.BallY)
	dst.SetColored(bx, by, ch, w.opts.BallColor)
}

// renderHUD writes counters into the top border.
func (w *Widget) renderHUD(dst *core.Screen) {
	var text string
	if w.sim.Phase() == engine.PhaseRunning {
		text = fmt.Sprintf(" cleared %d  regen %d ", w.stats.CellsCleared, w.stats.Regenerations)
	} else {
		text = fmt.Sprintf(" %s ", w.Title())
	}
	dst.DrawText(w.view.Left+1, w.view.Top-1, text)
}

func (w *Widget) cellColor(c glyph.Cell) core.Color {
	return w.opts.Palette[glyph.ColorIndex(c.Row, c.Col, len(w.opts.Palette))]
}

