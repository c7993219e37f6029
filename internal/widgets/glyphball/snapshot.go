package glyphball

import "github.com/vovakirdan/glyphball/internal/core"

// Snapshot contains the widget state relevant for determinism checks.
// Uses primitive types only for stable comparison.
type Snapshot struct {
	Mode      int
	Entrance  string
	ElapsedMS int64
	Running   bool
	SimHash   uint64
	Stats     core.SessionStats
}

// Snapshot returns the current widget state as a Snapshot.
func (w *Widget) Snapshot() Snapshot {
	return Snapshot{
		Mode:      int(w.mode),
		Entrance:  w.choreo.Phase().String(),
		ElapsedMS: w.choreo.Elapsed().Milliseconds(),
		Running:   w.State().Running,
		SimHash:   w.sim.State().Hash(),
		Stats:     w.stats,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(snap.Mode)            //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.ElapsedMS) //#nosec G115 -- hash computation
	for _, b := range []byte(snap.Entrance) {
		h = h*31 + uint64(b)
	}
	if snap.Running {
		h = h*31 + 1
	}
	h = h*31 + snap.SimHash

	for _, v := range []int{
		snap.Stats.Frames,
		snap.Stats.CellsCleared,
		snap.Stats.Regenerations,
		snap.Stats.PaddleHits,
		snap.Stats.Respawns,
		snap.Stats.Flattens,
	} {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	return h
}
