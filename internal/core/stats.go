package core

// SessionStats are the counters a widget accumulates while mounted.
// They summarize a session; they are not enough to restore one.
type SessionStats struct {
	Frames        int
	CellsCleared  int
	Regenerations int
	PaddleHits    int
	Respawns      int
	Flattens      int
}
