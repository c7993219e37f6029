package core

// RuntimeConfig contains configuration passed to widgets at mount time.
// Widgets use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic respawns
}

// WidgetState is the externally visible status of a mounted widget.
type WidgetState struct {
	Phase        string // Entrance phase name ("falling", "floating", "stopped")
	Running      bool   // Whether the simulation has been started
	CellsCleared int    // Cells destroyed since mount
	Regenerated  int    // Number of times the cell field was rebuilt
}

// StepResult is returned by Widget.Step() after each frame.
type StepResult struct {
	State WidgetState
}
