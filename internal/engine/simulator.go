package engine

import "time"

// Phase is the simulator's lifecycle state.
type Phase int

const (
	PhaseIdle    Phase = iota // Mounted, waiting for the start command
	PhaseRunning              // Ticking every frame, forever
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	default:
		return "unknown"
	}
}

// Simulator owns a simulation state and advances it with Tick.
// It is not safe for concurrent use; the platform drives it from a single
// event loop.
type Simulator struct {
	state   State
	phase   Phase
	rng     Rand
	pointer Input
}

// NewSimulator creates an idle simulator using rng for respawn directions.
func NewSimulator(rng Rand) *Simulator {
	return &Simulator{
		state: NewState(),
		phase: PhaseIdle,
		rng:   rng,
	}
}

// Start moves the simulator from idle to running.
// It returns false if it was already running.
func (s *Simulator) Start() bool {
	if s.phase == PhaseRunning {
		return false
	}
	s.phase = PhaseRunning
	return true
}

// Phase returns the current lifecycle state.
func (s *Simulator) Phase() Phase {
	return s.phase
}

// PointerMoved records a pointer position in playfield units. The paddle
// follows it on the next running frame; while idle the latest position is kept.
func (s *Simulator) PointerMoved(x float64) {
	s.pointer = Input{PointerX: x, HasPointer: true}
}

// Step runs one frame lasting dt. It does nothing while idle.
func (s *Simulator) Step(dt time.Duration) Events {
	if s.phase != PhaseRunning {
		return Events{}
	}
	var ev Events
	s.state, ev = Tick(s.state, s.pointer, dt.Seconds(), s.rng)
	s.pointer = Input{}
	return ev
}

// State returns a copy of the simulation state.
func (s *Simulator) State() State {
	return s.state
}
