// Package registry provides a global registry for widget factories.
// Widgets register themselves in init() functions, allowing the platform
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/glyphball/internal/core"
)

// Widget is the interface every mountable widget implements.
// Widgets contain pure logic with no external dependencies (especially no
// Bubble Tea). The platform handles input mapping, timing, and rendering.
type Widget interface {
	// ID returns a unique identifier (e.g., "glyphball").
	// Used for CLI commands and session storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset mounts the widget, discarding any previous state.
	// The RuntimeConfig provides screen dimensions, tick rate and RNG seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the widget by one frame.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into the provided screen buffer.
	Render(dst *core.Screen)

	// State returns the externally visible status.
	State() core.WidgetState

	// Stats returns the counters accumulated since the last Reset.
	Stats() core.SessionStats
}

// Info contains metadata about a registered widget.
type Info struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a widget.
type Factory func() Widget

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a widget factory to the registry.
// Typically called from the widget package's init() function.
// Panics if a widget with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: widget %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance
	g := f()
	titles[id] = g.Title()
}

// List returns information about all registered widgets, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(factories))
	for id := range factories {
		result = append(result, Info{
			ID:    id,
			Title: titles[id],
		})
	}

	slices.SortFunc(result, func(a, b Info) int {
		return strings.Compare(a.ID, b.ID)
	})

	return result
}

// Create instantiates a new widget by its ID.
// Returns an error if the ID is not registered.
func Create(id string) (Widget, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown widget %q", id)
	}

	return f(), nil
}

// Exists checks if a widget with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
