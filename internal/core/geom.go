// Package core provides fundamental types and utilities shared by the widget,
// the simulation engine and the terminal platform. It contains no external
// dependencies (especially no Bubble Tea) to keep simulation logic pure and
// testable.
package core

import "math"

// Rect represents an integer axis-aligned rectangle on the screen buffer.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Box is a continuous axis-aligned bounding box used by the physics engine.
type Box struct {
	X, Y float64 // Top-left corner
	W, H float64
}

// NewBox creates a box with the given top-left corner and size.
func NewBox(x, y, w, h float64) Box {
	return Box{X: x, Y: y, W: w, H: h}
}

// BoxAround returns the square box enclosing a circle.
func BoxAround(cx, cy, radius float64) Box {
	return Box{X: cx - radius, Y: cy - radius, W: 2 * radius, H: 2 * radius}
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 {
	return b.X + b.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 {
	return b.Y + b.H
}

// Center returns the center point of the box.
func (b Box) Center() (float64, float64) {
	return b.X + b.W/2, b.Y + b.H/2
}

// Intersects reports whether two boxes overlap. Touching edges do not count.
func (b Box) Intersects(other Box) bool {
	if b.X >= other.Right() || other.X >= b.Right() {
		return false
	}
	if b.Y >= other.Bottom() || other.Y >= b.Bottom() {
		return false
	}
	return true
}

// ClosestPoint returns the point inside the box nearest to (px, py).
func (b Box) ClosestPoint(px, py float64) (float64, float64) {
	return ClampF(px, b.X, b.Right()), ClampF(py, b.Y, b.Bottom())
}

// CircleIntersects reports whether a circle touches or overlaps the box.
func (b Box) CircleIntersects(cx, cy, radius float64) bool {
	nx, ny := b.ClosestPoint(cx, cy)
	return math.Hypot(cx-nx, cy-ny) <= radius
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
