// Package components defines the plain data shared by the layout systems.
package components

import "math"

// Position is a node's location in layout space.
type Position struct {
	X, Y float32
}

// Sub returns p - q.
func (p Position) Sub(q Position) Position {
	return Position{X: p.X - q.X, Y: p.Y - q.Y}
}

// DistSq returns the squared distance between p and q.
func (p Position) DistSq(q Position) float32 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return dx*dx + dy*dy
}

// Dist returns the distance between p and q.
func (p Position) Dist(q Position) float32 {
	return float32(math.Sqrt(float64(p.DistSq(q))))
}

// Finite reports whether both coordinates are finite numbers.
func (p Position) Finite() bool {
	return !math.IsNaN(float64(p.X)) && !math.IsInf(float64(p.X), 0) &&
		!math.IsNaN(float64(p.Y)) && !math.IsInf(float64(p.Y), 0)
}

// Viewport is an axis-aligned rectangle with its origin at the top-left.
type Viewport struct {
	Left, Top     float32
	Width, Height float32
}

// Contains reports whether p lies inside the viewport (right and bottom edges exclusive).
func (v Viewport) Contains(p Position) bool {
	return p.X >= v.Left && p.X < v.Left+v.Width &&
		p.Y >= v.Top && p.Y < v.Top+v.Height
}

// Center returns the viewport midpoint.
func (v Viewport) Center() Position {
	return Position{X: v.Left + v.Width/2, Y: v.Top + v.Height/2}
}
