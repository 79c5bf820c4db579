package model

import "math"

// Point represents a 2D point
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Size represents the dimensions of a page or image
type Size struct {
	Width  float64
	Height float64
}

// IsEmpty returns true if either dimension is non-positive
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Area returns the area covered by the size
func (s Size) Area() float64 {
	return s.Width * s.Height
}

// Rect represents a rectangle with the origin in the top-left corner
// and Y increasing downward. Callers working in a bottom-left-origin
// coordinate system must flip Y before constructing a Rect.
type Rect struct {
	X      float64 // Left
	Y      float64 // Top
	Width  float64
	Height float64
}

// NewRect creates a rectangle from coordinates
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// NewRectFromPoints creates a rectangle spanning two points
func NewRectFromPoints(p1, p2 Point) Rect {
	x := math.Min(p1.X, p2.X)
	y := math.Min(p1.Y, p2.Y)
	width := math.Abs(p2.X - p1.X)
	height := math.Abs(p2.Y - p1.Y)
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Left returns the left edge X coordinate
func (r Rect) Left() float64 {
	return r.X
}

// Right returns the right edge X coordinate
func (r Rect) Right() float64 {
	return r.X + r.Width
}

// Top returns the top edge Y coordinate
func (r Rect) Top() float64 {
	return r.Y
}

// Bottom returns the bottom edge Y coordinate
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// Center returns the center point
func (r Rect) Center() Point {
	return Point{
		X: r.X + r.Width/2,
		Y: r.Y + r.Height/2,
	}
}

// CenterY returns the vertical midpoint
func (r Rect) CenterY() float64 {
	return r.Y + r.Height/2
}

// Area returns the area of the rectangle
func (r Rect) Area() float64 {
	return r.Width * r.Height
}

// IsEmpty returns true if the rectangle has zero area
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// IsValid returns true if the rectangle has positive dimensions
func (r Rect) IsValid() bool {
	return r.Width > 0 && r.Height > 0
}

// Expand expands the rectangle by a margin on all sides.
// A negative margin shrinks it.
func (r Rect) Expand(margin float64) Rect {
	return Rect{
		X:      r.X - margin,
		Y:      r.Y - margin,
		Width:  r.Width + 2*margin,
		Height: r.Height + 2*margin,
	}
}

// ContainsPoint checks if a point is inside the rectangle, allowing the
// given tolerance beyond each edge
func (r Rect) ContainsPoint(p Point, tolerance float64) bool {
	return p.X >= r.Left()-tolerance && p.X <= r.Right()+tolerance &&
		p.Y >= r.Top()-tolerance && p.Y <= r.Bottom()+tolerance
}

// Intersects checks if two rectangles intersect
func (r Rect) Intersects(other Rect) bool {
	return !(r.Right() < other.Left() ||
		r.Left() > other.Right() ||
		r.Bottom() < other.Top() ||
		r.Top() > other.Bottom())
}

// IntersectsWithTolerance checks if two rectangles intersect after expanding
// this rectangle by the given tolerance
func (r Rect) IntersectsWithTolerance(other Rect, tolerance float64) bool {
	return r.Expand(tolerance).Intersects(other)
}

// Intersection returns the intersection of two rectangles.
// Returns the zero Rect if they do not intersect.
func (r Rect) Intersection(other Rect) Rect {
	if !r.Intersects(other) {
		return Rect{}
	}

	x := math.Max(r.Left(), other.Left())
	y := math.Max(r.Top(), other.Top())
	right := math.Min(r.Right(), other.Right())
	bottom := math.Min(r.Bottom(), other.Bottom())

	return Rect{
		X:      x,
		Y:      y,
		Width:  right - x,
		Height: bottom - y,
	}
}

// Union returns the smallest rectangle covering both rectangles
func (r Rect) Union(other Rect) Rect {
	x := math.Min(r.Left(), other.Left())
	y := math.Min(r.Top(), other.Top())
	right := math.Max(r.Right(), other.Right())
	bottom := math.Max(r.Bottom(), other.Bottom())

	return Rect{
		X:      x,
		Y:      y,
		Width:  right - x,
		Height: bottom - y,
	}
}

// OverlapRatio calculates the overlap ratio with another rectangle:
// intersection area divided by the smaller of the two areas.
// Returns 0 if either rectangle has zero area or they do not intersect.
func (r Rect) OverlapRatio(other Rect) float64 {
	if !r.Intersects(other) {
		return 0
	}

	intersection := r.Intersection(other)
	minArea := math.Min(r.Area(), other.Area())

	if minArea == 0 {
		return 0
	}

	return intersection.Area() / minArea
}

// Normalized returns the rectangle with coordinates expressed as
// fractions of the given reference size. Used when comparing geometry
// produced at different raster resolutions.
func (r Rect) Normalized(frame Size) Rect {
	if frame.IsEmpty() {
		return r
	}
	return Rect{
		X:      r.X / frame.Width,
		Y:      r.Y / frame.Height,
		Width:  r.Width / frame.Width,
		Height: r.Height / frame.Height,
	}
}

// Scaled projects a normalized rectangle back into absolute coordinates
// for the given reference size
func (r Rect) Scaled(frame Size) Rect {
	return Rect{
		X:      r.X * frame.Width,
		Y:      r.Y * frame.Height,
		Width:  r.Width * frame.Width,
		Height: r.Height * frame.Height,
	}
}

// Clamped projects a normalized rectangle onto the unit square
func (r Rect) Clamped() Rect {
	x := clamp01(r.X)
	y := clamp01(r.Y)
	right := clamp01(r.Right())
	bottom := clamp01(r.Bottom())

	return Rect{
		X:      x,
		Y:      y,
		Width:  math.Max(0, right-x),
		Height: math.Max(0, bottom-y),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
