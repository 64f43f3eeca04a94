package geometry

import "math"

// Rect represents an axis-aligned rectangle by its origin and size.
// A Rect with negative width or height is never produced by this package.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// RectFromPoints creates a rectangle spanning two points.
// The points are normalized so the result has a non-negative size.
func RectFromPoints(p1, p2 Point) Rect {
	minX, minY := math.Min(p1.X, p2.X), math.Min(p1.Y, p2.Y)
	return Rect{
		X:      minX,
		Y:      minY,
		Width:  math.Max(p1.X, p2.X) - minX,
		Height: math.Max(p1.Y, p2.Y) - minY,
	}
}

// BoundingRect returns the smallest rectangle containing all points.
// ok is false when points is empty.
func BoundingRect(points []Point) (r Rect, ok bool) {
	if len(points) == 0 {
		return Rect{}, false
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}, true
}

// MinX returns the left edge.
func (r Rect) MinX() float64 { return r.X }

// MidX returns the horizontal center.
func (r Rect) MidX() float64 { return r.X + r.Width/2 }

// MaxX returns the right edge.
func (r Rect) MaxX() float64 { return r.X + r.Width }

// MinY returns the top edge.
func (r Rect) MinY() float64 { return r.Y }

// MidY returns the vertical center.
func (r Rect) MidY() float64 { return r.Y + r.Height/2 }

// MaxY returns the bottom edge.
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// Origin returns the top-left corner.
func (r Rect) Origin() Point { return Point{X: r.X, Y: r.Y} }

// Center returns the center point.
func (r Rect) Center() Point { return Point{X: r.MidX(), Y: r.MidY()} }

// Size returns the rectangle's size.
func (r Rect) Size() Size { return Size{Width: r.Width, Height: r.Height} }

// Corners returns the four corners clockwise from the top-left.
func (r Rect) Corners() [4]Point {
	return [4]Point{
		{X: r.MinX(), Y: r.MinY()},
		{X: r.MaxX(), Y: r.MinY()},
		{X: r.MaxX(), Y: r.MaxY()},
		{X: r.MinX(), Y: r.MaxY()},
	}
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	minX := math.Min(r.MinX(), other.MinX())
	minY := math.Min(r.MinY(), other.MinY())
	return Rect{
		X:      minX,
		Y:      minY,
		Width:  math.Max(r.MaxX(), other.MaxX()) - minX,
		Height: math.Max(r.MaxY(), other.MaxY()) - minY,
	}
}

// Contains returns true if the point is inside the rectangle (edges included).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX() && p.X <= r.MaxX() && p.Y >= r.MinY() && p.Y <= r.MaxY()
}

// ContainsRect returns true if other lies entirely inside r.
func (r Rect) ContainsRect(other Rect) bool {
	return other.MinX() >= r.MinX() && other.MaxX() <= r.MaxX() &&
		other.MinY() >= r.MinY() && other.MaxY() <= r.MaxY()
}

// Intersects returns true if the rectangles overlap (touching edges count).
func (r Rect) Intersects(other Rect) bool {
	return r.MinX() <= other.MaxX() && other.MinX() <= r.MaxX() &&
		r.MinY() <= other.MaxY() && other.MinY() <= r.MaxY()
}

// Offset returns the rectangle moved by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// Inset shrinks the rectangle by the given insets. The result never has a
// negative size.
func (r Rect) Inset(in Insets) Rect {
	return Rect{
		X:      r.X + in.Left,
		Y:      r.Y + in.Top,
		Width:  math.Max(0, r.Width-in.Left-in.Right),
		Height: math.Max(0, r.Height-in.Top-in.Bottom),
	}
}

// Transform returns the bounding box of the rectangle's corners after
// applying m.
func (r Rect) Transform(m Matrix) Rect {
	c := r.Corners()
	pts := make([]Point, 0, len(c))
	for _, p := range c {
		pts = append(pts, m.TransformPoint(p))
	}
	out, _ := BoundingRect(pts)
	return out
}

// ApproxEqual reports whether every field differs by at most epsilon.
func (r Rect) ApproxEqual(other Rect, epsilon float64) bool {
	return math.Abs(r.X-other.X) <= epsilon && math.Abs(r.Y-other.Y) <= epsilon &&
		math.Abs(r.Width-other.Width) <= epsilon && math.Abs(r.Height-other.Height) <= epsilon
}
