package geometry

import "math"

// PathElement is one drawing command of a Path.
type PathElement interface {
	isPathElement()
}

// MoveTo starts a new subpath.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathElement() {}

// LineTo draws a straight segment.
type LineTo struct {
	Point Point
}

func (LineTo) isPathElement() {}

// CubicTo draws a cubic Bezier curve.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

func (CubicTo) isPathElement() {}

// Close closes the current subpath.
type Close struct{}

func (Close) isPathElement() {}

// Path is a vector outline used for hit testing and rasterization.
type Path struct {
	elements []PathElement
	start    Point
	current  Point
}

// NewPath creates an empty path.
func NewPath() *Path {
	return &Path{elements: make([]PathElement, 0, 16)}
}

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, MoveTo{Point: pt})
	p.start = pt
	p.current = pt
}

// LineTo draws a line to (x, y).
func (p *Path) LineTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, LineTo{Point: pt})
	p.current = pt
}

// CubicTo draws a cubic Bezier curve.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, CubicTo{Control1: Pt(c1x, c1y), Control2: Pt(c2x, c2y), Point: pt})
	p.current = pt
}

// Close closes the current subpath.
func (p *Path) Close() {
	p.elements = append(p.elements, Close{})
	p.current = p.start
}

// Elements returns the path elements.
func (p *Path) Elements() []PathElement {
	return p.elements
}

// IsEmpty reports whether the path has no elements.
func (p *Path) IsEmpty() bool {
	return len(p.elements) == 0
}

// Rectangle adds a closed rectangle.
func (p *Path) Rectangle(r Rect) {
	p.MoveTo(r.MinX(), r.MinY())
	p.LineTo(r.MaxX(), r.MinY())
	p.LineTo(r.MaxX(), r.MaxY())
	p.LineTo(r.MinX(), r.MaxY())
	p.Close()
}

// Ellipse adds a closed ellipse inscribed in r.
func (p *Path) Ellipse(r Rect) {
	const k = 0.5522847498307936
	cx, cy := r.MidX(), r.MidY()
	rx, ry := r.Width/2, r.Height/2
	ox, oy := rx*k, ry*k

	p.MoveTo(cx+rx, cy)
	p.CubicTo(cx+rx, cy+oy, cx+ox, cy+ry, cx, cy+ry)
	p.CubicTo(cx-ox, cy+ry, cx-rx, cy+oy, cx-rx, cy)
	p.CubicTo(cx-rx, cy-oy, cx-ox, cy-ry, cx, cy-ry)
	p.CubicTo(cx+ox, cy-ry, cx+rx, cy-oy, cx+rx, cy)
	p.Close()
}

// Polygon adds a closed polygon through points.
func (p *Path) Polygon(points []Point) {
	for i, pt := range points {
		if i == 0 {
			p.MoveTo(pt.X, pt.Y)
		} else {
			p.LineTo(pt.X, pt.Y)
		}
	}
	if len(points) > 0 {
		p.Close()
	}
}

// Transform returns a new path with every point transformed by m.
func (p *Path) Transform(m Matrix) *Path {
	out := &Path{elements: make([]PathElement, 0, len(p.elements))}
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			out.elements = append(out.elements, MoveTo{Point: m.TransformPoint(e.Point)})
		case LineTo:
			out.elements = append(out.elements, LineTo{Point: m.TransformPoint(e.Point)})
		case CubicTo:
			out.elements = append(out.elements, CubicTo{
				Control1: m.TransformPoint(e.Control1),
				Control2: m.TransformPoint(e.Control2),
				Point:    m.TransformPoint(e.Point),
			})
		case Close:
			out.elements = append(out.elements, Close{})
		}
	}
	out.start = m.TransformPoint(p.start)
	out.current = m.TransformPoint(p.current)
	return out
}

// Winding returns the winding number of pt relative to the path, using a
// horizontal ray to the right. Open subpaths are treated as closed.
func (p *Path) Winding(pt Point) int {
	var winding int
	var current, start Point
	open := false

	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			if open {
				winding += lineWinding(current, start, pt)
			}
			start, current = e.Point, e.Point
			open = true
		case LineTo:
			winding += lineWinding(current, e.Point, pt)
			current = e.Point
		case CubicTo:
			winding += cubicWinding(current, e.Control1, e.Control2, e.Point, pt)
			current = e.Point
		case Close:
			winding += lineWinding(current, start, pt)
			current = start
			open = false
		}
	}
	if open {
		winding += lineWinding(current, start, pt)
	}
	return winding
}

// Contains tests pt against the path with the non-zero fill rule.
func (p *Path) Contains(pt Point) bool {
	return p.Winding(pt) != 0
}

// BoundingBox returns the bounds of the path's points and control points.
func (p *Path) BoundingBox() Rect {
	var pts []Point
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			pts = append(pts, e.Point)
		case LineTo:
			pts = append(pts, e.Point)
		case CubicTo:
			pts = append(pts, e.Control1, e.Control2, e.Point)
		}
	}
	r, _ := BoundingRect(pts)
	return r
}

func lineWinding(p0, p1, pt Point) int {
	if p0.Y <= pt.Y && p1.Y > pt.Y {
		if isLeft(p0, p1, pt) > 0 {
			return 1
		}
	} else if p0.Y > pt.Y && p1.Y <= pt.Y {
		if isLeft(p0, p1, pt) < 0 {
			return -1
		}
	}
	return 0
}

// isLeft is positive if pt is left of p0-p1, negative if right.
func isLeft(p0, p1, pt Point) float64 {
	return (p1.X-p0.X)*(pt.Y-p0.Y) - (pt.X-p0.X)*(p1.Y-p0.Y)
}

func cubicWinding(p0, p1, p2, p3, pt Point) int {
	minY := math.Min(math.Min(p0.Y, p1.Y), math.Min(p2.Y, p3.Y))
	maxY := math.Max(math.Max(p0.Y, p1.Y), math.Max(p2.Y, p3.Y))
	if pt.Y < minY || pt.Y > maxY {
		return 0
	}
	maxX := math.Max(math.Max(p0.X, p1.X), math.Max(p2.X, p3.X))
	if pt.X > maxX {
		return 0
	}
	var winding int
	flattenCubicWinding(p0, p1, p2, p3, pt, 0, &winding)
	return winding
}

const (
	flatnessTolerance = 0.1
	maxSubdivision    = 16
)

func flattenCubicWinding(p0, p1, p2, p3, pt Point, depth int, winding *int) {
	if depth >= maxSubdivision || cubicFlatness(p0, p1, p2, p3) <= flatnessTolerance {
		*winding += lineWinding(p0, p3, pt)
		return
	}
	// de Casteljau split at t = 0.5.
	p01, p12, p23 := p0.Lerp(p1, 0.5), p1.Lerp(p2, 0.5), p2.Lerp(p3, 0.5)
	p012, p123 := p01.Lerp(p12, 0.5), p12.Lerp(p23, 0.5)
	mid := p012.Lerp(p123, 0.5)
	flattenCubicWinding(p0, p01, p012, mid, pt, depth+1, winding)
	flattenCubicWinding(mid, p123, p23, p3, pt, depth+1, winding)
}

func cubicFlatness(p0, p1, p2, p3 Point) float64 {
	ux := 3.0*p1.X - 2.0*p0.X - p3.X
	uy := 3.0*p1.Y - 2.0*p0.Y - p3.Y
	vx := 3.0*p2.X - p0.X - 2.0*p3.X
	vy := 3.0*p2.Y - p0.Y - 2.0*p3.Y
	return math.Max(ux*ux+uy*uy, vx*vx+vy*vy)
}
