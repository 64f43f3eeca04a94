package noyastate

import (
	"github.com/noya-app/noyastate/geometry"
	"github.com/noya-app/noyastate/sketch"
)

// curvePointsPath builds the outline of a path layer in its own
// coordinates: normalized points are scaled by the frame size.
func curvePointsPath(l *sketch.Layer) *geometry.Path {
	p := geometry.NewPath()
	pts := l.Points
	if len(pts) == 0 {
		return p
	}
	w, h := l.Frame.Width, l.Frame.Height
	abs := func(ps sketch.PointString) geometry.Point {
		return geometry.Pt(ps.X*w, ps.Y*h)
	}
	start := abs(pts[0].Point)
	p.MoveTo(start.X, start.Y)

	segments := len(pts) - 1
	if l.IsClosed {
		segments = len(pts)
	}
	for i := range segments {
		from, to := pts[i], pts[(i+1)%len(pts)]
		end := abs(to.Point)
		if !from.HasCurveFrom && !to.HasCurveTo {
			p.LineTo(end.X, end.Y)
			continue
		}
		c1, c2 := segmentControls(from, to)
		a, b := abs(c1), abs(c2)
		p.CubicTo(a.X, a.Y, b.X, b.Y, end.X, end.Y)
	}
	if l.IsClosed {
		p.Close()
	}
	return p
}

// segmentControls returns the cubic control points between two curve
// points. A point without a handle uses its own position.
func segmentControls(from, to sketch.CurvePoint) (sketch.PointString, sketch.PointString) {
	c1, c2 := from.Point, to.Point
	if from.HasCurveFrom {
		c1 = from.CurveFrom
	}
	if to.HasCurveTo {
		c2 = to.CurveTo
	}
	return c1, c2
}
