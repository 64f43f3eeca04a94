package sketch

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/noya-app/noyastate/geometry"
)

// PointString is a point serialized the way Sketch does: "{x, y}".
type PointString geometry.Point

// Point returns the value as a geometry.Point.
func (p PointString) Point() geometry.Point { return geometry.Point(p) }

// String formats the point as "{x, y}".
func (p PointString) String() string {
	return "{" + strconv.FormatFloat(p.X, 'g', -1, 64) + ", " + strconv.FormatFloat(p.Y, 'g', -1, 64) + "}"
}

// ParsePointString parses "{x, y}".
func ParsePointString(s string) (PointString, error) {
	inner, ok := strings.CutPrefix(strings.TrimSpace(s), "{")
	if ok {
		inner, ok = strings.CutSuffix(inner, "}")
	}
	if !ok {
		return PointString{}, fmt.Errorf("%w: %q", ErrMalformedPoint, s)
	}
	xs, ys, ok := strings.Cut(inner, ",")
	if !ok {
		return PointString{}, fmt.Errorf("%w: %q", ErrMalformedPoint, s)
	}
	x, errX := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if errX != nil || errY != nil {
		return PointString{}, fmt.Errorf("%w: %q", ErrMalformedPoint, s)
	}
	return PointString{X: x, Y: y}, nil
}

// MarshalJSON implements json.Marshaler.
func (p PointString) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *PointString) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParsePointString(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// CurveMode describes how a point's control handles relate.
type CurveMode int

const (
	CurveModeNone CurveMode = iota
	CurveModeStraight
	CurveModeMirrored
	CurveModeAsymmetric
	CurveModeDisconnected
)

// CurvePoint is a vertex of a path layer. Coordinates are normalized to the
// layer's frame: (0,0) is the frame's top-left and (1,1) its bottom-right.
type CurvePoint struct {
	CornerRadius float64     `json:"cornerRadius"`
	CurveFrom    PointString `json:"curveFrom"`
	CurveMode    CurveMode   `json:"curveMode"`
	CurveTo      PointString `json:"curveTo"`
	HasCurveFrom bool        `json:"hasCurveFrom"`
	HasCurveTo   bool        `json:"hasCurveTo"`
	Point        PointString `json:"point"`
}

// StraightPoint returns a corner point without control handles.
func StraightPoint(x, y float64) CurvePoint {
	p := PointString{X: x, Y: y}
	return CurvePoint{CurveFrom: p, CurveMode: CurveModeStraight, CurveTo: p, Point: p}
}

// RectanglePoints returns the normalized corners of a rectangle path.
func RectanglePoints() []CurvePoint {
	return []CurvePoint{
		StraightPoint(0, 0),
		StraightPoint(1, 0),
		StraightPoint(1, 1),
		StraightPoint(0, 1),
	}
}

// ovalKappa positions cubic control points so four segments approximate a circle.
const ovalKappa = 0.5522847498 / 2

// OvalPoints returns the normalized points of an ellipse path.
func OvalPoints() []CurvePoint {
	pt := func(x, y, fx, fy, tx, ty float64) CurvePoint {
		return CurvePoint{
			CurveFrom:    PointString{X: fx, Y: fy},
			CurveMode:    CurveModeMirrored,
			CurveTo:      PointString{X: tx, Y: ty},
			HasCurveFrom: true,
			HasCurveTo:   true,
			Point:        PointString{X: x, Y: y},
		}
	}
	k := ovalKappa
	return []CurvePoint{
		pt(0.5, 0, 0.5+k, 0, 0.5-k, 0),
		pt(1, 0.5, 1, 0.5+k, 1, 0.5-k),
		pt(0.5, 1, 0.5-k, 1, 0.5+k, 1),
		pt(0, 0.5, 0, 0.5-k, 0, 0.5+k),
	}
}

// TrianglePoints returns the normalized corners of an isosceles triangle
// pointing up.
func TrianglePoints() []CurvePoint {
	return []CurvePoint{
		StraightPoint(0.5, 0),
		StraightPoint(1, 1),
		StraightPoint(0, 1),
	}
}

// PolygonPoints returns the normalized corners of a regular polygon with
// n sides inscribed in the unit square, first corner at the top.
func PolygonPoints(n int) []CurvePoint {
	n = max(n, 3)
	out := make([]CurvePoint, n)
	for i := range out {
		a := 2*math.Pi*float64(i)/float64(n) - math.Pi/2
		out[i] = StraightPoint(0.5+0.5*math.Cos(a), 0.5+0.5*math.Sin(a))
	}
	return out
}

// StarPoints returns the normalized points of a star with n rays whose
// inner corners sit at ratio times the outer radius.
func StarPoints(n int, ratio float64) []CurvePoint {
	n = max(n, 3)
	out := make([]CurvePoint, 2*n)
	for i := range out {
		r := 0.5
		if i%2 == 1 {
			r *= ratio
		}
		a := math.Pi*float64(i)/float64(n) - math.Pi/2
		out[i] = StraightPoint(0.5+r*math.Cos(a), 0.5+r*math.Sin(a))
	}
	return out
}
