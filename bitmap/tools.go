package bitmap

import (
	"image/color"
	"math"

	"github.com/noya-app/noyastate/geometry"
)

// Modifiers are the keys held while dragging a tool.
type Modifiers struct {
	// Shift constrains the shape to a square.
	Shift bool `json:"shift,omitempty"`
	// Alt draws from the drag origin outwards.
	Alt bool `json:"alt,omitempty"`
}

// DragRect returns the rectangle covered by a drag from origin to current.
func DragRect(origin, current geometry.Point, mod Modifiers) geometry.Rect {
	d := current.Sub(origin)
	if mod.Shift {
		side := math.Max(math.Abs(d.X), math.Abs(d.Y))
		d = geometry.Pt(math.Copysign(side, d.X), math.Copysign(side, d.Y))
	}
	if mod.Alt {
		return geometry.RectFromPoints(origin.Sub(d), origin.Add(d))
	}
	return geometry.RectFromPoints(origin, origin.Add(d))
}

// PixelRect snaps r outwards to whole pixels.
func PixelRect(r geometry.Rect) geometry.Rect {
	x0, y0 := math.Floor(r.MinX()), math.Floor(r.MinY())
	x1, y1 := math.Ceil(r.MaxX()), math.Ceil(r.MaxY())
	return geometry.Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// FillPaths paints every pixel whose center lies inside any of paths and
// returns the number of pixels painted.
func FillPaths(p *Pixmap, c color.NRGBA, paths ...*geometry.Path) int {
	bounds, ok := pathsBounds(paths)
	if !ok {
		return 0
	}
	x0 := max(int(math.Floor(bounds.MinX())), 0)
	y0 := max(int(math.Floor(bounds.MinY())), 0)
	x1 := min(int(math.Ceil(bounds.MaxX())), p.width)
	y1 := min(int(math.Ceil(bounds.MaxY())), p.height)

	painted := 0
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			center := geometry.Pt(float64(x)+0.5, float64(y)+0.5)
			for _, path := range paths {
				if path.Contains(center) {
					p.SetPixel(x, y, c)
					painted++
					break
				}
			}
		}
	}
	return painted
}

func pathsBounds(paths []*geometry.Path) (geometry.Rect, bool) {
	var out geometry.Rect
	found := false
	for _, path := range paths {
		if path == nil || path.IsEmpty() {
			continue
		}
		b := path.BoundingBox()
		if !found {
			out, found = b, true
		} else {
			out = out.Union(b)
		}
	}
	return out, found
}

// Rectangle fills the rectangle dragged from origin to current.
func Rectangle(p *Pixmap, origin, current geometry.Point, mod Modifiers, c color.NRGBA) int {
	path := geometry.NewPath()
	path.Rectangle(PixelRect(DragRect(origin, current, mod)))
	return FillPaths(p, c, path)
}

// PencilPaths returns the outline of a stroke through points: a square
// stamp at every point and a quad along every segment.
func PencilPaths(points []geometry.Point, width float64) []*geometry.Path {
	if width <= 0 {
		width = 1
	}
	half := width / 2
	paths := make([]*geometry.Path, 0, 2*len(points))
	for i, pt := range points {
		stamp := geometry.NewPath()
		stamp.Rectangle(geometry.Rect{X: pt.X - half, Y: pt.Y - half, Width: width, Height: width})
		paths = append(paths, stamp)
		if i == 0 {
			continue
		}
		prev := points[i-1]
		d := pt.Sub(prev)
		length := d.Length()
		if length == 0 {
			continue
		}
		n := geometry.Pt(-d.Y/length*half, d.X/length*half)
		quad := geometry.NewPath()
		quad.Polygon([]geometry.Point{prev.Add(n), pt.Add(n), pt.Sub(n), prev.Sub(n)})
		paths = append(paths, quad)
	}
	return paths
}

// Pencil paints a stroke of the given width through points.
func Pencil(p *Pixmap, points []geometry.Point, width float64, c color.NRGBA) int {
	return FillPaths(p, c, PencilPaths(points, width)...)
}
