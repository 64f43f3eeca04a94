package geometry

import "testing"

func TestPathContainsRectangle(t *testing.T) {
	p := NewPath()
	p.Rectangle(Rect{X: 10, Y: 10, Width: 20, Height: 10})

	tests := []struct {
		pt   Point
		want bool
	}{
		{Pt(15, 15), true},
		{Pt(29.9, 19.9), true},
		{Pt(5, 15), false},
		{Pt(15, 25), false},
		{Pt(35, 15), false},
	}
	for _, tt := range tests {
		if got := p.Contains(tt.pt); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.pt, got, tt.want)
		}
	}
}

func TestPathContainsEllipse(t *testing.T) {
	p := NewPath()
	p.Ellipse(Rect{Width: 100, Height: 50})

	if !p.Contains(Pt(50, 25)) {
		t.Error("center should be inside")
	}
	if p.Contains(Pt(2, 2)) {
		t.Error("bounding box corner should be outside")
	}
	if !p.Contains(Pt(95, 25)) {
		t.Error("point near right edge should be inside")
	}
}

func TestPathWindingDirection(t *testing.T) {
	cw := NewPath()
	cw.Polygon([]Point{Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10)})
	ccw := NewPath()
	ccw.Polygon([]Point{Pt(0, 0), Pt(0, 10), Pt(10, 10), Pt(10, 0)})

	a, b := cw.Winding(Pt(5, 5)), ccw.Winding(Pt(5, 5))
	if a == 0 || b == 0 || a != -b {
		t.Errorf("winding = %d and %d, want opposite non-zero", a, b)
	}
}

func TestPathOpenSubpathIsClosed(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.LineTo(10, 0)
	p.LineTo(10, 10)
	if !p.Contains(Pt(8, 2)) {
		t.Error("open triangle should contain interior point")
	}
}

func TestPathTransformAndBounds(t *testing.T) {
	p := NewPath()
	p.Rectangle(Rect{Width: 10, Height: 10})
	moved := p.Transform(Translate(5, 7))

	if got := moved.BoundingBox(); !got.ApproxEqual(Rect{X: 5, Y: 7, Width: 10, Height: 10}, epsilon) {
		t.Errorf("BoundingBox = %+v", got)
	}
	if !moved.Contains(Pt(6, 8)) || moved.Contains(Pt(1, 1)) {
		t.Error("transformed path containment is wrong")
	}
	if NewPath().BoundingBox() != (Rect{}) {
		t.Error("empty path should have zero bounds")
	}
}
