package geometry

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func TestIsTranslation(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		want bool
	}{
		{"identity", Identity(), true},
		{"pure translation", Translate(10, 20), true},
		{"negative translation", Translate(-5, -3), true},
		{"uniform scale", Scale(2, 2), false},
		{"rotation 90deg", Rotate(math.Pi / 2), false},
		{"scale 1,1 (identity via Scale)", Scale(1, 1), true},
		{"zero matrix", Matrix{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.IsTranslation(); got != tt.want {
				t.Errorf("Matrix%+v.IsTranslation() = %v, want %v", tt.m, got, tt.want)
			}
		})
	}
}

func TestConcatOrder(t *testing.T) {
	// Translate after scale: the point is scaled first, then moved.
	m := Concat(Translate(10, 0), Scale(2, 2))
	got := m.TransformPoint(Pt(1, 1))
	if !got.ApproxEqual(Pt(12, 2), epsilon) {
		t.Errorf("Concat(Translate, Scale)(1,1) = %v, want (12,2)", got)
	}

	m = Concat(Scale(2, 2), Translate(10, 0))
	got = m.TransformPoint(Pt(1, 1))
	if !got.ApproxEqual(Pt(22, 2), epsilon) {
		t.Errorf("Concat(Scale, Translate)(1,1) = %v, want (22,2)", got)
	}

	if !Concat().IsIdentity() {
		t.Error("Concat() should be identity")
	}
}

func TestInvertRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
	}{
		{"translate", Translate(3, -7)},
		{"rotate about", RotateAbout(0.7, Pt(50, 25))},
		{"flip about", ScaleAbout(-1, 1, Pt(10, 10))},
		{"mixed", Concat(Translate(5, 5), Rotate(1.1), Scale(1, -1))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Pt(12.5, -3.25)
			back := tt.m.Invert().TransformPoint(tt.m.TransformPoint(p))
			if !back.ApproxEqual(p, epsilon) {
				t.Errorf("inverse round trip = %v, want %v", back, p)
			}
			if !tt.m.Multiply(tt.m.Invert()).ApproxEqual(Identity(), epsilon) {
				t.Errorf("m * m^-1 is not identity")
			}
		})
	}
}

func TestInvertSingular(t *testing.T) {
	if got := Scale(0, 1).Invert(); !got.IsIdentity() {
		t.Errorf("singular Invert() = %+v, want identity", got)
	}
}

func TestRotateAboutKeepsCenter(t *testing.T) {
	c := Pt(40, 30)
	m := RotateAbout(math.Pi/3, c)
	if got := m.TransformPoint(c); !got.ApproxEqual(c, epsilon) {
		t.Errorf("center moved to %v", got)
	}
	got := RotateAbout(math.Pi/2, Pt(0, 0)).TransformPoint(Pt(1, 0))
	if !got.ApproxEqual(Pt(0, 1), epsilon) {
		t.Errorf("rotate (1,0) by 90deg = %v, want (0,1)", got)
	}
}

func TestReflectionAndRotation(t *testing.T) {
	tests := []struct {
		name       string
		m          Matrix
		reflection bool
		angle      float64
	}{
		{"identity", Identity(), false, 0},
		{"rotate 30", Rotate(math.Pi / 6), false, math.Pi / 6},
		{"flip x", Scale(-1, 1), true, math.Pi},
		{"flip y", Scale(1, -1), true, 0},
		{"flip both", Scale(-1, -1), false, math.Pi},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.IsReflection(); got != tt.reflection {
				t.Errorf("IsReflection() = %v, want %v", got, tt.reflection)
			}
			if got := tt.m.RotationRadians(); math.Abs(got-tt.angle) > epsilon {
				t.Errorf("RotationRadians() = %v, want %v", got, tt.angle)
			}
		})
	}
}
