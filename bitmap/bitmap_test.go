package bitmap

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/noya-app/noyastate/geometry"
)

var (
	red   = color.NRGBA{R: 255, A: 255}
	blue  = color.NRGBA{B: 255, A: 255}
	clear = color.NRGBA{}
)

func countColor(p *Pixmap, c color.NRGBA) int {
	n := 0
	for y := 0; y < p.Height(); y++ {
		for x := 0; x < p.Width(); x++ {
			if p.GetPixel(x, y) == c {
				n++
			}
		}
	}
	return n
}

func TestPixmapBounds(t *testing.T) {
	p := NewPixmap(4, 3)
	p.SetPixel(-1, 0, red)
	p.SetPixel(4, 0, red)
	p.SetPixel(0, 3, red)
	if countColor(p, red) != 0 {
		t.Error("out-of-bounds SetPixel modified the pixmap")
	}
	if got := p.GetPixel(10, 10); got != clear {
		t.Errorf("GetPixel out of bounds = %v, want transparent", got)
	}
	p.SetPixel(3, 2, red)
	if got := p.GetPixel(3, 2); got != red {
		t.Errorf("GetPixel = %v, want red", got)
	}
	if p.Bounds() != image.Rect(0, 0, 4, 3) {
		t.Errorf("Bounds = %v", p.Bounds())
	}
}

func TestPixmapClone(t *testing.T) {
	p := NewPixmap(2, 2)
	c := p.Clone()
	c.SetPixel(0, 0, red)
	if p.GetPixel(0, 0) != clear {
		t.Error("Clone shares pixels with the original")
	}
}

func TestFloodFillTransparentRegion(t *testing.T) {
	// A solid red ring around a transparent hole, plus a transparent pixel
	// outside the ring that must stay untouched.
	p := NewPixmap(7, 7)
	p.Clear(red)
	for y := 2; y <= 4; y++ {
		for x := 2; x <= 4; x++ {
			p.SetPixel(x, y, clear)
		}
	}
	p.SetPixel(0, 0, clear)

	painted := FloodFill(p, 3, 3, blue)
	if painted != 9 {
		t.Errorf("painted %d pixels, want 9", painted)
	}
	if got := countColor(p, blue); got != 9 {
		t.Errorf("blue pixels = %d, want 9", got)
	}
	if got := p.GetPixel(0, 0); got != clear {
		t.Errorf("disconnected transparent pixel = %v, want untouched", got)
	}
	if got := countColor(p, red); got != 7*7-9-1 {
		t.Errorf("red pixels = %d, want %d", got, 7*7-9-1)
	}
}

func TestFloodFillNoDiagonal(t *testing.T) {
	p := NewPixmap(2, 2)
	p.Clear(red)
	p.SetPixel(0, 0, clear)
	p.SetPixel(1, 1, clear)
	if got := FloodFill(p, 0, 0, blue); got != 1 {
		t.Errorf("painted %d, want 1", got)
	}
	if p.GetPixel(1, 1) != clear {
		t.Error("fill crossed a diagonal")
	}
}

func TestFloodFillExactMatch(t *testing.T) {
	p := NewPixmap(3, 1)
	p.SetPixel(0, 0, color.NRGBA{R: 10, A: 255})
	p.SetPixel(1, 0, color.NRGBA{R: 11, A: 255})
	p.SetPixel(2, 0, color.NRGBA{R: 10, A: 255})
	if got := FloodFill(p, 0, 0, blue); got != 1 {
		t.Errorf("painted %d, want 1", got)
	}
}

func TestFloodFillNoops(t *testing.T) {
	p := NewPixmap(3, 3)
	p.Clear(blue)
	if got := FloodFill(p, 1, 1, blue); got != 0 {
		t.Errorf("same-color fill painted %d", got)
	}
	if got := FloodFill(p, 5, 5, red); got != 0 {
		t.Errorf("out-of-bounds seed painted %d", got)
	}
}

func TestFloodFillLarge(t *testing.T) {
	p := NewPixmap(300, 300)
	if got := FloodFill(p, 150, 150, red); got != 300*300 {
		t.Errorf("painted %d, want %d", got, 300*300)
	}
}

func TestDragRect(t *testing.T) {
	tests := []struct {
		name    string
		origin  geometry.Point
		current geometry.Point
		mod     Modifiers
		want    geometry.Rect
	}{
		{"plain", geometry.Pt(2, 2), geometry.Pt(6, 4), Modifiers{}, geometry.Rect{X: 2, Y: 2, Width: 4, Height: 2}},
		{"reversed", geometry.Pt(6, 4), geometry.Pt(2, 2), Modifiers{}, geometry.Rect{X: 2, Y: 2, Width: 4, Height: 2}},
		{"shift squares", geometry.Pt(2, 2), geometry.Pt(6, 4), Modifiers{Shift: true}, geometry.Rect{X: 2, Y: 2, Width: 4, Height: 4}},
		{"shift keeps direction", geometry.Pt(6, 6), geometry.Pt(4, 3), Modifiers{Shift: true}, geometry.Rect{X: 3, Y: 3, Width: 3, Height: 3}},
		{"alt from center", geometry.Pt(5, 5), geometry.Pt(7, 6), Modifiers{Alt: true}, geometry.Rect{X: 3, Y: 4, Width: 4, Height: 2}},
		{"shift and alt", geometry.Pt(5, 5), geometry.Pt(7, 6), Modifiers{Shift: true, Alt: true}, geometry.Rect{X: 3, Y: 3, Width: 4, Height: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DragRect(tt.origin, tt.current, tt.mod); got != tt.want {
				t.Errorf("DragRect = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRectangleTool(t *testing.T) {
	p := NewPixmap(10, 10)
	painted := Rectangle(p, geometry.Pt(2, 3), geometry.Pt(5.4, 6), Modifiers{}, red)
	// Snapped outwards to [2, 6) x [3, 6).
	if painted != 12 {
		t.Errorf("painted %d, want 12", painted)
	}
	if p.GetPixel(2, 3) != red || p.GetPixel(5, 5) != red {
		t.Error("corners of the rectangle not painted")
	}
	if p.GetPixel(6, 3) != clear || p.GetPixel(2, 6) != clear {
		t.Error("pixels outside the rectangle painted")
	}
}

func TestRectangleToolClipsToPixmap(t *testing.T) {
	p := NewPixmap(4, 4)
	if got := Rectangle(p, geometry.Pt(-10, -10), geometry.Pt(20, 20), Modifiers{}, red); got != 16 {
		t.Errorf("painted %d, want 16", got)
	}
}

func TestPencil(t *testing.T) {
	p := NewPixmap(10, 10)
	painted := Pencil(p, []geometry.Point{geometry.Pt(1.5, 5.5), geometry.Pt(8.5, 5.5)}, 1, red)
	if painted != 8 {
		t.Errorf("painted %d, want 8", painted)
	}
	for x := 1; x <= 8; x++ {
		if p.GetPixel(x, 5) != red {
			t.Errorf("pixel (%d, 5) not painted", x)
		}
	}
	if p.GetPixel(5, 4) != clear || p.GetPixel(5, 6) != clear {
		t.Error("stroke is wider than one pixel")
	}
}

func TestPencilSinglePoint(t *testing.T) {
	p := NewPixmap(5, 5)
	if got := Pencil(p, []geometry.Point{geometry.Pt(2.5, 2.5)}, 1, red); got != 1 {
		t.Errorf("painted %d, want 1", got)
	}
	if got := Pencil(p, nil, 1, red); got != 0 {
		t.Errorf("empty stroke painted %d", got)
	}
}

func TestPencilDiagonal(t *testing.T) {
	p := NewPixmap(10, 10)
	Pencil(p, []geometry.Point{geometry.Pt(0.5, 0.5), geometry.Pt(9.5, 9.5)}, 1.5, red)
	for i := 0; i < 10; i++ {
		if p.GetPixel(i, i) != red {
			t.Errorf("diagonal pixel (%d, %d) not painted", i, i)
		}
	}
	if p.GetPixel(9, 0) != clear {
		t.Error("far corner painted")
	}
}

func TestCodecRoundTrip(t *testing.T) {
	p := NewPixmap(3, 2)
	p.SetPixel(1, 1, color.NRGBA{R: 1, G: 2, B: 3, A: 128})
	data, err := EncodePNG(p)
	if err != nil {
		t.Fatal(err)
	}
	got, format, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if format != "png" {
		t.Errorf("format = %q, want png", format)
	}
	if !bytes.Equal(got.Data(), p.Data()) {
		t.Error("decoded pixels differ from encoded pixels")
	}
	w, h, err := DecodeConfig(data)
	if err != nil || w != 3 || h != 2 {
		t.Errorf("DecodeConfig = %d, %d, %v", w, h, err)
	}
}

func TestDecodeFormats(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	src.Set(0, 0, red)

	var jpg, bm bytes.Buffer
	if err := jpeg.Encode(&jpg, src, nil); err != nil {
		t.Fatal(err)
	}
	if err := bmp.Encode(&bm, src); err != nil {
		t.Fatal(err)
	}
	for name, data := range map[string][]byte{"jpeg": jpg.Bytes(), "bmp": bm.Bytes()} {
		p, format, err := Decode(data)
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if format != name || p.Width() != 4 || p.Height() != 4 {
			t.Errorf("%s: format %q, size %dx%d", name, format, p.Width(), p.Height())
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	for _, data := range [][]byte{nil, []byte("not an image")} {
		if _, _, err := Decode(data); !errors.Is(err, ErrDecode) {
			t.Errorf("Decode(%q) error = %v, want ErrDecode", data, err)
		}
	}
}
