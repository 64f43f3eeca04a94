package paragraph

import (
	"errors"
	"math"
	"testing"

	"github.com/go-text/typesetting/di"

	"github.com/noya-app/noyastate/geometry"
	"github.com/noya-app/noyastate/sketch"
	"github.com/noya-app/noyastate/textedit"
)

var testManager = NewFontManager()

func layout(s string, width float64) *Paragraph {
	return testManager.Layout(sketch.NewAttributedString(s, sketch.DefaultStringAttributes()), width)
}

func TestFontManagerFallbacks(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Helvetica", FamilyRegular},
		{"Helvetica-Bold", FamilyBold},
		{"Courier New", FamilyMono},
		{"Georgia Italic", FamilyItalic},
		{"go mono", FamilyMono},
		{"", FamilyRegular},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := testManager.Face(tt.name)
			if f == nil {
				t.Fatal("Face returned nil")
			}
			if f.Name() != tt.want {
				t.Errorf("Face(%q) = %q, want %q", tt.name, f.Name(), tt.want)
			}
		})
	}
}

func TestFontManagerFamilies(t *testing.T) {
	got := testManager.Families()
	want := []string{FamilyRegular, FamilyBold, FamilyItalic, FamilyMono}
	if len(got) != len(want) {
		t.Fatalf("Families() = %v", got)
	}
}

func TestRegisterInvalidFont(t *testing.T) {
	m := NewFontManager()
	err := m.Register("Broken", []byte("not a font"))
	if !errors.Is(err, ErrInvalidFont) {
		t.Errorf("Register error = %v, want ErrInvalidFont", err)
	}
}

func TestMetrics(t *testing.T) {
	m := testManager.Face(FamilyRegular).Metrics(18)
	if m.Ascent <= 0 || m.Descent <= 0 {
		t.Errorf("Metrics = %+v, want positive ascent and descent", m)
	}
	if m.Height() >= 18*2 {
		t.Errorf("Height = %v, too large for 18pt", m.Height())
	}
}

func TestLayoutSingleLine(t *testing.T) {
	p := layout("hello", 0)
	lines := p.Lines()
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if lines[0].Start != 0 || lines[0].End != 5 {
		t.Errorf("line range = [%d, %d)", lines[0].Start, lines[0].End)
	}
	if lines[0].Width <= 0 || p.Size().Width != lines[0].Width {
		t.Errorf("width = %v, size = %+v", lines[0].Width, p.Size())
	}
	if lines[0].Baseline <= lines[0].Top || lines[0].Baseline >= lines[0].Bottom {
		t.Errorf("baseline %v outside [%v, %v]", lines[0].Baseline, lines[0].Top, lines[0].Bottom)
	}
}

func TestLayoutEmpty(t *testing.T) {
	p := layout("", 0)
	if len(p.Lines()) != 1 {
		t.Fatalf("empty text should have one line, got %d", len(p.Lines()))
	}
	if p.Size().Height <= 0 {
		t.Error("empty line should have height")
	}
	if got := p.OffsetAtPoint(geometry.Pt(50, 5)); got != 0 {
		t.Errorf("OffsetAtPoint = %d, want 0", got)
	}
}

func TestLayoutHardBreaks(t *testing.T) {
	p := layout("ab\ncd\n", 0)
	lines := p.Lines()
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	want := [][2]int{{0, 2}, {3, 5}, {6, 6}}
	for i, w := range want {
		if lines[i].Start != w[0] || lines[i].End != w[1] {
			t.Errorf("line %d = [%d, %d), want %v", i, lines[i].Start, lines[i].End, w)
		}
	}
	if lines[1].Top != lines[0].Bottom {
		t.Errorf("line 1 top %v != line 0 bottom %v", lines[1].Top, lines[0].Bottom)
	}
}

func TestLayoutWraps(t *testing.T) {
	first := layout("aaaa bbbb", 0).Lines()[0].Width
	p := layout("aaaa bbbb cccc", first+1)
	lines := p.Lines()
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[1].Start != 10 || lines[1].End != 14 {
		t.Errorf("second line = [%d, %d), want [10, 14)", lines[1].Start, lines[1].End)
	}
	for i, l := range lines {
		if l.Width > first+1 {
			t.Errorf("line %d width %v exceeds %v", i, l.Width, first+1)
		}
	}
}

func TestLayoutBreaksLongWord(t *testing.T) {
	p := layout("abcdefghijklmnop", 40)
	if len(p.Lines()) < 2 {
		t.Fatalf("long word should wrap, got %d lines", len(p.Lines()))
	}
	for i, l := range p.Lines() {
		if l.Start == l.End {
			t.Errorf("line %d is empty", i)
		}
	}
}

func TestLayoutAlignment(t *testing.T) {
	attrs := sketch.DefaultStringAttributes()
	attrs.ParagraphStyle.Alignment = sketch.TextAlignCenter
	p := testManager.Layout(sketch.NewAttributedString("hi", attrs), 200)
	l := p.Lines()[0]
	if want := (200 - l.Width) / 2; l.Left != want {
		t.Errorf("Left = %v, want %v", l.Left, want)
	}

	attrs.ParagraphStyle.Alignment = sketch.TextAlignRight
	p = testManager.Layout(sketch.NewAttributedString("hi", attrs), 200)
	l = p.Lines()[0]
	if math.Abs(l.Left+l.Width-200) > 1e-9 {
		t.Errorf("right edge = %v, want 200", l.Left+l.Width)
	}
}

func TestLayoutLineHeight(t *testing.T) {
	attrs := sketch.DefaultStringAttributes()
	attrs.ParagraphStyle.MinimumLineHeight = 40
	p := testManager.Layout(sketch.NewAttributedString("a\nb", attrs), 0)
	for i, l := range p.Lines() {
		if h := l.Bottom - l.Top; h != 40 {
			t.Errorf("line %d height = %v, want 40", i, h)
		}
	}
}

func TestOffsetAtPoint(t *testing.T) {
	p := layout("hello\nworld", 0)
	lines := p.Lines()
	if got := p.OffsetAtPoint(geometry.Pt(-5, lines[0].Baseline)); got != 0 {
		t.Errorf("left of line 0 = %d, want 0", got)
	}
	if got := p.OffsetAtPoint(geometry.Pt(1000, lines[0].Baseline)); got != 5 {
		t.Errorf("right of line 0 = %d, want 5", got)
	}
	if got := p.OffsetAtPoint(geometry.Pt(-5, lines[1].Baseline)); got != 6 {
		t.Errorf("left of line 1 = %d, want 6", got)
	}
	if got := p.OffsetAtPoint(geometry.Pt(1000, 1000)); got != 11 {
		t.Errorf("below text = %d, want 11", got)
	}
}

func TestRectsForRange(t *testing.T) {
	p := layout("hello\nworld", 0)
	rects := p.RectsForRange(3, 8)
	if len(rects) != 2 {
		t.Fatalf("got %d rects, want 2", len(rects))
	}
	if rects[0].Y >= rects[1].Y {
		t.Errorf("rects not ordered by line: %+v", rects)
	}
	if rects[1].X != 0 {
		t.Errorf("second rect starts at %v, want 0", rects[1].X)
	}
	if got := p.RectsForRange(2, 2); len(got) != 0 {
		t.Errorf("empty range gave %d rects", len(got))
	}
}

func TestWordBoundary(t *testing.T) {
	p := layout("hello world", 0)
	tests := []struct {
		offset     int
		start, end int
	}{
		{0, 0, 5},
		{3, 0, 5},
		{5, 5, 6},
		{7, 6, 11},
		{11, 11, 11},
	}
	for _, tt := range tests {
		s, e := p.WordBoundary(tt.offset)
		if s != tt.start || e != tt.end {
			t.Errorf("WordBoundary(%d) = (%d, %d), want (%d, %d)", tt.offset, s, e, tt.start, tt.end)
		}
	}
}

func TestTextTransformKeepsOffsets(t *testing.T) {
	attrs := sketch.DefaultStringAttributes()
	attrs.TextTransform = sketch.TextTransformUppercase
	p := testManager.Layout(sketch.NewAttributedString("straße", attrs), 0)
	if got := p.Lines()[0].End; got != 6 {
		t.Errorf("line end = %d, want 6", got)
	}
	if string(p.Text()) != "straße" {
		t.Errorf("Text() = %q, source must not change", string(p.Text()))
	}
}

func TestCaretMovementOverLayout(t *testing.T) {
	text := "first line\nsecond"
	p := layout(text, 0)
	runes := []rune(text)

	down := textedit.MoveOffset(3, runes, p, textedit.Forward, textedit.Vertical)
	if down < 11 || down > 17 {
		t.Errorf("vertical down from 3 = %d, want on second line", down)
	}
	if got := textedit.MoveOffset(3, runes, p, textedit.Forward, textedit.Word); got != 5 {
		t.Errorf("word forward = %d, want 5", got)
	}
	if got := textedit.MoveOffset(13, runes, p, textedit.Backward, textedit.LineUnit); got != 11 {
		t.Errorf("line backward = %d, want 11", got)
	}
}

func TestDirection(t *testing.T) {
	if got := direction([]rune("  hello")); got != di.DirectionLTR {
		t.Errorf("Latin should shape left-to-right")
	}
	if got := direction([]rune("123 שלום")); got != di.DirectionRTL {
		t.Errorf("Hebrew should shape right-to-left")
	}
	if got := layout("שלום עולם", 0); got.Lines()[0].Width <= 0 {
		t.Error("RTL text should have width")
	}
}
