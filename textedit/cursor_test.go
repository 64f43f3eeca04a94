package textedit

import (
	"math"
	"strings"
	"testing"

	"github.com/noya-app/noyastate/geometry"
)

const (
	charWidth  = 10.0
	lineHeight = 20.0
)

// monoParagraph lays text out on a fixed grid, breaking only at '\n'.
type monoParagraph struct {
	text  []rune
	lines []Line
}

func newMono(s string) *monoParagraph {
	p := &monoParagraph{text: []rune(s)}
	start := 0
	for i, part := range strings.Split(s, "\n") {
		n := len([]rune(part))
		p.lines = append(p.lines, Line{
			Start:    start,
			End:      start + n,
			Top:      float64(i) * lineHeight,
			Bottom:   float64(i+1) * lineHeight,
			Baseline: float64(i)*lineHeight + 15,
			Width:    float64(n) * charWidth,
		})
		start += n + 1
	}
	return p
}

func (p *monoParagraph) Lines() []Line { return p.lines }

func (p *monoParagraph) OffsetAtPoint(pt geometry.Point) int {
	i := clamp(int(pt.Y/lineHeight), 0, len(p.lines)-1)
	l := p.lines[i]
	col := clamp(int(math.Round(pt.X/charWidth)), 0, l.End-l.Start)
	return l.Start + col
}

func (p *monoParagraph) RectsForRange(start, end int) []geometry.Rect {
	var out []geometry.Rect
	for off := max(start, 0); off < min(end, len(p.text)); off++ {
		if p.text[off] == '\n' {
			continue
		}
		i := LineIndexAt(p.lines, off)
		col := off - p.lines[i].Start
		out = append(out, geometry.Rect{
			X: float64(col) * charWidth, Y: p.lines[i].Top,
			Width: charWidth, Height: lineHeight,
		})
	}
	return out
}

func class(r rune) int {
	switch {
	case IsWordRune(r):
		return 0
	case r == ' ':
		return 1
	}
	return 2
}

func (p *monoParagraph) WordBoundary(offset int) (int, int) {
	n := len(p.text)
	if offset >= n {
		return n, n
	}
	c := class(p.text[offset])
	if c == 2 {
		return offset, offset + 1
	}
	start, end := offset, offset+1
	for start > 0 && class(p.text[start-1]) == c {
		start--
	}
	for end < n && class(p.text[end]) == c {
		end++
	}
	return start, end
}

func (p *monoParagraph) Size() geometry.Size {
	var w float64
	for _, l := range p.lines {
		w = max(w, l.Width)
	}
	return geometry.Size{Width: w, Height: float64(len(p.lines)) * lineHeight}
}

func TestMoveOffset(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		offset int
		dir    Direction
		unit   Unit
		want   int
	}{
		{"char forward", "hello", 2, Forward, Character, 3},
		{"char forward at end", "hello", 5, Forward, Character, 5},
		{"char backward at start", "hello", 0, Backward, Character, 0},
		{"char counts runes", "héllo", 1, Forward, Character, 2},
		{"word forward", "hello, world", 0, Forward, Word, 5},
		{"word forward skips punctuation", "hello, world", 5, Forward, Word, 12},
		{"word backward", "hello, world", 12, Backward, Word, 7},
		{"word backward skips punctuation", "hello, world", 7, Backward, Word, 0},
		{"word forward mid word", "hello world", 2, Forward, Word, 5},
		{"line backward", "ab\ncd", 4, Backward, LineUnit, 3},
		{"line forward", "ab\ncd", 4, Forward, LineUnit, 5},
		{"line forward stops before break", "ab\ncd", 1, Forward, LineUnit, 2},
		{"all forward", "ab\ncd", 1, Forward, All, 5},
		{"all backward", "ab\ncd", 4, Backward, All, 0},
		{"vertical down clamps to short line", "abcd\nef\nghij", 3, Forward, Vertical, 7},
		{"vertical down keeps x", "abcd\nef\nghij", 7, Forward, Vertical, 10},
		{"vertical up", "abcd\nef\nghij", 10, Backward, Vertical, 7},
		{"vertical up from first line", "abcd\nef", 2, Backward, Vertical, 0},
		{"vertical down from last line", "abcd\nef", 6, Forward, Vertical, 7},
		{"offset is clamped", "abc", 99, Backward, Character, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MoveOffset(tt.offset, []rune(tt.text), newMono(tt.text), tt.dir, tt.unit)
			if got != tt.want {
				t.Errorf("MoveOffset(%d) = %d, want %d", tt.offset, got, tt.want)
			}
		})
	}
}

func TestMoveWithoutParagraph(t *testing.T) {
	text := []rune("one two")
	if got := MoveOffset(0, text, nil, Forward, Word); got != 3 {
		t.Errorf("word forward = %d, want 3", got)
	}
	if got := MoveOffset(7, text, nil, Backward, Word); got != 4 {
		t.Errorf("word backward = %d, want 4", got)
	}
	if got := MoveOffset(2, text, nil, Forward, Vertical); got != 7 {
		t.Errorf("vertical without layout = %d, want 7", got)
	}
}

func TestMoveCollapsesSelection(t *testing.T) {
	text := "hello"
	p := newMono(text)
	sel := Range{Anchor: 4, Head: 1}

	if got := Move(sel, []rune(text), p, Forward, Character); got != Caret(4) {
		t.Errorf("forward = %+v, want caret at 4", got)
	}
	if got := Move(sel, []rune(text), p, Backward, Character); got != Caret(1) {
		t.Errorf("backward = %+v, want caret at 1", got)
	}
	if got := Move(sel, []rune(text), p, Forward, All); got != Caret(5) {
		t.Errorf("all = %+v, want caret at 5", got)
	}
}

func TestExtendKeepsAnchor(t *testing.T) {
	text := "hello world"
	p := newMono(text)
	r := Extend(Caret(2), []rune(text), p, Forward, Word)
	if r != (Range{Anchor: 2, Head: 5}) {
		t.Fatalf("Extend = %+v", r)
	}
	r = Extend(r, []rune(text), p, Backward, All)
	if r != (Range{Anchor: 2, Head: 0}) {
		t.Errorf("Extend back = %+v", r)
	}
	if r.Min() != 0 || r.Max() != 2 {
		t.Errorf("Min/Max = %d/%d", r.Min(), r.Max())
	}
}

func TestSelectContaining(t *testing.T) {
	text := "hello world\nsecond line"
	p := newMono(text)
	if got := SelectContaining(7, []rune(text), p, Word); got != (Range{Anchor: 6, Head: 11}) {
		t.Errorf("word = %+v", got)
	}
	if got := SelectContaining(14, []rune(text), p, LineUnit); got != (Range{Anchor: 12, Head: 23}) {
		t.Errorf("line = %+v", got)
	}
}

func TestSelectAllClamps(t *testing.T) {
	r := SelectAll()
	if r.Head != MaxTextLayerStringLength {
		t.Fatalf("SelectAll head = %d", r.Head)
	}
	if got := r.Clamp(5); got != (Range{Anchor: 0, Head: 5}) {
		t.Errorf("Clamp = %+v", got)
	}
}

func TestParseUnitAndDirection(t *testing.T) {
	for u, name := range unitNames {
		got, err := ParseUnit(name)
		if err != nil || got != u {
			t.Errorf("ParseUnit(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := ParseUnit("page"); err == nil {
		t.Error("ParseUnit(page) should fail")
	}
	if d, err := ParseDirection("backward"); err != nil || d != Backward {
		t.Errorf("ParseDirection = %v, %v", d, err)
	}
}
