package paragraph

import (
	"sort"

	"github.com/noya-app/noyastate/geometry"
	"github.com/noya-app/noyastate/sketch"
	"github.com/noya-app/noyastate/textedit"
)

// Paragraph is laid-out text. It is immutable once built.
type Paragraph struct {
	text  []rune
	x     []float64
	adv   []float64
	lines []textedit.Line
	words []int
	size  geometry.Size
}

var _ textedit.Paragraph = (*Paragraph)(nil)

// Lines implements textedit.Paragraph.
func (p *Paragraph) Lines() []textedit.Line { return p.lines }

// Size implements textedit.Paragraph.
func (p *Paragraph) Size() geometry.Size { return p.size }

// OffsetAtPoint implements textedit.Paragraph. Points above or below the
// text snap to the first or last line.
func (p *Paragraph) OffsetAtPoint(pt geometry.Point) int {
	if len(p.lines) == 0 {
		return 0
	}
	li := len(p.lines) - 1
	for i, l := range p.lines {
		if pt.Y < l.Bottom {
			li = i
			break
		}
	}
	l := p.lines[li]
	for i := l.Start; i < l.End; i++ {
		if pt.X < p.x[i]+p.adv[i]/2 {
			return i
		}
	}
	return l.End
}

// RectsForRange implements textedit.Paragraph. It returns one rect per line
// the range touches.
func (p *Paragraph) RectsForRange(start, end int) []geometry.Rect {
	var out []geometry.Rect
	for _, l := range p.lines {
		a, b := max(start, l.Start), min(end, l.End)
		if a >= b {
			continue
		}
		out = append(out, geometry.Rect{
			X:      p.x[a],
			Y:      l.Top,
			Width:  p.x[b-1] + p.adv[b-1] - p.x[a],
			Height: l.Bottom - l.Top,
		})
	}
	return out
}

// WordBoundary implements textedit.Paragraph using Unicode word
// segmentation.
func (p *Paragraph) WordBoundary(offset int) (int, int) {
	n := len(p.text)
	if offset >= n {
		return n, n
	}
	if offset < 0 {
		offset = 0
	}
	i := sort.SearchInts(p.words, offset+1) - 1
	return p.words[i], p.words[i+1]
}

// Text returns the laid-out runes.
func (p *Paragraph) Text() []rune { return p.text }

// LayoutText is Layout returning the textedit view of the result.
func (m *FontManager) LayoutText(as *sketch.AttributedString, width float64) textedit.Paragraph {
	return m.Layout(as, width)
}
