package paragraph

import (
	"unicode"
	"unicode/utf8"

	"github.com/go-text/typesetting/shaping"
	"github.com/rivo/uniseg"
	"golang.org/x/text/cases"
	xlanguage "golang.org/x/text/language"

	"github.com/noya-app/noyastate/geometry"
	"github.com/noya-app/noyastate/sketch"
	"github.com/noya-app/noyastate/textedit"
)

// Layout shapes as and breaks it into lines no wider than width. A width of
// zero or less only breaks at newlines.
func (m *FontManager) Layout(as *sketch.AttributedString, width float64) *Paragraph {
	if as == nil {
		as = sketch.NewAttributedString("", sketch.DefaultStringAttributes())
	}
	text := []rune(as.String)
	p := &Paragraph{
		text: text,
		x:    make([]float64, len(text)),
		adv:  make([]float64, len(text)),
	}
	display := transformText(as, text)

	metrics := make([]Metrics, len(text))
	runs := as.Attributes
	if len(runs) == 0 {
		runs = []sketch.StringAttribute{{Length: len(text), Attributes: sketch.DefaultStringAttributes()}}
	}
	for _, run := range runs {
		start := max(run.Location, 0)
		end := min(run.Location+run.Length, len(text))
		face := m.Face(run.Attributes.Font.Attributes.Name)
		size := run.Attributes.FontSize()
		fm := face.Metrics(size)
		for i := start; i < end; i++ {
			metrics[i] = fm
		}
		// Shape between hard breaks so newlines never reach the shaper.
		for s := start; s < end; {
			e := s
			for e < end && text[e] != '\n' {
				e++
			}
			m.measure(p, display, s, e, face, size, run.Attributes.Kerning)
			s = e + 1
		}
	}

	alignment := sketch.TextAlignLeft
	if ps := as.AttributesAt(0).ParagraphStyle; ps != nil {
		alignment = ps.Alignment
	}

	var top float64
	for ps := 0; ps <= len(text); {
		pe := ps
		for pe < len(text) && text[pe] != '\n' {
			pe++
		}
		style := as.AttributesAt(ps)
		for _, br := range p.breakLines(display, ps, pe, width) {
			line := textedit.Line{Start: br[0], End: br[1], Top: top}
			fm := lineMetrics(metrics, br[0], br[1], m.Face(style.Font.Attributes.Name).Metrics(style.FontSize()))
			height := fm.Height() + fm.LineGap
			if style.ParagraphStyle != nil {
				if lh := style.ParagraphStyle.MinimumLineHeight; lh > 0 && height < lh {
					height = lh
				}
				if lh := style.ParagraphStyle.MaximumLineHeight; lh > 0 && height > lh {
					height = lh
				}
			}
			line.Baseline = top + (height-fm.Height())/2 + fm.Ascent
			line.Bottom = top + height
			line.Width = p.visibleWidth(display, br[0], br[1])
			top = line.Bottom
			p.lines = append(p.lines, line)
		}
		if style.ParagraphStyle != nil && pe < len(text) {
			top += style.ParagraphStyle.ParagraphSpacing
		}
		ps = pe + 1
	}

	container := width
	if container <= 0 {
		for _, l := range p.lines {
			container = max(container, l.Width)
		}
	}
	for i := range p.lines {
		l := &p.lines[i]
		switch alignment {
		case sketch.TextAlignCenter:
			l.Left = (container - l.Width) / 2
		case sketch.TextAlignRight:
			l.Left = container - l.Width
		}
		x := l.Left
		for j := l.Start; j < l.End; j++ {
			p.x[j] = x
			x += p.adv[j]
		}
	}
	p.size = geometry.Size{Width: container, Height: top}
	p.words = wordSegments(as.String)
	return p
}

// measure shapes display[start:end] and stores each rune's advance. A
// cluster's advance is shared by the runes it covers.
func (m *FontManager) measure(p *Paragraph, display []rune, start, end int, face *Face, size, kerning float64) {
	if start >= end || face == nil {
		return
	}
	key := shapeKey{text: string(display[start:end]), face: face, size: sizeBits(size)}
	adv := m.shapes.advances(key, func() []float64 {
		return clusterAdvances(m.shape(display, start, end, face, size), start, end)
	})
	for i, a := range adv {
		p.adv[start+i] = a + kerning
	}
}

// clusterAdvances spreads glyph advances over the runes of their clusters.
func clusterAdvances(glyphs []shaping.Glyph, start, end int) []float64 {
	clusterAdv := make(map[int]float64)
	for _, g := range glyphs {
		idx := g.TextIndex()
		if idx < start || idx >= end {
			continue
		}
		clusterAdv[idx] += fixedToFloat(g.Advance)
	}
	out := make([]float64, end-start)
	for i := start; i < end; {
		j := i + 1
		for j < end {
			if _, ok := clusterAdv[j]; ok {
				break
			}
			j++
		}
		share := clusterAdv[i] / float64(j-i)
		for k := i; k < j; k++ {
			out[k-start] = share
		}
		i = j
	}
	return out
}

// breakLines returns [start, end) ranges for the lines of the hard
// paragraph display[ps:pe]. Trailing whitespace does not count against
// width.
func (p *Paragraph) breakLines(display []rune, ps, pe int, width float64) [][2]int {
	if width <= 0 || ps == pe {
		return [][2]int{{ps, pe}}
	}
	var (
		lines     [][2]int
		lineStart = ps
		lineWidth float64
	)
	pos := ps
	state := -1
	rest := string(display[ps:pe])
	for rest != "" {
		var seg string
		seg, rest, _, state = uniseg.FirstLineSegmentInString(rest, state)
		segStart := pos
		segEnd := pos + utf8.RuneCountInString(seg)
		pos = segEnd

		visible := p.visibleWidth(display, segStart, segEnd)
		if lineStart < segStart && lineWidth+visible > width {
			lines = append(lines, [2]int{lineStart, segStart})
			lineStart, lineWidth = segStart, 0
		}
		if lineStart == segStart && visible > width {
			// A single segment wider than the line breaks between runes.
			for i := segStart; i < segEnd; i++ {
				if i > lineStart && lineWidth+p.adv[i] > width && !unicode.IsSpace(display[i]) {
					lines = append(lines, [2]int{lineStart, i})
					lineStart, lineWidth = i, 0
				}
				lineWidth += p.adv[i]
			}
			continue
		}
		lineWidth += sumAdvances(p.adv, segStart, segEnd)
	}
	return append(lines, [2]int{lineStart, pe})
}

func (p *Paragraph) visibleWidth(display []rune, start, end int) float64 {
	for end > start && unicode.IsSpace(display[end-1]) {
		end--
	}
	return sumAdvances(p.adv, start, end)
}

func sumAdvances(adv []float64, start, end int) float64 {
	var w float64
	for i := start; i < end; i++ {
		w += adv[i]
	}
	return w
}

func lineMetrics(metrics []Metrics, start, end int, empty Metrics) Metrics {
	if start >= end {
		return empty
	}
	var out Metrics
	for i := start; i < end; i++ {
		out.Ascent = max(out.Ascent, metrics[i].Ascent)
		out.Descent = max(out.Descent, metrics[i].Descent)
		out.LineGap = max(out.LineGap, metrics[i].LineGap)
	}
	return out
}

// transformText applies each run's text transform. Case mappings that
// change the rune count fall back to per-rune mapping so offsets stay
// aligned with the source string.
func transformText(as *sketch.AttributedString, text []rune) []rune {
	display := text
	for _, run := range as.Attributes {
		var c cases.Caser
		switch run.Attributes.TextTransform {
		case sketch.TextTransformUppercase:
			c = cases.Upper(xlanguage.Und)
		case sketch.TextTransformLowercase:
			c = cases.Lower(xlanguage.Und)
		default:
			continue
		}
		start := max(run.Location, 0)
		end := min(run.Location+run.Length, len(text))
		if start >= end {
			continue
		}
		if &display[0] == &text[0] {
			display = append([]rune(nil), text...)
		}
		mapped := []rune(c.String(string(text[start:end])))
		if len(mapped) != end-start {
			mapped = mapped[:0]
			for _, r := range text[start:end] {
				if run.Attributes.TextTransform == sketch.TextTransformUppercase {
					mapped = append(mapped, unicode.ToUpper(r))
				} else {
					mapped = append(mapped, unicode.ToLower(r))
				}
			}
		}
		copy(display[start:end], mapped)
	}
	return display
}

// wordSegments returns the start offset of every word segment plus the
// total length.
func wordSegments(s string) []int {
	bounds := []int{0}
	pos := 0
	state := -1
	for s != "" {
		var word string
		word, s, state = uniseg.FirstWordInString(s, state)
		pos += utf8.RuneCountInString(word)
		bounds = append(bounds, pos)
	}
	return bounds
}
