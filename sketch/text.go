package sketch

import (
	"slices"
	"unicode/utf8"
)

// TextAlignment is the horizontal alignment of a paragraph.
type TextAlignment int

const (
	TextAlignLeft TextAlignment = iota
	TextAlignRight
	TextAlignCenter
	TextAlignJustified
)

// VerticalAlignment positions text inside a fixed-height frame.
type VerticalAlignment int

const (
	VerticalAlignTop VerticalAlignment = iota
	VerticalAlignMiddle
	VerticalAlignBottom
)

// TextBehaviour controls how a text layer's frame follows its content.
type TextBehaviour int

const (
	// TextBehaviourAutoWidth grows the frame horizontally; lines only break at newlines.
	TextBehaviourAutoWidth TextBehaviour = iota
	// TextBehaviourAutoHeight keeps the width and grows the frame vertically.
	TextBehaviourAutoHeight
	// TextBehaviourFixed keeps both dimensions.
	TextBehaviourFixed
)

// TextTransform changes the case text is displayed in.
type TextTransform int

const (
	TextTransformNone TextTransform = iota
	TextTransformUppercase
	TextTransformLowercase
)

// Default text attributes.
const (
	DefaultFontName = "Helvetica"
	DefaultFontSize = 18
)

// FontAttributes names a font and its size in points.
type FontAttributes struct {
	Name string  `json:"name"`
	Size float64 `json:"size"`
}

// FontDescriptor wraps FontAttributes the way the file format nests them.
type FontDescriptor struct {
	Attributes FontAttributes `json:"attributes"`
}

// ParagraphStyle holds paragraph-level attributes.
type ParagraphStyle struct {
	Alignment         TextAlignment `json:"alignment"`
	MaximumLineHeight float64       `json:"maximumLineHeight,omitempty"`
	MinimumLineHeight float64       `json:"minimumLineHeight,omitempty"`
	ParagraphSpacing  float64       `json:"paragraphSpacing,omitempty"`
}

// StringAttributes are the attributes of one run of text.
type StringAttributes struct {
	Font               FontDescriptor  `json:"MSAttributedStringFontAttribute"`
	Color              *Color          `json:"MSAttributedStringColorAttribute,omitempty"`
	Kerning            float64         `json:"kerning,omitempty"`
	ParagraphStyle     *ParagraphStyle `json:"paragraphStyle,omitempty"`
	TextTransform      TextTransform   `json:"MSAttributedStringTextTransformAttribute,omitempty"`
	UnderlineStyle     int             `json:"underlineStyle,omitempty"`
	StrikethroughStyle int             `json:"strikethroughStyle,omitempty"`
}

// DefaultStringAttributes returns black 18pt Helvetica.
func DefaultStringAttributes() StringAttributes {
	c := Black
	return StringAttributes{
		Font:           FontDescriptor{Attributes: FontAttributes{Name: DefaultFontName, Size: DefaultFontSize}},
		Color:          &c,
		ParagraphStyle: &ParagraphStyle{Alignment: TextAlignLeft},
	}
}

// Clone returns a copy that shares no pointers with a.
func (a StringAttributes) Clone() StringAttributes {
	if a.Color != nil {
		c := *a.Color
		a.Color = &c
	}
	if a.ParagraphStyle != nil {
		p := *a.ParagraphStyle
		a.ParagraphStyle = &p
	}
	return a
}

// FontSize returns the font size, falling back to the default size.
func (a StringAttributes) FontSize() float64 {
	if a.Font.Attributes.Size <= 0 {
		return DefaultFontSize
	}
	return a.Font.Attributes.Size
}

// StringAttribute applies attributes to Length runes starting at Location.
type StringAttribute struct {
	Location   int              `json:"location"`
	Length     int              `json:"length"`
	Attributes StringAttributes `json:"attributes"`
}

// AttributedString is a text layer's content. Attribute runs are contiguous,
// sorted and cover the whole string; offsets count runes.
type AttributedString struct {
	String     string            `json:"string"`
	Attributes []StringAttribute `json:"attributes"`
}

// NewAttributedString creates a string with one run of attrs.
func NewAttributedString(s string, attrs StringAttributes) *AttributedString {
	return &AttributedString{
		String:     s,
		Attributes: []StringAttribute{{Location: 0, Length: utf8.RuneCountInString(s), Attributes: attrs}},
	}
}

// Len returns the length in runes.
func (as *AttributedString) Len() int {
	if as == nil {
		return 0
	}
	return utf8.RuneCountInString(as.String)
}

// Clone returns a deep copy.
func (as *AttributedString) Clone() *AttributedString {
	if as == nil {
		return nil
	}
	out := &AttributedString{String: as.String, Attributes: slices.Clone(as.Attributes)}
	for i := range out.Attributes {
		out.Attributes[i].Attributes = out.Attributes[i].Attributes.Clone()
	}
	return out
}

// AttributesAt returns the attributes that apply at offset. Offsets at the
// end of the string report the last run.
func (as *AttributedString) AttributesAt(offset int) StringAttributes {
	if as == nil || len(as.Attributes) == 0 {
		return DefaultStringAttributes()
	}
	for _, a := range as.Attributes {
		if offset >= a.Location && offset < a.Location+a.Length {
			return a.Attributes
		}
	}
	return as.Attributes[len(as.Attributes)-1].Attributes
}

// ReplaceRange returns a new string with runes [start, end) replaced by text.
// Inserted text takes the attributes of the run before it, which is how
// typing continues the current style.
func (as *AttributedString) ReplaceRange(start, end int, text string) *AttributedString {
	runes := []rune(as.String)
	start, end = clampRange(start, end, len(runes))

	inserted := []rune(text)
	next := make([]rune, 0, len(runes)-(end-start)+len(inserted))
	next = append(next, runes[:start]...)
	next = append(next, inserted...)
	next = append(next, runes[end:]...)

	out := as.Clone()
	out.String = string(next)
	if len(out.Attributes) == 0 {
		out.Attributes = []StringAttribute{{Attributes: DefaultStringAttributes()}}
	}

	removed := end - start
	shrink := func(x int) int {
		switch {
		case x <= start:
			return x
		case x <= end:
			return start
		default:
			return x - removed
		}
	}
	for i := range out.Attributes {
		a := &out.Attributes[i]
		s, e := shrink(a.Location), shrink(a.Location+a.Length)
		a.Location, a.Length = s, e-s
	}

	target := 0
	for i, a := range out.Attributes {
		if a.Location < start {
			target = i
		}
	}
	n := len(inserted)
	out.Attributes[target].Length += n
	for i := target + 1; i < len(out.Attributes); i++ {
		out.Attributes[i].Location += n
	}

	out.Attributes = slices.DeleteFunc(out.Attributes, func(a StringAttribute) bool {
		return a.Length == 0
	})
	if len(out.Attributes) == 0 {
		out.Attributes = []StringAttribute{{Attributes: as.AttributesAt(start).Clone()}}
	}
	return out
}

// ApplyAttributes returns a new string where fn has been applied to the
// attributes of runes [start, end). Runs are split at the range edges.
func (as *AttributedString) ApplyAttributes(start, end int, fn func(*StringAttributes)) *AttributedString {
	out := as.Clone()
	start, end = clampRange(start, end, out.Len())
	out.splitAt(start)
	out.splitAt(end)
	for i := range out.Attributes {
		a := &out.Attributes[i]
		if a.Location >= start && a.Location+a.Length <= end {
			fn(&a.Attributes)
		}
	}
	if start == end && out.Len() == 0 && len(out.Attributes) > 0 {
		fn(&out.Attributes[0].Attributes)
	}
	return out
}

func (as *AttributedString) splitAt(offset int) {
	for i, a := range as.Attributes {
		if offset > a.Location && offset < a.Location+a.Length {
			left := a
			left.Length = offset - a.Location
			right := a
			right.Attributes = a.Attributes.Clone()
			right.Location = offset
			right.Length = a.Location + a.Length - offset
			as.Attributes = slices.Replace(as.Attributes, i, i+1, left, right)
			return
		}
	}
}

func clampRange(start, end, n int) (int, int) {
	if start > end {
		start, end = end, start
	}
	start = max(0, min(start, n))
	end = max(0, min(end, n))
	return start, end
}
