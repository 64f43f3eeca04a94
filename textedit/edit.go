package textedit

import (
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/noya-app/noyastate/sketch"
)

// Insert replaces the selected text with s, NFC-normalized, and returns the
// new string and a caret after the inserted text. as is not modified.
func Insert(as *sketch.AttributedString, r Range, s string) (*sketch.AttributedString, Range) {
	if as == nil {
		as = sketch.NewAttributedString("", sketch.DefaultStringAttributes())
	}
	s = norm.NFC.String(s)
	r = r.Clamp(as.Len())
	out := as.ReplaceRange(r.Min(), r.Max(), s)
	return out, Caret(r.Min() + utf8.RuneCountInString(s))
}

// Delete removes the selection, or if it is collapsed, the text between the
// caret and where one step of unit in dir would take it. When nothing is
// removed as is returned unchanged.
func Delete(as *sketch.AttributedString, r Range, para Paragraph, dir Direction, unit Unit) (*sketch.AttributedString, Range) {
	if as == nil {
		return as, r
	}
	text := []rune(as.String)
	r = r.Clamp(len(text))
	if r.IsCollapsed() {
		r = Range{Anchor: r.Head, Head: MoveOffset(r.Head, text, para, dir, unit)}
	}
	if r.IsCollapsed() {
		return as, r
	}
	return as.ReplaceRange(r.Min(), r.Max(), ""), Caret(r.Min())
}
