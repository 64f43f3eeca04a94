// Package textedit implements caret and selection movement over laid-out
// text, and range edits of attributed strings.
//
// Layout is not computed here. A Paragraph, supplied by whoever renders the
// text, answers geometric queries; this package only decides where the
// caret goes.
package textedit

import "github.com/noya-app/noyastate/geometry"

// Line is one shaped line of a paragraph.
type Line struct {
	// Start and End are rune offsets. End excludes a trailing line break.
	Start, End int

	// Top and Bottom bound the line vertically in layout coordinates.
	Top, Bottom float64

	// Baseline is the y coordinate of the line's baseline.
	Baseline float64

	// Left and Width bound the line's glyphs horizontally.
	Left, Width float64
}

// MidY returns the vertical center of the line.
func (l Line) MidY() float64 { return (l.Top + l.Bottom) / 2 }

// Paragraph is a measured text layout.
type Paragraph interface {
	// Lines returns the shaped lines in order. A non-empty paragraph has at
	// least one line; an empty string may have one empty line.
	Lines() []Line

	// OffsetAtPoint returns the caret offset closest to p.
	OffsetAtPoint(p geometry.Point) int

	// RectsForRange returns boxes covering the glyphs of runes [start, end).
	RectsForRange(start, end int) []geometry.Rect

	// WordBoundary returns the word segment [start, end) containing offset.
	WordBoundary(offset int) (start, end int)

	// Size returns the laid-out width and height.
	Size() geometry.Size
}
