package textedit

import (
	"fmt"
	"unicode"

	"github.com/noya-app/noyastate/geometry"
)

// MaxTextLayerStringLength is the head of the range selectAll installs.
// Readers clamp it to the actual string length.
const MaxTextLayerStringLength = 1 << 20

// Direction is the way the caret moves.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Unit is how far the caret moves.
type Unit int

const (
	Character Unit = iota
	Word
	LineUnit
	All
	Vertical
)

var unitNames = map[Unit]string{
	Character: "character",
	Word:      "word",
	LineUnit:  "line",
	All:       "all",
	Vertical:  "vertical",
}

// String returns the wire name of the unit.
func (u Unit) String() string {
	if s, ok := unitNames[u]; ok {
		return s
	}
	return fmt.Sprintf("Unit(%d)", int(u))
}

// ParseUnit parses a wire name.
func ParseUnit(s string) (Unit, error) {
	for u, name := range unitNames {
		if name == s {
			return u, nil
		}
	}
	return Character, fmt.Errorf("textedit: unknown unit %q", s)
}

// ParseDirection parses "forward" or "backward".
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "forward":
		return Forward, nil
	case "backward":
		return Backward, nil
	}
	return Forward, fmt.Errorf("textedit: unknown direction %q", s)
}

// String returns the wire name of the direction.
func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// MarshalText implements encoding.TextMarshaler.
func (u Unit) MarshalText() ([]byte, error) { return []byte(u.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *Unit) UnmarshalText(b []byte) error {
	parsed, err := ParseUnit(string(b))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(b []byte) error {
	parsed, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Range is a selection in rune offsets. Anchor is where the selection
// started and Head where the caret is; Head < Anchor selects backwards.
type Range struct {
	Anchor int `json:"anchor"`
	Head   int `json:"head"`
}

// Caret returns a collapsed range at offset.
func Caret(offset int) Range { return Range{Anchor: offset, Head: offset} }

// IsCollapsed reports whether the range is a caret.
func (r Range) IsCollapsed() bool { return r.Anchor == r.Head }

// Min returns the smaller edge.
func (r Range) Min() int { return min(r.Anchor, r.Head) }

// Max returns the larger edge.
func (r Range) Max() int { return max(r.Anchor, r.Head) }

// Clamp limits both edges to [0, length].
func (r Range) Clamp(length int) Range {
	return Range{Anchor: clamp(r.Anchor, 0, length), Head: clamp(r.Head, 0, length)}
}

// SelectAll returns the range that selects a whole string of any length.
func SelectAll() Range {
	return Range{Anchor: 0, Head: MaxTextLayerStringLength}
}

// Move collapses the range after moving the caret. Moving by character
// with a non-empty selection collapses it to the edge in the direction of
// travel instead of moving.
func Move(r Range, text []rune, para Paragraph, dir Direction, unit Unit) Range {
	r = r.Clamp(len(text))
	if unit == Character && !r.IsCollapsed() {
		if dir == Forward {
			return Caret(r.Max())
		}
		return Caret(r.Min())
	}
	return Caret(MoveOffset(r.Head, text, para, dir, unit))
}

// Extend moves the head and keeps the anchor.
func Extend(r Range, text []rune, para Paragraph, dir Direction, unit Unit) Range {
	r = r.Clamp(len(text))
	return Range{Anchor: r.Anchor, Head: MoveOffset(r.Head, text, para, dir, unit)}
}

// MoveOffset returns the offset reached from offset by one step of unit.
func MoveOffset(offset int, text []rune, para Paragraph, dir Direction, unit Unit) int {
	n := len(text)
	offset = clamp(offset, 0, n)
	switch unit {
	case Character:
		if dir == Forward {
			return min(offset+1, n)
		}
		return max(offset-1, 0)
	case Word:
		if para == nil {
			return wordOffsetFallback(offset, text, dir)
		}
		return wordOffset(offset, text, para, dir)
	case LineUnit:
		if para == nil {
			break
		}
		lines := para.Lines()
		if len(lines) == 0 {
			break
		}
		l := lines[LineIndexAt(lines, offset)]
		if dir == Forward {
			return clamp(l.End, 0, n)
		}
		return clamp(l.Start, 0, n)
	case Vertical:
		if para == nil {
			break
		}
		return verticalOffset(offset, n, para, dir)
	}
	// All, and line/vertical without a layout, go to the ends.
	if dir == Forward {
		return n
	}
	return 0
}

// IsWordRune reports whether r can be part of a word for caret movement.
func IsWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// wordOffset steps over word boundaries until it crosses a word character,
// so runs of punctuation and whitespace are skipped in one move.
func wordOffset(offset int, text []rune, para Paragraph, dir Direction) int {
	n := len(text)
	i := offset
	if dir == Forward {
		for i < n {
			_, end := para.WordBoundary(i)
			if end <= i {
				end = i + 1
			}
			i = min(end, n)
			if IsWordRune(text[i-1]) {
				break
			}
		}
		return i
	}
	for i > 0 {
		start, _ := para.WordBoundary(i - 1)
		if start >= i || start < 0 {
			start = i - 1
		}
		i = start
		if IsWordRune(text[i]) {
			break
		}
	}
	return i
}

func wordOffsetFallback(offset int, text []rune, dir Direction) int {
	i := offset
	if dir == Forward {
		for i < len(text) && !IsWordRune(text[i]) {
			i++
		}
		for i < len(text) && IsWordRune(text[i]) {
			i++
		}
		return i
	}
	for i > 0 && !IsWordRune(text[i-1]) {
		i--
	}
	for i > 0 && IsWordRune(text[i-1]) {
		i--
	}
	return i
}

// LineIndexAt returns the index of the line holding the caret at offset.
// An offset at a line's end belongs to that line, not the next one.
func LineIndexAt(lines []Line, offset int) int {
	idx := 0
	for i, l := range lines {
		if offset >= l.Start {
			idx = i
		}
		if offset >= l.Start && offset <= l.End {
			return i
		}
	}
	return idx
}

// CaretPoint returns the x coordinate of the caret and the line it is on.
func CaretPoint(offset, length int, para Paragraph) (geometry.Point, int) {
	lines := para.Lines()
	if len(lines) == 0 {
		return geometry.Point{}, -1
	}
	i := LineIndexAt(lines, offset)
	l := lines[i]
	x := l.Left
	switch {
	case offset < l.End || (offset < length && offset == l.Start):
		if rects := para.RectsForRange(offset, offset+1); len(rects) > 0 {
			x = rects[0].MinX()
		}
	case offset > l.Start:
		if rects := para.RectsForRange(offset-1, offset); len(rects) > 0 {
			x = rects[len(rects)-1].MaxX()
		}
	}
	return geometry.Point{X: x, Y: l.MidY()}, i
}

// verticalOffset keeps the caret's x position while moving to the adjacent
// line. Past the first or last line it snaps to that line's start or end.
func verticalOffset(offset, length int, para Paragraph, dir Direction) int {
	lines := para.Lines()
	if len(lines) == 0 {
		return offset
	}
	pt, i := CaretPoint(offset, length, para)
	target := i + 1
	if dir == Backward {
		target = i - 1
	}
	if target < 0 {
		return clamp(lines[0].Start, 0, length)
	}
	if target >= len(lines) {
		return clamp(lines[len(lines)-1].End, 0, length)
	}
	tl := lines[target]
	got := para.OffsetAtPoint(geometry.Point{X: pt.X, Y: tl.MidY()})
	return clamp(got, tl.Start, tl.End)
}

// SelectContaining returns the word or line range around offset.
func SelectContaining(offset int, text []rune, para Paragraph, unit Unit) Range {
	n := len(text)
	offset = clamp(offset, 0, n)
	switch unit {
	case Word:
		if para != nil {
			start, end := para.WordBoundary(offset)
			return Range{Anchor: clamp(start, 0, n), Head: clamp(end, 0, n)}
		}
		return Range{
			Anchor: wordOffsetFallback(offset, text, Backward),
			Head:   wordOffsetFallback(offset, text, Forward),
		}
	case LineUnit:
		return Range{
			Anchor: MoveOffset(offset, text, para, Backward, LineUnit),
			Head:   MoveOffset(offset, text, para, Forward, LineUnit),
		}
	}
	return Range{Anchor: 0, Head: n}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
