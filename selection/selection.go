// Package selection implements the set operations used for every kind of
// selection in the editor: layers, path points and theme items.
package selection

import (
	"fmt"
	"slices"
)

// Mode selects how new IDs combine with the current selection.
type Mode int

const (
	// Replace discards the current selection and installs the new IDs.
	Replace Mode = iota
	// Intersection adds the new IDs that are not already selected.
	//
	// NOTE: despite its name this is a union. Shift-click and modifier
	// marquee selection rely on it.
	Intersection
	// Difference removes each new ID from the current selection.
	Difference
)

// String returns the wire name of the mode.
func (m Mode) String() string {
	switch m {
	case Replace:
		return "replace"
	case Intersection:
		return "intersection"
	case Difference:
		return "difference"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses a wire name. The empty string is Replace.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "replace":
		return Replace, nil
	case "intersection":
		return Intersection, nil
	case "difference":
		return Difference, nil
	}
	return Replace, fmt.Errorf("selection: unknown mode %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(b []byte) error {
	parsed, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Update applies ids to the selection held in *current.
//
// A nil ids slice means "no IDs". The slice is modified in place, so callers
// working on shared state must pass a slice they own. For Intersection the
// missing IDs are appended in the order given; no other ordering is promised.
func Update[T comparable](current *[]T, ids []T, mode Mode) {
	switch mode {
	case Replace:
		*current = append((*current)[:0], ids...)
	case Intersection:
		for _, id := range ids {
			if !slices.Contains(*current, id) {
				*current = append(*current, id)
			}
		}
	case Difference:
		*current = slices.DeleteFunc(*current, func(id T) bool {
			return slices.Contains(ids, id)
		})
	}
}

// Updated is Update on a copy; the input slice is left untouched.
func Updated[T comparable](current []T, ids []T, mode Mode) []T {
	out := slices.Clone(current)
	Update(&out, ids, mode)
	if out == nil {
		out = []T{}
	}
	return out
}

// One wraps a single ID for Update, or returns nil for the zero value.
func One[T comparable](id T) []T {
	var zero T
	if id == zero {
		return nil
	}
	return []T{id}
}
