package sketch

import "errors"

// Sentinel errors for the sketch package.
var (
	// ErrUnknownClass is returned when a layer's "_class" is not recognized.
	ErrUnknownClass = errors.New("sketch: unknown layer class")

	// ErrMalformedPoint is returned for point strings not in "{x, y}" form.
	ErrMalformedPoint = errors.New("sketch: malformed point string")

	// ErrNoPages is returned when a decoded document has no pages.
	ErrNoPages = errors.New("sketch: document has no pages")
)
