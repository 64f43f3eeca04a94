package paragraph

import "errors"

// ErrInvalidFont is returned when font data cannot be parsed.
var ErrInvalidFont = errors.New("paragraph: invalid font data")
