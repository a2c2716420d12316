package font

import "errors"

// Sentinel errors for the font package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("font: empty font data")

	// ErrInvalidFont is returned when font data cannot be parsed.
	ErrInvalidFont = errors.New("font: invalid font data")

	// ErrNotFound is returned when a named font file cannot be located.
	ErrNotFound = errors.New("font: font not found")
)
