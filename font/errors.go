package font

import "errors"

var (
	// ErrNoGlyphs is returned when a charset yields no loadable glyph.
	ErrNoGlyphs = errors.New("font: no glyphs loaded")

	// ErrGlyphNotFound is returned for a rune the font does not map.
	ErrGlyphNotFound = errors.New("font: glyph not found")

	// ErrUnknownBackend is returned by Load for an unsupported Backend.
	ErrUnknownBackend = errors.New("font: unknown backend")

	// ErrEmptyFont is returned by Load for empty data.
	ErrEmptyFont = errors.New("font: empty font data")
)
