package atlas

import (
	"errors"
	"fmt"
)

// Sentinel errors for the atlas package.
var (
	// ErrAtlasTooLarge is returned when fitting a batch would grow the atlas
	// past its maximum side.
	ErrAtlasTooLarge = errors.New("atlas: atlas would exceed maximum side")

	// ErrInvalidGlyphSize is returned for a glyph reporting a negative box.
	ErrInvalidGlyphSize = errors.New("atlas: glyph box size is negative")
)

// GrowthError reports the side an Add would have needed.
type GrowthError struct {
	Side    int
	MaxSide int
}

func (e *GrowthError) Error() string {
	return fmt.Sprintf("atlas: side %d exceeds maximum %d", e.Side, e.MaxSide)
}

// Unwrap returns ErrAtlasTooLarge.
func (e *GrowthError) Unwrap() error { return ErrAtlasTooLarge }

// GlyphSizeError identifies the glyph with an invalid box.
type GlyphSizeError struct {
	Index         int
	Width, Height int
}

func (e *GlyphSizeError) Error() string {
	return fmt.Sprintf("atlas: glyph %d has box %dx%d", e.Index, e.Width, e.Height)
}

// Unwrap returns ErrInvalidGlyphSize.
func (e *GlyphSizeError) Unwrap() error { return ErrInvalidGlyphSize }

// ConfigError represents an options validation error.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "atlas: invalid options." + e.Field + ": " + e.Reason
}
