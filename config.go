package msdfatlas

import (
	"fmt"
	"math"
	"strings"

	"github.com/gogpu/msdfatlas/font"
	"github.com/gogpu/msdfatlas/generator"
	"github.com/gogpu/msdfatlas/msdf"
)

// Coloring strategy names accepted by Config.Coloring.
const (
	ColoringSimple  = "simple"
	ColoringInkTrap = "inktrap"
)

// Config holds atlas generation parameters. The toml tags name the keys of
// a CLI descriptor file.
type Config struct {
	// FontPath is the font file used by Open.
	FontPath string `toml:"font"`

	// Backend selects the font parser.
	Backend font.Backend `toml:"backend"`

	// Charset lists the code points loaded initially. The zero value
	// loads font.DefaultCharset.
	Charset font.Charset `toml:"-"`

	// EmScale is the number of atlas pixels per em.
	EmScale float64 `toml:"emScale"`

	// PxRange is the width of the distance range in atlas pixels.
	PxRange float64 `toml:"pxRange"`

	// MiterLimit extends glyph boxes around sharp corners. 0 disables it.
	MiterLimit float64 `toml:"miterLimit"`

	// ImageType selects what is rendered into the atlas.
	ImageType generator.ImageType `toml:"imageType"`

	// Coloring is ColoringInkTrap or ColoringSimple. Empty selects ink trap.
	Coloring string `toml:"coloring"`

	// AngleThreshold is the corner angle in radians for edge coloring.
	AngleThreshold float64 `toml:"angleThreshold"`

	// ColoringSeed seeds edge coloring. 0 gives every glyph the same
	// deterministic coloring.
	ColoringSeed uint64 `toml:"coloringSeed"`

	// ExpensiveColoring derives a seed per glyph and colors in parallel.
	ExpensiveColoring bool `toml:"expensiveColoring"`

	// Threads is the number of workers for coloring and rendering.
	Threads int `toml:"threads"`

	// Padding is the number of empty pixels right of and below each box.
	Padding int `toml:"padding"`

	// MaxSide bounds the atlas side. 0 uses atlas.DefaultMaxSide.
	MaxSide int `toml:"maxSide"`

	// AllowRearrange lets AddGlyphs repack existing glyphs when the atlas
	// grows.
	AllowRearrange bool `toml:"allowRearrange"`

	// CacheDir, if set, holds .fontbin files of rendered bitmaps.
	CacheDir string `toml:"cacheDir"`
}

// DefaultConfig returns the default atlas configuration: a multi-channel
// field with true distance in alpha at 52 pixels per em.
func DefaultConfig() Config {
	return Config{
		Backend:           font.BackendSFNT,
		EmScale:           52,
		PxRange:           2,
		MiterLimit:        1,
		ImageType:         generator.MTSDF,
		Coloring:          ColoringInkTrap,
		AngleThreshold:    msdf.DefaultAngleThreshold,
		ColoringSeed:      3,
		ExpensiveColoring: true,
		Threads:           8,
		AllowRearrange:    true,
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if !(c.EmScale > 0) || math.IsInf(c.EmScale, 0) {
		return &ConfigError{Field: "EmScale", Reason: "must be positive"}
	}
	if !(c.PxRange > 0) {
		return &ConfigError{Field: "PxRange", Reason: "must be positive"}
	}
	if c.MiterLimit < 0 {
		return &ConfigError{Field: "MiterLimit", Reason: "must be non-negative"}
	}
	if !(c.AngleThreshold > 0) {
		return &ConfigError{Field: "AngleThreshold", Reason: "must be positive"}
	}
	if _, err := coloringFunc(c.Coloring); err != nil {
		return &ConfigError{Field: "Coloring", Reason: err.Error()}
	}
	if c.Threads < 0 {
		return &ConfigError{Field: "Threads", Reason: "must be non-negative"}
	}
	if c.Padding < 0 {
		return &ConfigError{Field: "Padding", Reason: "must be non-negative"}
	}
	if c.MaxSide < 0 {
		return &ConfigError{Field: "MaxSide", Reason: "must be non-negative"}
	}
	if _, err := c.ImageType.MarshalText(); err != nil {
		return &ConfigError{Field: "ImageType", Reason: "is unknown"}
	}
	return nil
}

func coloringFunc(name string) (msdf.ColoringFunc, error) {
	switch coloringName(name) {
	case ColoringInkTrap:
		return msdf.EdgeColoringInkTrap, nil
	case ColoringSimple:
		return msdf.EdgeColoringSimple, nil
	}
	return nil, fmt.Errorf("unknown coloring %q", name)
}

// coloringName normalizes a Coloring value. Empty selects ink trap.
func coloringName(name string) string {
	name = strings.ToLower(name)
	if name == "" {
		return ColoringInkTrap
	}
	return name
}

func (c *Config) charset() font.Charset {
	if c.Charset.Len() == 0 {
		return font.DefaultCharset()
	}
	return c.Charset
}
