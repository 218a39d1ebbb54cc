package font

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/msdfatlas/msdf"
)

// Backend selects the font parser.
type Backend int

const (
	// BackendSFNT parses fonts with golang.org/x/image/font/sfnt.
	BackendSFNT Backend = iota

	// BackendGoText parses fonts with github.com/go-text/typesetting.
	BackendGoText
)

// String returns the backend name.
func (b Backend) String() string {
	switch b {
	case BackendSFNT:
		return "sfnt"
	case BackendGoText:
		return "gotext"
	default:
		return fmt.Sprintf("Backend(%d)", int(b))
	}
}

// ParseBackend parses a backend name as returned by String.
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(s) {
	case "", "sfnt":
		return BackendSFNT, nil
	case "gotext", "go-text":
		return BackendGoText, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownBackend, s)
}

// Metrics holds font-wide metrics in em units. Descender and UnderlineY
// are negative below the baseline.
type Metrics struct {
	EmSize             float64 `json:"emSize" yaml:"emSize"`
	LineHeight         float64 `json:"lineHeight" yaml:"lineHeight"`
	Ascender           float64 `json:"ascender" yaml:"ascender"`
	Descender          float64 `json:"descender" yaml:"descender"`
	UnderlineY         float64 `json:"underlineY" yaml:"underlineY"`
	UnderlineThickness float64 `json:"underlineThickness" yaml:"underlineThickness"`
}

// Scaled returns m with every length multiplied by s.
func (m Metrics) Scaled(s float64) Metrics {
	return Metrics{
		EmSize:             m.EmSize * s,
		LineHeight:         m.LineHeight * s,
		Ascender:           m.Ascender * s,
		Descender:          m.Descender * s,
		UnderlineY:         m.UnderlineY * s,
		UnderlineThickness: m.UnderlineThickness * s,
	}
}

// face is what a parser backend provides. Lengths are in font units.
type face interface {
	familyName() string
	unitsPerEm() float64
	metrics() Metrics
	glyphIndex(r rune) (int, bool)
	advance(gid int) float64
	outline(gid int, b *outlineSink) error
}

// outlineSink converts font-unit path commands into an em-unit shape.
type outlineSink struct {
	b     *msdf.Builder
	scale float64
}

func (s *outlineSink) moveTo(x, y float64) { s.b.MoveTo(x*s.scale, y*s.scale) }
func (s *outlineSink) lineTo(x, y float64) { s.b.LineTo(x*s.scale, y*s.scale) }

func (s *outlineSink) quadTo(cx, cy, x, y float64) {
	s.b.QuadTo(cx*s.scale, cy*s.scale, x*s.scale, y*s.scale)
}

func (s *outlineSink) cubeTo(c1x, c1y, c2x, c2y, x, y float64) {
	s.b.CubeTo(c1x*s.scale, c1y*s.scale, c2x*s.scale, c2y*s.scale, x*s.scale, y*s.scale)
}

// Source is a parsed font.
//
// Source is not safe for concurrent use.
type Source struct {
	backend Backend
	name    string
	face    face
}

// Load parses font data with the given backend.
func Load(data []byte, backend Backend) (*Source, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFont
	}
	var (
		f   face
		err error
	)
	switch backend {
	case BackendSFNT:
		f, err = parseSFNT(data)
	case BackendGoText:
		f, err = parseGoText(data)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownBackend, int(backend))
	}
	if err != nil {
		return nil, fmt.Errorf("font: failed to parse font: %w", err)
	}
	return &Source{backend: backend, name: f.familyName(), face: f}, nil
}

// LoadFile reads and parses a font file. When the font carries no family
// name the file name without extension is used.
func LoadFile(path string, backend Backend) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("font: %w", err)
	}
	src, err := Load(data, backend)
	if err != nil {
		return nil, err
	}
	if src.name == "" {
		base := filepath.Base(path)
		src.name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return src, nil
}

// Backend returns the parser the source was loaded with.
func (s *Source) Backend() Backend { return s.backend }

// Name returns the font family name, or "" if unknown.
func (s *Source) Name() string { return s.name }

// Metrics returns the font metrics in em units.
func (s *Source) Metrics() Metrics {
	return s.face.metrics().Scaled(1 / s.face.unitsPerEm())
}

// Has reports whether the font maps r to a glyph.
func (s *Source) Has(r rune) bool {
	_, ok := s.face.glyphIndex(r)
	return ok
}

// Glyph returns the glyph index, advance and outline of r, in em units
// multiplied by scale. The shape is empty for glyphs without an outline.
func (s *Source) Glyph(r rune, scale float64) (index int, advance float64, shape *msdf.Shape, err error) {
	gid, ok := s.face.glyphIndex(r)
	if !ok {
		return 0, 0, nil, fmt.Errorf("%w: %U", ErrGlyphNotFound, r)
	}
	k := scale / s.face.unitsPerEm()
	sink := &outlineSink{b: msdf.NewBuilder(), scale: k}
	if err := s.face.outline(gid, sink); err != nil {
		return 0, 0, nil, fmt.Errorf("font: glyph %U: %w", r, err)
	}
	return gid, s.face.advance(gid) * k, sink.b.Shape(), nil
}

// MarshalText implements encoding.TextMarshaler.
func (b Backend) MarshalText() ([]byte, error) {
	if b != BackendSFNT && b != BackendGoText {
		return nil, fmt.Errorf("%w: %d", ErrUnknownBackend, int(b))
	}
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Backend) UnmarshalText(text []byte) error {
	parsed, err := ParseBackend(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
