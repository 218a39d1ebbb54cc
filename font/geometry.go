package font

import (
	"fmt"

	"github.com/gogpu/msdfatlas/glyph"
)

// Geometry collects the glyphs and metrics loaded from one font.
type Geometry struct {
	// Name is the font family name.
	Name string

	// Metrics are scaled by the geometry scale of the last LoadCharset.
	Metrics Metrics

	glyphs []*glyph.Geometry
	byRune map[rune]int
}

// LoadCharset loads every code point of charset that the font maps,
// appending to the glyphs already present. Lengths are in em units
// multiplied by scale. Code points already loaded are skipped.
//
// It returns the number of glyphs loaded by this call. Unmapped code points
// are not an error; ErrNoGlyphs is returned only when nothing was loaded and
// the geometry is still empty.
func (g *Geometry) LoadCharset(src *Source, scale float64, charset Charset) (int, error) {
	if g.byRune == nil {
		g.byRune = make(map[rune]int)
	}
	g.Name = src.Name()
	g.Metrics = src.Metrics().Scaled(scale)

	loaded := 0
	for _, r := range charset.Runes() {
		if _, dup := g.byRune[r]; dup {
			continue
		}
		index, advance, shape, err := src.Glyph(r, scale)
		if err != nil || shape.Validate() != nil {
			continue
		}
		g.byRune[r] = len(g.glyphs)
		g.glyphs = append(g.glyphs, glyph.New(index, r, advance, shape))
		loaded++
	}
	if len(g.glyphs) == 0 {
		return 0, fmt.Errorf("%w from %q", ErrNoGlyphs, src.Name())
	}
	return loaded, nil
}

// Glyphs returns the loaded glyphs in load order.
func (g *Geometry) Glyphs() []*glyph.Geometry { return g.glyphs }

// Len returns the number of loaded glyphs.
func (g *Geometry) Len() int { return len(g.glyphs) }

// Glyph returns the glyph loaded for r.
func (g *Geometry) Glyph(r rune) (*glyph.Geometry, bool) {
	i, ok := g.byRune[r]
	if !ok {
		return nil, false
	}
	return g.glyphs[i], true
}

// Truncate drops every glyph loaded after the first n.
func (g *Geometry) Truncate(n int) {
	if n < 0 || n >= len(g.glyphs) {
		return
	}
	for _, gl := range g.glyphs[n:] {
		delete(g.byRune, gl.Codepoint())
	}
	clear(g.glyphs[n:])
	g.glyphs = g.glyphs[:n]
}
