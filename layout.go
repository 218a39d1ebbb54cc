package msdfatlas

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/msdfatlas/font"
	"github.com/gogpu/msdfatlas/generator"
)

// LayoutAtlas describes the atlas image.
type LayoutAtlas struct {
	Type          generator.ImageType `json:"type" yaml:"type"`
	DistanceRange float64             `json:"distanceRange" yaml:"distanceRange"`
	Size          float64             `json:"size" yaml:"size"`
	Width         int                 `json:"width" yaml:"width"`
	Height        int                 `json:"height" yaml:"height"`
	YOrigin       string              `json:"yOrigin" yaml:"yOrigin"`
}

// Layout is the glyph layout of an atlas, in the JSON shape used by common
// MSDF text renderers.
type Layout struct {
	Atlas   LayoutAtlas  `json:"atlas" yaml:"atlas"`
	Metrics font.Metrics `json:"metrics" yaml:"metrics"`
	Glyphs  []Glyph      `json:"glyphs" yaml:"glyphs"`
}

// LayoutFormat selects the layout encoding.
type LayoutFormat int

const (
	LayoutJSON LayoutFormat = iota
	LayoutYAML
)

// Layout returns the layout of every glyph, ordered by code point.
func (fa *FontAtlas) Layout() Layout {
	fa.mu.Lock()
	defer fa.mu.Unlock()

	side := fa.atlas.Side()
	l := Layout{
		Atlas: LayoutAtlas{
			Type:          fa.cfg.ImageType,
			DistanceRange: fa.cfg.PxRange,
			Size:          fa.cfg.EmScale,
			Width:         side,
			Height:        side,
			YOrigin:       "top",
		},
		Metrics: fa.geometry.Metrics,
		Glyphs:  make([]Glyph, 0, fa.geometry.Len()),
	}
	for _, g := range fa.geometry.Glyphs() {
		l.Glyphs = append(l.Glyphs, describe(g))
	}
	slices.SortFunc(l.Glyphs, func(a, b Glyph) int { return int(a.Unicode - b.Unicode) })
	return l
}

// Encode writes the layout in the given format.
func (l *Layout) Encode(w io.Writer, format LayoutFormat) error {
	switch format {
	case LayoutJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(l)
	case LayoutYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(l); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("msdfatlas: unknown layout format %d", int(format))
}

// DecodeLayout reads a layout written by Encode.
func DecodeLayout(r io.Reader, format LayoutFormat) (*Layout, error) {
	var l Layout
	var err error
	switch format {
	case LayoutJSON:
		err = json.NewDecoder(r).Decode(&l)
	case LayoutYAML:
		err = yaml.NewDecoder(r).Decode(&l)
	default:
		return nil, fmt.Errorf("msdfatlas: unknown layout format %d", int(format))
	}
	if err != nil {
		return nil, fmt.Errorf("msdfatlas: decode layout: %w", err)
	}
	return &l, nil
}

// Glyph returns the layout entry for r.
func (l *Layout) Glyph(r rune) (Glyph, bool) {
	i, ok := slices.BinarySearchFunc(l.Glyphs, r, func(g Glyph, r rune) int { return int(g.Unicode - r) })
	if !ok {
		return Glyph{}, false
	}
	return l.Glyphs[i], true
}
