// Package glyph describes a single glyph's outline and its placement in an
// atlas: the box it occupies, how the outline maps into that box, and the
// quad bounds a renderer needs to draw it.
package glyph

import (
	"math"

	"github.com/gogpu/msdfatlas/msdf"
)

// Box is the pixel area a glyph occupies in the atlas and the transform
// from glyph units into it.
type Box struct {
	// X and Y locate the top-left corner in atlas pixels. They are only
	// meaningful once the glyph has been placed.
	X, Y int

	// W and H are the box dimensions in pixels, excluding atlas padding.
	W, H int

	// Scale is pixels per glyph unit.
	Scale float64

	// Range is the distance range in pixels.
	Range float64

	// Translate is applied in glyph units before scaling.
	Translate msdf.Point
}

// Bounds is an axis-aligned rectangle given by its four sides.
type Bounds struct {
	Left   float64 `json:"left" yaml:"left"`
	Bottom float64 `json:"bottom" yaml:"bottom"`
	Right  float64 `json:"right" yaml:"right"`
	Top    float64 `json:"top" yaml:"top"`
}

// Geometry is one glyph of a font: its codepoint, advance and outline, and
// once wrapped, its atlas box.
//
// The outline is expressed in em-normalized units with the y axis up.
type Geometry struct {
	index     int
	codepoint rune
	advance   float64
	shape     *msdf.Shape
	bounds    msdf.Rect
	box       Box
}

// New creates glyph geometry from an outline. The shape is normalized in
// place; an empty shape yields a whitespace glyph.
func New(index int, codepoint rune, advance float64, shape *msdf.Shape) *Geometry {
	if shape == nil {
		shape = &msdf.Shape{}
	}
	shape.Normalize()
	return &Geometry{
		index:     index,
		codepoint: codepoint,
		advance:   advance,
		shape:     shape,
		bounds:    shape.Bounds(),
	}
}

// Index returns the glyph index in its font.
func (g *Geometry) Index() int { return g.index }

// Codepoint returns the Unicode codepoint the glyph was loaded for, or 0
// when it was loaded by index.
func (g *Geometry) Codepoint() rune { return g.codepoint }

// Advance returns the horizontal advance in em-normalized units.
func (g *Geometry) Advance() float64 { return g.advance }

// Shape returns the glyph outline.
func (g *Geometry) Shape() *msdf.Shape { return g.shape }

// ShapeBounds returns the outline bounding box.
func (g *Geometry) ShapeBounds() msdf.Rect { return g.bounds }

// IsWhitespace reports whether the glyph has no visible outline.
func (g *Geometry) IsWhitespace() bool { return g.bounds.IsEmpty() }

// WrapBox sizes the glyph's box for the given scale (pixels per unit),
// distance range in pixels and miter limit. The box leaves half the range
// around the outline and, when miterLimit is positive, around miter joins.
func (g *Geometry) WrapBox(scale, pxRange, miterLimit float64) {
	g.box = Box{X: g.box.X, Y: g.box.Y, Scale: scale, Range: pxRange}
	if g.IsWhitespace() || scale <= 0 {
		return
	}

	border := pxRange / scale / 2
	r := msdf.Rect{
		MinX: g.bounds.MinX - border,
		MinY: g.bounds.MinY - border,
		MaxX: g.bounds.MaxX + border,
		MaxY: g.bounds.MaxY + border,
	}
	if miterLimit > 0 {
		r = g.shape.BoundMiters(r, border, miterLimit)
	}

	w := scale * r.Width()
	h := scale * r.Height()
	g.box.W = int(math.Ceil(w)) + 1
	g.box.H = int(math.Ceil(h)) + 1
	g.box.Translate = msdf.Point{
		X: -r.MinX + 0.5*(float64(g.box.W)-w)/scale,
		Y: -r.MinY + 0.5*(float64(g.box.H)-h)/scale,
	}
}

// BoxSize returns the box dimensions in pixels.
func (g *Geometry) BoxSize() (w, h int) { return g.box.W, g.box.H }

// PlaceBox records the box's top-left corner in the atlas.
func (g *Geometry) PlaceBox(x, y int) {
	g.box.X, g.box.Y = x, y
}

// Box returns the glyph box.
func (g *Geometry) Box() Box { return g.box }

// Projection returns the mapping from glyph units to box pixels.
func (g *Geometry) Projection() msdf.Projection {
	return msdf.Projection{Scale: g.box.Scale, Translate: g.box.Translate}
}

// EdgeColoring colors the outline edges with fn.
func (g *Geometry) EdgeColoring(fn msdf.ColoringFunc, angleThreshold float64, seed uint64) {
	fn(g.shape, angleThreshold, seed)
}

// QuadPlaneBounds returns the quad to draw relative to the pen position, in
// em-normalized units with y up. The quad spans pixel centers of the box.
func (g *Geometry) QuadPlaneBounds() Bounds {
	if g.box.W <= 0 || g.box.H <= 0 {
		return Bounds{}
	}
	inv := 1 / g.box.Scale
	return Bounds{
		Left:   -g.box.Translate.X + 0.5*inv,
		Bottom: -g.box.Translate.Y + 0.5*inv,
		Right:  -g.box.Translate.X + (float64(g.box.W)-0.5)*inv,
		Top:    -g.box.Translate.Y + (float64(g.box.H)-0.5)*inv,
	}
}

// QuadAtlasBounds returns the quad's texture rectangle in atlas pixels with
// y down, so Top < Bottom.
func (g *Geometry) QuadAtlasBounds() Bounds {
	if g.box.W <= 0 || g.box.H <= 0 {
		return Bounds{}
	}
	return Bounds{
		Left:   float64(g.box.X) + 0.5,
		Top:    float64(g.box.Y) + 0.5,
		Right:  float64(g.box.X+g.box.W) - 0.5,
		Bottom: float64(g.box.Y+g.box.H) - 0.5,
	}
}
