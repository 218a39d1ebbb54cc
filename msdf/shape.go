package msdf

import (
	"errors"
	"math"
)

// ErrOpenContour is returned by Shape.Validate for a contour whose last edge
// does not end where its first edge starts.
var ErrOpenContour = errors.New("msdf: contour is not closed")

// Contour is a closed loop of edges.
type Contour struct {
	Edges []Edge
}

// Bounds returns the bounding box of all edges in the contour.
func (c *Contour) Bounds() Rect {
	r := EmptyRect()
	for i := range c.Edges {
		r = r.Union(c.Edges[i].Bounds())
	}
	return r
}

// Winding returns +1 for a counter-clockwise contour, -1 for a clockwise
// one (in a y-up coordinate system) and 0 for a degenerate one.
func (c *Contour) Winding() int {
	var area float64
	poly := c.polygon(nil)
	for i := range poly {
		area += poly[i].Cross(poly[(i+1)%len(poly)])
	}
	switch {
	case area > 0:
		return 1
	case area < 0:
		return -1
	default:
		return 0
	}
}

func (c *Contour) polygon(dst []Point) []Point {
	if len(c.Edges) == 0 {
		return dst
	}
	dst = append(dst, c.Edges[0].StartPoint())
	for i := range c.Edges {
		dst = c.Edges[i].flatten(dst)
	}
	// The flattened loop ends on its start point.
	return dst[:len(dst)-1]
}

// Shape is a glyph outline made of closed contours, in font units with the
// y axis pointing up.
type Shape struct {
	Contours []Contour
}

// Bounds returns the bounding box of the shape. An empty shape returns an
// inverted rectangle for which IsEmpty is true.
func (s *Shape) Bounds() Rect {
	r := EmptyRect()
	for i := range s.Contours {
		r = r.Union(s.Contours[i].Bounds())
	}
	return r
}

// EdgeCount returns the total number of edges across all contours.
func (s *Shape) EdgeCount() int {
	n := 0
	for i := range s.Contours {
		n += len(s.Contours[i].Edges)
	}
	return n
}

// Validate checks that every contour is closed.
func (s *Shape) Validate() error {
	for i := range s.Contours {
		edges := s.Contours[i].Edges
		if len(edges) == 0 {
			continue
		}
		first := edges[0].StartPoint()
		last := edges[len(edges)-1].EndPoint()
		if math.Abs(first.X-last.X) > 1e-6 || math.Abs(first.Y-last.Y) > 1e-6 {
			return ErrOpenContour
		}
	}
	return nil
}

// Normalize splits contours consisting of a single edge into thirds so that
// every contour can carry at least three colors.
func (s *Shape) Normalize() {
	for i := range s.Contours {
		c := &s.Contours[i]
		if len(c.Edges) == 1 {
			parts := c.Edges[0].SplitInThirds()
			c.Edges = parts[:]
		}
	}
}

// Clone returns a deep copy of the shape.
func (s *Shape) Clone() *Shape {
	out := &Shape{Contours: make([]Contour, len(s.Contours))}
	for i := range s.Contours {
		out.Contours[i].Edges = append([]Edge(nil), s.Contours[i].Edges...)
	}
	return out
}

// Builder assembles a Shape from path commands in the order a font outline
// delivers them.
type Builder struct {
	shape Shape
	edges []Edge
	start Point
	pos   Point
}

// NewBuilder returns an empty shape builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// MoveTo closes the current contour and starts a new one at (x, y).
func (b *Builder) MoveTo(x, y float64) {
	b.Close()
	b.start = Point{x, y}
	b.pos = b.start
}

// LineTo adds a straight edge. Zero-length lines are dropped.
func (b *Builder) LineTo(x, y float64) {
	end := Point{x, y}
	if end.Sub(b.pos).LengthSquared() > 1e-12 {
		b.edges = append(b.edges, NewLinearEdge(b.pos, end))
	}
	b.pos = end
}

// QuadTo adds a quadratic Bezier edge.
func (b *Builder) QuadTo(cx, cy, x, y float64) {
	end := Point{x, y}
	b.edges = append(b.edges, NewQuadraticEdge(b.pos, Point{cx, cy}, end))
	b.pos = end
}

// CubeTo adds a cubic Bezier edge.
func (b *Builder) CubeTo(c1x, c1y, c2x, c2y, x, y float64) {
	end := Point{x, y}
	b.edges = append(b.edges, NewCubicEdge(b.pos, Point{c1x, c1y}, Point{c2x, c2y}, end))
	b.pos = end
}

// Close ends the current contour, adding a line back to its start point if
// needed. Closing an empty contour is a no-op.
func (b *Builder) Close() {
	if len(b.edges) == 0 {
		return
	}
	b.LineTo(b.start.X, b.start.Y)
	b.shape.Contours = append(b.shape.Contours, Contour{Edges: b.edges})
	b.edges = nil
	b.pos = b.start
}

// Shape closes any open contour and returns the assembled shape.
func (b *Builder) Shape() *Shape {
	b.Close()
	s := b.shape
	b.shape = Shape{}
	return &s
}

// BoundMiters grows r to include the miter joins a stroke of width border
// would produce at the convex corners of each contour, capping the miter
// length at miterLimit times border.
func (s *Shape) BoundMiters(r Rect, border, miterLimit float64) Rect {
	for ci := range s.Contours {
		c := &s.Contours[ci]
		if len(c.Edges) == 0 {
			continue
		}
		polarity := -float64(c.Winding())
		prev := c.Edges[len(c.Edges)-1].DirectionAt(1).Normalized()
		for i := range c.Edges {
			e := &c.Edges[i]
			dir := e.DirectionAt(0).Normalized().Mul(-1)
			if polarity*prev.Cross(dir) >= 0 {
				length := miterLimit
				if q := 0.5 * (1 - prev.Dot(dir)); q > 0 {
					length = min(1/math.Sqrt(q), miterLimit)
				}
				r = r.include(e.StartPoint().Add(prev.Add(dir).Normalized().Mul(border * length)))
			}
			prev = e.DirectionAt(1).Normalized()
		}
	}
	return r
}
