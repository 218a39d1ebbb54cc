package msdf

import "math"

// Point is a 2D point or vector with float64 precision.
type Point struct {
	X, Y float64
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Mul returns p * s.
func (p Point) Mul(s float64) Point {
	return Point{p.X * s, p.Y * s}
}

// Dot returns the dot product of p and q.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Cross returns the z component of the 3D cross product.
func (p Point) Cross(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// Length returns the Euclidean length of p.
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// LengthSquared returns the squared length of p.
func (p Point) LengthSquared() float64 {
	return p.X*p.X + p.Y*p.Y
}

// Normalized returns a unit vector in the direction of p, or the zero
// vector when p has no length.
func (p Point) Normalized() Point {
	l := p.Length()
	if l == 0 {
		return Point{}
	}
	return Point{p.X / l, p.Y / l}
}

// Lerp returns p + t*(q-p).
func (p Point) Lerp(q Point, t float64) Point {
	return Point{p.X + t*(q.X-p.X), p.Y + t*(q.Y-p.Y)}
}

// Rect is an axis-aligned bounding box in shape units.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// EmptyRect returns an inverted rectangle that any Union replaces.
func EmptyRect() Rect {
	return Rect{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
}

// Width returns MaxX - MinX.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns MaxY - MinY.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// IsEmpty reports whether r has no area.
func (r Rect) IsEmpty() bool {
	return r.MinX >= r.MaxX || r.MinY >= r.MaxY
}

// Union returns the smallest rectangle containing r and s.
func (r Rect) Union(s Rect) Rect {
	return Rect{
		MinX: min(r.MinX, s.MinX),
		MinY: min(r.MinY, s.MinY),
		MaxX: max(r.MaxX, s.MaxX),
		MaxY: max(r.MaxY, s.MaxY),
	}
}

func (r Rect) include(p Point) Rect {
	return Rect{
		MinX: min(r.MinX, p.X),
		MinY: min(r.MinY, p.Y),
		MaxX: max(r.MaxX, p.X),
		MaxY: max(r.MaxY, p.Y),
	}
}

// SignedDistance is a distance to an edge together with the tie breaker
// used when two edges are equally close.
type SignedDistance struct {
	// Distance is positive on the left of the edge direction.
	Distance float64

	// Dot is |cos| of the angle between the edge tangent and the vector to
	// the query point at an endpoint, 0 in the interior.
	Dot float64
}

// Infinite returns a distance farther than any real one.
func Infinite() SignedDistance {
	return SignedDistance{Distance: -math.MaxFloat64, Dot: 0}
}

// IsCloserThan reports whether d is closer than other.
func (d SignedDistance) IsCloserThan(other SignedDistance) bool {
	absD, absO := math.Abs(d.Distance), math.Abs(other.Distance)
	if absD != absO {
		return absD < absO
	}
	return d.Dot < other.Dot
}

// Projection maps shape units to pixels: pixel = Scale * (shape + Translate).
type Projection struct {
	Scale     float64
	Translate Point
}

// Project converts a shape-space point to pixel space.
func (p Projection) Project(s Point) Point {
	return Point{p.Scale * (s.X + p.Translate.X), p.Scale * (s.Y + p.Translate.Y)}
}

// Unproject converts a pixel-space point to shape space.
func (p Projection) Unproject(px Point) Point {
	return Point{px.X/p.Scale - p.Translate.X, px.Y/p.Scale - p.Translate.Y}
}
