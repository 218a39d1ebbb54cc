package msdf

import "math"

// EdgeType classifies edge segments by their geometric type.
type EdgeType int

const (
	// EdgeLinear is a straight line segment between two points.
	EdgeLinear EdgeType = iota

	// EdgeQuadratic is a quadratic Bezier curve (one control point).
	EdgeQuadratic

	// EdgeCubic is a cubic Bezier curve (two control points).
	EdgeCubic
)

// String returns a string representation of the edge type.
func (t EdgeType) String() string {
	switch t {
	case EdgeLinear:
		return "Linear"
	case EdgeQuadratic:
		return "Quadratic"
	case EdgeCubic:
		return "Cubic"
	default:
		return "Unknown"
	}
}

// EdgeColor is a set of RGB channels an edge contributes to.
type EdgeColor uint8

const (
	ColorBlack   EdgeColor = 0
	ColorRed     EdgeColor = 1
	ColorGreen   EdgeColor = 2
	ColorYellow  EdgeColor = 3
	ColorBlue    EdgeColor = 4
	ColorMagenta EdgeColor = 5
	ColorCyan    EdgeColor = 6
	ColorWhite   EdgeColor = 7
)

// String returns a string representation of the edge color.
func (c EdgeColor) String() string {
	switch c {
	case ColorBlack:
		return "Black"
	case ColorRed:
		return "Red"
	case ColorGreen:
		return "Green"
	case ColorBlue:
		return "Blue"
	case ColorYellow:
		return "Yellow"
	case ColorCyan:
		return "Cyan"
	case ColorMagenta:
		return "Magenta"
	case ColorWhite:
		return "White"
	default:
		return "Unknown"
	}
}

// Has reports whether c includes every channel of ch.
func (c EdgeColor) Has(ch EdgeColor) bool { return c&ch == ch }

// Edge is a single linear, quadratic or cubic segment.
type Edge struct {
	Type EdgeType

	// Points holds the control points in order:
	// Linear: P0, P1; Quadratic: P0, P1 (control), P2; Cubic: P0, P1, P2, P3.
	Points [4]Point

	Color EdgeColor
}

// NewLinearEdge creates a white line segment.
func NewLinearEdge(start, end Point) Edge {
	return Edge{Type: EdgeLinear, Points: [4]Point{start, end}, Color: ColorWhite}
}

// NewQuadraticEdge creates a white quadratic Bezier edge.
func NewQuadraticEdge(start, control, end Point) Edge {
	return Edge{Type: EdgeQuadratic, Points: [4]Point{start, control, end}, Color: ColorWhite}
}

// NewCubicEdge creates a white cubic Bezier edge.
func NewCubicEdge(start, control1, control2, end Point) Edge {
	return Edge{Type: EdgeCubic, Points: [4]Point{start, control1, control2, end}, Color: ColorWhite}
}

// StartPoint returns the first point of the edge.
func (e *Edge) StartPoint() Point {
	return e.Points[0]
}

// EndPoint returns the last point of the edge.
func (e *Edge) EndPoint() Point {
	return e.Points[e.degree()]
}

func (e *Edge) degree() int {
	switch e.Type {
	case EdgeQuadratic:
		return 2
	case EdgeCubic:
		return 3
	default:
		return 1
	}
}

// PointAt evaluates the edge at parameter t in [0, 1].
func (e *Edge) PointAt(t float64) Point {
	p := e.Points
	switch e.Type {
	case EdgeQuadratic:
		u := 1 - t
		return p[0].Mul(u * u).Add(p[1].Mul(2 * u * t)).Add(p[2].Mul(t * t))
	case EdgeCubic:
		u := 1 - t
		return p[0].Mul(u * u * u).Add(p[1].Mul(3 * u * u * t)).Add(p[2].Mul(3 * u * t * t)).Add(p[3].Mul(t * t * t))
	default:
		return p[0].Lerp(p[1], t)
	}
}

// DirectionAt returns the tangent at parameter t. Where the derivative
// vanishes at a coincident control point the chord to the next distinct
// point is used instead.
func (e *Edge) DirectionAt(t float64) Point {
	p := e.Points
	switch e.Type {
	case EdgeQuadratic:
		d := p[1].Sub(p[0]).Lerp(p[2].Sub(p[1]), t)
		if d.LengthSquared() == 0 {
			return p[2].Sub(p[0])
		}
		return d
	case EdgeCubic:
		u := 1 - t
		d := p[1].Sub(p[0]).Mul(u * u).Add(p[2].Sub(p[1]).Mul(2 * u * t)).Add(p[3].Sub(p[2]).Mul(t * t))
		if d.LengthSquared() == 0 {
			if t == 0 {
				return p[2].Sub(p[0])
			}
			if t == 1 {
				return p[3].Sub(p[1])
			}
		}
		return d
	default:
		return p[1].Sub(p[0])
	}
}

func (e *Edge) secondDerivativeAt(t float64) Point {
	p := e.Points
	switch e.Type {
	case EdgeQuadratic:
		return p[2].Sub(p[1].Mul(2)).Add(p[0]).Mul(2)
	case EdgeCubic:
		a := p[2].Sub(p[1].Mul(2)).Add(p[0])
		b := p[3].Sub(p[2].Mul(2)).Add(p[1])
		return a.Mul(6 * (1 - t)).Add(b.Mul(6 * t))
	default:
		return Point{}
	}
}

// SignedDistance returns the signed distance from p to the edge and the
// curve parameter of the closest point. The parameter is below 0 or above 1
// when p lies behind the start or past the end along the endpoint tangent.
func (e *Edge) SignedDistance(p Point) (SignedDistance, float64) {
	if e.Type == EdgeLinear {
		return e.linearDistance(p)
	}

	best := Infinite()
	bestT := 0.0
	try := func(t float64) {
		if t < 0 || t > 1 {
			return
		}
		sd := e.distanceAt(p, t)
		if sd.IsCloserThan(best) {
			best, bestT = sd, t
		}
	}

	try(0)
	try(1)
	if e.Type == EdgeQuadratic {
		for _, t := range e.quadraticCandidates(p) {
			try(t)
		}
	} else {
		const samples = 8
		for i := 0; i <= samples; i++ {
			try(e.newtonRefine(p, float64(i)/samples))
		}
	}

	return best, e.extendParam(p, bestT)
}

func (e *Edge) linearDistance(p Point) (SignedDistance, float64) {
	a, b := e.Points[0], e.Points[1]
	ab := b.Sub(a)
	ap := p.Sub(a)
	abLenSq := ab.LengthSquared()
	if abLenSq == 0 {
		return SignedDistance{Distance: ap.Length()}, 0
	}

	t := ap.Dot(ab) / abLenSq
	end := a
	if t > 0.5 {
		end = b
	}
	eq := p.Sub(end)
	endpointDist := eq.Length()
	if t > 0 && t < 1 {
		ortho := ab.Cross(ap) / math.Sqrt(abLenSq)
		if math.Abs(ortho) < endpointDist {
			return SignedDistance{Distance: ortho}, t
		}
	}
	dist := endpointDist
	if ab.Cross(ap) < 0 {
		dist = -dist
	}
	return SignedDistance{Distance: dist, Dot: math.Abs(ab.Normalized().Dot(eq.Normalized()))}, t
}

func (e *Edge) distanceAt(p Point, t float64) SignedDistance {
	diff := p.Sub(e.PointAt(t))
	tangent := e.DirectionAt(t)
	dist := diff.Length()
	if tangent.Cross(diff) < 0 {
		dist = -dist
	}
	var dot float64
	if t == 0 || t == 1 {
		dot = math.Abs(tangent.Normalized().Dot(diff.Normalized()))
	}
	return SignedDistance{Distance: dist, Dot: dot}
}

// quadraticCandidates returns the parameters in [0, 1] where the squared
// distance to p is stationary.
func (e *Edge) quadraticCandidates(p Point) []float64 {
	qa := e.Points[0].Sub(p)
	qb := e.Points[1].Sub(p)
	qc := e.Points[2].Sub(p)
	a := qa.Sub(qb.Mul(2)).Add(qc)
	b := qb.Sub(qa).Mul(2)
	c := qa
	return solveCubic(2*a.Dot(a), 3*a.Dot(b), 2*a.Dot(c)+b.Dot(b), b.Dot(c))
}

func (e *Edge) newtonRefine(p Point, t float64) float64 {
	const maxIter = 8
	const epsilon = 1e-10
	for range maxIter {
		diff := e.PointAt(t).Sub(p)
		d1 := e.DirectionAt(t).Mul(3)
		d2 := e.secondDerivativeAt(t)
		f := diff.Dot(d1)
		fp := d1.Dot(d1) + diff.Dot(d2)
		if math.Abs(fp) < epsilon {
			break
		}
		dt := -f / fp
		if math.Abs(dt) < epsilon {
			break
		}
		t = min(max(t+dt, 0), 1)
	}
	return t
}

// extendParam projects p onto the endpoint tangent when the closest point
// is an endpoint and p lies beyond it.
func (e *Edge) extendParam(p Point, t float64) float64 {
	switch t {
	case 0:
		dir := e.DirectionAt(0)
		if l := dir.LengthSquared(); l > 0 {
			if s := p.Sub(e.StartPoint()).Dot(dir) / l; s < 0 {
				return s
			}
		}
	case 1:
		dir := e.DirectionAt(1)
		if l := dir.LengthSquared(); l > 0 {
			if s := p.Sub(e.EndPoint()).Dot(dir) / l; s > 0 {
				return 1 + s
			}
		}
	}
	return t
}

// DistanceToPseudoDistance replaces d with the distance to the endpoint
// tangent line when param lies outside [0, 1] and that distance is not
// larger.
func (e *Edge) DistanceToPseudoDistance(d *SignedDistance, p Point, param float64) {
	var dir, q Point
	switch {
	case param < 0:
		dir = e.DirectionAt(0).Normalized()
		q = p.Sub(e.StartPoint())
		if q.Dot(dir) >= 0 {
			return
		}
	case param > 1:
		dir = e.DirectionAt(1).Normalized()
		q = p.Sub(e.EndPoint())
		if q.Dot(dir) <= 0 {
			return
		}
	default:
		return
	}
	if pseudo := dir.Cross(q); math.Abs(pseudo) <= math.Abs(d.Distance) {
		d.Distance = pseudo
		d.Dot = 0
	}
}

// Bounds returns the tight bounding box of the edge.
func (e *Edge) Bounds() Rect {
	r := EmptyRect().include(e.StartPoint()).include(e.EndPoint())
	p := e.Points
	var roots []float64
	switch e.Type {
	case EdgeQuadratic:
		for axis := range 2 {
			d := coord(p[0], axis) - 2*coord(p[1], axis) + coord(p[2], axis)
			if math.Abs(d) > 1e-14 {
				roots = append(roots, (coord(p[0], axis)-coord(p[1], axis))/d)
			}
		}
	case EdgeCubic:
		for axis := range 2 {
			a := -coord(p[0], axis) + 3*coord(p[1], axis) - 3*coord(p[2], axis) + coord(p[3], axis)
			b := 2*coord(p[0], axis) - 4*coord(p[1], axis) + 2*coord(p[2], axis)
			c := -coord(p[0], axis) + coord(p[1], axis)
			roots = append(roots, solveQuadratic(a, b, c)...)
		}
	}
	for _, t := range roots {
		if t > 0 && t < 1 {
			r = r.include(e.PointAt(t))
		}
	}
	return r
}

func coord(p Point, axis int) float64 {
	if axis == 0 {
		return p.X
	}
	return p.Y
}

// SplitAt divides the edge at parameter t into two edges of the same type
// and color.
func (e *Edge) SplitAt(t float64) (Edge, Edge) {
	p := e.Points
	first, second := Edge{Type: e.Type, Color: e.Color}, Edge{Type: e.Type, Color: e.Color}
	switch e.Type {
	case EdgeQuadratic:
		p01 := p[0].Lerp(p[1], t)
		p12 := p[1].Lerp(p[2], t)
		mid := p01.Lerp(p12, t)
		first.Points = [4]Point{p[0], p01, mid}
		second.Points = [4]Point{mid, p12, p[2]}
	case EdgeCubic:
		p01 := p[0].Lerp(p[1], t)
		p12 := p[1].Lerp(p[2], t)
		p23 := p[2].Lerp(p[3], t)
		a := p01.Lerp(p12, t)
		b := p12.Lerp(p23, t)
		mid := a.Lerp(b, t)
		first.Points = [4]Point{p[0], p01, a, mid}
		second.Points = [4]Point{mid, b, p23, p[3]}
	default:
		mid := p[0].Lerp(p[1], t)
		first.Points = [4]Point{p[0], mid}
		second.Points = [4]Point{mid, p[1]}
	}
	return first, second
}

// SplitInThirds divides the edge into three edges covering [0,1/3],
// [1/3,2/3] and [2/3,1].
func (e *Edge) SplitInThirds() [3]Edge {
	a, rest := e.SplitAt(1.0 / 3)
	b, c := rest.SplitAt(0.5)
	return [3]Edge{a, b, c}
}

// estimateLength sums chord lengths over four uniform steps.
func (e *Edge) estimateLength() float64 {
	const steps = 4
	var length float64
	prev := e.PointAt(0)
	for i := 1; i <= steps; i++ {
		cur := e.PointAt(float64(i) / steps)
		length += cur.Sub(prev).Length()
		prev = cur
	}
	return length
}

// flatten appends points approximating the edge, excluding its start point.
func (e *Edge) flatten(dst []Point) []Point {
	steps := 1
	switch e.Type {
	case EdgeQuadratic:
		steps = 16
	case EdgeCubic:
		steps = 24
	}
	for i := 1; i <= steps; i++ {
		dst = append(dst, e.PointAt(float64(i)/float64(steps)))
	}
	return dst
}
