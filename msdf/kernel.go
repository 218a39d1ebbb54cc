package msdf

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// Kind selects the encoding Render writes.
type Kind int

const (
	// KindHardMask is a 1-channel binary coverage mask.
	KindHardMask Kind = iota

	// KindSoftMask is a 1-channel anti-aliased coverage mask.
	KindSoftMask

	// KindSDF is a 1-channel true signed distance field.
	KindSDF

	// KindPSDF is a 1-channel pseudo signed distance field.
	KindPSDF

	// KindMSDF is a 3-channel multi-channel signed distance field.
	KindMSDF

	// KindMTSDF is an MSDF with the true signed distance in a fourth channel.
	KindMTSDF
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindHardMask:
		return "HardMask"
	case KindSoftMask:
		return "SoftMask"
	case KindSDF:
		return "SDF"
	case KindPSDF:
		return "PSDF"
	case KindMSDF:
		return "MSDF"
	case KindMTSDF:
		return "MTSDF"
	default:
		return "Unknown"
	}
}

// Channels returns the number of channels the kind produces.
func (k Kind) Channels() int {
	switch k {
	case KindMSDF:
		return 3
	case KindMTSDF:
		return 4
	default:
		return 1
	}
}

// UsesEdgeColors reports whether the kind reads edge colors, that is
// whether shapes must be colored before rendering.
func (k Kind) UsesEdgeColors() bool {
	return k == KindMSDF || k == KindMTSDF
}

// FloatImage is a row-major, top-down float32 image with interleaved
// channels.
type FloatImage struct {
	Pix      []float32
	Width    int
	Height   int
	Channels int
}

// NewFloatImage allocates a zeroed image.
func NewFloatImage(width, height, channels int) *FloatImage {
	return &FloatImage{
		Pix:      make([]float32, width*height*channels),
		Width:    width,
		Height:   height,
		Channels: channels,
	}
}

// PixOffset returns the index of channel 0 of pixel (x, y).
func (m *FloatImage) PixOffset(x, y int) int {
	return (y*m.Width + x) * m.Channels
}

// Render fills dst with the distance field or mask of shape. Pixel (x, y)
// samples the shape at proj.Unproject(x+0.5, Height-y-0.5), so row 0 is
// the top of the glyph. pxRange is the full width of the representable
// distance range in pixels. dst.Channels must equal kind.Channels().
func Render(dst *FloatImage, kind Kind, shape *Shape, proj Projection, pxRange float64) {
	if dst.Width <= 0 || dst.Height <= 0 {
		return
	}
	switch kind {
	case KindHardMask, KindSoftMask:
		renderMask(dst, shape, proj, kind == KindHardMask)
		return
	}

	fill := newWinding(shape)
	edges := make([]*Edge, 0, shape.EdgeCount())
	for ci := range shape.Contours {
		for ei := range shape.Contours[ci].Edges {
			edges = append(edges, &shape.Contours[ci].Edges[ei])
		}
	}
	toValue := func(d float64) float32 {
		return float32(0.5 + d*proj.Scale/pxRange)
	}

	for y := range dst.Height {
		for x := range dst.Width {
			p := proj.Unproject(Point{float64(x) + 0.5, float64(dst.Height-y) - 0.5})
			inside := fill.contains(p)
			out := dst.Pix[dst.PixOffset(x, y):]

			switch kind {
			case KindSDF:
				out[0] = toValue(trueDistance(edges, p, inside))
			case KindPSDF:
				out[0] = toValue(pseudoDistance(edges, p, inside, ColorBlack))
			case KindMSDF, KindMTSDF:
				r, g, b := multiDistance(edges, p, inside)
				out[0], out[1], out[2] = toValue(r), toValue(g), toValue(b)
				if kind == KindMTSDF {
					out[3] = toValue(trueDistance(edges, p, inside))
				}
			}
		}
	}
}

func withSign(d float64, inside bool) float64 {
	if inside {
		return math.Abs(d)
	}
	return -math.Abs(d)
}

func trueDistance(edges []*Edge, p Point, inside bool) float64 {
	best := Infinite()
	for _, e := range edges {
		if sd, _ := e.SignedDistance(p); sd.IsCloserThan(best) {
			best = sd
		}
	}
	return withSign(best.Distance, inside)
}

// pseudoDistance returns the pseudo distance to the closest edge among those
// carrying channel. ColorBlack selects every edge.
func pseudoDistance(edges []*Edge, p Point, inside bool, channel EdgeColor) float64 {
	sd, ok := closestPseudo(edges, p, channel)
	if !ok {
		sd, _ = closestPseudo(edges, p, ColorBlack)
	}
	return withSign(sd.Distance, inside)
}

func closestPseudo(edges []*Edge, p Point, channel EdgeColor) (SignedDistance, bool) {
	best := Infinite()
	var bestEdge *Edge
	var bestParam float64
	for _, e := range edges {
		if channel != ColorBlack && e.Color&channel == 0 {
			continue
		}
		if sd, param := e.SignedDistance(p); sd.IsCloserThan(best) {
			best, bestEdge, bestParam = sd, e, param
		}
	}
	if bestEdge == nil {
		return best, false
	}
	bestEdge.DistanceToPseudoDistance(&best, p, bestParam)
	return best, true
}

// multiDistance returns per-channel pseudo distances, flipped as a group
// when their median disagrees with the fill.
func multiDistance(edges []*Edge, p Point, inside bool) (r, g, b float64) {
	var ds [3]float64
	for i, ch := range [3]EdgeColor{ColorRed, ColorGreen, ColorBlue} {
		sd, ok := closestPseudo(edges, p, ch)
		if !ok {
			sd, _ = closestPseudo(edges, p, ColorBlack)
		}
		ds[i] = sd.Distance
	}
	if (median(ds[0], ds[1], ds[2]) > 0) != inside {
		ds[0], ds[1], ds[2] = -ds[0], -ds[1], -ds[2]
	}
	return ds[0], ds[1], ds[2]
}

func median(a, b, c float64) float64 {
	return max(min(a, b), min(max(a, b), c))
}

// winding answers nonzero-rule point containment on flattened contours.
type winding struct {
	polys [][]Point
}

func newWinding(s *Shape) *winding {
	w := &winding{}
	for i := range s.Contours {
		if poly := s.Contours[i].polygon(nil); len(poly) >= 2 {
			w.polys = append(w.polys, poly)
		}
	}
	return w
}

func (w *winding) contains(p Point) bool {
	wn := 0
	for _, poly := range w.polys {
		n := len(poly)
		for i := range n {
			a, b := poly[i], poly[(i+1)%n]
			side := b.Sub(a).Cross(p.Sub(a))
			if a.Y <= p.Y {
				if b.Y > p.Y && side > 0 {
					wn++
				}
			} else if b.Y <= p.Y && side < 0 {
				wn--
			}
		}
	}
	return wn != 0
}

// renderMask rasterizes the shape's coverage with the nonzero rule.
func renderMask(dst *FloatImage, shape *Shape, proj Projection, hard bool) {
	z := vector.NewRasterizer(dst.Width, dst.Height)
	z.DrawOp = draw.Src
	h := float64(dst.Height)
	pt := func(p Point) (float32, float32) {
		q := proj.Project(p)
		return float32(q.X), float32(h - q.Y)
	}
	for ci := range shape.Contours {
		edges := shape.Contours[ci].Edges
		if len(edges) == 0 {
			continue
		}
		z.MoveTo(pt(edges[0].StartPoint()))
		for i := range edges {
			e := &edges[i]
			switch e.Type {
			case EdgeQuadratic:
				bx, by := pt(e.Points[1])
				cx, cy := pt(e.Points[2])
				z.QuadTo(bx, by, cx, cy)
			case EdgeCubic:
				bx, by := pt(e.Points[1])
				cx, cy := pt(e.Points[2])
				dx, dy := pt(e.Points[3])
				z.CubeTo(bx, by, cx, cy, dx, dy)
			default:
				z.LineTo(pt(e.Points[1]))
			}
		}
		z.ClosePath()
	}

	mask := image.NewAlpha(image.Rect(0, 0, dst.Width, dst.Height))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	for y := range dst.Height {
		for x := range dst.Width {
			v := float32(mask.Pix[y*mask.Stride+x]) / 255
			if hard {
				if v >= 0.5 {
					v = 1
				} else {
					v = 0
				}
			}
			dst.Pix[dst.PixOffset(x, y)] = v
		}
	}
}
