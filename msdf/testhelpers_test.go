package msdf

import "math"

func squareShape(x0, y0, x1, y1 float64) *Shape {
	b := NewBuilder()
	b.MoveTo(x0, y0)
	b.LineTo(x1, y0)
	b.LineTo(x1, y1)
	b.LineTo(x0, y1)
	return b.Shape()
}

// circleShape approximates a counter-clockwise circle with four cubics.
func circleShape(cx, cy, r float64) *Shape {
	k := 0.5522847498 * r
	b := NewBuilder()
	b.MoveTo(cx+r, cy)
	b.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	b.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	b.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	b.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	return b.Shape()
}

func near(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func bitCount(c EdgeColor) int {
	n := 0
	for ; c != 0; c &= c - 1 {
		n++
	}
	return n
}
