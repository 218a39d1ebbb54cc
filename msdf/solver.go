package msdf

import "math"

const solverEpsilon = 1e-14

// solveCubic returns the real roots of a*x^3 + b*x^2 + c*x + d = 0 that lie
// in [0, 1].
func solveCubic(a, b, c, d float64) []float64 {
	if math.Abs(a) < solverEpsilon {
		return solveQuadratic(b, c, d)
	}

	b /= a
	c /= a
	d /= a

	// Depressed cubic t^3 + p*t + q with x = t - b/3.
	p := c - b*b/3
	q := d - b*c/3 + 2*b*b*b/27
	disc := q*q/4 + p*p*p/27
	shift := b / 3

	var roots []float64
	switch {
	case disc > solverEpsilon:
		s := math.Sqrt(disc)
		roots = appendUnit(roots, math.Cbrt(-q/2+s)+math.Cbrt(-q/2-s)-shift)
	case disc < -solverEpsilon:
		r := math.Sqrt(-p * p * p / 27)
		phi := math.Acos(min(max(-q/(2*r), -1), 1))
		m := 2 * math.Cbrt(r)
		for k := range 3 {
			roots = appendUnit(roots, m*math.Cos((phi+2*math.Pi*float64(k))/3)-shift)
		}
	default:
		u := math.Cbrt(-q / 2)
		roots = appendUnit(roots, 2*u-shift)
		if math.Abs(3*u) > 1e-10 {
			roots = appendUnit(roots, -u-shift)
		}
	}
	return roots
}

// solveQuadratic returns the real roots of a*x^2 + b*x + c = 0 that lie in
// [0, 1].
func solveQuadratic(a, b, c float64) []float64 {
	if math.Abs(a) < solverEpsilon {
		if math.Abs(b) < solverEpsilon {
			return nil
		}
		return appendUnit(nil, -c/b)
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return nil
	}
	s := math.Sqrt(disc)
	roots := appendUnit(nil, (-b+s)/(2*a))
	if s > 1e-10 {
		roots = appendUnit(roots, (-b-s)/(2*a))
	}
	return roots
}

func appendUnit(roots []float64, x float64) []float64 {
	if x >= 0 && x <= 1 {
		return append(roots, x)
	}
	return roots
}
