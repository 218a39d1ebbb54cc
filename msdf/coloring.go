package msdf

import "math"

// ColoringFunc assigns edge colors to shape. Implementations must be pure
// functions of (shape, angleThreshold, seed).
type ColoringFunc func(shape *Shape, angleThreshold float64, seed uint64)

// DefaultAngleThreshold is the corner angle threshold in radians used when
// none is configured.
const DefaultAngleThreshold = 3.0

func isCorner(a, b Point, crossThreshold float64) bool {
	return a.Dot(b) <= 0 || math.Abs(a.Cross(b)) > crossThreshold
}

func seedExtract2(seed *uint64) uint64 {
	v := *seed & 1
	*seed >>= 1
	return v
}

func seedExtract3(seed *uint64) uint64 {
	v := *seed % 3
	*seed /= 3
	return v
}

var startColors = [3]EdgeColor{ColorCyan, ColorMagenta, ColorYellow}

func initColor(seed *uint64) EdgeColor {
	return startColors[seedExtract3(seed)]
}

// switchColor moves color to another two-channel color. A banned color
// whose overlap with color is a single channel forces the complement of
// that channel.
func switchColor(color *EdgeColor, seed *uint64, banned EdgeColor) {
	combined := *color & banned
	if combined == ColorRed || combined == ColorGreen || combined == ColorBlue {
		*color = combined ^ ColorWhite
		return
	}
	if *color == ColorBlack || *color == ColorWhite {
		*color = startColors[seedExtract3(seed)]
		return
	}
	shifted := *color << (1 + seedExtract2(seed))
	*color = (shifted | shifted>>3) & ColorWhite
}

// symmetricalTrichotomy maps position in [0, n) onto -1, 0, 1 so that the
// middle third of a teardrop contour is white.
func symmetricalTrichotomy(position, n int) int {
	return int(3+2.875*float64(position)/float64(n-1)-1.4375+0.5) - 3
}

func cornerIndices(c *Contour, crossThreshold float64) []int {
	var corners []int
	prev := c.Edges[len(c.Edges)-1].DirectionAt(1)
	for i := range c.Edges {
		e := &c.Edges[i]
		if isCorner(prev.Normalized(), e.DirectionAt(0).Normalized(), crossThreshold) {
			corners = append(corners, i)
		}
		prev = e.DirectionAt(1)
	}
	return corners
}

// colorTeardrop colors a contour with a single corner: the edges around the
// corner take two different colors and the opposite stretch is white.
func colorTeardrop(c *Contour, corner int, color *EdgeColor, seed *uint64) {
	var colors [3]EdgeColor
	switchColor(color, seed, ColorBlack)
	colors[0] = *color
	colors[1] = ColorWhite
	switchColor(color, seed, ColorBlack)
	colors[2] = *color

	m := len(c.Edges)
	if m >= 3 {
		for i := range m {
			c.Edges[(corner+i)%m].Color = colors[1+symmetricalTrichotomy(i, m)]
		}
		return
	}

	// Fewer edges than colors: split each edge into thirds starting at
	// the corner edge.
	var parts []Edge
	for i := range m {
		thirds := c.Edges[(corner+i)%m].SplitInThirds()
		parts = append(parts, thirds[:]...)
	}
	if m == 1 {
		for i := range parts {
			parts[i].Color = colors[i]
		}
	} else {
		for i := range parts {
			parts[i].Color = colors[i/2]
		}
	}
	c.Edges = parts
}

// EdgeColoringSimple colors edges so that the two sides of every corner
// sharper than angleThreshold differ in at least one channel, switching
// color at each corner.
func EdgeColoringSimple(shape *Shape, angleThreshold float64, seed uint64) {
	crossThreshold := math.Sin(angleThreshold)
	color := initColor(&seed)
	for ci := range shape.Contours {
		c := &shape.Contours[ci]
		if len(c.Edges) == 0 {
			continue
		}
		corners := cornerIndices(c, crossThreshold)

		switch len(corners) {
		case 0:
			switchColor(&color, &seed, ColorBlack)
			for i := range c.Edges {
				c.Edges[i].Color = color
			}
		case 1:
			colorTeardrop(c, corners[0], &color, &seed)
		default:
			cornerCount := len(corners)
			spline := 0
			start := corners[0]
			m := len(c.Edges)
			switchColor(&color, &seed, ColorBlack)
			initial := color
			for i := range m {
				index := (start + i) % m
				if spline+1 < cornerCount && corners[spline+1] == index {
					spline++
					banned := ColorBlack
					if spline == cornerCount-1 {
						banned = initial
					}
					switchColor(&color, &seed, banned)
				}
				c.Edges[index].Color = color
			}
		}
	}
}

type inkTrapCorner struct {
	index      int
	prevLength float64
	minor      bool
	color      EdgeColor
}

// EdgeColoringInkTrap is EdgeColoringSimple with one refinement: on
// contours with more than three corners, a corner between two longer
// splines on a short spline (an ink trap) is treated as minor and takes a
// color derived from its neighbours instead of consuming a switch.
func EdgeColoringInkTrap(shape *Shape, angleThreshold float64, seed uint64) {
	crossThreshold := math.Sin(angleThreshold)
	color := initColor(&seed)
	var corners []inkTrapCorner
	for ci := range shape.Contours {
		c := &shape.Contours[ci]
		if len(c.Edges) == 0 {
			continue
		}

		corners = corners[:0]
		splineLength := 0.0
		prev := c.Edges[len(c.Edges)-1].DirectionAt(1)
		for i := range c.Edges {
			e := &c.Edges[i]
			if isCorner(prev.Normalized(), e.DirectionAt(0).Normalized(), crossThreshold) {
				corners = append(corners, inkTrapCorner{index: i, prevLength: splineLength})
				splineLength = 0
			}
			splineLength += e.estimateLength()
			prev = e.DirectionAt(1)
		}

		switch len(corners) {
		case 0:
			switchColor(&color, &seed, ColorBlack)
			for i := range c.Edges {
				c.Edges[i].Color = color
			}
			continue
		case 1:
			colorTeardrop(c, corners[0].index, &color, &seed)
			continue
		}

		cornerCount := len(corners)
		majorCount := cornerCount
		if cornerCount > 3 {
			corners[0].prevLength += splineLength
			for i := range cornerCount {
				next := corners[(i+1)%cornerCount].prevLength
				if corners[i].prevLength > next && next < corners[(i+2)%cornerCount].prevLength {
					corners[i].minor = true
					majorCount--
				}
			}
		}

		initial := ColorBlack
		for i := range corners {
			if corners[i].minor {
				continue
			}
			majorCount--
			banned := ColorBlack
			if majorCount == 0 {
				banned = initial
			}
			switchColor(&color, &seed, banned)
			corners[i].color = color
			if initial == ColorBlack {
				initial = color
			}
		}
		for i := range corners {
			if corners[i].minor {
				next := corners[(i+1)%cornerCount].color
				corners[i].color = (color & next) ^ ColorWhite
			} else {
				color = corners[i].color
			}
		}

		spline := 0
		start := corners[0].index
		color = corners[0].color
		m := len(c.Edges)
		for i := range m {
			index := (start + i) % m
			if spline+1 < cornerCount && corners[spline+1].index == index {
				spline++
				color = corners[spline].color
			}
			c.Edges[index].Color = color
		}
	}
}
