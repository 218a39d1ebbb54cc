// Package pack implements the guillotine rectangle packer used to lay out
// glyph boxes in a square atlas.
//
// The packer keeps a list of free spaces. Each rectangle goes into the free
// space that fits it best (an exact fit wins outright, otherwise the space
// leaving the shortest leftover side), and that space is split in two along
// the axis that keeps the larger leftover strip whole.
//
// Rectangles are placed strictly in input order. Pack stops at the first
// rectangle that fits nowhere, so the unplaced rectangles are always a suffix
// of the input. Callers that grow the packing area use this to retry only
// that suffix.
package pack

// Rectangle is an axis-aligned box in atlas pixels. W and H are set by the
// caller; X and Y are written by Packer.Pack.
type Rectangle struct {
	X, Y int
	W, H int
}

// Empty reports whether r covers no pixels.
func (r Rectangle) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Overlaps reports whether r and s share at least one pixel.
func (r Rectangle) Overlaps(s Rectangle) bool {
	if r.Empty() || s.Empty() {
		return false
	}
	return r.X < s.X+s.W && s.X < r.X+r.W && r.Y < s.Y+s.H && s.Y < r.Y+r.H
}

// Packer places rectangles into a width x height area.
//
// Packer is not safe for concurrent use.
type Packer struct {
	width, height int
	spaces        []Rectangle
}

// New returns a packer whose whole width x height area is free.
// A packer with a zero or negative dimension has no free space.
func New(width, height int) *Packer {
	p := &Packer{width: max(width, 0), height: max(height, 0)}
	if p.width > 0 && p.height > 0 {
		p.spaces = append(p.spaces, Rectangle{W: p.width, H: p.height})
	}
	return p
}

// Size returns the dimensions of the packing area.
func (p *Packer) Size() (width, height int) {
	return p.width, p.height
}

// FreeSpaces returns a copy of the current free-space list.
func (p *Packer) FreeSpaces() []Rectangle {
	return append([]Rectangle(nil), p.spaces...)
}

// Clone returns an independent copy of the packer.
func (p *Packer) Clone() *Packer {
	return &Packer{
		width:  p.width,
		height: p.height,
		spaces: append([]Rectangle(nil), p.spaces...),
	}
}

// Pack places rects in order, writing their X and Y, and returns how many
// rectangles at the end of rects were left unplaced (0 means all fit).
//
// Zero-area rectangles take no space and are placed at the origin.
func (p *Packer) Pack(rects []Rectangle) int {
	for i := range rects {
		r := &rects[i]
		if r.Empty() {
			r.X, r.Y = 0, 0
			continue
		}
		best := p.bestSpace(r.W, r.H)
		if best < 0 {
			return len(rects) - i
		}
		r.X, r.Y = p.spaces[best].X, p.spaces[best].Y
		p.splitSpace(best, r.W, r.H)
	}
	return 0
}

// Expand grows the packing area to width x height. The newly uncovered
// L-shaped region becomes free space as a right strip followed by a bottom
// strip; rectangles already placed keep their positions. Dimensions smaller
// than the current ones are ignored.
func (p *Packer) Expand(width, height int) {
	width = max(width, p.width)
	height = max(height, p.height)

	right := Rectangle{X: p.width, Y: 0, W: width - p.width, H: height}
	bottom := Rectangle{X: 0, Y: p.height, W: p.width, H: height - p.height}
	if !right.Empty() {
		p.spaces = append(p.spaces, right)
	}
	if !bottom.Empty() {
		p.spaces = append(p.spaces, bottom)
	}
	p.width, p.height = width, height
}

// bestSpace returns the index of the free space chosen for a w x h
// rectangle, or -1 when none can hold it. Ties go to the earlier space.
func (p *Packer) bestSpace(w, h int) int {
	best, bestFit := -1, 0
	for i, s := range p.spaces {
		if w == s.W && h == s.H {
			return i
		}
		if w > s.W || h > s.H {
			continue
		}
		if fit := min(s.W-w, s.H-h); best < 0 || fit < bestFit {
			best, bestFit = i, fit
		}
	}
	return best
}

func (p *Packer) splitSpace(index, w, h int) {
	space := p.spaces[index]
	last := len(p.spaces) - 1
	p.spaces[index] = p.spaces[last]
	p.spaces = p.spaces[:last]

	a := Rectangle{X: space.X, Y: space.Y + h, W: w, H: space.H - h}
	b := Rectangle{X: space.X + w, Y: space.Y, W: space.W - w, H: h}
	if w*(space.H-h) < h*(space.W-w) {
		a.W = space.W
	} else {
		b.H = space.H
	}
	if !a.Empty() {
		p.spaces = append(p.spaces, a)
	}
	if !b.Empty() {
		p.spaces = append(p.spaces, b)
	}
}
