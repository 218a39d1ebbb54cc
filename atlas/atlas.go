package atlas

import (
	"log/slog"
	"slices"

	"github.com/gogpu/msdfatlas/internal/logging"
	"github.com/gogpu/msdfatlas/internal/parallel"
	"github.com/gogpu/msdfatlas/msdf"
	"github.com/gogpu/msdfatlas/pack"
)

// DefaultMaxSide bounds atlas growth when Options.MaxSide is zero.
const DefaultMaxSide = 16384

// Glyph is the view of a glyph the atlas needs. The atlas writes
// placements and colors through it but never copies or frees glyphs.
type Glyph interface {
	// IsWhitespace reports a glyph with no pixels. Whitespace glyphs take
	// no atlas space and get no remap entry.
	IsWhitespace() bool

	// BoxSize returns the glyph box in pixels, without padding.
	BoxSize() (w, h int)

	// PlaceBox records the top-left corner of the glyph box.
	PlaceBox(x, y int)

	// EdgeColoring colors the glyph outline.
	EdgeColoring(fn msdf.ColoringFunc, angleThreshold float64, seed uint64)
}

// Generator owns the atlas pixels.
type Generator[G Glyph] interface {
	// Resize grows storage to width x height keeping existing pixels at
	// the same coordinates.
	Resize(width, height int)

	// Rearrange reallocates storage at width x height and moves each
	// remap entry's Width x Height block from Source to Target.
	Rearrange(width, height int, remap []Remap)

	// Generate renders the given glyphs into their placed boxes.
	// Whitespace glyphs are skipped.
	Generate(glyphs []G)
}

// Position is a pixel coordinate in the atlas.
type Position struct {
	X, Y int
}

// Remap records where a glyph box was and where it is now.
type Remap struct {
	// Index is the glyph's position among all glyphs ever submitted,
	// whitespace included.
	Index int

	Source, Target Position

	Width, Height int
}

// ChangeFlags reports what an Add did to the atlas storage.
type ChangeFlags uint8

const (
	// Resized means the atlas side grew.
	Resized ChangeFlags = 1 << iota

	// Rearranged means previously placed glyphs moved.
	Rearranged
)

// String returns a string representation of the flags.
func (f ChangeFlags) String() string {
	switch f {
	case 0:
		return "Unchanged"
	case Resized:
		return "Resized"
	case Rearranged:
		return "Rearranged"
	case Resized | Rearranged:
		return "Resized|Rearranged"
	default:
		return "Unknown"
	}
}

// Options configures a DynamicAtlas.
type Options struct {
	// Padding is added to the right and bottom of every box when packing.
	Padding int

	// MaxSide is the largest side the atlas may grow to.
	// Default: DefaultMaxSide
	MaxSide int

	// Coloring is applied to each batch before generation.
	Coloring Coloring

	// Threads bounds the workers used for expensive coloring.
	// Values below 2 color on the calling goroutine.
	Threads int

	// Logger receives growth diagnostics at debug level.
	// Default: the package-wide logger, silent unless configured.
	Logger *slog.Logger
}

// Validate checks the options.
func (o *Options) Validate() error {
	if o.Padding < 0 {
		return &ConfigError{Field: "Padding", Reason: "must not be negative"}
	}
	if o.MaxSide < 0 {
		return &ConfigError{Field: "MaxSide", Reason: "must not be negative"}
	}
	if o.Threads < 0 {
		return &ConfigError{Field: "Threads", Reason: "must not be negative"}
	}
	return nil
}

// DynamicAtlas incrementally packs glyph boxes into a square atlas and keeps
// a generator's storage in step with the layout.
//
// DynamicAtlas is not safe for concurrent use.
type DynamicAtlas[G Glyph] struct {
	generator Generator[G]
	packer    *pack.Packer
	rects     []pack.Rectangle
	remap     []Remap
	placed    []G

	side       int
	totalArea  int
	padding    int
	glyphCount int
	maxSide    int

	coloring Coloring
	threads  int
	pool     *parallel.WorkerPool
	log      *slog.Logger
}

// New creates an empty atlas of side 0 driving generator.
func New[G Glyph](generator Generator[G], opts Options) (*DynamicAtlas[G], error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	a := &DynamicAtlas[G]{
		generator: generator,
		packer:    pack.New(0, 0),
		padding:   opts.Padding,
		maxSide:   opts.MaxSide,
		coloring:  opts.Coloring,
		threads:   opts.Threads,
		log:       opts.Logger,
	}
	if a.maxSide == 0 {
		a.maxSide = DefaultMaxSide
	}
	if a.threads > 1 && a.coloring.Func != nil && a.coloring.Expensive {
		a.pool = parallel.NewWorkerPool(a.threads)
	}
	return a, nil
}

// Close releases the coloring workers. The atlas stays readable.
func (a *DynamicAtlas[G]) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}

// Add packs, colors and generates a batch of glyphs.
//
// Whitespace glyphs are skipped but still count toward glyph indices. When
// the new boxes do not fit, the atlas grows; with allowRearrange every box is
// repacked, otherwise the existing layout is kept and extended. On error the
// atlas, its generator and the glyphs are left unchanged.
func (a *DynamicAtlas[G]) Add(glyphs []G, allowRearrange bool) (ChangeFlags, error) {
	var flags ChangeFlags
	start := len(a.rects)
	pad := a.padding

	rects := slices.Clone(a.rects)
	remap := slices.Clone(a.remap)
	placed := slices.Clone(a.placed)
	totalArea := a.totalArea
	for i, g := range glyphs {
		if g.IsWhitespace() {
			continue
		}
		w, h := g.BoxSize()
		if w < 0 || h < 0 {
			return 0, &GlyphSizeError{Index: a.glyphCount + i, Width: w, Height: h}
		}
		rects = append(rects, pack.Rectangle{W: w + pad, H: h + pad})
		remap = append(remap, Remap{Index: a.glyphCount + i, Width: w, Height: h})
		placed = append(placed, g)
		totalArea += (w + pad) * (h + pad)
	}

	packer := a.packer.Clone()
	side := a.side
	packerStart := start
	for {
		remaining := packer.Pack(rects[packerStart:])
		if remaining == 0 {
			break
		}
		if side == 0 {
			side = 1
		}
		side <<= 1
		for side*side < totalArea {
			side <<= 1
		}
		if side > a.maxSide {
			return 0, &GrowthError{Side: side, MaxSide: a.maxSide}
		}
		if allowRearrange {
			packer = pack.New(side+pad, side+pad)
			packerStart = 0
		} else {
			packer.Expand(side+pad, side+pad)
			packerStart = len(rects) - remaining
		}
		flags |= Resized
		a.logger().Debug("atlas: grow", "side", side, "rearrange", allowRearrange, "unplaced", remaining)
	}

	a.packer = packer
	a.rects = rects
	a.remap = remap
	a.placed = placed
	a.side = side
	a.totalArea = totalArea

	if packerStart < start {
		for i := range start {
			r := &a.remap[i]
			r.Source = r.Target
			r.Target = Position{X: a.rects[i].X, Y: a.rects[i].Y}
			a.placed[i].PlaceBox(r.Target.X, r.Target.Y)
		}
		a.generator.Rearrange(side, side, slices.Clone(a.remap[:start]))
		flags |= Rearranged
	} else if flags&Resized != 0 {
		a.generator.Resize(side, side)
	}

	for i := start; i < len(a.rects); i++ {
		a.remap[i].Target = Position{X: a.rects[i].X, Y: a.rects[i].Y}
		a.placed[i].PlaceBox(a.remap[i].Target.X, a.remap[i].Target.Y)
	}

	colorBatch(glyphs, a.coloring, a.pool, a.threads)
	a.generator.Generate(glyphs)
	a.glyphCount += len(glyphs)
	return flags, nil
}

func (a *DynamicAtlas[G]) logger() *slog.Logger {
	if a.log != nil {
		return a.log
	}
	return logging.Logger()
}

// Side returns the current atlas side in pixels.
func (a *DynamicAtlas[G]) Side() int { return a.side }

// TotalArea returns the summed padded area of every packed box.
func (a *DynamicAtlas[G]) TotalArea() int { return a.totalArea }

// Padding returns the padding added to each box.
func (a *DynamicAtlas[G]) Padding() int { return a.padding }

// GlyphCount returns the number of glyphs submitted so far, whitespace
// included.
func (a *DynamicAtlas[G]) GlyphCount() int { return a.glyphCount }

// Remaps returns a copy of the remap ledger.
func (a *DynamicAtlas[G]) Remaps() []Remap { return slices.Clone(a.remap) }

// Generator returns the generator the atlas drives.
func (a *DynamicAtlas[G]) Generator() Generator[G] { return a.generator }
