package generator

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/msdfatlas/atlas"
	"github.com/gogpu/msdfatlas/glyph"
	"github.com/gogpu/msdfatlas/internal/logging"
	"github.com/gogpu/msdfatlas/internal/parallel"
	"github.com/gogpu/msdfatlas/msdf"
)

// ErrInvalidConfig is wrapped by every Config validation error.
var ErrInvalidConfig = errors.New("generator: invalid config")

// ConfigError describes an invalid Config field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("generator: invalid config: %s %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }

// Config holds generator parameters.
type Config struct {
	// Type is the image type rendered for every glyph.
	Type ImageType

	// Pixel overrides the image type's default storage.
	Pixel PixelType

	// Threads is the number of glyphs rendered concurrently. Values below
	// 2 render on the calling goroutine.
	Threads int

	// Logger receives debug output. Nil uses the package-wide logger.
	Logger *slog.Logger
}

// Validate checks the config.
func (c *Config) Validate() error {
	if !c.Type.valid() {
		return &ConfigError{Field: "Type", Reason: fmt.Sprintf("unknown image type %d", int(c.Type))}
	}
	if c.Pixel < PixelDefault || c.Pixel > PixelFloat32 {
		return &ConfigError{Field: "Pixel", Reason: fmt.Sprintf("unknown pixel type %d", int(c.Pixel))}
	}
	if c.Threads < 0 {
		return &ConfigError{Field: "Threads", Reason: "must be non-negative"}
	}
	return nil
}

// Immediate renders glyphs into its bitmap as soon as they are placed.
//
// Immediate implements atlas.Generator for *glyph.Geometry. It is not safe
// for concurrent use; the owning atlas serializes calls.
type Immediate struct {
	typ     ImageType
	bitmap  *Bitmap
	threads int
	pool    *parallel.WorkerPool
	log     *slog.Logger
}

var _ atlas.Generator[*glyph.Geometry] = (*Immediate)(nil)

// NewImmediate creates a generator with an empty bitmap.
func NewImmediate(cfg Config) (*Immediate, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	pixel := cfg.Pixel
	if pixel == PixelDefault {
		pixel = cfg.Type.DefaultPixelType()
	}
	g := &Immediate{
		typ:     cfg.Type,
		bitmap:  NewBitmap(0, 0, cfg.Type.Channels(), pixel),
		threads: cfg.Threads,
		log:     cfg.Logger,
	}
	if g.threads > 1 {
		g.pool = parallel.NewWorkerPool(g.threads)
	}
	return g, nil
}

// Close stops the render workers. The bitmap stays readable.
func (g *Immediate) Close() {
	if g.pool != nil {
		g.pool.Close()
	}
}

func (g *Immediate) logger() *slog.Logger {
	if g.log != nil {
		return g.log
	}
	return logging.Logger()
}

// Type returns the image type the generator renders.
func (g *Immediate) Type() ImageType { return g.typ }

// Bitmap returns the atlas storage. The returned bitmap is replaced, not
// mutated in place, by Resize and Rearrange.
func (g *Immediate) Bitmap() *Bitmap { return g.bitmap }

// Resize implements atlas.Generator.
func (g *Immediate) Resize(width, height int) {
	old := g.bitmap
	next := NewBitmap(width, height, old.Channels, old.Type)
	next.copyRect(old, 0, 0, 0, 0, min(width, old.Width), min(height, old.Height))
	g.bitmap = next
	g.logger().Debug("generator: resize", "width", width, "height", height)
}

// Rearrange implements atlas.Generator.
func (g *Immediate) Rearrange(width, height int, remap []atlas.Remap) {
	old := g.bitmap
	next := NewBitmap(width, height, old.Channels, old.Type)
	for _, r := range remap {
		next.copyRect(old, r.Source.X, r.Source.Y, r.Target.X, r.Target.Y, r.Width, r.Height)
	}
	g.bitmap = next
	g.logger().Debug("generator: rearrange", "width", width, "height", height, "moved", len(remap))
}

// Generate implements atlas.Generator.
func (g *Immediate) Generate(glyphs []*glyph.Geometry) {
	kind := g.typ.Kind()
	channels := g.typ.Channels()
	parallel.For(g.pool, g.threads, len(glyphs), func(i int) {
		gl := glyphs[i]
		if gl.IsWhitespace() {
			return
		}
		box := gl.Box()
		if box.W <= 0 || box.H <= 0 {
			return
		}
		img := msdf.NewFloatImage(box.W, box.H, channels)
		msdf.Render(img, kind, gl.Shape(), gl.Projection(), box.Range)
		g.blit(img, box.X, box.Y)
	})
}

// blit writes img at (x, y). Glyph boxes never overlap, so concurrent
// blits touch disjoint pixels.
func (g *Immediate) blit(img *msdf.FloatImage, x, y int) {
	b := g.bitmap
	for row := range img.Height {
		src := img.Pix[img.PixOffset(0, row) : img.PixOffset(0, row)+img.Width*img.Channels]
		di := b.Offset(x, y+row)
		if b.Type == PixelFloat32 {
			copy(b.Float[di:], src)
			continue
		}
		for i, v := range src {
			b.Pix[di+i] = toByte(v)
		}
	}
}

// SetBitmap replaces the storage, for example with pixels restored from a
// cache file. The bitmap must match the generator's channel count and
// pixel type.
func (g *Immediate) SetBitmap(b *Bitmap) error {
	if b.Channels != g.bitmap.Channels || b.Type != g.bitmap.Type {
		return fmt.Errorf("generator: bitmap is %d x %s, want %d x %s",
			b.Channels, b.Type, g.bitmap.Channels, g.bitmap.Type)
	}
	g.bitmap = b
	return nil
}
