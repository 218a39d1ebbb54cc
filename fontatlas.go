package msdfatlas

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"image/png"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/gogpu/msdfatlas/atlas"
	"github.com/gogpu/msdfatlas/font"
	"github.com/gogpu/msdfatlas/generator"
	"github.com/gogpu/msdfatlas/glyph"
	"github.com/gogpu/msdfatlas/internal/logging"
	"github.com/gogpu/msdfatlas/msdf"
)

// Glyph describes one glyph of a FontAtlas. Bounds are nil for glyphs
// without pixels, such as the space.
type Glyph struct {
	Unicode rune    `json:"unicode" yaml:"unicode"`
	Advance float64 `json:"advance" yaml:"advance"`

	// PlaneBounds is the quad relative to the pen position on the
	// baseline, in em units with the y axis up.
	PlaneBounds *glyph.Bounds `json:"planeBounds,omitempty" yaml:"planeBounds,omitempty"`

	// AtlasBounds is the quad in atlas pixels with the y axis down.
	AtlasBounds *glyph.Bounds `json:"atlasBounds,omitempty" yaml:"atlasBounds,omitempty"`
}

// FontAtlas is a font's distance field atlas together with the glyph
// layout needed to draw text from it.
//
// FontAtlas is safe for concurrent use.
type FontAtlas struct {
	mu       sync.Mutex
	cfg      Config
	name     string
	src      *font.Source
	geometry font.Geometry
	atlas    *atlas.DynamicAtlas[*glyph.Geometry]
	gen      *generator.Immediate
	stage    *stagedGenerator
}

// stagedGenerator forwards to the pixel generator. While deferred it does
// nothing, so the layout can be computed for pixels restored from the disk
// cache.
type stagedGenerator struct {
	gen      *generator.Immediate
	deferred bool
}

func (s *stagedGenerator) Resize(width, height int) {
	if !s.deferred {
		s.gen.Resize(width, height)
	}
}

func (s *stagedGenerator) Rearrange(width, height int, remap []atlas.Remap) {
	if !s.deferred {
		s.gen.Rearrange(width, height, remap)
	}
}

func (s *stagedGenerator) Generate(glyphs []*glyph.Geometry) {
	if !s.deferred {
		s.gen.Generate(glyphs)
	}
}

// New builds an atlas of cfg.Charset from a parsed font. Config.FontPath
// is ignored; the font's family name names the disk cache file.
func New(src *font.Source, cfg Config) (*FontAtlas, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	name := src.Name()
	if name == "" {
		name = "font"
	}
	return build(src, name, cfg)
}

func build(src *font.Source, name string, cfg Config) (*FontAtlas, error) {
	fa := &FontAtlas{cfg: cfg, name: name, src: src}
	log := fa.logger()
	charset := cfg.charset()
	loaded, err := fa.geometry.LoadCharset(src, 1, charset)
	if err != nil {
		return nil, err
	}
	if loaded < charset.Len() {
		log.Warn("msdfatlas: glyphs missing from font", "requested", charset.Len(), "loaded", loaded)
	}

	gen, err := generator.NewImmediate(generator.Config{Type: cfg.ImageType, Threads: cfg.Threads})
	if err != nil {
		return nil, err
	}
	fa.gen = gen
	fa.stage = &stagedGenerator{gen: gen}

	var colorFn msdf.ColoringFunc
	if cfg.ImageType.UsesEdgeColors() {
		colorFn, _ = coloringFunc(cfg.Coloring)
	}
	fa.atlas, err = atlas.New[*glyph.Geometry](fa.stage, atlas.Options{
		Padding: cfg.Padding,
		MaxSide: cfg.MaxSide,
		Coloring: atlas.Coloring{
			Func:           colorFn,
			AngleThreshold: cfg.AngleThreshold,
			Seed:           cfg.ColoringSeed,
			Expensive:      cfg.ExpensiveColoring,
		},
		Threads: cfg.Threads,
	})
	if err != nil {
		gen.Close()
		return nil, err
	}

	var (
		cachePath string
		cached    *generator.Bitmap
		layout    uint64
		stale     bool
	)
	if cfg.CacheDir != "" {
		cachePath = filepath.Join(cfg.CacheDir, FontBinName(name, cfg.EmScale))
		cached, layout, stale = fa.readCache(cachePath)
	}

	glyphs := fa.geometry.Glyphs()
	fa.wrap(glyphs)
	fa.stage.deferred = cached != nil
	_, err = fa.atlas.Add(glyphs, true)
	fa.stage.deferred = false
	if err != nil {
		fa.Close()
		return nil, fmt.Errorf("msdfatlas: pack %q: %w", name, err)
	}

	side := fa.atlas.Side()
	hash := fa.layoutHash()
	if cached != nil {
		if layout == hash && cached.Width == side && cached.Height == side && gen.SetBitmap(cached) == nil {
			log.Info("msdfatlas: atlas loaded from cache", "path", cachePath, "side", side)
			return fa, nil
		}
		log.Warn("msdfatlas: cached atlas does not match layout, regenerating",
			"path", cachePath, "cached", cached.Width, "side", side)
		gen.Resize(side, side)
		gen.Generate(glyphs)
	}

	log.Info("msdfatlas: atlas generated", "glyphs", len(glyphs), "side", side, "type", cfg.ImageType)
	if cachePath != "" {
		bmp := gen.Bitmap()
		fb := &FontBin{Width: bmp.Width, Height: bmp.Height, Layout: hash, Data: bmp.Bytes()}
		if err := saveFontBin(cachePath, fb, stale); err != nil {
			log.Warn("msdfatlas: failed to write atlas cache", "path", cachePath, "error", err)
		}
	}
	return fa, nil
}

// readCache returns the bitmap stored at path and its layout hash. A nil
// bitmap with exists set means the file is present but unusable and should
// be replaced.
func (fa *FontAtlas) readCache(path string) (bmp *generator.Bitmap, layout uint64, exists bool) {
	fb, err := loadFontBin(path)
	if err != nil {
		fa.logger().Warn("msdfatlas: failed to read atlas cache", "path", path, "error", err)
		return nil, 0, true
	}
	if fb == nil {
		return nil, 0, false
	}
	cur := fa.gen.Bitmap()
	bmp = generator.NewBitmap(fb.Width, fb.Height, cur.Channels, cur.Type)
	if !bmp.SetBytes(fb.Data) {
		fa.logger().Warn("msdfatlas: atlas cache has unexpected size", "path", path, "bytes", len(fb.Data))
		return nil, 0, true
	}
	return bmp, fb.Layout, true
}

// layoutHash fingerprints the settings and glyph boxes that determine the
// atlas pixels.
func (fa *FontAtlas) layoutHash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	put := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = h.Write(buf[:]) // fnv.Write never returns an error
	}

	c := &fa.cfg
	put(uint64(c.ImageType))
	put(math.Float64bits(c.EmScale))
	put(math.Float64bits(c.PxRange))
	put(math.Float64bits(c.MiterLimit))
	put(uint64(c.Padding))
	if c.ImageType.UsesEdgeColors() {
		_, _ = h.Write([]byte(coloringName(c.Coloring)))
		put(math.Float64bits(c.AngleThreshold))
		put(c.ColoringSeed)
		if c.ExpensiveColoring {
			put(1)
		} else {
			put(0)
		}
	}
	for _, g := range fa.geometry.Glyphs() {
		b := g.Box()
		put(uint64(g.Codepoint()))
		put(uint64(b.X)<<32 | uint64(uint32(b.Y)))
		put(uint64(b.W)<<32 | uint64(uint32(b.H)))
	}
	return h.Sum64()
}

// LayoutHash returns the fingerprint stored in the atlas's .fontbin files.
// It changes whenever the pixels would, such as after AddGlyphs.
func (fa *FontAtlas) LayoutHash() uint64 {
	fa.mu.Lock()
	defer fa.mu.Unlock()
	return fa.layoutHash()
}

func (fa *FontAtlas) logger() *slog.Logger {
	return logging.Logger().With("font", fa.name)
}

func (fa *FontAtlas) wrap(glyphs []*glyph.Geometry) {
	for _, g := range glyphs {
		g.WrapBox(fa.cfg.EmScale, fa.cfg.PxRange, fa.cfg.MiterLimit)
	}
}

// AddGlyphs loads the code points of charset that are not in the atlas yet
// and renders them. It returns the number of glyphs added. The disk cache
// is not updated.
func (fa *FontAtlas) AddGlyphs(charset font.Charset) (int, error) {
	fa.mu.Lock()
	defer fa.mu.Unlock()

	requested := 0
	for _, r := range charset.Runes() {
		if _, ok := fa.geometry.Glyph(r); !ok {
			requested++
		}
	}
	if requested == 0 {
		return 0, nil
	}

	before := fa.geometry.Len()
	loaded, err := fa.geometry.LoadCharset(fa.src, 1, charset)
	if err != nil {
		return 0, err
	}
	if loaded < requested {
		fa.logger().Warn("msdfatlas: glyphs missing from font", "requested", requested, "loaded", loaded)
	}
	if loaded == 0 {
		return 0, nil
	}

	added := fa.geometry.Glyphs()[before:]
	fa.wrap(added)
	flags, err := fa.atlas.Add(added, fa.cfg.AllowRearrange)
	if err != nil {
		fa.geometry.Truncate(before)
		return 0, fmt.Errorf("msdfatlas: add glyphs: %w", err)
	}
	fa.logger().Debug("msdfatlas: glyphs added", "count", loaded, "changes", flags, "side", fa.atlas.Side())
	return loaded, nil
}

// Name returns the font name used for the cache file.
func (fa *FontAtlas) Name() string { return fa.name }

// Config returns the configuration the atlas was built with.
func (fa *FontAtlas) Config() Config { return fa.cfg }

// Bitmap returns the atlas pixels. The bitmap is replaced when the atlas
// grows; callers must not modify it.
func (fa *FontAtlas) Bitmap() *generator.Bitmap {
	fa.mu.Lock()
	defer fa.mu.Unlock()
	return fa.gen.Bitmap()
}

// Side returns the atlas width and height in pixels.
func (fa *FontAtlas) Side() int {
	fa.mu.Lock()
	defer fa.mu.Unlock()
	return fa.atlas.Side()
}

// Len returns the number of glyphs in the atlas.
func (fa *FontAtlas) Len() int {
	fa.mu.Lock()
	defer fa.mu.Unlock()
	return fa.geometry.Len()
}

// Metrics returns the font metrics in em units.
func (fa *FontAtlas) Metrics() font.Metrics {
	fa.mu.Lock()
	defer fa.mu.Unlock()
	return fa.geometry.Metrics
}

// Glyph returns the layout of the glyph for r.
func (fa *FontAtlas) Glyph(r rune) (Glyph, bool) {
	fa.mu.Lock()
	defer fa.mu.Unlock()
	g, ok := fa.geometry.Glyph(r)
	if !ok {
		return Glyph{}, false
	}
	return describe(g), true
}

func describe(g *glyph.Geometry) Glyph {
	out := Glyph{Unicode: g.Codepoint(), Advance: g.Advance()}
	if !g.IsWhitespace() {
		plane, bounds := g.QuadPlaneBounds(), g.QuadAtlasBounds()
		out.PlaneBounds, out.AtlasBounds = &plane, &bounds
	}
	return out
}

// EncodePNG writes the atlas as an 8-bit PNG image.
func (fa *FontAtlas) EncodePNG(w io.Writer) error {
	return png.Encode(w, fa.Bitmap().Image())
}

// SavePNG writes the atlas as an 8-bit PNG file.
func (fa *FontAtlas) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fa.EncodePNG(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Close stops the worker pools. The atlas stays readable and AddGlyphs
// keeps working on the calling goroutine.
func (fa *FontAtlas) Close() {
	fa.mu.Lock()
	defer fa.mu.Unlock()
	fa.atlas.Close()
	fa.gen.Close()
}
