package msdfatlas

import (
	"path/filepath"

	"github.com/gogpu/msdfatlas/font"
	"github.com/gogpu/msdfatlas/internal/cache"
)

// OpenCacheSize is the number of atlases Open keeps in memory.
const OpenCacheSize = 16

// openKey is the comparable form of a Config. Charsets compare by their
// code points rather than by table identity.
type openKey struct {
	cfg     Config
	charset string
}

func newOpenKey(cfg Config) openKey {
	charset := cfg.charset().String()
	cfg.Charset = font.Charset{}
	cfg.Coloring = coloringName(cfg.Coloring)
	return openKey{cfg: cfg, charset: charset}
}

// openAtlases holds atlases built by Open, keyed by their configuration
// with an absolute font path.
var openAtlases = cache.New[openKey, *FontAtlas](OpenCacheSize, func(_ openKey, fa *FontAtlas) {
	fa.Close()
})

// Open returns the atlas for cfg.FontPath, building it on first use.
// Calls with an equal configuration share one *FontAtlas; charsets are equal
// when they hold the same code points.
//
// At most OpenCacheSize atlases are kept. An evicted atlas is closed: it
// stays usable by callers still holding it, but colors and renders on the
// calling goroutine.
func Open(cfg Config) (*FontAtlas, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.FontPath == "" {
		return nil, &ConfigError{Field: "FontPath", Reason: "is empty"}
	}
	if abs, err := filepath.Abs(cfg.FontPath); err == nil {
		cfg.FontPath = abs
	}
	return openAtlases.GetOrCreate(newOpenKey(cfg), func() (*FontAtlas, error) {
		src, err := font.LoadFile(cfg.FontPath, cfg.Backend)
		if err != nil {
			return nil, err
		}
		return build(src, filepath.Base(cfg.FontPath), cfg)
	})
}

// PurgeOpened drops every atlas kept by Open and closes it.
func PurgeOpened() {
	openAtlases.Clear()
}
