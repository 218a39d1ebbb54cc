// Package msdfatlas builds multi-channel signed distance field font atlases.
//
// A FontAtlas loads glyph outlines from a TrueType or OpenType font, packs
// their boxes into a square bitmap that grows on demand, colors the outline
// edges and renders a distance field for every glyph. The bitmap can be
// uploaded as a GPU texture and sampled with the shader in the shader
// package; the layout gives each glyph's advance and its bounds in the
// atlas and on the baseline.
//
// Basic usage:
//
//	cfg := msdfatlas.DefaultConfig()
//	cfg.FontPath = "Roboto-Regular.ttf"
//	fa, err := msdfatlas.Open(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	bmp := fa.Bitmap()
//	g, ok := fa.Glyph('A')
//
// Glyphs can be added after the atlas is built with AddGlyphs; the atlas
// grows and, depending on Config.AllowRearrange, repacks existing glyphs.
//
// Atlases opened by path are kept in a process-wide LRU cache, and with
// Config.CacheDir set, rendered bitmaps are stored on disk as .fontbin
// files so later runs skip rendering.
//
// # Sub-packages
//
//   - pack: guillotine rectangle packer
//   - msdf: shapes, edge coloring and distance field kernels
//   - glyph: per-glyph box layout and quad bounds
//   - atlas: incremental packing orchestrator
//   - generator: bitmap storage and parallel rendering
//   - font: font parsing and charsets
//   - shader: WGSL sampling shader
package msdfatlas
