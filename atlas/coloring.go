package atlas

import (
	"github.com/gogpu/msdfatlas/internal/parallel"
	"github.com/gogpu/msdfatlas/msdf"
)

// Constants of the 64-bit linear congruential generator that derives
// per-glyph coloring seeds.
const (
	LCGMultiplier uint64 = 6364136223846793005
	LCGIncrement  uint64 = 1442695040888963407
)

// Coloring configures the edge coloring applied to each batch before it is
// generated. A nil Func disables coloring.
type Coloring struct {
	Func           msdf.ColoringFunc
	AngleThreshold float64
	Seed           uint64

	// Expensive gives every glyph a seed derived from its batch index so
	// glyphs can be colored in parallel. Otherwise one seed is chained
	// through the batch in order.
	Expensive bool
}

// GlyphSeed returns the seed the expensive mode uses for the glyph at
// batch index i. A zero base seed gives zero for every glyph.
func GlyphSeed(seed uint64, i int) uint64 {
	if seed == 0 {
		return 0
	}
	return LCGMultiplier*(seed^uint64(i)) + LCGIncrement
}

// colorBatch colors the non-whitespace glyphs of a batch. Seeds depend only
// on batch positions, so the outcome is the same for any thread count.
func colorBatch[G Glyph](glyphs []G, c Coloring, pool *parallel.WorkerPool, threads int) {
	if c.Func == nil || len(glyphs) == 0 {
		return
	}
	if c.Expensive {
		parallel.For(pool, threads, len(glyphs), func(i int) {
			if !glyphs[i].IsWhitespace() {
				glyphs[i].EdgeColoring(c.Func, c.AngleThreshold, GlyphSeed(c.Seed, i))
			}
		})
		return
	}

	seed := c.Seed
	for _, g := range glyphs {
		seed *= LCGMultiplier
		if !g.IsWhitespace() {
			g.EdgeColoring(c.Func, c.AngleThreshold, seed)
		}
	}
}
