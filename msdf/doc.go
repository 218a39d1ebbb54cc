// Package msdf holds glyph shape geometry and the per-glyph distance field
// kernels used to fill atlas boxes.
//
// A Shape is a set of closed contours made of linear, quadratic and cubic
// Bezier edges in font units. Before multi-channel generation every edge is
// given an EdgeColor by a ColoringFunc so that the two sides of each sharp
// corner land in different channels; the median of the three channels then
// reconstructs the corner exactly.
//
// # Coloring
//
// EdgeColoringSimple and EdgeColoringInkTrap are deterministic functions of
// the shape, the corner angle threshold and a 64-bit seed. The same inputs
// always produce the same colors, which keeps atlas output reproducible
// regardless of how many threads color glyphs.
//
// # Kernels
//
// Render fills a FloatImage with one of the supported encodings:
//
//	KindSDF    1 channel, true signed distance
//	KindPSDF   1 channel, pseudo signed distance
//	KindMSDF   3 channels, per-color pseudo distance
//	KindMTSDF  4 channels, MSDF plus true distance in alpha
//
// Inside/outside is decided by a nonzero winding test on a flattened copy of
// the outline, so overlapping contours are handled. Values are mapped to
// 0.5 + distance/pxRange with distances in pixels and 0.5 on the outline.
//
// # References
//
// - msdfgen: https://github.com/Chlumsky/msdfgen
// - msdf-atlas-gen: https://github.com/Chlumsky/msdf-atlas-gen
package msdf
