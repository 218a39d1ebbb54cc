// Package shader holds the WGSL shader that draws text from a distance
// field atlas, and helpers that build its vertex and uniform data.
package shader

import (
	_ "embed"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/naga"

	"github.com/gogpu/msdfatlas/glyph"
)

//go:embed msdf_text.wgsl
var msdfTextSource string

// Source returns the WGSL source of the text shader. Entry points are
// vs_main and fs_main; group 0 binds the uniforms, the atlas texture and
// its sampler.
func Source() string { return msdfTextSource }

// Compile compiles the text shader to SPIR-V words.
func Compile() ([]uint32, error) {
	spirv, err := naga.Compile(msdfTextSource)
	if err != nil {
		return nil, fmt.Errorf("shader: compile msdf_text: %w", err)
	}
	if len(spirv)%4 != 0 {
		return nil, fmt.Errorf("shader: SPIR-V size %d is not a multiple of 4", len(spirv))
	}
	words := make([]uint32, len(spirv)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(spirv[4*i:])
	}
	return words, nil
}

// UniformSize is the byte size of the uniform buffer.
const UniformSize = 96

// Uniforms mirrors TextUniforms in the shader.
type Uniforms struct {
	Transform [16]float32 // column-major
	Color     [4]float32

	// ScreenPxRange is the distance range in screen pixels: the atlas
	// range times the ratio of drawn size to atlas em size.
	ScreenPxRange float32

	// TrueDistance blends the alpha channel's true distance in, from 0
	// to 1. Only meaningful for atlases with four channels.
	TrueDistance float32

	// Bias grows (positive) or shrinks the glyphs, in distance units.
	Bias float32
}

// Bytes encodes the uniforms in buffer layout.
func (u *Uniforms) Bytes() []byte {
	buf := make([]byte, UniformSize)
	put := func(i int, v float32) {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(v))
	}
	for i, v := range u.Transform {
		put(i, v)
	}
	for i, v := range u.Color {
		put(16+i, v)
	}
	put(20, u.ScreenPxRange)
	put(21, u.TrueDistance)
	put(22, u.Bias)
	return buf
}

// Ortho returns a column-major orthographic projection mapping the pixel
// rectangle (0, 0)-(width, height), y down, to clip space.
func Ortho(width, height float32) [16]float32 {
	return [16]float32{
		2 / width, 0, 0, 0,
		0, -2 / height, 0, 0,
		0, 0, 1, 0,
		-1, 1, 0, 1,
	}
}

// Vertex is one vertex of a glyph quad.
type Vertex struct {
	X, Y float32
	U, V float32
}

// VertexStride is the byte size of one encoded vertex.
const VertexStride = 16

// QuadIndices are the indices of the two triangles of a quad whose
// vertices are ordered top-left, top-right, bottom-right, bottom-left.
var QuadIndices = [6]uint16{0, 1, 2, 0, 2, 3}

// GlyphQuad returns the quad drawing a glyph with its pen position at
// (x, y) on a y-down baseline, size pixels per em, from an atlas of the
// given side. It returns false for glyphs without pixels.
func GlyphQuad(plane, atlasBounds *glyph.Bounds, x, y, size float32, side int) ([4]Vertex, bool) {
	if plane == nil || atlasBounds == nil || side <= 0 {
		return [4]Vertex{}, false
	}
	s := 1 / float32(side)
	l := x + size*float32(plane.Left)
	r := x + size*float32(plane.Right)
	t := y - size*float32(plane.Top)
	b := y - size*float32(plane.Bottom)
	u0, u1 := float32(atlasBounds.Left)*s, float32(atlasBounds.Right)*s
	v0, v1 := float32(atlasBounds.Top)*s, float32(atlasBounds.Bottom)*s
	return [4]Vertex{
		{l, t, u0, v0},
		{r, t, u1, v0},
		{r, b, u1, v1},
		{l, b, u0, v1},
	}, true
}

// AppendVertices appends the encoded vertices to dst.
func AppendVertices(dst []byte, verts ...Vertex) []byte {
	for _, v := range verts {
		for _, f := range [4]float32{v.X, v.Y, v.U, v.V} {
			dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(f))
		}
	}
	return dst
}
