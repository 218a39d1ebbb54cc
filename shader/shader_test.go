package shader

import (
	"encoding/binary"
	"math"
	"strings"
	"testing"

	"github.com/gogpu/msdfatlas/glyph"
)

func TestSource(t *testing.T) {
	src := Source()
	for _, want := range []string{
		"TextUniforms", "VertexInput", "VertexOutput",
		"msdf_atlas", "msdf_sampler", "median3",
		"@vertex", "@fragment", "vs_main", "fs_main",
		"@group(0) @binding(0)",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("shader source missing %q", want)
		}
	}
}

func TestCompile(t *testing.T) {
	words, err := Compile()
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if len(words) < 5 {
		t.Fatalf("Compile() returned %d words", len(words))
	}
	if words[0] != 0x07230203 {
		t.Errorf("SPIR-V magic = %#x, want 0x07230203", words[0])
	}
}

func TestUniforms_Bytes(t *testing.T) {
	u := Uniforms{
		Transform:     Ortho(800, 600),
		Color:         [4]float32{1, 0.5, 0.25, 1},
		ScreenPxRange: 4,
		TrueDistance:  1,
	}
	buf := u.Bytes()
	if len(buf) != UniformSize {
		t.Fatalf("len = %d, want %d", len(buf), UniformSize)
	}
	at := func(i int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[4*i:]))
	}
	if at(0) != 2.0/800 || at(5) != -2.0/600 || at(12) != -1 || at(15) != 1 {
		t.Errorf("transform = %v", buf[:64])
	}
	if at(17) != 0.5 || at(20) != 4 || at(21) != 1 {
		t.Errorf("color/params = %v %v %v", at(17), at(20), at(21))
	}
}

func TestGlyphQuad(t *testing.T) {
	plane := &glyph.Bounds{Left: 0, Bottom: -0.25, Right: 0.5, Top: 0.75}
	atlasBounds := &glyph.Bounds{Left: 16, Top: 32, Right: 48, Bottom: 96}

	q, ok := GlyphQuad(plane, atlasBounds, 10, 100, 40, 128)
	if !ok {
		t.Fatal("GlyphQuad returned false")
	}
	want := [4]Vertex{
		{10, 70, 0.125, 0.25},
		{30, 70, 0.375, 0.25},
		{30, 110, 0.375, 0.75},
		{10, 110, 0.125, 0.75},
	}
	if q != want {
		t.Errorf("GlyphQuad = %v, want %v", q, want)
	}

	if got := AppendVertices(nil, q[:]...); len(got) != 4*VertexStride {
		t.Errorf("encoded %d bytes, want %d", len(got), 4*VertexStride)
	}

	if _, ok := GlyphQuad(nil, nil, 0, 0, 1, 1); ok {
		t.Error("whitespace glyph should have no quad")
	}
}
