package generator

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/msdfatlas/atlas"
	"github.com/gogpu/msdfatlas/glyph"
	"github.com/gogpu/msdfatlas/msdf"
)

func unitSquare() *msdf.Shape {
	b := msdf.NewBuilder()
	b.MoveTo(0, 0)
	b.LineTo(1, 0)
	b.LineTo(1, 1)
	b.LineTo(0, 1)
	return b.Shape()
}

func newGenerator(t *testing.T, cfg Config) *Immediate {
	t.Helper()
	g, err := NewImmediate(cfg)
	require.NoError(t, err)
	t.Cleanup(g.Close)
	return g
}

func TestParseImageType(t *testing.T) {
	for _, typ := range []ImageType{HardMask, SoftMask, SDF, PSDF, MSDF, MTSDF} {
		got, err := ParseImageType(typ.String())
		require.NoError(t, err)
		assert.Equal(t, typ, got)
	}

	got, err := ParseImageType("MTSDF")
	require.NoError(t, err)
	assert.Equal(t, MTSDF, got)

	_, err = ParseImageType("bitmap")
	assert.Error(t, err)
}

func TestImageType_Storage(t *testing.T) {
	assert.Equal(t, 1, HardMask.Channels())
	assert.Equal(t, PixelByte, SoftMask.DefaultPixelType())
	assert.Equal(t, 3, MSDF.Channels())
	assert.Equal(t, 4, MTSDF.Channels())
	assert.Equal(t, PixelFloat32, SDF.DefaultPixelType())
	assert.True(t, MSDF.UsesEdgeColors())
	assert.False(t, PSDF.UsesEdgeColors())
}

func TestConfig_Validate(t *testing.T) {
	cfg := Config{Type: ImageType(42)}
	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalidConfig)

	var ce *ConfigError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "Type", ce.Field)

	cfg = Config{Type: SDF, Threads: -1}
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestImmediate_ResizeKeepsPixels(t *testing.T) {
	g := newGenerator(t, Config{Type: SDF})
	g.Resize(4, 4)
	g.Bitmap().Set(1, 2, 0, 0.75)
	g.Bitmap().Set(3, 3, 0, 0.25)

	g.Resize(8, 8)

	b := g.Bitmap()
	assert.Equal(t, 8, b.Width)
	assert.Equal(t, 8, b.Height)
	assert.InDelta(t, 0.75, b.At(1, 2, 0), 1e-6)
	assert.InDelta(t, 0.25, b.At(3, 3, 0), 1e-6)
	assert.Zero(t, b.At(7, 7, 0))
}

func TestImmediate_RearrangeMovesBlocks(t *testing.T) {
	g := newGenerator(t, Config{Type: SoftMask})
	g.Resize(8, 8)
	g.Bitmap().Set(1, 1, 0, 1)
	g.Bitmap().Set(2, 1, 0, 0.5)

	g.Rearrange(8, 8, []atlas.Remap{{
		Source: atlas.Position{X: 1, Y: 1},
		Target: atlas.Position{X: 5, Y: 6},
		Width:  2,
		Height: 1,
	}})

	b := g.Bitmap()
	assert.InDelta(t, 1, b.At(5, 6, 0), 1e-6)
	assert.InDelta(t, 0.5, b.At(6, 6, 0), 1.0/255)
	assert.Zero(t, b.At(1, 1, 0))
	assert.Zero(t, b.At(2, 1, 0))
}

func TestImmediate_GenerateThroughAtlas(t *testing.T) {
	tests := []struct {
		name     string
		typ      ImageType
		threads  int
		coloring msdf.ColoringFunc
	}{
		{"sdf", SDF, 0, nil},
		{"softmask", SoftMask, 0, nil},
		{"mtsdf", MTSDF, 4, msdf.EdgeColoringSimple},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := newGenerator(t, Config{Type: tt.typ, Threads: tt.threads})
			a, err := atlas.New[*glyph.Geometry](gen, atlas.Options{
				Coloring: atlas.Coloring{Func: tt.coloring, AngleThreshold: msdf.DefaultAngleThreshold, Seed: 3},
			})
			require.NoError(t, err)
			defer a.Close()

			square := glyph.New(0, 'A', 1, unitSquare())
			square.WrapBox(32, 2, 0)
			space := glyph.New(1, ' ', 0.25, nil)

			flags, err := a.Add([]*glyph.Geometry{square, space}, true)
			require.NoError(t, err)
			assert.Equal(t, atlas.Resized, flags)

			b := gen.Bitmap()
			require.Equal(t, a.Side(), b.Width)
			require.Equal(t, 64, b.Width)

			box := square.Box()
			cx, cy := box.X+box.W/2, box.Y+box.H/2
			for c := range b.Channels {
				assert.Greater(t, b.At(cx, cy, c), float32(0.5), "center channel %d", c)
				assert.Less(t, b.At(box.X, box.Y, c), float32(0.5), "corner channel %d", c)
			}
			assert.Zero(t, b.At(b.Width-1, b.Height-1, 0), "pixels outside boxes stay empty")
		})
	}
}

func TestBitmap_TextureFormat(t *testing.T) {
	assert.Equal(t, gputypes.TextureFormatR8Unorm, NewBitmap(1, 1, 1, PixelByte).TextureFormat())
	assert.Equal(t, gputypes.TextureFormatRGBA8Unorm, NewBitmap(1, 1, 4, PixelByte).TextureFormat())
	assert.Equal(t, gputypes.TextureFormatRGBA32Float, NewBitmap(1, 1, 4, PixelFloat32).TextureFormat())
	assert.Equal(t, gputypes.TextureFormatUndefined, NewBitmap(1, 1, 3, PixelFloat32).TextureFormat())
}

func TestBitmap_BytesRestore(t *testing.T) {
	src := NewBitmap(2, 2, 3, PixelFloat32)
	src.Set(1, 1, 2, 1.5)
	src.Set(0, 1, 0, -0.25)

	dst := NewBitmap(2, 2, 3, PixelFloat32)
	require.True(t, dst.SetBytes(src.Bytes()))
	assert.Equal(t, src.Float, dst.Float)

	assert.False(t, dst.SetBytes([]byte{1, 2, 3}))
}

func TestBitmap_Image(t *testing.T) {
	b := NewBitmap(2, 1, 4, PixelFloat32)
	b.Set(0, 0, 0, 1)
	b.Set(0, 0, 3, 2)

	r, _, _, a := b.Image().At(0, 0).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0xffff), a)

	gray := NewBitmap(1, 1, 1, PixelByte)
	gray.Set(0, 0, 0, 0.5)
	y, _, _, _ := gray.Image().At(0, 0).RGBA()
	assert.Equal(t, uint32(128*0x101), y)
}
