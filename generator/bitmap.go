package generator

import (
	"encoding/binary"
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gputypes"
)

// Bitmap is the atlas pixel storage: a row-major, top-down image with
// interleaved channels held either as bytes or as float32 values.
type Bitmap struct {
	Width    int
	Height   int
	Channels int
	Type     PixelType

	// Pix holds the pixels when Type is PixelByte.
	Pix []byte

	// Float holds the pixels when Type is PixelFloat32.
	Float []float32
}

// NewBitmap allocates a zeroed bitmap. typ must be PixelByte or
// PixelFloat32.
func NewBitmap(width, height, channels int, typ PixelType) *Bitmap {
	b := &Bitmap{Width: width, Height: height, Channels: channels, Type: typ}
	n := width * height * channels
	if typ == PixelFloat32 {
		b.Float = make([]float32, n)
	} else {
		b.Pix = make([]byte, n)
	}
	return b
}

// Offset returns the index of channel 0 of pixel (x, y).
func (b *Bitmap) Offset(x, y int) int {
	return (y*b.Width + x) * b.Channels
}

// At returns channel c of pixel (x, y) normalized to [0, 1] for byte
// storage and as stored for float storage.
func (b *Bitmap) At(x, y, c int) float32 {
	i := b.Offset(x, y) + c
	if b.Type == PixelFloat32 {
		return b.Float[i]
	}
	return float32(b.Pix[i]) / 255
}

// Set stores v into channel c of pixel (x, y), clamping to [0, 1] and
// rounding for byte storage.
func (b *Bitmap) Set(x, y, c int, v float32) {
	i := b.Offset(x, y) + c
	if b.Type == PixelFloat32 {
		b.Float[i] = v
		return
	}
	b.Pix[i] = toByte(v)
}

func toByte(v float32) byte {
	return byte(math.Round(float64(min(max(v, 0), 1)) * 255))
}

// copyRect copies a w x h block at (sx, sy) in src to (dx, dy) in b. Both
// bitmaps must share channel count and pixel type.
func (b *Bitmap) copyRect(src *Bitmap, sx, sy, dx, dy, w, h int) {
	rowLen := w * b.Channels
	for row := range h {
		si := src.Offset(sx, sy+row)
		di := b.Offset(dx, dy+row)
		if b.Type == PixelFloat32 {
			copy(b.Float[di:di+rowLen], src.Float[si:si+rowLen])
		} else {
			copy(b.Pix[di:di+rowLen], src.Pix[si:si+rowLen])
		}
	}
}

// TextureFormat returns the GPU texture format matching the storage, or
// TextureFormatUndefined for three-channel layouts, which GPUs do not
// sample directly.
func (b *Bitmap) TextureFormat() gputypes.TextureFormat {
	switch {
	case b.Channels == 1 && b.Type == PixelByte:
		return gputypes.TextureFormatR8Unorm
	case b.Channels == 4 && b.Type == PixelByte:
		return gputypes.TextureFormatRGBA8Unorm
	case b.Channels == 1 && b.Type == PixelFloat32:
		return gputypes.TextureFormatR32Float
	case b.Channels == 4 && b.Type == PixelFloat32:
		return gputypes.TextureFormatRGBA32Float
	default:
		return gputypes.TextureFormatUndefined
	}
}

// Bytes returns the raw pixel data. Float storage is encoded as
// little-endian IEEE 754.
func (b *Bitmap) Bytes() []byte {
	if b.Type != PixelFloat32 {
		return b.Pix
	}
	out := make([]byte, 4*len(b.Float))
	for i, v := range b.Float {
		binary.LittleEndian.PutUint32(out[4*i:], math.Float32bits(v))
	}
	return out
}

// SetBytes replaces the pixel data from the Bytes encoding. It returns false
// if data has the wrong length.
func (b *Bitmap) SetBytes(data []byte) bool {
	n := b.Width * b.Height * b.Channels
	if len(data) != n*b.Type.Size() {
		return false
	}
	if b.Type != PixelFloat32 {
		b.Pix = append(b.Pix[:0], data...)
		return true
	}
	b.Float = make([]float32, n)
	for i := range b.Float {
		b.Float[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[4*i:]))
	}
	return true
}

// Image converts the bitmap to an 8-bit image for viewing or PNG export.
// One channel becomes gray, three become RGB and four become non-
// premultiplied RGBA.
func (b *Bitmap) Image() image.Image {
	rect := image.Rect(0, 0, b.Width, b.Height)
	if b.Channels == 1 {
		img := image.NewGray(rect)
		for y := range b.Height {
			for x := range b.Width {
				img.SetGray(x, y, color.Gray{Y: toByte(b.At(x, y, 0))})
			}
		}
		return img
	}

	img := image.NewNRGBA(rect)
	for y := range b.Height {
		for x := range b.Width {
			c := color.NRGBA{A: 255}
			c.R = toByte(b.At(x, y, 0))
			if b.Channels > 1 {
				c.G = toByte(b.At(x, y, 1))
			}
			if b.Channels > 2 {
				c.B = toByte(b.At(x, y, 2))
			}
			if b.Channels > 3 {
				c.A = toByte(b.At(x, y, 3))
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}
