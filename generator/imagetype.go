package generator

import (
	"fmt"
	"strings"

	"github.com/gogpu/msdfatlas/msdf"
)

// ImageType selects what the generator renders into each glyph box.
type ImageType int

const (
	HardMask ImageType = iota
	SoftMask
	SDF
	PSDF
	MSDF
	MTSDF
)

// PixelType is the storage type of one channel.
type PixelType int

const (
	// PixelDefault picks the image type's natural storage.
	PixelDefault PixelType = iota

	// PixelByte stores channels as 8-bit unsigned normalized values.
	PixelByte

	// PixelFloat32 stores channels as float32.
	PixelFloat32
)

// String returns a string representation of the pixel type.
func (p PixelType) String() string {
	switch p {
	case PixelByte:
		return "byte"
	case PixelFloat32:
		return "float32"
	default:
		return "default"
	}
}

// Size returns the number of bytes per channel.
func (p PixelType) Size() int {
	if p == PixelFloat32 {
		return 4
	}
	return 1
}

// strategy binds an image type to its kernel and storage.
type strategy struct {
	name  string
	kind  msdf.Kind
	pixel PixelType
}

var strategies = [...]strategy{
	HardMask: {"hardmask", msdf.KindHardMask, PixelByte},
	SoftMask: {"softmask", msdf.KindSoftMask, PixelByte},
	SDF:      {"sdf", msdf.KindSDF, PixelFloat32},
	PSDF:     {"psdf", msdf.KindPSDF, PixelFloat32},
	MSDF:     {"msdf", msdf.KindMSDF, PixelFloat32},
	MTSDF:    {"mtsdf", msdf.KindMTSDF, PixelFloat32},
}

func (t ImageType) valid() bool {
	return t >= HardMask && t <= MTSDF
}

// String returns the lowercase name of the image type.
func (t ImageType) String() string {
	if !t.valid() {
		return "unknown"
	}
	return strategies[t].name
}

// Kind returns the kernel the image type renders with.
func (t ImageType) Kind() msdf.Kind {
	return strategies[t].kind
}

// Channels returns the number of channels per pixel.
func (t ImageType) Channels() int {
	return strategies[t].kind.Channels()
}

// DefaultPixelType returns the storage used when none is requested.
func (t ImageType) DefaultPixelType() PixelType {
	return strategies[t].pixel
}

// UsesEdgeColors reports whether glyphs must be edge-colored before
// rendering this image type.
func (t ImageType) UsesEdgeColors() bool {
	return strategies[t].kind.UsesEdgeColors()
}

// MarshalText implements encoding.TextMarshaler.
func (t ImageType) MarshalText() ([]byte, error) {
	if !t.valid() {
		return nil, fmt.Errorf("generator: invalid image type %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *ImageType) UnmarshalText(text []byte) error {
	parsed, err := ParseImageType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseImageType parses an image type name, ignoring case.
func ParseImageType(s string) (ImageType, error) {
	for i, st := range strategies {
		if strings.EqualFold(s, st.name) {
			return ImageType(i), nil
		}
	}
	return 0, fmt.Errorf("generator: unknown image type %q", s)
}
