package msdfatlas

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
)

// FontBinExt is the extension of atlas cache files.
const FontBinExt = ".fontbin"

// fontBinHeader precedes the raw pixel bytes of a .fontbin file. All fields
// are little-endian.
type fontBinHeader struct {
	Width    int64
	Height   int64
	DataSize int64
	Layout   uint64
}

// FontBin is the content of a .fontbin file.
type FontBin struct {
	Width, Height int

	// Layout fingerprints the settings and glyph placements the pixels were
	// rendered for. See FontAtlas.LayoutHash.
	Layout uint64

	Data []byte
}

// FontBinName returns the cache file name for a font at the given em
// scale, for example "Roboto-Regular.ttf-52.fontbin".
func FontBinName(fontName string, emScale float64) string {
	return fmt.Sprintf("%s-%d%s", fontName, int64(math.Round(emScale)), FontBinExt)
}

// WriteFontBin writes an atlas bitmap as header plus raw bytes.
func WriteFontBin(w io.Writer, fb *FontBin) error {
	hdr := fontBinHeader{
		Width:    int64(fb.Width),
		Height:   int64(fb.Height),
		DataSize: int64(len(fb.Data)),
		Layout:   fb.Layout,
	}
	if err := binary.Write(w, binary.LittleEndian, hdr); err != nil {
		return err
	}
	_, err := w.Write(fb.Data)
	return err
}

// ReadFontBin reads a file written by WriteFontBin.
func ReadFontBin(r io.Reader) (*FontBin, error) {
	var hdr fontBinHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrCorruptCache, err)
	}
	if hdr.Width <= 0 || hdr.Height <= 0 || hdr.DataSize < 0 || hdr.DataSize > 1<<34 {
		return nil, fmt.Errorf("%w: header %dx%d with %d bytes",
			ErrCorruptCache, hdr.Width, hdr.Height, hdr.DataSize)
	}
	fb := &FontBin{Width: int(hdr.Width), Height: int(hdr.Height), Layout: hdr.Layout}
	fb.Data = make([]byte, hdr.DataSize)
	if _, err := io.ReadFull(r, fb.Data); err != nil {
		return nil, fmt.Errorf("%w: data: %w", ErrCorruptCache, err)
	}
	return fb, nil
}

// loadFontBin reads a cache file. A missing file returns nil and no error.
func loadFontBin(path string) (*FontBin, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadFontBin(bufio.NewReader(f))
}

// saveFontBin writes a cache file. An existing file is kept unless
// overwrite is set. The file is written under a temporary name and renamed
// into place.
func saveFontBin(path string, fb *FontBin, overwrite bool) error {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(tmp)
	err = WriteFontBin(bw, fb)
	if err == nil {
		err = bw.Flush()
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
