package font

import (
	"bytes"
	"errors"

	gtfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype"
)

var errNotOutline = errors.New("glyph has no vector outline")

// goTextFace reads fonts through github.com/go-text/typesetting. Its
// coordinates are font units with the y axis up.
type goTextFace struct {
	face *gtfont.Face
}

func parseGoText(data []byte) (*goTextFace, error) {
	face, err := gtfont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return &goTextFace{face: face}, nil
}

// familyName is not exposed by the parsed face; LoadFile falls back to the
// file name.
func (f *goTextFace) familyName() string { return "" }

func (f *goTextFace) unitsPerEm() float64 { return float64(f.face.Upem()) }

func (f *goTextFace) metrics() Metrics {
	m := Metrics{EmSize: f.unitsPerEm()}
	if ext, ok := f.face.FontHExtents(); ok {
		m.Ascender = float64(ext.Ascender)
		m.Descender = float64(ext.Descender)
		m.LineHeight = float64(ext.Ascender - ext.Descender + ext.LineGap)
	}
	m.UnderlineY = float64(f.face.LineMetric(gtfont.UnderlinePosition))
	m.UnderlineThickness = float64(f.face.LineMetric(gtfont.UnderlineThickness))
	return m
}

func (f *goTextFace) glyphIndex(r rune) (int, bool) {
	gid, ok := f.face.NominalGlyph(r)
	if !ok || gid == 0 {
		return 0, false
	}
	return int(gid), true
}

func (f *goTextFace) advance(gid int) float64 {
	return float64(f.face.HorizontalAdvance(gtfont.GID(gid)))
}

func (f *goTextFace) outline(gid int, sink *outlineSink) error {
	data, ok := f.face.GlyphData(gtfont.GID(gid)).(gtfont.GlyphOutline)
	if !ok {
		return errNotOutline
	}
	for _, seg := range data.Segments {
		a := seg.Args
		switch seg.Op {
		case opentype.SegmentOpMoveTo:
			sink.moveTo(float64(a[0].X), float64(a[0].Y))
		case opentype.SegmentOpLineTo:
			sink.lineTo(float64(a[0].X), float64(a[0].Y))
		case opentype.SegmentOpQuadTo:
			sink.quadTo(float64(a[0].X), float64(a[0].Y), float64(a[1].X), float64(a[1].Y))
		case opentype.SegmentOpCubeTo:
			sink.cubeTo(float64(a[0].X), float64(a[0].Y), float64(a[1].X), float64(a[1].Y),
				float64(a[2].X), float64(a[2].Y))
		}
	}
	return nil
}
