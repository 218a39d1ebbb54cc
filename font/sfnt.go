package font

import (
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// sfntFace reads fonts through golang.org/x/image/font/sfnt. Outlines are
// loaded at a ppem equal to the units per em, so one pixel is one font
// unit.
type sfntFace struct {
	font *opentype.Font
	buf  sfnt.Buffer
	upem fixed.Int26_6
}

func parseSFNT(data []byte) (*sfntFace, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}
	return &sfntFace{font: f, upem: fixed.I(int(f.UnitsPerEm()))}, nil
}

func (f *sfntFace) familyName() string {
	name, err := f.font.Name(&f.buf, sfnt.NameIDFamily)
	if err != nil {
		return ""
	}
	return name
}

func (f *sfntFace) unitsPerEm() float64 { return float64(f.font.UnitsPerEm()) }

func (f *sfntFace) metrics() Metrics {
	m := Metrics{EmSize: f.unitsPerEm()}
	if fm, err := f.font.Metrics(&f.buf, f.upem, xfont.HintingNone); err == nil {
		m.Ascender = fixedToFloat(fm.Ascent)
		m.Descender = -fixedToFloat(fm.Descent)
		m.LineHeight = fixedToFloat(fm.Height)
	}
	if post := f.font.PostTable(); post != nil {
		m.UnderlineY = float64(post.UnderlinePosition)
		m.UnderlineThickness = float64(post.UnderlineThickness)
	}
	return m
}

func (f *sfntFace) glyphIndex(r rune) (int, bool) {
	gid, err := f.font.GlyphIndex(&f.buf, r)
	if err != nil || gid == 0 {
		return 0, false
	}
	return int(gid), true
}

func (f *sfntFace) advance(gid int) float64 {
	adv, err := f.font.GlyphAdvance(&f.buf, sfnt.GlyphIndex(gid), f.upem, xfont.HintingNone)
	if err != nil {
		return 0
	}
	return fixedToFloat(adv)
}

// outline replays the glyph segments. sfnt uses a y-down space.
func (f *sfntFace) outline(gid int, sink *outlineSink) error {
	segments, err := f.font.LoadGlyph(&f.buf, sfnt.GlyphIndex(gid), f.upem, nil)
	if err != nil {
		return err
	}
	pt := func(p fixed.Point26_6) (float64, float64) {
		return fixedToFloat(p.X), -fixedToFloat(p.Y)
	}
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			sink.moveTo(pt(seg.Args[0]))
		case sfnt.SegmentOpLineTo:
			sink.lineTo(pt(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			cx, cy := pt(seg.Args[0])
			x, y := pt(seg.Args[1])
			sink.quadTo(cx, cy, x, y)
		case sfnt.SegmentOpCubeTo:
			c1x, c1y := pt(seg.Args[0])
			c2x, c2y := pt(seg.Args[1])
			x, y := pt(seg.Args[2])
			sink.cubeTo(c1x, c1y, c2x, c2y, x, y)
		}
	}
	return nil
}

func fixedToFloat(x fixed.Int26_6) float64 {
	return float64(x) / 64
}
