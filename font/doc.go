// Package font loads glyph outlines and metrics from TrueType and OpenType
// fonts for atlas generation.
//
// Two parsers are available behind one Source type: BackendSFNT uses
// golang.org/x/image/font/sfnt and BackendGoText uses
// github.com/go-text/typesetting. Both produce outlines in em units with
// the y axis up, ready for glyph.New.
//
// Basic usage:
//
//	src, err := font.Load(data, font.BackendSFNT)
//	if err != nil {
//	    return err
//	}
//	var geo font.Geometry
//	loaded, err := geo.LoadCharset(src, 1, font.DefaultCharset())
package font
