// Package atlas grows a square glyph atlas one batch of glyphs at a time.
//
// DynamicAtlas keeps every glyph box it has packed. Each call to Add packs
// the new boxes into the free space left by earlier batches. When they do not
// fit, the atlas side doubles (at least until its area covers every box) and
// either all boxes are repacked from scratch (rearrange) or the new strip of
// space is appended to the existing layout (expand). The Generator is told
// what happened so it can move or keep existing pixels before rendering the
// new glyphs:
//
//	a, err := atlas.New[*glyph.Geometry](gen, atlas.Options{Padding: 1})
//	if err != nil {
//	    return err
//	}
//	defer a.Close()
//
//	flags, err := a.Add(glyphs, true)
//	if flags&atlas.Rearranged != 0 {
//	    // previously returned atlas coordinates are stale
//	}
//
// Remap entries form a ledger with one row per non-whitespace glyph ever
// added, in submission order. After a rearrangement every row's Source is
// its previous Target.
package atlas
