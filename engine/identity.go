package engine

import "slices"

// Identity maps every codepoint to the font's nominal glyph and advance.
// It performs no substitution, positioning or feature processing.
type Identity struct{}

// Shape implements Engine.Shape.
func (Identity) Shape(req Request) (Result, error) {
	if err := req.validate(); err != nil {
		return Result{}, err
	}
	res := Result{Start: req.Start, End: req.End}
	if req.End == req.Start {
		return res, nil
	}

	res.Glyphs = make([]Glyph, req.End-req.Start)
	for i := range res.Glyphs {
		r := req.Text[req.Start+i]
		gid := req.Font.GlyphID(r)
		adv := req.Font.Advance(gid)
		res.Glyphs[i] = Glyph{
			ID:       uint32(gid),
			Cluster:  req.Start + i,
			XAdvance: adv,
		}
		res.Advance += adv
	}
	if req.RightToLeft {
		slices.Reverse(res.Glyphs)
	}
	return res, nil
}
