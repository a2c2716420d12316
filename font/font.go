package font

import "fmt"

// Metrics holds font-level metrics at a specific size.
type Metrics struct {
	// Ascent is the distance from the baseline to the top of the font (positive).
	Ascent float64

	// Descent is the distance from the baseline to the bottom of the font (positive).
	Descent float64

	// Leading is the recommended gap between lines.
	Leading float64
}

// LineHeight returns the baseline-to-baseline distance.
func (m Metrics) LineHeight() float64 {
	return m.Ascent + m.Descent + m.Leading
}

// Font is an immutable handle to a Source at a specific size.
// Font does not own the source; the source must outlive every shaping call
// that uses the font.
type Font struct {
	source *Source
	size   float64
}

// Source returns the font's source.
func (f *Font) Source() *Source { return f.source }

// Size returns the font size in pixels per em.
func (f *Font) Size() float64 { return f.size }

// HasGlyph reports whether the font has a glyph for r.
func (f *Font) HasGlyph(r rune) bool {
	return f.source.HasGlyph(r)
}

// GlyphID returns the nominal glyph for r, or 0 (.notdef).
func (f *Font) GlyphID(r rune) uint16 {
	if p := f.source.Parsed(); p != nil {
		return p.GlyphIndex(r)
	}
	return 0
}

// Advance returns the horizontal advance of glyph gid.
func (f *Font) Advance(gid uint16) float64 {
	if p := f.source.Parsed(); p != nil {
		return p.GlyphAdvance(gid, f.size)
	}
	return 0
}

// Metrics returns the font metrics at the font's size.
func (f *Font) Metrics() Metrics {
	if p := f.source.Parsed(); p != nil {
		return p.Metrics(f.size)
	}
	return Metrics{}
}

// Equal reports whether f and other refer to the same source at the same
// size. Two nil fonts are equal.
func (f *Font) Equal(other *Font) bool {
	if f == nil || other == nil {
		return f == other
	}
	return f.source == other.source && f.size == other.size
}

// String returns a short description such as "Go Regular 16".
func (f *Font) String() string {
	if f == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s %g", f.source.Name(), f.size)
}
