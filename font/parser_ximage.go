package font

import (
	"bytes"
	"fmt"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// ximageParser implements Parser using golang.org/x/image/font/opentype.
type ximageParser struct{}

// Parse implements Parser.Parse.
func (p *ximageParser) Parse(data []byte, index int) (Parsed, error) {
	if bytes.HasPrefix(data, []byte("ttcf")) {
		c, err := opentype.ParseCollection(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidFont, err)
		}
		f, err := c.Font(index)
		if err != nil {
			return nil, fmt.Errorf("%w: collection index %d: %w", ErrInvalidFont, index, err)
		}
		return &ximageParsed{font: f}, nil
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFont, err)
	}
	return &ximageParsed{font: f}, nil
}

// ximageParsed implements Parsed using sfnt.Font. Every call allocates its
// own sfnt.Buffer, which keeps the font safe for concurrent use.
type ximageParsed struct {
	font *opentype.Font
}

func (f *ximageParsed) Name() string {
	if name, err := f.font.Name(nil, sfnt.NameIDFamily); err == nil {
		return name
	}
	return ""
}

func (f *ximageParsed) FullName() string {
	if name, err := f.font.Name(nil, sfnt.NameIDFull); err == nil {
		return name
	}
	return ""
}

func (f *ximageParsed) NumGlyphs() int {
	return f.font.NumGlyphs()
}

func (f *ximageParsed) UnitsPerEm() int {
	return int(f.font.UnitsPerEm())
}

func (f *ximageParsed) GlyphIndex(r rune) uint16 {
	idx, err := f.font.GlyphIndex(nil, r)
	if err != nil {
		return 0
	}
	return uint16(idx)
}

func (f *ximageParsed) GlyphAdvance(glyphIndex uint16, ppem float64) float64 {
	var buf sfnt.Buffer
	advance, err := f.font.GlyphAdvance(&buf, sfnt.GlyphIndex(glyphIndex), floatToFixed(ppem), xfont.HintingNone)
	if err != nil {
		return 0
	}
	return fixedToFloat(advance)
}

func (f *ximageParsed) Metrics(ppem float64) Metrics {
	var buf sfnt.Buffer
	m, err := f.font.Metrics(&buf, floatToFixed(ppem), xfont.HintingNone)
	if err != nil {
		return Metrics{}
	}
	ascent := fixedToFloat(m.Ascent)
	descent := fixedToFloat(m.Descent)
	leading := fixedToFloat(m.Height) - ascent - descent
	if leading < 0 {
		leading = 0
	}
	return Metrics{
		Ascent:  ascent,
		Descent: descent,
		Leading: leading,
	}
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

func fixedToFloat(x fixed.Int26_6) float64 {
	return float64(x) / 64.0
}
