package engine

import (
	"errors"
	"fmt"

	ot "github.com/go-text/typesetting/font/opentype"
	"github.com/go-text/typesetting/language"
	xlanguage "golang.org/x/text/language"

	"github.com/gogpu/shaper/font"
)

// Sentinel errors for the engine package.
var (
	// ErrNoFont is returned when a request has no font.
	ErrNoFont = errors.New("engine: request has no font")

	// ErrInvalidRange is returned when a request's run range is outside its text.
	ErrInvalidRange = errors.New("engine: run range outside text")

	// ErrFontData is returned when the font cannot be loaded by the engine.
	ErrFontData = errors.New("engine: unusable font data")

	// ErrInternal is returned when the engine fails while shaping.
	ErrInternal = errors.New("engine: internal error")
)

// Feature is an OpenType feature setting applied to a whole request.
type Feature struct {
	Tag   ot.Tag
	Value uint32
}

// Request describes one run to shape.
type Request struct {
	// Text is the whole paragraph; only [Start, End) is shaped, the rest is
	// context.
	Text       []rune
	Start, End int

	Font        *font.Font
	Script      language.Script
	Language    xlanguage.Tag
	RightToLeft bool
	Features    []Feature
}

// validate checks the request fields every engine relies on.
func (r Request) validate() error {
	if r.Font == nil {
		return ErrNoFont
	}
	if r.Start < 0 || r.End < r.Start || r.End > len(r.Text) {
		return fmt.Errorf("%w: [%d,%d) of %d", ErrInvalidRange, r.Start, r.End, len(r.Text))
	}
	return nil
}

// Glyph is one shaped glyph.
type Glyph struct {
	// ID is the glyph index in the font.
	ID uint32

	// Cluster is the offset in Request.Text of the first codepoint the
	// glyph was produced from.
	Cluster int

	// XAdvance, YAdvance move the pen after the glyph.
	XAdvance, YAdvance float64

	// XOffset, YOffset displace the glyph from the pen position.
	XOffset, YOffset float64
}

// Result is the shaped output of a request or of part of one.
type Result struct {
	// Start, End is the codepoint range the glyphs cover.
	Start, End int

	// Glyphs are in visual order: right-to-left runs come out reversed.
	Glyphs []Glyph

	// Advance is the sum of the glyph advances.
	Advance float64
}

// Engine shapes single runs.
type Engine interface {
	// Shape shapes req. An empty run yields an empty Result and no error.
	Shape(req Request) (Result, error)
}

// LineRun is a shaped piece of a request placed on a line.
type LineRun struct {
	// Request is the index of the request the piece was cut from.
	Request int
	Result
}

// Wrapper is implemented by engines that break lines themselves.
type Wrapper interface {
	// ShapeLines shapes reqs, which must cover one paragraph contiguously
	// and in logical order, and breaks the result into lines no wider than
	// width where possible. Runs within a line are in logical order.
	ShapeLines(reqs []Request, width float64) ([][]LineRun, error)
}
