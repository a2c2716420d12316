package shaper

import (
	"encoding/binary"
	"fmt"
	"math"
	"slices"

	"github.com/go-text/typesetting/language"
	xlanguage "golang.org/x/text/language"

	"github.com/gogpu/shaper/font"
	"github.com/gogpu/shaper/runs"
)

// GlyphRun is a run of positioned glyphs sharing one font.
type GlyphRun struct {
	Font     *font.Font
	Level    runs.Level
	Script   language.Script
	Language xlanguage.Tag

	// Start, End is the codepoint range of the run in the text.
	Start, End int

	Glyphs []uint32
	// Positions are absolute glyph origins, Y grows downwards.
	Positions []Point
	// Clusters are the text offsets each glyph was shaped from.
	Clusters []int

	Advance Point
}

// Line is one line of a TextBlob. Runs are in visual order.
type Line struct {
	Runs []GlyphRun

	// Baseline is the absolute Y of the line's baseline.
	Baseline float64

	// Ascent, Descent and Leading are the maxima over the line's fonts.
	Ascent, Descent, Leading float64

	// Width is the sum of the run advances.
	Width float64
}

// TextBlob is the immutable result of Shaper.Shape.
type TextBlob struct {
	lines  []Line
	origin Point
}

// Lines returns a copy of the blob's lines.
func (b *TextBlob) Lines() []Line {
	out := make([]Line, len(b.lines))
	for i, l := range b.lines {
		out[i] = l
		out[i].Runs = make([]GlyphRun, len(l.Runs))
		for j, r := range l.Runs {
			r.Glyphs = slices.Clone(r.Glyphs)
			r.Positions = slices.Clone(r.Positions)
			r.Clusters = slices.Clone(r.Clusters)
			out[i].Runs[j] = r
		}
	}
	return out
}

// NumLines returns the number of lines.
func (b *TextBlob) NumLines() int { return len(b.lines) }

// NumGlyphs returns the number of glyphs over all lines.
func (b *TextBlob) NumGlyphs() int {
	n := 0
	for _, l := range b.lines {
		for _, r := range l.Runs {
			n += len(r.Glyphs)
		}
	}
	return n
}

// Glyphs returns all glyph IDs in line order, then visual order.
func (b *TextBlob) Glyphs() []uint32 {
	out := make([]uint32, 0, b.NumGlyphs())
	for _, l := range b.lines {
		for _, r := range l.Runs {
			out = append(out, r.Glyphs...)
		}
	}
	return out
}

// Positions returns all glyph positions in the order of Glyphs.
func (b *TextBlob) Positions() []Point {
	out := make([]Point, 0, b.NumGlyphs())
	for _, l := range b.lines {
		for _, r := range l.Runs {
			out = append(out, r.Positions...)
		}
	}
	return out
}

// Clusters returns all glyph clusters in the order of Glyphs.
func (b *TextBlob) Clusters() []int {
	out := make([]int, 0, b.NumGlyphs())
	for _, l := range b.lines {
		for _, r := range l.Runs {
			out = append(out, r.Clusters...)
		}
	}
	return out
}

// Bounds returns the union of the line boxes: each line spans its width
// horizontally and from ascent above to descent below its baseline.
func (b *TextBlob) Bounds() Rect {
	var bounds Rect
	for _, l := range b.lines {
		bounds = bounds.Union(Rect{
			MinX: b.origin.X,
			MinY: l.Baseline - l.Ascent,
			MaxX: b.origin.X + l.Width,
			MaxY: l.Baseline + l.Descent,
		})
	}
	return bounds
}

// String returns a short description of the blob.
func (b *TextBlob) String() string {
	r := b.Bounds()
	return fmt.Sprintf("TextBlob{lines=%d glyphs=%d bounds=%.2fx%.2f}",
		len(b.lines), b.NumGlyphs(), r.Width(), r.Height())
}

const (
	blobMagic   = "SHPB"
	blobVersion = 1
)

// MarshalBinary encodes the blob in a deterministic big-endian form. Equal
// blobs encode to equal bytes.
func (b *TextBlob) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 0, 64+b.NumGlyphs()*24)
	buf = append(buf, blobMagic...)
	buf = append(buf, blobVersion)
	buf = appendFloat(buf, b.origin.X)
	buf = appendFloat(buf, b.origin.Y)
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(b.lines)))
	for _, l := range b.lines {
		for _, v := range [...]float64{l.Baseline, l.Ascent, l.Descent, l.Leading, l.Width} {
			buf = appendFloat(buf, v)
		}
		buf = binary.BigEndian.AppendUint32(buf, uint32(len(l.Runs)))
		for _, r := range l.Runs {
			buf = appendRun(buf, r)
		}
	}
	return buf, nil
}

func appendRun(buf []byte, r GlyphRun) []byte {
	name, size := "", 0.0
	if r.Font != nil {
		name, size = r.Font.Source().Name(), r.Font.Size()
	}
	buf = appendString(buf, name)
	buf = appendFloat(buf, size)
	buf = append(buf, byte(r.Level))
	buf = binary.BigEndian.AppendUint32(buf, uint32(r.Script))
	buf = appendString(buf, r.Language.String())
	buf = binary.BigEndian.AppendUint64(buf, uint64(r.Start))
	buf = binary.BigEndian.AppendUint64(buf, uint64(r.End))
	buf = appendFloat(buf, r.Advance.X)
	buf = appendFloat(buf, r.Advance.Y)
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(r.Glyphs)))
	for i, g := range r.Glyphs {
		buf = binary.BigEndian.AppendUint32(buf, g)
		buf = appendFloat(buf, r.Positions[i].X)
		buf = appendFloat(buf, r.Positions[i].Y)
		buf = binary.BigEndian.AppendUint64(buf, uint64(r.Clusters[i]))
	}
	return buf
}

func appendFloat(buf []byte, v float64) []byte {
	return binary.BigEndian.AppendUint64(buf, math.Float64bits(v))
}

func appendString(buf []byte, s string) []byte {
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(s)))
	return append(buf, s...)
}

// BlobBuilder is a RunHandler that accumulates lines into a TextBlob.
// Lines are stacked downwards from the origin: the first baseline is
// origin.Y plus the line's ascent, and each line moves the next one down by
// its ascent, descent and leading.
type BlobBuilder struct {
	origin Point
	lines  []Line

	y       float64
	x       float64
	current Line
}

// NewBlobBuilder returns a builder placing the first line at origin.
func NewBlobBuilder(origin Point) *BlobBuilder {
	return &BlobBuilder{origin: origin, y: origin.Y}
}

// BeginLine implements RunHandler.
func (b *BlobBuilder) BeginLine() {
	b.current = Line{}
	b.x = b.origin.X
}

// RunInfo implements RunHandler.
func (b *BlobBuilder) RunInfo(info RunInfo) {
	if info.Font != nil {
		m := info.Font.Metrics()
		b.current.Ascent = max(b.current.Ascent, m.Ascent)
		b.current.Descent = max(b.current.Descent, m.Descent)
		b.current.Leading = max(b.current.Leading, m.Leading)
	}
}

// CommitRunInfo implements RunHandler.
func (b *BlobBuilder) CommitRunInfo() {
	b.current.Baseline = b.y + b.current.Ascent
}

// RunOffset implements RunHandler.
func (b *BlobBuilder) RunOffset(info RunInfo) Buffer {
	n := info.GlyphCount
	run := GlyphRun{
		Font:      info.Font,
		Level:     info.Level,
		Script:    info.Script,
		Language:  info.Language,
		Start:     info.Start,
		End:       info.End,
		Glyphs:    make([]uint32, n),
		Positions: make([]Point, n),
		Clusters:  make([]int, n),
		Advance:   info.Advance,
	}
	b.current.Runs = append(b.current.Runs, run)
	return Buffer{
		Glyphs:    run.Glyphs,
		Positions: run.Positions,
		Clusters:  run.Clusters,
		Point:     Pt(b.x, b.current.Baseline),
	}
}

// CommitRun implements RunHandler.
func (b *BlobBuilder) CommitRun(info RunInfo) {
	b.x += info.Advance.X
	b.current.Width += info.Advance.X
}

// CommitLine implements RunHandler.
func (b *BlobBuilder) CommitLine() {
	b.lines = append(b.lines, b.current)
	b.y += b.current.Ascent + b.current.Descent + b.current.Leading
	b.current = Line{}
}

// Blob returns the accumulated blob, or nil when no line was committed.
func (b *BlobBuilder) Blob() *TextBlob {
	if len(b.lines) == 0 {
		return nil
	}
	return &TextBlob{lines: slices.Clone(b.lines), origin: b.origin}
}
