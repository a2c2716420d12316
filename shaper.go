package shaper

import (
	"fmt"
	"sync"

	xlanguage "golang.org/x/text/language"

	"github.com/gogpu/shaper/engine"
	"github.com/gogpu/shaper/font"
	"github.com/gogpu/shaper/runs"
)

// Shaper turns text into lines of positioned glyphs with one Strategy.
//
// A Shaper is immutable and safe for concurrent use. Each call must use its
// own iterators and RunHandler.
type Shaper struct {
	strategy Strategy
	engine   engine.Engine
	fontMgr  font.Manager
	language xlanguage.Tag
}

var defaultEngine = sync.OnceValue(func() engine.Engine { return engine.NewHarfBuzz() })

func newShaper(strategy Strategy, eng engine.Engine, opts []Option) *Shaper {
	o := defaultShaperOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if eng == nil {
		eng = o.engine
	}
	if eng == nil {
		eng = defaultEngine()
	}
	return &Shaper{
		strategy: strategy,
		engine:   eng,
		fontMgr:  o.fontMgr,
		language: o.language,
	}
}

// NewPrimitive returns a shaper that maps codepoints to nominal glyphs
// without an OpenType engine. It wraps and reorders.
func NewPrimitive(opts ...Option) *Shaper {
	return newShaper(Primitive, engine.Identity{}, opts)
}

// NewShapeThenWrap returns a shaper that shapes every run, then breaks
// lines and reorders runs.
func NewShapeThenWrap(opts ...Option) *Shaper {
	return newShaper(ShapeThenWrap, nil, opts)
}

// NewShapeDontWrapOrReorder returns a shaper that emits one line with runs
// in logical order.
func NewShapeDontWrapOrReorder(opts ...Option) *Shaper {
	return newShaper(ShapeDontWrapOrReorder, nil, opts)
}

// NewShaperDrivenWrapper returns a shaper that lets the engine break lines.
// Engines that do not implement engine.Wrapper are wrapped as with
// ShapeThenWrap.
func NewShaperDrivenWrapper(opts ...Option) *Shaper {
	return newShaper(ShaperDrivenWrapper, nil, opts)
}

// NewPlatformNative returns a shaper backed by the platform service
// registered for the current operating system. It returns ErrUnsupported
// when none is registered or the service is unavailable.
func NewPlatformNative(opts ...Option) (*Shaper, error) {
	svc := Platform()
	if svc == nil {
		return nil, fmt.Errorf("%w: no platform shaping service", ErrUnsupported)
	}
	return newShaper(PlatformNative, svc, opts), nil
}

// Make returns the most capable shaper available.
func Make(opts ...Option) *Shaper {
	return NewShaperDrivenWrapper(opts...)
}

// New returns a shaper for strategy.
func New(strategy Strategy, opts ...Option) (*Shaper, error) {
	switch strategy {
	case Primitive:
		return NewPrimitive(opts...), nil
	case ShapeThenWrap:
		return NewShapeThenWrap(opts...), nil
	case ShapeDontWrapOrReorder:
		return NewShapeDontWrapOrReorder(opts...), nil
	case ShaperDrivenWrapper:
		return NewShaperDrivenWrapper(opts...), nil
	case PlatformNative:
		return NewPlatformNative(opts...)
	default:
		return nil, fmt.Errorf("%w: strategy %d", ErrUnsupported, strategy)
	}
}

// Strategy returns the shaper's strategy.
func (s *Shaper) Strategy() Strategy { return s.strategy }

// Engine returns the engine the shaper shapes runs with.
func (s *Shaper) Engine() engine.Engine { return s.engine }

// Shape shapes text with f and returns the accumulated blob, or nil for
// empty text.
//
// Example:
//
//	blob, err := shaper.Make().Shape("Hello, world", src.Font(16), shaper.WithWidth(200))
func (s *Shaper) Shape(text string, f *font.Font, opts ...ShapeOption) (*TextBlob, error) {
	if text == "" {
		return nil, nil
	}
	o := defaultShapeOptions()
	for _, opt := range opts {
		opt(&o)
	}
	b := NewBlobBuilder(o.offset)
	if err := s.shapeWithHandler(text, f, b, o); err != nil {
		return nil, err
	}
	return b.Blob(), nil
}

// ShapeWithHandler shapes text with f using the default iterators and
// streams lines to h. WithOffset has no effect; placement is up to h.
func (s *Shaper) ShapeWithHandler(text string, f *font.Font, h RunHandler, opts ...ShapeOption) error {
	o := defaultShapeOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return s.shapeWithHandler(text, f, h, o)
}

func (s *Shaper) shapeWithHandler(text string, f *font.Font, h RunHandler, o shapeOptions) error {
	if text == "" {
		return nil
	}
	mgr := s.fontMgr
	if o.hasMgr {
		mgr = o.fontMgr
	}
	rs := []rune(text)
	fonts, bidi, scripts, langs := runs.Defaults(rs, f, mgr, o.direction, s.language)
	return s.shapeRunes(rs, fonts, bidi, scripts, langs, o.features, o.width, h)
}

// ShapeRuns shapes text with caller-supplied iterators and streams lines to
// h. The iterators must cover exactly the codepoints of text.
func (s *Shaper) ShapeRuns(text string, fonts runs.FontIterator, bidi runs.BidiIterator, scripts runs.ScriptIterator, langs runs.LanguageIterator, features []Feature, width float64, h RunHandler) error {
	return s.shapeRunes([]rune(text), fonts, bidi, scripts, langs, features, width, h)
}

func (s *Shaper) shapeRunes(text []rune, fonts runs.FontIterator, bidi runs.BidiIterator, scripts runs.ScriptIterator, langs runs.LanguageIterator, features []Feature, width float64, h RunHandler) error {
	if len(text) == 0 {
		return nil
	}
	checked := NewCheckedHandler(h)

	var segs []shaped
	for run := range runs.Merge(len(text), fonts, bidi, scripts, langs) {
		for _, seg := range splitByFeatures(run, features) {
			segs = append(segs, shaped{segment: seg})
		}
	}

	lines, err := s.layout(text, segs, width)
	if err != nil {
		return err
	}
	for _, line := range lines {
		if s.strategy.Reorders() {
			line = reorder(line)
		}
		emitLine(checked, line)
	}
	Logger().Debug("shaper: shaped",
		"strategy", s.strategy, "codepoints", len(text), "segments", len(segs), "lines", len(lines))
	return nil
}

// layout shapes segs and breaks them into lines. No handler call is made
// before it returns.
func (s *Shaper) layout(text []rune, segs []shaped, width float64) ([][]lineRun, error) {
	if w, ok := s.engine.(engine.Wrapper); ok && s.strategy == ShaperDrivenWrapper {
		return s.wrapWithEngine(w, text, segs, width)
	}
	for i := range segs {
		res, err := s.engine.Shape(request(text, segs[i].segment))
		if err != nil {
			return nil, &ShapingError{Start: segs[i].Start, End: segs[i].End, Err: err}
		}
		segs[i].res = res
	}
	if !s.strategy.Wraps() {
		return singleLine(segs), nil
	}
	return breakLines(text, segs, width), nil
}

// wrapWithEngine shapes and wraps one paragraph at a time with the engine.
// Paragraph separators are not shaped. Whitespace at the end of a line is
// dropped, as breakLines does.
func (s *Shaper) wrapWithEngine(w engine.Wrapper, text []rune, segs []shaped, width float64) ([][]lineRun, error) {
	var (
		lines [][]lineRun
		blank []lineRun
	)
	for _, para := range paragraphs(text) {
		var (
			clipped []shaped
			reqs    []engine.Request
		)
		for _, seg := range segs {
			start, end := max(seg.Start, para.start), min(seg.End, para.end)
			if start >= end {
				continue
			}
			c := seg
			c.Start, c.End = start, end
			clipped = append(clipped, c)
			reqs = append(reqs, request(text, c.segment))
		}
		if len(reqs) == 0 {
			continue
		}
		wrapped, err := w.ShapeLines(reqs, width)
		if err != nil {
			return nil, &ShapingError{Start: para.start, End: para.end, Err: err}
		}
		for _, wl := range wrapped {
			line := make([]lineRun, 0, len(wl))
			for _, lr := range wl {
				line = append(line, lineRun{seg: &clipped[lr.Request], res: lr.Result})
			}
			if trimmed := trimTrailingSpace(text, line); len(trimmed) > 0 {
				lines = append(lines, trimmed)
			} else if blank == nil && len(line) > 0 {
				blank = line
			}
		}
	}
	if len(lines) == 0 && blank != nil {
		// Whitespace-only text still yields a line.
		lines = append(lines, blank)
	}
	return lines, nil
}

func request(text []rune, seg segment) engine.Request {
	return engine.Request{
		Text:        text,
		Start:       seg.Start,
		End:         seg.End,
		Font:        seg.Font,
		Script:      seg.Script,
		Language:    seg.Language,
		RightToLeft: seg.Level.IsRTL(),
		Features:    seg.features,
	}
}

// reorder returns line's runs in visual order.
func reorder(line []lineRun) []lineRun {
	levels := make([]runs.Level, len(line))
	for i, lr := range line {
		levels[i] = lr.seg.Level
	}
	order := ReorderRuns(levels)
	out := make([]lineRun, len(line))
	for i, j := range order {
		out[i] = line[j]
	}
	return out
}

// emitLine delivers one line to h.
func emitLine(h RunHandler, line []lineRun) {
	infos := make([]RunInfo, len(line))
	h.BeginLine()
	for i, lr := range line {
		infos[i] = runInfo(lr)
		h.RunInfo(infos[i])
	}
	h.CommitRunInfo()
	for i, lr := range line {
		buf := h.RunOffset(infos[i])
		pen := Point{}
		for j, g := range lr.res.Glyphs {
			offset := Pt(g.XOffset, -g.YOffset)
			buf.Glyphs[j] = g.ID
			buf.Positions[j] = buf.Point.Add(pen).Add(offset)
			if buf.Offsets != nil {
				buf.Offsets[j] = offset
			}
			if buf.Clusters != nil {
				buf.Clusters[j] = g.Cluster
			}
			pen = pen.Add(Pt(g.XAdvance, -g.YAdvance))
		}
		h.CommitRun(infos[i])
	}
	h.CommitLine()
}

func runInfo(lr lineRun) RunInfo {
	adv := Point{}
	for _, g := range lr.res.Glyphs {
		adv = adv.Add(Pt(g.XAdvance, -g.YAdvance))
	}
	return RunInfo{
		Font:       lr.seg.Font,
		Level:      lr.seg.Level,
		Script:     lr.seg.Script,
		Language:   lr.seg.Language,
		Start:      lr.res.Start,
		End:        lr.res.End,
		GlyphCount: len(lr.res.Glyphs),
		Advance:    adv,
	}
}

type paragraph struct{ start, end int }

// paragraphs splits text at hard line breaks. Separators belong to no
// paragraph.
func paragraphs(text []rune) []paragraph {
	var out []paragraph
	start := 0
	for i := 0; i < len(text); i++ {
		if !isHardBreak(text[i]) {
			continue
		}
		out = append(out, paragraph{start, i})
		if text[i] == '\r' && i+1 < len(text) && text[i+1] == '\n' {
			i++
		}
		start = i + 1
	}
	return append(out, paragraph{start, len(text)})
}

func isHardBreak(r rune) bool {
	switch r {
	case '\n', '\v', '\f', '\r', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}
