package engine

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/go-text/typesetting/di"
	otfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/shaper/font"
	"github.com/gogpu/shaper/internal/cache"
	"github.com/gogpu/shaper/internal/logging"
)

// defaultFaceCacheSize bounds the number of parsed go-text fonts kept.
const defaultFaceCacheSize = 64

// HarfBuzz shapes runs with the HarfBuzz port from go-text/typesetting.
//
// Parsed fonts are cached per font.Source; each shaping call gets its own
// face and a pooled shaper, so HarfBuzz is safe for concurrent use.
type HarfBuzz struct {
	shapers  sync.Pool
	wrappers sync.Pool
	fonts    *cache.LRU[uint64, *otfont.Font]
}

// NewHarfBuzz creates a HarfBuzz engine.
func NewHarfBuzz() *HarfBuzz {
	return &HarfBuzz{
		shapers: sync.Pool{
			New: func() any { return &shaping.HarfbuzzShaper{} },
		},
		wrappers: sync.Pool{
			New: func() any { return &shaping.LineWrapper{} },
		},
		fonts: cache.New[uint64, *otfont.Font](defaultFaceCacheSize),
	}
}

// Shape implements Engine.Shape.
func (h *HarfBuzz) Shape(req Request) (res Result, err error) {
	if err := req.validate(); err != nil {
		return Result{}, err
	}
	res = Result{Start: req.Start, End: req.End}
	if req.End == req.Start {
		return res, nil
	}

	input, err := h.input(req)
	if err != nil {
		return Result{}, err
	}

	out, err := h.shape(input)
	if err != nil {
		return Result{}, err
	}
	res.Glyphs = convertGlyphs(out.Glyphs, 0)
	res.Advance = fixedToFloat(out.Advance)
	return res, nil
}

// ShapeLines implements Wrapper.ShapeLines with go-text's line wrapper.
func (h *HarfBuzz) ShapeLines(reqs []Request, width float64) (lines [][]LineRun, err error) {
	if len(reqs) == 0 {
		return nil, nil
	}
	text := reqs[0].Text
	start, end := reqs[0].Start, reqs[len(reqs)-1].End
	for i, req := range reqs {
		if err := req.validate(); err != nil {
			return nil, err
		}
		if i > 0 && req.Start != reqs[i-1].End {
			return nil, fmt.Errorf("%w: request %d does not continue request %d", ErrInvalidRange, i, i-1)
		}
	}

	// The wrapper indexes outputs into the paragraph, so requests are
	// rebased onto the paragraph slice.
	paragraph := text[start:end]
	outputs := make([]shaping.Output, 0, len(reqs))
	for _, req := range reqs {
		if req.End == req.Start {
			continue
		}
		local := req
		local.Text = paragraph
		local.Start -= start
		local.End -= start

		input, err := h.input(local)
		if err != nil {
			return nil, err
		}
		out, err := h.shape(input)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, out)
	}
	if len(outputs) == 0 {
		return nil, nil
	}

	wrapper := h.wrappers.Get().(*shaping.LineWrapper)
	defer h.wrappers.Put(wrapper)

	defer func() {
		if r := recover(); r != nil {
			logging.Logger().Warn("engine: line wrapper panicked", "panic", r)
			lines, err = nil, fmt.Errorf("%w: %v", ErrInternal, r)
		}
	}()

	config := shaping.WrapConfig{BreakPolicy: shaping.WhenNecessary}
	wrapped, _ := wrapper.WrapParagraph(config, maxWidth(width), paragraph, shaping.NewSliceIterator(outputs))

	lines = make([][]LineRun, 0, len(wrapped))
	for _, line := range wrapped {
		runs := make([]LineRun, 0, len(line))
		for _, out := range line {
			s := out.Runes.Offset + start
			e := s + out.Runes.Count
			runs = append(runs, LineRun{
				Request: requestIndex(reqs, s),
				Result: Result{
					Start:   s,
					End:     e,
					Glyphs:  convertGlyphs(out.Glyphs, start),
					Advance: fixedToFloat(out.Advance),
				},
			})
		}
		lines = append(lines, runs)
	}
	logging.Logger().Debug("engine: wrapped paragraph", "runs", len(reqs), "lines", len(lines))
	return lines, nil
}

// input builds the go-text shaping input for req.
func (h *HarfBuzz) input(req Request) (shaping.Input, error) {
	f, err := h.loadFont(req.Font.Source())
	if err != nil {
		return shaping.Input{}, err
	}

	var features []shaping.FontFeature
	if len(req.Features) > 0 {
		features = make([]shaping.FontFeature, len(req.Features))
		for i, feat := range req.Features {
			features[i] = shaping.FontFeature{Tag: feat.Tag, Value: feat.Value}
		}
	}

	dir := di.DirectionLTR
	if req.RightToLeft {
		dir = di.DirectionRTL
	}

	return shaping.Input{
		Text:         req.Text,
		RunStart:     req.Start,
		RunEnd:       req.End,
		Direction:    dir,
		Face:         otfont.NewFace(f),
		Size:         floatToFixed(req.Font.Size()),
		Script:       req.Script,
		Language:     language.NewLanguage(req.Language.String()),
		FontFeatures: features,
	}, nil
}

// shape runs a pooled HarfBuzz shaper, turning engine panics into errors.
func (h *HarfBuzz) shape(input shaping.Input) (out shaping.Output, err error) {
	hb := h.shapers.Get().(*shaping.HarfbuzzShaper)
	defer h.shapers.Put(hb)

	defer func() {
		if r := recover(); r != nil {
			logging.Logger().Warn("engine: harfbuzz panicked", "panic", r)
			out, err = shaping.Output{}, fmt.Errorf("%w: %v", ErrInternal, r)
		}
	}()
	return hb.Shape(input), nil
}

// loadFont returns the cached go-text font for src, parsing it on a miss.
// otfont.Font is read-only and safe for concurrent use; faces are not and
// are created per call.
func (h *HarfBuzz) loadFont(src *font.Source) (*otfont.Font, error) {
	return h.fonts.GetOrLoad(src.ID(), func() (*otfont.Font, error) {
		data := src.Data()
		if len(data) == 0 {
			return nil, fmt.Errorf("%w: %s is closed", ErrFontData, src.Name())
		}
		logging.Logger().Debug("engine: parsing font", "name", src.Name(), "bytes", len(data))

		if bytes.HasPrefix(data, []byte("ttcf")) {
			faces, err := otfont.ParseTTC(bytes.NewReader(data))
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrFontData, err)
			}
			if src.Index() >= len(faces) {
				return nil, fmt.Errorf("%w: collection index %d of %d", ErrFontData, src.Index(), len(faces))
			}
			return faces[src.Index()].Font, nil
		}

		face, err := otfont.ParseTTF(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFontData, err)
		}
		return face.Font, nil
	})
}

// Forget drops the cached parse of src, e.g. after the source is closed.
func (h *HarfBuzz) Forget(src *font.Source) {
	h.fonts.Delete(src.ID())
}

// convertGlyphs converts go-text glyphs, shifting clusters by base.
func convertGlyphs(glyphs []shaping.Glyph, base int) []Glyph {
	if len(glyphs) == 0 {
		return nil
	}
	out := make([]Glyph, len(glyphs))
	for i, g := range glyphs {
		out[i] = Glyph{
			ID:       uint32(g.GlyphID),
			Cluster:  g.TextIndex() + base,
			XAdvance: fixedToFloat(g.Advance),
			XOffset:  fixedToFloat(g.XOffset),
			YOffset:  fixedToFloat(g.YOffset),
		}
	}
	return out
}

// requestIndex returns the index of the request containing offset.
func requestIndex(reqs []Request, offset int) int {
	i := sort.Search(len(reqs), func(i int) bool { return reqs[i].End > offset })
	if i == len(reqs) {
		return len(reqs) - 1
	}
	return i
}

// unboundedWidth is the widest line go-text can measure in 26.6 fixed point.
const unboundedWidth = math.MaxInt32 >> 6

func maxWidth(width float64) int {
	if math.IsInf(width, 1) || math.IsNaN(width) || width <= 0 || width > unboundedWidth {
		return unboundedWidth
	}
	return int(math.Floor(width))
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

func fixedToFloat(x fixed.Int26_6) float64 {
	return float64(x) / 64.0
}
