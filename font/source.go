package font

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
)

// nextSourceID hands out process-unique source identifiers.
var nextSourceID atomic.Uint64

// Source represents a loaded font file.
// One Source can create Font handles at any number of sizes.
//
// Source is safe for concurrent use.
// Source must not be copied after creation (enforced by copyCheck).
type Source struct {
	// addr is used for copy protection.
	// It must point to the Source itself.
	addr *Source

	id    uint64
	name  string
	index int

	mu     sync.RWMutex
	data   []byte
	parsed Parsed
}

// NewSource creates a Source from font data (TTF, OTF or a collection).
// The data slice is copied internally and can be reused after this call.
func NewSource(data []byte, opts ...SourceOption) (*Source, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	config := defaultSourceConfig()
	for _, opt := range opts {
		opt(&config)
	}

	parsed, err := getParser(config.parserName).Parse(data, config.index)
	if err != nil {
		return nil, err
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	s := &Source{
		id:     nextSourceID.Add(1),
		index:  config.index,
		data:   dataCopy,
		parsed: parsed,
	}
	s.addr = s

	s.name = config.name
	if s.name == "" {
		s.name = extractFontName(parsed)
	}
	return s, nil
}

// NewSourceFromFile loads a Source from a font file path.
func NewSourceFromFile(path string, opts ...SourceOption) (*Source, error) {
	// #nosec G304 -- Font file path is provided by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("font: failed to read font file: %w", err)
	}
	return NewSource(data, opts...)
}

// Font returns a handle to this source at the given size.
// Panics if s is nil (e.g. when the NewSource error was ignored).
func (s *Source) Font(size float64) *Font {
	if s == nil {
		panic("font: Source is nil; did you check the error from NewSource?")
	}
	s.copyCheck()
	return &Font{source: s, size: size}
}

// ID returns the process-unique identifier of the source.
func (s *Source) ID() uint64 {
	s.copyCheck()
	return s.id
}

// Name returns the font name.
func (s *Source) Name() string {
	s.copyCheck()
	return s.name
}

// Index returns the collection index the source was parsed from.
func (s *Source) Index() int {
	s.copyCheck()
	return s.index
}

// Data returns the raw font bytes. The slice must not be modified.
// It is nil after Close.
func (s *Source) Data() []byte {
	s.copyCheck()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

// NumGlyphs returns the number of glyphs in the font.
func (s *Source) NumGlyphs() int {
	if p := s.Parsed(); p != nil {
		return p.NumGlyphs()
	}
	return 0
}

// UnitsPerEm returns the units per em of the font.
func (s *Source) UnitsPerEm() int {
	if p := s.Parsed(); p != nil {
		return p.UnitsPerEm()
	}
	return 0
}

// HasGlyph reports whether the font maps r to a glyph other than .notdef.
func (s *Source) HasGlyph(r rune) bool {
	p := s.Parsed()
	return p != nil && p.GlyphIndex(r) != 0
}

// Parsed returns the parsed font, or nil after Close.
func (s *Source) Parsed() Parsed {
	s.copyCheck()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.parsed
}

// Close releases the font data. Fonts created from the source report no
// glyphs after Close.
func (s *Source) Close() error {
	s.copyCheck()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
	s.parsed = nil
	return nil
}

// copyCheck panics if Source was copied by value.
func (s *Source) copyCheck() {
	if s.addr != s {
		panic("font: Source must not be copied by value")
	}
}

// extractFontName extracts the font family name from the parsed font.
func extractFontName(parsed Parsed) string {
	if name := parsed.Name(); name != "" {
		return name
	}
	if fullName := parsed.FullName(); fullName != "" {
		return fullName
	}
	return "Unknown Font"
}
