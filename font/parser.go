package font

import "sync"

// Parser is an interface for font parsing backends.
type Parser interface {
	// Parse parses font data (TTF, OTF or a collection) and returns the
	// font at the given collection index.
	Parse(data []byte, index int) (Parsed, error)
}

// Parsed represents a parsed font file.
//
// Implementations must be safe for concurrent use.
type Parsed interface {
	// Name returns the font family name, or "" if not available.
	Name() string

	// FullName returns the full font name, or "" if not available.
	FullName() string

	// NumGlyphs returns the number of glyphs in the font.
	NumGlyphs() int

	// UnitsPerEm returns the units per em for the font.
	UnitsPerEm() int

	// GlyphIndex returns the glyph index for a rune, or 0 if the font has no
	// glyph for it.
	GlyphIndex(r rune) uint16

	// GlyphAdvance returns the unhinted advance width of a glyph at ppem.
	GlyphAdvance(glyphIndex uint16, ppem float64) float64

	// Metrics returns the font metrics at ppem.
	Metrics(ppem float64) Metrics
}

const defaultParserName = "ximage"

var (
	parserMu       sync.RWMutex
	parserRegistry = map[string]Parser{
		defaultParserName: &ximageParser{},
	}
)

// RegisterParser registers a custom font parser under name.
func RegisterParser(name string, parser Parser) {
	parserMu.Lock()
	defer parserMu.Unlock()
	parserRegistry[name] = parser
}

// getParser returns the parser by name, or the default if not found.
func getParser(name string) Parser {
	parserMu.RLock()
	defer parserMu.RUnlock()
	if p, ok := parserRegistry[name]; ok {
		return p
	}
	return parserRegistry[defaultParserName]
}
