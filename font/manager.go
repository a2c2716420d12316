package font

import (
	"github.com/go-text/typesetting/language"
	xlanguage "golang.org/x/text/language"
)

// DefaultSize is the size used for fallback fonts when no requested font is
// available to copy the size from.
const DefaultSize = 12

// Manager resolves font fallback. Implementations must be safe for
// concurrent use and must not observably change state between queries.
type Manager interface {
	// ResolveFont returns the font used for r when requested is the
	// preferred font. It returns requested when nothing covers r.
	ResolveFont(r rune, requested *Font) *Font

	// MatchFallback returns a source covering r for the given script and
	// language, or nil.
	MatchFallback(r rune, script language.Script, lang xlanguage.Tag) *Source
}

// resolve implements ResolveFont on top of a MatchFallback function: the
// requested font wins whenever it covers r.
func resolve(m Manager, r rune, requested *Font) *Font {
	if requested != nil && requested.HasGlyph(r) {
		return requested
	}
	src := m.MatchFallback(r, language.LookupScript(r), xlanguage.Und)
	if src == nil {
		return requested
	}
	size := float64(DefaultSize)
	if requested != nil {
		size = requested.Size()
		if src == requested.Source() {
			return requested
		}
	}
	return src.Font(size)
}

// Collection resolves fallback from an ordered list of sources: the first
// source with a glyph for the codepoint wins.
// Collection is safe for concurrent use.
type Collection struct {
	sources []*Source
}

// NewCollection creates a Collection from sources in priority order.
func NewCollection(sources ...*Source) *Collection {
	c := &Collection{sources: make([]*Source, 0, len(sources))}
	for _, s := range sources {
		if s != nil {
			c.sources = append(c.sources, s)
		}
	}
	return c
}

// Sources returns the fallback list.
func (c *Collection) Sources() []*Source {
	out := make([]*Source, len(c.sources))
	copy(out, c.sources)
	return out
}

// ResolveFont implements Manager.ResolveFont.
func (c *Collection) ResolveFont(r rune, requested *Font) *Font {
	return resolve(c, r, requested)
}

// MatchFallback implements Manager.MatchFallback.
// Script and language do not affect the choice.
func (c *Collection) MatchFallback(r rune, _ language.Script, _ xlanguage.Tag) *Source {
	for _, s := range c.sources {
		if s.HasGlyph(r) {
			return s
		}
	}
	return nil
}
