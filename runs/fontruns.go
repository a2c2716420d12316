package runs

import (
	"unicode"

	"github.com/gogpu/shaper/font"
)

// NewFontRuns resolves font fallback for every codepoint of text.
//
// The requested font wins for every codepoint it covers. Other codepoints
// stay in the current fallback run when its font covers them; otherwise mgr
// picks the font. Combining marks, joiners and variation selectors always
// stay with the preceding codepoint so clusters are not split across fonts.
// A nil mgr selects font.Default().
func NewFontRuns(text []rune, requested *font.Font, mgr font.Manager) *Spans[*font.Font] {
	mgr = font.OrDefault(mgr)

	resolved := make([]*font.Font, len(text))
	var cur *font.Font
	for i, r := range text {
		switch {
		case cur != nil && clusterExtender(r):
		case requested != nil && requested.HasGlyph(r):
			cur = requested
		case cur != nil && cur.HasGlyph(r):
		default:
			f := mgr.ResolveFont(r, requested)
			if f == nil {
				f = requested
			}
			cur = f
		}
		resolved[i] = cur
	}
	return compress(resolved, (*font.Font).Equal, requested)
}

// clusterExtender reports whether r never starts a cluster of its own.
func clusterExtender(r rune) bool {
	switch {
	case r == '\u200c', r == '\u200d': // ZWNJ, ZWJ
		return true
	case r >= '\ufe00' && r <= '\ufe0f', r >= 0xe0100 && r <= 0xe01ef: // variation selectors
		return true
	}
	return unicode.In(r, unicode.Mn, unicode.Me)
}
