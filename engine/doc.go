// Package engine adapts glyph shaping engines to the shaper.
//
// An [Engine] shapes one run at a time: given the run's codepoints, font,
// script, language, direction and OpenType features, it returns positioned
// glyphs with cluster indices. Engines are deterministic and safe for
// concurrent use.
//
// Two engines are provided:
//
//   - [HarfBuzz] uses the HarfBuzz port from go-text/typesetting and applies
//     ligatures, kerning and mark positioning. It also implements [Wrapper].
//   - [Identity] maps each codepoint to its nominal glyph with no
//     contextual processing.
package engine
