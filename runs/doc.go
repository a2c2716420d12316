// Package runs splits text into homogeneous runs.
//
// Four independent iterators report run boundaries over the same text: font
// (after fallback), bidi level, script and language. [Merge] intersects them
// into a single sequence of maximal runs, each annotated with all four
// attribute values.
//
// Iterators are forward-only cursors positioned on their first run when
// created. Offsets are rune (codepoint) indices into the text. An iterator
// over empty text has exactly one run, [0, 0).
package runs
