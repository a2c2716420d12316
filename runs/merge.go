package runs

import (
	"fmt"
	"iter"

	"github.com/go-text/typesetting/language"
	xlanguage "golang.org/x/text/language"

	"github.com/gogpu/shaper/font"
)

// Run is a maximal span of text sharing one font, bidi level, script and
// language.
type Run struct {
	Start, End int

	Font     *font.Font
	Level    Level
	Script   language.Script
	Language xlanguage.Tag
}

// Len returns the number of codepoints in the run.
func (r Run) Len() int { return r.End - r.Start }

// SameAttributes reports whether r and o carry identical attribute values.
func (r Run) SameAttributes(o Run) bool {
	return r.Font.Equal(o.Font) &&
		r.Level == o.Level &&
		r.Script == o.Script &&
		r.Language == o.Language
}

// String returns a compact description for debugging.
func (r Run) String() string {
	return fmt.Sprintf("[%d,%d) font=%v level=%d script=%v lang=%v",
		r.Start, r.End, r.Font, r.Level, r.Script, r.Language)
}

// Merge intersects four iterators over text of the given length.
//
// At each step the smallest current end of the four iterators is the next
// boundary; the run up to it carries the iterators' current values, and
// every iterator ending at the boundary is advanced. Adjacent runs with
// identical attributes are coalesced, so the emitted runs are maximal and
// partition [0, length). Empty text yields no runs.
//
// The iterators are consumed. Iterators that end beyond length, fail to
// advance past the current offset, or run out before length violate their
// contract and cause a panic.
func Merge(length int, fonts FontIterator, bidi BidiIterator, scripts ScriptIterator, langs LanguageIterator) iter.Seq[Run] {
	return func(yield func(Run) bool) {
		var (
			pending    Run
			hasPending bool
		)
		for cursor := 0; cursor < length; {
			boundary := length
			for _, end := range [...]int{fonts.End(), bidi.End(), scripts.End(), langs.End()} {
				if end > length {
					panic(fmt.Sprintf("runs: iterator end %d exceeds text length %d", end, length))
				}
				boundary = min(boundary, end)
			}
			if boundary <= cursor {
				panic(fmt.Sprintf("runs: iterator end %d does not advance past offset %d", boundary, cursor))
			}

			run := Run{
				Start:    cursor,
				End:      boundary,
				Font:     fonts.Current(),
				Level:    bidi.Current(),
				Script:   scripts.Current(),
				Language: langs.Current(),
			}
			switch {
			case hasPending && pending.SameAttributes(run):
				pending.End = boundary
			case hasPending:
				if !yield(pending) {
					return
				}
				pending = run
			default:
				pending, hasPending = run, true
			}

			step(fonts, "font", boundary, length)
			step(bidi, "bidi", boundary, length)
			step(scripts, "script", boundary, length)
			step(langs, "language", boundary, length)
			cursor = boundary
		}
		if hasPending {
			yield(pending)
		}
	}
}

// step advances it when its current run ends at boundary.
func step[T any](it Iterator[T], name string, boundary, length int) {
	if it.End() != boundary || boundary == length {
		return
	}
	if !it.Next() {
		panic(fmt.Sprintf("runs: %s iterator ended at %d before end of text %d", name, boundary, length))
	}
}

// Defaults builds the default iterators for text.
func Defaults(text []rune, requested *font.Font, mgr font.Manager, base Direction, lang xlanguage.Tag) (FontIterator, BidiIterator, ScriptIterator, LanguageIterator) {
	return NewFontRuns(text, requested, mgr),
		NewBidiRuns(text, base),
		NewScriptRuns(text),
		NewLanguageRuns(len(text), lang)
}
