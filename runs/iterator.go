package runs

import (
	"fmt"

	"github.com/go-text/typesetting/language"
	xlanguage "golang.org/x/text/language"

	"github.com/gogpu/shaper/font"
)

// Iterator is a cursor over runs of one attribute.
type Iterator[T any] interface {
	// End returns the end offset of the current run.
	End() int

	// Current returns the attribute value of the current run.
	Current() T

	// Next moves to the following run. It returns false, leaving the
	// cursor unchanged, when the current run is the last one.
	Next() bool
}

// Iterator kinds consumed by Merge.
type (
	FontIterator     = Iterator[*font.Font]
	BidiIterator     = Iterator[Level]
	ScriptIterator   = Iterator[language.Script]
	LanguageIterator = Iterator[xlanguage.Tag]
)

// Span is one run of a Spans iterator: it ends at End and carries Value.
// A span starts where the previous one ends.
type Span[T any] struct {
	End   int
	Value T
}

// Spans is an Iterator over a fixed list of spans. It backs all default
// iterators and is the way callers supply their own run boundaries.
type Spans[T any] struct {
	spans []Span[T]
	i     int
}

// FromSpans returns an iterator over spans. Span ends must be strictly
// increasing; the single span of empty text ends at 0. With no spans the
// iterator has one [0, 0) run with the zero value.
func FromSpans[T any](spans ...Span[T]) *Spans[T] {
	if len(spans) == 0 {
		return &Spans[T]{spans: []Span[T]{{}}}
	}
	prev := 0
	for i, s := range spans {
		if s.End < prev || (i > 0 && s.End == prev) || s.End < 0 {
			panic(fmt.Sprintf("runs: span %d ends at %d, not after %d", i, s.End, prev))
		}
		prev = s.End
	}
	cp := make([]Span[T], len(spans))
	copy(cp, spans)
	return &Spans[T]{spans: cp}
}

// End implements Iterator.End.
func (s *Spans[T]) End() int { return s.spans[s.i].End }

// Current implements Iterator.Current.
func (s *Spans[T]) Current() T { return s.spans[s.i].Value }

// Next implements Iterator.Next.
func (s *Spans[T]) Next() bool {
	if s.i+1 >= len(s.spans) {
		return false
	}
	s.i++
	return true
}

// Reset positions the iterator on its first run again.
func (s *Spans[T]) Reset() { s.i = 0 }

// Len returns the number of runs.
func (s *Spans[T]) Len() int { return len(s.spans) }

// All returns a copy of the spans.
func (s *Spans[T]) All() []Span[T] {
	out := make([]Span[T], len(s.spans))
	copy(out, s.spans)
	return out
}

// compress collapses per-codepoint values into spans, starting a new span
// whenever the value changes.
func compress[T any](values []T, equal func(a, b T) bool, empty T) *Spans[T] {
	if len(values) == 0 {
		return &Spans[T]{spans: []Span[T]{{End: 0, Value: empty}}}
	}
	spans := make([]Span[T], 0, 4)
	cur := values[0]
	for i := 1; i < len(values); i++ {
		if !equal(cur, values[i]) {
			spans = append(spans, Span[T]{End: i, Value: cur})
			cur = values[i]
		}
	}
	spans = append(spans, Span[T]{End: len(values), Value: cur})
	return &Spans[T]{spans: spans}
}

func equalValues[T comparable](a, b T) bool { return a == b }
