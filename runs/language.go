package runs

import (
	xlanguage "golang.org/x/text/language"
)

// DefaultLanguage is the language used when none is configured.
var DefaultLanguage = xlanguage.English

// NewLanguageRuns returns a single run of the given length tagged with tag.
func NewLanguageRuns(length int, tag xlanguage.Tag) *Spans[xlanguage.Tag] {
	return &Spans[xlanguage.Tag]{spans: []Span[xlanguage.Tag]{{End: length, Value: tag}}}
}

// ParseLanguage parses a BCP 47 tag, falling back to DefaultLanguage for
// empty or malformed input.
func ParseLanguage(s string) xlanguage.Tag {
	if s == "" {
		return DefaultLanguage
	}
	tag, err := xlanguage.Parse(s)
	if err != nil {
		return DefaultLanguage
	}
	return tag
}
