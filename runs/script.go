package runs

import (
	"github.com/go-text/typesetting/language"
	"golang.org/x/text/unicode/bidi"
)

// NewScriptRuns splits text by Unicode script.
//
// Codepoints whose script is Common or Inherited (spaces, punctuation,
// digits, combining marks) take the script of the run they appear in.
// A closing bracket takes the script in effect at its opening bracket.
// Leading ambiguous codepoints take the first concrete script of the text.
func NewScriptRuns(text []rune) *Spans[language.Script] {
	scripts := make([]language.Script, len(text))

	cur := language.Common
	var open []language.Script
	for i, r := range text {
		sc := language.LookupScript(r)
		props, _ := bidi.LookupRune(r)

		if isAmbiguousScript(sc) {
			sc = cur
			if props.IsBracket() {
				if props.IsOpeningBracket() {
					open = append(open, cur)
				} else if n := len(open); n > 0 {
					if outer := open[n-1]; outer != language.Common {
						sc = outer
						cur = outer
					}
					open = open[:n-1]
				}
			}
		} else {
			cur = sc
		}
		scripts[i] = sc
	}

	backfillLeading(scripts)
	return compress(scripts, equalValues[language.Script], language.Common)
}

// backfillLeading assigns the first concrete script to the leading run of
// Common codepoints.
func backfillLeading(scripts []language.Script) {
	first := -1
	for i, sc := range scripts {
		if sc != language.Common {
			first = i
			break
		}
	}
	if first <= 0 {
		return
	}
	for i := 0; i < first; i++ {
		scripts[i] = scripts[first]
	}
}

func isAmbiguousScript(sc language.Script) bool {
	return sc == language.Common || sc == language.Inherited || sc == language.Unknown
}
