package runs

import (
	"golang.org/x/text/unicode/bidi"
)

// maxDepth is the deepest explicit embedding level.
const maxDepth = 125

// NewBidiRuns runs the Unicode bidirectional algorithm over text with an
// explicit paragraph direction and returns one run per resolved level.
//
// Text is split into paragraphs at paragraph separators; each separator
// takes the base level.
func NewBidiRuns(text []rune, base Direction) *Spans[Level] {
	levels := make([]Level, len(text))
	baseLevel := base.Level()

	start := 0
	for i, r := range text {
		if isParagraphSeparator(r) {
			resolveParagraph(text[start:i], levels[start:i], base)
			levels[i] = baseLevel
			start = i + 1
		}
	}
	resolveParagraph(text[start:], levels[start:], base)

	return compress(levels, equalValues[Level], baseLevel)
}

// resolveParagraph fills levels for one paragraph.
//
// The bidi package resolves the direction of every character but reports
// runs by direction only. Levels are rebuilt from the explicit embedding
// levels and the resolved numeric types: a character keeps its embedding
// level when its direction matches it, goes one level up when it does not,
// and a left-to-right number inside an even level goes two levels up.
func resolveParagraph(text []rune, levels []Level, base Direction) {
	baseLevel := base.Level()
	for i := range levels {
		levels[i] = baseLevel
	}
	if len(text) == 0 {
		return
	}

	classes := make([]bidi.Class, len(text))
	for i, r := range text {
		props, _ := bidi.LookupRune(r)
		classes[i] = props.Class()
	}
	embedding := explicitLevels(classes, baseLevel)
	numeric := resolveNumbers(classes, embedding, baseLevel)

	rtl, ok := resolvedDirections(text, base)
	if !ok {
		return
	}

	for i := range text {
		if removedByX9(classes[i]) {
			if i > 0 {
				levels[i] = levels[i-1]
			}
			continue
		}
		e := embedding[i]
		switch {
		case e.IsRTL() != rtl[i]:
			levels[i] = e + 1
		case !e.IsRTL() && numeric[i]:
			levels[i] = e + 2
		default:
			levels[i] = e
		}
	}
}

// resolvedDirections reports, per character, whether the bidi package
// resolved it right-to-left.
//
// The paragraph is prefixed with a strong directional mark so the package,
// which detects the paragraph direction from the first strong character,
// resolves it at the requested base level.
func resolvedDirections(text []rune, base Direction) ([]bool, bool) {
	mark := '\u200e' // LRM
	if base == RightToLeft {
		mark = '\u200f' // RLM
	}
	marked := make([]rune, 0, len(text)+1)
	marked = append(marked, mark)
	marked = append(marked, text...)

	var p bidi.Paragraph
	if _, err := p.SetString(string(marked), bidi.DefaultDirection(toBidiDirection(base))); err != nil {
		return nil, false
	}
	ordering, err := p.Order()
	if err != nil {
		return nil, false
	}

	// run.Pos() returns rune indices, end inclusive.
	rtl := make([]bool, len(text))
	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		if run.Direction() != bidi.RightToLeft {
			continue
		}
		startRune, endRune := run.Pos()
		for j := startRune; j <= endRune; j++ {
			if k := j - 1; k >= 0 && k < len(rtl) {
				rtl[k] = true
			}
		}
	}
	return rtl, true
}

type embeddingStatus struct {
	level    Level
	override bidi.Class // L, R or ON for none
	isolate  bool
}

// explicitLevels applies the explicit embedding rules X1 to X8. Overridden
// characters have their class replaced in classes.
func explicitLevels(classes []bidi.Class, base Level) []Level {
	levels := make([]Level, len(classes))
	stack := make([]embeddingStatus, 1, 8)
	stack[0] = embeddingStatus{level: base, override: bidi.ON}
	overflowIsolates, overflowEmbeddings, validIsolates := 0, 0, 0

	for i, c := range classes {
		top := stack[len(stack)-1]
		switch c {
		case bidi.RLE, bidi.LRE, bidi.RLO, bidi.LRO, bidi.RLI, bidi.LRI, bidi.FSI:
			isolate := c == bidi.RLI || c == bidi.LRI || c == bidi.FSI
			rtl := c == bidi.RLE || c == bidi.RLO || c == bidi.RLI
			if c == bidi.FSI {
				rtl = firstStrongRTL(classes[i+1:])
			}
			levels[i] = top.level
			if isolate && top.override != bidi.ON {
				classes[i] = top.override
			}

			next := top.level + 1
			if rtl {
				next |= 1
			} else {
				next = (next + 1) &^ 1
			}
			switch {
			case next <= maxDepth && overflowIsolates == 0 && overflowEmbeddings == 0:
				override := bidi.ON
				switch c {
				case bidi.RLO:
					override = bidi.R
				case bidi.LRO:
					override = bidi.L
				}
				stack = append(stack, embeddingStatus{level: next, override: override, isolate: isolate})
				if isolate {
					validIsolates++
				}
			case isolate:
				overflowIsolates++
			case overflowIsolates == 0:
				overflowEmbeddings++
			}

		case bidi.PDI:
			switch {
			case overflowIsolates > 0:
				overflowIsolates--
			case validIsolates > 0:
				overflowEmbeddings = 0
				for !stack[len(stack)-1].isolate {
					stack = stack[:len(stack)-1]
				}
				stack = stack[:len(stack)-1]
				validIsolates--
			}
			top = stack[len(stack)-1]
			levels[i] = top.level
			if top.override != bidi.ON {
				classes[i] = top.override
			}

		case bidi.PDF:
			switch {
			case overflowIsolates > 0:
			case overflowEmbeddings > 0:
				overflowEmbeddings--
			case !top.isolate && len(stack) > 1:
				stack = stack[:len(stack)-1]
			}
			levels[i] = top.level

		case bidi.BN:
			levels[i] = top.level

		default:
			levels[i] = top.level
			if top.override != bidi.ON {
				classes[i] = top.override
			}
		}
	}
	return levels
}

// firstStrongRTL reports whether the first strong character before the
// matching isolate terminator is right-to-left. Nested isolates are skipped.
func firstStrongRTL(classes []bidi.Class) bool {
	depth := 0
	for _, c := range classes {
		switch c {
		case bidi.RLI, bidi.LRI, bidi.FSI:
			depth++
		case bidi.PDI:
			if depth == 0 {
				return false
			}
			depth--
		case bidi.L:
			if depth == 0 {
				return false
			}
		case bidi.R, bidi.AL:
			if depth == 0 {
				return true
			}
		}
	}
	return false
}

// resolveNumbers applies the weak type rules W1 to W7 within each level run
// and reports which characters resolve to a European or Arabic number.
func resolveNumbers(classes []bidi.Class, levels []Level, base Level) []bool {
	numeric := make([]bool, len(classes))

	var idx []int
	prevLevel := base
	flush := func() {
		if len(idx) == 0 {
			return
		}
		lvl := levels[idx[0]]
		sos := max(prevLevel, lvl)
		for i, t := range weakTypes(classes, idx, sos.IsRTL()) {
			numeric[idx[i]] = t == bidi.EN || t == bidi.AN
		}
		prevLevel = lvl
		idx = idx[:0]
	}

	for i, c := range classes {
		if removedByX9(c) {
			continue
		}
		if len(idx) > 0 && levels[i] != levels[idx[0]] {
			flush()
		}
		idx = append(idx, i)
	}
	flush()
	return numeric
}

// weakTypes resolves the weak types of one level run. sosRTL is the
// direction at the start of the run.
func weakTypes(classes []bidi.Class, idx []int, sosRTL bool) []bidi.Class {
	sos := bidi.L
	if sosRTL {
		sos = bidi.R
	}
	t := make([]bidi.Class, len(idx))
	for i, k := range idx {
		t[i] = classes[k]
	}

	// W1
	for i := range t {
		if t[i] != bidi.NSM {
			continue
		}
		switch {
		case i == 0:
			t[i] = sos
		case isIsolateControl(t[i-1]):
			t[i] = bidi.ON
		default:
			t[i] = t[i-1]
		}
	}

	// W2, W3
	strong := sos
	for i := range t {
		switch t[i] {
		case bidi.L, bidi.R, bidi.AL:
			strong = t[i]
		case bidi.EN:
			if strong == bidi.AL {
				t[i] = bidi.AN
			}
		}
	}
	for i := range t {
		if t[i] == bidi.AL {
			t[i] = bidi.R
		}
	}

	// W4
	for i := 1; i+1 < len(t); i++ {
		prev, next := t[i-1], t[i+1]
		switch {
		case t[i] == bidi.ES && prev == bidi.EN && next == bidi.EN:
			t[i] = bidi.EN
		case t[i] == bidi.CS && prev == next && (prev == bidi.EN || prev == bidi.AN):
			t[i] = prev
		}
	}

	// W5
	for i := 0; i < len(t); {
		if t[i] != bidi.ET {
			i++
			continue
		}
		j := i
		for j < len(t) && t[j] == bidi.ET {
			j++
		}
		if (i > 0 && t[i-1] == bidi.EN) || (j < len(t) && t[j] == bidi.EN) {
			for k := i; k < j; k++ {
				t[k] = bidi.EN
			}
		}
		i = j
	}

	// W6
	for i := range t {
		switch t[i] {
		case bidi.ES, bidi.ET, bidi.CS:
			t[i] = bidi.ON
		}
	}

	// W7
	strong = sos
	for i := range t {
		switch t[i] {
		case bidi.L, bidi.R:
			strong = t[i]
		case bidi.EN:
			if strong == bidi.L {
				t[i] = bidi.L
			}
		}
	}
	return t
}

// removedByX9 reports whether characters of class c take no part in
// implicit level resolution.
func removedByX9(c bidi.Class) bool {
	switch c {
	case bidi.RLE, bidi.LRE, bidi.RLO, bidi.LRO, bidi.PDF, bidi.BN:
		return true
	}
	return false
}

func isIsolateControl(c bidi.Class) bool {
	switch c {
	case bidi.RLI, bidi.LRI, bidi.FSI, bidi.PDI:
		return true
	}
	return false
}

func toBidiDirection(d Direction) bidi.Direction {
	if d == RightToLeft {
		return bidi.RightToLeft
	}
	return bidi.LeftToRight
}

// isParagraphSeparator reports whether r has bidi class B.
func isParagraphSeparator(r rune) bool {
	switch r {
	case '\n', '\r', '\u001c', '\u001d', '\u001e', '\u0085', '\u2029':
		return true
	}
	return false
}
