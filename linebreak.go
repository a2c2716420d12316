package shaper

import (
	"math"
	"slices"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/gogpu/shaper/engine"
)

// shaped is a segment together with its engine output.
type shaped struct {
	segment
	res engine.Result
}

// lineRun is a shaped run, or part of one, placed on a line.
type lineRun struct {
	seg *shaped
	res engine.Result
}

// unit is one cluster of a shaped segment: the smallest piece a line can
// be cut into.
type unit struct {
	seg        int
	start, end int
	advance    float64
	space      bool
}

// Break opportunity kinds.
const (
	noBreak = iota
	softBreak
	hardBreak
)

// unbounded reports whether width disables soft wrapping.
func unbounded(width float64) bool {
	return width <= 0 || math.IsInf(width, 1) || math.IsNaN(width)
}

// breakLines breaks shaped segments, in logical order, into lines no wider
// than width. Break opportunities follow UAX #14 and are taken only at
// cluster boundaries. Whitespace at a break is dropped; a cluster wider than
// width goes alone on its line.
func breakLines(text []rune, segs []shaped, width float64) [][]lineRun {
	units := clusterUnits(text, segs)
	if len(units) == 0 {
		return nil
	}
	breaks := breakOpportunities(text)
	bounded := !unbounded(width)

	var (
		lines [][]lineRun
		cur   []unit
		curW  float64
	)
	flush := func() {
		if trimmed := trimSpace(cur); len(trimmed) > 0 {
			lines = append(lines, pieces(segs, trimmed))
		}
		cur, curW = cur[:0:0], 0
	}

	for wordStart := 0; wordStart < len(units); {
		wordEnd := wordStart + 1
		for wordEnd < len(units) && breaks[units[wordEnd-1].end] == noBreak {
			wordEnd++
		}
		word := units[wordStart:wordEnd]
		content := contentWidth(word)

		if bounded && len(cur) > 0 && curW+content > width {
			flush()
		}
		if bounded && len(cur) == 0 && content > width {
			for _, u := range word {
				if len(cur) > 0 && !u.space && curW+u.advance > width {
					flush()
				}
				cur = append(cur, u)
				curW += u.advance
			}
		} else {
			for _, u := range word {
				cur = append(cur, u)
				curW += u.advance
			}
		}

		if wordEnd < len(units) && breaks[word[len(word)-1].end] == hardBreak {
			flush()
		}
		wordStart = wordEnd
	}
	if len(cur) > 0 {
		if len(trimSpace(cur)) == 0 && len(lines) == 0 {
			// Whitespace-only text still yields a line.
			lines = append(lines, pieces(segs, cur))
		} else {
			flush()
		}
	}
	return lines
}

// singleLine places every segment on one line.
func singleLine(segs []shaped) [][]lineRun {
	line := make([]lineRun, 0, len(segs))
	for i := range segs {
		line = append(line, lineRun{seg: &segs[i], res: segs[i].res})
	}
	return [][]lineRun{line}
}

// clusterUnits splits every segment at its glyph cluster boundaries.
func clusterUnits(text []rune, segs []shaped) []unit {
	var units []unit
	for i, s := range segs {
		bounds := []int{s.Start}
		for _, c := range clusterStarts(s.res.Glyphs) {
			if c > s.Start && c < s.End {
				bounds = append(bounds, c)
			}
		}
		bounds = append(bounds, s.End)
		for j := 0; j+1 < len(bounds); j++ {
			u := unit{seg: i, start: bounds[j], end: bounds[j+1], space: true}
			for _, g := range s.res.Glyphs {
				if g.Cluster >= u.start && g.Cluster < u.end {
					u.advance += g.XAdvance
				}
			}
			for _, r := range text[u.start:u.end] {
				if !unicode.IsSpace(r) {
					u.space = false
					break
				}
			}
			units = append(units, u)
		}
	}
	return units
}

// clusterStarts returns the distinct cluster values of glyphs in ascending
// order.
func clusterStarts(glyphs []engine.Glyph) []int {
	out := make([]int, len(glyphs))
	for i, g := range glyphs {
		out[i] = g.Cluster
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// breakOpportunities returns, indexed by codepoint offset, the kind of line
// break allowed before that offset. The end of text is not a break.
func breakOpportunities(text []rune) []uint8 {
	breaks := make([]uint8, len(text)+1)
	str := string(text)
	state := -1
	pos := 0
	for len(str) > 0 {
		var (
			seg       string
			mustBreak bool
		)
		seg, str, mustBreak, state = uniseg.FirstLineSegmentInString(str, state)
		pos += utf8.RuneCountInString(seg)
		if len(str) == 0 {
			break
		}
		if mustBreak {
			breaks[pos] = hardBreak
		} else {
			breaks[pos] = softBreak
		}
	}
	return breaks
}

func contentWidth(units []unit) float64 {
	w := 0.0
	for _, u := range trimSpace(units) {
		w += u.advance
	}
	return w
}

func trimSpace(units []unit) []unit {
	n := len(units)
	for n > 0 && units[n-1].space {
		n--
	}
	return units[:n]
}

// pieces joins consecutive units of the same segment into line runs.
func pieces(segs []shaped, units []unit) []lineRun {
	var out []lineRun
	for i := 0; i < len(units); {
		j := i + 1
		for j < len(units) && units[j].seg == units[i].seg {
			j++
		}
		s := &segs[units[i].seg]
		out = append(out, lineRun{seg: s, res: cut(s.res, units[i].start, units[j-1].end)})
		i = j
	}
	return out
}

// cut returns the glyphs of res whose clusters fall in [start, end), in the
// same visual order.
func cut(res engine.Result, start, end int) engine.Result {
	if start == res.Start && end == res.End {
		return res
	}
	out := engine.Result{Start: start, End: end}
	for _, g := range res.Glyphs {
		if g.Cluster >= start && g.Cluster < end {
			out.Glyphs = append(out.Glyphs, g)
			out.Advance += g.XAdvance
		}
	}
	return out
}

// trimTrailingSpace drops the whitespace that ends a line in logical order.
// line is not modified.
func trimTrailingSpace(text []rune, line []lineRun) []lineRun {
	for n := len(line); n > 0; n-- {
		last := line[n-1]
		end := last.res.End
		for end > last.res.Start && unicode.IsSpace(text[end-1]) {
			end--
		}
		if end == last.res.Start {
			continue
		}
		out := slices.Clone(line[:n])
		out[n-1].res = cut(last.res, last.res.Start, end)
		return out
	}
	return nil
}
