package shaper

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	ot "github.com/go-text/typesetting/font/opentype"

	"github.com/gogpu/shaper/engine"
	"github.com/gogpu/shaper/runs"
)

// Feature is an OpenType feature setting applied to the codepoint range
// [Start, End). A global feature covers [0, math.MaxInt).
type Feature struct {
	Tag   ot.Tag
	Value uint32
	Start int
	End   int
}

// NewFeature returns a feature applied to the whole text.
func NewFeature(tag string, value uint32) (Feature, error) {
	return NewRangeFeature(tag, value, 0, math.MaxInt)
}

// NewRangeFeature returns a feature applied to [start, end).
func NewRangeFeature(tag string, value uint32, start, end int) (Feature, error) {
	t, err := parseTag(tag)
	if err != nil {
		return Feature{}, err
	}
	if start < 0 || end < start {
		return Feature{}, fmt.Errorf("%w: range [%d,%d)", ErrInvalidFeature, start, end)
	}
	return Feature{Tag: t, Value: value, Start: start, End: end}, nil
}

// IsGlobal reports whether f covers any text.
func (f Feature) IsGlobal() bool {
	return f.Start == 0 && f.End == math.MaxInt
}

// String formats f in the syntax accepted by ParseFeature.
func (f Feature) String() string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(f.Tag.String(), " "))
	if !f.IsGlobal() {
		b.WriteByte('[')
		if f.Start > 0 {
			b.WriteString(strconv.Itoa(f.Start))
		}
		b.WriteByte(':')
		if f.End != math.MaxInt {
			b.WriteString(strconv.Itoa(f.End))
		}
		b.WriteByte(']')
	}
	if f.Value != 1 {
		b.WriteByte('=')
		b.WriteString(strconv.FormatUint(uint64(f.Value), 10))
	}
	return b.String()
}

// ParseFeature parses a feature in HarfBuzz syntax:
//
//	kern       enable
//	+kern      enable
//	-kern      disable
//	kern=0     disable
//	aalt=2     set value
//	kern[3:5]  enable for [3, 5)
//	kern[3]    enable for [3, 4)
//	kern[3:]   enable from 3
//
// Tags shorter than four characters are padded with spaces.
func ParseFeature(s string) (Feature, error) {
	orig := s
	s = strings.TrimSpace(s)
	value := uint32(1)
	switch {
	case strings.HasPrefix(s, "-"):
		value = 0
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	if i := strings.IndexByte(s, '='); i >= 0 {
		v, err := parseFeatureValue(strings.TrimSpace(s[i+1:]))
		if err != nil {
			return Feature{}, fmt.Errorf("%w: %q: %v", ErrInvalidFeature, orig, err)
		}
		value = v
		s = s[:i]
	}

	start, end := 0, math.MaxInt
	if i := strings.IndexByte(s, '['); i >= 0 {
		if !strings.HasSuffix(s, "]") {
			return Feature{}, fmt.Errorf("%w: %q: unterminated range", ErrInvalidFeature, orig)
		}
		var err error
		start, end, err = parseFeatureRange(s[i+1 : len(s)-1])
		if err != nil {
			return Feature{}, fmt.Errorf("%w: %q: %v", ErrInvalidFeature, orig, err)
		}
		s = s[:i]
	}

	s = strings.Trim(strings.TrimSpace(s), `"'`)
	f, err := NewRangeFeature(s, value, start, end)
	if err != nil {
		return Feature{}, fmt.Errorf("%w: %q", ErrInvalidFeature, orig)
	}
	return f, nil
}

// ParseFeatures parses a comma-separated list of features.
// Empty items are skipped.
func ParseFeatures(s string) ([]Feature, error) {
	var out []Feature
	for _, item := range strings.Split(s, ",") {
		if strings.TrimSpace(item) == "" {
			continue
		}
		f, err := ParseFeature(item)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func parseTag(tag string) (ot.Tag, error) {
	if len(tag) == 0 || len(tag) > 4 {
		return 0, fmt.Errorf("%w: tag %q", ErrInvalidFeature, tag)
	}
	for i := 0; i < len(tag); i++ {
		if tag[i] < 0x20 || tag[i] > 0x7e {
			return 0, fmt.Errorf("%w: tag %q", ErrInvalidFeature, tag)
		}
	}
	return ot.MustNewTag(tag + strings.Repeat(" ", 4-len(tag))), nil
}

func parseFeatureValue(s string) (uint32, error) {
	switch s {
	case "on", "true":
		return 1, nil
	case "off", "false":
		return 0, nil
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

func parseFeatureRange(s string) (start, end int, err error) {
	lo, hi, hasColon := strings.Cut(s, ":")
	lo, hi = strings.TrimSpace(lo), strings.TrimSpace(hi)
	start, end = 0, math.MaxInt
	if lo != "" {
		if start, err = strconv.Atoi(lo); err != nil {
			return 0, 0, err
		}
	}
	switch {
	case !hasColon:
		if lo == "" {
			return 0, math.MaxInt, nil
		}
		end = start + 1
	case hi != "":
		if end, err = strconv.Atoi(hi); err != nil {
			return 0, 0, err
		}
	}
	if start < 0 || end < start {
		return 0, 0, fmt.Errorf("range [%d,%d)", start, end)
	}
	return start, end, nil
}

// segment is a run cut at feature boundaries, with the features active over
// all of it.
type segment struct {
	runs.Run
	features []engine.Feature
}

// splitByFeatures cuts run at every feature boundary inside it. Where several
// features with the same tag overlap, the one listed last wins; the active
// list keeps the order in which tags first appear in features.
func splitByFeatures(run runs.Run, features []Feature) []segment {
	cuts := []int{run.Start, run.End}
	for _, f := range features {
		for _, c := range [...]int{f.Start, f.End} {
			if c > run.Start && c < run.End {
				cuts = append(cuts, c)
			}
		}
	}
	slices.Sort(cuts)
	cuts = slices.Compact(cuts)

	out := make([]segment, 0, len(cuts)-1)
	for i := 0; i+1 < len(cuts); i++ {
		sub := run
		sub.Start, sub.End = cuts[i], cuts[i+1]
		out = append(out, segment{Run: sub, features: activeFeatures(features, sub.Start, sub.End)})
	}
	return out
}

// activeFeatures returns the features covering [start, end).
func activeFeatures(features []Feature, start, end int) []engine.Feature {
	var active []engine.Feature
	for _, f := range features {
		if f.Start > start || f.End < end {
			continue
		}
		replaced := false
		for i := range active {
			if active[i].Tag == f.Tag {
				active[i].Value = f.Value
				replaced = true
				break
			}
		}
		if !replaced {
			active = append(active, engine.Feature{Tag: f.Tag, Value: f.Value})
		}
	}
	return active
}
