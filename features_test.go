package shaper

import (
	"math"
	"testing"

	ot "github.com/go-text/typesetting/font/opentype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/shaper/engine"
	"github.com/gogpu/shaper/runs"
)

func TestParseFeature(t *testing.T) {
	tests := []struct {
		in   string
		want Feature
	}{
		{"kern", Feature{Tag: ot.MustNewTag("kern"), Value: 1, End: math.MaxInt}},
		{"+smcp", Feature{Tag: ot.MustNewTag("smcp"), Value: 1, End: math.MaxInt}},
		{"-liga", Feature{Tag: ot.MustNewTag("liga"), Value: 0, End: math.MaxInt}},
		{"aalt=2", Feature{Tag: ot.MustNewTag("aalt"), Value: 2, End: math.MaxInt}},
		{"kern=off", Feature{Tag: ot.MustNewTag("kern"), Value: 0, End: math.MaxInt}},
		{"liga[0:3]=0", Feature{Tag: ot.MustNewTag("liga"), Value: 0, Start: 0, End: 3}},
		{"kern[3]", Feature{Tag: ot.MustNewTag("kern"), Value: 1, Start: 3, End: 4}},
		{"kern[3:]", Feature{Tag: ot.MustNewTag("kern"), Value: 1, Start: 3, End: math.MaxInt}},
		{"kern[:5]", Feature{Tag: ot.MustNewTag("kern"), Value: 1, Start: 0, End: 5}},
		{" \"ss01\" ", Feature{Tag: ot.MustNewTag("ss01"), Value: 1, End: math.MaxInt}},
		{"cv1", Feature{Tag: ot.MustNewTag("cv1 "), Value: 1, End: math.MaxInt}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFeature(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFeature_Invalid(t *testing.T) {
	for _, in := range []string{"", "-", "toolong", "kern=x", "kern[1:", "kern[5:2]", "kern[-1]", "k\x01rn"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseFeature(in)
			assert.ErrorIs(t, err, ErrInvalidFeature)
		})
	}
}

func TestParseFeatures(t *testing.T) {
	got, err := ParseFeatures("kern, -liga,,smcp[0:2]")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "kern", got[0].String())
	assert.Equal(t, "liga=0", got[1].String())
	assert.Equal(t, "smcp[:2]", got[2].String())

	_, err = ParseFeatures("kern,bogus!")
	assert.ErrorIs(t, err, ErrInvalidFeature)
}

func TestFeature_StringRoundTrip(t *testing.T) {
	for _, in := range []string{"kern", "liga=0", "aalt=3", "smcp[2:7]", "kern[4:]"} {
		f, err := ParseFeature(in)
		require.NoError(t, err)
		assert.Equal(t, in, f.String())
	}
}

func TestNewRangeFeature(t *testing.T) {
	f, err := NewRangeFeature("liga", 0, 2, 5)
	require.NoError(t, err)
	assert.False(t, f.IsGlobal())

	g, err := NewFeature("liga", 1)
	require.NoError(t, err)
	assert.True(t, g.IsGlobal())

	_, err = NewRangeFeature("liga", 0, 5, 2)
	assert.ErrorIs(t, err, ErrInvalidFeature)
}

func mustFeature(t *testing.T, s string) Feature {
	t.Helper()
	f, err := ParseFeature(s)
	require.NoError(t, err)
	return f
}

type segmentSummary struct {
	start, end int
	features   []engine.Feature
}

func summarize(segs []segment) []segmentSummary {
	out := make([]segmentSummary, len(segs))
	for i, s := range segs {
		out[i] = segmentSummary{s.Start, s.End, s.features}
	}
	return out
}

func TestSplitByFeatures_Ranges(t *testing.T) {
	run := runs.Run{Start: 0, End: 10}
	got := splitByFeatures(run, []Feature{mustFeature(t, "smcp[0:3]")})

	smcp := engine.Feature{Tag: ot.MustNewTag("smcp"), Value: 1}
	assert.Equal(t, []segmentSummary{
		{0, 3, []engine.Feature{smcp}},
		{3, 10, nil},
	}, summarize(got))
}

func TestSplitByFeatures_NoFeatures(t *testing.T) {
	run := runs.Run{Start: 4, End: 9}
	got := splitByFeatures(run, nil)
	assert.Equal(t, []segmentSummary{{4, 9, nil}}, summarize(got))
}

func TestSplitByFeatures_OutsideRun(t *testing.T) {
	run := runs.Run{Start: 5, End: 9}
	got := splitByFeatures(run, []Feature{mustFeature(t, "smcp[0:3]"), mustFeature(t, "kern[9:]")})
	assert.Equal(t, []segmentSummary{{5, 9, nil}}, summarize(got))
}

// Overlapping settings of one tag: the feature listed last wins, and active
// features keep the order in which their tags first appear.
func TestSplitByFeatures_LastWins(t *testing.T) {
	features := []Feature{
		mustFeature(t, "kern"),
		mustFeature(t, "liga[0:5]=0"),
		mustFeature(t, "kern[2:4]=0"),
		mustFeature(t, "liga[2:4]=1"),
	}
	got := splitByFeatures(runs.Run{Start: 0, End: 10}, features)

	kern, liga := ot.MustNewTag("kern"), ot.MustNewTag("liga")
	assert.Equal(t, []segmentSummary{
		{0, 2, []engine.Feature{{Tag: kern, Value: 1}, {Tag: liga, Value: 0}}},
		{2, 4, []engine.Feature{{Tag: kern, Value: 0}, {Tag: liga, Value: 1}}},
		{4, 5, []engine.Feature{{Tag: kern, Value: 1}, {Tag: liga, Value: 0}}},
		{5, 10, []engine.Feature{{Tag: kern, Value: 1}}},
	}, summarize(got))
}

func TestSplitByFeatures_KeepsAttributes(t *testing.T) {
	run := runs.Run{Start: 0, End: 6, Level: 1}
	for _, s := range splitByFeatures(run, []Feature{mustFeature(t, "liga[1:2]")}) {
		assert.Equal(t, runs.Level(1), s.Level)
	}
}
