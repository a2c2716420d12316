package runs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpans_Cursor(t *testing.T) {
	it := FromSpans(Span[int]{End: 2, Value: 7}, Span[int]{End: 5, Value: 9})

	// Positioned on the first run without calling Next.
	assert.Equal(t, 2, it.End())
	assert.Equal(t, 7, it.Current())

	assert.True(t, it.Next())
	assert.Equal(t, 5, it.End())
	assert.Equal(t, 9, it.Current())

	assert.False(t, it.Next(), "no run after the last")
	assert.Equal(t, 5, it.End(), "cursor unchanged at end")

	it.Reset()
	assert.Equal(t, 2, it.End())
	assert.Equal(t, 2, it.Len())
}

func TestSpans_EmptyHasOneRun(t *testing.T) {
	it := FromSpans[string]()
	assert.Equal(t, 0, it.End())
	assert.Equal(t, "", it.Current())
	assert.False(t, it.Next())
}

func TestSpans_InvalidPanics(t *testing.T) {
	tests := []struct {
		name  string
		spans []Span[int]
	}{
		{"decreasing", []Span[int]{{End: 3}, {End: 2}}},
		{"repeated", []Span[int]{{End: 3}, {End: 3}}},
		{"negative", []Span[int]{{End: -1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Panics(t, func() { FromSpans(tt.spans...) })
		})
	}
}

func TestSpans_AllIsCopy(t *testing.T) {
	it := FromSpans(Span[int]{End: 1, Value: 1})
	all := it.All()
	all[0].Value = 42
	assert.Equal(t, 1, it.Current())
}

func TestCompress(t *testing.T) {
	got := compress([]int{1, 1, 2, 2, 2, 1}, equalValues[int], 0).All()
	assert.Equal(t, []Span[int]{{End: 2, Value: 1}, {End: 5, Value: 2}, {End: 6, Value: 1}}, got)

	empty := compress(nil, equalValues[int], 5).All()
	assert.Equal(t, []Span[int]{{End: 0, Value: 5}}, empty)
}

func TestLevel(t *testing.T) {
	assert.False(t, Level(0).IsRTL())
	assert.True(t, Level(1).IsRTL())
	assert.False(t, Level(2).IsRTL())
	assert.Equal(t, RightToLeft, Level(3).Direction())
	assert.Equal(t, LeftToRight, Level(2).Direction())
}

func TestDirection(t *testing.T) {
	assert.Equal(t, "LTR", LeftToRight.String())
	assert.Equal(t, "RTL", RightToLeft.String())
	assert.Equal(t, "Unknown", Direction(9).String())
	assert.Equal(t, Level(0), LeftToRight.Level())
	assert.Equal(t, Level(1), RightToLeft.Level())
}
