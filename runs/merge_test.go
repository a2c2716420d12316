package runs

import (
	"math/rand/v2"
	"slices"
	"sort"
	"testing"

	"github.com/go-text/typesetting/language"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xlanguage "golang.org/x/text/language"

	"github.com/gogpu/shaper/font"
)

func TestMerge_UniformTextIsOneRun(t *testing.T) {
	regular, _ := loadSources(t)
	f := regular.Font(16)
	mgr := font.NewCollection(regular)

	for _, text := range []string{"a", "Hello, World", "the quick brown fox jumps over the lazy dog"} {
		t.Run(text, func(t *testing.T) {
			rs := []rune(text)
			fonts, bidi, scripts, langs := Defaults(rs, f, mgr, LeftToRight, xlanguage.English)

			got := slices.Collect(Merge(len(rs), fonts, bidi, scripts, langs))
			require.Len(t, got, 1)
			assert.Equal(t, 0, got[0].Start)
			assert.Equal(t, len(rs), got[0].End)
			assert.Same(t, f, got[0].Font)
			assert.Equal(t, Level(0), got[0].Level)
			assert.Equal(t, language.Latin, got[0].Script)
			assert.Equal(t, xlanguage.English, got[0].Language)
		})
	}
}

func TestMerge_EmptyText(t *testing.T) {
	regular, _ := loadSources(t)
	fonts, bidi, scripts, langs := Defaults(nil, regular.Font(12), font.NewCollection(regular), LeftToRight, xlanguage.English)
	got := slices.Collect(Merge(0, fonts, bidi, scripts, langs))
	assert.Empty(t, got)
}

func TestMerge_MixedDirection(t *testing.T) {
	regular, _ := loadSources(t)
	f := regular.Font(16)
	rs := []rune("abcאבג")
	fonts, bidi, scripts, langs := Defaults(rs, f, font.NewCollection(regular), LeftToRight, xlanguage.English)

	got := slices.Collect(Merge(len(rs), fonts, bidi, scripts, langs))
	require.Len(t, got, 2)
	assert.Equal(t, Run{Start: 0, End: 3, Font: f, Level: 0, Script: language.Latin, Language: xlanguage.English}, got[0])
	assert.Equal(t, Run{Start: 3, End: 6, Font: f, Level: 1, Script: language.Hebrew, Language: xlanguage.English}, got[1])
}

// TestMerge_BoundaryUnion checks that the merged boundaries are exactly the
// union of the input boundaries and that the runs are maximal.
func TestMerge_BoundaryUnion(t *testing.T) {
	regular, mono := loadSources(t)
	fontValues := []*font.Font{regular.Font(12), mono.Font(12)}
	levelValues := []Level{0, 1}
	scriptValues := []language.Script{language.Latin, language.Greek}
	langValues := []xlanguage.Tag{xlanguage.English, xlanguage.French}

	rng := rand.New(rand.NewPCG(1, 2))
	for iter := 0; iter < 200; iter++ {
		length := 1 + rng.IntN(40)
		union := map[int]bool{length: true}

		fonts := randomSpans(rng, length, fontValues, union)
		bidi := randomSpans(rng, length, levelValues, union)
		scripts := randomSpans(rng, length, scriptValues, union)
		langs := randomSpans(rng, length, langValues, union)

		got := slices.Collect(Merge(length, fonts, bidi, scripts, langs))

		want := make([]int, 0, len(union))
		for b := range union {
			want = append(want, b)
		}
		sort.Ints(want)

		ends := make([]int, len(got))
		for i, r := range got {
			ends[i] = r.End
			if i == 0 {
				require.Equal(t, 0, r.Start)
			} else {
				require.Equal(t, got[i-1].End, r.Start, "runs must be contiguous")
				require.False(t, got[i-1].SameAttributes(r), "runs must be maximal: %v %v", got[i-1], r)
			}
		}
		require.Equal(t, want, ends, "iteration %d", iter)
	}
}

// randomSpans returns spans over [0, length) whose adjacent values differ,
// recording every boundary in union.
func randomSpans[T any](rng *rand.Rand, length int, values []T, union map[int]bool) *Spans[T] {
	var spans []Span[T]
	v := rng.IntN(len(values))
	for end := 1; end <= length; end++ {
		if end == length || rng.IntN(4) == 0 {
			spans = append(spans, Span[T]{End: end, Value: values[v]})
			union[end] = true
			v = (v + 1) % len(values)
		}
	}
	return FromSpans(spans...)
}

func TestMerge_CoalescesEqualNeighbors(t *testing.T) {
	regular, _ := loadSources(t)
	f := regular.Font(12)

	fonts := FromSpans(Span[*font.Font]{End: 2, Value: f}, Span[*font.Font]{End: 4, Value: regular.Font(12)})
	bidi := FromSpans(Span[Level]{End: 1, Value: 0}, Span[Level]{End: 4, Value: 0})
	scripts := FromSpans(Span[language.Script]{End: 4, Value: language.Latin})
	langs := NewLanguageRuns(4, xlanguage.English)

	got := slices.Collect(Merge(4, fonts, bidi, scripts, langs))
	require.Len(t, got, 1)
	assert.Equal(t, 0, got[0].Start)
	assert.Equal(t, 4, got[0].End)
}

func TestMerge_StopsWhenYieldReturnsFalse(t *testing.T) {
	regular, _ := loadSources(t)
	f := regular.Font(12)
	fonts := FromSpans(Span[*font.Font]{End: 3, Value: f})
	bidi := FromSpans(Span[Level]{End: 1, Value: 0}, Span[Level]{End: 2, Value: 1}, Span[Level]{End: 3, Value: 0})
	scripts := FromSpans(Span[language.Script]{End: 3, Value: language.Latin})
	langs := NewLanguageRuns(3, xlanguage.English)

	var got []Run
	for r := range Merge(3, fonts, bidi, scripts, langs) {
		got = append(got, r)
		break
	}
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].End)
}

func TestMerge_ContractViolationsPanic(t *testing.T) {
	regular, _ := loadSources(t)
	f := regular.Font(12)
	okFonts := func(n int) FontIterator { return FromSpans(Span[*font.Font]{End: n, Value: f}) }
	okScripts := func(n int) ScriptIterator { return FromSpans(Span[language.Script]{End: n, Value: language.Latin}) }
	okLangs := func(n int) LanguageIterator { return NewLanguageRuns(n, xlanguage.English) }

	tests := []struct {
		name string
		bidi BidiIterator
	}{
		{"end beyond text", FromSpans(Span[Level]{End: 5})},
		{"ends before text", FromSpans(Span[Level]{End: 2})},
		{"zero-length run", FromSpans(Span[Level]{End: 0})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Panics(t, func() {
				for range Merge(4, okFonts(4), tt.bidi, okScripts(4), okLangs(4)) {
				}
			})
		})
	}
}

func TestRun_String(t *testing.T) {
	r := Run{Start: 1, End: 3, Level: 1, Script: language.Hebrew, Language: xlanguage.Hebrew}
	assert.Contains(t, r.String(), "[1,3)")
	assert.Equal(t, 2, r.Len())
}

func BenchmarkMerge(b *testing.B) {
	regular, _ := loadSources(b)
	f := regular.Font(12)
	mgr := font.NewCollection(regular)
	rs := []rune("The quick brown fox אבג jumps over the lazy dog αβγ 123.")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		fonts, bidi, scripts, langs := Defaults(rs, f, mgr, LeftToRight, xlanguage.English)
		for range Merge(len(rs), fonts, bidi, scripts, langs) {
		}
	}
}
