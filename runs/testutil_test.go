package runs

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/shaper/font"
)

func loadSources(t testing.TB) (regular, mono *font.Source) {
	t.Helper()
	regular, err := font.NewSource(goregular.TTF)
	require.NoError(t, err)
	mono, err = font.NewSource(gomono.TTF)
	require.NoError(t, err)
	return regular, mono
}

// emptySource returns a closed source, whose fonts cover no codepoint.
func emptySource(t testing.TB) *font.Source {
	t.Helper()
	src, err := font.NewSource(goregular.TTF, font.WithName("empty"))
	require.NoError(t, err)
	require.NoError(t, src.Close())
	return src
}

func collect[T any](it *Spans[T]) []Span[T] {
	return it.All()
}
