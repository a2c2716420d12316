package font

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func loadGoRegular(t *testing.T) *Source {
	t.Helper()
	src, err := NewSource(goregular.TTF)
	require.NoError(t, err)
	return src
}

func TestNewSource(t *testing.T) {
	src := loadGoRegular(t)
	assert.Equal(t, "Go", src.Name())
	assert.Positive(t, src.NumGlyphs())
	assert.Positive(t, src.UnitsPerEm())
	assert.NotZero(t, src.ID())
	assert.Equal(t, 0, src.Index())
	assert.Len(t, src.Data(), len(goregular.TTF))
}

func TestNewSource_UniqueIDs(t *testing.T) {
	a := loadGoRegular(t)
	b := loadGoRegular(t)
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestNewSource_Errors(t *testing.T) {
	_, err := NewSource(nil)
	assert.ErrorIs(t, err, ErrEmptyFontData)

	_, err = NewSource([]byte("definitely not a font"))
	assert.ErrorIs(t, err, ErrInvalidFont)
}

func TestNewSource_WithName(t *testing.T) {
	src, err := NewSource(goregular.TTF, WithName("Fixture"))
	require.NoError(t, err)
	assert.Equal(t, "Fixture", src.Name())
}

func TestNewSourceFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "go.ttf")
	require.NoError(t, os.WriteFile(path, goregular.TTF, 0o600))

	src, err := NewSourceFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Go", src.Name())

	_, err = NewSourceFromFile(filepath.Join(t.TempDir(), "missing.ttf"))
	assert.Error(t, err)
}

func TestSource_DataIsCopied(t *testing.T) {
	data := make([]byte, len(goregular.TTF))
	copy(data, goregular.TTF)
	src, err := NewSource(data)
	require.NoError(t, err)

	data[0] ^= 0xff
	assert.Equal(t, goregular.TTF[0], src.Data()[0])
}

func TestSource_Close(t *testing.T) {
	src := loadGoRegular(t)
	f := src.Font(16)
	require.True(t, f.HasGlyph('A'))

	require.NoError(t, src.Close())
	assert.Nil(t, src.Data())
	assert.False(t, f.HasGlyph('A'))
	assert.Zero(t, f.Advance(1))
	assert.Equal(t, Metrics{}, f.Metrics())
}

func TestSource_CopyPanics(t *testing.T) {
	src := loadGoRegular(t)
	cp := *src //nolint:govet // copying on purpose
	assert.Panics(t, func() { cp.Name() })
}

func TestSource_NilFontPanics(t *testing.T) {
	var src *Source
	assert.Panics(t, func() { src.Font(12) })
}

func TestRegisterParser(t *testing.T) {
	RegisterParser("test-ximage", &ximageParser{})
	src, err := NewSource(goregular.TTF, WithParser("test-ximage"))
	require.NoError(t, err)
	assert.True(t, src.HasGlyph('x'))

	// Unknown parsers fall back to the default.
	src, err = NewSource(goregular.TTF, WithParser("nope"))
	require.NoError(t, err)
	assert.True(t, src.HasGlyph('x'))
}
