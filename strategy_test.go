package shaper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrategy(t *testing.T) {
	tests := []struct {
		s        Strategy
		name     string
		wraps    bool
		reorders bool
	}{
		{Primitive, "Primitive", true, true},
		{ShapeThenWrap, "ShapeThenWrap", true, true},
		{ShapeDontWrapOrReorder, "ShapeDontWrapOrReorder", false, false},
		{ShaperDrivenWrapper, "ShaperDrivenWrapper", true, true},
		{PlatformNative, "PlatformNative", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.s.String())
			assert.Equal(t, tt.wraps, tt.s.Wraps())
			assert.Equal(t, tt.reorders, tt.s.Reorders())

			parsed, ok := ParseStrategy(tt.name)
			assert.True(t, ok)
			assert.Equal(t, tt.s, parsed)
		})
	}
	assert.Equal(t, "Unknown", Strategy(99).String())
}

func TestParseStrategy_Short(t *testing.T) {
	for name, want := range map[string]Strategy{
		"wrap":   ShapeThenWrap,
		"nowrap": ShapeDontWrapOrReorder,
		"driven": ShaperDrivenWrapper,
		"native": PlatformNative,
	} {
		got, ok := ParseStrategy(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}
	_, ok := ParseStrategy("fancy")
	assert.False(t, ok)
}
