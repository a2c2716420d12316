package shaper

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/shaper/engine"
)

// fakePlatform is a PlatformService backed by the identity engine.
type fakePlatform struct {
	engine.Identity
	name      string
	available bool
	closed    bool
	shaped    int
}

func (p *fakePlatform) Name() string    { return p.name }
func (p *fakePlatform) Available() bool { return p.available }
func (p *fakePlatform) Close() error    { p.closed = true; return nil }

func (p *fakePlatform) Shape(req engine.Request) (engine.Result, error) {
	p.shaped++
	return p.Identity.Shape(req)
}

func registerFake(t *testing.T, svc *fakePlatform) {
	t.Helper()
	require.NoError(t, RegisterPlatformService(runtime.GOOS, svc))
	t.Cleanup(func() { UnregisterPlatformService(runtime.GOOS) })
}

func TestNewPlatformNative_Unsupported(t *testing.T) {
	UnregisterPlatformService(runtime.GOOS)

	s, err := NewPlatformNative()
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = New(PlatformNative)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestNewPlatformNative_Unavailable(t *testing.T) {
	registerFake(t, &fakePlatform{name: "offline"})
	_, err := NewPlatformNative()
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestNewPlatformNative_OtherOS(t *testing.T) {
	UnregisterPlatformService(runtime.GOOS)
	require.NoError(t, RegisterPlatformService("plan9-"+runtime.GOOS, &fakePlatform{name: "elsewhere", available: true}))
	t.Cleanup(func() { UnregisterPlatformService("plan9-" + runtime.GOOS) })

	_, err := NewPlatformNative()
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestNewPlatformNative_Shapes(t *testing.T) {
	svc := &fakePlatform{name: "fake", available: true}
	registerFake(t, svc)

	s, err := NewPlatformNative(WithFontManager(testManager(t)))
	require.NoError(t, err)
	assert.Equal(t, PlatformNative, s.Strategy())
	assert.Same(t, PlatformService(svc), Platform())

	blob, err := s.Shape("hello world", testFont(t, 12))
	require.NoError(t, err)
	assert.Equal(t, 11, blob.NumGlyphs())
	assert.Positive(t, svc.shaped)
}

func TestRegisterPlatformService(t *testing.T) {
	assert.Error(t, RegisterPlatformService(runtime.GOOS, nil))
	assert.Error(t, RegisterPlatformService("", &fakePlatform{}))

	first := &fakePlatform{name: "first", available: true}
	second := &fakePlatform{name: "second", available: true}
	registerFake(t, first)
	require.NoError(t, RegisterPlatformService(runtime.GOOS, second))

	assert.True(t, first.closed, "replaced service is closed")
	assert.False(t, second.closed)
	assert.Equal(t, "second", Platform().Name())

	UnregisterPlatformService(runtime.GOOS)
	assert.True(t, second.closed)
	assert.Nil(t, Platform())
}
