package shaper

import (
	"errors"
	"io"
	"runtime"
	"sync"

	"github.com/gogpu/shaper/engine"
)

// PlatformService is an operating system text-shaping service. A service
// is registered for the OS it runs on; the PlatformNative strategy shapes
// every run with it.
type PlatformService interface {
	engine.Engine

	// Name returns a human-readable service name.
	Name() string

	// Available reports whether the service can be used in this process.
	Available() bool
}

var (
	platformMu       sync.RWMutex
	platformServices = map[string]PlatformService{}
)

// RegisterPlatformService registers svc as the platform service for goos
// (a runtime.GOOS value). A previously registered service is replaced and,
// if it implements io.Closer, closed.
func RegisterPlatformService(goos string, svc PlatformService) error {
	if svc == nil {
		return errors.New("shaper: platform service must not be nil")
	}
	if goos == "" {
		return errors.New("shaper: platform service needs an operating system")
	}
	platformMu.Lock()
	old := platformServices[goos]
	platformServices[goos] = svc
	platformMu.Unlock()
	if c, ok := old.(io.Closer); ok && old != svc {
		if err := c.Close(); err != nil {
			Logger().Warn("shaper: closing replaced platform service", "service", old.Name(), "err", err)
		}
	}
	return nil
}

// UnregisterPlatformService removes the service registered for goos,
// closing it if it implements io.Closer.
func UnregisterPlatformService(goos string) {
	platformMu.Lock()
	old := platformServices[goos]
	delete(platformServices, goos)
	platformMu.Unlock()
	if c, ok := old.(io.Closer); ok {
		_ = c.Close()
	}
}

// Platform returns the available service for the current operating system,
// or nil if there is none.
func Platform() PlatformService {
	platformMu.RLock()
	svc := platformServices[runtime.GOOS]
	platformMu.RUnlock()
	if svc == nil || !svc.Available() {
		return nil
	}
	return svc
}
