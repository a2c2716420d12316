package font

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/go-text/typesetting/fontscan"
	"github.com/go-text/typesetting/language"
	xlanguage "golang.org/x/text/language"

	"github.com/gogpu/shaper/internal/cache"
	"github.com/gogpu/shaper/internal/logging"
)

// SystemOption configures a System manager.
type SystemOption func(*systemConfig)

type systemConfig struct {
	cacheDir  string
	families  []string
	maxLoaded int
}

func defaultSystemConfig() systemConfig {
	return systemConfig{
		families:  []string{"sans-serif"},
		maxLoaded: 32,
	}
}

// WithCacheDir sets the directory fontscan uses for its font index.
// The empty string selects the user cache directory.
func WithCacheDir(dir string) SystemOption {
	return func(c *systemConfig) {
		c.cacheDir = dir
	}
}

// WithFamilies sets the preferred fallback families, in order.
func WithFamilies(families ...string) SystemOption {
	return func(c *systemConfig) {
		c.families = families
	}
}

// WithMaxLoaded bounds the number of font files kept loaded.
func WithMaxLoaded(n int) SystemOption {
	return func(c *systemConfig) {
		c.maxLoaded = n
	}
}

// System resolves fallback from the fonts installed on the machine.
//
// Installed fonts are indexed lazily on the first fallback query, so
// creating a System is cheap. Matched font files are loaded as Sources and
// kept in an LRU cache. A source evicted from the cache stays usable by the
// fonts that reference it.
//
// System is safe for concurrent use.
type System struct {
	config systemConfig

	mu      sync.Mutex
	scanned bool
	scanErr error
	fm      *fontscan.FontMap

	loaded *cache.LRU[string, *Source]
}

// NewSystem creates a System manager.
func NewSystem(opts ...SystemOption) *System {
	config := defaultSystemConfig()
	for _, opt := range opts {
		opt(&config)
	}
	// Evicted sources are dropped, not closed: fonts resolved from them may
	// still be shaping.
	return &System{
		config: config,
		loaded: cache.New[string, *Source](config.maxLoaded),
	}
}

// ResolveFont implements Manager.ResolveFont.
func (s *System) ResolveFont(r rune, requested *Font) *Font {
	return resolve(s, r, requested)
}

// MatchFallback implements Manager.MatchFallback.
func (s *System) MatchFallback(r rune, _ language.Script, _ xlanguage.Tag) *Source {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.scanLocked(); err != nil {
		return nil
	}

	face := s.fm.ResolveFace(r)
	if face == nil {
		return nil
	}
	loc := s.fm.FontLocation(face.Font)
	if loc.File == "" {
		return nil
	}

	key := fmt.Sprintf("%s#%d", loc.File, loc.Index)
	src, err := s.loaded.GetOrLoad(key, func() (*Source, error) {
		logging.Logger().Debug("font: loading fallback font", "file", loc.File, "index", loc.Index)
		return NewSourceFromFile(loc.File, WithCollectionIndex(int(loc.Index)))
	})
	if err != nil {
		logging.Logger().Warn("font: unusable fallback font", "file", loc.File, "err", err)
		return nil
	}
	if !src.HasGlyph(r) {
		return nil
	}
	return src
}

// Err returns the error of the system font scan, if one has happened.
func (s *System) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scanErr
}

// scanLocked indexes system fonts once. Caller must hold s.mu.
func (s *System) scanLocked() error {
	if s.scanned {
		return s.scanErr
	}
	s.scanned = true

	logging.Logger().Info("font: scanning system fonts", "cacheDir", s.config.cacheDir)
	fm := fontscan.NewFontMap(logging.Printf{Source: "fontscan"})
	if err := fm.UseSystemFonts(s.config.cacheDir); err != nil {
		s.scanErr = fmt.Errorf("font: system font scan: %w", err)
		logging.Logger().Warn("font: system fonts unavailable", "err", err)
		return s.scanErr
	}
	fm.SetQuery(fontscan.Query{Families: s.config.families})
	s.fm = fm
	return nil
}

// Find locates an installed font file by file name (with or without
// extension, e.g. "DejaVuSans" or "DejaVuSans.ttf") and loads it.
// A path to an existing file is loaded directly.
func Find(name string, opts ...SourceOption) (*Source, error) {
	if strings.ContainsRune(name, filepath.Separator) {
		return NewSourceFromFile(name, opts...)
	}
	path, err := findfont.Find(name)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("%w: %s", ErrNotFound, name), err)
	}
	return NewSourceFromFile(path, opts...)
}

// Installed returns the paths of all font files found in the system font
// directories.
func Installed() []string {
	return findfont.List()
}

var defaultManager = sync.OnceValue(func() *System {
	return NewSystem()
})

// Default returns the process-wide default font manager.
func Default() Manager {
	return defaultManager()
}

// OrDefault returns m, or the default manager when m is nil.
func OrDefault(m Manager) Manager {
	if m == nil {
		return Default()
	}
	return m
}
