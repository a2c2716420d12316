// Command shapetext shapes a string and prints its lines, runs and glyphs.
//
// Usage:
//
//	shapetext [flags] [text]
//
// Without text, or with -i, shapetext reads lines interactively.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/shaper"
	"github.com/gogpu/shaper/font"
	"github.com/gogpu/shaper/runs"
)

// settings holds what the flags and REPL commands control.
type settings struct {
	strategy shaper.Strategy
	size     float64
	width    float64
	rtl      bool
	features []shaper.Feature
	lang     string
	glyphs   bool
}

func main() {
	initDisplay()

	fontName := flag.String("font", "", "Font file name or path (default Go Regular)")
	size := flag.Float64("size", 16, "Font size in pixels per em")
	width := flag.Float64("width", 0, "Wrap width in pixels, 0 for no wrapping")
	strategy := flag.String("strategy", "driven", "Strategy [primitive|wrap|nowrap|driven|native]")
	rtl := flag.Bool("rtl", false, "Right-to-left base direction")
	features := flag.String("features", "", "Comma-separated OpenType features, e.g. \"-liga,kern[0:3]\"")
	lang := flag.String("lang", "en", "BCP 47 language tag")
	fallback := flag.Bool("fallback", true, "Use installed fonts for fallback")
	glyphs := flag.Bool("glyphs", false, "Print every glyph")
	interactive := flag.Bool("i", false, "Interactive mode")
	verbose := flag.Bool("v", false, "Debug logging to stderr")
	list := flag.Bool("list", false, "List installed font files and exit")
	flag.Parse()

	if *list {
		for _, path := range font.Installed() {
			pterm.Println(path)
		}
		return
	}

	if *verbose {
		shaper.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	st, ok := shaper.ParseStrategy(*strategy)
	if !ok {
		pterm.Error.Printf("unknown strategy %q\n", *strategy)
		os.Exit(2)
	}
	feats, err := shaper.ParseFeatures(*features)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(2)
	}
	src, err := loadFont(*fontName)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(3)
	}
	var mgr font.Manager = font.NewCollection(src)
	if *fallback {
		mgr = font.Default()
	}

	app := &app{
		src: src,
		mgr: mgr,
		settings: settings{
			strategy: st,
			size:     *size,
			width:    *width,
			rtl:      *rtl,
			features: feats,
			lang:     *lang,
			glyphs:   *glyphs,
		},
	}

	text := strings.Join(flag.Args(), " ")
	if text == "" || *interactive {
		if err := app.repl(); err != nil {
			pterm.Error.Println(err)
			os.Exit(4)
		}
		return
	}
	if err := app.shape(text); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func loadFont(name string) (*font.Source, error) {
	if name == "" {
		return font.NewSource(goregular.TTF, font.WithName("Go Regular"))
	}
	src, err := font.Find(name)
	if err != nil {
		return nil, fmt.Errorf("loading font %q: %w", name, err)
	}
	return src, nil
}

type app struct {
	src      *font.Source
	mgr      font.Manager
	settings settings
}

func (a *app) shaper() (*shaper.Shaper, error) {
	return shaper.New(a.settings.strategy,
		shaper.WithFontManager(a.mgr),
		shaper.WithLanguage(runs.ParseLanguage(a.settings.lang)))
}

func (a *app) shape(text string) error {
	s, err := a.shaper()
	if err != nil {
		return err
	}
	dir := runs.LeftToRight
	if a.settings.rtl {
		dir = runs.RightToLeft
	}
	blob, err := s.Shape(text, a.src.Font(a.settings.size),
		shaper.WithWidth(a.settings.width),
		shaper.WithDirection(dir),
		shaper.WithFeatures(a.settings.features...))
	if err != nil {
		return err
	}
	if blob == nil {
		pterm.Info.Println("empty text")
		return nil
	}
	printBlob(blob, a.settings.glyphs)
	return nil
}
