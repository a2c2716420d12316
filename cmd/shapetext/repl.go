package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/gogpu/shaper"
)

const replHelp = `Type text to shape it. Commands:
  :width N        wrap width in pixels, 0 for none
  :size N         font size
  :strategy NAME  primitive, wrap, nowrap, driven or native
  :features LIST  comma-separated features, empty to clear
  :lang TAG       language tag
  :rtl / :ltr     base direction
  :glyphs         toggle the glyph table
  :show           print the current settings
  :quit           leave`

func (a *app) repl() error {
	rl, err := readline.New("shape > ")
	if err != nil {
		return err
	}
	defer rl.Close()

	pterm.Info.Println("Quit with <ctrl>D or :quit, help with :help")
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF, readline.ErrInterrupt
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !strings.HasPrefix(line, ":") {
			if err := a.shape(line); err != nil {
				pterm.Error.Println(err)
			}
			continue
		}
		quit, err := a.settings.apply(line)
		if err != nil {
			pterm.Error.Println(err)
			continue
		}
		if quit {
			break
		}
		if strings.HasPrefix(line, ":help") {
			pterm.Println(replHelp)
		} else if strings.HasPrefix(line, ":show") {
			pterm.Println(a.settings.String())
		}
	}
	pterm.Info.Println("Good bye!")
	return nil
}

// apply executes one REPL command and reports whether to quit.
func (s *settings) apply(line string) (quit bool, err error) {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)
	switch cmd {
	case ":quit", ":q":
		return true, nil
	case ":help", ":show":
	case ":width":
		w, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return false, fmt.Errorf("width: %w", err)
		}
		s.width = w
	case ":size":
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil || v <= 0 {
			return false, fmt.Errorf("size: invalid value %q", arg)
		}
		s.size = v
	case ":strategy":
		st, ok := shaper.ParseStrategy(arg)
		if !ok {
			return false, fmt.Errorf("unknown strategy %q", arg)
		}
		s.strategy = st
	case ":features":
		f, err := shaper.ParseFeatures(arg)
		if err != nil {
			return false, err
		}
		s.features = f
	case ":lang":
		s.lang = arg
	case ":rtl":
		s.rtl = true
	case ":ltr":
		s.rtl = false
	case ":glyphs":
		s.glyphs = !s.glyphs
	default:
		return false, fmt.Errorf("unknown command %q", cmd)
	}
	return false, nil
}

func (s *settings) String() string {
	features := make([]string, len(s.features))
	for i, f := range s.features {
		features[i] = f.String()
	}
	dir := "ltr"
	if s.rtl {
		dir = "rtl"
	}
	return fmt.Sprintf("strategy=%v size=%g width=%g dir=%s lang=%s features=[%s] glyphs=%t",
		s.strategy, s.size, s.width, dir, s.lang, strings.Join(features, ","), s.glyphs)
}
