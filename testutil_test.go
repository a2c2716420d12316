package shaper

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/shaper/engine"
	"github.com/gogpu/shaper/font"
)

func testSource(t testing.TB) *font.Source {
	t.Helper()
	src, err := font.NewSource(goregular.TTF)
	require.NoError(t, err)
	return src
}

func testFont(t testing.TB, size float64) *font.Font {
	t.Helper()
	return testSource(t).Font(size)
}

func monoFont(t testing.TB, size float64) *font.Font {
	t.Helper()
	src, err := font.NewSource(gomono.TTF)
	require.NoError(t, err)
	return src.Font(size)
}

// testManager returns a manager that never touches system fonts.
func testManager(t testing.TB) font.Manager {
	t.Helper()
	return font.NewCollection(testSource(t))
}

// recordingEngine records every request before delegating to next.
type recordingEngine struct {
	next engine.Engine

	mu      sync.Mutex
	reqs    []engine.Request
	results []engine.Result
}

func (e *recordingEngine) Shape(req engine.Request) (engine.Result, error) {
	res, err := e.next.Shape(req)
	e.mu.Lock()
	e.reqs = append(e.reqs, req)
	e.results = append(e.results, res)
	e.mu.Unlock()
	return res, err
}

var errBroken = errors.New("broken engine")

// failingEngine fails on every run starting at or after failAt.
type failingEngine struct {
	failAt int
}

func (e failingEngine) Shape(req engine.Request) (engine.Result, error) {
	if req.Start >= e.failAt {
		return engine.Result{}, errBroken
	}
	return engine.Identity{}.Shape(req)
}

// callRecorder is a RunHandler that logs every call and keeps the glyph
// buffers it hands out.
type callRecorder struct {
	calls   []string
	buffers []Buffer
}

func (r *callRecorder) BeginLine() { r.calls = append(r.calls, "BeginLine") }

func (r *callRecorder) RunInfo(info RunInfo) {
	r.calls = append(r.calls, fmt.Sprintf("RunInfo[%d,%d)", info.Start, info.End))
}

func (r *callRecorder) CommitRunInfo() { r.calls = append(r.calls, "CommitRunInfo") }

func (r *callRecorder) RunOffset(info RunInfo) Buffer {
	r.calls = append(r.calls, "RunOffset")
	buf := Buffer{
		Glyphs:    make([]uint32, info.GlyphCount),
		Positions: make([]Point, info.GlyphCount),
		Offsets:   make([]Point, info.GlyphCount),
		Clusters:  make([]int, info.GlyphCount),
	}
	r.buffers = append(r.buffers, buf)
	return buf
}

func (r *callRecorder) CommitRun(RunInfo) { r.calls = append(r.calls, "CommitRun") }

func (r *callRecorder) CommitLine() { r.calls = append(r.calls, "CommitLine") }

// lineClusters returns the clusters of every line of b.
func lineClusters(b *TextBlob) [][]int {
	var out [][]int
	for _, l := range b.Lines() {
		var cs []int
		for _, r := range l.Runs {
			cs = append(cs, r.Clusters...)
		}
		out = append(out, cs)
	}
	return out
}

func monoTTF() []byte { return gomono.TTF }
