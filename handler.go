package shaper

import (
	"fmt"

	"github.com/go-text/typesetting/language"
	xlanguage "golang.org/x/text/language"

	"github.com/gogpu/shaper/font"
	"github.com/gogpu/shaper/runs"
)

// RunInfo describes one shaped run about to be delivered to a RunHandler.
type RunInfo struct {
	Font     *font.Font
	Level    runs.Level
	Script   language.Script
	Language xlanguage.Tag

	// Start, End is the codepoint range of the run in the text.
	Start, End int

	GlyphCount int

	// Advance is the pen movement over the whole run.
	Advance Point
}

// Buffer is the storage a RunHandler hands out for one run. Glyphs and
// Positions must hold RunInfo.GlyphCount entries; Offsets and Clusters are
// filled only when non-nil.
type Buffer struct {
	Glyphs    []uint32
	Positions []Point
	Offsets   []Point
	Clusters  []int

	// Point is the position of the run origin. Positions are absolute.
	Point Point
}

// RunHandler receives shaped output line by line.
//
// For every line the shaper calls BeginLine, RunInfo once per run in visual
// order, CommitRunInfo, then RunOffset and CommitRun for each run in the same
// order, and finally CommitLine. The shaper fills the Buffer returned by
// RunOffset before calling CommitRun.
type RunHandler interface {
	BeginLine()
	RunInfo(info RunInfo)
	CommitRunInfo()
	RunOffset(info RunInfo) Buffer
	CommitRun(info RunInfo)
	CommitLine()
}

// ProtocolState is the position of a CheckedHandler in the RunHandler
// protocol.
type ProtocolState uint8

const (
	// AwaitingLine expects BeginLine.
	AwaitingLine ProtocolState = iota
	// AwaitingRunInfo expects RunInfo or CommitRunInfo.
	AwaitingRunInfo
	// AwaitingRunBuffer expects RunOffset or CommitLine.
	AwaitingRunBuffer
	// AwaitingCommit expects CommitRun.
	AwaitingCommit
)

// String returns the state name.
func (s ProtocolState) String() string {
	switch s {
	case AwaitingLine:
		return "AwaitingLine"
	case AwaitingRunInfo:
		return "AwaitingRunInfo"
	case AwaitingRunBuffer:
		return "AwaitingRunBuffer"
	case AwaitingCommit:
		return "AwaitingCommit"
	default:
		return unknownStr
	}
}

// ProtocolError reports a RunHandler call made out of order. It is raised
// with panic.
type ProtocolError struct {
	Call  string
	State ProtocolState
	// Detail is set when the call was in order but its arguments were not.
	Detail string
}

func (e *ProtocolError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("shaper: %s in state %v: %s", e.Call, e.State, e.Detail)
	}
	return fmt.Sprintf("shaper: %s called in state %v", e.Call, e.State)
}

// CheckedHandler wraps a RunHandler and enforces the call order of the
// protocol. Every out-of-order call panics with a *ProtocolError before it
// reaches the wrapped handler.
type CheckedHandler struct {
	h     RunHandler
	state ProtocolState
	infos int
	runs  int
	lines int
}

// NewCheckedHandler returns h wrapped in a CheckedHandler. A handler that is
// already checked is returned unchanged.
func NewCheckedHandler(h RunHandler) *CheckedHandler {
	if h == nil {
		panic("shaper: nil RunHandler")
	}
	if c, ok := h.(*CheckedHandler); ok {
		return c
	}
	return &CheckedHandler{h: h}
}

// State returns the current protocol state.
func (c *CheckedHandler) State() ProtocolState { return c.state }

// Lines returns the number of committed lines.
func (c *CheckedHandler) Lines() int { return c.lines }

func (c *CheckedHandler) expect(call string, states ...ProtocolState) {
	for _, s := range states {
		if c.state == s {
			return
		}
	}
	panic(&ProtocolError{Call: call, State: c.state})
}

func (c *CheckedHandler) fail(call, detail string) {
	panic(&ProtocolError{Call: call, State: c.state, Detail: detail})
}

// BeginLine implements RunHandler.
func (c *CheckedHandler) BeginLine() {
	c.expect("BeginLine", AwaitingLine)
	c.infos, c.runs = 0, 0
	c.state = AwaitingRunInfo
	c.h.BeginLine()
}

// RunInfo implements RunHandler.
func (c *CheckedHandler) RunInfo(info RunInfo) {
	c.expect("RunInfo", AwaitingRunInfo)
	if info.GlyphCount < 0 || info.End < info.Start {
		c.fail("RunInfo", fmt.Sprintf("invalid run [%d,%d) with %d glyphs", info.Start, info.End, info.GlyphCount))
	}
	c.infos++
	c.h.RunInfo(info)
}

// CommitRunInfo implements RunHandler.
func (c *CheckedHandler) CommitRunInfo() {
	c.expect("CommitRunInfo", AwaitingRunInfo)
	if c.infos == 0 {
		c.fail("CommitRunInfo", "no runs announced")
	}
	c.state = AwaitingRunBuffer
	c.h.CommitRunInfo()
}

// RunOffset implements RunHandler.
func (c *CheckedHandler) RunOffset(info RunInfo) Buffer {
	c.expect("RunOffset", AwaitingRunBuffer)
	if c.runs == c.infos {
		c.fail("RunOffset", fmt.Sprintf("more runs than the %d announced", c.infos))
	}
	buf := c.h.RunOffset(info)
	if len(buf.Glyphs) < info.GlyphCount || len(buf.Positions) < info.GlyphCount {
		c.fail("RunOffset", fmt.Sprintf("buffer too small for %d glyphs", info.GlyphCount))
	}
	c.state = AwaitingCommit
	return buf
}

// CommitRun implements RunHandler.
func (c *CheckedHandler) CommitRun(info RunInfo) {
	c.expect("CommitRun", AwaitingCommit)
	c.runs++
	c.state = AwaitingRunBuffer
	c.h.CommitRun(info)
}

// CommitLine implements RunHandler.
func (c *CheckedHandler) CommitLine() {
	c.expect("CommitLine", AwaitingRunBuffer)
	if c.runs != c.infos {
		c.fail("CommitLine", fmt.Sprintf("%d of %d runs committed", c.runs, c.infos))
	}
	c.lines++
	c.state = AwaitingLine
	c.h.CommitLine()
}
