// Package shaper turns text into lines of positioned glyphs.
//
// # Overview
//
// Text is split into runs that share one font, bidi level, script and
// language. Each run is shaped by an engine, the shaped runs are broken into
// lines and reordered for display, and every line is streamed to a
// [RunHandler].
//
// # Quick Start
//
//	import "github.com/gogpu/shaper"
//
//	src, err := font.NewSource(goregular.TTF)
//	if err != nil {
//	    return err
//	}
//	blob, err := shaper.Make().Shape("Hello, שלום", src.Font(16), shaper.WithWidth(240))
//	if err != nil {
//	    return err
//	}
//	for _, line := range blob.Lines() {
//	    fmt.Println(line.Baseline, len(line.Runs))
//	}
//
// # Strategies
//
// A [Shaper] is built for one [Strategy]:
//   - [Primitive]: nominal glyphs, no OpenType engine
//   - [ShapeThenWrap]: shape runs, then break lines at word boundaries
//   - [ShapeDontWrapOrReorder]: one line in logical order
//   - [ShaperDrivenWrapper]: the engine breaks lines itself ([Make])
//   - [PlatformNative]: a registered operating system service
//
// # Run Handlers
//
// [Shaper.Shape] collects everything into an immutable [TextBlob] with a
// [BlobBuilder]. [Shaper.ShapeWithHandler] and [Shaper.ShapeRuns] stream to
// any RunHandler instead; calls are always checked against the protocol by
// a [CheckedHandler].
//
// # Coordinate System
//
// Positions are in pixels:
//   - Origin at the offset passed with [WithOffset]
//   - X increases right
//   - Y increases down, baselines are absolute Y values
//
// # Offsets
//
// All text offsets (run bounds, clusters, feature ranges) are codepoint
// indices, not byte indices.
package shaper
