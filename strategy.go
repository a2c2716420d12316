package shaper

// Strategy selects how a Shaper turns text into lines.
type Strategy uint8

const (
	// Primitive maps codepoints to nominal glyphs without an OpenType
	// engine, then breaks lines and reorders runs.
	Primitive Strategy = iota

	// ShapeThenWrap shapes every run first, then breaks lines at
	// word boundaries and reorders bidi runs per line.
	ShapeThenWrap

	// ShapeDontWrapOrReorder shapes every run and emits a single line
	// with runs in logical order.
	ShapeDontWrapOrReorder

	// ShaperDrivenWrapper lets the engine break lines when it can.
	ShaperDrivenWrapper

	// PlatformNative delegates shaping to the registered PlatformService.
	PlatformNative
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case Primitive:
		return "Primitive"
	case ShapeThenWrap:
		return "ShapeThenWrap"
	case ShapeDontWrapOrReorder:
		return "ShapeDontWrapOrReorder"
	case ShaperDrivenWrapper:
		return "ShaperDrivenWrapper"
	case PlatformNative:
		return "PlatformNative"
	default:
		return unknownStr
	}
}

// Wraps reports whether the strategy breaks lines at the width.
func (s Strategy) Wraps() bool {
	return s != ShapeDontWrapOrReorder
}

// Reorders reports whether the strategy reorders runs into visual order.
func (s Strategy) Reorders() bool {
	return s != ShapeDontWrapOrReorder
}

// ParseStrategy returns the strategy named by name, as printed by String.
// Lowercase names and the short forms "wrap", "nowrap" and "driven" are
// accepted.
func ParseStrategy(name string) (Strategy, bool) {
	switch name {
	case "Primitive", "primitive":
		return Primitive, true
	case "ShapeThenWrap", "shapethenwrap", "wrap":
		return ShapeThenWrap, true
	case "ShapeDontWrapOrReorder", "shapedontwraporreorder", "nowrap":
		return ShapeDontWrapOrReorder, true
	case "ShaperDrivenWrapper", "shaperdrivenwrapper", "driven":
		return ShaperDrivenWrapper, true
	case "PlatformNative", "platformnative", "native":
		return PlatformNative, true
	}
	return 0, false
}

const unknownStr = "Unknown"
