package runs

// Level is a resolved bidi embedding level. Even levels are left-to-right,
// odd levels right-to-left.
type Level uint8

// IsRTL reports whether the level is right-to-left.
func (l Level) IsRTL() bool { return l&1 == 1 }

// Direction returns the writing direction of the level.
func (l Level) Direction() Direction {
	if l.IsRTL() {
		return RightToLeft
	}
	return LeftToRight
}

// Direction is a horizontal base writing direction.
type Direction uint8

const (
	// LeftToRight is the default direction (Latin, Cyrillic, CJK, ...).
	LeftToRight Direction = iota

	// RightToLeft is used by Arabic, Hebrew and related scripts.
	RightToLeft
)

// String returns the string representation of the direction.
func (d Direction) String() string {
	switch d {
	case LeftToRight:
		return "LTR"
	case RightToLeft:
		return "RTL"
	default:
		return unknownStr
	}
}

// Level returns the paragraph embedding level of the direction.
func (d Direction) Level() Level {
	if d == RightToLeft {
		return 1
	}
	return 0
}

const unknownStr = "Unknown"
