package shaper

import (
	"slices"

	"github.com/gogpu/shaper/runs"
)

// ReorderRuns returns the visual order of runs with the given embedding
// levels, listed in logical order: out[i] is the logical index of the run
// displayed at position i.
//
// From the highest level down to the lowest odd level, every maximal
// sequence of runs at that level or higher is reversed (UAX #9 rule L2).
func ReorderRuns(levels []runs.Level) []int {
	order := make([]int, len(levels))
	for i := range order {
		order[i] = i
	}
	if len(levels) < 2 {
		return order
	}

	highest, lowest := slices.Max(levels), slices.Min(levels)
	if lowest&1 == 0 {
		lowest++
	}
	for level := highest; level >= lowest && level > 0; level-- {
		for i := 0; i < len(levels); {
			if levels[order[i]] < level {
				i++
				continue
			}
			j := i
			for j < len(levels) && levels[order[j]] >= level {
				j++
			}
			slices.Reverse(order[i:j])
			i = j
		}
	}
	return order
}
