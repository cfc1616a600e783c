package domain

import (
	"fmt"
	"math"
)

// ValidateThresholds lists problems in a ranking table that the rank
// calculator would silently paper over. An empty result means the table is
// well formed.
func ValidateThresholds(ts []Threshold) []string {
	if len(ts) == 0 {
		return []string{"time thresholds are empty, every passing submission gets the default rank"}
	}

	var warnings []string
	seen := map[float64]int{}
	unbounded := 0
	prev := math.Inf(-1)
	for i, t := range ts {
		if t.Rank == "" {
			warnings = append(warnings, fmt.Sprintf("threshold %d has no rank", i))
		}
		if t.MaxMinutes == nil {
			unbounded++
			if i != len(ts)-1 {
				warnings = append(warnings, fmt.Sprintf("threshold %d (%q) has no max_minutes but is not last, it sorts last", i, t.Rank))
			}
			continue
		}
		m := *t.MaxMinutes
		if math.IsNaN(m) || m < 0 {
			warnings = append(warnings, fmt.Sprintf("threshold %d (%q) has invalid max_minutes %v", i, t.Rank, m))
			continue
		}
		if j, ok := seen[m]; ok {
			warnings = append(warnings, fmt.Sprintf("thresholds %d and %d share max_minutes %v, only the first is reachable", j, i, m))
		} else {
			seen[m] = i
		}
		if m < prev {
			warnings = append(warnings, fmt.Sprintf("threshold %d (%q) is out of order", i, t.Rank))
		}
		prev = m
	}
	if unbounded == 0 {
		warnings = append(warnings, "no unbounded final band, slow passing submissions get the default rank")
	}
	return warnings
}
