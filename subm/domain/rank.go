package domain

import (
	"math"
	"slices"
	"time"

	problem "github.com/speedrun-coding/backend/problem/domain"
)

// DefaultRank is given to failing submissions and to passing ones that fall
// outside every threshold.
const DefaultRank = "VP of Engineering"

const MaxDurationMs = int64(24 * time.Hour / time.Millisecond)

// CalcDurationMs returns the solving time. Negative values (client clock
// ahead of the server) and values above a day are clamped to a day.
func CalcDurationMs(startedAt, submittedAt time.Time) int64 {
	d := submittedAt.Sub(startedAt).Milliseconds()
	if d < 0 || d > MaxDurationMs {
		return MaxDurationMs
	}
	return d
}

// CalcRank maps a solving time onto the problem's threshold table. The
// table is sorted by MaxMinutes here, missing bounds last, so authoring
// order does not matter.
func CalcRank(passed bool, durationMs int64, thresholds []problem.Threshold) string {
	if !passed || len(thresholds) == 0 {
		return DefaultRank
	}

	sorted := slices.Clone(thresholds)
	slices.SortStableFunc(sorted, func(a, b problem.Threshold) int {
		am, bm := maxMinutes(a), maxMinutes(b)
		switch {
		case am < bm:
			return -1
		case am > bm:
			return 1
		}
		return 0
	})

	minutes := float64(durationMs) / float64(time.Minute/time.Millisecond)
	for _, t := range sorted {
		if minutes <= maxMinutes(t) {
			if t.Rank == "" {
				return DefaultRank
			}
			return t.Rank
		}
	}
	return DefaultRank
}

func maxMinutes(t problem.Threshold) float64 {
	if t.MaxMinutes == nil {
		return math.Inf(1)
	}
	return *t.MaxMinutes
}
