package domain

import (
	"time"

	"github.com/speedrun-coding/backend/execsrvc"
)

type Problem struct {
	ID            int64
	Slug          string
	Title         string
	DescriptionMd string
	Tags          []string
	Difficulty    *string

	TimeThresholds []Threshold

	// language -> code
	SolutionTemplates  map[string]string
	ReferenceSolutions map[string]string

	// hidden from non-staff views
	HarnessFiles []execsrvc.HarnessFile

	Enabled   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Threshold is one band of the ranking table. A nil MaxMinutes means the
// band is unbounded.
type Threshold struct {
	MaxMinutes *float64 `json:"max_minutes,omitempty" toml:"max_minutes,omitempty"`
	Rank       string   `json:"rank" toml:"rank"`
}
