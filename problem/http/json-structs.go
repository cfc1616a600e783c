package http

import (
	"time"

	"github.com/speedrun-coding/backend/execsrvc"
	"github.com/speedrun-coding/backend/problem/domain"
)

type ProblemListEntry struct {
	ID         int64    `json:"id"`
	Slug       string   `json:"slug"`
	Title      string   `json:"title"`
	Tags       []string `json:"tags"`
	Difficulty *string  `json:"difficulty"`
	Enabled    bool     `json:"enabled"`
}

type ProblemView struct {
	ProblemListEntry
	DescriptionMd      string             `json:"description_md"`
	TimeThresholds     []domain.Threshold `json:"time_thresholds"`
	SolutionTemplates  map[string]string  `json:"solution_templates"`
	ReferenceSolutions map[string]string  `json:"reference_solutions"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`

	// staff only
	HarnessFiles []execsrvc.HarnessFile `json:"harness_eval_files,omitempty"`
}

type PutProblemRequest struct {
	ID                 int64                  `json:"id"`
	Slug               string                 `json:"slug"`
	Title              string                 `json:"title"`
	DescriptionMd      string                 `json:"description_md"`
	Tags               []string               `json:"tags"`
	Difficulty         *string                `json:"difficulty"`
	TimeThresholds     []domain.Threshold     `json:"time_thresholds"`
	SolutionTemplates  map[string]string      `json:"solution_templates"`
	ReferenceSolutions map[string]string      `json:"reference_solutions"`
	HarnessFiles       []execsrvc.HarnessFile `json:"harness_eval_files"`
	Enabled            bool                   `json:"enabled"`
}

type PutProblemResponse struct {
	ID       int64    `json:"id"`
	Warnings []string `json:"warnings"`
}

func mapListEntry(p domain.Problem) ProblemListEntry {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return ProblemListEntry{
		ID:         p.ID,
		Slug:       p.Slug,
		Title:      p.Title,
		Tags:       tags,
		Difficulty: p.Difficulty,
		Enabled:    p.Enabled,
	}
}

func mapProblem(p domain.Problem, withHarness bool) ProblemView {
	v := ProblemView{
		ProblemListEntry:   mapListEntry(p),
		DescriptionMd:      p.DescriptionMd,
		TimeThresholds:     p.TimeThresholds,
		SolutionTemplates:  p.SolutionTemplates,
		ReferenceSolutions: p.ReferenceSolutions,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
	if withHarness {
		v.HarnessFiles = p.HarnessFiles
	}
	return v
}

func (r PutProblemRequest) toDomain() domain.Problem {
	return domain.Problem{
		ID:                 r.ID,
		Slug:               r.Slug,
		Title:              r.Title,
		DescriptionMd:      r.DescriptionMd,
		Tags:               r.Tags,
		Difficulty:         r.Difficulty,
		TimeThresholds:     r.TimeThresholds,
		SolutionTemplates:  r.SolutionTemplates,
		ReferenceSolutions: r.ReferenceSolutions,
		HarnessFiles:       r.HarnessFiles,
		Enabled:            r.Enabled,
	}
}
