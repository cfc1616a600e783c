package http

import (
	"encoding/json"
	"time"
)

type SubmView struct {
	UUID         string    `json:"id"`
	ProblemID    int64     `json:"problem"`
	ProblemTitle string    `json:"problem_title"`
	Language     string    `json:"language"`
	StartedAt    time.Time `json:"started_at"`
	SubmittedAt  time.Time `json:"submitted_at"`
	Status       string    `json:"status"`
	DurationMs   int64     `json:"duration_ms"`
	MemoryKb     *int64    `json:"memory_kb"`
	Passed       bool      `json:"passed"`
	Rank         string    `json:"rank"`
	Inconclusive bool      `json:"inconclusive"`
}

type DetailedSubmView struct {
	SubmView
	Code       string          `json:"code"`
	RawResults json.RawMessage `json:"raw_results"`
}

type SubmStatsView struct {
	TotalSubmissions      int      `json:"total_submissions"`
	SuccessfulSubmissions int      `json:"successful_submissions"`
	AverageDurationMs     *float64 `json:"average_duration_ms"`
	ProblemsSolved        int      `json:"problems_solved"`
}

type ProblemStatusView struct {
	ProblemID int64  `json:"problem_id"`
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	Attempted bool   `json:"attempted"`
	Passed    bool   `json:"passed"`
	RankScore *int   `json:"rank_score"`
}

type ScorecardView struct {
	Username       string              `json:"username"`
	AvgRankScore   float64             `json:"avg_rank_score"`
	Tier           string              `json:"tier"`
	Coverage       float64             `json:"coverage"`
	PassedCount    int                 `json:"passed_count"`
	AttemptedCount int                 `json:"attempted_count"`
	Problems       []ProblemStatusView `json:"problems"`
}
