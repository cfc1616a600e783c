package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/speedrun-coding/backend/execsrvc"
)

// Subm is a fully evaluated submission. It is created once, after the
// execution result, duration and rank are known, and never updated.
type Subm struct {
	UUID       uuid.UUID
	AuthorUUID uuid.UUID
	ProblemID  int64
	Language   string
	Code       string

	StartedAt   time.Time // reported by the client
	SubmittedAt time.Time // assigned by the server

	Status     execsrvc.Status
	DurationMs int64
	MemoryKb   *int64
	Passed     bool
	Rank       string

	// full execution result including the engine payload
	RawResults json.RawMessage
}

func (s Subm) Inconclusive() bool {
	return s.Status.Inconclusive()
}

// SubmStats summarizes the submissions of one user.
type SubmStats struct {
	Total          int
	Successful     int
	AvgDurationMs  *float64 // over passing submissions, nil if none
	ProblemsSolved int
}
