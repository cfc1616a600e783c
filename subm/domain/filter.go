package domain

import "github.com/google/uuid"

const (
	DefaultPageSize = 100
	MaxPageSize     = 1000
)

// SubmFilter selects submissions, newest first. Nil fields do not filter.
type SubmFilter struct {
	AuthorUUID    *uuid.UUID
	ProblemID     *int64
	MinDurationMs *int64
	Limit         int
	Offset        int
}

// ClampPage applies the default and maximum page size.
func (f SubmFilter) ClampPage() SubmFilter {
	if f.Limit <= 0 {
		f.Limit = DefaultPageSize
	}
	if f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}
