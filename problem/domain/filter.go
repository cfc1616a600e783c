package domain

import "strings"

type SortField string

const (
	SortByTitle      SortField = "title"
	SortByDifficulty SortField = "difficulty"
	SortByCreatedAt  SortField = "created_at"
)

// ListFilter narrows down the problem catalog. Zero values do not filter.
type ListFilter struct {
	Tag         string
	Difficulty  string // case insensitive
	Slug        string
	Search      string // case insensitive substring of the title
	EnabledOnly bool

	SortBy   SortField
	SortDesc bool
}

// ParseSort falls back to sorting by title ascending on unknown input.
func ParseSort(by, direction string) (SortField, bool) {
	field := SortField(strings.ToLower(by))
	switch field {
	case SortByTitle, SortByDifficulty, SortByCreatedAt:
	default:
		field = SortByTitle
	}
	return field, strings.EqualFold(direction, "desc")
}

// Validate checks what the database constraints cannot.
func (p Problem) Validate() error {
	if strings.TrimSpace(p.Slug) == "" {
		return ErrInvalidProblem("slug is required")
	}
	if strings.TrimSpace(p.Title) == "" {
		return ErrInvalidProblem("title is required")
	}
	for _, f := range p.HarnessFiles {
		if f.Filename == "" {
			return ErrInvalidProblem("harness files need a filename")
		}
	}
	return nil
}
