package http

import (
	"net/http"

	"github.com/speedrun-coding/backend/httpjson"
	"github.com/speedrun-coding/backend/logger"
	"github.com/speedrun-coding/backend/problem/domain"
)

// ListProblems filters by ?tag=&difficulty=&slug=&search= and sorts by
// ?sort=title|difficulty|created_at&order=asc|desc. Disabled problems are
// only listed for staff.
func (h *ProblemHttpHandler) ListProblems(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	q := r.URL.Query()

	sortBy, desc := domain.ParseSort(q.Get("sort"), q.Get("order"))
	f := domain.ListFilter{
		Tag:         q.Get("tag"),
		Difficulty:  q.Get("difficulty"),
		Slug:        q.Get("slug"),
		Search:      q.Get("search"),
		EnabledOnly: !isStaff(r.Context()),
		SortBy:      sortBy,
		SortDesc:    desc,
	}

	problems, err := h.problemSrvc.ListProblems(r.Context(), f)
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	res := make([]ProblemListEntry, 0, len(problems))
	for _, p := range problems {
		res = append(res, mapListEntry(p))
	}
	httpjson.WriteSuccessJson(w, res)
}
