package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/speedrun-coding/backend/httpjson"
	"github.com/speedrun-coding/backend/logger"
	"github.com/speedrun-coding/backend/problem/domain"
)

func (h *ProblemHttpHandler) GetProblem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	slug := chi.URLParam(r, "slug")
	staff := isStaff(r.Context())

	p, err := h.problemSrvc.GetProblemBySlug(r.Context(), slug)
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}
	if !p.Enabled && !staff {
		httpjson.HandleError(log, w, domain.ErrProblemNotFound())
		return
	}

	httpjson.WriteSuccessJson(w, mapProblem(p, staff))
}
