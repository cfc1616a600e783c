package http

import (
	"net/http"

	"github.com/speedrun-coding/backend/httpjson"
	"github.com/speedrun-coding/backend/logger"
	"github.com/speedrun-coding/backend/srvcerror"
)

func (h *ProblemHttpHandler) PutProblem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if !isStaff(r.Context()) {
		httpjson.HandleError(log, w, srvcerror.ErrForbidden())
		return
	}

	var req PutProblemRequest
	if err := httpjson.DecodeJson(r, &req); err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	id, warnings, err := h.problemSrvc.SaveProblem(r.Context(), req.toDomain())
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}
	if warnings == nil {
		warnings = []string{}
	}

	log.Info("problem saved", "id", id, "slug", req.Slug, "warnings", len(warnings))
	httpjson.WriteSuccessJson(w, PutProblemResponse{ID: id, Warnings: warnings})
}
