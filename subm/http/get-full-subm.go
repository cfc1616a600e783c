package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/speedrun-coding/backend/httpjson"
	"github.com/speedrun-coding/backend/logger"
	"github.com/speedrun-coding/backend/srvcerror"
	"github.com/speedrun-coding/backend/subm/submsrvc/submquery"
)

func (h *SubmHttpHandler) GetFullSubm(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	req, err := getRequester(r)
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	submUuid, err := uuid.Parse(chi.URLParam(r, "subm-uuid"))
	if err != nil {
		httpjson.HandleError(log, w, srvcerror.ErrInvalidRequest("invalid submission id").SetDebug(err))
		return
	}

	subm, err := h.submSrvc.GetSubm.Handle(r.Context(), submquery.GetSubmParams{
		SubmUUID:         submUuid,
		RequesterUUID:    req.UUID,
		RequesterIsStaff: req.IsStaff,
	})
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, h.mapDetailedSubm(r.Context(), subm))
}
