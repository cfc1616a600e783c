package http

import (
	"net/http"

	"github.com/speedrun-coding/backend/httpjson"
	"github.com/speedrun-coding/backend/logger"
	"github.com/speedrun-coding/backend/subm/submsrvc/submquery"
)

func (h *SubmHttpHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	req, err := getRequester(r)
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	stats, err := h.submSrvc.GetStats.Handle(r.Context(), submquery.GetStatsParams{AuthorUUID: req.UUID})
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapStats(stats))
}
