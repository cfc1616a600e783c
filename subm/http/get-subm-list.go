package http

import (
	"net/http"
	"strconv"

	"github.com/speedrun-coding/backend/httpjson"
	"github.com/speedrun-coding/backend/logger"
	"github.com/speedrun-coding/backend/srvcerror"
	"github.com/speedrun-coding/backend/subm/submsrvc/submquery"
)

func (h *SubmHttpHandler) GetSubmList(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	req, err := getRequester(r)
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	params := submquery.ListSubmsParams{
		RequesterUUID:    req.UUID,
		RequesterIsStaff: req.IsStaff,
	}
	q := r.URL.Query()
	if v := q.Get("problem_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			httpjson.HandleError(log, w, srvcerror.ErrInvalidRequest("problem_id must be an integer").SetDebug(err))
			return
		}
		params.ProblemID = &id
	}
	if params.Limit, err = queryInt(q.Get("limit")); err != nil {
		httpjson.HandleError(log, w, srvcerror.ErrInvalidRequest("limit must be an integer").SetDebug(err))
		return
	}
	if params.Offset, err = queryInt(q.Get("offset")); err != nil {
		httpjson.HandleError(log, w, srvcerror.ErrInvalidRequest("offset must be an integer").SetDebug(err))
		return
	}

	subms, err := h.submSrvc.ListSubms.Handle(r.Context(), params)
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	log.Debug("submissions retrieved successfully", "count", len(subms))

	response := make([]SubmView, 0, len(subms))
	for _, s := range subms {
		response = append(response, h.mapSubm(r.Context(), s))
	}
	httpjson.WriteSuccessJson(w, response)
}

func queryInt(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}
