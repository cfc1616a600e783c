package http

import (
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/speedrun-coding/backend/httpjson"
	"github.com/speedrun-coding/backend/logger"
	"github.com/speedrun-coding/backend/srvcerror"
	"github.com/speedrun-coding/backend/subm/domain"
	"github.com/speedrun-coding/backend/subm/submsrvc/submcmd"
)

func (h *SubmHttpHandler) PostSubm(w http.ResponseWriter, r *http.Request) {
	type createSubmissionRequest struct {
		ProblemID int64     `json:"problem_id"`
		Language  string    `json:"language"`
		Code      string    `json:"code"`
		StartedAt time.Time `json:"started_at"`
	}

	log := logger.FromContext(r.Context())

	author, err := getRequester(r)
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	var request createSubmissionRequest
	if err := httpjson.DecodeJson(r, &request); err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	wait, release := h.allowSubm(author.UUID)
	if wait > 0 {
		secs := int(math.Ceil(wait.Seconds()))
		httpjson.HandleError(log, w, domain.ErrSubmTooFrequent(secs))
		return
	}

	log.Info("post subm request",
		"problem_id", request.ProblemID,
		"language", request.Language,
		"code_bytes", len(request.Code))

	subm, err := h.submSrvc.SubmitSol.Handle(r.Context(), submcmd.SubmitSolParams{
		UUID:          uuid.New(),
		AuthorUUID:    author.UUID,
		AuthorIsStaff: author.IsStaff,
		ProblemID:     request.ProblemID,
		Language:      request.Language,
		Code:          request.Code,
		StartedAt:     request.StartedAt,
	})
	if err != nil {
		// rejected requests do not count against the rate limit
		var se *srvcerror.Error
		if errors.As(err, &se) && se.HttpStatusCode() < http.StatusInternalServerError {
			release()
		}
		httpjson.HandleError(log, w, err)
		return
	}

	httpjson.WriteSuccessJsonWithStatus(w, http.StatusCreated, h.mapSubm(r.Context(), subm))
}
