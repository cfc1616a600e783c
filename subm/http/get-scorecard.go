package http

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/speedrun-coding/backend/httpjson"
	"github.com/speedrun-coding/backend/logger"
	"github.com/speedrun-coding/backend/subm/domain"
	"github.com/speedrun-coding/backend/subm/submsrvc/submquery"
)

// GetScorecard serves the scorecard of ?username=, or of the caller when
// the parameter is omitted.
func (h *SubmHttpHandler) GetScorecard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	username := r.URL.Query().Get("username")
	var authorUuid uuid.UUID
	if username == "" {
		req, err := getRequester(r)
		if err != nil {
			httpjson.HandleError(log, w, err)
			return
		}
		username, authorUuid = req.Username, req.UUID
	} else {
		u, err := h.userSrvc.GetUserByUsername(r.Context(), username)
		if err != nil {
			httpjson.HandleError(log, w, err)
			return
		}
		authorUuid = u.UUID
	}

	sc, err := h.getScorecard(r.Context(), username, authorUuid)
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapScorecard(sc))
}

func (h *SubmHttpHandler) getScorecard(ctx context.Context, username string, authorUuid uuid.UUID) (domain.Scorecard, error) {
	key := authorUuid.String()
	if cached, found := h.scorecardCache.Get(key); found {
		if sc, ok := cached.(domain.Scorecard); ok {
			return sc, nil
		}
	}

	// outlives any single caller waiting on the key
	sharedCtx := context.WithoutCancel(ctx)
	res, err, _ := h.sfGroup.Do(key, func() (interface{}, error) {
		sc, err := h.submSrvc.GetScorecard.Handle(sharedCtx, submquery.GetScorecardParams{
			AuthorUUID: authorUuid,
			Username:   username,
		})
		if err != nil {
			return nil, err
		}
		h.scorecardCache.SetDefault(key, sc)
		return sc, nil
	})
	if err != nil {
		return domain.Scorecard{}, err
	}
	return res.(domain.Scorecard), nil
}
