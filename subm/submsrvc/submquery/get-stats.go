package submquery

import (
	"context"

	"github.com/google/uuid"
	decorator "github.com/speedrun-coding/backend/srvccqs"
	"github.com/speedrun-coding/backend/subm/domain"
)

type GetStatsQuery decorator.QueryHandler[GetStatsParams, domain.SubmStats]

func NewGetStatsQuery(getStats func(ctx context.Context, authorUuid uuid.UUID) (domain.SubmStats, error)) GetStatsQuery {
	return getStatsHandler{getStats: getStats}
}

type GetStatsParams struct {
	AuthorUUID uuid.UUID
}

type getStatsHandler struct {
	getStats func(ctx context.Context, authorUuid uuid.UUID) (domain.SubmStats, error)
}

func (h getStatsHandler) Handle(ctx context.Context, p GetStatsParams) (domain.SubmStats, error) {
	return h.getStats(ctx, p.AuthorUUID)
}
