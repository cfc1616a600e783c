package submquery

import (
	"context"

	"github.com/google/uuid"
	decorator "github.com/speedrun-coding/backend/srvccqs"
	"github.com/speedrun-coding/backend/subm/domain"
)

type ListSubmsQuery decorator.QueryHandler[ListSubmsParams, []domain.Subm]

func NewListSubmsQuery(listSubms func(ctx context.Context, f domain.SubmFilter) ([]domain.Subm, error)) ListSubmsQuery {
	return listSubmsHandler{listSubms: listSubms}
}

type ListSubmsParams struct {
	RequesterUUID    uuid.UUID
	RequesterIsStaff bool // staff see everyone's submissions

	ProblemID *int64
	Limit     int
	Offset    int
}

type listSubmsHandler struct {
	listSubms func(ctx context.Context, f domain.SubmFilter) ([]domain.Subm, error)
}

func (h listSubmsHandler) Handle(ctx context.Context, p ListSubmsParams) ([]domain.Subm, error) {
	f := domain.SubmFilter{
		ProblemID: p.ProblemID,
		Limit:     p.Limit,
		Offset:    p.Offset,
	}
	if !p.RequesterIsStaff {
		author := p.RequesterUUID
		f.AuthorUUID = &author
	}
	return h.listSubms(ctx, f.ClampPage())
}
