package submquery

import (
	"context"

	"github.com/google/uuid"
	decorator "github.com/speedrun-coding/backend/srvccqs"
	"github.com/speedrun-coding/backend/srvcerror"
	"github.com/speedrun-coding/backend/subm/domain"
)

type GetSubmQuery decorator.QueryHandler[GetSubmParams, domain.Subm]

func NewGetSubmQuery(getSubm func(ctx context.Context, submUuid uuid.UUID) (domain.Subm, error)) GetSubmQuery {
	return getSubmHandler{getSubm: getSubm}
}

type GetSubmParams struct {
	SubmUUID uuid.UUID

	RequesterUUID    uuid.UUID
	RequesterIsStaff bool
}

type getSubmHandler struct {
	getSubm func(ctx context.Context, submUuid uuid.UUID) (domain.Subm, error)
}

// Handle returns the submission only to its author or to staff.
func (h getSubmHandler) Handle(ctx context.Context, p GetSubmParams) (domain.Subm, error) {
	s, err := h.getSubm(ctx, p.SubmUUID)
	if err != nil {
		return domain.Subm{}, err
	}
	if !p.RequesterIsStaff && s.AuthorUUID != p.RequesterUUID {
		return domain.Subm{}, srvcerror.ErrForbidden()
	}
	return s, nil
}
