package submquery

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	decorator "github.com/speedrun-coding/backend/srvccqs"
	"github.com/speedrun-coding/backend/subm/domain"
	"golang.org/x/sync/errgroup"
)

type GetScorecardQuery decorator.QueryHandler[GetScorecardParams, domain.Scorecard]

type GetScorecardParams struct {
	AuthorUUID uuid.UUID
	Username   string
}

func NewGetScorecardQuery(
	listEnabledProblems func(ctx context.Context) ([]domain.ScorecardProblem, error),
	listSubms func(ctx context.Context, f domain.SubmFilter) ([]domain.Subm, error),
) GetScorecardQuery {
	return getScorecardHandler{
		listEnabledProblems: listEnabledProblems,
		listSubms:           listSubms,
	}
}

type getScorecardHandler struct {
	listEnabledProblems func(ctx context.Context) ([]domain.ScorecardProblem, error)
	listSubms           func(ctx context.Context, f domain.SubmFilter) ([]domain.Subm, error)
}

func (h getScorecardHandler) Handle(ctx context.Context, p GetScorecardParams) (domain.Scorecard, error) {
	var (
		problems []domain.ScorecardProblem
		subms    []domain.Subm
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		problems, err = h.listEnabledProblems(gctx)
		if err != nil {
			return fmt.Errorf("failed to list enabled problems: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		author := p.AuthorUUID
		minDuration := int64(domain.ScorecardMinDurationMs)
		var err error
		subms, err = h.listSubms(gctx, domain.SubmFilter{
			AuthorUUID:    &author,
			MinDurationMs: &minDuration,
			Limit:         domain.ScorecardWindow,
		})
		if err != nil {
			return fmt.Errorf("failed to list submissions: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.Scorecard{}, err
	}

	return domain.CalcScorecard(p.Username, problems, subms), nil
}
