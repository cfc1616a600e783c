package submsrvc

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/speedrun-coding/backend/execsrvc"
	problem "github.com/speedrun-coding/backend/problem/domain"
	"github.com/speedrun-coding/backend/subm/domain"
	"github.com/speedrun-coding/backend/subm/submsrvc/submcmd"
	"github.com/speedrun-coding/backend/subm/submsrvc/submquery"
)

type SubmRepo interface {
	StoreSubm(ctx context.Context, subm domain.Subm) error
	GetSubm(ctx context.Context, submUuid uuid.UUID) (domain.Subm, error)
	ListSubms(ctx context.Context, f domain.SubmFilter) ([]domain.Subm, error)
	GetStats(ctx context.Context, authorUuid uuid.UUID) (domain.SubmStats, error)
}

type ProblemSrvcFacade interface {
	GetProblem(ctx context.Context, id int64) (problem.Problem, error)
	ListEnabled(ctx context.Context) ([]problem.Problem, error)
}

type ExecSrvcFacade interface {
	Execute(ctx context.Context, req execsrvc.ExecRequest) execsrvc.ExecResult
}

func NewSubmSrvc(
	submRepo SubmRepo,
	problemSrvc ProblemSrvcFacade,
	execSrvc ExecSrvcFacade,
) *SubmSrvc {
	submitSolCmd := submcmd.SubmitSolCmdHandler{
		GetProblem: problemSrvc.GetProblem,
		Execute:    execSrvc.Execute,
		StoreSubm:  submRepo.StoreSubm,
		Now:        time.Now,
	}

	return &SubmSrvc{
		SubmitSol:    submitSolCmd,
		GetSubm:      submquery.NewGetSubmQuery(submRepo.GetSubm),
		ListSubms:    submquery.NewListSubmsQuery(submRepo.ListSubms),
		GetStats:     submquery.NewGetStatsQuery(submRepo.GetStats),
		GetScorecard: submquery.NewGetScorecardQuery(listEnabledFunc(problemSrvc), submRepo.ListSubms),
	}
}

func listEnabledFunc(problemSrvc ProblemSrvcFacade) func(ctx context.Context) ([]domain.ScorecardProblem, error) {
	return func(ctx context.Context) ([]domain.ScorecardProblem, error) {
		problems, err := problemSrvc.ListEnabled(ctx)
		if err != nil {
			return nil, err
		}
		res := make([]domain.ScorecardProblem, 0, len(problems))
		for _, p := range problems {
			res = append(res, domain.ScorecardProblem{ID: p.ID, Title: p.Title, Slug: p.Slug})
		}
		return res, nil
	}
}
