package submcmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/speedrun-coding/backend/execsrvc"
	"github.com/speedrun-coding/backend/logger"
	problem "github.com/speedrun-coding/backend/problem/domain"
	decorator "github.com/speedrun-coding/backend/srvccqs"
	"github.com/speedrun-coding/backend/subm/domain"
)

type SubmitSolCmd decorator.CmdResultHandler[SubmitSolParams, domain.Subm]

type SubmitSolParams struct {
	UUID          uuid.UUID
	AuthorUUID    uuid.UUID
	AuthorIsStaff bool // staff may submit to disabled problems
	ProblemID     int64
	Language      string
	Code          string
	StartedAt     time.Time
}

type SubmitSolCmdHandler struct {
	GetProblem func(ctx context.Context, id int64) (problem.Problem, error)
	Execute    func(ctx context.Context, req execsrvc.ExecRequest) execsrvc.ExecResult
	StoreSubm  func(ctx context.Context, subm domain.Subm) error
	Now        func() time.Time
}

func (p SubmitSolParams) validate() error {
	if len(p.Code) == 0 {
		return domain.ErrSubmCodeEmpty()
	}
	if len(p.Code) > domain.MaxCodeBytes {
		return domain.ErrSubmCodeTooLong()
	}
	if strings.ContainsRune(p.Code, 0) {
		return domain.ErrSubmCodeHasNul()
	}
	if len(p.Language) == 0 || len(p.Language) > domain.MaxLanguageLen {
		return domain.ErrInvalidLanguage()
	}
	if p.StartedAt.IsZero() {
		return domain.ErrStartedAtMissing()
	}
	return nil
}

// Handle evaluates a solution synchronously and stores it once every
// derived field is known. A failing execution is a valid result, only
// validation and storage problems are returned as errors.
func (h SubmitSolCmdHandler) Handle(ctx context.Context, p SubmitSolParams) (domain.Subm, error) {
	if err := p.validate(); err != nil {
		return domain.Subm{}, err
	}

	// a client hanging up must not leave a half evaluated submission behind
	ctx = context.WithoutCancel(ctx)

	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	submittedAt := now()

	ctx = logger.With(ctx,
		"subm_uuid", p.UUID,
		"problem_id", p.ProblemID,
		"author_uuid", p.AuthorUUID,
		"lang", p.Language,
	)
	log := logger.FromContext(ctx)
	log.Info("submission received", "code_len", len(p.Code))

	prob, err := h.GetProblem(ctx, p.ProblemID)
	if err != nil {
		return domain.Subm{}, err
	}
	if !prob.Enabled && !p.AuthorIsStaff {
		return domain.Subm{}, domain.ErrProblemNotOpen()
	}

	log.Info("executing submission", "harness_files", len(prob.HarnessFiles))
	res := h.Execute(ctx, execsrvc.ExecRequest{
		Language: p.Language,
		SrcCode:  p.Code,
		Harness:  prob.HarnessFiles,
	})
	passed := res.Status.Passed()
	log.Info("submission interpreted", "status", res.Status, "passed", passed)

	durationMs := domain.CalcDurationMs(p.StartedAt, submittedAt)
	rank := domain.CalcRank(passed, durationMs, prob.TimeThresholds)
	log.Info("submission ranked", "duration_ms", durationMs, "rank", rank)

	raw, err := json.Marshal(res)
	if err != nil {
		return domain.Subm{}, fmt.Errorf("failed to marshal execution result: %w", err)
	}

	subm := domain.Subm{
		UUID:        p.UUID,
		AuthorUUID:  p.AuthorUUID,
		ProblemID:   p.ProblemID,
		Language:    p.Language,
		Code:        p.Code,
		StartedAt:   p.StartedAt,
		SubmittedAt: submittedAt,
		Status:      res.Status,
		DurationMs:  durationMs,
		MemoryKb:    res.MemoryKb,
		Passed:      passed,
		Rank:        rank,
		RawResults:  raw,
	}

	err = h.StoreSubm(ctx, subm)
	if err != nil {
		return domain.Subm{}, fmt.Errorf("failed to store submission: %w", err)
	}
	log.Info("submission persisted")

	return subm, nil
}
