package http

import (
	"context"

	"github.com/speedrun-coding/backend/subm/domain"
)

func (h *SubmHttpHandler) mapSubm(ctx context.Context, s domain.Subm) SubmView {
	return SubmView{
		UUID:         s.UUID.String(),
		ProblemID:    s.ProblemID,
		ProblemTitle: h.getProblemTitle(ctx, s.ProblemID),
		Language:     s.Language,
		StartedAt:    s.StartedAt,
		SubmittedAt:  s.SubmittedAt,
		Status:       string(s.Status),
		DurationMs:   s.DurationMs,
		MemoryKb:     s.MemoryKb,
		Passed:       s.Passed,
		Rank:         s.Rank,
		Inconclusive: s.Inconclusive(),
	}
}

func (h *SubmHttpHandler) mapDetailedSubm(ctx context.Context, s domain.Subm) DetailedSubmView {
	return DetailedSubmView{
		SubmView:   h.mapSubm(ctx, s),
		Code:       s.Code,
		RawResults: s.RawResults,
	}
}

func mapStats(s domain.SubmStats) SubmStatsView {
	return SubmStatsView{
		TotalSubmissions:      s.Total,
		SuccessfulSubmissions: s.Successful,
		AverageDurationMs:     s.AvgDurationMs,
		ProblemsSolved:        s.ProblemsSolved,
	}
}

func mapScorecard(sc domain.Scorecard) ScorecardView {
	res := ScorecardView{
		Username:       sc.Username,
		AvgRankScore:   sc.AvgRankScore,
		Tier:           sc.Tier,
		Coverage:       sc.Coverage,
		PassedCount:    sc.PassedCount,
		AttemptedCount: sc.AttemptedCount,
		Problems:       make([]ProblemStatusView, 0, len(sc.Problems)),
	}
	for _, p := range sc.Problems {
		res.Problems = append(res.Problems, ProblemStatusView{
			ProblemID: p.Problem.ID,
			Title:     p.Problem.Title,
			Slug:      p.Problem.Slug,
			Attempted: p.Attempted,
			Passed:    p.Passed,
			RankScore: p.RankScore,
		})
	}
	return res
}
