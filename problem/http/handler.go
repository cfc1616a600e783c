package http

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/speedrun-coding/backend/problem/domain"
	"github.com/speedrun-coding/backend/user/auth"
)

type ProblemSrvc interface {
	GetProblemBySlug(ctx context.Context, slug string) (domain.Problem, error)
	ListProblems(ctx context.Context, f domain.ListFilter) ([]domain.Problem, error)
	SaveProblem(ctx context.Context, p domain.Problem) (int64, []string, error)
}

type ProblemHttpHandler struct {
	problemSrvc ProblemSrvc
}

func NewProblemHttpHandler(problemSrvc ProblemSrvc) *ProblemHttpHandler {
	return &ProblemHttpHandler{problemSrvc: problemSrvc}
}

func (h *ProblemHttpHandler) RegisterRoutes(r chi.Router) {
	r.Get("/problems", h.ListProblems)
	r.Get("/problems/{slug}", h.GetProblem)
	r.With(auth.RequireAuth).Put("/problems", h.PutProblem)
}

func isStaff(ctx context.Context) bool {
	claims := auth.ClaimsFromCtx(ctx)
	return claims != nil && claims.IsStaff
}
