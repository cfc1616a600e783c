package srvc

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/speedrun-coding/backend/problem/domain"
	"golang.org/x/sync/singleflight"
)

type ProblemRepo interface {
	GetProblem(ctx context.Context, id int64) (domain.Problem, error)
	GetProblemBySlug(ctx context.Context, slug string) (domain.Problem, error)
	ListProblems(ctx context.Context, f domain.ListFilter) ([]domain.Problem, error)
	ListEnabled(ctx context.Context) ([]domain.Problem, error)
	StoreProblem(ctx context.Context, p domain.Problem) (int64, error)
}

// ProblemSrvc serves the problem catalog. Problems are read on every
// submission, so single problems and the enabled list are cached briefly.
type ProblemSrvc struct {
	logger *slog.Logger
	repo   ProblemRepo

	cache   *cache.Cache
	sfGroup singleflight.Group
}

const enabledListCacheKey = "enabled"

func NewProblemSrvc(logger *slog.Logger, repo ProblemRepo, ttl time.Duration) *ProblemSrvc {
	return &ProblemSrvc{
		logger: logger.With("module", "problem"),
		repo:   repo,
		cache:  cache.New(ttl, 2*ttl),
	}
}

func problemCacheKey(id int64) string {
	return "id:" + strconv.FormatInt(id, 10)
}

func (s *ProblemSrvc) GetProblem(ctx context.Context, id int64) (domain.Problem, error) {
	key := problemCacheKey(id)
	if cached, found := s.cache.Get(key); found {
		if p, ok := cached.(domain.Problem); ok {
			return p, nil
		}
	}

	res, err, _ := s.sfGroup.Do(key, func() (interface{}, error) {
		if cached, found := s.cache.Get(key); found {
			if p, ok := cached.(domain.Problem); ok {
				return p, nil
			}
		}
		p, err := s.repo.GetProblem(ctx, id)
		if err != nil {
			return nil, err
		}
		s.cache.SetDefault(key, p)
		return p, nil
	})
	if err != nil {
		return domain.Problem{}, err
	}
	return res.(domain.Problem), nil
}

func (s *ProblemSrvc) GetProblemBySlug(ctx context.Context, slug string) (domain.Problem, error) {
	return s.repo.GetProblemBySlug(ctx, slug)
}

func (s *ProblemSrvc) ListProblems(ctx context.Context, f domain.ListFilter) ([]domain.Problem, error) {
	return s.repo.ListProblems(ctx, f)
}

func (s *ProblemSrvc) ListEnabled(ctx context.Context) ([]domain.Problem, error) {
	if cached, found := s.cache.Get(enabledListCacheKey); found {
		if ps, ok := cached.([]domain.Problem); ok {
			return ps, nil
		}
	}
	res, err, _ := s.sfGroup.Do(enabledListCacheKey, func() (interface{}, error) {
		ps, err := s.repo.ListEnabled(ctx)
		if err != nil {
			return nil, err
		}
		s.cache.SetDefault(enabledListCacheKey, ps)
		return ps, nil
	})
	if err != nil {
		return nil, err
	}
	return res.([]domain.Problem), nil
}

// SaveProblem creates or updates a problem. The returned warnings describe
// a threshold table that ranks submissions in a surprising way; they do not
// prevent saving.
func (s *ProblemSrvc) SaveProblem(ctx context.Context, p domain.Problem) (int64, []string, error) {
	if err := p.Validate(); err != nil {
		return 0, nil, err
	}

	warnings := domain.ValidateThresholds(p.TimeThresholds)
	for _, w := range warnings {
		s.logger.Warn("time threshold warning", "slug", p.Slug, "warning", w)
	}

	id, err := s.repo.StoreProblem(ctx, p)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to save problem %q: %w", p.Slug, err)
	}

	s.cache.Delete(problemCacheKey(id))
	s.cache.Delete(enabledListCacheKey)
	return id, warnings, nil
}
