package http

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/puzpuzpuz/xsync/v3"
	problem "github.com/speedrun-coding/backend/problem/domain"
	"github.com/speedrun-coding/backend/subm/submsrvc"
	"github.com/speedrun-coding/backend/user"
	"github.com/speedrun-coding/backend/user/auth"
	"golang.org/x/sync/singleflight"
)

type ProblemGetter interface {
	GetProblem(ctx context.Context, id int64) (problem.Problem, error)
}

type UserGetter interface {
	GetUserByUsername(ctx context.Context, username string) (user.User, error)
}

type SubmHttpHandler struct {
	submSrvc    *submsrvc.SubmSrvc
	problemSrvc ProblemGetter
	userSrvc    UserGetter

	// solution submission rate limit
	lastSubmTime *xsync.MapOf[uuid.UUID, time.Time]
	minInterval  time.Duration
	now          func() time.Time

	// scorecardCache and singleflight for preventing cache stampedes
	scorecardCache *cache.Cache
	sfGroup        singleflight.Group
}

func NewSubmHttpHandler(
	submSrvc *submsrvc.SubmSrvc,
	problemSrvc ProblemGetter,
	userSrvc UserGetter,
	minInterval time.Duration,
) *SubmHttpHandler {
	return &SubmHttpHandler{
		submSrvc:       submSrvc,
		problemSrvc:    problemSrvc,
		userSrvc:       userSrvc,
		lastSubmTime:   xsync.NewMapOf[uuid.UUID, time.Time](),
		minInterval:    minInterval,
		now:            time.Now,
		scorecardCache: cache.New(5*time.Second, 1*time.Minute),
	}
}

func (h *SubmHttpHandler) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth)
		r.Post("/submissions", h.PostSubm)
		r.Get("/submissions", h.GetSubmList)
		r.Get("/submissions/stats", h.GetStats)
		r.Get("/submissions/{subm-uuid}", h.GetFullSubm)
	})
	r.Get("/scorecard", h.GetScorecard)
}

// allowSubm records a submission attempt and reports how long the author
// still has to wait, zero when the attempt is allowed. An allowed attempt
// can be handed back with the returned release func.
func (h *SubmHttpHandler) allowSubm(author uuid.UUID) (time.Duration, func()) {
	if h.minInterval <= 0 {
		return 0, func() {}
	}
	now := h.now()
	var wait time.Duration
	var prev time.Time
	var hadPrev bool
	h.lastSubmTime.Compute(author, func(last time.Time, loaded bool) (time.Time, bool) {
		if loaded && now.Sub(last) < h.minInterval {
			wait = h.minInterval - now.Sub(last)
			return last, false
		}
		prev, hadPrev = last, loaded
		return now, false
	})
	if wait > 0 {
		return wait, func() {}
	}
	release := func() {
		h.lastSubmTime.Compute(author, func(cur time.Time, loaded bool) (time.Time, bool) {
			// a newer attempt already took the slot
			if !loaded || !cur.Equal(now) {
				return cur, !loaded
			}
			if hadPrev {
				return prev, false
			}
			return time.Time{}, true
		})
	}
	return 0, release
}

func (h *SubmHttpHandler) getProblemTitle(ctx context.Context, id int64) string {
	p, err := h.problemSrvc.GetProblem(ctx, id)
	if err != nil {
		return ""
	}
	return p.Title
}
