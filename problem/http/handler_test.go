package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/speedrun-coding/backend/execsrvc"
	"github.com/speedrun-coding/backend/problem/domain"
	problemhttp "github.com/speedrun-coding/backend/problem/http"
	"github.com/speedrun-coding/backend/user/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jwtKey = []byte("problem-test-key")

type fakeSrvc struct {
	problems []domain.Problem
	filters  []domain.ListFilter
	saved    []domain.Problem
}

func (f *fakeSrvc) GetProblemBySlug(ctx context.Context, slug string) (domain.Problem, error) {
	for _, p := range f.problems {
		if p.Slug == slug {
			return p, nil
		}
	}
	return domain.Problem{}, domain.ErrProblemNotFound()
}

func (f *fakeSrvc) ListProblems(ctx context.Context, lf domain.ListFilter) ([]domain.Problem, error) {
	f.filters = append(f.filters, lf)
	var res []domain.Problem
	for _, p := range f.problems {
		if lf.EnabledOnly && !p.Enabled {
			continue
		}
		res = append(res, p)
	}
	return res, nil
}

func (f *fakeSrvc) SaveProblem(ctx context.Context, p domain.Problem) (int64, []string, error) {
	if err := p.Validate(); err != nil {
		return 0, nil, err
	}
	f.saved = append(f.saved, p)
	return 42, domain.ValidateThresholds(p.TimeThresholds), nil
}

func newRouter(srvc *fakeSrvc) *chi.Mux {
	r := chi.NewRouter()
	r.Use(auth.GetJwtAuthMiddleware(jwtKey))
	problemhttp.NewProblemHttpHandler(srvc).RegisterRoutes(r)
	return r
}

func do(t *testing.T, r http.Handler, method, path string, staff *bool, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if staff != nil {
		token, err := auth.GenerateJWT("someone", uuid.New(), *staff, jwtKey, time.Hour)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sampleProblems() []domain.Problem {
	return []domain.Problem{
		{
			ID: 1, Slug: "two-sum", Title: "Two Sum", Enabled: true,
			HarnessFiles: []execsrvc.HarnessFile{{Filename: "eval_submission_codes.py", Lang: "python", Content: "secret"}},
		},
		{ID: 2, Slug: "draft", Title: "Draft", Enabled: false},
	}
}

func TestListProblems(t *testing.T) {
	srvc := &fakeSrvc{problems: sampleProblems()}
	r := newRouter(srvc)

	w := do(t, r, http.MethodGet, "/problems?sort=created_at&order=desc&tag=arrays", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "secret")
	assert.NotContains(t, w.Body.String(), "draft")

	require.Len(t, srvc.filters, 1)
	assert.True(t, srvc.filters[0].EnabledOnly)
	assert.Equal(t, domain.SortByCreatedAt, srvc.filters[0].SortBy)
	assert.True(t, srvc.filters[0].SortDesc)
	assert.Equal(t, "arrays", srvc.filters[0].Tag)

	staff := true
	w = do(t, r, http.MethodGet, "/problems", &staff, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "draft")
}

func TestGetProblem(t *testing.T) {
	r := newRouter(&fakeSrvc{problems: sampleProblems()})
	staff, member := true, false

	w := do(t, r, http.MethodGet, "/problems/two-sum", &member, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "harness_eval_files")

	w = do(t, r, http.MethodGet, "/problems/two-sum", &staff, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "harness_eval_files")

	w = do(t, r, http.MethodGet, "/problems/draft", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodGet, "/problems/draft", &staff, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/problems/missing", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPutProblem(t *testing.T) {
	srvc := &fakeSrvc{}
	r := newRouter(srvc)
	staff, member := true, false

	body := map[string]any{
		"slug":  "two-sum",
		"title": "Two Sum",
		"time_thresholds": []map[string]any{
			{"max_minutes": 3, "rank": "Wizard"},
		},
	}

	w := do(t, r, http.MethodPut, "/problems", nil, body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, r, http.MethodPut, "/problems", &member, body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(t, r, http.MethodPut, "/problems", &staff, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Data problemhttp.PutProblemResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.Data.ID)
	assert.Len(t, resp.Data.Warnings, 1)
	require.Len(t, srvc.saved, 1)
	require.NotNil(t, srvc.saved[0].TimeThresholds[0].MaxMinutes)
	assert.Equal(t, 3.0, *srvc.saved[0].TimeThresholds[0].MaxMinutes)

	w = do(t, r, http.MethodPut, "/problems", &staff, map[string]any{"title": "no slug"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
