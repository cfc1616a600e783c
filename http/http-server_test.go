package http_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	srvhttp "github.com/speedrun-coding/backend/http"
	"github.com/speedrun-coding/backend/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingHandler struct {
	sawLogger bool
}

func (p *pingHandler) RegisterRoutes(r chi.Router) {
	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		p.sawLogger = logger.FromContext(r.Context()) != slog.Default()
		w.WriteHeader(http.StatusNoContent)
	})
}

func newServer(h ...srvhttp.RouteRegistrar) *srvhttp.HttpServer {
	base := slog.New(slog.NewTextHandler(io.Discard, nil))
	return srvhttp.NewHttpServer(base, srvhttp.Options{
		JwtKey:      []byte("k"),
		CorsOrigins: []string{"http://localhost:3000"},
	}, h...)
}

func TestRegisteredRoutesGetContextLogger(t *testing.T) {
	ping := &pingHandler{}
	srv := newServer(ping)

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, ping.sawLogger)
}

func TestInvalidTokenIsRejected(t *testing.T) {
	srv := newServer(&pingHandler{})

	r := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.Header.Set("Authorization", "Bearer garbage")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, r)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListProgrammingLangs(t *testing.T) {
	srv := newServer()

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/programming-languages", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []srvhttp.ProgrammingLang `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	native := map[string]bool{}
	for _, l := range resp.Data {
		native[l.ID] = l.Native
	}
	assert.True(t, native["python"])
	assert.True(t, native["cpp"])
	assert.False(t, native["javascript"])
}
