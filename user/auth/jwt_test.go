package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/speedrun-coding/backend/user/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("test-key")

func TestGenerateAndValidateJWT(t *testing.T) {
	id := uuid.New()
	token, err := auth.GenerateJWT("alice", id, true, testKey, time.Hour)
	require.NoError(t, err)

	claims, err := auth.ValidateJWT(token, testKey)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.True(t, claims.IsStaff)

	got, err := claims.UserUUID()
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestValidateJWTRejects(t *testing.T) {
	expired, err := auth.GenerateJWT("alice", uuid.New(), false, testKey, -time.Minute)
	require.NoError(t, err)

	wrongKey, err := auth.GenerateJWT("alice", uuid.New(), false, []byte("other"), time.Hour)
	require.NoError(t, err)

	noUuid, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &auth.JwtClaims{
		Username: "alice",
	}).SignedString(testKey)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"expired":   expired,
		"wrong key": wrongKey,
		"no uuid":   noUuid,
		"garbage":   "not.a.token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := auth.ValidateJWT(token, testKey)
			assert.Error(t, err)
		})
	}
}

func TestMiddleware(t *testing.T) {
	var seen *auth.JwtClaims
	h := auth.GetJwtAuthMiddleware(testKey)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = auth.ClaimsFromCtx(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("anonymous passes with nil claims", func(t *testing.T) {
		seen = &auth.JwtClaims{}
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Nil(t, seen)
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := auth.GenerateJWT("bob", uuid.New(), false, testKey, time.Hour)
		require.NoError(t, err)
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		assert.Equal(t, http.StatusNoContent, w.Code)
		require.NotNil(t, seen)
		assert.Equal(t, "bob", seen.Username)
	})

	t.Run("invalid token", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer nope")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), `"code":"unauthorized"`)
	})
}

func TestRequireAuth(t *testing.T) {
	h := auth.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
