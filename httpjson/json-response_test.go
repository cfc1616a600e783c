package httpjson_test

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/speedrun-coding/backend/httpjson"
	"github.com/speedrun-coding/backend/srvcerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleErrorServiceError(t *testing.T) {
	w := httptest.NewRecorder()
	err := srvcerror.New("problem_not_found", "problem not found").SetHttpStatusCode(http.StatusNotFound)

	httpjson.HandleError(slog.Default(), w, err)

	require.Equal(t, http.StatusNotFound, w.Code)
	var resp httpjson.JsonResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "problem_not_found", resp.ErrCode)
	assert.Equal(t, "problem not found", resp.ErrMsg)
}

func TestHandleErrorPlainErrorHidesDetails(t *testing.T) {
	w := httptest.NewRecorder()

	httpjson.HandleError(slog.Default(), w, errors.New("pg: password authentication failed"))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestWriteSuccessJson(t *testing.T) {
	w := httptest.NewRecorder()
	httpjson.WriteSuccessJsonWithStatus(w, http.StatusCreated, map[string]int{"answer": 42})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"success","data":{"answer":42}}`, w.Body.String())
}

func TestDecodeJsonRejectsGarbage(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{not json"))
	var dst map[string]any
	err := httpjson.DecodeJson(r, &dst)

	var srvcErr *srvcerror.Error
	require.ErrorAs(t, err, &srvcErr)
	assert.Equal(t, http.StatusBadRequest, srvcErr.HttpStatusCode())
}
